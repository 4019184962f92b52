package loader

import (
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"legal-rag/internal/models"
)

// MarkdownLoader parses GFM and walks the AST collecting text nodes, so
// formatting markers never reach the vector store.
type MarkdownLoader struct{}

func (MarkdownLoader) Load(path string) ([]models.RawDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	root := md.Parser().Parse(text.NewReader(data))

	var buf strings.Builder
	err = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(data))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte('\n')
			}
		default:
			if n.Type() == ast.TypeBlock && buf.Len() > 0 {
				buf.WriteString("\n\n")
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(buf.String())
	if content == "" {
		return nil, nil
	}
	return []models.RawDocument{{Content: content, Source: path}}, nil
}

// TextLoader loads a plain text file as a single document.
type TextLoader struct{}

func (TextLoader) Load(path string) ([]models.RawDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	content := strings.TrimSpace(string(data))
	if content == "" {
		return nil, nil
	}
	return []models.RawDocument{{Content: content, Source: path}}, nil
}
