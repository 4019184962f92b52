// Package loader extracts raw text from source documents. Formats are a
// closed set of extension tags; new formats are added by registering a
// loader, not by branching.
package loader

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog/log"

	"legal-rag/internal/errs"
	"legal-rag/internal/models"
)

// Loader extracts raw documents from one file format.
type Loader interface {
	Load(path string) ([]models.RawDocument, error)
}

// Registry dispatches to a Loader keyed by lowercase file extension.
type Registry struct {
	loaders map[string]Loader
}

// NewRegistry returns a registry with all supported formats registered.
func NewRegistry() *Registry {
	r := &Registry{loaders: map[string]Loader{}}
	r.Register(".pdf", PDFLoader{})
	r.Register(".md", MarkdownLoader{})
	r.Register(".txt", TextLoader{})
	r.Register(".docx", DocxLoader{})
	r.Register(".xlsx", XLSXLoader{})
	r.Register(".ods", ODSLoader{})
	return r
}

// Register binds an extension tag (with leading dot) to a loader.
func (r *Registry) Register(ext string, l Loader) {
	r.loaders[strings.ToLower(ext)] = l
}

// Load dispatches path to the loader registered for its extension. The
// second return is false when the extension is not registered.
func (r *Registry) Load(path string) ([]models.RawDocument, bool, error) {
	l, ok := r.loaders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, false, nil
	}
	docs, err := l.Load(path)
	return docs, true, err
}

// LoadDir walks root and loads every file with a registered extension.
// Unrecognized extensions are skipped. An optional doublestar include
// pattern filters by path relative to root. Fails with errs.ErrConfig
// when root is unset or unreadable.
func (r *Registry) LoadDir(root, include string) ([]models.RawDocument, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errs.New(errs.ErrConfig, "documents path is not set")
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, errs.Wrap(errs.ErrConfig, err, "documents path is not readable")
	}
	if !info.IsDir() {
		return nil, errs.New(errs.ErrConfig, "documents path is not a directory")
	}

	var docs []models.RawDocument
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if include != "" {
			ok, err := doublestar.Match(include, filepath.ToSlash(rel))
			if err != nil {
				return errs.Wrap(errs.ErrConfig, err, "invalid include pattern")
			}
			if !ok {
				return nil
			}
		}
		loaded, ok, err := r.Load(path)
		if !ok {
			log.Debug().Str("file", rel).Msg("skipping unsupported file")
			return nil
		}
		if err != nil {
			return fmt.Errorf("loading %s: %w", rel, err)
		}
		docs = append(docs, loaded...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}
