package loader

import (
	"os"

	"github.com/ledongthuc/pdf"

	"legal-rag/internal/models"
)

// PDFLoader extracts plain text page by page, producing one RawDocument
// per page so chunk metadata keeps the page number.
type PDFLoader struct{}

func (PDFLoader) Load(path string) ([]models.RawDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	reader, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		return nil, err
	}

	var docs []models.RawDocument
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, err
		}
		docs = append(docs, models.RawDocument{Content: text, Source: path, Page: i})
	}
	return docs, nil
}
