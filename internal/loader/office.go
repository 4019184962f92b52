package loader

import (
	"fmt"
	"strings"

	"github.com/nguyenthenguyen/docx"
	"github.com/tealeg/xlsx"
	"github.com/xuri/excelize/v2"

	"legal-rag/internal/models"
)

// DocxLoader extracts the document body as a single pageless document.
type DocxLoader struct{}

func (DocxLoader) Load(path string) ([]models.RawDocument, error) {
	r, err := docx.ReadDocxFile(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	content := strings.TrimSpace(r.Editable().GetContent())
	if content == "" {
		return nil, nil
	}
	return []models.RawDocument{{Content: content, Source: path}}, nil
}

// XLSXLoader renders each sheet as tab-separated rows, one document per
// sheet with the sheet index as the page number.
type XLSXLoader struct{}

func (XLSXLoader) Load(path string) ([]models.RawDocument, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, err
	}

	var docs []models.RawDocument
	for i, sheet := range f.Sheets {
		var text strings.Builder
		text.WriteString(fmt.Sprintf("Sheet: %s\n", sheet.Name))
		for _, row := range sheet.Rows {
			for _, cell := range row.Cells {
				text.WriteString(cell.String() + "\t")
			}
			text.WriteString("\n")
		}
		content := strings.TrimSpace(text.String())
		if content == "" {
			continue
		}
		docs = append(docs, models.RawDocument{Content: content, Source: path, Page: i + 1})
	}
	return docs, nil
}

// ODSLoader renders OpenDocument spreadsheets the same way as XLSXLoader.
type ODSLoader struct{}

func (ODSLoader) Load(path string) ([]models.RawDocument, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var docs []models.RawDocument
	for i, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			continue
		}
		var text strings.Builder
		text.WriteString(fmt.Sprintf("Sheet: %s\n", name))
		for _, row := range rows {
			for _, cell := range row {
				text.WriteString(cell + "\t")
			}
			text.WriteString("\n")
		}
		content := strings.TrimSpace(text.String())
		if content == "" {
			continue
		}
		docs = append(docs, models.RawDocument{Content: content, Source: path, Page: i + 1})
	}
	return docs, nil
}
