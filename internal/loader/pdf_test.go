package loader

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minimalPDF assembles a small uncompressed PDF with one text line per
// page, computing the cross-reference offsets as it goes.
func minimalPDF(pages ...string) []byte {
	escape := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	fontObj := 3 + 2*len(pages)

	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 3+2*i)
	}
	objs := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)),
	}
	for i, text := range pages {
		stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", escape.Replace(text))
		objs = append(objs,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>", fontObj, 4+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		)
	}
	objs = append(objs, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	var b bytes.Buffer
	b.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, body := range objs {
		offsets[i] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}
	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return b.Bytes()
}

func TestPDFLoaderEmitsOneDocumentPerPage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bylaws.pdf")
	require.NoError(t, os.WriteFile(path, minimalPDF(
		"Fences shall not exceed six feet in height.",
		"Quiet hours begin at ten in the evening.",
		"No commercial activity is permitted on any lot.",
	), 0o644))

	docs, err := PDFLoader{}.Load(path)
	require.NoError(t, err)
	require.Len(t, docs, 3)

	for i, d := range docs {
		assert.Equal(t, path, d.Source)
		assert.Equal(t, i+1, d.Page)
	}
	assert.Contains(t, docs[0].Content, "six feet")
	assert.Contains(t, docs[1].Content, "Quiet hours")
	assert.Contains(t, docs[2].Content, "commercial activity")
}

func TestLoadDirIncludesPDFs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bylaws.pdf"),
		minimalPDF("Fences shall not exceed six feet in height."), 0o644))

	docs, err := NewRegistry().LoadDir(dir, "")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, 1, docs[0].Page)
	assert.Contains(t, docs[0].Content, "six feet")
}
