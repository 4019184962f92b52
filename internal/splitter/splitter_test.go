package splitter

import (
	"strings"
	"testing"
	"unicode"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legal-rag/internal/errs"
)

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(0, 0)
	assert.ErrorIs(t, err, errs.ErrConfig)

	_, err = New(100, 100)
	assert.ErrorIs(t, err, errs.ErrConfig)

	_, err = New(100, 150)
	assert.ErrorIs(t, err, errs.ErrConfig)

	_, err = New(100, -1)
	assert.ErrorIs(t, err, errs.ErrConfig)
}

func TestSplitShortInput(t *testing.T) {
	s, err := New(1000, 200)
	require.NoError(t, err)

	assert.Nil(t, s.Split(""))
	assert.Nil(t, s.Split("   \n\t  "))
	assert.Equal(t, []string{"short text"}, s.Split("  short text  "))
}

func TestSplitBoundsAndOverlap(t *testing.T) {
	s, err := New(1000, 200)
	require.NoError(t, err)

	text := strings.Repeat("Fences shall not exceed six feet in height measured from grade. ", 120)
	chunks := s.Split(text)
	require.Greater(t, len(chunks), 1)

	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 1000)
	}
	for i := 0; i < len(chunks)-1; i++ {
		suffix := chunks[i][len(chunks[i])-200:]
		prefix := chunks[i+1][:200]
		assert.Equal(t, suffix, prefix, "chunks %d and %d must share the configured overlap", i, i+1)
	}
}

func TestSplitBreaksOnWordBoundaries(t *testing.T) {
	s, err := New(300, 50)
	require.NoError(t, err)

	text := strings.Repeat("No structure shall be erected within ten feet of the property line. ", 40)
	chunks := s.Split(text)
	require.Greater(t, len(chunks), 1)

	for i := 0; i < len(chunks)-1; i++ {
		last := rune(chunks[i][len(chunks[i])-1])
		assert.True(t, unicode.IsSpace(last) || last == '.',
			"chunk %d should end on a boundary, got %q", i, last)
	}
}

func TestSplitIsDeterministic(t *testing.T) {
	s, err := New(500, 100)
	require.NoError(t, err)

	text := strings.Repeat("The association may levy annual assessments for common area maintenance.\n\n", 60)
	first := s.Split(text)
	for run := 0; run < 3; run++ {
		assert.Equal(t, first, s.Split(text))
	}
}

func TestSplitMultibyteInput(t *testing.T) {
	s, err := New(100, 20)
	require.NoError(t, err)

	// No registered separators, so every cut is a hard cut. Each rune is
	// three bytes in UTF-8.
	text := strings.Repeat("塀の高さは六尺を超えてはならないものとする。", 30)
	chunks := s.Split(text)
	require.Greater(t, len(chunks), 1)

	for i, c := range chunks {
		assert.True(t, utf8.ValidString(c), "chunk %d must not split a rune", i)
		assert.LessOrEqual(t, utf8.RuneCountInString(c), 100)
	}
	for i := 0; i < len(chunks)-1; i++ {
		cur := []rune(chunks[i])
		next := []rune(chunks[i+1])
		assert.Equal(t, string(cur[len(cur)-20:]), string(next[:20]))
	}
}

func TestSplitReassemblesToOriginal(t *testing.T) {
	s, err := New(400, 80)
	require.NoError(t, err)

	text := strings.TrimSpace(strings.Repeat("Each lot owner shall maintain landscaping in good condition. ", 50))
	chunks := s.Split(text)
	require.Greater(t, len(chunks), 1)

	var b strings.Builder
	b.WriteString(chunks[0])
	for _, c := range chunks[1:] {
		b.WriteString(c[80:])
	}
	assert.Equal(t, text, b.String())
}
