// Package splitter cuts document text into overlapping chunks bounded by
// a maximum size. Splitting the same input with the same configuration
// always yields the same boundaries.
package splitter

import (
	"strings"
	"unicode/utf8"

	"legal-rag/internal/errs"
)

// Break-point preference: paragraph, line, sentence, word. A hard
// character cut is the fallback when none occur inside the search window.
var separators = []string{"\n\n", "\n", ". ", " "}

type Splitter struct {
	chunkSize int
	overlap   int
}

// New returns a splitter producing chunks of at most chunkSize characters
// where consecutive chunks share exactly overlap characters. Overlap must
// be non-negative and strictly less than the chunk size.
func New(chunkSize, overlap int) (*Splitter, error) {
	if chunkSize <= 0 {
		return nil, errs.New(errs.ErrConfig, "chunk size must be positive")
	}
	if overlap < 0 || overlap >= chunkSize {
		return nil, errs.New(errs.ErrConfig, "chunk overlap must be non-negative and strictly less than chunk size")
	}
	return &Splitter{chunkSize: chunkSize, overlap: overlap}, nil
}

// Split returns the chunks of content in document order. Leading and
// trailing whitespace of the whole input is dropped; chunk interiors are
// preserved so that neighboring chunks overlap verbatim. Size and
// overlap count runes, so a hard cut never lands inside a multibyte
// character.
func (s *Splitter) Split(content string) []string {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}
	runes := []rune(content)
	if len(runes) <= s.chunkSize {
		return []string{content}
	}

	var chunks []string
	start := 0
	for {
		end := start + s.chunkSize
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			return chunks
		}
		end = s.breakPoint(runes, start, end)
		chunks = append(chunks, string(runes[start:end]))
		start = end - s.overlap
	}
}

// breakPoint moves end back to the most meaningful boundary inside the
// tail window of the chunk. It never moves end at or before
// start+overlap, which guarantees forward progress.
func (s *Splitter) breakPoint(runes []rune, start, end int) int {
	lo := start + s.overlap + 1
	if w := end - s.chunkSize/5; w > lo {
		lo = w
	}
	window := string(runes[lo:end])
	for _, sep := range separators {
		if i := strings.LastIndex(window, sep); i >= 0 {
			return lo + utf8.RuneCountInString(window[:i]) + len(sep)
		}
	}
	return end
}
