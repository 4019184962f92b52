package models

// Metadata keys stored alongside every chunk.
const (
	MetaSource      = "source"
	MetaPage        = "page"
	MetaChunkID     = "chunk_id"
	MetaContentHash = "content_hash"
)

// RawDocument is a loader's output unit: one page of a PDF, one sheet of
// a workbook, or one whole file for pageless formats.
type RawDocument struct {
	Content string
	Source  string
	Page    int
}

// Chunk is a bounded span of document text stored as one retrievable
// unit. Immutable once created by the splitter.
type Chunk struct {
	Content  string
	Metadata map[string]any
}

// SimilarityResult pairs a retrieved chunk with its relevance score.
// Results are ordered by descending score.
type SimilarityResult struct {
	Chunk
	Score float64
}

// Source is one supporting excerpt returned alongside an answer.
type Source struct {
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata"`
}

// Answer is the query service response: the model output plus the raw
// retrieved chunks for optional client-side display.
type Answer struct {
	Response string   `json:"response"`
	Sources  []Source `json:"sources"`
}
