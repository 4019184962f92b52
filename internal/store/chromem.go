package store

import (
	"context"
	"fmt"
	"runtime"

	"github.com/philippgille/chromem-go"

	"legal-rag/internal/config"
	"legal-rag/internal/embedding"
	"legal-rag/internal/errs"
	"legal-rag/internal/helper"
	"legal-rag/internal/models"
)

// Chromem stores chunks in an embedded, file-persisted chromem
// collection. Useful for local runs without a Postgres instance.
type Chromem struct {
	collection *chromem.Collection
	embedder   embedding.Embedder
}

func NewChromem(cfg *config.DatabaseConfig, embedder embedding.Embedder) (*Chromem, error) {
	db, err := chromem.NewPersistentDB(cfg.Path, false)
	if err != nil {
		return nil, errs.Wrap(errs.ErrConfig, err, "opening chromem database")
	}
	return newChromem(db, cfg.Collection, embedder)
}

// NewChromemInMemory backs the store with a volatile database. Used by
// tests and dry runs.
func NewChromemInMemory(collection string, embedder embedding.Embedder) (*Chromem, error) {
	return newChromem(chromem.NewDB(), collection, embedder)
}

func newChromem(db *chromem.DB, collection string, embedder embedding.Embedder) (*Chromem, error) {
	// The embedding func only serves queries; documents arrive
	// pre-embedded so the retrieval-document task is preserved.
	col, err := db.GetOrCreateCollection(collection, nil, func(ctx context.Context, text string) ([]float32, error) {
		return embedder.EmbedQuery(ctx, text)
	})
	if err != nil {
		return nil, errs.Wrap(errs.ErrConfig, err, "creating collection")
	}
	return &Chromem{collection: col, embedder: embedder}, nil
}

func (s *Chromem) AddDocuments(ctx context.Context, chunks []models.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}
	vecs, err := s.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return err
	}
	if len(vecs) != len(chunks) {
		return errs.New(errs.ErrStoreWrite, "embedding count does not match chunk count")
	}

	docs := make([]chromem.Document, len(chunks))
	for i, c := range chunks {
		id, err := helper.GenerateUUID()
		if err != nil {
			return errs.Wrap(errs.ErrStoreWrite, err, "generating document id")
		}
		md := make(map[string]string, len(c.Metadata))
		for k, v := range c.Metadata {
			md[k] = fmt.Sprint(v)
		}
		docs[i] = chromem.Document{
			ID:        id,
			Content:   c.Content,
			Metadata:  md,
			Embedding: vecs[i],
		}
	}
	if err := s.collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return errs.Wrap(errs.ErrStoreWrite, err, "adding documents")
	}
	return nil
}

func (s *Chromem) SimilaritySearch(ctx context.Context, query string, k int) ([]models.SimilarityResult, error) {
	if k <= 0 {
		return nil, errs.New(errs.ErrValidation, "k must be a positive integer")
	}
	// chromem rejects result counts above the collection size.
	if n := s.collection.Count(); n == 0 {
		return nil, nil
	} else if k > n {
		k = n
	}

	results, err := s.collection.Query(ctx, query, k, nil, nil)
	if err != nil {
		return nil, errs.Wrap(errs.ErrStoreRead, err, "querying collection")
	}

	out := make([]models.SimilarityResult, len(results))
	for i, r := range results {
		md := make(map[string]any, len(r.Metadata))
		for k, v := range r.Metadata {
			md[k] = v
		}
		out[i] = models.SimilarityResult{
			Chunk: models.Chunk{Content: r.Content, Metadata: md},
			Score: float64(r.Similarity),
		}
	}
	return out, nil
}
