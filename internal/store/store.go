// Package store persists chunk embeddings and serves similarity search.
// Two backends: a Postgres/pgvector table and an embedded chromem
// collection. Both embed through the same Embedder so the document/query
// task split of asymmetric models holds on every path.
package store

import (
	"context"

	"legal-rag/internal/config"
	"legal-rag/internal/embedding"
	"legal-rag/internal/errs"
	"legal-rag/internal/models"
)

// VectorStore is the persisted vector index. AddDocuments embeds each
// chunk and writes (text, metadata, embedding) rows; partial batch
// writes are possible and not atomic. SimilaritySearch embeds the query
// and returns at most k results by descending score.
type VectorStore interface {
	AddDocuments(ctx context.Context, chunks []models.Chunk) error
	SimilaritySearch(ctx context.Context, query string, k int) ([]models.SimilarityResult, error)
}

// New builds the store selected by the database driver.
func New(cfg *config.DatabaseConfig, embedder embedding.Embedder) (VectorStore, error) {
	switch cfg.Driver {
	case "pgvector", "":
		return NewPG(cfg, embedder)
	case "chromem":
		return NewChromem(cfg, embedder)
	default:
		return nil, errs.New(errs.ErrConfig, "unknown database driver: "+cfg.Driver)
	}
}
