// Package embedding converts text into fixed-dimension vectors via a
// hosted embedding model. All vectors in one index must come from the
// same model; mixing models invalidates similarity comparisons.
package embedding

import (
	"context"

	"legal-rag/internal/config"
	"legal-rag/internal/errs"
)

// Embedder is used by the vector store for both document insertion and
// query-time similarity search. Implementations backed by asymmetric
// models must keep the document/query task split across both calls.
type Embedder interface {
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// New builds the embedder selected by the config provider.
func New(ctx context.Context, cfg *config.LLMConfig) (Embedder, error) {
	switch cfg.Provider {
	case "google", "":
		return NewGoogle(ctx, cfg.APIKey, cfg.Model)
	case "openai":
		return NewOpenAI(cfg)
	default:
		return nil, errs.New(errs.ErrConfig, "unknown embedding provider: "+cfg.Provider)
	}
}
