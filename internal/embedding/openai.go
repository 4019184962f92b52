package embedding

import (
	"context"
	"strings"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"

	"legal-rag/internal/config"
	"legal-rag/internal/errs"
)

// OpenAI embeds text with any OpenAI-compatible endpoint. The model is
// symmetric: documents and queries take the same path.
type OpenAI struct {
	impl *embeddings.EmbedderImpl
}

func NewOpenAI(cfg *config.LLMConfig) (*OpenAI, error) {
	llm, err := openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithToken(strings.TrimPrefix(cfg.APIKey, "Bearer ")),
		openai.WithModel(cfg.Model),
		openai.WithEmbeddingModel(cfg.Model),
	)
	if err != nil {
		return nil, errs.Wrap(errs.ErrConfig, err, "initializing openai llm")
	}
	impl, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, errs.Wrap(errs.ErrConfig, err, "creating embedder")
	}
	return &OpenAI{impl: impl}, nil
}

func (o *OpenAI) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	vecs, err := o.impl.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, errs.Wrap(errs.ErrEmbedding, err, "embedding documents")
	}
	return vecs, nil
}

func (o *OpenAI) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vec, err := o.impl.EmbedQuery(ctx, text)
	if err != nil {
		return nil, errs.Wrap(errs.ErrEmbedding, err, "embedding query")
	}
	return vec, nil
}
