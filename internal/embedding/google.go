package embedding

import (
	"context"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"legal-rag/internal/errs"
)

// Google embeds text with the Gemini embedding API. The model is
// asymmetric: documents are embedded with the retrieval-document task
// and queries with the retrieval-query task so both land in an aligned
// vector space.
type Google struct {
	client *genai.Client
	model  string
}

func NewGoogle(ctx context.Context, apiKey, model string) (*Google, error) {
	if apiKey == "" {
		return nil, errs.New(errs.ErrConfig, "google api key is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, errs.Wrap(errs.ErrConfig, err, "creating genai client")
	}
	return &Google{client: client, model: model}, nil
}

func (g *Google) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	em := g.client.EmbeddingModel(g.model)
	em.TaskType = genai.TaskTypeRetrievalDocument

	b := em.NewBatch()
	for _, t := range texts {
		b.AddContent(genai.Text(t))
	}
	res, err := em.BatchEmbedContents(ctx, b)
	if err != nil {
		return nil, errs.Wrap(errs.ErrEmbedding, err, "batch embedding documents")
	}
	if len(res.Embeddings) != len(texts) {
		return nil, errs.New(errs.ErrEmbedding, "embedding count does not match input count")
	}
	vecs := make([][]float32, len(res.Embeddings))
	for i, e := range res.Embeddings {
		vecs[i] = e.Values
	}
	return vecs, nil
}

func (g *Google) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	em := g.client.EmbeddingModel(g.model)
	em.TaskType = genai.TaskTypeRetrievalQuery

	res, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, errs.Wrap(errs.ErrEmbedding, err, "embedding query")
	}
	if res.Embedding == nil {
		return nil, errs.New(errs.ErrEmbedding, "no embedding returned")
	}
	return res.Embedding.Values, nil
}

func (g *Google) Close() error {
	return g.client.Close()
}
