package rag

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legal-rag/internal/config"
	"legal-rag/internal/errs"
	"legal-rag/internal/models"
)

type fakeStore struct {
	results []models.SimilarityResult
	err     error
	calls   int
	lastK   int
}

func (f *fakeStore) AddDocuments(ctx context.Context, chunks []models.Chunk) error {
	return nil
}

func (f *fakeStore) SimilaritySearch(ctx context.Context, query string, k int) ([]models.SimilarityResult, error) {
	f.calls++
	f.lastK = k
	return f.results, f.err
}

type fakeChat struct {
	answer     string
	err        error
	calls      int
	lastSystem string
	lastUser   string
}

func (f *fakeChat) Generate(ctx context.Context, system, user string) (string, error) {
	f.calls++
	f.lastSystem = system
	f.lastUser = user
	return f.answer, f.err
}

func fenceResults() []models.SimilarityResult {
	return []models.SimilarityResult{
		{
			Chunk: models.Chunk{
				Content:  "fences shall not exceed six feet in height",
				Metadata: map[string]any{models.MetaSource: "bylaws.pdf"},
			},
			Score: 0.92,
		},
		{
			Chunk: models.Chunk{
				Content:  "all sheds require architectural review approval",
				Metadata: map[string]any{models.MetaSource: "bylaws.pdf"},
			},
			Score: 0.41,
		},
	}
}

func TestAnswerRejectsEmptyQuestion(t *testing.T) {
	st := &fakeStore{}
	chat := &fakeChat{}
	svc := New(st, chat, &config.RAGConfig{TopK: 10, AnswerTimeoutSecs: 60})

	for _, q := range []string{"", "   ", "\n\t"} {
		_, err := svc.Answer(context.Background(), q)
		assert.ErrorIs(t, err, errs.ErrValidation)
	}
	// no retrieval and no model invocation happened
	assert.Zero(t, st.calls)
	assert.Zero(t, chat.calls)
}

func TestAnswerFenceHeight(t *testing.T) {
	st := &fakeStore{results: fenceResults()}
	chat := &fakeChat{answer: "Fences may not be taller than six feet."}
	svc := New(st, chat, &config.RAGConfig{TopK: 2, AnswerTimeoutSecs: 60})

	answer, err := svc.Answer(context.Background(), "What is the minimum fence height?")
	require.NoError(t, err)

	assert.Contains(t, answer.Response, "six feet")
	require.Len(t, answer.Sources, 2)
	assert.Contains(t, answer.Sources[0].Content, "fences shall not exceed six feet in height")
	assert.Equal(t, "bylaws.pdf", answer.Sources[0].Metadata[models.MetaSource])
	assert.Equal(t, 2, st.lastK)
}

func TestAnswerGroundingPrompt(t *testing.T) {
	st := &fakeStore{results: fenceResults()}
	chat := &fakeChat{answer: "ok"}
	svc := New(st, chat, &config.RAGConfig{TopK: 2, AnswerTimeoutSecs: 60})

	_, err := svc.Answer(context.Background(), "How tall can my fence be?")
	require.NoError(t, err)

	assert.Contains(t, chat.lastSystem, "Document 1:\nfences shall not exceed six feet in height")
	assert.Contains(t, chat.lastSystem, "Document 2:\nall sheds require architectural review approval")
	assert.Contains(t, chat.lastSystem, "don't mention which document it comes from")
	assert.Contains(t, chat.lastSystem, "If the answer cannot be found in the context, say so clearly")
	assert.Equal(t, "How tall can my fence be?", chat.lastUser)
}

func TestAnswerRetrievalFailure(t *testing.T) {
	st := &fakeStore{err: errs.New(errs.ErrStoreRead, "connection refused")}
	chat := &fakeChat{}
	svc := New(st, chat, &config.RAGConfig{})

	_, err := svc.Answer(context.Background(), "What are the quiet hours?")
	assert.ErrorIs(t, err, errs.ErrProcessing)
	assert.ErrorIs(t, err, errs.ErrStoreRead)
	assert.Zero(t, chat.calls)
}

func TestAnswerGenerationFailure(t *testing.T) {
	st := &fakeStore{results: fenceResults()}
	chat := &fakeChat{err: context.DeadlineExceeded}
	svc := New(st, chat, &config.RAGConfig{})

	answer, err := svc.Answer(context.Background(), "What are the quiet hours?")
	assert.Nil(t, answer)
	assert.ErrorIs(t, err, errs.ErrProcessing)
}

func TestAnswerDefaults(t *testing.T) {
	st := &fakeStore{}
	chat := &fakeChat{answer: "nothing in context"}
	svc := New(st, chat, &config.RAGConfig{})

	_, err := svc.Answer(context.Background(), "Anything?")
	require.NoError(t, err)
	assert.Equal(t, 10, st.lastK)
}
