// Package rag answers questions grounded in retrieved document chunks.
package rag

import (
	"context"
	"fmt"
	"strings"
	"time"

	"legal-rag/internal/config"
	"legal-rag/internal/errs"
	"legal-rag/internal/llm"
	"legal-rag/internal/models"
	"legal-rag/internal/store"
)

// Service performs retrieval-augmented generation: similarity search,
// grounding prompt assembly, and a bounded chat-model call. Stateless
// per request and safe for concurrent use.
type Service struct {
	store   store.VectorStore
	chat    llm.ChatModel
	topK    int
	timeout time.Duration
}

func New(st store.VectorStore, chat llm.ChatModel, cfg *config.RAGConfig) *Service {
	topK := cfg.TopK
	if topK <= 0 {
		topK = 10
	}
	timeout := time.Duration(cfg.AnswerTimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Service{store: st, chat: chat, topK: topK, timeout: timeout}
}

// Answer validates the question, retrieves the top-K chunks, invokes the
// chat model with the grounding prompt, and returns the answer plus the
// retrieved chunks as sources. Retrieval and generation failures surface
// as errs.ErrProcessing; no partial answer is returned.
func (s *Service) Answer(ctx context.Context, question string) (*models.Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, errs.New(errs.ErrValidation, "message is required and must be a non-empty string")
	}

	results, err := s.store.SimilaritySearch(ctx, question, s.topK)
	if err != nil {
		return nil, errs.Wrap(errs.ErrProcessing, err, "retrieving context")
	}

	system := buildSystemPrompt(results)

	// The chat call is the dominant latency contributor; bound it.
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	response, err := s.chat.Generate(cctx, system, question)
	if err != nil {
		return nil, errs.Wrap(errs.ErrProcessing, err, "generating answer")
	}

	sources := make([]models.Source, len(results))
	for i, r := range results {
		sources[i] = models.Source{Content: r.Chunk.Content, Metadata: r.Chunk.Metadata}
	}
	return &models.Answer{Response: response, Sources: sources}, nil
}

func buildSystemPrompt(results []models.SimilarityResult) string {
	blocks := make([]string, len(results))
	for i, r := range results {
		blocks[i] = fmt.Sprintf(models.DocumentHeader, i+1, r.Chunk.Content)
	}
	return fmt.Sprintf(models.SystemPromptTemplate, strings.Join(blocks, models.ContextSeparator))
}
