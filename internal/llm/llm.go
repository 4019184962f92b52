// Package llm wraps hosted chat-completion models behind a single
// two-message (system, user) generation call.
package llm

import (
	"context"

	"legal-rag/internal/config"
	"legal-rag/internal/errs"
)

// ChatModel generates an answer from a system instruction and a user
// message. The call is expected to be bounded by the caller's context.
type ChatModel interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// New builds the chat model selected by the config provider.
func New(ctx context.Context, cfg *config.LLMConfig) (ChatModel, error) {
	switch cfg.Provider {
	case "google", "":
		return NewGemini(ctx, cfg.APIKey, cfg.Model)
	case "openai":
		return NewOpenAI(cfg)
	default:
		return nil, errs.New(errs.ErrConfig, "unknown chat provider: "+cfg.Provider)
	}
}
