package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"legal-rag/internal/config"
	"legal-rag/internal/errs"
)

// OpenAI calls any OpenAI-compatible chat-completion endpoint.
type OpenAI struct {
	llm *openai.LLM
}

func NewOpenAI(cfg *config.LLMConfig) (*OpenAI, error) {
	llm, err := openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithToken(strings.TrimPrefix(cfg.APIKey, "Bearer ")),
		openai.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, errs.Wrap(errs.ErrConfig, err, "initializing openai llm")
	}
	return &OpenAI{llm: llm}, nil
}

func (o *OpenAI) Generate(ctx context.Context, system, user string) (string, error) {
	messages := []llms.MessageContent{
		{Role: llms.ChatMessageTypeSystem, Parts: []llms.ContentPart{llms.TextContent{Text: system}}},
		{Role: llms.ChatMessageTypeHuman, Parts: []llms.ContentPart{llms.TextContent{Text: user}}},
	}
	resp, err := o.llm.GenerateContent(ctx, messages)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("model returned no choices")
	}
	return resp.Choices[0].Content, nil
}
