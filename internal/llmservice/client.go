package llmservice

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"diagram-gen/internal/config"
)

// Completer abstracts the LLM call so tests can supply a mock. One blocking
// call per invocation: no retry, no streaming, no rate limiting.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Client calls an OpenAI-compatible chat completions endpoint
// (e.g. OpenRouter) via langchaingo.
type Client struct {
	cfg *config.LLMConfig
}

func NewClient(cfg *config.LLMConfig) (*Client, error) {
	if cfg == nil || cfg.Model == "" {
		return nil, errors.New("llm config requires a model")
	}
	return &Client{cfg: cfg}, nil
}

func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	log.Debug().Str("model", c.cfg.Model).Int("prompt_length", len(prompt)).Msg("Generating content")

	llm, err := openai.New(
		openai.WithBaseURL(c.cfg.BaseURL),
		openai.WithToken(strings.TrimPrefix(c.cfg.Key, "Bearer ")),
		openai.WithModel(c.cfg.Model),
	)
	if err != nil {
		return "", err
	}

	messages := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextContent{Text: prompt}},
		},
	}

	res, err := llm.GenerateContent(ctx, messages)
	if err != nil {
		return "", err
	}
	if len(res.Choices) == 0 {
		return "", errors.New("llm returned no choices")
	}
	return res.Choices[0].Content, nil
}
