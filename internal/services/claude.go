package services

import (
	"context"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type claudeCompleter struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

func NewClaudeCompleter(apiKey, model, baseURL string, timeout time.Duration, maxTokens int) Completer {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithRequestTimeout(timeout),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := anthropic.NewClient(opts...)

	return &claudeCompleter{
		client:    client,
		model:     model,
		maxTokens: int64(maxTokens),
	}
}

func (c *claudeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	response, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: prompt},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrLLMRequestFailed, err)
	}

	for _, content := range response.Content {
		if text := content.AsText().Text; text != "" {
			return text, nil
		}
	}

	return "", fmt.Errorf("%w: no text content in Claude response", ErrLLMRequestFailed)
}
