package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"
)

type openAICompleter struct {
	client *openai.Client
	model  string
}

// NewOpenAICompleter also serves OpenAI-compatible gateways when baseURL is set.
func NewOpenAICompleter(apiKey, model, baseURL string, timeout time.Duration) Completer {
	cfg := openai.DefaultConfig(apiKey)
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &openAICompleter{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (c *openAICompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrLLMRequestFailed, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no response choices", ErrLLMRequestFailed)
	}
	if resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: empty message content", ErrLLMRequestFailed)
	}
	return resp.Choices[0].Message.Content, nil
}
