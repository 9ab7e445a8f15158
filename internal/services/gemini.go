package services

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"google.golang.org/genai"
)

type geminiCompleter struct {
	client    *genai.Client
	modelName string
	maxTokens int32
}

// NewGeminiCompleter talks to the public Gemini API unless baseURL is set.
func NewGeminiCompleter(ctx context.Context, apiKey, model, baseURL string, timeout time.Duration, maxTokens int) (Completer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  &http.Client{Timeout: timeout},
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiCompleter{
		client:    client,
		modelName: model,
		maxTokens: int32(maxTokens),
	}, nil
}

// Complete implements Completer.
func (g *geminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: g.maxTokens,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		log.Printf("❌ Gemini API error: %v\n", err)
		return "", fmt.Errorf("%w: %v", ErrLLMRequestFailed, err)
	}

	if resp == nil {
		return "", fmt.Errorf("%w: nil response", ErrLLMRequestFailed)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: no text content in response", ErrLLMRequestFailed)
	}

	return text, nil
}
