package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

type straicoCompleter struct {
	httpClient *http.Client
	apiKey     string
	model      string
	endpoint   string
}

type straicoRequest struct {
	Models  []string `json:"models"`
	Message string   `json:"message"`
}

type straicoResponse struct {
	Data struct {
		Completions map[string]struct {
			Completion struct {
				Choices []struct {
					Message struct {
						Content *string `json:"content"`
					} `json:"message"`
				} `json:"choices"`
			} `json:"completion"`
		} `json:"completions"`
	} `json:"data"`
}

// NewStraicoCompleter talks to the Straico prompt completion endpoint.
func NewStraicoCompleter(apiKey, model, endpoint string, timeout time.Duration) Completer {
	return &straicoCompleter{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     apiKey,
		model:      model,
		endpoint:   endpoint,
	}
}

func (s *straicoCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(straicoRequest{
		Models:  []string{s.model},
		Message: prompt,
	})
	if err != nil {
		return "", fmt.Errorf("%w: failed to encode request: %v", ErrLLMRequestFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: failed to build request: %v", ErrLLMRequestFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Printf("❌ Straico request error: %v\n", err)
		return "", fmt.Errorf("%w: %v", ErrLLMRequestFailed, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response: %v", ErrLLMRequestFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("❌ Straico returned status %d\n", resp.StatusCode)
		return "", fmt.Errorf("%w: status %d: %s", ErrLLMRequestFailed, resp.StatusCode, truncateRunes(string(payload), 200))
	}

	var envelope straicoResponse
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return "", fmt.Errorf("%w: malformed response: %v", ErrLLMRequestFailed, err)
	}

	completion, ok := envelope.Data.Completions[s.model]
	if !ok {
		return "", fmt.Errorf("%w: no completion for model %s", ErrLLMRequestFailed, s.model)
	}
	if len(completion.Completion.Choices) == 0 || completion.Completion.Choices[0].Message.Content == nil {
		return "", fmt.Errorf("%w: completion has no message content", ErrLLMRequestFailed)
	}

	return *completion.Completion.Choices[0].Message.Content, nil
}
