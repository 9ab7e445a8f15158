package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"alfredoptarigan/resume-ranker/internal/config"
)

// Completer sends one prompt to a language model and returns its raw reply.
// Every failure is reported as ErrLLMRequestFailed.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

const (
	ProviderStraico = "straico"
	ProviderGemini  = "gemini"
	ProviderOpenAI  = "openai"
	ProviderClaude  = "claude"
)

var defaultModels = map[string]string{
	ProviderStraico: config.DefaultLLMModel,
	ProviderGemini:  "gemini-2.5-flash",
	ProviderOpenAI:  "gpt-4o",
	ProviderClaude:  "claude-3-7-sonnet-latest",
}

// NewCompleter builds the Completer for cfg.Provider.
func NewCompleter(ctx context.Context, cfg config.LLMConfig) (Completer, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = ProviderStraico
	}

	model := cfg.Model
	if model == "" {
		model = defaultModels[provider]
	}

	if cfg.APIKey == "" {
		log.Printf("⚠️  No API key configured for LLM provider %s\n", provider)
	}

	var (
		completer Completer
		err       error
	)

	switch provider {
	case ProviderStraico:
		completer = NewStraicoCompleter(cfg.APIKey, model, cfg.Endpoint, cfg.Timeout)
	case ProviderGemini:
		completer, err = NewGeminiCompleter(ctx, cfg.APIKey, model, providerBaseURL(cfg.Endpoint), cfg.Timeout, cfg.MaxTokens)
	case ProviderOpenAI:
		completer = NewOpenAICompleter(cfg.APIKey, model, providerBaseURL(cfg.Endpoint), cfg.Timeout)
	case ProviderClaude:
		completer = NewClaudeCompleter(cfg.APIKey, model, providerBaseURL(cfg.Endpoint), cfg.Timeout, cfg.MaxTokens)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", provider)
	}
	if err != nil {
		return nil, err
	}

	log.Printf("🤖 LLM provider: %s (model: %s)\n", provider, model)

	if cfg.RequestsPerMinute > 0 {
		completer = NewRateLimitedCompleter(completer, cfg.RequestsPerMinute)
	}

	return completer, nil
}

// providerBaseURL ignores the Straico default endpoint, which is meaningless
// to the SDK-backed providers. Any other endpoint overrides their base URL.
func providerBaseURL(endpoint string) string {
	if endpoint == config.DefaultLLMEndpoint {
		return ""
	}
	return endpoint
}

type rateLimitedCompleter struct {
	next    Completer
	limiter *rate.Limiter
}

// NewRateLimitedCompleter paces calls to next at requestsPerMinute.
func NewRateLimitedCompleter(next Completer, requestsPerMinute int) Completer {
	return &rateLimitedCompleter{
		next:    next,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1),
	}
}

func (r *rateLimitedCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: rate limiter: %v", ErrLLMRequestFailed, err)
	}
	return r.next.Complete(ctx, prompt)
}
