// Package llm talks to generative-model providers.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/Alijeyrad/nutriguard_backend/config"
)

var (
	ErrNotConfigured = errors.New("llm: provider not configured")
	ErrEmptyResponse = errors.New("llm: empty response")
)

// Options tune a single generation call.
type Options struct {
	Temperature float64
	// Search lets the model ground its answer with web search where the
	// provider supports it.
	Search bool
}

// Generator turns a prompt into model text.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
}

// StatusError is a non-2xx answer from a provider.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("llm: provider returned %d: %s", e.StatusCode, e.Body)
}

// Retryable reports whether the request may succeed if sent again.
func (e *StatusError) Retryable() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}

// New builds the generator selected by cfg.Provider. A disabled or keyless
// configuration yields a generator that always fails with ErrNotConfigured.
func New(ctx context.Context, cfg config.AIConfig) (Generator, error) {
	if !cfg.Enabled || cfg.APIKey == "" {
		return disabled{}, nil
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	switch strings.ToLower(cfg.Provider) {
	case "", "gemini":
		return NewGemini(GeminiConfig{
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			BaseURL:    cfg.BaseURL,
			MaxRetries: cfg.MaxRetries,
			Timeout:    timeout,
		}), nil
	case "googleai":
		return NewGoogleAI(ctx, cfg.APIKey, cfg.Model, cfg.MaxRetries)
	case "openai":
		return NewOpenAI(cfg.APIKey, cfg.Model, cfg.BaseURL, cfg.MaxRetries)
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", cfg.Provider)
	}
}

type disabled struct{}

func (disabled) Generate(context.Context, string, Options) (string, error) {
	return "", ErrNotConfigured
}

// retry runs op until it succeeds, returns a permanent error, or maxRetries
// additional attempts have been spent.
func retry(ctx context.Context, b backoff.BackOff, maxRetries int, op func() error) error {
	if maxRetries < 0 {
		maxRetries = 0
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(maxRetries)), ctx)
	return backoff.Retry(op, policy)
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 8 * time.Second
	b.MaxElapsedTime = 0
	return b
}
