package llm

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/openai"
)

// LangChain adapts any langchaingo model to Generator. Search is not
// supported through this path and is ignored.
type LangChain struct {
	model      llms.Model
	name       string
	maxRetries int
	newBackOff func() backoff.BackOff
}

func NewLangChain(model llms.Model, name string, maxRetries int) *LangChain {
	return &LangChain{model: model, name: name, maxRetries: maxRetries, newBackOff: defaultBackOff}
}

func NewGoogleAI(ctx context.Context, apiKey, model string, maxRetries int) (*LangChain, error) {
	client, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("llm: create googleai client: %w", err)
	}
	return NewLangChain(client, model, maxRetries), nil
}

func NewOpenAI(apiKey, model, baseURL string, maxRetries int) (*LangChain, error) {
	opts := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithModel(model),
	}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}
	client, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("llm: create openai client: %w", err)
	}
	return NewLangChain(client, model, maxRetries), nil
}

func (l *LangChain) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	var text string
	err := retry(ctx, l.newBackOff(), l.maxRetries, func() error {
		resp, err := l.model.GenerateContent(ctx, []llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeHuman, prompt),
		}, llms.WithTemperature(opts.Temperature))
		if err != nil {
			return fmt.Errorf("llm: %s generate: %w", l.name, err)
		}
		if resp == nil || len(resp.Choices) == 0 || resp.Choices[0].Content == "" {
			return backoff.Permanent(ErrEmptyResponse)
		}
		text = resp.Choices[0].Content
		return nil
	})
	if err != nil {
		return "", err
	}
	return text, nil
}
