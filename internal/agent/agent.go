// Package agent holds the prompt-template agents that turn clinical and
// kitchen data into model instructions and decode the structured replies.
package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tmc/langchaingo/prompts"

	"github.com/Alijeyrad/nutriguard_backend/pkg/llm"
	"github.com/Alijeyrad/nutriguard_backend/pkg/observability"
)

// Agent pairs one prompt template with the model settings used to run it.
type Agent struct {
	name    string
	gen     llm.Generator
	prompt  prompts.PromptTemplate
	opts    llm.Options
	metrics *observability.AgentMetrics
}

func newAgent(name string, gen llm.Generator, tmpl string, vars []string, opts llm.Options, metrics *observability.AgentMetrics) *Agent {
	if metrics == nil {
		metrics = observability.NewAgentMetrics()
	}
	return &Agent{
		name: name,
		gen:  gen,
		prompt: prompts.PromptTemplate{
			Template:       tmpl,
			InputVariables: vars,
			TemplateFormat: prompts.TemplateFormatGoTemplate,
		},
		opts:    opts,
		metrics: metrics,
	}
}

func (a *Agent) Name() string {
	return a.name
}

// Render fills the template with values.
func (a *Agent) Render(values map[string]any) (string, error) {
	text, err := a.prompt.Format(values)
	if err != nil {
		return "", fmt.Errorf("%s: render prompt: %w", a.name, err)
	}
	return text, nil
}

// Invoke renders the prompt, calls the model and decodes its JSON reply.
// Decode failures surface as *ParseError and are not retried.
func (a *Agent) Invoke(ctx context.Context, values map[string]any) (result map[string]any, err error) {
	ctx, done := a.metrics.Start(ctx, a.name)
	defer func() { done(err) }()

	text, err := a.Render(values)
	if err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "agent: invoking model", "agent", a.name, "search", a.opts.Search)

	reply, err := a.gen.Generate(ctx, text, a.opts)
	if err != nil {
		return nil, fmt.Errorf("%s: generate: %w", a.name, err)
	}

	result, err = ParseJSON(reply)
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			slog.ErrorContext(ctx, "agent: JSON parse error", "agent", a.name, "err", pe.Err, "raw", pe.Sample)
		}
		return nil, err
	}
	return result, nil
}
