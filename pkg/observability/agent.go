package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// AgentMetrics instruments model-backed agent invocations. Instruments come
// from the global meter provider, so they start reporting once
// Start has run.
type AgentMetrics struct {
	tracer   trace.Tracer
	calls    metric.Int64Counter
	duration metric.Float64Histogram
}

func NewAgentMetrics() *AgentMetrics {
	meter := otel.Meter(tracerName)

	calls, _ := meter.Int64Counter(
		"agent_invocation_count",
		metric.WithDescription("Total number of agent invocations by outcome"),
		metric.WithUnit("{invocation}"),
	)
	duration, _ := meter.Float64Histogram(
		"agent_invocation_duration_ms",
		metric.WithDescription("Agent invocation latency in milliseconds"),
		metric.WithUnit("ms"),
	)

	return &AgentMetrics{
		tracer:   otel.Tracer(tracerName),
		calls:    calls,
		duration: duration,
	}
}

// Start opens a span for one invocation of agent. The returned func must be
// called with the invocation's outcome error.
func (m *AgentMetrics) Start(ctx context.Context, agent string) (context.Context, func(err error)) {
	ctx, span := m.tracer.Start(ctx, "agent."+agent,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("agent.name", agent)),
	)
	start := time.Now()

	return ctx, func(err error) {
		outcome := "ok"
		if err != nil {
			outcome = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()

		attrs := metric.WithAttributes(
			attribute.String("agent.name", agent),
			attribute.String("outcome", outcome),
		)
		m.calls.Add(ctx, 1, attrs)
		m.duration.Record(ctx, float64(time.Since(start).Microseconds())/1000, attrs)
	}
}
