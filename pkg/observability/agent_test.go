package observability

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	otelcodes "go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestAgentMetrics_RecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	m := NewAgentMetrics()

	_, done := m.Start(context.Background(), "diet_planner")
	done(nil)

	_, done = m.Start(context.Background(), "safety_inspector")
	done(errors.New("upstream down"))

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Name() != "agent.diet_planner" {
		t.Errorf("unexpected span name %q", spans[0].Name())
	}
	if spans[1].Status().Code != otelcodes.Error {
		t.Errorf("expected error status, got %v", spans[1].Status().Code)
	}
}
