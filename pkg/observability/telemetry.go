package observability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"

	"github.com/Alijeyrad/nutriguard_backend/config"
)

const shutdownTimeout = 5 * time.Second

// Provider owns the SDK providers installed as the otel globals.
type Provider struct {
	tracer *trace.TracerProvider
	meter  *metric.MeterProvider
}

// Start installs global tracer and meter providers for the service. Spans are
// always recorded so trace ids reach logs and response headers; they are
// exported over OTLP/HTTP only when tracing is enabled. Metrics are read by
// the Prometheus exporter behind the /metrics route.
func Start(ctx context.Context, cfg config.ObservabilityConfig, env string) (*Provider, error) {
	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes("",
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironmentName(env),
	))
	if err != nil {
		return nil, fmt.Errorf("observability: resource: %w", err)
	}

	rate := cfg.Tracing.SamplingRate
	if rate <= 0 {
		rate = 1
	}
	tp := trace.NewTracerProvider(
		trace.WithResource(res),
		trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(rate))),
	)
	if cfg.Tracing.Enabled && cfg.Tracing.OTLPEndpoint != "" {
		exp, err := spanExporter(ctx, cfg.Tracing)
		if err != nil {
			return nil, err
		}
		tp.RegisterSpanProcessor(trace.NewBatchSpanProcessor(exp))
	}

	reader, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("observability: prometheus exporter: %w", err)
	}
	mp := metric.NewMeterProvider(metric.WithResource(res), metric.WithReader(reader))

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))

	return &Provider{tracer: tp, meter: mp}, nil
}

func spanExporter(ctx context.Context, cfg config.TracingConfig) (trace.SpanExporter, error) {
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.OTLPEndpoint)}
	if cfg.OTLPInsecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exp, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("observability: otlp exporter: %w", err)
	}
	return exp, nil
}

// Shutdown flushes pending spans and stops both providers.
func (p *Provider) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	return errors.Join(p.tracer.Shutdown(ctx), p.meter.Shutdown(ctx))
}
