package observability

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/Alijeyrad/nutriguard_backend/pkg/observability"

// TraceHeader carries the trace id back to the client.
const TraceHeader = "X-Trace-Id"

// FiberMiddleware opens a server span per request, continuing any W3C trace
// context in the headers, and records request count and latency by route.
func FiberMiddleware() fiber.Handler {
	tracer := otel.Tracer(tracerName)
	meter := otel.Meter(tracerName)

	requests, _ := meter.Int64Counter("nutriguard_http_requests",
		metric.WithDescription("HTTP requests served"),
		metric.WithUnit("{request}"))
	latency, _ := meter.Float64Histogram("nutriguard_http_request_duration",
		metric.WithDescription("HTTP request latency"),
		metric.WithUnit("ms"))

	return func(c fiber.Ctx) error {
		ctx := otel.GetTextMapPropagator().Extract(c.Context(), propagation.HeaderCarrier(c.GetReqHeaders()))
		ctx, span := tracer.Start(ctx, c.Method(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", c.Method()),
				attribute.String("client.address", c.IP()),
				attribute.String("user_agent.original", c.Get(fiber.HeaderUserAgent)),
			))
		defer span.End()

		c.SetContext(ctx)
		if sc := span.SpanContext(); sc.HasTraceID() {
			c.Set(TraceHeader, sc.TraceID().String())
		}

		start := time.Now()
		err := c.Next()
		elapsed := float64(time.Since(start).Microseconds()) / 1000

		// The matched route is only known once the router has run.
		route := c.Route().Path
		status := c.Response().StatusCode()
		span.SetName(c.Method() + " " + route)
		span.SetAttributes(
			attribute.String("http.route", route),
			attribute.Int("http.response.status_code", status),
		)
		if status >= fiber.StatusInternalServerError {
			span.SetStatus(codes.Error, strconv.Itoa(status))
			if err != nil {
				span.RecordError(err)
			}
		}

		attrs := metric.WithAttributes(
			attribute.String("method", c.Method()),
			attribute.String("route", route),
			attribute.Int("status", status),
		)
		requests.Add(ctx, 1, attrs)
		latency.Record(ctx, elapsed, attrs)

		return err
	}
}
