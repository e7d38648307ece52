package reqctx

import (
	"context"
	"time"
)

// ctxKey is a private type for context keys to prevent collisions.
type ctxKey int

const keyRequestMeta ctxKey = iota

// RequestMeta holds per-request metadata set by HTTP middleware.
type RequestMeta struct {
	// RequestID is the X-Request-Id header value, or a generated UUID v4.
	RequestID string

	// ClientIP may come from X-Forwarded-For or the direct connection.
	ClientIP string

	UserAgent   string
	RequestedAt time.Time
}

// WithRequestMeta stores RequestMeta in the context.
func WithRequestMeta(ctx context.Context, meta *RequestMeta) context.Context {
	return context.WithValue(ctx, keyRequestMeta, meta)
}

// RequestMetaFromContext retrieves RequestMeta from the context.
// Returns nil, false if not set.
func RequestMetaFromContext(ctx context.Context) (*RequestMeta, bool) {
	meta, ok := ctx.Value(keyRequestMeta).(*RequestMeta)
	return meta, ok && meta != nil
}

// RequestIDFromContext returns "" when no RequestMeta is set.
func RequestIDFromContext(ctx context.Context) string {
	if meta, ok := RequestMetaFromContext(ctx); ok {
		return meta.RequestID
	}
	return ""
}
