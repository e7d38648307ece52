// Package reqctx carries request-scoped metadata through context.Context.
//
// The HTTP request-id middleware stores a RequestMeta for every request:
//
//	ctx = reqctx.WithRequestMeta(ctx, &reqctx.RequestMeta{
//	    RequestID:   "abc-123",
//	    ClientIP:    "192.168.1.1",
//	    RequestedAt: time.Now(),
//	})
//
// Services never read it directly; the logger picks the request id up from
// the context passed to slog's *Context functions.
package reqctx
