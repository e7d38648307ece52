package reqctx

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRequestMetaRoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, RequestIDFromContext(ctx))

	_, found := RequestMetaFromContext(ctx)
	assert.False(t, found)

	meta := &RequestMeta{RequestID: "req-1", ClientIP: "10.0.0.1", RequestedAt: time.Now()}
	ctx = WithRequestMeta(ctx, meta)

	got, found := RequestMetaFromContext(ctx)
	assert.True(t, found)
	assert.Same(t, meta, got)
	assert.Equal(t, "req-1", RequestIDFromContext(ctx))
}

func TestRequestMetaNilValue(t *testing.T) {
	ctx := WithRequestMeta(context.Background(), nil)
	_, found := RequestMetaFromContext(ctx)
	assert.False(t, found)
}
