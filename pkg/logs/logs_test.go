package logs

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/nutriguard_backend/config"
	"github.com/Alijeyrad/nutriguard_backend/pkg/reqctx"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warn"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}

func TestLokiWriter(t *testing.T) {
	var got lokiPush
	var user string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/loki/api/v1/push", r.URL.Path)
		user, _, _ = r.BasicAuth()
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	cfg := &config.Config{}
	cfg.Server.Environment = "production"
	cfg.Logging.Output.Loki = config.LokiConfig{Enabled: true, Endpoint: srv.URL + "/", Username: "ops", Password: "pw"}

	lw := newLokiWriter(cfg)
	lw.now = func() time.Time { return time.Unix(0, 42) }

	n, err := lw.Write([]byte(`{"msg":"say \"hi\""}` + "\n"))
	require.NoError(t, err)
	assert.Equal(t, 20, n)
	assert.Equal(t, "ops", user)

	require.Len(t, got.Streams, 1)
	assert.Equal(t, map[string]string{"service": "nutriguard_backend", "env": "production"}, got.Streams[0].Stream)
	assert.Equal(t, [2]string{"42", `{"msg":"say \"hi\""}`}, got.Streams[0].Values[0])
}

func TestLokiWriter_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	cfg := &config.Config{}
	cfg.Logging.Output.Loki.Endpoint = srv.URL
	_, err := newLokiWriter(cfg).Write([]byte("x\n"))
	assert.Error(t, err)
}

func TestContextHandler_AddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(contextHandler{slog.NewJSONHandler(&buf, nil)}).With("service", "test")

	ctx := reqctx.WithRequestMeta(context.Background(), &reqctx.RequestMeta{RequestID: "rid-7"})
	logger.InfoContext(ctx, "hello")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "rid-7", rec["request_id"])
	assert.Equal(t, "test", rec["service"])
}

func TestMultiHandler_FansOut(t *testing.T) {
	var a, b bytes.Buffer
	h := multiHandler{
		slog.NewJSONHandler(&a, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewJSONHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	}
	logger := slog.New(h)

	logger.Info("info only")
	assert.Contains(t, a.String(), "info only")
	assert.Empty(t, b.String())

	logger.Error("both")
	assert.Contains(t, b.String(), "both")
	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug-1))
}
