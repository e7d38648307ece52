package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type GeminiConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	MaxRetries int
	Timeout    time.Duration
}

// Gemini calls the generateContent REST endpoint directly so the
// google_search tool can be attached to a request.
type Gemini struct {
	cfg        GeminiConfig
	httpClient *http.Client
	newBackOff func() backoff.BackOff
}

func NewGemini(cfg GeminiConfig) *Gemini {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultGeminiBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-pro"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	return &Gemini{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		newBackOff: defaultBackOff,
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig map[string]any   `json:"generationConfig"`
	Tools            []map[string]any `json:"tools,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (g *Gemini) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	payload := geminiRequest{
		Contents:         []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: map[string]any{"temperature": opts.Temperature},
	}
	if opts.Search {
		payload.Tools = []map[string]any{{"google_search": map[string]any{}}}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("llm: encode request: %w", err)
	}

	// The key travels in a header; transport errors quote the URL verbatim.
	endpoint := fmt.Sprintf("%s/models/%s:generateContent",
		strings.TrimRight(g.cfg.BaseURL, "/"), url.PathEscape(g.cfg.Model))

	var text string
	err = retry(ctx, g.newBackOff(), g.cfg.MaxRetries, func() error {
		var callErr error
		text, callErr = g.call(ctx, endpoint, body)
		var se *StatusError
		if errors.As(callErr, &se) && !se.Retryable() {
			return backoff.Permanent(callErr)
		}
		if errors.Is(callErr, ErrEmptyResponse) {
			return backoff.Permanent(callErr)
		}
		return callErr
	})
	if err != nil {
		return "", err
	}
	return text, nil
}

func (g *Gemini) call(ctx context.Context, endpoint string, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf("llm: build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.cfg.APIKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm: gemini request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("llm: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := string(raw)
		if len(msg) > 512 {
			msg = msg[:512]
		}
		return "", &StatusError{StatusCode: resp.StatusCode, Body: msg}
	}

	var out geminiResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", backoff.Permanent(fmt.Errorf("llm: decode response: %w", err))
	}
	if len(out.Candidates) == 0 {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	if sb.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}
