package sms

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/Alijeyrad/nutriguard_backend/config"
	"github.com/arsmn/go-smsir/smsir"
)

// maxParamRunes keeps template parameters within a single SMS segment.
const maxParamRunes = 120

var (
	ErrPhoneRequired    = errors.New("phone number is required")
	ErrTemplateRequired = errors.New("template ID is required")
)

// Client sends templated SMS through sms.ir.
type Client struct {
	client     *smsir.Client
	templateID string
	enabled    bool
}

// NewFromConfig returns a no-op client when SMS is disabled.
func NewFromConfig(cfg config.SMSConfig) (*Client, error) {
	if !cfg.Enabled {
		return &Client{enabled: false}, nil
	}

	if cfg.SMSIR.APIKey == "" {
		return nil, fmt.Errorf("sms.ir API key required when SMS enabled")
	}

	client := smsir.NewClient().WithAuthentication(cfg.SMSIR.APIKey, cfg.SMSIR.SecretKey)

	return &Client{
		client:     client,
		templateID: cfg.SMSIR.TemplateID,
		enabled:    true,
	}, nil
}

// SendAlert delivers an alert through the configured UltraFast template. The
// template must declare "type" and "message" parameters.
func (c *Client) SendAlert(ctx context.Context, phoneNumber, alertType, message string) error {
	if !c.enabled {
		return nil
	}
	if phoneNumber == "" {
		return ErrPhoneRequired
	}
	if c.templateID == "" {
		return ErrTemplateRequired
	}

	req := &smsir.UltraFastSendRequest{
		Mobile:     phoneNumber,
		TemplateID: c.templateID,
		Parameters: []smsir.UltraFastParameter{
			{Key: "type", Value: alertType},
			{Key: "message", Value: truncate(message, maxParamRunes)},
		},
	}

	if _, err := c.client.Verification.UltraFastSend(ctx, req); err != nil {
		return fmt.Errorf("sms.ir send failed: %w", err)
	}
	return nil
}

func (c *Client) IsEnabled() bool {
	return c.enabled
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}
