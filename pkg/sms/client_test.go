package sms

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/Alijeyrad/nutriguard_backend/config"
)

func TestNewFromConfig_Disabled(t *testing.T) {
	client, err := NewFromConfig(config.SMSConfig{Enabled: false})
	if err != nil {
		t.Fatalf("NewFromConfig failed: %v", err)
	}
	if client.IsEnabled() {
		t.Error("Expected client to be disabled")
	}
}

func TestNewFromConfig_EnabledWithoutAPIKey(t *testing.T) {
	cfg := config.SMSConfig{
		Enabled: true,
		SMSIR:   config.SMSIRConfig{TemplateID: "alert-template"},
	}
	if _, err := NewFromConfig(cfg); err == nil {
		t.Error("Expected error when API key is missing")
	}
}

func TestNewFromConfig_EnabledWithAPIKey(t *testing.T) {
	cfg := config.SMSConfig{
		Enabled: true,
		SMSIR: config.SMSIRConfig{
			APIKey:     "test-api-key",
			SecretKey:  "test-secret-key",
			TemplateID: "alert-template",
		},
	}

	client, err := NewFromConfig(cfg)
	if err != nil {
		t.Fatalf("NewFromConfig failed: %v", err)
	}
	if !client.IsEnabled() {
		t.Error("Expected client to be enabled")
	}
	if client.templateID != "alert-template" {
		t.Errorf("templateID = %q", client.templateID)
	}
}

func TestSendAlert_DisabledClient(t *testing.T) {
	client := &Client{enabled: false}
	if err := client.SendAlert(context.Background(), "+15551234567", "Low Intake", "msg"); err != nil {
		t.Errorf("Expected no error for disabled client, got: %v", err)
	}
}

func TestSendAlert_Validation(t *testing.T) {
	tests := []struct {
		name   string
		client *Client
		phone  string
	}{
		{"empty phone number", &Client{enabled: true, templateID: "t"}, ""},
		{"missing template", &Client{enabled: true}, "+15551234567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.client.SendAlert(context.Background(), tt.phone, "Low Intake", "msg"); err == nil {
				t.Error("Expected error but got nil")
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	got := truncate(strings.Repeat("é", 200), maxParamRunes)
	if n := utf8.RuneCountInString(got); n != maxParamRunes {
		t.Errorf("rune count = %d, want %d", n, maxParamRunes)
	}
}
