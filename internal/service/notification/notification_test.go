package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/nutriguard_backend/config"
	"github.com/Alijeyrad/nutriguard_backend/internal/repo"
	"github.com/Alijeyrad/nutriguard_backend/pkg/email"
)

type fakeMailer struct {
	sent []email.Message
	err  error
}

func (f *fakeMailer) Enabled() bool { return true }

func (f *fakeMailer) Send(_ context.Context, m email.Message) error {
	f.sent = append(f.sent, m)
	return f.err
}

type fakeTexter struct {
	to  []string
	err map[string]error
}

func (f *fakeTexter) IsEnabled() bool { return true }

func (f *fakeTexter) SendAlert(_ context.Context, phone, _, _ string) error {
	f.to = append(f.to, phone)
	return f.err[phone]
}

func testAlert() *repo.Alert {
	return &repo.Alert{
		ID:        4,
		Type:      "Safety Violation",
		Message:   "Failed inspection in Kitchen",
		Status:    repo.AlertActive,
		CreatedAt: time.Now(),
	}
}

func TestNotifyAlert_FansOut(t *testing.T) {
	mail := &fakeMailer{}
	text := &fakeTexter{}
	cfg := config.NotificationConfig{
		Enabled:         true,
		EmailRecipients: []string{"kitchen@example.org"},
		SMSRecipients:   []string{"+15550000001", "+15550000002"},
	}

	err := New(cfg, "NutriGuard", mail, text).NotifyAlert(context.Background(), testAlert())
	require.NoError(t, err)

	require.Len(t, mail.sent, 1)
	assert.Equal(t, []string{"kitchen@example.org"}, mail.sent[0].To)
	assert.Equal(t, "[NutriGuard] Safety Violation alert #4", mail.sent[0].Subject)
	assert.Equal(t, []string{"+15550000001", "+15550000002"}, text.to)
}

func TestNotifyAlert_ContinuesPastFailures(t *testing.T) {
	mail := &fakeMailer{err: errors.New("smtp down")}
	text := &fakeTexter{err: map[string]error{"+15550000001": errors.New("quota")}}
	cfg := config.NotificationConfig{
		Enabled:         true,
		EmailRecipients: []string{"kitchen@example.org"},
		SMSRecipients:   []string{"+15550000001", "+15550000002"},
	}

	err := New(cfg, "", mail, text).NotifyAlert(context.Background(), testAlert())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp down")
	assert.Contains(t, err.Error(), "quota")
	assert.Len(t, text.to, 2)
}

func TestNotifyAlert_Disabled(t *testing.T) {
	mail := &fakeMailer{}
	err := New(config.NotificationConfig{EmailRecipients: []string{"a@example.org"}}, "", mail, nil).
		NotifyAlert(context.Background(), testAlert())
	require.NoError(t, err)
	assert.Empty(t, mail.sent)
}

func TestNotifyAlert_Nil(t *testing.T) {
	err := New(config.NotificationConfig{Enabled: true}, "", nil, nil).NotifyAlert(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNilAlert)
}
