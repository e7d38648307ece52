package email

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

func TestBuildAlertEmail(t *testing.T) {
	msg := BuildAlertEmail(AlertEmailData{
		To:        []string{"dietitian@example.org"},
		AlertID:   12,
		Type:      "Low Intake",
		Message:   "Patient 7 consumed less than 50% of meal",
		CreatedAt: time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC),
	})

	assert.Equal(t, "[NutriGuard] Low Intake alert #12", msg.Subject)
	assert.Contains(t, msg.TextBody, "Patient 7 consumed less than 50% of meal")
	assert.Contains(t, msg.TextBody, "2025-03-10 08:30 UTC")
	assert.Contains(t, msg.HTMLBody, "#12")
}

func TestBuildMessage_Validation(t *testing.T) {
	base := Message{To: []string{"a@example.org"}, Subject: "s", TextBody: "b"}

	tests := []struct {
		name   string
		from   string
		mutate func(m *Message)
	}{
		{name: "missing from", from: "", mutate: func(m *Message) {}},
		{name: "blank recipients", from: "noreply@example.org", mutate: func(m *Message) { m.To = []string{" ", ""} }},
		{name: "missing subject", from: "noreply@example.org", mutate: func(m *Message) { m.Subject = "  " }},
		{name: "missing body", from: "noreply@example.org", mutate: func(m *Message) { m.TextBody = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := base
			tt.mutate(&m)
			_, err := buildMessage(tt.from, m)
			var invalid ErrInvalidMessage
			assert.ErrorAs(t, err, &invalid)
		})
	}

	msg, err := buildMessage("noreply@example.org", Message{To: []string{" a@example.org ", ""}, Subject: "s", TextBody: "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a@example.org"}, msg.GetHeader("To"))
}

func TestSend_Disabled(t *testing.T) {
	c, err := New(Config{})
	require.NoError(t, err)
	assert.False(t, c.Enabled())

	var disabled ErrDisabled
	err = c.Send(context.Background(), Message{Subject: "s", TextBody: "b"})
	assert.ErrorAs(t, err, &disabled)
}

func TestNew_EnabledRequiresHostAndFrom(t *testing.T) {
	_, err := New(Config{Enabled: true, From: "noreply@example.org"})
	assert.Error(t, err)

	_, err = New(Config{Enabled: true, SMTPHost: "smtp.example.org"})
	assert.Error(t, err)
}

func newTestClient(t *testing.T, send func(...*gomail.Message) error) *Client {
	t.Helper()
	c, err := New(Config{Enabled: true, From: "noreply@example.org", SMTPHost: "smtp.example.org", SMTPPort: 587})
	require.NoError(t, err)
	c.send = send
	return c
}

func TestSend_DeliversMessage(t *testing.T) {
	var sent []*gomail.Message
	c := newTestClient(t, func(msgs ...*gomail.Message) error {
		sent = append(sent, msgs...)
		return nil
	})

	err := c.Send(context.Background(), Message{To: []string{"ward@example.org"}, Subject: "Low Intake", TextBody: "b"})
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, []string{"noreply@example.org"}, sent[0].GetHeader("From"))
	assert.Equal(t, []string{"Low Intake"}, sent[0].GetHeader("Subject"))
}

func TestSend_WrapsTransportErrors(t *testing.T) {
	c := newTestClient(t, func(...*gomail.Message) error { return errors.New("535 auth failed") })

	err := c.Send(context.Background(), Message{To: []string{"ward@example.org"}, Subject: "s", TextBody: "b"})
	var sendErr ErrSend
	require.ErrorAs(t, err, &sendErr)
	assert.Contains(t, err.Error(), "535 auth failed")
}

func TestSend_StopsAtContextDeadline(t *testing.T) {
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	c := newTestClient(t, func(...*gomail.Message) error {
		<-release
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := c.Send(ctx, Message{To: []string{"ward@example.org"}, Subject: "s", TextBody: "b"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDialer_TLSModes(t *testing.T) {
	smtps := dialer(Config{SMTPHost: "smtp.example.org", SMTPPort: 465, SMTPUseTLS: true})
	assert.True(t, smtps.SSL)
	assert.Equal(t, "smtp.example.org", smtps.TLSConfig.ServerName)

	starttls := dialer(Config{SMTPHost: "smtp.example.org", SMTPPort: 587, SMTPUseTLS: true})
	assert.False(t, starttls.SSL)
	require.NotNil(t, starttls.TLSConfig)

	plain := dialer(Config{SMTPHost: "localhost", SMTPPort: 25})
	assert.False(t, plain.SSL)
	assert.Nil(t, plain.TLSConfig)
}
