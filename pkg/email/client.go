package email

import (
	"context"
	"crypto/tls"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/Alijeyrad/nutriguard_backend/config"
)

// implicitTLSPort is the SMTPS port; other ports upgrade with STARTTLS.
const implicitTLSPort = 465

// Client delivers alert mail over SMTP. A disabled client rejects every send
// with ErrDisabled.
type Client struct {
	from    string
	enabled bool
	timeout time.Duration
	send    func(...*gomail.Message) error
}

func NewFromCentral(cfg config.EmailConfig) (*Client, error) {
	return New(FromCentralConfig(cfg))
}

func New(cfg Config) (*Client, error) {
	c := &Client{from: strings.TrimSpace(cfg.From), enabled: cfg.Enabled, timeout: cfg.SMTPTimeout()}
	if !cfg.Enabled {
		return c, nil
	}
	if cfg.SMTPHost == "" {
		return nil, ErrInvalidMessage{Reason: "smtp host is required when email is enabled"}
	}
	if c.from == "" {
		return nil, ErrInvalidMessage{Reason: "from address is required when email is enabled"}
	}
	c.send = dialer(cfg).DialAndSend
	return c, nil
}

func dialer(cfg Config) *gomail.Dialer {
	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	d.SSL = cfg.SMTPUseTLS && cfg.SMTPPort == implicitTLSPort
	if cfg.SMTPUseTLS {
		d.TLSConfig = &tls.Config{ServerName: cfg.SMTPHost, MinVersion: tls.VersionTLS12}
	}
	return d
}

// Enabled reports whether Send will attempt delivery.
func (c *Client) Enabled() bool {
	return c.enabled
}

// Send delivers m, giving up when ctx ends or the SMTP timeout passes. gomail
// has no context support, so an abandoned dial finishes in the background.
func (c *Client) Send(ctx context.Context, m Message) error {
	if !c.enabled {
		return ErrDisabled{}
	}

	msg, err := buildMessage(c.from, m)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- c.send(msg) }()

	select {
	case err := <-done:
		if err != nil {
			return ErrSend{Provider: "smtp", Err: err}
		}
		return nil
	case <-ctx.Done():
		return ErrSend{Provider: "smtp", Err: ctx.Err()}
	}
}

func buildMessage(from string, m Message) (*gomail.Message, error) {
	if from == "" {
		return nil, ErrInvalidMessage{Reason: "from is required"}
	}
	to := cleanAddrs(m.To)
	if len(to) == 0 {
		return nil, ErrInvalidMessage{Reason: "at least one recipient is required"}
	}
	subject := strings.TrimSpace(m.Subject)
	if subject == "" {
		return nil, ErrInvalidMessage{Reason: "subject is required"}
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)

	text, htmlBody := strings.TrimSpace(m.TextBody) != "", strings.TrimSpace(m.HTMLBody) != ""
	switch {
	case text && htmlBody:
		msg.SetBody("text/plain", m.TextBody)
		msg.AddAlternative("text/html", m.HTMLBody)
	case htmlBody:
		msg.SetBody("text/html", m.HTMLBody)
	case text:
		msg.SetBody("text/plain", m.TextBody)
	default:
		return nil, ErrInvalidMessage{Reason: "a text or HTML body is required"}
	}
	return msg, nil
}

func cleanAddrs(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
