// Package events publishes domain events to NATS.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nats-io/nats.go"

	"github.com/Alijeyrad/nutriguard_backend/internal/repo"
	"github.com/Alijeyrad/nutriguard_backend/pkg/constants"
)

// Publisher announces committed domain changes.
type Publisher interface {
	AlertCreated(ctx context.Context, alert *repo.Alert) error
}

// AlertSubject returns the subject an alert of the given type is published
// on, e.g. nutriguard.alert.created.low_intake.
func AlertSubject(alertType string) string {
	slug := strings.ToLower(strings.Join(strings.Fields(alertType), "_"))
	if slug == "" {
		slug = "unknown"
	}
	return constants.SubjectAlertCreated + "." + slug
}

type natsPublisher struct {
	nc *nats.Conn
}

// NewPublisher publishes over nc. A nil connection yields a publisher that
// drops every event.
func NewPublisher(nc *nats.Conn) Publisher {
	if nc == nil {
		return Nop{}
	}
	return &natsPublisher{nc: nc}
}

func (p *natsPublisher) AlertCreated(ctx context.Context, alert *repo.Alert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("marshal alert: %w", err)
	}
	subject := AlertSubject(alert.Type)
	if err := p.nc.Publish(subject, payload); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	slog.DebugContext(ctx, "events: alert published", "subject", subject, "alert_id", alert.ID)
	return nil
}

// Nop discards events.
type Nop struct{}

func (Nop) AlertCreated(context.Context, *repo.Alert) error { return nil }
