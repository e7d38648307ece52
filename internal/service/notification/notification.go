package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Alijeyrad/nutriguard_backend/config"
	"github.com/Alijeyrad/nutriguard_backend/internal/repo"
	"github.com/Alijeyrad/nutriguard_backend/pkg/email"
)

// Mailer is satisfied by *email.Client.
type Mailer interface {
	Enabled() bool
	Send(ctx context.Context, m email.Message) error
}

// Texter is satisfied by *sms.Client.
type Texter interface {
	IsEnabled() bool
	SendAlert(ctx context.Context, phoneNumber, alertType, message string) error
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	// NotifyAlert fans an alert out to the configured email and SMS
	// recipients. Channel failures are joined; one failing recipient does not
	// stop the rest.
	NotifyAlert(ctx context.Context, a *repo.Alert) error
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type notificationService struct {
	cfg     config.NotificationConfig
	appName string
	mail    Mailer
	sms     Texter
}

func New(cfg config.NotificationConfig, appName string, mail Mailer, sms Texter) Service {
	return &notificationService{cfg: cfg, appName: appName, mail: mail, sms: sms}
}

func (s *notificationService) NotifyAlert(ctx context.Context, a *repo.Alert) error {
	if a == nil {
		return ErrNilAlert
	}
	if !s.cfg.Enabled {
		slog.DebugContext(ctx, "notification: disabled, skipping alert", "alert_id", a.ID)
		return nil
	}

	var errs []error

	if s.mail != nil && s.mail.Enabled() && len(s.cfg.EmailRecipients) > 0 {
		msg := email.BuildAlertEmail(email.AlertEmailData{
			To:        s.cfg.EmailRecipients,
			AlertID:   a.ID,
			Type:      a.Type,
			Message:   a.Message,
			CreatedAt: a.CreatedAt,
			AppName:   s.appName,
		})
		if err := s.mail.Send(ctx, msg); err != nil {
			errs = append(errs, fmt.Errorf("email alert %d: %w", a.ID, err))
		}
	}

	if s.sms != nil && s.sms.IsEnabled() {
		for _, number := range s.cfg.SMSRecipients {
			if err := s.sms.SendAlert(ctx, number, a.Type, a.Message); err != nil {
				errs = append(errs, fmt.Errorf("sms alert %d to %s: %w", a.ID, number, err))
			}
		}
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}
	slog.InfoContext(ctx, "notification: alert delivered", "alert_id", a.ID, "type", a.Type)
	return nil
}
