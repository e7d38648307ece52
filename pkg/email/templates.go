package email

import (
	"fmt"
	"html"
	"time"
)

// AlertEmailData describes one facility alert for the on-call staff mail.
type AlertEmailData struct {
	To        []string
	AlertID   int64
	Type      string
	Message   string
	CreatedAt time.Time
	AppName   string
}

// BuildAlertEmail renders the notification sent when an alert is raised.
func BuildAlertEmail(data AlertEmailData) Message {
	appName := data.AppName
	if appName == "" {
		appName = "NutriGuard"
	}
	created := data.CreatedAt.UTC().Format("2006-01-02 15:04 MST")

	subject := fmt.Sprintf("[%s] %s alert #%d", appName, data.Type, data.AlertID)

	textBody := fmt.Sprintf(`A new %s alert was raised.

%s

Alert ID: %d
Raised at: %s

Resolve it with POST /alerts/%d/resolve once handled.

%s`,
		data.Type, data.Message, data.AlertID, created, data.AlertID, appName)

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #dc2626;">%s alert</h2>
    <p style="background-color: #fef2f2; padding: 12px 16px; border-left: 4px solid #dc2626;">%s</p>
    <p>Alert ID: <strong>#%d</strong><br>Raised at: %s</p>
    <p style="color: #6b7280; font-size: 14px; margin-top: 30px;">%s</p>
</body>
</html>`,
		html.EscapeString(data.Type), html.EscapeString(data.Message), data.AlertID, created, appName)

	return Message{
		To:       data.To,
		Subject:  subject,
		TextBody: textBody,
		HTMLBody: htmlBody,
	}
}
