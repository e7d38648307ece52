package app

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/nutriguard_backend/internal/repo"
)

type recordingNotifier struct {
	alerts []*repo.Alert
}

func (r *recordingNotifier) NotifyAlert(_ context.Context, a *repo.Alert) error {
	r.alerts = append(r.alerts, a)
	return nil
}

func TestAlertHandler_Notifies(t *testing.T) {
	rec := &recordingNotifier{}
	payload, err := json.Marshal(repo.Alert{ID: 9, Type: "Low Intake", Message: "Patient 1 consumed less than 50% of meal", Status: repo.AlertActive})
	require.NoError(t, err)

	alertHandler(rec)(&nats.Msg{Subject: "nutriguard.alert.created.low_intake", Data: payload})

	require.Len(t, rec.alerts, 1)
	assert.Equal(t, int64(9), rec.alerts[0].ID)
	assert.Equal(t, "Low Intake", rec.alerts[0].Type)
}

func TestAlertHandler_BadPayload(t *testing.T) {
	rec := &recordingNotifier{}
	alertHandler(rec)(&nats.Msg{Subject: "nutriguard.alert.created.x", Data: []byte("{")})
	assert.Empty(t, rec.alerts)
}
