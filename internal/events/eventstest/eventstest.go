// Package eventstest provides an in-memory events.Publisher for tests.
package eventstest

import (
	"context"

	"github.com/Alijeyrad/nutriguard_backend/internal/repo"
)

// Recorder keeps published alerts in memory.
type Recorder struct {
	Alerts []*repo.Alert
}

func (r *Recorder) AlertCreated(_ context.Context, alert *repo.Alert) error {
	r.Alerts = append(r.Alerts, alert)
	return nil
}
