package app

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/fx"

	"github.com/Alijeyrad/nutriguard_backend/internal/repo"
	"github.com/Alijeyrad/nutriguard_backend/internal/service/notification"
	"github.com/Alijeyrad/nutriguard_backend/pkg/constants"
)

const notifyTimeout = 30 * time.Second

// WorkerModule registers all NATS event workers.
var WorkerModule = fx.Module("workers",
	fx.Invoke(RegisterWorkers),
)

type WorkerParams struct {
	fx.In

	Lc       fx.Lifecycle
	NC       *nats.Conn `optional:"true"`
	NotifSvc notification.Service
}

func RegisterWorkers(p WorkerParams) {
	var sub *nats.Subscription
	p.Lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if p.NC == nil {
				slog.Info("alert_worker: nats disabled, not started")
				return nil
			}
			var err error
			sub, err = startAlertWorker(p.NC, p.NotifSvc)
			return err
		},
		OnStop: func(ctx context.Context) error {
			// Connection drain is handled by ProvideNatsClient.
			if sub != nil {
				return sub.Unsubscribe()
			}
			return nil
		},
	})
}

// ---------------------------------------------------------------------------
// alert_worker
// ---------------------------------------------------------------------------

func startAlertWorker(nc *nats.Conn, notifSvc notification.Service) (*nats.Subscription, error) {
	sub, err := nc.Subscribe(constants.SubjectAlertCreatedAll, alertHandler(notifSvc))
	if err != nil {
		slog.Error("alert_worker: subscribe failed", "subject", constants.SubjectAlertCreatedAll, "err", err)
		return nil, err
	}
	slog.Info("alert_worker: started", "subject", constants.SubjectAlertCreatedAll)
	return sub, nil
}

func alertHandler(notifSvc notification.Service) nats.MsgHandler {
	return func(msg *nats.Msg) {
		var a repo.Alert
		if err := json.Unmarshal(msg.Data, &a); err != nil {
			slog.Warn("alert_worker: bad payload", "subject", msg.Subject, "err", err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := notifSvc.NotifyAlert(ctx, &a); err != nil {
			slog.Warn("alert_worker: notify failed", "alert_id", a.ID, "err", err)
		}
	}
}
