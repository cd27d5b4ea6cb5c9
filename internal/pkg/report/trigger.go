package report

import (
	"context"

	"github.com/karyx/edge-firmware/internal/pkg/panel"
	"github.com/karyx/edge-firmware/internal/pkg/state"
	"go.uber.org/zap"
)

// Trigger fires a switch status report when the schedule says one is due. The
// interactive loop calls it opportunistically after every command, which
// matches the switch firmware's report timing: no input, no report.
type Trigger struct {
	deviceID string
	schedule *Schedule
	store    *state.Store
	client   panel.Client
	logger   *zap.Logger
}

func NewTrigger(deviceID string, schedule *Schedule, store *state.Store, client panel.Client) *Trigger {
	return &Trigger{
		deviceID: deviceID,
		schedule: schedule,
		store:    store,
		client:   client,
		logger:   zap.L(),
	}
}

// ReportIfDue sends the current channel snapshot if the interval has elapsed
// since the last attempt. Failures are logged and skipped, never retried
// within the cycle.
func (t *Trigger) ReportIfDue(ctx context.Context) {
	if !t.schedule.Due() {
		return
	}
	if err := t.client.Report(ctx, t.deviceID, SwitchPayload(t.store.Snapshot())); err != nil {
		t.logger.Warn("failed to report status", zap.Error(err))
	} else {
		t.logger.Debug("reported status")
	}
	t.schedule.MarkAttempted()
}
