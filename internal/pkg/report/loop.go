package report

import (
	"context"
	"time"

	"github.com/karyx/edge-firmware/internal/pkg/panel"
	"github.com/karyx/edge-firmware/internal/pkg/runstate"
	"github.com/karyx/edge-firmware/internal/pkg/sensor"
	"github.com/karyx/edge-firmware/internal/pkg/state"
	"go.uber.org/zap"
)

// Loop is the sensor firmware's report cycle: sample, store, report, then
// wait out the interval in one-second steps so shutdown lands within a
// second. A failed report is logged and skipped; the next cycle supersedes
// it.
type Loop struct {
	deviceID string
	interval time.Duration
	source   sensor.Source
	slot     *state.Slot
	client   panel.Client
	flag     *runstate.Flag
	logger   *zap.Logger
}

func NewLoop(deviceID string, interval time.Duration, source sensor.Source, slot *state.Slot, client panel.Client, flag *runstate.Flag) *Loop {
	return &Loop{
		deviceID: deviceID,
		interval: interval,
		source:   source,
		slot:     slot,
		client:   client,
		flag:     flag,
		logger:   zap.L(),
	}
}

func (l *Loop) Run(ctx context.Context) error {
	cycle := 0
	for l.flag.Running() {
		cycle++

		reading := l.source.Sample()
		l.slot.Set(reading)
		l.logger.Info("sampled sensors",
			zap.Int("cycle", cycle),
			zap.Float64("temperature", reading.Temperature),
			zap.Float64("humidity", reading.Humidity),
		)

		if err := l.client.Report(ctx, l.deviceID, SensorPayload(reading)); err != nil {
			l.logger.Warn("failed to report metrics", zap.Error(err))
		} else {
			l.logger.Debug("reported metrics",
				zap.Float64("temperature", reading.Temperature),
				zap.Float64("humidity", reading.Humidity),
			)
		}

		runstate.Wait(l.flag, l.interval)
	}
	l.logger.Info("reporting loop stopped")
	return nil
}
