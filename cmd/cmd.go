// Package cmd wires configuration, logging, and the per-variant run loops
// behind the CLI commands.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/karyx/edge-firmware/internal/pkg/command"
	"github.com/karyx/edge-firmware/internal/pkg/config"
	"github.com/karyx/edge-firmware/internal/pkg/model"
	"github.com/karyx/edge-firmware/internal/pkg/panel"
	"github.com/karyx/edge-firmware/internal/pkg/remote"
	"github.com/karyx/edge-firmware/internal/pkg/report"
	"github.com/karyx/edge-firmware/internal/pkg/runstate"
	"github.com/karyx/edge-firmware/internal/pkg/sensor"
	"github.com/karyx/edge-firmware/internal/pkg/state"
)

// SensorCommand runs the telemetry sensor firmware until a shutdown signal
// arrives.
func SensorCommand(ctx *cli.Context) error {
	cfg, err := config.Load(ctx.String("config"))
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync() // flushes buffer, if any.
	}()
	zap.ReplaceGlobals(logger)

	return runSensor(ctx.Context, cfg, panel.New(cfg.PanelURL), sensor.NewSimulated(time.Now().UnixNano()), runstate.NewFlag())
}

// SwitchCommand runs the multi-channel switch firmware until quit, EOF, or a
// shutdown signal.
func SwitchCommand(ctx *cli.Context) error {
	cfg, err := config.Load(ctx.String("config"))
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync() // flushes buffer, if any.
	}()
	zap.ReplaceGlobals(logger)

	return runSwitch(ctx.Context, cfg, panel.New(cfg.PanelURL), os.Stdin, os.Stdout, runstate.NewFlag())
}

func newLogger(verbose bool) (*zap.Logger, error) {
	logCfg := zap.NewProductionConfig()
	level := zap.InfoLevel
	if verbose {
		level = zap.DebugLevel
	}
	logCfg.Level = zap.NewAtomicLevelAt(level)
	logCfg.OutputPaths = []string{"stdout"}
	logCfg.ErrorOutputPaths = []string{"stdout"}
	logCfg.Sampling = nil
	return logCfg.Build(zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
}

// runSensor registers the device if needed and drives the report cycle on a
// single task. Registration failure is fatal for sensors.
func runSensor(ctx context.Context, cfg *config.Config, client panel.Client, source sensor.Source, flag *runstate.Flag) error {
	logger := zap.L()
	runstate.NotifyOnSignal(flag, logger)

	if cfg.DeviceID == "" {
		logger.Info("registering device with panel")
		id, err := client.Register(ctx, model.RegisterRequest{
			Name:       cfg.DeviceName,
			DeviceType: model.DeviceTypeSensor,
			IPAddress:  panel.LocalIPAddress(),
			Metadata:   model.Metadata{FirmwareVersion: model.FirmwareVersion},
		})
		if err != nil {
			logger.Error("failed to register device", zap.Error(err))
			return fmt.Errorf("register device: %w", err)
		}
		cfg.DeviceID = id
	}

	logger.Info("starting sensor monitoring",
		zap.String("device", cfg.DeviceName),
		zap.String("panel", cfg.PanelURL),
		zap.Int("report_interval_seconds", cfg.ReportInterval),
	)

	interval := time.Duration(cfg.ReportInterval) * time.Second
	loop := report.NewLoop(cfg.DeviceID, interval, source, state.NewSlot(), client, flag)
	if err := loop.Run(ctx); err != nil {
		return err
	}
	logger.Info("sensor firmware stopped")
	return nil
}

// runSwitch starts the background command task and the interactive console.
// Registration failure is logged and tolerated: the switch keeps operating
// unregistered. The asymmetry with the sensor variant is inherited behavior.
func runSwitch(ctx context.Context, cfg *config.Config, client panel.Client, in io.Reader, out io.Writer, flag *runstate.Flag) error {
	logger := zap.L()
	runstate.NotifyOnSignal(flag, logger)

	if cfg.DeviceID == "" {
		logger.Info("registering device with panel")
		id, err := client.Register(ctx, model.RegisterRequest{
			Name:       cfg.DeviceName,
			DeviceType: model.DeviceTypeSwitch,
			IPAddress:  panel.LocalIPAddress(),
			Metadata: model.Metadata{
				FirmwareVersion: model.FirmwareVersion,
				Channels:        cfg.NumChannels,
			},
		})
		if err != nil {
			logger.Error("failed to register device, continuing unregistered", zap.Error(err))
		} else {
			cfg.DeviceID = id
		}
	}

	logger.Info("starting switch firmware",
		zap.String("device", cfg.DeviceName),
		zap.String("panel", cfg.PanelURL),
		zap.Int("channels", cfg.NumChannels),
	)
	fmt.Fprintln(out, "Type 'help' for commands")

	store := state.NewStore(cfg.NumChannels)
	dispatcher := command.NewDispatcher(store, out)

	schedule := report.NewSchedule(time.Duration(cfg.ReportInterval) * time.Second)
	trigger := report.NewTrigger(cfg.DeviceID, schedule, store, client)

	clientID := cfg.DeviceID
	if clientID == "" {
		clientID = cfg.DeviceName
	}
	poller := remote.NewPoller(
		cfg.MQTTBroker,
		clientID,
		remote.CommandTopic(clientID),
		time.Duration(cfg.PollCommandsInterval)*time.Second,
		flag,
		dispatcher.Execute,
	)

	console := command.NewConsole(dispatcher, flag, in, out, func() {
		trigger.ReportIfDue(ctx)
	})

	eg, _ := errgroup.WithContext(ctx)
	eg.Go(poller.Run)
	eg.Go(func() error {
		// Console exit (quit or EOF) brings the background task down too.
		defer flag.Stop()
		return console.Run()
	})

	if err := eg.Wait(); err != nil {
		return err
	}
	logger.Info("switch firmware stopped")
	return nil
}
