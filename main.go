package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/karyx/edge-firmware/cmd"
	"github.com/karyx/edge-firmware/internal/pkg/model"
)

func main() {
	app := &cli.App{
		Name:    "karyx-firmware",
		Usage:   "edge device firmware for the Karyx IoT panel",
		Version: model.FirmwareVersion,
		Commands: []*cli.Command{
			{
				Name:   "sensor",
				Usage:  "run the telemetry sensor firmware",
				Action: cmd.SensorCommand,
				Flags:  configFlags(),
			},
			{
				Name:   "switch",
				Usage:  "run the multi-channel switch firmware",
				Action: cmd.SwitchCommand,
				Flags:  configFlags(),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func configFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			EnvVars: []string{"KARYX_CONFIG"},
			Value:   "config.ini",
			Usage:   "configuration file",
		},
	}
}
