// Package config loads flat key=value device configuration with optional
// environment overrides.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
)

// MaxChannels bounds num_channels regardless of what the configuration asks
// for.
const MaxChannels = 8

// Defaults applied before the file and environment are consulted. They only
// matter for switch devices; sensor firmware ignores both fields.
const (
	DefaultNumChannels          = 4
	DefaultPollCommandsInterval = 5
)

type Config struct {
	// DeviceID is empty until the panel assigns one at registration.
	DeviceID             string `env:"KARYX_DEVICE_ID"`
	DeviceName           string `env:"KARYX_DEVICE_NAME"`
	PanelURL             string `env:"KARYX_PANEL_URL"`
	ReportInterval       int    `env:"KARYX_REPORT_INTERVAL"`
	PollCommandsInterval int    `env:"KARYX_POLL_COMMANDS_INTERVAL"`
	NumChannels          int    `env:"KARYX_NUM_CHANNELS"`
	// MQTTBroker enables the remote command feed when set (switch only).
	MQTTBroker string `env:"KARYX_MQTT_BROKER"`
	Verbose    bool   `env:"KARYX_VERBOSE"`
}

// Load reads a config file of "key = value" lines. Lines starting with '#'
// and blank lines are skipped; unknown keys are ignored. KARYX_* environment
// variables override whatever the file says.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer file.Close()

	cfg := &Config{
		NumChannels:          DefaultNumChannels,
		PollCommandsInterval: DefaultPollCommandsInterval,
	}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		cfg.apply(strings.TrimSpace(key), strings.TrimSpace(value))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment overrides: %w", err)
	}

	if cfg.NumChannels > MaxChannels {
		cfg.NumChannels = MaxChannels
	}
	return cfg, nil
}

func (c *Config) apply(key, value string) {
	switch key {
	case "device_id":
		c.DeviceID = value
	case "device_name":
		c.DeviceName = value
	case "panel_url":
		c.PanelURL = value
	case "report_interval":
		c.ReportInterval = atoi(value)
	case "poll_commands_interval":
		c.PollCommandsInterval = atoi(value)
	case "num_channels":
		c.NumChannels = atoi(value)
	case "mqtt_broker":
		c.MQTTBroker = value
	case "verbose":
		c.Verbose = value == "1"
	}
}

// atoi keeps the permissive semantics of C atoi: garbage reads as zero.
func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
