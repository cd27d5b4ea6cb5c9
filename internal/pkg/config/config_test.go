package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad_ParsesKnownKeys(t *testing.T) {
	path := writeConfig(t, `
# device identity
device_id = dev-123
device_name = Living Room Switch
panel_url = http://panel.local:8000/api

report_interval = 30
poll_commands_interval = 10
num_channels = 2
mqtt_broker = tcp://broker.local:1883
verbose = 1
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "dev-123", cfg.DeviceID)
	assert.Equal(t, "Living Room Switch", cfg.DeviceName)
	assert.Equal(t, "http://panel.local:8000/api", cfg.PanelURL)
	assert.Equal(t, 30, cfg.ReportInterval)
	assert.Equal(t, 10, cfg.PollCommandsInterval)
	assert.Equal(t, 2, cfg.NumChannels)
	assert.Equal(t, "tcp://broker.local:1883", cfg.MQTTBroker)
	assert.True(t, cfg.Verbose)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "device_name = bare\n"))
	require.NoError(t, err)

	assert.Equal(t, DefaultNumChannels, cfg.NumChannels)
	assert.Equal(t, DefaultPollCommandsInterval, cfg.PollCommandsInterval)
	assert.Zero(t, cfg.ReportInterval, "missing numeric fields default to zero")
	assert.Empty(t, cfg.DeviceID)
	assert.False(t, cfg.Verbose)
}

func TestLoad_ClampsChannels(t *testing.T) {
	cfg, err := Load(writeConfig(t, "num_channels = 64\n"))
	require.NoError(t, err)
	assert.Equal(t, MaxChannels, cfg.NumChannels)
}

func TestLoad_IgnoresUnknownAndMalformedLines(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
no_such_key = whatever
this line has no separator
report_interval = not-a-number
device_name = ok
`))
	require.NoError(t, err)
	assert.Equal(t, "ok", cfg.DeviceName)
	assert.Zero(t, cfg.ReportInterval, "garbage numerics read as zero")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("KARYX_PANEL_URL", "http://override.local")
	t.Setenv("KARYX_REPORT_INTERVAL", "15")

	cfg, err := Load(writeConfig(t, "panel_url = http://file.local\nreport_interval = 60\n"))
	require.NoError(t, err)
	assert.Equal(t, "http://override.local", cfg.PanelURL)
	assert.Equal(t, 15, cfg.ReportInterval)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.ini"))
	require.Error(t, err)
}
