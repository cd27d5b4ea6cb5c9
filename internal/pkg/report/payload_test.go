package report

import (
	"testing"

	"github.com/karyx/edge-firmware/internal/pkg/model"
	"github.com/karyx/edge-firmware/internal/pkg/sensor"
	"github.com/karyx/edge-firmware/internal/pkg/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwitchPayload(t *testing.T) {
	snap := []state.ChannelSnapshot{
		{On: true, ToggleCount: 3},
		{On: false, ToggleCount: 2},
		{On: true, ToggleCount: 7},
	}

	req := SwitchPayload(snap)
	assert.Equal(t, model.StatusOnline, req.Status)

	metrics, ok := req.Metrics.(model.SwitchMetrics)
	require.True(t, ok)
	assert.Equal(t, []int{1, 0, 1}, metrics.Channels)
	assert.Equal(t, uint64(12), metrics.TotalToggles, "every channel counts toward the total")
}

func TestSwitchPayload_Empty(t *testing.T) {
	req := SwitchPayload(nil)
	metrics, ok := req.Metrics.(model.SwitchMetrics)
	require.True(t, ok)
	assert.Empty(t, metrics.Channels)
	assert.Zero(t, metrics.TotalToggles)
}

func TestSensorPayload(t *testing.T) {
	req := SensorPayload(sensor.Reading{Temperature: 24.5, Humidity: 51.2})
	assert.Equal(t, model.StatusOnline, req.Status)

	metrics, ok := req.Metrics.(model.SensorMetrics)
	require.True(t, ok)
	assert.Equal(t, 24.5, metrics.Temperature)
	assert.Equal(t, 51.2, metrics.Humidity)
	assert.GreaterOrEqual(t, metrics.MemoryUsagePercent, 0.0)
	assert.LessOrEqual(t, metrics.MemoryUsagePercent, 100.0)
}
