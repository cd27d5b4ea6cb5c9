package report

import (
	"github.com/karyx/edge-firmware/internal/pkg/model"
	"github.com/karyx/edge-firmware/internal/pkg/sensor"
	"github.com/karyx/edge-firmware/internal/pkg/state"
	"github.com/samber/lo"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// SensorPayload builds the status body for a sensor report. System metrics
// are best-effort: a failed probe reports zero rather than skipping the
// cycle.
func SensorPayload(r sensor.Reading) model.ReportRequest {
	return model.ReportRequest{
		Status: model.StatusOnline,
		Metrics: model.SensorMetrics{
			Temperature:        r.Temperature,
			Humidity:           r.Humidity,
			Uptime:             systemUptime(),
			MemoryUsagePercent: memoryUsedPercent(),
		},
	}
}

// SwitchPayload builds the status body for a switch report. total_toggles
// sums every channel's counter.
func SwitchPayload(snap []state.ChannelSnapshot) model.ReportRequest {
	channels := lo.Map(snap, func(c state.ChannelSnapshot, _ int) int {
		if c.On {
			return 1
		}
		return 0
	})
	total := lo.SumBy(snap, func(c state.ChannelSnapshot) uint64 {
		return c.ToggleCount
	})
	return model.ReportRequest{
		Status: model.StatusOnline,
		Metrics: model.SwitchMetrics{
			Channels:     channels,
			TotalToggles: total,
		},
	}
}

func systemUptime() uint64 {
	up, err := host.Uptime()
	if err != nil {
		return 0
	}
	return up
}

func memoryUsedPercent() float64 {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0
	}
	return vm.UsedPercent
}
