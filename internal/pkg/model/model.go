package model

// FirmwareVersion is reported to the panel at registration and printed by
// --version.
const FirmwareVersion = "1.0.0"

// Device types accepted by the panel's device-creation endpoint.
const (
	DeviceTypeSensor = "sensor"
	DeviceTypeSwitch = "switch"
)

// StatusOnline is the status string sent with every report.
const StatusOnline = "online"

// RegisterRequest is the body of POST {panel_url}/devices.
type RegisterRequest struct {
	Name       string   `json:"name"`
	DeviceType string   `json:"device_type"`
	IPAddress  string   `json:"ip_address"`
	Metadata   Metadata `json:"metadata"`
}

type Metadata struct {
	FirmwareVersion string `json:"firmware_version"`
	// Channels is only populated for switch devices.
	Channels int `json:"channels,omitempty"`
}

// RegisterResponse is the panel's device-creation reply. The panel returns the
// whole device object; only the assigned id matters here.
type RegisterResponse struct {
	ID string `json:"id"`
}

// ReportRequest is the body of PUT {panel_url}/devices/{id}.
type ReportRequest struct {
	Status  string `json:"status"`
	Metrics any    `json:"metrics"`
}

type SensorMetrics struct {
	Temperature        float64 `json:"temperature"`
	Humidity           float64 `json:"humidity"`
	Uptime             uint64  `json:"uptime"`
	MemoryUsagePercent float64 `json:"memory_usage_percent"`
}

type SwitchMetrics struct {
	Channels     []int  `json:"channels"`
	TotalToggles uint64 `json:"total_toggles"`
}
