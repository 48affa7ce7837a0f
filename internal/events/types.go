package events

// Numeric identifiers kelindar/event keys its subscriber groups by.
// Every event type gets a distinct value.
const (
	TypeDeviceAdded uint32 = iota + 1
	TypeDeviceRemoved
	TypeScanCompleted
	TypeConfigReloaded
	TypeUpdateAvailable
	TypeLogEntry
)

// Event is what kelindar/event expects of anything published on the bus.
type Event interface {
	Type() uint32
}

// DeviceAddedEvent is published when a capture device appears in the registry.
type DeviceAddedEvent struct {
	DeviceID  string `json:"device_id" example:"usb-0000:00:14.0-3" doc:"Stable device identifier"`
	Path      string `json:"path" example:"/dev/video0" doc:"Device node path"`
	Name      string `json:"name" example:"HD Pro Webcam C920" doc:"Device card name"`
	Driver    string `json:"driver" example:"uvcvideo" doc:"Kernel driver name"`
	Timestamp string `json:"timestamp" example:"2026-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for DeviceAddedEvent.
func (e DeviceAddedEvent) Type() uint32 { return TypeDeviceAdded }

// DeviceRemovedEvent is published when a capture device disappears from the registry.
type DeviceRemovedEvent struct {
	DeviceID  string `json:"device_id" example:"usb-0000:00:14.0-3" doc:"Stable device identifier"`
	Path      string `json:"path" example:"/dev/video0" doc:"Device node path it was last seen at"`
	Name      string `json:"name" example:"HD Pro Webcam C920" doc:"Device card name"`
	Timestamp string `json:"timestamp" example:"2026-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for DeviceRemovedEvent.
func (e DeviceRemovedEvent) Type() uint32 { return TypeDeviceRemoved }

// ScanCompletedEvent is published after every registry scan, whether triggered
// at startup, by hotplug, or through the API.
type ScanCompletedEvent struct {
	Trigger    string  `json:"trigger" example:"hotplug" doc:"What started the scan: initial, hotplug, manual"`
	Devices    int     `json:"devices" example:"2" doc:"Devices present after the scan"`
	Added      int     `json:"added" example:"1" doc:"Devices added by this scan"`
	Removed    int     `json:"removed" example:"0" doc:"Devices removed by this scan"`
	Errors     int     `json:"errors" example:"0" doc:"Probe errors during the scan"`
	DurationMS float64 `json:"duration_ms" example:"41.7" doc:"Scan duration in milliseconds"`
	Timestamp  string  `json:"timestamp" example:"2026-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for ScanCompletedEvent.
func (e ScanCompletedEvent) Type() uint32 { return TypeScanCompleted }

// ConfigReloadedEvent is published when the config watcher applies a changed file.
type ConfigReloadedEvent struct {
	Path      string `json:"path" example:"/etc/vision-node/config.toml" doc:"Config file that changed"`
	Timestamp string `json:"timestamp" example:"2026-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for ConfigReloadedEvent.
func (e ConfigReloadedEvent) Type() uint32 { return TypeConfigReloaded }

// UpdateAvailableEvent is published when a periodic update check finds a newer release.
type UpdateAvailableEvent struct {
	CurrentVersion string `json:"current_version" example:"1.2.0" doc:"Running version"`
	LatestVersion  string `json:"latest_version" example:"1.3.0" doc:"Newest released version"`
	ReleaseURL     string `json:"release_url,omitempty" doc:"Release page URL"`
	Timestamp      string `json:"timestamp" example:"2026-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for UpdateAvailableEvent.
func (e UpdateAvailableEvent) Type() uint32 { return TypeUpdateAvailable }

// LogEvent carries a log entry for SSE streaming.
type LogEvent struct {
	Seq        uint64         `json:"seq" example:"42" doc:"Monotonic sequence number for deduplication"`
	Timestamp  string         `json:"timestamp" example:"2026-01-27T10:30:00.123Z" doc:"Log timestamp"`
	Level      string         `json:"level" example:"info" doc:"Log level"`
	Module     string         `json:"module" example:"api" doc:"Source module"`
	Message    string         `json:"message" doc:"Log message"`
	Attributes map[string]any `json:"attributes,omitempty" doc:"Structured log attributes"`
}

// Type returns the event type identifier for LogEvent.
func (e LogEvent) Type() uint32 { return TypeLogEntry }
