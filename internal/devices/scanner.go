// Package devices maintains the live inventory of video capture
// devices: a registry of capability snapshots keyed by stable device
// ID, refreshed by hotplug activity and on-demand rescans.
package devices

import (
	"context"
	"time"

	"github.com/tyrius02/next-gen-vision/pkg/hotplug"
)

// Snapshot is everything one capability probe learned about a device
// node. Snapshots are immutable once published by a scan.
type Snapshot struct {
	ID         string
	Path       string
	Name       string
	Driver     string
	BusInfo    string
	Version    string
	Caps       uint32
	DeviceCaps uint32
	CapNames   []string
	Formats    []Format
	Current    *ActiveFormat
	Streaming  *StreamSettings
	ScannedAt  time.Time
}

// Format is one enumerated image format together with its frame
// geometry.
type Format struct {
	BufType     string
	PixelFormat string
	Description string
	Compressed  bool
	Emulated    bool
	Sizes       []FrameSize
}

// FrameSize is one enumerated frame size. Discrete entries carry
// Width, Height and Rates; stepwise entries carry Range instead.
type FrameSize struct {
	Width  uint32
	Height uint32
	Range  *SizeRange
	Rates  []FrameRate
}

// SizeRange is the stepwise form of a frame size entry. Continuous
// ranges are reported with steps of 1.
type SizeRange struct {
	MinWidth   uint32
	MaxWidth   uint32
	StepWidth  uint32
	MinHeight  uint32
	MaxHeight  uint32
	StepHeight uint32
}

// FrameRate is one enumerated frame interval. Discrete entries carry
// Interval and its derived FPS; stepwise entries carry Range instead.
type FrameRate struct {
	Interval Fraction
	FPS      float64
	Range    *RateRange
}

// RateRange is the stepwise form of a frame interval entry.
type RateRange struct {
	Min  Fraction
	Max  Fraction
	Step Fraction
}

// Fraction is an exact rational frame interval. 1/30 means one frame
// every 1/30th of a second.
type Fraction struct {
	Numerator   uint32
	Denominator uint32
}

// ActiveFormat is the format currently configured on a node. Drivers
// may refuse the readback on idle nodes, in which case a snapshot
// carries no ActiveFormat.
type ActiveFormat struct {
	Width        uint32
	Height       uint32
	PixelFormat  string
	Field        uint32
	BytesPerLine uint32
	SizeImage    uint32
	Colorspace   uint32
}

// StreamSettings is the stream-parameter readback of a node.
type StreamSettings struct {
	TimePerFrame Fraction
	FPS          float64
	ReadBuffers  uint32
}

// Scanner probes the host for capture devices. Implementations are
// platform-specific; NewScanner returns the one for this build.
type Scanner interface {
	// Paths lists device nodes that currently expose video capture.
	Paths() ([]string, error)

	// Probe takes a full capability snapshot of one node.
	Probe(path string) (*Snapshot, error)

	// Events opens a hotplug notification stream. The returned channel
	// is closed when ctx ends.
	Events(ctx context.Context) (<-chan hotplug.Event, error)
}

// NewScanner returns the scanner for this platform, probing device
// nodes under dir whose names start with prefix.
func NewScanner(dir, prefix string) Scanner {
	return newScanner(dir, prefix)
}
