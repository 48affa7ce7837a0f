//go:build !linux

package devices

import (
	"context"
	"fmt"
	"time"

	"github.com/tyrius02/next-gen-vision/internal/logging"
	"github.com/tyrius02/next-gen-vision/pkg/hotplug"
)

// Mock snapshots so the API can be exercised on non-Linux dev machines.
var mockSnapshots = []*Snapshot{
	{
		ID:         "usb-mock-webcam-001",
		Path:       "/dev/video0",
		Name:       "Mock USB Webcam HD",
		Driver:     "uvcvideo",
		BusInfo:    "usb-0000:00:14.0-1",
		Version:    "6.8.0",
		Caps:       0x84a00001,
		DeviceCaps: 0x04200001, // VIDEO_CAPTURE | EXT_PIX_FORMAT | STREAMING
		CapNames:   []string{"VIDEO_CAPTURE", "EXT_PIX_FORMAT", "STREAMING"},
		Formats: []Format{
			{
				BufType:     "VIDEO_CAPTURE",
				PixelFormat: "MJPG",
				Description: "Motion-JPEG",
				Compressed:  true,
				Sizes: []FrameSize{
					{Width: 1920, Height: 1080, Rates: []FrameRate{
						{Interval: Fraction{1, 30}, FPS: 30},
						{Interval: Fraction{1, 60}, FPS: 60},
					}},
					{Width: 1280, Height: 720, Rates: []FrameRate{
						{Interval: Fraction{1, 30}, FPS: 30},
					}},
				},
			},
			{
				BufType:     "VIDEO_CAPTURE",
				PixelFormat: "YUYV",
				Description: "YUYV 4:2:2",
				Sizes: []FrameSize{
					{Width: 640, Height: 480, Rates: []FrameRate{
						{Interval: Fraction{1, 30}, FPS: 30},
					}},
				},
			},
		},
	},
	{
		ID:         "usb-mock-hdmi-capture",
		Path:       "/dev/video1",
		Name:       "Mock HDMI Capture",
		Driver:     "mock-hdmi",
		BusInfo:    "usb-0000:00:14.0-2",
		Version:    "6.8.0",
		Caps:       0x84200001,
		DeviceCaps: 0x04200001,
		CapNames:   []string{"VIDEO_CAPTURE", "EXT_PIX_FORMAT", "STREAMING"},
		Formats: []Format{
			{
				BufType:     "VIDEO_CAPTURE",
				PixelFormat: "NV12",
				Description: "Y/UV 4:2:0",
				Sizes: []FrameSize{
					{Range: &SizeRange{
						MinWidth: 320, MaxWidth: 3840, StepWidth: 2,
						MinHeight: 240, MaxHeight: 2160, StepHeight: 2,
					}},
				},
			},
		},
	},
}

type stubScanner struct{}

func newScanner(_, _ string) Scanner {
	logging.GetLogger("devices").Info("Using mock capture devices, discovery requires Linux")
	return stubScanner{}
}

func (stubScanner) Paths() ([]string, error) {
	paths := make([]string, len(mockSnapshots))
	for i, snap := range mockSnapshots {
		paths[i] = snap.Path
	}
	return paths, nil
}

func (stubScanner) Probe(path string) (*Snapshot, error) {
	for _, mock := range mockSnapshots {
		if mock.Path == path {
			snap := *mock
			snap.ScannedAt = time.Now()
			return &snap, nil
		}
	}
	return nil, fmt.Errorf("device not found: %s", path)
}

// Events returns a channel that never delivers: hotplug monitoring
// needs a netlink socket.
func (stubScanner) Events(ctx context.Context) (<-chan hotplug.Event, error) {
	events := make(chan hotplug.Event)
	go func() {
		<-ctx.Done()
		close(events)
	}()
	return events, nil
}
