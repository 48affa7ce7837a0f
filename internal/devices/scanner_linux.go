//go:build linux

package devices

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tyrius02/next-gen-vision/internal/logging"
	"github.com/tyrius02/next-gen-vision/pkg/hotplug"
	"github.com/tyrius02/next-gen-vision/pkg/v4l2"
)

type v4l2Scanner struct {
	dir    string
	prefix string
	logger *slog.Logger
}

func newScanner(dir, prefix string) Scanner {
	return &v4l2Scanner{dir: dir, prefix: prefix, logger: logging.GetLogger("v4l2")}
}

// Paths lists capture-capable nodes under the scanner's directory.
func (s *v4l2Scanner) Paths() ([]string, error) {
	return v4l2.FindDevices(s.dir, s.prefix)
}

// Probe opens one node and takes a full capability snapshot.
func (s *v4l2Scanner) Probe(path string) (*Snapshot, error) {
	dev, err := v4l2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer dev.Close()

	info, err := dev.Info()
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", path, err)
	}

	// Format and stream-parameter readbacks are best effort: many
	// drivers refuse them on nodes without an active stream.
	var current *v4l2.PixFormat
	if f, err := dev.CurrentFormat(v4l2.BufTypeVideoCapture); err == nil {
		current = f
	}
	var params *v4l2.StreamParams
	if p, err := dev.StreamParams(v4l2.BufTypeVideoCapture); err == nil {
		params = p
	}

	snap := buildSnapshot(info, current, params)
	snap.ID = v4l2.StableID(path, info.BusInfo)
	snap.Path = path
	snap.ScannedAt = time.Now()
	s.logger.Debug("Probed device",
		"path", path,
		"card", info.Card,
		"driver", info.Driver,
		"formats", len(info.Formats))
	return snap, nil
}

// Events starts a netlink monitor filtered to the video4linux
// subsystem and streams its events until ctx ends.
func (s *v4l2Scanner) Events(ctx context.Context) (<-chan hotplug.Event, error) {
	monitor, err := hotplug.NewMonitor(hotplug.SubsystemVideo4Linux)
	if err != nil {
		return nil, fmt.Errorf("failed to start hotplug monitor: %w", err)
	}

	events := make(chan hotplug.Event, 16)
	go func() {
		defer monitor.Close()
		if err := monitor.Run(ctx, events); err != nil && !errors.Is(err, context.Canceled) {
			logging.GetLogger("hotplug").Error("Hotplug monitor stopped", "error", err)
		}
	}()
	return events, nil
}

// buildSnapshot converts a kernel capability snapshot into the
// registry's device model.
func buildSnapshot(info *v4l2.DeviceInfo, current *v4l2.PixFormat, params *v4l2.StreamParams) *Snapshot {
	snap := &Snapshot{
		Name:       info.Card,
		Driver:     info.Driver,
		BusInfo:    info.BusInfo,
		Version:    info.Version.String(),
		Caps:       uint32(info.Capabilities),
		DeviceCaps: uint32(info.DeviceCaps),
		CapNames:   info.DeviceCaps.Names(),
		Formats:    buildFormats(info),
	}
	if current != nil {
		snap.Current = &ActiveFormat{
			Width:        current.Width,
			Height:       current.Height,
			PixelFormat:  current.PixelFormat.FourCC(),
			Field:        uint32(current.Field),
			BytesPerLine: current.BytesPerLine,
			SizeImage:    current.SizeImage,
			Colorspace:   uint32(current.Colorspace),
		}
	}
	if params != nil {
		snap.Streaming = &StreamSettings{
			TimePerFrame: Fraction{
				Numerator:   params.TimePerFrame.Numerator,
				Denominator: params.TimePerFrame.Denominator,
			},
			FPS:         params.TimePerFrame.FPS(),
			ReadBuffers: params.Buffers,
		}
	}
	return snap
}

func buildFormats(info *v4l2.DeviceInfo) []Format {
	formats := make([]Format, 0, len(info.Formats))
	for _, f := range info.Formats {
		formats = append(formats, Format{
			BufType:     f.BufType.String(),
			PixelFormat: f.PixelFormat.FourCC(),
			Description: f.Description,
			Compressed:  f.Flags.Has(v4l2.FmtFlagCompressed),
			Emulated:    f.Flags.Has(v4l2.FmtFlagEmulated),
			Sizes:       buildSizes(info, f.PixelFormat),
		})
	}
	return formats
}

func buildSizes(info *v4l2.DeviceInfo, pf v4l2.PixelFormat) []FrameSize {
	var sizes []FrameSize
	for _, s := range info.FrameSizesFor(pf) {
		switch v := s.(type) {
		case v4l2.DiscreteFrameSize:
			sizes = append(sizes, FrameSize{
				Width:  v.Width,
				Height: v.Height,
				Rates:  buildRates(info, pf, v.Width, v.Height),
			})
		case v4l2.StepwiseFrameSize:
			sizes = append(sizes, FrameSize{
				Range: &SizeRange{
					MinWidth:   v.MinWidth,
					MaxWidth:   v.MaxWidth,
					StepWidth:  v.StepWidth,
					MinHeight:  v.MinHeight,
					MaxHeight:  v.MaxHeight,
					StepHeight: v.StepHeight,
				},
			})
		}
	}
	return sizes
}

func buildRates(info *v4l2.DeviceInfo, pf v4l2.PixelFormat, width, height uint32) []FrameRate {
	var rates []FrameRate
	for _, i := range info.FrameIntervalsFor(pf, width, height) {
		switch v := i.(type) {
		case v4l2.DiscreteFrameInterval:
			rates = append(rates, FrameRate{
				Interval: Fraction{
					Numerator:   v.Interval.Numerator,
					Denominator: v.Interval.Denominator,
				},
				FPS: v.FPS(),
			})
		case v4l2.StepwiseFrameInterval:
			rates = append(rates, FrameRate{
				Range: &RateRange{
					Min:  Fraction{Numerator: v.Min.Numerator, Denominator: v.Min.Denominator},
					Max:  Fraction{Numerator: v.Max.Numerator, Denominator: v.Max.Denominator},
					Step: Fraction{Numerator: v.Step.Numerator, Denominator: v.Step.Denominator},
				},
			})
		}
	}
	return rates
}
