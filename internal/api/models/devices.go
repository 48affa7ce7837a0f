package models

import (
	"time"

	"github.com/tyrius02/next-gen-vision/internal/devices"
)

// DeviceSummaryData identifies one capture device in list responses.
type DeviceSummaryData struct {
	ID           string   `json:"id" example:"usb-0000:00:14.0-3" doc:"Stable device identifier"`
	Path         string   `json:"path" example:"/dev/video0" doc:"Device node path"`
	Name         string   `json:"name" example:"HD Pro Webcam C920" doc:"Device card name"`
	Driver       string   `json:"driver" example:"uvcvideo" doc:"Kernel driver name"`
	BusInfo      string   `json:"bus_info" example:"usb-0000:00:14.0-3" doc:"Bus location reported by the driver"`
	Caps         uint32   `json:"caps" example:"69206017" doc:"Raw capability flags of this node"`
	Capabilities []string `json:"capabilities" example:"[\"VIDEO_CAPTURE\",\"STREAMING\"]" doc:"Active capability names"`
	Formats      int      `json:"formats" example:"2" doc:"Number of supported image formats"`
}

// DeviceListData is the body of the device list endpoint.
type DeviceListData struct {
	Devices []DeviceSummaryData `json:"devices" doc:"Devices currently present"`
	Count   int                 `json:"count" example:"2" doc:"Number of devices"`
}

// DeviceListResponse wraps DeviceListData for API responses.
type DeviceListResponse struct {
	Body DeviceListData
}

// DeviceDetailData is the full capability snapshot of one device.
type DeviceDetailData struct {
	ID            string              `json:"id" example:"usb-0000:00:14.0-3" doc:"Stable device identifier"`
	Path          string              `json:"path" example:"/dev/video0" doc:"Device node path"`
	Name          string              `json:"name" example:"HD Pro Webcam C920" doc:"Device card name"`
	Driver        string              `json:"driver" example:"uvcvideo" doc:"Kernel driver name"`
	BusInfo       string              `json:"bus_info" example:"usb-0000:00:14.0-3" doc:"Bus location reported by the driver"`
	KernelVersion string              `json:"kernel_version" example:"6.8.4" doc:"Kernel version the driver reported"`
	Caps          uint32              `json:"caps" example:"2225078273" doc:"Raw physical capability flags"`
	DeviceCaps    uint32              `json:"device_caps" example:"69206017" doc:"Raw capability flags of this node"`
	Capabilities  []string            `json:"capabilities" example:"[\"VIDEO_CAPTURE\",\"STREAMING\"]" doc:"Active capability names"`
	Formats       []FormatData        `json:"formats" doc:"Supported image formats with sizes and rates"`
	CurrentFormat *ActiveFormatData   `json:"current_format,omitempty" doc:"Format configured at probe time, when readable"`
	StreamParams  *StreamSettingsData `json:"stream_params,omitempty" doc:"Capture timing parameters, when readable"`
	ScannedAt     time.Time           `json:"scanned_at" doc:"When the device was last probed"`
}

// DeviceDetailResponse wraps DeviceDetailData for API responses.
type DeviceDetailResponse struct {
	Body DeviceDetailData
}

// RescanData reports the outcome of a forced rescan together with the
// resulting device list.
type RescanData struct {
	Devices    []DeviceSummaryData `json:"devices" doc:"Devices present after the rescan"`
	Count      int                 `json:"count" example:"2" doc:"Number of devices"`
	Added      int                 `json:"added" example:"1" doc:"Devices added by the rescan"`
	Removed    int                 `json:"removed" example:"0" doc:"Devices removed by the rescan"`
	Errors     int                 `json:"errors" example:"0" doc:"Probe errors during the rescan"`
	DurationMS float64             `json:"duration_ms" example:"41.7" doc:"Rescan duration in milliseconds"`
}

// RescanResponse wraps RescanData for API responses.
type RescanResponse struct {
	Body RescanData
}

// FormatData describes one image format a device supports.
type FormatData struct {
	BufType     string          `json:"buf_type" example:"VIDEO_CAPTURE" doc:"Buffer type the format applies to"`
	PixelFormat string          `json:"pixel_format" example:"MJPG" doc:"FourCC pixel format code"`
	Description string          `json:"description" example:"Motion-JPEG" doc:"Driver-reported description"`
	Compressed  bool            `json:"compressed" example:"true" doc:"Whether the format is compressed"`
	Emulated    bool            `json:"emulated" example:"false" doc:"Whether the format is emulated in software"`
	Sizes       []FrameSizeData `json:"sizes,omitempty" doc:"Supported frame sizes"`
}

// FrameSizeData describes one supported frame size. Discrete sizes carry
// width and height; stepwise ranges carry the range bounds instead.
type FrameSizeData struct {
	Width  uint32          `json:"width,omitempty" example:"1920" doc:"Frame width in pixels, discrete sizes only"`
	Height uint32          `json:"height,omitempty" example:"1080" doc:"Frame height in pixels, discrete sizes only"`
	Range  *SizeRangeData  `json:"range,omitempty" doc:"Stepwise size range, absent for discrete sizes"`
	Rates  []FrameRateData `json:"rates,omitempty" doc:"Supported frame rates at this size"`
}

// SizeRangeData bounds a stepwise frame size range.
type SizeRangeData struct {
	MinWidth   uint32 `json:"min_width" example:"320" doc:"Smallest frame width"`
	MaxWidth   uint32 `json:"max_width" example:"3840" doc:"Largest frame width"`
	StepWidth  uint32 `json:"step_width" example:"2" doc:"Width increment"`
	MinHeight  uint32 `json:"min_height" example:"240" doc:"Smallest frame height"`
	MaxHeight  uint32 `json:"max_height" example:"2160" doc:"Largest frame height"`
	StepHeight uint32 `json:"step_height" example:"2" doc:"Height increment"`
}

// FrameRateData describes one supported frame rate. Discrete rates carry
// the exact interval; stepwise ranges carry interval bounds instead.
type FrameRateData struct {
	Interval FractionData   `json:"interval" doc:"Frame interval in seconds as an exact fraction"`
	FPS      float64        `json:"fps" example:"30" doc:"Frames per second derived from the interval"`
	Range    *RateRangeData `json:"range,omitempty" doc:"Stepwise interval range, absent for discrete rates"`
}

// RateRangeData bounds a stepwise frame interval range.
type RateRangeData struct {
	Min  FractionData `json:"min" doc:"Shortest frame interval"`
	Max  FractionData `json:"max" doc:"Longest frame interval"`
	Step FractionData `json:"step" doc:"Interval increment"`
}

// FractionData is an exact rational value.
type FractionData struct {
	Numerator   uint32 `json:"numerator" example:"1" doc:"Fraction numerator"`
	Denominator uint32 `json:"denominator" example:"30" doc:"Fraction denominator"`
}

// ActiveFormatData is the pixel format a device is currently configured for.
type ActiveFormatData struct {
	Width        uint32 `json:"width" example:"1920" doc:"Frame width in pixels"`
	Height       uint32 `json:"height" example:"1080" doc:"Frame height in pixels"`
	PixelFormat  string `json:"pixel_format" example:"YUYV" doc:"FourCC pixel format code"`
	Field        uint32 `json:"field" example:"1" doc:"Interlacing field order"`
	BytesPerLine uint32 `json:"bytes_per_line" example:"3840" doc:"Bytes per scan line"`
	SizeImage    uint32 `json:"size_image" example:"4147200" doc:"Frame buffer size in bytes"`
	Colorspace   uint32 `json:"colorspace" example:"8" doc:"Colorspace identifier"`
}

// StreamSettingsData is the capture timing a device is currently configured for.
type StreamSettingsData struct {
	TimePerFrame FractionData `json:"time_per_frame" doc:"Configured frame interval"`
	FPS          float64      `json:"fps" example:"30" doc:"Frames per second derived from the interval"`
	ReadBuffers  uint32       `json:"read_buffers" example:"4" doc:"Driver read buffer count"`
}

// NewDeviceSummary converts a registry snapshot into its list representation.
func NewDeviceSummary(snap *devices.Snapshot) DeviceSummaryData {
	return DeviceSummaryData{
		ID:           snap.ID,
		Path:         snap.Path,
		Name:         snap.Name,
		Driver:       snap.Driver,
		BusInfo:      snap.BusInfo,
		Caps:         snap.DeviceCaps,
		Capabilities: snap.CapNames,
		Formats:      len(snap.Formats),
	}
}

// NewDeviceSummaries converts registry snapshots in the order given.
func NewDeviceSummaries(snaps []*devices.Snapshot) []DeviceSummaryData {
	summaries := make([]DeviceSummaryData, 0, len(snaps))
	for _, snap := range snaps {
		summaries = append(summaries, NewDeviceSummary(snap))
	}
	return summaries
}

// NewDeviceDetail converts a registry snapshot into its full representation.
func NewDeviceDetail(snap *devices.Snapshot) DeviceDetailData {
	detail := DeviceDetailData{
		ID:            snap.ID,
		Path:          snap.Path,
		Name:          snap.Name,
		Driver:        snap.Driver,
		BusInfo:       snap.BusInfo,
		KernelVersion: snap.Version,
		Caps:          snap.Caps,
		DeviceCaps:    snap.DeviceCaps,
		Capabilities:  snap.CapNames,
		Formats:       newFormats(snap.Formats),
		ScannedAt:     snap.ScannedAt,
	}

	if cur := snap.Current; cur != nil {
		detail.CurrentFormat = &ActiveFormatData{
			Width:        cur.Width,
			Height:       cur.Height,
			PixelFormat:  cur.PixelFormat,
			Field:        cur.Field,
			BytesPerLine: cur.BytesPerLine,
			SizeImage:    cur.SizeImage,
			Colorspace:   cur.Colorspace,
		}
	}

	if sp := snap.Streaming; sp != nil {
		detail.StreamParams = &StreamSettingsData{
			TimePerFrame: newFraction(sp.TimePerFrame),
			FPS:          sp.FPS,
			ReadBuffers:  sp.ReadBuffers,
		}
	}

	return detail
}

func newFormats(formats []devices.Format) []FormatData {
	out := make([]FormatData, 0, len(formats))
	for _, f := range formats {
		out = append(out, FormatData{
			BufType:     f.BufType,
			PixelFormat: f.PixelFormat,
			Description: f.Description,
			Compressed:  f.Compressed,
			Emulated:    f.Emulated,
			Sizes:       newSizes(f.Sizes),
		})
	}
	return out
}

func newSizes(sizes []devices.FrameSize) []FrameSizeData {
	out := make([]FrameSizeData, 0, len(sizes))
	for _, s := range sizes {
		size := FrameSizeData{
			Width:  s.Width,
			Height: s.Height,
			Rates:  newRates(s.Rates),
		}
		if r := s.Range; r != nil {
			size.Range = &SizeRangeData{
				MinWidth:   r.MinWidth,
				MaxWidth:   r.MaxWidth,
				StepWidth:  r.StepWidth,
				MinHeight:  r.MinHeight,
				MaxHeight:  r.MaxHeight,
				StepHeight: r.StepHeight,
			}
		}
		out = append(out, size)
	}
	return out
}

func newRates(rates []devices.FrameRate) []FrameRateData {
	if len(rates) == 0 {
		return nil
	}
	out := make([]FrameRateData, 0, len(rates))
	for _, r := range rates {
		rate := FrameRateData{
			Interval: newFraction(r.Interval),
			FPS:      r.FPS,
		}
		if rng := r.Range; rng != nil {
			rate.Range = &RateRangeData{
				Min:  newFraction(rng.Min),
				Max:  newFraction(rng.Max),
				Step: newFraction(rng.Step),
			}
		}
		out = append(out, rate)
	}
	return out
}

func newFraction(f devices.Fraction) FractionData {
	return FractionData{Numerator: f.Numerator, Denominator: f.Denominator}
}
