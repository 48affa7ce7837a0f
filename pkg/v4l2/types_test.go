//go:build linux

package v4l2

import (
	"math"
	"reflect"
	"testing"
)

func TestCapabilitiesNames(t *testing.T) {
	tests := []struct {
		name     string
		caps     Capabilities
		expected []string
	}{
		{
			name:     "single flag",
			caps:     CapVideoCapture,
			expected: []string{"VIDEO_CAPTURE"},
		},
		{
			name:     "typical webcam",
			caps:     CapVideoCapture | CapStreaming | CapExtPixFormat,
			expected: []string{"VIDEO_CAPTURE", "EXT_PIX_FORMAT", "STREAMING"},
		},
		{
			name:     "unknown bits are ignored by Names",
			caps:     CapVideoCapture | 0x40000000,
			expected: []string{"VIDEO_CAPTURE"},
		},
		{
			name:     "no flags",
			caps:     0,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.caps.Names(); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Names() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCapabilitiesHas(t *testing.T) {
	caps := CapVideoCapture | CapStreaming

	if !caps.Has(CapVideoCapture) {
		t.Error("Has(CapVideoCapture) = false, want true")
	}
	if !caps.Has(CapVideoCapture | CapStreaming) {
		t.Error("Has(both flags) = false, want true")
	}
	if caps.Has(CapVideoOutput) {
		t.Error("Has(CapVideoOutput) = true, want false")
	}
	if caps.Has(CapVideoCapture | CapVideoOutput) {
		t.Error("Has(partially set flags) = true, want false")
	}

	// Unknown bits survive the round trip through the type.
	word := Capabilities(0x40000000 | 0x1)
	if uint32(word) != 0x40000001 {
		t.Errorf("capability word = %#08x, want 0x40000001", uint32(word))
	}
}

func TestBufTypeString(t *testing.T) {
	tests := []struct {
		name     string
		bufType  BufType
		expected string
	}{
		{"video capture", BufTypeVideoCapture, "VIDEO_CAPTURE"},
		{"meta output", BufTypeMetaOutput, "META_OUTPUT"},
		{"unknown tag", BufType(42), "BUF_TYPE(42)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.bufType.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestBufTypeCapMask(t *testing.T) {
	tests := []struct {
		name     string
		bufType  BufType
		expected Capabilities
	}{
		{"video capture", BufTypeVideoCapture, CapVideoCapture},
		{"video output", BufTypeVideoOutput, CapVideoOutput},
		{"video overlay", BufTypeVideoOverlay, CapVideoOverlay},
		{"capture mplane", BufTypeVideoCaptureMplane, CapVideoCaptureMplane},
		{"output mplane", BufTypeVideoOutputMplane, CapVideoOutputMplane},
		{"sdr capture", BufTypeSDRCapture, CapSDRCapture},
		{"sdr output", BufTypeSDROutput, CapSDROutput},
		{"meta capture", BufTypeMetaCapture, CapMetaCapture},
		{"meta output", BufTypeMetaOutput, CapMetaOutput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.bufType.capMask(); got != tt.expected {
				t.Errorf("capMask() = %#08x, want %#08x", uint32(got), uint32(tt.expected))
			}
		})
	}
}

func TestEnumerableBufTypesOrdered(t *testing.T) {
	for i := 1; i < len(enumerableBufTypes); i++ {
		if enumerableBufTypes[i-1] >= enumerableBufTypes[i] {
			t.Fatalf("enumerable buffer types not in tag order at %d: %v then %v",
				i, enumerableBufTypes[i-1], enumerableBufTypes[i])
		}
	}
}

func TestFractFPS(t *testing.T) {
	tests := []struct {
		name     string
		fract    Fract
		expected float64
	}{
		{"30 fps", Fract{1, 30}, 30.0},
		{"NTSC 29.97", Fract{1001, 30000}, 30000.0 / 1001.0},
		{"half fps", Fract{2, 1}, 0.5},
		{"zero numerator", Fract{0, 30}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fract.FPS(); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("FPS() = %v, want %v", got, tt.expected)
			}
		})
	}

	if s := (Fract{1, 30}).String(); s != "1/30" {
		t.Errorf("String() = %q, want %q", s, "1/30")
	}
}

func TestKernelVersionString(t *testing.T) {
	v := KernelVersion{Major: 6, Minor: 1, Patch: 42}
	if got := v.String(); got != "6.1.42" {
		t.Errorf("String() = %q, want %q", got, "6.1.42")
	}
}

func TestDeviceInfoPixelFormatsFirstSeenOrder(t *testing.T) {
	info := &DeviceInfo{
		Formats: []ImageFormat{
			{BufType: BufTypeVideoCapture, PixelFormat: PixFmtMJPEG},
			{BufType: BufTypeVideoCapture, PixelFormat: PixFmtYUYV},
			{BufType: BufTypeMetaCapture, PixelFormat: PixFmtMJPEG},
		},
	}

	expected := []PixelFormat{PixFmtMJPEG, PixFmtYUYV}
	if got := info.PixelFormats(); !reflect.DeepEqual(got, expected) {
		t.Errorf("PixelFormats() = %v, want %v", got, expected)
	}
}

func TestDeviceInfoLookups(t *testing.T) {
	info := &DeviceInfo{
		FrameSizes: []FrameSize{
			DiscreteFrameSize{PixelFormat: PixFmtYUYV, Width: 640, Height: 480},
			DiscreteFrameSize{PixelFormat: PixFmtYUYV, Width: 1280, Height: 720},
			StepwiseFrameSize{PixelFormat: PixFmtMJPEG, MinWidth: 16, MaxWidth: 1920, StepWidth: 2, MinHeight: 16, MaxHeight: 1080, StepHeight: 2},
		},
		FrameIntervals: []FrameInterval{
			DiscreteFrameInterval{PixelFormat: PixFmtYUYV, Width: 640, Height: 480, Interval: Fract{1, 30}},
			DiscreteFrameInterval{PixelFormat: PixFmtYUYV, Width: 640, Height: 480, Interval: Fract{1, 15}},
			DiscreteFrameInterval{PixelFormat: PixFmtYUYV, Width: 1280, Height: 720, Interval: Fract{1, 10}},
		},
	}

	if got := info.FrameSizesFor(PixFmtYUYV); len(got) != 2 {
		t.Errorf("FrameSizesFor(YUYV) returned %d sizes, want 2", len(got))
	}
	if got := info.FrameSizesFor(PixFmtMJPEG); len(got) != 1 {
		t.Errorf("FrameSizesFor(MJPEG) returned %d sizes, want 1", len(got))
	}
	if got := info.FrameSizesFor(PixFmtNV12); len(got) != 0 {
		t.Errorf("FrameSizesFor(NV12) returned %d sizes, want 0", len(got))
	}

	intervals := info.FrameIntervalsFor(PixFmtYUYV, 640, 480)
	if len(intervals) != 2 {
		t.Fatalf("FrameIntervalsFor(YUYV, 640, 480) returned %d intervals, want 2", len(intervals))
	}
	first, ok := intervals[0].(DiscreteFrameInterval)
	if !ok {
		t.Fatalf("interval has type %T, want DiscreteFrameInterval", intervals[0])
	}
	if first.Interval != (Fract{1, 30}) {
		t.Errorf("first interval = %v, want 1/30", first.Interval)
	}
}
