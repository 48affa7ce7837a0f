//go:build linux

package v4l2

import "fmt"

// Capabilities is the 32-bit capability word reported by a device.
// Unknown bits are preserved as-is.
type Capabilities uint32

// Device capability bits (V4L2_CAP_*).
const (
	CapVideoCapture       Capabilities = 0x00000001
	CapVideoOutput        Capabilities = 0x00000002
	CapVideoOverlay       Capabilities = 0x00000004
	CapVBICapture         Capabilities = 0x00000010
	CapVBIOutput          Capabilities = 0x00000020
	CapSlicedVBICapture   Capabilities = 0x00000040
	CapSlicedVBIOutput    Capabilities = 0x00000080
	CapRDSCapture         Capabilities = 0x00000100
	CapVideoOutputOverlay Capabilities = 0x00000200
	CapHWFreqSeek         Capabilities = 0x00000400
	CapRDSOutput          Capabilities = 0x00000800
	CapVideoCaptureMplane Capabilities = 0x00001000
	CapVideoOutputMplane  Capabilities = 0x00002000
	CapVideoM2MMplane     Capabilities = 0x00004000
	CapVideoM2M           Capabilities = 0x00008000
	CapTuner              Capabilities = 0x00010000
	CapAudio              Capabilities = 0x00020000
	CapRadio              Capabilities = 0x00040000
	CapModulator          Capabilities = 0x00080000
	CapSDRCapture         Capabilities = 0x00100000
	CapExtPixFormat       Capabilities = 0x00200000
	CapSDROutput          Capabilities = 0x00400000
	CapMetaCapture        Capabilities = 0x00800000
	CapReadWrite          Capabilities = 0x01000000
	CapAsyncIO            Capabilities = 0x02000000
	CapStreaming          Capabilities = 0x04000000
	CapMetaOutput         Capabilities = 0x08000000
	CapTouch              Capabilities = 0x10000000
	CapDeviceCaps         Capabilities = 0x80000000
)

var capNames = []struct {
	flag Capabilities
	name string
}{
	{CapVideoCapture, "VIDEO_CAPTURE"},
	{CapVideoOutput, "VIDEO_OUTPUT"},
	{CapVideoOverlay, "VIDEO_OVERLAY"},
	{CapVBICapture, "VBI_CAPTURE"},
	{CapVBIOutput, "VBI_OUTPUT"},
	{CapSlicedVBICapture, "SLICED_VBI_CAPTURE"},
	{CapSlicedVBIOutput, "SLICED_VBI_OUTPUT"},
	{CapRDSCapture, "RDS_CAPTURE"},
	{CapVideoOutputOverlay, "VIDEO_OUTPUT_OVERLAY"},
	{CapHWFreqSeek, "HW_FREQ_SEEK"},
	{CapRDSOutput, "RDS_OUTPUT"},
	{CapVideoCaptureMplane, "VIDEO_CAPTURE_MPLANE"},
	{CapVideoOutputMplane, "VIDEO_OUTPUT_MPLANE"},
	{CapVideoM2MMplane, "VIDEO_M2M_MPLANE"},
	{CapVideoM2M, "VIDEO_M2M"},
	{CapTuner, "TUNER"},
	{CapAudio, "AUDIO"},
	{CapRadio, "RADIO"},
	{CapModulator, "MODULATOR"},
	{CapSDRCapture, "SDR_CAPTURE"},
	{CapExtPixFormat, "EXT_PIX_FORMAT"},
	{CapSDROutput, "SDR_OUTPUT"},
	{CapMetaCapture, "META_CAPTURE"},
	{CapReadWrite, "READWRITE"},
	{CapAsyncIO, "ASYNCIO"},
	{CapStreaming, "STREAMING"},
	{CapMetaOutput, "META_OUTPUT"},
	{CapTouch, "TOUCH"},
	{CapDeviceCaps, "DEVICE_CAPS"},
}

// Has reports whether all bits of flag are set.
func (c Capabilities) Has(flag Capabilities) bool {
	return c&flag == flag
}

// Names returns the names of all known flags set in c, in bit order.
func (c Capabilities) Names() []string {
	var names []string
	for _, e := range capNames {
		if c&e.flag != 0 {
			names = append(names, e.name)
		}
	}
	return names
}

// BufType identifies a data stream on a device.
type BufType uint32

// Buffer types.
const (
	BufTypeVideoCapture       BufType = 1
	BufTypeVideoOutput        BufType = 2
	BufTypeVideoOverlay       BufType = 3
	BufTypeVBICapture         BufType = 4
	BufTypeVBIOutput          BufType = 5
	BufTypeSlicedVBICapture   BufType = 6
	BufTypeSlicedVBIOutput    BufType = 7
	BufTypeVideoOutputOverlay BufType = 8
	BufTypeVideoCaptureMplane BufType = 9
	BufTypeVideoOutputMplane  BufType = 10
	BufTypeSDRCapture         BufType = 11
	BufTypeSDROutput          BufType = 12
	BufTypeMetaCapture        BufType = 13
	BufTypeMetaOutput         BufType = 14
)

var bufTypeNames = map[BufType]string{
	BufTypeVideoCapture:       "VIDEO_CAPTURE",
	BufTypeVideoOutput:        "VIDEO_OUTPUT",
	BufTypeVideoOverlay:       "VIDEO_OVERLAY",
	BufTypeVBICapture:         "VBI_CAPTURE",
	BufTypeVBIOutput:          "VBI_OUTPUT",
	BufTypeSlicedVBICapture:   "SLICED_VBI_CAPTURE",
	BufTypeSlicedVBIOutput:    "SLICED_VBI_OUTPUT",
	BufTypeVideoOutputOverlay: "VIDEO_OUTPUT_OVERLAY",
	BufTypeVideoCaptureMplane: "VIDEO_CAPTURE_MPLANE",
	BufTypeVideoOutputMplane:  "VIDEO_OUTPUT_MPLANE",
	BufTypeSDRCapture:         "SDR_CAPTURE",
	BufTypeSDROutput:          "SDR_OUTPUT",
	BufTypeMetaCapture:        "META_CAPTURE",
	BufTypeMetaOutput:         "META_OUTPUT",
}

// bufTypeCaps maps each buffer type to the same-named capability flag.
var bufTypeCaps = map[BufType]Capabilities{
	BufTypeVideoCapture:       CapVideoCapture,
	BufTypeVideoOutput:        CapVideoOutput,
	BufTypeVideoOverlay:       CapVideoOverlay,
	BufTypeVBICapture:         CapVBICapture,
	BufTypeVBIOutput:          CapVBIOutput,
	BufTypeSlicedVBICapture:   CapSlicedVBICapture,
	BufTypeSlicedVBIOutput:    CapSlicedVBIOutput,
	BufTypeVideoOutputOverlay: CapVideoOutputOverlay,
	BufTypeVideoCaptureMplane: CapVideoCaptureMplane,
	BufTypeVideoOutputMplane:  CapVideoOutputMplane,
	BufTypeSDRCapture:         CapSDRCapture,
	BufTypeSDROutput:          CapSDROutput,
	BufTypeMetaCapture:        CapMetaCapture,
	BufTypeMetaOutput:         CapMetaOutput,
}

func (t BufType) String() string {
	if name, ok := bufTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("BUF_TYPE(%d)", uint32(t))
}

func (t BufType) capMask() Capabilities {
	return bufTypeCaps[t]
}

// enumerableBufTypes lists the buffer types that support format
// enumeration, in tag order so snapshots come out deterministic.
var enumerableBufTypes = []BufType{
	BufTypeVideoCapture,
	BufTypeVideoOutput,
	BufTypeVideoOverlay,
	BufTypeVideoCaptureMplane,
	BufTypeVideoOutputMplane,
	BufTypeSDRCapture,
	BufTypeSDROutput,
	BufTypeMetaCapture,
	BufTypeMetaOutput,
}

// FmtFlags describes a format as reported by format enumeration.
type FmtFlags uint32

// Format description flags.
const (
	FmtFlagCompressed           FmtFlags = 0x0001
	FmtFlagEmulated             FmtFlags = 0x0002
	FmtFlagContinuousBytestream FmtFlags = 0x0004
	FmtFlagDynResolution        FmtFlags = 0x0008
	FmtFlagEncCapFrameInterval  FmtFlags = 0x0010
	FmtFlagCSCColorspace        FmtFlags = 0x0020
	FmtFlagCSCXferFunc          FmtFlags = 0x0040
	FmtFlagCSCYcbcrEnc          FmtFlags = 0x0080
	FmtFlagCSCHSVEnc            FmtFlags = 0x0080 // same bit as YCbCr for HSV formats
	FmtFlagCSCQuantization      FmtFlags = 0x0100
)

// Has reports whether all bits of flag are set.
func (f FmtFlags) Has(flag FmtFlags) bool {
	return f&flag == flag
}

// Field is the interlacing mode of a format.
type Field uint32

// Field values.
const (
	FieldAny          Field = 0
	FieldNone         Field = 1
	FieldTop          Field = 2
	FieldBottom       Field = 3
	FieldInterlaced   Field = 4
	FieldSeqTB        Field = 5
	FieldSeqBT        Field = 6
	FieldAlternate    Field = 7
	FieldInterlacedTB Field = 8
	FieldInterlacedBT Field = 9
)

// Colorspace identifies the color encoding of a format.
type Colorspace uint32

// Colorspace values.
const (
	ColorspaceDefault     Colorspace = 0
	ColorspaceSMPTE170M   Colorspace = 1
	ColorspaceSMPTE240M   Colorspace = 2
	ColorspaceRec709      Colorspace = 3
	ColorspaceBT878       Colorspace = 4
	ColorspaceSystemM470  Colorspace = 5
	ColorspaceSystemBG470 Colorspace = 6
	ColorspaceJPEG        Colorspace = 7
	ColorspaceSRGB        Colorspace = 8
	ColorspaceOpRGB       Colorspace = 9
	ColorspaceBT2020      Colorspace = 10
	ColorspaceRaw         Colorspace = 11
	ColorspaceDCIP3       Colorspace = 12
)

// Quantization is the range of a format's color samples.
type Quantization uint32

// Quantization values.
const (
	QuantizationDefault   Quantization = 0
	QuantizationFullRange Quantization = 1
	QuantizationLimRange  Quantization = 2
)

// XferFunc is the transfer function of a format.
type XferFunc uint32

// Transfer functions.
const (
	XferFuncDefault   XferFunc = 0
	XferFunc709       XferFunc = 1
	XferFuncSRGB      XferFunc = 2
	XferFuncOpRGB     XferFunc = 3
	XferFuncSMPTE240M XferFunc = 4
	XferFuncNone      XferFunc = 5
	XferFuncDCIP3     XferFunc = 6
	XferFuncSMPTE2084 XferFunc = 7
)

// FormatFlags are the per-format flags of the pix view.
type FormatFlags uint32

// Pix format flags.
const (
	FormatFlagPremulAlpha FormatFlags = 0x00000001
	FormatFlagSetCSC      FormatFlags = 0x00000002
)

// Fract is an exact rational. A frame interval of 1/30 means one frame
// every 1/30th of a second.
type Fract struct {
	Numerator   uint32
	Denominator uint32
}

// FPS returns the interval expressed as frames per second.
func (f Fract) FPS() float64 {
	if f.Numerator == 0 {
		return 0
	}
	return float64(f.Denominator) / float64(f.Numerator)
}

func (f Fract) String() string {
	return fmt.Sprintf("%d/%d", f.Numerator, f.Denominator)
}

// ImageFormat is one entry of a device's format enumeration.
type ImageFormat struct {
	BufType     BufType
	Flags       FmtFlags
	PixelFormat PixelFormat
	Description string
	MBusCode    uint32
}

// FrameSize is one entry of a device's frame size enumeration: either
// a DiscreteFrameSize or a StepwiseFrameSize. Continuous ranges are
// reported as stepwise with steps of 1.
type FrameSize interface {
	isFrameSize()
}

// DiscreteFrameSize is a single supported width and height.
type DiscreteFrameSize struct {
	PixelFormat PixelFormat
	Width       uint32
	Height      uint32
}

func (DiscreteFrameSize) isFrameSize() {}

func (s DiscreteFrameSize) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// StepwiseFrameSize is a supported range of widths and heights.
type StepwiseFrameSize struct {
	PixelFormat PixelFormat
	MinWidth    uint32
	MaxWidth    uint32
	StepWidth   uint32
	MinHeight   uint32
	MaxHeight   uint32
	StepHeight  uint32
}

func (StepwiseFrameSize) isFrameSize() {}

func (s StepwiseFrameSize) String() string {
	return fmt.Sprintf("%d-%dx%d-%d step %dx%d",
		s.MinWidth, s.MaxWidth, s.MinHeight, s.MaxHeight, s.StepWidth, s.StepHeight)
}

// FrameInterval is one entry of a device's frame interval enumeration:
// either a DiscreteFrameInterval or a StepwiseFrameInterval. Continuous
// ranges are reported as stepwise with a step of 1/1.
type FrameInterval interface {
	isFrameInterval()
}

// DiscreteFrameInterval is a single supported frame interval for one
// discrete frame size.
type DiscreteFrameInterval struct {
	PixelFormat PixelFormat
	Width       uint32
	Height      uint32
	Interval    Fract
}

func (DiscreteFrameInterval) isFrameInterval() {}

// FPS returns the interval expressed as frames per second.
func (i DiscreteFrameInterval) FPS() float64 {
	return i.Interval.FPS()
}

// StepwiseFrameInterval is a supported range of frame intervals for one
// discrete frame size.
type StepwiseFrameInterval struct {
	PixelFormat PixelFormat
	Width       uint32
	Height      uint32
	Min         Fract
	Max         Fract
	Step        Fract
}

func (StepwiseFrameInterval) isFrameInterval() {}

// KernelVersion is the driver version reported by a device.
type KernelVersion struct {
	Major uint32
	Minor uint32
	Patch uint32
}

func (v KernelVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Capability is the identity and capability word pair reported by a
// device. DeviceCaps is the set in effect for the opened node;
// Capabilities covers the physical device as a whole, which may expose
// several nodes.
type Capability struct {
	Driver       string
	Card         string
	BusInfo      string
	Version      KernelVersion
	Capabilities Capabilities
	DeviceCaps   Capabilities
}

// DeviceInfo is a complete capability snapshot of one device node.
type DeviceInfo struct {
	Driver         string
	Card           string
	BusInfo        string
	Version        KernelVersion
	Capabilities   Capabilities
	DeviceCaps     Capabilities
	Formats        []ImageFormat
	FrameSizes     []FrameSize
	FrameIntervals []FrameInterval
}

// PixelFormats returns the distinct pixel formats of the snapshot in
// first-seen order.
func (d *DeviceInfo) PixelFormats() []PixelFormat {
	seen := make(map[PixelFormat]bool, len(d.Formats))
	var formats []PixelFormat
	for _, f := range d.Formats {
		if !seen[f.PixelFormat] {
			seen[f.PixelFormat] = true
			formats = append(formats, f.PixelFormat)
		}
	}
	return formats
}

// FrameSizesFor returns the frame sizes recorded for one pixel format.
func (d *DeviceInfo) FrameSizesFor(pf PixelFormat) []FrameSize {
	var sizes []FrameSize
	for _, s := range d.FrameSizes {
		switch v := s.(type) {
		case DiscreteFrameSize:
			if v.PixelFormat == pf {
				sizes = append(sizes, v)
			}
		case StepwiseFrameSize:
			if v.PixelFormat == pf {
				sizes = append(sizes, v)
			}
		}
	}
	return sizes
}

// FrameIntervalsFor returns the frame intervals recorded for one
// discrete frame size.
func (d *DeviceInfo) FrameIntervalsFor(pf PixelFormat, width, height uint32) []FrameInterval {
	var intervals []FrameInterval
	for _, i := range d.FrameIntervals {
		switch v := i.(type) {
		case DiscreteFrameInterval:
			if v.PixelFormat == pf && v.Width == width && v.Height == height {
				intervals = append(intervals, v)
			}
		case StepwiseFrameInterval:
			if v.PixelFormat == pf && v.Width == width && v.Height == height {
				intervals = append(intervals, v)
			}
		}
	}
	return intervals
}

// PixFormat is the decoded single-planar view of a device's current
// format.
type PixFormat struct {
	Width        uint32
	Height       uint32
	PixelFormat  PixelFormat
	Field        Field
	BytesPerLine uint32
	SizeImage    uint32
	Colorspace   Colorspace
	Flags        FormatFlags
	YcbcrEnc     uint32
	Quantization Quantization
	XferFunc     XferFunc
}

// StreamParams are the decoded streaming parameters of one stream.
// Capture and output streams share the same field layout; Buffers is
// the read buffer count for capture and the write buffer count for
// output.
type StreamParams struct {
	BufType      BufType
	Capability   uint32
	Mode         uint32
	TimePerFrame Fract
	ExtendedMode uint32
	Buffers      uint32
}

// enum v4l2_frmsizetypes.
const (
	frmsizeTypeDiscrete   = 1
	frmsizeTypeContinuous = 2
	frmsizeTypeStepwise   = 3
)

// enum v4l2_frmivaltypes.
const (
	frmivalTypeDiscrete   = 1
	frmivalTypeContinuous = 2
	frmivalTypeStepwise   = 3
)
