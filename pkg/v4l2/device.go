//go:build linux

package v4l2

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"unsafe"
)

// Default discovery location for video device nodes.
const (
	DefaultDeviceDir    = "/dev"
	DefaultDevicePrefix = "video"
)

// Device is an open handle to one video device node. A Device is not
// safe for concurrent use; callers issue one request at a time per
// handle. Distinct handles are independent.
type Device struct {
	path string
	fd   int
	tr   Transport
}

// Open opens a device node for capability queries. The descriptor is
// opened read-only and switched to non-blocking afterwards so that a
// misbehaving driver cannot stall discovery.
func Open(path string) (*Device, error) {
	fd, err := syscall.Open(path, syscall.O_RDONLY|syscall.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open device %s: %w", path, err)
	}
	if err := syscall.SetNonblock(fd, true); err != nil {
		syscall.Close(fd)
		return nil, fmt.Errorf("failed to set %s non-blocking: %w", path, err)
	}
	return &Device{path: path, fd: fd, tr: syscallTransport{}}, nil
}

// Path returns the device node path the handle was opened with.
func (d *Device) Path() string {
	return d.path
}

// Close releases the descriptor.
func (d *Device) Close() error {
	return syscall.Close(d.fd)
}

// QueryCap returns the identity and capability words of the device.
func (d *Device) QueryCap() (*Capability, error) {
	c := v4l2Capability{}
	if err := d.tr.Ioctl(d.fd, vidiocQuerycap, unsafe.Pointer(&c)); err != nil {
		return nil, fmt.Errorf("failed to query capabilities of %s: %w", d.path, err)
	}
	return &Capability{
		Driver:  cstr(c.driver[:]),
		Card:    cstr(c.card[:]),
		BusInfo: cstr(c.busInfo[:]),
		Version: KernelVersion{
			Major: (c.version >> 16) & 0xFF,
			Minor: (c.version >> 8) & 0xFF,
			Patch: c.version & 0xFF,
		},
		Capabilities: Capabilities(c.capabilities),
		DeviceCaps:   Capabilities(c.deviceCaps),
	}, nil
}

// Formats enumerates the image formats of one buffer type.
func (d *Device) Formats(bufType BufType) ([]ImageFormat, error) {
	var formats []ImageFormat

	for i := uint32(0); ; i++ {
		desc := v4l2Fmtdesc{
			index: i,
			typ:   uint32(bufType),
		}

		if err := d.tr.Ioctl(d.fd, vidiocEnumFmt, unsafe.Pointer(&desc)); err != nil {
			if errors.Is(err, syscall.EINVAL) {
				break // no more formats
			}
			return nil, fmt.Errorf("failed to enumerate format %d on %s: %w", i, d.path, err)
		}

		pf, err := lookupPixelFormat(desc.pixelformat)
		if err != nil {
			return nil, fmt.Errorf("format %d on %s: %w", i, d.path, err)
		}

		formats = append(formats, ImageFormat{
			BufType:     bufType,
			Flags:       FmtFlags(desc.flags),
			PixelFormat: pf,
			Description: cstr(desc.description[:]),
			MBusCode:    desc.mbusCode,
		})
	}

	return formats, nil
}

// FrameSizes enumerates the frame sizes of one pixel format. Devices
// that do not implement frame size enumeration report none.
func (d *Device) FrameSizes(pf PixelFormat) ([]FrameSize, error) {
	var sizes []FrameSize

	for i := uint32(0); ; i++ {
		frmsize := v4l2Frmsizeenum{
			index:       i,
			pixelFormat: uint32(pf),
		}

		if err := d.tr.Ioctl(d.fd, vidiocEnumFramesizes, unsafe.Pointer(&frmsize)); err != nil {
			if errors.Is(err, syscall.EINVAL) {
				break // no more sizes
			}
			// ENOTTY means the device doesn't support frame size enumeration
			if errors.Is(err, syscall.ENOTTY) {
				return []FrameSize{}, nil
			}
			return nil, fmt.Errorf("failed to enumerate frame size %d on %s: %w", i, d.path, err)
		}

		switch frmsize.typ {
		case frmsizeTypeDiscrete:
			sizes = append(sizes, DiscreteFrameSize{
				PixelFormat: pf,
				Width:       frmsize.discrete.width,
				Height:      frmsize.discrete.height,
			})
		case frmsizeTypeContinuous, frmsizeTypeStepwise:
			// Continuous ranges come back with steps of 1.
			sw := frmsize.stepwise()
			sizes = append(sizes, StepwiseFrameSize{
				PixelFormat: pf,
				MinWidth:    sw.minWidth,
				MaxWidth:    sw.maxWidth,
				StepWidth:   sw.stepWidth,
				MinHeight:   sw.minHeight,
				MaxHeight:   sw.maxHeight,
				StepHeight:  sw.stepHeight,
			})
		default:
			return nil, fmt.Errorf("frame size %d on %s: unknown type %d", i, d.path, frmsize.typ)
		}
	}

	return sizes, nil
}

// FrameIntervals enumerates the frame intervals of one discrete frame
// size.
func (d *Device) FrameIntervals(pf PixelFormat, width, height uint32) ([]FrameInterval, error) {
	var intervals []FrameInterval

	for i := uint32(0); ; i++ {
		frmival := v4l2Frmivalenum{
			index:       i,
			pixelFormat: uint32(pf),
			width:       width,
			height:      height,
		}

		if err := d.tr.Ioctl(d.fd, vidiocEnumFrameintervals, unsafe.Pointer(&frmival)); err != nil {
			if errors.Is(err, syscall.EINVAL) {
				break // no more intervals
			}
			return nil, fmt.Errorf("failed to enumerate frame interval %d on %s: %w", i, d.path, err)
		}

		switch frmival.typ {
		case frmivalTypeDiscrete:
			intervals = append(intervals, DiscreteFrameInterval{
				PixelFormat: pf,
				Width:       width,
				Height:      height,
				Interval: Fract{
					Numerator:   frmival.discrete.numerator,
					Denominator: frmival.discrete.denominator,
				},
			})
		case frmivalTypeContinuous, frmivalTypeStepwise:
			sw := frmival.stepwise()
			intervals = append(intervals, StepwiseFrameInterval{
				PixelFormat: pf,
				Width:       width,
				Height:      height,
				Min:         Fract{sw.min.numerator, sw.min.denominator},
				Max:         Fract{sw.max.numerator, sw.max.denominator},
				Step:        Fract{sw.step.numerator, sw.step.denominator},
			})
		default:
			return nil, fmt.Errorf("frame interval %d on %s: unknown type %d", i, d.path, frmival.typ)
		}
	}

	return intervals, nil
}

// CurrentFormat reads back the active format of one stream through its
// single-planar view.
func (d *Device) CurrentFormat(bufType BufType) (*PixFormat, error) {
	f := v4l2Format{typ: uint32(bufType)}
	if err := d.tr.Ioctl(d.fd, vidiocGFmt, unsafe.Pointer(&f)); err != nil {
		return nil, fmt.Errorf("failed to get format of %s on %s: %w", bufType, d.path, err)
	}

	pix := f.pix()
	pf, err := lookupPixelFormat(pix.pixelformat)
	if err != nil {
		return nil, fmt.Errorf("current format on %s: %w", d.path, err)
	}

	out := &PixFormat{
		Width:        pix.width,
		Height:       pix.height,
		PixelFormat:  pf,
		Field:        Field(pix.field),
		BytesPerLine: pix.bytesperline,
		SizeImage:    pix.sizeimage,
		Colorspace:   Colorspace(pix.colorspace),
	}
	// The extended fields are only meaningful behind the priv sentinel.
	if pix.priv == PixFmtPrivMagic {
		out.Flags = FormatFlags(pix.flags)
		out.YcbcrEnc = pix.ycbcrEnc
		out.Quantization = Quantization(pix.quantization)
		out.XferFunc = XferFunc(pix.xferFunc)
	}
	return out, nil
}

// StreamParams reads back the streaming parameters of one stream.
// Capture and output parameters share one layout, so a single decode
// covers both directions.
func (d *Device) StreamParams(bufType BufType) (*StreamParams, error) {
	p := v4l2Streamparm{typ: uint32(bufType)}
	if err := d.tr.Ioctl(d.fd, vidiocGParm, unsafe.Pointer(&p)); err != nil {
		return nil, fmt.Errorf("failed to get stream parameters of %s on %s: %w", bufType, d.path, err)
	}

	parm := p.captureParm()
	return &StreamParams{
		BufType:    BufType(p.typ),
		Capability: parm.capability,
		Mode:       parm.capturemode,
		TimePerFrame: Fract{
			Numerator:   parm.timeperframe.numerator,
			Denominator: parm.timeperframe.denominator,
		},
		ExtendedMode: parm.extendedmode,
		Buffers:      parm.readbuffers,
	}, nil
}

// Info assembles a complete capability snapshot of the device: formats
// for every enumerable buffer type active on the node, frame sizes for
// every distinct pixel format, and frame intervals for every discrete
// frame size. Any failing probe fails the whole snapshot.
func (d *Device) Info() (*DeviceInfo, error) {
	cap, err := d.QueryCap()
	if err != nil {
		return nil, err
	}

	info := &DeviceInfo{
		Driver:       cap.Driver,
		Card:         cap.Card,
		BusInfo:      cap.BusInfo,
		Version:      cap.Version,
		Capabilities: cap.Capabilities,
		DeviceCaps:   cap.DeviceCaps,
	}

	for _, bufType := range enumerableBufTypes {
		if !cap.DeviceCaps.Has(bufType.capMask()) {
			continue
		}
		formats, err := d.Formats(bufType)
		if err != nil {
			return nil, err
		}
		info.Formats = append(info.Formats, formats...)
	}

	for _, pf := range info.PixelFormats() {
		sizes, err := d.FrameSizes(pf)
		if err != nil {
			return nil, err
		}
		info.FrameSizes = append(info.FrameSizes, sizes...)
	}

	for _, size := range info.FrameSizes {
		discrete, ok := size.(DiscreteFrameSize)
		if !ok {
			continue
		}
		intervals, err := d.FrameIntervals(discrete.PixelFormat, discrete.Width, discrete.Height)
		if err != nil {
			return nil, err
		}
		info.FrameIntervals = append(info.FrameIntervals, intervals...)
	}

	return info, nil
}

// Query opens a device node, takes a capability snapshot, and closes it
// again.
func Query(path string) (*DeviceInfo, error) {
	d, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer d.Close()
	return d.Info()
}

// FindDevices scans dir for device nodes whose name starts with prefix
// and whose active capabilities include video capture. Nodes that
// cannot be opened or identified are skipped. Paths come back in
// lexical order.
func FindDevices(dir, prefix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read device directory %s: %w", dir, err)
	}

	log := slog.With("component", "v4l2")

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}

		path := filepath.Join(dir, entry.Name())

		d, err := Open(path)
		if err != nil {
			log.Debug("failed to open video device", "path", path, "error", err)
			continue
		}

		cap, err := d.QueryCap()
		d.Close()
		if err != nil {
			log.Debug("failed to query device capabilities", "path", path, "error", err)
			continue
		}

		if !cap.DeviceCaps.Has(CapVideoCapture) {
			continue
		}

		paths = append(paths, path)
	}

	return paths, nil
}

// StableID resolves an identifier for a device node that survives
// reboots and re-enumeration: the matching /dev/v4l/by-id symlink when
// udev maintains one, otherwise a synthetic ID built from the bus info
// and the node's sysfs index.
func StableID(devicePath, busInfo string) string {
	node := filepath.Base(devicePath)
	index := sysfsIndex(node)

	if id := byIDSymlink(node, index); id != "" {
		return id
	}

	if strings.HasPrefix(busInfo, "usb-") {
		return fmt.Sprintf("%s-video-index%d", busInfo, index)
	}
	return fmt.Sprintf("platform-%s-video-index%d", busInfo, index)
}

// byIDSymlink returns the name of the /dev/v4l/by-id entry pointing at
// node, or "" when none does. udev names these links like
// usb-Vendor_Product-video-index0.
func byIDSymlink(node string, index int) string {
	const dir = "/dev/v4l/by-id"
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	suffix := fmt.Sprintf("-video-index%d", index)
	for _, entry := range entries {
		if entry.Type()&os.ModeSymlink == 0 || !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}
		target, err := os.Readlink(filepath.Join(dir, entry.Name()))
		if err != nil || filepath.Base(target) != node {
			continue
		}
		return entry.Name()
	}
	return ""
}

// sysfsIndex reads the node's index attribute from sysfs. A missing or
// malformed attribute counts as index 0.
func sysfsIndex(node string) int {
	data, err := os.ReadFile(filepath.Join("/sys/class/video4linux", node, "index"))
	if err != nil {
		return 0
	}
	index, _ := strconv.Atoi(strings.TrimSpace(string(data)))
	return index
}

// cstr returns the string up to the first NUL in b.
func cstr(b []byte) string {
	b, _, _ = bytes.Cut(b, []byte{0})
	return string(b)
}
