//go:build linux

package v4l2

import (
	"syscall"
	"unsafe"
)

// Control request encoding, as laid out by the kernel's ioctl macros:
// direction in the top 2 bits, payload size in the next 14, the magic
// type byte below that, and the request number in the low 8 bits.
const (
	iocWrite = 1
	iocRead  = 2

	iocNrBits   = 8
	iocTypeBits = 8
	iocSizeBits = 14

	iocNrShift   = 0
	iocTypeShift = iocNrShift + iocNrBits
	iocSizeShift = iocTypeShift + iocTypeBits
	iocDirShift  = iocSizeShift + iocSizeBits

	// All video control requests share the 'V' magic byte.
	iocMagic = 'V'
)

func ioc(dir, nr uint32, size uintptr) uint32 {
	return dir<<iocDirShift | uint32(size)<<iocSizeShift | iocMagic<<iocTypeShift | nr<<iocNrShift
}

func ior(nr uint32, size uintptr) uint32 {
	return ioc(iocRead, nr, size)
}

func iow(nr uint32, size uintptr) uint32 {
	return ioc(iocWrite, nr, size)
}

func iowr(nr uint32, size uintptr) uint32 {
	return ioc(iocRead|iocWrite, nr, size)
}

// Request codes. Payload sizes come from the wire structs, so the codes
// are correct for whatever architecture this package is built for.
var (
	vidiocQuerycap           = ior(0, unsafe.Sizeof(v4l2Capability{}))
	vidiocEnumFmt            = iowr(2, unsafe.Sizeof(v4l2Fmtdesc{}))
	vidiocGFmt               = iowr(4, unsafe.Sizeof(v4l2Format{}))
	vidiocSFmt               = iowr(5, unsafe.Sizeof(v4l2Format{}))
	vidiocGParm              = iowr(21, unsafe.Sizeof(v4l2Streamparm{}))
	vidiocSParm              = iowr(22, unsafe.Sizeof(v4l2Streamparm{}))
	vidiocTryFmt             = iowr(64, unsafe.Sizeof(v4l2Format{}))
	vidiocEnumFramesizes     = iowr(74, unsafe.Sizeof(v4l2Frmsizeenum{}))
	vidiocEnumFrameintervals = iowr(75, unsafe.Sizeof(v4l2Frmivalenum{}))
)

// Transport issues a single control request against an open descriptor.
// On success the kernel has filled the payload behind arg in place.
// Failures surface as syscall.Errno so callers can discriminate with
// errors.Is; syscall.EINVAL from an enumeration request means the index
// ran past the last entry.
type Transport interface {
	Ioctl(fd int, req uint32, arg unsafe.Pointer) error
}

type syscallTransport struct{}

func (syscallTransport) Ioctl(fd int, req uint32, arg unsafe.Pointer) error {
	_, _, errno := syscall.Syscall(syscall.SYS_IOCTL, uintptr(fd), uintptr(req), uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}
