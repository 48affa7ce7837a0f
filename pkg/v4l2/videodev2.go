//go:build linux

package v4l2

import "unsafe"

// The wire structs below mirror include/uapi/linux/videodev2.h. Each is
// pinned to its kernel size at compile time, so a drifted layout fails
// the build instead of corrupting an ioctl.
var (
	_ [104]byte = [unsafe.Sizeof(v4l2Capability{})]byte{}
	_ [64]byte  = [unsafe.Sizeof(v4l2Fmtdesc{})]byte{}
	_ [8]byte   = [unsafe.Sizeof(v4l2FrmsizeDiscrete{})]byte{}
	_ [24]byte  = [unsafe.Sizeof(v4l2FrmsizeStepwise{})]byte{}
	_ [44]byte  = [unsafe.Sizeof(v4l2Frmsizeenum{})]byte{}
	_ [8]byte   = [unsafe.Sizeof(v4l2Fract{})]byte{}
	_ [24]byte  = [unsafe.Sizeof(v4l2FrmivalStepwise{})]byte{}
	_ [52]byte  = [unsafe.Sizeof(v4l2Frmivalenum{})]byte{}
	_ [48]byte  = [unsafe.Sizeof(v4l2PixFormat{})]byte{}
	_ [40]byte  = [unsafe.Sizeof(v4l2CaptureParm{})]byte{}
	_ [204]byte = [unsafe.Sizeof(v4l2Streamparm{})]byte{}
)

// struct v4l2_capability, 104 bytes.
type v4l2Capability struct {
	driver       [16]byte  // offset 0
	card         [32]byte  // offset 16
	busInfo      [32]byte  // offset 48
	version      uint32    // offset 80
	capabilities uint32    // offset 84
	deviceCaps   uint32    // offset 88
	reserved     [3]uint32 // offset 92
}

// struct v4l2_fmtdesc, 64 bytes.
type v4l2Fmtdesc struct {
	index       uint32    // offset 0
	typ         uint32    // offset 4
	flags       uint32    // offset 8
	description [32]byte  // offset 12
	pixelformat uint32    // offset 44
	mbusCode    uint32    // offset 48
	reserved    [3]uint32 // offset 52
}

// struct v4l2_frmsize_discrete, 8 bytes.
type v4l2FrmsizeDiscrete struct {
	width  uint32
	height uint32
}

// struct v4l2_frmsize_stepwise, 24 bytes.
type v4l2FrmsizeStepwise struct {
	minWidth   uint32
	maxWidth   uint32
	stepWidth  uint32
	minHeight  uint32
	maxHeight  uint32
	stepHeight uint32
}

// struct v4l2_frmsizeenum, 44 bytes.
type v4l2Frmsizeenum struct {
	index       uint32              // offset 0
	pixelFormat uint32              // offset 4
	typ         uint32              // offset 8
	discrete    v4l2FrmsizeDiscrete // offset 12, stepwise overlays here
	_           [16]byte            // rest of the stepwise arm
	reserved    [2]uint32           // offset 36
}

// stepwise reads the union through its larger member. Valid only when
// typ is frmsizeTypeStepwise or frmsizeTypeContinuous.
func (f *v4l2Frmsizeenum) stepwise() *v4l2FrmsizeStepwise {
	return (*v4l2FrmsizeStepwise)(unsafe.Pointer(&f.discrete))
}

// struct v4l2_fract, 8 bytes.
type v4l2Fract struct {
	numerator   uint32
	denominator uint32
}

// struct v4l2_frmival_stepwise, 24 bytes.
type v4l2FrmivalStepwise struct {
	min  v4l2Fract
	max  v4l2Fract
	step v4l2Fract
}

// struct v4l2_frmivalenum, 52 bytes.
type v4l2Frmivalenum struct {
	index       uint32    // offset 0
	pixelFormat uint32    // offset 4
	width       uint32    // offset 8
	height      uint32    // offset 12
	typ         uint32    // offset 16
	discrete    v4l2Fract // offset 20, stepwise overlays here
	_           [16]byte  // rest of the stepwise arm
	reserved    [2]uint32 // offset 44
}

func (f *v4l2Frmivalenum) stepwise() *v4l2FrmivalStepwise {
	return (*v4l2FrmivalStepwise)(unsafe.Pointer(&f.discrete))
}

// struct v4l2_pix_format, 48 bytes. The single-planar view of the
// format union in v4l2Format.
type v4l2PixFormat struct {
	width        uint32 // offset 0
	height       uint32 // offset 4
	pixelformat  uint32 // offset 8
	field        uint32 // offset 12
	bytesperline uint32 // offset 16
	sizeimage    uint32 // offset 20
	colorspace   uint32 // offset 24
	priv         uint32 // offset 28
	flags        uint32 // offset 32
	ycbcrEnc     uint32 // offset 36, shared with hsv_enc
	quantization uint32 // offset 40
	xferFunc     uint32 // offset 44
}

// struct v4l2_captureparm, 40 bytes. struct v4l2_outputparm carries the
// identical field layout, so one Go struct serves both union branches.
type v4l2CaptureParm struct {
	capability   uint32    // offset 0
	capturemode  uint32    // offset 4
	timeperframe v4l2Fract // offset 8
	extendedmode uint32    // offset 16
	readbuffers  uint32    // offset 20
	reserved     [4]uint32 // offset 24
}

// struct v4l2_streamparm, 204 bytes on every architecture. The parm
// union holds only 4-byte members, so no alignment hole follows typ.
type v4l2Streamparm struct {
	typ  uint32    // offset 0
	parm [200]byte // offset 4 (union of capture/output parm)
}

func (s *v4l2Streamparm) captureParm() *v4l2CaptureParm {
	return (*v4l2CaptureParm)(unsafe.Pointer(&s.parm[0]))
}
