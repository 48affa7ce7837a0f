//go:build linux && (arm || 386)

package v4l2

import "unsafe"

var _ [204]byte = [unsafe.Sizeof(v4l2Format{})]byte{}

// v4l2Format has size 204 bytes on 32-bit architectures, where the
// pointer-bearing union members are 4-aligned and no hole follows typ.
type v4l2Format struct {
	typ uint32    // offset 0
	fmt [200]byte // offset 4 (union; pix view at offset 0)
}

func (f *v4l2Format) pix() *v4l2PixFormat {
	return (*v4l2PixFormat)(unsafe.Pointer(&f.fmt[0]))
}
