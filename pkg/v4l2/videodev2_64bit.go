//go:build linux && (amd64 || arm64)

package v4l2

import "unsafe"

var _ [208]byte = [unsafe.Sizeof(v4l2Format{})]byte{}

// v4l2Format has size 208 bytes on 64-bit architectures. The kernel's
// format union contains pointer-bearing members, so the union is
// 8-aligned and a 4-byte hole follows typ.
type v4l2Format struct {
	typ uint32    // offset 0
	_   [4]byte   // alignment hole
	fmt [200]byte // offset 8 (union; pix view at offset 0)
}

func (f *v4l2Format) pix() *v4l2PixFormat {
	return (*v4l2PixFormat)(unsafe.Pointer(&f.fmt[0]))
}
