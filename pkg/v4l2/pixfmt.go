//go:build linux

package v4l2

import "fmt"

// PixelFormat is a four character code identifying an image encoding.
// Bit 31 marks the big-endian variant of a format.
type PixelFormat uint32

const pixFmtBigEndian = 1 << 31

// FourCC packs four character codes into a PixelFormat.
func FourCC(a, b, c, d byte) PixelFormat {
	return PixelFormat(uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24)
}

// FourCCBE packs four character codes into a big-endian PixelFormat.
func FourCCBE(a, b, c, d byte) PixelFormat {
	return FourCC(a, b, c, d) | pixFmtBigEndian
}

// FourCC returns the four character code of the format, without the
// big-endian marker.
func (p PixelFormat) FourCC() string {
	v := uint32(p) &^ pixFmtBigEndian
	return string([]byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)})
}

// BigEndian reports whether the big-endian variant marker is set.
func (p PixelFormat) BigEndian() bool {
	return uint32(p)&pixFmtBigEndian != 0
}

// String returns the format's well-known name, or its four character
// code when the format is not in the catalog.
func (p PixelFormat) String() string {
	if name, ok := pixFmtNames[p]; ok {
		return name
	}
	if p.BigEndian() {
		return p.FourCC() + "-BE"
	}
	return p.FourCC()
}

// lookupPixelFormat validates a raw pixel format word against the
// catalog. Devices reporting codes outside the catalog fail decoding.
func lookupPixelFormat(raw uint32) (PixelFormat, error) {
	p := PixelFormat(raw)
	if _, ok := pixFmtNames[p]; !ok {
		return 0, fmt.Errorf("unknown pixel format 0x%08x (%q)", raw, p.FourCC())
	}
	return p, nil
}

// Pixel formats, RGB first.
const (
	PixFmtRGB332  PixelFormat = 'R' | 'G'<<8 | 'B'<<16 | '1'<<24 // 8  RGB-3-3-2
	PixFmtRGB444  PixelFormat = 'R' | '4'<<8 | '4'<<16 | '4'<<24 // 16  xxxxrrrr ggggbbbb
	PixFmtARGB444 PixelFormat = 'A' | 'R'<<8 | '1'<<16 | '2'<<24 // 16  aaaarrrr ggggbbbb
	PixFmtXRGB444 PixelFormat = 'X' | 'R'<<8 | '1'<<16 | '2'<<24 // 16  xxxxrrrr ggggbbbb
	PixFmtRGBA444 PixelFormat = 'R' | 'A'<<8 | '1'<<16 | '2'<<24 // 16  rrrrgggg bbbbaaaa
	PixFmtRGBX444 PixelFormat = 'R' | 'X'<<8 | '1'<<16 | '2'<<24 // 16  rrrrgggg bbbbxxxx
	PixFmtABGR444 PixelFormat = 'A' | 'B'<<8 | '1'<<16 | '2'<<24 // 16  aaaabbbb ggggrrrr
	PixFmtXBGR444 PixelFormat = 'X' | 'B'<<8 | '1'<<16 | '2'<<24 // 16  xxxxbbbb ggggrrrr

	// 'BA12' would collide with the older SGRBG12, so BGRA444 uses
	// 'GA12' instead.
	PixFmtBGRA444 PixelFormat = 'G' | 'A'<<8 | '1'<<16 | '2'<<24 // 16  bbbbgggg rrrraaaa
	PixFmtBGRX444 PixelFormat = 'B' | 'X'<<8 | '1'<<16 | '2'<<24 // 16  bbbbgggg rrrrxxxx

	PixFmtRGB555   PixelFormat = 'R' | 'G'<<8 | 'B'<<16 | 'O'<<24                   // 16  RGB-5-5-5
	PixFmtARGB555  PixelFormat = 'A' | 'R'<<8 | '1'<<16 | '5'<<24                   // 16  ARGB-1-5-5-5
	PixFmtXRGB555  PixelFormat = 'X' | 'R'<<8 | '1'<<16 | '5'<<24                   // 16  XRGB-1-5-5-5
	PixFmtRGBA555  PixelFormat = 'R' | 'A'<<8 | '1'<<16 | '5'<<24                   // 16  RGBA-5-5-5-1
	PixFmtRGBX555  PixelFormat = 'R' | 'X'<<8 | '1'<<16 | '5'<<24                   // 16  RGBX-5-5-5-1
	PixFmtABGR555  PixelFormat = 'A' | 'B'<<8 | '1'<<16 | '5'<<24                   // 16  ABGR-1-5-5-5
	PixFmtXBGR555  PixelFormat = 'X' | 'B'<<8 | '1'<<16 | '5'<<24                   // 16  XBGR-1-5-5-5
	PixFmtBGRA555  PixelFormat = 'B' | 'A'<<8 | '1'<<16 | '5'<<24                   // 16  BGRA-5-5-5-1
	PixFmtBGRX555  PixelFormat = 'B' | 'X'<<8 | '1'<<16 | '5'<<24                   // 16  BGRX-5-5-5-1
	PixFmtRGB565   PixelFormat = 'R' | 'G'<<8 | 'B'<<16 | 'P'<<24                   // 16  RGB-5-6-5
	PixFmtRGB555X  PixelFormat = 'R' | 'G'<<8 | 'B'<<16 | 'Q'<<24                   // 16  RGB-5-5-5 BE
	PixFmtARGB555X PixelFormat = 'A' | 'R'<<8 | '1'<<16 | '5'<<24 | pixFmtBigEndian // 16  ARGB-5-5-5 BE
	PixFmtXRGB555X PixelFormat = 'X' | 'R'<<8 | '1'<<16 | '5'<<24 | pixFmtBigEndian // 16  XRGB-5-5-5 BE
	PixFmtRGB565X  PixelFormat = 'R' | 'G'<<8 | 'B'<<16 | 'R'<<24                   // 16  RGB-5-6-5 BE
	PixFmtBGR666   PixelFormat = 'B' | 'G'<<8 | 'R'<<16 | 'H'<<24                   // 18  BGR-6-6-6
	PixFmtBGR24    PixelFormat = 'B' | 'G'<<8 | 'R'<<16 | '3'<<24                   // 24  BGR-8-8-8
	PixFmtRGB24    PixelFormat = 'R' | 'G'<<8 | 'B'<<16 | '3'<<24                   // 24  RGB-8-8-8
	PixFmtBGR32    PixelFormat = 'B' | 'G'<<8 | 'R'<<16 | '4'<<24                   // 32  BGR-8-8-8-8
	PixFmtABGR32   PixelFormat = 'A' | 'R'<<8 | '2'<<16 | '4'<<24                   // 32  BGRA-8-8-8-8
	PixFmtXBGR32   PixelFormat = 'X' | 'R'<<8 | '2'<<16 | '4'<<24                   // 32  BGRX-8-8-8-8
	PixFmtBGRA32   PixelFormat = 'R' | 'A'<<8 | '2'<<16 | '4'<<24                   // 32  ABGR-8-8-8-8
	PixFmtBGRX32   PixelFormat = 'R' | 'X'<<8 | '2'<<16 | '4'<<24                   // 32  XBGR-8-8-8-8
	PixFmtRGB32    PixelFormat = 'R' | 'G'<<8 | 'B'<<16 | '4'<<24                   // 32  RGB-8-8-8-8
	PixFmtRGBA32   PixelFormat = 'A' | 'B'<<8 | '2'<<16 | '4'<<24                   // 32  RGBA-8-8-8-8
	PixFmtRGBX32   PixelFormat = 'X' | 'B'<<8 | '2'<<16 | '4'<<24                   // 32  RGBX-8-8-8-8
	PixFmtARGB32   PixelFormat = 'B' | 'A'<<8 | '2'<<16 | '4'<<24                   // 32  ARGB-8-8-8-8
	PixFmtXRGB32   PixelFormat = 'B' | 'X'<<8 | '2'<<16 | '4'<<24                   // 32  XRGB-8-8-8-8
)

// Grey formats.
const (
	PixFmtGrey  PixelFormat = 'G' | 'R'<<8 | 'E'<<16 | 'Y'<<24                   // 8  Greyscale
	PixFmtY4    PixelFormat = 'Y' | '0'<<8 | '4'<<16 | ' '<<24                   // 4  Greyscale
	PixFmtY6    PixelFormat = 'Y' | '0'<<8 | '6'<<16 | ' '<<24                   // 6  Greyscale
	PixFmtY10   PixelFormat = 'Y' | '1'<<8 | '0'<<16 | ' '<<24                   // 10  Greyscale
	PixFmtY12   PixelFormat = 'Y' | '1'<<8 | '2'<<16 | ' '<<24                   // 12  Greyscale
	PixFmtY16   PixelFormat = 'Y' | '1'<<8 | '6'<<16 | ' '<<24                   // 16  Greyscale
	PixFmtY16BE PixelFormat = 'Y' | '1'<<8 | '6'<<16 | ' '<<24 | pixFmtBigEndian // 16  Greyscale BE

	PixFmtY10BPack PixelFormat = 'Y' | '1'<<8 | '0'<<16 | 'B'<<24 // 10  Greyscale bit-packed
	PixFmtY10P     PixelFormat = 'Y' | '1'<<8 | '0'<<16 | 'P'<<24 // 10  Greyscale, MIPI RAW10 packed
)

// Palette and chrominance formats.
const (
	PixFmtPAL8 PixelFormat = 'P' | 'A'<<8 | 'L'<<16 | '8'<<24 // 8  8-bit palette
	PixFmtUV8  PixelFormat = 'U' | 'V'<<8 | '8'<<16 | ' '<<24 // 8  UV 4:4
)

// Luminance+chrominance formats.
const (
	PixFmtYUYV   PixelFormat = 'Y' | 'U'<<8 | 'Y'<<16 | 'V'<<24 // 16  YUV 4:2:2
	PixFmtYYUV   PixelFormat = 'Y' | 'Y'<<8 | 'U'<<16 | 'V'<<24 // 16  YUV 4:2:2
	PixFmtYVYU   PixelFormat = 'Y' | 'V'<<8 | 'Y'<<16 | 'U'<<24 // 16  YVU 4:2:2
	PixFmtUYVY   PixelFormat = 'U' | 'Y'<<8 | 'V'<<16 | 'Y'<<24 // 16  YUV 4:2:2
	PixFmtVYUY   PixelFormat = 'V' | 'Y'<<8 | 'U'<<16 | 'Y'<<24 // 16  YUV 4:2:2
	PixFmtY41P   PixelFormat = 'Y' | '4'<<8 | '1'<<16 | 'P'<<24 // 12  YUV 4:1:1
	PixFmtYUV444 PixelFormat = 'Y' | '4'<<8 | '4'<<16 | '4'<<24 // 16  xxxxyyyy uuuuvvvv
	PixFmtYUV555 PixelFormat = 'Y' | 'U'<<8 | 'V'<<16 | 'O'<<24 // 16  YUV-5-5-5
	PixFmtYUV565 PixelFormat = 'Y' | 'U'<<8 | 'V'<<16 | 'P'<<24 // 16  YUV-5-6-5
	PixFmtYUV32  PixelFormat = 'Y' | 'U'<<8 | 'V'<<16 | '4'<<24 // 32  YUV-8-8-8-8
	PixFmtAYUV32 PixelFormat = 'A' | 'Y'<<8 | 'U'<<16 | 'V'<<24 // 32  AYUV-8-8-8-8
	PixFmtXYUV32 PixelFormat = 'X' | 'Y'<<8 | 'U'<<16 | 'V'<<24 // 32  XYUV-8-8-8-8
	PixFmtVUYA32 PixelFormat = 'V' | 'U'<<8 | 'Y'<<16 | 'A'<<24 // 32  VUYA-8-8-8-8
	PixFmtVUYX32 PixelFormat = 'V' | 'U'<<8 | 'Y'<<16 | 'X'<<24 // 32  VUYX-8-8-8-8
	PixFmtHI240  PixelFormat = 'H' | 'I'<<8 | '2'<<16 | '4'<<24 // 8  8-bit color
	PixFmtHM12   PixelFormat = 'H' | 'M'<<8 | '1'<<16 | '2'<<24 // 8  YUV 4:2:0 16x16 macroblocks
	PixFmtM420   PixelFormat = 'M' | '4'<<8 | '2'<<16 | '0'<<24 // 12  YUV 4:2:0 2 lines y, 1 line uv interleaved
)

// Two planes, one Y and one Cr+Cb interleaved.
const (
	PixFmtNV12 PixelFormat = 'N' | 'V'<<8 | '1'<<16 | '2'<<24 // 12  Y/CbCr 4:2:0
	PixFmtNV21 PixelFormat = 'N' | 'V'<<8 | '2'<<16 | '1'<<24 // 12  Y/CrCb 4:2:0
	PixFmtNV16 PixelFormat = 'N' | 'V'<<8 | '1'<<16 | '6'<<24 // 16  Y/CbCr 4:2:2
	PixFmtNV61 PixelFormat = 'N' | 'V'<<8 | '6'<<16 | '1'<<24 // 16  Y/CrCb 4:2:2
	PixFmtNV24 PixelFormat = 'N' | 'V'<<8 | '2'<<16 | '4'<<24 // 24  Y/CbCr 4:4:4
	PixFmtNV42 PixelFormat = 'N' | 'V'<<8 | '4'<<16 | '2'<<24 // 24  Y/CrCb 4:4:4
)

// Two non-contiguous planes, one Y and one Cr+Cb interleaved.
const (
	PixFmtNV12M       PixelFormat = 'N' | 'M'<<8 | '1'<<16 | '2'<<24 // 12  Y/CbCr 4:2:0
	PixFmtNV21M       PixelFormat = 'N' | 'M'<<8 | '2'<<16 | '1'<<24 // 21  Y/CrCb 4:2:0
	PixFmtNV16M       PixelFormat = 'N' | 'M'<<8 | '1'<<16 | '6'<<24 // 16  Y/CbCr 4:2:2
	PixFmtNV61M       PixelFormat = 'N' | 'M'<<8 | '6'<<16 | '1'<<24 // 16  Y/CrCb 4:2:2
	PixFmtNV12MT      PixelFormat = 'T' | 'M'<<8 | '1'<<16 | '2'<<24 // 12  Y/CbCr 4:2:0 64x32 macroblocks
	PixFmtNV12MT16X16 PixelFormat = 'V' | 'M'<<8 | '1'<<16 | '2'<<24 // 12  Y/CbCr 4:2:0 16x16 macroblocks
)

// Three planes: Y, Cb, Cr.
const (
	PixFmtYUV410  PixelFormat = 'Y' | 'U'<<8 | 'V'<<16 | '9'<<24 // 9  YUV 4:1:0
	PixFmtYVU410  PixelFormat = 'Y' | 'V'<<8 | 'U'<<16 | '9'<<24 // 9  YVU 4:1:0
	PixFmtYUV411P PixelFormat = '4' | '1'<<8 | '1'<<16 | 'P'<<24 // 12  YVU411 planar
	PixFmtYUV420  PixelFormat = 'Y' | 'U'<<8 | '1'<<16 | '2'<<24 // 12  YUV 4:2:0
	PixFmtYVU420  PixelFormat = 'Y' | 'V'<<8 | '1'<<16 | '2'<<24 // 12  YVU 4:2:0
	PixFmtYUV422P PixelFormat = '4' | '2'<<8 | '2'<<16 | 'P'<<24 // 16  YVU422 planar
)

// Three non-contiguous planes: Y, Cb, Cr.
const (
	PixFmtYUV420M PixelFormat = 'Y' | 'M'<<8 | '1'<<16 | '2'<<24 // 12  YUV420 planar
	PixFmtYVU420M PixelFormat = 'Y' | 'M'<<8 | '2'<<16 | '1'<<24 // 12  YVU420 planar
	PixFmtYUV422M PixelFormat = 'Y' | 'M'<<8 | '1'<<16 | '6'<<24 // 16  YUV422 planar
	PixFmtYVU422M PixelFormat = 'Y' | 'M'<<8 | '6'<<16 | '1'<<24 // 16  YVU422 planar
	PixFmtYUV444M PixelFormat = 'Y' | 'M'<<8 | '2'<<16 | '4'<<24 // 24  YUV444 planar
	PixFmtYVU444M PixelFormat = 'Y' | 'M'<<8 | '4'<<16 | '2'<<24 // 24  YVU444 planar
)

// Bayer formats.
const (
	PixFmtSBGGR8  PixelFormat = 'B' | 'A'<<8 | '8'<<16 | '1'<<24 // 8  BGBG.. GRGR..
	PixFmtSGBRG8  PixelFormat = 'G' | 'B'<<8 | 'R'<<16 | 'G'<<24 // 8  GBGB.. RGRG..
	PixFmtSGRBG8  PixelFormat = 'G' | 'R'<<8 | 'B'<<16 | 'G'<<24 // 8  GRGR.. BGBG..
	PixFmtSRGGB8  PixelFormat = 'R' | 'G'<<8 | 'G'<<16 | 'B'<<24 // 8  RGRG.. GBGB..
	PixFmtSBGGR10 PixelFormat = 'B' | 'G'<<8 | '1'<<16 | '0'<<24 // 10  BGBG.. GRGR..
	PixFmtSGBRG10 PixelFormat = 'G' | 'B'<<8 | '1'<<16 | '0'<<24 // 10  GBGB.. RGRG..
	PixFmtSGRBG10 PixelFormat = 'B' | 'A'<<8 | '1'<<16 | '0'<<24 // 10  GRGR.. BGBG..
	PixFmtSRGGB10 PixelFormat = 'R' | 'G'<<8 | '1'<<16 | '0'<<24 // 10  RGRG.. GBGB..

	// 10-bit raw bayer packed, 5 bytes for every 4 pixels.
	PixFmtSBGGR10P PixelFormat = 'p' | 'B'<<8 | 'A'<<16 | 'A'<<24
	PixFmtSGBRG10P PixelFormat = 'p' | 'G'<<8 | 'A'<<16 | 'A'<<24
	PixFmtSGRBG10P PixelFormat = 'p' | 'g'<<8 | 'A'<<16 | 'A'<<24
	PixFmtSRGGB10P PixelFormat = 'p' | 'R'<<8 | 'A'<<16 | 'A'<<24

	// 10-bit raw bayer a-law compressed to 8 bits.
	PixFmtSBGGR10ALaw8 PixelFormat = 'a' | 'B'<<8 | 'A'<<16 | '8'<<24
	PixFmtSGBRG10ALaw8 PixelFormat = 'a' | 'G'<<8 | 'A'<<16 | '8'<<24
	PixFmtSGRBG10ALaw8 PixelFormat = 'a' | 'g'<<8 | 'A'<<16 | '8'<<24
	PixFmtSRGGB10ALaw8 PixelFormat = 'a' | 'R'<<8 | 'A'<<16 | '8'<<24

	// 10-bit raw bayer DPCM compressed to 8 bits.
	PixFmtSBGGR10DPCM8 PixelFormat = 'b' | 'B'<<8 | 'A'<<16 | '8'<<24
	PixFmtSGBRG10DPCM8 PixelFormat = 'b' | 'G'<<8 | 'A'<<16 | '8'<<24
	PixFmtSGRBG10DPCM8 PixelFormat = 'B' | 'D'<<8 | '1'<<16 | '0'<<24
	PixFmtSRGGB10DPCM8 PixelFormat = 'b' | 'R'<<8 | 'A'<<16 | '8'<<24

	PixFmtSBGGR12 PixelFormat = 'B' | 'G'<<8 | '1'<<16 | '2'<<24 // 12  BGBG.. GRGR..
	PixFmtSGBRG12 PixelFormat = 'G' | 'B'<<8 | '1'<<16 | '2'<<24 // 12  GBGB.. RGRG..
	PixFmtSGRBG12 PixelFormat = 'B' | 'A'<<8 | '1'<<16 | '2'<<24 // 12  GRGR.. BGBG..
	PixFmtSRGGB12 PixelFormat = 'R' | 'G'<<8 | '1'<<16 | '2'<<24 // 12  RGRG.. GBGB..

	// 12-bit raw bayer packed, 6 bytes for every 4 pixels.
	PixFmtSBGGR12P PixelFormat = 'p' | 'B'<<8 | 'C'<<16 | 'C'<<24
	PixFmtSGBRG12P PixelFormat = 'p' | 'G'<<8 | 'C'<<16 | 'C'<<24
	PixFmtSGRBG12P PixelFormat = 'p' | 'g'<<8 | 'C'<<16 | 'C'<<24
	PixFmtSRGGB12P PixelFormat = 'p' | 'R'<<8 | 'C'<<16 | 'C'<<24

	// 14-bit raw bayer packed, 7 bytes for every 4 pixels.
	PixFmtSBGGR14P PixelFormat = 'p' | 'B'<<8 | 'E'<<16 | 'E'<<24
	PixFmtSGBRG14P PixelFormat = 'p' | 'G'<<8 | 'E'<<16 | 'E'<<24
	PixFmtSGRBG14P PixelFormat = 'p' | 'g'<<8 | 'E'<<16 | 'E'<<24
	PixFmtSRGGB14P PixelFormat = 'p' | 'R'<<8 | 'E'<<16 | 'E'<<24

	PixFmtSBGGR16 PixelFormat = 'B' | 'Y'<<8 | 'R'<<16 | '2'<<24 // 16  BGBG.. GRGR..
	PixFmtSGBRG16 PixelFormat = 'G' | 'B'<<8 | '1'<<16 | '6'<<24 // 16  GBGB.. RGRG..
	PixFmtSGRBG16 PixelFormat = 'G' | 'R'<<8 | '1'<<16 | '6'<<24 // 16  GRGR.. BGBG..
	PixFmtSRGGB16 PixelFormat = 'R' | 'G'<<8 | '1'<<16 | '6'<<24 // 16  RGRG.. GBGB..
)

// HSV formats.
const (
	PixFmtHSV24 PixelFormat = 'H' | 'S'<<8 | 'V'<<16 | '3'<<24
	PixFmtHSV32 PixelFormat = 'H' | 'S'<<8 | 'V'<<16 | '4'<<24
)

// Compressed formats.
const (
	PixFmtMJPEG         PixelFormat = 'M' | 'J'<<8 | 'P'<<16 | 'G'<<24 // Motion-JPEG
	PixFmtJPEG          PixelFormat = 'J' | 'P'<<8 | 'E'<<16 | 'G'<<24 // JFIF JPEG
	PixFmtDV            PixelFormat = 'd' | 'v'<<8 | 's'<<16 | 'd'<<24 // 1394
	PixFmtMPEG          PixelFormat = 'M' | 'P'<<8 | 'E'<<16 | 'G'<<24 // MPEG-1/2/4 Multiplexed
	PixFmtH264          PixelFormat = 'H' | '2'<<8 | '6'<<16 | '4'<<24 // H264 with start codes
	PixFmtH264NoSC      PixelFormat = 'A' | 'V'<<8 | 'C'<<16 | '1'<<24 // H264 without start codes
	PixFmtH264MVC       PixelFormat = 'M' | '2'<<8 | '6'<<16 | '4'<<24 // H264 MVC
	PixFmtH263          PixelFormat = 'H' | '2'<<8 | '6'<<16 | '3'<<24 // H263
	PixFmtMPEG1         PixelFormat = 'M' | 'P'<<8 | 'G'<<16 | '1'<<24 // MPEG-1 ES
	PixFmtMPEG2         PixelFormat = 'M' | 'P'<<8 | 'G'<<16 | '2'<<24 // MPEG-2 ES
	PixFmtMPEG2Slice    PixelFormat = 'M' | 'G'<<8 | '2'<<16 | 'S'<<24 // MPEG-2 parsed slice data
	PixFmtMPEG4         PixelFormat = 'M' | 'P'<<8 | 'G'<<16 | '4'<<24 // MPEG-4 part 2 ES
	PixFmtXvid          PixelFormat = 'X' | 'V'<<8 | 'I'<<16 | 'D'<<24 // Xvid
	PixFmtVC1AnnexG     PixelFormat = 'V' | 'C'<<8 | '1'<<16 | 'G'<<24 // SMPTE 421M Annex G compliant stream
	PixFmtVC1AnnexL     PixelFormat = 'V' | 'C'<<8 | '1'<<16 | 'L'<<24 // SMPTE 421M Annex L compliant stream
	PixFmtVP8           PixelFormat = 'V' | 'P'<<8 | '8'<<16 | '0'<<24 // VP8
	PixFmtVP9           PixelFormat = 'V' | 'P'<<8 | '9'<<16 | '0'<<24 // VP9
	PixFmtHEVC          PixelFormat = 'H' | 'E'<<8 | 'V'<<16 | 'C'<<24 // HEVC aka H.265
	PixFmtFWHT          PixelFormat = 'F' | 'W'<<8 | 'H'<<16 | 'T'<<24 // Fast Walsh Hadamard Transform (vicodec)
	PixFmtFWHTStateless PixelFormat = 'S' | 'F'<<8 | 'W'<<16 | 'H'<<24 // Stateless FWHT (vicodec)
)

// Vendor-specific formats.
const (
	PixFmtCPIA1          PixelFormat = 'C' | 'P'<<8 | 'I'<<16 | 'A'<<24 // cpia1 YUV
	PixFmtWNVA           PixelFormat = 'W' | 'N'<<8 | 'V'<<16 | 'A'<<24 // Winnov hw compress
	PixFmtSN9C10X        PixelFormat = 'S' | '9'<<8 | '1'<<16 | '0'<<24 // SN9C10x compression
	PixFmtSN9C20XI420    PixelFormat = 'S' | '9'<<8 | '2'<<16 | '0'<<24 // SN9C20x YUV 4:2:0
	PixFmtPWC1           PixelFormat = 'P' | 'W'<<8 | 'C'<<16 | '1'<<24 // pwc older webcam
	PixFmtPWC2           PixelFormat = 'P' | 'W'<<8 | 'C'<<16 | '2'<<24 // pwc newer webcam
	PixFmtET61X251       PixelFormat = 'E' | '6'<<8 | '2'<<16 | '5'<<24 // ET61X251 compression
	PixFmtSPCA501        PixelFormat = 'S' | '5'<<8 | '0'<<16 | '1'<<24 // YUYV per line
	PixFmtSPCA505        PixelFormat = 'S' | '5'<<8 | '0'<<16 | '5'<<24 // YYUV per line
	PixFmtSPCA508        PixelFormat = 'S' | '5'<<8 | '0'<<16 | '8'<<24 // YUVY per line
	PixFmtSPCA561        PixelFormat = 'S' | '5'<<8 | '6'<<16 | '1'<<24 // compressed GBRG bayer
	PixFmtPAC207         PixelFormat = 'P' | '2'<<8 | '0'<<16 | '7'<<24 // compressed BGGR bayer
	PixFmtMR97310A       PixelFormat = 'M' | '3'<<8 | '1'<<16 | '0'<<24 // compressed BGGR bayer
	PixFmtJL2005BCD      PixelFormat = 'J' | 'L'<<8 | '2'<<16 | '0'<<24 // compressed RGGB bayer
	PixFmtSN9C2028       PixelFormat = 'S' | 'O'<<8 | 'N'<<16 | 'X'<<24 // compressed GBRG bayer
	PixFmtSQ905C         PixelFormat = '9' | '0'<<8 | '5'<<16 | 'C'<<24 // compressed RGGB bayer
	PixFmtPJPG           PixelFormat = 'P' | 'J'<<8 | 'P'<<16 | 'G'<<24 // Pixart 73xx JPEG
	PixFmtOV511          PixelFormat = 'O' | '5'<<8 | '1'<<16 | '1'<<24 // ov511 JPEG
	PixFmtOV518          PixelFormat = 'O' | '5'<<8 | '1'<<16 | '8'<<24 // ov518 JPEG
	PixFmtSTV0680        PixelFormat = 'S' | '6'<<8 | '8'<<16 | '0'<<24 // stv0680 bayer
	PixFmtTM6000         PixelFormat = 'T' | 'M'<<8 | '6'<<16 | '0'<<24 // tm5600/tm60x0
	PixFmtCITYYVYUY      PixelFormat = 'C' | 'I'<<8 | 'T'<<16 | 'V'<<24 // one line of Y then 1 line of VYUY
	PixFmtKonica420      PixelFormat = 'K' | 'O'<<8 | 'N'<<16 | 'I'<<24 // YUV420 planar in blocks of 256 pixels
	PixFmtJPGL           PixelFormat = 'J' | 'P'<<8 | 'G'<<16 | 'L'<<24 // JPEG-Lite
	PixFmtSE401          PixelFormat = 'S' | '4'<<8 | '0'<<16 | '1'<<24 // se401 janggu compressed rgb
	PixFmtS5CUYVYJPG     PixelFormat = 'S' | '5'<<8 | 'C'<<16 | 'I'<<24 // S5C73M3 interleaved UYVY/JPEG
	PixFmtY8I            PixelFormat = 'Y' | '8'<<8 | 'I'<<16 | ' '<<24 // Greyscale 8-bit L/R interleaved
	PixFmtY12I           PixelFormat = 'Y' | '1'<<8 | '2'<<16 | 'I'<<24 // Greyscale 12-bit L/R interleaved
	PixFmtZ16            PixelFormat = 'Z' | '1'<<8 | '6'<<16 | ' '<<24 // Depth data 16-bit
	PixFmtMT21C          PixelFormat = 'M' | 'T'<<8 | '2'<<16 | '1'<<24 // Mediatek compressed block mode
	PixFmtINZI           PixelFormat = 'I' | 'N'<<8 | 'Z'<<16 | 'I'<<24 // Intel Planar Greyscale 10-bit and Depth 16-bit
	PixFmtSunxiTiledNV12 PixelFormat = 'S' | 'T'<<8 | '1'<<16 | '2'<<24 // Sunxi Tiled NV12 Format
	PixFmtCNF4           PixelFormat = 'C' | 'N'<<8 | 'F'<<16 | '4'<<24 // Intel 4-bit packed depth confidence information
)

// 10-bit raw bayer packed, 32 bytes for every 25 pixels, last LSB 6
// bits unused.
const (
	PixFmtIPU3SBGGR10 PixelFormat = 'i' | 'p'<<8 | '3'<<16 | 'b'<<24 // IPU3 packed 10-bit BGGR bayer
	PixFmtIPU3SGBRG10 PixelFormat = 'i' | 'p'<<8 | '3'<<16 | 'g'<<24 // IPU3 packed 10-bit GBRG bayer
	PixFmtIPU3SGRBG10 PixelFormat = 'i' | 'p'<<8 | '3'<<16 | 'G'<<24 // IPU3 packed 10-bit GRBG bayer
	PixFmtIPU3SRGGB10 PixelFormat = 'i' | 'p'<<8 | '3'<<16 | 'r'<<24 // IPU3 packed 10-bit RGGB bayer
)

// PixFmtPrivMagic in the priv field of the pix view indicates that the
// extended fields carry valid values.
const PixFmtPrivMagic = 0xfeedcafe

var pixFmtNames = map[PixelFormat]string{
	PixFmtRGB332:         "RGB332",
	PixFmtRGB444:         "RGB444",
	PixFmtARGB444:        "ARGB444",
	PixFmtXRGB444:        "XRGB444",
	PixFmtRGBA444:        "RGBA444",
	PixFmtRGBX444:        "RGBX444",
	PixFmtABGR444:        "ABGR444",
	PixFmtXBGR444:        "XBGR444",
	PixFmtBGRA444:        "BGRA444",
	PixFmtBGRX444:        "BGRX444",
	PixFmtRGB555:         "RGB555",
	PixFmtARGB555:        "ARGB555",
	PixFmtXRGB555:        "XRGB555",
	PixFmtRGBA555:        "RGBA555",
	PixFmtRGBX555:        "RGBX555",
	PixFmtABGR555:        "ABGR555",
	PixFmtXBGR555:        "XBGR555",
	PixFmtBGRA555:        "BGRA555",
	PixFmtBGRX555:        "BGRX555",
	PixFmtRGB565:         "RGB565",
	PixFmtRGB555X:        "RGB555X",
	PixFmtARGB555X:       "ARGB555X",
	PixFmtXRGB555X:       "XRGB555X",
	PixFmtRGB565X:        "RGB565X",
	PixFmtBGR666:         "BGR666",
	PixFmtBGR24:          "BGR24",
	PixFmtRGB24:          "RGB24",
	PixFmtBGR32:          "BGR32",
	PixFmtABGR32:         "ABGR32",
	PixFmtXBGR32:         "XBGR32",
	PixFmtBGRA32:         "BGRA32",
	PixFmtBGRX32:         "BGRX32",
	PixFmtRGB32:          "RGB32",
	PixFmtRGBA32:         "RGBA32",
	PixFmtRGBX32:         "RGBX32",
	PixFmtARGB32:         "ARGB32",
	PixFmtXRGB32:         "XRGB32",
	PixFmtGrey:           "GREY",
	PixFmtY4:             "Y4",
	PixFmtY6:             "Y6",
	PixFmtY10:            "Y10",
	PixFmtY12:            "Y12",
	PixFmtY16:            "Y16",
	PixFmtY16BE:          "Y16_BE",
	PixFmtY10BPack:       "Y10BPACK",
	PixFmtY10P:           "Y10P",
	PixFmtPAL8:           "PAL8",
	PixFmtUV8:            "UV8",
	PixFmtYUYV:           "YUYV",
	PixFmtYYUV:           "YYUV",
	PixFmtYVYU:           "YVYU",
	PixFmtUYVY:           "UYVY",
	PixFmtVYUY:           "VYUY",
	PixFmtY41P:           "Y41P",
	PixFmtYUV444:         "YUV444",
	PixFmtYUV555:         "YUV555",
	PixFmtYUV565:         "YUV565",
	PixFmtYUV32:          "YUV32",
	PixFmtAYUV32:         "AYUV32",
	PixFmtXYUV32:         "XYUV32",
	PixFmtVUYA32:         "VUYA32",
	PixFmtVUYX32:         "VUYX32",
	PixFmtHI240:          "HI240",
	PixFmtHM12:           "HM12",
	PixFmtM420:           "M420",
	PixFmtNV12:           "NV12",
	PixFmtNV21:           "NV21",
	PixFmtNV16:           "NV16",
	PixFmtNV61:           "NV61",
	PixFmtNV24:           "NV24",
	PixFmtNV42:           "NV42",
	PixFmtNV12M:          "NV12M",
	PixFmtNV21M:          "NV21M",
	PixFmtNV16M:          "NV16M",
	PixFmtNV61M:          "NV61M",
	PixFmtNV12MT:         "NV12MT",
	PixFmtNV12MT16X16:    "NV12MT_16X16",
	PixFmtYUV410:         "YUV410",
	PixFmtYVU410:         "YVU410",
	PixFmtYUV411P:        "YUV411P",
	PixFmtYUV420:         "YUV420",
	PixFmtYVU420:         "YVU420",
	PixFmtYUV422P:        "YUV422P",
	PixFmtYUV420M:        "YUV420M",
	PixFmtYVU420M:        "YVU420M",
	PixFmtYUV422M:        "YUV422M",
	PixFmtYVU422M:        "YVU422M",
	PixFmtYUV444M:        "YUV444M",
	PixFmtYVU444M:        "YVU444M",
	PixFmtSBGGR8:         "SBGGR8",
	PixFmtSGBRG8:         "SGBRG8",
	PixFmtSGRBG8:         "SGRBG8",
	PixFmtSRGGB8:         "SRGGB8",
	PixFmtSBGGR10:        "SBGGR10",
	PixFmtSGBRG10:        "SGBRG10",
	PixFmtSGRBG10:        "SGRBG10",
	PixFmtSRGGB10:        "SRGGB10",
	PixFmtSBGGR10P:       "SBGGR10P",
	PixFmtSGBRG10P:       "SGBRG10P",
	PixFmtSGRBG10P:       "SGRBG10P",
	PixFmtSRGGB10P:       "SRGGB10P",
	PixFmtSBGGR10ALaw8:   "SBGGR10ALAW8",
	PixFmtSGBRG10ALaw8:   "SGBRG10ALAW8",
	PixFmtSGRBG10ALaw8:   "SGRBG10ALAW8",
	PixFmtSRGGB10ALaw8:   "SRGGB10ALAW8",
	PixFmtSBGGR10DPCM8:   "SBGGR10DPCM8",
	PixFmtSGBRG10DPCM8:   "SGBRG10DPCM8",
	PixFmtSGRBG10DPCM8:   "SGRBG10DPCM8",
	PixFmtSRGGB10DPCM8:   "SRGGB10DPCM8",
	PixFmtSBGGR12:        "SBGGR12",
	PixFmtSGBRG12:        "SGBRG12",
	PixFmtSGRBG12:        "SGRBG12",
	PixFmtSRGGB12:        "SRGGB12",
	PixFmtSBGGR12P:       "SBGGR12P",
	PixFmtSGBRG12P:       "SGBRG12P",
	PixFmtSGRBG12P:       "SGRBG12P",
	PixFmtSRGGB12P:       "SRGGB12P",
	PixFmtSBGGR14P:       "SBGGR14P",
	PixFmtSGBRG14P:       "SGBRG14P",
	PixFmtSGRBG14P:       "SGRBG14P",
	PixFmtSRGGB14P:       "SRGGB14P",
	PixFmtSBGGR16:        "SBGGR16",
	PixFmtSGBRG16:        "SGBRG16",
	PixFmtSGRBG16:        "SGRBG16",
	PixFmtSRGGB16:        "SRGGB16",
	PixFmtHSV24:          "HSV24",
	PixFmtHSV32:          "HSV32",
	PixFmtMJPEG:          "MJPEG",
	PixFmtJPEG:           "JPEG",
	PixFmtDV:             "DV",
	PixFmtMPEG:           "MPEG",
	PixFmtH264:           "H264",
	PixFmtH264NoSC:       "H264_NO_SC",
	PixFmtH264MVC:        "H264_MVC",
	PixFmtH263:           "H263",
	PixFmtMPEG1:          "MPEG1",
	PixFmtMPEG2:          "MPEG2",
	PixFmtMPEG2Slice:     "MPEG2_SLICE",
	PixFmtMPEG4:          "MPEG4",
	PixFmtXvid:           "XVID",
	PixFmtVC1AnnexG:      "VC1_ANNEX_G",
	PixFmtVC1AnnexL:      "VC1_ANNEX_L",
	PixFmtVP8:            "VP8",
	PixFmtVP9:            "VP9",
	PixFmtHEVC:           "HEVC",
	PixFmtFWHT:           "FWHT",
	PixFmtFWHTStateless:  "FWHT_STATELESS",
	PixFmtCPIA1:          "CPIA1",
	PixFmtWNVA:           "WNVA",
	PixFmtSN9C10X:        "SN9C10X",
	PixFmtSN9C20XI420:    "SN9C20X_I420",
	PixFmtPWC1:           "PWC1",
	PixFmtPWC2:           "PWC2",
	PixFmtET61X251:       "ET61X251",
	PixFmtSPCA501:        "SPCA501",
	PixFmtSPCA505:        "SPCA505",
	PixFmtSPCA508:        "SPCA508",
	PixFmtSPCA561:        "SPCA561",
	PixFmtPAC207:         "PAC207",
	PixFmtMR97310A:       "MR97310A",
	PixFmtJL2005BCD:      "JL2005BCD",
	PixFmtSN9C2028:       "SN9C2028",
	PixFmtSQ905C:         "SQ905C",
	PixFmtPJPG:           "PJPG",
	PixFmtOV511:          "OV511",
	PixFmtOV518:          "OV518",
	PixFmtSTV0680:        "STV0680",
	PixFmtTM6000:         "TM6000",
	PixFmtCITYYVYUY:      "CIT_YYVYUY",
	PixFmtKonica420:      "KONICA420",
	PixFmtJPGL:           "JPGL",
	PixFmtSE401:          "SE401",
	PixFmtS5CUYVYJPG:     "S5C_UYVY_JPG",
	PixFmtY8I:            "Y8I",
	PixFmtY12I:           "Y12I",
	PixFmtZ16:            "Z16",
	PixFmtMT21C:          "MT21C",
	PixFmtINZI:           "INZI",
	PixFmtSunxiTiledNV12: "SUNXI_TILED_NV12",
	PixFmtCNF4:           "CNF4",
	PixFmtIPU3SBGGR10:    "IPU3_SBGGR10",
	PixFmtIPU3SGBRG10:    "IPU3_SGBRG10",
	PixFmtIPU3SGRBG10:    "IPU3_SGRBG10",
	PixFmtIPU3SRGGB10:    "IPU3_SRGGB10",
}
