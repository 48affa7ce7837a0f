//go:build linux

package v4l2

import "testing"

func TestFourCCRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		format    PixelFormat
		fourcc    string
		bigEndian bool
	}{
		{"YUYV", PixFmtYUYV, "YUYV", false},
		{"MJPEG", PixFmtMJPEG, "MJPG", false},
		{"H264", PixFmtH264, "H264", false},
		{"NV12", PixFmtNV12, "NV12", false},
		{"greyscale with trailing space", PixFmtY10, "Y10 ", false},
		{"big-endian greyscale", PixFmtY16BE, "Y16 ", true},
		{"big-endian ARGB555", PixFmtARGB555X, "AR15", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.format.FourCC(); got != tt.fourcc {
				t.Errorf("FourCC() = %q, want %q", got, tt.fourcc)
			}
			if got := tt.format.BigEndian(); got != tt.bigEndian {
				t.Errorf("BigEndian() = %v, want %v", got, tt.bigEndian)
			}

			b := []byte(tt.fourcc)
			rebuilt := FourCC(b[0], b[1], b[2], b[3])
			if tt.bigEndian {
				rebuilt = FourCCBE(b[0], b[1], b[2], b[3])
			}
			if rebuilt != tt.format {
				t.Errorf("rebuilt format = %#08x, want %#08x", uint32(rebuilt), uint32(tt.format))
			}
		})
	}
}

func TestPixelFormatString(t *testing.T) {
	tests := []struct {
		name     string
		format   PixelFormat
		expected string
	}{
		{"known format", PixFmtYUYV, "YUYV"},
		{"known bayer format", PixFmtSGRBG10, "SGRBG10"},
		{"known big-endian format", PixFmtY16BE, "Y16_BE"},
		{"unknown format falls back to fourcc", FourCC('Z', 'Z', 'Z', 'Z'), "ZZZZ"},
		{"unknown big-endian format", FourCCBE('Z', 'Z', 'Z', 'Z'), "ZZZZ-BE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.format.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestLookupPixelFormat(t *testing.T) {
	pf, err := lookupPixelFormat(uint32(PixFmtYUYV))
	if err != nil {
		t.Fatalf("lookupPixelFormat(YUYV) returned error: %v", err)
	}
	if pf != PixFmtYUYV {
		t.Errorf("lookupPixelFormat(YUYV) = %#08x, want %#08x", uint32(pf), uint32(PixFmtYUYV))
	}

	if _, err := lookupPixelFormat(uint32(FourCC('?', '?', '?', '?'))); err == nil {
		t.Error("lookupPixelFormat accepted an unknown code")
	}
}

// Duplicate codes in the catalog fail to compile (the name map would
// have duplicate keys), so only duplicate names need a runtime check.
func TestCatalogDistinct(t *testing.T) {
	seen := make(map[string]PixelFormat, len(pixFmtNames))
	for format, name := range pixFmtNames {
		if prev, dup := seen[name]; dup {
			t.Errorf("name %q maps to both %#08x and %#08x", name, uint32(prev), uint32(format))
		}
		seen[name] = format
	}
}
