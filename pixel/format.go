package pixel

import (
	"fmt"
	"strings"
)

// Format is the pixel format of a texture as stored on the GPU.
type Format uint8

const (
	// RGBA8888 is 32-bit RGBA, 8 bits per channel (4 bytes per texel).
	RGBA8888 Format = iota

	// RGB888 is 24-bit RGB without alpha (3 bytes per texel).
	RGB888

	// RGBA4444 is 16-bit RGBA, 4 bits per channel (2 bytes per texel).
	RGBA4444

	// RGB5A1 is 16-bit RGB with 5 bits per color and 1 alpha bit (2 bytes per texel).
	RGB5A1

	// RGB565 is 16-bit RGB with 5/6/5 bits and no alpha (2 bytes per texel).
	RGB565

	// A8 is an 8-bit alpha mask (1 byte per texel).
	A8

	// formatCount is the number of formats (for internal use).
	formatCount
)

// Default is the pixel format used for images with alpha unless configured otherwise.
const Default = RGBA8888

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	// BytesPerTexel is the size of one texel in the final GPU buffer.
	BytesPerTexel int

	// SourceBytesPerTexel is the size of one texel in the intermediate
	// buffer produced before repacking. The source image data must use
	// this layout.
	SourceBytesPerTexel int

	// HasAlpha indicates if the format stores an alpha channel.
	HasAlpha bool

	// Compact indicates a format with fewer than 8 bits per channel.
	Compact bool

	// Bits per channel, zero if the channel is absent.
	RedBits, GreenBits, BlueBits, AlphaBits int
}

var formatInfoTable = [formatCount]FormatInfo{
	RGBA8888: {
		BytesPerTexel:       4,
		SourceBytesPerTexel: 4,
		HasAlpha:            true,
		RedBits:             8,
		GreenBits:           8,
		BlueBits:            8,
		AlphaBits:           8,
	},
	RGB888: {
		BytesPerTexel:       3,
		SourceBytesPerTexel: 3,
		RedBits:             8,
		GreenBits:           8,
		BlueBits:            8,
	},
	RGBA4444: {
		BytesPerTexel:       2,
		SourceBytesPerTexel: 4,
		HasAlpha:            true,
		Compact:             true,
		RedBits:             4,
		GreenBits:           4,
		BlueBits:            4,
		AlphaBits:           4,
	},
	RGB5A1: {
		BytesPerTexel:       2,
		SourceBytesPerTexel: 4,
		HasAlpha:            true,
		Compact:             true,
		RedBits:             5,
		GreenBits:           5,
		BlueBits:            5,
		AlphaBits:           1,
	},
	RGB565: {
		BytesPerTexel:       2,
		SourceBytesPerTexel: 4,
		Compact:             true,
		RedBits:             5,
		GreenBits:           6,
		BlueBits:            5,
	},
	A8: {
		BytesPerTexel:       1,
		SourceBytesPerTexel: 4,
		HasAlpha:            true,
		AlphaBits:           8,
	},
}

var formatNames = [formatCount]string{
	RGBA8888: "RGBA8888",
	RGB888:   "RGB888",
	RGBA4444: "RGBA4444",
	RGB5A1:   "RGB5A1",
	RGB565:   "RGB565",
	A8:       "A8",
}

// Formats returns every known format in declaration order.
func Formats() []Format {
	out := make([]Format, 0, formatCount)
	for f := range formatCount {
		out = append(out, f)
	}
	return out
}

// Info returns the FormatInfo for this format.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// BytesPerTexel returns the number of bytes per texel in the GPU buffer.
func (f Format) BytesPerTexel() int {
	return f.Info().BytesPerTexel
}

// SourceBytesPerTexel returns the number of bytes per texel of the
// intermediate (pre-repack) buffer.
func (f Format) SourceBytesPerTexel() int {
	return f.Info().SourceBytesPerTexel
}

// HasAlpha returns true if the format stores alpha.
func (f Format) HasAlpha() bool {
	return f.Info().HasAlpha
}

// IsAlphaFormat reports whether f can hold images with alpha and so can be
// the default alpha format: RGBA8888, RGBA4444, RGB5A1 or A8.
func (f Format) IsAlphaFormat() bool {
	return f.IsValid() && f.HasAlpha()
}

// IsCompact returns true for the 16-bit formats that need bit packing.
func (f Format) IsCompact() bool {
	return f.Info().Compact
}

// IsValid returns true if the format is a known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// RowBytes returns the number of bytes of one row of the given width.
func (f Format) RowBytes(width int) int {
	return width * f.BytesPerTexel()
}

// ImageBytes returns the number of bytes of a width x height buffer.
func (f Format) ImageBytes(width, height int) int {
	return f.RowBytes(width) * height
}

// String returns the format name.
func (f Format) String() string {
	if f >= formatCount {
		return fmt.Sprintf("Unknown(%d)", uint8(f))
	}
	return formatNames[f]
}

// ParseFormat returns the format with the given name. Matching ignores case.
func ParseFormat(name string) (Format, error) {
	for f, n := range formatNames {
		if strings.EqualFold(n, name) {
			return Format(f), nil
		}
	}
	return Default, fmt.Errorf("%w: %q", ErrUnsupportedPixelFormat, name)
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	if !f.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedPixelFormat, uint8(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
