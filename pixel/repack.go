package pixel

import (
	"encoding/binary"
	"fmt"
)

// repackFunc converts an intermediate buffer of n texels to the final
// layout of its format.
type repackFunc func(src []byte, n int) []byte

// repackKernels is indexed by Format. A nil entry means the intermediate
// layout already is the final layout.
var repackKernels = [formatCount]repackFunc{
	RGBA8888: nil,
	RGB888:   nil,
	RGBA4444: pack16(packRGBA4444),
	RGB5A1:   pack16(packRGB5A1),
	RGB565:   pack16(packRGB565),
	A8:       reduceA8,
}

// Repack converts an intermediate POT buffer, as produced by BuildPOTBuffer,
// into the final texel layout of format.
//
// Each intermediate texel is read as a little-endian uint32 with R in byte 0
// and A in byte 3. The 16-bit formats are packed by truncating each channel
// and stored little-endian. A8 keeps byte 3 of each texel. RGBA8888 and
// RGB888 are returned unchanged.
//
// The reduction is lossy and cannot be reversed.
func Repack(buf []byte, potWidth, potHeight int, format Format) ([]byte, error) {
	if !format.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPixelFormat, format)
	}
	if potWidth <= 0 || potHeight <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, potWidth, potHeight)
	}
	n := potWidth * potHeight
	if need := n * format.SourceBytesPerTexel(); len(buf) < need {
		return nil, fmt.Errorf("%w: have %d bytes, need %d for %dx%d %s",
			ErrDataTooSmall, len(buf), need, potWidth, potHeight, format)
	}

	kernel := repackKernels[format]
	if kernel == nil {
		return buf, nil
	}
	return kernel(buf, n), nil
}

// PackTexel packs one 8-bit-per-channel texel into a 16-bit format.
// It returns 0 for formats that are not 16-bit.
func PackTexel(format Format, r, g, b, a uint8) uint16 {
	switch format {
	case RGBA4444:
		return packRGBA4444(r, g, b, a)
	case RGB5A1:
		return packRGB5A1(r, g, b, a)
	case RGB565:
		return packRGB565(r, g, b, a)
	default:
		return 0
	}
}

func packRGB565(r, g, b, _ uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}

func packRGBA4444(r, g, b, a uint8) uint16 {
	return uint16(r>>4)<<12 | uint16(g>>4)<<8 | uint16(b>>4)<<4 | uint16(a>>4)
}

func packRGB5A1(r, g, b, a uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>3)<<6 | uint16(b>>3)<<1 | uint16(a>>7)
}

func pack16(pack func(r, g, b, a uint8) uint16) repackFunc {
	return func(src []byte, n int) []byte {
		dst := make([]byte, n*2)
		for i := range n {
			p := binary.LittleEndian.Uint32(src[i*4:])
			v := pack(uint8(p), uint8(p>>8), uint8(p>>16), uint8(p>>24))
			binary.LittleEndian.PutUint16(dst[i*2:], v)
		}
		return dst
	}
}

func reduceA8(src []byte, n int) []byte {
	dst := make([]byte, n)
	for i := range n {
		dst[i] = src[i*4+3]
	}
	return dst
}
