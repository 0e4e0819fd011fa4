package pixel

import (
	"encoding/binary"
	"fmt"
)

// Expand widens a final buffer of format back to RGBA8888 (4 bytes per
// texel). It is used by devices that only accept RGBA uploads.
//
// Reduced channels are widened by bit replication, so 0 stays 0 and the
// maximum channel value becomes 255. A8 becomes (0, 0, 0, a) and RGB888
// becomes (r, g, b, 255). RGBA8888 input is returned unchanged.
func Expand(buf []byte, width, height int, format Format) ([]byte, error) {
	if !format.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPixelFormat, format)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	n := width * height
	if need := format.ImageBytes(width, height); len(buf) < need {
		return nil, fmt.Errorf("%w: have %d bytes, need %d for %dx%d %s",
			ErrDataTooSmall, len(buf), need, width, height, format)
	}
	if format == RGBA8888 {
		return buf, nil
	}

	dst := make([]byte, n*4)
	for i := range n {
		o := dst[i*4 : i*4+4]
		switch format {
		case RGB888:
			o[0], o[1], o[2], o[3] = buf[i*3], buf[i*3+1], buf[i*3+2], 0xFF
		case A8:
			o[3] = buf[i]
		case RGB565:
			v := binary.LittleEndian.Uint16(buf[i*2:])
			o[0] = widen(v>>11, 5)
			o[1] = widen(v>>5, 6)
			o[2] = widen(v, 5)
			o[3] = 0xFF
		case RGBA4444:
			v := binary.LittleEndian.Uint16(buf[i*2:])
			o[0] = widen(v>>12, 4)
			o[1] = widen(v>>8, 4)
			o[2] = widen(v>>4, 4)
			o[3] = widen(v, 4)
		case RGB5A1:
			v := binary.LittleEndian.Uint16(buf[i*2:])
			o[0] = widen(v>>11, 5)
			o[1] = widen(v>>6, 5)
			o[2] = widen(v>>1, 5)
			if v&1 != 0 {
				o[3] = 0xFF
			}
		}
	}
	return dst, nil
}

// widen replicates the low bits of v to fill 8 bits.
func widen(v uint16, bits uint) uint8 {
	v &= 1<<bits - 1
	out := v << (8 - bits)
	for shift := bits; shift < 8; shift += bits {
		out |= v << (8 - bits) >> shift
	}
	return uint8(out)
}
