// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

// mipLevelCount returns the number of levels of a full mip chain for a
// texture of the given size, down to 1x1.
func mipLevelCount(width, height int) uint32 {
	n := uint32(1)
	for d := max(width, height); d > 1; d /= 2 {
		n++
	}
	return n
}

// downsample halves an 8-bit-per-channel buffer with a 2x2 box filter.
// Odd edges reuse the last row or column.
func downsample(src []byte, width, height, bpp int) ([]byte, int, int) {
	dstW := max(1, width/2)
	dstH := max(1, height/2)
	dst := make([]byte, dstW*dstH*bpp)

	at := func(x, y, c int) uint16 {
		return uint16(src[(y*width+x)*bpp+c])
	}
	for dy := range dstH {
		sy0 := dy * 2
		sy1 := min(sy0+1, height-1)
		for dx := range dstW {
			sx0 := dx * 2
			sx1 := min(sx0+1, width-1)
			o := (dy*dstW + dx) * bpp
			for c := range bpp {
				sum := at(sx0, sy0, c) + at(sx1, sy0, c) + at(sx0, sy1, c) + at(sx1, sy1, c)
				dst[o+c] = byte(sum / 4)
			}
		}
	}
	return dst, dstW, dstH
}
