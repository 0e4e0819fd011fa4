package pixel

import "math/bits"

// NextPOT returns the smallest power of two >= n. Values <= 1 return 1.
func NextPOT(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// IsPOT reports whether n is a positive power of two.
func IsPOT(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// POTSize returns the texture dimensions for a width x height image.
// When npot is true the image dimensions are used unchanged.
func POTSize(width, height int, npot bool) (potWidth, potHeight int) {
	if npot {
		return width, height
	}
	return NextPOT(width), NextPOT(height)
}
