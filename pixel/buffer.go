package pixel

import "fmt"

// BuildPOTBuffer copies the image into a potWidth x potHeight buffer in the
// intermediate layout of format (4 bytes per texel, 3 for RGB888).
//
// When the image already has the target dimensions the data is copied in
// bulk. Otherwise every image row is copied to the same row of a
// zero-initialised buffer; the trailing columns and rows stay zero so edge
// sampling never reads garbage.
//
// The returned buffer never aliases img.Data.
func BuildPOTBuffer(img *Image, potWidth, potHeight int, format Format) ([]byte, error) {
	if !format.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPixelFormat, format)
	}
	if err := img.Validate(format); err != nil {
		return nil, err
	}
	if potWidth < img.Width || potHeight < img.Height {
		return nil, fmt.Errorf("%w: target %dx%d smaller than image %dx%d",
			ErrInvalidDimensions, potWidth, potHeight, img.Width, img.Height)
	}

	bpp := format.SourceBytesPerTexel()
	dst := make([]byte, potWidth*potHeight*bpp)

	if img.Width == potWidth && img.Height == potHeight {
		copy(dst, img.Data[:len(dst)])
		return dst, nil
	}

	srcStride := img.Width * bpp
	dstStride := potWidth * bpp
	for y := range img.Height {
		src := img.Data[y*srcStride : (y+1)*srcStride]
		copy(dst[y*dstStride:y*dstStride+srcStride], src)
	}
	return dst, nil
}
