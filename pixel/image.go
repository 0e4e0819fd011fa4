package pixel

import "fmt"

// Image is a decoded bitmap ready for texture conversion.
//
// Data is row-major with the origin at the top-left and no row padding. Its
// texel layout must match the format SelectFormat picks for the image:
// 3 bytes (R, G, B) per texel for RGB888 and 4 bytes (R, G, B, A) per texel
// for every other format, including alpha masks.
type Image struct {
	Width  int
	Height int
	Data   []byte

	// HasAlpha reports whether the image carries meaningful alpha.
	HasAlpha bool

	// BitsPerComponent is the bit depth of one color channel.
	BitsPerComponent int

	// HasColorSpace is false for alpha masks.
	HasColorSpace bool

	// PremultipliedAlpha reports whether RGB is pre-scaled by alpha.
	PremultipliedAlpha bool
}

// NewRGBAImage wraps 4-byte-per-texel RGBA data.
func NewRGBAImage(width, height int, data []byte, premultiplied bool) *Image {
	return &Image{
		Width:              width,
		Height:             height,
		Data:               data,
		HasAlpha:           true,
		BitsPerComponent:   8,
		HasColorSpace:      true,
		PremultipliedAlpha: premultiplied,
	}
}

// NewRGBImage wraps 3-byte-per-texel RGB data.
func NewRGBImage(width, height int, data []byte) *Image {
	return &Image{
		Width:            width,
		Height:           height,
		Data:             data,
		BitsPerComponent: 8,
		HasColorSpace:    true,
	}
}

// NewMaskImage builds an alpha mask from one coverage byte per texel.
// The bytes are spread into the 4-byte source layout as (0, 0, 0, a).
// A nil alpha slice yields an image with nil Data.
func NewMaskImage(width, height int, alpha []byte) *Image {
	img := &Image{
		Width:            width,
		Height:           height,
		HasAlpha:         true,
		BitsPerComponent: 8,
	}
	if alpha == nil {
		return img
	}
	n := max(width, 0) * max(height, 0)
	img.Data = make([]byte, n*4)
	for i := range min(n, len(alpha)) {
		img.Data[i*4+3] = alpha[i]
	}
	return img
}

// SourceRowBytes returns the row length of Data for the given format.
func (img *Image) SourceRowBytes(format Format) int {
	return img.Width * format.SourceBytesPerTexel()
}

// Validate checks dimensions and that Data is large enough for format.
func (img *Image) Validate(format Format) error {
	if img == nil {
		return ErrNilImage
	}
	if img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, img.Width, img.Height)
	}
	if img.Data == nil {
		return ErrNullImageData
	}
	if need := img.SourceRowBytes(format) * img.Height; len(img.Data) < need {
		return fmt.Errorf("%w: have %d bytes, need %d for %dx%d %s",
			ErrDataTooSmall, len(img.Data), need, img.Width, img.Height, format)
	}
	return nil
}

// Size is a logical size in pixels.
type Size struct {
	Width  float64
	Height float64
}

// SizeOf returns the logical size of an integer width and height.
func SizeOf(width, height int) Size {
	return Size{Width: float64(width), Height: float64(height)}
}

// Scale divides both dimensions by factor. A non-positive factor returns s.
func (s Size) Scale(factor float64) Size {
	if factor <= 0 {
		return s
	}
	return Size{Width: s.Width / factor, Height: s.Height / factor}
}

// String returns "WxH".
func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}
