package pixel

import "errors"

// Errors returned by the conversion pipeline.
var (
	// ErrNilImage is returned when a nil *Image is passed to Build.
	ErrNilImage = errors.New("pixel: image is nil")

	// ErrNullImageData is returned when the image has no pixel data.
	// An empty image is an error, not an empty texture.
	ErrNullImageData = errors.New("pixel: image data is nil")

	// ErrDimensionTooLarge is returned when the texture dimensions exceed
	// the maximum texture size of the device.
	ErrDimensionTooLarge = errors.New("pixel: texture dimensions exceed device limit")

	// ErrUnsupportedPixelFormat is returned for a format outside the known set.
	ErrUnsupportedPixelFormat = errors.New("pixel: unsupported pixel format")

	// ErrInvalidDimensions is returned when width or height is non-positive
	// or the target buffer is smaller than the image.
	ErrInvalidDimensions = errors.New("pixel: invalid dimensions")

	// ErrDataTooSmall is returned when a buffer holds fewer bytes than its
	// dimensions and format require.
	ErrDataTooSmall = errors.New("pixel: data buffer too small")
)
