package pixel

import (
	"fmt"
	"log/slog"
)

// Capabilities is the device capability query consumed by Build.
type Capabilities interface {
	// SupportsNonPowerOfTwo reports whether textures may have NPOT dimensions.
	SupportsNonPowerOfTwo() bool

	// SupportsCompressedFormat reports whether compressed formats can be sampled.
	SupportsCompressedFormat() bool

	// MaxTextureDimension returns the largest allowed width or height.
	MaxTextureDimension() int
}

// Config controls texture building.
type Config struct {
	// DefaultAlphaFormat is used for color images with alpha.
	DefaultAlphaFormat Format

	// AllowNPOT keeps image dimensions when the device supports NPOT
	// textures. When false every texture is rounded up to powers of two.
	AllowNPOT bool
}

// DefaultConfig returns the default build configuration: RGBA8888 for
// images with alpha and POT rounding only when the device requires it.
func DefaultConfig() Config {
	return Config{
		DefaultAlphaFormat: Default,
		AllowNPOT:          true,
	}
}

// SelectFormat chooses the texture format for img.
//
// Images without a color space are alpha masks and map to A8. Images with
// alpha use defaultAlpha. Opaque images map to RGB888 at 8 or more bits per
// component and to RGB565 otherwise.
func SelectFormat(img *Image, defaultAlpha Format) Format {
	switch {
	case !img.HasColorSpace:
		return A8
	case img.HasAlpha:
		return defaultAlpha
	case img.BitsPerComponent >= 8:
		return RGB888
	default:
		return RGB565
	}
}

// Result is the output of Build.
type Result struct {
	Format Format

	// Data is the final texel buffer, PixelsWide*PixelsHigh*Format.BytesPerTexel() bytes.
	Data []byte

	PixelsWide int
	PixelsHigh int

	// ContentSize is the image size before POT rounding.
	ContentSize Size

	PremultipliedAlpha bool
}

// MaxS returns the horizontal texture coordinate of the content edge.
func (r Result) MaxS() float64 {
	if r.PixelsWide == 0 {
		return 0
	}
	return r.ContentSize.Width / float64(r.PixelsWide)
}

// MaxT returns the vertical texture coordinate of the content edge.
func (r Result) MaxT() float64 {
	if r.PixelsHigh == 0 {
		return 0
	}
	return r.ContentSize.Height / float64(r.PixelsHigh)
}

// Builder turns images into texel buffers ready for upload.
//
// A Builder holds no state besides its Config and may be copied. It is not
// safe to change the default alpha format while another goroutine builds.
type Builder struct {
	config Config
	logger *slog.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLogger sets the logger used for debug output of Build.
func WithLogger(l *slog.Logger) BuilderOption {
	return func(b *Builder) {
		b.logger = l
	}
}

// NewBuilder creates a Builder with the given configuration.
// A DefaultAlphaFormat without alpha is replaced by Default.
func NewBuilder(config Config, opts ...BuilderOption) *Builder {
	if !config.DefaultAlphaFormat.IsAlphaFormat() {
		config.DefaultAlphaFormat = Default
	}
	b := &Builder{config: config}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Config returns the builder configuration.
func (b *Builder) Config() Config {
	return b.config
}

// DefaultAlphaPixelFormat returns the format used for images with alpha.
func (b *Builder) DefaultAlphaPixelFormat() Format {
	return b.config.DefaultAlphaFormat
}

// SetDefaultAlphaPixelFormat changes the format used for images with alpha.
// Formats without alpha (see Format.IsAlphaFormat) are ignored.
func (b *Builder) SetDefaultAlphaPixelFormat(f Format) {
	if f.IsAlphaFormat() {
		b.config.DefaultAlphaFormat = f
	}
}

// SelectFormat chooses the texture format for img using the builder's
// default alpha format.
func (b *Builder) SelectFormat(img *Image) Format {
	return SelectFormat(img, b.config.DefaultAlphaFormat)
}

// Build converts img into a texel buffer.
//
// It selects the format, computes the texture dimensions, copies the image
// into a zero-padded buffer and repacks it into the final layout. Build
// fails with ErrDimensionTooLarge when a texture dimension exceeds
// caps.MaxTextureDimension(). A nil caps means POT rounding without a
// size limit.
func (b *Builder) Build(img *Image, caps Capabilities) (Result, error) {
	if img == nil {
		return Result{}, ErrNilImage
	}
	format := b.SelectFormat(img)
	if err := img.Validate(format); err != nil {
		return Result{}, err
	}

	npot := b.config.AllowNPOT && caps != nil && caps.SupportsNonPowerOfTwo()
	potW, potH := POTSize(img.Width, img.Height, npot)

	if caps != nil {
		if limit := caps.MaxTextureDimension(); limit > 0 && (potW > limit || potH > limit) {
			return Result{}, fmt.Errorf("%w: %dx%d exceeds %d (image %dx%d)",
				ErrDimensionTooLarge, potW, potH, limit, img.Width, img.Height)
		}
	}

	buf, err := BuildPOTBuffer(img, potW, potH, format)
	if err != nil {
		return Result{}, err
	}
	data, err := Repack(buf, potW, potH, format)
	if err != nil {
		return Result{}, err
	}

	if b.logger != nil {
		b.logger.Debug("pixel: built texture buffer",
			"format", format,
			"image", SizeOf(img.Width, img.Height),
			"texture", SizeOf(potW, potH),
			"npot", npot,
			"bytes", len(data))
	}

	return Result{
		Format:             format,
		Data:               data,
		PixelsWide:         potW,
		PixelsHigh:         potH,
		ContentSize:        SizeOf(img.Width, img.Height),
		PremultipliedAlpha: img.PremultipliedAlpha,
	}, nil
}
