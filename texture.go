package tex2d

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/tex2d/pixel"
	"github.com/gogpu/tex2d/render"
)

// Texture is a GPU texture created by a Manager.
//
// The texel buffer is rounded up to powers of two unless the device
// supports NPOT textures. ContentSizeInPixels is the size of the image
// inside that buffer and MaxS/MaxT are its texture coordinates.
//
// A Texture is not safe for concurrent use.
type Texture struct {
	mgr    *Manager
	handle render.Handle

	format        pixel.Format
	pixelsWide    int
	pixelsHigh    int
	contentSize   pixel.Size
	maxS, maxT    float64
	premultiplied bool

	params    render.TexParams
	mipmapped bool
	destroyed bool
}

// InitWithImage builds img into a texel buffer, uploads it and records it
// for recovery. The texture is left unchanged on failure.
func (t *Texture) InitWithImage(img *pixel.Image) error {
	if t.destroyed {
		return ErrTextureDestroyed
	}
	if img == nil {
		return ErrNilImage
	}

	res, err := t.mgr.build(img)
	if err != nil {
		if errors.Is(err, pixel.ErrDimensionTooLarge) {
			Logger().Warn("tex2d: image too large for device",
				"texture", t.handle, "width", img.Width, "height", img.Height, "err", err)
		}
		return fmt.Errorf("tex2d: init texture %d: %w", t.handle, err)
	}

	if err := t.InitWithData(res.Data, res.Format, res.PixelsWide, res.PixelsHigh, res.ContentSize); err != nil {
		return err
	}
	t.premultiplied = res.PremultipliedAlpha
	t.mgr.setPremultiplied(t.handle, t.premultiplied)
	return nil
}

// InitWithData uploads a texel buffer already in the final layout of format
// and records it for recovery. Data beyond the size of the texture is
// ignored. The texture is left unchanged on failure.
//
// After a successful call the texture has straight alpha, no mipmaps and
// anti-alias parameters.
func (t *Texture) InitWithData(data []byte, format pixel.Format, pixelsWide, pixelsHigh int, contentSize pixel.Size) error {
	if t.destroyed {
		return ErrTextureDestroyed
	}
	if t.mgr.isClosed() {
		return ErrManagerClosed
	}
	if !format.IsValid() {
		return fmt.Errorf("tex2d: init texture %d: %w: %s", t.handle, pixel.ErrUnsupportedPixelFormat, format)
	}
	if pixelsWide <= 0 || pixelsHigh <= 0 {
		return fmt.Errorf("tex2d: init texture %d: %w: width=%d, height=%d",
			t.handle, pixel.ErrInvalidDimensions, pixelsWide, pixelsHigh)
	}
	need := format.ImageBytes(pixelsWide, pixelsHigh)
	if len(data) < need {
		return fmt.Errorf("tex2d: init texture %d: %w: have %d bytes, need %d",
			t.handle, pixel.ErrDataTooSmall, len(data), need)
	}
	data = data[:need]

	if err := t.mgr.device.UploadTexture(t.handle, format, pixelsWide, pixelsHigh, data); err != nil {
		return err
	}

	t.format = format
	t.pixelsWide = pixelsWide
	t.pixelsHigh = pixelsHigh
	t.contentSize = contentSize
	t.maxS = contentSize.Width / float64(pixelsWide)
	t.maxT = contentSize.Height / float64(pixelsHigh)
	t.premultiplied = false
	t.mipmapped = false
	t.params = render.AntiAliasTexParams()

	t.mgr.record(t, data)
	return nil
}

// Destroy releases the texture on the device and drops its recovery data.
// Destroy is idempotent.
func (t *Texture) Destroy() {
	if t.destroyed {
		return
	}
	t.destroyed = true
	t.mgr.forget(t.handle)
}

// IsDestroyed reports whether Destroy or Manager.Close was called.
func (t *Texture) IsDestroyed() bool {
	return t.destroyed
}

// Name returns the device handle of the texture.
func (t *Texture) Name() render.Handle {
	return t.handle
}

// PixelFormat returns the format of the texel buffer.
func (t *Texture) PixelFormat() pixel.Format {
	return t.format
}

// PixelsWide returns the width of the texel buffer.
func (t *Texture) PixelsWide() int {
	return t.pixelsWide
}

// PixelsHigh returns the height of the texel buffer.
func (t *Texture) PixelsHigh() int {
	return t.pixelsHigh
}

// ContentSizeInPixels returns the image size before POT rounding.
func (t *Texture) ContentSizeInPixels() pixel.Size {
	return t.contentSize
}

// ContentSize returns the image size in points.
func (t *Texture) ContentSize() pixel.Size {
	return t.contentSize.Scale(t.mgr.scale)
}

// MaxS returns the horizontal texture coordinate of the content edge.
func (t *Texture) MaxS() float64 { return t.maxS }

// SetMaxS overrides the horizontal texture coordinate of the content edge.
func (t *Texture) SetMaxS(s float64) { t.maxS = s }

// MaxT returns the vertical texture coordinate of the content edge.
func (t *Texture) MaxT() float64 { return t.maxT }

// SetMaxT overrides the vertical texture coordinate of the content edge.
func (t *Texture) SetMaxT(v float64) { t.maxT = v }

// HasPremultipliedAlpha reports whether the texel colors are premultiplied.
func (t *Texture) HasPremultipliedAlpha() bool {
	return t.premultiplied
}

// IsPOT reports whether both texel buffer dimensions are powers of two.
func (t *Texture) IsPOT() bool {
	return pixel.IsPOT(t.pixelsWide) && pixel.IsPOT(t.pixelsHigh)
}

// SetTexParameters sets the sampling parameters. Repeat wrapping needs a
// POT texture and fails with ErrNPOTWrap otherwise.
func (t *Texture) SetTexParameters(p render.TexParams) error {
	if t.destroyed {
		return ErrTextureDestroyed
	}
	if p.RequiresPOT() && !t.IsPOT() {
		return fmt.Errorf("%w: texture %d is %dx%d", ErrNPOTWrap, t.handle, t.pixelsWide, t.pixelsHigh)
	}
	t.params = p
	return nil
}

// SetAliasTexParameters sets nearest filtering with clamp-to-edge wrapping.
// It is a no-op on a destroyed texture.
func (t *Texture) SetAliasTexParameters() {
	_ = t.SetTexParameters(render.AliasTexParams())
}

// SetAntiAliasTexParameters sets linear filtering with clamp-to-edge
// wrapping. It is a no-op on a destroyed texture.
func (t *Texture) SetAntiAliasTexParameters() {
	_ = t.SetTexParameters(render.AntiAliasTexParams())
}

// TexParameters returns the sampling parameters.
func (t *Texture) TexParameters() render.TexParams {
	return t.params
}

// SamplerDescriptor returns the sampler matching the texture parameters.
func (t *Texture) SamplerDescriptor() gputypes.SamplerDescriptor {
	return t.params.SamplerDescriptor(t.mipmapped)
}

// GenerateMipmap builds the mip chain on devices implementing
// render.MipmapGenerator and enables mipmap filtering in SamplerDescriptor.
// Other devices only get the sampler state. NPOT textures fail with
// ErrMipmapNPOT.
//
// ReloadAllTextures restores level 0 only; call GenerateMipmap again after
// a reload.
func (t *Texture) GenerateMipmap() error {
	if t.destroyed {
		return ErrTextureDestroyed
	}
	if !t.IsPOT() {
		return fmt.Errorf("%w: texture %d is %dx%d", ErrMipmapNPOT, t.handle, t.pixelsWide, t.pixelsHigh)
	}
	if g, ok := t.mgr.device.(render.MipmapGenerator); ok {
		if err := g.GenerateMipmaps(t.handle); err != nil {
			return fmt.Errorf("tex2d: generate mipmaps for texture %d: %w", t.handle, err)
		}
	}
	t.mipmapped = true
	return nil
}

// IsMipmapped reports whether GenerateMipmap succeeded since the last init.
func (t *Texture) IsMipmapped() bool {
	return t.mipmapped
}

// String returns a description of the texture.
func (t *Texture) String() string {
	return fmt.Sprintf("<Texture | Name = %d | Dimensions = %d x %d | Coordinates = (%.2f, %.2f)>",
		t.handle, t.pixelsWide, t.pixelsHigh, t.maxS, t.maxT)
}
