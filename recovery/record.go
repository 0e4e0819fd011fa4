package recovery

import (
	"fmt"

	"github.com/gogpu/tex2d/pixel"
	"github.com/gogpu/tex2d/render"
)

// Record is the data needed to upload a texture again.
type Record struct {
	Handle render.Handle
	Format pixel.Format

	// Data is the final texel buffer in Format's layout.
	Data []byte

	PixelsWide int
	PixelsHigh int

	// ContentSize is the image size before POT rounding.
	ContentSize pixel.Size
}

// Validate checks that the handle is set and that Data has exactly the size
// implied by Format and the dimensions.
func (r *Record) Validate() error {
	if r.Handle == render.InvalidHandle {
		return ErrInvalidHandle
	}
	if !r.Format.IsValid() {
		return fmt.Errorf("%w: %s", pixel.ErrUnsupportedPixelFormat, r.Format)
	}
	if r.PixelsWide <= 0 || r.PixelsHigh <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", pixel.ErrInvalidDimensions, r.PixelsWide, r.PixelsHigh)
	}
	if want := r.Format.ImageBytes(r.PixelsWide, r.PixelsHigh); len(r.Data) != want {
		return fmt.Errorf("%w: %d bytes for %dx%d %s, want %d",
			ErrSizeMismatch, len(r.Data), r.PixelsWide, r.PixelsHigh, r.Format, want)
	}
	return nil
}

// clone returns a copy of r that owns its Data.
func (r *Record) clone() Record {
	c := *r
	c.Data = make([]byte, len(r.Data))
	copy(c.Data, r.Data)
	return c
}
