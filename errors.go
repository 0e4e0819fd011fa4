package tex2d

import (
	"errors"

	"github.com/gogpu/tex2d/pixel"
)

// Texture errors.
var (
	// ErrTextureDestroyed is returned by operations on a destroyed texture.
	ErrTextureDestroyed = errors.New("tex2d: texture destroyed")

	// ErrNPOTWrap is returned when repeat wrapping is requested for a
	// texture whose dimensions are not powers of two.
	ErrNPOTWrap = errors.New("tex2d: repeat wrapping requires power-of-two dimensions")

	// ErrMipmapNPOT is returned by GenerateMipmap for NPOT textures.
	ErrMipmapNPOT = errors.New("tex2d: mipmaps require power-of-two dimensions")

	// ErrManagerClosed is returned after Manager.Close.
	ErrManagerClosed = errors.New("tex2d: manager closed")

	// ErrNilImage is returned when a nil image is passed. It is the same
	// value as pixel.ErrNilImage.
	ErrNilImage = pixel.ErrNilImage
)
