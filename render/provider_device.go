// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/tex2d/pixel"
)

// ErrNilCreator is returned by NewProviderDevice for a nil creator.
var ErrNilCreator = errors.New("render: nil TextureCreator")

// textureDestroyer matches the Destroy method of gogpu textures.
type textureDestroyer interface {
	Destroy()
}

// premultipliedSetter matches textures that record their alpha mode.
type premultipliedSetter interface {
	SetPremultiplied(bool)
}

type providerTexture struct {
	tex           gpucontext.Texture
	width         int
	height        int
	premultiplied bool
}

// ProviderDevice uploads textures through a gpucontext.TextureCreator, such
// as the renderer of a gogpu application.
//
// TextureCreator only accepts RGBA data, so every format is widened to
// RGBA8888 before upload. A same-sized re-upload updates the existing
// texture in place when it implements gpucontext.TextureUpdater.
type ProviderDevice struct {
	mu       sync.Mutex
	creator  gpucontext.TextureCreator
	handles  handleSource
	textures map[Handle]*providerTexture
}

// NewProviderDevice creates a ProviderDevice on creator.
func NewProviderDevice(creator gpucontext.TextureCreator) (*ProviderDevice, error) {
	if creator == nil {
		return nil, ErrNilCreator
	}
	return &ProviderDevice{
		creator:  creator,
		textures: make(map[Handle]*providerTexture),
	}, nil
}

// NewProviderDeviceForDrawer creates a ProviderDevice on the texture
// creator of drawer, so the textures can be drawn by it.
func NewProviderDeviceForDrawer(drawer gpucontext.TextureDrawer) (*ProviderDevice, error) {
	if drawer == nil {
		return nil, ErrNilCreator
	}
	return NewProviderDevice(drawer.TextureCreator())
}

// GenerateHandle returns a new handle.
func (d *ProviderDevice) GenerateHandle() Handle {
	return d.handles.next()
}

// UploadTexture widens data to RGBA and uploads it to the texture of h.
func (d *ProviderDevice) UploadTexture(h Handle, format pixel.Format, width, height int, data []byte) error {
	if !h.IsValid() {
		return uploadError(h, format, ErrInvalidHandle)
	}
	if err := checkPayload(format, width, height, data); err != nil {
		return uploadError(h, format, err)
	}
	rgba, err := pixel.Expand(data[:format.ImageBytes(width, height)], width, height, format)
	if err != nil {
		return uploadError(h, format, err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	premultiplied := false
	if t, ok := d.textures[h]; ok {
		premultiplied = t.premultiplied
		if t.width == width && t.height == height {
			if updater, ok := t.tex.(gpucontext.TextureUpdater); ok {
				if err := updater.UpdateData(rgba); err != nil {
					return uploadError(h, format, fmt.Errorf("update texture: %w", err))
				}
				return nil
			}
		}
		destroyTexture(t.tex)
		delete(d.textures, h)
	}

	tex, err := d.creator.NewTextureFromRGBA(width, height, rgba)
	if err != nil {
		return uploadError(h, format, fmt.Errorf("create texture: %w", err))
	}
	if ps, ok := tex.(premultipliedSetter); ok && premultiplied {
		ps.SetPremultiplied(true)
	}
	d.textures[h] = &providerTexture{tex: tex, width: width, height: height, premultiplied: premultiplied}
	slogger().Debug("render: created provider texture", "handle", h, "width", width, "height", height)
	return nil
}

// SetPremultiplied marks the texture of h as holding premultiplied alpha
// when the texture supports it.
func (d *ProviderDevice) SetPremultiplied(h Handle, premultiplied bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	t, ok := d.textures[h]
	if !ok {
		return
	}
	t.premultiplied = premultiplied
	if ps, ok := t.tex.(premultipliedSetter); ok {
		ps.SetPremultiplied(premultiplied)
	}
}

// Texture returns the host texture of h for drawing.
func (d *ProviderDevice) Texture(h Handle) (gpucontext.Texture, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	t, ok := d.textures[h]
	if !ok {
		return nil, false
	}
	return t.tex, true
}

// Draw draws the texture of h with drawer at (x, y).
func (d *ProviderDevice) Draw(drawer gpucontext.TextureDrawer, h Handle, x, y float32) error {
	tex, ok := d.Texture(h)
	if !ok {
		return fmt.Errorf("%w: %d has no texture", ErrInvalidHandle, h)
	}
	return drawer.DrawTexture(tex, x, y)
}

// DestroyHandle destroys the host texture of h.
func (d *ProviderDevice) DestroyHandle(h Handle) {
	d.mu.Lock()
	t, ok := d.textures[h]
	if ok {
		delete(d.textures, h)
	}
	d.mu.Unlock()

	if ok {
		destroyTexture(t.tex)
	}
}

// Close destroys every texture.
func (d *ProviderDevice) Close() {
	d.mu.Lock()
	textures := d.textures
	d.textures = make(map[Handle]*providerTexture)
	d.mu.Unlock()

	for _, t := range textures {
		destroyTexture(t.tex)
	}
}

func destroyTexture(tex gpucontext.Texture) {
	if destroyer, ok := tex.(textureDestroyer); ok {
		destroyer.Destroy()
	}
}
