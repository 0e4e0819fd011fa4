// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/tex2d/pixel"
)

// halTexture is the GPU texture currently bound to a handle.
type halTexture struct {
	tex    hal.Texture
	format gputypes.TextureFormat
	width  int
	height int
	levels uint32

	// base is the level 0 payload, kept for GenerateMipmaps.
	base []byte
	bpp  int
}

// HALDevice uploads textures through a wgpu HAL device and queue.
//
// Each handle owns one hal.Texture. The texture is created on the first
// upload and recreated when a later upload changes its size or GPU format.
// GenerateMipmaps builds the mip chain on the CPU from a copy of the last
// upload. All operations are protected by a mutex.
type HALDevice struct {
	mu       sync.Mutex
	device   hal.Device
	queue    hal.Queue
	handles  handleSource
	textures map[Handle]*halTexture
	closed   bool
}

// NewHALDevice creates a HALDevice on an opened device and its queue.
func NewHALDevice(device hal.Device, queue hal.Queue) *HALDevice {
	return &HALDevice{
		device:   device,
		queue:    queue,
		textures: make(map[Handle]*halTexture),
	}
}

// GenerateHandle returns a new handle. No GPU texture exists for it until
// the first upload.
func (d *HALDevice) GenerateHandle() Handle {
	return d.handles.next()
}

// UploadTexture writes data into the texture of h, creating or resizing
// it as needed. Formats without a native WebGPU equivalent are widened to
// RGBA8Unorm.
func (d *HALDevice) UploadTexture(h Handle, format pixel.Format, width, height int, data []byte) error {
	if !h.IsValid() {
		return uploadError(h, format, ErrInvalidHandle)
	}
	gpuFormat, bpp, payload, err := uploadPayload(format, width, height, data)
	if err != nil {
		return uploadError(h, format, err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return uploadError(h, format, ErrDeviceClosed)
	}

	t, err := d.textureLocked(h, gpuFormat, width, height, 1)
	if err != nil {
		return uploadError(h, format, err)
	}
	if err := d.writeLocked(t, 0, payload, width, height, bpp); err != nil {
		return uploadError(h, format, err)
	}
	t.base = bytes.Clone(payload)
	t.bpp = bpp
	return nil
}

// GenerateMipmaps recreates the texture of h with a full mip chain and
// fills every level with a box-filtered copy of the last upload.
func (d *HALDevice) GenerateMipmaps(h Handle) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return fmt.Errorf("render: generate mipmaps %d: %w", h, ErrDeviceClosed)
	}
	old, ok := d.textures[h]
	if !ok || old.base == nil {
		return fmt.Errorf("render: generate mipmaps %d: %w", h, ErrInvalidHandle)
	}
	base, bpp := old.base, old.bpp
	width, height := old.width, old.height
	levels := mipLevelCount(width, height)

	t, err := d.textureLocked(h, old.format, width, height, levels)
	if err != nil {
		return fmt.Errorf("render: generate mipmaps %d: %w", h, err)
	}
	t.base, t.bpp = base, bpp

	level, w, ht := base, width, height
	for i := range levels {
		if i > 0 {
			level, w, ht = downsample(level, w, ht, bpp)
		}
		if err := d.writeLocked(t, i, level, w, ht, bpp); err != nil {
			return fmt.Errorf("render: generate mipmaps %d: %w", h, err)
		}
	}
	slogger().Debug("render: generated mipmaps", "handle", h, "levels", levels)
	return nil
}

// writeLocked writes one mip level of t. d.mu must be held.
func (d *HALDevice) writeLocked(t *halTexture, mip uint32, data []byte, width, height, bpp int) error {
	dst := &hal.ImageCopyTexture{
		Texture:  t.tex,
		MipLevel: mip,
		Origin:   hal.Origin3D{X: 0, Y: 0, Z: 0},
		Aspect:   gputypes.TextureAspectAll,
	}
	layout := &hal.ImageDataLayout{
		Offset:       0,
		BytesPerRow:  uint32(width * bpp),
		RowsPerImage: uint32(height),
	}
	size := &hal.Extent3D{
		Width:              uint32(width),
		Height:             uint32(height),
		DepthOrArrayLayers: 1,
	}
	if err := d.queue.WriteTexture(dst, data, layout, size); err != nil {
		return fmt.Errorf("write texture: %w", err)
	}
	return nil
}

// textureLocked returns the texture of h with the given format, size and
// mip level count, replacing a texture that does not match. d.mu must be held.
func (d *HALDevice) textureLocked(h Handle, format gputypes.TextureFormat, width, height int, levels uint32) (*halTexture, error) {
	if t, ok := d.textures[h]; ok {
		if t.format == format && t.width == width && t.height == height && t.levels == levels {
			return t, nil
		}
		d.device.DestroyTexture(t.tex)
		delete(d.textures, h)
	}

	desc := &hal.TextureDescriptor{
		Label: fmt.Sprintf("tex2d-%d", h),
		Size: hal.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: levels,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         gputypes.TextureUsageCopySrc | gputypes.TextureUsageCopyDst | gputypes.TextureUsageTextureBinding,
	}
	tex, err := d.device.CreateTexture(desc)
	if err != nil {
		return nil, fmt.Errorf("create texture: %w", err)
	}
	slogger().Debug("render: created texture",
		"handle", h,
		"format", format,
		"width", width,
		"height", height,
		"levels", levels)

	t := &halTexture{tex: tex, format: format, width: width, height: height, levels: levels}
	d.textures[h] = t
	return t, nil
}

// Texture returns the GPU texture bound to h.
func (d *HALDevice) Texture(h Handle) (hal.Texture, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	t, ok := d.textures[h]
	if !ok {
		return nil, false
	}
	return t.tex, true
}

// TextureCount returns the number of live GPU textures.
func (d *HALDevice) TextureCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.textures)
}

// DestroyHandle destroys the GPU texture of h.
func (d *HALDevice) DestroyHandle(h Handle) {
	d.mu.Lock()
	t, ok := d.textures[h]
	if ok {
		delete(d.textures, h)
	}
	device := d.device
	d.mu.Unlock()

	if ok {
		device.DestroyTexture(t.tex)
	}
}

// Rebind switches to a new device and queue after the graphics context was
// lost. The textures of the old device are dropped without being destroyed;
// the next upload to each handle creates a fresh texture. Handles stay valid.
func (d *HALDevice) Rebind(device hal.Device, queue hal.Queue) {
	d.mu.Lock()
	defer d.mu.Unlock()

	slogger().Info("render: device rebound", "dropped", len(d.textures))
	d.device = device
	d.queue = queue
	d.textures = make(map[Handle]*halTexture)
	d.closed = false
}

// Close destroys every texture. Uploads after Close fail with ErrDeviceClosed.
func (d *HALDevice) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for h, t := range d.textures {
		d.device.DestroyTexture(t.tex)
		delete(d.textures, h)
	}
	d.closed = true
}
