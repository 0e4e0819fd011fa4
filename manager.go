package tex2d

import (
	"fmt"
	"image"
	"log/slog"
	"slices"
	"sync"

	"github.com/gogpu/tex2d/imageio"
	"github.com/gogpu/tex2d/pixel"
	"github.com/gogpu/tex2d/recovery"
	"github.com/gogpu/tex2d/render"
)

// premultipliedSetter is implemented by devices that track the alpha mode
// of their textures, such as render.ProviderDevice.
type premultipliedSetter interface {
	SetPremultiplied(h render.Handle, premultiplied bool)
}

// Manager owns everything textures share: the build configuration, the
// graphics device, its capabilities and the recovery cache.
//
// Manager is safe for concurrent use. Textures created by a Manager are not;
// each Texture must be used by one goroutine at a time.
type Manager struct {
	mu         sync.Mutex
	builder    *pixel.Builder
	device     render.Device
	caps       pixel.Capabilities
	cache      *recovery.Cache
	scale      float64
	scaleToFit bool
	textures   map[render.Handle]*Texture
	closed     bool
}

// NewManager creates a Manager with the given options.
//
// Without options the Manager uploads to a render.NullDevice, sizes textures
// with render.DefaultCapabilities and keeps a recovery cache.
func NewManager(opts ...ManagerOption) *Manager {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.device == nil {
		o.device = render.NewNullDevice()
	}

	m := &Manager{
		builder:    pixel.NewBuilder(o.config, pixel.WithLogger(slog.New(sharedHandler{}))),
		device:     o.device,
		caps:       o.caps,
		scale:      o.scaleFactor,
		scaleToFit: o.scaleToFit,
		textures:   make(map[render.Handle]*Texture),
	}
	if o.recovery {
		m.cache = recovery.New()
	}
	return m
}

// Device returns the graphics device.
func (m *Manager) Device() render.Device {
	return m.device
}

// Capabilities returns the device capabilities used to size textures.
func (m *Manager) Capabilities() pixel.Capabilities {
	return m.caps
}

// RecoveryCache returns the recovery cache, or nil when recovery is disabled.
func (m *Manager) RecoveryCache() *recovery.Cache {
	return m.cache
}

// ContentScaleFactor returns the ratio of pixels to points.
func (m *Manager) ContentScaleFactor() float64 {
	return m.scale
}

// DefaultAlphaPixelFormat returns the format used for images with alpha.
func (m *Manager) DefaultAlphaPixelFormat() pixel.Format {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.builder.DefaultAlphaPixelFormat()
}

// SetDefaultAlphaPixelFormat changes the format used for images with alpha
// by textures initialized afterwards. Formats without alpha are ignored,
// see pixel.Format.IsAlphaFormat.
func (m *Manager) SetDefaultAlphaPixelFormat(f pixel.Format) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.builder.SetDefaultAlphaPixelFormat(f)
}

// NewTexture allocates an empty texture. Call InitWithImage or InitWithData
// to fill it.
func (m *Manager) NewTexture() (*Texture, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrManagerClosed
	}
	t := &Texture{
		mgr:    m,
		handle: m.device.GenerateHandle(),
		params: render.AntiAliasTexParams(),
	}
	m.textures[t.handle] = t
	return t, nil
}

// NewTextureFromImage creates a texture and initializes it with img.
// No texture is left behind on failure.
func (m *Manager) NewTextureFromImage(img *pixel.Image) (*Texture, error) {
	if img == nil {
		return nil, ErrNilImage
	}
	t, err := m.NewTexture()
	if err != nil {
		return nil, err
	}
	if err := t.InitWithImage(img); err != nil {
		t.Destroy()
		return nil, err
	}
	return t, nil
}

// NewTextureFromStdImage converts img with imageio.FromStdImage and creates
// a texture from it. With WithScaleToFit, images larger than the maximum
// texture dimension are downscaled first.
func (m *Manager) NewTextureFromStdImage(img image.Image) (*Texture, error) {
	if img == nil {
		return nil, ErrNilImage
	}
	if m.scaleToFit && m.caps != nil {
		if limit := m.caps.MaxTextureDimension(); limit > 0 {
			b := img.Bounds()
			if b.Dx() > limit || b.Dy() > limit {
				Logger().Warn("tex2d: image exceeds max texture size, scaling down",
					"width", b.Dx(), "height", b.Dy(), "limit", limit)
				img = imageio.ScaleToFit(img, limit)
			}
		}
	}
	return m.NewTextureFromImage(imageio.FromStdImage(img))
}

// NewTextureFromData creates a texture from a texel buffer already in the
// final layout of format.
func (m *Manager) NewTextureFromData(data []byte, format pixel.Format, pixelsWide, pixelsHigh int, contentSize pixel.Size) (*Texture, error) {
	t, err := m.NewTexture()
	if err != nil {
		return nil, err
	}
	if err := t.InitWithData(data, format, pixelsWide, pixelsHigh, contentSize); err != nil {
		t.Destroy()
		return nil, err
	}
	return t, nil
}

// Textures returns the live textures ordered by handle.
func (m *Manager) Textures() []*Texture {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*Texture, 0, len(m.textures))
	for _, t := range m.textures {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b *Texture) int {
		switch {
		case a.handle < b.handle:
			return -1
		case a.handle > b.handle:
			return 1
		}
		return 0
	})
	return out
}

// ReloadAllTextures uploads every cached texture to the device again.
// Call it after the graphics context was lost and the device was recreated
// (see render.HALDevice.Rebind).
//
// Failures of single textures are collected in the report and do not stop
// the reload. Without a recovery cache the report is empty. A reload that
// is already running makes the call fail with recovery.ErrReloading.
func (m *Manager) ReloadAllTextures() (recovery.Report, error) {
	m.mu.Lock()
	closed := m.closed
	m.mu.Unlock()

	if closed {
		return recovery.Report{}, ErrManagerClosed
	}
	if m.cache == nil {
		return recovery.Report{}, nil
	}

	return m.cache.RecoverAll(func(rec recovery.Record) error {
		return m.device.UploadTexture(rec.Handle, rec.Format, rec.PixelsWide, rec.PixelsHigh, rec.Data)
	})
}

// Close destroys every live texture and clears the recovery cache.
// The Manager cannot create textures afterwards. Close is idempotent.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	textures := m.textures
	m.textures = make(map[render.Handle]*Texture)
	m.mu.Unlock()

	for h, t := range textures {
		t.destroyed = true
		m.device.DestroyHandle(h)
	}
	if m.cache != nil {
		m.cache.Clear()
	}
}

// build converts img with a snapshot of the builder configuration.
func (m *Manager) build(img *pixel.Image) (pixel.Result, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return pixel.Result{}, ErrManagerClosed
	}
	b := *m.builder
	m.mu.Unlock()

	return b.Build(img, m.caps)
}

func (m *Manager) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// record stores the texel data of a successful upload for recovery.
func (m *Manager) record(t *Texture, data []byte) {
	if m.cache == nil {
		return
	}
	m.cache.Record(recovery.Record{
		Handle:      t.handle,
		Format:      t.format,
		Data:        data,
		PixelsWide:  t.pixelsWide,
		PixelsHigh:  t.pixelsHigh,
		ContentSize: t.contentSize,
	})
}

func (m *Manager) setPremultiplied(h render.Handle, premultiplied bool) {
	if s, ok := m.device.(premultipliedSetter); ok {
		s.SetPremultiplied(h, premultiplied)
	}
}

// forget removes h from the live textures and the recovery cache and
// releases it on the device. It reports whether h was live.
func (m *Manager) forget(h render.Handle) bool {
	m.mu.Lock()
	_, ok := m.textures[h]
	delete(m.textures, h)
	m.mu.Unlock()

	if !ok {
		return false
	}
	if m.cache != nil {
		m.cache.Remove(h)
	}
	m.device.DestroyHandle(h)
	return true
}

// String returns a short description for debugging.
func (m *Manager) String() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	cached := 0
	if m.cache != nil {
		cached = m.cache.Len()
	}
	return fmt.Sprintf("tex2d.Manager{textures: %d, cached: %d, alpha: %s}",
		len(m.textures), cached, m.builder.DefaultAlphaPixelFormat())
}
