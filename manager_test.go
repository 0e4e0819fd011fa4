package tex2d

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"sync"
	"testing"

	"github.com/gogpu/tex2d/pixel"
	"github.com/gogpu/tex2d/recovery"
	"github.com/gogpu/tex2d/render"
)

type upload struct {
	handle render.Handle
	format pixel.Format
	w, h   int
	data   []byte
}

// fakeDevice records uploads and can be told to fail for a handle.
type fakeDevice struct {
	mu            sync.Mutex
	next          render.Handle
	uploads       []upload
	destroyed     []render.Handle
	fail          map[render.Handle]error
	premultiplied map[render.Handle]bool
	mipmaps       []render.Handle
	mipErr        error
	onUpload      func(render.Handle)
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		fail:          make(map[render.Handle]error),
		premultiplied: make(map[render.Handle]bool),
	}
}

func (d *fakeDevice) GenerateHandle() render.Handle {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.next++
	return d.next
}

func (d *fakeDevice) UploadTexture(h render.Handle, format pixel.Format, w, ht int, data []byte) error {
	d.mu.Lock()
	err := d.fail[h]
	if err == nil {
		d.uploads = append(d.uploads, upload{handle: h, format: format, w: w, h: ht, data: bytes.Clone(data)})
	}
	hook := d.onUpload
	d.mu.Unlock()

	if err != nil {
		return &render.UploadError{Handle: h, Format: format, Err: err}
	}
	if hook != nil {
		hook(h)
	}
	return nil
}

func (d *fakeDevice) DestroyHandle(h render.Handle) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.destroyed = append(d.destroyed, h)
}

func (d *fakeDevice) SetPremultiplied(h render.Handle, pm bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.premultiplied[h] = pm
}

func (d *fakeDevice) GenerateMipmaps(h render.Handle) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.mipErr != nil {
		return d.mipErr
	}
	d.mipmaps = append(d.mipmaps, h)
	return nil
}

func (d *fakeDevice) uploadCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.uploads)
}

func rgbaImage(w, h int) *pixel.Image {
	data := make([]byte, w*h*4)
	for i := range data {
		data[i] = byte(i%251 + 1)
	}
	return pixel.NewRGBAImage(w, h, data, false)
}

func TestNewManager_Defaults(t *testing.T) {
	m := NewManager()
	t.Cleanup(m.Close)

	if _, ok := m.Device().(*render.NullDevice); !ok {
		t.Errorf("Device() = %T, want *render.NullDevice", m.Device())
	}
	if m.Capabilities() == nil || m.Capabilities().SupportsNonPowerOfTwo() {
		t.Errorf("Capabilities() = %+v, want POT-only defaults", m.Capabilities())
	}
	if m.RecoveryCache() == nil {
		t.Error("RecoveryCache() = nil, want cache by default")
	}
	if m.ContentScaleFactor() != 1 {
		t.Errorf("ContentScaleFactor() = %v, want 1", m.ContentScaleFactor())
	}
	if m.DefaultAlphaPixelFormat() != pixel.RGBA8888 {
		t.Errorf("DefaultAlphaPixelFormat() = %s, want RGBA8888", m.DefaultAlphaPixelFormat())
	}
}

func TestNewManager_Options(t *testing.T) {
	dev := newFakeDevice()
	caps := render.StaticCapabilities{NonPowerOfTwo: true, MaxTextureSize: 64}
	m := NewManager(
		WithDevice(dev),
		WithCapabilities(caps),
		WithConfig(pixel.Config{DefaultAlphaFormat: pixel.RGBA4444}),
		WithRecovery(false),
		WithContentScaleFactor(2),
		WithContentScaleFactor(-1), // ignored
	)
	t.Cleanup(m.Close)

	if m.Device() != dev {
		t.Error("WithDevice not applied")
	}
	if m.Capabilities() != caps {
		t.Error("WithCapabilities not applied")
	}
	if m.RecoveryCache() != nil {
		t.Error("WithRecovery(false) kept a cache")
	}
	if m.ContentScaleFactor() != 2 {
		t.Errorf("ContentScaleFactor() = %v, want 2", m.ContentScaleFactor())
	}
	if m.DefaultAlphaPixelFormat() != pixel.RGBA4444 {
		t.Errorf("DefaultAlphaPixelFormat() = %s, want RGBA4444", m.DefaultAlphaPixelFormat())
	}
}

func TestManager_NewTextureFromImage(t *testing.T) {
	dev := newFakeDevice()
	m := NewManager(WithDevice(dev))
	t.Cleanup(m.Close)

	tex, err := m.NewTextureFromImage(rgbaImage(300, 200))
	if err != nil {
		t.Fatalf("NewTextureFromImage() error = %v", err)
	}
	if tex.PixelFormat() != pixel.RGBA8888 || tex.PixelsWide() != 512 || tex.PixelsHigh() != 256 {
		t.Errorf("texture = %s %dx%d, want RGBA8888 512x256", tex.PixelFormat(), tex.PixelsWide(), tex.PixelsHigh())
	}
	if got := tex.ContentSizeInPixels(); got != pixel.SizeOf(300, 200) {
		t.Errorf("ContentSizeInPixels() = %v", got)
	}

	if dev.uploadCount() != 1 {
		t.Fatalf("uploads = %d, want 1", dev.uploadCount())
	}
	up := dev.uploads[0]
	if up.handle != tex.Name() || len(up.data) != 512*256*4 {
		t.Errorf("upload = handle %d, %d bytes", up.handle, len(up.data))
	}

	rec, ok := m.RecoveryCache().Get(tex.Name())
	if !ok {
		t.Fatal("texture not recorded for recovery")
	}
	if !bytes.Equal(rec.Data, up.data) || rec.ContentSize != pixel.SizeOf(300, 200) {
		t.Errorf("record = %s %dx%d content %v", rec.Format, rec.PixelsWide, rec.PixelsHigh, rec.ContentSize)
	}
}

func TestManager_NewTextureFromImage_Failures(t *testing.T) {
	errGPU := errors.New("gpu lost")

	tests := []struct {
		name string
		img  *pixel.Image
		caps pixel.Capabilities
		fail bool
		want error
	}{
		{"nil image", nil, render.DefaultCapabilities(), false, ErrNilImage},
		{"null data", &pixel.Image{Width: 2, Height: 2, HasAlpha: true, HasColorSpace: true, BitsPerComponent: 8}, render.DefaultCapabilities(), false, pixel.ErrNullImageData},
		{"too large", rgbaImage(300, 10), render.StaticCapabilities{MaxTextureSize: 256}, false, pixel.ErrDimensionTooLarge},
		{"upload", rgbaImage(2, 2), render.DefaultCapabilities(), true, errGPU},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := newFakeDevice()
			if tt.fail {
				dev.fail[1] = errGPU
			}
			m := NewManager(WithDevice(dev), WithCapabilities(tt.caps))
			t.Cleanup(m.Close)

			tex, err := m.NewTextureFromImage(tt.img)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
			if tex != nil {
				t.Error("texture returned on failure")
			}
			if n := len(m.Textures()); n != 0 {
				t.Errorf("Textures() has %d entries after failure", n)
			}
			if n := m.RecoveryCache().Len(); n != 0 {
				t.Errorf("cache has %d entries after failure", n)
			}
		})
	}
}

func TestManager_NewTextureFromStdImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 300, 150))
	for i := range src.Pix {
		src.Pix[i] = 0x80
	}

	m := NewManager(WithCapabilities(render.StaticCapabilities{MaxTextureSize: 128}))
	t.Cleanup(m.Close)
	if _, err := m.NewTextureFromStdImage(src); !errors.Is(err, pixel.ErrDimensionTooLarge) {
		t.Errorf("without scale to fit: error = %v, want ErrDimensionTooLarge", err)
	}

	scaled := NewManager(WithCapabilities(render.StaticCapabilities{MaxTextureSize: 128}), WithScaleToFit(true))
	t.Cleanup(scaled.Close)
	tex, err := scaled.NewTextureFromStdImage(src)
	if err != nil {
		t.Fatalf("with scale to fit: error = %v", err)
	}
	if tex.PixelsWide() != 128 || tex.PixelsHigh() != 64 {
		t.Errorf("texture = %dx%d, want 128x64", tex.PixelsWide(), tex.PixelsHigh())
	}

	if _, err := scaled.NewTextureFromStdImage(nil); !errors.Is(err, ErrNilImage) {
		t.Errorf("nil image: error = %v", err)
	}
}

func TestManager_MaskAndOpaqueFormats(t *testing.T) {
	m := NewManager()
	t.Cleanup(m.Close)

	mask := image.NewAlpha(image.Rect(0, 0, 3, 3))
	opaque := image.NewRGBA(image.Rect(0, 0, 3, 3))
	for i := 3; i < len(opaque.Pix); i += 4 {
		opaque.Pix[i] = 0xFF
	}

	tests := []struct {
		name string
		img  image.Image
		want pixel.Format
		size int
	}{
		{"mask", mask, pixel.A8, 4 * 4},
		{"opaque", opaque, pixel.RGB888, 4 * 4 * 3},
		{"translucent", image.NewNRGBA(image.Rect(0, 0, 3, 3)), pixel.RGBA8888, 4 * 4 * 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tex, err := m.NewTextureFromStdImage(tt.img)
			if err != nil {
				t.Fatal(err)
			}
			if tex.PixelFormat() != tt.want {
				t.Errorf("PixelFormat() = %s, want %s", tex.PixelFormat(), tt.want)
			}
			rec, _ := m.RecoveryCache().Get(tex.Name())
			if len(rec.Data) != tt.size {
				t.Errorf("recorded %d bytes, want %d", len(rec.Data), tt.size)
			}
		})
	}
}

func TestManager_SetDefaultAlphaPixelFormat(t *testing.T) {
	m := NewManager()
	t.Cleanup(m.Close)

	m.SetDefaultAlphaPixelFormat(pixel.RGB5A1)
	m.SetDefaultAlphaPixelFormat(pixel.Format(200)) // ignored
	if m.DefaultAlphaPixelFormat() != pixel.RGB5A1 {
		t.Fatalf("DefaultAlphaPixelFormat() = %s, want RGB5A1", m.DefaultAlphaPixelFormat())
	}

	tex, err := m.NewTextureFromImage(rgbaImage(4, 4))
	if err != nil {
		t.Fatal(err)
	}
	if tex.PixelFormat() != pixel.RGB5A1 {
		t.Errorf("PixelFormat() = %s, want RGB5A1", tex.PixelFormat())
	}
	rec, _ := m.RecoveryCache().Get(tex.Name())
	if len(rec.Data) != 4*4*2 {
		t.Errorf("recorded %d bytes, want %d", len(rec.Data), 4*4*2)
	}
}

func TestManager_SetDefaultAlphaPixelFormat_Opaque(t *testing.T) {
	m := NewManager()
	t.Cleanup(m.Close)

	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 128})
	src.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 128})

	for _, f := range []pixel.Format{pixel.RGB888, pixel.RGB565} {
		m.SetDefaultAlphaPixelFormat(f)
		if got := m.DefaultAlphaPixelFormat(); got != pixel.RGBA8888 {
			t.Fatalf("SetDefaultAlphaPixelFormat(%s): default = %s, want RGBA8888", f, got)
		}
	}

	tex, err := m.NewTextureFromStdImage(src)
	if err != nil {
		t.Fatal(err)
	}
	if tex.PixelFormat() != pixel.RGBA8888 {
		t.Fatalf("PixelFormat() = %s, want RGBA8888", tex.PixelFormat())
	}
	rec, ok := m.RecoveryCache().Get(tex.Name())
	if !ok {
		t.Fatal("texture not recorded")
	}
	want := []byte{0, 255, 0, 128}
	if got := rec.Data[4:8]; !bytes.Equal(got, want) {
		t.Errorf("texel 1 = %v, want %v", got, want)
	}
}

func TestManager_ReloadAllTextures(t *testing.T) {
	dev := newFakeDevice()
	m := NewManager(WithDevice(dev))
	t.Cleanup(m.Close)

	a, _ := m.NewTextureFromImage(rgbaImage(3, 3))
	b, _ := m.NewTextureFromImage(pixel.NewRGBAImage(2, 2, make([]byte, 16), true))
	c, _ := m.NewTextureFromImage(rgbaImage(5, 1))
	c.Destroy()

	before := dev.uploadCount()
	report, err := m.ReloadAllTextures()
	if err != nil {
		t.Fatalf("ReloadAllTextures() error = %v", err)
	}
	if report.Attempted != 2 || report.Recovered != 2 || report.Err() != nil {
		t.Errorf("report = %+v", report)
	}

	reloaded := dev.uploads[before:]
	if len(reloaded) != 2 || reloaded[0].handle != a.Name() || reloaded[1].handle != b.Name() {
		t.Fatalf("reloaded = %+v, want a then b", reloaded)
	}
	if !bytes.Equal(reloaded[0].data, dev.uploads[0].data) {
		t.Error("reloaded data differs from the first upload")
	}
	if !dev.premultiplied[b.Name()] || dev.premultiplied[a.Name()] {
		t.Errorf("premultiplied = %v", dev.premultiplied)
	}
}

func TestManager_ReloadContinuesPastFailures(t *testing.T) {
	dev := newFakeDevice()
	m := NewManager(WithDevice(dev))
	t.Cleanup(m.Close)

	a, _ := m.NewTextureFromImage(rgbaImage(2, 2))
	b, _ := m.NewTextureFromImage(rgbaImage(2, 2))

	errLost := errors.New("still lost")
	dev.fail[a.Name()] = errLost

	report, err := m.ReloadAllTextures()
	if err != nil {
		t.Fatalf("ReloadAllTextures() error = %v", err)
	}
	if report.Attempted != 2 || report.Recovered != 1 || len(report.Failures) != 1 {
		t.Fatalf("report = %+v", report)
	}
	if report.Failures[0].Handle != a.Name() || !errors.Is(report.Err(), errLost) {
		t.Errorf("failure = %+v", report.Failures[0])
	}
	if last := dev.uploads[len(dev.uploads)-1]; last.handle != b.Name() {
		t.Errorf("last upload = %d, want %d", last.handle, b.Name())
	}
}

func TestManager_ReloadIgnoresRecordsFromUploads(t *testing.T) {
	dev := newFakeDevice()
	m := NewManager(WithDevice(dev))
	t.Cleanup(m.Close)

	a, _ := m.NewTextureFromImage(rgbaImage(2, 2))
	before, _ := m.RecoveryCache().Get(a.Name())

	// An init issued while reloading uploads but is not recorded.
	dev.onUpload = func(h render.Handle) {
		dev.onUpload = nil
		if err := a.InitWithImage(rgbaImage(4, 4)); err != nil {
			t.Errorf("InitWithImage during reload: %v", err)
		}
	}
	if _, err := m.ReloadAllTextures(); err != nil {
		t.Fatal(err)
	}

	after, _ := m.RecoveryCache().Get(a.Name())
	if after.PixelsWide != before.PixelsWide {
		t.Errorf("record changed during reload: %dx%d", after.PixelsWide, after.PixelsHigh)
	}
	if a.PixelsWide() != 4 {
		t.Errorf("texture PixelsWide() = %d, want 4", a.PixelsWide())
	}
}

func TestManager_ReloadReentrant(t *testing.T) {
	dev := newFakeDevice()
	m := NewManager(WithDevice(dev))
	t.Cleanup(m.Close)

	if _, err := m.NewTextureFromImage(rgbaImage(2, 2)); err != nil {
		t.Fatal(err)
	}

	var nested error
	dev.onUpload = func(render.Handle) {
		dev.onUpload = nil
		_, nested = m.ReloadAllTextures()
	}
	if _, err := m.ReloadAllTextures(); err != nil {
		t.Fatal(err)
	}
	if !errors.Is(nested, recovery.ErrReloading) {
		t.Errorf("nested reload error = %v, want ErrReloading", nested)
	}
}

func TestManager_ReloadWithoutRecovery(t *testing.T) {
	m := NewManager(WithRecovery(false))
	t.Cleanup(m.Close)

	if _, err := m.NewTextureFromImage(rgbaImage(2, 2)); err != nil {
		t.Fatal(err)
	}
	report, err := m.ReloadAllTextures()
	if err != nil || report.Attempted != 0 {
		t.Errorf("ReloadAllTextures() = %+v, %v", report, err)
	}
}

func TestManager_Close(t *testing.T) {
	dev := newFakeDevice()
	m := NewManager(WithDevice(dev))

	a, _ := m.NewTextureFromImage(rgbaImage(2, 2))
	b, _ := m.NewTextureFromImage(rgbaImage(2, 2))

	m.Close()
	m.Close()

	if len(dev.destroyed) != 2 {
		t.Errorf("destroyed = %v, want 2 handles", dev.destroyed)
	}
	if !a.IsDestroyed() || !b.IsDestroyed() {
		t.Error("textures not marked destroyed")
	}
	if m.RecoveryCache().Len() != 0 {
		t.Error("cache not cleared")
	}
	if len(m.Textures()) != 0 {
		t.Error("Textures() not empty")
	}

	a.Destroy()
	if len(dev.destroyed) != 2 {
		t.Error("Destroy after Close released the handle again")
	}
	if _, err := m.NewTexture(); !errors.Is(err, ErrManagerClosed) {
		t.Errorf("NewTexture() error = %v, want ErrManagerClosed", err)
	}
	if _, err := m.ReloadAllTextures(); !errors.Is(err, ErrManagerClosed) {
		t.Errorf("ReloadAllTextures() error = %v, want ErrManagerClosed", err)
	}
}

func TestManager_Textures(t *testing.T) {
	m := NewManager()
	t.Cleanup(m.Close)

	var want []render.Handle
	for range 3 {
		tex, err := m.NewTextureFromImage(rgbaImage(1, 1))
		if err != nil {
			t.Fatal(err)
		}
		want = append(want, tex.Name())
	}

	got := m.Textures()
	if len(got) != len(want) {
		t.Fatalf("Textures() = %d entries, want %d", len(got), len(want))
	}
	for i, tex := range got {
		if tex.Name() != want[i] {
			t.Errorf("Textures()[%d] = %d, want %d", i, tex.Name(), want[i])
		}
	}
}

func TestManager_Concurrent(t *testing.T) {
	m := NewManager()
	t.Cleanup(m.Close)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 10 {
				tex, err := m.NewTextureFromStdImage(image.NewGray(image.Rect(0, 0, i+1, i+1)))
				if err != nil {
					t.Error(err)
					return
				}
				tex.Destroy()
			}
		}()
	}
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = m.ReloadAllTextures()
		}()
	}
	wg.Wait()

	if n := len(m.Textures()); n != 0 {
		t.Errorf("Textures() = %d after all destroyed", n)
	}
}
