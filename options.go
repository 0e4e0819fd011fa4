package tex2d

import (
	"github.com/gogpu/tex2d/pixel"
	"github.com/gogpu/tex2d/render"
)

// ManagerOption configures a Manager during creation.
//
// Example:
//
//	// Null device, default configuration, recovery enabled
//	m := tex2d.NewManager()
//
//	// HAL device with capabilities from the adapter
//	m := tex2d.NewManager(
//	    tex2d.WithDevice(render.NewHALDevice(device, queue)),
//	    tex2d.WithCapabilities(render.CapabilitiesFromAdapter(adapter)),
//	)
type ManagerOption func(*managerOptions)

// managerOptions holds optional configuration for Manager creation.
type managerOptions struct {
	device      render.Device
	caps        pixel.Capabilities
	config      pixel.Config
	recovery    bool
	scaleFactor float64
	scaleToFit  bool
}

// defaultOptions returns the default manager options.
func defaultOptions() managerOptions {
	return managerOptions{
		device:      nil, // NullDevice if nil
		caps:        render.DefaultCapabilities(),
		config:      pixel.DefaultConfig(),
		recovery:    true,
		scaleFactor: 1,
	}
}

// WithDevice sets the graphics device textures are uploaded to.
// A nil device keeps the default NullDevice.
func WithDevice(d render.Device) ManagerOption {
	return func(o *managerOptions) {
		o.device = d
	}
}

// WithCapabilities sets the device capabilities used to size textures.
// A nil value disables the size limit and forces POT rounding.
func WithCapabilities(c pixel.Capabilities) ManagerOption {
	return func(o *managerOptions) {
		o.caps = c
	}
}

// WithConfig sets the texture build configuration.
func WithConfig(c pixel.Config) ManagerOption {
	return func(o *managerOptions) {
		o.config = c
	}
}

// WithRecovery enables or disables the recovery cache. When enabled, every
// upload keeps a copy of its texel data so ReloadAllTextures can restore
// the textures after a context loss.
func WithRecovery(enabled bool) ManagerOption {
	return func(o *managerOptions) {
		o.recovery = enabled
	}
}

// WithContentScaleFactor sets the ratio of pixels to points used by
// Texture.ContentSize. Non-positive values are ignored.
func WithContentScaleFactor(f float64) ManagerOption {
	return func(o *managerOptions) {
		if f > 0 {
			o.scaleFactor = f
		}
	}
}

// WithScaleToFit makes NewTextureFromStdImage downscale images larger than
// the maximum texture dimension instead of failing with
// pixel.ErrDimensionTooLarge.
func WithScaleToFit(enabled bool) ManagerOption {
	return func(o *managerOptions) {
		o.scaleToFit = enabled
	}
}
