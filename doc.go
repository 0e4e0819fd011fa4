// Package tex2d manages textures for a 2D game renderer.
//
// # Overview
//
// tex2d turns decoded bitmaps into GPU textures. Image dimensions are
// rounded up to powers of two unless the device supports NPOT textures,
// pixel data is repacked into compact 16-bit formats on request, and a copy
// of every uploaded buffer can be kept so textures survive the loss of the
// graphics context.
//
// # Quick Start
//
//	import "github.com/gogpu/tex2d"
//
//	m := tex2d.NewManager()
//	defer m.Close()
//
//	img, err := imageio.Load("hero.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	tex, err := m.NewTextureFromImage(img)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(tex) // <Texture | Name = 1 | Dimensions = 128 x 64 | Coordinates = (0.78, 1.00)>
//
// # Devices
//
// Textures are uploaded through a render.Device:
//   - render.NullDevice accepts every upload and stores nothing (default)
//   - render.HALDevice creates textures on a gogpu/wgpu HAL device
//   - render.ProviderDevice uses a gpucontext.TextureCreator from a host
//     application
//
// # Pixel Formats
//
// Alpha masks become A8, opaque images RGB888 (or RGB565 below 8 bits per
// component) and images with alpha use the manager's default alpha format,
// RGBA8888 unless changed with SetDefaultAlphaPixelFormat. RGBA4444, RGB5A1
// and RGB565 halve the memory of a texture at the cost of color depth.
//
// # Context Loss
//
// With recovery enabled (the default) the Manager records the final texel
// buffer of every upload. After the device was recreated, ReloadAllTextures
// uploads all of them again under their old handles:
//
//	halDevice.Rebind(newDevice, newQueue)
//	report, err := m.ReloadAllTextures()
//	if err != nil {
//	    return err
//	}
//	if err := report.Err(); err != nil {
//	    log.Printf("some textures stay blank: %v", err)
//	}
//
// # Configuration
//
// Managers are configured with functional options or from a TOML file
// (see LoadConfig).
//
// # Logging
//
// tex2d is silent by default. Use SetLogger to enable log/slog output for
// the package and its sub-packages.
package tex2d
