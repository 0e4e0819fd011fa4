// Package pixel converts decoded bitmaps into GPU texel buffers.
//
// The conversion pipeline has three stages:
//
//  1. SelectFormat picks a GPU pixel format from the image's colorspace,
//     alpha and bit depth.
//  2. BuildPOTBuffer copies the image rows into a buffer whose dimensions are
//     powers of two, zero-filling the padding.
//  3. Repack narrows the 32-bit intermediate texels into the compact 16-bit
//     formats (RGB565, RGBA4444, RGB5A1) or the A8 alpha mask.
//
// Builder.Build runs all three stages against a Capabilities value that
// reports the device limits:
//
//	b := pixel.NewBuilder(pixel.DefaultConfig())
//	res, err := b.Build(img, caps)
//	if err != nil {
//	    return err
//	}
//	// upload res.Data as res.Format, res.PixelsWide x res.PixelsHigh
//
// Repacking is lossy. Expand widens any format back to RGBA8888 for devices
// that only accept 32-bit uploads; it does not recover the truncated bits.
//
// Nothing in this package keeps global state. The default alpha format is
// part of Config and is owned by the caller.
package pixel
