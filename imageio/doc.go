// Package imageio decodes image files into pixel.Image values.
//
// PNG, JPEG and GIF are decoded by the standard library; BMP, TIFF and WebP
// by golang.org/x/image. Further decoders can be added with RegisterDecoder.
//
//	img, err := imageio.Load("sprites.png")
//	if err != nil {
//	    return err
//	}
//	tex, err := manager.NewTextureFromImage(img)
//
// FromStdImage picks the texel layout from the concrete image type: alpha
// images become masks, opaque images become 3-byte RGB, everything else
// 4-byte RGBA.
package imageio
