package imageio

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/tex2d/pixel"
)

// opaquer is implemented by every image type of the standard library.
type opaquer interface {
	Opaque() bool
}

// FromStdImage converts a standard library image into a pixel.Image.
//
//   - *image.Alpha and *image.Alpha16 become alpha masks without a color space.
//   - Opaque images become 3-byte RGB.
//   - *image.RGBA keeps its premultiplied data; *image.NRGBA its straight data.
//   - Other images are converted to straight RGBA.
//
// The returned image never shares memory with img. A nil img returns nil.
func FromStdImage(img image.Image) *pixel.Image {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	switch src := img.(type) {
	case *image.Alpha:
		mask := make([]byte, 0, w*h)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			i := src.PixOffset(b.Min.X, y)
			mask = append(mask, src.Pix[i:i+w]...)
		}
		return pixel.NewMaskImage(w, h, mask)
	case *image.Alpha16:
		mask := make([]byte, 0, w*h)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			i := src.PixOffset(b.Min.X, y)
			for x := range w {
				mask = append(mask, src.Pix[i+x*2])
			}
		}
		return pixel.NewMaskImage(w, h, mask)
	}

	if o, ok := img.(opaquer); ok && o.Opaque() {
		return pixel.NewRGBImage(w, h, toRGB(img))
	}

	switch src := img.(type) {
	case *image.RGBA:
		return pixel.NewRGBAImage(w, h, copyRows(src.Pix, src.Stride, src.PixOffset(b.Min.X, b.Min.Y), w*4, h), true)
	case *image.NRGBA:
		return pixel.NewRGBAImage(w, h, copyRows(src.Pix, src.Stride, src.PixOffset(b.Min.X, b.Min.Y), w*4, h), false)
	}

	// Generic slow path for any other image type.
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return pixel.NewRGBAImage(w, h, dst.Pix, false)
}

// copyRows copies h rows of rowBytes bytes starting at off with the given
// stride into a tightly packed buffer.
func copyRows(pix []byte, stride, off, rowBytes, h int) []byte {
	out := make([]byte, rowBytes*h)
	if stride == rowBytes {
		copy(out, pix[off:off+rowBytes*h])
		return out
	}
	for y := range h {
		s := off + y*stride
		copy(out[y*rowBytes:(y+1)*rowBytes], pix[s:s+rowBytes])
	}
	return out
}

// toRGB converts img to tightly packed 3-byte RGB.
func toRGB(img image.Image) []byte {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Rect.Min != b.Min {
		rgba = image.NewRGBA(image.Rect(0, 0, w, h))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}

	out := make([]byte, 0, w*h*3)
	for y := range h {
		i := rgba.PixOffset(rgba.Rect.Min.X, rgba.Rect.Min.Y+y)
		for x := range w {
			p := rgba.Pix[i+x*4 : i+x*4+3]
			out = append(out, p[0], p[1], p[2])
		}
	}
	return out
}

// ScaleToFit downscales img so that neither dimension exceeds maxDim,
// keeping the aspect ratio. Images that already fit, and non-positive
// maxDim, are returned unchanged. Alpha images stay alpha images.
func ScaleToFit(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return img
	}

	scale := float64(maxDim) / float64(max(w, h))
	nw := max(1, min(maxDim, int(float64(w)*scale+0.5)))
	nh := max(1, min(maxDim, int(float64(h)*scale+0.5)))
	r := image.Rect(0, 0, nw, nh)

	var dst draw.Image
	switch img.(type) {
	case *image.Alpha, *image.Alpha16:
		dst = image.NewAlpha(r)
	case *image.RGBA:
		dst = image.NewRGBA(r)
	default:
		dst = image.NewNRGBA(r)
	}
	draw.CatmullRom.Scale(dst, r, img, b, draw.Src, nil)
	return dst
}
