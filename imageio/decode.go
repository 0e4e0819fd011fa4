package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gogpu/gpucontext"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"github.com/gogpu/tex2d/pixel"
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when no decoder handles the data.
	ErrUnsupportedFormat = errors.New("imageio: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("imageio: empty data")
)

// Decoder decodes one image format.
type Decoder func(io.Reader) (image.Image, error)

var decoders = gpucontext.NewRegistry[Decoder](
	gpucontext.WithPriority("png", "jpeg", "webp", "gif", "bmp", "tiff"),
)

// extensions maps file extensions to decoder names.
var extensions = map[string]string{
	".png":  "png",
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".gif":  "gif",
	".bmp":  "bmp",
	".tif":  "tiff",
	".tiff": "tiff",
	".webp": "webp",
}

func init() {
	RegisterDecoder("png", png.Decode)
	RegisterDecoder("jpeg", jpeg.Decode)
	RegisterDecoder("gif", gif.Decode)
	RegisterDecoder("bmp", bmp.Decode)
	RegisterDecoder("tiff", tiff.Decode)
	RegisterDecoder("webp", webp.Decode)
}

// RegisterDecoder adds or replaces the decoder for name. Load uses it for
// files with the extension "." + name.
func RegisterDecoder(name string, d Decoder) {
	decoders.Register(name, func() Decoder { return d })
}

// Decoders returns the names of the registered decoders, sorted.
func Decoders() []string {
	names := decoders.Available()
	slices.Sort(names)
	return names
}

// Load decodes the image file at path. The decoder is chosen by file
// extension; unknown extensions are detected from the content.
func Load(path string) (*pixel.Image, error) {
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	return FromStdImage(img), nil
}

// LoadImage is like Load but returns the decoded image without converting
// it, so callers can resample it first (see ScaleToFit).
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("imageio: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	ext := strings.ToLower(filepath.Ext(path))
	name, ok := extensions[ext]
	if !ok && decoders.Has(strings.TrimPrefix(ext, ".")) {
		name, ok = strings.TrimPrefix(ext, "."), true
	}
	if ok {
		return decodeWith(name, f)
	}
	img, _, err := decode(f)
	return img, err
}

// DecodeBytes decodes an image from a byte slice, detecting the format.
func DecodeBytes(data []byte) (*pixel.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	img, _, err := Decode(bytes.NewReader(data))
	return img, err
}

// Decode decodes an image from r, detecting the format from its content.
// It returns the format name reported by the image package.
func Decode(r io.Reader) (*pixel.Image, string, error) {
	img, format, err := decode(r)
	if err != nil {
		return nil, "", err
	}
	return FromStdImage(img), format, nil
}

// DecodeWith decodes r with the registered decoder name.
func DecodeWith(name string, r io.Reader) (*pixel.Image, error) {
	img, err := decodeWith(name, r)
	if err != nil {
		return nil, err
	}
	return FromStdImage(img), nil
}

func decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, "", fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
		}
		return nil, "", fmt.Errorf("imageio: decode: %w", err)
	}
	return img, format, nil
}

func decodeWith(name string, r io.Reader) (image.Image, error) {
	if !decoders.Has(name) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
	img, err := decoders.Get(name)(r)
	if err != nil {
		return nil, fmt.Errorf("imageio: decode %s: %w", name, err)
	}
	return img, nil
}
