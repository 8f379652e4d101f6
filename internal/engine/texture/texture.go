// Package texture decodes image files into tightly packed pixel data ready
// for texture upload.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path"
	"strings"

	"github.com/h2non/filetype"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// ErrUnsupportedFormat is returned for image data no decoder accepts.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Image is decoded pixel data, row-major from the top-left, with Channels
// bytes per pixel (3 = RGB, 4 = RGBA).
type Image struct {
	Pix      []byte
	Width    int
	Height   int
	Channels int
}

// decoders maps a sniffed file type extension to its decoder.
var decoders = map[string]func(io.Reader) (image.Image, error){
	"png":  png.Decode,
	"jpg":  jpeg.Decode,
	"gif":  gif.Decode,
	"bmp":  bmp.Decode,
	"tif":  tiff.Decode,
	"webp": webp.Decode,
}

// Format returns the detected image format of data, falling back to the
// extension of name for formats without a signature (TGA).
func Format(data []byte, name string) string {
	if kind, err := filetype.Image(data); err == nil && kind != filetype.Unknown {
		return kind.Extension
	}
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(name)), ".")
	switch ext {
	case "jpeg":
		return "jpg"
	case "tiff":
		return "tif"
	}
	return ext
}

// Decode decodes an image file. name is only used to pick a decoder when
// the data carries no recognizable signature.
func Decode(data []byte, name string) (*Image, error) {
	format := Format(data, name)

	if format == "tga" {
		return DecodeTGA(data)
	}

	decode, ok := decoders[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
	img, err := decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return FromImage(img), nil
}

// FromImage packs an image.Image, using 3 channels when it is opaque.
func FromImage(img image.Image) *Image {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || bounds.Min != (image.Point{}) || rgba.Stride != 4*bounds.Dx() {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}

	out := &Image{
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Channels: 4,
		Pix:      rgba.Pix,
	}

	if opaque(img) {
		out.Channels = 3
		out.Pix = dropAlpha(rgba.Pix)
	}
	return out
}

func opaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	return false
}

func dropAlpha(pix []byte) []byte {
	rgb := make([]byte, 0, len(pix)/4*3)
	for i := 0; i+3 < len(pix); i += 4 {
		rgb = append(rgb, pix[i], pix[i+1], pix[i+2])
	}
	return rgb
}
