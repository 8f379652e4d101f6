package texture

import (
	"fmt"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

const tgaHeaderSize = 18

// DecodeTGA decodes uncompressed (type 2) and RLE (type 10) true-color
// TGA data. 24-bit images decode to 3 channels, 32-bit to 4.
func DecodeTGA(data []byte) (*Image, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("TGA data too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := int(data[2])
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("%w: color-mapped TGA", ErrUnsupportedFormat)
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("%w: TGA type %d", ErrUnsupportedFormat, imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("%w: TGA bit depth %d", ErrUnsupportedFormat, bpp)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("TGA data truncated")
	}

	img := &Image{
		Width:    width,
		Height:   height,
		Channels: bpp / 8,
		Pix:      make([]byte, width*height*(bpp/8)),
	}
	w := tgaWriter{img: img, topToBottom: descriptor&0x20 != 0}

	if imageType == TGATypeUncompressed {
		if err := w.raw(data[offset:]); err != nil {
			return nil, err
		}
	} else {
		w.rle(data[offset:])
	}

	return img, nil
}

// tgaWriter stores BGR(A) source pixels into an RGB(A) image in order,
// flipping rows for bottom-to-top images.
type tgaWriter struct {
	img         *Image
	topToBottom bool
	next        int
}

func (w *tgaWriter) done() bool {
	return w.next >= w.img.Width*w.img.Height
}

func (w *tgaWriter) put(px []byte) {
	x := w.next % w.img.Width
	y := w.next / w.img.Width
	if !w.topToBottom {
		y = w.img.Height - 1 - y
	}
	c := w.img.Channels
	i := (y*w.img.Width + x) * c
	w.img.Pix[i] = px[2]
	w.img.Pix[i+1] = px[1]
	w.img.Pix[i+2] = px[0]
	if c == 4 {
		w.img.Pix[i+3] = px[3]
	}
	w.next++
}

func (w *tgaWriter) raw(src []byte) error {
	c := w.img.Channels
	if len(src) < w.img.Width*w.img.Height*c {
		return fmt.Errorf("TGA pixel data truncated")
	}
	for i := 0; !w.done(); i += c {
		w.put(src[i : i+c])
	}
	return nil
}

// rle decodes run-length packets; truncated input leaves the rest black.
func (w *tgaWriter) rle(src []byte) {
	c := w.img.Channels
	i := 0
	for !w.done() && i < len(src) {
		packet := src[i]
		i++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			if i+c > len(src) {
				return
			}
			px := src[i : i+c]
			i += c
			for n := 0; n < count && !w.done(); n++ {
				w.put(px)
			}
			continue
		}

		for n := 0; n < count && !w.done(); n++ {
			if i+c > len(src) {
				return
			}
			w.put(src[i : i+c])
			i += c
		}
	}
}
