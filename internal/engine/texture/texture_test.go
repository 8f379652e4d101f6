package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

// tgaHeader builds an 18-byte TGA header.
func tgaHeader(imageType byte, w, h int, bpp, descriptor byte) []byte {
	hdr := make([]byte, tgaHeaderSize)
	hdr[2] = imageType
	hdr[12] = byte(w)
	hdr[13] = byte(w >> 8)
	hdr[14] = byte(h)
	hdr[15] = byte(h >> 8)
	hdr[16] = bpp
	hdr[17] = descriptor
	return hdr
}

func TestDecode_PNGOpaque(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.Set(0, 0, color.RGBA{255, 0, 0, 255})
	src.Set(1, 0, color.RGBA{0, 0, 255, 255})

	img, err := Decode(encodePNG(t, src), "tex.png")
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if img.Width != 2 || img.Height != 1 || img.Channels != 3 {
		t.Fatalf("unexpected image %dx%d/%d", img.Width, img.Height, img.Channels)
	}
	want := []byte{255, 0, 0, 0, 0, 255}
	if !bytes.Equal(img.Pix, want) {
		t.Errorf("Pix = %v, want %v", img.Pix, want)
	}
}

func TestDecode_PNGAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	src.Set(0, 0, color.NRGBA{255, 255, 255, 0})

	img, err := Decode(encodePNG(t, src), "alpha.png")
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if img.Channels != 4 {
		t.Errorf("expected 4 channels for translucent image, got %d", img.Channels)
	}
	if len(img.Pix) != 4 {
		t.Errorf("expected 4 bytes of pixel data, got %d", len(img.Pix))
	}
}

func TestDecode_SniffsOverExtension(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	data := encodePNG(t, src)

	if got := Format(data, "mislabeled.jpg"); got != "png" {
		t.Errorf("Format() = %q, want png", got)
	}
	if _, err := Decode(data, "mislabeled.jpg"); err != nil {
		t.Errorf("Decode() error = %v", err)
	}
}

func TestFormat_Extension(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"wall.tga", "tga"},
		{"WALL.TGA", "tga"},
		{"photo.jpeg", "jpg"},
		{"scan.tiff", "tif"},
		{"noext", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format([]byte{0, 0, 0}, tt.name); got != tt.want {
				t.Errorf("Format(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestDecode_Unsupported(t *testing.T) {
	_, err := Decode([]byte("not an image"), "notes.txt")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestDecode_Corrupt(t *testing.T) {
	_, err := Decode([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0}, "broken.png")
	if err == nil {
		t.Error("expected error for truncated PNG")
	}
}

func TestDecodeTGA_Uncompressed(t *testing.T) {
	// 2x2, 24bpp, bottom-to-top. Pixels are stored BGR.
	data := tgaHeader(TGATypeUncompressed, 2, 2, 24, 0)
	data = append(data,
		0, 0, 255, 0, 255, 0, // bottom row: red, green
		255, 0, 0, 255, 255, 255, // top row: blue, white
	)

	img, err := Decode(data, "quad.tga")
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if img.Channels != 3 {
		t.Fatalf("expected 3 channels, got %d", img.Channels)
	}
	want := []byte{
		0, 0, 255, 255, 255, 255,
		255, 0, 0, 0, 255, 0,
	}
	if !bytes.Equal(img.Pix, want) {
		t.Errorf("Pix = %v, want %v", img.Pix, want)
	}
}

func TestDecodeTGA_TopToBottom32(t *testing.T) {
	data := tgaHeader(TGATypeUncompressed, 1, 2, 32, 0x20)
	data = append(data,
		10, 20, 30, 40,
		50, 60, 70, 80,
	)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA() error = %v", err)
	}
	if img.Channels != 4 {
		t.Fatalf("expected 4 channels, got %d", img.Channels)
	}
	want := []byte{30, 20, 10, 40, 70, 60, 50, 80}
	if !bytes.Equal(img.Pix, want) {
		t.Errorf("Pix = %v, want %v", img.Pix, want)
	}
}

func TestDecodeTGA_RLE(t *testing.T) {
	data := tgaHeader(TGATypeRLE, 3, 1, 24, 0x20)
	data = append(data,
		0x81, 0, 0, 255, // run of 2 red
		0x00, 255, 0, 0, // 1 raw blue
	)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA() error = %v", err)
	}
	want := []byte{255, 0, 0, 255, 0, 0, 0, 0, 255}
	if !bytes.Equal(img.Pix, want) {
		t.Errorf("Pix = %v, want %v", img.Pix, want)
	}
}

func TestDecodeTGA_Errors(t *testing.T) {
	tests := []struct {
		name        string
		data        []byte
		unsupported bool
	}{
		{"short header", []byte{0, 0, 2}, false},
		{"color mapped", func() []byte {
			h := tgaHeader(1, 1, 1, 8, 0)
			h[1] = 1
			return h
		}(), true},
		{"grayscale", tgaHeader(3, 1, 1, 8, 0), true},
		{"16 bit", tgaHeader(TGATypeUncompressed, 1, 1, 16, 0), true},
		{"truncated pixels", tgaHeader(TGATypeUncompressed, 4, 4, 24, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTGA(tt.data)
			if err == nil {
				t.Fatal("expected error")
			}
			if errors.Is(err, ErrUnsupportedFormat) != tt.unsupported {
				t.Errorf("errors.Is(ErrUnsupportedFormat) = %v, want %v (err = %v)",
					!tt.unsupported, tt.unsupported, err)
			}
		})
	}
}
