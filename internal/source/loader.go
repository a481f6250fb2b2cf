package source

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"

	"hdr-cubemap/internal/pixel"
	"hdr-cubemap/internal/rgbe"
)

var (
	// ErrIO reports a panorama that could not be opened or read.
	ErrIO = errors.New("source: i/o failure")
	// ErrFormat reports a panorama whose content could not be decoded.
	ErrFormat = errors.New("source: undecodable image")
)

// Load reads a panorama into a float RGB buffer. Radiance .hdr files keep
// their HDR range; 8-bit formats (TGA, PNG, JPEG) map 0..255 to 0..1.
func Load(path string) (*pixel.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrIO, path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".hdr" {
		buf, _, err := rgbe.Decode(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrFormat, path, err)
		}
		return buf, nil
	}

	// TGA has no magic number, so decoders are picked by extension
	// rather than by sniffing.
	var decode func(io.Reader) (image.Image, error)
	switch ext {
	case ".tga":
		decode = tga.Decode
	case ".png":
		decode = png.Decode
	case ".jpg", ".jpeg":
		decode = jpeg.Decode
	default:
		return nil, fmt.Errorf("%w: %s: unknown extension", ErrFormat, path)
	}
	img, err := decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFormat, path, err)
	}
	return FromImage(img), nil
}

// FromImage converts any decoded image to a float buffer, dropping alpha.
func FromImage(src image.Image) *pixel.Buffer {
	b := src.Bounds()
	out := pixel.NewBuffer(b.Dx(), b.Dy())

	if n, ok := src.(*image.NRGBA); ok {
		for y := 0; y < out.Height; y++ {
			off := (y+b.Min.Y-n.Rect.Min.Y)*n.Stride + (b.Min.X-n.Rect.Min.X)*4
			for x := 0; x < out.Width; x++ {
				i := off + x*4
				out.Pix[x+y*out.Width] = pixel.Pixel{
					R: float32(n.Pix[i]) / 255,
					G: float32(n.Pix[i+1]) / 255,
					B: float32(n.Pix[i+2]) / 255,
				}
			}
		}
		return out
	}

	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			r, g, bl, _ := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
			out.Pix[x+y*out.Width] = pixel.Pixel{
				R: float32(r) / 65535,
				G: float32(g) / 65535,
				B: float32(bl) / 65535,
			}
		}
	}
	return out
}
