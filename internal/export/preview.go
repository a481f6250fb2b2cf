package export

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/draw"

	"hdr-cubemap/internal/pixel"
)

// ToNRGBA clamps a float buffer into an opaque 8-bit image.
func ToNRGBA(buf *pixel.Buffer) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, buf.Width, buf.Height))
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			p := buf.Pix[x+y*buf.Width]
			i := img.PixOffset(x, y)
			img.Pix[i] = clamp8(p.R)
			img.Pix[i+1] = clamp8(p.G)
			img.Pix[i+2] = clamp8(p.B)
			img.Pix[i+3] = 255
		}
	}
	return img
}

func clamp8(c float32) uint8 {
	if c <= 0 {
		return 0
	}
	if c >= 1 {
		return 255
	}
	return uint8(c*255 + 0.5)
}

// Downsample shrinks img so its longer side is at most maxSide, keeping the
// aspect ratio. Smaller images are returned as is.
func Downsample(img *image.NRGBA, maxSide int) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return img
	}

	dw, dh := maxSide, maxSide
	if w > h {
		dh = max(1, h*maxSide/w)
	} else {
		dw = max(1, w*maxSide/h)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// WritePreview writes an 8-bit preview of buf, downsampled to maxSide. The
// encoder follows the extension: .webp (lossless) or .tga.
func WritePreview(path string, buf *pixel.Buffer, maxSide int) error {
	img := Downsample(ToNRGBA(buf), maxSide)

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".webp" && ext != ".tga" {
		return fmt.Errorf("preview %s: unsupported extension %q", path, ext)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if ext == ".webp" {
		err = nativewebp.Encode(f, img, nil)
	} else {
		err = tga.Encode(f, img)
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
