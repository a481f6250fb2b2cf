package export

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ftrvxmtrx/tga"

	"hdr-cubemap/internal/cube"
	"hdr-cubemap/internal/pixel"
	"hdr-cubemap/internal/rgbe"
)

func solidFaces(edge int) cube.Faces {
	var faces cube.Faces
	for i := range faces {
		faces[i] = make([]pixel.Pixel, edge*edge)
		for j := range faces[i] {
			faces[i][j] = pixel.Pixel{R: float32(i) / 8, G: 0.5, B: 2}
		}
	}
	return faces
}

func TestWriteDDSHeader(t *testing.T) {
	const edge = 4
	var buf bytes.Buffer
	if err := WriteDDS(&buf, solidFaces(edge), edge); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()
	if want := 4 + 124 + 6*edge*edge*4; len(data) != want {
		t.Fatalf("size = %d, want %d", len(data), want)
	}

	u32 := func(off int) uint32 { return binary.LittleEndian.Uint32(data[off:]) }
	checks := []struct {
		name string
		off  int
		want uint32
	}{
		{"magic", 0, 542327876},
		{"size", 4, 124},
		{"flags", 8, 135175},
		{"height", 12, edge},
		{"width", 16, edge},
		{"pitch", 20, 0},
		{"mipmaps", 28, 0},
		{"pf.size", 76, 32},
		{"pf.flags", 80, 65},
		{"pf.fourcc", 84, 0},
		{"pf.bits", 88, 32},
		{"pf.r", 92, 0xff0000},
		{"pf.g", 96, 0xff00},
		{"pf.b", 100, 0xff},
		{"pf.a", 104, 0xff000000},
		{"caps", 108, 4198410},
		{"caps2", 112, 65024},
		{"reserved2", 124, 0},
	}
	for _, c := range checks {
		if got := u32(c.off); got != c.want {
			t.Errorf("%s = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestWriteDDSPixels(t *testing.T) {
	const edge = 2
	var buf bytes.Buffer
	if err := WriteDDS(&buf, solidFaces(edge), edge); err != nil {
		t.Fatal(err)
	}
	body := buf.Bytes()[128:]
	for f := 0; f < cube.FaceCount; f++ {
		px := body[f*edge*edge*4:]
		want := []byte{255, 127, byte(float32(f) / 8 * 255), 255}
		if !bytes.Equal(px[:4], want) {
			t.Fatalf("face %d first pixel = %v, want %v", f, px[:4], want)
		}
	}
}

func TestQuantize(t *testing.T) {
	cases := map[float32]byte{-1: 0, 0: 0, 0.5: 127, 0.999: 254, 1: 255, 7: 255}
	for in, want := range cases {
		if got := quantize(in); got != want {
			t.Errorf("quantize(%v) = %d, want %d", in, got, want)
		}
	}
}

func TestCrossLayout(t *testing.T) {
	const edge = 2
	faces := solidFaces(edge)
	out := Cross(faces, edge)
	if out.Width != 4*edge+1 || out.Height != 3*edge {
		t.Fatalf("size %dx%d", out.Width, out.Height)
	}

	// face-local (0,0) lands at (dx, H-dy-1)
	for f, off := range crossOffsets {
		x, y := off[0]*edge, out.Height-off[1]*edge-1
		if got := out.At(x, y); got != faces[f][0] {
			t.Errorf("face %d at (%d,%d) = %+v", f, x, y, got)
		}
	}
	// top-left corner and the spare column stay empty
	if out.At(0, 0) != (pixel.Pixel{}) || out.At(out.Width-1, edge) != (pixel.Pixel{}) {
		t.Fatal("pixels outside the cross were written")
	}
}

func TestWriteCrossDecodes(t *testing.T) {
	const edge = 8
	var buf bytes.Buffer
	if err := WriteCross(&buf, solidFaces(edge), edge); err != nil {
		t.Fatal(err)
	}
	img, h, err := rgbe.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if h.Width != 4*edge+1 || h.Height != 3*edge {
		t.Fatalf("header %dx%d", h.Width, h.Height)
	}
	if got := img.At(edge, edge); got.B != 2 {
		t.Fatalf("-X pixel = %+v", got)
	}
}

func TestDownsampleKeepsAspect(t *testing.T) {
	img := ToNRGBA(pixel.Filled(200, 100, pixel.Gray(0.5)))
	got := Downsample(img, 50)
	if got.Bounds() != image.Rect(0, 0, 50, 25) {
		t.Fatalf("bounds = %v", got.Bounds())
	}
	if Downsample(img, 400) != img {
		t.Fatal("small image was resampled")
	}
}

func TestToNRGBAClamps(t *testing.T) {
	buf := pixel.NewBuffer(2, 1)
	buf.Set(0, 0, pixel.Pixel{R: -1, G: 0.5, B: 9})
	img := ToNRGBA(buf)
	if got := img.Pix[:4]; !bytes.Equal(got, []byte{0, 128, 255, 255}) {
		t.Fatalf("pixel = %v", got)
	}
}

func TestWritePreview(t *testing.T) {
	dir := t.TempDir()
	buf := pixel.Filled(64, 32, pixel.Pixel{R: 1, G: 0.25})

	webp := filepath.Join(dir, "out", "sky.webp")
	if err := WritePreview(webp, buf, 16); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(webp)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 12 || string(data[:4]) != "RIFF" || string(data[8:12]) != "WEBP" {
		t.Fatalf("not a webp file: % x", data[:min(len(data), 12)])
	}

	tgaPath := filepath.Join(dir, "sky.tga")
	if err := WritePreview(tgaPath, buf, 16); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(tgaPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := tga.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 8 {
		t.Fatalf("tga bounds = %v", img.Bounds())
	}

	if err := WritePreview(filepath.Join(dir, "sky.bmp"), buf, 16); err == nil {
		t.Fatal("expected error for .bmp")
	}
}

func TestWriteFileRemovesOnError(t *testing.T) {
	p := filepath.Join(t.TempDir(), "x.dds")
	// more than one buffer's worth reaches the file before the failure
	err := WriteFile(p, func(w io.Writer) error {
		w.Write(make([]byte, 64*1024))
		return os.ErrInvalid
	})
	if !errors.Is(err, os.ErrInvalid) {
		t.Fatalf("want ErrInvalid, got %v", err)
	}
	if _, err := os.Stat(p); !os.IsNotExist(err) {
		t.Fatalf("partial file left behind: %v", err)
	}
}
