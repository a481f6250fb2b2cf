package rgbe

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"hdr-cubemap/internal/pixel"
)

const (
	minRunLength = 4
	maxRLEWidth  = 0x7fff
)

// toRGBE packs a float pixel into shared-exponent form.
func toRGBE(p pixel.Pixel) [4]byte {
	v := float64(p.Max())
	if v < 1e-32 {
		return [4]byte{}
	}
	m, e := math.Frexp(v)
	s := m * 256 / v
	return [4]byte{
		byte(float64(p.R) * s),
		byte(float64(p.G) * s),
		byte(float64(p.B) * s),
		byte(e + 128),
	}
}

func fromRGBE(b [4]byte) pixel.Pixel {
	if b[3] == 0 {
		return pixel.Pixel{}
	}
	f := math.Ldexp(1, int(b[3])-(128+8))
	return pixel.Pixel{
		R: float32(float64(b[0]) * f),
		G: float32(float64(b[1]) * f),
		B: float32(float64(b[2]) * f),
	}
}

// Decode reads a Radiance .hdr image. Flat and new-style RLE scanlines are
// supported; the orientation must be "-Y H +X W".
func Decode(r io.Reader) (*pixel.Buffer, Header, error) {
	br := bufio.NewReader(r)
	h, err := readHeader(br)
	if err != nil {
		return nil, h, err
	}

	buf := pixel.NewBuffer(h.Width, h.Height)
	if h.Width < 8 || h.Width > maxRLEWidth {
		return buf, h, readFlat(br, buf.Pix)
	}

	line := make([]byte, 4*h.Width)
	for y := 0; y < h.Height; y++ {
		var rgbe [4]byte
		if _, err := io.ReadFull(br, rgbe[:]); err != nil {
			return nil, h, fmt.Errorf("%w: row %d: %v", ErrData, y, err)
		}
		if rgbe[0] != 2 || rgbe[1] != 2 || rgbe[2]&0x80 != 0 {
			// not run-length encoded: this pixel starts a flat image
			row := buf.Pix[y*h.Width:]
			row[0] = fromRGBE(rgbe)
			return buf, h, readFlat(br, row[1:])
		}
		if int(rgbe[2])<<8|int(rgbe[3]) != h.Width {
			return nil, h, fmt.Errorf("%w: row %d: scanline width mismatch", ErrData, y)
		}
		if err := readRLE(br, line, h.Width); err != nil {
			return nil, h, fmt.Errorf("%w: row %d: %v", ErrData, y, err)
		}
		row := buf.Pix[y*h.Width : (y+1)*h.Width]
		for x := range row {
			row[x] = fromRGBE([4]byte{line[x], line[x+h.Width], line[x+2*h.Width], line[x+3*h.Width]})
		}
	}
	return buf, h, nil
}

func readFlat(br *bufio.Reader, dst []pixel.Pixel) error {
	var b [4]byte
	for i := range dst {
		if _, err := io.ReadFull(br, b[:]); err != nil {
			return fmt.Errorf("%w: flat pixel %d: %v", ErrData, i, err)
		}
		dst[i] = fromRGBE(b)
	}
	return nil
}

// readRLE decodes one scanline stored as four planar component runs.
func readRLE(br *bufio.Reader, line []byte, width int) error {
	for c := 0; c < 4; c++ {
		plane := line[c*width : (c+1)*width]
		for x := 0; x < width; {
			n, err := br.ReadByte()
			if err != nil {
				return err
			}
			if n > 128 {
				count := int(n) - 128
				if x+count > width {
					return fmt.Errorf("run overflows scanline")
				}
				v, err := br.ReadByte()
				if err != nil {
					return err
				}
				for i := 0; i < count; i++ {
					plane[x+i] = v
				}
				x += count
				continue
			}
			count := int(n)
			if count == 0 || x+count > width {
				return fmt.Errorf("bad literal count %d", count)
			}
			if _, err := io.ReadFull(br, plane[x:x+count]); err != nil {
				return err
			}
			x += count
		}
	}
	return nil
}

// Encode writes buf as a run-length encoded Radiance .hdr image.
func Encode(w io.Writer, buf *pixel.Buffer, h Header) error {
	h.Width, h.Height = buf.Width, buf.Height
	bw := bufio.NewWriter(w)
	if err := writeHeader(bw, h); err != nil {
		return err
	}

	width := buf.Width
	if width < 8 || width > maxRLEWidth {
		for _, p := range buf.Pix {
			b := toRGBE(p)
			bw.Write(b[:])
		}
		return bw.Flush()
	}

	plane := make([]byte, 4*width)
	for y := 0; y < buf.Height; y++ {
		row := buf.Pix[y*width : (y+1)*width]
		for x, p := range row {
			b := toRGBE(p)
			plane[x] = b[0]
			plane[x+width] = b[1]
			plane[x+2*width] = b[2]
			plane[x+3*width] = b[3]
		}
		bw.Write([]byte{2, 2, byte(width >> 8), byte(width & 0xff)})
		for c := 0; c < 4; c++ {
			writeRLE(bw, plane[c*width:(c+1)*width])
		}
	}
	return bw.Flush()
}

// writeRLE emits one component plane, using runs of at least minRunLength
// and literal dumps of at most 128 bytes.
func writeRLE(bw *bufio.Writer, data []byte) {
	n := len(data)
	cur := 0
	for cur < n {
		begRun := cur
		runCount, oldRunCount := 0, 0
		for runCount < minRunLength && begRun < n {
			begRun += runCount
			oldRunCount = runCount
			runCount = 1
			for begRun+runCount < n && runCount < 127 && data[begRun] == data[begRun+runCount] {
				runCount++
			}
		}
		// a short run right at cur is cheaper as a run than as a literal
		if oldRunCount > 1 && oldRunCount == begRun-cur {
			bw.WriteByte(byte(128 + oldRunCount))
			bw.WriteByte(data[cur])
			cur = begRun
		}
		for cur < begRun {
			nonRun := begRun - cur
			if nonRun > 128 {
				nonRun = 128
			}
			bw.WriteByte(byte(nonRun))
			bw.Write(data[cur : cur+nonRun])
			cur += nonRun
		}
		if runCount >= minRunLength {
			bw.WriteByte(byte(128 + runCount))
			bw.WriteByte(data[begRun])
			cur += runCount
		}
	}
}
