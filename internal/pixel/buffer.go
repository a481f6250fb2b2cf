package pixel

// Buffer holds a row-major float RGB image.
type Buffer struct {
	Width  int
	Height int
	Pix    []Pixel // len = Width*Height
}

// NewBuffer allocates a zeroed buffer.
func NewBuffer(w, h int) *Buffer {
	return &Buffer{
		Width:  w,
		Height: h,
		Pix:    make([]Pixel, w*h),
	}
}

// Filled allocates a buffer with every pixel set to c.
func Filled(w, h int, c Pixel) *Buffer {
	b := NewBuffer(w, h)
	b.Fill(c)
	return b
}

func (b *Buffer) Fill(c Pixel) {
	for i := range b.Pix {
		b.Pix[i] = c
	}
}

// At returns the pixel at (x, y). The caller keeps coordinates in range.
func (b *Buffer) At(x, y int) Pixel {
	return b.Pix[x+y*b.Width]
}

func (b *Buffer) Set(x, y int, c Pixel) {
	b.Pix[x+y*b.Width] = c
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	c := &Buffer{Width: b.Width, Height: b.Height, Pix: make([]Pixel, len(b.Pix))}
	copy(c.Pix, b.Pix)
	return c
}

// Stats returns per-channel-max minimum, maximum, and the mean pixel.
func (b *Buffer) Stats() (lo, hi float32, mean Pixel) {
	if len(b.Pix) == 0 {
		return 0, 0, Pixel{}
	}
	lo, hi = b.Pix[0].Max(), b.Pix[0].Max()
	var sr, sg, sb float64
	for _, p := range b.Pix {
		m := p.Max()
		if m < lo {
			lo = m
		}
		if m > hi {
			hi = m
		}
		sr += float64(p.R)
		sg += float64(p.G)
		sb += float64(p.B)
	}
	n := float64(len(b.Pix))
	return lo, hi, Pixel{float32(sr / n), float32(sg / n), float32(sb / n)}
}
