package pixel

// Pixel is a linear RGB sample. Channels are unclamped (HDR range).
type Pixel struct {
	R, G, B float32
}

// Gray returns a pixel with all three channels set to v.
func Gray(v float32) Pixel {
	return Pixel{v, v, v}
}

func (p Pixel) Add(q Pixel) Pixel {
	return Pixel{p.R + q.R, p.G + q.G, p.B + q.B}
}

func (p Pixel) Scale(s float32) Pixel {
	return Pixel{p.R * s, p.G * s, p.B * s}
}

func (p Pixel) Div(s float32) Pixel {
	return Pixel{p.R / s, p.G / s, p.B / s}
}

// Max returns the largest of the three channels.
func (p Pixel) Max() float32 {
	m := p.R
	if p.G > m {
		m = p.G
	}
	if p.B > m {
		m = p.B
	}
	return m
}
