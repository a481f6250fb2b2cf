package cube

import (
	"math"

	"hdr-cubemap/internal/mathutil"
	"hdr-cubemap/internal/pixel"
)

const twoPi = 2 * math.Pi

// faceDirection places the integer face coordinate (c1, c2) on the cube
// surface. One axis is fixed at ±half, the other two come from c1 and c2.
func faceDirection(f Face, c1, c2, half float64) (x, y, z float64) {
	switch f {
	case PosX:
		return half, c1, c2
	case NegX:
		return -half, c1, c2
	case PosY:
		return c1, half, c2
	case NegY:
		return c1, -half, c2
	case PosZ:
		return c1, c2, half
	default:
		return c1, c2, -half
	}
}

// wrapAngle folds a into [0, 2π).
func wrapAngle(a float64) float64 {
	a = math.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	if a >= twoPi {
		a -= twoPi
	}
	return a
}

func wrapIndex(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// Project reprojects an equirectangular panorama onto six faces of the given
// edge length. rotZ rotates the panorama around the vertical axis (degrees)
// and only offsets the azimuth.
func Project(src *pixel.Buffer, edge int, rotZ float64) *Cube {
	c := New(edge)
	edge = c.edge
	if src == nil || src.Width == 0 || src.Height == 0 {
		return c
	}

	w, h := src.Width, src.Height
	radius := float64(h) / 2
	half := float64(edge) / 2
	lo := edge / 2
	angleZ := mathutil.Deg2Rad(rotZ)

	for f := Face(0); f < FaceCount; f++ {
		dst := c.raw[f]
		for c1 := -lo; c1 < edge-lo; c1++ {
			for c2 := -lo; c2 < edge-lo; c2++ {
				x, y, z := faceDirection(f, float64(c1), float64(c2), half)

				l := math.Sqrt(x*x + y*y + z*z)
				sx, sy, sz := radius*x/l, radius*y/l, radius*z/l

				inclination := wrapAngle(math.Atan2(math.Sqrt(sx*sx+sy*sy), sz))
				azimuth := wrapAngle(math.Atan2(sy, sx) + angleZ)

				col := wrapIndex(int(math.Round(azimuth/twoPi*float64(w))), w)
				row := wrapIndex(int(math.Round(inclination/math.Pi*float64(h))), h)

				idx := (c1 + lo) + edge*(c2+lo)
				if idx < 0 || idx >= len(dst) {
					continue
				}
				dst[idx] = src.Pix[col+row*w]
			}
		}
	}

	// Orientation fixes so every face shares one up vector and winding.
	FlipHorizontal(c.raw[PosX], edge)
	FlipHorizontal(c.raw[NegY], edge)
	FlipHorizontal(c.raw[PosZ], edge)
	for f := range c.raw {
		FlipVertical(c.raw[f], edge)
	}

	c.blurred.copyFrom(&c.raw)
	return c
}
