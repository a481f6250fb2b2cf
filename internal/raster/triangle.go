package raster

import (
	"hdr-cubemap/internal/mathutil"
	"hdr-cubemap/internal/pixel"
)

// StepX is the horizontal scanline step in pixels. Rows advance by whole pixels.
const StepX = 0.4

// corner is one triangle vertex in screen space with its texture coordinate.
type corner struct {
	p  mathutil.Vec3
	uv mathutil.Vec3
}

// rasterizeTriangle walks the triangle in x-sorted scanline order and writes
// depth-tested samples into out.
//
// The triangle is split at the middle vertex into two x-spans. For every
// x-step both span edges are interpolated, giving a vertical segment that is
// walked one pixel at a time with z and UV interpolated along it.
func (r *Renderer) rasterizeTriangle(c [3]corner, diffuse *pixel.Buffer, intensity float64, out *pixel.Buffer) {
	// Sort by x (stable for equal x).
	if c[0].p[0] > c[1].p[0] {
		c[0], c[1] = c[1], c[0]
	}
	if c[1].p[0] > c[2].p[0] {
		c[1], c[2] = c[2], c[1]
	}
	if c[0].p[0] > c[1].p[0] {
		c[0], c[1] = c[1], c[0]
	}

	w, h := out.Width, out.Height
	for j := range c {
		c[j].p[0] = (c[j].p[0] + 1) * float64(w) / 2
		c[j].p[1] = (c[j].p[1] + 1) * float64(h) / 2
	}

	dir1 := c[1].p.Sub(c[0].p)
	dir2 := c[2].p.Sub(c[0].p)
	uvDir1 := c[1].uv.Sub(c[0].uv)
	uvDir2 := c[2].uv.Sub(c[0].uv)

	shade := float32(intensity)
	gray := pixel.Gray(shade)
	zbuf := r.depth.Z

	for x := c[0].p[0]; x <= c[2].p[0]; x += StepX {
		second := x >= c[1].p[0]
		base := c[0]
		if second {
			base = c[1]
			dir1 = c[2].p.Sub(c[1].p)
			uvDir1 = c[2].uv.Sub(c[1].uv)
		}

		k1, k2 := 1.0, 1.0
		if dir1[0] != 0 {
			k1 = (x - base.p[0]) / dir1[0]
		}
		if dir2[0] != 0 {
			k2 = (x - c[0].p[0]) / dir2[0]
		}

		p1 := base.p.Add(dir1.Scale(k1))
		p2 := c[0].p.Add(dir2.Scale(k2))
		uv1 := base.uv.Add(uvDir1.Scale(k1))
		uv2 := c[0].uv.Add(uvDir2.Scale(k2))
		if p1[1] > p2[1] {
			p1, p2 = p2, p1
			uv1, uv2 = uv2, uv1
		}

		dir := p2.Sub(p1)
		uvDir := uv2.Sub(uv1)

		for y := p1[1]; y <= p2[1]; y++ {
			k := 1.0
			if dir[1] != 0 {
				k = (y - p1[1]) / dir[1]
			}
			p := p1.Add(dir.Scale(k))

			if p[0] > float64(w-1) || p[1] > float64(h-1) || p[0] < 0 || p[1] < 0 {
				continue
			}

			idx := int(p[0]) + int(p[1])*w
			if !(p[2] > zbuf[idx]) {
				continue
			}
			zbuf[idx] = p[2]

			if diffuse != nil {
				uv := uv1.Add(uvDir.Scale(k))
				out.Pix[idx] = SampleDiffuse(diffuse, uv[0], uv[1]).Scale(shade)
			} else {
				out.Pix[idx] = gray
			}
		}
	}
}
