package raster

import "hdr-cubemap/internal/pixel"

// SampleDiffuse looks up the texel for (u, v) by flat index
// int(w*u) + w*int(h*v). The index is clamped to the texture, not wrapped.
func SampleDiffuse(tex *pixel.Buffer, u, v float64) pixel.Pixel {
	w, h := tex.Width, tex.Height
	n := w * h
	if n == 0 {
		return pixel.Pixel{}
	}
	idx := int(float64(w)*u) + w*int(float64(h)*v)
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	return tex.Pix[idx]
}
