package raster

import "math"

// DepthBuffer holds one depth value per output pixel.
type DepthBuffer struct {
	Width  int
	Height int
	Z      []float64 // len = W*H, reset to -inf
}

// NewDepthBuffer allocates a depth buffer already cleared to -inf.
func NewDepthBuffer(w, h int) *DepthBuffer {
	d := &DepthBuffer{Width: w, Height: h, Z: make([]float64, w*h)}
	d.Clear()
	return d
}

// Clear resets every depth to -inf so the first write always wins.
func (d *DepthBuffer) Clear() {
	inf := math.Inf(-1)
	for i := range d.Z {
		d.Z[i] = inf
	}
}
