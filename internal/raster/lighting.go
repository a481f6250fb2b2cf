package raster

import "hdr-cubemap/internal/mathutil"

// LightDir is the fixed directional light, pointing at the viewer.
var LightDir = mathutil.Vec3{0, 0, 1}

// FlatIntensity returns the Lambertian factor for the triangle v0, v1, v2
// using the face normal cross(v2-v0, v1-v0). Values <= 0 mean the triangle
// faces away from the light and is culled.
func FlatIntensity(v0, v1, v2 mathutil.Vec3) float64 {
	n := v2.Sub(v0).Cross(v1.Sub(v0)).Normalize()
	return n.Dot(LightDir)
}
