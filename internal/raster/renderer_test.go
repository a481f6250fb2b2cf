package raster

import (
	"math"
	"testing"

	"hdr-cubemap/internal/mathutil"
	"hdr-cubemap/internal/mesh"
	"hdr-cubemap/internal/pixel"
)

// flatTriangle covers the lower-left half of the screen at depth z. Its
// winding gives cross(v2-v0, v1-v0) = +Z, so it is fully lit.
func flatTriangle(z float64) *mesh.Mesh {
	return &mesh.Mesh{
		Verts: []mathutil.Vec3{{-1, -1, z}, {-1, 1, z}, {1, -1, z}},
		UVs:   []mathutil.Vec3{{0, 0, 0}, {0, 1, 0}, {1, 0, 0}},
		Normals: []mathutil.Vec3{
			{0, 0, 1},
		},
		Faces: []mesh.Face{{V: [3]int{0, 1, 2}, T: [3]int{0, 1, 2}}},
	}
}

func solid(c pixel.Pixel) *pixel.Buffer {
	return pixel.Filled(1, 1, c)
}

func TestDepthTestNearerWins(t *testing.T) {
	red, blue := pixel.Pixel{R: 1}, pixel.Pixel{B: 1}
	near := Model{Mesh: flatTriangle(0.5), Diffuse: solid(red)}
	far := Model{Mesh: flatTriangle(-0.5), Diffuse: solid(blue)}

	for name, order := range map[string][2]Model{
		"near first": {near, far},
		"far first":  {far, near},
	} {
		out := pixel.NewBuffer(16, 16)
		r := NewRenderer(16, 16)
		r.Render(order[0], order[1], out)

		covered := 0
		for y := 0; y < 16; y++ {
			for x := 0; x < 16; x++ {
				p := out.At(x, y)
				if p == blue {
					t.Fatalf("%s: far triangle visible at (%d,%d)", name, x, y)
				}
				if p == red {
					covered++
					if r.Depth().Z[x+y*16] != 0.5 {
						t.Fatalf("%s: depth at (%d,%d) = %v", name, x, y, r.Depth().Z[x+y*16])
					}
				}
			}
		}
		if out.At(3, 3) != red {
			t.Fatalf("%s: pixel (3,3) = %+v, want red", name, out.At(3, 3))
		}
		if covered < 100 {
			t.Fatalf("%s: only %d pixels covered", name, covered)
		}
	}
}

func TestEqualDepthKeepsFirst(t *testing.T) {
	out := pixel.NewBuffer(8, 8)
	r := NewRenderer(8, 8)
	r.Render(
		Model{Mesh: flatTriangle(0), Diffuse: solid(pixel.Gray(2))},
		Model{Mesh: flatTriangle(0), Diffuse: solid(pixel.Gray(3))},
		out,
	)
	if out.At(1, 1) != pixel.Gray(2) {
		t.Fatalf("strict > depth test should keep the first write, got %+v", out.At(1, 1))
	}
}

func TestUntexturedIsIntensityGray(t *testing.T) {
	out := pixel.NewBuffer(8, 8)
	r := NewRenderer(8, 8)
	r.ClearDepth()
	r.DrawModel(Model{Mesh: flatTriangle(0)}, out)
	if out.At(1, 1) != pixel.Gray(1) {
		t.Fatalf("got %+v, want gray 1", out.At(1, 1))
	}
}

func TestBackFacesCulled(t *testing.T) {
	m := flatTriangle(0)
	m.Faces[0].V = [3]int{0, 2, 1}
	out := pixel.NewBuffer(8, 8)
	r := NewRenderer(8, 8)
	r.ClearDepth()
	r.DrawModel(Model{Mesh: m}, out)
	for i, p := range out.Pix {
		if p != (pixel.Pixel{}) {
			t.Fatalf("culled triangle wrote pixel %d", i)
		}
	}
}

func TestTiltedTriangleIntensity(t *testing.T) {
	v0 := mathutil.Vec3{-1, -1, 0}
	v1 := mathutil.Vec3{-1, 1, 0}
	v2 := mathutil.Vec3{1, -1, 1}
	got := FlatIntensity(v0, v1, v2)
	// cross((2,0,1), (0,2,0)) = (-2,0,4)
	want := 4 / math.Sqrt(20)
	if math.Abs(got-want) > 1e-12 || got <= 0 || got >= 1 {
		t.Fatalf("intensity = %v, want %v", got, want)
	}
}

func TestShadeScalesTexture(t *testing.T) {
	m := flatTriangle(0)
	m.Verts[2][2] = 1 // tilt so intensity < 1
	out := pixel.NewBuffer(16, 16)
	r := NewRenderer(16, 16)
	r.ClearDepth()
	r.DrawModel(Model{Mesh: m, Diffuse: solid(pixel.Gray(4))}, out)

	in := float32(FlatIntensity(m.Verts[0], m.Verts[1], m.Verts[2]))
	if got := out.At(2, 2); got != pixel.Gray(4).Scale(in) {
		t.Fatalf("got %+v, want %v", got, 4*in)
	}
}

func TestOffscreenSamplesDiscarded(t *testing.T) {
	m := &mesh.Mesh{
		Verts: []mathutil.Vec3{{-3, -3, 0}, {-3, 3, 0}, {3, -3, 0}},
		UVs:   []mathutil.Vec3{{}, {}, {}},
		Faces: []mesh.Face{{V: [3]int{0, 1, 2}, T: [3]int{0, 1, 2}}},
	}
	out := pixel.NewBuffer(8, 8)
	r := NewRenderer(8, 8)
	r.ClearDepth()
	r.DrawModel(Model{Mesh: m}, out) // must not panic
	if out.At(0, 0) != pixel.Gray(1) {
		t.Fatal("on-screen part of a large triangle not drawn")
	}
}

func TestClearDepth(t *testing.T) {
	r := NewRenderer(4, 4)
	out := pixel.NewBuffer(4, 4)
	r.DrawModel(Model{Mesh: flatTriangle(0.25)}, out)
	r.ClearDepth()
	for i, z := range r.Depth().Z {
		if !math.IsInf(z, -1) {
			t.Fatalf("depth[%d] = %v after clear", i, z)
		}
	}
}

func TestSampleDiffuseClamps(t *testing.T) {
	tex := pixel.NewBuffer(4, 2)
	for i := range tex.Pix {
		tex.Pix[i] = pixel.Gray(float32(i))
	}
	cases := []struct {
		u, v float64
		want float32
	}{
		{0, 0, 0},
		{0.5, 0, 2},
		{0.25, 0.5, 5},
		{-3, -3, 0}, // clamps low
		{0.9, 5, 7}, // clamps high
		{1.0, 0, 4}, // flat index runs into the next row
	}
	for _, tc := range cases {
		if got := SampleDiffuse(tex, tc.u, tc.v); got.R != tc.want {
			t.Errorf("SampleDiffuse(%v,%v) = %v, want %v", tc.u, tc.v, got.R, tc.want)
		}
	}
}
