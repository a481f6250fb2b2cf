package raster

import (
	"hdr-cubemap/internal/mesh"
	"hdr-cubemap/internal/pixel"
)

// Model pairs a mesh with the diffuse texture it samples. A nil Diffuse
// renders the mesh as intensity-shaded gray.
type Model struct {
	Mesh    *mesh.Mesh
	Diffuse *pixel.Buffer
}

// Renderer draws flat-shaded, depth-tested triangle meshes into float
// pixel buffers. Vertex x and y are normalized device coordinates in [-1, 1];
// larger z is nearer.
type Renderer struct {
	depth *DepthBuffer
}

// NewRenderer allocates a renderer whose depth buffer matches a w×h target.
func NewRenderer(w, h int) *Renderer {
	return &Renderer{depth: NewDepthBuffer(w, h)}
}

// Depth exposes the depth buffer of the last frame.
func (r *Renderer) Depth() *DepthBuffer { return r.depth }

// ClearDepth starts a new frame. It must run before DrawModel.
func (r *Renderer) ClearDepth() {
	r.depth.Clear()
}

// fit makes the depth buffer match out, reallocating (cleared) on a size change.
func (r *Renderer) fit(out *pixel.Buffer) {
	if r.depth == nil || r.depth.Width != out.Width || r.depth.Height != out.Height {
		r.depth = NewDepthBuffer(out.Width, out.Height)
	}
}

// DrawModel rasterizes every lit triangle of m into out. Triangles whose
// flat intensity is <= 0 are skipped.
func (r *Renderer) DrawModel(m Model, out *pixel.Buffer) {
	if m.Mesh == nil {
		return
	}
	r.fit(out)

	ms := m.Mesh
	nv, nt := len(ms.Verts), len(ms.UVs)
	for _, f := range ms.Faces {
		ok := true
		for k := 0; k < 3; k++ {
			if f.V[k] < 0 || f.V[k] >= nv || f.T[k] < 0 || f.T[k] >= nt {
				ok = false
			}
		}
		if !ok {
			continue
		}

		v0, v1, v2 := ms.Verts[f.V[0]], ms.Verts[f.V[1]], ms.Verts[f.V[2]]
		intensity := FlatIntensity(v0, v1, v2)
		if !(intensity > 0) {
			continue
		}

		c := [3]corner{
			{p: v0, uv: ms.UVs[f.T[0]]},
			{p: v1, uv: ms.UVs[f.T[1]]},
			{p: v2, uv: ms.UVs[f.T[2]]},
		}
		r.rasterizeTriangle(c, m.Diffuse, intensity, out)
	}
}

// Render clears the depth buffer and draws both models into out so that
// the nearer surface of either one wins.
func (r *Renderer) Render(m1, m2 Model, out *pixel.Buffer) {
	r.fit(out)
	r.ClearDepth()
	r.DrawModel(m1, out)
	r.DrawModel(m2, out)
}
