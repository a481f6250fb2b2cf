package mesh

import "hdr-cubemap/internal/mathutil"

// Face holds three corners, each an index triple into the vertex, UV and
// normal lists. Indices are 0-based.
type Face struct {
	V [3]int
	T [3]int
	N [3]int
}

// Mesh holds triangle geometry for one model.
type Mesh struct {
	Verts   []mathutil.Vec3
	Normals []mathutil.Vec3
	UVs     []mathutil.Vec3 // u, v; the third component is unused
	Faces   []Face
}

// Validate checks that every face index addresses an existing element.
func (m *Mesh) Validate() error {
	for fi, f := range m.Faces {
		for k := 0; k < 3; k++ {
			if f.V[k] < 0 || f.V[k] >= len(m.Verts) {
				return rangeError(fi, "vertex", f.V[k], len(m.Verts))
			}
			if f.T[k] < 0 || f.T[k] >= len(m.UVs) {
				return rangeError(fi, "uv", f.T[k], len(m.UVs))
			}
			if f.N[k] < 0 || f.N[k] >= len(m.Normals) {
				return rangeError(fi, "normal", f.N[k], len(m.Normals))
			}
		}
	}
	return nil
}

// Rescale scales all vertices uniformly so the largest absolute coordinate
// equals scale. A non-positive scale means 1.
func (m *Mesh) Rescale(scale float64) {
	if scale <= 0 {
		scale = 1
	}
	cMax := 0.0
	for _, v := range m.Verts {
		if a := v.MaxAbs(); a > cMax {
			cMax = a
		}
	}
	if cMax == 0 {
		return
	}
	k := scale / cMax
	for i, v := range m.Verts {
		m.Verts[i] = v.Scale(k)
	}
}

// Transform rotates vertices and normals by r.
func (m *Mesh) Transform(r mathutil.Mat3) {
	for i, v := range m.Verts {
		m.Verts[i] = r.MulVec3(v)
	}
	for i, n := range m.Normals {
		m.Normals[i] = r.MulVec3(n)
	}
}

// Clone returns a deep copy.
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		Verts:   append([]mathutil.Vec3(nil), m.Verts...),
		Normals: append([]mathutil.Vec3(nil), m.Normals...),
		UVs:     append([]mathutil.Vec3(nil), m.UVs...),
		Faces:   append([]Face(nil), m.Faces...),
	}
}

// Bounds returns the axis-aligned bounding box of the vertices.
func (m *Mesh) Bounds() (lo, hi mathutil.Vec3) {
	if len(m.Verts) == 0 {
		return
	}
	lo, hi = m.Verts[0], m.Verts[0]
	for _, v := range m.Verts[1:] {
		for k := 0; k < 3; k++ {
			if v[k] < lo[k] {
				lo[k] = v[k]
			}
			if v[k] > hi[k] {
				hi[k] = v[k]
			}
		}
	}
	return lo, hi
}
