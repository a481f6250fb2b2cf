package mesh

import (
	"fmt"
	"io"
	"math"

	"hdr-cubemap/internal/mathutil"
)

// UVSphere builds a unit sphere of rings × segments quads. With inward set,
// normals point to the center and the winding is reversed so the inner
// surface faces the viewer.
func UVSphere(rings, segments int, inward bool) *Mesh {
	if rings < 2 {
		rings = 2
	}
	if segments < 3 {
		segments = 3
	}
	m := &Mesh{}
	for r := 0; r <= rings; r++ {
		theta := math.Pi * float64(r) / float64(rings)
		st, ct := math.Sin(theta), math.Cos(theta)
		for s := 0; s <= segments; s++ {
			phi := 2 * math.Pi * float64(s) / float64(segments)
			p := mathutil.Vec3{st * math.Cos(phi), st * math.Sin(phi), ct}
			n := p
			if inward {
				n = p.Scale(-1)
			}
			m.Verts = append(m.Verts, p)
			m.Normals = append(m.Normals, n)
			m.UVs = append(m.UVs, mathutil.Vec3{float64(s) / float64(segments), float64(r) / float64(rings), 0})
		}
	}

	row := segments + 1
	tri := func(a, b, c int) {
		m.Faces = append(m.Faces, Face{V: [3]int{a, b, c}, T: [3]int{a, b, c}, N: [3]int{a, b, c}})
	}
	for r := 0; r < rings; r++ {
		for s := 0; s < segments; s++ {
			a := r*row + s
			b, c := a+1, a+row
			d := c + 1
			if inward {
				tri(a, c, b)
				tri(b, c, d)
			} else {
				tri(a, b, c)
				tri(b, d, c)
			}
		}
	}
	return m
}

// Write serializes m in the text format read by Parse.
func Write(w io.Writer, m *Mesh) error {
	for _, v := range m.Verts {
		if _, err := fmt.Fprintf(w, "v %g %g %g\n", v[0], v[1], v[2]); err != nil {
			return err
		}
	}
	for _, v := range m.UVs {
		if _, err := fmt.Fprintf(w, "vt %g %g %g\n", v[0], v[1], v[2]); err != nil {
			return err
		}
	}
	for _, v := range m.Normals {
		if _, err := fmt.Fprintf(w, "vn %g %g %g\n", v[0], v[1], v[2]); err != nil {
			return err
		}
	}
	for _, f := range m.Faces {
		if _, err := fmt.Fprintf(w, "f %d/%d/%d %d/%d/%d %d/%d/%d\n",
			f.V[0]+1, f.T[0]+1, f.N[0]+1,
			f.V[1]+1, f.T[1]+1, f.N[1]+1,
			f.V[2]+1, f.T[2]+1, f.N[2]+1); err != nil {
			return err
		}
	}
	return nil
}
