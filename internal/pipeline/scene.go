package pipeline

import (
	"fmt"

	"hdr-cubemap/internal/mathutil"
	"hdr-cubemap/internal/mesh"
)

// Default sky-sphere tessellation used when no mesh file is configured.
const (
	sphereRings    = 24
	sphereSegments = 48
	innerScale     = 0.5
)

// Scene is the pair of sky meshes every render draws. It is read-only once
// built and may be shared between contexts.
type Scene struct {
	Outer *mesh.Mesh
	Inner *mesh.Mesh
}

// LoadScene loads the configured meshes, or generates the default spheres
// for any path left empty, and applies the view rotation.
func LoadScene(opts Options) (Scene, error) {
	scale := opts.MeshScale
	if scale <= 0 {
		scale = 1
	}

	outer, err := sceneMesh(opts.OuterMesh, scale, false)
	if err != nil {
		return Scene{}, fmt.Errorf("pipeline: outer mesh: %w", err)
	}
	inner, err := sceneMesh(opts.InnerMesh, scale*innerScale, true)
	if err != nil {
		return Scene{}, fmt.Errorf("pipeline: inner mesh: %w", err)
	}

	view := mathutil.ViewRotation(opts.Yaw, opts.Pitch)
	outer.Transform(view)
	inner.Transform(view)
	return Scene{Outer: outer, Inner: inner}, nil
}

func sceneMesh(path string, scale float64, inward bool) (*mesh.Mesh, error) {
	if path != "" {
		return mesh.Load(path, scale)
	}
	m := mesh.UVSphere(sphereRings, sphereSegments, inward)
	m.Rescale(scale)
	return m, nil
}
