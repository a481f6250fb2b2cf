package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"hdr-cubemap/internal/mesh"
	"hdr-cubemap/internal/raster"
)

func main() {
	scale := flag.Float64("scale", 1, "Rescale so the largest coordinate equals this")
	dump := flag.Bool("dump-sphere", false, "Write a generated sky sphere to stdout instead")
	rings := flag.Int("rings", 24, "Sphere rings for -dump-sphere")
	segments := flag.Int("segments", 48, "Sphere segments for -dump-sphere")
	inward := flag.Bool("inward", false, "Generate an inward-facing sphere for -dump-sphere")
	flag.Parse()

	if *dump {
		w := bufio.NewWriter(os.Stdout)
		m := mesh.UVSphere(*rings, *segments, *inward)
		m.Rescale(*scale)
		if err := mesh.Write(w, m); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		w.Flush()
		return
	}

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: inspectmesh [-scale s] mesh.txt ... | -dump-sphere")
		os.Exit(2)
	}

	failed := false
	for _, path := range flag.Args() {
		m, err := mesh.Load(path, *scale)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			failed = true
			continue
		}
		report(path, m)
	}
	if failed {
		os.Exit(1)
	}
}

func report(path string, m *mesh.Mesh) {
	lo, hi := m.Bounds()
	culled := 0
	for _, f := range m.Faces {
		v0, v1, v2 := m.Verts[f.V[0]], m.Verts[f.V[1]], m.Verts[f.V[2]]
		if !(raster.FlatIntensity(v0, v1, v2) > 0) {
			culled++
		}
	}

	fmt.Printf("%s\n", path)
	fmt.Printf("  Verts: %d, UVs: %d, Normals: %d, Faces: %d\n", len(m.Verts), len(m.UVs), len(m.Normals), len(m.Faces))
	fmt.Printf("  BBox: X[%.3f, %.3f] Y[%.3f, %.3f] Z[%.3f, %.3f]\n", lo[0], hi[0], lo[1], hi[1], lo[2], hi[2])
	if len(m.Faces) > 0 {
		fmt.Printf("  Culled: %d/%d (%.1f%%)\n", culled, len(m.Faces), 100*float64(culled)/float64(len(m.Faces)))
	}
}
