package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"hdr-cubemap/internal/pipeline"
)

func unset() Flags { return Flags{BlurPasses: -1} }

func TestResolveDefaults(t *testing.T) {
	var c Config
	c.Resolve(unset())

	if c.Edge != DefaultEdge || *c.BlurPasses != DefaultBlurPasses || c.RenderSize != DefaultRenderSize {
		t.Fatalf("cube defaults: %+v", c)
	}
	if c.PreviewSize != DefaultPreviewSize || c.PreviewFormat != "webp" || c.MeshScale != 1 {
		t.Fatalf("render defaults: %+v", c)
	}
	if c.Workers != runtime.NumCPU() {
		t.Fatalf("workers = %d", c.Workers)
	}
}

func TestResolveFlagsOverride(t *testing.T) {
	c := Config{Edge: 256, RenderSize: 64, InputDir: "in"}
	c.Resolve(Flags{Edge: 128, BlurPasses: 0, InputDir: "panos", OutputDir: "out", Workers: 3})

	if c.Edge != 128 || *c.BlurPasses != 0 || c.RenderSize != 64 {
		t.Fatalf("got %+v", c)
	}
	if c.InputDir != "panos" || c.OutputDir != "out" || c.Workers != 3 {
		t.Fatalf("got %+v", c)
	}
}

func TestResolvePaths(t *testing.T) {
	base := t.TempDir()
	c := Config{BaseDir: base, InputDir: "hdri", OuterMesh: "dome.txt", InnerMesh: "/abs/inner.txt"}
	c.Resolve(unset())

	if c.InputDir != filepath.Join(base, "hdri") {
		t.Fatalf("input = %s", c.InputDir)
	}
	if c.OutputDir != filepath.Join(base, "hdri", "cubemaps") {
		t.Fatalf("output = %s", c.OutputDir)
	}
	if c.OuterMesh != filepath.Join(base, "dome.txt") || c.InnerMesh != "/abs/inner.txt" {
		t.Fatalf("meshes = %s, %s", c.OuterMesh, c.InnerMesh)
	}
}

func TestLoad(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")
	body := `{"edge": 64, "blur_passes": 0, "rot_z": 45, "outputs": ["dds", "preview"]}`
	if err := os.WriteFile(p, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	c.Resolve(unset())
	if c.Edge != 64 || c.RotZ != 45 || *c.BlurPasses != 0 || len(c.Outputs) != 2 {
		t.Fatalf("got %+v", c)
	}

	os.WriteFile(p, []byte("{"), 0644)
	if _, err := Load(p); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "none.json")); err == nil {
		t.Fatal("expected read error")
	}
}

func TestPipelineOptions(t *testing.T) {
	c := Config{Edge: 32, RotZ: 90, Yaw: 10, Outputs: []string{"strip"}}
	c.Resolve(unset())
	opts, err := c.PipelineOptions()
	if err != nil {
		t.Fatal(err)
	}
	if opts.Edge != 32 || opts.RotZ != 90 || opts.Yaw != 10 || opts.BlurPasses != DefaultBlurPasses {
		t.Fatalf("opts = %+v", opts)
	}
	if opts.Outputs != pipeline.OutStrip {
		t.Fatalf("outputs = %b", opts.Outputs)
	}

	c.Outputs = []string{"gif"}
	if _, err := c.PipelineOptions(); err == nil {
		t.Fatal("expected error for unknown output")
	}
}

func TestPipelineOptionsPreviewFormat(t *testing.T) {
	c := Config{PreviewFormat: "TGA"}
	c.Resolve(unset())
	opts, err := c.PipelineOptions()
	if err != nil || opts.PreviewFormat != "tga" {
		t.Fatalf("tga: %q %v", opts.PreviewFormat, err)
	}

	c.PreviewFormat = "png"
	if _, err := c.PipelineOptions(); err == nil {
		t.Fatal("expected error for png preview")
	}
}
