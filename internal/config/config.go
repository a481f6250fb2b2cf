package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"hdr-cubemap/internal/pipeline"
)

// Config holds all configurable paths and pipeline settings.
type Config struct {
	// Paths
	BaseDir   string `json:"base_dir"`
	InputDir  string `json:"input_dir"`
	OutputDir string `json:"output_dir"`
	OuterMesh string `json:"outer_mesh"`
	InnerMesh string `json:"inner_mesh"`

	// Cube settings
	Edge       int     `json:"edge"`
	RotZ       float64 `json:"rot_z"`
	BlurPasses *int    `json:"blur_passes"`

	// Render settings
	RenderSize    int      `json:"render_size"`
	PreviewSize   int      `json:"preview_size"`
	PreviewFormat string   `json:"preview_format"`
	Yaw           float64  `json:"yaw"`
	Pitch         float64  `json:"pitch"`
	MeshScale     float64  `json:"mesh_scale"`
	Outputs       []string `json:"outputs"`
	Workers       int      `json:"workers"`
}

// Default pipeline settings.
const (
	DefaultEdge          = 512
	DefaultBlurPasses    = 5
	DefaultRenderSize    = 1024
	DefaultPreviewSize   = 512
	DefaultPreviewFormat = "webp"
	DefaultMeshScale     = 1.0
)

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.InputDir != "" {
		c.InputDir = flags.InputDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Edge > 0 {
		c.Edge = flags.Edge
	}
	if flags.BlurPasses >= 0 {
		n := flags.BlurPasses
		c.BlurPasses = &n
	}
	if flags.RenderSize > 0 {
		c.RenderSize = flags.RenderSize
	}
	if flags.PreviewFormat != "" {
		c.PreviewFormat = flags.PreviewFormat
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	// Resolve relative paths against base dir
	if c.BaseDir != "" {
		c.InputDir = rebase(c.BaseDir, c.InputDir)
		c.OutputDir = rebase(c.BaseDir, c.OutputDir)
		c.OuterMesh = rebase(c.BaseDir, c.OuterMesh)
		c.InnerMesh = rebase(c.BaseDir, c.InnerMesh)
	}
	if c.OutputDir == "" && c.InputDir != "" {
		c.OutputDir = filepath.Join(c.InputDir, "cubemaps")
	}

	// Defaults for pipeline settings
	if c.Edge <= 0 {
		c.Edge = DefaultEdge
	}
	if c.BlurPasses == nil || *c.BlurPasses < 0 {
		n := DefaultBlurPasses
		c.BlurPasses = &n
	}
	if c.RenderSize <= 0 {
		c.RenderSize = DefaultRenderSize
	}
	if c.PreviewSize <= 0 {
		c.PreviewSize = DefaultPreviewSize
	}
	if c.PreviewFormat == "" {
		c.PreviewFormat = DefaultPreviewFormat
	}
	if c.MeshScale <= 0 {
		c.MeshScale = DefaultMeshScale
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// PipelineOptions converts a resolved config into pipeline options.
func (c *Config) PipelineOptions() (pipeline.Options, error) {
	outputs, err := pipeline.ParseOutputs(c.Outputs)
	if err != nil {
		return pipeline.Options{}, fmt.Errorf("config: %w", err)
	}
	format := strings.ToLower(c.PreviewFormat)
	if err := pipeline.CheckPreviewFormat(format); err != nil {
		return pipeline.Options{}, fmt.Errorf("config: %w", err)
	}
	blur := DefaultBlurPasses
	if c.BlurPasses != nil {
		blur = *c.BlurPasses
	}
	return pipeline.Options{
		Edge:          c.Edge,
		RotZ:          c.RotZ,
		BlurPasses:    blur,
		RenderSize:    c.RenderSize,
		PreviewSize:   c.PreviewSize,
		PreviewFormat: format,
		Yaw:           c.Yaw,
		Pitch:         c.Pitch,
		OuterMesh:     c.OuterMesh,
		InnerMesh:     c.InnerMesh,
		MeshScale:     c.MeshScale,
		Outputs:       outputs,
	}, nil
}

// Flags holds CLI flag values that override config file settings.
// BlurPasses uses -1 for "not set" since 0 passes is meaningful.
type Flags struct {
	InputDir      string
	OutputDir     string
	Edge          int
	BlurPasses    int
	RenderSize    int
	PreviewFormat string
	Workers       int
}

func rebase(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
