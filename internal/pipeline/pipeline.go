// Package pipeline runs one panorama through projection, blur, packing and
// the sky render, and writes the requested outputs.
package pipeline

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"hdr-cubemap/internal/cube"
	"hdr-cubemap/internal/export"
	"hdr-cubemap/internal/pixel"
	"hdr-cubemap/internal/raster"
	"hdr-cubemap/internal/source"
)

// Output selects which files Run writes.
type Output uint

const (
	OutDDS        Output = 1 << iota // raw faces, .dds
	OutDiffuseDDS                    // blurred faces, _diffuse.dds
	OutCross                         // raw faces, _cross.hdr
	OutStrip                         // packed blurred strip, _strip.hdr
	OutSky                           // sky render, _sky.hdr
	OutPreview                       // 8-bit sky preview, _sky.webp or _sky.tga

	AllOutputs = OutDDS | OutDiffuseDDS | OutCross | OutStrip | OutSky | OutPreview
)

var outputNames = map[string]Output{
	"dds":         OutDDS,
	"diffuse_dds": OutDiffuseDDS,
	"cross":       OutCross,
	"strip":       OutStrip,
	"sky":         OutSky,
	"preview":     OutPreview,
}

var previewFormats = map[string]bool{"webp": true, "tga": true}

// CheckPreviewFormat reports whether format names a supported preview
// encoder. The empty string selects webp.
func CheckPreviewFormat(format string) error {
	if format != "" && !previewFormats[format] {
		return fmt.Errorf("pipeline: unsupported preview format %q (want webp or tga)", format)
	}
	return nil
}

// ParseOutputs turns a list of output names into a mask. An empty list
// selects every output.
func ParseOutputs(names []string) (Output, error) {
	if len(names) == 0 {
		return AllOutputs, nil
	}
	var o Output
	for _, n := range names {
		bit, ok := outputNames[strings.ToLower(strings.TrimSpace(n))]
		if !ok {
			return 0, fmt.Errorf("pipeline: unknown output %q", n)
		}
		o |= bit
	}
	return o, nil
}

// Options configures a pipeline run. Zero sizes are not valid; callers
// resolve defaults through the config package.
type Options struct {
	Edge          int
	RotZ          float64 // degrees added to the panorama azimuth
	BlurPasses    int
	RenderSize    int
	PreviewSize   int
	PreviewFormat string // "webp" or "tga"
	Yaw, Pitch    float64
	OuterMesh     string
	InnerMesh     string
	MeshScale     float64
	Outputs       Output
}

// Result holds the in-memory products of one panorama.
type Result struct {
	Cube  *cube.Cube
	Strip *pixel.Buffer
	Sky   *pixel.Buffer
}

// Context carries everything one worker needs to process panoramas. A
// Context is not safe for concurrent use; build one per goroutine.
type Context struct {
	opts     Options
	scene    Scene
	renderer *raster.Renderer
}

// NewContext validates opts and binds them to a scene.
func NewContext(opts Options, scene Scene) (*Context, error) {
	if opts.Edge <= 0 {
		return nil, fmt.Errorf("pipeline: edge must be positive, got %d", opts.Edge)
	}
	if opts.RenderSize <= 0 {
		return nil, fmt.Errorf("pipeline: render size must be positive, got %d", opts.RenderSize)
	}
	if opts.BlurPasses < 0 {
		return nil, fmt.Errorf("pipeline: negative blur passes %d", opts.BlurPasses)
	}
	if opts.Outputs&OutPreview != 0 {
		if err := CheckPreviewFormat(opts.PreviewFormat); err != nil {
			return nil, err
		}
	}
	if scene.Outer == nil || scene.Inner == nil {
		return nil, fmt.Errorf("pipeline: scene has no meshes")
	}
	return &Context{
		opts:     opts,
		scene:    scene,
		renderer: raster.NewRenderer(opts.RenderSize, opts.RenderSize),
	}, nil
}

// Options returns the options the context was built with.
func (c *Context) Options() Options { return c.opts }

// Process projects src onto a cube, blurs it, packs the strip and renders
// the sky spheres with the strip as their diffuse texture.
func (c *Context) Process(src *pixel.Buffer) *Result {
	cb := cube.Project(src, c.opts.Edge, c.opts.RotZ)
	cb.Blur(c.opts.BlurPasses)
	strip := cb.PackForEngine()

	sky := pixel.NewBuffer(c.opts.RenderSize, c.opts.RenderSize)
	c.renderer.Render(
		raster.Model{Mesh: c.scene.Outer, Diffuse: strip},
		raster.Model{Mesh: c.scene.Inner, Diffuse: strip},
		sky,
	)
	return &Result{Cube: cb, Strip: strip, Sky: sky}
}

// Run loads one panorama, processes it and writes the selected outputs
// into outDir, named after the panorama. It returns the written paths.
func (c *Context) Run(in source.Entry, outDir string) ([]string, error) {
	src, err := source.Load(in.Path)
	if err != nil {
		return nil, err
	}
	res := c.Process(src)
	return c.Write(res, outDir, in.Name)
}

// Write stores the selected outputs of res under outDir/name*.
func (c *Context) Write(res *Result, outDir, name string) ([]string, error) {
	edge := res.Cube.Edge()
	base := filepath.Join(outDir, name)
	var written []string

	steps := []struct {
		bit   Output
		path  string
		write func(io.Writer) error
	}{
		{OutDDS, base + ".dds", func(w io.Writer) error {
			return export.WriteDDS(w, res.Cube.DDSFaces(false), edge)
		}},
		{OutDiffuseDDS, base + "_diffuse.dds", func(w io.Writer) error {
			return export.WriteDDS(w, res.Cube.DDSFaces(true), edge)
		}},
		{OutCross, base + "_cross.hdr", func(w io.Writer) error {
			return export.WriteCross(w, res.Cube.RawFaces(), edge)
		}},
		{OutStrip, base + "_strip.hdr", func(w io.Writer) error {
			return export.WriteHDR(w, res.Strip)
		}},
		{OutSky, base + "_sky.hdr", func(w io.Writer) error {
			return export.WriteHDR(w, res.Sky)
		}},
	}
	for _, s := range steps {
		if c.opts.Outputs&s.bit == 0 {
			continue
		}
		if err := export.WriteFile(s.path, s.write); err != nil {
			return written, fmt.Errorf("pipeline: %s: %w", name, err)
		}
		written = append(written, s.path)
	}

	if c.opts.Outputs&OutPreview != 0 {
		format := c.opts.PreviewFormat
		if format == "" {
			format = "webp"
		}
		path := base + "_sky." + format
		if err := export.WritePreview(path, res.Sky, c.opts.PreviewSize); err != nil {
			return written, fmt.Errorf("pipeline: %s: %w", name, err)
		}
		written = append(written, path)
	}
	return written, nil
}
