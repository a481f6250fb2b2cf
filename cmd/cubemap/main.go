package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"hdr-cubemap/internal/batch"
	"hdr-cubemap/internal/config"
	"hdr-cubemap/internal/pipeline"
	"hdr-cubemap/internal/source"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	input := flag.String("input", "", "Panorama file or directory of panoramas")
	outputDir := flag.String("output", "", "Output directory (default: <input>/cubemaps)")
	edge := flag.Int("edge", 0, "Cube face edge in pixels (default: 512)")
	blur := flag.Int("blur", -1, "Blur passes (default: 5)")
	renderSize := flag.Int("render", 0, "Sky render size in pixels (default: 1024)")
	preview := flag.String("preview", "", "Preview format: webp or tga (default: webp)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	testN := flag.Int("test", 0, "Process only the first N panoramas")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		InputDir:      *input,
		OutputDir:     *outputDir,
		Edge:          *edge,
		BlurPasses:    *blur,
		RenderSize:    *renderSize,
		PreviewFormat: *preview,
		Workers:       *workers,
	})

	if cfg.InputDir == "" {
		fmt.Fprintln(os.Stderr, "Error: no input. Use -input flag or config.json.")
		os.Exit(1)
	}

	entries, outDir, err := collect(cfg.InputDir, *outputDir, cfg.OutputDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning input: %v\n", err)
		os.Exit(1)
	}

	// Limit for testing
	if *testN > 0 && *testN < len(entries) {
		entries = entries[:*testN]
	}

	if len(entries) == 0 {
		fmt.Println("No panoramas to process.")
		os.Exit(0)
	}

	opts, err := cfg.PipelineOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	scene, err := pipeline.LoadScene(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading sky meshes: %v\n", err)
		os.Exit(1)
	}

	// Print summary
	mode := ""
	if *testN > 0 {
		mode = fmt.Sprintf(" (TEST: first %d)", *testN)
	}

	fmt.Printf("HDR panorama → cubemap%s\n", mode)
	fmt.Printf("Panoramas: %d, Workers: %d\n", len(entries), cfg.Workers)
	fmt.Printf("Edge: %d, Blur: %d, Render: %d\n", opts.Edge, opts.BlurPasses, opts.RenderSize)
	fmt.Printf("Output: %s\n", outDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results, err := batch.Run(batch.Config{
		Options:   opts,
		Scene:     scene,
		OutputDir: outDir,
		Workers:   cfg.Workers,
		Progress:  os.Stdout,
	}, entries)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Converted: %d/%d\n", success, len(entries))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := min(20, len(errors))
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.Name, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(outDir, "manifest.json")
	if err := os.MkdirAll(outDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: output dir: %v\n", err)
	} else if err := batch.WriteManifest(manifestPath, opts.Edge, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

// collect turns the input path into entries. A single file is processed on
// its own and, without an explicit -output, writes next to itself.
func collect(input, explicitOut, resolvedOut string) ([]source.Entry, string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, "", err
	}
	if info.IsDir() {
		entries, err := source.Scan(input, resolvedOut)
		return entries, resolvedOut, err
	}

	ext := strings.ToLower(filepath.Ext(input))
	if _, ok := source.Extensions[ext]; !ok {
		return nil, "", fmt.Errorf("%s: unsupported extension %q", input, ext)
	}
	out := explicitOut
	if out == "" {
		out = filepath.Dir(input)
	}
	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return []source.Entry{{Path: input, Name: name, Ext: ext}}, out, nil
}
