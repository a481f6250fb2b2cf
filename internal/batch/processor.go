package batch

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"hdr-cubemap/internal/pipeline"
	"hdr-cubemap/internal/source"
)

// Config holds all shared resources for a batch run.
type Config struct {
	Options   pipeline.Options
	Scene     pipeline.Scene // read-only, shared by every worker
	OutputDir string
	Workers   int
	Progress  io.Writer     // periodic progress lines; nil disables them
	Interval  time.Duration // progress period, 2s when zero
}

// Result holds the outcome of processing one panorama.
type Result struct {
	Name    string
	Source  string
	Outputs []string
	Success bool
	Error   string
}

// Run processes all entries using a worker pool. Each worker owns its own
// pipeline context; results keep the order of entries.
func Run(cfg Config, entries []source.Entry) ([]Result, error) {
	// Fail fast on options no worker could use.
	if _, err := pipeline.NewContext(cfg.Options, cfg.Scene); err != nil {
		return nil, err
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	total := len(entries)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	var reporter sync.WaitGroup
	if cfg.Progress != nil {
		interval := cfg.Interval
		if interval <= 0 {
			interval = 2 * time.Second
		}
		reporter.Add(1)
		go func() {
			defer reporter.Done()
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						elapsed := time.Since(start).Seconds()
						rate := float64(p) / elapsed
						fmt.Fprintf(cfg.Progress, "  [%d/%d] %.2f panoramas/sec\n", p, total, rate)
					}
				}
			}
		}()
	}

	// Worker pool
	jobs := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx, _ := pipeline.NewContext(cfg.Options, cfg.Scene)
			for idx := range jobs {
				results[idx] = processEntry(ctx, cfg.OutputDir, entries[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range entries {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	close(done)
	reporter.Wait()

	return results, nil
}

func processEntry(ctx *pipeline.Context, outDir string, e source.Entry) Result {
	written, err := ctx.Run(e, outDir)
	if err != nil {
		return Result{
			Name:    e.Name,
			Source:  e.Path,
			Outputs: written,
			Error:   err.Error(),
		}
	}
	return Result{
		Name:    e.Name,
		Source:  e.Path,
		Outputs: written,
		Success: true,
	}
}
