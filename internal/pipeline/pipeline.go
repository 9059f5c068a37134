// Package pipeline orchestrates batch confusion runs: scan an input tree
// for images, transform each one in parallel, and record the exact
// parameters in a manifest so encrypted assets can be restored later.
package pipeline

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/Ikaros-521/LX-IMG-Confusion/internal/codec"
	"github.com/Ikaros-521/LX-IMG-Confusion/internal/confuse"
	"github.com/Ikaros-521/LX-IMG-Confusion/internal/manifest"
)

// Config holds all parameters for a pipeline run.
type Config struct {
	InputPath   string
	OutputDir   string
	Mode        confuse.Mode
	Strength    float64
	BlockSize   int
	Format      string // requested output format
	Quality     int
	MaxWidth    int  // downscale cap before encrypting (0 = keep)
	ForceLossy  bool // allow lossy formats for encrypted output (not restorable)
	Workers     int
	Verbose     bool
	ProfileName string
}

// Pipeline orchestrates image transformation.
type Pipeline struct {
	cfg      Config
	registry *codec.Registry
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Pipeline{
		cfg:      cfg,
		registry: codec.NewRegistry(),
	}
}

// Run executes the full pipeline and returns the manifest.
func (p *Pipeline) Run() (*manifest.Manifest, error) {
	if p.cfg.Verbose {
		fmt.Fprintf(os.Stderr, "[lximg] %s\n", p.registry.String())
	}

	// Step 1: Scan for images.
	sources, err := ScanImages(p.cfg.InputPath)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %s", p.cfg.InputPath)
	}

	if p.cfg.Verbose {
		fmt.Fprintf(os.Stderr, "[lximg] found %d images\n", len(sources))
	}

	// Step 2: Transform images in parallel.
	results := make([]processResult, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	for i, src := range sources {
		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			if p.cfg.Verbose {
				fmt.Fprintf(os.Stderr, "[lximg] processing: %s\n", s.Key)
			}

			results[idx] = processImage(s, p.cfg, p.registry)

			if p.cfg.Verbose && results[idx].err == nil {
				fmt.Fprintf(os.Stderr, "[lximg] done: %s → %s\n",
					s.Key, results[idx].asset.Output.Path)
			}
		}(i, src)
	}
	wg.Wait()

	// Step 3: Collect results into manifest.
	m := manifest.New(p.cfg.Mode.String(), p.cfg.ProfileName)

	var errs []error
	var fallbacks int
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		m.Assets[r.key] = r.asset
		if r.fallback {
			fallbacks++
		}
	}

	if fallbacks > 0 {
		fmt.Fprintf(os.Stderr,
			"[lximg] note: %d outputs forced to png to keep them restorable (requested %q is lossy)\n",
			fallbacks, p.cfg.Format)
	}

	// Report errors but don't fail the entire run for partial failures.
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "[lximg] error: %v\n", e)
		}
		if len(errs) == len(sources) {
			return nil, fmt.Errorf("all %d images failed to process", len(errs))
		}
		fmt.Fprintf(os.Stderr, "[lximg] warning: %d of %d images had errors\n",
			len(errs), len(sources))
	}

	m.RunInfo = &manifest.RunInfo{Workers: p.cfg.Workers}
	m.ComputeStats()
	return m, nil
}
