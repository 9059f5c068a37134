package pipeline

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/Ikaros-521/LX-IMG-Confusion/internal/codec"
	"github.com/Ikaros-521/LX-IMG-Confusion/internal/confuse"
	"github.com/Ikaros-521/LX-IMG-Confusion/internal/hasher"
	"github.com/Ikaros-521/LX-IMG-Confusion/internal/manifest"
)

// RestoreConfig drives a manifest-based restore run.
type RestoreConfig struct {
	ManifestPath string
	OutputDir    string
	Format       string // "" = original source format
	Quality      int
	Workers      int
	Verbose      bool
	SkipVerify   bool // skip content-hash verification of scrambled files
}

// RestoreReport summarizes a restore run.
type RestoreReport struct {
	Restored int
	Skipped  int // block-smoothed assets, which have no inverse
	Failed   int
}

// Restore decrypts every reversible asset recorded in an encrypt manifest,
// reusing the exact strength each file was scrambled with.  The manifest
// is what guarantees the round trip: the user never re-enters parameters.
func Restore(cfg RestoreConfig) (*RestoreReport, error) {
	m, err := manifest.ReadJSON(cfg.ManifestPath)
	if err != nil {
		return nil, err
	}
	if m.Mode != confuse.Encrypt.String() {
		return nil, fmt.Errorf("manifest records a %q run; only encrypt runs can be restored", m.Mode)
	}

	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	baseDir := filepath.Dir(cfg.ManifestPath)
	registry := codec.NewRegistry()

	type job struct {
		key   string
		asset manifest.Asset
	}
	jobs := make([]job, 0, len(m.Assets))
	for key, a := range m.Assets {
		jobs = append(jobs, job{key, a})
	}

	report := &RestoreReport{}
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, cfg.Workers)

	for _, j := range jobs {
		wg.Add(1)
		go func(j job) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			err := restoreAsset(j.key, j.asset, baseDir, cfg, registry)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == errNotReversible:
				report.Skipped++
				if cfg.Verbose {
					fmt.Fprintf(os.Stderr, "[lximg] skip: %s (block blend, no inverse)\n", j.key)
				}
			case err != nil:
				report.Failed++
				fmt.Fprintf(os.Stderr, "[lximg] error: %s: %v\n", j.key, err)
			default:
				report.Restored++
				if cfg.Verbose {
					fmt.Fprintf(os.Stderr, "[lximg] restored: %s\n", j.key)
				}
			}
		}(j)
	}
	wg.Wait()

	if report.Restored == 0 && report.Failed > 0 {
		return report, fmt.Errorf("all %d restorable assets failed", report.Failed)
	}
	return report, nil
}

var errNotReversible = fmt.Errorf("asset is not reversible")

func restoreAsset(key string, a manifest.Asset, baseDir string, cfg RestoreConfig, registry *codec.Registry) error {
	if !a.Transform.Reversible {
		return errNotReversible
	}

	srcPath := filepath.Join(baseDir, filepath.FromSlash(a.Output.Path))
	if !cfg.SkipVerify {
		if err := hasher.VerifyFile(srcPath, a.Output.Hash); err != nil {
			return fmt.Errorf("verify: %w", err)
		}
	}

	img, _, err := codec.DecodeFile(srcPath)
	if err != nil {
		return err
	}
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w != a.Output.Width || h != a.Output.Height {
		return fmt.Errorf("dimensions %dx%d do not match manifest %dx%d",
			w, h, a.Output.Width, a.Output.Height)
	}

	pix, err := confuse.Apply(img.Pix, w, h, confuse.Options{
		Mode:      confuse.Decrypt,
		Strength:  a.Transform.Strength,
		BlockSize: a.Transform.BlockSize,
		Workers:   1,
	})
	if err != nil {
		return fmt.Errorf("decrypt: %w", err)
	}
	restored := &image.NRGBA{Pix: pix, Stride: 4 * w, Rect: image.Rect(0, 0, w, h)}

	format := cfg.Format
	if format == "" {
		format = a.Original.Format
	}
	enc := registry.Get(format)
	if enc == nil {
		enc = registry.Get("png")
	}

	data, err := enc.Encode(restored, cfg.Quality)
	if err != nil {
		return fmt.Errorf("encode %s: %w", enc.Format(), err)
	}

	keyDir := filepath.Dir(key)
	if keyDir != "." {
		os.MkdirAll(filepath.Join(cfg.OutputDir, filepath.FromSlash(keyDir)), 0o755)
	}
	name := fmt.Sprintf("%s.restored.%s", filepath.Base(key), enc.Extension())
	outPath := filepath.Join(cfg.OutputDir, filepath.FromSlash(keyDir), name)
	return os.WriteFile(outPath, data, 0o644)
}
