package pipeline

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/Ikaros-521/LX-IMG-Confusion/internal/codec"
	"github.com/Ikaros-521/LX-IMG-Confusion/internal/confuse"
	"github.com/Ikaros-521/LX-IMG-Confusion/internal/hasher"
	"github.com/Ikaros-521/LX-IMG-Confusion/internal/manifest"
	"github.com/disintegration/imaging"
)

// processResult holds the result of processing a single source image.
type processResult struct {
	key      string
	asset    manifest.Asset
	err      error
	fallback bool // output format was substituted to stay lossless
}

// processImage handles a single source image: decode, transform, encode.
func processImage(src Source, cfg Config, registry *codec.Registry) processResult {
	result := processResult{key: src.Key}

	img, _, err := codec.DecodeFile(src.AbsPath)
	if err != nil {
		result.err = fmt.Errorf("%s: %w", src.RelPath, err)
		return result
	}

	// Downscale before encrypting when a width cap is set; the restored
	// image then matches the downscaled original, not the full-size one.
	if cfg.MaxWidth > 0 && cfg.Mode == confuse.Encrypt && img.Rect.Dx() > cfg.MaxWidth {
		img = imaging.Resize(img, cfg.MaxWidth, 0, imaging.Lanczos)
	}

	w := img.Rect.Dx()
	h := img.Rect.Dy()

	out, err := confuse.Apply(img.Pix, w, h, confuse.Options{
		Mode:      cfg.Mode,
		Strength:  cfg.Strength,
		BlockSize: cfg.BlockSize,
		Workers:   1, // file-level parallelism already saturates the CPU
	})
	if err != nil {
		result.err = fmt.Errorf("%s: transform: %w", src.RelPath, err)
		return result
	}
	outImg := &image.NRGBA{Pix: out, Stride: 4 * w, Rect: image.Rect(0, 0, w, h)}

	// Block-routed requests are not reversible; everything else that
	// scrambles pixels must survive a pixel-exact encode.
	effMode := cfg.Mode
	if cfg.BlockSize >= confuse.BlockSmoothThreshold {
		effMode = confuse.BlockSmooth
	}
	reversible := effMode == confuse.Encrypt

	enc, fellBack := registry.Resolve(cfg.Format, reversible && !cfg.ForceLossy)
	if enc == nil {
		result.err = fmt.Errorf("%s: no encoder for format %q", src.RelPath, cfg.Format)
		return result
	}
	result.fallback = fellBack
	// A lossy encode cannot be restored pixel-exactly, no matter the mode.
	if !enc.Lossless() {
		reversible = false
	}

	data, err := enc.Encode(outImg, cfg.Quality)
	if err != nil {
		result.err = fmt.Errorf("%s: encode %s: %w", src.RelPath, enc.Format(), err)
		return result
	}

	contentHash := hasher.ContentHash(data, 16)

	// Ensure output subdirectory exists.
	keyDir := filepath.Dir(src.Key)
	if keyDir != "." {
		os.MkdirAll(filepath.Join(cfg.OutputDir, keyDir), 0o755)
	}

	// Build filename: key.mode.hash.ext
	fileName := fmt.Sprintf("%s.%s.%s.%s",
		filepath.Base(src.Key), effMode, contentHash[:8], enc.Extension())
	relPath := filepath.ToSlash(filepath.Join(keyDir, fileName))

	outPath := filepath.Join(cfg.OutputDir, relPath)
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		result.err = fmt.Errorf("write %s: %w", relPath, err)
		return result
	}

	result.asset = manifest.Asset{
		Original: manifest.OriginalInfo{
			Width:    w,
			Height:   h,
			Format:   src.Format,
			Size:     src.Size,
			HasAlpha: hasAlpha(img),
		},
		Transform: manifest.TransformInfo{
			Mode:       effMode.String(),
			Strength:   cfg.Strength,
			BlockSize:  cfg.BlockSize,
			PixelCount: w * h,
			Offset:     confuse.Offset(w*h, cfg.Strength),
			Reversible: reversible,
		},
		Output: manifest.Output{
			Format: enc.Format(),
			Width:  w,
			Height: h,
			Size:   int64(len(data)),
			Hash:   contentHash,
			Path:   relPath,
		},
	}
	return result
}

// hasAlpha reports whether any pixel is not fully opaque.
func hasAlpha(img *image.NRGBA) bool {
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] < 255 {
			return true
		}
	}
	return false
}
