package codec

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
)

// Atomic counter for unique temp file names across goroutines.
var tempCounter atomic.Int64

// WebPEncoder encodes images to lossless WebP by shelling out to cwebp.
// This approach avoids CGO while still producing compact output.  Lossless
// mode is mandatory: lossy WebP would make a scrambled image unrecoverable.
// Install: brew install webp / apt install webp
type WebPEncoder struct {
	once      sync.Once
	available bool
	cwebpPath string
}

func (e *WebPEncoder) Format() string    { return "webp" }
func (e *WebPEncoder) Extension() string { return "webp" }
func (e *WebPEncoder) Lossless() bool    { return true }

func (e *WebPEncoder) Available() bool {
	e.once.Do(func() {
		path, err := exec.LookPath("cwebp")
		if err == nil {
			e.available = true
			e.cwebpPath = path
		}
	})
	return e.available
}

func (e *WebPEncoder) Encode(img image.Image, quality int) ([]byte, error) {
	if !e.Available() {
		return nil, fmt.Errorf("cwebp not found in PATH; install with: brew install webp")
	}

	// Map quality 1-100 to the lossless effort level 0-9 (higher = smaller
	// but slower).  Pixel-exactness is unaffected either way.
	if quality <= 0 || quality > 100 {
		quality = 75
	}
	effort := quality * 9 / 100

	// Write source as PNG to temp file (cwebp reads files).
	// Use atomic counter to ensure unique filenames across goroutines.
	id := tempCounter.Add(1)
	srcFile, err := os.CreateTemp("", fmt.Sprintf("lximg_src_%d_*.png", id))
	if err != nil {
		return nil, fmt.Errorf("create temp: %w", err)
	}
	srcPath := srcFile.Name()
	dstFile, err := os.CreateTemp("", fmt.Sprintf("lximg_dst_%d_*.webp", id))
	if err != nil {
		srcFile.Close()
		os.Remove(srcPath)
		return nil, fmt.Errorf("create temp: %w", err)
	}
	dstPath := dstFile.Name()
	dstFile.Close()
	defer os.Remove(srcPath)
	defer os.Remove(dstPath)

	if err := png.Encode(srcFile, img); err != nil {
		srcFile.Close()
		return nil, fmt.Errorf("encode temp png: %w", err)
	}
	srcFile.Close()

	cmd := exec.Command(e.cwebpPath,
		"-lossless",
		"-z", fmt.Sprintf("%d", effort),
		"-mt",
		"-quiet",
		srcPath,
		"-o", dstPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("cwebp: %w: %s", err, string(out))
	}

	return os.ReadFile(dstPath)
}
