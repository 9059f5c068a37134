// Package confuse implements the pixel confusion transforms.
//
// Two modes exist:
//   - A reversible cyclic-offset permutation of pixels along a gilbert
//     space-filling curve (Encrypt / Decrypt).  Decrypt(Encrypt(x)) is
//     byte-identical to x for any dimensions and strength.
//   - A lossy radial block blend (BlockSmooth) that softens the image
//     toward per-tile anchor colours.  It has no inverse.
//
// Performance design:
//   - Double-buffered permutation: output is always a fresh buffer, the
//     input is never written (in-place permutation would corrupt
//     yet-unread source cells)
//   - The curve-index mapping is a bijection, so worker goroutines own
//     disjoint index ranges and write without synchronization
//   - Single-entry curve cache: batch runs over same-sized images
//     generate the curve once
package confuse

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"strings"
	"sync"

	"github.com/Ikaros-521/LX-IMG-Confusion/internal/gilbert"
)

// Mode selects the transform direction.
type Mode int

const (
	// Encrypt scrambles pixels along the curve with a cyclic offset.
	Encrypt Mode = iota
	// Decrypt is the exact structural inverse of Encrypt; it must be
	// given the same strength that was used to encrypt.
	Decrypt
	// BlockSmooth applies the lossy radial block blend.  Not reversible.
	BlockSmooth
)

func (m Mode) String() string {
	switch m {
	case Encrypt:
		return "encrypt"
	case Decrypt:
		return "decrypt"
	case BlockSmooth:
		return "blocksmooth"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode converts a user-facing mode name.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "encrypt":
		return Encrypt, nil
	case "decrypt":
		return Decrypt, nil
	case "blocksmooth", "block-smooth":
		return BlockSmooth, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", s)
	}
}

// BlockSmoothThreshold is the caller-facing routing constant: block sizes
// at or above it send Encrypt/Decrypt requests to the block smoothing
// transform instead of the curve permutation.
const BlockSmoothThreshold = 8

// phi is the golden-ratio fraction (√5−1)/2.  An irrational offset ratio
// avoids low-period cyclic artifacts for any pixel count.
const phi = 0.6180339887498949

// Typed validation failures.  All are detected before any buffer mutation;
// a partially-applied transform is never observable.
var (
	ErrInvalidDimensions = errors.New("confuse: invalid dimensions")
	ErrBufferSize        = errors.New("confuse: buffer size mismatch")
	ErrParameterRange    = errors.New("confuse: parameter out of range")
)

// Options holds the tunable transform parameters.
type Options struct {
	Mode     Mode
	Strength float64 // confusion strength in [0,1]
	// BlockSize controls mode routing: values below BlockSmoothThreshold
	// select the curve permutation, values at or above it select the
	// block smoothing transform.  Must be positive.
	BlockSize int
	// Workers caps transform parallelism.  0 means runtime.NumCPU.
	Workers int
}

// Offset computes the cyclic curve-index offset for n pixels at the given
// strength: round(φ·n·strength) mod n.
func Offset(n int, strength float64) int {
	if n <= 0 {
		return 0
	}
	return int(math.Round(phi*float64(n)*strength)) % n
}

// Apply runs the selected transform over an interleaved RGBA buffer of
// length 4*width*height and returns a freshly allocated result of the
// same length.  The input buffer is never modified.
func Apply(pix []byte, width, height int, opts Options) ([]byte, error) {
	if opts.BlockSize <= 0 {
		return nil, fmt.Errorf("%w: block size %d", ErrParameterRange, opts.BlockSize)
	}
	if opts.Strength < 0 || opts.Strength > 1 || math.IsNaN(opts.Strength) {
		return nil, fmt.Errorf("%w: strength %v", ErrParameterRange, opts.Strength)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if len(pix) != 4*width*height {
		return nil, fmt.Errorf("%w: buffer %d bytes, want %d for %dx%d",
			ErrBufferSize, len(pix), 4*width*height, width, height)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	out := make([]byte, len(pix))

	if opts.Mode == BlockSmooth || opts.BlockSize >= BlockSmoothThreshold {
		copy(out, pix)
		blockSmooth(out, width, height, opts.BlockSize, opts.Strength, workers)
		return out, nil
	}

	curve := curveFor(width, height)
	offset := Offset(width*height, opts.Strength)
	permute(out, pix, curve, width, offset, opts.Mode == Decrypt, workers)
	return out, nil
}

// parallelMinPixels is the cutover below which the permutation runs on the
// calling goroutine; spawning workers for small images costs more than the
// copy itself.
const parallelMinPixels = 1 << 16

// permute applies the cyclic-offset permutation over curve indices.
// Encrypt moves the pixel at curve[i] to curve[(i+offset) mod n]; decrypt
// performs the structural inverse.  Both directions walk the same fixed
// curve, which is what makes the round-trip exact.
func permute(dst, src []byte, curve []gilbert.Point, width, offset int, decrypt bool, workers int) {
	n := len(curve)
	if n == 0 {
		return
	}

	if workers <= 1 || n < parallelMinPixels {
		permuteRange(dst, src, curve, width, offset, decrypt, 0, n)
		return
	}

	// The index mapping is a bijection: disjoint source ranges land on
	// disjoint destination cells, so workers share dst without locks.
	var wg sync.WaitGroup
	chunk := (n + workers - 1) / workers
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			permuteRange(dst, src, curve, width, offset, decrypt, lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}

func permuteRange(dst, src []byte, curve []gilbert.Point, width, offset int, decrypt bool, lo, hi int) {
	n := len(curve)
	for i := lo; i < hi; i++ {
		a := curve[i]
		b := curve[(i+offset)%n]
		ai := (a.Y*width + a.X) * 4
		bi := (b.Y*width + b.X) * 4

		if decrypt {
			ai, bi = bi, ai
		}
		dst[bi] = src[ai]
		dst[bi+1] = src[ai+1]
		dst[bi+2] = src[ai+2]
		dst[bi+3] = src[ai+3]
	}
}

// ─── curve cache ─────────────────────────────────────────────
// Generate is pure, so memoizing by (width, height) is safe.  A single
// entry covers the common batch case of many same-sized images.

var curveCache struct {
	sync.Mutex
	width, height int
	curve         []gilbert.Point
}

// curveFor returns a shared, read-only curve for the given grid.
func curveFor(width, height int) []gilbert.Point {
	curveCache.Lock()
	defer curveCache.Unlock()
	if curveCache.width == width && curveCache.height == height && curveCache.curve != nil {
		return curveCache.curve
	}
	c := gilbert.Generate(width, height)
	curveCache.width, curveCache.height = width, height
	curveCache.curve = c
	return c
}
