package confuse

import (
	"bytes"
	"testing"
)

func applySmooth(t *testing.T, pix []byte, w, h, block int, strength float64) []byte {
	t.Helper()
	out, err := Apply(pix, w, h, Options{Mode: BlockSmooth, Strength: strength, BlockSize: block, Workers: 1})
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func TestBlockSmoothChangesPixels(t *testing.T) {
	pix := makePix(32, 32)
	out := applySmooth(t, pix, 32, 32, 8, 1)
	if bytes.Equal(out, pix) {
		t.Error("block blend with strength 1 left a gradient image unchanged")
	}
}

func TestBlockSmoothAlphaUntouched(t *testing.T) {
	pix := makePix(33, 17) // clipped edge tiles included
	out := applySmooth(t, pix, 33, 17, 8, 1)
	for i := 3; i < len(pix); i += 4 {
		if out[i] != pix[i] {
			t.Fatalf("alpha modified at byte %d: %d → %d", i, pix[i], out[i])
		}
	}
}

func TestBlockSmoothZeroStrengthIdentity(t *testing.T) {
	pix := makePix(20, 20)
	out := applySmooth(t, pix, 20, 20, 10, 0)
	if !bytes.Equal(out, pix) {
		t.Error("zero strength should be the identity")
	}
}

func TestBlockSmoothUniformImageFixed(t *testing.T) {
	// Every pixel already equals the anchor colour, so blending toward
	// it is a no-op.
	pix := make([]byte, 4*16*16)
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = 90, 120, 200, 255
	}
	out := applySmooth(t, pix, 16, 16, 8, 1)
	if !bytes.Equal(out, pix) {
		t.Error("uniform image should be a fixed point of the blend")
	}
}

// TestBlockSmoothNotInvertible documents that the blend is one-way: it is
// not an involution, and no inverse operation exists.  The check asserts
// the documented behaviour instead of attempting a round trip.
func TestBlockSmoothNotInvertible(t *testing.T) {
	pix := makePix(32, 32)
	once := applySmooth(t, pix, 32, 32, 8, 1)
	twice := applySmooth(t, once, 32, 32, 8, 1)

	if bytes.Equal(twice, pix) {
		t.Error("applying the blend twice restored the original; it must be lossy")
	}
	if bytes.Equal(twice, once) {
		t.Error("second application was a no-op; the blend should keep converging")
	}
}

func TestBlockSmoothParallelMatchesSerial(t *testing.T) {
	const w, h = 320, 240
	pix := makePix(w, h)

	serial, err := Apply(pix, w, h, Options{Mode: BlockSmooth, Strength: 0.9, BlockSize: 16, Workers: 1})
	if err != nil {
		t.Fatal(err)
	}
	parallel, err := Apply(pix, w, h, Options{Mode: BlockSmooth, Strength: 0.9, BlockSize: 16, Workers: 8})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(serial, parallel) {
		t.Error("parallel blend differs from serial")
	}
}
