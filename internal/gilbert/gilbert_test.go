package gilbert

import "testing"

// TestConcreteVectors pins the exact traversal for the degenerate and
// smallest non-trivial grids.  These are load-bearing: the permutation
// round-trip depends on encrypt and decrypt agreeing on this ordering.
func TestConcreteVectors(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		expect []Point
	}{
		{"row_4x1", 4, 1, []Point{{0, 0}, {1, 0}, {2, 0}, {3, 0}}},
		{"col_1x4", 1, 4, []Point{{0, 0}, {0, 1}, {0, 2}, {0, 3}}},
		{"square_2x2", 2, 2, []Point{{0, 0}, {0, 1}, {1, 1}, {1, 0}}},
		{"single_1x1", 1, 1, []Point{{0, 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.w, tt.h)
			if len(got) != len(tt.expect) {
				t.Fatalf("length: got %d, want %d", len(got), len(tt.expect))
			}
			for i := range got {
				if got[i] != tt.expect[i] {
					t.Errorf("point %d: got (%d,%d), want (%d,%d)",
						i, got[i].X, got[i].Y, tt.expect[i].X, tt.expect[i].Y)
				}
			}
		})
	}
}

func TestDegenerateDimensions(t *testing.T) {
	for _, d := range [][2]int{{0, 0}, {0, 5}, {5, 0}, {-1, 4}, {4, -1}} {
		if got := Generate(d[0], d[1]); got != nil {
			t.Errorf("Generate(%d,%d): got %d points, want nil", d[0], d[1], len(got))
		}
	}
}

// TestCoverageAndLocality sweeps a grid of sizes, including primes, strips,
// and extreme aspect ratios, and checks the two core invariants: every cell
// visited exactly once, and Manhattan distance 1 between neighbours.
func TestCoverageAndLocality(t *testing.T) {
	sizes := [][2]int{
		{1, 1}, {1, 2}, {2, 1}, {2, 2}, {2, 3}, {3, 2}, {3, 3},
		{4, 4}, {5, 5}, {7, 3}, {3, 7}, {8, 8}, {16, 16},
		{13, 17}, {17, 13}, {1, 100}, {100, 1}, {2, 99}, {99, 2},
		{31, 9}, {9, 31}, {64, 48}, {37, 23}, {101, 103},
		{200, 3}, {3, 200}, {256, 256}, {250, 250},
	}

	for _, s := range sizes {
		w, h := s[0], s[1]
		curve := Generate(w, h)
		if err := Verify(curve, w, h); err != nil {
			t.Errorf("%dx%d: %v", w, h, err)
		}
	}
}

func TestDeterministic(t *testing.T) {
	a := Generate(53, 41)
	b := Generate(53, 41)
	if len(a) != len(b) {
		t.Fatalf("length mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

// TestOrientationSymmetry: a W×H curve and an H×W curve are transposes of
// each other, since the longer side always maps to the major axis.
func TestOrientationSymmetry(t *testing.T) {
	a := Generate(12, 7)
	b := Generate(7, 12)
	if len(a) != len(b) {
		t.Fatalf("length mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].X != b[i].Y || a[i].Y != b[i].X {
			t.Fatalf("point %d: %v is not the transpose of %v", i, a[i], b[i])
		}
	}
}

func TestVerifyRejectsBrokenCurves(t *testing.T) {
	good := Generate(4, 4)

	short := good[:len(good)-1]
	if err := Verify(short, 4, 4); err == nil {
		t.Error("short curve accepted")
	}

	dup := make([]Point, len(good))
	copy(dup, good)
	dup[3] = dup[2]
	if err := Verify(dup, 4, 4); err == nil {
		t.Error("duplicate cell accepted")
	}

	jump := make([]Point, len(good))
	copy(jump, good)
	jump[1], jump[2] = jump[2], jump[1]
	if err := Verify(jump, 4, 4); err == nil {
		t.Error("non-adjacent step accepted")
	}

	oob := make([]Point, len(good))
	copy(oob, good)
	oob[0] = Point{-1, 0}
	if err := Verify(oob, 4, 4); err == nil {
		t.Error("out-of-bounds cell accepted")
	}
}
