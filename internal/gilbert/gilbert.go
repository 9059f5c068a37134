// Package gilbert generates generalized Hilbert ("gilbert") space-filling
// curves for arbitrary rectangular grids, including non-square and
// non-power-of-two sizes.
//
// The curve visits every cell of a W×H grid exactly once, and consecutive
// cells are always 4-connected neighbours.  That locality is what makes a
// pixel permutation along the curve look like contiguous scrambling instead
// of white noise.
//
// Generation is deterministic, pure, and allocation-light: a single []Point
// of length W*H per call.  Recursion depth is O(log(max(W,H))).
package gilbert

import "fmt"

// Point is one cell of the grid.
type Point struct {
	X, Y int
}

// Generate returns the curve for a width×height grid.  The result has
// length width*height; each cell appears exactly once and consecutive
// entries differ by one unit step in one axis.  Non-positive dimensions
// yield a nil curve (a zero-area grid is a valid degenerate case).
func Generate(width, height int) []Point {
	if width <= 0 || height <= 0 {
		return nil
	}

	g := &generator{pts: make([]Point, 0, width*height)}

	// Map the longer side to the major axis so the first split is
	// consistent regardless of orientation.
	if width >= height {
		g.fill(0, 0, width, 0, 0, height)
	} else {
		g.fill(0, 0, 0, height, width, 0)
	}
	return g.pts
}

type generator struct {
	pts []Point
}

// fill emits the curve for the sub-rectangle anchored at (x, y) spanned by
// the major axis vector (ax, ay) and the orthogonal vector (bx, by).
func (g *generator) fill(x, y, ax, ay, bx, by int) {
	w := abs(ax + ay)
	h := abs(bx + by)

	// Unit steps along each axis.
	dax, day := sign(ax), sign(ay)
	dbx, dby := sign(bx), sign(by)

	if h == 1 {
		// Single row: straight fill along the major axis.
		for i := 0; i < w; i++ {
			g.pts = append(g.pts, Point{x, y})
			x += dax
			y += day
		}
		return
	}
	if w == 1 {
		// Single column: straight fill along the orthogonal axis.
		for i := 0; i < h; i++ {
			g.pts = append(g.pts, Point{x, y})
			x += dbx
			y += dby
		}
		return
	}

	// Halve both axes, truncating toward zero.
	ax2, ay2 := ax/2, ay/2
	bx2, by2 := bx/2, by/2
	w2 := abs(ax2 + ay2)
	h2 := abs(bx2 + by2)

	if 2*w > 3*h {
		// Too wide for a U-turn: split the major axis in two.
		if w2%2 != 0 && w > 2 {
			// Prefer an even-length first half to avoid degenerate slivers.
			ax2 += dax
			ay2 += day
		}
		g.fill(x, y, ax2, ay2, bx, by)
		g.fill(x+ax2, y+ay2, ax-ax2, ay-ay2, bx, by)
		return
	}

	// Standard Hilbert U: corner, long middle, far corner with both axes
	// negated.  Axis swaps keep sub-curve endpoints grid-adjacent.
	if h2%2 != 0 && h > 2 {
		bx2 += dbx
		by2 += dby
	}
	g.fill(x, y, bx2, by2, ax2, ay2)
	g.fill(x+bx2, y+by2, ax, ay, bx-bx2, by-by2)
	g.fill(x+(ax-dax)+(bx2-dbx), y+(ay-day)+(by2-dby),
		-bx2, -by2, -(ax-ax2), -(ay-ay2))
}

// Verify checks the curve invariants for a width×height grid: full
// coverage (every cell exactly once, all in bounds) and 4-connected
// adjacency between consecutive entries.  Returns nil when the curve is
// a valid traversal.
func Verify(curve []Point, width, height int) error {
	if width <= 0 || height <= 0 {
		if len(curve) != 0 {
			return fmt.Errorf("gilbert: %d points for a zero-area grid", len(curve))
		}
		return nil
	}
	n := width * height
	if len(curve) != n {
		return fmt.Errorf("gilbert: curve length %d, want %d", len(curve), n)
	}

	seen := make([]bool, n)
	for i, p := range curve {
		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			return fmt.Errorf("gilbert: point %d (%d,%d) out of bounds %dx%d",
				i, p.X, p.Y, width, height)
		}
		idx := p.Y*width + p.X
		if seen[idx] {
			return fmt.Errorf("gilbert: cell (%d,%d) visited twice (index %d)", p.X, p.Y, i)
		}
		seen[idx] = true

		if i > 0 {
			prev := curve[i-1]
			if abs(p.X-prev.X)+abs(p.Y-prev.Y) != 1 {
				return fmt.Errorf("gilbert: points %d and %d not adjacent: (%d,%d) → (%d,%d)",
					i-1, i, prev.X, prev.Y, p.X, p.Y)
			}
		}
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
