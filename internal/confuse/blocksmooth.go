package confuse

import (
	"math"
	"sync"
)

// blockSmooth rewrites pix in place with the radial block blend.  The grid
// is partitioned into blockSize×blockSize tiles (edge tiles clipped); each
// pixel's RGB is pulled toward the tile's anchor colour — the centre pixel
// value captured before any write within that tile — weighted by distance
// from the tile centre.  Alpha is untouched.
//
// This is a one-way visual softening, not a permutation: there is no
// defined inverse, and repeated application keeps converging toward the
// anchor colours.
func blockSmooth(pix []byte, width, height, blockSize int, strength float64, workers int) {
	tilesY := (height + blockSize - 1) / blockSize

	if workers <= 1 || width*height < parallelMinPixels {
		for ty := 0; ty < tilesY; ty++ {
			smoothTileRow(pix, width, height, blockSize, strength, ty)
		}
		return
	}

	// Tiles never overlap, so tile rows can be smoothed concurrently.
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	for ty := 0; ty < tilesY; ty++ {
		wg.Add(1)
		go func(ty int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			smoothTileRow(pix, width, height, blockSize, strength, ty)
		}(ty)
	}
	wg.Wait()
}

func smoothTileRow(pix []byte, width, height, blockSize int, strength float64, ty int) {
	y0 := ty * blockSize
	ch := height - y0
	if ch > blockSize {
		ch = blockSize
	}
	for x0 := 0; x0 < width; x0 += blockSize {
		cw := width - x0
		if cw > blockSize {
			cw = blockSize
		}
		smoothTile(pix, width, x0, y0, cw, ch, strength)
	}
}

func smoothTile(pix []byte, width, x0, y0, cw, ch int, strength float64) {
	// Geometric centre of the clipped tile and the distance to its
	// farthest corner.  A 1×1 tile has nothing to blend.
	cx := float64(cw-1) / 2
	cy := float64(ch-1) / 2
	maxDist := math.Sqrt(cx*cx + cy*cy)
	if maxDist == 0 {
		return
	}

	// Anchor: the centre pixel's original value, captured before any
	// write in this tile.
	ai := ((y0+ch/2)*width + x0 + cw/2) * 4
	ar := float64(pix[ai])
	ag := float64(pix[ai+1])
	ab := float64(pix[ai+2])

	for dy := 0; dy < ch; dy++ {
		off := ((y0+dy)*width + x0) * 4
		fy := float64(dy) - cy
		for dx := 0; dx < cw; dx++ {
			fx := float64(dx) - cx
			dist := math.Sqrt(fx*fx + fy*fy)

			f := 1 - (dist/maxDist)*strength
			if f < 0 {
				f = 0
			} else if f > 1 {
				f = 1
			}

			pix[off] = blend(pix[off], ar, f)
			pix[off+1] = blend(pix[off+1], ag, f)
			pix[off+2] = blend(pix[off+2], ab, f)
			off += 4
		}
	}
}

func blend(cur byte, anchor, f float64) byte {
	v := float64(cur)*f + anchor*(1-f)
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return byte(v + 0.5)
}
