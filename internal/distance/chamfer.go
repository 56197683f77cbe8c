// Package distance implements the single-pass (two half-passes) chamfer
// distance transform used by the feather blender's optional smooth
// falloff (component C4).
package distance

import (
	"math"

	"github.com/blendkit/pyramid/raster"
)

const (
	axial    = 1.0
	diagonal = 1.4
	knight   = axial + diagonal // 2.4, the two extra knight-move neighbors
)

// Chamfer computes a two-pass chamfer approximation of the Euclidean
// distance transform on an 8-bit single-channel mask: every masked-out
// pixel (value 0) stays zero, and every masked-in pixel receives a
// monotonically increasing distance to the nearest masked-out pixel,
// saturated to uint8 by truncation. Used as a feather blend weight, this
// gives full confidence deep inside a mask's interior and fades smoothly
// to zero at its boundary, instead of the hard step a raw mask gives.
//
// This is the one kernel in the core that is not dispatched through
// internal/workpool: each pass has a strict raster-scan data dependency
// (every cell depends on already-visited neighbors), so there is no
// disjoint row partitioning available the way there is for convolution.
func Chamfer(mask raster.U8) raster.U8 {
	w, h := mask.Width, mask.Height
	d := make([]float64, w*h)
	idx := func(x, y int) int { return y*w + x }

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mask.Get(x, y, 0) == 0 {
				d[idx(x, y)] = 0
			} else {
				d[idx(x, y)] = 255
			}
		}
	}

	at := func(x, y int) float64 {
		if x < 0 || x >= w || y < 0 || y >= h {
			return math.Inf(1)
		}
		return d[idx(x, y)]
	}

	// Forward pass: top-left to bottom-right.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mask.Get(x, y, 0) == 0 {
				continue
			}
			i := idx(x, y)
			v := d[i]
			v = math.Min(v, at(x-1, y)+axial)
			v = math.Min(v, at(x, y-1)+axial)
			v = math.Min(v, at(x-1, y-1)+diagonal)
			v = math.Min(v, at(x+1, y-1)+diagonal)
			v = math.Min(v, at(x-2, y-1)+knight)
			v = math.Min(v, at(x-1, y-2)+knight)
			d[i] = v
		}
	}

	// Backward pass: bottom-right to top-left, mirrored neighborhood.
	for y := h - 1; y >= 0; y-- {
		for x := w - 1; x >= 0; x-- {
			if mask.Get(x, y, 0) == 0 {
				continue
			}
			i := idx(x, y)
			v := d[i]
			v = math.Min(v, at(x+1, y)+axial)
			v = math.Min(v, at(x, y+1)+axial)
			v = math.Min(v, at(x+1, y+1)+diagonal)
			v = math.Min(v, at(x-1, y+1)+diagonal)
			v = math.Min(v, at(x+2, y+1)+knight)
			v = math.Min(v, at(x+1, y+2)+knight)
			d[i] = v
		}
	}

	out := raster.New[uint8](w, h, 1)
	for i, v := range d {
		if mask.Data[i] == 0 {
			out.Data[i] = 0
			continue
		}
		if v > 255 {
			v = 255
		}
		out.Data[i] = uint8(v)
	}
	return out
}
