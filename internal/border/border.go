// Package border implements padding (reflective or constant) and cropping
// of rasters (component C3), the shared edge-handling primitive used by
// pyramid construction before every downsample/upsample pass.
package border

import (
	"github.com/blendkit/pyramid/internal/workpool"
	"github.com/blendkit/pyramid/raster"
)

// Mode selects the border-fill strategy for AddBorder.
type Mode int

const (
	// Constant fills border pixels with zero on every channel.
	Constant Mode = iota
	// Reflect mirrors pixels about the image edge, so the boundary pixel
	// appears once on each side of it: ... c, b, a | a, b, c ...
	Reflect
)

// reflectIndex maps an index in the padded coordinate space back into the
// source's [0, n) range, implementing the "one-sided off-by-one" mirror
// spec.md §4.3 calls for (distinct from resample's Reflect, which mirrors
// about the outermost sample rather than one step beyond it).
func reflectIndex(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i - 1
		}
		if i >= n {
			i = 2*n - i - 1
		}
	}
	return i
}

// AddBorder grows r by the given margins using mode to fill the new
// border region.
func AddBorder[T raster.Pixel](r raster.Raster[T], top, bottom, left, right int, mode Mode) raster.Raster[T] {
	dw := r.Width + left + right
	dh := r.Height + top + bottom
	dst := raster.New[T](dw, dh, r.Channels)

	workpool.Rows(dh, func(y0, y1 int) {
		for dy := y0; dy < y1; dy++ {
			sy := dy - top
			switch mode {
			case Reflect:
				sy = reflectIndex(sy, r.Height)
				for dx := 0; dx < dw; dx++ {
					sx := reflectIndex(dx-left, r.Width)
					for c := 0; c < r.Channels; c++ {
						dst.Set(dx, dy, c, r.Get(sx, sy, c))
					}
				}
			default: // Constant
				if sy < 0 || sy >= r.Height {
					continue // row stays zero-valued
				}
				for dx := 0; dx < dw; dx++ {
					sx := dx - left
					if sx < 0 || sx >= r.Width {
						continue
					}
					for c := 0; c < r.Channels; c++ {
						dst.Set(dx, dy, c, r.Get(sx, sy, c))
					}
				}
			}
		}
	})
	return dst
}

// Crop shrinks r by the given cut amounts on each side. If the cuts would
// produce a non-positive dimension, r is returned unchanged.
func Crop[T raster.Pixel](r raster.Raster[T], cutTop, cutBottom, cutLeft, cutRight int) raster.Raster[T] {
	nw := r.Width - cutLeft - cutRight
	nh := r.Height - cutTop - cutBottom
	if nw <= 0 || nh <= 0 {
		return r
	}
	dst := raster.New[T](nw, nh, r.Channels)
	workpool.Rows(nh, func(y0, y1 int) {
		for dy := y0; dy < y1; dy++ {
			sy := dy + cutTop
			srcRow := r.Row(sy)
			dstRow := dst.Row(dy)
			copy(dstRow, srcRow[cutLeft*r.Channels:(cutLeft+nw)*r.Channels])
		}
	})
	return dst
}
