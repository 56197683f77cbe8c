package pyramid

import (
	"github.com/blendkit/pyramid/internal/distance"
	"github.com/blendkit/pyramid/internal/workpool"
	"github.com/blendkit/pyramid/raster"
)

// feather implements the single-resolution weighted-average blend
// (C5, spec.md §4.5.3/4.5.5), with an optional chamfer distance-transform
// pass (C4) for smooth falloff instead of a hard mask edge.
type feather struct {
	canvasOrigin      raster.Point
	doDistanceXform   bool
	out, outMask      raster.F32
	blended           bool
	closed            bool
	result            raster.U8
}

func newFeather(outRect raster.Rect) *feather {
	return &feather{
		canvasOrigin: raster.Point{X: outRect.X, Y: outRect.Y},
		out:          raster.New[float32](outRect.Width, outRect.Height, 3),
		outMask:      raster.New[float32](outRect.Width, outRect.Height, 1),
	}
}

// EnableDistanceTransform turns on the optional chamfer distance-transform
// preprocessing of each fed mask (spec.md §4.5.3's do_distance_transform
// flag). It must be called before the first Feed.
func (f *feather) EnableDistanceTransform() {
	f.doDistanceXform = true
}

func (f *feather) Feed(img, mask raster.U8, topLeft raster.Point) error {
	if f.closed {
		return ErrClosed
	}
	if f.blended {
		return ErrAlreadyBlended
	}
	if img.Width != mask.Width || img.Height != mask.Height {
		return ErrSizeMismatch
	}

	canvas := raster.Rect{X: f.canvasOrigin.X, Y: f.canvasOrigin.Y, Width: f.out.Width, Height: f.out.Height}
	placement := raster.Rect{X: topLeft.X, Y: topLeft.Y, Width: img.Width, Height: img.Height}
	if placement.Intersect(canvas).Empty() {
		return nil
	}

	effMask := mask
	if f.doDistanceXform {
		effMask = distance.Chamfer(mask)
	}

	xOff := topLeft.X - f.canvasOrigin.X
	yOff := topLeft.Y - f.canvasOrigin.Y

	workpool.Rows(img.Height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			oy := y + yOff
			if oy < 0 || oy >= f.out.Height {
				continue
			}
			for x := 0; x < img.Width; x++ {
				ox := x + xOff
				if ox < 0 || ox >= f.out.Width {
					continue
				}
				w := float32(effMask.Get(x, y, 0)) / 256
				for c := 0; c < img.Channels; c++ {
					idx := f.out.At(ox, oy, c)
					f.out.Data[idx] += float32(img.Get(x, y, c)) * w
				}
				mi := f.outMask.At(ox, oy, 0)
				f.outMask.Data[mi] += w
			}
		}
	})
	return nil
}

func (f *feather) Blend() error {
	if f.closed {
		return ErrClosed
	}
	if f.blended {
		return nil
	}
	f.blended = true

	out8 := raster.New[uint8](f.out.Width, f.out.Height, f.out.Channels)
	workpool.Rows(f.out.Height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < f.out.Width; x++ {
				denom := f.outMask.Get(x, y, 0) + normalizeEpsilon
				for c := 0; c < f.out.Channels; c++ {
					v := f.out.Get(x, y, c) / denom
					out8.Set(x, y, c, clampF32U8(v))
				}
			}
		}
	})
	f.result = out8
	f.out = raster.F32{}
	f.outMask = raster.F32{}
	return nil
}

func clampF32U8(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func (f *feather) Result() (raster.U8, error) {
	if !f.blended {
		return raster.U8{}, ErrNotBlended
	}
	return f.result, nil
}

func (f *feather) Close() {
	if f.closed {
		return
	}
	f.closed = true
	f.out = raster.F32{}
	f.outMask = raster.F32{}
}
