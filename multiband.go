package pyramid

import (
	"math"

	"github.com/blendkit/pyramid/internal/border"
	"github.com/blendkit/pyramid/internal/pool"
	"github.com/blendkit/pyramid/internal/pyramid"
	"github.com/blendkit/pyramid/internal/resample"
	"github.com/blendkit/pyramid/internal/workpool"
	"github.com/blendkit/pyramid/raster"
)

// normalizeEpsilon guards the per-level Out/OutMask division against
// division-by-zero at unweighted pixels (spec.md §4.5.4).
const normalizeEpsilon = 1e-5

// multiBand implements the Laplacian/Gaussian pyramid blender (C5,
// spec.md §4.5.1/4.5.2/4.5.4).
type multiBand struct {
	numBands     int
	canvasOrigin raster.Point
	outputSize   raster.Point // padded (band-aligned) canvas dimensions, as a size
	realOut      raster.Point // caller-requested size, for the final crop

	out     []raster.F32 // per-level RGB accumulator
	outMask []raster.F32 // per-level weight accumulator

	blended bool
	closed  bool
	result  raster.U8
}

func newMultiBand(outRect raster.Rect, requestedBands int) (*multiBand, error) {
	if requestedBands < 0 {
		return nil, ErrInvalidBands
	}

	maxDim := max(outRect.Width, outRect.Height)
	logCap := 0
	for (1 << (logCap + 1)) <= maxDim {
		logCap++
	}
	numBands := min(MaxBands, requestedBands, logCap)
	if numBands < 0 {
		numBands = 0
	}

	step := 1 << numBands
	paddedW := roundUp(outRect.Width, step)
	paddedH := roundUp(outRect.Height, step)

	b := &multiBand{
		numBands:     numBands,
		canvasOrigin: raster.Point{X: outRect.X, Y: outRect.Y},
		outputSize:   raster.Point{X: paddedW, Y: paddedH},
		realOut:      raster.Point{X: outRect.Width, Y: outRect.Height},
	}

	b.out = make([]raster.F32, numBands+1)
	b.outMask = make([]raster.F32, numBands+1)
	w, h := paddedW, paddedH
	for l := 0; l <= numBands; l++ {
		b.out[l] = newPooledF32(w, h, 3)
		b.outMask[l] = newPooledF32(w, h, 1)
		w, h = w/2, h/2
	}
	return b, nil
}

// newPooledF32 allocates an F32 raster whose backing array is drawn from
// internal/pool rather than a fresh make, since every multi-band blend
// allocates numBands+1 pairs of these accumulators and discards them once
// Blend has read them. Pooled buffers may carry stale data from a prior
// tenant, so the slice is explicitly zeroed before use (the accumulators
// are read-modify-written with += starting from Feed's first call).
func newPooledF32(w, h, channels int) raster.F32 {
	data := pool.GetFloat32(w * h * channels)
	for i := range data {
		data[i] = 0
	}
	return raster.F32{Width: w, Height: h, Channels: channels, Data: data}
}

func roundUp(v, step int) int {
	if step <= 1 {
		return v
	}
	r := v % step
	if r == 0 {
		return v
	}
	return v + (step - r)
}

func (b *multiBand) Feed(img, mask raster.U8, topLeft raster.Point) error {
	if b.closed {
		return ErrClosed
	}
	if b.blended {
		return ErrAlreadyBlended
	}
	if img.Width != mask.Width || img.Height != mask.Height {
		return ErrSizeMismatch
	}

	canvas := raster.Rect{X: b.canvasOrigin.X, Y: b.canvasOrigin.Y, Width: b.outputSize.X, Height: b.outputSize.Y}
	placement := raster.Rect{X: topLeft.X, Y: topLeft.Y, Width: img.Width, Height: img.Height}

	intersection := placement.Intersect(canvas)
	if intersection.Empty() {
		// Geometric overflow (spec.md §7.3): not an error, a no-op.
		return nil
	}

	region := alignRegion(b.canvasOrigin, b.outputSize, placement, b.numBands)

	top := placement.Y - region.Y
	left := placement.X - region.X
	bottom := region.Br().Y - placement.Br().Y
	right := region.Br().X - placement.Br().X
	if top < 0 {
		top = 0
	}
	if left < 0 {
		left = 0
	}
	if bottom < 0 {
		bottom = 0
	}
	if right < 0 {
		right = 0
	}

	paddedImg := border.AddBorder[uint8](img, top, bottom, left, right, border.Reflect)
	paddedMask := border.AddBorder[uint8](mask, top, bottom, left, right, border.Constant)

	pyr := pyramid.Build(paddedImg, paddedMask, b.numBands)

	xTl := region.X - b.canvasOrigin.X
	yTl := region.Y - b.canvasOrigin.Y

	for l := 0; l <= b.numBands; l++ {
		accumulateLevel(b.out[l], b.outMask[l], pyr.Levels[l], pyr.Mask[l], xTl, yTl)
		xTl /= 2
		yTl /= 2
	}
	pyramid.Release(pyr)
	return nil
}

// alignRegion expands placement by gap=3*2^numBands on all sides
// (clamped to the canvas), then floors the top-left down to a multiple
// of 2^numBands and grows the dimensions back up to a multiple of
// 2^numBands, finally shifting the region back inside the canvas if the
// expansion pushed past the right/bottom edge. Spec.md §4.5.2 step 1.
func alignRegion(canvasOrigin raster.Point, outputSize raster.Point, placement raster.Rect, numBands int) raster.Rect {
	step := 1 << numBands
	gap := 3 * step

	canvas := raster.Rect{X: canvasOrigin.X, Y: canvasOrigin.Y, Width: outputSize.X, Height: outputSize.Y}
	expanded := raster.Rect{
		X: placement.X - gap, Y: placement.Y - gap,
		Width: placement.Width + 2*gap, Height: placement.Height + 2*gap,
	}
	expanded = expanded.Intersect(canvas)

	relX := expanded.X - canvasOrigin.X
	relY := expanded.Y - canvasOrigin.Y
	alignedRelX := floorMultiple(relX, step)
	alignedRelY := floorMultiple(relY, step)

	newX := canvasOrigin.X + alignedRelX
	newY := canvasOrigin.Y + alignedRelY
	width := expanded.Width + (expanded.X - newX)
	height := expanded.Height + (expanded.Y - newY)
	width = roundUp(width, step)
	height = roundUp(height, step)

	canvasRight := canvasOrigin.X + outputSize.X
	canvasBottom := canvasOrigin.Y + outputSize.Y
	if over := (newX + width) - canvasRight; over > 0 {
		newX -= over
	}
	if over := (newY + height) - canvasBottom; over > 0 {
		newY -= over
	}
	if newX < canvasOrigin.X {
		newX = canvasOrigin.X
	}
	if newY < canvasOrigin.Y {
		newY = canvasOrigin.Y
	}

	return raster.Rect{X: newX, Y: newY, Width: width, Height: height}
}

func floorMultiple(v, step int) int {
	if step <= 1 {
		return v
	}
	m := v % step
	if m < 0 {
		m += step
	}
	return v - m
}

// accumulateLevel adds one pyramid level's weighted contribution into the
// level's F32 accumulators. Per Open Question 2 (spec.md §9), OutMask is
// incremented exactly once per pixel, not once per channel.
func accumulateLevel(out, outMask raster.F32, lapl, maskLevel raster.I16, xTl, yTl int) {
	workpool.Rows(lapl.Height, func(k0, k1 int) {
		for k := k0; k < k1; k++ {
			oy := k + yTl
			if oy < 0 || oy >= out.Height {
				continue
			}
			for i := 0; i < lapl.Width; i++ {
				ox := i + xTl
				if ox < 0 || ox >= out.Width {
					continue
				}
				w := float32(maskLevel.Get(i, k, 0)) / 255
				for c := 0; c < lapl.Channels; c++ {
					idx := out.At(ox, oy, c)
					out.Data[idx] += float32(lapl.Get(i, k, c)) * w
				}
				mi := outMask.At(ox, oy, 0)
				outMask.Data[mi] += w
			}
		}
	})
}

func (b *multiBand) Blend() error {
	if b.closed {
		return ErrClosed
	}
	if b.blended {
		return nil
	}
	b.blended = true

	finalOut := make([]raster.I16, b.numBands+1)
	var mask0 raster.F32

	for l := 0; l <= b.numBands; l++ {
		out, outMask := b.out[l], b.outMask[l]
		fo := raster.New[int16](out.Width, out.Height, out.Channels)
		workpool.Rows(out.Height, func(y0, y1 int) {
			for y := y0; y < y1; y++ {
				for x := 0; x < out.Width; x++ {
					denom := outMask.Get(x, y, 0) + normalizeEpsilon
					for c := 0; c < out.Channels; c++ {
						fo.Set(x, y, c, int16(math.Round(float64(out.Get(x, y, c)/denom))))
					}
				}
			}
		})
		finalOut[l] = fo
		pool.PutFloat32(out.Data)
		if l == 0 {
			// mask0's backing array stays live; it is read again below
			// when zeroing unweighted output pixels, and is only
			// released once that final read is done.
			mask0 = outMask
		} else {
			pool.PutFloat32(outMask.Data)
		}
		b.out[l] = raster.F32{}
		b.outMask[l] = raster.F32{}
	}

	for l := b.numBands; l > 0; l-- {
		up := resample.Upsample(finalOut[l], pyramid.UpsampleFactor)
		lower := finalOut[l-1]
		workpool.Rows(lower.Height, func(y0, y1 int) {
			for y := y0; y < y1; y++ {
				for x := 0; x < lower.Width; x++ {
					for c := 0; c < lower.Channels; c++ {
						i := lower.At(x, y, c)
						lower.Data[i] += up.Get(x, y, c)
					}
				}
			}
		})
	}

	finest := finalOut[0]
	out8 := raster.New[uint8](finest.Width, finest.Height, finest.Channels)
	workpool.Rows(finest.Height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < finest.Width; x++ {
				if mask0.Get(x, y, 0) <= normalizeEpsilon {
					continue // already zero
				}
				for c := 0; c < finest.Channels; c++ {
					out8.Set(x, y, c, clampU8(finest.Get(x, y, c)))
				}
			}
		}
	})
	pool.PutFloat32(mask0.Data)

	cutBottom := max(0, out8.Height-b.realOut.Y)
	cutRight := max(0, out8.Width-b.realOut.X)
	b.result = border.Crop[uint8](out8, 0, cutBottom, 0, cutRight)
	return nil
}

func clampU8(v int16) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func (b *multiBand) Result() (raster.U8, error) {
	if !b.blended {
		return raster.U8{}, ErrNotBlended
	}
	return b.result, nil
}

func (b *multiBand) Close() {
	if b.closed {
		return
	}
	b.closed = true
	// Blend already released each level's accumulators (setting its slot
	// to the zero raster.F32{}); closing before Blend releases whatever
	// is left. PutFloat32 on an already-zero-valued raster's nil Data is
	// a harmless no-op (cap 0 is below the smallest pooled size class).
	for _, o := range b.out {
		pool.PutFloat32(o.Data)
	}
	for _, m := range b.outMask {
		pool.PutFloat32(m.Data)
	}
	b.out = nil
	b.outMask = nil
}
