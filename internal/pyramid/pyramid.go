// Package pyramid builds the per-feed Laplacian image pyramid and
// Gaussian mask pyramid consumed by the multi-band blender (spec.md
// §4.5.2 steps 3-4), composing internal/resample and internal/border the
// way resoltico-y4's processing_pyramid.go composes pyrDown/pyrUp, but
// with our own hand-written kernels instead of delegating to gocv.
package pyramid

import (
	"github.com/blendkit/pyramid/internal/pool"
	"github.com/blendkit/pyramid/internal/resample"
	"github.com/blendkit/pyramid/internal/workpool"
	"github.com/blendkit/pyramid/raster"
)

// UpsampleFactor is the scale-preserving multiplier applied to zero-inserted
// samples during upsampling; see SPEC_FULL.md Open Question 1. Always 4.0.
const UpsampleFactor = 4.0

// Pyramid holds the Laplacian pyramid of an image (Levels[0..B], the last
// being the coarsest Gaussian level) and the Gaussian pyramid of its
// paired mask (Mask[0..B]), both in I16.
type Pyramid struct {
	Levels []raster.I16 // Laplacian pyramid of the image
	Mask   []raster.I16 // Gaussian pyramid of the mask
}

// newPooledI16 allocates an I16 raster whose backing array is drawn from
// internal/pool instead of a fresh make, since Build runs once per Feed
// call and its intermediate levels are discarded immediately after.
func newPooledI16(w, h, channels int) raster.I16 {
	return raster.I16{
		Data:     pool.GetInt16(w * h * channels),
		Width:    w,
		Height:   h,
		Channels: channels,
	}
}

// toI16 casts a U8 raster element-wise into I16.
func toI16(src raster.U8) raster.I16 {
	dst := newPooledI16(src.Width, src.Height, src.Channels)
	workpool.Rows(src.Height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			srow := src.Row(y)
			drow := dst.Row(y)
			for i, v := range srow {
				drow[i] = int16(v)
			}
		}
	})
	return dst
}

// sub computes a - b element-wise; a and b must have identical dimensions.
func sub(a, b raster.I16) raster.I16 {
	dst := newPooledI16(a.Width, a.Height, a.Channels)
	workpool.Rows(a.Height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			arow, brow, drow := a.Row(y), b.Row(y), dst.Row(y)
			for i := range arow {
				drow[i] = arow[i] - brow[i]
			}
		}
	})
	return dst
}

// Build constructs the Laplacian image pyramid and Gaussian mask pyramid
// for one feed call, given a band-aligned, already-padded image and mask
// (the same dimensions, per spec.md §4.5.2 precondition). numBands is the
// blender's band count (so len(Levels) == len(Mask) == numBands+1).
// Callers should pass the result to Release once its levels have been
// consumed, to return the per-feed backing arrays to internal/pool.
func Build(img, mask raster.U8, numBands int) *Pyramid {
	g := make([]raster.I16, numBands+1)
	g[0] = toI16(img)
	for j := 0; j < numBands; j++ {
		g[j+1] = resample.Downsample(g[j])
	}

	levels := make([]raster.I16, numBands+1)
	for j := 0; j < numBands; j++ {
		up := resample.Upsample(g[j+1], UpsampleFactor)
		levels[j] = sub(g[j], up)
		pool.PutInt16(up.Data)
		pool.PutInt16(g[j].Data)
	}
	levels[numBands] = g[numBands]

	m := make([]raster.I16, numBands+1)
	m[0] = toI16(mask)
	for j := 0; j < numBands; j++ {
		m[j+1] = resample.Downsample(m[j])
	}

	return &Pyramid{Levels: levels, Mask: m}
}

// Release returns a Pyramid's backing arrays to internal/pool. The
// Pyramid must not be used again afterward.
func Release(p *Pyramid) {
	for _, lvl := range p.Levels {
		pool.PutInt16(lvl.Data)
	}
	for _, m := range p.Mask {
		pool.PutInt16(m.Data)
	}
}
