// Package pyramid implements a seam-hiding multi-resolution image
// compositor: given a set of overlapping source rasters, each paired with
// a weight mask locating it on a common canvas, it produces a single
// output raster in which inter-image transitions are imperceptible.
//
// The package is a backend for image stitching (panoramas, tiled
// captures). It does not perform registration, alignment, homography
// estimation, color correction, or exposure compensation — callers supply
// already-aligned source images and weight masks.
//
// Two blending strategies are available:
//
//   - Multi-band: a Laplacian/Gaussian pyramid blend that hides seams at
//     every spatial frequency (New with KindMultiBand).
//   - Feather: a single-resolution weighted average, optionally preceded
//     by a chamfer distance transform for smooth falloff (New with
//     KindFeather; NewFeather enables the distance transform).
//
// Basic usage:
//
//	b, err := pyramid.New(pyramid.KindMultiBand, outRect, 5)
//	if err != nil { ... }
//	defer b.Close()
//	for _, in := range inputs {
//		if err := b.Feed(in.Image, in.Mask, in.TopLeft); err != nil { ... }
//	}
//	if err := b.Blend(); err != nil { ... }
//	out, err := b.Result()
package pyramid
