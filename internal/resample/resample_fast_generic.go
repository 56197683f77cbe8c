package resample

import (
	"github.com/blendkit/pyramid/internal/workpool"
	"github.com/blendkit/pyramid/raster"
)

// fastDownsampleU8 is the dispatch point for the U8 downsample fast path,
// set to the portable narrow pipeline by default and overridden by
// resample_fast_wide.go's init() when go-highway reports a real SIMD
// backend. Mirrors the function-variable dispatch table pattern in
// deepteams-webp/internal/dsp/dsp.go (ITransform, FTransform, ...)
// overridden per-architecture in dsp_amd64.go/dsp_arm64.go.
var fastDownsampleU8 = intPipelineDownsampleU8

// intPipelineDownsampleU8 implements the horizontal-then-vertical integer
// convolution pipeline from spec.md §4.2: a horizontal pass produces
// int32 row buffers (sum of 5 taps, weights {1,4,6,4,1}, un-normalized),
// then a vertical pass combines 5 such rows with the same weights and
// normalizes by the full 256 divisor via
// (r0 + r4 + 4*(r1+r2+r3) + 2*r2 + 128) >> 8, which is algebraically
// r0 + 4*r1 + 6*r2 + 4*r3 + r4, rounded to the nearest integer and
// divided by 256. This differs from the float ceil() used by the scalar
// reference by at most the rounding-convention gap documented in
// spec.md §8 (±2 per pixel), never more.
func intPipelineDownsampleU8(src, dst raster.U8) {
	workpool.Rows(dst.Height, func(y0, y1 int) {
		// horizontal convolution buffer, reused across output rows in
		// this worker's band to avoid per-row allocation.
		hbuf := make([][5]int32, dst.Width)
		for oy := y0; oy < y1; oy++ {
			for c := 0; c < src.Channels; c++ {
				for k := 0; k < 5; k++ {
					sy := Reflect(2*oy+k-2, src.Height)
					convolveRowHorizontal(src, sy, c, dst.Width, hbuf, k)
				}
				for ox := 0; ox < dst.Width; ox++ {
					r := hbuf[ox]
					v := (r[0] + r[4] + 4*(r[1]+r[2]+r[3]) + 2*r[2] + 128) >> 8
					dst.Set(ox, oy, c, clampU8(float64(v)))
				}
			}
		}
	})
}

// convolveRowHorizontal fills column k of hbuf with the horizontal 5-tap
// convolution of source row sy, channel c, un-normalized (sum of
// weights*samples, weights summing to 16).
func convolveRowHorizontal(src raster.U8, sy, c, dstWidth int, hbuf [][5]int32, k int) {
	for ox := 0; ox < dstWidth; ox++ {
		var sum int32
		for j := -2; j <= 2; j++ {
			sx := Reflect(2*ox+j, src.Width)
			sum += weights1DInt[j+2] * int32(src.Get(sx, sy, c))
		}
		hbuf[ox][k] = sum
	}
}
