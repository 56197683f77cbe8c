// Package resample implements the separable 5x5 Gaussian
// downsample/upsample core (component C2): reflective-border convolution
// with optional SIMD-flavored fast paths for the U8 pixel type, dispatched
// row-parallel through internal/workpool.
package resample

import (
	"math"

	"github.com/blendkit/pyramid/internal/workpool"
	"github.com/blendkit/pyramid/raster"
)

// Downsample halves both dimensions of src (W' = floor(W/2), H' =
// floor(H/2)) by convolving with the 5x5 reflective-border Gaussian
// kernel centered on every other source pixel.
func Downsample[T raster.Pixel](src raster.Raster[T]) raster.Raster[T] {
	switch s := any(src).(type) {
	case raster.Raster[uint8]:
		return any(downsampleU8(s)).(raster.Raster[T])
	case raster.Raster[int16]:
		return any(downsampleI16(s)).(raster.Raster[T])
	case raster.Raster[float32]:
		return any(downsampleF32(s)).(raster.Raster[T])
	default:
		panic("resample: unsupported pixel type")
	}
}

// Upsample doubles both dimensions of src (W' = 2W, H' = 2H) by
// zero-inserting at odd coordinates and convolving with the same 5x5
// kernel, scaling inserted (even-indexed) source samples by k. The
// blending core always calls this with k = 4.0 (see DESIGN.md Open
// Question 1), but k remains a parameter for testability.
func Upsample[T raster.Pixel](src raster.Raster[T], k float64) raster.Raster[T] {
	switch s := any(src).(type) {
	case raster.Raster[uint8]:
		return any(upsampleU8(s, k)).(raster.Raster[T])
	case raster.Raster[int16]:
		return any(upsampleI16(s, k)).(raster.Raster[T])
	case raster.Raster[float32]:
		return any(upsampleF32(s, k)).(raster.Raster[T])
	default:
		panic("resample: unsupported pixel type")
	}
}

var kernel2D = Kernel2D()

// downsampleCore evaluates the separable Gaussian sum for output pixel
// (ox, oy, c) in a source of dimensions (srcW, srcH), returning the raw
// (unclamped) float64 accumulation.
func downsampleCore(get func(x, y, c int) float64, srcW, srcH, ox, oy, c int) float64 {
	var sum float64
	for i := -2; i <= 2; i++ {
		sy := Reflect(2*oy+i, srcH)
		for j := -2; j <= 2; j++ {
			sx := Reflect(2*ox+j, srcW)
			sum += kernel2D[i+2][j+2] * get(sx, sy, c)
		}
	}
	return sum
}

func downsampleU8(src raster.U8) raster.U8 {
	dw, dh := src.Width/2, src.Height/2
	dst := raster.New[uint8](dw, dh, src.Channels)
	fastDownsampleU8(src, dst)
	return dst
}

// downsampleU8Scalar is the reference scalar implementation. The fast
// path in resample_fast_*.go rounds to nearest where this takes the
// ceiling, so the two can differ by one per pixel; the test suite checks
// that they agree within ±2.
func downsampleU8Scalar(src raster.U8, dst raster.U8) {
	get := func(x, y, c int) float64 { return float64(src.Get(x, y, c)) }
	workpool.Rows(dst.Height, func(y0, y1 int) {
		for oy := y0; oy < y1; oy++ {
			for ox := 0; ox < dst.Width; ox++ {
				for c := 0; c < dst.Channels; c++ {
					sum := downsampleCore(get, src.Width, src.Height, ox, oy, c)
					dst.Set(ox, oy, c, clampU8(math.Ceil(sum)))
				}
			}
		}
	})
}

func downsampleI16(src raster.I16) raster.I16 {
	dw, dh := src.Width/2, src.Height/2
	dst := raster.New[int16](dw, dh, src.Channels)
	get := func(x, y, c int) float64 { return float64(src.Get(x, y, c)) }
	workpool.Rows(dh, func(y0, y1 int) {
		for oy := y0; oy < y1; oy++ {
			for ox := 0; ox < dw; ox++ {
				for c := 0; c < src.Channels; c++ {
					sum := downsampleCore(get, src.Width, src.Height, ox, oy, c)
					dst.Set(ox, oy, c, int16(sum))
				}
			}
		}
	})
	return dst
}

func downsampleF32(src raster.F32) raster.F32 {
	dw, dh := src.Width/2, src.Height/2
	dst := raster.New[float32](dw, dh, src.Channels)
	get := func(x, y, c int) float64 { return float64(src.Get(x, y, c)) }
	workpool.Rows(dh, func(y0, y1 int) {
		for oy := y0; oy < y1; oy++ {
			for ox := 0; ox < dw; ox++ {
				for c := 0; c < src.Channels; c++ {
					sum := downsampleCore(get, src.Width, src.Height, ox, oy, c)
					dst.Set(ox, oy, c, float32(sum))
				}
			}
		}
	})
	return dst
}

// upsampleCore evaluates the zero-insertion + 5x5 kernel convolution for
// output pixel (ox, oy, c), sourcing from a raster of half dimensions
// (srcW, srcH) = (dstW/2, dstH/2).
func upsampleCore(get func(x, y, c int) float64, srcW, srcH, ox, oy, c int, k float64) float64 {
	var sum float64
	for ki := 0; ki < 5; ki++ {
		srcI := Reflect(oy+ki-2, 2*srcH)
		for kj := 0; kj < 5; kj++ {
			srcJ := Reflect(ox+kj-2, 2*srcW)
			if srcI%2 != 0 || srcJ%2 != 0 {
				continue
			}
			v := get(srcJ/2, srcI/2, c) * k
			sum += kernel2D[ki][kj] * v
		}
	}
	return sum
}

func upsampleU8(src raster.U8, k float64) raster.U8 {
	dw, dh := src.Width*2, src.Height*2
	dst := raster.New[uint8](dw, dh, src.Channels)
	get := func(x, y, c int) float64 { return float64(src.Get(x, y, c)) }
	workpool.Rows(dh, func(y0, y1 int) {
		for oy := y0; oy < y1; oy++ {
			for ox := 0; ox < dw; ox++ {
				for c := 0; c < src.Channels; c++ {
					sum := upsampleCore(get, src.Width, src.Height, ox, oy, c, k)
					dst.Set(ox, oy, c, clampU8(math.Floor(sum+0.5)))
				}
			}
		}
	})
	return dst
}

func upsampleI16(src raster.I16, k float64) raster.I16 {
	dw, dh := src.Width*2, src.Height*2
	dst := raster.New[int16](dw, dh, src.Channels)
	get := func(x, y, c int) float64 { return float64(src.Get(x, y, c)) }
	workpool.Rows(dh, func(y0, y1 int) {
		for oy := y0; oy < y1; oy++ {
			for ox := 0; ox < dw; ox++ {
				for c := 0; c < src.Channels; c++ {
					sum := upsampleCore(get, src.Width, src.Height, ox, oy, c, k)
					dst.Set(ox, oy, c, int16(sum))
				}
			}
		}
	})
	return dst
}

func upsampleF32(src raster.F32, k float64) raster.F32 {
	dw, dh := src.Width*2, src.Height*2
	dst := raster.New[float32](dw, dh, src.Channels)
	get := func(x, y, c int) float64 { return float64(src.Get(x, y, c)) }
	workpool.Rows(dh, func(y0, y1 int) {
		for oy := y0; oy < y1; oy++ {
			for ox := 0; ox < dw; ox++ {
				for c := 0; c < src.Channels; c++ {
					sum := upsampleCore(get, src.Width, src.Height, ox, oy, c, k)
					dst.Set(ox, oy, c, float32(sum))
				}
			}
		}
	})
	return dst
}

func clampU8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
