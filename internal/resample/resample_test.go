package resample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blendkit/pyramid/raster"
)

func gray4x4() raster.U8 {
	vals := []uint8{10, 20, 30, 40, 50, 60, 70, 80, 90, 100, 110, 120, 130, 140, 150, 160}
	return raster.NewFrom[uint8](4, 4, 1, vals)
}

func TestReflectInvariants(t *testing.T) {
	for n := 1; n <= 20; n++ {
		for i := -3 * n; i <= 3*n; i++ {
			r := Reflect(i, n)
			if r < 0 || r >= n {
				t.Fatalf("Reflect(%d,%d)=%d out of [0,%d)", i, n, r, n)
			}
			if r2 := Reflect(r, n); r2 != r {
				t.Fatalf("Reflect not idempotent: Reflect(Reflect(%d,%d),%d)=%d want %d", i, n, n, r2, r)
			}
		}
	}
}

func TestDownsampleShape(t *testing.T) {
	src := raster.New[uint8](7, 9, 3)
	dst := Downsample(src)
	require.Equal(t, 3, dst.Width)
	require.Equal(t, 4, dst.Height)
}

func TestUpsampleShape(t *testing.T) {
	src := raster.New[uint8](3, 4, 3)
	dst := Upsample(src, 4.0)
	require.Equal(t, 6, dst.Width)
	require.Equal(t, 8, dst.Height)
}

func TestDownsampleReferenceValues(t *testing.T) {
	dst := downsampleU8Scalar2(gray4x4())
	want := []uint8{48, 59, 93, 104}
	for i, v := range dst.Data {
		assert.Equalf(t, want[i], v, "pixel %d (full: %v)", i, dst.Data)
	}
}

func downsampleU8Scalar2(src raster.U8) raster.U8 {
	dw, dh := src.Width/2, src.Height/2
	dst := raster.New[uint8](dw, dh, src.Channels)
	downsampleU8Scalar(src, dst)
	return dst
}

func TestUpsampleReferenceValues(t *testing.T) {
	small := raster.NewFrom[uint8](2, 2, 1, []uint8{48, 59, 93, 104})
	dst := Upsample(small, 4.0)
	want := []uint8{62, 65, 69, 70, 73, 76, 80, 82, 90, 93, 97, 98, 96, 99, 103, 104}
	for i, v := range dst.Data {
		assert.InDeltaf(t, float64(want[i]), float64(v), 2, "pixel %d (full: %v)", i, dst.Data)
	}
}

func TestFastPathMatchesScalarWithinTolerance(t *testing.T) {
	src := raster.New[uint8](37, 23, 3)
	for i := range src.Data {
		src.Data[i] = uint8((i * 37) % 256)
	}
	fast := Downsample(src)
	scalar := downsampleU8Scalar2(src)
	for i := range fast.Data {
		assert.InDeltaf(t, float64(scalar.Data[i]), float64(fast.Data[i]), 2, "pixel %d", i)
	}
}

func TestIdentityRoundTripIsNumericallyStable(t *testing.T) {
	src := raster.New[uint8](16, 16, 1)
	for i := range src.Data {
		src.Data[i] = uint8(i % 256)
	}
	down := Downsample(src)
	up := Upsample(down, 4.0)
	// up is the same size as src (16x16); compare upsample(downsample(src))
	// against src per spec.md §8's reconstruction-law framing: not a perfect inverse, but
	// numerically stable (bounded absolute error).
	for i := range up.Data {
		assert.InDeltaf(t, float64(src.Data[i]), float64(up.Data[i]), 40, "pixel %d", i)
	}
}
