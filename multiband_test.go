package pyramid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blendkit/pyramid/raster"
)

func solidImage(w, h int, r, g, bl uint8) raster.U8 {
	img := raster.New[uint8](w, h, 3)
	for i := 0; i < w*h; i++ {
		img.Data[i*3+0] = r
		img.Data[i*3+1] = g
		img.Data[i*3+2] = bl
	}
	return img
}

func fullMask(w, h int) raster.U8 {
	m := raster.New[uint8](w, h, 1)
	for i := range m.Data {
		m.Data[i] = 255
	}
	return m
}

// Scenario 1 (spec.md §8): identity blend, single gray input, all-255
// mask, num_bands=0, canvas == image size: result must equal the input
// exactly.
func TestIdentityBlendGray(t *testing.T) {
	vals := []uint8{10, 20, 30, 40, 50, 60, 70, 80, 90, 100, 110, 120, 130, 140, 150, 160}
	img := raster.New[uint8](4, 4, 3)
	for i, v := range vals {
		img.Data[i*3+0] = v
		img.Data[i*3+1] = v
		img.Data[i*3+2] = v
	}
	mask := fullMask(4, 4)

	b, err := NewMultiBand(raster.Rect{Width: 4, Height: 4}, 0)
	require.NoError(t, err)
	require.NoError(t, b.Feed(img, mask, raster.Point{}))
	require.NoError(t, b.Blend())

	res, err := b.Result()
	require.NoError(t, err)
	for i := range img.Data {
		assert.Equalf(t, img.Data[i], res.Data[i], "pixel %d", i)
	}
}

// Scenario 4 (spec.md §8): two solid-color images with complementary
// vertical step masks, multiband num_bands=3. Column 0 should be red,
// column 511 blue, column 256 strictly between.
func TestTwoImageSeamHiding(t *testing.T) {
	const size = 512
	red := solidImage(size, size, 255, 0, 0)
	blue := solidImage(size, size, 0, 0, 255)

	leftMask := raster.New[uint8](size, size, 1)
	rightMask := raster.New[uint8](size, size, 1)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if x < size/2 {
				leftMask.Set(x, y, 0, 255)
				rightMask.Set(x, y, 0, 0)
			} else {
				leftMask.Set(x, y, 0, 0)
				rightMask.Set(x, y, 0, 255)
			}
		}
	}

	b, err := NewMultiBand(raster.Rect{Width: size, Height: size}, 3)
	require.NoError(t, err)
	require.NoError(t, b.Feed(red, leftMask, raster.Point{}))
	require.NoError(t, b.Feed(blue, rightMask, raster.Point{}))
	require.NoError(t, b.Blend())
	res, err := b.Result()
	require.NoError(t, err)

	assert.InDelta(t, 255, res.Get(0, size/2, 0), 2, "column 0 red channel")
	assert.LessOrEqual(t, res.Get(0, size/2, 2), uint8(2), "column 0 blue channel")

	assert.LessOrEqual(t, res.Get(size-1, size/2, 0), uint8(2), "last column red channel")
	assert.InDelta(t, 255, res.Get(size-1, size/2, 2), 2, "last column blue channel")

	midR := res.Get(size/2, size/2, 0)
	midB := res.Get(size/2, size/2, 2)
	assert.NotEqual(t, uint8(0), midR)
	assert.NotEqual(t, uint8(255), midR)
	assert.NotEqual(t, uint8(0), midB)
	assert.NotEqual(t, uint8(255), midB)
}

func TestResultBeforeBlendErrors(t *testing.T) {
	b, _ := NewMultiBand(raster.Rect{Width: 8, Height: 8}, 1)
	if _, err := b.Result(); err != ErrNotBlended {
		t.Fatalf("expected ErrNotBlended, got %v", err)
	}
}

func TestFeedAfterBlendErrors(t *testing.T) {
	img := solidImage(8, 8, 1, 2, 3)
	mask := fullMask(8, 8)
	b, _ := NewMultiBand(raster.Rect{Width: 8, Height: 8}, 1)
	_ = b.Feed(img, mask, raster.Point{})
	_ = b.Blend()
	if err := b.Feed(img, mask, raster.Point{}); err != ErrAlreadyBlended {
		t.Fatalf("expected ErrAlreadyBlended, got %v", err)
	}
}

func TestFeedSizeMismatchErrors(t *testing.T) {
	img := solidImage(8, 8, 1, 2, 3)
	mask := fullMask(4, 4)
	b, _ := NewMultiBand(raster.Rect{Width: 8, Height: 8}, 1)
	if err := b.Feed(img, mask, raster.Point{}); err != ErrSizeMismatch {
		t.Fatalf("expected ErrSizeMismatch, got %v", err)
	}
}

func TestFeedWhollyOutsideCanvasIsNoop(t *testing.T) {
	img := solidImage(4, 4, 1, 2, 3)
	mask := fullMask(4, 4)
	b, _ := NewMultiBand(raster.Rect{Width: 8, Height: 8}, 1)
	if err := b.Feed(img, mask, raster.Point{X: 1000, Y: 1000}); err != nil {
		t.Fatalf("expected no-op nil error, got %v", err)
	}
}

func TestCloseThenFeedErrors(t *testing.T) {
	b, _ := NewMultiBand(raster.Rect{Width: 8, Height: 8}, 1)
	b.Close()
	img := solidImage(4, 4, 1, 2, 3)
	mask := fullMask(4, 4)
	if err := b.Feed(img, mask, raster.Point{}); err != ErrClosed {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}
