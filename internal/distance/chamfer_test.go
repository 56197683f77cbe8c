package distance

import (
	"testing"

	"github.com/blendkit/pyramid/raster"
)

func TestChamferMaskedOutStaysZero(t *testing.T) {
	m := raster.New[uint8](8, 8, 1)
	for i := range m.Data {
		m.Data[i] = 255
	}
	m.Set(4, 4, 0, 0) // a single masked-out pixel in an otherwise full mask
	out := Chamfer(m)
	if out.Get(4, 4, 0) != 0 {
		t.Fatalf("masked-out pixel should remain 0, got %d", out.Get(4, 4, 0))
	}
}

func TestChamferMonotonicIntoInterior(t *testing.T) {
	// A wide foreground band with a masked-out pixel at its left edge;
	// distance should increase monotonically moving right, away from the
	// boundary and deeper into the interior.
	m := raster.New[uint8](16, 16, 1)
	for i := range m.Data {
		m.Data[i] = 255
	}
	for y := 0; y < 16; y++ {
		m.Set(0, y, 0, 0)
	}
	out := Chamfer(m)
	prev := out.Get(0, 8, 0)
	for x := 1; x < 10; x++ {
		v := out.Get(x, 8, 0)
		if v < prev {
			t.Fatalf("distance decreased moving into the interior: x=%d v=%d prev=%d", x, v, prev)
		}
		prev = v
	}
}

func TestChamferAllMaskedOutStaysZero(t *testing.T) {
	m := raster.New[uint8](5, 5, 1) // all zero: nothing masked in
	out := Chamfer(m)
	for _, v := range out.Data {
		if v != 0 {
			t.Fatalf("all-masked-out mask should produce all-zero distances, got %d", v)
		}
	}
}

func TestChamferAllMaskedInSaturates(t *testing.T) {
	m := raster.New[uint8](9, 9, 1)
	for i := range m.Data {
		m.Data[i] = 255
	}
	// No masked-out seed anywhere: every pixel falls back to the
	// out-of-bounds Inf-then-clamp path and saturates at 255.
	out := Chamfer(m)
	for _, v := range out.Data {
		if v != 255 {
			t.Fatalf("mask with no masked-out seed should saturate to 255, got %d", v)
		}
	}
}
