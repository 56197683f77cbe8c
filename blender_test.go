package pyramid

import (
	"testing"

	"github.com/blendkit/pyramid/raster"
)

func TestNewDispatchesOnKind(t *testing.T) {
	mb, err := New(KindMultiBand, raster.Rect{Width: 8, Height: 8}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := mb.(*multiBand); !ok {
		t.Fatalf("New(KindMultiBand) returned %T, want *multiBand", mb)
	}

	ft, err := New(KindFeather, raster.Rect{Width: 8, Height: 8}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := ft.(*feather); !ok {
		t.Fatalf("New(KindFeather) returned %T, want *feather", ft)
	}
}

func TestNewMultiBandRejectsNegativeBands(t *testing.T) {
	if _, err := NewMultiBand(raster.Rect{Width: 8, Height: 8}, -1); err != ErrInvalidBands {
		t.Fatalf("expected ErrInvalidBands, got %v", err)
	}
}

func TestNewMultiBandClampsBandsToMaxBands(t *testing.T) {
	b, err := NewMultiBand(raster.Rect{Width: 1024, Height: 1024}, 99)
	if err != nil {
		t.Fatal(err)
	}
	mb := b.(*multiBand)
	if mb.numBands > MaxBands {
		t.Fatalf("numBands = %d, want <= %d", mb.numBands, MaxBands)
	}
}

func TestNewFeatherWithDistanceTransformEnablesFlag(t *testing.T) {
	b, err := NewFeather(raster.Rect{Width: 4, Height: 4}, true)
	if err != nil {
		t.Fatal(err)
	}
	f := b.(*feather)
	if !f.doDistanceXform {
		t.Fatal("expected doDistanceXform to be true")
	}
}
