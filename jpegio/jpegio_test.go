package jpegio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/blendkit/pyramid/raster"
)

func TestCompressDecompressRoundTrip(t *testing.T) {
	r := raster.New[uint8](16, 12, 3)
	for y := 0; y < 12; y++ {
		for x := 0; x < 16; x++ {
			r.Set(x, y, 0, uint8(x*16))
			r.Set(x, y, 1, uint8(y*16))
			r.Set(x, y, 2, 128)
		}
	}

	path := filepath.Join(t.TempDir(), "out.jpg")
	if err := Compress(path, r, 95); err != nil {
		t.Fatalf("Compress: %v", err)
	}

	got, err := Decompress(path)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if got.Width != r.Width || got.Height != r.Height {
		t.Fatalf("size = %dx%d, want %dx%d", got.Width, got.Height, r.Width, r.Height)
	}
	// JPEG is lossy; allow generous per-channel tolerance.
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			for c := 0; c < 3; c++ {
				want := int(r.Get(x, y, c))
				got := int(got.Get(x, y, c))
				if d := want - got; d < -20 || d > 20 {
					t.Fatalf("(%d,%d,%d) = %d, want ~%d", x, y, c, got, want)
				}
			}
		}
	}
}

func TestCompressGray(t *testing.T) {
	m := raster.New[uint8](8, 8, 1)
	for i := range m.Data {
		m.Data[i] = 200
	}
	path := filepath.Join(t.TempDir(), "mask.jpg")
	if err := CompressGray(path, m, 90); err != nil {
		t.Fatalf("CompressGray: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file to exist: %v", err)
	}
}

func TestCompressRejectsWrongChannelCount(t *testing.T) {
	m := raster.New[uint8](4, 4, 1)
	path := filepath.Join(t.TempDir(), "bad.jpg")
	if err := Compress(path, m, 90); err == nil {
		t.Fatal("expected error for 1-channel raster passed to Compress")
	}
}

func TestDecompressMissingFile(t *testing.T) {
	if _, err := Decompress("/nonexistent/path/does-not-exist.jpg"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
