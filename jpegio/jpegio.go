// Package jpegio decodes and encodes the JPEG files the blending core
// reads its inputs from and writes its outputs to. No JPEG codec exists
// anywhere in this repository's retrieval pack (its bundled image
// codecs are all WebP-family), so this package wraps the standard
// library's image/jpeg rather than a pack dependency — see DESIGN.md.
package jpegio

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/blendkit/pyramid/internal/pool"
	"github.com/blendkit/pyramid/raster"
)

// ErrUnsupportedColorModel is returned by Decompress when the decoded
// JPEG's color model is neither YCbCr nor Gray.
var ErrUnsupportedColorModel = errors.New("jpegio: unsupported color model")

// Decompress reads path and returns its pixels as a 3-channel U8 RGB
// raster, matching deepteams-webp's Decode/DecodeConfig shape but fixed
// to RGB output regardless of the source's channel count (Gray sources
// are broadcast across all three channels). Returns ErrUnsupportedColorModel
// if the decoded image is neither YCbCr nor Gray.
func Decompress(path string) (raster.U8, error) {
	f, err := os.Open(path)
	if err != nil {
		return raster.U8{}, errors.Wrapf(err, "jpegio: opening %s", path)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return raster.U8{}, errors.Wrapf(err, "jpegio: stat %s", path)
	}

	// The raw JPEG bytes are staged through internal/pool rather than
	// jpeg.Decode reading straight off f: cmd/blend's stitch/feather
	// subcommands decode one file per fed input, and the staging buffer
	// is reused across those calls instead of allocated fresh each time.
	buf := pool.Get(int(stat.Size()))
	defer pool.Put(buf)
	if _, err := io.ReadFull(f, buf); err != nil {
		return raster.U8{}, errors.Wrapf(err, "jpegio: reading %s", path)
	}

	img, err := jpeg.Decode(bytes.NewReader(buf))
	if err != nil {
		return raster.U8{}, errors.Wrapf(err, "jpegio: decoding %s", path)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := raster.New[uint8](w, h, 3)

	switch src := img.(type) {
	case *image.YCbCr:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				r, g, b, _ := src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
				out.Set(x, y, 0, uint8(r>>8))
				out.Set(x, y, 1, uint8(g>>8))
				out.Set(x, y, 2, uint8(b>>8))
			}
		}
	case *image.Gray:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				v := src.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y
				out.Set(x, y, 0, v)
				out.Set(x, y, 1, v)
				out.Set(x, y, 2, v)
			}
		}
	default:
		return raster.U8{}, ErrUnsupportedColorModel
	}
	return out, nil
}

// Compress writes r (a 3-channel U8 RGB raster) to path as a JPEG at the
// given quality (clamped to [1, 100]).
func Compress(path string, r raster.U8, quality int) error {
	if r.Channels != 3 {
		return errors.New("jpegio: Compress requires a 3-channel raster")
	}
	img := toRGBA(r)
	return writeJPEG(path, img, quality)
}

// CompressGray writes a single-channel U8 raster (e.g. a mask) to path
// as a grayscale JPEG at the given quality.
func CompressGray(path string, r raster.U8, quality int) error {
	if r.Channels != 1 {
		return errors.New("jpegio: CompressGray requires a 1-channel raster")
	}
	img := image.NewGray(image.Rect(0, 0, r.Width, r.Height))
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			img.SetGray(x, y, color.Gray{Y: r.Get(x, y, 0)})
		}
	}
	return writeJPEG(path, img, quality)
}

func toRGBA(r raster.U8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: r.Get(x, y, 0),
				G: r.Get(x, y, 1),
				B: r.Get(x, y, 2),
				A: 255,
			})
		}
	}
	return img
}

func writeJPEG(path string, img image.Image, quality int) error {
	if quality < 1 {
		quality = 1
	}
	if quality > 100 {
		quality = 100
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "jpegio: creating %s", path)
	}
	defer f.Close()

	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: quality}); err != nil {
		return errors.Wrapf(err, "jpegio: encoding %s", path)
	}
	return nil
}
