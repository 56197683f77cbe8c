// Command blend stitches or feather-blends JPEG images across a shared
// canvas using seam-hiding pyramid compositing, and generates convenience
// step masks.
//
// Usage:
//
//	blend stitch --bands 4 --out out.jpg left.jpg:auto right.jpg:auto
//	blend feather --distance --out out.jpg a.jpg:a-mask.jpg b.jpg:b-mask.jpg
//	blend mask --side left --range 0.2 --size 512x512 --out mask.jpg
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/blendkit/pyramid"
	"github.com/blendkit/pyramid/internal/log"
	"github.com/blendkit/pyramid/jpegio"
	"github.com/blendkit/pyramid/mask"
	"github.com/blendkit/pyramid/raster"
)

func main() {
	app := cli.NewApp()
	app.Name = "blend"
	app.Usage = "seam-hiding multi-resolution pyramid image compositor"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "log-level", Value: "info", Usage: "panic, fatal, error, warn, info, debug, trace"},
	}
	app.Commands = []cli.Command{
		stitchCommand,
		featherCommand,
		maskCommand,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "blend: %v\n", err)
		os.Exit(1)
	}
}

var stitchCommand = cli.Command{
	Name:      "stitch",
	Usage:     "multi-band blend a set of image:mask pairs onto a shared canvas",
	ArgsUsage: "img1.jpg:mask1-or-auto img2.jpg:mask2-or-auto ...",
	Flags: []cli.Flag{
		cli.IntFlag{Name: "bands", Value: 4, Usage: "number of pyramid bands"},
		cli.StringFlag{Name: "out", Usage: "output JPEG path", Required: true},
		cli.IntFlag{Name: "quality", Value: 92, Usage: "output JPEG quality 1-100"},
	},
	Action: func(c *cli.Context) error {
		logger := log.New(log.ParseLevel(c.GlobalString("log-level")))
		inputs, err := parseInputs(c.Args())
		if err != nil {
			return errors.Wrap(err, "stitch")
		}

		canvas, err := canvasFromFirst(inputs)
		if err != nil {
			return errors.Wrap(err, "stitch")
		}

		b, err := pyramid.NewMultiBand(canvas, c.Int("bands"))
		if err != nil {
			return errors.Wrap(err, "stitch: creating blender")
		}
		defer b.Close()

		for _, in := range inputs {
			logger.Info().Str("image", in.imagePath).Msg("feeding input")
			if err := b.Feed(in.img, in.mask, raster.Point{}); err != nil {
				return errors.Wrapf(err, "stitch: feeding %s", in.imagePath)
			}
		}
		if err := b.Blend(); err != nil {
			return errors.Wrap(err, "stitch: blending")
		}
		result, err := b.Result()
		if err != nil {
			return errors.Wrap(err, "stitch: reading result")
		}
		if err := jpegio.Compress(c.String("out"), result, c.Int("quality")); err != nil {
			return errors.Wrap(err, "stitch: writing output")
		}
		logger.Info().Str("out", c.String("out")).Msg("done")
		return nil
	},
}

var featherCommand = cli.Command{
	Name:      "feather",
	Usage:     "single-resolution weighted-average blend a set of image:mask pairs",
	ArgsUsage: "img1.jpg:mask1-or-auto img2.jpg:mask2-or-auto ...",
	Flags: []cli.Flag{
		cli.BoolFlag{Name: "distance", Usage: "apply chamfer distance-transform falloff to each mask"},
		cli.StringFlag{Name: "out", Usage: "output JPEG path", Required: true},
		cli.IntFlag{Name: "quality", Value: 92, Usage: "output JPEG quality 1-100"},
	},
	Action: func(c *cli.Context) error {
		logger := log.New(log.ParseLevel(c.GlobalString("log-level")))
		inputs, err := parseInputs(c.Args())
		if err != nil {
			return errors.Wrap(err, "feather")
		}

		canvas, err := canvasFromFirst(inputs)
		if err != nil {
			return errors.Wrap(err, "feather")
		}

		b, err := pyramid.NewFeather(canvas, c.Bool("distance"))
		if err != nil {
			return errors.Wrap(err, "feather: creating blender")
		}
		defer b.Close()

		for _, in := range inputs {
			logger.Info().Str("image", in.imagePath).Msg("feeding input")
			if err := b.Feed(in.img, in.mask, raster.Point{}); err != nil {
				return errors.Wrapf(err, "feather: feeding %s", in.imagePath)
			}
		}
		if err := b.Blend(); err != nil {
			return errors.Wrap(err, "feather: blending")
		}
		result, err := b.Result()
		if err != nil {
			return errors.Wrap(err, "feather: reading result")
		}
		if err := jpegio.Compress(c.String("out"), result, c.Int("quality")); err != nil {
			return errors.Wrap(err, "feather: writing output")
		}
		logger.Info().Str("out", c.String("out")).Msg("done")
		return nil
	},
}

var maskCommand = cli.Command{
	Name:  "mask",
	Usage: "generate a convenience step mask",
	Flags: []cli.Flag{
		cli.StringFlag{Name: "side", Usage: "left, right, top, or bottom", Required: true},
		cli.Float64Flag{Name: "range", Value: 0.2, Usage: "fraction of width/height to cut"},
		cli.StringFlag{Name: "size", Usage: "WxH, e.g. 512x512", Required: true},
		cli.StringFlag{Name: "out", Usage: "output JPEG path", Required: true},
	},
	Action: func(c *cli.Context) error {
		w, h, err := parseSize(c.String("size"))
		if err != nil {
			return errors.Wrap(err, "mask")
		}

		var m raster.U8
		switch c.String("side") {
		case "left":
			m = mask.Horizontal(w, h, c.Float64("range"), true, false)
		case "right":
			m = mask.Horizontal(w, h, c.Float64("range"), false, true)
		case "top":
			m = mask.Vertical(w, h, c.Float64("range"), true, false)
		case "bottom":
			m = mask.Vertical(w, h, c.Float64("range"), false, true)
		default:
			return errors.Errorf("mask: unknown --side %q", c.String("side"))
		}

		if err := jpegio.CompressGray(c.String("out"), m, 95); err != nil {
			return errors.Wrap(err, "mask: writing output")
		}
		return nil
	},
}

type input struct {
	imagePath string
	img, mask raster.U8
}

// parseInputs decodes each "image.jpg:mask.jpg" or "image.jpg:auto"
// positional argument into a loaded image/mask pair. "auto" produces an
// all-255 mask (spec.md's Open Question 4 default).
func parseInputs(args cli.Args) ([]input, error) {
	if len(args) == 0 {
		return nil, errors.New("at least one image:mask argument is required")
	}
	inputs := make([]input, 0, len(args))
	for _, arg := range args {
		imagePath, maskSpec, ok := strings.Cut(arg, ":")
		if !ok {
			return nil, errors.Errorf("argument %q must be image:mask or image:auto", arg)
		}

		img, err := jpegio.Decompress(imagePath)
		if err != nil {
			return nil, err
		}

		var m raster.U8
		if maskSpec == "auto" {
			m = mask.Horizontal(img.Width, img.Height, 0, false, false)
		} else {
			m, err = jpegio.Decompress(maskSpec)
			if err != nil {
				return nil, err
			}
			if m.Channels != 1 {
				m = toGrayMask(m)
			}
		}

		inputs = append(inputs, input{imagePath: imagePath, img: img, mask: m})
	}
	return inputs, nil
}

func toGrayMask(r raster.U8) raster.U8 {
	g := raster.New[uint8](r.Width, r.Height, 1)
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			g.Set(x, y, 0, r.Get(x, y, 0))
		}
	}
	return g
}

// canvasFromFirst derives the output canvas from the first input's
// dimensions; every subsequent input is fed at the same top-left.
func canvasFromFirst(inputs []input) (raster.Rect, error) {
	if len(inputs) == 0 {
		return raster.Rect{}, errors.New("no inputs")
	}
	first := inputs[0].img
	return raster.Rect{Width: first.Width, Height: first.Height}, nil
}

func parseSize(spec string) (int, int, error) {
	w, h, ok := strings.Cut(spec, "x")
	if !ok {
		return 0, 0, errors.Errorf("--size must be WxH, got %q", spec)
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "--size width %q", w)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "--size height %q", h)
	}
	return width, height, nil
}
