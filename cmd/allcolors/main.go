// Package main grows an image that uses every colour of a cube exactly once
// and writes it to disk.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/setanarut/allcolors"
	"github.com/setanarut/allcolors/utils"
)

const (
	// Flags.
	flagConfig        = "config"
	flagBits          = "bits"
	flagAspect        = "aspect"
	flagSlack         = "slack"
	flagSeed          = "seed"
	flagWorkers       = "workers"
	flagOut           = "out"
	flagScale         = "scale"
	flagGIF           = "gif"
	flagGIFEvery      = "gif-every"
	flagPalette       = "palette"
	flagPaletteK      = "palette-k"
	flagPaletteMethod = "palette-method"
	flagPaletteOut    = "palette-out"
	flagDebug         = "debug"
)

func main() {
	app := &cli.App{
		Name:  "allcolors",
		Usage: "grow an image containing every color of a cube exactly once",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: flagConfig, Aliases: []string{"c"}, Usage: "load configuration from JSON `FILE`"},
			&cli.IntFlag{Name: flagBits, Aliases: []string{"b"}, Value: 8, Usage: "bits per color channel (1-8)"},
			&cli.Float64Flag{Name: flagAspect, Aliases: []string{"a"}, Value: 1.5, Usage: "width/height ratio"},
			&cli.Float64Flag{Name: flagSlack, Value: 0.95, Usage: "grid area as a fraction of the color count"},
			&cli.Uint64Flag{Name: flagSeed, Usage: "frontier RNG seed, 0 for time based"},
			&cli.IntFlag{Name: flagWorkers, Usage: "snapshot rescale workers, 0 for GOMAXPROCS"},
			&cli.StringFlag{Name: flagOut, Aliases: []string{"o"}, Value: defaultOut, Usage: "output PNG `FILE`"},
			&cli.IntFlag{Name: flagScale, Value: 1, Usage: "integer upscale for outputs"},
			&cli.StringFlag{Name: flagGIF, Usage: "record the growth as an animated GIF `FILE`"},
			&cli.IntFlag{Name: flagGIFEvery, Value: 1, Usage: "keep every Nth frame in the GIF"},
			&cli.StringFlag{Name: flagPalette, Usage: "seed from the dominant colors of image `FILE`"},
			&cli.IntFlag{Name: flagPaletteK, Value: defaultPaletteK, Usage: "number of palette seeds"},
			&cli.StringFlag{Name: flagPaletteMethod, Value: "dominantcolor", Usage: "dominantcolor or kmeans"},
			&cli.StringFlag{Name: flagPaletteOut, Usage: "write the seed palette swatch to `FILE`"},
			&cli.BoolFlag{Name: flagDebug, Aliases: []string{"vvv"}, Usage: "enable debug logging"},
		},
		Action: func(c *cli.Context) error {
			var zl *zap.Logger
			var err error
			if c.Bool(flagDebug) {
				zl, err = zap.NewDevelopment()
			} else {
				zl, err = zap.NewProduction()
			}
			if err != nil {
				return err
			}
			//nolint:errcheck
			defer zl.Sync()
			logger := zl.Sugar()

			cfg := defaultConfig()
			if path := c.String(flagConfig); path != "" {
				if cfg, err = loadConfig(path); err != nil {
					return err
				}
			}
			applyFlags(c, &cfg)

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
			defer stop()
			return run(ctx, cfg, logger)
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// seed places the palette seeds when a palette image is configured, or
// black in the top-left corner otherwise.
func seed(eng *allcolors.Engine, cfg Config, logger *zap.SugaredLogger) error {
	if cfg.Palette == "" {
		return eng.Seed(0, 0, allcolors.Color{})
	}
	method, err := utils.ParsePaletteMethod(cfg.PaletteMethod)
	if err != nil {
		return err
	}
	img, err := utils.ReadImage(cfg.Palette)
	if err != nil {
		return err
	}
	palette := utils.ExtractPalette(img, cfg.PaletteK, method, logger)
	if len(palette) == 0 {
		return errors.Errorf("no palette colors found in %s", cfg.Palette)
	}
	utils.SortPaletteByBrightness(palette)
	if cfg.PaletteOut != "" {
		if err := utils.SavePalette(palette, 64, cfg.PaletteOut); err != nil {
			return err
		}
	}

	colors := allcolors.QuantizePalette(palette, eng.Bits())
	points := allcolors.RingLayout(len(colors), eng.Width(), eng.Height())
	colors = colors[:len(points)]
	logger.Infow("seeding from palette", "image", cfg.Palette, "method", method, "seeds", len(colors))
	return eng.SeedAll(points, colors)
}

func run(ctx context.Context, cfg Config, logger *zap.SugaredLogger) error {
	eng, err := allcolors.New(cfg.options(logger))
	if err != nil {
		return err
	}
	if err := seed(eng, cfg, logger); err != nil {
		return err
	}

	var rec *utils.GIFRecorder
	if cfg.GIFOut != "" {
		rec = utils.NewGIFRecorder(cfg.GIFDelay, cfg.GIFEvery, cfg.Scale)
	}

	start := time.Now()
	frames := 0
	for !eng.IsComplete() {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, "interrupted")
		}
		frame := eng.Advance()
		frames++
		if rec != nil {
			rec.Add(frame.Image())
		}
		if frames%50 == 0 {
			logger.Debugw("progress", "frame", frames, "remaining", eng.Remaining(), "elapsed", time.Since(start))
		}
	}

	st := eng.Stats()
	logger.Infow("finished",
		"width", eng.Width(), "height", eng.Height(), "frames", frames, "elapsed", time.Since(start),
		"placed", st.Placed, "unused", st.Remaining, "exhausted", st.Exhausted,
		"meanError", st.MeanError, "p95Error", st.P95Error, "maxError", st.MaxError)

	final := eng.RenderSnapshot().Image()
	err = utils.SaveImageScaled(final, cfg.Scale, cfg.Out)
	if rec != nil {
		rec.AddFrame(final)
		err = multierr.Append(err, rec.Save(cfg.GIFOut))
	}
	return err
}
