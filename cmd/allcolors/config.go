package main

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/setanarut/allcolors"
)

const (
	defaultOut      = "finished.png"
	defaultGIFDelay = 4
	defaultPaletteK = 6
)

type Config struct {
	Bits     int     `json:"bits"`
	Aspect   float64 `json:"aspect"`
	Slack    float64 `json:"slack,omitempty"`
	RandSeed uint64  `json:"randSeed,omitempty"`
	Workers  int     `json:"workers,omitempty"`

	Out   string `json:"out"`
	Scale int    `json:"scale,omitempty"`

	GIFOut   string `json:"gifOut,omitempty"`
	GIFEvery int    `json:"gifEvery,omitempty"`
	GIFDelay int    `json:"gifDelay,omitempty"`

	// Seed colours are taken from this image instead of black at (0,0).
	Palette       string `json:"palette,omitempty"`
	PaletteK      int    `json:"paletteK,omitempty"`
	PaletteMethod string `json:"paletteMethod,omitempty"`
	PaletteOut    string `json:"paletteOut,omitempty"`
}

func defaultConfig() Config {
	opt := allcolors.DefaultOptions()
	return Config{
		Bits:     opt.Bits,
		Aspect:   opt.Aspect,
		Slack:    opt.Slack,
		Workers:  opt.Workers,
		Out:      defaultOut,
		Scale:    1,
		GIFEvery: 1,
		GIFDelay: defaultGIFDelay,
		PaletteK: defaultPaletteK,
	}
}

// loadConfig reads a JSON config. Missing or zero fields keep their defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	def := defaultConfig()
	if cfg.Out == "" {
		cfg.Out = def.Out
	}
	if cfg.Scale <= 0 {
		cfg.Scale = def.Scale
	}
	if cfg.GIFEvery <= 0 {
		cfg.GIFEvery = def.GIFEvery
	}
	if cfg.GIFDelay <= 0 {
		cfg.GIFDelay = def.GIFDelay
	}
	if cfg.PaletteK <= 0 {
		cfg.PaletteK = def.PaletteK
	}
	if cfg.Slack == 0 {
		cfg.Slack = def.Slack
	}
	return cfg, nil
}

// applyFlags overrides cfg with every flag set on the command line.
func applyFlags(c *cli.Context, cfg *Config) {
	if c.IsSet(flagBits) {
		cfg.Bits = c.Int(flagBits)
	}
	if c.IsSet(flagAspect) {
		cfg.Aspect = c.Float64(flagAspect)
	}
	if c.IsSet(flagSlack) {
		cfg.Slack = c.Float64(flagSlack)
	}
	if c.IsSet(flagSeed) {
		cfg.RandSeed = c.Uint64(flagSeed)
	}
	if c.IsSet(flagWorkers) {
		cfg.Workers = c.Int(flagWorkers)
	}
	if c.IsSet(flagOut) {
		cfg.Out = c.String(flagOut)
	}
	if c.IsSet(flagScale) {
		cfg.Scale = c.Int(flagScale)
	}
	if c.IsSet(flagGIF) {
		cfg.GIFOut = c.String(flagGIF)
	}
	if c.IsSet(flagGIFEvery) {
		cfg.GIFEvery = c.Int(flagGIFEvery)
	}
	if c.IsSet(flagPalette) {
		cfg.Palette = c.String(flagPalette)
	}
	if c.IsSet(flagPaletteK) {
		cfg.PaletteK = c.Int(flagPaletteK)
	}
	if c.IsSet(flagPaletteMethod) {
		cfg.PaletteMethod = c.String(flagPaletteMethod)
	}
	if c.IsSet(flagPaletteOut) {
		cfg.PaletteOut = c.String(flagPaletteOut)
	}
}

func (cfg Config) options(logger *zap.SugaredLogger) allcolors.Options {
	opt := allcolors.OptionsFromBits(cfg.Bits)
	opt.Aspect = cfg.Aspect
	opt.Slack = cfg.Slack
	opt.RandSeed = cfg.RandSeed
	if cfg.Workers > 0 {
		opt.Workers = cfg.Workers
	}
	opt.Logger = logger
	return opt
}
