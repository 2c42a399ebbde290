package allcolors

import (
	"context"
	"image"
	"math"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Engine grows an image that uses every colour of a 2^bits per channel cube
// once. Each step takes a random frontier cell, estimates a colour from its
// placed neighbours and consumes the closest colour still in the index.
//
// Engine is not safe for concurrent use. Steps mutate the index and grid and
// must run one after another.
type Engine struct {
	opts      Options
	index     *ColorIndex
	grid      *PixelGrid
	logger    *zap.SugaredLogger
	steps     int
	exhausted int
	errs      reservoir
	finished  bool
}

// New validates opts, sizes the grid and builds a full colour index.
func New(opts Options) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	seed := opts.RandSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	index, err := NewColorIndex(opts.Bits)
	if err != nil {
		return nil, err
	}
	w, h := Dimensions(opts.Bits, opts.Aspect, opts.Slack)
	e := &Engine{
		opts:   opts,
		index:  index,
		grid:   NewPixelGrid(w, h, rand.New(rand.NewPCG(seed, seed>>1|1))),
		logger: logger,
		errs:   newReservoir(opts.StatsSamples, seed),
	}
	logger.Debugw("engine created",
		"bits", opts.Bits, "width", w, "height", h, "cells", w*h, "colors", index.Len())
	return e, nil
}

// Width returns the grid width.
func (e *Engine) Width() int { return e.grid.W }

// Height returns the grid height.
func (e *Engine) Height() int { return e.grid.H }

// Bits returns the per-channel bit depth.
func (e *Engine) Bits() int { return e.index.Bits() }

// Remaining returns the number of colours not placed yet.
func (e *Engine) Remaining() int { return e.index.Len() }

// Exhausted returns how many steps found no colour left for a frontier cell.
func (e *Engine) Exhausted() int { return e.exhausted }

// Seed places c at (x, y) and takes it out of the index. Seeding a colour
// that is already used still places it.
func (e *Engine) Seed(x, y int, c Color) error {
	limit := 1 << e.index.Bits()
	if int(c.R) >= limit || int(c.G) >= limit || int(c.B) >= limit {
		return errors.Wrapf(ErrColorOutOfRange, "seed %v at %d bits", c, e.index.Bits())
	}
	if err := e.grid.Place(x, y, c); err != nil {
		return errors.Wrap(err, "seed")
	}
	e.index.Remove(c)
	return nil
}

// SeedAll seeds colors[i] at points[i].
func (e *Engine) SeedAll(points []image.Point, colors []Color) error {
	if len(points) != len(colors) {
		return errors.Errorf("%d seed points for %d colors", len(points), len(colors))
	}
	for i, p := range points {
		if err := e.Seed(p.X, p.Y, colors[i]); err != nil {
			return err
		}
	}
	return nil
}

// pick skips pending cells that were placed directly by Seed after they
// were queued.
func (e *Engine) pick() (image.Point, bool) {
	for {
		p, ok := e.grid.PickFrontier()
		if !ok || e.grid.State(p.X, p.Y) != Placed {
			return p, ok
		}
	}
}

func rms(sumSq float64, n int) uint8 {
	return uint8(math.Sqrt(sumSq / float64(n)))
}

// target is the per-channel root mean square of the placed colours in the
// 3x3 block around (x, y).
func (e *Engine) target(x, y int) Color {
	var sr, sg, sb float64
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			c, ok := e.grid.NeighborColor(x+dx, y+dy)
			if !ok {
				continue
			}
			sr += float64(c.R) * float64(c.R)
			sg += float64(c.G) * float64(c.G)
			sb += float64(c.B) * float64(c.B)
			n++
		}
	}
	if n == 0 {
		return Color{}
	}
	return Color{rms(sr, n), rms(sg, n), rms(sb, n)}
}

// Step runs one allocation. It returns false when the frontier was empty.
func (e *Engine) Step() bool {
	p, ok := e.pick()
	if !ok {
		return false
	}
	target := e.target(p.X, p.Y)
	c, dist, ok := e.index.Nearest(target)
	if !ok {
		e.exhausted++
		e.logger.Warnw("no color left for frontier cell",
			"x", p.X, "y", p.Y, "target", target, "frontier", e.grid.FrontierLen(), "err", ErrIndexExhausted)
		return true
	}
	if err := e.grid.Place(p.X, p.Y, c); err != nil {
		e.logger.Errorw("frontier placement failed", "x", p.X, "y", p.Y, "err", err)
		return true
	}
	e.index.Remove(c)
	e.steps++
	e.errs.add(math.Sqrt(float64(dist)))

	if !e.finished && e.grid.IsComplete() {
		e.finished = true
		e.logger.Infow("growth complete",
			"steps", e.steps, "placed", e.grid.PlacedCount(), "remaining", e.index.Len(), "exhausted", e.exhausted)
	}
	return true
}

// IsComplete reports whether the frontier is empty.
func (e *Engine) IsComplete() bool { return e.grid.IsComplete() }

// batch runs as many steps as the frontier holds right now.
func (e *Engine) batch() {
	for range e.grid.FrontierLen() {
		e.Step()
	}
}

// Advance runs one batch of steps and returns the rendered result. It is
// meant to be called once per display frame.
func (e *Engine) Advance() Frame {
	e.batch()
	return e.RenderSnapshot()
}

// Run steps until the frontier is empty. ctx is checked between batches.
func (e *Engine) Run(ctx context.Context) error {
	for !e.IsComplete() {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.batch()
	}
	return nil
}

// RenderSnapshot returns the current image with every channel scaled from
// the native depth to 8 bits (times 256/2^bits). Cells not placed are black.
func (e *Engine) RenderSnapshot() Frame {
	f := e.grid.Snapshot(Color{})
	scale := 256 >> e.index.Bits()
	if scale == 1 {
		return f
	}
	workers := e.opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	rescale(f, scale, workers)
	return f
}

// rescale multiplies every channel by scale, splitting rows into one band
// per worker. It returns after every band is done.
func rescale(f Frame, scale, workers int) {
	band := max(1, (f.Height+workers-1)/workers)
	var g errgroup.Group
	g.SetLimit(workers)
	for y0 := 0; y0 < f.Height; y0 += band {
		lo := y0 * f.Width
		hi := min(y0+band, f.Height) * f.Width
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				c := f.Pix[i]
				f.Pix[i] = Color{uint8(int(c.R) * scale), uint8(int(c.G) * scale), uint8(int(c.B) * scale)}
			}
			return nil
		})
	}
	//nolint:errcheck
	g.Wait()
}
