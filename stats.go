package allcolors

import (
	"math/rand/v2"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarises a run. Errors are Euclidean distances in native colour
// units between a cell's estimated target and the colour it received,
// measured over a uniform sample of steps.
type Stats struct {
	Steps     int // colours placed by Step
	Placed    int // placed cells, seeds included
	Exhausted int // steps that found no colour
	Remaining int // colours still in the index
	Frontier  int // pending cells
	Complete  bool

	Samples     int
	MeanError   float64
	StdDevError float64
	MedianError float64
	P95Error    float64
	MaxError    float64
}

// Stats returns the current run summary.
func (e *Engine) Stats() Stats {
	s := Stats{
		Steps:     e.steps,
		Placed:    e.grid.PlacedCount(),
		Exhausted: e.exhausted,
		Remaining: e.index.Len(),
		Frontier:  e.grid.FrontierLen(),
		Complete:  e.grid.IsComplete(),
	}
	xs := slices.Clone(e.errs.vals)
	s.Samples = len(xs)
	if len(xs) == 0 {
		return s
	}
	slices.Sort(xs)
	s.MeanError = stat.Mean(xs, nil)
	if len(xs) > 1 {
		s.StdDevError = stat.StdDev(xs, nil)
	}
	s.MedianError = stat.Quantile(0.5, stat.Empirical, xs, nil)
	s.P95Error = stat.Quantile(0.95, stat.Empirical, xs, nil)
	s.MaxError = floats.Max(xs)
	return s
}

// reservoir keeps a uniform sample of at most size values from a stream.
type reservoir struct {
	size int
	seen int
	vals []float64
	rng  *rand.Rand
}

func newReservoir(size int, seed uint64) reservoir {
	return reservoir{
		size: size,
		rng:  rand.New(rand.NewPCG(seed^0x5bd1e995, seed)),
	}
}

func (r *reservoir) add(v float64) {
	if r.size <= 0 {
		return
	}
	r.seen++
	if len(r.vals) < r.size {
		r.vals = append(r.vals, v)
		return
	}
	if j := r.rng.IntN(r.seen); j < r.size {
		r.vals[j] = v
	}
}
