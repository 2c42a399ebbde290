package allcolors

import (
	"math"
	"runtime"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type Options struct {
	// Bits per colour channel. The image holds 2^(3*Bits) colours.
	// 8 gives the full 24-bit cube (16.7M colours); 5-6 finish in seconds.
	Bits int
	// Target width/height ratio of the grid.
	Aspect float64
	// Fraction of the colour count the grid area aims for. Values below 1
	// leave spare colours so the growth never starves near the borders.
	// Ideal: 0.95.
	Slack float64
	// Seed for the frontier RNG. 0 seeds from the clock.
	RandSeed uint64
	// Worker goroutines used to rescale snapshots. <= 0 => GOMAXPROCS.
	Workers int
	// Match errors kept for Stats. <= 0 disables sampling.
	StatsSamples int
	// Logger for engine events. nil => no-op.
	Logger *zap.SugaredLogger
}

func DefaultOptions() Options {
	return Options{
		Bits:         8,
		Aspect:       1.5,
		Slack:        0.95,
		Workers:      runtime.GOMAXPROCS(0),
		StatsSamples: 1 << 14,
	}
}

// OptionsFromBits returns DefaultOptions at the given depth. Shallow cubes
// get fewer stat samples since they have fewer steps.
func OptionsFromBits(bits int) Options {
	opt := DefaultOptions()
	opt.Bits = bits
	if bits >= 0 && bits <= MaxBits {
		opt.StatsSamples = min(opt.StatsSamples, 1<<(3*bits))
	}
	return opt
}

// Validate reports every invalid field at once.
func (o Options) Validate() error {
	var err error
	if o.Bits < 1 || o.Bits > MaxBits {
		err = multierr.Append(err, errors.Errorf("bits %d outside [1, %d]", o.Bits, MaxBits))
	}
	if !(o.Aspect > 0) || math.IsInf(o.Aspect, 0) {
		err = multierr.Append(err, errors.Errorf("aspect %v must be positive and finite", o.Aspect))
	}
	if !(o.Slack > 0 && o.Slack <= 1) {
		err = multierr.Append(err, errors.Errorf("slack %v outside (0, 1]", o.Slack))
	}
	if err != nil {
		return errors.Wrap(multierr.Append(ErrInvalidOptions, err), "validate options")
	}
	return nil
}

// Dimensions derives the grid size for a colour cube of the given depth so
// that width*height is about slack times the colour count and width/height
// is about aspect. Both sides are at least 1.
func Dimensions(bits int, aspect, slack float64) (w, h int) {
	colors := float64(uint64(1) << (3 * bits))
	side := math.Sqrt(slack)
	w = int(math.Sqrt(colors*aspect) * side)
	h = int(math.Sqrt(colors/aspect) * side)
	return max(w, 1), max(h, 1)
}
