package allcolors

import (
	"image"
	"math/rand/v2"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
)

func newTestGrid(w, h int) *PixelGrid {
	return NewPixelGrid(w, h, rand.New(rand.NewPCG(1, 2)))
}

func drain(g *PixelGrid) []image.Point {
	var out []image.Point
	for {
		p, ok := g.PickFrontier()
		if !ok {
			return out
		}
		out = append(out, p)
	}
}

func TestPixelGridPlace(t *testing.T) {
	t.Run("out of bounds", func(t *testing.T) {
		g := newTestGrid(3, 2)
		for _, p := range []image.Point{{-1, 0}, {0, -1}, {3, 0}, {0, 2}} {
			err := g.Place(p.X, p.Y, Color{})
			test.That(t, errors.Is(err, ErrOutOfBounds), test.ShouldBeTrue)
		}
		test.That(t, g.PlacedCount(), test.ShouldEqual, 0)
		test.That(t, g.IsComplete(), test.ShouldBeTrue)
	})

	t.Run("corner queues three neighbours", func(t *testing.T) {
		g := newTestGrid(4, 4)
		test.That(t, g.Place(0, 0, Color{1, 2, 3}), test.ShouldBeNil)
		test.That(t, g.FrontierLen(), test.ShouldEqual, 3)
		test.That(t, g.State(0, 0), test.ShouldEqual, Placed)
		test.That(t, g.State(1, 1), test.ShouldEqual, Frontier)
		test.That(t, g.State(2, 2), test.ShouldEqual, Free)
		c, ok := g.NeighborColor(0, 0)
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, c, test.ShouldResemble, Color{1, 2, 3})
		_, ok = g.NeighborColor(1, 1)
		test.That(t, ok, test.ShouldBeFalse)
		_, ok = g.NeighborColor(-1, 0)
		test.That(t, ok, test.ShouldBeFalse)
	})

	t.Run("coordinates are queued once", func(t *testing.T) {
		g := newTestGrid(5, 5)
		// Place a cross so the centre neighbourhood is reached from several sides.
		for _, p := range []image.Point{{2, 2}, {1, 2}, {3, 2}, {2, 1}, {2, 3}} {
			test.That(t, g.Place(p.X, p.Y, Color{}), test.ShouldBeNil)
		}
		picked := drain(g)
		seen := map[image.Point]int{}
		for _, p := range picked {
			seen[p]++
		}
		for p, n := range seen {
			test.That(t, n, test.ShouldEqual, 1)
			test.That(t, g.State(p.X, p.Y), test.ShouldNotEqual, Free)
		}
		// 5x5 block minus the four corners is reached; everything but the
		// first placement was queued.
		test.That(t, len(picked), test.ShouldEqual, 5*5-4-1)
		test.That(t, g.IsComplete(), test.ShouldBeTrue)
	})
}

func TestPixelGridCompletionIsMonotonic(t *testing.T) {
	g := newTestGrid(3, 3)
	test.That(t, g.Place(1, 1, Color{}), test.ShouldBeNil)
	for !g.IsComplete() {
		p, ok := g.PickFrontier()
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, g.Place(p.X, p.Y, Color{}), test.ShouldBeNil)
	}
	test.That(t, g.PlacedCount(), test.ShouldEqual, 9)
	for y := range 3 {
		for x := range 3 {
			test.That(t, g.Place(x, y, Color{5, 5, 5}), test.ShouldBeNil)
			test.That(t, g.IsComplete(), test.ShouldBeTrue)
		}
	}
	test.That(t, g.PlacedCount(), test.ShouldEqual, 9)
}

func TestPixelGridPickIsUniform(t *testing.T) {
	const trials = 8000
	counts := map[image.Point]int{}
	rng := rand.New(rand.NewPCG(3, 4))
	for range trials {
		g := NewPixelGrid(3, 3, rng)
		test.That(t, g.Place(1, 1, Color{}), test.ShouldBeNil)
		p, ok := g.PickFrontier()
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, g.FrontierLen(), test.ShouldEqual, 7)
		counts[p]++
	}
	test.That(t, len(counts), test.ShouldEqual, 8)
	for _, n := range counts {
		test.That(t, n, test.ShouldBeBetween, trials/8-250, trials/8+250)
	}
}

func TestPixelGridSnapshot(t *testing.T) {
	g := newTestGrid(2, 2)
	test.That(t, g.Place(1, 0, Color{3, 2, 1}), test.ShouldBeNil)
	def := Color{9, 9, 9}
	f := g.Snapshot(def)
	test.That(t, f.Width, test.ShouldEqual, 2)
	test.That(t, f.Height, test.ShouldEqual, 2)
	test.That(t, f.At(1, 0), test.ShouldResemble, Color{3, 2, 1})
	test.That(t, f.At(0, 0), test.ShouldResemble, def)
	test.That(t, f.At(0, 1), test.ShouldResemble, def)
	test.That(t, f.At(1, 1), test.ShouldResemble, def)
}
