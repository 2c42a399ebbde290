package allcolors

import (
	"image"
	"math/rand/v2"

	"github.com/pkg/errors"
)

// CellState is the placement state of one grid cell.
type CellState uint8

const (
	// Free cells have never been next to a placed cell.
	Free CellState = iota
	// Frontier cells were queued once a neighbour got placed.
	Frontier
	// Placed cells hold their final colour.
	Placed
)

func (s CellState) String() string {
	switch s {
	case Frontier:
		return "frontier"
	case Placed:
		return "placed"
	default:
		return "free"
	}
}

// PixelGrid tracks the placement state of a fixed width x height image and
// the pending frontier. The frontier is an unordered slice. Picks swap the
// chosen entry with the last one and truncate.
type PixelGrid struct {
	W, H     int
	state    []CellState // len = W*H
	colors   []Color     // len = W*H, valid where state == Placed
	frontier []image.Point
	placed   int
	rng      *rand.Rand
}

// NewPixelGrid allocates an all-Free grid. rng drives PickFrontier.
func NewPixelGrid(w, h int, rng *rand.Rand) *PixelGrid {
	return &PixelGrid{
		W:      w,
		H:      h,
		state:  make([]CellState, w*h),
		colors: make([]Color, w*h),
		rng:    rng,
	}
}

func (g *PixelGrid) offset(x, y int) int {
	return y*g.W + x
}

func (g *PixelGrid) inBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Place stores c at (x, y) and queues every Free cell of the surrounding
// 3x3 block. Frontier and Placed neighbours are left alone, so a coordinate
// is queued at most once for the lifetime of the grid.
func (g *PixelGrid) Place(x, y int, c Color) error {
	if !g.inBounds(x, y) {
		return errors.Wrapf(ErrOutOfBounds, "place (%d, %d) on %dx%d grid", x, y, g.W, g.H)
	}
	off := g.offset(x, y)
	if g.state[off] != Placed {
		g.placed++
	}
	g.state[off] = Placed
	g.colors[off] = c

	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			nx, ny := x+dx, y+dy
			if !g.inBounds(nx, ny) {
				continue
			}
			n := g.offset(nx, ny)
			if g.state[n] != Free {
				continue
			}
			g.state[n] = Frontier
			g.frontier = append(g.frontier, image.Pt(nx, ny))
		}
	}
	return nil
}

// State returns the state of (x, y). Out-of-bounds coordinates read as Free.
func (g *PixelGrid) State(x, y int) CellState {
	if !g.inBounds(x, y) {
		return Free
	}
	return g.state[g.offset(x, y)]
}

// NeighborColor returns the colour at (x, y) if that cell is placed.
func (g *PixelGrid) NeighborColor(x, y int) (Color, bool) {
	if !g.inBounds(x, y) {
		return Color{}, false
	}
	off := g.offset(x, y)
	if g.state[off] != Placed {
		return Color{}, false
	}
	return g.colors[off], true
}

// PickFrontier removes and returns a uniformly random pending coordinate.
// The cell keeps its state; only a later Place changes it.
func (g *PixelGrid) PickFrontier() (image.Point, bool) {
	n := len(g.frontier)
	if n == 0 {
		return image.Point{}, false
	}
	i := g.rng.IntN(n)
	p := g.frontier[i]
	g.frontier[i] = g.frontier[n-1]
	g.frontier = g.frontier[:n-1]
	return p, true
}

// FrontierLen returns the number of pending coordinates.
func (g *PixelGrid) FrontierLen() int { return len(g.frontier) }

// PlacedCount returns the number of placed cells.
func (g *PixelGrid) PlacedCount() int { return g.placed }

// IsComplete reports whether nothing is pending. Cells that never touched a
// placed cell stay Free and do not keep the grid incomplete.
func (g *PixelGrid) IsComplete() bool { return len(g.frontier) == 0 }

// Snapshot copies the grid into a Frame, using def for every cell that is
// not placed.
func (g *PixelGrid) Snapshot(def Color) Frame {
	f := NewFrame(g.W, g.H)
	for i, s := range g.state {
		if s == Placed {
			f.Pix[i] = g.colors[i]
		} else {
			f.Pix[i] = def
		}
	}
	return f
}
