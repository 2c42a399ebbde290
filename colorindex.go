package allcolors

import (
	"math"

	"github.com/pkg/errors"
)

// MaxBits is the deepest per-channel bit depth a ColorIndex can hold.
// Colors keep one byte per channel.
const MaxBits = 8

// ColorIndex is an octree over the full colour cube [0, 2^bits)^3. It answers
// nearest-available queries and removes each colour at most once.
//
// Nodes are not allocated individually. An octant at depth d is addressed by
// its Morton prefix: the child index chosen at each level (R=4, G=2, B=1)
// appended three bits at a time. counts[d][prefix] holds the number of
// available leaves below that octant, and the leaves themselves are a bitset
// keyed by the full Morton code.
type ColorIndex struct {
	bits   int
	root   Cube
	counts [][]uint32
	leaves []uint64
}

// NewColorIndex builds a balanced octree with bits octant levels and
// 2^(3*bits) available leaves.
func NewColorIndex(bits int) (*ColorIndex, error) {
	if bits < 0 || bits > MaxBits {
		return nil, errors.Wrapf(ErrInvalidOptions, "bit depth %d outside [0, %d]", bits, MaxBits)
	}
	ix := &ColorIndex{
		bits:   bits,
		root:   NewCube(Color{}, 1<<bits),
		counts: make([][]uint32, bits),
	}
	for d := range bits {
		level := make([]uint32, 1<<(3*d))
		below := uint32(1) << (3 * (bits - d))
		for i := range level {
			level[i] = below
		}
		ix.counts[d] = level
	}

	total := 1 << (3 * bits)
	ix.leaves = make([]uint64, (total+63)/64)
	for i := range ix.leaves {
		ix.leaves[i] = math.MaxUint64
	}
	if rem := total % 64; rem != 0 {
		ix.leaves[len(ix.leaves)-1] = 1<<rem - 1
	}
	return ix, nil
}

// Bits returns the per-channel bit depth.
func (ix *ColorIndex) Bits() int { return ix.bits }

// Cube returns the root cube.
func (ix *ColorIndex) Cube() Cube { return ix.root }

// Len returns the number of colours still available.
func (ix *ColorIndex) Len() int {
	return int(ix.live(0, 0))
}

func (ix *ColorIndex) leafAvailable(code uint32) bool {
	return ix.leaves[code>>6]&(1<<(code&63)) != 0
}

func (ix *ColorIndex) live(depth int, code uint32) uint32 {
	if depth == ix.bits {
		if ix.leafAvailable(code) {
			return 1
		}
		return 0
	}
	return ix.counts[depth][code]
}

// leafCode interleaves the channel bits from the most significant level
// down, which is the path Cube.Octant takes from the root.
func (ix *ColorIndex) leafCode(p Color) uint32 {
	var code uint32
	for k := ix.bits - 1; k >= 0; k-- {
		oct := uint32(p.R>>k&1)<<2 | uint32(p.G>>k&1)<<1 | uint32(p.B>>k&1)
		code = code<<3 | oct
	}
	return code
}

// Available reports whether p has not been removed yet.
func (ix *ColorIndex) Available(p Color) bool {
	if !ix.root.Contains(p) {
		return false
	}
	return ix.leafAvailable(ix.leafCode(p))
}

// Remove marks p as used. It returns true the first time and false on every
// later call, leaving all counts untouched. Points outside the cube are
// rejected the same way.
func (ix *ColorIndex) Remove(p Color) bool {
	if !ix.root.Contains(p) {
		return false
	}
	code := ix.leafCode(p)
	if !ix.leafAvailable(code) {
		return false
	}
	ix.leaves[code>>6] &^= 1 << (code & 63)
	for d := range ix.bits {
		ix.counts[d][code>>(3*(ix.bits-d))]--
	}
	return true
}

type candidate struct {
	code  uint32
	cube  Cube
	bound int
}

type search struct {
	target Color
	point  Color
	best   int
	found  bool
}

// Nearest returns the available colour closest to target together with its
// squared distance. ok is false only when every colour has been removed.
// Ties go to the leaf the search reaches first.
func (ix *ColorIndex) Nearest(target Color) (c Color, dist int, ok bool) {
	s := search{target: target, best: math.MaxInt}
	ix.nearest(0, 0, ix.root, &s)
	return s.point, s.best, s.found
}

func (ix *ColorIndex) nearest(depth int, code uint32, cube Cube, s *search) {
	if depth == ix.bits {
		if !ix.leafAvailable(code) {
			return
		}
		if d := cube.TL.SquaredDistance(s.target); d < s.best {
			s.best = d
			s.point = cube.TL
			s.found = true
		}
		return
	}
	if ix.counts[depth][code] == 0 {
		return
	}

	// Insertion sort by lower bound. Equal bounds stay in child order.
	var cands [8]candidate
	n := 0
	for i := range 8 {
		cc := code<<3 | uint32(i)
		if ix.live(depth+1, cc) == 0 {
			continue
		}
		child := cube.Child(i)
		c := candidate{code: cc, cube: child, bound: child.SquaredDistance(s.target)}
		j := n
		for j > 0 && cands[j-1].bound > c.bound {
			cands[j] = cands[j-1]
			j--
		}
		cands[j] = c
		n++
	}

	for _, c := range cands[:n] {
		// Bounds are ascending and best only shrinks.
		if c.bound >= s.best {
			break
		}
		ix.nearest(depth+1, c.code, c.cube, s)
	}
}
