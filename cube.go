package allcolors

// Color is a point in the native colour cube. Each channel holds a value in
// [0, 2^bits) for the bit depth the engine was built with, so the same value
// is both a colour and a 3-D coordinate.
type Color struct {
	R, G, B uint8
}

// SquaredDistance returns the squared Euclidean distance between two colours.
func (c Color) SquaredDistance(o Color) int {
	dr := int(c.R) - int(o.R)
	dg := int(c.G) - int(o.G)
	db := int(c.B) - int(o.B)
	return dr*dr + dg*dg + db*db
}

// Cube is an axis-aligned cube in colour space. BR is inclusive and always
// equals TL + (Size-1) on every axis.
type Cube struct {
	TL, BR Color
	Size   int
}

// NewCube returns the cube of edge size whose top-left corner is tl.
func NewCube(tl Color, size int) Cube {
	d := size - 1
	return Cube{
		TL:   tl,
		BR:   Color{uint8(int(tl.R) + d), uint8(int(tl.G) + d), uint8(int(tl.B) + d)},
		Size: size,
	}
}

func axisGap(lo, hi, p uint8) int {
	return max(0, int(lo)-int(p), int(p)-int(hi))
}

// SquaredDistance is the smallest squared distance from p to any point
// inside the cube. It is zero when p is contained.
func (cb Cube) SquaredDistance(p Color) int {
	dr := axisGap(cb.TL.R, cb.BR.R, p.R)
	dg := axisGap(cb.TL.G, cb.BR.G, p.G)
	db := axisGap(cb.TL.B, cb.BR.B, p.B)
	return dr*dr + dg*dg + db*db
}

// Contains reports whether p lies inside the cube.
func (cb Cube) Contains(p Color) bool {
	return p.R >= cb.TL.R && p.R <= cb.BR.R &&
		p.G >= cb.TL.G && p.G <= cb.BR.G &&
		p.B >= cb.TL.B && p.B <= cb.BR.B
}

// Octant returns the child index of p: bit 2 for R, bit 1 for G, bit 0 for B,
// set when p falls in the upper half of that axis.
func (cb Cube) Octant(p Color) int {
	half := cb.Size / 2
	idx := 0
	if int(p.R) >= int(cb.TL.R)+half {
		idx |= 4
	}
	if int(p.G) >= int(cb.TL.G)+half {
		idx |= 2
	}
	if int(p.B) >= int(cb.TL.B)+half {
		idx |= 1
	}
	return idx
}

// Child returns octant i of the cube using the same bit pattern as Octant.
func (cb Cube) Child(i int) Cube {
	half := cb.Size / 2
	tl := cb.TL
	if i&4 != 0 {
		tl.R += uint8(half)
	}
	if i&2 != 0 {
		tl.G += uint8(half)
	}
	if i&1 != 0 {
		tl.B += uint8(half)
	}
	return NewCube(tl, half)
}
