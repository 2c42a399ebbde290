package allcolors

import (
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// QuantizeColor maps a display colour onto the native cube of the given
// depth by dropping the low bits of each 8-bit channel.
func QuantizeColor(c colorful.Color, bits int) Color {
	r, g, b := c.Clamped().RGB255()
	shift := 8 - bits
	return Color{r >> shift, g >> shift, b >> shift}
}

// QuantizePalette quantizes every colour and drops the duplicates that
// quantization produces.
func QuantizePalette(palette []colorful.Color, bits int) []Color {
	out := make([]Color, 0, len(palette))
	for _, c := range palette {
		out = append(out, QuantizeColor(c, bits))
	}
	return UniqueColors(out)
}

// UniqueColors returns colors without repeats, keeping first occurrences.
func UniqueColors(colors []Color) []Color {
	seen := make(map[Color]bool, len(colors))
	out := make([]Color, 0, len(colors))
	for _, c := range colors {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// RingLayout spreads n distinct seed positions on an ellipse centred in a
// w x h grid, with radii a third of each side. A single seed goes to the
// centre. Positions that round onto each other are dropped, so fewer than
// n points may come back on tiny grids.
func RingLayout(n, w, h int) []image.Point {
	if n <= 0 || w <= 0 || h <= 0 {
		return nil
	}
	cx, cy := float64(w-1)/2, float64(h-1)/2
	if n == 1 {
		return []image.Point{image.Pt(int(cx), int(cy))}
	}
	rx, ry := float64(w)/3, float64(h)/3
	seen := make(map[image.Point]bool, n)
	pts := make([]image.Point, 0, n)
	for i := range n {
		a := 2 * math.Pi * float64(i) / float64(n)
		x := max(0, min(w-1, int(math.Round(cx+rx*math.Cos(a)))))
		y := max(0, min(h-1, int(math.Round(cy+ry*math.Sin(a)))))
		p := image.Pt(x, y)
		if seen[p] {
			continue
		}
		seen[p] = true
		pts = append(pts, p)
	}
	return pts
}
