package allcolors

import (
	"image"
	"image/color"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"go.viam.com/test"
)

func TestQuantizeColor(t *testing.T) {
	test.That(t, QuantizeColor(colorful.Color{R: 1, G: 1, B: 1}, 4), test.ShouldResemble, Color{15, 15, 15})
	test.That(t, QuantizeColor(colorful.Color{R: 1, G: 0, B: 1}, 8), test.ShouldResemble, Color{255, 0, 255})
	test.That(t, QuantizeColor(colorful.Color{R: 2, G: -1, B: 0}, 1), test.ShouldResemble, Color{1, 0, 0})

	pal := []colorful.Color{{R: 1}, {R: 0.99}, {B: 1}}
	test.That(t, QuantizePalette(pal, 2), test.ShouldResemble, []Color{{3, 0, 0}, {0, 0, 3}})
}

func TestUniqueColors(t *testing.T) {
	in := []Color{{1, 2, 3}, {0, 0, 0}, {1, 2, 3}, {0, 0, 0}, {4, 4, 4}}
	test.That(t, UniqueColors(in), test.ShouldResemble, []Color{{1, 2, 3}, {0, 0, 0}, {4, 4, 4}})
	test.That(t, UniqueColors(nil), test.ShouldBeEmpty)
}

func TestRingLayout(t *testing.T) {
	test.That(t, RingLayout(0, 10, 10), test.ShouldBeEmpty)
	test.That(t, RingLayout(1, 11, 7), test.ShouldResemble, []image.Point{{5, 3}})

	pts := RingLayout(6, 60, 40)
	test.That(t, pts, test.ShouldHaveLength, 6)
	seen := map[image.Point]bool{}
	for _, p := range pts {
		test.That(t, p.In(image.Rect(0, 0, 60, 40)), test.ShouldBeTrue)
		test.That(t, seen[p], test.ShouldBeFalse)
		seen[p] = true
	}

	// Tiny grids collapse onto fewer positions.
	test.That(t, len(RingLayout(8, 2, 2)), test.ShouldBeLessThanOrEqualTo, 4)
}

func TestFrameImage(t *testing.T) {
	f := NewFrame(3, 2)
	f.Set(2, 1, Color{10, 20, 30})
	img := f.Image()
	test.That(t, img.Bounds(), test.ShouldResemble, image.Rect(0, 0, 3, 2))
	test.That(t, img.NRGBAAt(2, 1), test.ShouldResemble, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	test.That(t, img.NRGBAAt(0, 0), test.ShouldResemble, color.NRGBA{A: 255})
	test.That(t, f.At(2, 1), test.ShouldResemble, Color{10, 20, 30})
}
