package allcolors

import (
	"testing"

	"go.viam.com/test"
)

func TestCubeSquaredDistance(t *testing.T) {
	cb := NewCube(Color{4, 4, 4}, 4)
	test.That(t, cb.BR, test.ShouldResemble, Color{7, 7, 7})

	t.Run("inside is zero", func(t *testing.T) {
		test.That(t, cb.SquaredDistance(Color{4, 7, 5}), test.ShouldEqual, 0)
		test.That(t, cb.Contains(Color{4, 7, 5}), test.ShouldBeTrue)
	})

	t.Run("outside on one axis", func(t *testing.T) {
		test.That(t, cb.SquaredDistance(Color{1, 5, 5}), test.ShouldEqual, 9)
		test.That(t, cb.SquaredDistance(Color{5, 10, 5}), test.ShouldEqual, 9)
		test.That(t, cb.Contains(Color{1, 5, 5}), test.ShouldBeFalse)
	})

	t.Run("outside on every axis", func(t *testing.T) {
		test.That(t, cb.SquaredDistance(Color{0, 9, 2}), test.ShouldEqual, 16+4+4)
	})
}

func TestCubeDistanceIsLowerBound(t *testing.T) {
	cb := NewCube(Color{2, 0, 2}, 2)
	for r := range 8 {
		for g := range 8 {
			for b := range 8 {
				p := Color{uint8(r), uint8(g), uint8(b)}
				bound := cb.SquaredDistance(p)
				best := -1
				for _, q := range []Color{
					{2, 0, 2}, {2, 0, 3}, {2, 1, 2}, {2, 1, 3},
					{3, 0, 2}, {3, 0, 3}, {3, 1, 2}, {3, 1, 3},
				} {
					if d := q.SquaredDistance(p); best < 0 || d < best {
						best = d
					}
				}
				test.That(t, bound, test.ShouldEqual, best)
			}
		}
	}
}

func TestCubeOctantMatchesChild(t *testing.T) {
	root := NewCube(Color{}, 8)
	for i := range 8 {
		child := root.Child(i)
		test.That(t, child.Size, test.ShouldEqual, 4)
		test.That(t, root.Octant(child.TL), test.ShouldEqual, i)
		test.That(t, root.Octant(child.BR), test.ShouldEqual, i)
	}
	test.That(t, root.Child(4).TL, test.ShouldResemble, Color{4, 0, 0})
	test.That(t, root.Child(2).TL, test.ShouldResemble, Color{0, 4, 0})
	test.That(t, root.Child(1).TL, test.ShouldResemble, Color{0, 0, 4})
}
