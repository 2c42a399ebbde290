package utils

import (
	"image"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"
)

func TestSaveAndReadImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	src := twoTone(6, 3)
	test.That(t, SaveImage(src, path), test.ShouldBeNil)

	got, err := ReadImage(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, got.Bounds(), test.ShouldResemble, src.Bounds())
	r, g, b, a := got.At(0, 0).RGBA()
	test.That(t, []uint32{r, g, b, a}, test.ShouldResemble, []uint32{0xffff, 0, 0, 0xffff})

	_, err = ReadImage(filepath.Join(t.TempDir(), "missing.png"))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestUpscale(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(1, 0, color.NRGBA{G: 200, A: 255})

	test.That(t, Upscale(src, 1) == image.Image(src), test.ShouldBeTrue)

	up := Upscale(src, 3)
	test.That(t, up.Bounds(), test.ShouldResemble, image.Rect(0, 0, 6, 6))
	for y := range 3 {
		for x := 3; x < 6; x++ {
			test.That(t, color.NRGBAModel.Convert(up.At(x, y)), test.ShouldResemble, color.NRGBA{G: 200, A: 255})
		}
	}
	test.That(t, color.NRGBAModel.Convert(up.At(0, 5)), test.ShouldResemble, color.NRGBA{})
}

func TestGIFRecorder(t *testing.T) {
	rec := NewGIFRecorder(5, 2, 2)
	kept := []bool{}
	for range 4 {
		kept = append(kept, rec.Add(twoTone(4, 4)))
	}
	test.That(t, kept, test.ShouldResemble, []bool{true, false, true, false})
	rec.AddFrame(twoTone(4, 4))
	test.That(t, rec.Len(), test.ShouldEqual, 3)

	path := filepath.Join(t.TempDir(), "growth.gif")
	test.That(t, rec.Save(path), test.ShouldBeNil)

	f, err := os.Open(path)
	test.That(t, err, test.ShouldBeNil)
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, anim.Image, test.ShouldHaveLength, 3)
	test.That(t, anim.Delay, test.ShouldResemble, []int{5, 5, 5})
	test.That(t, anim.Image[0].Bounds().Dx(), test.ShouldEqual, 8)

	t.Run("nothing recorded", func(t *testing.T) {
		empty := NewGIFRecorder(5, 1, 1)
		test.That(t, empty.Save(filepath.Join(t.TempDir(), "empty.gif")), test.ShouldNotBeNil)
	})
}
