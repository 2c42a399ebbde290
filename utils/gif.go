package utils

import (
	"image"
	"image/color/palette"
	"image/gif"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// GIFRecorder collects growth frames into an animated GIF. Frames are
// quantized to the Plan9 palette with Floyd-Steinberg dithering.
type GIFRecorder struct {
	// Delay per frame in 100ths of a second (5 => 20 fps).
	Delay int
	// Keep one frame out of Every offered to Add. <= 1 keeps all.
	Every int
	// Integer upscale applied before quantizing.
	Scale int

	offered int
	anim    gif.GIF
}

func NewGIFRecorder(delay, every, scale int) *GIFRecorder {
	return &GIFRecorder{Delay: delay, Every: every, Scale: scale}
}

// Add offers a frame and reports whether it was kept.
func (r *GIFRecorder) Add(img image.Image) bool {
	r.offered++
	if r.Every > 1 && (r.offered-1)%r.Every != 0 {
		return false
	}
	r.AddFrame(img)
	return true
}

// AddFrame appends img unconditionally, e.g. the finished image.
func (r *GIFRecorder) AddFrame(img image.Image) {
	img = Upscale(img, r.Scale)
	p := image.NewPaletted(img.Bounds(), palette.Plan9)
	draw.FloydSteinberg.Draw(p, p.Bounds(), img, img.Bounds().Min)
	r.anim.Image = append(r.anim.Image, p)
	r.anim.Delay = append(r.anim.Delay, r.Delay)
}

// Len returns the number of kept frames.
func (r *GIFRecorder) Len() int { return len(r.anim.Image) }

// Save encodes every kept frame to path, looping forever.
func (r *GIFRecorder) Save(path string) error {
	if len(r.anim.Image) == 0 {
		return errors.New("no frames recorded")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create gif")
	}
	if err := gif.EncodeAll(f, &r.anim); err != nil {
		f.Close()
		return errors.Wrapf(err, "encode %s", path)
	}
	return f.Close()
}
