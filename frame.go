package allcolors

import (
	"image"
	"image/color"
)

// Frame is a full width x height grid of colours in row-major order. Frames
// returned by the engine are copies and safe to hand to another goroutine.
type Frame struct {
	Width, Height int
	Pix           []Color // len = Width*Height
}

// NewFrame allocates a zeroed frame.
func NewFrame(w, h int) Frame {
	return Frame{Width: w, Height: h, Pix: make([]Color, w*h)}
}

// At returns the colour at (x, y).
func (f Frame) At(x, y int) Color {
	return f.Pix[y*f.Width+x]
}

// Set stores c at (x, y).
func (f Frame) Set(x, y int, c Color) {
	f.Pix[y*f.Width+x] = c
}

// Image converts the frame to an opaque NRGBA image, channel values copied
// as-is.
func (f Frame) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := range f.Height {
		row := y * f.Width
		for x := range f.Width {
			c := f.Pix[row+x]
			img.SetNRGBA(x, y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}
	return img
}
