package utils

import (
	"cmp"
	"image"
	"image/color"
	"image/draw"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type PaletteMethod int

const (
	PaletteMethodDominantColor PaletteMethod = iota
	PaletteMethodKMeans
)

func (m PaletteMethod) String() string {
	switch m {
	case PaletteMethodKMeans:
		return "kmeans"
	default:
		return "dominantcolor"
	}
}

// ParsePaletteMethod accepts the names printed by PaletteMethod.String.
func ParsePaletteMethod(s string) (PaletteMethod, error) {
	switch s {
	case "", "dominantcolor":
		return PaletteMethodDominantColor, nil
	case "kmeans":
		return PaletteMethodKMeans, nil
	}
	return 0, errors.Errorf("unknown palette method %q", s)
}

type weightedColor struct {
	Col    colorful.Color
	Weight float64
}

func luminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// SortPaletteByBrightness orders colors from darkest to brightest.
func SortPaletteByBrightness(palette []colorful.Color) {
	slices.SortStableFunc(palette, func(a, b colorful.Color) int {
		return cmp.Compare(luminance(a), luminance(b))
	})
}

// spreadColors picks k candidates greedily: the heaviest first, then each
// time the one furthest (in Lab) from everything picked so far, nudged
// towards heavier candidates.
func spreadColors(cands []weightedColor, k int) []colorful.Color {
	if k <= 0 || len(cands) == 0 {
		return nil
	}
	k = min(k, len(cands))
	maxW := 0.0
	for _, c := range cands {
		maxW = max(maxW, c.Weight)
	}
	if maxW <= 0 {
		maxW = 1
	}

	first := 0
	for i, c := range cands {
		if c.Weight > cands[first].Weight {
			first = i
		}
	}
	picked := []colorful.Color{cands[first].Col}
	// nearest[i] is the Lab distance from cands[i] to the closest pick.
	nearest := make([]float64, len(cands))
	for i, c := range cands {
		nearest[i] = c.Col.DistanceLab(picked[0])
	}
	nearest[first] = -1

	for len(picked) < k {
		best, bestScore := -1, 0.0
		for i, c := range cands {
			if nearest[i] < 0 {
				continue
			}
			score := nearest[i] * (0.5 + 0.5*math.Sqrt(c.Weight/maxW))
			if best < 0 || score > bestScore {
				best, bestScore = i, score
			}
		}
		if best < 0 {
			break
		}
		col := cands[best].Col
		picked = append(picked, col)
		nearest[best] = -1
		for i, c := range cands {
			if nearest[i] >= 0 {
				nearest[i] = min(nearest[i], c.Col.DistanceLab(col))
			}
		}
	}
	return picked
}

// ExtractDominantPalette returns up to k well separated dominant colors.
func ExtractDominantPalette(img image.Image, k int) []colorful.Color {
	if k <= 0 {
		return nil
	}
	found := dominantcolor.FindWeight(img, max(16, k*6))
	cands := make([]weightedColor, 0, len(found))
	for _, c := range found {
		col, _ := colorful.MakeColor(c.RGBA)
		cands = append(cands, weightedColor{Col: col.Clamped(), Weight: max(c.Weight, 1e-6)})
	}
	return spreadColors(cands, k)
}

// ExtractKMeansPalette clusters a subsample of img in RGB and returns up to
// k well separated cluster centres.
func ExtractKMeansPalette(img image.Image, k int) []colorful.Color {
	if k <= 0 {
		return nil
	}
	b := img.Bounds()
	const maxSamples = 8000
	step := 1
	if n := b.Dx() * b.Dy(); n > maxSamples {
		step = int(math.Sqrt(float64(n)/maxSamples)) + 1
	}

	var dataset clusters.Observations
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			col, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{col.R, col.G, col.B})
		}
	}
	if len(dataset) == 0 {
		return nil
	}

	cc, err := kmeans.New().Partition(dataset, min(k*3, len(dataset)))
	if err != nil {
		return nil
	}
	cands := make([]weightedColor, 0, len(cc))
	for _, c := range cc {
		if len(c.Observations) == 0 || len(c.Center) < 3 {
			continue
		}
		cands = append(cands, weightedColor{
			Col:    colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped(),
			Weight: float64(len(c.Observations)),
		})
	}
	return spreadColors(cands, k)
}

// ExtractPalette dispatches on method. An empty k-means result falls back to
// dominantcolor with a warning on logger.
func ExtractPalette(img image.Image, k int, method PaletteMethod, logger *zap.SugaredLogger) []colorful.Color {
	if method == PaletteMethodKMeans {
		if p := ExtractKMeansPalette(img, k); len(p) != 0 {
			return p
		}
		if logger != nil {
			logger.Warnw("kmeans returned an empty palette, falling back", "fallback", PaletteMethodDominantColor)
		}
	}
	return ExtractDominantPalette(img, k)
}

// PaletteImage draws the palette as a row of tileSize squares.
func PaletteImage(palette []colorful.Color, tileSize int) (*image.RGBA, error) {
	if len(palette) == 0 {
		return nil, errors.New("empty palette")
	}
	if tileSize <= 0 {
		tileSize = 64
	}
	img := image.NewRGBA(image.Rect(0, 0, tileSize*len(palette), tileSize))
	for i, c := range palette {
		r, g, b := c.Clamped().RGB255()
		tile := image.Rect(i*tileSize, 0, (i+1)*tileSize, tileSize)
		draw.Draw(img, tile, image.NewUniform(color.RGBA{R: r, G: g, B: b, A: 255}), image.Point{}, draw.Src)
	}
	return img, nil
}

// SavePalette writes PaletteImage to filename as PNG.
func SavePalette(palette []colorful.Color, tileSize int, filename string) error {
	img, err := PaletteImage(palette, tileSize)
	if err != nil {
		return err
	}
	return SaveImage(img, filename)
}
