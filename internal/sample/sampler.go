package sample

import (
	"fmt"
	"image"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"reagent-reader/pkg/colorutil"
	"reagent-reader/pkg/geometry"
)

// trimFraction is the share of pixels discarded from each end of the
// brightness-sorted sample before averaging. Trimming suppresses sensor
// noise, specular highlights, and compression artifacts at the region
// edges without needing an explicit mask.
const trimFraction = 0.10

// ExtractRegion reduces the pixels of a sub-rectangle of img to one
// representative RGB color via a trimmed mean: pixels are sorted by
// channel sum, the lowest and highest 10% (by count, floored) are
// discarded, and the remaining channels are averaged independently.
func ExtractRegion(img image.Image, region geometry.RectInt) (colorutil.RGB, error) {
	if region.Width <= 0 || region.Height <= 0 {
		return colorutil.RGB{}, fmt.Errorf("%w: %dx%d", ErrInvalidRegion, region.Width, region.Height)
	}

	bounds := img.Bounds()
	clamped := region.ClampTo(bounds.Dx(), bounds.Dy())
	if clamped.Empty() {
		return colorutil.RGB{}, fmt.Errorf("%w: region (%d,%d %dx%d) outside %dx%d image",
			ErrInvalidRegion, region.X, region.Y, region.Width, region.Height,
			bounds.Dx(), bounds.Dy())
	}

	pixels := make([]colorutil.RGB, 0, clamped.Area())
	for y := clamped.Y; y < clamped.Y+clamped.Height; y++ {
		for x := clamped.X; x < clamped.X+clamped.Width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			pixels = append(pixels, colorutil.RGB{
				R: int(r >> 8),
				G: int(g >> 8),
				B: int(b >> 8),
			})
		}
	}

	return trimmedMean(pixels)
}

// trimmedMean averages the pixel channels after discarding the extremes.
func trimmedMean(pixels []colorutil.RGB) (colorutil.RGB, error) {
	sort.Slice(pixels, func(i, j int) bool {
		return pixels[i].Sum() < pixels[j].Sum()
	})

	trim := int(float64(len(pixels)) * trimFraction)
	kept := pixels[trim : len(pixels)-trim]
	if len(kept) == 0 {
		return colorutil.RGB{}, fmt.Errorf("%w: %d pixels before trim", ErrInsufficientSample, len(pixels))
	}

	rs := make([]float64, len(kept))
	gs := make([]float64, len(kept))
	bs := make([]float64, len(kept))
	for i, p := range kept {
		rs[i] = float64(p.R)
		gs[i] = float64(p.G)
		bs[i] = float64(p.B)
	}

	return colorutil.RGB{
		R: int(math.Round(stat.Mean(rs, nil))),
		G: int(math.Round(stat.Mean(gs, nil))),
		B: int(math.Round(stat.Mean(bs, nil))),
	}, nil
}
