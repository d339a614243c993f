// Package colorutil provides shared color types and conversions for the
// reagent reader application.
package colorutil

import (
	"fmt"
	"math"
)

// RGB is an 8-bit-per-channel color sample. Channels are in [0,255].
type RGB struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// HSV is a hue/saturation/value color. H is in degrees [0,360),
// S and V are percentages [0,100].
type HSV struct {
	H int `json:"h"`
	S int `json:"s"`
	V int `json:"v"`
}

// White is the neutral color assumed for an uncalibrated reference patch.
var White = RGB{R: 255, G: 255, B: 255}

func (c RGB) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.R, c.G, c.B)
}

func (c HSV) String() string {
	return fmt.Sprintf("h=%d s=%d%% v=%d%%", c.H, c.S, c.V)
}

// Sum returns the sum of the three channels, a cheap brightness key used
// when ranking pixels.
func (c RGB) Sum() int {
	return c.R + c.G + c.B
}

// RGBToHSV converts an RGB sample to HSV using the standard six-piece
// hexagonal formula. Hue is rounded to the nearest degree, saturation and
// value to the nearest percent. An achromatic input (r=g=b) yields h=0, s=0.
func RGBToHSV(c RGB) HSV {
	r := float64(c.R) / 255.0
	g := float64(c.G) / 255.0
	b := float64(c.B) / 255.0

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	diff := maxC - minC

	v := maxC

	var s float64
	if maxC == 0 {
		s = 0
	} else {
		s = diff / maxC
	}

	var h float64
	if diff == 0 {
		h = 0
	} else if maxC == r {
		h = 60 * math.Mod((g-b)/diff, 6)
	} else if maxC == g {
		h = 60 * ((b-r)/diff + 2)
	} else {
		h = 60 * ((r-g)/diff + 4)
	}

	if h < 0 {
		h += 360
	}

	return HSV{
		H: int(math.Round(h)) % 360,
		S: int(math.Round(s * 100)),
		V: int(math.Round(v * 100)),
	}
}

// HueDistance returns the shortest circular distance between two hues in
// degrees, always in [0,180].
func HueDistance(h1, h2 int) int {
	d := h1 - h2
	if d < 0 {
		d = -d
	}
	if 360-d < d {
		d = 360 - d
	}
	return d
}

// Distance returns the weighted perceptual distance between two HSV colors.
// Hue dominates because it is the most discriminative channel for reagent
// colors; saturation and value shift more with lighting and exposure.
func Distance(a, b HSV) float64 {
	hueDist := float64(HueDistance(a.H, b.H))
	satDist := math.Abs(float64(a.S - b.S))
	valDist := math.Abs(float64(a.V - b.V))
	return 0.6*hueDist + 0.25*satDist + 0.15*valDist
}
