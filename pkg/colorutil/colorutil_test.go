package colorutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRGBToHSV(t *testing.T) {
	tests := []struct {
		name string
		in   RGB
		want HSV
	}{
		{"black", RGB{0, 0, 0}, HSV{0, 0, 0}},
		{"white", RGB{255, 255, 255}, HSV{0, 0, 100}},
		{"gray", RGB{128, 128, 128}, HSV{0, 0, 50}},
		{"pure red", RGB{255, 0, 0}, HSV{0, 100, 100}},
		{"pure green", RGB{0, 255, 0}, HSV{120, 100, 100}},
		{"pure blue", RGB{0, 0, 255}, HSV{240, 100, 100}},
		{"yellow", RGB{255, 255, 0}, HSV{60, 100, 100}},
		{"mid green", RGB{60, 180, 75}, HSV{128, 67, 71}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RGBToHSV(tt.in))
		})
	}
}

func TestRGBToHSVHueWrap(t *testing.T) {
	// A reddish color whose hue rounds up to 360 must wrap to 0.
	got := RGBToHSV(RGB{255, 0, 1})
	assert.GreaterOrEqual(t, got.H, 0)
	assert.Less(t, got.H, 360)
}

func TestHueDistance(t *testing.T) {
	assert.Equal(t, 20, HueDistance(350, 10))
	assert.Equal(t, 20, HueDistance(10, 350))
	assert.Equal(t, 180, HueDistance(0, 180))
	assert.Equal(t, 0, HueDistance(90, 90))
	assert.Equal(t, 1, HueDistance(0, 359))
}

func TestDistanceWeights(t *testing.T) {
	a := HSV{H: 100, S: 50, V: 50}

	assert.InDelta(t, 6.0, Distance(a, HSV{H: 110, S: 50, V: 50}), 1e-9)
	assert.InDelta(t, 2.5, Distance(a, HSV{H: 100, S: 60, V: 50}), 1e-9)
	assert.InDelta(t, 1.5, Distance(a, HSV{H: 100, S: 50, V: 60}), 1e-9)
	assert.Zero(t, Distance(a, a))
}
