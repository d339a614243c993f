package sample

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reagent-reader/pkg/colorutil"
	"reagent-reader/pkg/geometry"
)

func uniformImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestCenterRegion(t *testing.T) {
	r := CenterRegion(640, 480, 0.25)
	assert.Equal(t, geometry.RectInt{X: 240, Y: 180, Width: 160, Height: 120}, r)

	// Odd dimensions floor both the size and the offset.
	r = CenterRegion(101, 51, 0.25)
	assert.Equal(t, geometry.RectInt{X: 38, Y: 19, Width: 25, Height: 12}, r)
}

func TestReferencePatchRegion(t *testing.T) {
	r := ReferencePatchRegion(640, 480)
	assert.Equal(t, geometry.RectInt{X: 582, Y: 422, Width: 48, Height: 48}, r)

	// Tiny images clamp rather than escape the frame.
	r = ReferencePatchRegion(15, 15)
	assert.False(t, r.X < 0 || r.Y < 0)
}

func TestExtractRegionUniform(t *testing.T) {
	img := uniformImage(20, 20, color.RGBA{60, 180, 75, 255})

	got, err := ExtractRegion(img, geometry.NewRectInt(5, 5, 10, 10))
	require.NoError(t, err)
	assert.Equal(t, colorutil.RGB{R: 60, G: 180, B: 75}, got)
}

func TestExtractRegionTrimsOutliers(t *testing.T) {
	// 100 pixels: 15 black, 85 white. Trimming drops the 10 darkest and
	// 10 brightest, leaving 5 black among the kept 80, so the result must
	// land closer to white than a naive mean.
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	n := 0
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if n < 15 {
				img.SetRGBA(x, y, color.RGBA{0, 0, 0, 255})
			} else {
				img.SetRGBA(x, y, color.RGBA{255, 255, 255, 255})
			}
			n++
		}
	}

	got, err := ExtractRegion(img, geometry.NewRectInt(0, 0, 10, 10))
	require.NoError(t, err)

	// Naive mean would be ~217; the trimmed mean keeps 5 black of 80.
	naiveFrac := 0.85
	naive := int(naiveFrac * 255)
	assert.Greater(t, got.R, naive)
	assert.Equal(t, got.R, got.G)
	assert.Equal(t, got.G, got.B)
}

func TestExtractRegionAllOutliersTrimmed(t *testing.T) {
	// 10 black + 90 white with 10%+10% trim: every black pixel is
	// discarded and the result is pure white.
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	n := 0
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if n < 10 {
				img.SetRGBA(x, y, color.RGBA{0, 0, 0, 255})
			} else {
				img.SetRGBA(x, y, color.RGBA{255, 255, 255, 255})
			}
			n++
		}
	}

	got, err := ExtractRegion(img, geometry.NewRectInt(0, 0, 10, 10))
	require.NoError(t, err)
	assert.Equal(t, colorutil.White, got)
}

func TestExtractRegionErrors(t *testing.T) {
	img := uniformImage(10, 10, color.RGBA{128, 128, 128, 255})

	_, err := ExtractRegion(img, geometry.NewRectInt(0, 0, 0, 10))
	assert.ErrorIs(t, err, ErrInvalidRegion)

	_, err = ExtractRegion(img, geometry.NewRectInt(0, 0, 10, -1))
	assert.ErrorIs(t, err, ErrInvalidRegion)

	_, err = ExtractRegion(img, geometry.NewRectInt(50, 50, 10, 10))
	assert.ErrorIs(t, err, ErrInvalidRegion)
}

func TestExtractRegionClampsToBounds(t *testing.T) {
	img := uniformImage(10, 10, color.RGBA{10, 20, 30, 255})

	got, err := ExtractRegion(img, geometry.NewRectInt(5, 5, 20, 20))
	require.NoError(t, err)
	assert.Equal(t, colorutil.RGB{R: 10, G: 20, B: 30}, got)
}

func TestExtractRegionSmallRegionNoTrim(t *testing.T) {
	// Fewer than 10 pixels: trim count floors to zero, plain average.
	img := uniformImage(3, 3, color.RGBA{100, 100, 100, 255})
	img.SetRGBA(0, 0, color.RGBA{109, 109, 109, 255})

	got, err := ExtractRegion(img, geometry.NewRectInt(0, 0, 3, 3))
	require.NoError(t, err)
	assert.Equal(t, colorutil.RGB{R: 101, G: 101, B: 101}, got)
}
