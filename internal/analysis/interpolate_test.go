package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"reagent-reader/internal/analyte"
	"reagent-reader/pkg/colorutil"
)

func TestInterpolateAnchorRoundTrip(t *testing.T) {
	// An exact anchor color reads back the anchor concentration at 100%
	// confidence, for every anchor of every built-in table.
	for kind, table := range analyte.Tables() {
		for i, anchor := range table {
			value, confidence := Interpolate(anchor.Color, table)
			assert.Equal(t, anchor.Concentration, value, "%s anchor %d", kind, i)
			assert.Equal(t, 100, confidence, "%s anchor %d", kind, i)
		}
	}
}

func flatTable(concentrations []float64, hues []int) analyte.Table {
	table := make(analyte.Table, len(concentrations))
	for i := range concentrations {
		table[i] = analyte.Point{
			Concentration: concentrations[i],
			Color:         colorutil.HSV{H: hues[i], S: 50, V: 50},
		}
	}
	return table
}

func TestInterpolateBlendsTowardNext(t *testing.T) {
	table := flatTable([]float64{1, 2}, []int{100, 200})

	// Probe at hue 120: distance 12 to the first anchor, 80 to the
	// second, so t = 12/92 and the value lands at 1.13 after rounding.
	value, _ := Interpolate(colorutil.HSV{H: 120, S: 50, V: 50}, table)
	assert.InDelta(t, 1.13, value, 1e-9)
}

func TestInterpolateTieBreaksFirstAnchor(t *testing.T) {
	table := flatTable([]float64{1, 2, 3}, []int{100, 120, 140})

	// Hue 110 is equidistant from the first two anchors; the first wins,
	// then blends halfway toward the second.
	value, _ := Interpolate(colorutil.HSV{H: 110, S: 50, V: 50}, table)
	assert.InDelta(t, 1.5, value, 1e-9)
}

func TestInterpolateLastAnchorExtrapolates(t *testing.T) {
	table := flatTable([]float64{1, 2}, []int{100, 200})

	// Closest to the last anchor: blending runs toward the previous
	// anchor, pulling the value below the last concentration.
	value, _ := Interpolate(colorutil.HSV{H: 210, S: 50, V: 50}, table)
	assert.Less(t, value, 2.0)
	assert.InDelta(t, 1.92, value, 1e-9)
}

func TestInterpolateSingleAnchor(t *testing.T) {
	table := analyte.Table{{Concentration: 3.5, Color: colorutil.HSV{H: 90, S: 50, V: 50}}}

	value, confidence := Interpolate(colorutil.HSV{H: 95, S: 50, V: 50}, table)
	assert.Equal(t, 3.5, value)
	assert.Equal(t, 97, confidence)
}

func TestInterpolateEmptyTable(t *testing.T) {
	value, confidence := Interpolate(colorutil.HSV{H: 95, S: 50, V: 50}, nil)
	assert.Zero(t, value)
	assert.Zero(t, confidence)
}

func TestConfidenceMonotonicAndClamped(t *testing.T) {
	table := flatTable([]float64{1, 2}, []int{0, 359})

	prev := 101
	for _, hue := range []int{0, 10, 30, 60, 90, 120, 150, 179} {
		_, confidence := Interpolate(colorutil.HSV{H: hue, S: 50, V: 50}, table)
		assert.LessOrEqual(t, confidence, prev, "hue %d", hue)
		assert.GreaterOrEqual(t, confidence, 0)
		assert.LessOrEqual(t, confidence, 100)
		prev = confidence
	}

	// Distance well past 100 floors at 0% confidence.
	_, confidence := Interpolate(colorutil.HSV{H: 179, S: 100, V: 100}, table)
	assert.Equal(t, 0, confidence)
}

func TestInterpolateRoundsToTwoDecimals(t *testing.T) {
	table := flatTable([]float64{0, 1}, []int{0, 90})

	value, _ := Interpolate(colorutil.HSV{H: 10, S: 50, V: 50}, table)
	assert.Equal(t, value, float64(int(value*100))/100)
}
