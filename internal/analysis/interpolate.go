// Package analysis turns a captured frame into a calibrated concentration
// estimate: region sampling, reference correction, HSV conversion, and
// interpolation against the analyte's calibration table.
package analysis

import (
	"math"

	"reagent-reader/internal/analyte"
	"reagent-reader/pkg/colorutil"
)

// Interpolate maps a measured HSV color to a concentration estimate and a
// 0-100 confidence score using the calibration table.
//
// The nearest anchor by weighted color distance picks the table segment;
// the estimate then blends linearly toward the second-nearest neighbor of
// that anchor. This is a 1-D interpolation driven by a 3-D nearest-point
// search, not a true nearest-segment projection, so readings near table
// midpoints carry a small known bias. Kept for parity with the field data
// the tables were tuned against.
func Interpolate(hsv colorutil.HSV, table analyte.Table) (float64, int) {
	if len(table) == 0 {
		return 0, 0
	}

	closest := 0
	minDist := colorutil.Distance(hsv, table[0].Color)
	for i := 1; i < len(table); i++ {
		if d := colorutil.Distance(hsv, table[i].Color); d < minDist {
			minDist = d
			closest = i
		}
	}

	value := table[closest].Concentration
	if len(table) > 1 {
		neighbor := closest + 1
		if closest == len(table)-1 {
			// Last anchor: blend toward the previous one instead,
			// extrapolating below its concentration.
			neighbor = closest - 1
		}

		neighborDist := colorutil.Distance(hsv, table[neighbor].Color)
		if total := minDist + neighborDist; total > 0 {
			t := minDist / total
			value += t * (table[neighbor].Concentration - table[closest].Concentration)
		}
	}

	confidence := int(math.Round((1 - minDist/100) * 100))
	confidence = max(0, min(100, confidence))

	return math.Round(value*100) / 100, confidence
}
