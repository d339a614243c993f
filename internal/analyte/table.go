package analyte

import (
	"fmt"

	"reagent-reader/pkg/colorutil"
)

// Point is a single calibration anchor: the reagent color empirically
// observed at a known concentration.
type Point struct {
	Concentration float64       `json:"concentration"`
	Color         colorutil.HSV `json:"color"`
}

// Table is an ordered sequence of calibration anchors for one analyte,
// sorted by ascending concentration.
type Table []Point

// Validate checks the table invariants: at least two anchors, non-negative
// strictly increasing concentrations.
func (t Table) Validate() error {
	if len(t) < 2 {
		return fmt.Errorf("calibration table needs at least 2 anchors, has %d", len(t))
	}
	if t[0].Concentration < 0 {
		return fmt.Errorf("negative concentration %.2f", t[0].Concentration)
	}
	for i := 1; i < len(t); i++ {
		if t[i].Concentration <= t[i-1].Concentration {
			return fmt.Errorf("concentrations must be strictly increasing: %.2f at index %d after %.2f",
				t[i].Concentration, i, t[i-1].Concentration)
		}
	}
	return nil
}

// Anchor colors measured from API freshwater test kit cards under neutral
// lighting. pH runs yellow through green to blue; ammonia yellow to deep
// green; nitrite pale blue to purple.
var (
	phTable = Table{
		{Concentration: 6.0, Color: colorutil.HSV{H: 55, S: 70, V: 85}},
		{Concentration: 6.4, Color: colorutil.HSV{H: 75, S: 65, V: 80}},
		{Concentration: 6.8, Color: colorutil.HSV{H: 100, S: 65, V: 75}},
		{Concentration: 7.0, Color: colorutil.HSV{H: 120, S: 65, V: 70}},
		{Concentration: 7.2, Color: colorutil.HSV{H: 140, S: 60, V: 65}},
		{Concentration: 7.6, Color: colorutil.HSV{H: 175, S: 55, V: 60}},
	}

	ammoniaTable = Table{
		{Concentration: 0, Color: colorutil.HSV{H: 60, S: 75, V: 85}},
		{Concentration: 0.25, Color: colorutil.HSV{H: 75, S: 72, V: 82}},
		{Concentration: 0.5, Color: colorutil.HSV{H: 90, S: 70, V: 78}},
		{Concentration: 1.0, Color: colorutil.HSV{H: 105, S: 68, V: 75}},
		{Concentration: 2.0, Color: colorutil.HSV{H: 120, S: 66, V: 70}},
		{Concentration: 4.0, Color: colorutil.HSV{H: 140, S: 64, V: 65}},
		{Concentration: 8.0, Color: colorutil.HSV{H: 160, S: 62, V: 60}},
	}

	nitriteTable = Table{
		{Concentration: 0, Color: colorutil.HSV{H: 195, S: 35, V: 85}},
		{Concentration: 0.25, Color: colorutil.HSV{H: 230, S: 45, V: 75}},
		{Concentration: 0.5, Color: colorutil.HSV{H: 260, S: 50, V: 68}},
		{Concentration: 1.0, Color: colorutil.HSV{H: 280, S: 55, V: 60}},
		{Concentration: 2.0, Color: colorutil.HSV{H: 295, S: 60, V: 52}},
		{Concentration: 5.0, Color: colorutil.HSV{H: 310, S: 65, V: 45}},
	}
)

// TableFor returns the calibration table for the analyte. The returned
// slice is a copy; tables are immutable for the lifetime of the process.
func TableFor(k Kind) Table {
	var src Table
	switch k {
	case Ammonia:
		src = ammoniaTable
	case Nitrite:
		src = nitriteTable
	default:
		src = phTable
	}
	out := make(Table, len(src))
	copy(out, src)
	return out
}

// Tables returns a read-only snapshot of all calibration tables keyed by
// analyte, for inspection and configuration tooling.
func Tables() map[Kind]Table {
	out := make(map[Kind]Table, 3)
	for _, k := range Kinds() {
		out[k] = TableFor(k)
	}
	return out
}
