// Package analyte defines the supported water-test analytes, their
// empirically derived color calibration tables, and the qualitative
// interpretation of measured concentrations.
package analyte

import "strings"

// Kind identifies a supported analyte.
type Kind int

const (
	// PH is the pH level of the water sample.
	PH Kind = iota
	// Ammonia is total ammonia (NH3/NH4+) in ppm.
	Ammonia
	// Nitrite is nitrite (NO2-) in ppm.
	Nitrite
)

func (k Kind) String() string {
	switch k {
	case PH:
		return "pH"
	case Ammonia:
		return "Ammonia"
	case Nitrite:
		return "Nitrite"
	default:
		return "Unknown"
	}
}

// Unit returns the measurement unit for the analyte.
func (k Kind) Unit() string {
	if k == PH {
		return ""
	}
	return "ppm"
}

// Kinds lists all supported analytes in display order.
func Kinds() []Kind {
	return []Kind{PH, Ammonia, Nitrite}
}

// ParseKind maps an external analyte identifier to a Kind. Unrecognized
// identifiers fall back to PH rather than failing; callers needing
// strictness should validate before calling.
func ParseKind(s string) Kind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ph":
		return PH
	case "ammonia", "nh3", "nh4":
		return Ammonia
	case "nitrite", "no2":
		return Nitrite
	default:
		return PH
	}
}
