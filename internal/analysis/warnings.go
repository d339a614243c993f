package analysis

import (
	"reagent-reader/internal/reference"
	"reagent-reader/pkg/colorutil"
)

// Warning flags a condition that makes a reading less reliable. Warnings
// are advisory; none halts an analysis.
type Warning string

const (
	// WarnLowSaturation: reagent color too faint, under-dosed or diluted.
	WarnLowSaturation Warning = "LOW_SATURATION"
	// WarnLowBrightness: insufficient lighting.
	WarnLowBrightness Warning = "LOW_BRIGHTNESS"
	// WarnOverexposed: washed-out highlight.
	WarnOverexposed Warning = "OVEREXPOSED"
	// WarnReferenceNotCalibrated: no white-patch calibration recorded.
	WarnReferenceNotCalibrated Warning = "REFERENCE_NOT_CALIBRATED"
)

// Describe returns a human-readable explanation for display.
func (w Warning) Describe() string {
	switch w {
	case WarnLowSaturation:
		return "Reagent color is very faint; check dosing"
	case WarnLowBrightness:
		return "Image is too dark; improve lighting"
	case WarnOverexposed:
		return "Image is washed out; reduce lighting or exposure"
	case WarnReferenceNotCalibrated:
		return "Reference patch not calibrated; colors may be off"
	default:
		return string(w)
	}
}

// EvaluateWarnings inspects the measured color and calibration state. The
// checks are independent and reported in a fixed order.
func EvaluateWarnings(hsv colorutil.HSV, state reference.State) []Warning {
	var warnings []Warning
	if hsv.S < 20 {
		warnings = append(warnings, WarnLowSaturation)
	}
	if hsv.V < 30 {
		warnings = append(warnings, WarnLowBrightness)
	}
	if hsv.V > 95 && hsv.S < 15 {
		warnings = append(warnings, WarnOverexposed)
	}
	if !state.Calibrated {
		warnings = append(warnings, WarnReferenceNotCalibrated)
	}
	return warnings
}
