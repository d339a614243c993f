package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"reagent-reader/internal/reference"
	"reagent-reader/pkg/colorutil"
)

func calibrated() reference.State {
	return reference.State{Calibrated: true, Color: colorutil.White}
}

func TestEvaluateWarningsClean(t *testing.T) {
	got := EvaluateWarnings(colorutil.HSV{H: 120, S: 65, V: 70}, calibrated())
	assert.Empty(t, got)
}

func TestEvaluateWarningsIndividual(t *testing.T) {
	tests := []struct {
		name string
		hsv  colorutil.HSV
		want Warning
	}{
		{"low saturation", colorutil.HSV{H: 120, S: 19, V: 70}, WarnLowSaturation},
		{"low brightness", colorutil.HSV{H: 120, S: 65, V: 29}, WarnLowBrightness},
		{"overexposed", colorutil.HSV{H: 120, S: 14, V: 96}, WarnOverexposed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateWarnings(tt.hsv, calibrated())
			assert.Contains(t, got, tt.want)
		})
	}
}

func TestEvaluateWarningsBoundaries(t *testing.T) {
	// Thresholds are strict inequalities.
	assert.Empty(t, EvaluateWarnings(colorutil.HSV{H: 0, S: 20, V: 30}, calibrated()))
	assert.Empty(t, EvaluateWarnings(colorutil.HSV{H: 0, S: 15, V: 95}, calibrated()))
}

func TestEvaluateWarningsUncalibrated(t *testing.T) {
	got := EvaluateWarnings(colorutil.HSV{H: 120, S: 65, V: 70}, reference.DefaultState())
	assert.Equal(t, []Warning{WarnReferenceNotCalibrated}, got)
}

func TestEvaluateWarningsOrderAndStacking(t *testing.T) {
	// A faint, washed-out frame with no calibration triggers everything
	// except low brightness, in check order.
	got := EvaluateWarnings(colorutil.HSV{H: 120, S: 10, V: 96}, reference.DefaultState())
	assert.Equal(t, []Warning{WarnLowSaturation, WarnOverexposed, WarnReferenceNotCalibrated}, got)
}
