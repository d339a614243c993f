// Package reference implements white-patch reference calibration: a known
// neutral sticker photographed alongside the sample is used to cancel the
// color cast of ambient lighting.
package reference

import (
	"math"
	"sync"

	"reagent-reader/pkg/colorutil"
)

// State is the reference calibration state. The zero value is not useful;
// use DefaultState.
type State struct {
	Calibrated bool          `json:"calibrated"`
	Color      colorutil.RGB `json:"color"`
}

// DefaultState returns the uncalibrated state with a pure white reference.
func DefaultState() State {
	return State{Calibrated: false, Color: colorutil.White}
}

// Calibrator owns the mutable reference state. Calibrate replaces the
// state as a whole; concurrent readers observe either the fully-old or
// fully-new state, never a partial update.
type Calibrator struct {
	mu    sync.RWMutex
	state State
}

// NewCalibrator creates a Calibrator in the default (uncalibrated) state.
func NewCalibrator() *Calibrator {
	return &Calibrator{state: DefaultState()}
}

// NewCalibratorWithState creates a Calibrator restored from a persisted state.
func NewCalibratorWithState(s State) *Calibrator {
	return &Calibrator{state: s}
}

// Calibrate records the sampled patch color as the new reference and marks
// the state calibrated. It overwrites any prior calibration; samples are
// not averaged across calls.
func (c *Calibrator) Calibrate(patch colorutil.RGB) State {
	s := State{Calibrated: true, Color: patch}
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
	return s
}

// State returns a snapshot of the current calibration state.
func (c *Calibrator) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Correct applies the white-balance correction derived from the snapshot
// to the sampled color. When the calibrator holds no calibration, rgb is
// returned unchanged.
func (c *Calibrator) Correct(rgb colorutil.RGB) colorutil.RGB {
	return Correct(rgb, c.State())
}

// Correct scales each channel by 255/reference toward a neutral white,
// compensating for colored ambient light. The max(ref,1) guard prevents
// division by zero when a reference channel reads exactly 0.
func Correct(rgb colorutil.RGB, state State) colorutil.RGB {
	if !state.Calibrated {
		return rgb
	}
	return colorutil.RGB{
		R: scaleChannel(rgb.R, state.Color.R),
		G: scaleChannel(rgb.G, state.Color.G),
		B: scaleChannel(rgb.B, state.Color.B),
	}
}

func scaleChannel(value, ref int) int {
	scale := 255.0 / float64(max(ref, 1))
	scaled := int(math.Round(float64(value) * scale))
	return min(scaled, 255)
}
