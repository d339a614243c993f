package analysis

import (
	"context"
	"fmt"
	"time"

	"reagent-reader/internal/analyte"
	"reagent-reader/internal/capture"
	"reagent-reader/internal/reference"
	"reagent-reader/internal/sample"
	"reagent-reader/pkg/colorutil"
	"reagent-reader/pkg/geometry"
)

// Result is one completed analysis. Results are value objects, produced
// fresh by each Analyze call and immutable once returned.
type Result struct {
	Analyte      analyte.Kind  `json:"analyte"`
	Value        float64       `json:"value"`
	Confidence   int           `json:"confidence"`
	HSV          colorutil.HSV `json:"hsv"`
	CorrectedRGB colorutil.RGB `json:"corrected_rgb"`
	RawRGB       colorutil.RGB `json:"raw_rgb"`
	Warnings     []Warning     `json:"warnings,omitempty"`

	ROI  geometry.RectInt `json:"roi"`
	Time time.Time        `json:"time"`
}

// Pipeline orchestrates a full analysis from frame acquisition to result.
// It owns the reference calibration state; everything else it touches is
// pure. Acquisition is the only step that blocks on I/O, so it is the only
// step that sees the context.
type Pipeline struct {
	calibrator  *reference.Calibrator
	roiFraction float64
}

// Config configures a Pipeline.
type Config struct {
	// ROIFraction is the fraction of each frame dimension covered by the
	// sampling region. Zero means sample.DefaultROIFraction.
	ROIFraction float64

	// InitialReference restores a persisted calibration. Zero value means
	// start uncalibrated.
	InitialReference reference.State
}

// NewPipeline creates a Pipeline.
func NewPipeline(cfg Config) *Pipeline {
	fraction := cfg.ROIFraction
	if fraction <= 0 || fraction > 1 {
		fraction = sample.DefaultROIFraction
	}

	cal := reference.NewCalibrator()
	if cfg.InitialReference.Calibrated {
		cal = reference.NewCalibratorWithState(cfg.InitialReference)
	}

	return &Pipeline{
		calibrator:  cal,
		roiFraction: fraction,
	}
}

// ReferenceState returns a snapshot of the current calibration state.
func (p *Pipeline) ReferenceState() reference.State {
	return p.calibrator.State()
}

// Analyze acquires one frame and estimates the analyte concentration from
// the reagent color in the frame's central region.
func (p *Pipeline) Analyze(ctx context.Context, src capture.Source, kind analyte.Kind) (*Result, error) {
	img, err := src.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	roi := sample.CenterRegion(bounds.Dx(), bounds.Dy(), p.roiFraction)

	raw, err := sample.ExtractRegion(img, roi)
	if err != nil {
		return nil, fmt.Errorf("sampling ROI: %w", err)
	}

	state := p.calibrator.State()
	corrected := reference.Correct(raw, state)
	hsv := colorutil.RGBToHSV(corrected)

	value, confidence := Interpolate(hsv, analyte.TableFor(kind))

	return &Result{
		Analyte:      kind,
		Value:        value,
		Confidence:   confidence,
		HSV:          hsv,
		CorrectedRGB: corrected,
		RawRGB:       raw,
		Warnings:     EvaluateWarnings(hsv, state),
		ROI:          roi,
		Time:         time.Now(),
	}, nil
}

// CalibrateReference acquires one frame, samples the neutral reference
// patch in its bottom-right corner, and records it as the new reference.
func (p *Pipeline) CalibrateReference(ctx context.Context, src capture.Source) (reference.State, error) {
	img, err := src.Acquire(ctx)
	if err != nil {
		return reference.State{}, err
	}

	bounds := img.Bounds()
	patch := sample.ReferencePatchRegion(bounds.Dx(), bounds.Dy())

	rgb, err := sample.ExtractRegion(img, patch)
	if err != nil {
		return reference.State{}, fmt.Errorf("sampling reference patch: %w", err)
	}

	return p.calibrator.Calibrate(rgb), nil
}

// Interpret classifies a concentration for the analyte.
func (p *Pipeline) Interpret(kind analyte.Kind, value float64) analyte.Interpretation {
	return analyte.Classify(kind, value)
}
