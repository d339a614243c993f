// Package panels provides the side panels of the main window.
package panels

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"reagent-reader/internal/analysis"
	"reagent-reader/internal/analyte"
	"reagent-reader/internal/app"
)

// ReadingPanel displays the most recent reading: value, confidence,
// classification, measured color, and any warnings.
type ReadingPanel struct {
	state *app.State

	valueLabel      *widget.Label
	confidenceLabel *widget.Label
	statusLabel     *widget.Label
	colorLabel      *widget.Label
	warningsLabel   *widget.Label

	container *fyne.Container
}

// NewReadingPanel creates the reading panel and subscribes it to state
// events.
func NewReadingPanel(state *app.State) *ReadingPanel {
	rp := &ReadingPanel{
		state:           state,
		valueLabel:      widget.NewLabel("--"),
		confidenceLabel: widget.NewLabel(""),
		statusLabel:     widget.NewLabel("No reading yet"),
		colorLabel:      widget.NewLabel(""),
		warningsLabel:   widget.NewLabel(""),
	}
	rp.valueLabel.TextStyle = fyne.TextStyle{Bold: true}
	rp.warningsLabel.Wrapping = fyne.TextWrapWord

	rp.container = container.NewVBox(
		widget.NewLabelWithStyle("Current Reading", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		rp.valueLabel,
		rp.confidenceLabel,
		rp.statusLabel,
		rp.colorLabel,
		widget.NewSeparator(),
		rp.warningsLabel,
	)

	state.On(app.EventReadingComplete, func(data interface{}) {
		if result, ok := data.(*analysis.Result); ok {
			rp.showResult(result)
		}
	})
	state.On(app.EventReadingFailed, func(data interface{}) {
		if err, ok := data.(error); ok {
			rp.statusLabel.SetText("Analysis failed: " + err.Error())
		}
	})

	return rp
}

// Container returns the panel's root container.
func (rp *ReadingPanel) Container() fyne.CanvasObject {
	return rp.container
}

func (rp *ReadingPanel) showResult(result *analysis.Result) {
	unit := result.Analyte.Unit()
	if unit != "" {
		unit = " " + unit
	}
	rp.valueLabel.SetText(fmt.Sprintf("%s: %.2f%s", result.Analyte, result.Value, unit))
	rp.confidenceLabel.SetText(fmt.Sprintf("Confidence: %d%%", result.Confidence))

	interp := analyte.Classify(result.Analyte, result.Value)
	rp.statusLabel.SetText(fmt.Sprintf("%s: %s", interp.Status, interp.Label))
	rp.colorLabel.SetText(fmt.Sprintf("Color: %s  %s", result.CorrectedRGB, result.HSV))

	if len(result.Warnings) == 0 {
		rp.warningsLabel.SetText("")
		return
	}
	lines := make([]string, len(result.Warnings))
	for i, w := range result.Warnings {
		lines[i] = "⚠ " + w.Describe()
	}
	rp.warningsLabel.SetText(strings.Join(lines, "\n"))
}
