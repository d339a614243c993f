// Command assaytest runs the colorimetric analysis on a captured frame and
// prints the resulting reading.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"reagent-reader/internal/analysis"
	"reagent-reader/internal/analyte"
	"reagent-reader/internal/capture"
	"reagent-reader/internal/reference"
)

func main() {
	imagePath := flag.String("image", "", "Path to frame (TIFF, PNG, or JPEG)")
	cameraURL := flag.String("camera", "", "Snapshot URL of a network camera (alternative to -image)")
	kindName := flag.String("analyte", "ph", "Analyte: ph, ammonia (nh3), or nitrite (no2)")
	refPath := flag.String("reference", "", "Path to persisted reference state (default: none)")
	roi := flag.Float64("roi", 0.25, "ROI fraction of each frame dimension")
	timeout := flag.Duration("timeout", 10*time.Second, "Acquisition timeout")
	flag.Parse()

	if *imagePath == "" && *cameraURL == "" {
		fmt.Println("Usage: assaytest -image <path> | -camera <url> [-analyte ph|nh3|no2]")
		os.Exit(1)
	}

	var src capture.Source
	if *imagePath != "" {
		src = capture.FileSource{Path: *imagePath}
	} else {
		src = capture.HTTPSource{URL: *cameraURL}
	}

	refState := reference.DefaultState()
	if *refPath != "" {
		refState = reference.LoadState(*refPath)
	}

	kind := analyte.ParseKind(*kindName)
	pipeline := analysis.NewPipeline(analysis.Config{
		ROIFraction:      *roi,
		InitialReference: refState,
	})

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	result, err := pipeline.Analyze(ctx, src, kind)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Analysis failed: %v\n", err)
		os.Exit(1)
	}

	interp := pipeline.Interpret(kind, result.Value)

	fmt.Printf("Analyte:    %s\n", kind)
	fmt.Printf("ROI:        %dx%d at (%d,%d)\n", result.ROI.Width, result.ROI.Height, result.ROI.X, result.ROI.Y)
	fmt.Printf("Raw RGB:    %s\n", result.RawRGB)
	fmt.Printf("Corrected:  %s (reference calibrated: %v)\n", result.CorrectedRGB, refState.Calibrated)
	fmt.Printf("HSV:        %s\n", result.HSV)
	if unit := kind.Unit(); unit != "" {
		fmt.Printf("Value:      %.2f %s\n", result.Value, unit)
	} else {
		fmt.Printf("Value:      %.2f\n", result.Value)
	}
	fmt.Printf("Confidence: %d%%\n", result.Confidence)
	fmt.Printf("Status:     %s (%s)\n", interp.Status, interp.Label)

	if len(result.Warnings) > 0 {
		fmt.Println("\nWarnings:")
		for _, w := range result.Warnings {
			fmt.Printf("  %-25s %s\n", w, w.Describe())
		}
	}
}
