// Package main provides the entry point for the Reagent Reader application.
package main

import (
	"log"

	fyneapp "fyne.io/fyne/v2/app"

	"reagent-reader/internal/analysis"
	"reagent-reader/internal/app"
	"reagent-reader/internal/capture"
	"reagent-reader/internal/history"
	"reagent-reader/internal/reference"
	"reagent-reader/internal/version"
	"reagent-reader/ui/mainwindow"
	"reagent-reader/ui/prefs"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting Reagent Reader v%s", version.Version)

	appPrefs := prefs.Load()

	refPath := reference.StatePath()
	refState := reference.LoadState(refPath)
	if refState.Calibrated {
		log.Printf("Restored reference calibration %s", refState.Color)
	}

	pipeline := analysis.NewPipeline(analysis.Config{
		ROIFraction:      appPrefs.Float(prefs.KeyROIFraction, 0.25),
		InitialReference: refState,
	})

	state := app.NewState(app.Config{
		Pipeline:      pipeline,
		Source:        sourceFromPrefs(appPrefs),
		HistoryLog:    history.NewLog(history.DefaultPath()),
		ReferencePath: refPath,
	})

	fyneApp := fyneapp.New()
	win := mainwindow.New(fyneApp, state, appPrefs)

	defer func() {
		if err := appPrefs.Save(); err != nil {
			log.Printf("Failed to save preferences: %v", err)
		}
	}()

	win.ShowAndRun()
}

// sourceFromPrefs builds the capture source selected in preferences. The
// default is a local webcam on device 0.
func sourceFromPrefs(p *prefs.Prefs) capture.Source {
	switch p.String(prefs.KeySourceType, "webcam") {
	case "camera":
		return capture.HTTPSource{URL: p.String(prefs.KeyCameraURL, "http://localhost:8080/snapshot.jpg")}
	case "file":
		return capture.FileSource{Path: p.String(prefs.KeyCameraURL, "frame.png")}
	default:
		return capture.WebcamSource{DeviceID: p.Int(prefs.KeyWebcamID, 0)}
	}
}
