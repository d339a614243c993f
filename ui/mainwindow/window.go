// Package mainwindow provides the main application window.
package mainwindow

import (
	"context"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"reagent-reader/internal/analysis"
	"reagent-reader/internal/analyte"
	"reagent-reader/internal/app"
	"reagent-reader/internal/reference"
	"reagent-reader/internal/version"
	"reagent-reader/ui/panels"
	"reagent-reader/ui/prefs"
)

const analysisTimeout = 15 * time.Second

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app   fyne.App
	state *app.State
	prefs *prefs.Prefs

	readingPanel *panels.ReadingPanel
	historyPanel *panels.HistoryPanel
	statusBar    *widget.Label

	analyzeBtn   *widget.Button
	calibrateBtn *widget.Button
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Reagent Reader")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  p,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()

	win.Resize(fyne.NewSize(520, 480))
	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.readingPanel = panels.NewReadingPanel(mw.state)
	mw.historyPanel = panels.NewHistoryPanel(mw.state)
	mw.statusBar = widget.NewLabel("Ready")

	names := make([]string, 0, 3)
	for _, k := range analyte.Kinds() {
		names = append(names, k.String())
	}
	analyteSelect := widget.NewSelect(names, func(name string) {
		kind := analyte.ParseKind(name)
		mw.state.SetActiveAnalyte(kind)
		mw.prefs.SetString(prefs.KeyLastAnalyte, name)
	})
	analyteSelect.SetSelected(mw.state.ActiveAnalyte().String())

	mw.analyzeBtn = widget.NewButton("Analyze", mw.onAnalyze)
	mw.calibrateBtn = widget.NewButton("Calibrate Reference", mw.onCalibrate)

	toolbar := container.NewHBox(
		widget.NewLabel("Analyte:"),
		analyteSelect,
		mw.analyzeBtn,
		mw.calibrateBtn,
	)

	split := container.NewVSplit(
		mw.readingPanel.Container(),
		mw.historyPanel.Container(),
	)
	split.SetOffset(0.45)

	content := container.NewBorder(
		toolbar,
		container.NewPadded(mw.statusBar),
		nil,
		nil,
		split,
	)

	mw.SetContent(content)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Analyze", mw.onAnalyze),
		fyne.NewMenuItem("Calibrate Reference...", mw.onCalibrate),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventReadingComplete, func(data interface{}) {
		if result, ok := data.(*analysis.Result); ok {
			mw.updateStatus(fmt.Sprintf("Reading complete (%d%% confidence)", result.Confidence))
		}
	})

	mw.state.On(app.EventReferenceCalibrated, func(data interface{}) {
		if state, ok := data.(reference.State); ok {
			mw.updateStatus("Reference calibrated: " + state.Color.String())
		}
	})

	mw.state.On(app.EventAnalyteChanged, func(data interface{}) {
		if kind, ok := data.(analyte.Kind); ok {
			mw.updateStatus("Analyte: " + kind.String())
		}
	})
}

// onAnalyze captures a frame and runs the analysis without blocking the
// UI thread. Buttons are disabled for the duration; a second capture on
// the same camera would contend for the device.
func (mw *MainWindow) onAnalyze() {
	mw.setBusy(true, "Analyzing...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), analysisTimeout)
		defer cancel()

		_, err := mw.state.RunAnalysis(ctx)
		mw.setBusy(false, "")
		if err != nil {
			mw.updateStatus("Analysis failed")
			dialog.ShowError(err, mw.Window)
		}
		mw.historyPanel.Reload()
	}()
}

// onCalibrate samples the reference patch from a fresh frame.
func (mw *MainWindow) onCalibrate() {
	mw.setBusy(true, "Calibrating...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), analysisTimeout)
		defer cancel()

		_, err := mw.state.CalibrateReference(ctx)
		mw.setBusy(false, "")
		if err != nil {
			mw.updateStatus("Calibration failed")
			dialog.ShowError(err, mw.Window)
		}
	}()
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About",
		fmt.Sprintf("Reagent Reader %s\nColorimetric water testing for aquariums", version.Version),
		mw.Window)
}

func (mw *MainWindow) setBusy(busy bool, status string) {
	if busy {
		mw.analyzeBtn.Disable()
		mw.calibrateBtn.Disable()
	} else {
		mw.analyzeBtn.Enable()
		mw.calibrateBtn.Enable()
	}
	if status != "" {
		mw.updateStatus(status)
	}
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}
