package panels

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"reagent-reader/internal/app"
	"reagent-reader/internal/history"
)

const historyDisplayLimit = 50

// HistoryPanel lists recent readings, newest first.
type HistoryPanel struct {
	state   *app.State
	entries []history.Entry

	list      *widget.List
	container *fyne.Container
}

// NewHistoryPanel creates the history panel and subscribes it to state
// events.
func NewHistoryPanel(state *app.State) *HistoryPanel {
	hp := &HistoryPanel{state: state}

	hp.list = widget.NewList(
		func() int { return len(hp.entries) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(hp.entries) {
				return
			}
			e := hp.entries[id]
			obj.(*widget.Label).SetText(fmt.Sprintf("%s  %s %.2f  %s",
				e.Time.Format("02 Jan 15:04"), e.Analyte, e.Value, e.Status))
		},
	)

	hp.container = container.NewBorder(
		widget.NewLabelWithStyle("History", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		nil, nil, nil,
		hp.list,
	)

	state.On(app.EventHistoryChanged, func(interface{}) { hp.Reload() })
	hp.Reload()

	return hp
}

// Container returns the panel's root container.
func (hp *HistoryPanel) Container() fyne.CanvasObject {
	return hp.container
}

// Reload refreshes the list from the reading log.
func (hp *HistoryPanel) Reload() {
	entries, err := hp.state.History(historyDisplayLimit)
	if err != nil {
		return
	}
	hp.entries = entries
	hp.list.Refresh()
}
