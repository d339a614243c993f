// Package app provides application state, lifecycle, and events.
package app

import (
	"context"
	"fmt"
	"sync"

	"reagent-reader/internal/analysis"
	"reagent-reader/internal/analyte"
	"reagent-reader/internal/capture"
	"reagent-reader/internal/history"
	"reagent-reader/internal/reference"
)

// EventType identifies different application events.
type EventType int

const (
	EventReadingComplete EventType = iota
	EventReadingFailed
	EventReferenceCalibrated
	EventAnalyteChanged
	EventHistoryChanged
)

// EventListener is a callback for application events.
type EventListener func(data interface{})

// State holds the application state: the analysis pipeline, the selected
// analyte, the last reading, and the reading history.
type State struct {
	mu sync.RWMutex

	pipeline   *analysis.Pipeline
	source     capture.Source
	active     analyte.Kind
	lastResult *analysis.Result
	lastInterp analyte.Interpretation

	log           *history.Log
	referencePath string

	listeners map[EventType][]EventListener
}

// Config configures a new State.
type Config struct {
	Pipeline      *analysis.Pipeline
	Source        capture.Source
	HistoryLog    *history.Log
	ReferencePath string // where to persist calibration; empty disables persistence
}

// NewState creates the application state.
func NewState(cfg Config) *State {
	return &State{
		pipeline:      cfg.Pipeline,
		source:        cfg.Source,
		active:        analyte.PH,
		log:           cfg.HistoryLog,
		referencePath: cfg.ReferencePath,
		listeners:     make(map[EventType][]EventListener),
	}
}

// On registers a listener for an event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	s.listeners[event] = append(s.listeners[event], listener)
	s.mu.Unlock()
}

// emit notifies all listeners of an event.
func (s *State) emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()
	for _, l := range listeners {
		l(data)
	}
}

// ActiveAnalyte returns the currently selected analyte.
func (s *State) ActiveAnalyte() analyte.Kind {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// SetActiveAnalyte selects the analyte for subsequent readings.
func (s *State) SetActiveAnalyte(k analyte.Kind) {
	s.mu.Lock()
	changed := s.active != k
	s.active = k
	s.mu.Unlock()
	if changed {
		s.emit(EventAnalyteChanged, k)
	}
}

// SetSource replaces the capture source (e.g. after a camera URL change).
func (s *State) SetSource(src capture.Source) {
	s.mu.Lock()
	s.source = src
	s.mu.Unlock()
}

// LastReading returns the most recent result and its interpretation, or
// nil if no reading has completed yet.
func (s *State) LastReading() (*analysis.Result, analyte.Interpretation) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastResult, s.lastInterp
}

// ReferenceState returns the pipeline's calibration state.
func (s *State) ReferenceState() reference.State {
	return s.pipeline.ReferenceState()
}

// RunAnalysis captures a frame, analyzes it for the active analyte, logs
// the reading, and notifies listeners. A failed analysis leaves the last
// reading intact.
func (s *State) RunAnalysis(ctx context.Context) (*analysis.Result, error) {
	s.mu.RLock()
	src := s.source
	kind := s.active
	s.mu.RUnlock()

	result, err := s.pipeline.Analyze(ctx, src, kind)
	if err != nil {
		s.emit(EventReadingFailed, err)
		return nil, err
	}

	interp := s.pipeline.Interpret(kind, result.Value)

	s.mu.Lock()
	s.lastResult = result
	s.lastInterp = interp
	s.mu.Unlock()

	s.emit(EventReadingComplete, result)

	if s.log != nil {
		if err := s.log.Append(history.NewEntry(result, interp)); err != nil {
			return result, fmt.Errorf("reading ok but logging failed: %w", err)
		}
		s.emit(EventHistoryChanged, nil)
	}
	return result, nil
}

// CalibrateReference captures a frame, samples the reference patch, and
// persists the new calibration.
func (s *State) CalibrateReference(ctx context.Context) (reference.State, error) {
	s.mu.RLock()
	src := s.source
	s.mu.RUnlock()

	state, err := s.pipeline.CalibrateReference(ctx, src)
	if err != nil {
		return reference.State{}, err
	}

	if s.referencePath != "" {
		if err := reference.SaveState(s.referencePath, state); err != nil {
			return state, fmt.Errorf("calibrated but persisting failed: %w", err)
		}
	}

	s.emit(EventReferenceCalibrated, state)
	return state, nil
}

// History returns up to n recent readings, newest first.
func (s *State) History(n int) ([]history.Entry, error) {
	if s.log == nil {
		return nil, nil
	}
	return s.log.Recent(n)
}
