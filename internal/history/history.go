// Package history persists completed readings as an append-only JSON-lines
// log so the UI can show trends across measurements.
package history

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"reagent-reader/internal/analysis"
	"reagent-reader/internal/analyte"
)

const logFile = "history.jsonl"

// Entry is one logged reading.
type Entry struct {
	Time       time.Time          `json:"time"`
	Analyte    string             `json:"analyte"`
	Value      float64            `json:"value"`
	Confidence int                `json:"confidence"`
	Status     string             `json:"status"`
	Label      string             `json:"label"`
	Warnings   []analysis.Warning `json:"warnings,omitempty"`
}

// NewEntry builds an Entry from an analysis result and its interpretation.
func NewEntry(result *analysis.Result, interp analyte.Interpretation) Entry {
	return Entry{
		Time:       result.Time,
		Analyte:    result.Analyte.String(),
		Value:      result.Value,
		Confidence: result.Confidence,
		Status:     interp.Status.String(),
		Label:      interp.Label,
		Warnings:   result.Warnings,
	}
}

// Log is an append-only reading log backed by a JSON-lines file.
type Log struct {
	mu   sync.Mutex
	path string
}

// DefaultPath returns ~/.config/reagent-reader/history.jsonl.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, "reagent-reader", logFile)
}

// NewLog creates a Log at the given path. The file is created lazily on
// the first Append.
func NewLog(path string) *Log {
	return &Log{path: path}
}

// Append writes one entry to the end of the log.
func (l *Log) Append(e Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening history log: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing history entry: %w", err)
	}
	return nil
}

// Load reads every entry in the log, oldest first. Malformed lines are
// skipped; a half-written trailing line must not block startup.
func (l *Log) Load() ([]Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening history log: %w", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, scanner.Err()
}

// Recent returns up to n of the newest entries, newest first.
func (l *Log) Recent(n int) ([]Entry, error) {
	entries, err := l.Load()
	if err != nil {
		return nil, err
	}

	out := make([]Entry, 0, min(n, len(entries)))
	for i := len(entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, entries[i])
	}
	return out, nil
}
