package reference

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const stateFile = "reference.json"

// StatePath returns the location of the persisted reference state,
// ~/.config/reagent-reader/reference.json on Linux.
func StatePath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, "reagent-reader", stateFile)
}

// LoadState reads a persisted reference state. Returns the default
// uncalibrated state if the file does not exist or cannot be parsed;
// restoring a stale calibration is preferable to failing startup.
func LoadState(path string) State {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultState()
	}
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return DefaultState()
	}
	return s
}

// SaveState writes the state to disk, creating the directory if needed.
func SaveState(path string, s State) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
