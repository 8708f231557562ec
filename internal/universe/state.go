package universe

import (
	"encoding/json"
	"os"
	"time"

	"github.com/CRT-ALT-Kenosis/institutional-scanner-nextgen/internal/model"
)

// LoadState reads the universe state from a JSON file. Returns a zero state if the file doesn't exist.
func LoadState(filePath string) (*model.UniverseState, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &model.UniverseState{Sectors: map[string]string{}}, nil
		}
		return nil, err
	}
	var state model.UniverseState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	if state.Sectors == nil {
		state.Sectors = map[string]string{}
	}
	return &state, nil
}

// SaveState writes the universe state to a JSON file.
func SaveState(filePath string, state *model.UniverseState) error {
	state.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}
