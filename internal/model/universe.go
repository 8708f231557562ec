package model

import "time"

// UniverseState is the persisted scan universe: the set of tickers under
// watch, each with a sector label used for sector-aware thresholds.
type UniverseState struct {
	Sectors   map[string]string `json:"sectors"` // ticker -> sector name
	UpdatedAt time.Time         `json:"updated_at"`
}
