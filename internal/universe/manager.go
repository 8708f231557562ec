package universe

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/CRT-ALT-Kenosis/institutional-scanner-nextgen/internal/model"
)

// Manager guards the persisted scan universe with concurrency safety.
type Manager struct {
	mu       sync.Mutex
	state    *model.UniverseState
	filePath string
}

// NewManager creates a Manager, loading or initializing state from disk.
// defaults seeds a fresh universe: ticker -> sector.
func NewManager(filePath string, defaults map[string]string) (*Manager, error) {
	state, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}

	if len(state.Sectors) == 0 {
		state.Sectors = make(map[string]string, len(defaults))
		for t, sector := range defaults {
			state.Sectors[normalizeTicker(t)] = sector
		}
	}

	m := &Manager{state: state, filePath: filePath}
	if err := m.save(); err != nil {
		return nil, err
	}
	return m, nil
}

// Tickers returns the universe tickers in stable alphabetical order.
func (m *Manager) Tickers() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.state.Sectors))
	for t := range m.state.Sectors {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Sectors returns a copy of the ticker -> sector map.
func (m *Manager) Sectors() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]string, len(m.state.Sectors))
	for t, s := range m.state.Sectors {
		out[t] = s
	}
	return out
}

// Add puts a ticker into the universe. An empty sector keeps an existing
// label or defaults to "Unknown".
func (m *Manager) Add(ticker, sector string) error {
	t := normalizeTicker(ticker)
	if t == "" {
		return errors.New("ticker must not be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if sector == "" {
		if existing, ok := m.state.Sectors[t]; ok {
			sector = existing
		} else {
			sector = "Unknown"
		}
	}
	m.state.Sectors[t] = sector

	if err := m.save(); err != nil {
		log.Printf("[ERROR] failed to save universe state: %v", err)
		return err
	}
	return nil
}

// Remove drops a ticker from the universe.
func (m *Manager) Remove(ticker string) error {
	t := normalizeTicker(ticker)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.state.Sectors[t]; !ok {
		return fmt.Errorf("ticker %s not in universe", t)
	}
	delete(m.state.Sectors, t)

	if err := m.save(); err != nil {
		log.Printf("[ERROR] failed to save universe state: %v", err)
		return err
	}
	return nil
}

// GetState returns a copy of the current universe state.
func (m *Manager) GetState() model.UniverseState {
	m.mu.Lock()
	defer m.mu.Unlock()

	state := *m.state
	state.Sectors = make(map[string]string, len(m.state.Sectors))
	for t, s := range m.state.Sectors {
		state.Sectors[t] = s
	}
	return state
}

func (m *Manager) save() error {
	return SaveState(m.filePath, m.state)
}

// ParseTickerList splits comma-separated user input into normalized tickers.
// Blanks are dropped; input with no tickers at all is an error.
func ParseTickerList(input string) ([]string, error) {
	var tickers []string
	for _, part := range strings.Split(input, ",") {
		t := normalizeTicker(part)
		if t == "" {
			continue
		}
		tickers = append(tickers, t)
	}
	if len(tickers) == 0 {
		return nil, errors.New("enter at least one ticker")
	}
	return tickers, nil
}

func normalizeTicker(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
