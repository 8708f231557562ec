package leader

import (
	"testing"

	"github.com/CRT-ALT-Kenosis/institutional-scanner-nextgen/internal/calculator"
	"github.com/CRT-ALT-Kenosis/institutional-scanner-nextgen/internal/model"
)

func seriesFor(symbol string, count int, base float64) *model.TickerSeries {
	daily := genDailyBars(count, base)
	return &model.TickerSeries{
		Symbol: symbol,
		Daily:  daily,
		Weekly: calculator.ResampleWeekly(daily),
	}
}

func TestScanUniverse_SkipsMissingAndEmpty(t *testing.T) {
	e := NewEngine(DefaultConfig())

	series := map[string]*model.TickerSeries{
		"NVDA":    seriesFor("NVDA", 300, 100),
		"AMD":     seriesFor("AMD", 300, 150),
		"NODAILY": {Symbol: "NODAILY", Weekly: genDailyBars(50, 10)},
		"EMPTY":   {Symbol: "EMPTY"},
	}
	sectors := map[string]string{"NVDA": "Technology"}

	tickers := []string{"NVDA", "MISSING", "NODAILY", "EMPTY", "AMD"}
	results := e.ScanUniverse(model.ModeRetest, tickers, series, sectors)

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	// Input order preserved
	if results[0].Ticker != "NVDA" || results[1].Ticker != "AMD" {
		t.Errorf("unexpected order: %s, %s", results[0].Ticker, results[1].Ticker)
	}
	if results[0].Sector != "Technology" {
		t.Errorf("expected mapped sector, got %q", results[0].Sector)
	}
	// Unmapped sector defaults to Unknown
	if results[1].Sector != "Unknown" {
		t.Errorf("expected Unknown sector for AMD, got %q", results[1].Sector)
	}
}

func TestScanUniverse_EmptyInput(t *testing.T) {
	e := NewEngine(DefaultConfig())
	results := e.ScanUniverse(model.ModeRetest, nil, nil, nil)
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
}

func TestSortByScore(t *testing.T) {
	results := []*model.LeaderResult{
		{Ticker: "A", NormScore: 10},
		{Ticker: "B", NormScore: 90},
		{Ticker: "C", NormScore: 50},
		{Ticker: "D", NormScore: 50},
	}
	SortByScore(results)

	want := []string{"B", "C", "D", "A"}
	for i, w := range want {
		if results[i].Ticker != w {
			t.Errorf("position %d: got %s, want %s", i, results[i].Ticker, w)
		}
	}
}
