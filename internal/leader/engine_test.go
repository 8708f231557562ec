package leader

import (
	"testing"
	"time"

	"github.com/CRT-ALT-Kenosis/institutional-scanner-nextgen/internal/calculator"
	"github.com/CRT-ALT-Kenosis/institutional-scanner-nextgen/internal/model"
)

// genDailyBars builds a weekday-only daily series ending on a Friday.
func genDailyBars(count int, basePrice float64) []model.OHLCV {
	// 2024-06-28 is a Friday.
	end := time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCV, 0, count)
	day := end
	for len(bars) < count {
		if wd := day.Weekday(); wd != time.Saturday && wd != time.Sunday {
			p := basePrice * (1 - float64(len(bars))*0.0005)
			bars = append(bars, model.OHLCV{
				Time:   day,
				Open:   p * 0.999,
				High:   p * 1.005,
				Low:    p * 0.995,
				Close:  p,
				Volume: 1000000,
			})
		}
		day = day.AddDate(0, 0, -1)
	}
	// reverse into chronological order
	for i, j := 0, len(bars)-1; i < j; i, j = i+1, j-1 {
		bars[i], bars[j] = bars[j], bars[i]
	}
	return bars
}

func TestNormalize(t *testing.T) {
	e := NewEngine(DefaultConfig())

	tests := []struct {
		raw  float64
		want float64
	}{
		{0, 0},
		{100, 80},    // exactly the full-hit cutoff
		{75, 60},     // exactly the strong cutoff
		{125, 100},   // cap
		{1000, 100},  // cap regardless of raw magnitude
		{1, 1},       // round(0.8) = 1
		{99.5, 80},   // round(79.6) = 80
	}
	for _, tt := range tests {
		got := e.Normalize(tt.raw)
		if got != tt.want {
			t.Errorf("Normalize(%.1f) = %.1f, want %.1f", tt.raw, got, tt.want)
		}
		if got < 0 || got > 100 {
			t.Errorf("Normalize(%.1f) = %.1f out of [0,100]", tt.raw, got)
		}
	}
}

func TestGradeBoundaries(t *testing.T) {
	e := NewEngine(DefaultConfig())

	tests := []struct {
		norm float64
		want model.Grade
	}{
		{100, model.GradeFullHit},
		{81, model.GradeFullHit},
		{80, model.GradeFullHit}, // boundary goes to the higher tier
		{79, model.GradeStrong},
		{61, model.GradeStrong},
		{60, model.GradeStrong}, // boundary goes to the higher tier
		{59, model.GradeWatchlist},
		{1, model.GradeWatchlist},
		{0, model.GradeWatchlist},
	}
	for _, tt := range tests {
		if got := e.gradeFromNorm(tt.norm); got != tt.want {
			t.Errorf("gradeFromNorm(%.0f) = %q, want %q", tt.norm, got, tt.want)
		}
	}
}

func TestBuildResult_GradeFlags(t *testing.T) {
	e := NewEngine(DefaultConfig())

	tests := []struct {
		raw       float64
		wantGrade model.Grade
		wantNorm  float64
	}{
		{100, model.GradeFullHit, 80},
		{75, model.GradeStrong, 60},
		{0, model.GradeWatchlist, 0},
	}
	for _, tt := range tests {
		res := e.buildResult("NVDA", model.ModeRetest, "Technology", tt.raw, nil, nil, nil, "")
		if res.NormScore != tt.wantNorm {
			t.Errorf("raw %.0f: norm = %.1f, want %.1f", tt.raw, res.NormScore, tt.wantNorm)
		}
		if res.Grade != tt.wantGrade {
			t.Errorf("raw %.0f: grade = %q, want %q", tt.raw, res.Grade, tt.wantGrade)
		}
		flags := 0
		for _, f := range []bool{res.IsFullHit, res.IsStrong, res.IsWatchlist} {
			if f {
				flags++
			}
		}
		if flags != 1 {
			t.Errorf("raw %.0f: expected exactly one grade flag set, got %d", tt.raw, flags)
		}
	}
}

func TestScanRetest_StubScoresZero(t *testing.T) {
	e := NewEngine(DefaultConfig())
	daily := genDailyBars(1200, 100)
	weekly := calculator.ResampleWeekly(daily)

	res := e.ScanRetest("NVDA", weekly, daily, "Technology")
	if res.RawScore != 0 {
		t.Errorf("expected raw score 0 while factor scoring is unimplemented, got %.1f", res.RawScore)
	}
	if res.Grade != model.GradeWatchlist {
		t.Errorf("expected watchlist grade, got %q", res.Grade)
	}
	if len(res.Components) != 0 {
		t.Errorf("expected no components, got %d", len(res.Components))
	}
	for _, key := range []string{"close", "sma_200w", "dist_200w_pct", "sma_50d", "atr_daily_pct", "vol_surge"} {
		if _, ok := res.Metrics[key]; !ok {
			t.Errorf("expected metric %q to be present", key)
		}
	}
}

func TestScanBaseBreakout_Mode(t *testing.T) {
	e := NewEngine(DefaultConfig())
	daily := genDailyBars(300, 50)
	weekly := calculator.ResampleWeekly(daily)

	res := e.ScanBaseBreakout("KGC", weekly, daily, "Gold Miners")
	if res.Mode != model.ModeBase {
		t.Errorf("expected base mode, got %q", res.Mode)
	}
	if res.Sector != "Gold Miners" {
		t.Errorf("expected sector preserved, got %q", res.Sector)
	}
	// Not enough history for the 200-week average on 300 daily bars.
	if _, ok := res.Metrics["sma_200w"]; ok {
		t.Error("did not expect sma_200w with only 300 daily bars")
	}
	if _, ok := res.Metrics["close"]; !ok {
		t.Error("expected close metric")
	}
}

func TestRunThreshold(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.RunThreshold("Utilities"); got != 80.0 {
		t.Errorf("Utilities threshold = %.0f, want 80", got)
	}
	if got := cfg.RunThreshold("Unknown"); got != 300.0 {
		t.Errorf("unknown sector threshold = %.0f, want 300", got)
	}
}
