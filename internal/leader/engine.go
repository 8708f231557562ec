package leader

import (
	"math"

	"github.com/CRT-ALT-Kenosis/institutional-scanner-nextgen/internal/calculator"
	"github.com/CRT-ALT-Kenosis/institutional-scanner-nextgen/internal/model"
)

// Engine evaluates tickers against the retest and base-breakout setups.
type Engine struct {
	cfg Config
}

// NewEngine creates an Engine with the given configuration.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Normalize maps a raw score onto the 0-100 scale:
// norm = min(100, round(raw / divisor)).
func (e *Engine) Normalize(rawScore float64) float64 {
	return math.Min(100, math.Round(rawScore/e.cfg.NormalizationDivisor))
}

// gradeFromNorm assigns the tier for a normalized score, highest cutoff
// first. Boundary values land in the higher tier.
func (e *Engine) gradeFromNorm(normScore float64) model.Grade {
	if normScore >= e.cfg.FullHitMin {
		return model.GradeFullHit
	}
	if normScore >= e.cfg.StrongMin {
		return model.GradeStrong
	}
	return model.GradeWatchlist
}

// buildResult assembles the immutable per-ticker record from a raw score and
// its scoring metadata.
func (e *Engine) buildResult(ticker string, mode model.Mode, sector string, rawScore float64,
	components map[string]float64, tags []string, metrics map[string]float64, structure string) *model.LeaderResult {

	norm := e.Normalize(rawScore)
	grade := e.gradeFromNorm(norm)

	return &model.LeaderResult{
		Ticker:      ticker,
		Mode:        mode,
		Sector:      sector,
		RawScore:    rawScore,
		NormScore:   norm,
		Grade:       grade,
		Components:  components,
		Tags:        tags,
		Metrics:     metrics,
		Structure:   structure,
		IsFullHit:   grade == model.GradeFullHit,
		IsStrong:    grade == model.GradeStrong,
		IsWatchlist: grade == model.GradeWatchlist,
	}
}

// ScanRetest evaluates the pullback-to-support setup for one ticker.
//
// Intended factor budget (not wired yet):
//
//	prior run            0-25 pts (sector-aware thresholds)
//	correction depth     0-20 pts
//	volume surge         0-20 pts
//	200W SMA proximity   0-15 pts
//	200W SMA slope       0-8 pts
//	daily ATR band       5 pts
//	50D SMA alignment    5 pts
//	EMA10 > EMA20        3 pts
//	weekly candle pos    2 pts
//	bonus tags: undercut-and-rally, resistance-to-support, recovery structure
//
// TODO: port the retest factor formulas from the research scanner. Until
// then the raw score stays at zero and only measurements are reported.
func (e *Engine) ScanRetest(ticker string, weekly, daily []model.OHLCV, sector string) *model.LeaderResult {
	components := map[string]float64{}
	var tags []string
	metrics := e.measure(daily, weekly)
	structure := ""

	rawScore := 0.0

	return e.buildResult(ticker, model.ModeRetest, sector, rawScore, components, tags, metrics, structure)
}

// ScanBaseBreakout evaluates the consolidation-then-breakout setup for one
// ticker. Growth and commodity sectors carry distinct weight profiles.
//
// Growth budget (not wired yet):
//
//	volume surge 25, base range 20, SMA proximity 15, base ATR 15,
//	duration 10, SMA slope 5, daily ATR 5, 50D SMA 5,
//	ATR-dot response 0-12, EMA cross 3, candle pos 2
//
// Commodity budget (not wired yet):
//
//	200W SMA proximity 25, base range 20, base ATR 20, volume surge 20,
//	duration 10, SMA slope 5
//
// TODO: port the base-breakout factor formulas from the research scanner.
func (e *Engine) ScanBaseBreakout(ticker string, weekly, daily []model.OHLCV, sector string) *model.LeaderResult {
	components := map[string]float64{}
	var tags []string
	metrics := e.measure(daily, weekly)
	structure := ""

	rawScore := 0.0

	return e.buildResult(ticker, model.ModeBase, sector, rawScore, components, tags, metrics, structure)
}

// measure computes the well-defined measurements both modes report. Each
// metric is included only when enough history exists to compute it.
func (e *Engine) measure(daily, weekly []model.OHLCV) map[string]float64 {
	m := make(map[string]float64)
	if len(daily) == 0 {
		return m
	}
	last := daily[len(daily)-1].Close
	m["close"] = last

	if sma, err := calculator.CalculateSMA200W(weekly); err == nil && sma > 0 {
		m["sma_200w"] = sma
		m["dist_200w_pct"] = (last - sma) / sma * 100
	}
	if sma, err := calculator.CalculateSMA50D(daily); err == nil {
		m["sma_50d"] = sma
	}
	if ema, err := calculator.CalculateEMA10D(daily); err == nil {
		m["ema_10d"] = ema
	}
	if ema, err := calculator.CalculateEMA20D(daily); err == nil {
		m["ema_20d"] = ema
	}
	if atr, err := calculator.CalculateATRPercent(daily, 14); err == nil {
		m["atr_daily_pct"] = atr
	}
	if surge, err := calculator.CalculateVolumeSurge(daily, 20); err == nil {
		m["vol_surge"] = surge
	}
	if high, low, err := calculator.Calculate52WeekRange(daily); err == nil {
		if pos, err := calculator.Calculate52WeekPosition(last, high, low); err == nil {
			m["pos_52w"] = pos
		}
	}
	return m
}
