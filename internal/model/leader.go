package model

// Mode selects which setup the leader engine evaluates.
type Mode string

const (
	ModeRetest Mode = "retest" // pullback-to-support after a strong prior advance
	ModeBase   Mode = "base"   // consolidation-then-breakout
)

// Grade is the categorical tier assigned to a normalized score.
type Grade string

const (
	GradeFullHit   Grade = "full_hit"
	GradeStrong    Grade = "strong"
	GradeWatchlist Grade = "watchlist"
)

// LeaderResult is the per-ticker output of a scan. Constructed once by the
// leader engine and immutable afterwards; consumed by the formatter and the
// recorder.
type LeaderResult struct {
	Ticker string
	Mode   Mode
	Sector string

	RawScore  float64
	NormScore float64
	Grade     Grade

	// Components maps scoring factor names to awarded points.
	Components map[string]float64
	// Tags carries descriptive setup labels (e.g. undercut-and-rally).
	Tags []string
	// Metrics maps measurement names to values (close, 200W SMA distance,
	// daily ATR% and so on).
	Metrics map[string]float64
	// Structure labels the structural pattern when one is detected,
	// e.g. "MA_stack", "first_pullback", "base_growth".
	Structure string

	IsFullHit   bool
	IsStrong    bool
	IsWatchlist bool
}
