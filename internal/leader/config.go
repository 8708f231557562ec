package leader

// DefaultSectorRunThresholds maps a sector name to the minimum prior-run
// percentage a stock in that sector must have shown to qualify as a leader
// candidate. Slow sectors clear a lower bar than growth sectors.
var DefaultSectorRunThresholds = map[string]float64{
	"Energy":             150.0,
	"Basic Materials":    150.0,
	"Utilities":          80.0,
	"Consumer Defensive": 100.0,
	"Real Estate":        120.0,
	"Technology":         300.0,
	"Communication":      300.0,
	"Healthcare":         200.0,
	"Consumer Cyclical":  200.0,
	"Industrials":        150.0,
	"Financials":         150.0,
	"Gold Miners":        200.0,
}

// Config bundles every threshold the leader engine uses. Built once per scan
// and never mutated while scanning.
type Config struct {
	// MinPriorRunPctBySector holds sector-aware prior-run thresholds.
	MinPriorRunPctBySector map[string]float64

	// Retest mode correction band.
	MinCorrectionPct float64
	MaxCorrectionPct float64

	// MaxDistTo200WPct is the proximity band around the 200-week SMA that
	// earns full points; partial credit extends 10% beyond it.
	MaxDistTo200WPct float64

	// Volume surge scaling: VolSurge1xPts at 1x average volume up to
	// VolSurge3xPts at 3x and beyond.
	VolSurge1xPts float64
	VolSurge3xPts float64

	// Daily ATR band considered healthy volatility.
	MinATRDailyPct float64
	MaxATRDailyPct float64

	// Normalization and grade cutoffs.
	NormalizationDivisor float64
	FullHitMin           float64
	StrongMin            float64
}

// DefaultConfig returns the standard thresholds with the default sector map.
func DefaultConfig() Config {
	return Config{
		MinPriorRunPctBySector: DefaultSectorRunThresholds,
		MinCorrectionPct:       35.0,
		MaxCorrectionPct:       90.0,
		MaxDistTo200WPct:       15.0,
		VolSurge1xPts:          0.0,
		VolSurge3xPts:          20.0,
		MinATRDailyPct:         3.0,
		MaxATRDailyPct:         8.0,
		NormalizationDivisor:   1.25,
		FullHitMin:             80.0,
		StrongMin:              60.0,
	}
}

// RunThreshold returns the prior-run threshold for a sector, falling back to
// the strictest default when the sector is unknown.
func (c *Config) RunThreshold(sector string) float64 {
	if v, ok := c.MinPriorRunPctBySector[sector]; ok {
		return v
	}
	return 300.0
}
