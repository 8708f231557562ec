package leader

import (
	"sort"

	"github.com/CRT-ALT-Kenosis/institutional-scanner-nextgen/internal/model"
)

// ScanUniverse runs the per-ticker scan for the given mode over tickers in
// input order. Tickers missing either granularity, or with an empty series,
// are skipped without error. Tickers without a sector label scan as
// "Unknown".
func (e *Engine) ScanUniverse(mode model.Mode, tickers []string,
	series map[string]*model.TickerSeries, sectors map[string]string) []*model.LeaderResult {

	results := make([]*model.LeaderResult, 0, len(tickers))
	for _, t := range tickers {
		s := series[t]
		if s.Empty() {
			continue
		}
		sector, ok := sectors[t]
		if !ok {
			sector = "Unknown"
		}
		var res *model.LeaderResult
		switch mode {
		case model.ModeBase:
			res = e.ScanBaseBreakout(t, s.Weekly, s.Daily, sector)
		default:
			res = e.ScanRetest(t, s.Weekly, s.Daily, sector)
		}
		results = append(results, res)
	}
	return results
}

// SortByScore orders results by normalized score descending, in place.
// Ties keep their scan order.
func SortByScore(results []*model.LeaderResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].NormScore > results[j].NormScore
	})
}
