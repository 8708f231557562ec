package notifier

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/CRT-ALT-Kenosis/institutional-scanner-nextgen/internal/collector"
	"github.com/CRT-ALT-Kenosis/institutional-scanner-nextgen/internal/model"
)

// maxMetricsPerCard caps how many metrics a single card shows.
const maxMetricsPerCard = 5

// metricOrder is the preferred display order; metrics outside it follow
// alphabetically.
var metricOrder = []string{"close", "dist_200w_pct", "atr_daily_pct", "vol_surge", "pos_52w"}

var modeTitles = map[model.Mode]string{
	model.ModeRetest: "Retest Mode",
	model.ModeBase:   "Base Breakout Mode",
}

var gradeBadges = map[model.Grade]string{
	model.GradeFullHit:   "🟢 FULL HIT",
	model.GradeStrong:    "🟡 STRONG",
	model.GradeWatchlist: "⚪ WATCHLIST",
}

// FormatScanReport renders one card per result, assuming results are already
// sorted by normalized score descending. Fetch failures are summarized in the
// footer so they are not lost.
func FormatScanReport(mode model.Mode, results []*model.LeaderResult, failures []collector.FetchFailure) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s Scan</b> | %s\n", modeTitles[mode], time.Now().Format("2006-01-02")))

	if len(results) == 0 {
		b.WriteString("\nScan completed but produced no results. Tickers without both daily and weekly history are skipped.\n")
	}

	for i, res := range results {
		b.WriteString("\n─────────────────\n")
		b.WriteString(fmt.Sprintf("<b>%d. %s</b> (%s) — %s | score %.0f\n",
			i+1, res.Ticker, res.Sector, gradeBadges[res.Grade], res.NormScore))
		if res.Structure != "" {
			b.WriteString(fmt.Sprintf("Structure: %s\n", res.Structure))
		}
		if len(res.Tags) > 0 {
			b.WriteString("Tags: " + strings.Join(res.Tags, " · ") + "\n")
		}
		if len(res.Components) > 0 {
			b.WriteString("Components:\n")
			for _, name := range sortedKeys(res.Components) {
				b.WriteString(fmt.Sprintf("  • %s: %.1f\n", name, res.Components[name]))
			}
		}
		if len(res.Metrics) > 0 {
			b.WriteString("Metrics:\n")
			for _, name := range orderedMetricKeys(res.Metrics) {
				b.WriteString(fmt.Sprintf("  • %s: %s\n", name, humanize.CommafWithDigits(res.Metrics[name], 2)))
			}
		}
	}

	if len(failures) > 0 {
		b.WriteString("\n─────────────────\n")
		b.WriteString(fmt.Sprintf("⚠️ %d ticker(s) skipped:\n", len(failures)))
		for _, f := range failures {
			b.WriteString(fmt.Sprintf("  • %s: %s\n", f.Ticker, f.Reason))
		}
	}

	return b.String()
}

// FormatUniverse renders the current universe listing.
func FormatUniverse(state model.UniverseState) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🌐 <b>Universe</b> (%d tickers)\n\n", len(state.Sectors)))

	tickers := make([]string, 0, len(state.Sectors))
	for t := range state.Sectors {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	for _, t := range tickers {
		b.WriteString(fmt.Sprintf("  • %s — %s\n", t, state.Sectors[t]))
	}
	if !state.UpdatedAt.IsZero() {
		b.WriteString(fmt.Sprintf("\nUpdated: %s\n", state.UpdatedAt.Format("2006-01-02 15:04")))
	}
	return b.String()
}

// FormatHelp lists the available commands.
func FormatHelp() string {
	return strings.Join([]string{
		"Available commands:",
		"• /scan [tickers] — retest scan (universe when no tickers given)",
		"• /base [tickers] — base breakout scan",
		"• /universe — list the watched tickers",
		"• /add TICKER [sector] — add a ticker",
		"• /remove TICKER — remove a ticker",
		"• /help — this message",
	}, "\n")
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// orderedMetricKeys applies the preferred ordering, then fills remaining
// slots alphabetically, up to the per-card cap.
func orderedMetricKeys(m map[string]float64) []string {
	seen := make(map[string]bool, len(m))
	keys := make([]string, 0, maxMetricsPerCard)

	for _, k := range metricOrder {
		if len(keys) >= maxMetricsPerCard {
			return keys
		}
		if _, ok := m[k]; ok {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	for _, k := range sortedKeys(m) {
		if len(keys) >= maxMetricsPerCard {
			break
		}
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	return keys
}
