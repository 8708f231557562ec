package collector

import (
	"context"
	"log"
	"time"

	"golang.org/x/time/rate"

	"github.com/CRT-ALT-Kenosis/institutional-scanner-nextgen/internal/calculator"
	"github.com/CRT-ALT-Kenosis/institutional-scanner-nextgen/internal/model"
)

// FetchFailure records a ticker that could not be collected, so callers can
// report it instead of losing it silently.
type FetchFailure struct {
	Ticker string
	Reason string
}

// Collector fetches the universe's daily bars and derives weekly bars.
type Collector struct {
	Fetcher Fetcher
	limiter *rate.Limiter
}

// NewCollector creates a Collector. requestsPerSec bounds how fast the
// provider is hit; values <= 0 disable pacing.
func NewCollector(fetcher Fetcher, requestsPerSec float64) *Collector {
	var limiter *rate.Limiter
	if requestsPerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(requestsPerSec), 1)
	}
	return &Collector{Fetcher: fetcher, limiter: limiter}
}

// CollectUniverse fetches daily bars for each ticker serially and resamples
// them to Friday-anchored weekly bars. Tickers that fail or come back empty
// are omitted from the map and reported in the failure list; a bad ticker
// never aborts the batch. Empty input yields an empty map.
func (c *Collector) CollectUniverse(ctx context.Context, tickers []string, days int) (map[string]*model.TickerSeries, []FetchFailure) {
	out := make(map[string]*model.TickerSeries, len(tickers))
	var failures []FetchFailure

	for _, t := range tickers {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				failures = append(failures, FetchFailure{Ticker: t, Reason: err.Error()})
				continue
			}
		}

		daily, err := c.Fetcher.FetchDailyBars(t, days)
		if err != nil {
			log.Printf("[WARN] fetch %s: %v, skipping", t, err)
			failures = append(failures, FetchFailure{Ticker: t, Reason: err.Error()})
			continue
		}
		if len(daily) == 0 {
			log.Printf("[WARN] fetch %s: no bars returned, skipping", t)
			failures = append(failures, FetchFailure{Ticker: t, Reason: "no bars returned"})
			continue
		}

		out[t] = &model.TickerSeries{
			Symbol:    t,
			Daily:     daily,
			Weekly:    calculator.ResampleWeekly(daily),
			FetchedAt: time.Now(),
		}
	}
	return out, failures
}
