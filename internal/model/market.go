package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// TickerSeries holds the daily bars for one ticker together with the
// weekly bars derived from them.
type TickerSeries struct {
	Symbol    string
	Daily     []OHLCV
	Weekly    []OHLCV
	FetchedAt time.Time
}

// Empty reports whether either granularity is missing. A ticker with an
// empty series is skipped by the batch scan.
func (s *TickerSeries) Empty() bool {
	return s == nil || len(s.Daily) == 0 || len(s.Weekly) == 0
}
