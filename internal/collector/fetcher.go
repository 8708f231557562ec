package collector

import (
	"time"

	"github.com/CRT-ALT-Kenosis/institutional-scanner-nextgen/internal/model"
)

// Fetcher defines the interface for fetching daily market data. Weekly bars
// are always derived locally from the daily series, never fetched.
type Fetcher interface {
	FetchDailyBars(symbol string, days int) ([]model.OHLCV, error)
	Name() string
}

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price     float64
	DailyData map[string][]model.OHLCV
	Errs      map[string]error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(symbol string, days int) ([]model.OHLCV, error) {
	if err, ok := m.Errs[symbol]; ok {
		return nil, err
	}
	if bars, ok := m.DailyData[symbol]; ok {
		return bars, nil
	}
	return GenerateMockBars(m.Price, days), nil
}

// GenerateMockBars builds a gently trending synthetic daily series ending today.
func GenerateMockBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
