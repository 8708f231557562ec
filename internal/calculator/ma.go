package calculator

import (
	"errors"

	"github.com/CRT-ALT-Kenosis/institutional-scanner-nextgen/internal/model"
)

// CalculateSMA computes the simple moving average of the given prices over the specified period.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// CalculateEMA computes the exponential moving average over the specified
// period, seeded with the SMA of the first period values.
func CalculateEMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for EMA calculation")
	}
	seed := 0.0
	for i := 0; i < period; i++ {
		seed += prices[i]
	}
	ema := seed / float64(period)
	k := 2.0 / float64(period+1)
	for i := period; i < len(prices); i++ {
		ema = prices[i]*k + ema*(1-k)
	}
	return ema, nil
}

// CalculateSMA200W returns the 200-week simple moving average from weekly bars.
// This is the long-term support proxy the retest setup is anchored on.
func CalculateSMA200W(weeklyBars []model.OHLCV) (float64, error) {
	return CalculateSMA(ExtractCloses(weeklyBars), 200)
}

// CalculateSMA50D returns the 50-day simple moving average from daily bars.
func CalculateSMA50D(dailyBars []model.OHLCV) (float64, error) {
	return CalculateSMA(ExtractCloses(dailyBars), 50)
}

// CalculateEMA10D returns the 10-day exponential moving average from daily bars.
func CalculateEMA10D(dailyBars []model.OHLCV) (float64, error) {
	return CalculateEMA(ExtractCloses(dailyBars), 10)
}

// CalculateEMA20D returns the 20-day exponential moving average from daily bars.
func CalculateEMA20D(dailyBars []model.OHLCV) (float64, error) {
	return CalculateEMA(ExtractCloses(dailyBars), 20)
}

// ExtractCloses returns the close column of a bar series.
func ExtractCloses(bars []model.OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
