package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CRT-ALT-Kenosis/institutional-scanner-nextgen/internal/model"
)

func closesToBars(closes []float64) []model.OHLCV {
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{
			Time:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 100,
		}
	}
	return bars
}

func TestCalculateSMA(t *testing.T) {
	prices := []float64{1, 2, 3, 4, 5}

	sma, err := CalculateSMA(prices, 3)
	require.NoError(t, err)
	assert.Equal(t, 4.0, sma, "average of last three")

	_, err = CalculateSMA(prices, 6)
	assert.Error(t, err, "not enough data")

	_, err = CalculateSMA(prices, 0)
	assert.Error(t, err, "period must be positive")
}

func TestCalculateEMA(t *testing.T) {
	// Constant series: EMA equals the constant.
	constant := []float64{5, 5, 5, 5, 5, 5}
	ema, err := CalculateEMA(constant, 3)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, ema, 1e-9)

	// Rising series: EMA lags the last price but exceeds the SMA seed.
	rising := []float64{1, 2, 3, 4, 5, 6}
	ema, err = CalculateEMA(rising, 3)
	require.NoError(t, err)
	assert.Greater(t, ema, 4.0)
	assert.Less(t, ema, 6.0)

	_, err = CalculateEMA([]float64{1, 2}, 3)
	assert.Error(t, err)
}

func TestCalculateATR(t *testing.T) {
	// Flat series with constant 2-point daily range: ATR converges to 2.
	bars := make([]model.OHLCV, 20)
	for i := range bars {
		bars[i] = model.OHLCV{High: 11, Low: 9, Close: 10}
	}
	atr, err := CalculateATR(bars, 14)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, atr, 1e-9)

	pct, err := CalculateATRPercent(bars, 14)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, pct, 1e-9)

	_, err = CalculateATR(bars[:10], 14)
	assert.Error(t, err, "needs period+1 bars")
}

func TestCalculateATR_GapCountsInTrueRange(t *testing.T) {
	// A gap above the prior close widens the true range beyond high-low.
	bars := []model.OHLCV{
		{High: 11, Low: 9, Close: 10},
		{High: 16, Low: 15, Close: 15.5}, // high-low 1, but high-prevClose 6
		{High: 16, Low: 15, Close: 15.5},
	}
	atr, err := CalculateATR(bars, 2)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, atr, 1e-9) // (6 + 1) / 2
}

func TestCalculateVolumeSurge(t *testing.T) {
	bars := closesToBars(make([]float64, 25))
	for i := range bars {
		bars[i].Volume = 100
	}
	bars[len(bars)-1].Volume = 300

	surge, err := CalculateVolumeSurge(bars, 20)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, surge, 1e-9)

	_, err = CalculateVolumeSurge(bars[:10], 20)
	assert.Error(t, err)
}

func TestCalculate52WeekPosition(t *testing.T) {
	pos, err := Calculate52WeekPosition(75, 100, 50)
	require.NoError(t, err)
	assert.Equal(t, 0.5, pos)

	pos, err = Calculate52WeekPosition(120, 100, 50)
	require.NoError(t, err)
	assert.Equal(t, 1.0, pos, "clamped above the range")

	pos, err = Calculate52WeekPosition(75, 100, 100)
	require.NoError(t, err)
	assert.Equal(t, 0.5, pos, "degenerate range")
}

func TestCalculateSMA200W(t *testing.T) {
	weekly := closesToBars(make([]float64, 200))
	for i := range weekly {
		weekly[i].Close = 10
	}
	sma, err := CalculateSMA200W(weekly)
	require.NoError(t, err)
	assert.Equal(t, 10.0, sma)

	_, err = CalculateSMA200W(weekly[:199])
	assert.Error(t, err)
}
