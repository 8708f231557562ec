package calculator

import (
	"errors"
	"math"

	"github.com/CRT-ALT-Kenosis/institutional-scanner-nextgen/internal/model"
)

// CalculateATR computes the Wilder-smoothed Average True Range over the given
// period. Requires at least period+1 bars.
func CalculateATR(bars []model.OHLCV, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(bars) < period+1 {
		return 0, errors.New("not enough data for ATR calculation")
	}

	// Initial ATR: plain average of the first `period` true ranges.
	var atr float64
	for i := 1; i <= period; i++ {
		atr += trueRange(bars[i], bars[i-1])
	}
	atr /= float64(period)

	// Wilder smoothing for remaining bars
	for i := period + 1; i < len(bars); i++ {
		tr := trueRange(bars[i], bars[i-1])
		atr = (atr*float64(period-1) + tr) / float64(period)
	}
	return atr, nil
}

// CalculateATRPercent returns the ATR as a percentage of the last close,
// the band the daily-volatility check is expressed in.
func CalculateATRPercent(bars []model.OHLCV, period int) (float64, error) {
	atr, err := CalculateATR(bars, period)
	if err != nil {
		return 0, err
	}
	last := bars[len(bars)-1].Close
	if last <= 0 {
		return 0, errors.New("last close must be positive")
	}
	return atr / last * 100, nil
}

func trueRange(cur, prev model.OHLCV) float64 {
	hl := cur.High - cur.Low
	hc := math.Abs(cur.High - prev.Close)
	lc := math.Abs(cur.Low - prev.Close)
	return math.Max(hl, math.Max(hc, lc))
}
