package calculator

import (
	"errors"

	"github.com/montanaflynn/stats"

	"github.com/CRT-ALT-Kenosis/institutional-scanner-nextgen/internal/model"
)

// CalculateVolumeSurge returns the ratio of the most recent bar's volume to
// the average volume of the preceding lookback bars. A ratio of 1 means
// ordinary participation; 3+ is the ceiling of the surge scale.
func CalculateVolumeSurge(bars []model.OHLCV, lookback int) (float64, error) {
	if lookback <= 0 {
		return 0, errors.New("lookback must be positive")
	}
	if len(bars) < lookback+1 {
		return 0, errors.New("not enough data for volume surge calculation")
	}

	vols := make([]float64, lookback)
	for i := 0; i < lookback; i++ {
		vols[i] = bars[len(bars)-1-lookback+i].Volume
	}
	avg, err := stats.Mean(vols)
	if err != nil {
		return 0, err
	}
	if avg <= 0 {
		return 0, errors.New("average volume is zero")
	}
	return bars[len(bars)-1].Volume / avg, nil
}
