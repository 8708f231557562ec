package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CRT-ALT-Kenosis/institutional-scanner-nextgen/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func bar(t time.Time, o, h, l, c, v float64) model.OHLCV {
	return model.OHLCV{Time: t, Open: o, High: h, Low: l, Close: c, Volume: v}
}

func TestResampleWeekly_Empty(t *testing.T) {
	assert.Empty(t, ResampleWeekly(nil))
	assert.Empty(t, ResampleWeekly([]model.OHLCV{}))
}

func TestResampleWeekly_Aggregation(t *testing.T) {
	// One full trading week, Mon 2024-01-08 .. Fri 2024-01-12.
	daily := []model.OHLCV{
		bar(day(2024, 1, 8), 10, 12, 9, 11, 100),
		bar(day(2024, 1, 9), 11, 15, 10, 14, 200),
		bar(day(2024, 1, 10), 14, 14.5, 8, 9, 300),
		bar(day(2024, 1, 11), 9, 10, 8.5, 9.5, 150),
		bar(day(2024, 1, 12), 9.5, 11, 9, 10.5, 250),
	}
	weekly := ResampleWeekly(daily)
	require.Len(t, weekly, 1)

	w := weekly[0]
	assert.Equal(t, day(2024, 1, 12), w.Time, "weekly bar is Friday-anchored")
	assert.Equal(t, 10.0, w.Open, "open of first daily bar")
	assert.Equal(t, 10.5, w.Close, "close of last daily bar")
	assert.Equal(t, 15.0, w.High)
	assert.Equal(t, 8.0, w.Low)
	assert.Equal(t, 1000.0, w.Volume)
}

func TestResampleWeekly_MultipleWeeks(t *testing.T) {
	daily := []model.OHLCV{
		// Week 1: short week, Thu+Fri only.
		bar(day(2024, 1, 11), 1, 2, 0.5, 1.5, 10),
		bar(day(2024, 1, 12), 1.5, 3, 1, 2, 20),
		// Week 2: Mon .. Fri.
		bar(day(2024, 1, 15), 2, 2.5, 1.8, 2.2, 30),
		bar(day(2024, 1, 16), 2.2, 2.8, 2.1, 2.6, 30),
		bar(day(2024, 1, 17), 2.6, 3.1, 2.4, 3, 30),
		bar(day(2024, 1, 18), 3, 3.2, 2.9, 3.1, 30),
		bar(day(2024, 1, 19), 3.1, 3.5, 3, 3.4, 30),
	}
	weekly := ResampleWeekly(daily)
	require.Len(t, weekly, 2)

	assert.Equal(t, 1.0, weekly[0].Open)
	assert.Equal(t, 2.0, weekly[0].Close)
	assert.Equal(t, 30.0, weekly[0].Volume)

	assert.Equal(t, day(2024, 1, 19), weekly[1].Time)
	assert.Equal(t, 2.0, weekly[1].Open)
	assert.Equal(t, 3.4, weekly[1].Close)
	assert.Equal(t, 3.5, weekly[1].High)
	assert.Equal(t, 1.8, weekly[1].Low)
	assert.Equal(t, 150.0, weekly[1].Volume)
}

func TestResampleWeekly_DropsIncompleteTrailingWeek(t *testing.T) {
	daily := []model.OHLCV{
		// Complete week ending Fri 2024-01-12.
		bar(day(2024, 1, 8), 10, 12, 9, 11, 100),
		bar(day(2024, 1, 12), 11, 13, 10, 12, 100),
		// Week in progress: Mon and Tue only, no Friday bar yet.
		bar(day(2024, 1, 15), 12, 13, 11, 12.5, 100),
		bar(day(2024, 1, 16), 12.5, 13.5, 12, 13, 100),
	}
	weekly := ResampleWeekly(daily)
	require.Len(t, weekly, 1)
	assert.Equal(t, day(2024, 1, 12), weekly[0].Time)
}
