package calculator

import (
	"time"

	"github.com/CRT-ALT-Kenosis/institutional-scanner-nextgen/internal/model"
)

// ResampleWeekly converts daily bars into Friday-anchored weekly bars:
// first open, max high, min low, last close, summed volume per week.
// The trailing week is dropped while it is still in progress, i.e. when its
// last daily bar is dated before the week's Friday anchor. Empty input
// yields empty output.
func ResampleWeekly(daily []model.OHLCV) []model.OHLCV {
	if len(daily) == 0 {
		return nil
	}

	var weekly []model.OHLCV
	var week model.OHLCV
	var anchor time.Time
	var lastDay time.Time
	var weekStarted bool

	flush := func() {
		week.Time = anchor
		weekly = append(weekly, week)
	}

	for _, d := range daily {
		a := fridayAnchor(d.Time)
		if !weekStarted {
			week = model.OHLCV{Open: d.Open, High: d.High, Low: d.Low, Close: d.Close, Volume: d.Volume}
			anchor = a
			lastDay = d.Time
			weekStarted = true
			continue
		}

		if !a.Equal(anchor) {
			flush()
			week = model.OHLCV{Open: d.Open, High: d.High, Low: d.Low, Close: d.Close, Volume: d.Volume}
			anchor = a
		} else {
			if d.High > week.High {
				week.High = d.High
			}
			if d.Low < week.Low {
				week.Low = d.Low
			}
			week.Close = d.Close
			week.Volume += d.Volume
		}
		lastDay = d.Time
	}

	// Trailing week counts only once it has reached its Friday.
	if weekStarted && sameDate(lastDay, anchor) {
		flush()
	}
	return weekly
}

// fridayAnchor returns the date of the Friday that ends the week containing t.
// Saturday and Sunday roll forward to the next Friday.
func fridayAnchor(t time.Time) time.Time {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	offset := (int(time.Friday) - int(day.Weekday()) + 7) % 7
	return day.AddDate(0, 0, offset)
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
