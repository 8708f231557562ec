package recorder

import (
	"time"

	"github.com/CRT-ALT-Kenosis/institutional-scanner-nextgen/internal/model"
)

// ScanRun holds everything recorded for one scan invocation.
type ScanRun struct {
	ID         string // uuid
	Mode       model.Mode
	StartedAt  time.Time
	DurationMs int64
	Requested  int // tickers asked for
	Fetched    int // tickers with data
	Scored     int // results produced
	Failed     int // tickers that failed to fetch
	Results    []*model.LeaderResult
}

// Recorder persists scan history for later analysis.
type Recorder interface {
	RecordScan(run *ScanRun) error
	Close() error
}
