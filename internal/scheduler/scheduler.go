package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/CRT-ALT-Kenosis/institutional-scanner-nextgen/internal/collector"
	"github.com/CRT-ALT-Kenosis/institutional-scanner-nextgen/internal/leader"
	"github.com/CRT-ALT-Kenosis/institutional-scanner-nextgen/internal/model"
	"github.com/CRT-ALT-Kenosis/institutional-scanner-nextgen/internal/notifier"
	"github.com/CRT-ALT-Kenosis/institutional-scanner-nextgen/internal/recorder"
	"github.com/CRT-ALT-Kenosis/institutional-scanner-nextgen/internal/universe"
)

// Scheduler manages the cron tasks and the command surface.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Engine    *leader.Engine
	Universe  *universe.Manager
	Notifier  *notifier.TelegramNotifier
	Recorder  recorder.Recorder
	Lookback  int // daily bars fetched per ticker
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, eng *leader.Engine,
	uni *universe.Manager, tn *notifier.TelegramNotifier, rec recorder.Recorder, lookback int) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Engine:    eng,
		Universe:  uni,
		Notifier:  tn,
		Recorder:  rec,
		Lookback:  lookback,
		Ctx:       ctx,
	}
}

// RegisterAll registers the scheduled retest and base-breakout scans.
func (s *Scheduler) RegisterAll(retestCron, baseCron string) error {
	if _, err := s.Cron.AddFunc(retestCron, func() { s.scanTask(model.ModeRetest) }); err != nil {
		return fmt.Errorf("register retest scan: %w", err)
	}
	if _, err := s.Cron.AddFunc(baseCron, func() { s.scanTask(model.ModeBase) }); err != nil {
		return fmt.Errorf("register base scan: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunRetestNow executes a retest scan of the universe immediately
// (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunRetestNow() {
	s.scanTask(model.ModeRetest)
}

func (s *Scheduler) scanTask(mode model.Mode) {
	log.Printf("[INFO] running scheduled %s scan", mode)
	s.trySend(s.runScan(mode, s.Universe.Tickers()))
}

// runScan is the full pipeline for one scan: collect, score, sort, record,
// and render the report.
func (s *Scheduler) runScan(mode model.Mode, tickers []string) string {
	start := time.Now()

	if len(tickers) == 0 {
		return "Universe is empty. Add tickers with /add first."
	}

	series, failures := s.Collector.CollectUniverse(s.Ctx, tickers, s.Lookback)
	sectors := s.Universe.Sectors()

	results := s.Engine.ScanUniverse(mode, tickers, series, sectors)
	leader.SortByScore(results)

	run := &recorder.ScanRun{
		ID:         uuid.NewString(),
		Mode:       mode,
		StartedAt:  start,
		DurationMs: time.Since(start).Milliseconds(),
		Requested:  len(tickers),
		Fetched:    len(series),
		Scored:     len(results),
		Failed:     len(failures),
		Results:    results,
	}
	if err := s.Recorder.RecordScan(run); err != nil {
		log.Printf("[ERROR] record scan: %v", err)
	}

	log.Printf("[INFO] %s scan finished: %d requested, %d scored, %d failed in %dms",
		mode, run.Requested, run.Scored, run.Failed, run.DurationMs)

	return notifier.FormatScanReport(mode, results, failures)
}

// HandleCommand processes a user command and returns a reply. Commands that
// trigger a scan reply with the full report.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.FormatHelp()
	}

	switch fields[0] {
	case "/scan":
		return s.commandScan(model.ModeRetest, fields[1:])
	case "/base":
		return s.commandScan(model.ModeBase, fields[1:])
	case "/universe":
		return notifier.FormatUniverse(s.Universe.GetState())
	case "/add":
		if len(fields) < 2 {
			return "Usage: /add TICKER [sector]"
		}
		sector := strings.Join(fields[2:], " ")
		if err := s.Universe.Add(fields[1], sector); err != nil {
			return fmt.Sprintf("❌ %v", err)
		}
		return fmt.Sprintf("Added %s to the universe.", strings.ToUpper(fields[1]))
	case "/remove":
		if len(fields) < 2 {
			return "Usage: /remove TICKER"
		}
		if err := s.Universe.Remove(fields[1]); err != nil {
			return fmt.Sprintf("❌ %v", err)
		}
		return fmt.Sprintf("Removed %s from the universe.", strings.ToUpper(fields[1]))
	default:
		return notifier.FormatHelp()
	}
}

// commandScan runs an ad-hoc scan over the given comma-separated tickers, or
// over the whole universe when none are given.
func (s *Scheduler) commandScan(mode model.Mode, args []string) string {
	tickers := s.Universe.Tickers()
	if len(args) > 0 {
		parsed, err := universe.ParseTickerList(strings.Join(args, ","))
		if err != nil {
			return fmt.Sprintf("❌ %v", err)
		}
		tickers = parsed
	}
	return s.runScan(mode, tickers)
}

func (s *Scheduler) trySend(text string) {
	if text == "" {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
