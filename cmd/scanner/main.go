package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/CRT-ALT-Kenosis/institutional-scanner-nextgen/internal/collector"
	"github.com/CRT-ALT-Kenosis/institutional-scanner-nextgen/internal/config"
	"github.com/CRT-ALT-Kenosis/institutional-scanner-nextgen/internal/leader"
	"github.com/CRT-ALT-Kenosis/institutional-scanner-nextgen/internal/notifier"
	"github.com/CRT-ALT-Kenosis/institutional-scanner-nextgen/internal/recorder"
	"github.com/CRT-ALT-Kenosis/institutional-scanner-nextgen/internal/scheduler"
	"github.com/CRT-ALT-Kenosis/institutional-scanner-nextgen/internal/universe"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] institutional scanner starting...")

	// Local .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	var fetcher collector.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init collector
	col := collector.NewCollector(fetcher, cfg.DataSource.RequestsPerSec)

	// Init leader engine
	eng := leader.NewEngine(cfg.LeaderConfig())

	// Init universe manager
	uni, err := universe.NewManager(cfg.Universe.StateFile, cfg.DefaultUniverse())
	if err != nil {
		log.Fatalf("[FATAL] init universe manager: %v", err)
	}

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, col, eng, uni, tn, rec, cfg.DataSource.LookbackDays)
	if err := sched.RegisterAll(cfg.Schedule.RetestCron, cfg.Schedule.BaseCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing retest scan now")
		go sched.RunRetestNow()
	}

	log.Println("[INFO] scanner is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] scanner stopped")
}
