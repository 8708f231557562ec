package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/CRT-ALT-Kenosis/institutional-scanner-nextgen/internal/leader"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		BaseURL        string  `yaml:"base_url"` // empty: use Yahoo
		APIKey         string  `yaml:"api_key"`
		LookbackDays   int     `yaml:"lookback_days"`
		RequestsPerSec float64 `yaml:"requests_per_sec"`
	} `yaml:"data_source"`
	Universe struct {
		StateFile      string            `yaml:"state_file"`
		DefaultTickers []string          `yaml:"default_tickers"`
		DefaultSector  string            `yaml:"default_sector"`
		Sectors        map[string]string `yaml:"sectors"` // per-ticker overrides
	} `yaml:"universe"`
	Leader struct {
		SectorRunThresholds  map[string]float64 `yaml:"sector_run_thresholds"`
		MinCorrectionPct     float64            `yaml:"min_correction_pct"`
		MaxCorrectionPct     float64            `yaml:"max_correction_pct"`
		MaxDistTo200WPct     float64            `yaml:"max_dist_to_200w_pct"`
		VolSurge3xPts        float64            `yaml:"vol_surge_3x_pts"`
		MinATRDailyPct       float64            `yaml:"min_atr_daily_pct"`
		MaxATRDailyPct       float64            `yaml:"max_atr_daily_pct"`
		NormalizationDivisor float64            `yaml:"normalization_divisor"`
		FullHitMin           float64            `yaml:"full_hit_min"`
		StrongMin            float64            `yaml:"strong_min"`
	} `yaml:"leader"`
	Schedule struct {
		RetestCron string `yaml:"retest_cron"`
		BaseCron   string `yaml:"base_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("DATA_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("LOOKBACK_DAYS"); v != "" {
		var days int
		if _, err := fmt.Sscanf(v, "%d", &days); err == nil {
			cfg.DataSource.LookbackDays = days
		}
	}
	if v := os.Getenv("CRON_RETEST"); v != "" {
		cfg.Schedule.RetestCron = v
	}
	if v := os.Getenv("CRON_BASE"); v != "" {
		cfg.Schedule.BaseCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("UNIVERSE_STATE_FILE"); v != "" {
		cfg.Universe.StateFile = v
	}

	// Defaults
	if cfg.DataSource.LookbackDays == 0 {
		// 200 weekly bars need roughly four years; leave headroom.
		cfg.DataSource.LookbackDays = 2500
	}
	if cfg.DataSource.RequestsPerSec == 0 {
		cfg.DataSource.RequestsPerSec = 4
	}
	if cfg.Schedule.RetestCron == "" {
		cfg.Schedule.RetestCron = "0 0 8 * * 1"
	}
	if cfg.Schedule.BaseCron == "" {
		cfg.Schedule.BaseCron = "0 30 8 * * 1"
	}
	if cfg.Universe.StateFile == "" {
		cfg.Universe.StateFile = "data/universe.json"
	}
	if cfg.Universe.DefaultSector == "" {
		cfg.Universe.DefaultSector = "Technology"
	}
	if len(cfg.Universe.DefaultTickers) == 0 {
		cfg.Universe.DefaultTickers = []string{
			"TPL", "NVDA", "AMD", "META", "TSLA", "PLTR", "KGC", "BHP", "PYPL", "ENPH",
		}
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/scanner.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	if c.DataSource.LookbackDays <= 0 {
		return fmt.Errorf("data_source.lookback_days must be positive")
	}
	return nil
}

// LeaderConfig builds the engine configuration from the defaults overlaid
// with any values set in YAML.
func (c *Config) LeaderConfig() leader.Config {
	lc := leader.DefaultConfig()
	if len(c.Leader.SectorRunThresholds) > 0 {
		lc.MinPriorRunPctBySector = c.Leader.SectorRunThresholds
	}
	if c.Leader.MinCorrectionPct > 0 {
		lc.MinCorrectionPct = c.Leader.MinCorrectionPct
	}
	if c.Leader.MaxCorrectionPct > 0 {
		lc.MaxCorrectionPct = c.Leader.MaxCorrectionPct
	}
	if c.Leader.MaxDistTo200WPct > 0 {
		lc.MaxDistTo200WPct = c.Leader.MaxDistTo200WPct
	}
	if c.Leader.VolSurge3xPts > 0 {
		lc.VolSurge3xPts = c.Leader.VolSurge3xPts
	}
	if c.Leader.MinATRDailyPct > 0 {
		lc.MinATRDailyPct = c.Leader.MinATRDailyPct
	}
	if c.Leader.MaxATRDailyPct > 0 {
		lc.MaxATRDailyPct = c.Leader.MaxATRDailyPct
	}
	if c.Leader.NormalizationDivisor > 0 {
		lc.NormalizationDivisor = c.Leader.NormalizationDivisor
	}
	if c.Leader.FullHitMin > 0 {
		lc.FullHitMin = c.Leader.FullHitMin
	}
	if c.Leader.StrongMin > 0 {
		lc.StrongMin = c.Leader.StrongMin
	}
	return lc
}

// DefaultUniverse builds the ticker -> sector seed map for a fresh universe.
func (c *Config) DefaultUniverse() map[string]string {
	out := make(map[string]string, len(c.Universe.DefaultTickers))
	for _, t := range c.Universe.DefaultTickers {
		out[t] = c.Universe.DefaultSector
	}
	for t, sector := range c.Universe.Sectors {
		out[t] = sector
	}
	return out
}
