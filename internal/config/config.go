package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	ListenAddr string `yaml:"listen_addr"`
	Proxy      string `yaml:"proxy"`
	DataSource struct {
		BaseURL string `yaml:"base_url"` // override the Yahoo endpoint
	} `yaml:"data_source"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"` // empty disables recording
	} `yaml:"database"`
	Defaults struct {
		StartDate  string  `yaml:"start_date"`
		Tickers    string  `yaml:"tickers"`
		Investment float64 `yaml:"investment"`
		LogScale   bool    `yaml:"log_scale"`
	} `yaml:"defaults"`
	Watchlist struct {
		Cron         string   `yaml:"cron"` // empty disables scheduled runs
		Tickers      []string `yaml:"tickers"`
		LookbackDays int      `yaml:"lookback_days"`
		Investment   float64  `yaml:"investment"`
	} `yaml:"watchlist"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A missing file is fine: everything has a default.
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
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("DATA_SOURCE_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("WATCHLIST_CRON"); v != "" {
		cfg.Watchlist.Cron = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("DEFAULT_INVESTMENT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Defaults.Investment = f
		}
	}

	// Defaults
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.Defaults.StartDate == "" {
		cfg.Defaults.StartDate = "2023-01-01"
	}
	if cfg.Defaults.Tickers == "" {
		cfg.Defaults.Tickers = "AAPL,MSFT,GOOG"
	}
	if cfg.Defaults.Investment == 0 {
		cfg.Defaults.Investment = 100
	}
	if cfg.Watchlist.LookbackDays == 0 {
		cfg.Watchlist.LookbackDays = 365
	}
	if cfg.Watchlist.Investment == 0 {
		cfg.Watchlist.Investment = 100
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen_addr is required")
	}
	if _, err := time.Parse("2006-01-02", c.Defaults.StartDate); err != nil {
		return fmt.Errorf("defaults.start_date: %w", err)
	}
	if c.Defaults.Investment < 0.01 {
		return fmt.Errorf("defaults.investment must be at least 0.01")
	}
	if c.Watchlist.Cron != "" {
		if len(c.Watchlist.Tickers) == 0 {
			return fmt.Errorf("watchlist.tickers is required when watchlist.cron is set")
		}
		if c.Watchlist.LookbackDays <= 0 {
			return fmt.Errorf("watchlist.lookback_days must be positive")
		}
	}
	return nil
}
