package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"LegacyGuardians/internal/api"
	"LegacyGuardians/internal/model"
	"LegacyGuardians/internal/navigate"
	"LegacyGuardians/internal/scheduler"
)

// Frontend modes.
const (
	FrontendTUI      = "tui"
	FrontendTelegram = "telegram"
)

// Config holds all application configuration.
type Config struct {
	Backend struct {
		BaseURL string        `yaml:"base_url"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"backend"`
	Frontend struct {
		Mode   string `yaml:"mode"`
		Locale string `yaml:"locale"`
	} `yaml:"frontend"`
	Navigation struct {
		Level3Route string `yaml:"level3_route"`
	} `yaml:"navigation"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Trace struct {
		RetentionDays int    `yaml:"retention_days"`
		PruneCron     string `yaml:"prune_cron"`
	} `yaml:"trace"`
	Log struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`
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
	if v := os.Getenv("LG_BASE_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("LG_FRONTEND"); v != "" {
		cfg.Frontend.Mode = v
	}
	if v := os.Getenv("LG_LOCALE"); v != "" {
		cfg.Frontend.Locale = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.Log.File = v
	}

	// Defaults
	if cfg.Backend.BaseURL == "" {
		cfg.Backend.BaseURL = api.DefaultBaseURL
	}
	if cfg.Frontend.Mode == "" {
		cfg.Frontend.Mode = FrontendTUI
	}
	if cfg.Frontend.Locale == "" {
		cfg.Frontend.Locale = string(model.DefaultLocale)
	}
	if cfg.Navigation.Level3Route == "" {
		cfg.Navigation.Level3Route = navigate.Level3Route
	}
	if cfg.Trace.PruneCron == "" {
		cfg.Trace.PruneCron = scheduler.DefaultPruneCron
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.File == "" && cfg.Frontend.Mode == FrontendTUI {
		cfg.Log.File = "data/client.log"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("backend.base_url must be an absolute URL, got %q", c.Backend.BaseURL)
	}
	if c.Backend.Timeout < 0 {
		return fmt.Errorf("backend.timeout must not be negative")
	}
	if _, err := model.ParseLocale(c.Frontend.Locale); err != nil {
		return fmt.Errorf("frontend.locale: %w", err)
	}
	if !strings.HasPrefix(c.Navigation.Level3Route, "/") {
		return fmt.Errorf("navigation.level3_route must start with /, got %q", c.Navigation.Level3Route)
	}
	switch c.Frontend.Mode {
	case FrontendTUI:
	case FrontendTelegram:
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required")
		}
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("telegram.chat_id is required")
		}
	default:
		return fmt.Errorf("frontend.mode must be %s or %s, got %q", FrontendTUI, FrontendTelegram, c.Frontend.Mode)
	}
	if c.Trace.RetentionDays < 0 {
		return fmt.Errorf("trace.retention_days must not be negative")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	return nil
}

// Locale returns the validated start locale.
func (c *Config) Locale() model.Locale {
	l, err := model.ParseLocale(c.Frontend.Locale)
	if err != nil {
		return model.DefaultLocale
	}
	return l
}

// Retention returns how long the call trace is kept, 0 for forever.
func (c *Config) Retention() time.Duration {
	return time.Duration(c.Trace.RetentionDays) * 24 * time.Hour
}
