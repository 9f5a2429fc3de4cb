package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// HandlerConfig is the common part of every handler section.
type HandlerConfig struct {
	Enable bool `yaml:"enable"`
}

// WalletHandlerConfig configures the wallet add/remove handlers.
type WalletHandlerConfig struct {
	Enable         bool   `yaml:"enable"`
	MinMojosAmount uint64 `yaml:"min_mojos_amount"`
}

// HarvesterHandlerConfig configures the harvester activity handler.
type HarvesterHandlerConfig struct {
	Enable               bool    `yaml:"enable"`
	MaxSearchTimeSeconds float64 `yaml:"max_search_time_seconds"`
}

// Config holds all application configuration.
type Config struct {
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
	Notifier struct {
		MinPriority string `yaml:"min_priority"`
		Telegram    struct {
			Enable   bool   `yaml:"enable"`
			BotToken string `yaml:"bot_token"`
			ChatID   string `yaml:"chat_id"`
		} `yaml:"telegram"`
		Proxy string `yaml:"proxy"`
	} `yaml:"notifier"`
	DailyStats struct {
		Enable         bool      `yaml:"enable"`
		TimeOfDay      yaml.Node `yaml:"time_of_day"`
		FrequencyHours int       `yaml:"frequency_hours"`
	} `yaml:"daily_stats"`
	Handlers struct {
		WalletAddCoin        WalletHandlerConfig    `yaml:"wallet_add_coin_handler"`
		WalletDelCoin        WalletHandlerConfig    `yaml:"wallet_del_coin_handler"`
		HarvesterActivity    HarvesterHandlerConfig `yaml:"harvester_activity_handler"`
		Partial              HandlerConfig          `yaml:"partial_handler"`
		Block                HandlerConfig          `yaml:"block_handler"`
		FinishedSignagePoint HandlerConfig          `yaml:"finished_signage_point_handler"`
	} `yaml:"handlers"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
}

// newDefault returns the values used for anything the file leaves out.
// Switches default to on, so they are set before decoding.
func newDefault() *Config {
	cfg := &Config{}
	cfg.DailyStats.Enable = true
	cfg.Notifier.Telegram.Enable = true
	cfg.Handlers.WalletAddCoin.Enable = true
	cfg.Handlers.WalletDelCoin.Enable = true
	cfg.Handlers.HarvesterActivity.Enable = true
	cfg.Handlers.Partial.Enable = true
	cfg.Handlers.Block.Enable = true
	cfg.Handlers.FinishedSignagePoint.Enable = true
	return cfg
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := newDefault()

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
	if v := os.Getenv("FARMSENTINEL_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Notifier.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Notifier.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Notifier.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("DAILY_STATS_TIME_OF_DAY"); v != "" {
		cfg.DailyStats.TimeOfDay = scalarNode(v)
	}
	if v := os.Getenv("DAILY_STATS_FREQUENCY_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DailyStats.FrequencyHours = n
		}
	}

	// Defaults
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFile == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.LogFile = filepath.Join(home, ".chia", "mainnet", "log", "debug.log")
		}
	} else {
		cfg.LogFile = expandHome(cfg.LogFile)
	}
	if cfg.Notifier.MinPriority == "" {
		cfg.Notifier.MinPriority = "low"
	}
	if cfg.DailyStats.FrequencyHours == 0 {
		cfg.DailyStats.FrequencyHours = 24
	}
	if cfg.Handlers.HarvesterActivity.MaxSearchTimeSeconds == 0 {
		cfg.Handlers.HarvesterActivity.MaxSearchTimeSeconds = 15
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/farmsentinel.db"
	}

	return cfg, nil
}

// scalarNode builds a node the way the YAML decoder would for an unquoted
// value, so an env override of "9" is an integer hour.
func scalarNode(v string) yaml.Node {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(v), &doc); err == nil && len(doc.Content) == 1 {
		return *doc.Content[0]
	}
	return yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// TimeOfDayValue returns the configured digest anchor as an int for an
// integer hour, a string for anything else scalar, or nil when unset. The
// node is kept raw because both forms are valid in the file.
func (c *Config) TimeOfDayValue() any {
	node := c.DailyStats.TimeOfDay
	if node.Kind == 0 {
		return nil
	}
	if node.Kind != yaml.ScalarNode {
		return node.Value
	}
	if node.ShortTag() == "!!int" {
		var n int
		if err := node.Decode(&n); err == nil {
			return n
		}
	}
	return node.Value
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.LogFile == "" {
		return fmt.Errorf("log_file is required")
	}
	if c.DailyStats.FrequencyHours < 1 {
		return fmt.Errorf("daily_stats.frequency_hours must be at least 1, got %d", c.DailyStats.FrequencyHours)
	}
	if c.Notifier.Telegram.Enable && (c.Notifier.Telegram.BotToken != "" || c.Notifier.Telegram.ChatID != "") {
		if c.Notifier.Telegram.BotToken == "" {
			return fmt.Errorf("notifier.telegram.bot_token is required")
		}
		if c.Notifier.Telegram.ChatID == "" {
			return fmt.Errorf("notifier.telegram.chat_id is required")
		}
	}
	switch strings.ToLower(c.Notifier.MinPriority) {
	case "low", "normal", "high":
	default:
		return fmt.Errorf("notifier.min_priority must be low, normal or high, got %q", c.Notifier.MinPriority)
	}
	return nil
}

// TelegramEnabled reports whether the Telegram transport should be used.
func (c *Config) TelegramEnabled() bool {
	t := c.Notifier.Telegram
	return t.Enable && t.BotToken != "" && t.ChatID != ""
}
