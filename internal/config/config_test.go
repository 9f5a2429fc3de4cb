package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", "/home/farmer")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "info" || cfg.Notifier.MinPriority != "low" {
		t.Errorf("unexpected defaults: level=%q priority=%q", cfg.LogLevel, cfg.Notifier.MinPriority)
	}
	if cfg.LogFile != "/home/farmer/.chia/mainnet/log/debug.log" {
		t.Errorf("unexpected default log file %q", cfg.LogFile)
	}
	if !cfg.DailyStats.Enable || cfg.DailyStats.FrequencyHours != 24 {
		t.Errorf("unexpected daily stats defaults: %+v", cfg.DailyStats)
	}
	if cfg.TimeOfDayValue() != nil {
		t.Errorf("expected unset time of day, got %v", cfg.TimeOfDayValue())
	}
	if !cfg.Handlers.WalletAddCoin.Enable || !cfg.Handlers.FinishedSignagePoint.Enable {
		t.Error("handlers should be enabled by default")
	}
	if cfg.Handlers.HarvesterActivity.MaxSearchTimeSeconds != 15 {
		t.Errorf("unexpected max search time %v", cfg.Handlers.HarvesterActivity.MaxSearchTimeSeconds)
	}
	if cfg.Database.SQLitePath != "data/farmsentinel.db" {
		t.Errorf("unexpected sqlite path %q", cfg.Database.SQLitePath)
	}
	if cfg.TelegramEnabled() {
		t.Error("telegram should be off without credentials")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
log_file: /var/log/chia/debug.log
notifier:
  min_priority: normal
  telegram:
    bot_token: "123:abc"
    chat_id: "42"
daily_stats:
  enable: true
  time_of_day: "07:30"
  frequency_hours: 6
handlers:
  wallet_add_coin_handler:
    enable: true
    min_mojos_amount: 500000000000
  partial_handler:
    enable: false
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.LogFile != "/var/log/chia/debug.log" {
		t.Errorf("unexpected logging config: %q %q", cfg.LogLevel, cfg.LogFile)
	}
	if cfg.TimeOfDayValue() != "07:30" {
		t.Errorf("expected string time of day, got %#v", cfg.TimeOfDayValue())
	}
	if cfg.DailyStats.FrequencyHours != 6 {
		t.Errorf("unexpected frequency %d", cfg.DailyStats.FrequencyHours)
	}
	if cfg.Handlers.WalletAddCoin.MinMojosAmount != 500000000000 {
		t.Errorf("unexpected min mojos %d", cfg.Handlers.WalletAddCoin.MinMojosAmount)
	}
	if cfg.Handlers.Partial.Enable {
		t.Error("partial handler should be disabled")
	}
	if !cfg.Handlers.Block.Enable {
		t.Error("sections left out keep their defaults")
	}
	if !cfg.TelegramEnabled() {
		t.Error("telegram should be enabled with credentials")
	}
}

func TestTimeOfDayValue(t *testing.T) {
	tests := []struct {
		yaml string
		want any
	}{
		{"time_of_day: 9", 9},
		{"time_of_day: \"9\"", "9"},
		{"time_of_day: \"21:00\"", "21:00"},
		{"time_of_day: 25", 25},
		{"time_of_day: nine", "nine"},
	}
	for _, tt := range tests {
		cfg, err := Load(writeConfig(t, "daily_stats:\n  "+tt.yaml+"\n"))
		if err != nil {
			t.Fatalf("%s: load: %v", tt.yaml, err)
		}
		if got := cfg.TimeOfDayValue(); got != tt.want {
			t.Errorf("%s: expected %#v, got %#v", tt.yaml, tt.want, got)
		}
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FARMSENTINEL_LOG_FILE", "/tmp/chia.log")
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("TELEGRAM_CHAT_ID", "7")
	t.Setenv("HTTPS_PROXY", "http://proxy:8080")
	t.Setenv("SQLITE_PATH", "/tmp/journal.db")
	t.Setenv("DAILY_STATS_TIME_OF_DAY", "8")
	t.Setenv("DAILY_STATS_FREQUENCY_HOURS", "12")

	cfg, err := Load(writeConfig(t, "log_file: /ignored.log\ndaily_stats:\n  time_of_day: \"21:00\"\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogFile != "/tmp/chia.log" {
		t.Errorf("unexpected log file %q", cfg.LogFile)
	}
	if cfg.Notifier.Telegram.BotToken != "env-token" || cfg.Notifier.Telegram.ChatID != "7" {
		t.Errorf("unexpected telegram config %+v", cfg.Notifier.Telegram)
	}
	if cfg.Notifier.Proxy != "http://proxy:8080" || cfg.Database.SQLitePath != "/tmp/journal.db" {
		t.Errorf("unexpected proxy or sqlite path: %q %q", cfg.Notifier.Proxy, cfg.Database.SQLitePath)
	}
	if cfg.TimeOfDayValue() != 8 {
		t.Errorf("expected integer hour from env, got %#v", cfg.TimeOfDayValue())
	}
	if cfg.DailyStats.FrequencyHours != 12 {
		t.Errorf("unexpected frequency %d", cfg.DailyStats.FrequencyHours)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "daily_stats: [unclosed")); err == nil {
		t.Error("expected a parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"zero frequency", func(c *Config) { c.DailyStats.FrequencyHours = 0 }, "frequency_hours"},
		{"negative frequency", func(c *Config) { c.DailyStats.FrequencyHours = -3 }, "frequency_hours"},
		{"token without chat", func(c *Config) { c.Notifier.Telegram.BotToken = "x" }, "chat_id"},
		{"chat without token", func(c *Config) { c.Notifier.Telegram.ChatID = "1" }, "bot_token"},
		{"bad priority", func(c *Config) { c.Notifier.MinPriority = "urgent" }, "min_priority"},
		{"no log file", func(c *Config) { c.LogFile = "" }, "log_file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newDefault()
			cfg.LogFile = "/var/log/chia/debug.log"
			cfg.Notifier.MinPriority = "low"
			cfg.DailyStats.FrequencyHours = 24
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}
