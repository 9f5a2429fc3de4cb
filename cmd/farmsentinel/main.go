package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"FarmSentinel/internal/config"
	"FarmSentinel/internal/model"
	"FarmSentinel/internal/monitor"
	"FarmSentinel/internal/notifier"
	"FarmSentinel/internal/recorder"
	"FarmSentinel/internal/scheduler"
	"FarmSentinel/internal/stats"
	"FarmSentinel/internal/tailer"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string
	root := &cobra.Command{
		Use:          "farmsentinel",
		Short:        "Watch a Chia node's debug log and report what happens on the farm",
		SilenceUsage: true,
	}
	defaultPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultPath = v
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", defaultPath, "path to the YAML config file")

	root.AddCommand(newRunCmd(&cfgPath), newParseCmd(&cfgPath))
	return root
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	setupLogging(cfg.LogLevel, os.Stderr)
	return cfg, nil
}

func setupLogging(level string, out io.Writer) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}

func statsConfig(cfg *config.Config) stats.Config {
	return stats.Config{
		Enable:         cfg.DailyStats.Enable,
		TimeOfDay:      timeOfDay(cfg),
		FrequencyHours: cfg.DailyStats.FrequencyHours,
	}
}

func timeOfDay(cfg *config.Config) scheduler.TimeOfDay {
	v := cfg.TimeOfDayValue()
	if v == nil {
		return scheduler.DefaultTimeOfDay()
	}
	return scheduler.ParseTimeOfDay(v)
}

func newRunCmd(cfgPath *string) *cobra.Command {
	var fromStart bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Follow the log file and send notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*cfgPath)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, fromStart)
		},
	}
	cmd.Flags().BoolVar(&fromStart, "from-start", false, "process the existing log content before following it")
	return cmd
}

func run(parent context.Context, cfg *config.Config, fromStart bool) error {
	log.Info().Msg("FarmSentinel starting...")

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Init notifiers
	notifiers := []notifier.Notifier{notifier.NewLogNotifier()}
	var tn *notifier.TelegramNotifier
	if cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Notifier.Telegram.BotToken, cfg.Notifier.Telegram.ChatID, cfg.Notifier.Proxy)
		notifiers = append(notifiers, tn)
	}
	nm := notifier.NewManager(model.ParsePriority(strings.ToLower(cfg.Notifier.MinPriority)), rec, notifiers...)

	// Init stats
	sm := stats.NewManager(ctx, statsConfig(cfg), nm)
	if !sm.Enabled() {
		log.Info().Msg("stats disabled")
	}
	if err := sm.Start(); err != nil {
		return fmt.Errorf("start stats: %w", err)
	}
	defer sm.Stop()

	mon := monitor.New(monitor.NewHandlers(cfg, sm), nm, sm)

	// Start Telegram polling
	if tn != nil {
		go tn.StartPolling(ctx, mon.HandleCommand)
		log.Info().Msg("telegram polling started")
	}

	log.Info().Msg("FarmSentinel is running. Press Ctrl+C to stop.")
	err := tailer.New(cfg.LogFile, fromStart).Run(ctx, func(chunk string) {
		mon.Consume(ctx, chunk)
	})
	if err != nil {
		return fmt.Errorf("follow log: %w", err)
	}

	log.Info().Msg("shutdown signal received, stopping...")
	return nil
}

func newParseCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Run every handler over a log file once and print the events and the digest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*cfgPath)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read log: %w", err)
			}
			return parse(cmd.OutOrStdout(), cfg, string(data))
		},
	}
}

func parse(out io.Writer, cfg *config.Config, logs string) error {
	sc := statsConfig(cfg)
	// the digest is printed on demand, never sent
	sm := stats.NewManager(context.Background(), sc, nil)
	if !sm.Enabled() {
		log.Info().Msg("stats disabled")
	}

	mon := monitor.New(monitor.NewHandlers(cfg, sm), nil, sm)
	for _, e := range mon.Process(logs) {
		if _, err := fmt.Fprintf(out, "[%s/%s/%s] %s\n", e.Type, e.Priority, e.Service, e.Message); err != nil {
			return err
		}
	}
	if sm.Enabled() {
		if _, err := fmt.Fprintf(out, "\n%s\n", sm.Digest()); err != nil {
			return err
		}
	}
	return nil
}
