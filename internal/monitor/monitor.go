// Package monitor ties the pieces together: text from the tailer goes
// through every enabled handler and the resulting events go to the notifier.
package monitor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"FarmSentinel/internal/config"
	"FarmSentinel/internal/handler"
	"FarmSentinel/internal/model"
)

// Submitter delivers events.
type Submitter interface {
	Submit(ctx context.Context, events []model.Event) error
}

// DigestSource is the part of the stats manager the monitor exposes through
// chat commands.
type DigestSource interface {
	Enabled() bool
	Digest() string
	NextDigest() time.Time
}

// Monitor runs log chunks through the handlers.
type Monitor struct {
	handlers []handler.Handler
	notifier Submitter
	stats    DigestSource
}

// NewHandlers builds every handler enabled in cfg, in a fixed order.
func NewHandlers(cfg *config.Config, stats handler.StatsConsumer) []handler.Handler {
	h := cfg.Handlers
	var handlers []handler.Handler
	if h.WalletAddCoin.Enable {
		handlers = append(handlers, handler.NewWalletAddCoinHandler(h.WalletAddCoin.MinMojosAmount, stats))
	}
	if h.WalletDelCoin.Enable {
		handlers = append(handlers, handler.NewWalletDelCoinHandler(h.WalletDelCoin.MinMojosAmount, stats))
	}
	if h.HarvesterActivity.Enable {
		handlers = append(handlers, handler.NewHarvesterActivityHandler(h.HarvesterActivity.MaxSearchTimeSeconds, stats))
	}
	if h.Partial.Enable {
		handlers = append(handlers, handler.NewPartialHandler(stats))
	}
	if h.Block.Enable {
		handlers = append(handlers, handler.NewBlockHandler(stats))
	}
	if h.FinishedSignagePoint.Enable {
		handlers = append(handlers, handler.NewFinishedSignagePointHandler(stats))
	}
	for _, hd := range handlers {
		log.Debug().Str("handler", hd.Name()).Msg("handler enabled")
	}
	return handlers
}

// New creates a new Monitor. notifier and stats may be nil.
func New(handlers []handler.Handler, notifier Submitter, stats DigestSource) *Monitor {
	return &Monitor{handlers: handlers, notifier: notifier, stats: stats}
}

// Process runs one chunk of log text through every handler and returns the
// events in handler order.
func (m *Monitor) Process(chunk string) []model.Event {
	var events []model.Event
	for _, h := range m.handlers {
		events = append(events, h.Handle(chunk)...)
	}
	return events
}

// Consume processes a chunk and submits whatever it produced. Delivery
// failures are logged; the log keeps flowing.
func (m *Monitor) Consume(ctx context.Context, chunk string) {
	events := m.Process(chunk)
	if len(events) == 0 || m.notifier == nil {
		return
	}
	if err := m.notifier.Submit(ctx, events); err != nil {
		log.Error().Err(err).Int("events", len(events)).Msg("submit events")
	}
}

// HandleCommand answers chat commands.
func (m *Monitor) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	// "/digest@SomeBot" is how group chats address a bot
	name, _, _ := strings.Cut(fields[0], "@")

	switch name {
	case "/digest":
		if m.stats == nil || !m.stats.Enabled() {
			return "Stats are disabled."
		}
		return m.stats.Digest()
	case "/next":
		if m.stats == nil || !m.stats.Enabled() {
			return "Stats are disabled."
		}
		return fmt.Sprintf("Next digest at %s", m.stats.NextDigest().Format("2006-01-02 15:04"))
	case "/handlers":
		names := make([]string, 0, len(m.handlers))
		for _, h := range m.handlers {
			names = append(names, h.Name())
		}
		return "Enabled handlers: " + strings.Join(names, ", ")
	case "/help", "/start":
		return "/digest - stats collected so far\n/next - when the next digest is due\n/handlers - enabled handlers"
	default:
		return ""
	}
}
