// Package notifier delivers events to the outside world. The Manager is the
// single entry point for the rest of the program; transports implement
// Notifier.
package notifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"FarmSentinel/internal/model"
	"FarmSentinel/internal/recorder"
)

// Notifier is one delivery channel.
type Notifier interface {
	Name() string
	Submit(ctx context.Context, events []model.Event) error
}

// Manager fans events out to every configured notifier, drops events below
// the minimum priority, and journals what it handled.
type Manager struct {
	notifiers   []Notifier
	minPriority model.EventPriority
	rec         recorder.Recorder
}

// NewManager creates a new Manager. A nil rec journals nothing.
func NewManager(minPriority model.EventPriority, rec recorder.Recorder, notifiers ...Notifier) *Manager {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	for _, n := range notifiers {
		log.Info().Str("notifier", n.Name()).Msg("notifier enabled")
	}
	return &Manager{notifiers: notifiers, minPriority: minPriority, rec: rec}
}

// Submit delivers events to all notifiers. It fails only if at least one
// event could not be delivered by any of them.
func (m *Manager) Submit(ctx context.Context, events []model.Event) error {
	var pending []model.Event
	for _, e := range events {
		// digests bypass the priority filter
		if e.Type == model.EventTypeUser && e.Priority < m.minPriority {
			log.Debug().Str("priority", e.Priority.String()).Msg("event below minimum priority, dropped")
			continue
		}
		pending = append(pending, e)
	}
	if len(pending) == 0 {
		return nil
	}

	delivered := make([]bool, len(pending))
	var errs []error
	for _, n := range m.notifiers {
		for i, e := range pending {
			if err := n.Submit(ctx, []model.Event{e}); err != nil {
				log.Warn().Err(err).Str("notifier", n.Name()).Msg("notification failed")
				errs = append(errs, fmt.Errorf("%s: %w", n.Name(), err))
				continue
			}
			delivered[i] = true
		}
	}

	undelivered := 0
	for i, e := range pending {
		if !delivered[i] {
			undelivered++
		}
		m.journal(e, delivered[i])
	}
	if undelivered > 0 && len(m.notifiers) > 0 {
		return fmt.Errorf("%d of %d events undelivered: %w", undelivered, len(pending), errors.Join(errs...))
	}
	return nil
}

func (m *Manager) journal(e model.Event, delivered bool) {
	if e.Type == model.EventTypeDailyStats {
		id, err := m.rec.RecordDigest(e, delivered)
		if err != nil {
			log.Warn().Err(err).Msg("record digest")
			return
		}
		if id != "" {
			log.Debug().Str("id", id).Msg("digest recorded")
		}
		return
	}
	if err := m.rec.RecordEvent(e, delivered); err != nil {
		log.Warn().Err(err).Msg("record event")
	}
}

// LogNotifier writes events to the process log. Useful when no remote
// transport is configured and for the one-shot CLI.
type LogNotifier struct{}

// NewLogNotifier creates a new LogNotifier.
func NewLogNotifier() *LogNotifier { return &LogNotifier{} }

func (l *LogNotifier) Name() string { return "log" }

// Submit logs each event at info level.
func (l *LogNotifier) Submit(_ context.Context, events []model.Event) error {
	for _, e := range events {
		log.Info().
			Str("type", string(e.Type)).
			Str("priority", e.Priority.String()).
			Str("service", string(e.Service)).
			Msg(e.Message)
	}
	return nil
}
