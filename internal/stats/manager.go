package stats

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"FarmSentinel/internal/model"
	"FarmSentinel/internal/scheduler"
)

// Config controls the periodic digest.
type Config struct {
	Enable         bool
	TimeOfDay      scheduler.TimeOfDay
	FrequencyHours int
}

// Submitter delivers events to the user.
type Submitter interface {
	Submit(ctx context.Context, events []model.Event) error
}

// Option customises a Manager.
type Option func(*Manager)

// WithClock replaces the wall clock used for scheduling and window stamps.
func WithClock(clock func() time.Time) Option {
	return func(m *Manager) { m.clock = clock }
}

// WithAccumulators replaces the default accumulator set.
func WithAccumulators(accs ...Accumulator) Option {
	return func(m *Manager) { m.accumulators = accs }
}

// WithPollInterval changes how often the background loop checks the clock.
func WithPollInterval(d time.Duration) Option {
	return func(m *Manager) { m.pollInterval = d }
}

// Manager owns every accumulator, routes parsed messages to the accumulators
// that declared their category, and sends a digest of all of them on a
// wall-clock schedule.
//
// A disabled Manager is inert: consume calls are no-ops and nothing is
// scheduled.
type Manager struct {
	ctx            context.Context
	enabled        bool
	frequencyHours int
	notifier       Submitter
	clock          func() time.Time
	pollInterval   time.Duration

	mu           sync.Mutex
	accumulators []Accumulator
	routes       map[model.Category][]Accumulator
	schedule     *scheduler.Schedule

	poller *scheduler.Poller
}

// NewManager creates a Manager. It does not start the background loop.
func NewManager(ctx context.Context, cfg Config, notifier Submitter, opts ...Option) *Manager {
	m := &Manager{
		ctx:            ctx,
		enabled:        cfg.Enable,
		frequencyHours: cfg.FrequencyHours,
		notifier:       notifier,
		clock:          time.Now,
		pollInterval:   scheduler.DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(m)
	}
	if !m.enabled {
		m.accumulators = nil
		return m
	}

	now := m.clock()
	if m.accumulators == nil {
		m.accumulators = DefaultAccumulators(now)
	}
	m.routes = make(map[model.Category][]Accumulator)
	for _, acc := range m.accumulators {
		for _, c := range acc.Categories() {
			m.routes[c] = append(m.routes[c], acc)
		}
	}
	m.schedule = scheduler.NewSchedule(now, cfg.TimeOfDay, time.Duration(cfg.FrequencyHours)*time.Hour)

	log.Info().
		Time("anchor", m.schedule.Anchor()).
		Time("next", m.schedule.Next()).
		Msgf("summary notifications will be sent out every %s starting from %s",
			m.schedule.Frequency(), cfg.TimeOfDay)
	return m
}

// Enabled reports whether stats collection is on.
func (m *Manager) Enabled() bool { return m.enabled }

// NextDigest returns when the next digest is due. Zero when disabled.
func (m *Manager) NextDigest() time.Time {
	if !m.enabled {
		return time.Time{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.schedule.Next()
}

// ConsumeWalletMessages routes coins added to and removed from the wallet.
// Either slice may be empty.
func (m *Manager) ConsumeWalletMessages(added []model.WalletAddCoinMessage, deleted []model.WalletDelCoinMessage) {
	msgs := make([]model.Message, 0, len(added)+len(deleted))
	for _, a := range added {
		msgs = append(msgs, a)
	}
	for _, d := range deleted {
		msgs = append(msgs, d)
	}
	m.consume(msgs...)
}

// ConsumeHarvesterMessages routes harvester activity lines.
func (m *Manager) ConsumeHarvesterMessages(msgs []model.HarvesterActivityMessage) {
	m.consume(toMessages(msgs)...)
}

// ConsumePartialMessages routes submitted partials.
func (m *Manager) ConsumePartialMessages(msgs []model.PartialMessage) {
	m.consume(toMessages(msgs)...)
}

// ConsumeBlockMessages routes found blocks.
func (m *Manager) ConsumeBlockMessages(msgs []model.BlockMessage) {
	m.consume(toMessages(msgs)...)
}

// ConsumeSignagePointMessages routes finished signage points.
func (m *Manager) ConsumeSignagePointMessages(msgs []model.FinishedSignagePointMessage) {
	m.consume(toMessages(msgs)...)
}

func toMessages[T model.Message](msgs []T) []model.Message {
	out := make([]model.Message, len(msgs))
	for i, msg := range msgs {
		out[i] = msg
	}
	return out
}

func (m *Manager) consume(msgs ...model.Message) {
	if !m.enabled || len(msgs) == 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range msgs {
		for _, acc := range m.routes[msg.Category()] {
			acc.Consume(msg)
		}
	}
}

// Digest renders the current summary of every accumulator without
// resetting anything.
func (m *Manager) Digest() string {
	if !m.enabled {
		return ""
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.render()
}

// render must be called with mu held.
func (m *Manager) render() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Hi! 👋 Here's what happened in the last %d hours:\n", m.frequencyHours))
	for _, acc := range m.accumulators {
		b.WriteString("\n")
		b.WriteString(acc.Summary())
	}
	return b.String()
}

// Tick fires the digest if now has reached the next scheduled time. At most
// one digest is sent per call. It reports whether a digest was sent.
func (m *Manager) Tick(now time.Time) bool {
	if !m.enabled {
		return false
	}

	m.mu.Lock()
	if !m.schedule.Due(now) {
		m.mu.Unlock()
		return false
	}
	digest := m.render()
	for _, acc := range m.accumulators {
		log.Debug().
			Str("accumulator", acc.Name()).
			Time("window_start", acc.WindowStart()).
			Time("window_end", now).
			Msg("stats window closed")
		acc.Reset(now)
	}
	m.schedule.Advance()
	next := m.schedule.Next()
	m.mu.Unlock()

	m.send(digest)
	log.Info().Time("next", next).Msg("digest sent")
	return true
}

func (m *Manager) send(digest string) {
	if m.notifier == nil {
		return
	}
	events := []model.Event{{
		Type:     model.EventTypeDailyStats,
		Priority: model.PriorityLow,
		Service:  model.ServiceDaily,
		Message:  digest,
	}}
	if err := m.notifier.Submit(m.ctx, events); err != nil {
		log.Error().Err(err).Msg("submit digest")
	}
}

// Start runs Tick against the clock in the background until Stop.
func (m *Manager) Start() error {
	if !m.enabled {
		return nil
	}
	m.poller = scheduler.NewPoller(m.pollInterval)
	return m.poller.Start(func() { m.Tick(m.clock()) })
}

// Stop halts the background loop. A tick in progress completes; no partial
// digest is sent.
func (m *Manager) Stop() {
	if m.poller == nil {
		return
	}
	m.poller.Stop()
	m.poller = nil
}
