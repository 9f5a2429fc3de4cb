// Package stats aggregates parsed log messages between digest resets.
package stats

import (
	"time"

	"FarmSentinel/internal/model"
)

// Accumulator aggregates messages of the categories it declares until the
// next Reset.
type Accumulator interface {
	Name() string
	// Categories lists the message categories Consume accepts. The manager
	// only routes messages of these categories to the accumulator.
	Categories() []model.Category
	Consume(msg model.Message)
	// Summary renders the current window. It never mutates state and always
	// returns a line, even when nothing was consumed.
	Summary() string
	// Reset clears the aggregate and starts a new window at now.
	Reset(now time.Time)
	WindowStart() time.Time
}

// window holds the start of the current aggregation window.
type window struct {
	lastReset time.Time
}

func (w *window) WindowStart() time.Time { return w.lastReset }

// DefaultAccumulators returns one accumulator per digest line, in digest
// order.
func DefaultAccumulators(now time.Time) []Accumulator {
	return []Accumulator{
		NewWalletAddCoinStats(now),
		NewWalletDelCoinStats(now),
		NewFoundProofStats(now),
		NewFoundPartialStats(now),
		NewFoundBlockStats(now),
		NewSearchTimeStats(now),
		NewNumberPlotsStats(now),
		NewEligiblePlotsStats(now),
		NewSignagePointStats(now),
	}
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
