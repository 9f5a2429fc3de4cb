package stats

import (
	"fmt"
	"time"

	"FarmSentinel/internal/model"
)

var harvesterCategories = []model.Category{model.CategoryHarvesterActivity}

// FoundProofStats counts proofs found by the harvester.
type FoundProofStats struct {
	window
	foundProofs int
}

// NewFoundProofStats creates a new FoundProofStats.
func NewFoundProofStats(now time.Time) *FoundProofStats {
	return &FoundProofStats{window: window{lastReset: now}}
}

func (s *FoundProofStats) Name() string                 { return "found_proofs" }
func (s *FoundProofStats) Categories() []model.Category { return harvesterCategories }

func (s *FoundProofStats) Consume(msg model.Message) {
	if m, ok := msg.(model.HarvesterActivityMessage); ok {
		s.foundProofs += m.FoundProofsCount
	}
}

func (s *FoundProofStats) Summary() string {
	if s.foundProofs == 0 {
		return "Proofs 🧾: none found"
	}
	return fmt.Sprintf("Proofs 🧾: %d found", s.foundProofs)
}

func (s *FoundProofStats) Reset(now time.Time) {
	s.lastReset = now
	s.foundProofs = 0
}

const (
	searchTimeWarnSeconds     = 5.0
	searchTimeCriticalSeconds = 15.0
)

// SearchTimeStats tracks how long plot lookups take.
type SearchTimeStats struct {
	window
	count        int
	totalSeconds float64
	maxSeconds   float64
	overWarn     int
	overCritical int
}

// NewSearchTimeStats creates a new SearchTimeStats.
func NewSearchTimeStats(now time.Time) *SearchTimeStats {
	return &SearchTimeStats{window: window{lastReset: now}}
}

func (s *SearchTimeStats) Name() string                 { return "search_time" }
func (s *SearchTimeStats) Categories() []model.Category { return harvesterCategories }

func (s *SearchTimeStats) Consume(msg model.Message) {
	m, ok := msg.(model.HarvesterActivityMessage)
	if !ok {
		return
	}
	s.count++
	s.totalSeconds += m.SearchTimeSeconds
	if m.SearchTimeSeconds > s.maxSeconds {
		s.maxSeconds = m.SearchTimeSeconds
	}
	if m.SearchTimeSeconds > searchTimeWarnSeconds {
		s.overWarn++
	}
	if m.SearchTimeSeconds > searchTimeCriticalSeconds {
		s.overCritical++
	}
}

func (s *SearchTimeStats) Summary() string {
	if s.count == 0 {
		return "Search 🔍: no plot lookups recorded"
	}
	return fmt.Sprintf("Search 🔍: average %.2fs, worst %.2fs, over 5s: %d (%.1f%%), over 15s: %d (%.1f%%)",
		s.totalSeconds/float64(s.count), s.maxSeconds,
		s.overWarn, percent(s.overWarn, s.count),
		s.overCritical, percent(s.overCritical, s.count))
}

func (s *SearchTimeStats) Reset(now time.Time) {
	s.lastReset = now
	s.count = 0
	s.totalSeconds = 0
	s.maxSeconds = 0
	s.overWarn = 0
	s.overCritical = 0
}

// NumberPlotsStats tracks the total plot count reported by the harvester
// and how it changed over the window.
type NumberPlotsStats struct {
	window
	seen       bool
	firstPlots int
	lastPlots  int
}

// NewNumberPlotsStats creates a new NumberPlotsStats.
func NewNumberPlotsStats(now time.Time) *NumberPlotsStats {
	return &NumberPlotsStats{window: window{lastReset: now}}
}

func (s *NumberPlotsStats) Name() string                 { return "number_plots" }
func (s *NumberPlotsStats) Categories() []model.Category { return harvesterCategories }

func (s *NumberPlotsStats) Consume(msg model.Message) {
	m, ok := msg.(model.HarvesterActivityMessage)
	if !ok {
		return
	}
	if !s.seen {
		s.seen = true
		s.firstPlots = m.TotalPlotsCount
	}
	s.lastPlots = m.TotalPlotsCount
}

func (s *NumberPlotsStats) Summary() string {
	if !s.seen {
		return "Plots 🌱: no harvester activity recorded"
	}
	return fmt.Sprintf("Plots 🌱: %d, new: %d", s.lastPlots, s.lastPlots-s.firstPlots)
}

func (s *NumberPlotsStats) Reset(now time.Time) {
	s.lastReset = now
	s.seen = false
	s.firstPlots = 0
	s.lastPlots = 0
}

// EligiblePlotsStats averages the number of plots that passed the plot
// filter per challenge.
type EligiblePlotsStats struct {
	window
	challenges    int
	totalEligible int
}

// NewEligiblePlotsStats creates a new EligiblePlotsStats.
func NewEligiblePlotsStats(now time.Time) *EligiblePlotsStats {
	return &EligiblePlotsStats{window: window{lastReset: now}}
}

func (s *EligiblePlotsStats) Name() string                 { return "eligible_plots" }
func (s *EligiblePlotsStats) Categories() []model.Category { return harvesterCategories }

func (s *EligiblePlotsStats) Consume(msg model.Message) {
	if m, ok := msg.(model.HarvesterActivityMessage); ok {
		s.challenges++
		s.totalEligible += m.EligiblePlotsCount
	}
}

func (s *EligiblePlotsStats) Summary() string {
	if s.challenges == 0 {
		return "Eligible plots 🥇: no challenges recorded"
	}
	return fmt.Sprintf("Eligible plots 🥇: %.2f average over %d challenges",
		float64(s.totalEligible)/float64(s.challenges), s.challenges)
}

func (s *EligiblePlotsStats) Reset(now time.Time) {
	s.lastReset = now
	s.challenges = 0
	s.totalEligible = 0
}
