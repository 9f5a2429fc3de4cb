package stats

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"FarmSentinel/internal/model"
)

// FoundPartialStats counts partials submitted, broken down by pool.
type FoundPartialStats struct {
	window
	total  int
	byPool map[string]int
}

// NewFoundPartialStats creates a new FoundPartialStats.
func NewFoundPartialStats(now time.Time) *FoundPartialStats {
	return &FoundPartialStats{window: window{lastReset: now}, byPool: make(map[string]int)}
}

func (s *FoundPartialStats) Name() string { return "found_partials" }

func (s *FoundPartialStats) Categories() []model.Category {
	return []model.Category{model.CategoryPartial}
}

func (s *FoundPartialStats) Consume(msg model.Message) {
	if m, ok := msg.(model.PartialMessage); ok {
		s.total++
		s.byPool[m.PoolURL]++
	}
}

func (s *FoundPartialStats) Summary() string {
	if s.total == 0 {
		return "Partials 🎯: none submitted"
	}
	pools := make([]string, 0, len(s.byPool))
	for p := range s.byPool {
		pools = append(pools, p)
	}
	sort.Strings(pools)

	parts := make([]string, len(pools))
	for i, p := range pools {
		parts[i] = fmt.Sprintf("%s: %d", p, s.byPool[p])
	}
	return fmt.Sprintf("Partials 🎯: %d submitted (%s)", s.total, strings.Join(parts, ", "))
}

func (s *FoundPartialStats) Reset(now time.Time) {
	s.lastReset = now
	s.total = 0
	s.byPool = make(map[string]int)
}

// FoundBlockStats counts blocks farmed.
type FoundBlockStats struct {
	window
	blocks int
}

// NewFoundBlockStats creates a new FoundBlockStats.
func NewFoundBlockStats(now time.Time) *FoundBlockStats {
	return &FoundBlockStats{window: window{lastReset: now}}
}

func (s *FoundBlockStats) Name() string { return "found_blocks" }

func (s *FoundBlockStats) Categories() []model.Category {
	return []model.Category{model.CategoryBlock}
}

func (s *FoundBlockStats) Consume(msg model.Message) {
	if m, ok := msg.(model.BlockMessage); ok {
		s.blocks += m.BlocksCount
	}
}

func (s *FoundBlockStats) Summary() string {
	if s.blocks == 0 {
		return "Blocks 🍀: none farmed"
	}
	return fmt.Sprintf("Blocks 🍀: %d farmed", s.blocks)
}

func (s *FoundBlockStats) Reset(now time.Time) {
	s.lastReset = now
	s.blocks = 0
}

// SignagePointsPerSubSlot is the number of signage points in a sub-slot.
const SignagePointsPerSubSlot = 64

// NextSignagePoint returns the signage point expected after sp.
func NextSignagePoint(sp int) int {
	return sp%SignagePointsPerSubSlot + 1
}

// SkippedSignagePoints returns how many points lie strictly between last and
// current. A repeated point counts as zero.
func SkippedSignagePoints(last, current int) int {
	if current == last {
		return 0
	}
	return (current - NextSignagePoint(last) + SignagePointsPerSubSlot) % SignagePointsPerSubSlot
}

// SignagePointStats counts finished signage points, the ones the node never
// saw, and the mean interval between consecutive points.
type SignagePointStats struct {
	window
	seen          int
	skipped       int
	last          int
	lastTime      time.Time
	intervals     int
	totalInterval time.Duration
}

// NewSignagePointStats creates a new SignagePointStats.
func NewSignagePointStats(now time.Time) *SignagePointStats {
	return &SignagePointStats{window: window{lastReset: now}}
}

func (s *SignagePointStats) Name() string { return "signage_points" }

func (s *SignagePointStats) Categories() []model.Category {
	return []model.Category{model.CategoryFinishedSignagePoint}
}

func (s *SignagePointStats) Consume(msg model.Message) {
	m, ok := msg.(model.FinishedSignagePointMessage)
	if !ok {
		return
	}
	if s.seen > 0 {
		if m.SignagePoint == s.last {
			return
		}
		s.skipped += SkippedSignagePoints(s.last, m.SignagePoint)
		if d := m.Timestamp.Sub(s.lastTime); d > 0 {
			s.intervals++
			s.totalInterval += d
		}
	}
	s.seen++
	s.last = m.SignagePoint
	s.lastTime = m.Timestamp
}

func (s *SignagePointStats) Summary() string {
	if s.seen == 0 {
		return "Signage points ⏲️: none seen"
	}
	interval := "n/a"
	if s.intervals > 0 {
		interval = fmt.Sprintf("%.2fs", (s.totalInterval / time.Duration(s.intervals)).Seconds())
	}
	return fmt.Sprintf("Signage points ⏲️: %d seen, skipped %d (%.1f%%), average interval %s",
		s.seen, s.skipped, percent(s.skipped, s.seen+s.skipped), interval)
}

func (s *SignagePointStats) Reset(now time.Time) {
	s.lastReset = now
	s.seen = 0
	s.skipped = 0
	s.last = 0
	s.lastTime = time.Time{}
	s.intervals = 0
	s.totalInterval = 0
}
