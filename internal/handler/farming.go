package handler

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"FarmSentinel/internal/model"
	"FarmSentinel/internal/parser"
	"FarmSentinel/internal/stats"
)

// HarvesterActivityHandler watches plot lookups: proofs found, slow
// lookups and plots disappearing.
type HarvesterActivityHandler struct {
	parser           *parser.HarvesterActivityParser
	stats            StatsConsumer
	maxSearchSeconds float64

	mu        sync.Mutex
	lastPlots int
}

// NewHarvesterActivityHandler creates a new HarvesterActivityHandler.
func NewHarvesterActivityHandler(maxSearchSeconds float64, stats StatsConsumer) *HarvesterActivityHandler {
	return &HarvesterActivityHandler{
		parser:           parser.NewHarvesterActivityParser(),
		stats:            stats,
		maxSearchSeconds: maxSearchSeconds,
	}
}

func (h *HarvesterActivityHandler) Name() string { return "harvester_activity_handler" }

// Handle reports found proofs, slow lookups and a shrinking plot count.
func (h *HarvesterActivityHandler) Handle(logs string) []model.Event {
	msgs := h.parser.Parse(logs)
	if h.stats != nil {
		h.stats.ConsumeHarvesterMessages(msgs)
	}
	if len(msgs) == 0 {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	var events []model.Event
	proofs := 0
	slowest := 0.0
	for _, m := range msgs {
		proofs += m.FoundProofsCount
		if m.SearchTimeSeconds > slowest {
			slowest = m.SearchTimeSeconds
		}
		if h.lastPlots > 0 && m.TotalPlotsCount < h.lastPlots {
			events = append(events, userEvent(model.PriorityHigh, model.ServiceHarvester,
				fmt.Sprintf("The total plot count decreased from %d to %d. Check your harvester! 🌱", h.lastPlots, m.TotalPlotsCount)))
		}
		h.lastPlots = m.TotalPlotsCount
	}

	if proofs > 0 {
		log.Info().Int("proofs", proofs).Msg("harvester found proofs")
		events = append(events, userEvent(model.PriorityLow, model.ServiceHarvester,
			fmt.Sprintf("Found %d proof(s)! 🧾", proofs)))
	}
	if h.maxSearchSeconds > 0 && slowest > h.maxSearchSeconds {
		events = append(events, userEvent(model.PriorityNormal, model.ServiceHarvester,
			fmt.Sprintf("Seeking plots took %.2f seconds, more than the %.0f second limit. Disks may be slow or failing.",
				slowest, h.maxSearchSeconds)))
	}
	return events
}

// PartialHandler only aggregates partials; submitting a partial is routine
// and never notified on its own.
type PartialHandler struct {
	parser *parser.PartialParser
	stats  StatsConsumer
}

// NewPartialHandler creates a new PartialHandler.
func NewPartialHandler(stats StatsConsumer) *PartialHandler {
	return &PartialHandler{parser: parser.NewPartialParser(), stats: stats}
}

func (h *PartialHandler) Name() string { return "partial_handler" }

// Handle only feeds stats. Partials are never notified.
func (h *PartialHandler) Handle(logs string) []model.Event {
	msgs := h.parser.Parse(logs)
	if h.stats != nil {
		h.stats.ConsumePartialMessages(msgs)
	}
	return nil
}

// BlockHandler notifies about farmed blocks.
type BlockHandler struct {
	parser *parser.BlockParser
	stats  StatsConsumer
}

// NewBlockHandler creates a new BlockHandler.
func NewBlockHandler(stats StatsConsumer) *BlockHandler {
	return &BlockHandler{parser: parser.NewBlockParser(), stats: stats}
}

func (h *BlockHandler) Name() string { return "block_handler" }

func (h *BlockHandler) Handle(logs string) []model.Event {
	msgs := h.parser.Parse(logs)
	if h.stats != nil {
		h.stats.ConsumeBlockMessages(msgs)
	}
	blocks := 0
	for _, m := range msgs {
		blocks += m.BlocksCount
	}
	if blocks == 0 {
		return nil
	}
	return []model.Event{userEvent(model.PriorityLow, model.ServiceFullNode, fmt.Sprintf("Farmed %d block(s)! 🍀", blocks))}
}

// FinishedSignagePointHandler notifies when the full node misses signage
// points. The last point seen is kept across passes.
type FinishedSignagePointHandler struct {
	parser *parser.FinishedSignagePointParser
	stats  StatsConsumer

	mu     sync.Mutex
	lastSP int
}

// NewFinishedSignagePointHandler creates a new FinishedSignagePointHandler.
func NewFinishedSignagePointHandler(stats StatsConsumer) *FinishedSignagePointHandler {
	return &FinishedSignagePointHandler{parser: parser.NewFinishedSignagePointParser(), stats: stats}
}

func (h *FinishedSignagePointHandler) Name() string { return "finished_signage_point_handler" }

func (h *FinishedSignagePointHandler) Handle(logs string) []model.Event {
	msgs := h.parser.Parse(logs)
	if h.stats != nil {
		h.stats.ConsumeSignagePointMessages(msgs)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	var events []model.Event
	for _, m := range msgs {
		if h.lastSP != 0 {
			if skipped := stats.SkippedSignagePoints(h.lastSP, m.SignagePoint); skipped > 0 {
				events = append(events, userEvent(model.PriorityNormal, model.ServiceFullNode,
					fmt.Sprintf("Skipped %d signage point(s) ⚠️ (from %d to %d). Check the node's network connection.",
						skipped, h.lastSP, m.SignagePoint)))
			}
		}
		h.lastSP = m.SignagePoint
	}
	return events
}
