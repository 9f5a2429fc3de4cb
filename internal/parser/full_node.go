package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"FarmSentinel/internal/model"
)

const signagePointsPerSubSlot = 64

// BlockParser extracts blocks farmed by this node.
type BlockParser struct {
	regex *regexp.Regexp
}

// NewBlockParser creates a new BlockParser.
func NewBlockParser() *BlockParser {
	return &BlockParser{regex: regexp.MustCompile(timestampPattern +
		` full_node ` + modulePrefix + `\.full_node\.full_node\s*: INFO\s*.*Farmed unfinished_block`)}
}

// Parse returns the blocks found in logs.
func (p *BlockParser) Parse(logs string) []model.BlockMessage {
	return parseLines("block", p.regex, logs, func(ts time.Time, _ []string) (model.BlockMessage, error) {
		return model.BlockMessage{Timestamp: ts, BlocksCount: 1}, nil
	})
}

// FinishedSignagePointParser extracts the signage point index the full node
// reports on finishing each of the 64 points of a sub-slot.
type FinishedSignagePointParser struct {
	regex *regexp.Regexp
}

// NewFinishedSignagePointParser creates a new FinishedSignagePointParser.
func NewFinishedSignagePointParser() *FinishedSignagePointParser {
	return &FinishedSignagePointParser{regex: regexp.MustCompile(timestampPattern +
		` full_node ` + modulePrefix + `\.full_node\.full_node\s*: INFO\s*.*Finished signage point ([0-9]+)/64`)}
}

// Parse returns the signage points finished in logs.
func (p *FinishedSignagePointParser) Parse(logs string) []model.FinishedSignagePointMessage {
	return parseLines("finished_signage_point", p.regex, logs, func(ts time.Time, g []string) (model.FinishedSignagePointMessage, error) {
		sp, err := strconv.Atoi(g[2])
		if err != nil {
			return model.FinishedSignagePointMessage{}, fmt.Errorf("signage point: %w", err)
		}
		if sp < 1 || sp > signagePointsPerSubSlot {
			return model.FinishedSignagePointMessage{}, fmt.Errorf("signage point %d out of range", sp)
		}
		return model.FinishedSignagePointMessage{Timestamp: ts, SignagePoint: sp}, nil
	})
}
