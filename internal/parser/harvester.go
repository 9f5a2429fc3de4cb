package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"FarmSentinel/internal/model"
)

// HarvesterActivityParser extracts the per-challenge plot lookup summary
// logged by the harvester.
type HarvesterActivityParser struct {
	regex *regexp.Regexp
}

// NewHarvesterActivityParser creates a new HarvesterActivityParser.
func NewHarvesterActivityParser() *HarvesterActivityParser {
	return &HarvesterActivityParser{regex: regexp.MustCompile(timestampPattern +
		` harvester ` + modulePrefix + `\.harvester\.harvester\s*: INFO\s*([0-9]+) plots were eligible for farming ([0-9a-z.]*)` +
		` Found ([0-9]+) proofs?\. Time: ([0-9.]+) s\. Total ([0-9]+) plots`)}
}

// Parse returns one message per harvester lookup line in logs.
func (p *HarvesterActivityParser) Parse(logs string) []model.HarvesterActivityMessage {
	return parseLines("harvester_activity", p.regex, logs, func(ts time.Time, g []string) (model.HarvesterActivityMessage, error) {
		eligible, err := strconv.Atoi(g[2])
		if err != nil {
			return model.HarvesterActivityMessage{}, fmt.Errorf("eligible plots: %w", err)
		}
		proofs, err := strconv.Atoi(g[4])
		if err != nil {
			return model.HarvesterActivityMessage{}, fmt.Errorf("found proofs: %w", err)
		}
		search, err := strconv.ParseFloat(g[5], 64)
		if err != nil {
			return model.HarvesterActivityMessage{}, fmt.Errorf("search time: %w", err)
		}
		total, err := strconv.Atoi(g[6])
		if err != nil {
			return model.HarvesterActivityMessage{}, fmt.Errorf("total plots: %w", err)
		}
		return model.HarvesterActivityMessage{
			Timestamp:          ts,
			EligiblePlotsCount: eligible,
			ChallengeHash:      g[3],
			FoundProofsCount:   proofs,
			SearchTimeSeconds:  search,
			TotalPlotsCount:    total,
		}, nil
	})
}
