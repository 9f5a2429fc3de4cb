package parser

import (
	"regexp"
	"time"

	"FarmSentinel/internal/model"
)

// PartialParser extracts partial proofs the farmer submits to its pool.
type PartialParser struct {
	regex *regexp.Regexp
}

// NewPartialParser creates a new PartialParser.
func NewPartialParser() *PartialParser {
	return &PartialParser{regex: regexp.MustCompile(timestampPattern +
		` farmer ` + modulePrefix + `\.farmer\.farmer\s*: INFO\s*Submitting partial for ([0-9a-fx]+) to (\S+)`)}
}

// Parse returns the partials submitted in logs.
func (p *PartialParser) Parse(logs string) []model.PartialMessage {
	return parseLines("partial", p.regex, logs, func(ts time.Time, g []string) (model.PartialMessage, error) {
		return model.PartialMessage{Timestamp: ts, LauncherID: g[2], PoolURL: g[3]}, nil
	})
}
