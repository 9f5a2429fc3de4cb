// Package parser extracts structured messages from Chia debug.log text.
//
// Every parser is stateless and owns a single compiled pattern. Input may be
// any number of lines; lines that do not match are ignored and lines that
// match but carry a malformed field are skipped without affecting the rest
// of the input.
package parser

import (
	"bufio"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/rs/zerolog/log"
)

// timestampPattern matches the zoneless local timestamp Chia prefixes every
// log line with, e.g. 2022-06-17T11:37:21.340.
const timestampPattern = `(\d{4}-\d{2}-\d{2}[T ][0-9:.]+)`

// modulePrefix accepts both the current and the pre-1.0 python package name.
const modulePrefix = `(?:src|chia)`

// parseTimestamp parses log-local time text into an absolute time in the
// local zone.
func parseTimestamp(s string) (time.Time, error) {
	t, err := dateparse.ParseIn(s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

// parseLines runs re against each line of logs and converts every match with
// build. The first submatch group of re must be the line timestamp.
func parseLines[T any](name string, re *regexp.Regexp, logs string, build func(ts time.Time, groups []string) (T, error)) []T {
	out := make([]T, 0)
	scanner := bufio.NewScanner(strings.NewReader(logs))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		groups := re.FindStringSubmatch(line)
		if groups == nil {
			continue
		}
		ts, err := parseTimestamp(groups[1])
		if err != nil {
			log.Debug().Str("parser", name).Err(err).Msg("skipping log line")
			continue
		}
		msg, err := build(ts, groups)
		if err != nil {
			log.Debug().Str("parser", name).Err(err).Msg("skipping log line")
			continue
		}
		out = append(out, msg)
	}
	if err := scanner.Err(); err != nil {
		log.Warn().Str("parser", name).Err(err).Msg("log scan stopped early")
	}
	return out
}
