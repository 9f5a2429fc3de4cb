package scheduler

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/rs/zerolog/log"
)

const (
	defaultHour   = 21
	defaultMinute = 0
)

var reTimeOfDay = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// TimeOfDay is a wall-clock anchor in 24-hour format.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// String formats t as HH:MM.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// DefaultTimeOfDay is used whenever a configured time of day cannot be
// understood: 21:00.
func DefaultTimeOfDay() TimeOfDay {
	return TimeOfDay{Hour: defaultHour, Minute: defaultMinute}
}

// ParseTimeOfDay accepts an integer hour or an "HH:MM" string. Anything else
// falls back to DefaultTimeOfDay rather than failing startup.
func ParseTimeOfDay(value any) TimeOfDay {
	switch v := value.(type) {
	case int:
		return hourOrDefault(v, value)
	case int64:
		return hourOrDefault(int(v), value)
	case uint64:
		if v > 23 {
			return fallback(value)
		}
		return TimeOfDay{Hour: int(v)}
	case string:
		m := reTimeOfDay.FindStringSubmatch(v)
		if m == nil {
			return fallback(value)
		}
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		return TimeOfDay{Hour: hour, Minute: minute}
	default:
		return fallback(value)
	}
}

func hourOrDefault(hour int, raw any) TimeOfDay {
	if hour < 0 || hour > 23 {
		return fallback(raw)
	}
	return TimeOfDay{Hour: hour}
}

func fallback(raw any) TimeOfDay {
	def := DefaultTimeOfDay()
	log.Warn().Msgf("invalid time_of_day %v, using default %s", raw, def)
	return def
}
