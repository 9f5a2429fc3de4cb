package model

// EventType tells whether an event was triggered by log activity or by the
// digest schedule.
type EventType string

const (
	EventTypeUser       EventType = "USER"
	EventTypeDailyStats EventType = "DAILY_STATS"
)

// EventPriority orders events for notifier filtering.
type EventPriority int

const (
	PriorityLow EventPriority = iota
	PriorityNormal
	PriorityHigh
)

// String returns the upper-case priority name used in log and CLI output.
func (p EventPriority) String() string {
	switch p {
	case PriorityLow:
		return "LOW"
	case PriorityNormal:
		return "NORMAL"
	case PriorityHigh:
		return "HIGH"
	default:
		return "UNKNOWN"
	}
}

// ParsePriority maps a config string to a priority. Unknown values map to low.
func ParsePriority(s string) EventPriority {
	switch s {
	case "normal", "NORMAL":
		return PriorityNormal
	case "high", "HIGH":
		return PriorityHigh
	default:
		return PriorityLow
	}
}

// EventService identifies the node service an event originates from.
type EventService string

const (
	ServiceHarvester EventService = "HARVESTER"
	ServiceFarmer    EventService = "FARMER"
	ServiceFullNode  EventService = "FULL_NODE"
	ServiceWallet    EventService = "WALLET"
	ServiceDaily     EventService = "DAILY"
)

// Event is a notification ready to be handed to a notifier.
type Event struct {
	Type     EventType
	Priority EventPriority
	Service  EventService
	Message  string
}
