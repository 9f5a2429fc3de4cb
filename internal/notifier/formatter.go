package notifier

import (
	"fmt"
	"html"

	"FarmSentinel/internal/model"
)

var priorityIcons = map[model.EventPriority]string{
	model.PriorityLow:    "ℹ️",
	model.PriorityNormal: "⚠️",
	model.PriorityHigh:   "🚨",
}

// FormatEvent renders an event as a Telegram HTML message. Digests are sent
// as they are; user events get a priority icon and the originating service.
func FormatEvent(e model.Event) string {
	msg := html.EscapeString(e.Message)
	if e.Type == model.EventTypeDailyStats {
		return msg
	}
	icon, ok := priorityIcons[e.Priority]
	if !ok {
		icon = priorityIcons[model.PriorityLow]
	}
	return fmt.Sprintf("%s <b>%s</b>\n%s", icon, e.Service, msg)
}
