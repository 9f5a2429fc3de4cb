// Package handler turns raw log text into user notifications, one handler
// per log category. Every handler also forwards what it parsed to the stats
// aggregator when one is attached.
package handler

import "FarmSentinel/internal/model"

// Handler parses a chunk of log text and returns the notifications it
// warrants, in source order. Returning no events is the common case.
type Handler interface {
	Name() string
	Handle(logs string) []model.Event
}

// StatsConsumer receives every parsed message for aggregation.
type StatsConsumer interface {
	ConsumeWalletMessages(added []model.WalletAddCoinMessage, deleted []model.WalletDelCoinMessage)
	ConsumeHarvesterMessages(msgs []model.HarvesterActivityMessage)
	ConsumePartialMessages(msgs []model.PartialMessage)
	ConsumeBlockMessages(msgs []model.BlockMessage)
	ConsumeSignagePointMessages(msgs []model.FinishedSignagePointMessage)
}

func userEvent(priority model.EventPriority, service model.EventService, msg string) model.Event {
	return model.Event{Type: model.EventTypeUser, Priority: priority, Service: service, Message: msg}
}
