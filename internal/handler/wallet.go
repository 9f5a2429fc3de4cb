package handler

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"FarmSentinel/internal/model"
	"FarmSentinel/internal/parser"
)

// WalletAddCoinHandler notifies when the wallet receives more than a
// configured amount within one pass.
type WalletAddCoinHandler struct {
	parser         *parser.WalletAddCoinParser
	stats          StatsConsumer
	minMojosAmount uint64
}

// NewWalletAddCoinHandler creates a new WalletAddCoinHandler. Totals of
// minMojosAmount or less are not notified.
func NewWalletAddCoinHandler(minMojosAmount uint64, stats StatsConsumer) *WalletAddCoinHandler {
	log.Info().Msgf("filtering received transactions of %d mojos or less", minMojosAmount)
	return &WalletAddCoinHandler{
		parser:         parser.NewWalletAddCoinParser(),
		stats:          stats,
		minMojosAmount: minMojosAmount,
	}
}

func (h *WalletAddCoinHandler) Name() string { return "wallet_add_coin_handler" }

// Handle forwards received coins to stats and returns at most one event
// for their total.
func (h *WalletAddCoinHandler) Handle(logs string) []model.Event {
	msgs := h.parser.Parse(logs)
	if h.stats != nil {
		h.stats.ConsumeWalletMessages(msgs, nil)
	}

	var total uint64
	for _, m := range msgs {
		log.Info().Uint64("mojos", m.AmountMojos).Msg("just received mojos 💰")
		total += m.AmountMojos
	}
	return walletEvent(total, h.minMojosAmount, "received", "Just received %s XCH 💰")
}

// WalletDelCoinHandler notifies when the wallet spends more than a
// configured amount within one pass.
type WalletDelCoinHandler struct {
	parser         *parser.WalletDelCoinParser
	stats          StatsConsumer
	minMojosAmount uint64
}

// NewWalletDelCoinHandler creates a new WalletDelCoinHandler.
func NewWalletDelCoinHandler(minMojosAmount uint64, stats StatsConsumer) *WalletDelCoinHandler {
	log.Info().Msgf("filtering sent transactions of %d mojos or less", minMojosAmount)
	return &WalletDelCoinHandler{
		parser:         parser.NewWalletDelCoinParser(),
		stats:          stats,
		minMojosAmount: minMojosAmount,
	}
}

func (h *WalletDelCoinHandler) Name() string { return "wallet_del_coin_handler" }

// Handle forwards spent coins to stats and returns at most one event for
// their total.
func (h *WalletDelCoinHandler) Handle(logs string) []model.Event {
	msgs := h.parser.Parse(logs)
	if h.stats != nil {
		h.stats.ConsumeWalletMessages(nil, msgs)
	}

	var total uint64
	for _, m := range msgs {
		log.Info().Uint64("mojos", m.AmountMojos).Msg("just sent mojos 💸")
		total += m.AmountMojos
	}
	return walletEvent(total, h.minMojosAmount, "sent", "Just sent %s XCH 💸")
}

// walletEvent applies the threshold to a pass total: strictly above the
// minimum yields one event, anything else none.
func walletEvent(total, minMojos uint64, verb, format string) []model.Event {
	if total > minMojos {
		return []model.Event{userEvent(model.PriorityLow, model.ServiceWallet, fmt.Sprintf(format, model.FormatXCH(total)))}
	}
	if total != 0 {
		log.Debug().Msgf("filtering out wallet notification: %d mojos %s is not more than the configured minimum of %d",
			total, verb, minMojos)
	}
	return nil
}
