package stats

import (
	"fmt"
	"time"

	"FarmSentinel/internal/model"
)

// WalletAddCoinStats totals mojos received by the wallet.
type WalletAddCoinStats struct {
	window
	totalAddedMojos uint64
}

// NewWalletAddCoinStats creates a new WalletAddCoinStats with its window
// starting at now.
func NewWalletAddCoinStats(now time.Time) *WalletAddCoinStats {
	return &WalletAddCoinStats{window: window{lastReset: now}}
}

func (s *WalletAddCoinStats) Name() string { return "wallet_add_coin" }

func (s *WalletAddCoinStats) Categories() []model.Category {
	return []model.Category{model.CategoryWalletAddCoin}
}

func (s *WalletAddCoinStats) Consume(msg model.Message) {
	if m, ok := msg.(model.WalletAddCoinMessage); ok {
		s.totalAddedMojos += m.AmountMojos
	}
}

func (s *WalletAddCoinStats) Summary() string {
	return fmt.Sprintf("Received 💰: %s XCH", model.FormatXCH(s.totalAddedMojos))
}

func (s *WalletAddCoinStats) Reset(now time.Time) {
	s.lastReset = now
	s.totalAddedMojos = 0
}

// WalletDelCoinStats totals mojos spent by the wallet.
type WalletDelCoinStats struct {
	window
	totalDeletedMojos uint64
}

// NewWalletDelCoinStats creates a new WalletDelCoinStats.
func NewWalletDelCoinStats(now time.Time) *WalletDelCoinStats {
	return &WalletDelCoinStats{window: window{lastReset: now}}
}

func (s *WalletDelCoinStats) Name() string { return "wallet_del_coin" }

func (s *WalletDelCoinStats) Categories() []model.Category {
	return []model.Category{model.CategoryWalletDelCoin}
}

func (s *WalletDelCoinStats) Consume(msg model.Message) {
	if m, ok := msg.(model.WalletDelCoinMessage); ok {
		s.totalDeletedMojos += m.AmountMojos
	}
}

func (s *WalletDelCoinStats) Summary() string {
	return fmt.Sprintf("Sent 💸: %s XCH", model.FormatXCH(s.totalDeletedMojos))
}

func (s *WalletDelCoinStats) Reset(now time.Time) {
	s.lastReset = now
	s.totalDeletedMojos = 0
}
