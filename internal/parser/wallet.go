package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"FarmSentinel/internal/model"
)

// walletCoinPattern builds the "request coin" pattern. Added and removed
// coins differ only in whether spent_height carries a height.
func walletCoinPattern(spentHeight string) *regexp.Regexp {
	return regexp.MustCompile(timestampPattern +
		` wallet ` + modulePrefix + `\.wallet\.wallet_node\s*: INFO\s*request coin: .*'?amount'?: ([0-9]+)(?:\s})?, ` +
		`\s*spent_height: ` + spentHeight + `, created_height: Some\(\d*\)`)
}

func parseMojos(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return v, nil
}

// WalletAddCoinParser extracts coins received by the wallet.
//
// Requires "log_level: INFO" in the chia config.yaml.
type WalletAddCoinParser struct {
	regex *regexp.Regexp
}

// NewWalletAddCoinParser creates a new WalletAddCoinParser.
func NewWalletAddCoinParser() *WalletAddCoinParser {
	return &WalletAddCoinParser{regex: walletCoinPattern(`None`)}
}

// Parse returns every coin received in logs, in log order.
func (p *WalletAddCoinParser) Parse(logs string) []model.WalletAddCoinMessage {
	return parseLines("wallet_add_coin", p.regex, logs, func(ts time.Time, g []string) (model.WalletAddCoinMessage, error) {
		mojos, err := parseMojos(g[2])
		if err != nil {
			return model.WalletAddCoinMessage{}, err
		}
		return model.WalletAddCoinMessage{Timestamp: ts, AmountMojos: mojos}, nil
	})
}

// WalletDelCoinParser extracts coins spent by the wallet.
type WalletDelCoinParser struct {
	regex *regexp.Regexp
}

// NewWalletDelCoinParser creates a new WalletDelCoinParser.
func NewWalletDelCoinParser() *WalletDelCoinParser {
	return &WalletDelCoinParser{regex: walletCoinPattern(`Some\(\d*\)`)}
}

// Parse returns every coin spent in logs, in log order.
func (p *WalletDelCoinParser) Parse(logs string) []model.WalletDelCoinMessage {
	return parseLines("wallet_del_coin", p.regex, logs, func(ts time.Time, g []string) (model.WalletDelCoinMessage, error) {
		mojos, err := parseMojos(g[2])
		if err != nil {
			return model.WalletDelCoinMessage{}, err
		}
		return model.WalletDelCoinMessage{Timestamp: ts, AmountMojos: mojos}, nil
	})
}
