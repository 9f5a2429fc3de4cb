package model

import "time"

// Category identifies which log line shape a message was extracted from.
type Category int

const (
	CategoryWalletAddCoin Category = iota + 1
	CategoryWalletDelCoin
	CategoryHarvesterActivity
	CategoryPartial
	CategoryBlock
	CategoryFinishedSignagePoint
)

func (c Category) String() string {
	switch c {
	case CategoryWalletAddCoin:
		return "wallet_add_coin"
	case CategoryWalletDelCoin:
		return "wallet_del_coin"
	case CategoryHarvesterActivity:
		return "harvester_activity"
	case CategoryPartial:
		return "partial"
	case CategoryBlock:
		return "block"
	case CategoryFinishedSignagePoint:
		return "finished_signage_point"
	default:
		return "unknown"
	}
}

// Message is a single structured record parsed from the node log.
type Message interface {
	Category() Category
	Time() time.Time
}

// WalletAddCoinMessage reports a coin received by the wallet.
type WalletAddCoinMessage struct {
	Timestamp   time.Time
	AmountMojos uint64
}

func (m WalletAddCoinMessage) Category() Category { return CategoryWalletAddCoin }
func (m WalletAddCoinMessage) Time() time.Time    { return m.Timestamp }

// WalletDelCoinMessage reports a coin spent by the wallet.
type WalletDelCoinMessage struct {
	Timestamp   time.Time
	AmountMojos uint64
}

func (m WalletDelCoinMessage) Category() Category { return CategoryWalletDelCoin }
func (m WalletDelCoinMessage) Time() time.Time    { return m.Timestamp }

// HarvesterActivityMessage is one plot lookup for a signage point challenge.
type HarvesterActivityMessage struct {
	Timestamp          time.Time
	EligiblePlotsCount int
	ChallengeHash      string
	FoundProofsCount   int
	SearchTimeSeconds  float64
	TotalPlotsCount    int
}

func (m HarvesterActivityMessage) Category() Category { return CategoryHarvesterActivity }
func (m HarvesterActivityMessage) Time() time.Time    { return m.Timestamp }

// PartialMessage is a partial proof submitted to a pool.
type PartialMessage struct {
	Timestamp  time.Time
	LauncherID string
	PoolURL    string
}

func (m PartialMessage) Category() Category { return CategoryPartial }
func (m PartialMessage) Time() time.Time    { return m.Timestamp }

// BlockMessage reports blocks farmed by this node.
type BlockMessage struct {
	Timestamp   time.Time
	BlocksCount int
}

func (m BlockMessage) Category() Category { return CategoryBlock }
func (m BlockMessage) Time() time.Time    { return m.Timestamp }

// FinishedSignagePointMessage is emitted by the full node for each of the
// 64 signage points of a sub-slot.
type FinishedSignagePointMessage struct {
	Timestamp    time.Time
	SignagePoint int
}

func (m FinishedSignagePointMessage) Category() Category { return CategoryFinishedSignagePoint }
func (m FinishedSignagePointMessage) Time() time.Time    { return m.Timestamp }
