package model

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// MojosPerXCH is the number of mojos in one XCH.
const MojosPerXCH = 1_000_000_000_000

// FormatXCH renders a mojo amount as XCH without trailing zeros,
// e.g. 1750000000000 -> "1.75".
func FormatXCH(mojos uint64) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(mojos), -12).String()
}
