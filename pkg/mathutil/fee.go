package mathutil

import (
	"github.com/shopspring/decimal"
)

// DefaultFeeRate is the sats per byte rate used when none is configured.
var DefaultFeeRate = decimal.NewFromFloat(1.1)

// FeeForSize calculates the fee for a tx of the given size in bytes at the
// given rate (sats per byte), rounding up to the next satoshi.
func FeeForSize(sizeBytes int, satsPerByte decimal.Decimal) int64 {
	if sizeBytes <= 0 || !satsPerByte.IsPositive() {
		return 0
	}
	fee := satsPerByte.Mul(decimal.NewFromInt(int64(sizeBytes))).Ceil()
	return fee.IntPart()
}
