package slp

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tdex-network/slp-cli-wallet/pkg/mathutil"
)

// ToBaseUnits converts a display quantity into token base units, rounding
// to the nearest unit.
func ToBaseUnits(qty decimal.Decimal, decimals int) (uint64, error) {
	if decimals < 0 || decimals > 255 {
		return 0, fmt.Errorf("decimals must be in range [0, 255], got %d", decimals)
	}
	return mathutil.RoundToBaseUnits(qty, int32(decimals))
}

// FromBaseUnits converts base units back into a display quantity.
func FromBaseUnits(units uint64, decimals int) decimal.Decimal {
	return mathutil.FromBaseUnits(units, int32(decimals))
}

// FormatBaseUnits returns the 16 hex chars, big-endian, zero-padded form of
// the given amount as it appears in a marker output.
func FormatBaseUnits(units uint64) string {
	return fmt.Sprintf("%016x", units)
}
