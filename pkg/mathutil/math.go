package mathutil

import (
	"errors"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

var (
	// ErrNegativeAmount ...
	ErrNegativeAmount = errors.New("amount must not be negative")
	// ErrAmountOverflow ...
	ErrAmountOverflow = errors.New("amount exceeds 64 bit range")
	// ErrTooManyDecimals ...
	ErrTooManyDecimals = errors.New("amount has more decimal places than allowed")

	maxUint64 = new(big.Int).SetUint64(math.MaxUint64)
)

// SatsToBCH returns the amount of sats expressed in BCH (8 decimals).
func SatsToBCH(sats int64) decimal.Decimal {
	return decimal.New(sats, -8)
}

// BCHToSats converts a BCH amount to sats. It fails if the amount is
// negative or has more than 8 decimal places.
func BCHToSats(amount decimal.Decimal) (int64, error) {
	units, err := ToBaseUnits(amount, 8)
	if err != nil {
		return 0, err
	}
	if units > math.MaxInt64 {
		return 0, ErrAmountOverflow
	}
	return int64(units), nil
}

// ToBaseUnits shifts the amount by the given precision and requires the
// result to be an integer fitting into 64 bits.
func ToBaseUnits(amount decimal.Decimal, precision int32) (uint64, error) {
	if amount.IsNegative() {
		return 0, ErrNegativeAmount
	}
	shifted := amount.Shift(precision)
	if !shifted.Equal(shifted.Truncate(0)) {
		return 0, ErrTooManyDecimals
	}
	return bigToUint64(shifted.BigInt())
}

// RoundToBaseUnits is like ToBaseUnits but rounds half away from zero to the
// nearest base unit instead of rejecting extra decimals.
func RoundToBaseUnits(amount decimal.Decimal, precision int32) (uint64, error) {
	if amount.IsNegative() {
		return 0, ErrNegativeAmount
	}
	return bigToUint64(amount.Shift(precision).Round(0).BigInt())
}

// FromBaseUnits is the inverse of ToBaseUnits.
func FromBaseUnits(units uint64, precision int32) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(units), -precision)
}

func bigToUint64(n *big.Int) (uint64, error) {
	if n.Sign() < 0 {
		return 0, ErrNegativeAmount
	}
	if n.Cmp(maxUint64) > 0 {
		return 0, ErrAmountOverflow
	}
	return n.Uint64(), nil
}
