package application_test

import (
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/slp-cli-wallet/internal/core/application"
	"github.com/tdex-network/slp-cli-wallet/internal/core/domain"
	"github.com/tdex-network/slp-cli-wallet/pkg/slp"
)

func TestComputeBaseUnits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		qty      string
		decimals int
		expected string
	}{
		{"1", 8, "0000000005f5e100"},
		{"6", 8, "0000000023c34600"},
		{"1234.56789", 5, "00000000075bcd15"},
		{"0", 2, "0000000000000000"},
		{"0.5", 0, "0000000000000001"},
		{"0.004", 2, "0000000000000000"},
		{"18446744073709551615", 0, "ffffffffffffffff"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.qty, func(t *testing.T) {
			t.Parallel()

			qty := decimal.RequireFromString(tt.qty)
			hexUnits, err := application.ComputeBaseUnits(qty, tt.decimals)
			require.NoError(t, err)
			require.Len(t, hexUnits, 16)
			require.Equal(t, tt.expected, hexUnits)

			units, err := strconv.ParseUint(hexUnits, 16, 64)
			require.NoError(t, err)
			roundTrip := slp.FromBaseUnits(units, tt.decimals)
			require.True(t, roundTrip.Equal(qty.Round(int32(tt.decimals))))
		})
	}
}

func TestFailingComputeBaseUnits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		qty      string
		decimals int
	}{
		{"negative", "-1", 2},
		{"overflow", "18446744073709551616", 0},
		{"too many decimals", "1", 10},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := application.ComputeBaseUnits(
				decimal.RequireFromString(tt.qty), tt.decimals,
			)
			require.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestFilterByToken(t *testing.T) {
	t.Parallel()

	idA, idB := tokenID(1), tokenID(2)
	baton := makeTokenUtxo(3, idA, "0", 2)
	baton.IsMintBaton = true
	w := &domain.Wallet{
		TokenUtxos: []domain.TokenUtxo{
			makeTokenUtxo(0, idA, "1.5", 2),
			makeTokenUtxo(1, idB, "10", 0),
			makeTokenUtxo(2, idA, "2.25", 2),
			baton,
		},
	}

	utxosA, err := application.FilterByToken(idA, w)
	require.NoError(t, err)
	require.Len(t, utxosA, 2)
	utxosB, err := application.FilterByToken(idB, w)
	require.NoError(t, err)
	require.Len(t, utxosB, 1)

	// filtering partitions the non baton utxos
	total := decimal.Zero
	for _, u := range append(utxosA, utxosB...) {
		total = total.Add(u.Quantity)
	}
	expectedTotal := decimal.Zero
	for _, b := range w.TokenBalances() {
		expectedTotal = expectedTotal.Add(b.Quantity)
	}
	require.True(t, expectedTotal.Equal(total))

	_, err = application.FilterByToken(tokenID(3), w)
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = application.FilterByToken("not-a-token", w)
	require.ErrorIs(t, err, domain.ErrProtocol)
}

func TestTokenAmounts(t *testing.T) {
	t.Parallel()

	id := tokenID(1)
	utxos := []domain.TokenUtxo{
		makeTokenUtxo(0, id, "4", 8),
		makeTokenUtxo(1, id, "3", 8),
	}

	amounts, err := application.SendAmounts(utxos, decimal.RequireFromString("2.5"))
	require.NoError(t, err)
	require.Equal(t, []uint64{250000000, 450000000}, amounts)

	amounts, err = application.SendAmounts(utxos, decimal.NewFromInt(7))
	require.NoError(t, err)
	require.Equal(t, []uint64{700000000}, amounts)

	amounts, err = application.BurnAmounts(utxos, decimal.NewFromInt(1))
	require.NoError(t, err)
	require.Equal(t, []uint64{600000000}, amounts)

	amounts, err = application.BurnAmounts(utxos, decimal.NewFromInt(7))
	require.NoError(t, err)
	require.Equal(t, []uint64{0}, amounts)

	_, err = application.SendAmounts(utxos, decimal.NewFromInt(8))
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	_, err = application.BurnAmounts(utxos, decimal.Zero)
	require.ErrorIs(t, err, domain.ErrValidation)

	mixed := append(utxos, makeTokenUtxo(2, tokenID(2), "1", 8))
	_, err = application.SendAmounts(mixed, decimal.NewFromInt(1))
	require.ErrorIs(t, err, domain.ErrProtocol)
}
