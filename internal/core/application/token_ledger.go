package application

import (
	"github.com/shopspring/decimal"
	"github.com/tdex-network/slp-cli-wallet/internal/core/domain"
	"github.com/tdex-network/slp-cli-wallet/pkg/mathutil"
	"github.com/tdex-network/slp-cli-wallet/pkg/slp"
)

// FilterByToken returns the wallet's utxos holding tokens of the given
// class. Mint batons are never returned.
func FilterByToken(tokenID string, w *domain.Wallet) ([]domain.TokenUtxo, error) {
	id, err := slp.NormalizeTokenID(tokenID)
	if err != nil {
		return nil, domain.NewError(domain.ErrProtocol, domain.StageLedger, err)
	}
	utxos := w.TokenUtxosOf(id)
	if len(utxos) <= 0 {
		return nil, domain.Errorf(
			domain.ErrValidation, domain.StageLedger,
			"no tokens of class %s in wallet", id,
		)
	}
	return utxos, nil
}

// ComputeBaseUnits converts a token quantity into the 16 hex chars
// (8 bytes big-endian) amount found in marker outputs.
func ComputeBaseUnits(qty decimal.Decimal, decimals int) (string, error) {
	units, err := baseUnits(qty, decimals)
	if err != nil {
		return "", err
	}
	return slp.FormatBaseUnits(units), nil
}

// SendAmounts returns the marker amounts to move qty tokens out of the
// given utxos: the sent amount first, then the change if any.
func SendAmounts(utxos []domain.TokenUtxo, qty decimal.Decimal) ([]uint64, error) {
	send, change, err := splitTokens(utxos, qty)
	if err != nil {
		return nil, err
	}
	if send == 0 {
		return nil, domain.Errorf(
			domain.ErrValidation, domain.StageLedger,
			"token quantity must be positive",
		)
	}
	if change > 0 {
		return []uint64{send, change}, nil
	}
	return []uint64{send}, nil
}

// BurnAmounts returns the marker amounts to destroy qty tokens: everything
// not burnt goes back to the wallet as a single, possibly zero, amount.
func BurnAmounts(utxos []domain.TokenUtxo, qty decimal.Decimal) ([]uint64, error) {
	burn, change, err := splitTokens(utxos, qty)
	if err != nil {
		return nil, err
	}
	if burn == 0 {
		return nil, domain.Errorf(
			domain.ErrValidation, domain.StageLedger,
			"token quantity must be positive",
		)
	}
	return []uint64{change}, nil
}

func splitTokens(
	utxos []domain.TokenUtxo, qty decimal.Decimal,
) (uint64, uint64, error) {
	if len(utxos) <= 0 {
		return 0, 0, domain.Errorf(
			domain.ErrValidation, domain.StageLedger, "no token utxos given",
		)
	}

	tokenID := utxos[0].TokenID
	decimals := utxos[0].Decimals
	total := decimal.Zero
	for _, u := range utxos {
		if u.TokenID != tokenID {
			return 0, 0, domain.Errorf(
				domain.ErrProtocol, domain.StageLedger,
				"utxos of token classes %s and %s can't be mixed",
				tokenID, u.TokenID,
			)
		}
		total = total.Add(u.Quantity)
	}

	totalUnits, err := baseUnits(total, decimals)
	if err != nil {
		return 0, 0, err
	}
	amount, err := baseUnits(qty, decimals)
	if err != nil {
		return 0, 0, err
	}
	if amount > totalUnits {
		return 0, 0, domain.Errorf(
			domain.ErrInsufficientFunds, domain.StageLedger,
			"requested %s tokens, available %s",
			qty.String(), total.String(),
		)
	}
	return amount, totalUnits - amount, nil
}

func baseUnits(qty decimal.Decimal, decimals int) (uint64, error) {
	if decimals < 0 || decimals > slp.MaxDecimals {
		return 0, domain.NewError(
			domain.ErrValidation, domain.StageLedger, slp.ErrInvalidDecimals,
		)
	}
	if qty.IsNegative() {
		return 0, domain.NewError(
			domain.ErrValidation, domain.StageLedger, mathutil.ErrNegativeAmount,
		)
	}
	units, err := slp.ToBaseUnits(qty, decimals)
	if err != nil {
		return 0, domain.NewError(domain.ErrValidation, domain.StageLedger, err)
	}
	return units, nil
}
