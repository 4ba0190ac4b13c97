package application

import (
	"context"
	"sort"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/slp-cli-wallet/internal/core/domain"
	"github.com/tdex-network/slp-cli-wallet/pkg/explorer"
)

const (
	// DustLimitSats is the min value of a standard P2PKH output.
	DustLimitSats = int64(546)
	// FeeReserveSats is added to the target when picking a utxo so that the
	// selected one can also pay the fee.
	FeeReserveSats = int64(250)
)

// CoinSelector picks the utxos to spend.
type CoinSelector struct {
	explorer explorer.Service
}

// NewCoinSelector ...
func NewCoinSelector(explorerSvc explorer.Service) *CoinSelector {
	return &CoinSelector{explorerSvc}
}

// Select returns the smallest utxo worth at least targetSats plus the fee
// reserve that also leaves a non dust change. Using one input per payment
// avoids linking together addresses of the wallet.
//
// Candidates are checked against the full node in ascending order and the
// first one still unspent is returned. An empty result with nil error
// means no utxo is large enough.
func (s *CoinSelector) Select(
	ctx context.Context, targetSats int64, utxos []domain.Utxo,
) (domain.SelectionResult, error) {
	if targetSats < 0 {
		return domain.SelectionResult{}, domain.Errorf(
			domain.ErrValidation, domain.StageSelect,
			"target amount must not be negative, got %d", targetSats,
		)
	}

	required := targetSats + FeeReserveSats
	candidates := make([]domain.Utxo, 0)
	for _, u := range utxos {
		if u.ValueSats >= required && u.ValueSats-targetSats >= DustLimitSats {
			candidates = append(candidates, u)
		}
	}
	if len(candidates) <= 0 {
		return domain.SelectionResult{}, nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].ValueSats < candidates[j].ValueSats
	})

	for _, c := range candidates {
		unspent, err := s.explorer.IsUnspent(ctx, c.TxID, c.VOut)
		if err != nil {
			return domain.SelectionResult{}, domain.NewError(
				domain.ErrRetrieval, domain.StageSelect, err,
			)
		}
		if !unspent {
			log.WithField("utxo", c.Key()).Warn("skipping stale utxo")
			continue
		}

		selected := c
		return domain.SelectionResult{
			Utxo:          &selected,
			DisplayAmount: selected.Value(),
		}, nil
	}

	return domain.SelectionResult{}, domain.Errorf(
		domain.ErrStaleUtxo, domain.StageSelect,
		"all %d candidate utxos are already spent, refresh the wallet",
		len(candidates),
	)
}

// SelectAll returns every given utxo, used to consolidate or sweep funds.
func (s *CoinSelector) SelectAll(utxos []domain.Utxo) []domain.Utxo {
	return append(make([]domain.Utxo, 0, len(utxos)), utxos...)
}
