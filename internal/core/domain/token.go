package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// TokenUtxosOf returns the utxos holding tokens of the given class,
// excluding mint batons.
func (w *Wallet) TokenUtxosOf(tokenID string) []TokenUtxo {
	utxos := make([]TokenUtxo, 0)
	for _, u := range w.TokenUtxos {
		if u.TokenID == tokenID && !u.IsMintBaton {
			utxos = append(utxos, u)
		}
	}
	return utxos
}

// TokenBalances sums the token utxos by token class, sorted by ticker and
// token id.
func (w *Wallet) TokenBalances() []TokenBalance {
	byToken := make(map[string]*TokenBalance)
	for _, u := range w.TokenUtxos {
		if u.IsMintBaton {
			continue
		}
		b, ok := byToken[u.TokenID]
		if !ok {
			b = &TokenBalance{
				TokenID:  u.TokenID,
				Ticker:   u.TokenTicker,
				Name:     u.TokenName,
				Decimals: u.Decimals,
				Quantity: decimal.Zero,
			}
			byToken[u.TokenID] = b
		}
		b.Quantity = b.Quantity.Add(u.Quantity)
	}

	balances := make([]TokenBalance, 0, len(byToken))
	for _, b := range byToken {
		balances = append(balances, *b)
	}
	sort.Slice(balances, func(i, j int) bool {
		if balances[i].Ticker != balances[j].Ticker {
			return balances[i].Ticker < balances[j].Ticker
		}
		return balances[i].TokenID < balances[j].TokenID
	})
	return balances
}
