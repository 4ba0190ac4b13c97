package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tdex-network/slp-cli-wallet/pkg/mathutil"
)

// AddressBalance is the balance of one derived address.
type AddressBalance struct {
	HDIndex         uint32 `json:"hdIndex"`
	Address         string `json:"address"`
	ConfirmedSats   int64  `json:"confirmedSats"`
	UnconfirmedSats int64  `json:"unconfirmedSats"`
	TxCount         int    `json:"txCount"`
}

// Utxo is a spendable BCH output owned by the wallet. HDIndex is required
// to re-derive the key that can spend it.
type Utxo struct {
	TxID          string `json:"txid"`
	VOut          uint32 `json:"vout"`
	ValueSats     int64  `json:"valueSats"`
	HDIndex       uint32 `json:"hdIndex"`
	Address       string `json:"address"`
	Confirmations int64  `json:"confirmations"`
}

// Key returns the "txid:vout" string identifying the utxo.
func (u Utxo) Key() string {
	return fmt.Sprintf("%s:%d", u.TxID, u.VOut)
}

// Value returns the value of the utxo in BCH.
func (u Utxo) Value() decimal.Decimal {
	return mathutil.SatsToBCH(u.ValueSats)
}

// TokenUtxo is a utxo carrying SLP tokens (or a mint baton).
type TokenUtxo struct {
	Utxo
	TokenID     string          `json:"tokenId"`
	TokenTicker string          `json:"tokenTicker"`
	TokenName   string          `json:"tokenName"`
	Decimals    int             `json:"decimals"`
	BaseUnits   uint64          `json:"baseUnits"`
	Quantity    decimal.Decimal `json:"tokenQty"`
	IsMintBaton bool            `json:"isMintBaton"`
}

// TokenBalance is the total quantity of one token class held by a wallet.
type TokenBalance struct {
	TokenID  string
	Ticker   string
	Name     string
	Decimals int
	Quantity decimal.Decimal
}

// SelectionResult is the output of the coin selector. An empty result
// means insufficient funds.
type SelectionResult struct {
	Utxo          *Utxo
	DisplayAmount decimal.Decimal
}

// Empty ...
func (r SelectionResult) Empty() bool {
	return r.Utxo == nil
}

// AssembledTransaction is a signed, serialized tx ready for broadcast.
type AssembledTransaction struct {
	RawHex    string
	TxID      string
	FeeSats   int64
	SizeBytes int
}
