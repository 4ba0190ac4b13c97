package explorer

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Utxo is the canonical shape of an unspent output, produced at the
// indexer boundary regardless of the source format.
type Utxo struct {
	TxID          string `json:"txid"`
	VOut          uint32 `json:"vout"`
	ValueSats     int64  `json:"value"`
	Height        int64  `json:"height"`
	Confirmations int64  `json:"confirmations"`
	Address       string `json:"address,omitempty"`
}

// Key returns the "txid:vout" string identifying the utxo.
func (u Utxo) Key() string {
	return fmt.Sprintf("%s:%d", u.TxID, u.VOut)
}

// rawUtxo accepts the different shapes returned by blockbook and electrumx
// endpoints: amounts can be either strings or numbers and be named value or
// satoshis, the output index can be vout or tx_pos.
type rawUtxo struct {
	TxID          string      `json:"txid"`
	TxHash        string      `json:"tx_hash"`
	VOut          *uint32     `json:"vout"`
	TxPos         *uint32     `json:"tx_pos"`
	Value         json.Number `json:"value"`
	Satoshis      json.Number `json:"satoshis"`
	Height        int64       `json:"height"`
	Confirmations int64       `json:"confirmations"`
}

// UnmarshalJSON normalizes the raw indexer formats into Utxo.
func (u *Utxo) UnmarshalJSON(data []byte) error {
	var raw rawUtxo
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	u.TxID = raw.TxID
	if u.TxID == "" {
		u.TxID = raw.TxHash
	}
	if u.TxID == "" {
		return fmt.Errorf("%w: utxo without txid", ErrInvalidResponse)
	}

	switch {
	case raw.VOut != nil:
		u.VOut = *raw.VOut
	case raw.TxPos != nil:
		u.VOut = *raw.TxPos
	default:
		return fmt.Errorf("%w: utxo %s without output index", ErrInvalidResponse, u.TxID)
	}

	amount := raw.Satoshis
	if amount == "" {
		amount = raw.Value
	}
	value, err := parseSats(amount)
	if err != nil {
		return fmt.Errorf("%w: utxo %s: %s", ErrInvalidResponse, u.TxID, err)
	}
	u.ValueSats = value
	u.Height = raw.Height
	u.Confirmations = raw.Confirmations
	return nil
}

func parseSats(n json.Number) (int64, error) {
	if n == "" {
		return 0, fmt.Errorf("missing amount")
	}
	value, err := strconv.ParseInt(string(n), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("amount %q is not an integer number of sats", n)
	}
	if value < 0 {
		return 0, fmt.Errorf("negative amount %d", value)
	}
	return value, nil
}
