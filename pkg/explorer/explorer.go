package explorer

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrBroadcast is returned when the node rejects a transaction.
	ErrBroadcast = errors.New("transaction rejected")
	// ErrUnexpectedStatus is returned for any non 2xx response.
	ErrUnexpectedStatus = errors.New("unexpected response status")
	// ErrInvalidResponse is returned when a response body can't be decoded.
	ErrInvalidResponse = errors.New("invalid response")
	// ErrTooManyAddresses ...
	ErrTooManyAddresses = errors.New("too many items in a single request")
)

// MaxItemsPerRequest is the max number of addresses or txids the REST API
// accepts in a single bulk request.
const MaxItemsPerRequest = 20

// Balance of an address as returned by the indexer.
type Balance struct {
	Address         string
	ConfirmedSats   int64
	UnconfirmedSats int64
	TxCount         int
}

// HasActivity returns whether the address has ever been used.
func (b Balance) HasActivity() bool {
	return b.ConfirmedSats != 0 || b.UnconfirmedSats != 0 || b.TxCount > 0
}

// TokenDetails is the token classification of a utxo.
type TokenDetails struct {
	TokenID  string
	TxType   string
	Ticker   string
	Name     string
	Decimals int
	// BaseUnits is the raw amount, Quantity the amount in display units.
	BaseUnits uint64
	Quantity  decimal.Decimal
	// IsMintBaton marks outputs carrying the mint baton (no quantity).
	IsMintBaton bool
}

// Service is the representation of the indexer and full node REST API the
// wallet talks to: it allows to fetch balances and utxos of addresses, to
// classify utxos as token ones and to broadcast transactions.
type Service interface {
	// GetBalance returns confirmed/unconfirmed balance and the number of
	// txs of the given address.
	GetBalance(ctx context.Context, addr string) (*Balance, error)
	// GetUnspents returns the utxos of the given address in canonical form.
	GetUnspents(ctx context.Context, addr string) ([]Utxo, error)
	// IsUnspent asks the full node whether the given outpoint is still
	// unspent, mempool included.
	IsUnspent(ctx context.Context, txid string, vout uint32) (bool, error)
	// GetTokenDetails classifies the given utxos. The returned slice is
	// aligned with the input one, nil items are plain BCH utxos.
	GetTokenDetails(ctx context.Context, utxos []Utxo) ([]*TokenDetails, error)
	// BroadcastTransaction attempts to add the given tx in hex format to the
	// mempool and returns its tx hash.
	BroadcastTransaction(ctx context.Context, txhex string) (string, error)
}
