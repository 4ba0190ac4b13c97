package ports

import "github.com/btcsuite/btcd/btcec/v2"

// KeyProvider returns the spending key and the address for an HD index.
// Single-key providers ignore the index.
type KeyProvider interface {
	PrivateKey(hdIndex uint32) (*btcec.PrivateKey, error)
	Address(hdIndex uint32) (string, error)
}
