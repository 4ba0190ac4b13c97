package wallet

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
)

// SingleKey is a key provider backed by one imported WIF private key. The
// HD index argument of its methods is ignored.
type SingleKey struct {
	wif *btcutil.WIF
	net *chaincfg.Params
}

// NewSingleKey decodes the given WIF string and checks it was encoded for
// the given network.
func NewSingleKey(wifStr string, net *chaincfg.Params) (*SingleKey, error) {
	if net == nil {
		return nil, ErrNullNetwork
	}
	wif, err := btcutil.DecodeWIF(wifStr)
	if err != nil {
		return nil, ErrInvalidWIF
	}
	if !wif.IsForNet(net) {
		return nil, ErrInvalidAddressNetwork
	}
	return &SingleKey{wif, net}, nil
}

// PrivateKey ...
func (s *SingleKey) PrivateKey(uint32) (*btcec.PrivateKey, error) {
	return s.wif.PrivKey, nil
}

// Address returns the p2pkh address of the key, compressed or not
// depending on how the WIF was encoded.
func (s *SingleKey) Address(uint32) (string, error) {
	pubkey := s.wif.SerializePubKey()
	addr, err := btcutil.NewAddressPubKeyHash(btcutil.Hash160(pubkey), s.net)
	if err != nil {
		return "", err
	}
	return addr.EncodeAddress(), nil
}

// Compressed returns whether the key signs with its compressed pubkey.
func (s *SingleKey) Compressed() bool {
	return s.wif.CompressPubKey
}
