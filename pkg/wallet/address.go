package wallet

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
)

// P2PKHAddress returns the legacy pay-to-pubkey-hash address of the
// compressed public key.
func P2PKHAddress(
	pubkey *btcec.PublicKey, net *chaincfg.Params,
) (*btcutil.AddressPubKeyHash, error) {
	if net == nil {
		return nil, ErrNullNetwork
	}
	return btcutil.NewAddressPubKeyHash(
		btcutil.Hash160(pubkey.SerializeCompressed()), net,
	)
}

// DecodeAddress parses a legacy p2pkh address and makes sure it belongs to
// the given network.
func DecodeAddress(
	addr string, net *chaincfg.Params,
) (*btcutil.AddressPubKeyHash, error) {
	if net == nil {
		return nil, ErrNullNetwork
	}
	decoded, err := btcutil.DecodeAddress(addr, net)
	if err != nil {
		return nil, ErrInvalidAddress
	}
	p2pkh, ok := decoded.(*btcutil.AddressPubKeyHash)
	if !ok {
		return nil, ErrInvalidAddress
	}
	if !p2pkh.IsForNet(net) {
		return nil, ErrInvalidAddressNetwork
	}
	return p2pkh, nil
}

// PayToAddrScript returns the output script paying to the given address.
func PayToAddrScript(addr string, net *chaincfg.Params) ([]byte, error) {
	decoded, err := DecodeAddress(addr, net)
	if err != nil {
		return nil, err
	}
	return txscript.PayToAddrScript(decoded)
}
