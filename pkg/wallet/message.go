package wallet

import (
	"bytes"
	"encoding/base64"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

const messageMagic = "Bitcoin Signed Message:\n"

// SignMessage returns the base64 compact signature of the message, in the
// format understood by bitcoin signed message verifiers.
func SignMessage(key *btcec.PrivateKey, message string) (string, error) {
	if len(message) <= 0 {
		return "", ErrNullMessage
	}
	hash, err := messageHash(message)
	if err != nil {
		return "", err
	}
	sig, err := ecdsa.SignCompact(key, hash, true)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(sig), nil
}

// VerifyMessage returns whether the signature of the message was produced
// by the key of the given p2pkh address.
func VerifyMessage(
	addr, signature, message string, net *chaincfg.Params,
) (bool, error) {
	decodedAddr, err := DecodeAddress(addr, net)
	if err != nil {
		return false, err
	}
	sig, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false, err
	}
	hash, err := messageHash(message)
	if err != nil {
		return false, err
	}

	pubkey, compressed, err := ecdsa.RecoverCompact(sig, hash)
	if err != nil {
		return false, err
	}
	serialized := pubkey.SerializeUncompressed()
	if compressed {
		serialized = pubkey.SerializeCompressed()
	}
	return bytes.Equal(btcutil.Hash160(serialized), decodedAddr.Hash160()[:]), nil
}

func messageHash(message string) ([]byte, error) {
	var buf bytes.Buffer
	if err := wire.WriteVarString(&buf, 0, messageMagic); err != nil {
		return nil, err
	}
	if err := wire.WriteVarString(&buf, 0, message); err != nil {
		return nil, err
	}
	return chainhash.DoubleHashB(buf.Bytes()), nil
}
