package wallet

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

const (
	// SigHashForkID is the replay protection flag required by BCH.
	SigHashForkID txscript.SigHashType = 0x40
	// SigHashAllForkID is the sighash type every input is signed with.
	SigHashAllForkID = txscript.SigHashAll | SigHashForkID
)

// SignTransactionOpts is the struct given to SignTransaction method
type SignTransactionOpts struct {
	Tx *wire.MsgTx
	// PrevOuts and Keys are aligned with Tx.TxIn.
	PrevOuts []*wire.TxOut
	Keys     []*btcec.PrivateKey
	// UncompressedKeys marks which keys sign with their uncompressed pubkey.
	UncompressedKeys map[int]bool
}

func (o SignTransactionOpts) validate() error {
	if o.Tx == nil {
		return ErrNullTx
	}
	if len(o.Tx.TxIn) <= 0 {
		return ErrEmptyInputs
	}
	if len(o.PrevOuts) != len(o.Tx.TxIn) || len(o.Keys) != len(o.Tx.TxIn) {
		return ErrInvalidPrevoutsLength
	}
	for i := range o.Keys {
		if o.Keys[i] == nil || o.PrevOuts[i] == nil {
			return fmt.Errorf("missing key or prevout for input %d", i)
		}
	}
	return nil
}

// SignTransaction signs every input of the given tx in place with the
// BIP143 digest and SIGHASH_ALL|FORKID, as required by BCH.
func SignTransaction(opts SignTransactionOpts) error {
	if err := opts.validate(); err != nil {
		return err
	}

	prevOuts := make(map[wire.OutPoint]*wire.TxOut, len(opts.Tx.TxIn))
	for i, in := range opts.Tx.TxIn {
		prevOuts[in.PreviousOutPoint] = opts.PrevOuts[i]
	}
	sigHashes := txscript.NewTxSigHashes(
		opts.Tx, txscript.NewMultiPrevOutFetcher(prevOuts),
	)

	for i := range opts.Tx.TxIn {
		compressed := !opts.UncompressedKeys[i]
		if err := signInput(
			opts.Tx, i, opts.PrevOuts[i], sigHashes, opts.Keys[i], compressed,
		); err != nil {
			return err
		}
	}
	return nil
}

// CalcSignatureHash returns the digest signed for the given input.
func CalcSignatureHash(
	tx *wire.MsgTx, inIndex int, prevOut *wire.TxOut,
	sigHashes *txscript.TxSigHashes,
) ([]byte, error) {
	return txscript.CalcWitnessSigHash(
		prevOut.PkScript, sigHashes, SigHashAllForkID, tx, inIndex, prevOut.Value,
	)
}

func signInput(
	tx *wire.MsgTx, inIndex int, prevOut *wire.TxOut,
	sigHashes *txscript.TxSigHashes, prvkey *btcec.PrivateKey, compressed bool,
) error {
	pubkey := prvkey.PubKey().SerializeUncompressed()
	if compressed {
		pubkey = prvkey.PubKey().SerializeCompressed()
	}

	expectedScript, err := p2pkhScript(pubkey)
	if err != nil {
		return err
	}
	if !bytes.Equal(expectedScript, prevOut.PkScript) {
		return fmt.Errorf("input %d: %w", inIndex, ErrKeyScriptMismatch)
	}

	hashForSignature, err := CalcSignatureHash(tx, inIndex, prevOut, sigHashes)
	if err != nil {
		return err
	}

	signature := ecdsa.Sign(prvkey, hashForSignature)
	if !signature.Verify(hashForSignature, prvkey.PubKey()) {
		return fmt.Errorf(
			"signature verification failed for input %d",
			inIndex,
		)
	}

	sigWithSigHashType := append(signature.Serialize(), byte(SigHashAllForkID))
	scriptSig, err := txscript.NewScriptBuilder().
		AddData(sigWithSigHashType).
		AddData(pubkey).
		Script()
	if err != nil {
		return err
	}
	tx.TxIn[inIndex].SignatureScript = scriptSig
	return nil
}

func p2pkhScript(pubkey []byte) ([]byte, error) {
	return txscript.NewScriptBuilder().
		AddOp(txscript.OP_DUP).
		AddOp(txscript.OP_HASH160).
		AddData(btcutil.Hash160(pubkey)).
		AddOp(txscript.OP_EQUALVERIFY).
		AddOp(txscript.OP_CHECKSIG).
		Script()
}
