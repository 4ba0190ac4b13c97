package wallet

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"
)

func TestSignTransaction(t *testing.T) {
	w := newTestWallet(t)
	keyring, err := w.Keyring(KeyringOpts{
		CoinType: SlpCoinType,
		Network:  &chaincfg.MainNetParams,
	})
	require.NoError(t, err)

	key0, err := keyring.PrivateKey(0)
	require.NoError(t, err)
	key5, err := keyring.PrivateKey(5)
	require.NoError(t, err)
	addr0, _ := keyring.Address(0)
	addr5, _ := keyring.Address(5)
	script0, err := PayToAddrScript(addr0, &chaincfg.MainNetParams)
	require.NoError(t, err)
	script5, err := PayToAddrScript(addr5, &chaincfg.MainNetParams)
	require.NoError(t, err)

	tx := wire.NewMsgTx(2)
	tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&chainhash.Hash{1}, 0), nil, nil))
	tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&chainhash.Hash{2}, 3), nil, nil))
	tx.AddTxOut(wire.NewTxOut(15000, script0))

	prevOuts := []*wire.TxOut{
		wire.NewTxOut(10000, script0),
		wire.NewTxOut(6000, script5),
	}
	err = SignTransaction(SignTransactionOpts{
		Tx:       tx,
		PrevOuts: prevOuts,
		Keys:     []*btcec.PrivateKey{key0, key5},
	})
	require.NoError(t, err)

	fetcher := txscript.NewMultiPrevOutFetcher(map[wire.OutPoint]*wire.TxOut{
		tx.TxIn[0].PreviousOutPoint: prevOuts[0],
		tx.TxIn[1].PreviousOutPoint: prevOuts[1],
	})
	sigHashes := txscript.NewTxSigHashes(tx, fetcher)

	for i, in := range tx.TxIn {
		pushes, err := txscript.PushedData(in.SignatureScript)
		require.NoError(t, err)
		require.Len(t, pushes, 2)

		sigBytes := pushes[0]
		require.Equal(t, byte(SigHashAllForkID), sigBytes[len(sigBytes)-1])
		sig, err := ecdsa.ParseDERSignature(sigBytes[:len(sigBytes)-1])
		require.NoError(t, err)

		hash, err := CalcSignatureHash(tx, i, prevOuts[i], sigHashes)
		require.NoError(t, err)
		key := []*btcec.PrivateKey{key0, key5}[i]
		require.True(t, sig.Verify(hash, key.PubKey()))
		require.Equal(t, key.PubKey().SerializeCompressed(), pushes[1])
	}
}

func TestSignTransactionFails(t *testing.T) {
	w := newTestWallet(t)
	keyring, err := w.Keyring(KeyringOpts{
		CoinType: SlpCoinType,
		Network:  &chaincfg.MainNetParams,
	})
	require.NoError(t, err)
	key0, _ := keyring.PrivateKey(0)
	addr1, _ := keyring.Address(1)
	script1, _ := PayToAddrScript(addr1, &chaincfg.MainNetParams)

	tx := wire.NewMsgTx(2)
	tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&chainhash.Hash{1}, 0), nil, nil))

	err = SignTransaction(SignTransactionOpts{
		Tx:       tx,
		PrevOuts: []*wire.TxOut{wire.NewTxOut(1000, script1)},
		Keys:     []*btcec.PrivateKey{key0},
	})
	require.ErrorIs(t, err, ErrKeyScriptMismatch)

	err = SignTransaction(SignTransactionOpts{
		Tx:       tx,
		PrevOuts: []*wire.TxOut{},
		Keys:     []*btcec.PrivateKey{key0},
	})
	require.ErrorIs(t, err, ErrInvalidPrevoutsLength)

	err = SignTransaction(SignTransactionOpts{Tx: wire.NewMsgTx(2)})
	require.ErrorIs(t, err, ErrEmptyInputs)
}

// TestForkIDSignatureHash checks the digest against a BIP143 preimage with
// sighash type SIGHASH_ALL|FORKID serialized field by field.
func TestForkIDSignatureHash(t *testing.T) {
	p2pkh := func(b byte) []byte {
		script := []byte{txscript.OP_DUP, txscript.OP_HASH160, txscript.OP_DATA_20}
		script = append(script, bytes.Repeat([]byte{b}, 20)...)
		return append(script, txscript.OP_EQUALVERIFY, txscript.OP_CHECKSIG)
	}
	var hash1, hash2 chainhash.Hash
	copy(hash1[:], bytes.Repeat([]byte{0x01}, 32))
	copy(hash2[:], bytes.Repeat([]byte{0x02}, 32))

	tx := wire.NewMsgTx(1)
	tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&hash1, 1), nil, nil))
	signed := wire.NewTxIn(wire.NewOutPoint(&hash2, 0), nil, nil)
	signed.Sequence = 0xfffffffe
	tx.AddTxIn(signed)
	tx.AddTxOut(wire.NewTxOut(10000, p2pkh(0x11)))
	tx.AddTxOut(wire.NewTxOut(2345, p2pkh(0x22)))

	prevOuts := map[wire.OutPoint]*wire.TxOut{
		tx.TxIn[0].PreviousOutPoint: wire.NewTxOut(20000, p2pkh(0x44)),
		tx.TxIn[1].PreviousOutPoint: wire.NewTxOut(50000, p2pkh(0x33)),
	}
	sigHashes := txscript.NewTxSigHashes(tx, txscript.NewMultiPrevOutFetcher(prevOuts))

	le32 := func(v uint32) []byte {
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b, v)
		return b
	}
	le64 := func(v int64) []byte {
		b := make([]byte, 8)
		binary.LittleEndian.PutUint64(b, uint64(v))
		return b
	}

	var prevouts, sequences, outputs bytes.Buffer
	for _, in := range tx.TxIn {
		prevouts.Write(in.PreviousOutPoint.Hash[:])
		prevouts.Write(le32(in.PreviousOutPoint.Index))
		sequences.Write(le32(in.Sequence))
	}
	for _, out := range tx.TxOut {
		outputs.Write(le64(out.Value))
		outputs.WriteByte(byte(len(out.PkScript)))
		outputs.Write(out.PkScript)
	}
	hashPrevouts := chainhash.DoubleHashB(prevouts.Bytes())
	hashSequence := chainhash.DoubleHashB(sequences.Bytes())
	hashOutputs := chainhash.DoubleHashB(outputs.Bytes())
	require.Equal(t,
		"e87ce227ebcecb5ddb7c1c71131ac8e7fdb8b15cc2b496e761dabd3ee01e4314",
		hex.EncodeToString(hashPrevouts),
	)
	require.Equal(t,
		"9a9ce82897468e42685eb3e0d509dd5039530c4bcc11e453fd5eda5ca5c9490d",
		hex.EncodeToString(hashSequence),
	)
	require.Equal(t,
		"b9f7d0e6cfb77021e193ded6e1b2ccb3d1c559c80faaa8d00f0d9d448cf9dbd1",
		hex.EncodeToString(hashOutputs),
	)

	prevOut := prevOuts[tx.TxIn[1].PreviousOutPoint]
	var preimage bytes.Buffer
	preimage.Write(le32(uint32(tx.Version)))
	preimage.Write(hashPrevouts)
	preimage.Write(hashSequence)
	preimage.Write(tx.TxIn[1].PreviousOutPoint.Hash[:])
	preimage.Write(le32(tx.TxIn[1].PreviousOutPoint.Index))
	preimage.WriteByte(byte(len(prevOut.PkScript)))
	preimage.Write(prevOut.PkScript)
	preimage.Write(le64(prevOut.Value))
	preimage.Write(le32(tx.TxIn[1].Sequence))
	preimage.Write(hashOutputs)
	preimage.Write(le32(tx.LockTime))
	preimage.Write([]byte{0x41, 0x00, 0x00, 0x00})
	require.Equal(t, 182, preimage.Len())

	expected := "403251c4654a74d3378841a9a56044b3d02cef1ace69783c06a0cebc7fb728d8"
	require.Equal(t, expected, hex.EncodeToString(chainhash.DoubleHashB(preimage.Bytes())))

	digest, err := CalcSignatureHash(tx, 1, prevOut, sigHashes)
	require.NoError(t, err)
	require.Equal(t, expected, hex.EncodeToString(digest))
	require.Equal(t, byte(0x41), byte(SigHashAllForkID))
}
