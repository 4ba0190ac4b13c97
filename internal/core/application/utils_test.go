package application_test

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/slp-cli-wallet/internal/core/domain"
	"github.com/tdex-network/slp-cli-wallet/pkg/explorer"
	"github.com/tdex-network/slp-cli-wallet/pkg/wallet"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

var testNetwork = &chaincfg.TestNet3Params

func newTestKeyring(t *testing.T) *wallet.Keyring {
	w, err := wallet.NewWalletFromMnemonic(wallet.NewWalletFromMnemonicOpts{
		Mnemonic: testMnemonic,
	})
	require.NoError(t, err)
	keyring, err := w.Keyring(wallet.KeyringOpts{
		CoinType: wallet.SlpCoinType,
		Network:  testNetwork,
	})
	require.NoError(t, err)
	return keyring
}

func addressAt(t *testing.T, keyring *wallet.Keyring, index uint32) string {
	addr, err := keyring.Address(index)
	require.NoError(t, err)
	return addr
}

func newTestWallet(t *testing.T, keyring *wallet.Keyring) *domain.Wallet {
	w, err := domain.NewWallet(
		"test", testMnemonic, domain.TestNet, wallet.SlpCoinType,
		addressAt(t, keyring, 0),
	)
	require.NoError(t, err)
	return w
}

func randomTxid() string {
	b := make([]byte, 32)
	//nolint
	rand.Read(b)
	return hex.EncodeToString(b)
}

func tokenID(n int) string {
	return fmt.Sprintf("%064x", n)
}

func makeUtxo(index uint32, value int64) domain.Utxo {
	return domain.Utxo{
		TxID:          randomTxid(),
		VOut:          0,
		ValueSats:     value,
		HDIndex:       index,
		Confirmations: 1,
	}
}

func makeTokenUtxo(
	index uint32, id string, qty string, decimals int,
) domain.TokenUtxo {
	return domain.TokenUtxo{
		Utxo:        makeUtxo(index, 546),
		TokenID:     id,
		TokenTicker: "TST",
		Decimals:    decimals,
		Quantity:    decimal.RequireFromString(qty),
	}
}

// mockEmptyAddresses makes every address not explicitly mocked unused.
func mockEmptyAddresses(m *mockExplorer) {
	m.On("GetBalance", mock.Anything, mock.Anything).
		Return(&explorer.Balance{}, nil)
}

func mockFundedAddress(m *mockExplorer, addr string, utxos ...explorer.Utxo) {
	total := int64(0)
	for _, u := range utxos {
		total += u.ValueSats
	}
	m.On("GetBalance", mock.Anything, addr).Return(&explorer.Balance{
		Address:       addr,
		ConfirmedSats: total,
		TxCount:       len(utxos),
	}, nil)
	m.On("GetUnspents", mock.Anything, addr).Return(utxos, nil)
}

func decodeTx(t *testing.T, txHex string) *wire.MsgTx {
	raw, err := hex.DecodeString(txHex)
	require.NoError(t, err)
	tx := wire.NewMsgTx(wire.TxVersion)
	require.NoError(t, tx.Deserialize(bytes.NewReader(raw)))
	return tx
}

// verifyInputSignature checks the scriptSig of the given input against the
// BCH sighash of the tx.
func verifyInputSignature(
	t *testing.T, tx *wire.MsgTx, inIndex int, prevOuts []*wire.TxOut,
) {
	pushes, err := txscript.PushedData(tx.TxIn[inIndex].SignatureScript)
	require.NoError(t, err)
	require.Len(t, pushes, 2)

	sigWithType := pushes[0]
	require.Equal(t, byte(wallet.SigHashAllForkID), sigWithType[len(sigWithType)-1])

	sig, err := ecdsa.ParseDERSignature(sigWithType[:len(sigWithType)-1])
	require.NoError(t, err)
	pubkey, err := btcec.ParsePubKey(pushes[1])
	require.NoError(t, err)

	fetcherMap := make(map[wire.OutPoint]*wire.TxOut)
	for i, in := range tx.TxIn {
		fetcherMap[in.PreviousOutPoint] = prevOuts[i]
	}
	sigHashes := txscript.NewTxSigHashes(tx, txscript.NewMultiPrevOutFetcher(fetcherMap))
	hash, err := wallet.CalcSignatureHash(tx, inIndex, prevOuts[inIndex], sigHashes)
	require.NoError(t, err)
	require.True(t, sig.Verify(hash, pubkey))
}
