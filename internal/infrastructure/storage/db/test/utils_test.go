package db_test

import (
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/slp-cli-wallet/internal/core/domain"
)

func makeWallet(t *testing.T, name string) *domain.Wallet {
	w, err := domain.NewWallet(
		name, mnemonic, domain.TestNet, domain.DefaultDerivationAccount,
		"mipcBbFg9gMiCh81Kj8tqqdgoZub1ZJRfn",
	)
	require.NoError(t, err)
	return w
}

func randomHex(len int) string {
	return hex.EncodeToString(randomBytes(len))
}

func randomBytes(len int) []byte {
	b := make([]byte, len)
	//nolint
	rand.Read(b)
	return b
}
