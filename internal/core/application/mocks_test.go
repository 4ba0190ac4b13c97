package application_test

import (
	"context"
	"sync"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/stretchr/testify/mock"
	"github.com/tdex-network/slp-cli-wallet/internal/core/ports"
	"github.com/tdex-network/slp-cli-wallet/pkg/explorer"
)

// **** Explorer ****

type mockExplorer struct {
	mock.Mock
}

func (m *mockExplorer) GetBalance(
	ctx context.Context, addr string,
) (*explorer.Balance, error) {
	args := m.Called(ctx, addr)

	var res *explorer.Balance
	if a := args.Get(0); a != nil {
		res = a.(*explorer.Balance)
	}
	return res, args.Error(1)
}

func (m *mockExplorer) GetUnspents(
	ctx context.Context, addr string,
) ([]explorer.Utxo, error) {
	args := m.Called(ctx, addr)

	var res []explorer.Utxo
	if a := args.Get(0); a != nil {
		res = a.([]explorer.Utxo)
	}
	return res, args.Error(1)
}

func (m *mockExplorer) IsUnspent(
	ctx context.Context, txid string, vout uint32,
) (bool, error) {
	args := m.Called(ctx, txid, vout)
	return args.Bool(0), args.Error(1)
}

func (m *mockExplorer) GetTokenDetails(
	ctx context.Context, utxos []explorer.Utxo,
) ([]*explorer.TokenDetails, error) {
	args := m.Called(ctx, utxos)

	var res []*explorer.TokenDetails
	if a := args.Get(0); a != nil {
		res = a.([]*explorer.TokenDetails)
	}
	return res, args.Error(1)
}

func (m *mockExplorer) BroadcastTransaction(
	ctx context.Context, txhex string,
) (string, error) {
	args := m.Called(ctx, txhex)
	return args.String(0), args.Error(1)
}

// **** Key provider ****

// spyKeyProvider wraps a key provider and records which keys were asked.
type spyKeyProvider struct {
	ports.KeyProvider

	lock        sync.Mutex
	keysFetched []uint32
}

func (s *spyKeyProvider) PrivateKey(index uint32) (*btcec.PrivateKey, error) {
	s.lock.Lock()
	s.keysFetched = append(s.keysFetched, index)
	s.lock.Unlock()
	return s.KeyProvider.PrivateKey(index)
}
