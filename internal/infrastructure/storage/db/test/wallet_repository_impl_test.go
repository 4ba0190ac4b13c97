package db_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/dgraph-io/badger/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/slp-cli-wallet/internal/core/domain"
	dbbadger "github.com/tdex-network/slp-cli-wallet/internal/infrastructure/storage/db/badger"
	"github.com/tdex-network/slp-cli-wallet/internal/infrastructure/storage/db/inmemory"
)

const mnemonic = "leave dice fine decrease dune ribbon ocean earn lunar account silver admit"

var ctx = context.Background()

type walletRepository struct {
	Name       string
	Repository domain.WalletRepository
}

func TestWalletRepositoryImplementations(t *testing.T) {
	repositories := createWalletRepositories(t)

	for i := range repositories {
		repo := repositories[i]

		t.Run(repo.Name, func(t *testing.T) {
			t.Parallel()

			t.Run("testAddAndGetWallet", func(t *testing.T) {
				t.Parallel()
				testAddAndGetWallet(t, repo.Repository)
			})

			t.Run("testUpdateWallet", func(t *testing.T) {
				t.Parallel()
				testUpdateWallet(t, repo.Repository)
			})

			t.Run("testUpdateWalletRollback", func(t *testing.T) {
				t.Parallel()
				testUpdateWalletRollback(t, repo.Repository)
			})

			t.Run("testConcurrentUpdates", func(t *testing.T) {
				t.Parallel()
				testConcurrentUpdates(t, repo.Repository)
			})

			t.Run("testListAndDeleteWallets", func(t *testing.T) {
				t.Parallel()
				testListAndDeleteWallets(t, repo.Repository)
			})
		})
	}
}

func testAddAndGetWallet(t *testing.T, repo domain.WalletRepository) {
	w := makeWallet(t, "add-get")
	w.TokenUtxos = append(w.TokenUtxos, domain.TokenUtxo{
		Utxo:     domain.Utxo{TxID: randomHex(32), VOut: 1, ValueSats: 546},
		TokenID:  randomHex(32),
		Decimals: 2,
		Quantity: decimal.RequireFromString("12.34"),
	})

	err := repo.AddWallet(ctx, w)
	require.NoError(t, err)

	err = repo.AddWallet(ctx, w)
	require.ErrorIs(t, err, domain.ErrWalletAlreadyExists)

	stored, err := repo.GetWallet(ctx, w.Name)
	require.NoError(t, err)
	require.Equal(t, w.Mnemonic, stored.Mnemonic)
	require.Equal(t, w.NextAddressIndex, stored.NextAddressIndex)
	require.Len(t, stored.TokenUtxos, 1)
	require.Equal(t, "12.34", stored.TokenUtxos[0].Quantity.String())
	require.Equal(t, w.TokenUtxos[0].TxID, stored.TokenUtxos[0].TxID)

	_, err = repo.GetWallet(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrWalletNotFound)
}

func testUpdateWallet(t *testing.T, repo domain.WalletRepository) {
	w := makeWallet(t, "update")
	require.NoError(t, repo.AddWallet(ctx, w))

	err := repo.UpdateWallet(
		ctx, w.Name, func(w *domain.Wallet) (*domain.Wallet, error) {
			w.AllocateAddressIndex()
			w.BalanceSats = 20000
			return w, nil
		},
	)
	require.NoError(t, err)

	stored, err := repo.GetWallet(ctx, w.Name)
	require.NoError(t, err)
	require.Equal(t, uint32(2), stored.NextAddressIndex)
	require.Equal(t, int64(20000), stored.BalanceSats)

	err = repo.UpdateWallet(
		ctx, "missing", func(w *domain.Wallet) (*domain.Wallet, error) {
			return w, nil
		},
	)
	require.ErrorIs(t, err, domain.ErrWalletNotFound)
}

func testUpdateWalletRollback(t *testing.T, repo domain.WalletRepository) {
	w := makeWallet(t, "rollback")
	require.NoError(t, repo.AddWallet(ctx, w))

	failure := errors.New("something went wrong")
	err := repo.UpdateWallet(
		ctx, w.Name, func(w *domain.Wallet) (*domain.Wallet, error) {
			w.AllocateAddressIndex()
			return nil, failure
		},
	)
	require.ErrorIs(t, err, failure)

	stored, err := repo.GetWallet(ctx, w.Name)
	require.NoError(t, err)
	require.Equal(t, uint32(1), stored.NextAddressIndex)
}

func testConcurrentUpdates(t *testing.T, repo domain.WalletRepository) {
	w := makeWallet(t, "concurrent")
	require.NoError(t, repo.AddWallet(ctx, w))

	wg := &sync.WaitGroup{}
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				err := repo.UpdateWallet(
					ctx, w.Name, func(w *domain.Wallet) (*domain.Wallet, error) {
						w.AllocateAddressIndex()
						return w, nil
					},
				)
				// badger reports conflicting txs, the caller is expected to retry.
				if errors.Is(err, badger.ErrConflict) {
					continue
				}
				errs <- err
				return
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	stored, err := repo.GetWallet(ctx, w.Name)
	require.NoError(t, err)
	require.Equal(t, uint32(11), stored.NextAddressIndex)
}

func testListAndDeleteWallets(t *testing.T, repo domain.WalletRepository) {
	names := []string{"list-a", "list-b", "list-c"}
	for _, name := range names {
		require.NoError(t, repo.AddWallet(ctx, makeWallet(t, name)))
	}

	wallets, err := repo.ListWallets(ctx)
	require.NoError(t, err)
	found := make(map[string]bool)
	for _, w := range wallets {
		found[w.Name] = true
	}
	for _, name := range names {
		require.True(t, found[name], fmt.Sprintf("missing wallet %s", name))
	}

	require.NoError(t, repo.DeleteWallet(ctx, "list-b"))
	require.ErrorIs(t, repo.DeleteWallet(ctx, "list-b"), domain.ErrWalletNotFound)

	_, err = repo.GetWallet(ctx, "list-b")
	require.ErrorIs(t, err, domain.ErrWalletNotFound)
}

func createWalletRepositories(t *testing.T) []walletRepository {
	badgerRepoManager, err := dbbadger.NewRepoManager(t.TempDir(), nil)
	require.NoError(t, err)
	inMemoryBadgerRepoManager, err := dbbadger.NewRepoManager("", nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		badgerRepoManager.Close()
		inMemoryBadgerRepoManager.Close()
	})

	return []walletRepository{
		{
			Name:       "badger",
			Repository: badgerRepoManager.WalletRepository(),
		},
		{
			Name:       "badger-inmemory",
			Repository: inMemoryBadgerRepoManager.WalletRepository(),
		},
		{
			Name:       "inmemory",
			Repository: inmemory.NewWalletRepositoryImpl(),
		},
	}
}
