package dbbadger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v3"
	"github.com/tdex-network/slp-cli-wallet/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type walletRepositoryImpl struct {
	store *badgerhold.Store
}

func newWalletRepositoryImpl(store *badgerhold.Store) domain.WalletRepository {
	return walletRepositoryImpl{store}
}

func (r walletRepositoryImpl) AddWallet(
	ctx context.Context, wallet *domain.Wallet,
) error {
	if err := r.store.Insert(wallet.Name, *wallet); err != nil {
		if errors.Is(err, badgerhold.ErrKeyExists) {
			return domain.ErrWalletAlreadyExists
		}
		return err
	}
	return nil
}

func (r walletRepositoryImpl) GetWallet(
	ctx context.Context, name string,
) (*domain.Wallet, error) {
	var wallet domain.Wallet
	if err := r.store.Get(name, &wallet); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, err
	}
	return &wallet, nil
}

func (r walletRepositoryImpl) UpdateWallet(
	ctx context.Context,
	name string,
	updateFn func(w *domain.Wallet) (*domain.Wallet, error),
) error {
	return r.store.Badger().Update(func(tx *badger.Txn) error {
		var wallet domain.Wallet
		if err := r.store.TxGet(tx, name, &wallet); err != nil {
			if errors.Is(err, badgerhold.ErrNotFound) {
				return domain.ErrWalletNotFound
			}
			return err
		}

		updatedWallet, err := updateFn(&wallet)
		if err != nil {
			return err
		}
		return r.store.TxUpdate(tx, name, *updatedWallet)
	})
}

func (r walletRepositoryImpl) ListWallets(
	ctx context.Context,
) ([]*domain.Wallet, error) {
	var wallets []domain.Wallet
	if err := r.store.Find(&wallets, nil); err != nil {
		return nil, err
	}

	list := make([]*domain.Wallet, 0, len(wallets))
	for i := range wallets {
		list = append(list, &wallets[i])
	}
	return list, nil
}

func (r walletRepositoryImpl) DeleteWallet(ctx context.Context, name string) error {
	if err := r.store.Delete(name, domain.Wallet{}); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return domain.ErrWalletNotFound
		}
		return err
	}
	return nil
}
