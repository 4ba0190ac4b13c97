package inmemory

import (
	"context"
	"sort"
	"sync"

	"github.com/tdex-network/slp-cli-wallet/internal/core/domain"
)

// WalletRepositoryImpl keeps wallet snapshots in memory. Wallets are
// stored and returned as copies, so that callers can't mutate the stored
// ones.
type WalletRepositoryImpl struct {
	wallets map[string]*domain.Wallet
	lock    *sync.RWMutex
}

// NewWalletRepositoryImpl ...
func NewWalletRepositoryImpl() domain.WalletRepository {
	return &WalletRepositoryImpl{
		wallets: make(map[string]*domain.Wallet),
		lock:    &sync.RWMutex{},
	}
}

func (r *WalletRepositoryImpl) AddWallet(
	_ context.Context, wallet *domain.Wallet,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.wallets[wallet.Name]; ok {
		return domain.ErrWalletAlreadyExists
	}
	r.wallets[wallet.Name] = wallet.Copy()
	return nil
}

func (r *WalletRepositoryImpl) GetWallet(
	_ context.Context, name string,
) (*domain.Wallet, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	wallet, ok := r.wallets[name]
	if !ok {
		return nil, domain.ErrWalletNotFound
	}
	return wallet.Copy(), nil
}

func (r *WalletRepositoryImpl) UpdateWallet(
	_ context.Context,
	name string,
	updateFn func(w *domain.Wallet) (*domain.Wallet, error),
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	wallet, ok := r.wallets[name]
	if !ok {
		return domain.ErrWalletNotFound
	}

	updatedWallet, err := updateFn(wallet.Copy())
	if err != nil {
		return err
	}
	r.wallets[name] = updatedWallet.Copy()
	return nil
}

func (r *WalletRepositoryImpl) ListWallets(
	_ context.Context,
) ([]*domain.Wallet, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	wallets := make([]*domain.Wallet, 0, len(r.wallets))
	for _, w := range r.wallets {
		wallets = append(wallets, w.Copy())
	}
	sort.Slice(wallets, func(i, j int) bool {
		return wallets[i].Name < wallets[j].Name
	})
	return wallets, nil
}

func (r *WalletRepositoryImpl) DeleteWallet(_ context.Context, name string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.wallets[name]; !ok {
		return domain.ErrWalletNotFound
	}
	delete(r.wallets, name)
	return nil
}
