package domain

import "context"

// WalletRepository persists wallet snapshots. Reads and writes replace
// whole snapshots, partial updates are not supported.
type WalletRepository interface {
	AddWallet(ctx context.Context, wallet *Wallet) error
	GetWallet(ctx context.Context, name string) (*Wallet, error)
	// UpdateWallet loads the wallet, passes it to updateFn and stores the
	// returned one. Nothing is stored if updateFn fails.
	UpdateWallet(
		ctx context.Context,
		name string,
		updateFn func(w *Wallet) (*Wallet, error),
	) error
	ListWallets(ctx context.Context) ([]*Wallet, error)
	DeleteWallet(ctx context.Context, name string) error
}
