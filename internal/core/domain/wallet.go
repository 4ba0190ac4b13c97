package domain

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// MainNet ...
	MainNet = "mainnet"
	// TestNet ...
	TestNet = "testnet"

	// DefaultDerivationAccount is the SLP coin type (m/44'/245').
	DefaultDerivationAccount = uint32(245)
)

var walletNameRegexp = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Wallet is the snapshot of an HD wallet: its seed, the derivation settings
// and the funds discovered during the last refresh. NextAddressIndex never
// decreases, addresses are never handed out twice.
type Wallet struct {
	Name                 string           `json:"name"`
	Mnemonic             string           `json:"mnemonic"`
	Network              string           `json:"network"`
	DerivationAccount    uint32           `json:"derivation"`
	NextAddressIndex     uint32           `json:"nextAddress"`
	RootAddress          string           `json:"rootAddress"`
	AddressesWithBalance []AddressBalance `json:"hasBalance"`
	BaseUtxos            []Utxo           `json:"bchUtxos"`
	TokenUtxos           []TokenUtxo      `json:"slpUtxos"`
	BalanceSats          int64            `json:"balance"`
	UnconfirmedSats      int64            `json:"unconfirmedBalance"`
	CreatedAt            int64            `json:"createdAt"`
	UpdatedAt            int64            `json:"updatedAt"`
}

// NewWallet returns a wallet with no funds whose root address (index 0)
// has already been handed out.
func NewWallet(
	name, mnemonic, network string, derivationAccount uint32, rootAddress string,
) (*Wallet, error) {
	if err := ValidateWalletName(name); err != nil {
		return nil, err
	}
	if len(mnemonic) <= 0 {
		return nil, ErrNullMnemonic
	}
	if network != MainNet && network != TestNet {
		return nil, ErrInvalidNetwork
	}

	now := time.Now().Unix()
	return &Wallet{
		Name:                 name,
		Mnemonic:             mnemonic,
		Network:              network,
		DerivationAccount:    derivationAccount,
		NextAddressIndex:     1,
		RootAddress:          rootAddress,
		AddressesWithBalance: make([]AddressBalance, 0),
		BaseUtxos:            make([]Utxo, 0),
		TokenUtxos:           make([]TokenUtxo, 0),
		CreatedAt:            now,
		UpdatedAt:            now,
	}, nil
}

// ValidateWalletName ...
func ValidateWalletName(name string) error {
	if len(name) <= 0 {
		return ErrNullWalletName
	}
	if !walletNameRegexp.MatchString(name) {
		return ErrInvalidWalletName
	}
	return nil
}

// IsTestnet ...
func (w *Wallet) IsTestnet() bool {
	return w.Network == TestNet
}

// Copy returns a deep copy of the wallet.
func (w *Wallet) Copy() *Wallet {
	c := *w
	c.AddressesWithBalance = append(
		make([]AddressBalance, 0, len(w.AddressesWithBalance)),
		w.AddressesWithBalance...,
	)
	c.BaseUtxos = append(make([]Utxo, 0, len(w.BaseUtxos)), w.BaseUtxos...)
	c.TokenUtxos = append(make([]TokenUtxo, 0, len(w.TokenUtxos)), w.TokenUtxos...)
	return &c
}

// AllocateAddressIndex returns the index of a never used address and
// advances NextAddressIndex.
func (w *Wallet) AllocateAddressIndex() uint32 {
	index := w.NextAddressIndex
	w.NextAddressIndex++
	w.UpdatedAt = time.Now().Unix()
	return index
}

// AdvanceNextAddressIndex moves NextAddressIndex forward to next, it never
// moves it backwards.
func (w *Wallet) AdvanceNextAddressIndex(next uint32) {
	if next > w.NextAddressIndex {
		w.NextAddressIndex = next
	}
}

// SetDerivationAccount changes the coin type used to derive addresses.
func (w *Wallet) SetDerivationAccount(account uint32) {
	w.DerivationAccount = account
	w.UpdatedAt = time.Now().Unix()
}

// Balance returns confirmed and unconfirmed balance in BCH.
func (w *Wallet) Balance() (decimal.Decimal, decimal.Decimal) {
	return Utxo{ValueSats: w.BalanceSats}.Value(),
		Utxo{ValueSats: w.UnconfirmedSats}.Value()
}

// SpendableSats returns the sum of the values of all BCH utxos.
func (w *Wallet) SpendableSats() int64 {
	total := int64(0)
	for _, u := range w.BaseUtxos {
		total += u.ValueSats
	}
	return total
}
