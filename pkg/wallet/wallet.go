package wallet

import (
	"errors"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
)

var (
	// ErrNullNetwork ...
	ErrNullNetwork = errors.New("network params are null")
	// ErrNullMnemonic ...
	ErrNullMnemonic = errors.New("mnemonic is null")
	// ErrNullMasterKey ...
	ErrNullMasterKey = errors.New("master key is null")
	// ErrNullMessage ...
	ErrNullMessage = errors.New("message must not be null")
	// ErrNullTx ...
	ErrNullTx = errors.New("transaction must not be null")

	// ErrInvalidMnemonic ...
	ErrInvalidMnemonic = errors.New("mnemonic is invalid")
	// ErrInvalidEntropySize ...
	ErrInvalidEntropySize = errors.New(
		"entropy size must be a multiple of 32 in the range [128,256]",
	)
	// ErrOutOfRangeDerivationPathAccount ...
	ErrOutOfRangeDerivationPathAccount = errors.New(
		"derivation account is out of hardened range",
	)
	// ErrInvalidAddress ...
	ErrInvalidAddress = errors.New("address must be a valid p2pkh address")
	// ErrInvalidAddressNetwork ...
	ErrInvalidAddressNetwork = errors.New("address does not belong to network")
	// ErrInvalidWIF ...
	ErrInvalidWIF = errors.New("private key must be a valid WIF string")
	// ErrInvalidPrevoutsLength ...
	ErrInvalidPrevoutsLength = errors.New(
		"length of tx inputs, prevouts and keys must match",
	)
	// ErrKeyScriptMismatch ...
	ErrKeyScriptMismatch = errors.New("signing key does not match input script")

	// ErrEmptyInputs ...
	ErrEmptyInputs = errors.New("input list must not be empty"))

// Wallet holds the mnemonic and the BIP32 master key derived from it.
// It is network agnostic, addresses are encoded for the params given to
// the Keyring.
type Wallet struct {
	mnemonic  string
	masterKey *hdkeychain.ExtendedKey
}

// NewWalletOpts is the struct given to the NewWallet method
type NewWalletOpts struct {
	EntropySize int
}

func (o NewWalletOpts) validate() error {
	return NewMnemonicOpts(o).validate()
}

// NewWallet creates a new wallet from a freshly generated mnemonic
func NewWallet(opts NewWalletOpts) (*Wallet, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	mnemonic, err := NewMnemonic(NewMnemonicOpts(opts))
	if err != nil {
		return nil, err
	}
	return NewWalletFromMnemonic(NewWalletFromMnemonicOpts{Mnemonic: mnemonic})
}

// NewWalletFromMnemonicOpts is the struct given to the NewWalletFromMnemonic method
type NewWalletFromMnemonicOpts struct {
	Mnemonic string
}

func (o NewWalletFromMnemonicOpts) validate() error {
	if len(o.Mnemonic) <= 0 {
		return ErrNullMnemonic
	}
	if !isMnemonicValid(o.Mnemonic) {
		return ErrInvalidMnemonic
	}
	return nil
}

// NewWalletFromMnemonic restores a wallet from the given mnemonic
func NewWalletFromMnemonic(opts NewWalletFromMnemonicOpts) (*Wallet, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	seed, err := generateSeedFromMnemonic(opts.Mnemonic)
	if err != nil {
		return nil, err
	}
	// version bytes of the master key are irrelevant, only child keys are
	// ever used and addresses are encoded separately.
	masterKey, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, err
	}

	return &Wallet{
		mnemonic:  normalizeMnemonic(opts.Mnemonic),
		masterKey: masterKey,
	}, nil
}

func (w *Wallet) validate() error {
	if w.masterKey == nil {
		return ErrNullMasterKey
	}
	if len(w.mnemonic) <= 0 {
		return ErrNullMnemonic
	}
	return nil
}

// Mnemonic is getter for the wallet mnemonic
func (w *Wallet) Mnemonic() (string, error) {
	if err := w.validate(); err != nil {
		return "", err
	}
	return w.mnemonic, nil
}
