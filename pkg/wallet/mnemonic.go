package wallet

import (
	"strings"

	"github.com/tyler-smith/go-bip39"
)

type NewMnemonicOpts struct {
	EntropySize int
}

func (o NewMnemonicOpts) validate() error {
	if o.EntropySize > 0 {
		if o.EntropySize < 128 || o.EntropySize > 256 || o.EntropySize%32 != 0 {
			return ErrInvalidEntropySize
		}
	}
	if o.EntropySize < 0 {
		return ErrInvalidEntropySize
	}
	return nil
}

// NewMnemonic returns a new space separated mnemonic. Entropy defaults to
// 128 bits (12 words).
func NewMnemonic(opts NewMnemonicOpts) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}
	if opts.EntropySize == 0 {
		opts.EntropySize = 128
	}

	entropy, err := bip39.NewEntropy(opts.EntropySize)
	if err != nil {
		return "", err
	}
	return bip39.NewMnemonic(entropy)
}

// IsMnemonicValid returns whether the given mnemonic has valid words and
// checksum.
func IsMnemonicValid(mnemonic string) bool {
	return isMnemonicValid(mnemonic)
}

func isMnemonicValid(mnemonic string) bool {
	return bip39.IsMnemonicValid(normalizeMnemonic(mnemonic))
}

func generateSeedFromMnemonic(mnemonic string) ([]byte, error) {
	return bip39.NewSeedWithErrorChecking(normalizeMnemonic(mnemonic), "")
}

func normalizeMnemonic(mnemonic string) string {
	return strings.Join(strings.Fields(mnemonic), " ")
}
