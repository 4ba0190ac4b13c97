package wallet

import (
	"sync"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
)

// Keyring derives keys and addresses of a single derivation account. It
// implements the key provider consumed by the transaction assembler and
// is safe for concurrent use.
type Keyring struct {
	net      *chaincfg.Params
	coinType uint32

	lock        *sync.Mutex
	accountNode *hdkeychain.ExtendedKey
	keys        map[uint32]*btcec.PrivateKey
}

// KeyringOpts is the struct given to the Keyring method
type KeyringOpts struct {
	CoinType uint32
	Network  *chaincfg.Params
}

func (o KeyringOpts) validate() error {
	if o.Network == nil {
		return ErrNullNetwork
	}
	if o.CoinType > MaxHardenedValue {
		return ErrOutOfRangeDerivationPathAccount
	}
	return nil
}

// Keyring returns the keyring of the m/44'/coinType'/0'/0 account.
func (w *Wallet) Keyring(opts KeyringOpts) (*Keyring, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if err := w.validate(); err != nil {
		return nil, err
	}

	accountNode, err := derive(w.masterKey, AccountPath(opts.CoinType))
	if err != nil {
		return nil, err
	}

	return &Keyring{
		net:         opts.Network,
		coinType:    opts.CoinType,
		lock:        &sync.Mutex{},
		accountNode: accountNode,
		keys:        make(map[uint32]*btcec.PrivateKey),
	}, nil
}

// PrivateKey returns the private key at m/44'/coinType'/0'/0/index.
func (k *Keyring) PrivateKey(index uint32) (*btcec.PrivateKey, error) {
	k.lock.Lock()
	defer k.lock.Unlock()

	if key, ok := k.keys[index]; ok {
		return key, nil
	}

	node, err := k.accountNode.Derive(index)
	if err != nil {
		return nil, err
	}
	key, err := node.ECPrivKey()
	if err != nil {
		return nil, err
	}
	k.keys[index] = key
	return key, nil
}

// Address returns the legacy p2pkh address at the given index.
func (k *Keyring) Address(index uint32) (string, error) {
	key, err := k.PrivateKey(index)
	if err != nil {
		return "", err
	}
	addr, err := P2PKHAddress(key.PubKey(), k.net)
	if err != nil {
		return "", err
	}
	return addr.EncodeAddress(), nil
}

// DerivationPath returns the full path of the key at the given index.
func (k *Keyring) DerivationPath(index uint32) DerivationPath {
	return AddressPath(k.coinType, index)
}

func derive(
	node *hdkeychain.ExtendedKey, path DerivationPath,
) (*hdkeychain.ExtendedKey, error) {
	var err error
	for _, step := range path {
		node, err = node.Derive(step)
		if err != nil {
			return nil, err
		}
	}
	return node, nil
}
