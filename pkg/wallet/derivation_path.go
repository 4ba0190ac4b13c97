package wallet

import (
	"fmt"
	"math"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

const (
	// MaxHardenedValue is the max value for hardened indexes of BIP32
	// derivation paths
	MaxHardenedValue = math.MaxUint32 - hdkeychain.HardenedKeyStart

	// Purpose is the BIP44 purpose level.
	Purpose = 44
	// SlpCoinType is the SLP coin type and the default derivation account.
	SlpCoinType = 245
	// BchCoinType ...
	BchCoinType = 145
	// BtcCoinType is used by early BCH wallets forked from bitcoin ones.
	BtcCoinType = 0
	// ExternalBranch is the only branch used, change goes to fresh external
	// addresses.
	ExternalBranch = 0
)

// DerivationPath is the internal representation of a hierarchical
// deterministic wallet path
type DerivationPath []uint32

// AccountPath returns m/44'/coinType'/0'/0, the parent of every address of
// the given derivation account.
func AccountPath(coinType uint32) DerivationPath {
	return DerivationPath{
		hdkeychain.HardenedKeyStart + Purpose,
		hdkeychain.HardenedKeyStart + coinType,
		hdkeychain.HardenedKeyStart + 0,
		ExternalBranch,
	}
}

// AddressPath returns m/44'/coinType'/0'/0/index.
func AddressPath(coinType, index uint32) DerivationPath {
	return append(AccountPath(coinType), index)
}

// String converts a binary derivation path to its canonical representation
func (path DerivationPath) String() string {
	if len(path) <= 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("m")
	for _, component := range path {
		hardened := component >= hdkeychain.HardenedKeyStart
		if hardened {
			component -= hdkeychain.HardenedKeyStart
		}
		fmt.Fprintf(&sb, "/%d", component)
		if hardened {
			sb.WriteString("'")
		}
	}
	return sb.String()
}
