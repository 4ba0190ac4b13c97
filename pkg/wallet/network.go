package wallet

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
)

const (
	// MainnetName ...
	MainnetName = "mainnet"
	// TestnetName ...
	TestnetName = "testnet"
)

// NetworkFromName returns the chain params for the given network name.
// BCH legacy addresses share version bytes with bitcoin, so the bitcoin
// params are used for encoding.
func NetworkFromName(name string) (*chaincfg.Params, error) {
	switch name {
	case MainnetName, "":
		return &chaincfg.MainNetParams, nil
	case TestnetName:
		return &chaincfg.TestNet3Params, nil
	default:
		return nil, fmt.Errorf(
			"network must be either '%s' or '%s'", MainnetName, TestnetName,
		)
	}
}
