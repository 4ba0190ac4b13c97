package application

import (
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/tdex-network/slp-cli-wallet/pkg/explorer"
)

// NetworkContext groups the chain params and the explorer service of one
// network. It is passed explicitly to the services that need them.
type NetworkContext struct {
	Network  *chaincfg.Params
	Explorer explorer.Service
}
