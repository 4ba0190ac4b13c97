package fullstack

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tdex-network/slp-cli-wallet/pkg/explorer"
)

func (s *service) GetUnspents(
	ctx context.Context, addr string,
) ([]explorer.Utxo, error) {
	utxos := make([]explorer.Utxo, 0)
	if err := s.get(ctx, fmt.Sprintf("blockbook/utxo/%s", addr), &utxos); err != nil {
		return nil, fmt.Errorf("error on retrieving utxos of %s: %w", addr, err)
	}
	for i := range utxos {
		utxos[i].Address = addr
	}
	return utxos, nil
}

func (s *service) IsUnspent(
	ctx context.Context, txid string, vout uint32,
) (bool, error) {
	// the full node replies with a null body if the output is spent
	var txOut json.RawMessage
	path := fmt.Sprintf("blockchain/getTxOut/%s/%d?include_mempool=true", txid, vout)
	if err := s.get(ctx, path, &txOut); err != nil {
		return false, fmt.Errorf("error on retrieving tx out %s:%d: %w", txid, vout, err)
	}
	return len(txOut) > 0 && string(txOut) != "null", nil
}
