package fullstack

import (
	"context"
	"errors"
	"fmt"

	"github.com/tdex-network/slp-cli-wallet/pkg/explorer"
)

type sendRawTransactionRequest struct {
	Hexes []string `json:"hexes"`
}

func (s *service) BroadcastTransaction(
	ctx context.Context, txhex string,
) (string, error) {
	txids := make([]string, 0, 1)
	err := s.post(
		ctx, "rawtransactions/sendRawTransaction",
		sendRawTransactionRequest{[]string{txhex}}, &txids,
	)
	if err != nil {
		var herr *httpError
		if errors.As(err, &herr) {
			return "", fmt.Errorf("%w: %s", explorer.ErrBroadcast, herr.body)
		}
		return "", err
	}
	if len(txids) != 1 {
		return "", fmt.Errorf("%w: expected 1 txid, got %d", explorer.ErrInvalidResponse, len(txids))
	}
	return txids[0], nil
}
