package fullstack

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tdex-network/slp-cli-wallet/pkg/explorer"
)

// blockbookBalance is the body returned by blockbook/balance/{address}.
// Amounts are strings of sats.
type blockbookBalance struct {
	Address            string      `json:"address"`
	Balance            json.Number `json:"balance"`
	UnconfirmedBalance json.Number `json:"unconfirmedBalance"`
	Txs                int         `json:"txs"`
	UnconfirmedTxs     int         `json:"unconfirmedTxs"`
}

func (s *service) GetBalance(
	ctx context.Context, addr string,
) (*explorer.Balance, error) {
	var resp blockbookBalance
	if err := s.get(ctx, fmt.Sprintf("blockbook/balance/%s", addr), &resp); err != nil {
		return nil, fmt.Errorf("error on retrieving balance of %s: %w", addr, err)
	}

	confirmed, err := parseSigned(resp.Balance)
	if err != nil {
		return nil, fmt.Errorf("%w: balance of %s: %s", explorer.ErrInvalidResponse, addr, err)
	}
	unconfirmed, err := parseSigned(resp.UnconfirmedBalance)
	if err != nil {
		return nil, fmt.Errorf("%w: balance of %s: %s", explorer.ErrInvalidResponse, addr, err)
	}

	return &explorer.Balance{
		Address:         addr,
		ConfirmedSats:   confirmed,
		UnconfirmedSats: unconfirmed,
		TxCount:         resp.Txs + resp.UnconfirmedTxs,
	}, nil
}

// unconfirmed balances can be negative when an unconfirmed tx spends
// confirmed coins.
func parseSigned(n json.Number) (int64, error) {
	if n == "" {
		return 0, nil
	}
	return strconv.ParseInt(string(n), 10, 64)
}
