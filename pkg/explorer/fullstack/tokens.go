package fullstack

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/wire"
	"github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/slp-cli-wallet/pkg/explorer"
	"github.com/tdex-network/slp-cli-wallet/pkg/slp"
)

type tokenInfo struct {
	Ticker   string
	Name     string
	Decimals int
}

type txidsRequest struct {
	TxIDs   []string `json:"txids"`
	Verbose bool     `json:"verbose"`
}

type validateTxidResponse struct {
	TxID  string `json:"txid"`
	Valid bool   `json:"valid"`
}

// GetTokenDetails decodes the SLP marker of the txs that created the given
// utxos, checks their validity against the SLP validator and resolves the
// token genesis info. Txs, validity and genesis info are cached.
func (s *service) GetTokenDetails(
	ctx context.Context, utxos []explorer.Utxo,
) ([]*explorer.TokenDetails, error) {
	details := make([]*explorer.TokenDetails, len(utxos))
	if len(utxos) <= 0 {
		return details, nil
	}

	txids := uniqueTxids(utxos)
	if err := s.fetchTxs(ctx, txids); err != nil {
		return nil, err
	}

	markers := make(map[string]*slp.Marker)
	candidates := make([]string, 0)
	for _, txid := range txids {
		marker, err := s.markerOf(txid)
		if err != nil {
			return nil, err
		}
		if marker != nil {
			markers[txid] = marker
			candidates = append(candidates, txid)
		}
	}
	if len(candidates) <= 0 {
		return details, nil
	}

	if err := s.validateTxids(ctx, candidates); err != nil {
		return nil, err
	}

	for i, u := range utxos {
		marker, ok := markers[u.TxID]
		if !ok {
			continue
		}
		valid, ok := s.validity.Get(u.TxID)
		if !ok {
			return nil, fmt.Errorf(
				"%w: missing slp validity of tx %s", explorer.ErrInvalidResponse, u.TxID,
			)
		}
		if v, _ := valid.(bool); !v {
			continue
		}

		baseUnits := marker.AmountForOutput(u.VOut)
		isBaton := marker.IsMintBaton(u.VOut)
		if baseUnits == 0 && !isBaton {
			continue
		}

		tokenID := marker.TokenID
		if marker.TxType == slp.TxTypeGenesis {
			tokenID = u.TxID
		}
		info, err := s.tokenInfo(ctx, tokenID)
		if err != nil {
			return nil, err
		}

		details[i] = &explorer.TokenDetails{
			TokenID:     tokenID,
			TxType:      marker.TxType,
			Ticker:      info.Ticker,
			Name:        info.Name,
			Decimals:    info.Decimals,
			BaseUnits:   baseUnits,
			Quantity:    slp.FromBaseUnits(baseUnits, info.Decimals),
			IsMintBaton: isBaton,
		}
	}
	return details, nil
}

func (s *service) fetchTxs(ctx context.Context, txids []string) error {
	missing := make([]string, 0, len(txids))
	for _, txid := range txids {
		if _, ok := s.txs.Get(txid); !ok {
			missing = append(missing, txid)
		}
	}

	for _, chunk := range chunks(missing, explorer.MaxItemsPerRequest) {
		hexes := make([]string, 0, len(chunk))
		if err := s.post(
			ctx, "rawtransactions/getRawTransaction",
			txidsRequest{TxIDs: chunk}, &hexes,
		); err != nil {
			return fmt.Errorf("error on retrieving txs: %w", err)
		}
		if len(hexes) != len(chunk) {
			return fmt.Errorf(
				"%w: expected %d txs, got %d",
				explorer.ErrInvalidResponse, len(chunk), len(hexes),
			)
		}
		for i, txhex := range hexes {
			s.txs.Set(chunk[i], txhex, cache.NoExpiration)
		}
	}
	return nil
}

func (s *service) markerOf(txid string) (*slp.Marker, error) {
	txhex, ok := s.txs.Get(txid)
	if !ok {
		return nil, fmt.Errorf("tx %s not fetched", txid)
	}
	buf, err := hex.DecodeString(txhex.(string))
	if err != nil {
		return nil, fmt.Errorf("%w: tx %s is not in hex format", explorer.ErrInvalidResponse, txid)
	}
	tx := wire.NewMsgTx(wire.TxVersion)
	if err := tx.Deserialize(bytes.NewReader(buf)); err != nil {
		return nil, fmt.Errorf("%w: tx %s: %s", explorer.ErrInvalidResponse, txid, err)
	}
	if len(tx.TxOut) <= 0 {
		return nil, nil
	}

	marker, err := slp.ParseScript(tx.TxOut[0].PkScript)
	if err != nil {
		if !errors.Is(err, slp.ErrNotSlpScript) {
			log.WithError(err).WithField("txid", txid).Debug("ignoring invalid slp marker")
		}
		return nil, nil
	}
	return marker, nil
}

func (s *service) validateTxids(ctx context.Context, txids []string) error {
	missing := make([]string, 0, len(txids))
	for _, txid := range txids {
		if _, ok := s.validity.Get(txid); !ok {
			missing = append(missing, txid)
		}
	}

	for _, chunk := range chunks(missing, explorer.MaxItemsPerRequest) {
		resp := make([]validateTxidResponse, 0, len(chunk))
		if err := s.post(
			ctx, "slp/validateTxid", txidsRequest{TxIDs: chunk}, &resp,
		); err != nil {
			return fmt.Errorf("error on validating slp txs: %w", err)
		}
		answered := make(map[string]bool, len(resp))
		for _, r := range resp {
			answered[r.TxID] = r.Valid
		}
		// an unanswered txid must never be taken for a plain BCH tx.
		for _, txid := range chunk {
			if _, ok := answered[txid]; !ok {
				return fmt.Errorf(
					"%w: slp validator did not answer for tx %s",
					explorer.ErrInvalidResponse, txid,
				)
			}
		}
		for _, txid := range chunk {
			s.validity.Set(txid, answered[txid], cache.DefaultExpiration)
		}
	}
	return nil
}

func (s *service) tokenInfo(ctx context.Context, tokenID string) (*tokenInfo, error) {
	if info, ok := s.tokens.Get(tokenID); ok {
		return info.(*tokenInfo), nil
	}

	if err := s.fetchTxs(ctx, []string{tokenID}); err != nil {
		return nil, err
	}
	marker, err := s.markerOf(tokenID)
	if err != nil {
		return nil, err
	}
	if marker == nil || marker.TxType != slp.TxTypeGenesis {
		return nil, fmt.Errorf(
			"%w: tx %s is not a token genesis", explorer.ErrInvalidResponse, tokenID,
		)
	}

	info := &tokenInfo{
		Ticker:   marker.Ticker,
		Name:     marker.Name,
		Decimals: marker.Decimals,
	}
	s.tokens.Set(tokenID, info, cache.NoExpiration)
	return info, nil
}

func uniqueTxids(utxos []explorer.Utxo) []string {
	seen := make(map[string]struct{})
	txids := make([]string, 0, len(utxos))
	for _, u := range utxos {
		if _, ok := seen[u.TxID]; ok {
			continue
		}
		seen[u.TxID] = struct{}{}
		txids = append(txids, u.TxID)
	}
	return txids
}

func chunks(items []string, size int) [][]string {
	result := make([][]string, 0, len(items)/size+1)
	for len(items) > size {
		result = append(result, items[:size])
		items = items[size:]
	}
	if len(items) > 0 {
		result = append(result, items)
	}
	return result
}
