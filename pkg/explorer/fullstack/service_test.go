package fullstack_test

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/slp-cli-wallet/pkg/explorer"
	"github.com/tdex-network/slp-cli-wallet/pkg/explorer/fullstack"
	"github.com/tdex-network/slp-cli-wallet/pkg/slp"
)

const (
	testAddress = "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH"
	testToken   = "secret"
)

type fakeAPI struct {
	t            *testing.T
	txs          map[string]string
	valid        map[string]bool
	unanswered   map[string]bool
	rawTxCalls   int32
	validateCall int32
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Authorization") != "Bearer "+testToken {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/v3/")
	switch {
	case path == "blockbook/balance/"+testAddress:
		_, _ = w.Write([]byte(`{"address":"` + testAddress + `","balance":"20000",` +
			`"unconfirmedBalance":"-546","txs":3,"unconfirmedTxs":1}`))
	case path == "blockbook/utxo/"+testAddress:
		_, _ = w.Write([]byte(`[{"txid":"aa","vout":1,"value":"20000","height":10,"confirmations":2}]`))
	case path == "blockchain/getTxOut/aa/1":
		require.Equal(f.t, "true", r.URL.Query().Get("include_mempool"))
		_, _ = w.Write([]byte(`{"bestblock":"00","confirmations":2,"value":0.0002}`))
	case path == "blockchain/getTxOut/aa/2":
		_, _ = w.Write([]byte(`null`))
	case path == "rawtransactions/getRawTransaction":
		atomic.AddInt32(&f.rawTxCalls, 1)
		var req struct {
			TxIDs []string `json:"txids"`
		}
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&req))
		hexes := make([]string, 0, len(req.TxIDs))
		for _, txid := range req.TxIDs {
			hexes = append(hexes, f.txs[txid])
		}
		_ = json.NewEncoder(w).Encode(hexes)
	case path == "slp/validateTxid":
		atomic.AddInt32(&f.validateCall, 1)
		var req struct {
			TxIDs []string `json:"txids"`
		}
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&req))
		resp := make([]map[string]interface{}, 0, len(req.TxIDs))
		for _, txid := range req.TxIDs {
			if f.unanswered[txid] {
				continue
			}
			resp = append(resp, map[string]interface{}{
				"txid": txid, "valid": f.valid[txid],
			})
		}
		_ = json.NewEncoder(w).Encode(resp)
	case path == "rawtransactions/sendRawTransaction":
		var req struct {
			Hexes []string `json:"hexes"`
		}
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&req))
		if req.Hexes[0] == "bad" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"bad-txns-in-belowout"}`))
			return
		}
		_, _ = w.Write([]byte(`["ff"]`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newTestService(t *testing.T, api *fakeAPI) explorer.Service {
	server := httptest.NewServer(api)
	t.Cleanup(server.Close)

	svc, err := fullstack.NewService(fullstack.Opts{
		Endpoint:  server.URL + "/v3/",
		APIToken:  testToken,
		RateLimit: 1000,
	})
	require.NoError(t, err)
	return svc
}

func TestGetBalanceAndUnspents(t *testing.T) {
	svc := newTestService(t, &fakeAPI{t: t})
	ctx := context.Background()

	balance, err := svc.GetBalance(ctx, testAddress)
	require.NoError(t, err)
	require.Equal(t, &explorer.Balance{
		Address:         testAddress,
		ConfirmedSats:   20000,
		UnconfirmedSats: -546,
		TxCount:         4,
	}, balance)

	utxos, err := svc.GetUnspents(ctx, testAddress)
	require.NoError(t, err)
	require.Equal(t, []explorer.Utxo{{
		TxID: "aa", VOut: 1, ValueSats: 20000, Height: 10, Confirmations: 2,
		Address: testAddress,
	}}, utxos)

	unspent, err := svc.IsUnspent(ctx, "aa", 1)
	require.NoError(t, err)
	require.True(t, unspent)

	unspent, err = svc.IsUnspent(ctx, "aa", 2)
	require.NoError(t, err)
	require.False(t, unspent)

	_, err = svc.GetBalance(ctx, "unknown")
	require.ErrorIs(t, err, explorer.ErrUnexpectedStatus)
}

func TestBroadcastTransaction(t *testing.T) {
	svc := newTestService(t, &fakeAPI{t: t})

	txid, err := svc.BroadcastTransaction(context.Background(), "0100")
	require.NoError(t, err)
	require.Equal(t, "ff", txid)

	_, err = svc.BroadcastTransaction(context.Background(), "bad")
	require.ErrorIs(t, err, explorer.ErrBroadcast)
	require.Contains(t, err.Error(), "bad-txns-in-belowout")
}

func TestGetTokenDetails(t *testing.T) {
	genesisTx := newTx(t, genesisScript(t, "TST", 8, 700000000))
	genesisID := genesisTx.TxHash().String()

	sendScript, err := slp.BuildSendScript(genesisID, []uint64{600000000})
	require.NoError(t, err)
	sendTx := newTx(t, sendScript)
	sendID := sendTx.TxHash().String()

	invalidTx := newTx(t, sendScript, 1)
	invalidID := invalidTx.TxHash().String()

	plainTx := newTx(t, []byte{0x76, 0xa9})
	plainID := plainTx.TxHash().String()

	api := &fakeAPI{
		t: t,
		txs: map[string]string{
			genesisID: serialize(t, genesisTx),
			sendID:    serialize(t, sendTx),
			invalidID: serialize(t, invalidTx),
			plainID:   serialize(t, plainTx),
		},
		valid: map[string]bool{genesisID: true, sendID: true},
	}
	svc := newTestService(t, api)

	utxos := []explorer.Utxo{
		{TxID: sendID, VOut: 1, ValueSats: 546},
		{TxID: sendID, VOut: 2, ValueSats: 10000},
		{TxID: plainID, VOut: 0, ValueSats: 5000},
		{TxID: genesisID, VOut: 1, ValueSats: 546},
		{TxID: invalidID, VOut: 1, ValueSats: 546},
	}

	details, err := svc.GetTokenDetails(context.Background(), utxos)
	require.NoError(t, err)
	require.Len(t, details, len(utxos))

	require.NotNil(t, details[0])
	require.Equal(t, genesisID, details[0].TokenID)
	require.Equal(t, 8, details[0].Decimals)
	require.Equal(t, "TST", details[0].Ticker)
	require.Equal(t, uint64(600000000), details[0].BaseUnits)
	require.True(t, details[0].Quantity.Equal(decimal.NewFromInt(6)))

	require.Nil(t, details[1])
	require.Nil(t, details[2])

	require.NotNil(t, details[3])
	require.Equal(t, genesisID, details[3].TokenID)
	require.Equal(t, slp.TxTypeGenesis, details[3].TxType)
	require.True(t, details[3].Quantity.Equal(decimal.NewFromInt(7)))

	require.Nil(t, details[4])

	rawTxCalls := atomic.LoadInt32(&api.rawTxCalls)
	validateCalls := atomic.LoadInt32(&api.validateCall)

	// everything is cached now
	_, err = svc.GetTokenDetails(context.Background(), utxos)
	require.NoError(t, err)
	require.Equal(t, rawTxCalls, atomic.LoadInt32(&api.rawTxCalls))
	require.Equal(t, validateCalls, atomic.LoadInt32(&api.validateCall))
}

func TestFailingGetTokenDetails(t *testing.T) {
	genesisTx := newTx(t, genesisScript(t, "TST", 8, 700000000))
	genesisID := genesisTx.TxHash().String()

	sendScript, err := slp.BuildSendScript(genesisID, []uint64{600000000})
	require.NoError(t, err)
	sendTx := newTx(t, sendScript)
	sendID := sendTx.TxHash().String()

	otherScript, err := slp.BuildSendScript(genesisID, []uint64{100000000})
	require.NoError(t, err)
	otherTx := newTx(t, otherScript)
	otherID := otherTx.TxHash().String()

	txs := map[string]string{
		genesisID: serialize(t, genesisTx),
		sendID:    serialize(t, sendTx),
		otherID:   serialize(t, otherTx),
	}
	valid := map[string]bool{genesisID: true, sendID: true, otherID: true}

	tests := []struct {
		name       string
		utxos      []explorer.Utxo
		unanswered map[string]bool
	}{
		{
			name:       "empty validator response",
			utxos:      []explorer.Utxo{{TxID: sendID, VOut: 1, ValueSats: 546}},
			unanswered: map[string]bool{sendID: true},
		},
		{
			name: "partial validator response",
			utxos: []explorer.Utxo{
				{TxID: sendID, VOut: 1, ValueSats: 546},
				{TxID: otherID, VOut: 1, ValueSats: 546},
			},
			unanswered: map[string]bool{otherID: true},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := newTestService(t, &fakeAPI{
				t: t, txs: txs, valid: valid, unanswered: tt.unanswered,
			})
			details, err := svc.GetTokenDetails(context.Background(), tt.utxos)
			require.ErrorIs(t, err, explorer.ErrInvalidResponse)
			require.Nil(t, details)
		})
	}
}

func newTx(t *testing.T, marker []byte, salt ...byte) *wire.MsgTx {
	tx := wire.NewMsgTx(2)
	prev := chainhash.Hash{}
	copy(prev[:], append([]byte{0x01}, salt...))
	tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&prev, 0), nil, nil))
	tx.AddTxOut(wire.NewTxOut(0, marker))
	tx.AddTxOut(wire.NewTxOut(546, []byte{0x76}))
	tx.AddTxOut(wire.NewTxOut(10000, []byte{0x76}))
	return tx
}

func serialize(t *testing.T, tx *wire.MsgTx) string {
	var buf bytes.Buffer
	require.NoError(t, tx.Serialize(&buf))
	return hex.EncodeToString(buf.Bytes())
}

func genesisScript(t *testing.T, ticker string, decimals byte, qty uint64) []byte {
	buf := bytes.NewBuffer([]byte{0x6a})
	push := func(data []byte) {
		if len(data) == 0 {
			buf.Write([]byte{0x4c, 0x00})
			return
		}
		buf.WriteByte(byte(len(data)))
		buf.Write(data)
	}
	amount := make([]byte, 8)
	for i := 0; i < 8; i++ {
		amount[7-i] = byte(qty >> (8 * i))
	}
	push(slp.LokadID)
	push([]byte{0x01})
	push([]byte(slp.TxTypeGenesis))
	push([]byte(ticker))
	push([]byte("Test Token"))
	push(nil)
	push(nil)
	push([]byte{decimals})
	push(nil)
	push(amount)
	return buf.Bytes()
}
