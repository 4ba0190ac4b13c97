package slp

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/txscript"
	"github.com/tdex-network/slp-cli-wallet/pkg/bufferutil"
)

// Marker is the decoded content of an SLP OP_RETURN output.
type Marker struct {
	TokenType byte
	TxType    string
	// TokenID is empty for GENESIS markers, the token id is the genesis txid.
	TokenID string
	// Amounts holds the quantities in base units for outputs 1..n. GENESIS
	// and MINT markers have exactly one amount.
	Amounts []uint64

	// Genesis only.
	Ticker      string
	Name        string
	DocumentURI string
	Decimals    int

	// Genesis and mint only, 0 if no baton.
	MintBatonVout uint32
}

// AmountForOutput returns the token amount assigned to the given tx output.
func (m *Marker) AmountForOutput(vout uint32) uint64 {
	if vout == 0 || int(vout) > len(m.Amounts) {
		return 0
	}
	return m.Amounts[vout-1]
}

// IsMintBaton returns whether the given output carries the mint baton.
func (m *Marker) IsMintBaton(vout uint32) bool {
	return m.MintBatonVout > 0 && m.MintBatonVout == vout
}

// ParseScript decodes an SLP marker. Scripts that do not start with
// OP_RETURN + lokad id return ErrNotSlpScript, invalid markers return
// an error wrapping ErrMalformedScript.
func ParseScript(script []byte) (*Marker, error) {
	if len(script) <= 0 || script[0] != txscript.OP_RETURN {
		return nil, ErrNotSlpScript
	}

	pushes, err := extractPushes(script[1:])
	if err != nil {
		return nil, ErrNotSlpScript
	}
	if len(pushes) < 3 || string(pushes[0]) != string(LokadID) {
		return nil, ErrNotSlpScript
	}

	if len(pushes[1]) != 1 && len(pushes[1]) != 2 {
		return nil, malformed("invalid token type length %d", len(pushes[1]))
	}
	if len(pushes[1]) == 2 || pushes[1][0] != TokenType1 {
		return nil, ErrUnsupportedTokenType
	}

	marker := &Marker{TokenType: TokenType1, TxType: string(pushes[2])}
	fields := pushes[3:]

	switch marker.TxType {
	case TxTypeGenesis:
		err = parseGenesis(marker, fields)
	case TxTypeMint:
		err = parseMint(marker, fields)
	case TxTypeSend:
		err = parseSend(marker, fields)
	default:
		err = malformed("unknown transaction type %q", marker.TxType)
	}
	if err != nil {
		return nil, err
	}
	return marker, nil
}

func parseGenesis(m *Marker, fields [][]byte) error {
	if len(fields) != 7 {
		return malformed("genesis expects 7 fields, got %d", len(fields))
	}
	m.Ticker = string(fields[0])
	m.Name = string(fields[1])
	m.DocumentURI = string(fields[2])

	if l := len(fields[3]); l != 0 && l != 32 {
		return malformed("invalid document hash length %d", l)
	}
	if len(fields[4]) != 1 {
		return malformed("invalid decimals length %d", len(fields[4]))
	}
	m.Decimals = int(fields[4][0])
	if m.Decimals > MaxDecimals {
		return ErrInvalidDecimals
	}

	baton, err := parseBatonVout(fields[5])
	if err != nil {
		return err
	}
	m.MintBatonVout = baton

	qty, err := parseAmount(fields[6])
	if err != nil {
		return err
	}
	m.Amounts = []uint64{qty}
	return nil
}

func parseMint(m *Marker, fields [][]byte) error {
	if len(fields) != 3 {
		return malformed("mint expects 3 fields, got %d", len(fields))
	}
	tokenID, err := parseTokenID(fields[0])
	if err != nil {
		return err
	}
	m.TokenID = tokenID

	baton, err := parseBatonVout(fields[1])
	if err != nil {
		return err
	}
	m.MintBatonVout = baton

	qty, err := parseAmount(fields[2])
	if err != nil {
		return err
	}
	m.Amounts = []uint64{qty}
	return nil
}

func parseSend(m *Marker, fields [][]byte) error {
	if len(fields) < 2 {
		return malformed("send expects a token id and at least one amount")
	}
	if len(fields)-1 > MaxSendOutputs {
		return ErrTooManyAmounts
	}
	tokenID, err := parseTokenID(fields[0])
	if err != nil {
		return err
	}
	m.TokenID = tokenID

	m.Amounts = make([]uint64, 0, len(fields)-1)
	for _, f := range fields[1:] {
		qty, err := parseAmount(f)
		if err != nil {
			return err
		}
		m.Amounts = append(m.Amounts, qty)
	}
	return nil
}

func parseTokenID(buf []byte) (string, error) {
	if len(buf) != TokenIDLength {
		return "", malformed("invalid token id length %d", len(buf))
	}
	return hex.EncodeToString(buf), nil
}

func parseBatonVout(buf []byte) (uint32, error) {
	switch len(buf) {
	case 0:
		return 0, nil
	case 1:
		if buf[0] < 2 {
			return 0, malformed("mint baton vout must be >= 2")
		}
		return uint32(buf[0]), nil
	default:
		return 0, malformed("invalid mint baton vout length %d", len(buf))
	}
}

func parseAmount(buf []byte) (uint64, error) {
	if len(buf) != 8 {
		return 0, malformed("amount must be 8 bytes, got %d", len(buf))
	}
	return bufferutil.Uint64FromBytesBE(buf)
}

func extractPushes(script []byte) ([][]byte, error) {
	pushes := make([][]byte, 0)
	tokenizer := txscript.MakeScriptTokenizer(0, script)
	for tokenizer.Next() {
		op := tokenizer.Opcode()
		if op == txscript.OP_0 || op > txscript.OP_PUSHDATA4 {
			return nil, malformed("non push opcode 0x%02x", op)
		}
		pushes = append(pushes, tokenizer.Data())
	}
	if err := tokenizer.Err(); err != nil {
		return nil, err
	}
	return pushes, nil
}

func malformed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformedScript, fmt.Sprintf(format, args...))
}
