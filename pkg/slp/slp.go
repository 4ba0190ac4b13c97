// Package slp encodes and decodes Simple Ledger Protocol (type 1) marker
// outputs and converts token quantities to and from base units.
package slp

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

const (
	// TokenType1 is the only token type this package handles.
	TokenType1 = 0x01

	// TxTypeGenesis ...
	TxTypeGenesis = "GENESIS"
	// TxTypeMint ...
	TxTypeMint = "MINT"
	// TxTypeSend ...
	TxTypeSend = "SEND"

	// MaxSendOutputs is the max number of amounts a SEND marker can carry.
	MaxSendOutputs = 19
	// MaxDecimals is the max precision a token can declare at genesis.
	MaxDecimals = 9
	// TokenIDLength is the size in bytes of a token id.
	TokenIDLength = 32
)

// LokadID is the protocol prefix pushed right after OP_RETURN.
var LokadID = []byte{'S', 'L', 'P', 0x00}

var (
	// ErrInvalidTokenID ...
	ErrInvalidTokenID = errors.New("token id must be a 32 byte array in hex format")
	// ErrNullAmounts ...
	ErrNullAmounts = errors.New("send amounts must not be empty")
	// ErrTooManyAmounts ...
	ErrTooManyAmounts = fmt.Errorf(
		"send marker can carry at most %d amounts", MaxSendOutputs,
	)
	// ErrNotSlpScript is returned when parsing a script that is not an SLP
	// marker.
	ErrNotSlpScript = errors.New("script is not an slp marker")
	// ErrMalformedScript ...
	ErrMalformedScript = errors.New("malformed slp marker")
	// ErrUnsupportedTokenType ...
	ErrUnsupportedTokenType = errors.New("unsupported slp token type")
	// ErrInvalidDecimals ...
	ErrInvalidDecimals = fmt.Errorf("decimals must be in range [0, %d]", MaxDecimals)
)

// ValidateTokenID checks that the given string is a 64 chars hex string.
func ValidateTokenID(tokenID string) error {
	if len(tokenID) != TokenIDLength*2 {
		return ErrInvalidTokenID
	}
	if _, err := hex.DecodeString(tokenID); err != nil {
		return ErrInvalidTokenID
	}
	return nil
}

// NormalizeTokenID returns the lowercase form of a valid token id.
func NormalizeTokenID(tokenID string) (string, error) {
	if err := ValidateTokenID(tokenID); err != nil {
		return "", err
	}
	return strings.ToLower(tokenID), nil
}
