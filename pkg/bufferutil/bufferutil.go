package bufferutil

import (
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// TxIDToHash parses a display tx id into a chainhash.Hash.
func TxIDToHash(str string) (*chainhash.Hash, error) {
	if len(str) != chainhash.MaxHashStringSize {
		return nil, fmt.Errorf("tx id must be %d hex chars", chainhash.MaxHashStringSize)
	}
	return chainhash.NewHashFromStr(str)
}

// Uint64ToBytesBE serializes the value as 8 bytes big-endian.
func Uint64ToBytesBE(val uint64) []byte {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, val)
	return buffer
}

// Uint64FromBytesBE is the inverse of Uint64ToBytesBE. Buffers shorter than
// 8 bytes are treated as left-zero-padded.
func Uint64FromBytesBE(buffer []byte) (uint64, error) {
	if len(buffer) > 8 {
		return 0, fmt.Errorf("buffer must be at most 8 bytes, got %d", len(buffer))
	}
	padded := make([]byte, 8)
	copy(padded[8-len(buffer):], buffer)
	return binary.BigEndian.Uint64(padded), nil
}
