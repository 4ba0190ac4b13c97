package slp

import (
	"bytes"
	"encoding/hex"

	"github.com/btcsuite/btcd/txscript"
	"github.com/tdex-network/slp-cli-wallet/pkg/bufferutil"
)

// BuildSendScript returns the OP_RETURN script of a SEND marker moving
// the given token amounts (in base units) to the outputs 1..len(amounts).
//
// The script is written byte by byte because every push must use the
// direct push opcodes (0x01-0x4b) mandated by the protocol, while
// txscript.ScriptBuilder would turn the token type push into OP_1.
func BuildSendScript(tokenID string, amounts []uint64) ([]byte, error) {
	if err := ValidateTokenID(tokenID); err != nil {
		return nil, err
	}
	if len(amounts) <= 0 {
		return nil, ErrNullAmounts
	}
	if len(amounts) > MaxSendOutputs {
		return nil, ErrTooManyAmounts
	}

	id, _ := hex.DecodeString(tokenID)

	buf := bytes.NewBuffer([]byte{txscript.OP_RETURN})
	writePush(buf, LokadID)
	writePush(buf, []byte{TokenType1})
	writePush(buf, []byte(TxTypeSend))
	writePush(buf, id)
	for _, amount := range amounts {
		writePush(buf, bufferutil.Uint64ToBytesBE(amount))
	}
	return buf.Bytes(), nil
}

func writePush(buf *bytes.Buffer, data []byte) {
	buf.WriteByte(byte(len(data)))
	buf.Write(data)
}
