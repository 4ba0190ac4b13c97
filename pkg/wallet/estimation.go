package wallet

const (
	P2PKH = iota
	P2SH
	NullData
)

var (
	scriptSigSizeByScriptType = map[int]int{
		P2PKH: 108, // len + opcode + sig + opcode + pubkey
	}
	scriptPubKeySizeByScriptType = map[int]int{
		P2PKH: 26, // len + opcodes (3) + hash(pubkey) + opcodes (2)
		P2SH:  24, // len + opcodes (2) + hash(script) + opcode
	}
)

// EstimateTxSize makes an estimation of the size in bytes of a legacy (non
// segwit) transaction given the script types of its inputs and outputs.
// The sizes of NullData outputs (OP_RETURN markers) cannot be inferred from
// their type and must be passed, in order, as nullDataScriptSizes.
func EstimateTxSize(
	inScriptTypes, outScriptTypes, nullDataScriptSizes []int,
) int {
	// prev hash + index + sequence
	inBaseSize := 32 + 4 + 4
	insSize := 0
	for _, scriptType := range inScriptTypes {
		insSize += inBaseSize + scriptSigSizeByScriptType[scriptType]
	}

	// value
	outBaseSize := 8
	outsSize := 0
	auxCount := 0
	for _, scriptType := range outScriptTypes {
		scriptSize, ok := scriptPubKeySizeByScriptType[scriptType]
		if !ok {
			scriptLen := nullDataScriptSizes[auxCount]
			scriptSize = varIntSerializeSize(uint64(scriptLen)) + scriptLen
			auxCount++
		}
		outsSize += outBaseSize + scriptSize
	}

	// version + locktime
	return 4 + 4 +
		varIntSerializeSize(uint64(len(inScriptTypes))) +
		varIntSerializeSize(uint64(len(outScriptTypes))) +
		insSize + outsSize
}

func varIntSerializeSize(val uint64) int {
	// The value is small enough to be represented by itself, so it's
	// just 1 byte.
	if val < 0xfd {
		return 1
	}

	// Discriminant 1 byte plus 2 bytes for the uint16.
	if val <= 0xffff {
		return 3
	}

	// Discriminant 1 byte plus 4 bytes for the uint32.
	if val <= 0xffffffff {
		return 5
	}

	// Discriminant 1 byte plus 8 bytes for the uint64.
	return 9
}
