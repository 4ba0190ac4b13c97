package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateTxSize(t *testing.T) {
	tests := []struct {
		name                string
		inScriptTypes       []int
		outScriptTypes      []int
		nullDataScriptSizes []int
		expectedSize        int
	}{
		{
			name:           "1 in 2 out",
			inScriptTypes:  []int{P2PKH},
			outScriptTypes: []int{P2PKH, P2PKH},
			expectedSize:   226,
		},
		{
			name:           "1 in 1 out",
			inScriptTypes:  []int{P2PKH},
			outScriptTypes: []int{P2PKH},
			expectedSize:   192,
		},
		{
			name:                "slp send with one amount",
			inScriptTypes:       []int{P2PKH, P2PKH},
			outScriptTypes:      []int{NullData, P2PKH, P2PKH},
			nullDataScriptSizes: []int{55},
			expectedSize:        10 + 2*148 + (8 + 1 + 55) + 2*34,
		},
	}
	for _, tt := range tests {
		size := EstimateTxSize(
			tt.inScriptTypes, tt.outScriptTypes, tt.nullDataScriptSizes,
		)
		assert.Equal(t, tt.expectedSize, size, tt.name)
	}
}
