package netmode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMagicString(t *testing.T) {
	tests := []struct {
		magic Magic
		want  string
	}{
		{MainNet, "mainnet"},
		{TestNet, "testnet"},
		{PrivNet, "privnet"},
		{UnitTestNet, "unit_testnet"},
		{Magic(7), "net 0x7"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.magic.String())
	}
}
