package result

import (
	"testing"

	"github.com/nspcc-dev/neo-go-sdk/internal/testserdes"
)

func TestVersionMarshalUnmarshalJSON(t *testing.T) {
	expected := &Version{
		TCPPort:   10333,
		WSPort:    10334,
		Nonce:     1234567,
		UserAgent: "/NEO-GO-SDK:0.1.0/",
		RPC: RPC{
			MaxIteratorResultItems: 100,
			SessionEnabled:         true,
		},
		Protocol: Protocol{
			AddressVersion:              53,
			Network:                     860833102,
			MillisecondsPerBlock:        15000,
			MaxTraceableBlocks:          2102400,
			MaxValidUntilBlockIncrement: 5760,
			MaxTransactionsPerBlock:     512,
			MemoryPoolMaxTransactions:   50000,
			ValidatorsCount:             7,
		},
	}
	testserdes.MarshalUnmarshalJSON(t, expected, new(Version))
}
