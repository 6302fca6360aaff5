package result

import (
	"encoding/json"
	"testing"

	"github.com/nspcc-dev/neo-go-sdk/internal/testserdes"
	"github.com/nspcc-dev/neo-go-sdk/pkg/util"
	"github.com/stretchr/testify/require"
)

func TestContractStateMarshalUnmarshalJSON(t *testing.T) {
	expected := &ContractState{
		ID:            -5,
		UpdateCounter: 1,
		Hash:          util.Uint160{1, 2, 3},
		NEF:           []byte{0x4e, 0x45, 0x46},
		Manifest:      json.RawMessage(`{"name":"Token"}`),
	}
	testserdes.MarshalUnmarshalJSON(t, expected, new(ContractState))
}

func TestFindStorageMarshalUnmarshalJSON(t *testing.T) {
	expected := &FindStorage{
		Results: []KeyValue{{Key: []byte{1, 2}, Value: []byte{3, 4}}},
		Next:    1,
		Truncated: true,
	}
	data, err := json.Marshal(expected)
	require.NoError(t, err)
	actual := new(FindStorage)
	require.NoError(t, json.Unmarshal(data, actual))
	require.Equal(t, expected, actual)
}
