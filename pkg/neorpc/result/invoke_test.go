package result

import (
	"math/big"
	"testing"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go-sdk/internal/testserdes"
	"github.com/nspcc-dev/neo-go-sdk/pkg/smartcontract"
	"github.com/nspcc-dev/neo-go-sdk/pkg/util"
	"github.com/stretchr/testify/require"
)

func TestInvokeMarshalUnmarshalJSON(t *testing.T) {
	sid := uuid.New()
	expected := &Invoke{
		State:       VMStateHalt,
		GasConsumed: 1000000,
		Script:      []byte{0x10, 0x11},
		Stack: []smartcontract.Parameter{
			{Type: smartcontract.IntegerType, Value: big.NewInt(42)},
		},
		Notifications: []NotificationEvent{{
			Contract:  util.Uint160{1, 2, 3},
			Name:      "Transfer",
			Arguments: []smartcontract.Parameter{{Type: smartcontract.BoolType, Value: true}},
		}},
		Session: &sid,
	}
	testserdes.MarshalUnmarshalJSON(t, expected, new(Invoke))
}

func TestInvokeFault(t *testing.T) {
	expected := &Invoke{
		State:          VMStateFault,
		GasConsumed:    500,
		Script:         []byte{0x40},
		Stack:          []smartcontract.Parameter{},
		FaultException: "ABORT was called",
	}
	actual := new(Invoke)
	testserdes.MarshalUnmarshalJSON(t, expected, actual)
	require.Equal(t, VMStateFault, actual.State)
	require.Equal(t, "ABORT was called", actual.FaultException)
}
