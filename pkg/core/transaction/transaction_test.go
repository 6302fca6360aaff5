package transaction

import (
	"testing"

	"github.com/nspcc-dev/neo-go-sdk/internal/testserdes"
	"github.com/nspcc-dev/neo-go-sdk/pkg/util"
	"github.com/stretchr/testify/require"
)

func TestTransactionMarshalUnmarshalJSON(t *testing.T) {
	tx := New([]byte{0x51}, 42, 100500, 10)
	tx.Nonce = 123
	tx.Signers = []Signer{{Account: util.Uint160{1, 2, 3}, Scopes: CalledByEntry}}
	tx.Attributes = []Attribute{}
	tx.Scripts = []Witness{{InvocationScript: []byte{1}, VerificationScript: []byte{2}}}

	actual := &Transaction{}
	testserdes.MarshalUnmarshalJSON(t, tx, actual)
	require.Equal(t, tx.Hash(), actual.Hash())
	require.Equal(t, tx.Script, actual.Script)
	require.Equal(t, tx.Signers, actual.Signers)
	require.Equal(t, tx.Scripts, actual.Scripts)
}
