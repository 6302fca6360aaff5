package result

import (
	"testing"

	"github.com/nspcc-dev/neo-go-sdk/internal/testserdes"
	"github.com/nspcc-dev/neo-go-sdk/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go-sdk/pkg/util"
)

func TestHeaderMarshalUnmarshalJSON(t *testing.T) {
	next := util.Uint256{9, 9, 9}
	expected := &Header{
		Hash:              util.Uint256{1, 2, 3},
		Size:              123,
		Version:           0,
		PreviousBlockHash: util.Uint256{4, 5, 6},
		MerkleRoot:        util.Uint256{7, 8, 9},
		Timestamp:         1234567890,
		Nonce:             "0x0000000000000457",
		Index:             42,
		PrimaryIndex:      1,
		NextConsensus:     "0x" + util.Uint160{1, 2, 3}.StringLE(),
		Witnesses:         []transaction.Witness{{InvocationScript: []byte{1}, VerificationScript: []byte{2}}},
		Confirmations:     10,
		NextBlockHash:     &next,
	}
	testserdes.MarshalUnmarshalJSON(t, expected, new(Header))
}

func TestBlockMarshalUnmarshalJSON(t *testing.T) {
	tx := transaction.New([]byte{0x51}, 0, 0, 100)
	tx.Signers = []transaction.Signer{{Account: util.Uint160{1}}}
	tx.Scripts = []transaction.Witness{{}}
	tx.Attributes = []transaction.Attribute{}

	expected := &Block{
		Header: Header{
			Hash:          util.Uint256{1, 2, 3},
			NextConsensus: "0x" + util.Uint160{1, 2, 3}.StringLE(),
			Witnesses:     []transaction.Witness{{}},
		},
		Transactions: []*transaction.Transaction{tx},
	}
	testserdes.MarshalUnmarshalJSON(t, expected, new(Block))
}
