package result

import (
	"github.com/nspcc-dev/neo-go-sdk/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go-sdk/pkg/util"
)

// Header is the result of getblockheader: everything about a block
// except its transaction list.
type Header struct {
	Hash              util.Uint256         `json:"hash"`
	Size              int                  `json:"size"`
	Version            byte                `json:"version"`
	PreviousBlockHash  util.Uint256        `json:"previousblockhash"`
	MerkleRoot         util.Uint256        `json:"merkleroot"`
	Timestamp          uint64              `json:"time"`
	Nonce              string              `json:"nonce"`
	Index              uint32              `json:"index"`
	PrimaryIndex       byte                `json:"primary"`
	NextConsensus      string              `json:"nextconsensus"`
	Witnesses          []transaction.Witness `json:"witnesses"`
	Confirmations      int                 `json:"confirmations"`
	NextBlockHash      *util.Uint256       `json:"nextblockhash,omitempty"`
}

// Block is the result of getblock with verbose=true: a Header plus its
// full list of transactions.
type Block struct {
	Header
	Transactions []*transaction.Transaction `json:"tx"`
}
