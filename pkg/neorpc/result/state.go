package result

import "github.com/nspcc-dev/neo-go-sdk/pkg/util"

// StateRoot is the result of getstateroot: the MPT root hash committed
// for a given block index, together with the witness that vouches
// for it once the state-validator role signs it.
type StateRoot struct {
	Version uint8               `json:"version"`
	Index   uint32              `json:"index"`
	Root    util.Uint256        `json:"roothash"`
	Witness *ProofWitness       `json:"witness,omitempty"`
}

// ProofWitness mirrors transaction.Witness without importing the
// transaction package, since a StateRoot's witness is signed by the
// state-validator role, not a transaction signer.
type ProofWitness struct {
	Invocation   []byte `json:"invocation"`
	Verification []byte `json:"verification"`
}

// ProofWithKey is the result of getproof: a storage key's inclusion
// proof against a given state root, returned by the node as a single
// base64 blob of key||proof-nodes that Proof.Bytes/Proof.FromBytes
// would split back apart; kept opaque here since verifying the proof
// is outside what a client-side core needs to do.
type ProofWithKey []byte

// UnclaimedGas is the result of getunclaimedgas for an address.
type UnclaimedGas struct {
	Unclaimed string `json:"unclaimed"`
	Address   string `json:"address"`
}

// WalletBalance is the result of getwalletbalance for an asset.
type WalletBalance struct {
	Balance string `json:"balance"`
}
