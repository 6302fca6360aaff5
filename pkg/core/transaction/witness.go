package transaction

import (
	"encoding/json"
	"errors"

	"github.com/nspcc-dev/neo-go-sdk/pkg/crypto/hash"
	"github.com/nspcc-dev/neo-go-sdk/pkg/io"
	"github.com/nspcc-dev/neo-go-sdk/pkg/util"
)

const (
	// MaxInvocationScript is the maximum size of a witness invocation
	// script, tall enough for a multisig of many signatures but not
	// unbounded.
	MaxInvocationScript = 1024

	// MaxVerificationScript is the maximum size of a witness
	// verification script.
	MaxVerificationScript = 1024
)

// Witness pairs the invocation script (arguments, usually signatures)
// with the verification script (the account's locking script) that
// proves a signer authorized a transaction.
type Witness struct {
	InvocationScript   []byte `json:"invocation"`
	VerificationScript []byte `json:"verification"`
}

// EncodeBinary implements the Serializable interface.
func (w *Witness) EncodeBinary(bw *io.BinWriter) {
	bw.WriteVarBytes(w.InvocationScript)
	bw.WriteVarBytes(w.VerificationScript)
}

// DecodeBinary implements the Serializable interface.
func (w *Witness) DecodeBinary(br *io.BinReader) {
	w.InvocationScript = br.ReadVarBytes(MaxInvocationScript)
	w.VerificationScript = br.ReadVarBytes(MaxVerificationScript)
}

// ScriptHash returns the hash of the verification script, the account
// this witness belongs to.
func (w *Witness) ScriptHash() util.Uint160 {
	return hash.Hash160(w.VerificationScript)
}

// Copy returns a deep copy of w.
func (w *Witness) Copy() Witness {
	return Witness{
		InvocationScript:   append([]byte(nil), w.InvocationScript...),
		VerificationScript: append([]byte(nil), w.VerificationScript...),
	}
}

type witnessAux struct {
	Invocation   []byte `json:"invocation"`
	Verification []byte `json:"verification"`
}

// MarshalJSON implements the json.Marshaler interface, base64-encoding
// the scripts the way encoding/json does for []byte automatically; it
// exists only to pin the field names used on the wire.
func (w Witness) MarshalJSON() ([]byte, error) {
	return json.Marshal(witnessAux{
		Invocation:   w.InvocationScript,
		Verification: w.VerificationScript,
	})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (w *Witness) UnmarshalJSON(data []byte) error {
	var aux witnessAux
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Invocation == nil || aux.Verification == nil {
		return errors.New("witness: missing invocation or verification script")
	}
	w.InvocationScript = aux.Invocation
	w.VerificationScript = aux.Verification
	return nil
}
