package neorpc

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/nspcc-dev/neo-go-sdk/pkg/core/transaction"
)

// SignerWithWitness is a Signer with its accompanying Witness attached,
// the shape the "signers" parameter of invokefunction/invokescript and
// the "signers" field of sendrawtransaction-adjacent calls take on the
// wire: a signer plus, optionally, a base64-encoded invocation and
// verification script.
type SignerWithWitness struct {
	transaction.Signer
	transaction.Witness
}

type signerWithWitnessAux struct {
	Invocation   string `json:"invocation,omitempty"`
	Verification string `json:"verification,omitempty"`
}

// MarshalJSON implements the json.Marshaler interface.
func (s *SignerWithWitness) MarshalJSON() ([]byte, error) {
	signerJSON, err := json.Marshal(&s.Signer)
	if err != nil {
		return nil, fmt.Errorf("marshaling signer: %w", err)
	}
	if len(s.Witness.InvocationScript) == 0 && len(s.Witness.VerificationScript) == 0 {
		return signerJSON, nil
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(signerJSON, &m); err != nil {
		return nil, err
	}
	invB, err := json.Marshal(base64.StdEncoding.EncodeToString(s.Witness.InvocationScript))
	if err != nil {
		return nil, err
	}
	verB, err := json.Marshal(base64.StdEncoding.EncodeToString(s.Witness.VerificationScript))
	if err != nil {
		return nil, err
	}
	m["invocation"] = invB
	m["verification"] = verB
	return json.Marshal(m)
}

// UnmarshalJSON implements the json.Unmarshaler interface. It rejects
// a signer whose AllowedContracts, AllowedGroups or Rules exceed
// transaction.MaxAttributes entries, a cap Signer.DecodeBinary enforces
// on the wire form but that JSON decoding otherwise skips.
func (s *SignerWithWitness) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &s.Signer); err != nil {
		return err
	}
	if n := len(s.Signer.AllowedContracts); n > transaction.MaxAttributes {
		return fmt.Errorf("invalid allowed contracts number: got %d, allowed %d at max", n, transaction.MaxAttributes)
	}
	if n := len(s.Signer.AllowedGroups); n > transaction.MaxAttributes {
		return fmt.Errorf("invalid allowed groups number: got %d, allowed %d at max", n, transaction.MaxAttributes)
	}
	if n := len(s.Signer.Rules); n > transaction.MaxAttributes {
		return fmt.Errorf("invalid rules number: got %d, allowed %d at max", n, transaction.MaxAttributes)
	}
	var aux signerWithWitnessAux
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Invocation != "" {
		b, err := base64.StdEncoding.DecodeString(aux.Invocation)
		if err != nil {
			return fmt.Errorf("decoding invocation script: %w", err)
		}
		s.Witness.InvocationScript = b
	}
	if aux.Verification != "" {
		b, err := base64.StdEncoding.DecodeString(aux.Verification)
		if err != nil {
			return fmt.Errorf("decoding verification script: %w", err)
		}
		s.Witness.VerificationScript = b
	}
	return nil
}
