package wallet

import (
	"encoding/hex"
	"encoding/json"
	"errors"

	"github.com/nspcc-dev/neo-go-sdk/pkg/crypto/hash"
	"github.com/nspcc-dev/neo-go-sdk/pkg/smartcontract"
	"github.com/nspcc-dev/neo-go-sdk/pkg/util"
)

// ContractParam names and types a single argument of an account's
// verification script, the shape NEP-6 records under "parameters".
type ContractParam struct {
	Name string                 `json:"name"`
	Type smartcontract.ParamType `json:"type"`
}

// Contract is the verification script backing an account, together
// with the parameters it expects.
type Contract struct {
	Script     []byte          `json:"script"`
	Parameters []ContractParam `json:"parameters"`
	Deployed   bool            `json:"deployed"`
}

// ScriptHash returns the script hash of the contract's verification script.
func (c *Contract) ScriptHash() util.Uint160 {
	return hash.Hash160(c.Script)
}

type contractAux struct {
	Script     string          `json:"script"`
	Parameters []ContractParam `json:"parameters"`
	Deployed   bool            `json:"deployed"`
}

// MarshalJSON implements the json.Marshaler interface.
func (c Contract) MarshalJSON() ([]byte, error) {
	return json.Marshal(contractAux{
		Script:     hex.EncodeToString(c.Script),
		Parameters: c.Parameters,
		Deployed:   c.Deployed,
	})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (c *Contract) UnmarshalJSON(data []byte) error {
	var aux contractAux
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	script, err := hex.DecodeString(aux.Script)
	if err != nil {
		return errors.New("wallet: invalid contract script encoding")
	}
	c.Script = script
	c.Parameters = aux.Parameters
	c.Deployed = aux.Deployed
	return nil
}

func signatureContract(verificationScript []byte) *Contract {
	return &Contract{
		Script: verificationScript,
		Parameters: []ContractParam{
			{Name: "signature", Type: smartcontract.SignatureType},
		},
	}
}

func multiSigContract(verificationScript []byte, m int) *Contract {
	params := make([]ContractParam, m)
	for i := range params {
		params[i] = ContractParam{Name: "signature", Type: smartcontract.SignatureType}
	}
	return &Contract{Script: verificationScript, Parameters: params}
}
