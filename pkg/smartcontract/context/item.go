// Package context implements an offline, JSON-persistable container for
// collecting the signatures a transaction (or any other verifiable,
// hashable entity) needs before it can be broadcast — the format tools
// exchange when a witness requires signatures from several parties that
// aren't all available on one machine at once.
package context

import (
	"encoding/hex"
	"encoding/json"

	"github.com/nspcc-dev/neo-go-sdk/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go-sdk/pkg/smartcontract"
)

// Item holds the signing progress for a single account: the
// verification script it belongs to, the parameters that script's
// invocation needs, and every signature collected so far, keyed by the
// hex-encoded public key that produced it.
type Item struct {
	Script     []byte
	Parameters []smartcontract.Parameter
	Signatures map[string][]byte
}

// AddSignature records sig as having been produced by pub.
func (it *Item) AddSignature(pub *keys.PublicKey, sig []byte) {
	if it.Signatures == nil {
		it.Signatures = make(map[string][]byte)
	}
	it.Signatures[hex.EncodeToString(pub.Bytes())] = sig
}

// GetSignature returns the signature previously recorded for pub, or
// nil if none was.
func (it *Item) GetSignature(pub *keys.PublicKey) []byte {
	return it.Signatures[hex.EncodeToString(pub.Bytes())]
}

type itemAux struct {
	Script     string                    `json:"script"`
	Parameters []smartcontract.Parameter `json:"parameters"`
	Signatures map[string]string         `json:"signatures"`
}

// MarshalJSON implements the json.Marshaler interface.
func (it Item) MarshalJSON() ([]byte, error) {
	sigs := make(map[string]string, len(it.Signatures))
	for k, v := range it.Signatures {
		sigs[k] = hex.EncodeToString(v)
	}
	return json.Marshal(itemAux{
		Script:     hex.EncodeToString(it.Script),
		Parameters: it.Parameters,
		Signatures: sigs,
	})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (it *Item) UnmarshalJSON(data []byte) error {
	var aux itemAux
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	script, err := hex.DecodeString(aux.Script)
	if err != nil {
		return err
	}
	sigs := make(map[string][]byte, len(aux.Signatures))
	for k, v := range aux.Signatures {
		b, err := hex.DecodeString(v)
		if err != nil {
			return err
		}
		sigs[k] = b
	}
	it.Script = script
	it.Parameters = aux.Parameters
	it.Signatures = sigs
	return nil
}
