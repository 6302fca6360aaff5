package result

import (
	"encoding/json"
	"fmt"
)

// Validator is one entry of a getnextblockvalidators/getcommittee
// response: a committee member's public key, its vote tally, and
// whether it currently sits on the validator list.
type Validator struct {
	PublicKey string `json:"publickey"`
	Votes     int64  `json:"-"`
	Active    bool   `json:"active"`
}

type validatorAux struct {
	PublicKey string          `json:"publickey"`
	Votes     json.RawMessage `json:"votes"`
	Active    bool            `json:"active"`
}

// MarshalJSON implements the json.Marshaler interface.
func (v Validator) MarshalJSON() ([]byte, error) {
	votes, err := json.Marshal(fmt.Sprintf("%d", v.Votes))
	if err != nil {
		return nil, err
	}
	return json.Marshal(validatorAux{PublicKey: v.PublicKey, Votes: votes, Active: v.Active})
}

// UnmarshalJSON implements the json.Unmarshaler interface, tolerating
// both a numeric and a string-encoded vote count.
func (v *Validator) UnmarshalJSON(data []byte) error {
	var aux validatorAux
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var votes int64
	if err := json.Unmarshal(aux.Votes, &votes); err != nil {
		var s string
		if err := json.Unmarshal(aux.Votes, &s); err != nil {
			return fmt.Errorf("invalid votes value: %s", aux.Votes)
		}
		if _, err := fmt.Sscanf(s, "%d", &votes); err != nil {
			return fmt.Errorf("invalid votes value: %s", s)
		}
	}
	v.PublicKey = aux.PublicKey
	v.Votes = votes
	v.Active = aux.Active
	return nil
}
