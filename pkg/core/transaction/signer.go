package transaction

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nspcc-dev/neo-go-sdk/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go-sdk/pkg/io"
	"github.com/nspcc-dev/neo-go-sdk/pkg/util"
)

// MaxAttributes bounds the number of attributes (and, separately, the
// number of AllowedContracts/AllowedGroups/Rules a single signer may
// carry) so a transaction can't be inflated into an unverifiable blob.
const MaxAttributes = 16

// Signer is an account that witnesses a transaction, along with the
// scope within which that witness may be relied upon.
type Signer struct {
	Account          util.Uint160
	Scopes           WitnessScope
	AllowedContracts []util.Uint160
	AllowedGroups    []*keys.PublicKey
	Rules            []WitnessRule
}

// EncodeBinary implements the Serializable interface.
func (s *Signer) EncodeBinary(bw *io.BinWriter) {
	bw.WriteBytes(s.Account.BytesBE())
	bw.WriteB(byte(s.Scopes))
	if s.Scopes&CustomContracts != 0 {
		bw.WriteVarUint(uint64(len(s.AllowedContracts)))
		for _, c := range s.AllowedContracts {
			bw.WriteBytes(c.BytesBE())
		}
	}
	if s.Scopes&CustomGroups != 0 {
		bw.WriteArray(s.AllowedGroups)
	}
	if s.Scopes&Rules != 0 {
		bw.WriteArray(s.Rules)
	}
}

// DecodeBinary implements the Serializable interface.
func (s *Signer) DecodeBinary(br *io.BinReader) {
	var b [util.Uint160Size]byte
	br.ReadBytes(b[:])
	if br.Err != nil {
		return
	}
	acc, err := util.Uint160DecodeBytesBE(b[:])
	if err != nil {
		br.Err = err
		return
	}
	scopes, err := ScopesFromByte(br.ReadB())
	if br.Err != nil {
		return
	}
	if err != nil {
		br.Err = err
		return
	}
	s.Account = acc
	s.Scopes = scopes
	s.AllowedContracts = nil
	s.AllowedGroups = nil
	s.Rules = nil
	if scopes&CustomContracts != 0 {
		n := br.ReadVarUint()
		if br.Err != nil {
			return
		}
		if n > MaxAttributes {
			br.Err = fmt.Errorf("too many allowed contracts: %d", n)
			return
		}
		s.AllowedContracts = make([]util.Uint160, n)
		for i := range s.AllowedContracts {
			var cb [util.Uint160Size]byte
			br.ReadBytes(cb[:])
			if br.Err != nil {
				return
			}
			h, err := util.Uint160DecodeBytesBE(cb[:])
			if err != nil {
				br.Err = err
				return
			}
			s.AllowedContracts[i] = h
		}
	}
	if scopes&CustomGroups != 0 {
		n := br.ReadVarUint()
		if br.Err != nil {
			return
		}
		if n > MaxAttributes {
			br.Err = fmt.Errorf("too many allowed groups: %d", n)
			return
		}
		s.AllowedGroups = make([]*keys.PublicKey, n)
		for i := range s.AllowedGroups {
			pk := &keys.PublicKey{}
			pk.DecodeBinary(br)
			if br.Err != nil {
				return
			}
			s.AllowedGroups[i] = pk
		}
	}
	if scopes&Rules != 0 {
		br.ReadArray(&s.Rules, MaxAttributes)
	}
}

type signerAux struct {
	Account          string        `json:"account"`
	Scopes           string        `json:"scopes"`
	AllowedContracts []string      `json:"allowedcontracts,omitempty"`
	AllowedGroups    []string      `json:"allowedgroups,omitempty"`
	Rules            []WitnessRule `json:"rules,omitempty"`
}

// MarshalJSON implements the json.Marshaler interface.
func (s *Signer) MarshalJSON() ([]byte, error) {
	aux := signerAux{
		Account: "0x" + s.Account.StringLE(),
		Scopes:  s.Scopes.String(),
	}
	for _, c := range s.AllowedContracts {
		aux.AllowedContracts = append(aux.AllowedContracts, "0x"+c.StringLE())
	}
	for _, g := range s.AllowedGroups {
		aux.AllowedGroups = append(aux.AllowedGroups, g.String())
	}
	aux.Rules = s.Rules
	return json.Marshal(aux)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (s *Signer) UnmarshalJSON(data []byte) error {
	var aux signerAux
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	acc, err := decodeHash160LE(aux.Account)
	if err != nil {
		return fmt.Errorf("signer: invalid account: %w", err)
	}
	scopes, err := ScopesFromString(aux.Scopes)
	if err != nil {
		return fmt.Errorf("signer: invalid scopes: %w", err)
	}
	s.Account = acc
	s.Scopes = scopes
	s.AllowedContracts = nil
	for _, c := range aux.AllowedContracts {
		h, err := decodeHash160LE(c)
		if err != nil {
			return err
		}
		s.AllowedContracts = append(s.AllowedContracts, h)
	}
	s.AllowedGroups = nil
	for _, g := range aux.AllowedGroups {
		pk, err := keys.NewPublicKeyFromString(g)
		if err != nil {
			return err
		}
		s.AllowedGroups = append(s.AllowedGroups, pk)
	}
	s.Rules = aux.Rules
	return nil
}

// HasAllowedGroup reports whether pub is one of the signer's allowed
// groups.
func (s *Signer) HasAllowedGroup(pub *keys.PublicKey) bool {
	for _, g := range s.AllowedGroups {
		if g.Equal(pub) {
			return true
		}
	}
	return false
}

// ErrDuplicateSigner is returned when a transaction would carry two
// signers with the same account.
var ErrDuplicateSigner = errors.New("duplicate signer account")
