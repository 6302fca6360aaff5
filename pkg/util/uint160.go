package util

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Uint160Size is the size of Uint160 in bytes.
const Uint160Size = 20

// Uint160 is a 20 byte long unsigned integer. Internally it is treated as
// big-endian, matching its hex string representation: this is the
// representation used on the wire for script hashes.
type Uint160 [Uint160Size]uint8

// Uint160DecodeBytesBE attempts to decode the given big-endian byte slice
// into a Uint160.
func Uint160DecodeBytesBE(b []byte) (u Uint160, err error) {
	if len(b) != Uint160Size {
		return u, fmt.Errorf("expected byte length of %d got %d", Uint160Size, len(b))
	}
	copy(u[:], b)
	return u, nil
}

// Uint160DecodeBytesLE attempts to decode the given little-endian byte
// slice into a Uint160.
func Uint160DecodeBytesLE(b []byte) (u Uint160, err error) {
	if len(b) != Uint160Size {
		return u, fmt.Errorf("expected byte length of %d got %d", Uint160Size, len(b))
	}
	for i, v := range b {
		u[Uint160Size-i-1] = v
	}
	return u, nil
}

// Uint160DecodeStringBE attempts to decode the given string (without 0x
// prefix) into a Uint160.
func Uint160DecodeStringBE(s string) (u Uint160, err error) {
	s = strings.TrimPrefix(s, "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return u, err
	}
	return Uint160DecodeBytesBE(b)
}

// Uint160DecodeString is an alias of Uint160DecodeStringBE kept for callers
// that work with the canonical (big-endian) hex representation.
func Uint160DecodeString(s string) (Uint160, error) {
	return Uint160DecodeStringBE(s)
}

// BytesBE returns a big-endian byte representation of u.
func (u Uint160) BytesBE() []byte {
	b := make([]byte, Uint160Size)
	copy(b, u[:])
	return b
}

// BytesLE returns a little-endian byte representation of u.
func (u Uint160) BytesLE() []byte {
	b := make([]byte, Uint160Size)
	for i := 0; i < Uint160Size; i++ {
		b[i] = u[Uint160Size-i-1]
	}
	return b
}

// Reverse returns a reversed (LE<->BE) copy of u.
func (u Uint160) Reverse() Uint160 {
	var r Uint160
	for i := 0; i < Uint160Size; i++ {
		r[i] = u[Uint160Size-i-1]
	}
	return r
}

// Equals returns true if both Uint160 values are the same.
func (u Uint160) Equals(other Uint160) bool {
	return u == other
}

// String implements the Stringer interface: lowercase hex, no prefix,
// big-endian (the canonical internal representation).
func (u Uint160) String() string {
	return hex.EncodeToString(u[:])
}

// StringLE returns the little-endian hex representation of u, used on
// some legacy wire paths that demand LE script hashes.
func (u Uint160) StringLE() string {
	return hex.EncodeToString(u.BytesLE())
}

// IsZero returns whether u is the zero value.
func (u Uint160) IsZero() bool {
	return u == Uint160{}
}

// MarshalJSON implements the json.Marshaler interface.
func (u Uint160) MarshalJSON() ([]byte, error) {
	return json.Marshal("0x" + u.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (u *Uint160) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	s = strings.TrimPrefix(s, "0x")
	res, err := Uint160DecodeStringBE(s)
	if err != nil {
		return err
	}
	*u = res
	return nil
}

var errInvalidUint160 = errors.New("invalid Uint160")

// Uint160DecodeBytes is an alias kept for symmetry with Uint256DecodeBytes;
// it rejects nil input explicitly.
func Uint160DecodeBytes(b []byte) (Uint160, error) {
	if b == nil {
		return Uint160{}, errInvalidUint160
	}
	return Uint160DecodeBytesBE(b)
}
