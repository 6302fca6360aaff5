// Package address implements the Neo N3 base58check address format:
// version byte 0x35 followed by a big-endian script hash.
package address

import (
	"errors"

	"github.com/nspcc-dev/neo-go-sdk/pkg/encoding/base58"
	"github.com/nspcc-dev/neo-go-sdk/pkg/util"
)

// NEOVersion is the address version byte for Neo N3 addresses; every
// address starts with the letter 'N'.
const NEOVersion = 0x35

// Uint160ToString encodes u as a Neo N3 address.
func Uint160ToString(u util.Uint160) string {
	b := make([]byte, 0, util.Uint160Size+1)
	b = append(b, NEOVersion)
	b = append(b, u.BytesBE()...)
	return base58.CheckEncode(b)
}

// StringToUint160 decodes a Neo N3 address into its script hash.
func StringToUint160(s string) (u util.Uint160, err error) {
	b, err := base58.CheckDecode(s)
	if err != nil {
		return u, err
	}
	if len(b) != util.Uint160Size+1 {
		return u, errors.New("invalid address length")
	}
	if b[0] != NEOVersion {
		return u, errors.New("invalid address version")
	}
	return util.Uint160DecodeBytesBE(b[1:])
}
