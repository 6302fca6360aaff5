// Package hash provides the small set of hash functions the Neo wire
// format and its cryptographic identity layer depend on: SHA-256,
// RIPEMD-160, and the HASH160/HASH256 compositions built from them.
package hash

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/nspcc-dev/neo-go-sdk/pkg/util"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // RIPEMD-160 is mandated by the Neo wire format, not a choice of ours.
)

// Sha256 returns the SHA-256 hash of b as a util.Uint256.
func Sha256(b []byte) util.Uint256 {
	h := sha256.Sum256(b)
	u, _ := util.Uint256DecodeBytesBE(h[:])
	return u
}

// DoubleSha256 returns SHA256(SHA256(b)), the hash used for transaction
// and block ids.
func DoubleSha256(b []byte) util.Uint256 {
	h1 := sha256.Sum256(b)
	h2 := sha256.Sum256(h1[:])
	u, _ := util.Uint256DecodeBytesBE(h2[:])
	return u
}

// RipeMD160 returns the RIPEMD-160 hash of b as a util.Uint160.
func RipeMD160(b []byte) util.Uint160 {
	h := ripemd160.New()
	_, _ = h.Write(b)
	sum := h.Sum(nil)
	u, _ := util.Uint160DecodeBytesBE(sum)
	return u
}

// Hash160 computes RIPEMD160(SHA256(b)), used to derive script hashes
// from verification scripts.
func Hash160(b []byte) util.Uint160 {
	h := sha256.Sum256(b)
	return RipeMD160(h[:])
}

// Hash256 computes SHA256(SHA256(b)); an alias of DoubleSha256 kept
// because the spec names both HASH160 and HASH256 as named operations.
func Hash256(b []byte) util.Uint256 {
	return DoubleSha256(b)
}

// Checksum returns the first 4 bytes of SHA256(SHA256(b)) interpreted as
// a little-endian uint32 — the checksum trailer used by base58check and
// the NEF container.
func Checksum(b []byte) uint32 {
	h := DoubleSha256(b)
	return binary.LittleEndian.Uint32(h.BytesBE()[:4])
}

// ChecksumBytes returns the first 4 bytes of SHA256(SHA256(b)).
func ChecksumBytes(b []byte) []byte {
	h := DoubleSha256(b)
	return h.BytesBE()[:4]
}
