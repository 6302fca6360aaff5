// Package base58 implements base58 and base58check encoding on top of
// the mr-tron/base58 alphabet/codec, adding the double-SHA256 checksum
// trailer Neo uses for WIF, NEP-2, and address strings.
package base58

import (
	"errors"

	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/neo-go-sdk/pkg/crypto/hash"
)

// ErrInvalidChecksum is returned by CheckDecode when the trailing 4-byte
// checksum does not match the decoded payload.
var ErrInvalidChecksum = errors.New("invalid checksum")

// Encode encodes b using the base58 alphabet, with no checksum.
func Encode(b []byte) string {
	return base58.Encode(b)
}

// Decode decodes a base58 string with no checksum verification.
func Decode(s string) ([]byte, error) {
	return base58.Decode(s)
}

// CheckEncode encodes b, appending a 4-byte double-SHA256 checksum
// before base58-encoding the result.
func CheckEncode(b []byte) string {
	csum := hash.ChecksumBytes(b)
	buf := make([]byte, 0, len(b)+4)
	buf = append(buf, b...)
	buf = append(buf, csum...)
	return base58.Encode(buf)
}

// CheckDecode decodes a base58check string, verifying and stripping its
// trailing checksum.
func CheckDecode(s string) ([]byte, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return nil, err
	}
	if len(b) < 5 {
		return nil, errors.New("invalid base58 check data: too short")
	}
	body, csum := b[:len(b)-4], b[len(b)-4:]
	expected := hash.ChecksumBytes(body)
	for i := 0; i < 4; i++ {
		if csum[i] != expected[i] {
			return nil, ErrInvalidChecksum
		}
	}
	return body, nil
}
