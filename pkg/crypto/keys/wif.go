package keys

import (
	"errors"

	"github.com/nspcc-dev/neo-go-sdk/pkg/encoding/base58"
)

// WIFVersion is the version byte prefixed to a WIF-encoded private key.
const WIFVersion byte = 0x80

// ErrInvalidWIF is returned when a string fails to decode as a
// well-formed WIF-encoded private key.
var ErrInvalidWIF = errors.New("invalid WIF")

// WIF holds the decoded parts of a WIF string.
type WIF struct {
	// PrivateKey is the raw 32-byte private scalar.
	PrivateKey []byte
	// Version is the version byte the WIF was encoded with.
	Version byte
	// Compressed reports whether the WIF encodes a compressed public key.
	Compressed bool
}

// WIFEncode encodes a 32-byte private key into its WIF string form. Only
// the compressed form is produced, matching the convention every Neo N3
// key uses.
func WIFEncode(priv []byte, version byte, compressed bool) (string, error) {
	if len(priv) != PrivateKeySize {
		return "", ErrInvalidKeySize
	}
	if !compressed {
		return "", errors.New("uncompressed WIF is not supported")
	}
	buf := make([]byte, 0, 1+PrivateKeySize+1)
	buf = append(buf, version)
	buf = append(buf, priv...)
	buf = append(buf, 0x01)
	return base58.CheckEncode(buf), nil
}

// WIFDecode decodes a WIF string, checking that it carries the expected
// version byte and the compressed-key suffix.
func WIFDecode(wif string, version byte) (*WIF, error) {
	b, err := base58.CheckDecode(wif)
	if err != nil {
		return nil, err
	}
	if len(b) != 1+PrivateKeySize+1 {
		return nil, ErrInvalidWIF
	}
	if b[0] != version {
		return nil, ErrInvalidWIF
	}
	if b[len(b)-1] != 0x01 {
		return nil, ErrInvalidWIF
	}
	return &WIF{
		PrivateKey: b[1 : 1+PrivateKeySize],
		Version:    b[0],
		Compressed: true,
	}, nil
}
