// Package keys implements secp256r1 (NIST P-256) key pairs: generation,
// ECDSA sign/verify, and the WIF/NEP-2 encodings used to move a private
// key in and out of the wallet-facing parts of the SDK.
package keys

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"math/big"

	"github.com/nspcc-dev/neo-go-sdk/pkg/crypto/hash"
	"github.com/nspcc-dev/neo-go-sdk/pkg/util"
	"github.com/nspcc-dev/neo-go-sdk/pkg/util/slice"
	"github.com/nspcc-dev/rfc6979"
)

// PrivateKeySize is the length in bytes of a secp256r1 private scalar.
const PrivateKeySize = 32

// Sentinel errors returned by this package's key-material constructors.
var (
	ErrInvalidKeySize   = errors.New("invalid key size")
	ErrNotOnCurve       = errors.New("point is not on the curve")
	ErrInvalidSignature = errors.New("invalid signature")
)

// PrivateKey is a secp256r1 private scalar and its derived public point.
type PrivateKey struct {
	ecdsa.PrivateKey
}

// NewPrivateKey creates a new random secp256r1 private key, seeded from
// a cryptographically secure source.
func NewPrivateKey() (*PrivateKey, error) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, err
	}
	return &PrivateKey{PrivateKey: *priv}, nil
}

// NewPrivateKeyFromBytes builds a PrivateKey from a 32-byte big-endian
// scalar, rejecting zero and out-of-range values.
func NewPrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != PrivateKeySize {
		return nil, ErrInvalidKeySize
	}
	d := new(big.Int).SetBytes(b)
	curve := elliptic.P256()
	if d.Sign() == 0 || d.Cmp(curve.Params().N) >= 0 {
		return nil, ErrInvalidKeySize
	}
	x, y := curve.ScalarBaseMult(b)
	priv := &PrivateKey{
		PrivateKey: ecdsa.PrivateKey{
			PublicKey: ecdsa.PublicKey{Curve: curve, X: x, Y: y},
			D:         d,
		},
	}
	return priv, nil
}

// NewPrivateKeyFromHex builds a PrivateKey from its hex-encoded scalar.
func NewPrivateKeyFromHex(s string) (*PrivateKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return NewPrivateKeyFromBytes(b)
}

// NewPrivateKeyFromWIF decodes a WIF-encoded private key.
func NewPrivateKeyFromWIF(wif string) (*PrivateKey, error) {
	w, err := WIFDecode(wif, WIFVersion)
	if err != nil {
		return nil, err
	}
	return NewPrivateKeyFromBytes(w.PrivateKey)
}

// Bytes returns the 32-byte big-endian encoding of the private scalar.
func (p *PrivateKey) Bytes() []byte {
	b := p.D.Bytes()
	if len(b) == PrivateKeySize {
		return b
	}
	out := make([]byte, PrivateKeySize)
	copy(out[PrivateKeySize-len(b):], b)
	return out
}

// String returns the hex encoding of the private scalar.
func (p *PrivateKey) String() string {
	return hex.EncodeToString(p.Bytes())
}

// WIF returns the WIF encoding of the private key (compressed form).
func (p *PrivateKey) WIF() string {
	s, _ := WIFEncode(p.Bytes(), WIFVersion, true)
	return s
}

// PublicKey returns the public key derived from this private key.
func (p *PrivateKey) PublicKey() *PublicKey {
	return &PublicKey{PublicKey: p.PrivateKey.PublicKey}
}

// Address returns the Neo N3 address derived from this key's single-sig
// verification script.
func (p *PrivateKey) Address() string {
	return p.PublicKey().Address()
}

// GetScriptHash returns the script hash of this key's single-sig
// verification script.
func (p *PrivateKey) GetScriptHash() util.Uint160 {
	return p.PublicKey().GetScriptHash()
}

// SignHash signs a 32-byte digest directly, returning a compact (r||s)
// signature in its canonical (low-S) form.
func (p *PrivateKey) SignHash(digest util.Uint256) []byte {
	r, s, err := rfc6979.SignECDSA(&p.PrivateKey, digest.BytesBE(), sha256.New)
	if err != nil {
		return nil
	}
	sig := &ECDSASignature{R: r, S: s}
	sig.MakeCanonical()
	return sig.Bytes()
}

// Sign hashes msg with SHA-256 and signs the resulting digest, per this
// SDK's convention that transaction signatures always commit to
// SHA256(SHA256(unsigned bytes)) via the digest passed to SignHash.
func (p *PrivateKey) Sign(msg []byte) []byte {
	return p.SignHash(hash.Sha256(msg))
}

// Destroy zeroes the private scalar, best-effort scrubbing the key
// material once the key pair is no longer needed.
func (p *PrivateKey) Destroy() {
	if p.D == nil {
		return
	}
	b := p.Bytes()
	slice.Clean(b)
	p.D.SetInt64(0)
}
