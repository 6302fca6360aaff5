package keys

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"encoding/binary"
	"encoding/hex"
	"math/big"

	"github.com/nspcc-dev/neo-go-sdk/pkg/crypto/hash"
	"github.com/nspcc-dev/neo-go-sdk/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go-sdk/pkg/io"
	"github.com/nspcc-dev/neo-go-sdk/pkg/util"
)

// PublicKeyCompressedSize is the length in bytes of a compressed
// secp256r1 public key: a parity prefix plus the 32-byte X coordinate.
const PublicKeyCompressedSize = 33

// checkSigInteropHash is the 4-byte little-endian interop method hash
// for "System.Crypto.CheckSig", used to build single-signature
// verification scripts.
const checkSigInteropHash = 0x56e7b327

// PublicKey is a secp256r1 public point.
type PublicKey struct {
	ecdsa.PublicKey
}

// NewPublicKeyFromBytes decodes a public key from its compressed
// (33-byte), uncompressed (65-byte), or infinity (1-byte, 0x00) form.
func NewPublicKeyFromBytes(b []byte) (*PublicKey, error) {
	curve := elliptic.P256()
	switch {
	case len(b) == 1 && b[0] == 0x00:
		return &PublicKey{ecdsa.PublicKey{Curve: curve, X: new(big.Int), Y: new(big.Int)}}, nil
	case len(b) == PublicKeyCompressedSize && (b[0] == 0x02 || b[0] == 0x03):
		x, y := decompress(curve, b)
		if x == nil {
			return nil, ErrNotOnCurve
		}
		return &PublicKey{ecdsa.PublicKey{Curve: curve, X: x, Y: y}}, nil
	case len(b) == 65 && b[0] == 0x04:
		x := new(big.Int).SetBytes(b[1:33])
		y := new(big.Int).SetBytes(b[33:65])
		if !curve.IsOnCurve(x, y) {
			return nil, ErrNotOnCurve
		}
		return &PublicKey{ecdsa.PublicKey{Curve: curve, X: x, Y: y}}, nil
	default:
		return nil, ErrInvalidKeySize
	}
}

// NewPublicKeyFromString decodes a hex-encoded public key.
func NewPublicKeyFromString(s string) (*PublicKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return NewPublicKeyFromBytes(b)
}

// decompress recovers Y from a compressed point's X coordinate and
// parity byte.
func decompress(curve elliptic.Curve, b []byte) (*big.Int, *big.Int) {
	x := new(big.Int).SetBytes(b[1:])
	params := curve.Params()

	// y^2 = x^3 - 3x + B (mod P)
	y2 := new(big.Int).Exp(x, big.NewInt(3), params.P)
	threeX := new(big.Int).Mul(x, big.NewInt(3))
	y2.Sub(y2, threeX)
	y2.Add(y2, params.B)
	y2.Mod(y2, params.P)

	y := new(big.Int).ModSqrt(y2, params.P)
	if y == nil {
		return nil, nil
	}
	if byte(y.Bit(0)) != (b[0] & 0x01) {
		y.Sub(params.P, y)
	}
	if !curve.IsOnCurve(x, y) {
		return nil, nil
	}
	return x, y
}

// isInfinity reports whether p is the point at infinity.
func (p *PublicKey) isInfinity() bool {
	return p.X == nil || (p.X.Sign() == 0 && p.Y.Sign() == 0)
}

// Bytes returns the compressed 33-byte encoding of the public key, or a
// single 0x00 byte for the point at infinity.
func (p *PublicKey) Bytes() []byte {
	if p.isInfinity() {
		return []byte{0x00}
	}
	out := make([]byte, PublicKeyCompressedSize)
	out[0] = byte(0x02 + p.Y.Bit(0))
	xb := p.X.Bytes()
	copy(out[1+32-len(xb):], xb)
	return out
}

// String returns the hex encoding of the compressed public key.
func (p *PublicKey) String() string {
	return hex.EncodeToString(p.Bytes())
}

// Equal reports whether p and other encode the same point.
func (p *PublicKey) Equal(other *PublicKey) bool {
	if p == nil || other == nil {
		return p == other
	}
	return bytes.Equal(p.Bytes(), other.Bytes())
}

// GetVerificationScript builds the single-signature verification script
// for this public key: PUSHDATA1 <33-byte pubkey> SYSCALL CheckSig.
func (p *PublicKey) GetVerificationScript() []byte {
	pub := p.Bytes()
	script := make([]byte, 0, 2+len(pub)+5)
	script = append(script, 0x0C, byte(len(pub)))
	script = append(script, pub...)
	script = append(script, 0x41)
	var h [4]byte
	binary.LittleEndian.PutUint32(h[:], checkSigInteropHash)
	script = append(script, h[:]...)
	return script
}

// GetScriptHash returns the script hash of this key's single-sig
// verification script.
func (p *PublicKey) GetScriptHash() util.Uint160 {
	return hash.Hash160(p.GetVerificationScript())
}

// Address returns the Neo N3 address derived from this key's
// single-sig verification script.
func (p *PublicKey) Address() string {
	return address.Uint160ToString(p.GetScriptHash())
}

// EncodeBinary implements the io.Serializable interface.
func (p *PublicKey) EncodeBinary(w *io.BinWriter) {
	w.WriteBytes(p.Bytes())
}

// DecodeBinary implements the io.Serializable interface.
func (p *PublicKey) DecodeBinary(r *io.BinReader) {
	prefix := r.ReadB()
	if r.Err != nil {
		return
	}
	var b []byte
	switch prefix {
	case 0x00:
		b = []byte{0x00}
	case 0x02, 0x03:
		b = make([]byte, PublicKeyCompressedSize)
		b[0] = prefix
		r.ReadBytes(b[1:])
	case 0x04:
		b = make([]byte, 65)
		b[0] = prefix
		r.ReadBytes(b[1:])
	default:
		r.Err = ErrInvalidKeySize
		return
	}
	if r.Err != nil {
		return
	}
	pub, err := NewPublicKeyFromBytes(b)
	if err != nil {
		r.Err = err
		return
	}
	*p = *pub
}
