package keys

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"math/big"
)

// ECDSASignature is an (r, s) signature pair over secp256r1.
type ECDSASignature struct {
	R, S *big.Int
}

// halfOrder is half of secp256r1's group order N, used to decide whether
// an S value needs flipping to its canonical (low-S) form.
var halfOrder = new(big.Int).Rsh(elliptic.P256().Params().N, 1)

// MakeCanonical flips S to N-S whenever S is in the upper half of the
// group order, matching Neo's canonical low-S signature convention.
func (sig *ECDSASignature) MakeCanonical() {
	if sig.S.Cmp(halfOrder) > 0 {
		sig.S = new(big.Int).Sub(elliptic.P256().Params().N, sig.S)
	}
}

// Bytes returns the 64-byte compact (R || S) encoding of the signature,
// each component left-padded to 32 bytes.
func (sig *ECDSASignature) Bytes() []byte {
	out := make([]byte, 64)
	rb := sig.R.Bytes()
	sb := sig.S.Bytes()
	copy(out[32-len(rb):32], rb)
	copy(out[64-len(sb):64], sb)
	return out
}

// signatureFromBytes parses a 64-byte compact (R || S) signature.
func signatureFromBytes(b []byte) (*ECDSASignature, error) {
	if len(b) != 64 {
		return nil, ErrInvalidSignature
	}
	return &ECDSASignature{
		R: new(big.Int).SetBytes(b[:32]),
		S: new(big.Int).SetBytes(b[32:]),
	}, nil
}

// Verify reports whether signature is a valid secp256r1 signature by
// this public key over digest, a 32-byte message digest.
func (p *PublicKey) Verify(signature []byte, digest []byte) bool {
	if p.Curve == nil || p.X == nil || p.Y == nil {
		return false
	}
	sig, err := signatureFromBytes(signature)
	if err != nil {
		return false
	}
	pub := &ecdsa.PublicKey{Curve: p.Curve, X: p.X, Y: p.Y}
	return ecdsa.Verify(pub, digest, sig.R, sig.S)
}
