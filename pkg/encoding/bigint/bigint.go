// Package bigint implements the minimal little-endian two's-complement
// integer encoding the Neo VM uses for PUSHINT{8,16,32,64,128,256}
// operands and for decoding Integer stack items from RPC results.
package bigint

import "math/big"

// ToBytes converts v into its minimal little-endian two's-complement
// byte representation, the same one the script builder's push-integer
// emission and the VM's Integer stack item use.
func ToBytes(v *big.Int) []byte {
	if v.Sign() == 0 {
		return []byte{}
	}
	isNeg := v.Sign() < 0

	var abs big.Int
	abs.Abs(v)
	bs := abs.Bytes() // big-endian, no leading zero byte

	// Reverse into little-endian.
	for i, j := 0, len(bs)-1; i < j; i, j = i+1, j-1 {
		bs[i], bs[j] = bs[j], bs[i]
	}

	if !isNeg {
		// Pad with a zero byte if the top bit is set, so the value
		// isn't misread as negative.
		if len(bs) > 0 && bs[len(bs)-1]&0x80 != 0 {
			bs = append(bs, 0)
		}
		return bs
	}

	// Two's complement: invert and add one (in little-endian).
	carry := byte(1)
	for i := range bs {
		bs[i] = ^bs[i]
		sum := uint16(bs[i]) + uint16(carry)
		bs[i] = byte(sum)
		carry = byte(sum >> 8)
	}
	if carry != 0 {
		bs = append(bs, carry)
	}
	if len(bs) > 0 && bs[len(bs)-1]&0x80 == 0 {
		bs = append(bs, 0xff)
	}
	return bs
}

// FromBytes decodes a little-endian two's-complement byte slice (as
// produced by ToBytes, or read off the wire/VM stack) into a big.Int.
func FromBytes(data []byte) *big.Int {
	if len(data) == 0 {
		return big.NewInt(0)
	}
	neg := data[len(data)-1]&0x80 != 0

	be := make([]byte, len(data))
	for i, b := range data {
		be[len(data)-i-1] = b
	}

	v := new(big.Int).SetBytes(be)
	if !neg {
		return v
	}

	mod := new(big.Int).Lsh(big.NewInt(1), uint(len(data)*8))
	v.Sub(v, mod)
	return v
}
