package keys

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"sort"

	"github.com/nspcc-dev/neo-go-sdk/pkg/crypto/hash"
	"github.com/nspcc-dev/neo-go-sdk/pkg/io"
	"github.com/nspcc-dev/neo-go-sdk/pkg/util"
)

// checkMultisigInteropHash is the 4-byte little-endian interop method
// hash for "System.Crypto.CheckMultisig".
var checkMultisigInteropHash = interopMethodHash("System.Crypto.CheckMultisig")

func interopMethodHash(name string) uint32 {
	h := sha256.Sum256([]byte(name))
	return binary.LittleEndian.Uint32(h[:4])
}

// PublicKeys is a list of public keys, sortable by their compressed
// byte encoding the way the node orders keys in a multisig account.
type PublicKeys []*PublicKey

func (keys PublicKeys) Len() int      { return len(keys) }
func (keys PublicKeys) Swap(i, j int) { keys[i], keys[j] = keys[j], keys[i] }
func (keys PublicKeys) Less(i, j int) bool {
	return bytes.Compare(keys[i].Bytes(), keys[j].Bytes()) == -1
}

// Contains reports whether pub is present among keys.
func (keys PublicKeys) Contains(pub *PublicKey) bool {
	for _, k := range keys {
		if k.Bytes() != nil && pub.Bytes() != nil && string(k.Bytes()) == string(pub.Bytes()) {
			return true
		}
	}
	return false
}

// Unique returns a copy of keys with duplicate entries removed,
// preserving the first occurrence of each key.
func (keys PublicKeys) Unique() PublicKeys {
	seen := make(map[string]struct{}, len(keys))
	out := make(PublicKeys, 0, len(keys))
	for _, k := range keys {
		s := string(k.Bytes())
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, k)
	}
	return out
}

// ErrInvalidMultisigThreshold is returned by GetVerificationScript when
// m is outside the valid [1, len(keys)] range.
var ErrInvalidMultisigThreshold = errors.New("invalid multisig threshold")

// GetVerificationScript builds the m-of-n multisig verification script
// for the sorted key set: PUSH(m) <pubkeys...> PUSH(n) SYSCALL
// CheckMultisig.
func (keys PublicKeys) GetVerificationScript(m int) ([]byte, error) {
	n := len(keys)
	if m < 1 || m > n {
		return nil, ErrInvalidMultisigThreshold
	}
	sorted := make(PublicKeys, n)
	copy(sorted, keys)
	sort.Sort(sorted)

	var buf bytes.Buffer
	writePushInt(&buf, m)
	for _, k := range sorted {
		pub := k.Bytes()
		buf.WriteByte(0x0C)
		buf.WriteByte(byte(len(pub)))
		buf.Write(pub)
	}
	writePushInt(&buf, n)
	buf.WriteByte(0x41)
	var h [4]byte
	binary.LittleEndian.PutUint32(h[:], checkMultisigInteropHash)
	buf.Write(h[:])
	return buf.Bytes(), nil
}

// ErrNotAMultisigContract is returned by ParseMultiSigContract when
// script isn't a valid m-of-n multisig verification script.
var ErrNotAMultisigContract = errors.New("not a multisig contract")

// ParseMultiSigContract parses script as an m-of-n multisig
// verification script, recovering the threshold and the (sorted)
// member public keys GetVerificationScript encoded into it.
func ParseMultiSigContract(script []byte) (int, PublicKeys, error) {
	r := bytes.NewReader(script)
	m, err := readPushInt(r)
	if err != nil {
		return 0, nil, ErrNotAMultisigContract
	}
	var pubs PublicKeys
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, nil, ErrNotAMultisigContract
		}
		if b != 0x0C {
			if err := r.UnreadByte(); err != nil {
				return 0, nil, ErrNotAMultisigContract
			}
			break
		}
		l, err := r.ReadByte()
		if err != nil {
			return 0, nil, ErrNotAMultisigContract
		}
		buf := make([]byte, l)
		if err := readExact(r, buf); err != nil {
			return 0, nil, ErrNotAMultisigContract
		}
		pub, err := NewPublicKeyFromBytes(buf)
		if err != nil {
			return 0, nil, ErrNotAMultisigContract
		}
		pubs = append(pubs, pub)
	}
	n, err := readPushInt(r)
	if err != nil || n != len(pubs) {
		return 0, nil, ErrNotAMultisigContract
	}
	if m < 1 || m > n {
		return 0, nil, ErrNotAMultisigContract
	}
	opcode, err := r.ReadByte()
	if err != nil || opcode != 0x41 {
		return 0, nil, ErrNotAMultisigContract
	}
	var h [4]byte
	if err := readExact(r, h[:]); err != nil {
		return 0, nil, ErrNotAMultisigContract
	}
	if binary.LittleEndian.Uint32(h[:]) != checkMultisigInteropHash {
		return 0, nil, ErrNotAMultisigContract
	}
	if r.Len() != 0 {
		return 0, nil, ErrNotAMultisigContract
	}
	return m, pubs, nil
}

func readExact(r *bytes.Reader, buf []byte) error {
	n, err := r.Read(buf)
	if err != nil {
		return err
	}
	if n != len(buf) {
		return errors.New("unexpected end of script")
	}
	return nil
}

func readPushInt(r *bytes.Reader) (int, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	switch {
	case b == 0x0F:
		return -1, nil
	case b >= 0x10 && b <= 0x20:
		return int(b - 0x10), nil
	case b == 0x00:
		l, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		buf := make([]byte, l)
		if err := readExact(r, buf); err != nil {
			return 0, err
		}
		if len(buf) == 0 {
			return 0, errors.New("empty integer push")
		}
		v := int(int8(buf[len(buf)-1]))
		for i := len(buf) - 2; i >= 0; i-- {
			v = v<<8 | int(buf[i])
		}
		return v, nil
	default:
		return 0, errors.New("not a push-int opcode")
	}
}

func writePushInt(buf *bytes.Buffer, v int) {
	switch {
	case v == -1:
		buf.WriteByte(0x0F)
	case v >= 0 && v <= 16:
		buf.WriteByte(byte(0x10 + v))
	default:
		b := []byte{byte(v)}
		buf.WriteByte(0x00)
		buf.WriteByte(byte(len(b)))
		buf.Write(b)
	}
}

// GetScriptHash returns the script hash of the m-of-n multisig
// verification script built from keys.
func (keys PublicKeys) GetScriptHash(m int) (util.Uint160, error) {
	script, err := keys.GetVerificationScript(m)
	if err != nil {
		return util.Uint160{}, err
	}
	return hash.Hash160(script), nil
}

// EncodeBinary implements the io.Serializable-style bulk encoder: a
// var-uint count followed by each key's binary encoding.
func (keys PublicKeys) EncodeBinary(w *io.BinWriter) {
	w.WriteVarUint(uint64(len(keys)))
	for _, k := range keys {
		k.EncodeBinary(w)
	}
}

// DecodeBinary implements the matching bulk decoder.
func (keys *PublicKeys) DecodeBinary(r *io.BinReader) {
	n := r.ReadVarUint()
	if r.Err != nil {
		return
	}
	out := make(PublicKeys, n)
	for i := range out {
		pub := &PublicKey{}
		pub.DecodeBinary(r)
		if r.Err != nil {
			return
		}
		out[i] = pub
	}
	*keys = out
}
