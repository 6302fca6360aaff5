// Package nef implements the Neo Executable Format container that
// wraps a compiled contract's VM script together with the compiler
// metadata and method tokens needed to deploy and verify it.
package nef

import (
	"encoding/json"
	"errors"

	"github.com/nspcc-dev/neo-go-sdk/pkg/crypto/hash"
	"github.com/nspcc-dev/neo-go-sdk/pkg/io"
)

// Magic is the 4-byte value identifying a NEF3 file.
const Magic uint32 = 0x3346454E

// compilerFieldSize is the fixed width, in bytes, of the Header's
// Compiler field on the wire.
const compilerFieldSize = 64

// MaxScriptLength is the maximum allowed length of a contract's script.
const MaxScriptLength = 512 * 1024

var (
	errInvalidMagic    = errors.New("invalid nef magic")
	errInvalidChecksum = errors.New("invalid checksum")
	errInvalidReserved = errors.New("reserved bytes must be zero")
	errEmptyScript     = errors.New("script cannot be empty")
	errScriptTooLong   = errors.New("script is too long")
)

// Header is the fixed leading section of a File.
type Header struct {
	// Magic must equal Magic.
	Magic uint32 `json:"magic"`
	// Compiler identifies the compiler (and optionally its version)
	// that produced the script.
	Compiler string `json:"compiler"`
}

// EncodeBinary implements the io.Serializable interface.
func (h *Header) EncodeBinary(w *io.BinWriter) {
	w.WriteU32LE(h.Magic)
	if len(h.Compiler) > compilerFieldSize {
		w.Err = errors.New("compiler field too long")
		return
	}
	b := make([]byte, compilerFieldSize)
	copy(b, h.Compiler)
	w.WriteBytes(b)
}

// DecodeBinary implements the io.Serializable interface.
func (h *Header) DecodeBinary(r *io.BinReader) {
	h.Magic = r.ReadU32LE()
	if r.Err == nil && h.Magic != Magic {
		r.Err = errInvalidMagic
		return
	}
	b := make([]byte, compilerFieldSize)
	r.ReadBytes(b)
	if r.Err != nil {
		return
	}
	n := 0
	for n < len(b) && b[n] != 0 {
		n++
	}
	h.Compiler = string(b[:n])
}

// File is the full, deserialized contents of a NEF3 file: the script
// a contract runs plus the metadata needed to verify and deploy it.
type File struct {
	Header   Header
	Tokens   []MethodToken `json:"tokens"`
	Script   []byte        `json:"script"`
	Checksum uint32        `json:"checksum"`
}

type nefMarshaled struct {
	Magic    uint32        `json:"magic"`
	Compiler string        `json:"compiler"`
	Tokens   []MethodToken `json:"tokens"`
	Script   []byte        `json:"script"`
	Checksum uint32        `json:"checksum"`
}

// MarshalJSON implements the json.Marshaler interface.
func (n *File) MarshalJSON() ([]byte, error) {
	return json.Marshal(nefMarshaled{
		Magic:    n.Header.Magic,
		Compiler: n.Header.Compiler,
		Tokens:   n.Tokens,
		Script:   n.Script,
		Checksum: n.Checksum,
	})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (n *File) UnmarshalJSON(data []byte) error {
	var aux nefMarshaled
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	n.Header = Header{Magic: aux.Magic, Compiler: aux.Compiler}
	n.Tokens = aux.Tokens
	n.Script = aux.Script
	n.Checksum = aux.Checksum
	return nil
}

// CalculateChecksum returns the checksum of n's serialized form (the
// header, tokens and script, excluding the trailing 4-byte checksum
// field itself).
func (n *File) CalculateChecksum() uint32 {
	w := io.NewBufBinWriter()
	n.encodeWithoutChecksum(w.BinWriter)
	if w.Err != nil {
		return 0
	}
	return hash.Checksum(w.Bytes())
}

func (n *File) encodeWithoutChecksum(w *io.BinWriter) {
	n.Header.EncodeBinary(w)
	w.WriteBytes(make([]byte, 2))
	w.WriteArray(n.Tokens)
	w.WriteBytes(make([]byte, 2))
	w.WriteVarBytes(n.Script)
}

// EncodeBinary implements the io.Serializable interface.
func (n *File) EncodeBinary(w *io.BinWriter) {
	n.encodeWithoutChecksum(w)
	w.WriteU32LE(n.Checksum)
}

// DecodeBinary implements the io.Serializable interface.
func (n *File) DecodeBinary(r *io.BinReader) {
	n.Header.DecodeBinary(r)
	if r.Err != nil {
		return
	}
	reserved := make([]byte, 2)
	r.ReadBytes(reserved)
	if r.Err != nil {
		return
	}
	if reserved[0] != 0 || reserved[1] != 0 {
		r.Err = errInvalidReserved
		return
	}
	r.ReadArray(&n.Tokens)
	if r.Err != nil {
		return
	}
	r.ReadBytes(reserved)
	if r.Err != nil {
		return
	}
	if reserved[0] != 0 || reserved[1] != 0 {
		r.Err = errInvalidReserved
		return
	}
	n.Script = r.ReadVarBytes(MaxScriptLength)
	if r.Err != nil {
		return
	}
	if len(n.Script) == 0 {
		r.Err = errEmptyScript
		return
	}
	if len(n.Script) > MaxScriptLength {
		r.Err = errScriptTooLong
		return
	}
	n.Checksum = r.ReadU32LE()
	if r.Err != nil {
		return
	}
	if n.Checksum != n.CalculateChecksum() {
		r.Err = errInvalidChecksum
	}
}

// Bytes returns the full binary encoding of n.
func (n *File) Bytes() ([]byte, error) {
	w := io.NewBufBinWriter()
	n.EncodeBinary(w.BinWriter)
	if w.Err != nil {
		return nil, w.Err
	}
	return w.Bytes(), nil
}

// FileFromBytes decodes a File from its binary encoding.
func FileFromBytes(data []byte) (File, error) {
	r := io.NewBinReaderFromBuf(data)
	f := File{}
	f.DecodeBinary(r)
	if r.Err != nil {
		return File{}, r.Err
	}
	return f, nil
}
