// Package io implements the length-prefixed little-endian binary codec
// used by every wire-visible Neo structure, following the same
// BinWriter/BinReader split the node uses for block and transaction
// (de)serialization.
package io

import (
	"encoding/binary"
	"io"
	"math"
)

// BinWriter is a convenient wrapper around an io.Writer that collects
// an error instead of returning it from every call, so a sequence of
// writes can be checked once at the end.
type BinWriter struct {
	w   io.Writer
	buf [8]byte
	Err error
}

// NewBinWriterFromIO makes a BinWriter from a given io.Writer.
func NewBinWriterFromIO(iow io.Writer) *BinWriter {
	return &BinWriter{w: iow}
}

// WriteU64LE writes a uint64 value into the underlying stream as little-endian.
func (w *BinWriter) WriteU64LE(u64 uint64) {
	if w.Err != nil {
		return
	}
	binary.LittleEndian.PutUint64(w.buf[:8], u64)
	w.WriteBytes(w.buf[:8])
}

// WriteU32LE writes a uint32 value into the underlying stream as little-endian.
func (w *BinWriter) WriteU32LE(u32 uint32) {
	if w.Err != nil {
		return
	}
	binary.LittleEndian.PutUint32(w.buf[:4], u32)
	w.WriteBytes(w.buf[:4])
}

// WriteU16LE writes a uint16 value into the underlying stream as little-endian.
func (w *BinWriter) WriteU16LE(u16 uint16) {
	if w.Err != nil {
		return
	}
	binary.LittleEndian.PutUint16(w.buf[:2], u16)
	w.WriteBytes(w.buf[:2])
}

// WriteU16BE writes a uint16 value into the underlying stream as big-endian.
func (w *BinWriter) WriteU16BE(u16 uint16) {
	if w.Err != nil {
		return
	}
	binary.BigEndian.PutUint16(w.buf[:2], u16)
	w.WriteBytes(w.buf[:2])
}

// WriteB writes a single byte into the underlying stream.
func (w *BinWriter) WriteB(u8 byte) {
	if w.Err != nil {
		return
	}
	w.buf[0] = u8
	w.WriteBytes(w.buf[:1])
}

// WriteBool writes a boolean value into the underlying stream as a single byte.
func (w *BinWriter) WriteBool(b bool) {
	var i byte
	if b {
		i = 1
	}
	w.WriteB(i)
}

// WriteArray writes an array of Serializable items (or a slice/array whose
// elements implement Serializable via a pointer receiver) into the
// underlying stream, prefixing it with a var-int length.
func (w *BinWriter) WriteArray(arr any) {
	if w.Err != nil {
		return
	}
	switch val := arr.(type) {
	case []Serializable:
		w.WriteVarUint(uint64(len(val)))
		for _, el := range val {
			el.EncodeBinary(w)
			if w.Err != nil {
				return
			}
		}
		return
	}
	writeReflectArray(w, arr)
}

// WriteVarUint writes a uint64 into the underlying stream using the
// variable-length encoding from the Neo wire format.
func (w *BinWriter) WriteVarUint(val uint64) {
	if w.Err != nil {
		return
	}
	if val < 0xfd {
		w.WriteB(byte(val))
		return
	}
	if val < 0xFFFF {
		w.WriteB(0xfd)
		w.WriteU16LE(uint16(val))
		return
	}
	if val < 0xFFFFFFFF {
		w.WriteB(0xfe)
		w.WriteU32LE(uint32(val))
		return
	}
	w.WriteB(0xff)
	w.WriteU64LE(val)
}

// WriteVarBytes writes a variable-length byte array into the underlying
// stream as a var-int length followed by the bytes themselves.
func (w *BinWriter) WriteVarBytes(b []byte) {
	w.WriteVarUint(uint64(len(b)))
	w.WriteBytes(b)
}

// WriteString writes a variable-length UTF-8 string into the underlying stream.
func (w *BinWriter) WriteString(s string) {
	w.WriteVarBytes([]byte(s))
}

// WriteBytes writes a fixed-size byte array into the underlying stream.
func (w *BinWriter) WriteBytes(b []byte) {
	if w.Err != nil {
		return
	}
	_, w.Err = w.w.Write(b)
}

// Err-preserving float writer kept for completeness of the numeric wire
// types some contract parameters need when round-tripping via invoke results.
func (w *BinWriter) writeFloat64LE(f float64) {
	w.WriteU64LE(math.Float64bits(f))
}
