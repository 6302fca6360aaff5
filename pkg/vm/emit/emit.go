// Package emit implements the low-level instruction writers the script
// builder composes into full verification and invocation scripts: push
// an integer, a boolean, raw bytes, or a syscall, one opcode at a time.
package emit

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/nspcc-dev/neo-go-sdk/pkg/encoding/bigint"
	"github.com/nspcc-dev/neo-go-sdk/pkg/io"
	"github.com/nspcc-dev/neo-go-sdk/pkg/util"
	"github.com/nspcc-dev/neo-go-sdk/pkg/vm/opcode"
)

// ErrIntegerTooBig is set on the writer's Err when BigInt is asked to
// push a value wider than PUSHINT256 supports.
var ErrIntegerTooBig = errors.New("integer too big to push onto the stack")

// Instruction writes a single opcode followed by its raw operand bytes.
func Instruction(w *io.BinWriter, op opcode.Opcode, operand []byte) {
	w.WriteB(byte(op))
	if len(operand) > 0 {
		w.WriteBytes(operand)
	}
}

// Opcode writes a single opcode with no operand.
func Opcode(w *io.BinWriter, op opcode.Opcode) {
	w.WriteB(byte(op))
}

// Int emits the shortest encoding of v: PUSHM1/PUSH0..PUSH16 for the
// [-1, 16] range every script uses for small constants, or a
// PUSHINT{8,16,32,64,128,256} with v's minimal little-endian two's
// complement encoding otherwise.
func Int(w *io.BinWriter, v int64) {
	if v >= -1 && v <= 16 {
		Opcode(w, opcode.PUSHM1+opcode.Opcode(v+1))
		return
	}
	BigInt(w, big.NewInt(v))
}

// BigInt emits the PUSHINT variant matching the byte length of v's
// minimal two's complement encoding, rounded up to the next supported
// width (1, 2, 4, 8, 16, or 32 bytes).
func BigInt(w *io.BinWriter, v *big.Int) {
	b := bigint.ToBytes(v)
	n := len(b)
	var op opcode.Opcode
	var width int
	switch {
	case n <= 1:
		op, width = opcode.PUSHINT8, 1
	case n <= 2:
		op, width = opcode.PUSHINT16, 2
	case n <= 4:
		op, width = opcode.PUSHINT32, 4
	case n <= 8:
		op, width = opcode.PUSHINT64, 8
	case n <= 16:
		op, width = opcode.PUSHINT128, 16
	case n <= 32:
		op, width = opcode.PUSHINT256, 32
	default:
		w.Err = ErrIntegerTooBig
		return
	}
	padded := make([]byte, width)
	copy(padded, b)
	if v.Sign() < 0 {
		for i := n; i < width; i++ {
			padded[i] = 0xff
		}
	}
	Instruction(w, op, padded)
}

// Bool emits PUSHT or PUSHF.
func Bool(w *io.BinWriter, b bool) {
	if b {
		Opcode(w, opcode.PUSHT)
		return
	}
	Opcode(w, opcode.PUSHF)
}

// Bytes emits the shortest PUSHDATA variant for b.
func Bytes(w *io.BinWriter, b []byte) {
	n := len(b)
	switch {
	case n <= 0xff:
		w.WriteB(byte(opcode.PUSHDATA1))
		w.WriteB(byte(n))
	case n <= 0xffff:
		w.WriteB(byte(opcode.PUSHDATA2))
		w.WriteU16LE(uint16(n))
	default:
		w.WriteB(byte(opcode.PUSHDATA4))
		w.WriteU32LE(uint32(n))
	}
	w.WriteBytes(b)
}

// String emits s as raw UTF-8 bytes via Bytes.
func String(w *io.BinWriter, s string) {
	Bytes(w, []byte(s))
}

// Syscall emits a SYSCALL instruction invoking the interop method whose
// 4-byte little-endian hash is interopHash.
func Syscall(w *io.BinWriter, interopHash uint32) {
	operand := make([]byte, 4)
	operand[0] = byte(interopHash)
	operand[1] = byte(interopHash >> 8)
	operand[2] = byte(interopHash >> 16)
	operand[3] = byte(interopHash >> 24)
	Instruction(w, opcode.SYSCALL, operand)
}

// Array emits code that pushes arr onto the stack as a VM array: every
// element is pushed in reverse order, followed by the element count
// and a PACK. Elements may be nil, bool, an integer, *big.Int, []byte,
// string, util.Uint160, util.Uint256, or a nested []any built from the
// same set, matching the shapes ExpandParameterToEmitable produces.
func Array(w *io.BinWriter, arr ...any) {
	if len(arr) == 0 {
		Opcode(w, opcode.NEWARRAY0)
		return
	}
	for i := len(arr) - 1; i >= 0; i-- {
		if w.Err != nil {
			return
		}
		switch v := arr[i].(type) {
		case []any:
			Array(w, v...)
		case int:
			Int(w, int64(v))
		case int64:
			Int(w, v)
		case *big.Int:
			BigInt(w, v)
		case []byte:
			Bytes(w, v)
		case string:
			String(w, v)
		case bool:
			Bool(w, v)
		case util.Uint160:
			Bytes(w, v.BytesBE())
		case util.Uint256:
			Bytes(w, v.BytesBE())
		case nil:
			Opcode(w, opcode.PUSHNULL)
		default:
			w.Err = fmt.Errorf("unsupported array element of type %T", v)
			return
		}
	}
	Int(w, int64(len(arr)))
	Opcode(w, opcode.PACK)
}

// Call emits a CALL_L instruction to a 4-byte relative offset, used by
// the script builder for forward references resolved after the full
// script is assembled.
func Call(w *io.BinWriter, offset int32) {
	operand := make([]byte, 4)
	operand[0] = byte(offset)
	operand[1] = byte(offset >> 8)
	operand[2] = byte(offset >> 16)
	operand[3] = byte(offset >> 24)
	Instruction(w, opcode.CALLL, operand)
}
