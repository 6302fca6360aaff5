package smartcontract

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/nspcc-dev/neo-go-sdk/pkg/io"
	"github.com/nspcc-dev/neo-go-sdk/pkg/smartcontract/callflag"
	"github.com/nspcc-dev/neo-go-sdk/pkg/util"
	"github.com/nspcc-dev/neo-go-sdk/pkg/vm/emit"
)

// contractCallHash is the interop method hash for "System.Contract.Call".
var contractCallHash = interopMethodHash("System.Contract.Call")

func interopMethodHash(name string) uint32 {
	h := sha256.Sum256([]byte(name))
	return binary.LittleEndian.Uint32(h[:4])
}

// Builder assembles an invocation script from a sequence of contract
// calls, the way an Actor or a CLI invocation command builds up the
// script sent with a transaction.
type Builder struct {
	bw *io.BufBinWriter
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{bw: io.NewBufBinWriter()}
}

// Len returns the number of bytes written to the builder so far.
func (b *Builder) Len() int {
	return b.bw.Len()
}

// Reset discards everything written to the builder so far.
func (b *Builder) Reset() {
	b.bw.Reset()
}

// InvokeMethod appends a call to method on the contract identified by
// hash with the given arguments, using callflag.All permissions.
func (b *Builder) InvokeMethod(hash util.Uint160, method string, args ...any) {
	emit.Array(b.bw.BinWriter, args...)
	emit.Int(b.bw.BinWriter, int64(callflag.All))
	emit.String(b.bw.BinWriter, method)
	emit.Bytes(b.bw.BinWriter, hash.BytesLE())
	emit.Syscall(b.bw.BinWriter, contractCallHash)
}

// Script returns the assembled script, or an error if any instruction
// failed to emit.
func (b *Builder) Script() ([]byte, error) {
	if b.bw.Err != nil {
		return nil, b.bw.Err
	}
	return b.bw.Bytes(), nil
}
