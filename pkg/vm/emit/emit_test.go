package emit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nspcc-dev/neo-go-sdk/pkg/io"
	"github.com/nspcc-dev/neo-go-sdk/pkg/vm/opcode"
)

func TestEmitIntSmall(t *testing.T) {
	buf := io.NewBufBinWriter()
	Int(buf.BinWriter, 10)
	require.NoError(t, buf.Error())
	assert.Equal(t, []byte{byte(opcode.PUSH10)}, buf.Bytes())

	buf.Reset()
	Int(buf.BinWriter, -1)
	assert.Equal(t, []byte{byte(opcode.PUSHM1)}, buf.Bytes())

	buf.Reset()
	Int(buf.BinWriter, 16)
	assert.Equal(t, []byte{byte(opcode.PUSH16)}, buf.Bytes())
}

func TestEmitIntWide(t *testing.T) {
	buf := io.NewBufBinWriter()
	Int(buf.BinWriter, 100)
	require.NoError(t, buf.Error())
	assert.Equal(t, byte(opcode.PUSHINT8), buf.Bytes()[0])
	assert.Equal(t, byte(100), buf.Bytes()[1])

	buf.Reset()
	Int(buf.BinWriter, 1000)
	assert.Equal(t, byte(opcode.PUSHINT16), buf.Bytes()[0])
	assert.Equal(t, []byte{0xe8, 0x03}, buf.Bytes()[1:3])
}

func TestEmitBool(t *testing.T) {
	buf := io.NewBufBinWriter()
	Bool(buf.BinWriter, true)
	Bool(buf.BinWriter, false)
	require.NoError(t, buf.Error())
	assert.Equal(t, byte(opcode.PUSHT), buf.Bytes()[0])
	assert.Equal(t, byte(opcode.PUSHF), buf.Bytes()[1])
}

func TestEmitString(t *testing.T) {
	buf := io.NewBufBinWriter()
	str := "City Of Zion"
	String(buf.BinWriter, str)
	require.NoError(t, buf.Error())
	assert.Equal(t, byte(opcode.PUSHDATA1), buf.Bytes()[0])
	assert.Equal(t, byte(len(str)), buf.Bytes()[1])
	assert.Equal(t, []byte(str), buf.Bytes()[2:])
}

func TestEmitSyscall(t *testing.T) {
	buf := io.NewBufBinWriter()
	Syscall(buf.BinWriter, 0x56e7b327)
	require.NoError(t, buf.Error())
	assert.Equal(t, byte(opcode.SYSCALL), buf.Bytes()[0])
	assert.Equal(t, []byte{0x27, 0xb3, 0xe7, 0x56}, buf.Bytes()[1:5])
}

func TestEmitCall(t *testing.T) {
	buf := io.NewBufBinWriter()
	Call(buf.BinWriter, 100)
	require.NoError(t, buf.Error())
	assert.Equal(t, byte(opcode.CALLL), buf.Bytes()[0])
	assert.Equal(t, []byte{100, 0, 0, 0}, buf.Bytes()[1:5])
}
