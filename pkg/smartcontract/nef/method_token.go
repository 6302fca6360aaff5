package nef

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"

	"github.com/nspcc-dev/neo-go-sdk/pkg/io"
	"github.com/nspcc-dev/neo-go-sdk/pkg/smartcontract/callflag"
	"github.com/nspcc-dev/neo-go-sdk/pkg/util"
)

// maxMethodLength is the maximum length of a MethodToken's Method name.
const maxMethodLength = 32

// errInvalidMethodName is returned when a token's method name is too
// long or starts with an underscore (reserved for compiler internals).
var errInvalidMethodName = errors.New("invalid method name")

// errInvalidCallFlag is returned when a token's CallFlag is not a
// subset of callflag.All.
var errInvalidCallFlag = errors.New("invalid call flag")

// MethodToken describes a single static call a contract's script makes
// into another contract, resolved at deployment time instead of being
// looked up dynamically.
type MethodToken struct {
	// Hash is the called contract's script hash.
	Hash util.Uint160 `json:"hash"`
	// Method is the name of the method called.
	Method string `json:"method"`
	// ParamCount is the number of parameters the method takes.
	ParamCount uint16 `json:"paramcount"`
	// HasReturn is true if the method returns a value.
	HasReturn bool `json:"hasreturnvalue"`
	// CallFlag is the set of permissions the call is allowed to use.
	CallFlag callflag.CallFlag `json:"callflags"`
}

// EncodeBinary implements the io.Serializable interface.
func (t *MethodToken) EncodeBinary(w *io.BinWriter) {
	w.WriteBytes(t.Hash.BytesLE())
	w.WriteString(t.Method)
	w.WriteU16LE(t.ParamCount)
	w.WriteBool(t.HasReturn)
	w.WriteB(byte(t.CallFlag))
}

// DecodeBinary implements the io.Serializable interface.
func (t *MethodToken) DecodeBinary(r *io.BinReader) {
	b := make([]byte, util.Uint160Size)
	r.ReadBytes(b)
	if r.Err == nil {
		t.Hash, r.Err = util.Uint160DecodeBytesLE(b)
	}
	if r.Err != nil {
		return
	}
	t.Method = r.ReadString()
	t.ParamCount = r.ReadU16LE()
	t.HasReturn = r.ReadBool()
	t.CallFlag = callflag.CallFlag(r.ReadB())
	if r.Err != nil {
		return
	}
	if len(t.Method) == 0 || len(t.Method) > maxMethodLength || strings.HasPrefix(t.Method, "_") {
		r.Err = errInvalidMethodName
		return
	}
	if t.CallFlag&^callflag.All != 0 {
		r.Err = errInvalidCallFlag
	}
}

// methodTokenAux mirrors the wire JSON shape: the contract hash in the
// node's reversed-hex convention, and the call flags as a bare integer
// rather than callflag.CallFlag's own name-based JSON form.
type methodTokenAux struct {
	Hash       string `json:"hash"`
	Method     string `json:"method"`
	ParamCount uint16 `json:"paramcount"`
	HasReturn  bool   `json:"hasreturnvalue"`
	CallFlag   byte   `json:"callflags"`
}

// MarshalJSON implements the json.Marshaler interface.
func (t MethodToken) MarshalJSON() ([]byte, error) {
	return json.Marshal(methodTokenAux{
		Hash:       "0x" + t.Hash.StringLE(),
		Method:     t.Method,
		ParamCount: t.ParamCount,
		HasReturn:  t.HasReturn,
		CallFlag:   byte(t.CallFlag),
	})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (t *MethodToken) UnmarshalJSON(data []byte) error {
	var aux methodTokenAux
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	b, err := hex.DecodeString(strings.TrimPrefix(aux.Hash, "0x"))
	if err != nil {
		return err
	}
	u, err := util.Uint160DecodeBytesLE(b)
	if err != nil {
		return err
	}
	t.Hash = u
	t.Method = aux.Method
	t.ParamCount = aux.ParamCount
	t.HasReturn = aux.HasReturn
	t.CallFlag = callflag.CallFlag(aux.CallFlag)
	return nil
}
