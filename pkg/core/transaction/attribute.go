package transaction

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nspcc-dev/neo-go-sdk/pkg/io"
	"github.com/nspcc-dev/neo-go-sdk/pkg/util"
)

// AttrType is the tag byte identifying a transaction attribute's shape.
type AttrType byte

const (
	// HighPriority marks a transaction for priority inclusion; it
	// carries no payload.
	HighPriority AttrType = 0x01

	// OracleResponseT tags an OracleResponse attribute.
	OracleResponseT AttrType = 0x11

	// NotValidBeforeT tags a NotValidBefore attribute.
	NotValidBeforeT AttrType = 0x20

	// ConflictsT tags a Conflicts attribute.
	ConflictsT AttrType = 0x21

	// NotaryAssistedT tags a NotaryAssisted attribute.
	NotaryAssistedT AttrType = 0x22

	// ReservedLowerBound and ReservedUpperBound bound the range of
	// attribute types reserved for future extension; any reserved
	// value in between round-trips as an opaque Reserved payload.
	ReservedLowerBound AttrType = 0xe0
	ReservedUpperBound AttrType = 0xff
)

// AttrValue is the payload of a transaction attribute.
type AttrValue interface {
	EncodeBinary(w *io.BinWriter)
	DecodeBinary(r *io.BinReader)
	toJSONMap(m map[string]any)
}

// Attribute is a single transaction attribute: a type tag plus an
// optional payload (HighPriority carries none).
type Attribute struct {
	Type  AttrType
	Value AttrValue
}

// EncodeBinary implements the Serializable interface.
func (a *Attribute) EncodeBinary(bw *io.BinWriter) {
	if !isKnownAttrType(a.Type) {
		bw.Err = fmt.Errorf("unknown attribute type 0x%02x", byte(a.Type))
		return
	}
	bw.WriteB(byte(a.Type))
	if a.Value != nil {
		a.Value.EncodeBinary(bw)
	}
}

func isKnownAttrType(t AttrType) bool {
	switch t {
	case HighPriority, OracleResponseT, NotValidBeforeT, ConflictsT, NotaryAssistedT:
		return true
	default:
		return t >= ReservedLowerBound && t <= ReservedUpperBound
	}
}

// DecodeBinary implements the Serializable interface.
func (a *Attribute) DecodeBinary(br *io.BinReader) {
	t := AttrType(br.ReadB())
	if br.Err != nil {
		return
	}
	switch {
	case t == HighPriority:
		a.Value = nil
	case t == OracleResponseT:
		v := &OracleResponse{}
		v.DecodeBinary(br)
		a.Value = v
	case t == NotValidBeforeT:
		v := &NotValidBefore{}
		v.DecodeBinary(br)
		a.Value = v
	case t == ConflictsT:
		v := &Conflicts{}
		v.DecodeBinary(br)
		a.Value = v
	case t == NotaryAssistedT:
		v := &NotaryAssisted{}
		v.DecodeBinary(br)
		a.Value = v
	case t >= ReservedLowerBound && t <= ReservedUpperBound:
		v := &Reserved{}
		v.DecodeBinary(br)
		a.Value = v
	default:
		br.Err = fmt.Errorf("unknown attribute type 0x%02x", byte(t))
		return
	}
	a.Type = t
}

// MarshalJSON implements the json.Marshaler interface.
func (a *Attribute) MarshalJSON() ([]byte, error) {
	m := map[string]any{"type": attrTypeName(a.Type)}
	if a.Value != nil {
		a.Value.toJSONMap(m)
	}
	return json.Marshal(m)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (a *Attribute) UnmarshalJSON(data []byte) error {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	t, ok := attrTypeFromName(head.Type)
	if !ok {
		return fmt.Errorf("unknown attribute type: %q", head.Type)
	}
	switch t {
	case HighPriority:
		a.Value = nil
	case OracleResponseT:
		var v oracleResponseJSON
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		a.Value = &OracleResponse{ID: v.ID, Code: v.Code, Result: v.Result}
	case NotValidBeforeT:
		var v struct {
			Height uint32 `json:"height"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		a.Value = &NotValidBefore{Height: v.Height}
	case ConflictsT:
		var v struct {
			Hash util.Uint256 `json:"hash"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		a.Value = &Conflicts{Hash: v.Hash}
	case NotaryAssistedT:
		var v struct {
			NKeys byte `json:"nkeys"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		a.Value = &NotaryAssisted{NKeys: v.NKeys}
	default:
		return fmt.Errorf("unsupported attribute type for JSON: %q", head.Type)
	}
	a.Type = t
	return nil
}

var attrTypeNames = map[AttrType]string{
	HighPriority:    "HighPriority",
	OracleResponseT: "OracleResponse",
	NotValidBeforeT: "NotValidBefore",
	ConflictsT:      "Conflicts",
	NotaryAssistedT: "NotaryAssisted",
}

func attrTypeName(t AttrType) string {
	if n, ok := attrTypeNames[t]; ok {
		return n
	}
	return "Reserved"
}

func attrTypeFromName(s string) (AttrType, bool) {
	for t, n := range attrTypeNames {
		if n == s {
			return t, true
		}
	}
	return 0, false
}

// OracleResponseCode is the outcome of an oracle request.
type OracleResponseCode byte

const (
	Success               OracleResponseCode = 0x00
	ProtocolNotSupported  OracleResponseCode = 0x10
	ConsensusUnreachable  OracleResponseCode = 0x12
	NotFound              OracleResponseCode = 0x14
	Timeout               OracleResponseCode = 0x16
	Forbidden             OracleResponseCode = 0x18
	ResponseTooLarge      OracleResponseCode = 0x1a
	InsufficientFunds     OracleResponseCode = 0x1c
	Error                 OracleResponseCode = 0xff
)

// ErrInvalidResponseCode is returned when decoding an OracleResponse
// with an unrecognized code byte.
var ErrInvalidResponseCode = errors.New("invalid oracle response code")

// ErrInvalidResult is returned when decoding an OracleResponse whose
// result payload doesn't match its code (e.g. a non-empty result on error).
var ErrInvalidResult = errors.New("invalid oracle response result")

const maxOracleResult = 0xffff

// OracleResponse carries the data an oracle service returns for a
// previously issued request.
type OracleResponse struct {
	ID     uint64
	Code   OracleResponseCode
	Result []byte
}

// EncodeBinary implements the Serializable interface.
func (o *OracleResponse) EncodeBinary(w *io.BinWriter) {
	w.WriteU64LE(o.ID)
	w.WriteB(byte(o.Code))
	w.WriteVarBytes(o.Result)
}

// DecodeBinary implements the Serializable interface.
func (o *OracleResponse) DecodeBinary(r *io.BinReader) {
	o.ID = r.ReadU64LE()
	o.Code = OracleResponseCode(r.ReadB())
	o.Result = r.ReadVarBytes(maxOracleResult)
	if r.Err != nil {
		return
	}
	if !isValidResponseCode(o.Code) {
		r.Err = ErrInvalidResponseCode
		return
	}
	if o.Code != Success && len(o.Result) != 0 {
		r.Err = ErrInvalidResult
	}
}

func isValidResponseCode(c OracleResponseCode) bool {
	switch c {
	case Success, ProtocolNotSupported, ConsensusUnreachable, NotFound, Timeout,
		Forbidden, ResponseTooLarge, InsufficientFunds, Error:
		return true
	default:
		return false
	}
}

type oracleResponseJSON struct {
	ID     uint64 `json:"id"`
	Code   OracleResponseCode
	Result []byte `json:"result"`
}

func (v *oracleResponseJSON) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID     uint64 `json:"id"`
		Code   string `json:"code"`
		Result []byte `json:"result"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	code, ok := oracleCodeFromName(aux.Code)
	if !ok {
		return fmt.Errorf("unknown oracle response code: %q", aux.Code)
	}
	v.ID = aux.ID
	v.Code = code
	v.Result = aux.Result
	return nil
}

var oracleCodeNames = map[OracleResponseCode]string{
	Success:              "Success",
	ProtocolNotSupported: "ProtocolNotSupported",
	ConsensusUnreachable: "ConsensusUnreachable",
	NotFound:             "NotFound",
	Timeout:              "Timeout",
	Forbidden:            "Forbidden",
	ResponseTooLarge:     "ResponseTooLarge",
	InsufficientFunds:    "InsufficientFunds",
	Error:                "Error",
}

func oracleCodeFromName(s string) (OracleResponseCode, bool) {
	for c, n := range oracleCodeNames {
		if n == s {
			return c, true
		}
	}
	return 0, false
}

func (o *OracleResponse) toJSONMap(m map[string]any) {
	m["id"] = o.ID
	m["code"] = oracleCodeNames[o.Code]
	m["result"] = o.Result
}

// NotValidBefore makes a transaction invalid until the chain reaches
// the given height.
type NotValidBefore struct {
	Height uint32
}

// EncodeBinary implements the Serializable interface.
func (n *NotValidBefore) EncodeBinary(w *io.BinWriter) {
	w.WriteU32LE(n.Height)
}

// DecodeBinary implements the Serializable interface.
func (n *NotValidBefore) DecodeBinary(r *io.BinReader) {
	n.Height = r.ReadU32LE()
}

func (n *NotValidBefore) toJSONMap(m map[string]any) {
	m["height"] = n.Height
}

// Conflicts declares that this transaction invalidates another
// transaction with the given hash if both end up in the same block.
type Conflicts struct {
	Hash util.Uint256
}

// EncodeBinary implements the Serializable interface.
func (c *Conflicts) EncodeBinary(w *io.BinWriter) {
	w.WriteBytes(c.Hash.BytesBE())
}

// DecodeBinary implements the Serializable interface.
func (c *Conflicts) DecodeBinary(r *io.BinReader) {
	var b [util.Uint256Size]byte
	r.ReadBytes(b[:])
	if r.Err != nil {
		return
	}
	h, err := util.Uint256DecodeBytesBE(b[:])
	if err != nil {
		r.Err = err
		return
	}
	c.Hash = h
}

func (c *Conflicts) toJSONMap(m map[string]any) {
	m["hash"] = c.Hash
}

// NotaryAssisted records how many signature witnesses a notary
// service is expected to add to the transaction.
type NotaryAssisted struct {
	NKeys byte
}

// EncodeBinary implements the Serializable interface.
func (n *NotaryAssisted) EncodeBinary(w *io.BinWriter) {
	w.WriteB(n.NKeys)
}

// DecodeBinary implements the Serializable interface.
func (n *NotaryAssisted) DecodeBinary(r *io.BinReader) {
	n.NKeys = r.ReadB()
}

func (n *NotaryAssisted) toJSONMap(m map[string]any) {
	m["nkeys"] = n.NKeys
}

// Reserved is an opaque attribute payload for the reserved type range,
// kept intact across decode/encode without interpretation.
type Reserved struct {
	Value []byte
}

const maxReservedValue = 0xffff

// EncodeBinary implements the Serializable interface.
func (r *Reserved) EncodeBinary(w *io.BinWriter) {
	w.WriteVarBytes(r.Value)
}

// DecodeBinary implements the Serializable interface.
func (r *Reserved) DecodeBinary(br *io.BinReader) {
	r.Value = br.ReadVarBytes(maxReservedValue)
}

func (r *Reserved) toJSONMap(m map[string]any) {
	m["value"] = r.Value
}
