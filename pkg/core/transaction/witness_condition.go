package transaction

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nspcc-dev/neo-go-sdk/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go-sdk/pkg/io"
	"github.com/nspcc-dev/neo-go-sdk/pkg/util"
)

// WitnessConditionType is the tag byte identifying a WitnessCondition's
// concrete shape on the wire and in JSON.
type WitnessConditionType byte

const (
	WitnessBoolean          WitnessConditionType = 0x00
	WitnessNot              WitnessConditionType = 0x01
	WitnessAnd              WitnessConditionType = 0x02
	WitnessOr               WitnessConditionType = 0x03
	WitnessScriptHash       WitnessConditionType = 0x18
	WitnessGroup            WitnessConditionType = 0x19
	WitnessCalledByEntry    WitnessConditionType = 0x20
	WitnessCalledByContract WitnessConditionType = 0x28
	WitnessCalledByGroup    WitnessConditionType = 0x29
)

// maxSubitems bounds the number of children an And/Or condition may
// carry, so a malicious witness rule can't force unbounded recursion.
const maxSubitems = 16

// maxConditionNesting bounds how deep a Not condition may be nested.
const maxConditionNesting = 2

var conditionTypeNames = map[WitnessConditionType]string{
	WitnessBoolean:          "Boolean",
	WitnessNot:              "Not",
	WitnessAnd:              "And",
	WitnessOr:               "Or",
	WitnessScriptHash:       "ScriptHash",
	WitnessGroup:            "Group",
	WitnessCalledByEntry:    "CalledByEntry",
	WitnessCalledByContract: "CalledByContract",
	WitnessCalledByGroup:    "CalledByGroup",
}

// String implements the fmt.Stringer interface.
func (t WitnessConditionType) String() string {
	if n, ok := conditionTypeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("Unknown(0x%02x)", byte(t))
}

// MatchContext exposes the execution state a WitnessCondition needs to
// evaluate itself: the scripts involved in the current call and group
// membership of the account being checked.
type MatchContext interface {
	GetCallingScriptHash() util.Uint160
	GetCurrentScriptHash() util.Uint160
	GetEntryScriptHash() util.Uint160
	CallingScriptHasGroup(k *keys.PublicKey) (bool, error)
	CurrentScriptHasGroup(k *keys.PublicKey) (bool, error)
}

// WitnessCondition is a single clause of a witness rule; rules compose
// conditions into a boolean expression evaluated against a MatchContext.
type WitnessCondition interface {
	Type() WitnessConditionType
	Match(ctx MatchContext) (bool, error)
	EncodeBinary(w *io.BinWriter)
	DecodeBinarySpecific(r *io.BinReader, maxDepth int)
	MarshalJSON() ([]byte, error)
}

// ConditionBoolean is a constant true/false condition.
type ConditionBoolean bool

func (c *ConditionBoolean) Type() WitnessConditionType { return WitnessBoolean }
func (c *ConditionBoolean) Match(MatchContext) (bool, error) {
	return bool(*c), nil
}
func (c *ConditionBoolean) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(WitnessBoolean))
	w.WriteBool(bool(*c))
}
func (c *ConditionBoolean) DecodeBinarySpecific(r *io.BinReader, _ int) {
	*c = ConditionBoolean(r.ReadBool())
}
func (c *ConditionBoolean) MarshalJSON() ([]byte, error) {
	return json.Marshal(conditionAux{Type: WitnessBoolean.String(), Expression: jsonBool(bool(*c))})
}

// ConditionNot negates the result of its inner expression.
type ConditionNot struct {
	Condition WitnessCondition
}

func (c *ConditionNot) Type() WitnessConditionType { return WitnessNot }
func (c *ConditionNot) Match(ctx MatchContext) (bool, error) {
	res, err := c.Condition.Match(ctx)
	if err != nil {
		return false, err
	}
	return !res, nil
}
func (c *ConditionNot) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(WitnessNot))
	c.Condition.EncodeBinary(w)
}
func (c *ConditionNot) DecodeBinarySpecific(r *io.BinReader, maxDepth int) {
	if maxDepth <= 0 {
		r.Err = errors.New("witness condition: max nesting exceeded")
		return
	}
	c.Condition = decodeBinaryConditionDepth(r, maxDepth-1)
}
func (c *ConditionNot) MarshalJSON() ([]byte, error) {
	inner, err := c.Condition.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return json.Marshal(conditionAux{Type: WitnessNot.String(), Expression: json.RawMessage(inner)})
}

// ConditionAnd requires all of its child conditions to match.
type ConditionAnd []WitnessCondition

func (c *ConditionAnd) Type() WitnessConditionType { return WitnessAnd }
func (c *ConditionAnd) Match(ctx MatchContext) (bool, error) {
	for _, sub := range *c {
		res, err := sub.Match(ctx)
		if err != nil {
			return false, err
		}
		if !res {
			return false, nil
		}
	}
	return true, nil
}
func (c *ConditionAnd) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(WitnessAnd))
	w.WriteVarUint(uint64(len(*c)))
	for _, sub := range *c {
		sub.EncodeBinary(w)
	}
}
func (c *ConditionAnd) DecodeBinarySpecific(r *io.BinReader, maxDepth int) {
	n := r.ReadVarUint()
	if n == 0 || n > maxSubitems {
		r.Err = fmt.Errorf("witness condition: invalid And length %d", n)
		return
	}
	if maxDepth <= 0 {
		r.Err = errors.New("witness condition: max nesting exceeded")
		return
	}
	res := make(ConditionAnd, n)
	for i := range res {
		res[i] = decodeBinaryConditionDepth(r, maxDepth-1)
	}
	*c = res
}
func (c *ConditionAnd) MarshalJSON() ([]byte, error) {
	return marshalConditionList(WitnessAnd, []WitnessCondition(*c))
}

// ConditionOr requires at least one child condition to match.
type ConditionOr []WitnessCondition

func (c *ConditionOr) Type() WitnessConditionType { return WitnessOr }
func (c *ConditionOr) Match(ctx MatchContext) (bool, error) {
	for _, sub := range *c {
		res, err := sub.Match(ctx)
		if err != nil {
			return false, err
		}
		if res {
			return true, nil
		}
	}
	return false, nil
}
func (c *ConditionOr) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(WitnessOr))
	w.WriteVarUint(uint64(len(*c)))
	for _, sub := range *c {
		sub.EncodeBinary(w)
	}
}
func (c *ConditionOr) DecodeBinarySpecific(r *io.BinReader, maxDepth int) {
	n := r.ReadVarUint()
	if n == 0 || n > maxSubitems {
		r.Err = fmt.Errorf("witness condition: invalid Or length %d", n)
		return
	}
	if maxDepth <= 0 {
		r.Err = errors.New("witness condition: max nesting exceeded")
		return
	}
	res := make(ConditionOr, n)
	for i := range res {
		res[i] = decodeBinaryConditionDepth(r, maxDepth-1)
	}
	*c = res
}
func (c *ConditionOr) MarshalJSON() ([]byte, error) {
	return marshalConditionList(WitnessOr, []WitnessCondition(*c))
}

// ConditionScriptHash matches when the current executing script has
// the given hash.
type ConditionScriptHash util.Uint160

func (c *ConditionScriptHash) Type() WitnessConditionType { return WitnessScriptHash }
func (c *ConditionScriptHash) Match(ctx MatchContext) (bool, error) {
	return util.Uint160(*c).Equals(ctx.GetCurrentScriptHash()), nil
}
func (c *ConditionScriptHash) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(WitnessScriptHash))
	w.WriteBytes(util.Uint160(*c).BytesBE())
}
func (c *ConditionScriptHash) DecodeBinarySpecific(r *io.BinReader, _ int) {
	var b [util.Uint160Size]byte
	r.ReadBytes(b[:])
	if r.Err != nil {
		return
	}
	h, err := util.Uint160DecodeBytesBE(b[:])
	if err != nil {
		r.Err = err
		return
	}
	*c = ConditionScriptHash(h)
}
func (c *ConditionScriptHash) MarshalJSON() ([]byte, error) {
	return json.Marshal(conditionAux{Type: WitnessScriptHash.String(), Hash: jsonHash160(*c)})
}

// ConditionGroup matches when the current script belongs to the group
// identified by PubKey.
type ConditionGroup keys.PublicKey

func (c *ConditionGroup) Type() WitnessConditionType { return WitnessGroup }
func (c *ConditionGroup) Match(ctx MatchContext) (bool, error) {
	return ctx.CurrentScriptHasGroup((*keys.PublicKey)(c))
}
func (c *ConditionGroup) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(WitnessGroup))
	w.WriteBytes((*keys.PublicKey)(c).Bytes())
}
func (c *ConditionGroup) DecodeBinarySpecific(r *io.BinReader, _ int) {
	var b [33]byte
	r.ReadBytes(b[:])
	if r.Err != nil {
		return
	}
	pk, err := keys.NewPublicKeyFromBytes(b[:])
	if err != nil {
		r.Err = err
		return
	}
	*c = ConditionGroup(*pk)
}
func (c *ConditionGroup) MarshalJSON() ([]byte, error) {
	pk := (*keys.PublicKey)(c)
	return json.Marshal(conditionAux{Type: WitnessGroup.String(), Group: pk.String()})
}

// ConditionCalledByEntry matches only the entry-level script of an
// invocation (the contract directly called by the transaction).
type ConditionCalledByEntry struct{}

func (c ConditionCalledByEntry) Type() WitnessConditionType { return WitnessCalledByEntry }
func (c ConditionCalledByEntry) Match(ctx MatchContext) (bool, error) {
	return ctx.GetCallingScriptHash().Equals(ctx.GetEntryScriptHash()) ||
		ctx.GetCurrentScriptHash().Equals(ctx.GetEntryScriptHash()), nil
}
func (c ConditionCalledByEntry) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(WitnessCalledByEntry))
}
func (c ConditionCalledByEntry) DecodeBinarySpecific(*io.BinReader, int) {}
func (c ConditionCalledByEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(conditionAux{Type: WitnessCalledByEntry.String()})
}

// ConditionCalledByContract matches when the script calling into the
// current context is the one with the given hash.
type ConditionCalledByContract util.Uint160

func (c *ConditionCalledByContract) Type() WitnessConditionType { return WitnessCalledByContract }
func (c *ConditionCalledByContract) Match(ctx MatchContext) (bool, error) {
	return util.Uint160(*c).Equals(ctx.GetCallingScriptHash()), nil
}
func (c *ConditionCalledByContract) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(WitnessCalledByContract))
	w.WriteBytes(util.Uint160(*c).BytesBE())
}
func (c *ConditionCalledByContract) DecodeBinarySpecific(r *io.BinReader, _ int) {
	var b [util.Uint160Size]byte
	r.ReadBytes(b[:])
	if r.Err != nil {
		return
	}
	h, err := util.Uint160DecodeBytesBE(b[:])
	if err != nil {
		r.Err = err
		return
	}
	*c = ConditionCalledByContract(h)
}
func (c *ConditionCalledByContract) MarshalJSON() ([]byte, error) {
	return json.Marshal(conditionAux{Type: WitnessCalledByContract.String(), Hash: jsonHash160(*c)})
}

// ConditionCalledByGroup matches when the calling script belongs to
// the given group.
type ConditionCalledByGroup keys.PublicKey

func (c *ConditionCalledByGroup) Type() WitnessConditionType { return WitnessCalledByGroup }
func (c *ConditionCalledByGroup) Match(ctx MatchContext) (bool, error) {
	return ctx.CallingScriptHasGroup((*keys.PublicKey)(c))
}
func (c *ConditionCalledByGroup) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(WitnessCalledByGroup))
	w.WriteBytes((*keys.PublicKey)(c).Bytes())
}
func (c *ConditionCalledByGroup) DecodeBinarySpecific(r *io.BinReader, _ int) {
	var b [33]byte
	r.ReadBytes(b[:])
	if r.Err != nil {
		return
	}
	pk, err := keys.NewPublicKeyFromBytes(b[:])
	if err != nil {
		r.Err = err
		return
	}
	*c = ConditionCalledByGroup(*pk)
}
func (c *ConditionCalledByGroup) MarshalJSON() ([]byte, error) {
	pk := (*keys.PublicKey)(c)
	return json.Marshal(conditionAux{Type: WitnessCalledByGroup.String(), Group: pk.String()})
}

func jsonBool(b bool) *bool { return &b }

func jsonHash160(h util.Uint160) string { return "0x" + h.StringLE() }

// conditionAux is the JSON shadow shape every condition marshals
// through; unused fields are simply omitted.
type conditionAux struct {
	Type        string            `json:"type"`
	Expression  interface{}       `json:"expression,omitempty"`
	Expressions []json.RawMessage `json:"expressions,omitempty"`
	Hash        string            `json:"hash,omitempty"`
	Group       string            `json:"group,omitempty"`
}

func marshalConditionList(t WitnessConditionType, conds []WitnessCondition) ([]byte, error) {
	raw := make([]json.RawMessage, len(conds))
	for i, c := range conds {
		b, err := c.MarshalJSON()
		if err != nil {
			return nil, err
		}
		raw[i] = b
	}
	return json.Marshal(conditionAux{Type: t.String(), Expressions: raw})
}

// DecodeBinaryCondition decodes a WitnessCondition from r, including
// its type tag.
func DecodeBinaryCondition(r *io.BinReader) WitnessCondition {
	return decodeBinaryConditionDepth(r, maxConditionNesting)
}

func decodeBinaryConditionDepth(r *io.BinReader, maxDepth int) WitnessCondition {
	if r.Err != nil {
		return nil
	}
	t := WitnessConditionType(r.ReadB())
	if r.Err != nil {
		return nil
	}
	c := newConditionByType(t)
	if c == nil {
		r.Err = fmt.Errorf("unknown witness condition type 0x%02x", byte(t))
		return nil
	}
	c.DecodeBinarySpecific(r, maxDepth)
	if r.Err != nil {
		return nil
	}
	return c
}

func newConditionByType(t WitnessConditionType) WitnessCondition {
	switch t {
	case WitnessBoolean:
		return new(ConditionBoolean)
	case WitnessNot:
		return &ConditionNot{}
	case WitnessAnd:
		return &ConditionAnd{}
	case WitnessOr:
		return &ConditionOr{}
	case WitnessScriptHash:
		return new(ConditionScriptHash)
	case WitnessGroup:
		return new(ConditionGroup)
	case WitnessCalledByEntry:
		return ConditionCalledByEntry{}
	case WitnessCalledByContract:
		return new(ConditionCalledByContract)
	case WitnessCalledByGroup:
		return new(ConditionCalledByGroup)
	default:
		return nil
	}
}

// UnmarshalConditionJSON parses a JSON-encoded WitnessCondition.
func UnmarshalConditionJSON(data []byte) (WitnessCondition, error) {
	var aux conditionAux
	if err := json.Unmarshal(data, &aux); err != nil {
		return nil, err
	}
	switch aux.Type {
	case "Boolean":
		b, ok := aux.Expression.(bool)
		if !ok {
			return nil, errors.New("witness condition: invalid boolean expression")
		}
		cb := ConditionBoolean(b)
		return &cb, nil
	case "Not":
		if aux.Expression == nil {
			return nil, errors.New("witness condition: missing expression")
		}
		raw, err := json.Marshal(aux.Expression)
		if err != nil {
			return nil, err
		}
		inner, err := UnmarshalConditionJSON(raw)
		if err != nil {
			return nil, err
		}
		return &ConditionNot{Condition: inner}, nil
	case "And", "Or":
		if aux.Expressions == nil {
			return nil, errors.New("witness condition: missing expressions")
		}
		if len(aux.Expressions) == 0 || len(aux.Expressions) > maxSubitems {
			return nil, fmt.Errorf("witness condition: invalid %s length", aux.Type)
		}
		conds := make([]WitnessCondition, len(aux.Expressions))
		for i, raw := range aux.Expressions {
			c, err := UnmarshalConditionJSON(raw)
			if err != nil {
				return nil, err
			}
			conds[i] = c
		}
		if aux.Type == "And" {
			cnd := ConditionAnd(conds)
			return &cnd, nil
		}
		cnd := ConditionOr(conds)
		return &cnd, nil
	case "ScriptHash":
		h, err := decodeHash160LE(aux.Hash)
		if err != nil {
			return nil, err
		}
		cs := ConditionScriptHash(h)
		return &cs, nil
	case "Group":
		pk, err := keys.NewPublicKeyFromString(aux.Group)
		if err != nil {
			return nil, err
		}
		cg := ConditionGroup(*pk)
		return &cg, nil
	case "CalledByEntry":
		return ConditionCalledByEntry{}, nil
	case "CalledByContract":
		h, err := decodeHash160LE(aux.Hash)
		if err != nil {
			return nil, err
		}
		cc := ConditionCalledByContract(h)
		return &cc, nil
	case "CalledByGroup":
		pk, err := keys.NewPublicKeyFromString(aux.Group)
		if err != nil {
			return nil, err
		}
		cg := ConditionCalledByGroup(*pk)
		return &cg, nil
	default:
		return nil, fmt.Errorf("unknown witness condition type %q", aux.Type)
	}
}

func trimHexPrefix(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}

func decodeHash160LE(s string) (util.Uint160, error) {
	b, err := hex.DecodeString(trimHexPrefix(s))
	if err != nil {
		return util.Uint160{}, err
	}
	return util.Uint160DecodeBytesLE(b)
}
