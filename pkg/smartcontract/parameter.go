package smartcontract

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/nspcc-dev/neo-go-sdk/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go-sdk/pkg/util"
	"github.com/nspcc-dev/neo-go-sdk/pkg/vm/stackitem"
)

// Parameter represents a typed value passed to (or returned from) a
// contract invocation, modeled on the node's ContractParameter JSON
// shape used by invokefunction and friends.
type Parameter struct {
	Type  ParamType
	Value any
}

// ParameterPair is a single key/value entry of a MapType Parameter.
type ParameterPair struct {
	Key   Parameter `json:"key"`
	Value Parameter `json:"value"`
}

// Convertible is implemented by types that know how to turn themselves
// into a Parameter; NewParameterFromValue uses it as an escape hatch
// for application-defined types.
type Convertible interface {
	ToSCParameter() (Parameter, error)
}

// paramJSONName returns the type name Parameter's JSON encoding uses,
// which diverges from ParamType.String() for ByteArrayType: the node's
// ContractParameter JSON form calls it "ByteString".
func paramJSONName(t ParamType) string {
	if t == ByteArrayType {
		return "ByteString"
	}
	return t.String()
}

func paramJSONType(s string) (ParamType, error) {
	if s == "ByteString" {
		return ByteArrayType, nil
	}
	return ParseParamType(s)
}

type rawParameter struct {
	Type      string          `json:"type"`
	Value     json.RawMessage `json:"value,omitempty"`
	Interface string          `json:"interface,omitempty"`
	ID        string          `json:"id,omitempty"`
}

// IIteratorInterface is the node's interface name for an
// InteropInterfaceType stack item holding a traversable session
// iterator, as opposed to one holding an opaque, unusable value.
const IIteratorInterface = "IIterator"

// MarshalJSON implements the json.Marshaler interface.
func (p Parameter) MarshalJSON() ([]byte, error) {
	var (
		raw json.RawMessage
		err error
	)
	switch p.Type {
	case BoolType:
		v, ok := p.Value.(bool)
		if !ok {
			return nil, fmt.Errorf("invalid boolean parameter value: %v", p.Value)
		}
		raw, err = json.Marshal(v)
	case IntegerType:
		v, ok := p.Value.(*big.Int)
		if !ok {
			return nil, fmt.Errorf("invalid integer parameter value: %v", p.Value)
		}
		if v.IsInt64() {
			raw, err = json.Marshal(v.Int64())
		} else {
			raw, err = json.Marshal(v.String())
		}
	case StringType:
		v, ok := p.Value.(string)
		if !ok {
			return nil, fmt.Errorf("invalid string parameter value: %v", p.Value)
		}
		raw, err = json.Marshal(v)
	case ByteArrayType:
		var b []byte
		if p.Value != nil {
			v, ok := p.Value.([]byte)
			if !ok {
				return nil, fmt.Errorf("invalid byte array parameter value: %v", p.Value)
			}
			b = v
		}
		raw, err = json.Marshal(b)
	case SignatureType:
		if p.Value != nil {
			b, ok := p.Value.([]byte)
			if !ok {
				return nil, fmt.Errorf("invalid signature parameter value: %v", p.Value)
			}
			raw, err = json.Marshal(hex.EncodeToString(b))
		}
	case PublicKeyType:
		b, ok := p.Value.([]byte)
		if !ok {
			return nil, fmt.Errorf("invalid public key parameter value: %v", p.Value)
		}
		raw, err = json.Marshal(hex.EncodeToString(b))
	case Hash160Type:
		u, ok := p.Value.(util.Uint160)
		if !ok {
			return nil, fmt.Errorf("invalid hash160 parameter value: %v", p.Value)
		}
		raw, err = json.Marshal("0x" + u.StringLE())
	case Hash256Type:
		u, ok := p.Value.(util.Uint256)
		if !ok {
			return nil, fmt.Errorf("invalid hash256 parameter value: %v", p.Value)
		}
		raw, err = json.Marshal("0x" + u.StringLE())
	case ArrayType:
		arr, _ := p.Value.([]Parameter)
		raw, err = json.Marshal(arr)
	case MapType:
		pairs, _ := p.Value.([]ParameterPair)
		raw, err = json.Marshal(pairs)
	case InteropInterfaceType:
		if id, ok := p.Value.(string); ok && id != "" {
			return json.Marshal(rawParameter{Type: paramJSONName(p.Type), Interface: IIteratorInterface, ID: id})
		}
		raw = json.RawMessage("null")
	case AnyType, VoidType:
		raw, err = json.Marshal(p.Value)
	default:
		return nil, fmt.Errorf("unknown parameter type: %s", p.Type)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(rawParameter{Type: paramJSONName(p.Type), Value: raw})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (p *Parameter) UnmarshalJSON(data []byte) error {
	var raw rawParameter
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	typ, err := paramJSONType(raw.Type)
	if err != nil {
		return err
	}
	isNull := len(raw.Value) == 0 || string(raw.Value) == "null"
	switch typ {
	case BoolType:
		var v bool
		if err := json.Unmarshal(raw.Value, &v); err != nil {
			return err
		}
		p.Value = v
	case IntegerType:
		var num json.Number
		if err := json.Unmarshal(raw.Value, &num); err != nil {
			return err
		}
		n, ok := new(big.Int).SetString(string(num), 10)
		if !ok {
			return fmt.Errorf("invalid integer value: %s", num)
		}
		if n.BitLen() > stackitem.MaxBigIntegerSizeBits {
			return errors.New("integer parameter value is too big")
		}
		p.Value = n
	case StringType:
		var v string
		if err := json.Unmarshal(raw.Value, &v); err != nil {
			return err
		}
		p.Value = v
	case ByteArrayType:
		if isNull {
			p.Value = nil
			break
		}
		var s string
		if err := json.Unmarshal(raw.Value, &s); err != nil {
			return err
		}
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return err
		}
		p.Value = b
	case SignatureType:
		if isNull {
			p.Value = nil
			break
		}
		var s string
		if err := json.Unmarshal(raw.Value, &s); err != nil {
			return err
		}
		b, err := hex.DecodeString(s)
		if err != nil {
			return err
		}
		p.Value = b
	case PublicKeyType:
		var s string
		if err := json.Unmarshal(raw.Value, &s); err != nil {
			return err
		}
		b, err := hex.DecodeString(s)
		if err != nil {
			return err
		}
		p.Value = b
	case Hash160Type:
		var s string
		if err := json.Unmarshal(raw.Value, &s); err != nil {
			return err
		}
		b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
		if err != nil {
			return err
		}
		u, err := util.Uint160DecodeBytesLE(b)
		if err != nil {
			return err
		}
		p.Value = u
	case Hash256Type:
		var s string
		if err := json.Unmarshal(raw.Value, &s); err != nil {
			return err
		}
		b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
		if err != nil {
			return err
		}
		u, err := util.Uint256DecodeBytesLE(b)
		if err != nil {
			return err
		}
		p.Value = u
	case ArrayType:
		var arr []Parameter
		if err := json.Unmarshal(raw.Value, &arr); err != nil {
			return err
		}
		p.Value = arr
	case MapType:
		var pairs []ParameterPair
		if err := json.Unmarshal(raw.Value, &pairs); err != nil {
			return err
		}
		p.Value = pairs
	case InteropInterfaceType:
		if raw.Interface == IIteratorInterface {
			p.Value = raw.ID
		} else {
			p.Value = nil
		}
	default:
		p.Value = nil
	}
	p.Type = typ
	return nil
}

// ToStackItem converts p into its equivalent Neo-VM stack item,
// matching the node's ContractParameter-to-StackItem conversion.
func (p Parameter) ToStackItem() (stackitem.Item, error) {
	switch p.Type {
	case AnyType:
		return stackitem.Null{}, nil
	case BoolType:
		v, ok := p.Value.(bool)
		if !ok {
			return nil, fmt.Errorf("invalid boolean parameter value: %v", p.Value)
		}
		return stackitem.NewBool(v), nil
	case IntegerType:
		v, ok := p.Value.(*big.Int)
		if !ok {
			return nil, fmt.Errorf("invalid integer parameter value: %v", p.Value)
		}
		return stackitem.NewBigInteger(v), nil
	case ByteArrayType, SignatureType, PublicKeyType:
		v, ok := p.Value.([]byte)
		if !ok {
			return nil, fmt.Errorf("invalid %s parameter value: %v", p.Type, p.Value)
		}
		return stackitem.NewByteArray(v), nil
	case StringType:
		v, ok := p.Value.(string)
		if !ok {
			return nil, fmt.Errorf("invalid string parameter value: %v", p.Value)
		}
		return stackitem.NewByteArray([]byte(v)), nil
	case Hash160Type:
		v, ok := p.Value.(util.Uint160)
		if !ok {
			return nil, fmt.Errorf("invalid hash160 parameter value: %v", p.Value)
		}
		return stackitem.NewByteArray(v.BytesBE()), nil
	case Hash256Type:
		v, ok := p.Value.(util.Uint256)
		if !ok {
			return nil, fmt.Errorf("invalid hash256 parameter value: %v", p.Value)
		}
		return stackitem.NewByteArray(v.BytesBE()), nil
	case ArrayType:
		arr, ok := p.Value.([]Parameter)
		if !ok {
			return nil, fmt.Errorf("invalid array parameter value: %v", p.Value)
		}
		items := make([]stackitem.Item, len(arr))
		for i, el := range arr {
			it, err := el.ToStackItem()
			if err != nil {
				return nil, err
			}
			items[i] = it
		}
		return stackitem.NewArray(items), nil
	case MapType:
		pairs, ok := p.Value.([]ParameterPair)
		if !ok {
			return nil, fmt.Errorf("invalid map parameter value: %v", p.Value)
		}
		m := stackitem.NewMap()
		for _, e := range pairs {
			k, err := e.Key.ToStackItem()
			if err != nil {
				return nil, err
			}
			v, err := e.Value.ToStackItem()
			if err != nil {
				return nil, err
			}
			m.Add(k, v)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("cannot convert a %s parameter to a stack item", p.Type)
	}
}

// ExpandParameterToEmitable converts p into the plain Go value
// emit.Array understands: bool, *big.Int, []byte, string,
// util.Uint160, util.Uint256, nil, or a nested []any for ArrayType.
func ExpandParameterToEmitable(p Parameter) (any, error) {
	switch p.Type {
	case BoolType:
		v, ok := p.Value.(bool)
		if !ok {
			return nil, fmt.Errorf("invalid boolean parameter value: %v", p.Value)
		}
		return v, nil
	case IntegerType:
		v, ok := p.Value.(*big.Int)
		if !ok {
			return nil, fmt.Errorf("invalid integer parameter value: %v", p.Value)
		}
		return v, nil
	case ByteArrayType, SignatureType, PublicKeyType:
		v, ok := p.Value.([]byte)
		if !ok {
			return nil, fmt.Errorf("invalid %s parameter value: %v", p.Type, p.Value)
		}
		return v, nil
	case StringType:
		v, ok := p.Value.(string)
		if !ok {
			return nil, fmt.Errorf("invalid string parameter value: %v", p.Value)
		}
		return v, nil
	case Hash160Type:
		v, ok := p.Value.(util.Uint160)
		if !ok {
			return nil, fmt.Errorf("invalid hash160 parameter value: %v", p.Value)
		}
		return v, nil
	case Hash256Type:
		v, ok := p.Value.(util.Uint256)
		if !ok {
			return nil, fmt.Errorf("invalid hash256 parameter value: %v", p.Value)
		}
		return v, nil
	case AnyType:
		return nil, nil
	case ArrayType:
		arr, ok := p.Value.([]Parameter)
		if !ok {
			return nil, fmt.Errorf("invalid array parameter value: %v", p.Value)
		}
		out := make([]any, len(arr))
		for i, el := range arr {
			v, err := ExpandParameterToEmitable(el)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s parameters aren't supported for emission", p.Type)
	}
}

// NewParameterFromString parses a CLI-style parameter value. The value
// may carry an explicit "type:value" prefix (e.g. "int:42",
// "hash160:0xabc...", or "filebytes:./path" to read raw file
// contents as a byte array); without a recognized prefix the type is
// inferred the same way inferParamType does for plain ABI arguments.
// A backslash escapes the character that immediately follows it,
// letting literal colons or backslashes appear in an untyped value.
func NewParameterFromString(in string) (*Parameter, error) {
	if !utf8.ValidString(in) {
		return nil, errors.New("parameter value is not valid UTF-8")
	}

	var (
		buf      strings.Builder
		escaped  bool
		hadType  bool
		isFile   bool
		typ      ParamType
		runeList = []rune(in)
	)
	for _, ch := range runeList {
		if ch == '\\' && !escaped {
			escaped = true
			continue
		}
		if ch == ':' && !escaped && !hadType {
			typStr := buf.String()
			buf.Reset()
			if strings.EqualFold(typStr, "filebytes") {
				isFile = true
				hadType = true
				continue
			}
			t, err := ParseParamType(typStr)
			if err != nil {
				return nil, fmt.Errorf("invalid type prefix %q: %w", typStr, err)
			}
			typ = t
			hadType = true
			continue
		}
		escaped = false
		buf.WriteRune(ch)
	}

	if isFile {
		content, err := os.ReadFile(buf.String())
		if err != nil {
			return nil, err
		}
		return &Parameter{Type: ByteArrayType, Value: content}, nil
	}

	val := buf.String()
	if !hadType {
		typ = inferParamType(val)
	}
	out, err := adjustValToType(typ, val)
	if err != nil {
		return nil, err
	}
	if v, ok := out.(int64); ok {
		return &Parameter{Type: typ, Value: big.NewInt(v)}, nil
	}
	return &Parameter{Type: typ, Value: out}, nil
}

// NewParameterFromValue converts an ordinary Go value into a
// Parameter, inferring its ParamType from the value's concrete type.
// It understands the Convertible interface, Parameter/*Parameter
// passthrough, util.Uint160/Uint256 and their pointers, *keys.PublicKey
// and its value form, and slices of any of the above (including
// []any with mixed element types).
func NewParameterFromValue(value any) (Parameter, error) {
	switch v := value.(type) {
	case nil:
		return Parameter{Type: AnyType}, nil
	case Convertible:
		return v.ToSCParameter()
	case Parameter:
		return v, nil
	case *Parameter:
		return *v, nil
	case []byte:
		return Parameter{Type: ByteArrayType, Value: v}, nil
	case string:
		return Parameter{Type: StringType, Value: v}, nil
	case bool:
		return Parameter{Type: BoolType, Value: v}, nil
	case *big.Int:
		return Parameter{Type: IntegerType, Value: v}, nil
	case byte:
		return Parameter{Type: IntegerType, Value: big.NewInt(int64(v))}, nil
	case int8:
		return Parameter{Type: IntegerType, Value: big.NewInt(int64(v))}, nil
	case int16:
		return Parameter{Type: IntegerType, Value: big.NewInt(int64(v))}, nil
	case uint16:
		return Parameter{Type: IntegerType, Value: big.NewInt(int64(v))}, nil
	case int32:
		return Parameter{Type: IntegerType, Value: big.NewInt(int64(v))}, nil
	case uint32:
		return Parameter{Type: IntegerType, Value: big.NewInt(int64(v))}, nil
	case int:
		return Parameter{Type: IntegerType, Value: big.NewInt(int64(v))}, nil
	case uint:
		return Parameter{Type: IntegerType, Value: big.NewInt(int64(v))}, nil
	case int64:
		return Parameter{Type: IntegerType, Value: big.NewInt(v)}, nil
	case uint64:
		return Parameter{Type: IntegerType, Value: new(big.Int).SetUint64(v)}, nil
	case util.Uint160:
		return Parameter{Type: Hash160Type, Value: v}, nil
	case *util.Uint160:
		if v == nil {
			return Parameter{Type: AnyType}, nil
		}
		return Parameter{Type: Hash160Type, Value: *v}, nil
	case util.Uint256:
		return Parameter{Type: Hash256Type, Value: v}, nil
	case *util.Uint256:
		if v == nil {
			return Parameter{Type: AnyType}, nil
		}
		return Parameter{Type: Hash256Type, Value: *v}, nil
	case *keys.PublicKey:
		return Parameter{Type: PublicKeyType, Value: v.Bytes()}, nil
	case keys.PublicKey:
		return Parameter{Type: PublicKeyType, Value: v.Bytes()}, nil
	case keys.PublicKeys:
		out := make([]Parameter, len(v))
		for i, k := range v {
			out[i] = Parameter{Type: PublicKeyType, Value: k.Bytes()}
		}
		return Parameter{Type: ArrayType, Value: out}, nil
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		n := rv.Len()
		out := make([]Parameter, n)
		for i := 0; i < n; i++ {
			el, err := NewParameterFromValue(rv.Index(i).Interface())
			if err != nil {
				return Parameter{}, err
			}
			out[i] = el
		}
		return Parameter{Type: ArrayType, Value: out}, nil
	}

	return Parameter{}, fmt.Errorf("unsupported operation: %T type", value)
}

// NewParametersFromValues converts each of values into a Parameter via
// NewParameterFromValue, stopping at the first conversion error.
func NewParametersFromValues(values ...any) ([]Parameter, error) {
	out := make([]Parameter, len(values))
	for i, v := range values {
		p, err := NewParameterFromValue(v)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}
