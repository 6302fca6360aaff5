// Package stackitem implements the typed value representation JSON-RPC
// invocation results and contract parameters are expressed in: the
// same Boolean/Integer/ByteString/Buffer/Array/Struct/Map/Interop/
// Pointer hierarchy the node's VM stack uses, reduced to what a
// client needs to decode results and assemble parameters.
package stackitem

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"reflect"

	"github.com/nspcc-dev/neo-go-sdk/pkg/encoding/bigint"
	"github.com/nspcc-dev/neo-go-sdk/pkg/util"
)

// Stack item size and comparison limits, matching the node's VM
// reference limits which client-decoded results must also respect.
const (
	MaxBigIntegerSizeBits = 32 * 8
	MaxByteArrayComparableSize = 8 * 1024
	MaxComparableNumOfItems    = 2048
	MaxSize                    = 1024 * 1024
	MaxAllowedInteger          = 2<<53 - 1
)

// ErrInvalidValue is returned by the To* conversion helpers when an
// Item's underlying value doesn't satisfy the target type's format.
var ErrInvalidValue = errors.New("invalid value")

// Item represents a Neo VM stack item, typed per the node's
// ContractParameterType/StackItemType distinction.
type Item interface {
	Type() Type
	Value() interface{}
	String() string
	Dup() Item
	Equals(other Item) bool
}

// Null represents a Neo VM Null/Any value.
type Null struct{}

// Type implements the Item interface.
func (i Null) Type() Type { return AnyT }

// Value implements the Item interface.
func (i Null) Value() interface{} { return nil }

// String implements the Item interface.
func (i Null) String() string { return "Any" }

// Dup implements the Item interface.
func (i Null) Dup() Item { return i }

// Equals implements the Item interface.
func (i Null) Equals(other Item) bool {
	_, ok := other.(Null)
	return ok
}

// MarshalJSON implements the json.Marshaler interface.
func (i Null) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// Bool represents a boolean stack item.
type Bool struct {
	value bool
}

// NewBool creates a new Bool item.
func NewBool(val bool) *Bool { return &Bool{value: val} }

// Type implements the Item interface.
func (i *Bool) Type() Type { return BooleanT }

// Value implements the Item interface.
func (i *Bool) Value() interface{} { return i.value }

// String implements the Item interface.
func (i *Bool) String() string { return "Boolean" }

// Dup implements the Item interface.
func (i *Bool) Dup() Item { return &Bool{value: i.value} }

// Equals implements the Item interface.
func (i *Bool) Equals(other Item) bool {
	o, ok := other.(*Bool)
	return ok && i.value == o.value
}

// MarshalJSON implements the json.Marshaler interface.
func (i *Bool) MarshalJSON() ([]byte, error) { return json.Marshal(i.value) }

// BigInteger represents an integer stack item.
type BigInteger struct {
	value *big.Int
}

// NewBigInteger creates a new BigInteger item, panicking if v doesn't
// fit in MaxBigIntegerSizeBits bits.
func NewBigInteger(v *big.Int) *BigInteger {
	if bits := len(bigint.ToBytes(v)) * 8; bits > MaxBigIntegerSizeBits {
		panic("integer is too big")
	}
	return &BigInteger{value: v}
}

// Type implements the Item interface.
func (i *BigInteger) Type() Type { return IntegerT }

// Value implements the Item interface.
func (i *BigInteger) Value() interface{} { return i.value }

// String implements the Item interface.
func (i *BigInteger) String() string { return "BigInteger" }

// Dup implements the Item interface.
func (i *BigInteger) Dup() Item { return &BigInteger{value: new(big.Int).Set(i.value)} }

// Equals implements the Item interface.
func (i *BigInteger) Equals(other Item) bool {
	o, ok := other.(*BigInteger)
	return ok && i.value.Cmp(o.value) == 0
}

// MarshalJSON implements the json.Marshaler interface.
func (i *BigInteger) MarshalJSON() ([]byte, error) { return []byte(i.value.String()), nil }

// ByteArray represents an immutable byte-string stack item.
type ByteArray struct {
	value []byte
}

// NewByteArray creates a new ByteArray item.
func NewByteArray(b []byte) *ByteArray {
	if b == nil {
		b = []byte{}
	}
	return &ByteArray{value: b}
}

// Type implements the Item interface.
func (i *ByteArray) Type() Type { return ByteArrayT }

// Value implements the Item interface.
func (i *ByteArray) Value() interface{} { return i.value }

// String implements the Item interface.
func (i *ByteArray) String() string { return "ByteString" }

// Dup implements the Item interface.
func (i *ByteArray) Dup() Item {
	b := make([]byte, len(i.value))
	copy(b, i.value)
	return &ByteArray{value: b}
}

// Equals implements the Item interface.
func (i *ByteArray) Equals(other Item) bool {
	o, ok := other.(*ByteArray)
	if !ok {
		return false
	}
	if len(i.value) > MaxByteArrayComparableSize || len(o.value) > MaxByteArrayComparableSize {
		panic("byte arrays are too long to compare")
	}
	return bytesEqual(i.value, o.value)
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// MarshalJSON implements the json.Marshaler interface.
func (i *ByteArray) MarshalJSON() ([]byte, error) {
	return json.Marshal(hexString(i.value))
}

func hexString(b []byte) string {
	const hextable = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = hextable[c>>4]
		out[i*2+1] = hextable[c&0x0f]
	}
	return string(out)
}

// Buffer represents a mutable byte-string stack item.
type Buffer struct {
	value []byte
}

// NewBuffer creates a new Buffer item.
func NewBuffer(b []byte) *Buffer {
	if b == nil {
		b = []byte{}
	}
	return &Buffer{value: b}
}

// Type implements the Item interface.
func (i *Buffer) Type() Type { return BufferT }

// Value implements the Item interface.
func (i *Buffer) Value() interface{} { return i.value }

// String implements the Item interface.
func (i *Buffer) String() string { return "Buffer" }

// Dup implements the Item interface.
func (i *Buffer) Dup() Item {
	b := make([]byte, len(i.value))
	copy(b, i.value)
	return &Buffer{value: b}
}

// Equals implements the Item interface; buffers are reference items
// and never compare equal to anything but themselves.
func (i *Buffer) Equals(other Item) bool { return i == other }

// MarshalJSON implements the json.Marshaler interface.
func (i *Buffer) MarshalJSON() ([]byte, error) {
	return json.Marshal(hexString(i.value))
}

// Array represents an array stack item whose elements may alias
// (including itself), unlike Struct's by-value comparison.
type Array struct {
	value []Item
}

// NewArray creates a new Array item.
func NewArray(items []Item) *Array { return &Array{value: items} }

// Type implements the Item interface.
func (i *Array) Type() Type { return ArrayT }

// Value implements the Item interface.
func (i *Array) Value() interface{} { return i.value }

// String implements the Item interface.
func (i *Array) String() string { return "Array" }

// Append adds an item to the array.
func (i *Array) Append(it Item) { i.value = append(i.value, it) }

// Len returns the number of elements in the array.
func (i *Array) Len() int { return len(i.value) }

// Dup implements the Item interface; it is a shallow copy, matching
// the VM's own DUP semantics for compound items.
func (i *Array) Dup() Item {
	items := make([]Item, len(i.value))
	copy(items, i.value)
	return &Array{value: items}
}

// Equals implements the Item interface; arrays compare by reference.
func (i *Array) Equals(other Item) bool { return sameReference(i, other) }

func sameReference(a, b Item) bool {
	if b == nil {
		return false
	}
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

// MarshalJSON implements the json.Marshaler interface.
func (i *Array) MarshalJSON() ([]byte, error) { return marshalItems(i.value) }

func marshalItems(items []Item) ([]byte, error) {
	arr := make([]json.RawMessage, len(items))
	for j, it := range items {
		b, err := marshalItem(it)
		if err != nil {
			return nil, err
		}
		arr[j] = b
	}
	return json.Marshal(arr)
}

func marshalItem(it Item) ([]byte, error) {
	type marshaler interface {
		MarshalJSON() ([]byte, error)
	}
	if m, ok := it.(marshaler); ok {
		return m.MarshalJSON()
	}
	return json.Marshal(it.Value())
}

// Struct represents a struct stack item, compared field-by-field by
// value (with a depth/count guard against cyclic or oversized trees).
type Struct struct {
	value []Item
}

// NewStruct creates a new Struct item.
func NewStruct(items []Item) *Struct { return &Struct{value: items} }

// Type implements the Item interface.
func (i *Struct) Type() Type { return StructT }

// Value implements the Item interface.
func (i *Struct) Value() interface{} { return i.value }

// String implements the Item interface.
func (i *Struct) String() string { return "Struct" }

// Len returns the number of fields in the struct.
func (i *Struct) Len() int { return len(i.value) }

// Dup implements the Item interface; it is a shallow copy.
func (i *Struct) Dup() Item {
	items := make([]Item, len(i.value))
	copy(items, i.value)
	return &Struct{value: items}
}

// Clone performs a deep copy of the struct tree, bounded by a maximum
// total item count, matching the VM's own recursion limit for deep
// struct equality/duplication.
func (i *Struct) Clone(maxCount int) (*Struct, error) {
	count := maxCount
	return i.clone(&count)
}

func (i *Struct) clone(count *int) (*Struct, error) {
	items := make([]Item, len(i.value))
	for j, it := range i.value {
		if s, ok := it.(*Struct); ok {
			*count--
			if *count < 0 {
				return nil, errors.New("too many items")
			}
			c, err := s.clone(count)
			if err != nil {
				return nil, err
			}
			items[j] = c
			continue
		}
		items[j] = it
	}
	return &Struct{value: items}, nil
}

// Equals implements the Item interface; structs compare element-wise
// by value, recursing into nested structs up to MaxComparableNumOfItems.
func (i *Struct) Equals(other Item) bool {
	o, ok := other.(*Struct)
	if !ok {
		return false
	}
	count := MaxComparableNumOfItems
	eq, err := i.equals(o, &count)
	if err != nil {
		panic(err)
	}
	return eq
}

func (i *Struct) equals(o *Struct, count *int) (bool, error) {
	if len(i.value) != len(o.value) {
		return false, nil
	}
	for j := range i.value {
		a, b := i.value[j], o.value[j]
		as, aok := a.(*Struct)
		bs, bok := b.(*Struct)
		if aok && bok {
			*count--
			if *count < 0 {
				return false, errors.New("too many items to compare")
			}
			eq, err := as.equals(bs, count)
			if err != nil || !eq {
				return false, err
			}
			continue
		}
		if !a.Equals(b) {
			return false, nil
		}
	}
	return true, nil
}

// MarshalJSON implements the json.Marshaler interface.
func (i *Struct) MarshalJSON() ([]byte, error) { return marshalItems(i.value) }

// MapElement is a single key/value pair of a Map item.
type MapElement struct {
	Key   Item
	Value Item
}

// Map represents a map stack item, an insertion-ordered list of
// key/value pairs.
type Map struct {
	value []MapElement
}

// NewMap creates a new, empty Map item.
func NewMap() *Map { return &Map{} }

// NewMapWithValue creates a Map item with the given elements.
func NewMapWithValue(elems []MapElement) *Map { return &Map{value: elems} }

// Type implements the Item interface.
func (i *Map) Type() Type { return MapT }

// Value implements the Item interface.
func (i *Map) Value() interface{} { return i.value }

// String implements the Item interface.
func (i *Map) String() string { return "Map" }

// Len returns the number of entries in the map.
func (i *Map) Len() int { return len(i.value) }

// Add inserts or replaces the value for key.
func (i *Map) Add(key, value Item) {
	for j := range i.value {
		if i.value[j].Key.Equals(key) {
			i.value[j].Value = value
			return
		}
	}
	i.value = append(i.value, MapElement{Key: key, Value: value})
}

// Index returns the value associated with key, or nil if absent.
func (i *Map) Index(key Item) Item {
	for _, e := range i.value {
		if e.Key.Equals(key) {
			return e.Value
		}
	}
	return nil
}

// Dup implements the Item interface; it is a shallow copy.
func (i *Map) Dup() Item {
	elems := make([]MapElement, len(i.value))
	copy(elems, i.value)
	return &Map{value: elems}
}

// Equals implements the Item interface; maps compare by reference.
func (i *Map) Equals(other Item) bool { return sameReference(i, other) }

// MarshalJSON implements the json.Marshaler interface.
func (i *Map) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(i.value))
	keyOrder := make([]string, 0, len(i.value))
	for _, e := range i.value {
		kb, ok := e.Key.Value().([]byte)
		if !ok {
			return nil, fmt.Errorf("unsupported map key type: %s", e.Key.String())
		}
		vb, err := marshalItem(e.Value)
		if err != nil {
			return nil, err
		}
		out[string(kb)] = vb
		keyOrder = append(keyOrder, string(kb))
	}
	var buf []byte
	buf = append(buf, '{')
	for j, k := range keyOrder {
		if j > 0 {
			buf = append(buf, ',')
		}
		kb, _ := json.Marshal(k)
		buf = append(buf, kb...)
		buf = append(buf, ':')
		buf = append(buf, out[k]...)
	}
	buf = append(buf, '}')
	return buf, nil
}

// Interop represents an opaque interop-interface stack item; clients
// use it only as a placeholder, never inspecting its wrapped value.
type Interop struct {
	value interface{}
}

// NewInterop creates a new Interop item wrapping val.
func NewInterop(val interface{}) *Interop { return &Interop{value: val} }

// Type implements the Item interface.
func (i *Interop) Type() Type { return InteropT }

// Value implements the Item interface.
func (i *Interop) Value() interface{} { return i.value }

// String implements the Item interface.
func (i *Interop) String() string { return "Interop" }

// Dup implements the Item interface.
func (i *Interop) Dup() Item { return &Interop{value: i.value} }

// Equals implements the Item interface.
func (i *Interop) Equals(other Item) bool {
	o, ok := other.(*Interop)
	return ok && i.value == o.value
}

// MarshalJSON implements the json.Marshaler interface.
func (i *Interop) MarshalJSON() ([]byte, error) { return json.Marshal(i.value) }

// Pointer represents an instruction pointer into a script, used for
// CALLA/closures; it carries no comparable value beyond its position.
type Pointer struct {
	pos    int
	script []byte
}

// NewPointer creates a new Pointer item at pos into script.
func NewPointer(pos int, script []byte) *Pointer { return &Pointer{pos: pos, script: script} }

// Type implements the Item interface.
func (i *Pointer) Type() Type { return PointerT }

// Value implements the Item interface.
func (i *Pointer) Value() interface{} { return i.pos }

// String implements the Item interface.
func (i *Pointer) String() string { return "Pointer" }

// Position returns the pointer's offset into its script.
func (i *Pointer) Position() int { return i.pos }

// Dup implements the Item interface.
func (i *Pointer) Dup() Item { return &Pointer{pos: i.pos, script: i.script} }

// Equals implements the Item interface.
func (i *Pointer) Equals(other Item) bool {
	o, ok := other.(*Pointer)
	return ok && i.pos == o.pos && bytesEqual(i.script, o.script)
}

// Make converts a native Go value into the matching Item, the same
// conversion contract parameters and invocation arguments use. It
// panics on nil or an unsupported type, matching the VM's own
// behavior for malformed conversion requests.
func Make(v interface{}) Item {
	switch val := v.(type) {
	case Item:
		return val
	case int:
		return NewBigInteger(big.NewInt(int64(val)))
	case int8:
		return NewBigInteger(big.NewInt(int64(val)))
	case int16:
		return NewBigInteger(big.NewInt(int64(val)))
	case int32:
		return NewBigInteger(big.NewInt(int64(val)))
	case int64:
		return NewBigInteger(big.NewInt(val))
	case uint8:
		return NewBigInteger(big.NewInt(int64(val)))
	case uint16:
		return NewBigInteger(big.NewInt(int64(val)))
	case uint32:
		return NewBigInteger(big.NewInt(int64(val)))
	case uint64:
		return NewBigInteger(new(big.Int).SetUint64(val))
	case *big.Int:
		return NewBigInteger(val)
	case []byte:
		return NewByteArray(val)
	case string:
		return NewByteArray([]byte(val))
	case bool:
		return NewBool(val)
	case []Item:
		return NewArray(val)
	case []int:
		items := make([]Item, len(val))
		for j, x := range val {
			items[j] = Make(x)
		}
		return NewArray(items)
	case util.Uint160:
		return NewByteArray(val.BytesBE())
	case util.Uint256:
		return NewByteArray(val.BytesBE())
	case nil:
		panic("cannot convert nil to a stack item")
	default:
		return makeReflect(v)
	}
}

// makeReflect handles defined types whose underlying kind is one Make
// already knows how to box (e.g. a byte-based enum), so callers don't
// have to convert to the underlying type by hand.
func makeReflect(v interface{}) Item {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return NewBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return NewBigInteger(big.NewInt(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return NewBigInteger(new(big.Int).SetUint64(rv.Uint()))
	case reflect.String:
		return NewByteArray([]byte(rv.String()))
	default:
		panic(fmt.Sprintf("cannot convert %T to a stack item", v))
	}
}

// DeepCopy performs a full recursive copy of item, preserving shared
// references within the same tree (so a struct/array/map that refers
// to itself round-trips to a self-referential copy, not infinite
// recursion).
func DeepCopy(item Item) Item {
	return deepCopy(item, make(map[Item]Item))
}

func deepCopy(item Item, seen map[Item]Item) Item {
	if item == nil {
		return nil
	}
	if c, ok := seen[item]; ok {
		return c
	}
	switch it := item.(type) {
	case Null:
		return it
	case *Bool:
		return &Bool{value: it.value}
	case *BigInteger:
		return &BigInteger{value: new(big.Int).Set(it.value)}
	case *ByteArray:
		b := make([]byte, len(it.value))
		copy(b, it.value)
		return &ByteArray{value: b}
	case *Buffer:
		b := make([]byte, len(it.value))
		copy(b, it.value)
		return &Buffer{value: b}
	case *Pointer:
		return &Pointer{pos: it.pos, script: it.script}
	case *Interop:
		return &Interop{value: it.value}
	case *Array:
		cp := &Array{}
		seen[item] = cp
		items := make([]Item, len(it.value))
		for j, x := range it.value {
			items[j] = deepCopy(x, seen)
		}
		cp.value = items
		return cp
	case *Struct:
		cp := &Struct{}
		seen[item] = cp
		items := make([]Item, len(it.value))
		for j, x := range it.value {
			items[j] = deepCopy(x, seen)
		}
		cp.value = items
		return cp
	case *Map:
		cp := &Map{}
		seen[item] = cp
		elems := make([]MapElement, len(it.value))
		for j, e := range it.value {
			elems[j] = MapElement{Key: deepCopy(e.Key, seen), Value: deepCopy(e.Value, seen)}
		}
		cp.value = elems
		return cp
	default:
		panic(fmt.Sprintf("cannot deep copy %T", item))
	}
}
