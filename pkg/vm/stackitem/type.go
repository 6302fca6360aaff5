package stackitem

import "fmt"

// Type represents a type of the stack item.
type Type byte

// This block defines all known stack item types.
const (
	AnyT       Type = 0x00
	PointerT   Type = 0x10
	BooleanT   Type = 0x20
	IntegerT   Type = 0x21
	ByteArrayT Type = 0x28
	BufferT    Type = 0x30
	ArrayT     Type = 0x40
	StructT    Type = 0x41
	MapT       Type = 0x48
	InteropT   Type = 0x60
)

var typeStrings = map[Type]string{
	AnyT:       "Any",
	PointerT:   "Pointer",
	BooleanT:   "Boolean",
	IntegerT:   "Integer",
	ByteArrayT: "ByteString",
	BufferT:    "Buffer",
	ArrayT:     "Array",
	StructT:    "Struct",
	MapT:       "Map",
	InteropT:   "InteropInterface",
}

// String implements the Stringer interface.
func (t Type) String() string {
	if s, ok := typeStrings[t]; ok {
		return s
	}
	return "INVALID"
}

// FromString parses a string representation of a stack item type,
// returning the matching Type or an error if s is unknown.
func FromString(s string) (Type, error) {
	for typ, str := range typeStrings {
		if str == s {
			return typ, nil
		}
	}
	return 0, fmt.Errorf("unknown stack item type: %s", s)
}
