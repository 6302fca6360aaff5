package smartcontract

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/nspcc-dev/neo-go-sdk/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go-sdk/pkg/util"
)

// ParamType represents the contract parameter type, the ABI-visible
// scalar/array kind used by invokefunction parameters, NEP-6 contract
// ABIs, and the manifest this SDK doesn't otherwise model.
type ParamType int

// Contract parameter type constants. Values follow the node's
// ContractParameterType enumeration.
const (
	AnyType              ParamType = 0x00
	BoolType             ParamType = 0x10
	IntegerType          ParamType = 0x11
	ByteArrayType        ParamType = 0x12
	StringType           ParamType = 0x13
	Hash160Type          ParamType = 0x14
	Hash256Type          ParamType = 0x15
	PublicKeyType        ParamType = 0x16
	SignatureType        ParamType = 0x17
	ArrayType            ParamType = 0x20
	MapType              ParamType = 0x22
	InteropInterfaceType ParamType = 0x30
	VoidType             ParamType = 0xff
	UnknownType          ParamType = 0xf0
)

var ptypeNames = map[ParamType]string{
	AnyType:              "Any",
	BoolType:             "Boolean",
	IntegerType:          "Integer",
	ByteArrayType:        "ByteArray",
	StringType:           "String",
	Hash160Type:          "Hash160",
	Hash256Type:          "Hash256",
	PublicKeyType:        "PublicKey",
	SignatureType:        "Signature",
	ArrayType:            "Array",
	MapType:              "Map",
	InteropInterfaceType: "InteropInterface",
	VoidType:             "Void",
	UnknownType:          "Unknown",
}

// String implements the Stringer interface.
func (pt ParamType) String() string {
	if s, ok := ptypeNames[pt]; ok {
		return s
	}
	return "Unknown"
}

// ParseParamType parses a case-insensitive CLI/ABI-style type name into
// a ParamType.
func ParseParamType(s string) (ParamType, error) {
	switch strings.ToLower(s) {
	case "signature":
		return SignatureType, nil
	case "bool", "boolean":
		return BoolType, nil
	case "int", "integer":
		return IntegerType, nil
	case "hash160":
		return Hash160Type, nil
	case "hash256":
		return Hash256Type, nil
	case "bytes", "bytearray":
		return ByteArrayType, nil
	case "key", "publickey":
		return PublicKeyType, nil
	case "string":
		return StringType, nil
	case "array":
		return ArrayType, nil
	case "map":
		return MapType, nil
	case "interopinterface":
		return InteropInterfaceType, nil
	case "void":
		return VoidType, nil
	case "any":
		return AnyType, nil
	default:
		return UnknownType, fmt.Errorf("unknown parameter type: %s", s)
	}
}

// ConvertToParamType converts a raw ABI type code into a ParamType,
// rejecting values the node's enumeration doesn't define.
func ConvertToParamType(val int) (ParamType, error) {
	switch ParamType(val) {
	case UnknownType, AnyType, BoolType, IntegerType, ByteArrayType, StringType,
		Hash160Type, Hash256Type, PublicKeyType, SignatureType, ArrayType, MapType,
		InteropInterfaceType, VoidType:
		return ParamType(val), nil
	default:
		return 0, fmt.Errorf("unknown parameter type: %d", val)
	}
}

// inferParamType guesses the most natural ParamType for a raw CLI
// string value, the same heuristic the node's invocation tooling uses
// to turn untyped command-line arguments into typed parameters.
func inferParamType(s string) ParamType {
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return IntegerType
	}
	if s == "true" || s == "false" {
		return BoolType
	}
	if _, err := address.StringToUint160(s); err == nil {
		return Hash160Type
	}
	if b, err := hex.DecodeString(s); err == nil {
		switch len(b) {
		case util.Uint160Size:
			return Hash160Type
		case util.Uint256Size:
			return Hash256Type
		case 33:
			if b[0] == 0x02 || b[0] == 0x03 {
				return PublicKeyType
			}
			return ByteArrayType
		case 64:
			return SignatureType
		default:
			return ByteArrayType
		}
	}
	return StringType
}

// adjustValToType converts a raw string value into the Go
// representation adjustValToType's ParamType names, validating it
// against the type's format constraints along the way.
func adjustValToType(typ ParamType, val string) (interface{}, error) {
	switch typ {
	case SignatureType:
		b, err := hex.DecodeString(val)
		if err != nil {
			return nil, err
		}
		if len(b) != 64 {
			return nil, fmt.Errorf("invalid signature length: %d", len(b))
		}
		return b, nil
	case BoolType:
		switch val {
		case "true":
			return true, nil
		case "false":
			return false, nil
		default:
			return nil, fmt.Errorf("invalid boolean value: %s", val)
		}
	case IntegerType:
		return strconv.ParseInt(val, 10, 64)
	case Hash160Type:
		if u, err := address.StringToUint160(val); err == nil {
			return u, nil
		}
		return util.Uint160DecodeStringBE(val)
	case Hash256Type:
		return util.Uint256DecodeStringBE(val)
	case ByteArrayType:
		return hex.DecodeString(val)
	case PublicKeyType:
		b, err := hex.DecodeString(val)
		if err != nil {
			return nil, err
		}
		if len(b) != 33 || (b[0] != 0x02 && b[0] != 0x03) {
			return nil, fmt.Errorf("invalid public key encoding")
		}
		return b, nil
	case StringType:
		return val, nil
	default:
		return nil, fmt.Errorf("cannot convert a plain string into a %s value", typ)
	}
}
