package smartcontract

import (
	"math/big"

	"github.com/nspcc-dev/neo-go-sdk/pkg/vm/stackitem"
)

// ParameterFromStackItem converts a VM stack item (as returned by an
// invocation result) into the Parameter representation used by RPC
// results and CLI output. seen tracks compound items already visited,
// so a self-referential Array/Struct/Map collapses to an empty
// ArrayType/MapType Parameter instead of recursing forever.
func ParameterFromStackItem(it stackitem.Item, seen map[stackitem.Item]bool) Parameter {
	switch t := it.(type) {
	case stackitem.Null:
		return Parameter{Type: AnyType, Value: nil}
	case *stackitem.Interop:
		return Parameter{Type: InteropInterfaceType, Value: nil}
	case *stackitem.Bool:
		return Parameter{Type: BoolType, Value: t.Value().(bool)}
	case *stackitem.BigInteger:
		return Parameter{Type: IntegerType, Value: t.Value().(*big.Int)}
	case *stackitem.ByteArray:
		return Parameter{Type: ByteArrayType, Value: toBytes(t.Value())}
	case *stackitem.Buffer:
		return Parameter{Type: ByteArrayType, Value: toBytes(t.Value())}
	case *stackitem.Array:
		return Parameter{Type: ArrayType, Value: parameterItemsFromStackItems(t.Value().([]stackitem.Item), it, seen)}
	case *stackitem.Struct:
		return Parameter{Type: ArrayType, Value: parameterItemsFromStackItems(t.Value().([]stackitem.Item), it, seen)}
	case *stackitem.Map:
		return parameterFromMap(t, it, seen)
	case *stackitem.Pointer:
		return Parameter{Type: IntegerType, Value: big.NewInt(int64(t.Position()))}
	default:
		return Parameter{Type: AnyType, Value: nil}
	}
}

func toBytes(v interface{}) []byte {
	b, ok := v.([]byte)
	if !ok {
		return nil
	}
	return b
}

func parameterItemsFromStackItems(items []stackitem.Item, self stackitem.Item, seen map[stackitem.Item]bool) []Parameter {
	if seen[self] {
		return []Parameter{}
	}
	seen[self] = true
	out := make([]Parameter, len(items))
	for i, el := range items {
		out[i] = ParameterFromStackItem(el, seen)
	}
	return out
}

func parameterFromMap(m *stackitem.Map, self stackitem.Item, seen map[stackitem.Item]bool) Parameter {
	if seen[self] {
		return Parameter{Type: MapType, Value: []ParameterPair{}}
	}
	seen[self] = true
	elems := m.Value().([]stackitem.MapElement)
	out := make([]ParameterPair, len(elems))
	for i, el := range elems {
		out[i] = ParameterPair{
			Key:   ParameterFromStackItem(el.Key, seen),
			Value: ParameterFromStackItem(el.Value, seen),
		}
	}
	return Parameter{Type: MapType, Value: out}
}
