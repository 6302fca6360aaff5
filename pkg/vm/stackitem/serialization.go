package stackitem

import (
	"fmt"

	"github.com/nspcc-dev/neo-go-sdk/pkg/encoding/bigint"
	"github.com/nspcc-dev/neo-go-sdk/pkg/io"
)

// Serialize encodes item using the same length-prefixed binary layout
// the node uses for System.Binary.Serialize, returning ErrTooBig if
// the encoding (or the tree's item count) exceeds the node's limits.
func Serialize(item Item) ([]byte, error) {
	w := io.NewBufBinWriter()
	EncodeBinary(item, w.BinWriter)
	if w.Err != nil {
		return nil, w.Err
	}
	return w.Bytes(), nil
}

// EncodeBinary writes item's binary encoding to w. Each item is
// prefixed with a type byte; compound items additionally carry a
// var-int element count. A budget on the total number of encoded
// items, and a running byte-size budget checked after every write,
// guard against unbounded, oversized, or self-referential trees.
func EncodeBinary(item Item, w *io.BinWriter) {
	budget := MaxComparableNumOfItems
	size := 0
	encodeBinary(item, w, &budget, &size)
}

func varUintSize(n uint64) int {
	switch {
	case n < 0xfd:
		return 1
	case n <= 0xffff:
		return 3
	case n <= 0xffffffff:
		return 5
	default:
		return 9
	}
}

func accountSize(w *io.BinWriter, size *int, n int) {
	*size += n
	if *size > MaxSize {
		w.Err = ErrTooBig
	}
}

func encodeBinary(item Item, w *io.BinWriter, budget *int, size *int) {
	if w.Err != nil {
		return
	}
	*budget--
	if *budget < 0 {
		w.Err = ErrTooBig
		return
	}
	switch it := item.(type) {
	case Null:
		accountSize(w, size, 1)
		w.WriteB(byte(AnyT))
	case *Bool:
		accountSize(w, size, 2)
		w.WriteB(byte(BooleanT))
		w.WriteBool(it.value)
	case *BigInteger:
		b := bigint.ToBytes(it.value)
		accountSize(w, size, 1+varUintSize(uint64(len(b)))+len(b))
		if w.Err != nil {
			return
		}
		w.WriteB(byte(IntegerT))
		w.WriteVarBytes(b)
	case *ByteArray:
		accountSize(w, size, 1+varUintSize(uint64(len(it.value)))+len(it.value))
		if w.Err != nil {
			return
		}
		w.WriteB(byte(ByteArrayT))
		w.WriteVarBytes(it.value)
	case *Buffer:
		accountSize(w, size, 1+varUintSize(uint64(len(it.value)))+len(it.value))
		if w.Err != nil {
			return
		}
		w.WriteB(byte(BufferT))
		w.WriteVarBytes(it.value)
	case *Array:
		accountSize(w, size, 1+varUintSize(uint64(len(it.value))))
		if w.Err != nil {
			return
		}
		w.WriteB(byte(ArrayT))
		w.WriteVarUint(uint64(len(it.value)))
		for _, sub := range it.value {
			encodeBinary(sub, w, budget, size)
			if w.Err != nil {
				return
			}
		}
	case *Struct:
		accountSize(w, size, 1+varUintSize(uint64(len(it.value))))
		if w.Err != nil {
			return
		}
		w.WriteB(byte(StructT))
		w.WriteVarUint(uint64(len(it.value)))
		for _, sub := range it.value {
			encodeBinary(sub, w, budget, size)
			if w.Err != nil {
				return
			}
		}
	case *Map:
		accountSize(w, size, 1+varUintSize(uint64(len(it.value))))
		if w.Err != nil {
			return
		}
		w.WriteB(byte(MapT))
		w.WriteVarUint(uint64(len(it.value)))
		for _, e := range it.value {
			encodeBinary(e.Key, w, budget, size)
			encodeBinary(e.Value, w, budget, size)
			if w.Err != nil {
				return
			}
		}
	default:
		w.Err = fmt.Errorf("cannot serialize a %s item", item.String())
	}
}

// DecodeBinary reads an item from r per the EncodeBinary layout.
func DecodeBinary(r *io.BinReader) Item {
	budget := MaxComparableNumOfItems
	return decodeBinary(r, &budget)
}

func decodeBinary(r *io.BinReader, budget *int) Item {
	if r.Err != nil {
		return nil
	}
	*budget--
	if *budget < 0 {
		r.Err = ErrTooBig
		return nil
	}
	t := Type(r.ReadB())
	if r.Err != nil {
		return nil
	}
	switch t {
	case AnyT:
		return Null{}
	case BooleanT:
		return NewBool(r.ReadBool())
	case IntegerT:
		b := r.ReadVarBytes()
		if r.Err != nil {
			return nil
		}
		return NewBigInteger(bigint.FromBytes(b))
	case ByteArrayT:
		return NewByteArray(r.ReadVarBytes())
	case BufferT:
		return NewBuffer(r.ReadVarBytes())
	case ArrayT, StructT:
		n := r.ReadVarUint()
		if r.Err != nil {
			return nil
		}
		items := make([]Item, n)
		for i := range items {
			items[i] = decodeBinary(r, budget)
			if r.Err != nil {
				return nil
			}
		}
		if t == ArrayT {
			return NewArray(items)
		}
		return NewStruct(items)
	case MapT:
		n := r.ReadVarUint()
		if r.Err != nil {
			return nil
		}
		m := NewMap()
		for i := uint64(0); i < n; i++ {
			k := decodeBinary(r, budget)
			v := decodeBinary(r, budget)
			if r.Err != nil {
				return nil
			}
			m.Add(k, v)
		}
		return m
	default:
		r.Err = fmt.Errorf("unknown stack item type byte: %d", byte(t))
		return nil
	}
}
