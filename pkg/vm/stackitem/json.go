package stackitem

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
)

// ErrTooBig is returned by Serialize/ToJSON when an item or its
// encoding exceeds MaxSize, or when a tree is too deep/self-
// referential to serialize safely.
var ErrTooBig = errors.New("too big")

// ToJSON encodes item using the node's System.Json.Serialize
// convention: Boolean/Integer/ByteString map onto their natural JSON
// shapes (ByteString as base64), Array/Struct onto JSON arrays, Map
// onto a JSON object (string keys only), and Null onto JSON null.
// Buffer, Pointer, and Interop items cannot be represented and return
// an error, matching the node's own serializer.
func ToJSON(item Item) ([]byte, error) {
	return toJSON(item, make(map[Item]bool), 0)
}

func toJSON(item Item, seen map[Item]bool, depth int) ([]byte, error) {
	if depth > 32 {
		return nil, fmt.Errorf("%w: nesting too deep", ErrTooBig)
	}
	switch it := item.(type) {
	case Null:
		return []byte("null"), nil
	case *Bool:
		return json.Marshal(it.value)
	case *BigInteger:
		if it.value.CmpAbs(big.NewInt(MaxAllowedInteger)) > 0 {
			return nil, fmt.Errorf("%w: integer too big for JSON", ErrTooBig)
		}
		return []byte(it.value.String()), nil
	case *ByteArray:
		return marshalBase64(it.value)
	case *Array, *Struct:
		if seen[item] {
			return nil, fmt.Errorf("%w: recursive structure", ErrTooBig)
		}
		seen[item] = true
		var items []Item
		if a, ok := it.(*Array); ok {
			items = a.value
		} else {
			items = it.(*Struct).value
		}
		parts := make([][]byte, len(items))
		size := 2
		for i, sub := range items {
			b, err := toJSON(sub, seen, depth+1)
			if err != nil {
				return nil, err
			}
			parts[i] = b
			size += len(b) + 1
			if size > MaxSize {
				return nil, ErrTooBig
			}
		}
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, p := range parts {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.Write(p)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case *Map:
		if seen[item] {
			return nil, fmt.Errorf("%w: recursive structure", ErrTooBig)
		}
		seen[item] = true
		var buf bytes.Buffer
		buf.WriteByte('{')
		size := 2
		for i, e := range it.value {
			kb, ok := e.Key.Value().([]byte)
			if !ok {
				return nil, fmt.Errorf("unsupported map key type: %s", e.Key.String())
			}
			kjson, err := json.Marshal(string(kb))
			if err != nil {
				return nil, err
			}
			vjson, err := toJSON(e.Value, seen, depth+1)
			if err != nil {
				return nil, err
			}
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.Write(kjson)
			buf.WriteByte(':')
			buf.Write(vjson)
			size += len(kjson) + len(vjson) + 2
			if size > MaxSize {
				return nil, ErrTooBig
			}
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("cannot convert %s to JSON", item.String())
	}
}

func marshalBase64(b []byte) ([]byte, error) {
	s := base64.StdEncoding.EncodeToString(b)
	if len(s)+2 > MaxSize {
		return nil, ErrTooBig
	}
	return json.Marshal(s)
}

// FromJSON decodes a JSON value encoded per the node's
// System.Json.Deserialize convention back into an Item.
// MaxJSONDepth is the deepest nesting of arrays/maps FromJSON accepts.
const MaxJSONDepth = 10

func FromJSON(data []byte) (Item, error) {
	d := json.NewDecoder(bytes.NewReader(data))
	d.UseNumber()
	item, err := decodeJSONValue(d, 0)
	if err != nil {
		return nil, err
	}
	if d.More() {
		return nil, errors.New("unexpected trailing data")
	}
	return item, nil
}

func decodeJSONValue(d *json.Decoder, depth int) (Item, error) {
	if depth >= MaxJSONDepth {
		return nil, fmt.Errorf("%w: nesting too deep", ErrTooBig)
	}
	tok, err := d.Token()
	if err != nil {
		return nil, err
	}
	switch v := tok.(type) {
	case nil:
		return Null{}, nil
	case bool:
		return NewBool(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, err
		}
		if f != float64(int64(f)) {
			return nil, fmt.Errorf("non-integer JSON number: %s", v)
		}
		n, ok := new(big.Int).SetString(v.String(), 10)
		if !ok {
			n = big.NewInt(int64(f))
		}
		return NewBigInteger(n), nil
	case string:
		b, err := base64.StdEncoding.DecodeString(v)
		if err != nil {
			return nil, fmt.Errorf("invalid base64 string: %w", err)
		}
		return NewByteArray(b), nil
	case json.Delim:
		switch v {
		case '[':
			items := []Item{}
			for d.More() {
				it, err := decodeJSONValue(d, depth+1)
				if err != nil {
					return nil, err
				}
				items = append(items, it)
			}
			if _, err := d.Token(); err != nil {
				return nil, err
			}
			return NewArray(items), nil
		case '{':
			m := NewMap()
			for d.More() {
				keyTok, err := d.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, errors.New("expected a string map key")
				}
				val, err := decodeJSONValue(d, depth+1)
				if err != nil {
					return nil, err
				}
				m.Add(NewByteArray([]byte(key)), val)
			}
			if _, err := d.Token(); err != nil {
				return nil, err
			}
			return m, nil
		default:
			return nil, fmt.Errorf("unexpected JSON delimiter: %v", v)
		}
	default:
		return nil, fmt.Errorf("unexpected JSON token: %v", tok)
	}
}
