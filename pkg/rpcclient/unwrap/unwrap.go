// Package unwrap provides type-asserting helpers that turn a test
// invocation's raw result.Invoke stack into the concrete Go value the
// caller actually wants, the way the node's own CLI converts
// ContractParameter stack items for display.
package unwrap

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"unicode"
	"unicode/utf8"

	"github.com/nspcc-dev/neo-go-sdk/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go-sdk/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go-sdk/pkg/smartcontract"
	"github.com/nspcc-dev/neo-go-sdk/pkg/util"
)

// ErrNoSessionID is returned by SessionIterator and
// ArrayAndSessionIterator when the invocation result carries no
// session to traverse the remainder of an iterator with.
var ErrNoSessionID = errors.New("unwrap: no session ID in the result")

// checkResOK validates the common preconditions every helper in this
// package needs: no transport/RPC error and a HALT execution state.
func checkResOK(r *result.Invoke, err error) (*result.Invoke, error) {
	if err != nil {
		return nil, err
	}
	if r.State != result.VMStateHalt {
		return nil, fmt.Errorf("invocation failed: %s", r.FaultException)
	}
	return r, nil
}

// Nothing asserts that the invocation succeeded and returned no value
// at all.
func Nothing(r *result.Invoke, err error) error {
	r, err = checkResOK(r, err)
	if err != nil {
		return err
	}
	if len(r.Stack) != 0 {
		return fmt.Errorf("too many return values: %d", len(r.Stack))
	}
	return nil
}

// Item asserts that the invocation succeeded and returned exactly one
// stack value, returning it unconverted.
func Item(r *result.Invoke, err error) (smartcontract.Parameter, error) {
	r, err = checkResOK(r, err)
	if err != nil {
		return smartcontract.Parameter{}, err
	}
	if len(r.Stack) == 0 {
		return smartcontract.Parameter{}, errors.New("nothing returned from the invocation")
	}
	if len(r.Stack) != 1 {
		return smartcontract.Parameter{}, fmt.Errorf("too many return values: %d", len(r.Stack))
	}
	return r.Stack[0], nil
}

// BigInt expects an IntegerType return value.
func BigInt(r *result.Invoke, err error) (*big.Int, error) {
	p, err := Item(r, err)
	if err != nil {
		return nil, err
	}
	v, ok := p.Value.(*big.Int)
	if !ok || p.Type != smartcontract.IntegerType {
		return nil, fmt.Errorf("invalid conversion from %s to Integer", p.Type)
	}
	return v, nil
}

// Int64 is BigInt bounded to the int64 range.
func Int64(r *result.Invoke, err error) (int64, error) {
	return LimitedInt64(r, err, math.MinInt64, math.MaxInt64)
}

// LimitedInt64 is BigInt bounded to [min, max].
func LimitedInt64(r *result.Invoke, err error, minI, maxI int64) (int64, error) {
	b, err := BigInt(r, err)
	if err != nil {
		return 0, err
	}
	if !b.IsInt64() {
		return 0, errors.New("integer value doesn't fit into int64")
	}
	i := b.Int64()
	if i < minI || i > maxI {
		return 0, fmt.Errorf("value %d is out of [%d, %d] bounds", i, minI, maxI)
	}
	return i, nil
}

// Bool expects a BoolType return value.
func Bool(r *result.Invoke, err error) (bool, error) {
	p, err := Item(r, err)
	if err != nil {
		return false, err
	}
	v, ok := p.Value.(bool)
	if !ok || p.Type != smartcontract.BoolType {
		return false, fmt.Errorf("invalid conversion from %s to Boolean", p.Type)
	}
	return v, nil
}

// Bytes expects a ByteArrayType return value.
func Bytes(r *result.Invoke, err error) ([]byte, error) {
	p, err := Item(r, err)
	if err != nil {
		return nil, err
	}
	v, ok := p.Value.([]byte)
	if !ok || p.Type != smartcontract.ByteArrayType {
		return nil, fmt.Errorf("invalid conversion from %s to ByteString", p.Type)
	}
	return v, nil
}

// UTF8String expects a ByteArrayType return value that's valid UTF-8.
func UTF8String(r *result.Invoke, err error) (string, error) {
	b, err := Bytes(r, err)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", errors.New("not a valid UTF-8 string")
	}
	return string(b), nil
}

// PrintableASCIIString is UTF8String restricted to printable ASCII.
func PrintableASCIIString(r *result.Invoke, err error) (string, error) {
	s, err := UTF8String(r, err)
	if err != nil {
		return "", err
	}
	for _, c := range s {
		if c > unicode.MaxASCII || !unicode.IsPrint(c) {
			return "", fmt.Errorf("non-printable-ASCII character %q in string", c)
		}
	}
	return s, nil
}

// Uint160 expects a 20-byte ByteArrayType return value.
func Uint160(r *result.Invoke, err error) (util.Uint160, error) {
	b, err := Bytes(r, err)
	if err != nil {
		return util.Uint160{}, err
	}
	return util.Uint160DecodeBytesBE(b)
}

// Uint256 expects a 32-byte ByteArrayType return value.
func Uint256(r *result.Invoke, err error) (util.Uint256, error) {
	b, err := Bytes(r, err)
	if err != nil {
		return util.Uint256{}, err
	}
	return util.Uint256DecodeBytesBE(b)
}

// PublicKey expects a compressed-point ByteArrayType return value.
func PublicKey(r *result.Invoke, err error) (*keys.PublicKey, error) {
	b, err := Bytes(r, err)
	if err != nil {
		return nil, err
	}
	return keys.NewPublicKeyFromBytes(b)
}

// Array expects an ArrayType return value, returned unconverted.
func Array(r *result.Invoke, err error) ([]smartcontract.Parameter, error) {
	p, err := Item(r, err)
	if err != nil {
		return nil, err
	}
	v, ok := p.Value.([]smartcontract.Parameter)
	if !ok || p.Type != smartcontract.ArrayType {
		return nil, fmt.Errorf("invalid conversion from %s to Array", p.Type)
	}
	return v, nil
}

// ArrayOfBools converts every element of an Array return value via Bool.
func ArrayOfBools(r *result.Invoke, err error) ([]bool, error) {
	arr, err := Array(r, err)
	if err != nil {
		return nil, err
	}
	out := make([]bool, len(arr))
	for i, el := range arr {
		v, ok := el.Value.(bool)
		if !ok || el.Type != smartcontract.BoolType {
			return nil, fmt.Errorf("element %d: invalid conversion from %s to Boolean", i, el.Type)
		}
		out[i] = v
	}
	return out, nil
}

// ArrayOfBigInts converts every element of an Array return value via BigInt.
func ArrayOfBigInts(r *result.Invoke, err error) ([]*big.Int, error) {
	arr, err := Array(r, err)
	if err != nil {
		return nil, err
	}
	out := make([]*big.Int, len(arr))
	for i, el := range arr {
		v, ok := el.Value.(*big.Int)
		if !ok || el.Type != smartcontract.IntegerType {
			return nil, fmt.Errorf("element %d: invalid conversion from %s to Integer", i, el.Type)
		}
		out[i] = v
	}
	return out, nil
}

// ArrayOfBytes converts every element of an Array return value via Bytes.
func ArrayOfBytes(r *result.Invoke, err error) ([][]byte, error) {
	arr, err := Array(r, err)
	if err != nil {
		return nil, err
	}
	out := make([][]byte, len(arr))
	for i, el := range arr {
		v, ok := el.Value.([]byte)
		if !ok || el.Type != smartcontract.ByteArrayType {
			return nil, fmt.Errorf("element %d: invalid conversion from %s to ByteString", i, el.Type)
		}
		out[i] = v
	}
	return out, nil
}

// ArrayOfUTF8Strings converts every element of an Array return value
// via UTF8String.
func ArrayOfUTF8Strings(r *result.Invoke, err error) ([]string, error) {
	arr, err := Array(r, err)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(arr))
	for i, el := range arr {
		b, ok := el.Value.([]byte)
		if !ok || el.Type != smartcontract.ByteArrayType {
			return nil, fmt.Errorf("element %d: invalid conversion from %s to ByteString", i, el.Type)
		}
		if !utf8.Valid(b) {
			return nil, fmt.Errorf("element %d: not a valid UTF-8 string", i)
		}
		out[i] = string(b)
	}
	return out, nil
}

// ArrayOfUint160 converts every element of an Array return value via
// Uint160's decoding rule.
func ArrayOfUint160(r *result.Invoke, err error) ([]util.Uint160, error) {
	arr, err := Array(r, err)
	if err != nil {
		return nil, err
	}
	out := make([]util.Uint160, len(arr))
	for i, el := range arr {
		b, ok := el.Value.([]byte)
		if !ok || el.Type != smartcontract.ByteArrayType {
			return nil, fmt.Errorf("element %d: invalid conversion from %s to Hash160", i, el.Type)
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = u
	}
	return out, nil
}

// ArrayOfUint256 converts every element of an Array return value via
// Uint256's decoding rule.
func ArrayOfUint256(r *result.Invoke, err error) ([]util.Uint256, error) {
	arr, err := Array(r, err)
	if err != nil {
		return nil, err
	}
	out := make([]util.Uint256, len(arr))
	for i, el := range arr {
		b, ok := el.Value.([]byte)
		if !ok || el.Type != smartcontract.ByteArrayType {
			return nil, fmt.Errorf("element %d: invalid conversion from %s to Hash256", i, el.Type)
		}
		u, err := util.Uint256DecodeBytesBE(b)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = u
	}
	return out, nil
}

// ArrayOfPublicKeys converts every element of an Array return value
// via PublicKey.
func ArrayOfPublicKeys(r *result.Invoke, err error) (keys.PublicKeys, error) {
	arr, err := Array(r, err)
	if err != nil {
		return nil, err
	}
	out := make(keys.PublicKeys, len(arr))
	for i, el := range arr {
		b, ok := el.Value.([]byte)
		if !ok || el.Type != smartcontract.ByteArrayType {
			return nil, fmt.Errorf("element %d: invalid conversion from %s to PublicKey", i, el.Type)
		}
		pk, err := keys.NewPublicKeyFromBytes(b)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = pk
	}
	return out, nil
}

// SessionIterator expects an InteropInterfaceType return value holding
// a traversable session iterator, returning the session id and
// iterator id needed to drive invoker.Invoker.TraverseIterator.
func SessionIterator(r *result.Invoke, err error) (string, string, error) {
	p, err := Item(r, err)
	if err != nil {
		return "", "", err
	}
	iterID, ok := p.Value.(string)
	if !ok || p.Type != smartcontract.InteropInterfaceType {
		return "", "", fmt.Errorf("invalid conversion from %s to an iterator", p.Type)
	}
	if r.Session == nil {
		return "", "", ErrNoSessionID
	}
	return r.Session.String(), iterID, nil
}

// ArrayAndSessionIterator handles a method that returns an already
// partially expanded array followed, optionally, by a session iterator
// to pull the rest of it from.
func ArrayAndSessionIterator(r *result.Invoke, err error) ([]smartcontract.Parameter, string, string, error) {
	r, err = checkResOK(r, err)
	if err != nil {
		return nil, "", "", err
	}
	if len(r.Stack) == 0 {
		return nil, "", "", errors.New("nothing returned from the invocation")
	}
	if len(r.Stack) > 2 {
		return nil, "", "", fmt.Errorf("too many return values: %d", len(r.Stack))
	}
	arr, ok := r.Stack[0].Value.([]smartcontract.Parameter)
	if !ok || r.Stack[0].Type != smartcontract.ArrayType {
		return nil, "", "", fmt.Errorf("invalid conversion from %s to Array", r.Stack[0].Type)
	}
	if len(r.Stack) == 1 {
		return arr, "", "", nil
	}
	iterID, ok := r.Stack[1].Value.(string)
	if !ok || r.Stack[1].Type != smartcontract.InteropInterfaceType {
		return nil, "", "", fmt.Errorf("invalid conversion from %s to an iterator", r.Stack[1].Type)
	}
	if r.Session == nil {
		return nil, "", "", ErrNoSessionID
	}
	return arr, r.Session.String(), iterID, nil
}
