package stackitem

import (
	"fmt"
	"math"
	"math/big"

	"github.com/nspcc-dev/neo-go-sdk/pkg/util"
)

func typeMismatch(item Item, want Type) error {
	return fmt.Errorf("invalid conversion: %s/%s", item.Type(), want)
}

func toBytes(item Item) ([]byte, error) {
	b, ok := item.Value().([]byte)
	if !ok {
		return nil, typeMismatch(item, ByteArrayT)
	}
	return b, nil
}

func toBigInt(item Item) (*big.Int, error) {
	v, ok := item.Value().(*big.Int)
	if !ok {
		return nil, typeMismatch(item, IntegerT)
	}
	return v, nil
}

// ToUint160 converts item into a util.Uint160, requiring it to be a
// 20-byte ByteString/Buffer.
func ToUint160(item Item) (util.Uint160, error) {
	b, err := toBytes(item)
	if err != nil {
		return util.Uint160{}, err
	}
	u, err := util.Uint160DecodeBytesBE(b)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("%w: %s", ErrInvalidValue, err)
	}
	return u, nil
}

// ToUint256 converts item into a util.Uint256, requiring it to be a
// 32-byte ByteString/Buffer.
func ToUint256(item Item) (util.Uint256, error) {
	b, err := toBytes(item)
	if err != nil {
		return util.Uint256{}, err
	}
	u, err := util.Uint256DecodeBytesBE(b)
	if err != nil {
		return util.Uint256{}, fmt.Errorf("%w: %s", ErrInvalidValue, err)
	}
	return u, nil
}

func checkIntBounds(v *big.Int, lo, hi *big.Int, name string) error {
	if v.Cmp(lo) < 0 || v.Cmp(hi) > 0 {
		return fmt.Errorf("bigint is not in %s range", name)
	}
	return nil
}

// ToInt32 converts item's Integer value into an int32, erroring if it
// doesn't fit.
func ToInt32(item Item) (int32, error) {
	v, err := toBigInt(item)
	if err != nil {
		return 0, err
	}
	if err := checkIntBounds(v, big.NewInt(math.MinInt32), big.NewInt(math.MaxInt32), "int32"); err != nil {
		return 0, err
	}
	return int32(v.Int64()), nil
}

// ToInt64 converts item's Integer value into an int64, erroring if it
// doesn't fit.
func ToInt64(item Item) (int64, error) {
	v, err := toBigInt(item)
	if err != nil {
		return 0, err
	}
	lo := new(big.Int).SetInt64(math.MinInt64)
	hi := new(big.Int).SetInt64(math.MaxInt64)
	if err := checkIntBounds(v, lo, hi, "int64"); err != nil {
		return 0, err
	}
	return v.Int64(), nil
}

// ToUint8 converts item's Integer value into a uint8, erroring if it
// doesn't fit.
func ToUint8(item Item) (uint8, error) {
	v, err := toBigInt(item)
	if err != nil {
		return 0, err
	}
	if err := checkIntBounds(v, big.NewInt(0), big.NewInt(math.MaxUint8), "uint8"); err != nil {
		return 0, err
	}
	return uint8(v.Uint64()), nil
}

// ToUint16 converts item's Integer value into a uint16, erroring if it
// doesn't fit.
func ToUint16(item Item) (uint16, error) {
	v, err := toBigInt(item)
	if err != nil {
		return 0, err
	}
	if err := checkIntBounds(v, big.NewInt(0), big.NewInt(math.MaxUint16), "uint16"); err != nil {
		return 0, err
	}
	return uint16(v.Uint64()), nil
}

// ToUint32 converts item's Integer value into a uint32, erroring if it
// doesn't fit.
func ToUint32(item Item) (uint32, error) {
	v, err := toBigInt(item)
	if err != nil {
		return 0, err
	}
	if err := checkIntBounds(v, big.NewInt(0), big.NewInt(math.MaxUint32), "uint32"); err != nil {
		return 0, err
	}
	return uint32(v.Uint64()), nil
}

// ToUint64 converts item's Integer value into a uint64, erroring if it
// doesn't fit.
func ToUint64(item Item) (uint64, error) {
	v, err := toBigInt(item)
	if err != nil {
		return 0, err
	}
	lo := big.NewInt(0)
	hi := new(big.Int).SetUint64(math.MaxUint64)
	if err := checkIntBounds(v, lo, hi, "uint64"); err != nil {
		return 0, err
	}
	return v.Uint64(), nil
}
