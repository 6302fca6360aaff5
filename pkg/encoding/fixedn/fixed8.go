// Package fixedn implements Fixed8, the 8-decimal fixed-point integer
// format Neo uses to represent GAS/NEO amounts in JSON-RPC responses
// (e.g. getunclaimedgas, getwalletbalance).
package fixedn

import (
	"encoding/json"
	"strconv"
	"strings"
)

const decimals = 100000000

// Fixed8 represents a fixed-point number with a precision of 8 decimal
// digits, stored as its integer-scaled int64 value.
type Fixed8 int64

// Fixed8FromInt64 returns a new Fixed8 from the given integral value.
func Fixed8FromInt64(val int64) Fixed8 {
	return Fixed8(val * decimals)
}

// IntegralValue returns the integral part of the value.
func (f Fixed8) IntegralValue() int64 {
	return int64(f) / decimals
}

// FractionalValue returns the fractional part of the value, scaled up
// by 10^8.
func (f Fixed8) FractionalValue() int32 {
	v := int64(f) % decimals
	if v < 0 {
		v = -v
	}
	return int32(v)
}

// Add returns the sum of f and g.
func (f Fixed8) Add(g Fixed8) Fixed8 {
	return f + g
}

// Sub returns the difference of f and g.
func (f Fixed8) Sub(g Fixed8) Fixed8 {
	return f - g
}

// String implements the Stringer interface, producing a decimal string
// with a trailing fractional part trimmed of zeroes.
func (f Fixed8) String() string {
	buf := strconv.FormatInt(int64(f), 10)
	neg := strings.HasPrefix(buf, "-")
	if neg {
		buf = buf[1:]
	}
	for len(buf) <= 8 {
		buf = "0" + buf
	}
	integral := buf[:len(buf)-8]
	fractional := strings.TrimRight(buf[len(buf)-8:], "0")

	out := integral
	if fractional != "" {
		out += "." + fractional
	}
	if neg {
		out = "-" + out
	}
	return out
}

// Fixed8FromString parses a decimal string into a Fixed8.
func Fixed8FromString(s string) (Fixed8, error) {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	parts := strings.SplitN(s, ".", 2)
	intPart, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, err
	}
	var frac int64
	if len(parts) == 2 {
		fracStr := parts[1]
		for len(fracStr) < 8 {
			fracStr += "0"
		}
		fracStr = fracStr[:8]
		frac, err = strconv.ParseInt(fracStr, 10, 64)
		if err != nil {
			return 0, err
		}
	}
	val := intPart*decimals + frac
	if neg {
		val = -val
	}
	return Fixed8(val), nil
}

// MarshalJSON implements the json.Marshaler interface, matching the
// node's convention of representing GAS-denominated amounts as decimal
// strings rather than raw integers.
func (f Fixed8) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *Fixed8) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := Fixed8FromString(s)
	if err != nil {
		return err
	}
	*f = v
	return nil
}
