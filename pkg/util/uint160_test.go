package util

import (
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUint160DecodeString(t *testing.T) {
	s := "2d3b96ae1bcc5a585e075e3b81920210dec163a2"
	val, err := Uint160DecodeString(s)
	require.NoError(t, err)
	assert.Equal(t, s, val.String())
}

func TestUint160DecodeBytes(t *testing.T) {
	s := "2d3b96ae1bcc5a585e075e3b81920210dec163a2"
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	val, err := Uint160DecodeBytes(b)
	require.NoError(t, err)
	assert.Equal(t, s, val.String())

	_, err = Uint160DecodeBytes(b[:10])
	require.Error(t, err)
}

func TestUint160Equals(t *testing.T) {
	a, err := Uint160DecodeString("2d3b96ae1bcc5a585e075e3b81920210dec163a2")
	require.NoError(t, err)
	b, err := Uint160DecodeString("4d3b96ae1bcc5a585e075e3b81920210dec163a2")
	require.NoError(t, err)
	assert.False(t, a.Equals(b))
	assert.True(t, a.Equals(a))
}

func TestUint160JSON(t *testing.T) {
	s := "2d3b96ae1bcc5a585e075e3b81920210dec163a2"
	expected, err := Uint160DecodeString(s)
	require.NoError(t, err)

	var u1 Uint160
	raw, err := json.Marshal("0x" + s)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &u1))
	assert.True(t, expected.Equals(u1))

	var u2 Uint160
	raw, err = json.Marshal(s)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &u2))
	assert.True(t, expected.Equals(u2))

	out, err := json.Marshal(expected)
	require.NoError(t, err)
	assert.Equal(t, `"0x`+s+`"`, string(out))
}

func TestUint160LEBERoundtrip(t *testing.T) {
	s := "2d3b96ae1bcc5a585e075e3b81920210dec163a2"
	u, err := Uint160DecodeString(s)
	require.NoError(t, err)

	le, err := Uint160DecodeBytesLE(u.BytesLE())
	require.NoError(t, err)
	assert.True(t, u.Equals(le))
	assert.Equal(t, u, u.Reverse().Reverse())
}
