package keys

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nspcc-dev/neo-go-sdk/pkg/encoding/base58"
)

type wifTestCase struct {
	privateKey string
}

var wifTestCases = []wifTestCase{
	{privateKey: "0000000000000000000000000000000000000000000000000000000000000001"},
	{privateKey: "2bfe58ab6d9fd575bdc3a624e4825dd2b375d64ac033fbc46ea79dbab4f69a3"},
}

func TestWIFEncodeDecode(t *testing.T) {
	for _, testCase := range wifTestCases {
		b, err := hex.DecodeString(testCase.privateKey)
		require.NoError(t, err)

		wif, err := WIFEncode(b, WIFVersion, true)
		require.NoError(t, err)

		w, err := WIFDecode(wif, WIFVersion)
		require.NoError(t, err)
		assert.Equal(t, testCase.privateKey, hex.EncodeToString(w.PrivateKey))
		assert.True(t, w.Compressed)
		assert.Equal(t, WIFVersion, w.Version)
	}

	_, err := WIFEncode([]byte{0, 1, 2}, WIFVersion, true)
	assert.ErrorIs(t, err, ErrInvalidKeySize)

	_, err = WIFEncode(make([]byte, PrivateKeySize), WIFVersion, false)
	assert.Error(t, err)
}

func TestBadWIFDecode(t *testing.T) {
	_, err := WIFDecode("garbage", WIFVersion)
	require.Error(t, err)

	s := base58.CheckEncode([]byte{})
	_, err = WIFDecode(s, WIFVersion)
	require.Error(t, err)

	wrongLen := make([]byte, 33)
	s = base58.CheckEncode(wrongLen)
	_, err = WIFDecode(s, WIFVersion)
	assert.ErrorIs(t, err, ErrInvalidWIF)

	buf := make([]byte, 34)
	buf[0] = WIFVersion
	// missing compressed-suffix byte (0x01)
	s = base58.CheckEncode(buf)
	_, err = WIFDecode(s, WIFVersion)
	assert.ErrorIs(t, err, ErrInvalidWIF)

	buf[33] = 0x01
	buf[0] = 0x00 // wrong version
	s = base58.CheckEncode(buf)
	_, err = WIFDecode(s, WIFVersion)
	assert.ErrorIs(t, err, ErrInvalidWIF)

	buf[0] = WIFVersion
	s = base58.CheckEncode(buf)
	_, err = WIFDecode(s, WIFVersion)
	require.NoError(t, err)
}
