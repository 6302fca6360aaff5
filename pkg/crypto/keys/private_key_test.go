package keys

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nspcc-dev/neo-go-sdk/pkg/crypto/hash"
	"github.com/nspcc-dev/neo-go-sdk/pkg/crypto/keys/keytestcases"
)

func TestPrivateKeyFromHexRoundTrip(t *testing.T) {
	for _, hexKey := range keytestcases.Arr {
		priv, err := NewPrivateKeyFromHex(hexKey)
		require.NoError(t, err)
		assert.Equal(t, hexKey, priv.String())

		pub := priv.PublicKey()
		assert.NotEmpty(t, pub.Address())
		assert.Len(t, pub.Bytes(), PublicKeyCompressedSize)
	}
}

func TestPrivateKeyFromHexInvalid(t *testing.T) {
	_, err := NewPrivateKeyFromHex("not hex")
	assert.Error(t, err)

	_, err = NewPrivateKeyFromHex("ab")
	assert.ErrorIs(t, err, ErrInvalidKeySize)

	zero := hex.EncodeToString(make([]byte, PrivateKeySize))
	_, err = NewPrivateKeyFromHex(zero)
	assert.ErrorIs(t, err, ErrInvalidKeySize)
}

func TestPrivateKeyWIFRoundTrip(t *testing.T) {
	for _, hexKey := range keytestcases.Arr {
		priv, err := NewPrivateKeyFromHex(hexKey)
		require.NoError(t, err)

		wif := priv.WIF()
		got, err := NewPrivateKeyFromWIF(wif)
		require.NoError(t, err)
		assert.Equal(t, priv.Bytes(), got.Bytes())
	}
}

func TestPrivateKeyAddress(t *testing.T) {
	priv, err := NewPrivateKeyFromHex(keytestcases.Arr[0])
	require.NoError(t, err)

	addr := priv.Address()
	assert.NotEmpty(t, addr)
	assert.Equal(t, priv.PublicKey().Address(), addr)
	assert.Equal(t, priv.GetScriptHash(), priv.PublicKey().GetScriptHash())
}

func TestPrivateKeyDestroy(t *testing.T) {
	priv, err := NewPrivateKey()
	require.NoError(t, err)
	oldD := new(big.Int).Set(priv.D)
	priv.Destroy()
	assert.NotEqual(t, oldD, priv.D)
	assert.Equal(t, int64(0), priv.D.Int64())
}

func TestNewPrivateKeyOnCurve(t *testing.T) {
	msg := []byte{1, 2, 3}
	h := hash.Sha256(msg).BytesBE()

	p, err := NewPrivateKey()
	require.NoError(t, err)
	assert.True(t, p.PublicKey().Verify(p.Sign(msg), h))
}

func TestSignHashIsDeterministic(t *testing.T) {
	priv, err := NewPrivateKeyFromHex(keytestcases.Arr[0])
	require.NoError(t, err)

	digest := hash.Sha256([]byte("sample"))
	sig1 := priv.SignHash(digest)
	sig2 := priv.SignHash(digest)

	require.Len(t, sig1, 64)
	assert.Equal(t, sig1, sig2, "RFC 6979 signing must be deterministic for a fixed key and digest")
	assert.True(t, priv.PublicKey().Verify(sig1, digest.BytesBE()))
}
