package keys

import (
	"crypto/aes"
	"errors"

	"golang.org/x/crypto/scrypt"
	"golang.org/x/text/unicode/norm"

	"github.com/nspcc-dev/neo-go-sdk/pkg/crypto/hash"
	"github.com/nspcc-dev/neo-go-sdk/pkg/encoding/base58"
)

// NEP-2 scrypt cost parameters, fixed by the standard.
const (
	nep2ScryptN = 16384
	nep2ScryptR = 8
	nep2ScryptP = 8
	nep2KeyLen  = 64
)

// NEP-2 header bytes: version 0x01, prefix 0x42, flag 0xE0 (compressed,
// not EC-multiplied).
var nep2Prefix = []byte{0x01, 0x42, 0xE0}

// ErrInvalidPassphrase is returned by NEP2Decrypt when the derived
// address hash doesn't match the one embedded in the encrypted key,
// meaning the passphrase was wrong.
var ErrInvalidPassphrase = errors.New("invalid passphrase")

// ErrInvalidNEP2Format is returned when the input string isn't a
// well-formed NEP-2 encrypted key.
var ErrInvalidNEP2Format = errors.New("invalid NEP-2 format")

// NEP2Encrypt encrypts priv with passphrase following the NEP-2
// standard, returning the base58check-encoded encrypted key.
func NEP2Encrypt(priv *PrivateKey, passphrase string) (string, error) {
	addressHash := hash.ChecksumBytes([]byte(priv.Address()))

	derived, err := scryptKey(passphrase, addressHash)
	if err != nil {
		return "", err
	}
	derivedHalf1, derivedHalf2 := derived[:32], derived[32:]

	privBytes := priv.Bytes()
	xored := make([]byte, 32)
	for i := range xored {
		xored[i] = privBytes[i] ^ derivedHalf1[i]
	}

	encrypted, err := aesECBEncrypt(xored, derivedHalf2)
	if err != nil {
		return "", err
	}

	buf := make([]byte, 0, 3+4+32)
	buf = append(buf, nep2Prefix...)
	buf = append(buf, addressHash...)
	buf = append(buf, encrypted...)

	return base58.CheckEncode(buf), nil
}

// NEP2Decrypt decrypts an NEP-2 encrypted key with passphrase, returning
// the WIF encoding of the recovered private key.
func NEP2Decrypt(encrypted, passphrase string) (string, error) {
	buf, err := base58.CheckDecode(encrypted)
	if err != nil {
		return "", err
	}
	if len(buf) != 39 || buf[0] != nep2Prefix[0] || buf[1] != nep2Prefix[1] || buf[2] != nep2Prefix[2] {
		return "", ErrInvalidNEP2Format
	}
	addressHash := buf[3:7]
	cipherText := buf[7:39]

	derived, err := scryptKey(passphrase, addressHash)
	if err != nil {
		return "", err
	}
	derivedHalf1, derivedHalf2 := derived[:32], derived[32:]

	xored, err := aesECBDecrypt(cipherText, derivedHalf2)
	if err != nil {
		return "", err
	}

	privBytes := make([]byte, 32)
	for i := range privBytes {
		privBytes[i] = xored[i] ^ derivedHalf1[i]
	}

	priv, err := NewPrivateKeyFromBytes(privBytes)
	if err != nil {
		return "", ErrInvalidPassphrase
	}
	got := hash.ChecksumBytes([]byte(priv.Address()))
	for i := range got {
		if got[i] != addressHash[i] {
			return "", ErrInvalidPassphrase
		}
	}
	return priv.WIF(), nil
}

// scryptKey derives the 64-byte NEP-2 key material, normalizing the
// passphrase to NFC first as the standard requires.
func scryptKey(passphrase string, addressHash []byte) ([]byte, error) {
	normalized := norm.NFC.String(passphrase)
	return scrypt.Key([]byte(normalized), addressHash, nep2ScryptN, nep2ScryptR, nep2ScryptP, nep2KeyLen)
}

// aesECBEncrypt encrypts data (a multiple of the AES block size) under
// ECB mode, the ad-hoc chaining NEP-2 specifies.
func aesECBEncrypt(data, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(data))
	bs := block.BlockSize()
	for i := 0; i < len(data); i += bs {
		block.Encrypt(out[i:i+bs], data[i:i+bs])
	}
	return out, nil
}

// aesECBDecrypt is the inverse of aesECBEncrypt.
func aesECBDecrypt(data, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(data))
	bs := block.BlockSize()
	for i := 0; i < len(data); i += bs {
		block.Decrypt(out[i:i+bs], data[i:i+bs])
	}
	return out, nil
}
