package wallet

import (
	"errors"
	"fmt"

	"github.com/nspcc-dev/neo-go-sdk/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go-sdk/pkg/crypto/hash"
	"github.com/nspcc-dev/neo-go-sdk/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go-sdk/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go-sdk/pkg/util"
)

// ErrAccountLocked is returned by signing operations on an account
// whose private key is encrypted and hasn't been unlocked.
var ErrAccountLocked = errors.New("wallet: account is locked")

// ErrNoPrivateKey is returned by signing operations on a watch-only
// account, which never carries key material.
var ErrNoPrivateKey = errors.New("wallet: account has no private key")

// Account is a single key (or multi-sig group of keys) a Wallet can
// sign with, together with the verification script deriving its
// address.
type Account struct {
	Label        string    `json:"label"`
	Address      string    `json:"address"`
	EncryptedWIF string    `json:"key"`
	Contract     *Contract `json:"contract,omitempty"`
	Default      bool      `json:"isdefault"`
	Locked       bool      `json:"lock"`

	scriptHash util.Uint160
	privateKey *keys.PrivateKey
}

// NewAccount creates an account around a freshly generated private key.
func NewAccount() (*Account, error) {
	priv, err := keys.NewPrivateKey()
	if err != nil {
		return nil, err
	}
	return accountFromPrivateKey(priv, ""), nil
}

// NewAccountFromWIF imports an account from a WIF-encoded private key.
func NewAccountFromWIF(wif string) (*Account, error) {
	priv, err := keys.NewPrivateKeyFromWIF(wif)
	if err != nil {
		return nil, fmt.Errorf("wallet: invalid WIF: %w", err)
	}
	return accountFromPrivateKey(priv, ""), nil
}

// NewAccountFromEncryptedWIF imports an account from a NEP-2 ciphertext,
// decrypting it immediately with password.
func NewAccountFromEncryptedWIF(nep2, password string) (*Account, error) {
	wif, err := keys.NEP2Decrypt(nep2, password)
	if err != nil {
		return nil, fmt.Errorf("wallet: %w", err)
	}
	priv, err := keys.NewPrivateKeyFromWIF(wif)
	if err != nil {
		return nil, err
	}
	acc := accountFromPrivateKey(priv, "")
	acc.EncryptedWIF = nep2
	return acc, nil
}

// NewWatchOnlyAccount imports a watch-only account: it can receive and
// hold an address but never signs, since no key material is recorded.
func NewWatchOnlyAccount(addr string) (*Account, error) {
	h, err := address.StringToUint160(addr)
	if err != nil {
		return nil, fmt.Errorf("wallet: invalid address: %w", err)
	}
	return &Account{Address: addr, scriptHash: h}, nil
}

// NewMultiSigAccount creates a watch-capable account for an m-of-n
// multi-signature group. It carries no private key of its own; the
// caller signs with the individual member accounts and the builder
// composes the witnesses.
func NewMultiSigAccount(m int, pubs keys.PublicKeys, label string) (*Account, error) {
	script, err := pubs.GetVerificationScript(m)
	if err != nil {
		return nil, fmt.Errorf("wallet: %w", err)
	}
	h := hash.Hash160(script)
	return &Account{
		Label:      label,
		Address:    address.Uint160ToString(h),
		Contract:   multiSigContract(script, m),
		scriptHash: h,
	}, nil
}

func accountFromPrivateKey(priv *keys.PrivateKey, label string) *Account {
	pub := priv.PublicKey()
	script := pub.GetVerificationScript()
	h := hash.Hash160(script)
	return &Account{
		Label:      label,
		Address:    address.Uint160ToString(h),
		Contract:   signatureContract(script),
		scriptHash: h,
		privateKey: priv,
	}
}

// ScriptHash returns the account's script hash, deriving it from the
// address if the account was loaded without decrypting its key.
func (a *Account) ScriptHash() util.Uint160 {
	if !a.scriptHash.IsZero() {
		return a.scriptHash
	}
	if h, err := address.StringToUint160(a.Address); err == nil {
		a.scriptHash = h
	}
	return a.scriptHash
}

// PrivateKey returns the account's decrypted private key, or nil if
// the account is locked or watch-only.
func (a *Account) PrivateKey() *keys.PrivateKey {
	return a.privateKey
}

// IsWatchOnly reports whether the account holds no key material at all
// (as opposed to merely being locked).
func (a *Account) IsWatchOnly() bool {
	return a.privateKey == nil && a.EncryptedWIF == "" && !a.IsMultiSig()
}

// IsMultiSig reports whether the account's contract is a multi-sig
// verification script.
func (a *Account) IsMultiSig() bool {
	return a.Contract != nil && len(a.Contract.Parameters) > 1
}

// Lock encrypts the account's private key under password (NEP-2) and
// drops the plaintext key from memory.
func (a *Account) Lock(password string) error {
	if a.privateKey == nil {
		return ErrNoPrivateKey
	}
	enc, err := keys.NEP2Encrypt(a.privateKey, password)
	if err != nil {
		return err
	}
	a.EncryptedWIF = enc
	a.privateKey.Destroy()
	a.privateKey = nil
	a.Locked = true
	return nil
}

// Unlock decrypts the account's NEP-2 ciphertext and restores the
// plaintext private key. On a wrong password the account remains locked.
func (a *Account) Unlock(password string) error {
	if a.EncryptedWIF == "" {
		return ErrNoPrivateKey
	}
	wif, err := keys.NEP2Decrypt(a.EncryptedWIF, password)
	if err != nil {
		return err
	}
	priv, err := keys.NewPrivateKeyFromWIF(wif)
	if err != nil {
		return err
	}
	a.privateKey = priv
	a.Locked = false
	return nil
}

// Decrypt is an alias for Unlock, kept for callers migrating from the
// account's single-step constructors.
func (a *Account) Decrypt(password string) error {
	return a.Unlock(password)
}

// SignHash signs digest with the account's private key.
func (a *Account) SignHash(digest util.Uint256) ([]byte, error) {
	if a.privateKey == nil {
		if a.EncryptedWIF != "" {
			return nil, ErrAccountLocked
		}
		return nil, ErrNoPrivateKey
	}
	return a.privateKey.SignHash(digest), nil
}

// SignTx produces the invocation script witnessing tx for this account
// and pairs it with the account's verification script. The signature
// commits to tx.Hash() directly — the transaction id digest, with no
// network-magic salting.
func (a *Account) SignTx(tx *transaction.Transaction) (*transaction.Witness, error) {
	sig, err := a.SignHash(tx.Hash())
	if err != nil {
		return nil, err
	}
	invocation := make([]byte, 0, 2+len(sig))
	invocation = append(invocation, 0x0c, byte(len(sig)))
	invocation = append(invocation, sig...)
	return &transaction.Witness{
		InvocationScript:   invocation,
		VerificationScript: a.Contract.Script,
	}, nil
}
