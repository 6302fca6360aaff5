// Package wallet implements NEP-6 wallets: collections of accounts
// indexed by address and script hash, capable of signing and
// structurally verifying transactions without talking to a node.
package wallet

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	ojson "github.com/nspcc-dev/go-ordered-json"

	"github.com/nspcc-dev/neo-go-sdk/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go-sdk/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go-sdk/pkg/util"
)

// ErrAccountNotFound is returned when an operation names an account
// the wallet doesn't hold.
var ErrAccountNotFound = errors.New("wallet: account not found")

// ErrWitnessMismatch is returned by Verify when a transaction's
// witnesses don't structurally satisfy its signers.
var ErrWitnessMismatch = errors.New("wallet: witness does not match signer")

// Wallet is a NEP-6 account collection, kept indexed by address and by
// script hash so membership and lookups are O(1).
type Wallet struct {
	Name     string              `json:"name"`
	Version  string              `json:"version"`
	Accounts []*Account          `json:"accounts"`
	Scrypt   ScryptParams        `json:"scrypt"`
	Extra    ojson.OrderedObject `json:"extra"`

	path         string
	byAddress    map[string]*Account
	byScriptHash map[util.Uint160]*Account
}

// ScryptParams are the NEP-2/NEP-6 key-derivation cost parameters.
type ScryptParams struct {
	N int `json:"n"`
	R int `json:"r"`
	P int `json:"p"`
}

// DefaultScryptParams matches the NEP-2 standard cost parameters the
// node uses.
var DefaultScryptParams = ScryptParams{N: 16384, R: 8, P: 8}

// NewWallet creates an empty wallet named name.
func NewWallet(name string) *Wallet {
	w := &Wallet{Name: name, Version: "3.0", Scrypt: DefaultScryptParams}
	w.reindex()
	return w
}

func (w *Wallet) reindex() {
	w.byAddress = make(map[string]*Account, len(w.Accounts))
	w.byScriptHash = make(map[util.Uint160]*Account, len(w.Accounts))
	for _, a := range w.Accounts {
		w.byAddress[a.Address] = a
		w.byScriptHash[a.ScriptHash()] = a
	}
}

// AddAccount adds acc to the wallet and rebuilds the lookup indices.
func (w *Wallet) AddAccount(acc *Account) {
	w.Accounts = append(w.Accounts, acc)
	w.reindex()
}

// RemoveAccount removes the account at addr, rebuilding indices.
func (w *Wallet) RemoveAccount(addr string) error {
	for i, a := range w.Accounts {
		if a.Address == addr {
			w.Accounts = append(w.Accounts[:i], w.Accounts[i+1:]...)
			w.reindex()
			return nil
		}
	}
	return ErrAccountNotFound
}

// GetAccount returns the account at addr, or nil if the wallet doesn't
// hold it.
func (w *Wallet) GetAccount(addr string) *Account {
	return w.byAddress[addr]
}

// GetAccountByScriptHash returns the account whose contract hashes to
// h, or nil.
func (w *Wallet) GetAccountByScriptHash(h util.Uint160) *Account {
	return w.byScriptHash[h]
}

// Contains reports whether the wallet holds an account whose contract
// hashes to h.
func (w *Wallet) Contains(h util.Uint160) bool {
	_, ok := w.byScriptHash[h]
	return ok
}

// GetDefaultAccount returns the wallet's default account, or nil if
// none is marked as such.
func (w *Wallet) GetDefaultAccount() *Account {
	for _, a := range w.Accounts {
		if a.Default {
			return a
		}
	}
	return nil
}

// SetDefaultAccount marks addr as the wallet's default account,
// clearing the flag on every other account.
func (w *Wallet) SetDefaultAccount(addr string) error {
	acc := w.GetAccount(addr)
	if acc == nil {
		return ErrAccountNotFound
	}
	for _, a := range w.Accounts {
		a.Default = a == acc
	}
	return nil
}

// CreateAccount adds a freshly generated account labeled label.
func (w *Wallet) CreateAccount(label string) (*Account, error) {
	acc, err := NewAccount()
	if err != nil {
		return nil, err
	}
	acc.Label = label
	w.AddAccount(acc)
	return acc, nil
}

// ImportFromWIF adds an account imported from a WIF-encoded key.
func (w *Wallet) ImportFromWIF(wif, label string) (*Account, error) {
	acc, err := NewAccountFromWIF(wif)
	if err != nil {
		return nil, err
	}
	acc.Label = label
	w.AddAccount(acc)
	return acc, nil
}

// ImportFromNEP2 adds an account imported from a NEP-2 ciphertext.
func (w *Wallet) ImportFromNEP2(nep2, password, label string) (*Account, error) {
	acc, err := NewAccountFromEncryptedWIF(nep2, password)
	if err != nil {
		return nil, err
	}
	acc.Label = label
	w.AddAccount(acc)
	return acc, nil
}

// ImportWatchOnly adds a watch-only account for addr, which can never
// sign.
func (w *Wallet) ImportWatchOnly(addr, label string) (*Account, error) {
	acc, err := NewWatchOnlyAccount(addr)
	if err != nil {
		return nil, err
	}
	acc.Label = label
	w.AddAccount(acc)
	return acc, nil
}

// Verify checks that tx's witnesses structurally satisfy every signer:
// each signer's account must have a witness whose verification script
// hashes to that account, without consulting a node. This is a shape
// check only; it does not execute the verification script.
func (w *Wallet) Verify(tx *transaction.Transaction) error {
	if err := tx.VerifyWitnessCount(); err != nil {
		return err
	}
	for i, signer := range tx.Signers {
		wit := tx.Scripts[i]
		if wit.ScriptHash() != signer.Account {
			return fmt.Errorf("%w: signer %s", ErrWitnessMismatch, signer.Account.StringLE())
		}
		if len(wit.InvocationScript) == 0 && len(wit.VerificationScript) != 0 {
			return fmt.Errorf("%w: empty invocation for signer %s", ErrWitnessMismatch, signer.Account.StringLE())
		}
	}
	return nil
}

// Save persists the wallet as NEP-6 JSON to w's recorded path (or path
// if non-empty, which is then recorded for subsequent calls).
func (w *Wallet) Save(path string) error {
	if path != "" {
		w.path = path
	}
	if w.path == "" {
		return errors.New("wallet: no path to save to")
	}
	data, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(w.path, data, 0o600)
}

// LoadWallet loads a NEP-6 wallet from path. Accounts whose NEP-2
// ciphertext fails to decrypt under password become watch-only rather
// than aborting the load, matching the node's own tolerant behavior.
func LoadWallet(path, password string) (*Wallet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	w := &Wallet{}
	if err := json.Unmarshal(data, w); err != nil {
		return nil, err
	}
	w.path = path
	for _, acc := range w.Accounts {
		if acc.EncryptedWIF == "" {
			continue
		}
		if err := acc.Unlock(password); err != nil {
			acc.Locked = true
		}
	}
	w.reindex()
	return w, nil
}

// KeyHashable is satisfied by *keys.PrivateKey, letting callers sign
// arbitrary hashes without importing an account into a wallet first.
type KeyHashable interface {
	SignHash(digest util.Uint256) []byte
}

var _ KeyHashable = (*keys.PrivateKey)(nil)
