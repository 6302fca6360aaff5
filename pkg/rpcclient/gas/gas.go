// Package gas wraps the GAS native contract's NEP-17 interface, the
// fungible token every transaction spends to pay for its own system
// and network fees.
package gas

import (
	"math/big"

	"github.com/nspcc-dev/neo-go-sdk/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go-sdk/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go-sdk/pkg/smartcontract"
	"github.com/nspcc-dev/neo-go-sdk/pkg/util"
)

// Hash is GAS's native contract script hash, fixed at genesis and
// identical on every Neo N3 network.
var Hash util.Uint160

func init() {
	h, err := util.Uint160DecodeStringBE("d2a4cff31913016155e38e474a2c06d08be276cf")
	if err != nil {
		panic(err)
	}
	Hash = h
}

// Invoker is the read-only call surface Reader needs; satisfied by
// *invoker.Invoker.
type Invoker interface {
	Call(hash util.Uint160, method string, params ...any) (*result.Invoke, error)
}

// Reader provides typed access to GAS's read-only methods.
type Reader struct {
	invoker Invoker
}

// NewReader returns a Reader that makes its test invocations through
// invoker.
func NewReader(invoker Invoker) *Reader {
	return &Reader{invoker: invoker}
}

// BalanceOf returns account's GAS balance.
func (r *Reader) BalanceOf(account util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(r.invoker.Call(Hash, "balanceOf", account))
}

// TotalSupply returns the amount of GAS currently in circulation.
func (r *Reader) TotalSupply() (*big.Int, error) {
	return unwrap.BigInt(r.invoker.Call(Hash, "totalSupply"))
}

// Decimals returns the number of decimal places GAS amounts carry (8
// on every network that has shipped so far, but a Reader never
// hardcodes it).
func (r *Reader) Decimals() (int64, error) {
	return unwrap.Int64(r.invoker.Call(Hash, "decimals"))
}

// Symbol returns GAS's ticker symbol.
func (r *Reader) Symbol() (string, error) {
	return unwrap.UTF8String(r.invoker.Call(Hash, "symbol"))
}

// Token adds transfer-script assembly on top of Reader. It builds
// scripts only; submitting them is the caller's txbuilder.Builder's
// job, the same division of labor the node's CLI keeps between
// pricing a call and actually sending it.
type Token struct {
	*Reader
}

// New returns a Token that reads through invoker.
func New(invoker Invoker) *Token {
	return &Token{Reader: NewReader(invoker)}
}

// TransferScript assembles the invocation script for a transfer of
// amount GAS from from to to, with data forwarded to the recipient's
// onNEP17Payment (nil for none).
func (t *Token) TransferScript(from, to util.Uint160, amount *big.Int, data any) ([]byte, error) {
	b := smartcontract.NewBuilder()
	b.InvokeMethod(Hash, "transfer", from, to, amount, data)
	return b.Script()
}
