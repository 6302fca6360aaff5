package invoker_test

import (
	"context"
	"errors"

	"github.com/nspcc-dev/neo-go-sdk/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go-sdk/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go-sdk/pkg/neorpc"
	"github.com/nspcc-dev/neo-go-sdk/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go-sdk/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go-sdk/pkg/rpcclient/gas"
	"github.com/nspcc-dev/neo-go-sdk/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go-sdk/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go-sdk/pkg/util"
)

func ExampleInvoker() {
	// No error checking done at all, intentionally.
	c, _ := rpcclient.New(context.Background(), "url", rpcclient.Options{})

	gasHash := gas.Hash

	// A simple invoker with no signers, perfectly fine for reads from
	// safe methods that require no witness.
	inv := invoker.New(c, nil)

	// Get the GAS token supply (notice that unwrap is used to get the result).
	supply, _ := unwrap.BigInt(inv.Call(gasHash, "totalSupply"))
	_ = supply

	acc, _ := address.StringToUint160("NVTiAjNgagDkTr5HTzDmQP9kPwPHN5BgVq")
	// Get the GAS balance for account NVTiAjNgagDkTr5HTzDmQP9kPwPHN5BgVq.
	balance, _ := unwrap.BigInt(inv.Call(gasHash, "balanceOf", acc))
	_ = balance

	// This invoker has a signer for NVTiAjNgagDkTr5HTzDmQP9kPwPHN5BgVq with
	// CalledByEntry scope, sufficient for a test invocation of most
	// witness-checked methods.
	inv = invoker.New(c, []neorpc.SignerWithWitness{{Signer: transaction.Signer{Account: acc, Scopes: transaction.CalledByEntry}}})

	res, _ := inv.Call(gasHash, "transfer", acc, util.Uint160{1, 2, 3}, 1, nil)
	if res.State == result.VMStateHalt {
		ok, _ := unwrap.Bool(res, nil)
		if ok {
			_ = res.Script
			_ = res.GasConsumed
		}
	}

	// Iterator-returning methods can be expanded in one round trip when
	// the caller only wants a bounded page of results.
	nep11Contract := util.Uint160{1, 2, 3}
	var tokens [][]byte
	res, err := inv.CallAndExpandIterator(nep11Contract, "tokensOf", 10, acc)
	if err != nil && !errors.Is(err, invoker.ErrNoSession) {
		panic("some error")
	}
	if err == nil {
		tokens, _ = unwrap.ArrayOfBytes(res, nil)
	}
	_ = tokens
}
