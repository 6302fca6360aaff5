// Package invoker wraps a Client in a fixed signer set so repeated
// test invocations of the same account don't have to repeat that
// bookkeeping on every call, the way the node's own CLI builds one
// invoker per wallet account for a batch of commands.
package invoker

import (
	"errors"
	"fmt"

	"github.com/nspcc-dev/neo-go-sdk/pkg/neorpc"
	"github.com/nspcc-dev/neo-go-sdk/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go-sdk/pkg/smartcontract"
	"github.com/nspcc-dev/neo-go-sdk/pkg/util"
)

// ErrNoSession is returned by CallAndExpandIterator when the node
// didn't hand back an iterator session to expand, most commonly
// because the call didn't return an iterator at all.
var ErrNoSession = errors.New("invoker: no iterator session in the result")

// RPCInvoke is the subset of rpcclient.Client (or rpcclient.WSClient)
// an Invoker needs to perform test invocations and drive iterator
// sessions.
type RPCInvoke interface {
	InvokeFunction(hash util.Uint160, method string, args []smartcontract.Parameter, signers []neorpc.SignerWithWitness) (*result.Invoke, error)
	InvokeScript(script []byte, signers []neorpc.SignerWithWitness) (*result.Invoke, error)
	TraverseIterator(session, iterator string, count int) ([]smartcontract.Parameter, error)
	TerminateSession(session string) (bool, error)
}

// Invoker performs read-only (test) contract invocations against a
// fixed signer set, reused across many Call/Run invocations so callers
// needing only a view of chain state don't have to build a
// transaction to get it.
type Invoker struct {
	client  RPCInvoke
	signers []neorpc.SignerWithWitness
}

// New returns an Invoker using signers (which may be nil, for calls
// that need no witness at all) for every invocation performed through
// it.
func New(client RPCInvoke, signers []neorpc.SignerWithWitness) *Invoker {
	return &Invoker{client: client, signers: signers}
}

// Signers returns the signer set this Invoker was built with.
func (v *Invoker) Signers() []neorpc.SignerWithWitness {
	return v.signers
}

func toParameters(params []any) ([]smartcontract.Parameter, error) {
	if len(params) == 0 {
		return nil, nil
	}
	return smartcontract.NewParametersFromValues(params...)
}

// Call performs a test invocation of method on contract hash with
// params, each converted via smartcontract.NewParameterFromValue.
func (v *Invoker) Call(hash util.Uint160, method string, params ...any) (*result.Invoke, error) {
	ps, err := toParameters(params)
	if err != nil {
		return nil, fmt.Errorf("converting parameters: %w", err)
	}
	return v.client.InvokeFunction(hash, method, ps, v.signers)
}

// Run test-invokes an already-assembled script under this Invoker's
// signer set.
func (v *Invoker) Run(script []byte) (*result.Invoke, error) {
	return v.client.InvokeScript(script, v.signers)
}

// CallAndExpandIterator performs a test invocation of method and, if
// the result carries a session and its last stack item is a
// traversable iterator, eagerly pulls up to maxItems from it and
// releases the session before returning — callers that only want a
// bounded page of results never have to manage the session themselves.
func (v *Invoker) CallAndExpandIterator(hash util.Uint160, method string, maxItems int, params ...any) (*result.Invoke, error) {
	res, err := v.Call(hash, method, params...)
	if err != nil {
		return nil, err
	}
	if err := expandLastIterator(v.client, res, maxItems); err != nil {
		return nil, err
	}
	return res, nil
}

func expandLastIterator(client RPCInvoke, res *result.Invoke, maxItems int) error {
	if res.Session == nil || res.State != result.VMStateHalt || len(res.Stack) == 0 {
		return ErrNoSession
	}
	last := len(res.Stack) - 1
	iterID, ok := res.Stack[last].Value.(string)
	if !ok || res.Stack[last].Type != smartcontract.InteropInterfaceType {
		return ErrNoSession
	}
	sess := res.Session.String()
	items, err := client.TraverseIterator(sess, iterID, maxItems)
	_, _ = client.TerminateSession(sess)
	if err != nil {
		return fmt.Errorf("expanding iterator: %w", err)
	}
	res.Stack[last] = smartcontract.Parameter{Type: smartcontract.ArrayType, Value: items}
	return nil
}

// TraverseIterator pulls up to count more items from iterator in
// session, the session and iterator id that a result.Invoke.Session
// and its InteropInterfaceType stack items provide.
func (v *Invoker) TraverseIterator(session, iterator string, count int) ([]smartcontract.Parameter, error) {
	return v.client.TraverseIterator(session, iterator, count)
}

// TerminateSession releases session on the node ahead of its natural
// expiry, letting the server reclaim the iterators it's holding open.
func (v *Invoker) TerminateSession(session string) (bool, error) {
	return v.client.TerminateSession(session)
}
