package txbuilder

import (
	"context"
	"errors"
	"testing"

	"github.com/nspcc-dev/neo-go-sdk/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go-sdk/pkg/neorpc"
	"github.com/nspcc-dev/neo-go-sdk/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go-sdk/pkg/util"
	"github.com/nspcc-dev/neo-go-sdk/pkg/wallet"
	"github.com/stretchr/testify/require"
)

type rpcStub struct {
	height   uint32
	invokeRes *result.Invoke
	invokeErr error
	netFee    int64
	netFeeErr error
	sendHash  util.Uint256
	sendErr   error
	logs      map[util.Uint256]*result.AppLog
}

func (r *rpcStub) GetBlockCount() (uint32, error) { return r.height, nil }

func (r *rpcStub) InvokeScript([]byte, []neorpc.SignerWithWitness) (*result.Invoke, error) {
	return r.invokeRes, r.invokeErr
}

func (r *rpcStub) CalculateNetworkFee([]byte) (int64, error) { return r.netFee, r.netFeeErr }

func (r *rpcStub) SendRawTransaction([]byte) (util.Uint256, error) { return r.sendHash, r.sendErr }

func (r *rpcStub) GetApplicationLog(hash util.Uint256, _ *string) (*result.AppLog, error) {
	if log, ok := r.logs[hash]; ok {
		return log, nil
	}
	return nil, errors.New("unknown transaction")
}

func newHaltStub() *rpcStub {
	return &rpcStub{
		height:    100,
		invokeRes: &result.Invoke{State: result.VMStateHalt, GasConsumed: 12345},
		netFee:    6789,
		logs:      map[util.Uint256]*result.AppLog{},
	}
}

func testSigner(t *testing.T) (*wallet.Account, transaction.Signer) {
	acc, err := wallet.NewAccount()
	require.NoError(t, err)
	return acc, transaction.Signer{Account: acc.ScriptHash(), Scopes: transaction.CalledByEntry}
}

func TestBuilderBuildUnsignedNoScript(t *testing.T) {
	b := New(newHaltStub())
	_, acc := testSigner(t)
	b.AddSigner(acc)
	_, err := b.BuildUnsigned(context.Background())
	require.Error(t, err)
}

func TestBuilderBuildUnsignedNoSigners(t *testing.T) {
	b := New(newHaltStub())
	b.Script([]byte{1, 2, 3})
	_, err := b.BuildUnsigned(context.Background())
	require.Error(t, err)
}

func TestBuilderBuildUnsignedFeesAndValidUntilBlock(t *testing.T) {
	stub := newHaltStub()
	b := New(stub)
	_, signer := testSigner(t)
	b.Script([]byte{1, 2, 3}).AddSigner(signer).AdditionalSystemFee(100).AdditionalNetworkFee(200)

	tx, err := b.BuildUnsigned(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(12345+100), tx.SystemFee)
	require.Equal(t, int64(6789+200), tx.NetworkFee)
	require.Equal(t, stub.height+DefaultValidUntilBlockIncrement, tx.ValidUntilBlock)
	require.Empty(t, tx.Scripts)
}

func TestBuilderBuildUnsignedExplicitValidUntilBlock(t *testing.T) {
	b := New(newHaltStub())
	_, signer := testSigner(t)
	b.Script([]byte{1}).AddSigner(signer).ValidUntilBlock(555)

	tx, err := b.BuildUnsigned(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 555, tx.ValidUntilBlock)
}

func TestBuilderBuildUnsignedFault(t *testing.T) {
	stub := newHaltStub()
	stub.invokeRes = &result.Invoke{State: result.VMStateFault, FaultException: "boom"}
	b := New(stub)
	_, signer := testSigner(t)
	b.Script([]byte{1}).AddSigner(signer)

	_, err := b.BuildUnsigned(context.Background())
	require.Error(t, err)
}

func TestBuilderCallContract(t *testing.T) {
	b := New(newHaltStub())
	_, signer := testSigner(t)
	b.CallContract(util.Uint160{1, 2, 3}, "transfer", signer.Account, util.Uint160{4, 5, 6}, 1, nil)
	b.AddSigner(signer)

	tx, err := b.BuildUnsigned(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, tx.Script)
}

func TestBuilderAddAttributeDedupsHighPriority(t *testing.T) {
	b := New(newHaltStub())
	b.AddAttribute(transaction.Attribute{Type: transaction.HighPriority})
	b.AddAttribute(transaction.Attribute{Type: transaction.HighPriority})
	require.Len(t, b.attributes, 1)
}

func TestSignWithAndSignWithAll(t *testing.T) {
	stub := newHaltStub()
	b := New(stub)
	acc1, signer1 := testSigner(t)
	acc2, signer2 := testSigner(t)
	b.Script([]byte{1}).AddSigner(signer1).AddSigner(signer2)

	tx, err := b.BuildUnsigned(context.Background())
	require.NoError(t, err)

	require.NoError(t, SignWith(tx, acc1))
	require.NoError(t, SignWith(tx, acc2))
	require.Len(t, tx.Scripts, 2)

	strayAcc, err := wallet.NewAccount()
	require.NoError(t, err)
	err = SignWith(tx, strayAcc)
	require.Error(t, err)
}

func TestBuilderBuildAndSign(t *testing.T) {
	stub := newHaltStub()
	b := New(stub)
	acc, signer := testSigner(t)
	b.Script([]byte{1}).AddSigner(signer)

	tx, err := b.BuildAndSign(context.Background(), []*wallet.Account{acc})
	require.NoError(t, err)
	require.Len(t, tx.Scripts, 1)
	require.NotEmpty(t, tx.Scripts[0].InvocationScript)
}

func TestBuilderSendAndWaitAccepted(t *testing.T) {
	stub := newHaltStub()
	b := New(stub)
	acc, signer := testSigner(t)
	b.Script([]byte{1}).AddSigner(signer)

	tx, err := b.BuildAndSign(context.Background(), []*wallet.Account{acc})
	require.NoError(t, err)

	h := tx.Hash()
	stub.sendHash = h
	stub.logs[h] = &result.AppLog{Container: h}

	log, err := b.SendAndWait(context.Background(), tx)
	require.NoError(t, err)
	require.Equal(t, h, log.Container)
}

func TestBuilderSendAndWaitExpired(t *testing.T) {
	stub := newHaltStub()
	stub.height = 100
	b := New(stub)
	acc, signer := testSigner(t)
	b.Script([]byte{1}).AddSigner(signer).ValidUntilBlock(100)

	tx, err := b.BuildAndSign(context.Background(), []*wallet.Account{acc})
	require.NoError(t, err)

	stub.sendHash = tx.Hash()
	stub.height = 101

	_, err = b.SendAndWait(context.Background(), tx)
	require.ErrorIs(t, err, ErrTxNotAccepted)
}

func TestBuilderSendAndWaitContextCanceled(t *testing.T) {
	stub := newHaltStub()
	b := New(stub)
	acc, signer := testSigner(t)
	b.Script([]byte{1}).AddSigner(signer)

	tx, err := b.BuildAndSign(context.Background(), []*wallet.Account{acc})
	require.NoError(t, err)
	stub.sendHash = tx.Hash()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = b.SendAndWait(ctx, tx)
	require.ErrorIs(t, err, context.Canceled)
}
