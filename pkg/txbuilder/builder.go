// Package txbuilder assembles, fee-negotiates, signs and submits
// transactions against a live node, the way the node's own CLI builds
// one transaction per invoke/transfer command: nonce and validity
// window, script (by hand or via a contract call), signers and
// attributes, then a round trip to the node to price it before
// anyone signs anything.
package txbuilder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nspcc-dev/neo-go-sdk/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go-sdk/pkg/neorpc"
	"github.com/nspcc-dev/neo-go-sdk/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go-sdk/pkg/smartcontract"
	"github.com/nspcc-dev/neo-go-sdk/pkg/util"
	"github.com/nspcc-dev/neo-go-sdk/pkg/wallet"
	"go.uber.org/zap"
)

// DefaultValidUntilBlockIncrement is added to the node's current
// height when no explicit validity window is requested, leaving
// roughly the same inclusion window the node's own CLI defaults to.
const DefaultValidUntilBlockIncrement = 5760

// ErrTxNotAccepted is returned by SendAndWait when ValidUntilBlock
// passes without the transaction's application log ever appearing.
var ErrTxNotAccepted = errors.New("txbuilder: transaction expired without being included in a block")

// Client is the subset of rpcclient.Client a Builder needs to price,
// submit and track a transaction.
type Client interface {
	GetBlockCount() (uint32, error)
	InvokeScript(script []byte, signers []neorpc.SignerWithWitness) (*result.Invoke, error)
	CalculateNetworkFee(tx []byte) (int64, error)
	SendRawTransaction(rawTx []byte) (util.Uint256, error)
	GetApplicationLog(hash util.Uint256, trigger *string) (*result.AppLog, error)
}

// Builder accumulates a transaction's contents across chained calls,
// then negotiates its fees and validity window against the node on
// BuildUnsigned, the same two-phase "assemble, then price" flow the
// node's own RPC clients use so a signature never has to be redone
// because of a stale fee estimate.
type Builder struct {
	client  Client
	log     *zap.Logger
	metrics *Metrics

	nonce           uint32
	validUntilBlock uint32
	script          []byte
	scriptErr       error
	signers         []transaction.Signer
	attributes      []transaction.Attribute
	extraSysFee     int64
	extraNetFee     int64
}

// New returns an empty Builder submitting against client.
func New(client Client) *Builder {
	return &Builder{client: client, log: zap.NewNop()}
}

// Logger attaches log to the Builder, which logs fee negotiation and
// submission progress against it. A Builder with no Logger call logs
// nothing.
func (b *Builder) Logger(log *zap.Logger) *Builder {
	if log != nil {
		b.log = log
	}
	return b
}

// Metrics attaches m to the Builder. A nil m records nothing.
func (b *Builder) Metrics(m *Metrics) *Builder {
	b.metrics = m
	return b
}

// Nonce fixes the transaction's nonce instead of leaving it random.
func (b *Builder) Nonce(nonce uint32) *Builder {
	b.nonce = nonce
	return b
}

// ValidUntilBlock fixes the transaction's expiry height instead of
// deriving one from the node's current height.
func (b *Builder) ValidUntilBlock(height uint32) *Builder {
	b.validUntilBlock = height
	return b
}

// Script sets the transaction's script verbatim, replacing anything
// assembled so far via CallContract.
func (b *Builder) Script(script []byte) *Builder {
	b.script = script
	b.scriptErr = nil
	return b
}

// CallContract appends a call to method on contract hash with args to
// the transaction's script, the way a single-call invocation command
// builds its script.
func (b *Builder) CallContract(hash util.Uint160, method string, args ...any) *Builder {
	sb := smartcontract.NewBuilder()
	sb.InvokeMethod(hash, method, args...)
	script, err := sb.Script()
	if err != nil {
		b.scriptErr = err
		return b
	}
	b.script = script
	return b
}

// AddSigner appends s to the transaction's signer list.
func (b *Builder) AddSigner(s transaction.Signer) *Builder {
	b.signers = append(b.signers, s)
	return b
}

// AddAttribute appends a to the transaction's attribute list. A second
// HighPriority attribute is silently dropped: the node rejects a
// transaction carrying more than one.
func (b *Builder) AddAttribute(a transaction.Attribute) *Builder {
	if a.Type == transaction.HighPriority {
		for _, existing := range b.attributes {
			if existing.Type == transaction.HighPriority {
				return b
			}
		}
	}
	b.attributes = append(b.attributes, a)
	return b
}

// AdditionalSystemFee adds fee on top of the system fee the node
// reports for the script, the margin a caller asks for when it
// expects the live state to cost slightly more than the test
// invocation used to estimate it.
func (b *Builder) AdditionalSystemFee(fee int64) *Builder {
	b.extraSysFee += fee
	return b
}

// AdditionalNetworkFee adds fee on top of the network fee
// calculatenetworkfee reports, the same margin for witness-size
// estimation error.
func (b *Builder) AdditionalNetworkFee(fee int64) *Builder {
	b.extraNetFee += fee
	return b
}

// BuildUnsigned assembles the accumulated script, signers and
// attributes into a transaction, then negotiates its fees against the
// node: invokescript for the system fee (a test invocation of the
// exact script this transaction will run, with the same signers),
// calculatenetworkfee (with placeholder witnesses attached) for the
// network fee. The returned transaction has no witnesses yet.
func (b *Builder) BuildUnsigned(ctx context.Context) (*transaction.Transaction, error) {
	if b.scriptErr != nil {
		return nil, fmt.Errorf("assembling script: %w", b.scriptErr)
	}
	if len(b.script) == 0 {
		return nil, errors.New("txbuilder: no script set")
	}
	if len(b.signers) == 0 {
		return nil, errors.New("txbuilder: at least one signer is required")
	}

	negotiationStart := time.Now()

	vub := b.validUntilBlock
	if vub == 0 {
		height, err := b.client.GetBlockCount()
		if err != nil {
			return nil, fmt.Errorf("fetching block height: %w", err)
		}
		vub = height + DefaultValidUntilBlockIncrement
	}

	invokeSigners := make([]neorpc.SignerWithWitness, len(b.signers))
	for i, s := range b.signers {
		invokeSigners[i] = neorpc.SignerWithWitness{Signer: s}
	}
	res, err := b.client.InvokeScript(b.script, invokeSigners)
	if err != nil {
		return nil, fmt.Errorf("pricing system fee: %w", err)
	}
	if res.State != result.VMStateHalt {
		return nil, fmt.Errorf("test invocation faulted: %s", res.FaultException)
	}
	b.log.Debug("priced system fee", zap.Int64("gas_consumed", res.GasConsumed))

	tx := transaction.New(b.script, 0, 0, vub)
	if b.nonce != 0 {
		tx.Nonce = b.nonce
	}
	tx.Signers = b.signers
	tx.Attributes = b.attributes
	tx.Scripts = make([]transaction.Witness, len(b.signers))
	for i, s := range b.signers {
		tx.Scripts[i] = transaction.Witness{VerificationScript: placeholderVerification(s.Account)}
	}

	raw, err := tx.Bytes()
	if err != nil {
		return nil, fmt.Errorf("serializing transaction for pricing: %w", err)
	}
	netFee, err := b.client.CalculateNetworkFee(raw)
	if err != nil {
		return nil, fmt.Errorf("calculating network fee: %w", err)
	}

	tx.SystemFee = res.GasConsumed + b.extraSysFee
	tx.NetworkFee = netFee + b.extraNetFee
	tx.Scripts = nil
	b.metrics.observeFeeNegotiation(time.Since(negotiationStart).Seconds(), tx.SystemFee)
	b.log.Debug("built unsigned transaction",
		zap.Int64("system_fee", tx.SystemFee),
		zap.Int64("network_fee", tx.NetworkFee),
		zap.Uint32("valid_until_block", tx.ValidUntilBlock))
	return tx, nil
}

// placeholderVerification returns a dummy-length verification script
// used only so the transaction has a realistic size for network fee
// calculation before it's actually signed.
func placeholderVerification(util.Uint160) []byte {
	return make([]byte, 35)
}

// SignWith attaches acc's witness to tx, replacing any previous
// witness for the same account. acc's script hash must match one of
// tx's signers.
func SignWith(tx *transaction.Transaction, acc *wallet.Account) error {
	idx := -1
	accHash := acc.ScriptHash()
	for i, s := range tx.Signers {
		if s.Account == accHash {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("txbuilder: account %s is not a signer of this transaction", accHash.StringLE())
	}
	w, err := acc.SignTx(tx)
	if err != nil {
		return fmt.Errorf("signing transaction: %w", err)
	}
	for len(tx.Scripts) <= idx {
		tx.Scripts = append(tx.Scripts, transaction.Witness{})
	}
	tx.Scripts[idx] = *w
	return nil
}

// SignWithAll signs tx with every account in accs that matches one of
// its signers, returning an error if any signer is left unwitnessed.
func SignWithAll(tx *transaction.Transaction, accs []*wallet.Account) error {
	for _, acc := range accs {
		if err := SignWith(tx, acc); err != nil {
			return err
		}
	}
	if len(tx.Scripts) != len(tx.Signers) {
		return fmt.Errorf("txbuilder: %d of %d signers witnessed", len(tx.Scripts), len(tx.Signers))
	}
	for i, w := range tx.Scripts {
		if len(w.VerificationScript) == 0 && len(w.InvocationScript) == 0 {
			return fmt.Errorf("txbuilder: signer %d has no witness", i)
		}
	}
	return nil
}

// BuildAndSign is BuildUnsigned followed by SignWithAll.
func (b *Builder) BuildAndSign(ctx context.Context, accs []*wallet.Account) (*transaction.Transaction, error) {
	tx, err := b.BuildUnsigned(ctx)
	if err != nil {
		return nil, err
	}
	if err := SignWithAll(tx, accs); err != nil {
		return nil, err
	}
	return tx, nil
}

// SendAndWait submits a fully signed tx and polls getapplicationlog
// until it's included in a block or ValidUntilBlock passes, whichever
// comes first.
func (b *Builder) SendAndWait(ctx context.Context, tx *transaction.Transaction) (*result.AppLog, error) {
	raw, err := tx.Bytes()
	if err != nil {
		return nil, fmt.Errorf("serializing transaction: %w", err)
	}
	hash, err := b.client.SendRawTransaction(raw)
	if err != nil {
		return nil, fmt.Errorf("submitting transaction: %w", err)
	}
	b.log.Info("submitted transaction", zap.Stringer("hash", hash), zap.Uint32("valid_until_block", tx.ValidUntilBlock))

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		log, err := b.client.GetApplicationLog(hash, nil)
		if err == nil {
			b.log.Debug("transaction included", zap.Stringer("hash", hash))
			b.metrics.observeSubmission("accepted")
			return log, nil
		}
		height, hErr := b.client.GetBlockCount()
		if hErr == nil && height > tx.ValidUntilBlock {
			b.log.Warn("transaction expired", zap.Stringer("hash", hash), zap.Uint32("height", height))
			b.metrics.observeSubmission("expired")
			return nil, ErrTxNotAccepted
		}
		select {
		case <-ctx.Done():
			b.metrics.observeSubmission("canceled")
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
