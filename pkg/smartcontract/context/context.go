package context

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/nspcc-dev/neo-go-sdk/pkg/config/netmode"
	"github.com/nspcc-dev/neo-go-sdk/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go-sdk/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go-sdk/pkg/io"
	"github.com/nspcc-dev/neo-go-sdk/pkg/smartcontract"
	"github.com/nspcc-dev/neo-go-sdk/pkg/util"
	"github.com/nspcc-dev/neo-go-sdk/pkg/wallet"
)

// Verifiable is anything a ParameterContext can collect signatures for.
type Verifiable interface {
	Hash() util.Uint256
}

// ParameterContext carries an entity awaiting signatures (typically a
// transaction) together with the signing progress collected for every
// account that must witness it, so the collection can be serialized to
// disk and passed between signers that can't all run on one machine.
type ParameterContext struct {
	Type       string
	Network    netmode.Magic
	Verifiable Verifiable
	Items      map[util.Uint160]*Item
}

// NewParameterContext creates an empty ParameterContext for verifiable.
func NewParameterContext(typ string, network netmode.Magic, verifiable Verifiable) *ParameterContext {
	return &ParameterContext{
		Type:       typ,
		Network:    network,
		Verifiable: verifiable,
		Items:      make(map[util.Uint160]*Item),
	}
}

func (c *ParameterContext) getOrCreateItem(h util.Uint160, ctr *wallet.Contract) *Item {
	if it, ok := c.Items[h]; ok {
		return it
	}
	params := make([]smartcontract.Parameter, len(ctr.Parameters))
	for i, p := range ctr.Parameters {
		params[i] = smartcontract.Parameter{Type: p.Type}
	}
	it := &Item{
		Script:     ctr.Script,
		Parameters: params,
		Signatures: make(map[string][]byte),
	}
	c.Items[h] = it
	return it
}

// AddSignature records sig, produced by pub over the entity this
// context was created for, as ctr's witness for the account hashed to
// h. ctr may be a plain signature contract or an m-of-n multisig
// contract; either way pub must actually be a party to it.
func (c *ParameterContext) AddSignature(h util.Uint160, ctr *wallet.Contract, pub *keys.PublicKey, sig []byte) error {
	if m, pubs, err := smartcontract.ParseMultiSigContract(ctr.Script); err == nil {
		return c.addMultiSigSignature(h, ctr, m, pubs, pub, sig)
	}
	return c.addSingleSignature(h, ctr, pub, sig)
}

func (c *ParameterContext) addSingleSignature(h util.Uint160, ctr *wallet.Contract, pub *keys.PublicKey, sig []byte) error {
	if len(ctr.Parameters) != 1 || ctr.Parameters[0].Type != smartcontract.SignatureType {
		return fmt.Errorf("smartcontract/context: %s is not a signature contract", h.StringLE())
	}
	item := c.getOrCreateItem(h, ctr)
	item.Parameters[0].Value = sig
	item.AddSignature(pub, sig)
	return nil
}

func (c *ParameterContext) addMultiSigSignature(h util.Uint160, ctr *wallet.Contract, _ int, pubs keys.PublicKeys, pub *keys.PublicKey, sig []byte) error {
	if !pubs.Contains(pub) {
		return fmt.Errorf("smartcontract/context: public key is not a member of multisig contract %s", h.StringLE())
	}
	item := c.getOrCreateItem(h, ctr)
	if item.GetSignature(pub) != nil {
		return fmt.Errorf("smartcontract/context: signature for this key is already present")
	}
	item.AddSignature(pub, sig)
	return nil
}

// invocationScriptFor returns the PUSHDATA1-prefixed invocation script
// that feeds a single signature to a verification script.
func invocationScriptFor(sig []byte) []byte {
	return append([]byte{0x0C, byte(len(sig))}, sig...)
}

// GetWitness assembles the witness for the account hashed to h from the
// signatures collected so far, or reports that not enough have been
// gathered yet.
func (c *ParameterContext) GetWitness(h util.Uint160) (*transaction.Witness, error) {
	item, ok := c.Items[h]
	if !ok {
		return nil, fmt.Errorf("smartcontract/context: no signing data for %s", h.StringLE())
	}
	if m, pubs, err := smartcontract.ParseMultiSigContract(item.Script); err == nil {
		var invocation []byte
		got := 0
		for _, p := range pubs {
			sig := item.GetSignature(p)
			if sig == nil {
				continue
			}
			invocation = append(invocation, invocationScriptFor(sig)...)
			got++
			if got == m {
				break
			}
		}
		if got < m {
			return nil, fmt.Errorf("smartcontract/context: not enough signatures for %s: have %d, need %d", h.StringLE(), got, m)
		}
		return &transaction.Witness{InvocationScript: invocation, VerificationScript: item.Script}, nil
	}
	if len(item.Parameters) != 1 {
		return nil, fmt.Errorf("smartcontract/context: no signing data for %s", h.StringLE())
	}
	sig, _ := item.Parameters[0].Value.([]byte)
	if sig == nil {
		return nil, fmt.Errorf("smartcontract/context: missing signature for %s", h.StringLE())
	}
	return &transaction.Witness{InvocationScript: invocationScriptFor(sig), VerificationScript: item.Script}, nil
}

type parameterContextAux struct {
	Type    string           `json:"type"`
	Network netmode.Magic    `json:"network"`
	Data    string           `json:"data"`
	Items   map[string]*Item `json:"items"`
}

// MarshalJSON implements the json.Marshaler interface.
func (c ParameterContext) MarshalJSON() ([]byte, error) {
	tx, ok := c.Verifiable.(*transaction.Transaction)
	if !ok {
		return nil, fmt.Errorf("smartcontract/context: can only marshal a *transaction.Transaction verifiable")
	}
	var buf bytes.Buffer
	bw := io.NewBinWriterFromIO(&buf)
	tx.EncodeBinary(bw)
	if bw.Err != nil {
		return nil, bw.Err
	}
	items := make(map[string]*Item, len(c.Items))
	for h, it := range c.Items {
		items[h.String()] = it
	}
	return json.Marshal(parameterContextAux{
		Type:    c.Type,
		Network: c.Network,
		Data:    hex.EncodeToString(buf.Bytes()),
		Items:   items,
	})
}

// UnmarshalJSON implements the json.Unmarshaler interface. The decoded
// Verifiable is always a *transaction.Transaction.
func (c *ParameterContext) UnmarshalJSON(data []byte) error {
	var aux parameterContextAux
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	raw, err := hex.DecodeString(aux.Data)
	if err != nil {
		return fmt.Errorf("smartcontract/context: invalid data encoding: %w", err)
	}
	tx := &transaction.Transaction{}
	br := io.NewBinReaderFromBuf(raw)
	tx.DecodeBinary(br)
	if br.Err != nil {
		return fmt.Errorf("smartcontract/context: invalid verifiable data: %w", br.Err)
	}
	items := make(map[util.Uint160]*Item, len(aux.Items))
	for k, it := range aux.Items {
		h, err := util.Uint160DecodeStringBE(k)
		if err != nil {
			return err
		}
		items[h] = it
	}
	c.Type = aux.Type
	c.Network = aux.Network
	c.Verifiable = tx
	c.Items = items
	return nil
}
