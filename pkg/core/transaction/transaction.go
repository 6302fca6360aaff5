package transaction

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/nspcc-dev/neo-go-sdk/pkg/crypto/hash"
	"github.com/nspcc-dev/neo-go-sdk/pkg/io"
	"github.com/nspcc-dev/neo-go-sdk/pkg/util"
)

const (
	// DefaultVersion is the only transaction version accepted by the
	// network at the time of writing.
	DefaultVersion = 0

	// MaxTransactionSize is the maximum size in bytes a serialized
	// transaction may occupy.
	MaxTransactionSize = 102400

	// MaxScriptLength bounds the transaction script, leaving headroom
	// below MaxTransactionSize for signers, attributes and witnesses.
	MaxScriptLength = MaxTransactionSize

	// MaxAttributesCount bounds the combined number of signers and
	// attributes a transaction may carry.
	MaxAttributesCount = 16
)

// ErrTransactionTooLarge is returned when a serialized transaction
// exceeds MaxTransactionSize.
var ErrTransactionTooLarge = errors.New("transaction is too large")

// ErrInvalidWitnessCount is returned when the number of witnesses
// doesn't match the number of signers on a submission-ready transaction.
var ErrInvalidWitnessCount = errors.New("witness count doesn't match signer count")

// Transaction is a signed, sequenced unit of work submitted to the
// network: a script to run, the accounts witnessing it, the fees the
// sender is willing to pay, and the window in which it's valid.
type Transaction struct {
	Version         byte
	Nonce           uint32
	SystemFee       int64
	NetworkFee      int64
	ValidUntilBlock uint32
	Signers         []Signer
	Attributes      []Attribute
	Script          []byte
	Scripts         []Witness

	hash      util.Uint256
	hashValid bool
	size      int
}

// New creates a transaction running script, with ValidUntilBlock
// already set and a random nonce assigned.
func New(script []byte, systemFee, networkFee int64, validUntilBlock uint32) *Transaction {
	return &Transaction{
		Version:         DefaultVersion,
		Nonce:           randomNonce(),
		SystemFee:       systemFee,
		NetworkFee:      networkFee,
		ValidUntilBlock: validUntilBlock,
		Script:          script,
	}
}

func randomNonce() uint32 {
	var b [4]byte
	_, _ = rand.Read(b[:])
	return binary.LittleEndian.Uint32(b[:])
}

// Hash returns the transaction id: the double-SHA256 of its unsigned
// part. It's cached after the first call; any field mutation must go
// through a fresh Transaction (or call invalidateCache below).
func (t *Transaction) Hash() util.Uint256 {
	if !t.hashValid {
		t.hash = hash.DoubleSha256(t.getSignedHashableFields())
		t.hashValid = true
	}
	return t.hash
}

// invalidateCache drops the cached hash/size, for callers that mutate
// a transaction in place after constructing it (e.g. a builder).
func (t *Transaction) invalidateCache() {
	t.hashValid = false
	t.size = 0
}

func (t *Transaction) getSignedHashableFields() []byte {
	bw := io.NewBufBinWriter()
	t.encodeHashableFields(bw.BinWriter)
	return bw.Bytes()
}

func (t *Transaction) encodeHashableFields(bw *io.BinWriter) {
	bw.WriteB(t.Version)
	bw.WriteU32LE(t.Nonce)
	bw.WriteU64LE(uint64(t.SystemFee))
	bw.WriteU64LE(uint64(t.NetworkFee))
	bw.WriteU32LE(t.ValidUntilBlock)
	bw.WriteArray(t.Signers)
	bw.WriteArray(t.Attributes)
	bw.WriteVarBytes(t.Script)
}

// EncodeBinary implements the Serializable interface.
func (t *Transaction) EncodeBinary(bw *io.BinWriter) {
	t.encodeHashableFields(bw)
	bw.WriteArray(t.Scripts)
}

// DecodeBinary implements the Serializable interface.
func (t *Transaction) DecodeBinary(br *io.BinReader) {
	t.Version = br.ReadB()
	t.Nonce = br.ReadU32LE()
	t.SystemFee = int64(br.ReadU64LE())
	t.NetworkFee = int64(br.ReadU64LE())
	t.ValidUntilBlock = br.ReadU32LE()
	br.ReadArray(&t.Signers, MaxAttributesCount)
	br.ReadArray(&t.Attributes, MaxAttributesCount)
	t.Script = br.ReadVarBytes(MaxScriptLength)
	br.ReadArray(&t.Scripts, MaxAttributesCount)
	if br.Err != nil {
		return
	}
	if t.SystemFee < 0 {
		br.Err = errors.New("negative system fee")
		return
	}
	if t.NetworkFee < 0 {
		br.Err = errors.New("negative network fee")
		return
	}
	if len(t.Script) == 0 {
		br.Err = errors.New("empty script")
		return
	}
	if err := checkDuplicateSigners(t.Signers); err != nil {
		br.Err = err
		return
	}
	t.invalidateCache()
}

func checkDuplicateSigners(signers []Signer) error {
	seen := make(map[util.Uint160]bool, len(signers))
	for _, s := range signers {
		if seen[s.Account] {
			return ErrDuplicateSigner
		}
		seen[s.Account] = true
	}
	return nil
}

// Bytes returns the fully-signed wire encoding of t, erroring if it
// would exceed MaxTransactionSize.
func (t *Transaction) Bytes() ([]byte, error) {
	bw := io.NewBufBinWriter()
	t.EncodeBinary(bw.BinWriter)
	if bw.Err != nil {
		return nil, bw.Err
	}
	b := bw.Bytes()
	if len(b) > MaxTransactionSize {
		return nil, ErrTransactionTooLarge
	}
	return b, nil
}

// NewTransactionFromBytes decodes a Transaction from its wire form.
func NewTransactionFromBytes(b []byte) (*Transaction, error) {
	if len(b) > MaxTransactionSize {
		return nil, ErrTransactionTooLarge
	}
	tx := &Transaction{}
	br := io.NewBinReaderFromBuf(b)
	tx.DecodeBinary(br)
	if br.Err != nil {
		return nil, br.Err
	}
	return tx, nil
}

// Size returns the length of the transaction's wire encoding.
func (t *Transaction) Size() int {
	if t.size == 0 {
		bw := io.NewBufBinWriter()
		t.EncodeBinary(bw.BinWriter)
		t.size = bw.Len()
	}
	return t.size
}

// HasAttribute reports whether t carries an attribute of the given type.
func (t *Transaction) HasAttribute(typ AttrType) bool {
	for _, a := range t.Attributes {
		if a.Type == typ {
			return true
		}
	}
	return false
}

// HasSigner reports whether account is among the transaction's signers.
func (t *Transaction) HasSigner(account util.Uint160) bool {
	for _, s := range t.Signers {
		if s.Account == account {
			return true
		}
	}
	return false
}

// SortSigners reorders t.Signers by ascending scope byte, then by
// ascending account bytes, the canonical order the network expects.
func (t *Transaction) SortSigners() {
	sort.Slice(t.Signers, func(i, j int) bool {
		a, b := t.Signers[i], t.Signers[j]
		if a.Scopes != b.Scopes {
			return a.Scopes < b.Scopes
		}
		return compareUint160(a.Account, b.Account) < 0
	})
	t.invalidateCache()
}

func compareUint160(a, b util.Uint160) int {
	ab, bb := a.BytesBE(), b.BytesBE()
	for i := range ab {
		if ab[i] != bb[i] {
			if ab[i] < bb[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// SortWitnesses reorders t.Scripts to align with t.Signers, matching
// each witness to the signer whose account equals the witness's
// verification-script hash. It returns an error if any signer is left
// without a matching witness.
func (t *Transaction) SortWitnesses() error {
	byAccount := make(map[util.Uint160]Witness, len(t.Scripts))
	for _, w := range t.Scripts {
		byAccount[w.ScriptHash()] = w
	}
	sorted := make([]Witness, len(t.Signers))
	for i, s := range t.Signers {
		w, ok := byAccount[s.Account]
		if !ok {
			return fmt.Errorf("no witness for signer %s", s.Account.StringLE())
		}
		sorted[i] = w
	}
	t.Scripts = sorted
	t.invalidateCache()
	return nil
}

// VerifyWitnessCount reports an error if the number of witnesses
// doesn't match the number of signers, the shape required before a
// transaction can be broadcast.
func (t *Transaction) VerifyWitnessCount() error {
	if len(t.Scripts) != len(t.Signers) {
		return ErrInvalidWitnessCount
	}
	return nil
}

// Sender returns the account of the first signer, the one responsible
// for paying system and network fees.
func (t *Transaction) Sender() util.Uint160 {
	if len(t.Signers) == 0 {
		return util.Uint160{}
	}
	return t.Signers[0].Account
}

type transactionAux struct {
	Hash            string      `json:"hash"`
	Size            int         `json:"size"`
	Version         byte        `json:"version"`
	Nonce           uint32      `json:"nonce"`
	Sender          string      `json:"sender"`
	SystemFee       string      `json:"sysfee"`
	NetworkFee      string      `json:"netfee"`
	ValidUntilBlock uint32      `json:"validuntilblock"`
	Signers         []Signer    `json:"signers"`
	Attributes      []Attribute `json:"attributes"`
	Script          []byte      `json:"script"`
	Witnesses       []Witness   `json:"witnesses"`
}

// MarshalJSON implements the json.Marshaler interface, matching the
// shape returned by the RPC server for a transaction.
func (t *Transaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(transactionAux{
		Hash:            "0x" + t.Hash().StringLE(),
		Size:            t.Size(),
		Version:         t.Version,
		Nonce:           t.Nonce,
		Sender:          "0x" + t.Sender().StringLE(),
		SystemFee:       fmt.Sprintf("%d", t.SystemFee),
		NetworkFee:      fmt.Sprintf("%d", t.NetworkFee),
		ValidUntilBlock: t.ValidUntilBlock,
		Signers:         t.Signers,
		Attributes:      t.Attributes,
		Script:          t.Script,
		Witnesses:       t.Scripts,
	})
}

// UnmarshalJSON implements the json.Unmarshaler interface, accepting
// the shape returned by the RPC server for a transaction (as opposed
// to the raw base64 script sendrawtransaction/invokescript expect).
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var aux transactionAux
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	sysFee, err := strconv.ParseInt(aux.SystemFee, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid sysfee: %w", err)
	}
	netFee, err := strconv.ParseInt(aux.NetworkFee, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid netfee: %w", err)
	}
	t.Version = aux.Version
	t.Nonce = aux.Nonce
	t.SystemFee = sysFee
	t.NetworkFee = netFee
	t.ValidUntilBlock = aux.ValidUntilBlock
	t.Signers = aux.Signers
	t.Attributes = aux.Attributes
	t.Script = aux.Script
	t.Scripts = aux.Witnesses
	return nil
}
