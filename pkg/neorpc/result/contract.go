package result

import (
	"encoding/json"

	"github.com/nspcc-dev/neo-go-sdk/pkg/util"
)

// ContractState is the result of getcontractstate: a deployed
// contract's identity and its NEF/manifest, the latter kept as raw
// JSON since parsing manifest permissions/ABI is outside what a
// client-side core needs to build and send transactions.
type ContractState struct {
	ID             int32           `json:"id"`
	UpdateCounter  uint16          `json:"updatecounter"`
	Hash           util.Uint160    `json:"hash"`
	NEF            []byte          `json:"nef"`
	Manifest       json.RawMessage `json:"manifest"`
}

// StorageItem is a single (key, value) pair of a contract's storage,
// as returned by getstorage and (as part of a page) findstorage.
type StorageItem []byte

// FindStorage is the result of findstorage: a page of matching storage
// entries plus whether more remain beyond this page.
type FindStorage struct {
	Results []KeyValue `json:"results"`
	Next    int        `json:"next"`
	Truncated bool     `json:"truncated"`
}

// KeyValue is a single storage entry, both halves base64-encoded on
// the wire via the []byte JSON codec.
type KeyValue struct {
	Key   []byte `json:"key"`
	Value []byte `json:"value"`
}
