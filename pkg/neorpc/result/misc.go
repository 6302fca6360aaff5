package result

import "github.com/nspcc-dev/neo-go-sdk/pkg/util"

// NetworkFee is the result of calculatenetworkfee.
type NetworkFee struct {
	Value int64 `json:"networkfee,string"`
}

// ValidateAddress is the result of validateaddress.
type ValidateAddress struct {
	Address string `json:"address"`
	IsValid bool   `json:"isvalid"`
}

// StateHeight is the result of getstateheight.
type StateHeight struct {
	Local     uint32 `json:"localrootindex"`
	Validated uint32 `json:"validatedrootindex"`
}

// RawTransaction is the verbose result of getrawtransaction: the
// decoded transaction plus the block it was confirmed in.
type RawTransaction struct {
	Hash            util.Uint256 `json:"hash"`
	Size            int          `json:"size"`
	BlockHash       *util.Uint256 `json:"blockhash,omitempty"`
	Confirmations   int          `json:"confirmations,omitempty"`
	BlockTime       uint64       `json:"blocktime,omitempty"`
	VMState         string       `json:"vmstate,omitempty"`
}
