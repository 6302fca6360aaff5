// Package result defines the typed decoders for every JSON-RPC method's
// "result" field: the Go shape a raw response is unmarshaled into
// before the client hands it back to the caller.
package result

import (
	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go-sdk/pkg/smartcontract"
	"github.com/nspcc-dev/neo-go-sdk/pkg/util"
)

// VMStateHalt and VMStateFault are the two terminal VM states the node
// reports for an invocation; anything else is a transport/protocol bug.
const (
	VMStateHalt  = "HALT"
	VMStateFault = "FAULT"
)

// NotificationEvent is a single contract notification fired during an
// invocation, carried in Invoke.Notifications and Execution.Notifications.
type NotificationEvent struct {
	Contract  util.Uint160              `json:"contract"`
	Name      string                    `json:"eventname"`
	Arguments []smartcontract.Parameter `json:"state"`
}

// Invoke is the result of invokefunction/invokescript: the VM's final
// state, the fee it consumed, the script that ran, its resulting
// stack, and, when the call requested an iterator session, the id
// those iterators live under.
type Invoke struct {
	State          string                    `json:"state"`
	GasConsumed    int64                     `json:"gasconsumed,string"`
	Script         []byte                    `json:"script"`
	Stack          []smartcontract.Parameter `json:"stack"`
	FaultException string                    `json:"exception,omitempty"`
	Notifications  []NotificationEvent       `json:"notifications,omitempty"`
	Transaction    []byte                    `json:"tx,omitempty"`
	Session        *uuid.UUID                `json:"session,omitempty"`
}

// AppLog is the per-trigger execution log returned by getapplicationlog
// for a transaction or block hash.
type AppLog struct {
	Container  util.Uint256 `json:"txid,omitempty"`
	Executions []Execution  `json:"executions"`
}

// Execution is a single VM run recorded under a trigger (OnPersist,
// PostPersist or Application for a transaction).
type Execution struct {
	Trigger        string                    `json:"trigger"`
	VMState        string                    `json:"vmstate"`
	GasConsumed    int64                     `json:"gasconsumed,string"`
	Stack          []smartcontract.Parameter `json:"stack"`
	Notifications  []NotificationEvent       `json:"notifications"`
	FaultException string                    `json:"exception,omitempty"`
}
