package neorpc

import "encoding/json"

// Notification is a single unprompted message a node pushes to a
// subscribed websocket client: a method name identifying the event
// kind ("block_added", "transaction_added", ...) and its raw payload.
type Notification struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}
