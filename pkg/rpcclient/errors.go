package rpcclient

import (
	"errors"
	"fmt"
)

// ErrConnClosed is returned by any call made after the client has been
// closed.
var ErrConnClosed = errors.New("rpcclient: connection closed")

// TransportError wraps a failure that occurred below the JSON-RPC
// layer: a dial failure, a response that never arrived, a body that
// couldn't be read. It always wraps the underlying cause so
// errors.Is/errors.As reach it.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("rpcclient: transport: %v", e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// ErrTimeout is the sentinel a TransportError wraps when the
// request's context deadline (or the client's configured
// RequestTimeout) elapsed before a response arrived.
var ErrTimeout = errors.New("rpcclient: request timeout")

// ProtocolError marks a response that didn't even parse as a valid
// JSON-RPC envelope, as opposed to a well-formed error response.
type ProtocolError struct {
	Err error
}

func (e *ProtocolError) Error() string { return fmt.Sprintf("rpcclient: protocol: %v", e.Err) }
func (e *ProtocolError) Unwrap() error { return e.Err }
