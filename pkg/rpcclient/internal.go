package rpcclient

import (
	"context"
	"sync"

	"github.com/nspcc-dev/neo-go-sdk/pkg/neorpc"
)

// caller turns one JSON-RPC request into its response. It is the
// "post(json) -> json" seam the client is built against: the default
// implementation dials out over HTTP(S)/websocket, tests substitute an
// in-process stub.
type caller func(req *neorpc.Request) (*neorpc.Response, error)

// internal is the shared plumbing behind both Client (request/response
// only) and WSClient (request/response plus a push-notification
// channel): lifecycle (cancel/close) and the monotonic id counter used
// to correlate requests with responses on a single connection.
type internal struct {
	ctx    context.Context
	cancel context.CancelFunc

	call caller

	mtx    sync.Mutex
	nextID uint64
	err    error
	closed bool
}

// NewInternal builds the shared client plumbing given a constructor
// for the actual transport: newCaller receives the notification
// channel a websocket-based transport pushes subscription events to
// (unused by a plain HTTP transport) and returns the function used to
// perform one request/response round trip.
func NewInternal(ctx context.Context, newCaller func(ctx context.Context, ch chan<- neorpc.Notification) func(*neorpc.Request) (*neorpc.Response, error)) (*internal, error) {
	cctx, cancel := context.WithCancel(ctx)
	notifCh := make(chan neorpc.Notification)
	c := &internal{
		ctx:    cctx,
		cancel: cancel,
		call:   newCaller(cctx, notifCh),
	}
	return c, nil
}

// Close tears down the client, canceling its context and marking it
// unusable for further requests.
func (c *internal) Close() {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.cancel()
}

// GetError returns the error that caused the client to stop working,
// if any.
func (c *internal) GetError() error {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.err
}

func (c *internal) setError(err error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if c.err == nil {
		c.err = err
	}
}

// id returns the next monotonically increasing, non-negative request
// id for this connection.
func (c *internal) id() uint64 {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.nextID++
	return c.nextID
}

func (c *internal) perform(method string, params []any) (*neorpc.Response, error) {
	c.mtx.Lock()
	closed := c.closed
	c.mtx.Unlock()
	if closed {
		return nil, ErrConnClosed
	}
	req := neorpc.NewRequest(c.id(), method, params)
	resp, err := c.call(req)
	if err != nil {
		c.setError(err)
		return nil, err
	}
	return resp, nil
}
