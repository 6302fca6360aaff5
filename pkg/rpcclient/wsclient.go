package rpcclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"
	lru "github.com/hashicorp/golang-lru"
	"github.com/nspcc-dev/neo-go-sdk/pkg/neorpc"
)

// WSClient is a Client that additionally keeps a long-lived websocket
// connection open, letting the node push unprompted notifications
// (block_added and friends) over the same socket used for ordinary
// request/response calls.
type WSClient struct {
	*Client

	conn *websocket.Conn

	subMtx sync.Mutex
	subs   map[string]chan<- neorpc.Notification

	pending   sync.Map // uint64 -> chan *neorpc.Response
	writeMtx  sync.Mutex
}

// NewWS dials endpoint (an ws:// or wss:// URL) and returns a connected
// WSClient.
func NewWS(ctx context.Context, endpoint string, opts Options) (*WSClient, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parsing endpoint: %w", err)
	}
	dialer := websocket.Dialer{HandshakeTimeout: opts.DialTimeout}
	conn, _, err := dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	wsc := &WSClient{
		conn: conn,
		subs: make(map[string]chan<- neorpc.Notification),
	}
	httpURL := *u
	switch u.Scheme {
	case "ws":
		httpURL.Scheme = "http"
	case "wss":
		httpURL.Scheme = "https"
	}
	cache, err := lru.New(contractStateCacheSize)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("allocating contract state cache: %w", err)
	}
	c := &Client{endpoint: &httpURL, opts: opts, http: nil, contractCache: cache}
	internalClient, err := NewInternal(ctx, func(ctx context.Context, ch chan<- neorpc.Notification) func(*neorpc.Request) (*neorpc.Response, error) {
		return wsc.call
	})
	if err != nil {
		conn.Close()
		return nil, err
	}
	c.internal = internalClient
	wsc.Client = c

	go wsc.readLoop()
	return wsc, nil
}

func (w *WSClient) call(req *neorpc.Request) (*neorpc.Response, error) {
	respCh := make(chan *neorpc.Response, 1)
	w.pending.Store(req.ID, respCh)
	defer w.pending.Delete(req.ID)

	w.writeMtx.Lock()
	err := w.conn.WriteJSON(req)
	w.writeMtx.Unlock()
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	select {
	case resp := <-respCh:
		return resp, nil
	case <-w.ctx.Done():
		return nil, &TransportError{Err: w.ctx.Err()}
	}
}

func (w *WSClient) readLoop() {
	for {
		var raw json.RawMessage
		if err := w.conn.ReadJSON(&raw); err != nil {
			w.internal.setError(&TransportError{Err: err})
			w.Close()
			return
		}
		var head struct {
			ID     *uint64 `json:"id"`
			Method string  `json:"method"`
		}
		if err := json.Unmarshal(raw, &head); err != nil {
			continue
		}
		if head.ID != nil {
			if chAny, ok := w.pending.Load(*head.ID); ok {
				var resp neorpc.Response
				if err := json.Unmarshal(raw, &resp); err == nil {
					chAny.(chan *neorpc.Response) <- &resp
				}
			}
			continue
		}
		if head.Method != "" {
			w.dispatch(head.Method, raw)
		}
	}
}

func (w *WSClient) dispatch(method string, raw json.RawMessage) {
	var n neorpc.Notification
	if err := json.Unmarshal(raw, &n); err != nil {
		return
	}
	w.subMtx.Lock()
	ch, ok := w.subs[method]
	w.subMtx.Unlock()
	if ok {
		select {
		case ch <- n:
		default:
		}
	}
}

// Subscribe registers ch to receive every future notification of
// method (e.g. "block_added"). Delivery is best-effort and
// non-blocking: a subscriber slow to drain its channel misses
// notifications rather than stalling the read loop.
func (w *WSClient) Subscribe(method string, ch chan<- neorpc.Notification) {
	w.subMtx.Lock()
	defer w.subMtx.Unlock()
	w.subs[method] = ch
}

// Unsubscribe stops delivering method's notifications.
func (w *WSClient) Unsubscribe(method string) {
	w.subMtx.Lock()
	defer w.subMtx.Unlock()
	delete(w.subs, method)
}

// Close shuts down the websocket connection and the underlying client.
func (w *WSClient) Close() {
	w.conn.Close()
	w.Client.internal.Close()
}
