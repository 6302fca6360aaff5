package rpcclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/nspcc-dev/neo-go-sdk/pkg/neorpc"
	"github.com/nspcc-dev/neo-go-sdk/pkg/neorpc/result"
	"go.uber.org/zap"
)

// contractStateCacheSize bounds how many getcontractstate responses a
// Client keeps around. Contract state only changes on update/destroy,
// so a deployed contract's manifest is effectively immutable across
// the handful of NEP-17/NEP-11 contracts a typical caller repeatedly
// resolves.
const contractStateCacheSize = 128

// Client is a synchronous, blocking JSON-RPC client for a single Neo
// N3 node: every call performs one request/response round trip (or,
// for Batch, one round trip per batch) with no pipelining. A Client is
// safe for concurrent use by multiple goroutines; there is no
// per-request cancellation once a call has been handed to the
// transport.
type Client struct {
	*internal
	endpoint *url.URL
	opts     Options
	http     *http.Client

	version *result.Version

	contractCache *lru.Cache
}

// New creates a Client dialing endpoint over plain HTTP(S). The
// returned Client is not yet usable for signing until Init is called,
// which fetches the node's network magic and address version.
func New(ctx context.Context, endpoint string, opts Options) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parsing endpoint: %w", err)
	}
	httpClient := &http.Client{
		Timeout: opts.requestTimeout(),
	}
	if opts.DialTimeout > 0 {
		httpClient.Timeout = opts.DialTimeout + opts.requestTimeout()
	}
	cache, err := lru.New(contractStateCacheSize)
	if err != nil {
		return nil, fmt.Errorf("allocating contract state cache: %w", err)
	}
	c := &Client{endpoint: u, opts: opts, http: httpClient, contractCache: cache}
	internalClient, err := NewInternal(ctx, func(ctx context.Context, _ chan<- neorpc.Notification) func(*neorpc.Request) (*neorpc.Response, error) {
		return c.post
	})
	if err != nil {
		return nil, err
	}
	c.internal = internalClient
	return c, nil
}

// Endpoint returns the node address this client was built with.
func (c *Client) Endpoint() string {
	return c.endpoint.String()
}

func (c *Client) post(req *neorpc.Request) (*neorpc.Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, &ProtocolError{Err: err}
	}
	httpReq, err := http.NewRequestWithContext(c.ctx, http.MethodPost, c.endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	httpResp, err := c.http.Do(httpReq)
	elapsed := time.Since(start).Seconds()
	c.opts.Metrics.observe(req.Method, elapsed, err != nil)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &TransportError{Err: ErrTimeout}
		}
		return nil, &TransportError{Err: err}
	}
	defer httpResp.Body.Close()

	var resp neorpc.Response
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, &ProtocolError{Err: err}
	}
	c.opts.logger().Debug("rpc call", zap.String("method", req.Method), zap.Uint64("id", req.ID), zap.Float64("seconds", elapsed))
	return &resp, nil
}

// Init fetches the node's version and caches its network magic and
// address version for later use by transaction builders.
func (c *Client) Init() error {
	v, err := c.GetVersion()
	if err != nil {
		return fmt.Errorf("initializing client: %w", err)
	}
	c.version = &v
	return nil
}

// Ping checks that the node is reachable and speaking JSON-RPC.
func (c *Client) Ping() error {
	_, err := c.GetVersion()
	return err
}

// NetworkMagic returns the network magic cached by Init. It panics if
// called before a successful Init, the same contract the teacher's
// actor package applies to an un-initialized client.
func (c *Client) NetworkMagic() uint32 {
	if c.version == nil {
		panic("rpcclient: client not initialized, call Init first")
	}
	return c.version.Protocol.Network
}

// AddressVersion returns the address version byte cached by Init.
func (c *Client) AddressVersion() byte {
	if c.version == nil {
		panic("rpcclient: client not initialized, call Init first")
	}
	return c.version.Protocol.AddressVersion
}

// do performs method with params and decodes the result into v, which
// must be a pointer. A node-reported error is returned as *neorpc.Error.
func (c *Client) do(method string, params []any, v any) error {
	resp, err := c.perform(method, params)
	if err != nil {
		return err
	}
	if resp.Error != nil {
		return resp.Error
	}
	if v == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Result, v); err != nil {
		return &ProtocolError{Err: fmt.Errorf("decoding %s result: %w", method, err)}
	}
	return nil
}
