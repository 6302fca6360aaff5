package rpcclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/nspcc-dev/neo-go-sdk/pkg/neorpc"
)

// BatchCall is a single method/params pair to submit as part of a Batch.
type BatchCall struct {
	Method string
	Params []any
}

// BatchResult is one entry of a Batch's response, in the same order as
// the calls it was built from regardless of the order the node's
// response array used.
type BatchResult struct {
	Result json.RawMessage
	Error  error
}

// Batch submits every call in a single HTTP round trip and returns
// their results in call order. A node-reported per-call error is
// carried in that entry's Error field, not returned as the overall
// error: the overall error is reserved for transport/protocol
// failures that invalidate the whole batch.
func (c *Client) Batch(calls []BatchCall) ([]BatchResult, error) {
	if len(calls) == 0 {
		return nil, nil
	}
	reqs := make([]*neorpc.Request, len(calls))
	idToIndex := make(map[uint64]int, len(calls))
	for i, call := range calls {
		id := c.id()
		reqs[i] = neorpc.NewRequest(id, call.Method, call.Params)
		idToIndex[id] = i
	}

	body, err := json.Marshal(reqs)
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
	c.opts.Metrics.observe("batch", elapsed, err != nil)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer httpResp.Body.Close()

	var resps []neorpc.Response
	if err := json.NewDecoder(httpResp.Body).Decode(&resps); err != nil {
		return nil, &ProtocolError{Err: fmt.Errorf("decoding batch response: %w", err)}
	}

	results := make([]BatchResult, len(calls))
	for _, resp := range resps {
		idx, ok := idToIndex[resp.ID]
		if !ok {
			continue
		}
		if resp.Error != nil {
			results[idx] = BatchResult{Error: resp.Error}
			continue
		}
		results[idx] = BatchResult{Result: resp.Result}
	}
	return results, nil
}
