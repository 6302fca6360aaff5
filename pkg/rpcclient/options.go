package rpcclient

import (
	"time"

	"go.uber.org/zap"
)

// DefaultRequestTimeout is the per-request timeout applied when
// Options.RequestTimeout is zero.
const DefaultRequestTimeout = 30 * time.Second

// Options configures a Client or WSClient.
type Options struct {
	// DialTimeout bounds establishing the underlying connection
	// (TCP handshake / websocket upgrade). Zero means the transport's
	// own default.
	DialTimeout time.Duration
	// RequestTimeout bounds a single request/response round trip.
	// Zero means DefaultRequestTimeout.
	RequestTimeout time.Duration
	// Logger receives structured logs for requests, retries and
	// connection lifecycle events. A nil Logger is replaced with
	// zap.NewNop(), so callers never need a nil check.
	Logger *zap.Logger
	// Metrics, if non-nil, receives request counts and latencies.
	// A nil Metrics records nothing.
	Metrics *Metrics
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o Options) requestTimeout() time.Duration {
	if o.RequestTimeout <= 0 {
		return DefaultRequestTimeout
	}
	return o.RequestTimeout
}
