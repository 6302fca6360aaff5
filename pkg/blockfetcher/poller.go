// Package blockfetcher notifies callers of new blocks as a node
// produces them, either by polling getblockcount on an interval or by
// subscribing to a node's push-based block_added websocket event.
// Both transports satisfy BlockNotifier so a caller can swap one for
// the other without touching its subscriber logic.
package blockfetcher

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nspcc-dev/neo-go-sdk/pkg/neorpc"
)

// DefaultPollInterval is used when Poller is constructed with a
// non-positive interval.
const DefaultPollInterval = 5 * time.Second

// BlockNotifier lets a caller register a callback for new blocks and
// later stop receiving them, regardless of whether the underlying
// transport polls or subscribes.
type BlockNotifier interface {
	// OnBlock registers cb to run for every new block index matching
	// filter (nil matches everything), returning a ticket usable with
	// Unsubscribe. Callback errors and panics are logged and
	// swallowed: a single faulty subscriber never halts delivery to
	// the others.
	OnBlock(filter *neorpc.BlockFilter, cb func(height uint32) error) uuid.UUID
	// Unsubscribe stops delivering to the subscriber registered under id.
	Unsubscribe(id uuid.UUID)
	// Stop shuts the notifier down, signalling its worker and waiting
	// for it to exit.
	Stop()
}

// Client is the subset of rpcclient.Client a Poller needs.
type Client interface {
	GetBlockCount() (uint32, error)
}

type pollSub struct {
	id     uuid.UUID
	filter *neorpc.BlockFilter
	cb     func(uint32) error
}

// Poller notifies subscribers of new blocks by polling getblockcount
// on a fixed interval and replaying every height it hasn't seen yet,
// one dedicated goroutine per Poller, the way the library's
// reference implementation runs its polling worker on a dedicated
// thread per subscription.
type Poller struct {
	client   Client
	interval time.Duration
	log      *zap.Logger
	metrics  *Metrics

	mu       sync.Mutex
	subs     []pollSub
	started  bool
	lastSeen uint32

	cancel context.CancelFunc
	done   chan struct{}
}

// NewPoller starts a Poller against client, polling every interval
// (DefaultPollInterval if interval is non-positive). A nil log is
// replaced with zap.NewNop(), so callers never need a nil check. A
// nil metrics records nothing.
func NewPoller(client Client, interval time.Duration, log *zap.Logger, metrics *Metrics) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &Poller{
		client:   client,
		interval: interval,
		log:      log,
		metrics:  metrics,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	go p.run(ctx)
	return p
}

// OnBlock implements BlockNotifier. filter's Primary bound is ignored:
// a lightweight getblockcount poll never sees which validator signed
// a block, only its index.
func (p *Poller) OnBlock(filter *neorpc.BlockFilter, cb func(uint32) error) uuid.UUID {
	id := uuid.New()
	p.mu.Lock()
	p.subs = append(p.subs, pollSub{id: id, filter: filter.Copy(), cb: cb})
	p.mu.Unlock()
	return id
}

// Unsubscribe implements BlockNotifier.
func (p *Poller) Unsubscribe(id uuid.UUID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, s := range p.subs {
		if s.id == id {
			p.subs = append(p.subs[:i], p.subs[i+1:]...)
			return
		}
	}
}

// Stop implements BlockNotifier.
func (p *Poller) Stop() {
	p.cancel()
	<-p.done
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.done)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll()
		}
	}
}

func (p *Poller) poll() {
	start := time.Now()
	height, err := p.client.GetBlockCount()
	p.metrics.observePoll(time.Since(start).Seconds())
	if err != nil {
		p.log.Warn("polling block count failed", zap.Error(err))
		return
	}
	if height == 0 {
		return
	}
	// getblockcount returns the count, one past the highest index.
	top := height - 1

	if !p.started {
		// First poll after startup: establish the baseline without
		// replaying every block the chain has ever produced.
		p.lastSeen = top
		p.started = true
		return
	}
	for h := p.lastSeen + 1; h <= top; h++ {
		p.notify(h)
	}
	if top > p.lastSeen {
		p.lastSeen = top
	}
}

func (p *Poller) notify(height uint32) {
	p.mu.Lock()
	subs := make([]pollSub, len(p.subs))
	copy(subs, p.subs)
	p.mu.Unlock()

	for _, s := range subs {
		if s.filter != nil && (s.filter.Since != nil && height < *s.filter.Since || s.filter.Till != nil && height > *s.filter.Till) {
			continue
		}
		p.metrics.observeNotification("poll")
		safeCall(p.log, s.cb, height)
	}
}

func safeCall(log *zap.Logger, cb func(uint32) error, height uint32) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("block subscriber panicked", zap.Any("panic", r), zap.Uint32("height", height))
		}
	}()
	if err := cb(height); err != nil {
		log.Warn("block subscriber returned an error", zap.Error(err), zap.Uint32("height", height))
	}
}
