package blockfetcher

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nspcc-dev/neo-go-sdk/pkg/neorpc"
	"github.com/nspcc-dev/neo-go-sdk/pkg/neorpc/result"
)

// WSClient is the subset of rpcclient.WSClient a Subscriber needs.
type WSClient interface {
	Subscribe(method string, ch chan<- neorpc.Notification)
	Unsubscribe(method string)
}

type wsSub struct {
	id     uuid.UUID
	filter *neorpc.BlockFilter
	cb     func(uint32) error
}

// Subscriber notifies subscribers of new blocks over a live websocket
// connection's block_added event, the push-based alternative to
// Poller built on the same WSClient a caller would otherwise drive by
// hand.
type Subscriber struct {
	client  WSClient
	log     *zap.Logger
	metrics *Metrics

	ch chan neorpc.Notification

	mu   sync.Mutex
	subs []wsSub

	stop chan struct{}
	done chan struct{}
}

// NewSubscriber subscribes to client's block_added event and starts
// dispatching decoded block indices to registered subscribers. A nil
// log is replaced with zap.NewNop(). A nil metrics records nothing.
func NewSubscriber(client WSClient, log *zap.Logger, metrics *Metrics) *Subscriber {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Subscriber{
		client:  client,
		log:     log,
		metrics: metrics,
		ch:      make(chan neorpc.Notification, 64),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	client.Subscribe("block_added", s.ch)
	go s.run()
	return s
}

// OnBlock implements BlockNotifier.
func (s *Subscriber) OnBlock(filter *neorpc.BlockFilter, cb func(uint32) error) uuid.UUID {
	id := uuid.New()
	s.mu.Lock()
	s.subs = append(s.subs, wsSub{id: id, filter: filter.Copy(), cb: cb})
	s.mu.Unlock()
	return id
}

// Unsubscribe implements BlockNotifier.
func (s *Subscriber) Unsubscribe(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subs {
		if sub.id == id {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}

// Stop implements BlockNotifier.
func (s *Subscriber) Stop() {
	s.client.Unsubscribe("block_added")
	close(s.stop)
	<-s.done
}

func (s *Subscriber) run() {
	defer close(s.done)
	for {
		select {
		case <-s.stop:
			return
		case n := <-s.ch:
			s.handle(n)
		}
	}
}

func (s *Subscriber) handle(n neorpc.Notification) {
	var params []json.RawMessage
	if err := json.Unmarshal(n.Params, &params); err != nil || len(params) == 0 {
		s.log.Warn("malformed block_added notification", zap.Error(err))
		return
	}
	var hdr result.Header
	if err := json.Unmarshal(params[0], &hdr); err != nil {
		s.log.Warn("decoding block header from notification failed", zap.Error(err))
		return
	}

	s.mu.Lock()
	subs := make([]wsSub, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		if !blockMatches(sub.filter, hdr) {
			continue
		}
		s.metrics.observeNotification("websocket")
		safeCall(s.log, sub.cb, hdr.Index)
	}
}

func blockMatches(f *neorpc.BlockFilter, hdr result.Header) bool {
	if f == nil {
		return true
	}
	if f.Primary != nil && *f.Primary != hdr.PrimaryIndex {
		return false
	}
	if f.Since != nil && hdr.Index < *f.Since {
		return false
	}
	if f.Till != nil && hdr.Index > *f.Till {
		return false
	}
	return true
}
