package blockfetcher

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nspcc-dev/neo-go-sdk/pkg/neorpc"
)

type wsStub struct {
	mu       sync.Mutex
	ch       chan<- neorpc.Notification
	unsubbed bool
}

func (w *wsStub) Subscribe(method string, ch chan<- neorpc.Notification) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ch = ch
}

func (w *wsStub) Unsubscribe(string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.unsubbed = true
}

func (w *wsStub) push(t *testing.T, index uint32, primary byte) {
	hdr := struct {
		Index   uint32 `json:"index"`
		Primary byte   `json:"primary"`
	}{Index: index, Primary: primary}
	raw, err := json.Marshal(hdr)
	require.NoError(t, err)
	params, err := json.Marshal([]json.RawMessage{raw})
	require.NoError(t, err)

	w.mu.Lock()
	ch := w.ch
	w.mu.Unlock()
	ch <- neorpc.Notification{Method: "block_added", Params: params}
}

func TestSubscriberDeliversDecodedHeight(t *testing.T) {
	stub := &wsStub{}
	s := NewSubscriber(stub, nil, nil)
	defer s.Stop()

	var got uint32
	var mu sync.Mutex
	s.OnBlock(nil, func(height uint32) error {
		mu.Lock()
		got = height
		mu.Unlock()
		return nil
	})

	stub.push(t, 42, 1)
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return got == 42
	}, time.Second, 5*time.Millisecond)
}

func TestSubscriberFilterPrimary(t *testing.T) {
	stub := &wsStub{}
	s := NewSubscriber(stub, nil, nil)
	defer s.Stop()

	p := byte(3)
	var count int32
	s.OnBlock(&neorpc.BlockFilter{Primary: &p}, func(uint32) error {
		atomic.AddInt32(&count, 1)
		return nil
	})

	stub.push(t, 1, 1)
	stub.push(t, 2, 3)
	require.Eventually(t, func() bool { return atomic.LoadInt32(&count) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	require.EqualValues(t, 1, atomic.LoadInt32(&count))
}

func TestSubscriberUnsubscribeAndStop(t *testing.T) {
	stub := &wsStub{}
	s := NewSubscriber(stub, nil, nil)

	var count int32
	id := s.OnBlock(nil, func(uint32) error {
		atomic.AddInt32(&count, 1)
		return nil
	})
	stub.push(t, 1, 0)
	require.Eventually(t, func() bool { return atomic.LoadInt32(&count) == 1 }, time.Second, 5*time.Millisecond)

	s.Unsubscribe(id)
	stub.push(t, 2, 0)
	time.Sleep(20 * time.Millisecond)
	require.EqualValues(t, 1, atomic.LoadInt32(&count))

	s.Stop()
	require.True(t, stub.unsubbed)
}
