package library

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/llehouerou/tides/internal/kv"
)

// writer persists values on a background goroutine. Pending values are
// coalesced per key so only the latest value of each key is written.
type writer struct {
	store kv.Store
	log   *zap.Logger

	mu       sync.Mutex
	pending  map[string]string
	inflight map[string]string

	wake     chan struct{}
	flushReq chan chan struct{}
	done     chan struct{}
	stopped  chan struct{}
	once     sync.Once
}

func newWriter(store kv.Store, log *zap.Logger) *writer {
	w := &writer{
		store:    store,
		log:      log,
		pending:  make(map[string]string),
		wake:     make(chan struct{}, 1),
		flushReq: make(chan chan struct{}),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	go w.run()
	return w
}

// enqueue records value for key and wakes the writer. Never blocks on I/O.
func (w *writer) enqueue(key, value string) {
	w.mu.Lock()
	w.pending[key] = value
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// lookup returns a value not yet confirmed written, if any.
func (w *writer) lookup(key string) (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if v, ok := w.pending[key]; ok {
		return v, true
	}
	v, ok := w.inflight[key]
	return v, ok
}

func (w *writer) run() {
	for {
		select {
		case <-w.wake:
			w.writePending()
		case reply := <-w.flushReq:
			w.writePending()
			close(reply)
		case <-w.done:
			w.writePending()
			close(w.stopped)
			return
		}
	}
}

func (w *writer) writePending() {
	w.mu.Lock()
	batch := w.pending
	if len(batch) == 0 {
		w.mu.Unlock()
		return
	}
	w.pending = make(map[string]string)
	w.inflight = batch
	w.mu.Unlock()

	if err := kv.SetAll(context.Background(), w.store, batch); err != nil {
		w.log.Warn("persist failed", zap.Int("keys", len(batch)), zap.Error(err))
	}

	w.mu.Lock()
	w.inflight = nil
	w.mu.Unlock()
}

// flush blocks until everything enqueued before the call has been written.
func (w *writer) flush(ctx context.Context) error {
	reply := make(chan struct{})
	select {
	case w.flushReq <- reply:
	case <-w.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-reply:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// close writes what is pending and stops the goroutine.
func (w *writer) close() {
	w.once.Do(func() { close(w.done) })
	<-w.stopped
}
