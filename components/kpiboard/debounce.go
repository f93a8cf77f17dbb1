package kpiboard

import (
	"context"
	"sync"
	"time"
)

// DefaultDebounceWindow is how long a remote write waits to coalesce rapid
// successive values for the same key.
const DefaultDebounceWindow = time.Second

// coalescingWriter implements trailing debounce with value replacement: the
// first Put for a key opens the window; later Puts within the window replace
// the value without resetting the timer; when the window fires the latest
// value is sent. At most one remote write per key is in flight at a time —
// a value arriving mid-flight is deferred and sent, latest-wins, once the
// in-flight write resolves. Failures are reported and not retried.
type coalescingWriter struct {
	window time.Duration
	send   func(ctx context.Context, key string, value any) error
	onErr  func(key string, err error)

	mu      sync.Mutex
	cond    *sync.Cond
	pending map[string]*pendingWrite
	closed  bool
}

type pendingWrite struct {
	value    any
	dirty    bool
	armed    bool
	inflight bool
}

func newCoalescingWriter(window time.Duration, send func(ctx context.Context, key string, value any) error, onErr func(key string, err error)) *coalescingWriter {
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	if onErr == nil {
		onErr = func(string, error) {}
	}
	w := &coalescingWriter{
		window:  window,
		send:    send,
		onErr:   onErr,
		pending: make(map[string]*pendingWrite),
	}
	w.cond = sync.NewCond(&w.mu)
	return w
}

// Put records value as the latest state for key and arms the debounce window
// if one is not already open.
func (w *coalescingWriter) Put(key string, value any) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	entry, ok := w.pending[key]
	if !ok {
		entry = &pendingWrite{}
		w.pending[key] = entry
	}
	entry.value = value
	entry.dirty = true
	if !entry.armed && !entry.inflight {
		entry.armed = true
		time.AfterFunc(w.window, func() { w.fire(key) })
	}
}

func (w *coalescingWriter) fire(key string) {
	w.mu.Lock()
	entry, ok := w.pending[key]
	if !ok {
		w.mu.Unlock()
		return
	}
	entry.armed = false
	if entry.inflight || !entry.dirty {
		w.mu.Unlock()
		return
	}
	w.dispatch(key, entry)
	w.mu.Unlock()
}

// dispatch sends the latest value for key in a fresh goroutine. Caller holds
// the mutex.
func (w *coalescingWriter) dispatch(key string, entry *pendingWrite) {
	value := entry.value
	entry.dirty = false
	entry.inflight = true
	go func() {
		err := w.send(context.Background(), key, value)
		w.mu.Lock()
		entry.inflight = false
		if err != nil {
			w.onErr(key, err)
		}
		if entry.dirty {
			// A newer value arrived mid-flight; send it now.
			w.dispatch(key, entry)
		} else {
			delete(w.pending, key)
		}
		w.cond.Broadcast()
		w.mu.Unlock()
	}()
}

// Flush synchronously drains every pending or in-flight write, sending the
// latest value for each key. Intended for page/component teardown so the
// final state the user left behind reaches the remote store.
func (w *coalescingWriter) Flush(ctx context.Context) {
	done := make(chan struct{})
	defer close(done)
	if ctx != nil && ctx.Done() != nil {
		go func() {
			select {
			case <-ctx.Done():
				w.cond.Broadcast()
			case <-done:
			}
		}()
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for {
		if ctx != nil && ctx.Err() != nil {
			return
		}
		outstanding := false
		for key, entry := range w.pending {
			if entry.dirty && !entry.inflight {
				w.dispatch(key, entry)
			}
			outstanding = true
		}
		if !outstanding {
			return
		}
		w.cond.Wait()
	}
}

// Close flushes pending writes and rejects further Puts.
func (w *coalescingWriter) Close(ctx context.Context) {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
	w.Flush(ctx)
}
