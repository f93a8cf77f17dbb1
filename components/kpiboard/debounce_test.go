package kpiboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type sentWrite struct {
	key   string
	value any
}

type writeRecorder struct {
	mu      sync.Mutex
	sent    []sentWrite
	failSet map[string]error
	block   chan struct{}
}

func (r *writeRecorder) send(_ context.Context, key string, value any) error {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.failSet[key]; ok {
		return err
	}
	r.sent = append(r.sent, sentWrite{key: key, value: value})
	return nil
}

func (r *writeRecorder) writes() []sentWrite {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]sentWrite(nil), r.sent...)
}

func TestCoalescingWriterSendsLatestValueOnce(t *testing.T) {
	rec := &writeRecorder{}
	w := newCoalescingWriter(10*time.Millisecond, rec.send, nil)

	w.Put("layout", 1)
	w.Put("layout", 2)
	w.Put("layout", 3)
	w.Flush(context.Background())

	writes := rec.writes()
	if len(writes) != 1 {
		t.Fatalf("expected 1 coalesced write, got %d", len(writes))
	}
	if writes[0].value != 3 {
		t.Fatalf("expected latest value 3, got %v", writes[0].value)
	}
}

func TestCoalescingWriterIsolatesKeys(t *testing.T) {
	rec := &writeRecorder{}
	w := newCoalescingWriter(10*time.Millisecond, rec.send, nil)

	w.Put("a", 1)
	w.Put("b", 2)
	w.Flush(context.Background())

	writes := rec.writes()
	if len(writes) != 2 {
		t.Fatalf("expected one write per key, got %d", len(writes))
	}
}

func TestCoalescingWriterFiresAfterWindow(t *testing.T) {
	rec := &writeRecorder{}
	w := newCoalescingWriter(5*time.Millisecond, rec.send, nil)

	w.Put("layout", "v1")
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(rec.writes()) == 1 {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("window never fired")
}

func TestCoalescingWriterValueArrivingMidFlightIsSent(t *testing.T) {
	rec := &writeRecorder{block: make(chan struct{})}
	w := newCoalescingWriter(2*time.Millisecond, rec.send, nil)

	w.Put("layout", "v1")
	// Wait for the window to fire and the first send to block.
	time.Sleep(20 * time.Millisecond)
	w.Put("layout", "v2")
	close(rec.block)
	w.Flush(context.Background())

	writes := rec.writes()
	if len(writes) != 2 {
		t.Fatalf("expected deferred second write, got %d", len(writes))
	}
	if writes[1].value != "v2" {
		t.Fatalf("expected v2 sent after in-flight write, got %v", writes[1].value)
	}
}

func TestCoalescingWriterReportsFailures(t *testing.T) {
	rec := &writeRecorder{failSet: map[string]error{"layout": errors.New("backend down")}}
	var mu sync.Mutex
	var failures []string
	w := newCoalescingWriter(5*time.Millisecond, rec.send, func(key string, err error) {
		mu.Lock()
		failures = append(failures, key)
		mu.Unlock()
	})

	w.Put("layout", 1)
	w.Flush(context.Background())

	mu.Lock()
	defer mu.Unlock()
	if len(failures) != 1 || failures[0] != "layout" {
		t.Fatalf("expected failure reported for layout, got %v", failures)
	}
}

func TestCoalescingWriterCloseRejectsNewWrites(t *testing.T) {
	rec := &writeRecorder{}
	w := newCoalescingWriter(5*time.Millisecond, rec.send, nil)

	w.Put("layout", 1)
	w.Close(context.Background())
	w.Put("layout", 2)
	w.Flush(context.Background())

	writes := rec.writes()
	if len(writes) != 1 || writes[0].value != 1 {
		t.Fatalf("expected only the pre-close write, got %v", writes)
	}
}
