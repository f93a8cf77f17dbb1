package kpiboard

import (
	"context"
	"sync"
	"time"
)

// ActivityEntry is one recorded board change with its arrival time.
type ActivityEntry struct {
	Event BoardEvent
	At    time.Time
}

// ActivityTrail keeps the most recent board events in a fixed-size ring. It
// implements RefreshHook so it can be chained behind a board and later
// queried for "what changed lately" views.
type ActivityTrail struct {
	mu      sync.Mutex
	entries []ActivityEntry
	head    int
	size    int
	now     func() time.Time
}

// NewActivityTrail builds a trail keeping up to capacity entries.
func NewActivityTrail(capacity int) *ActivityTrail {
	if capacity <= 0 {
		capacity = 64
	}
	return &ActivityTrail{
		entries: make([]ActivityEntry, capacity),
		now:     time.Now,
	}
}

// BoardUpdated records the event, evicting the oldest entry when full.
func (t *ActivityTrail) BoardUpdated(_ context.Context, event BoardEvent) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[t.head] = ActivityEntry{Event: event, At: t.now()}
	t.head = (t.head + 1) % len(t.entries)
	if t.size < len(t.entries) {
		t.size++
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (t *ActivityTrail) Recent(limit int) []ActivityEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	if limit <= 0 || limit > t.size {
		limit = t.size
	}
	out := make([]ActivityEntry, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (t.head - i + len(t.entries)) % len(t.entries)
		out = append(out, t.entries[idx])
	}
	return out
}

// MultiHook fans a board event out to several hooks in order. The first
// error stops the chain.
type MultiHook []RefreshHook

// BoardUpdated dispatches the event to every hook.
func (m MultiHook) BoardUpdated(ctx context.Context, event BoardEvent) error {
	for _, hook := range m {
		if hook == nil {
			continue
		}
		if err := hook.BoardUpdated(ctx, event); err != nil {
			return err
		}
	}
	return nil
}
