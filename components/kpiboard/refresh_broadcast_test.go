package kpiboard

import (
	"context"
	"testing"
)

func TestBroadcastHookSubscribe(t *testing.T) {
	hook := NewBroadcastHook()
	ch, cancel := hook.Subscribe()
	defer cancel()
	event := BoardEvent{Department: "sales", CompanyID: "acme", KpiID: "mrr", Reason: "select"}
	if err := hook.BoardUpdated(context.Background(), event); err != nil {
		t.Fatalf("BoardUpdated returned error: %v", err)
	}
	select {
	case e := <-ch:
		if e.KpiID != event.KpiID || e.Reason != event.Reason {
			t.Fatalf("expected %+v, got %+v", event, e)
		}
	default:
		t.Fatalf("expected event to be delivered")
	}
}

func TestBroadcastHookCancelStopsDelivery(t *testing.T) {
	hook := NewBroadcastHook()
	ch, cancel := hook.Subscribe()
	cancel()
	if err := hook.BoardUpdated(context.Background(), BoardEvent{Department: "sales", Reason: "layout"}); err != nil {
		t.Fatalf("BoardUpdated returned error: %v", err)
	}
	if _, ok := <-ch; ok {
		t.Fatalf("expected channel closed after cancel")
	}
}

func TestBroadcastHookDropsEventsForSlowSubscribers(t *testing.T) {
	hook := NewBroadcastHook()
	ch, cancel := hook.Subscribe()
	defer cancel()
	// Fill the buffer and then some; extra events are dropped, not blocked on.
	for i := 0; i < 20; i++ {
		if err := hook.BoardUpdated(context.Background(), BoardEvent{Department: "sales", Reason: "chart_type"}); err != nil {
			t.Fatalf("BoardUpdated returned error: %v", err)
		}
	}
	received := 0
	for {
		select {
		case <-ch:
			received++
			continue
		default:
		}
		break
	}
	if received == 0 || received > 8 {
		t.Fatalf("expected buffered delivery capped at channel size, got %d", received)
	}
}
