package dashboard

import (
	"context"
	"testing"
)

func TestBroadcastHookSubscribe(t *testing.T) {
	hook := NewBroadcastHook()
	ch, cancel := hook.Subscribe()
	defer cancel()
	event := WidgetEvent{PageCode: "pulse.page.overview", Reason: "add"}
	if err := hook.WidgetUpdated(context.Background(), event); err != nil {
		t.Fatalf("WidgetUpdated returned error: %v", err)
	}
	select {
	case e := <-ch:
		if e.PageCode != event.PageCode {
			t.Fatalf("expected page %s, got %s", event.PageCode, e.PageCode)
		}
	default:
		t.Fatalf("expected event to be delivered")
	}
}

func TestBroadcastHookCancelClosesChannel(t *testing.T) {
	hook := NewBroadcastHook()
	ch, cancel := hook.Subscribe()
	cancel()
	if _, ok := <-ch; ok {
		t.Fatalf("expected channel closed after cancel")
	}
	if err := hook.WidgetUpdated(context.Background(), WidgetEvent{PageCode: "pulse.page.sales"}); err != nil {
		t.Fatalf("WidgetUpdated after cancel returned error: %v", err)
	}
}

func TestBroadcastHookDropsWhenSubscriberFull(t *testing.T) {
	hook := NewBroadcastHook()
	ch, cancel := hook.Subscribe()
	defer cancel()
	for i := 0; i < 16; i++ {
		if err := hook.WidgetUpdated(context.Background(), WidgetEvent{PageCode: "pulse.page.orders"}); err != nil {
			t.Fatalf("WidgetUpdated returned error: %v", err)
		}
	}
	if len(ch) != cap(ch) {
		t.Fatalf("expected buffer full, got %d of %d", len(ch), cap(ch))
	}
}
