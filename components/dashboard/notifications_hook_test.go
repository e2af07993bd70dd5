package dashboard

import (
	"context"
	"errors"
	"testing"
)

type recordingNotifications struct {
	events []WidgetEvent
	err    error
}

func (r *recordingNotifications) PublishDashboardEvent(_ context.Context, event WidgetEvent) error {
	r.events = append(r.events, event)
	return r.err
}

func TestNotificationsHookForwardsEvents(t *testing.T) {
	client := &recordingNotifications{}
	hook := &NotificationsHook{Client: client, Channel: "ops"}

	event := WidgetEvent{
		PageCode: "pulse.page.orders",
		Instance: WidgetInstance{ID: "w1", DefinitionID: "pulse.widget.order_list"},
		Reason:   "refresh",
	}
	if err := hook.WidgetUpdated(context.Background(), event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(client.events) != 1 || client.events[0].PageCode != "pulse.page.orders" {
		t.Fatalf("expected event to reach client, got %+v", client.events)
	}

	var unset *NotificationsHook
	if err := unset.WidgetUpdated(context.Background(), event); err != nil {
		t.Fatalf("nil hook should be inert, got %v", err)
	}
}

func TestCombineRefreshHooks(t *testing.T) {
	broadcast := NewBroadcastHook()
	stream, cancel := broadcast.Subscribe()
	defer cancel()
	client := &recordingNotifications{}
	combined := CombineRefreshHooks(broadcast, &NotificationsHook{Client: client}, nil)

	event := WidgetEvent{PageCode: "pulse.page.overview", Reason: "add"}
	if err := combined.WidgetUpdated(context.Background(), event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case got := <-stream:
		if got.PageCode != "pulse.page.overview" {
			t.Fatalf("unexpected broadcast event %+v", got)
		}
	default:
		t.Fatalf("expected broadcast subscriber to receive the event")
	}
	if len(client.events) != 1 {
		t.Fatalf("expected notifications client to receive the event")
	}

	client.err = errors.New("feed unavailable")
	if err := combined.WidgetUpdated(context.Background(), event); err == nil {
		t.Fatalf("expected client error to propagate")
	}
}
