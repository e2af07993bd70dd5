package dashboard

import "context"

// NotificationsClient is the slice of the host's notification system the
// dashboard needs. go-notifications satisfies it, as does anything that can
// deliver a WidgetEvent to a merchant-facing channel.
type NotificationsClient interface {
	PublishDashboardEvent(ctx context.Context, event WidgetEvent) error
}

// NotificationsHook mirrors widget refresh events into the shop's
// notification feed. A nil hook or client is inert.
type NotificationsHook struct {
	Client  NotificationsClient
	Channel string
}

// WidgetUpdated forwards the event to the configured client.
func (h *NotificationsHook) WidgetUpdated(ctx context.Context, event WidgetEvent) error {
	if h == nil || h.Client == nil {
		return nil
	}
	return h.Client.PublishDashboardEvent(ctx, event)
}

// CombineRefreshHooks chains refresh hooks so one service can feed live
// transports and notifications at once. Delivery stops at the first error.
func CombineRefreshHooks(hooks ...RefreshHook) RefreshHook {
	return multiRefreshHook(hooks)
}

type multiRefreshHook []RefreshHook

func (m multiRefreshHook) WidgetUpdated(ctx context.Context, event WidgetEvent) error {
	for _, h := range m {
		if h == nil {
			continue
		}
		if err := h.WidgetUpdated(ctx, event); err != nil {
			return err
		}
	}
	return nil
}
