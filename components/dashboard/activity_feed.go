package dashboard

import (
	"context"
	"time"
)

// ActivityItem represents a recent activity entry displayed by the widget.
type ActivityItem struct {
	User    string
	Action  string
	Details string
	Ago     time.Duration
}

// ActivityFeed fetches recent activity entries for the current viewer.
type ActivityFeed interface {
	Recent(ctx context.Context, viewer ViewerContext, limit int) ([]ActivityItem, error)
}

// StaticActivityFeed returns fixed entries useful for demos/tests.
type StaticActivityFeed struct {
	Items []ActivityItem
}

// Recent returns up to limit items from the static list.
func (f StaticActivityFeed) Recent(_ context.Context, _ ViewerContext, limit int) ([]ActivityItem, error) {
	if limit <= 0 || limit >= len(f.Items) {
		return append([]ActivityItem{}, f.Items...), nil
	}
	return append([]ActivityItem{}, f.Items[:limit]...), nil
}

// DefaultActivityFeed provides placeholder entries for the demo widget.
func DefaultActivityFeed() ActivityFeed {
	now := time.Now()
	return StaticActivityFeed{
		Items: []ActivityItem{
			{User: "Alice Nguyen", Action: "placed order #1004", Details: "Orders · $210.00", Ago: now.Sub(now.Add(-5 * time.Minute))},
			{User: "Pulse Demo Store", Action: "fulfilled order #1001", Details: "Orders · 2 items", Ago: now.Sub(now.Add(-22 * time.Minute))},
			{User: "Bruno Costa", Action: "requested a refund on #1002", Details: "Orders · $20.00 refunded", Ago: now.Sub(now.Add(-49 * time.Minute))},
			{User: "Pulse Demo Store", Action: "restocked Canvas Tote", Details: "Inventory · 3 units left", Ago: now.Sub(now.Add(-2 * time.Hour))},
			{User: "Chloe Martin", Action: "subscribed to back-in-stock alerts", Details: "Customers · Email opt-in", Ago: now.Sub(now.Add(-6 * time.Hour))},
		},
	}
}
