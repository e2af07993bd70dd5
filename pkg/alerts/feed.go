package alerts

import "sync"

// Feed is a concurrency-safe alert list with per-alert read state. Replace
// swaps in a fresh evaluation while preserving read flags by alert ID.
type Feed struct {
	mu     sync.RWMutex
	alerts []Alert
	read   map[string]bool
}

// NewFeed creates an empty feed.
func NewFeed() *Feed {
	return &Feed{read: map[string]bool{}}
}

// Replace installs a new alert set. Alerts whose IDs were previously marked
// read stay read.
func (f *Feed) Replace(alerts []Alert) {
	f.mu.Lock()
	defer f.mu.Unlock()
	next := make([]Alert, len(alerts))
	copy(next, alerts)
	seen := make(map[string]bool, len(next))
	for i := range next {
		next[i].Read = f.read[next[i].ID]
		seen[next[i].ID] = true
	}
	for id := range f.read {
		if !seen[id] {
			delete(f.read, id)
		}
	}
	f.alerts = next
}

// List returns up to limit alerts matching the severity filter. A nil or
// empty filter matches everything; limit <= 0 means no limit.
func (f *Feed) List(limit int, severities []string) []Alert {
	f.mu.RLock()
	defer f.mu.RUnlock()
	allowed := map[string]bool{}
	for _, severity := range severities {
		allowed[severity] = true
	}
	out := make([]Alert, 0, len(f.alerts))
	for _, alert := range f.alerts {
		if len(allowed) > 0 && !allowed[alert.Severity] {
			continue
		}
		out = append(out, alert)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// MarkRead flags one alert as read. Returns false for unknown IDs.
func (f *Feed) MarkRead(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.alerts {
		if f.alerts[i].ID == id {
			f.alerts[i].Read = true
			f.read[id] = true
			return true
		}
	}
	return false
}

// UnreadCount returns how many alerts are unread.
func (f *Feed) UnreadCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	count := 0
	for _, alert := range f.alerts {
		if !alert.Read {
			count++
		}
	}
	return count
}
