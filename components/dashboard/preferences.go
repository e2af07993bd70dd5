package dashboard

import (
	"context"
	"fmt"
	"sync"
)

// InMemoryPreferenceStore provides a concurrency-safe default store. Hosts that
// need durability implement PreferenceStore over their own storage.
type InMemoryPreferenceStore struct {
	mu   sync.RWMutex
	data map[string]Preferences
}

// NewInMemoryPreferenceStore creates an empty preference store.
func NewInMemoryPreferenceStore() *InMemoryPreferenceStore {
	return &InMemoryPreferenceStore{
		data: make(map[string]Preferences),
	}
}

// Preferences returns stored preferences or the defaults: light theme, locked
// layout, declared widget order.
func (s *InMemoryPreferenceStore) Preferences(_ context.Context, viewer ViewerContext) (Preferences, error) {
	if viewer.UserID == "" {
		return defaultPreferences(viewer), nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if prefs, ok := s.data[s.key(viewer)]; ok {
		s.normalize(&prefs)
		if prefs.Locale == "" {
			prefs.Locale = viewer.Locale
		}
		return clonePreferences(prefs), nil
	}
	return defaultPreferences(viewer), nil
}

// SavePreferences persists preferences for a viewer. Last write wins.
func (s *InMemoryPreferenceStore) SavePreferences(_ context.Context, viewer ViewerContext, prefs Preferences) error {
	if viewer.UserID == "" {
		return fmt.Errorf("preference store requires viewer user id")
	}
	if prefs.Locale == "" {
		prefs.Locale = viewer.Locale
	}
	s.normalize(&prefs)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[s.key(viewer)] = clonePreferences(prefs)
	return nil
}

func (s *InMemoryPreferenceStore) key(viewer ViewerContext) string {
	if viewer.ShopDomain == "" {
		return viewer.UserID
	}
	return viewer.UserID + "::" + viewer.ShopDomain
}

func (s *InMemoryPreferenceStore) normalize(prefs *Preferences) {
	if prefs.Theme == "" {
		prefs.Theme = ThemeLight
	}
	if prefs.WidgetOrder == nil {
		prefs.WidgetOrder = map[string][]string{}
	}
	if prefs.HiddenWidgets == nil {
		prefs.HiddenWidgets = []string{}
	}
}

func defaultPreferences(viewer ViewerContext) Preferences {
	return Preferences{
		Theme:         ThemeLight,
		Locale:        viewer.Locale,
		WidgetOrder:   map[string][]string{},
		HiddenWidgets: []string{},
	}
}

func clonePreferences(prefs Preferences) Preferences {
	out := prefs
	out.WidgetOrder = make(map[string][]string, len(prefs.WidgetOrder))
	for page, ids := range prefs.WidgetOrder {
		out.WidgetOrder[page] = append([]string(nil), ids...)
	}
	out.HiddenWidgets = append([]string(nil), prefs.HiddenWidgets...)
	return out
}
