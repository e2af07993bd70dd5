package dashboard

import (
	"context"
	"testing"
)

func TestInMemoryPreferenceStore(t *testing.T) {
	store := NewInMemoryPreferenceStore()
	viewer := ViewerContext{UserID: "user-1", Locale: "en"}
	prefs := Preferences{
		Theme:          ThemeDark,
		LayoutUnlocked: true,
		WidgetOrder: map[string][]string{
			"pulse.page.overview": {"w2", "w1"},
		},
		HiddenWidgets: []string{"w3"},
	}
	if err := store.SavePreferences(context.Background(), viewer, prefs); err != nil {
		t.Fatalf("SavePreferences returned error: %v", err)
	}
	out, err := store.Preferences(context.Background(), viewer)
	if err != nil {
		t.Fatalf("Preferences returned error: %v", err)
	}
	if out.Locale != "en" {
		t.Fatalf("expected locale metadata persisted, got %q", out.Locale)
	}
	if out.Theme != ThemeDark {
		t.Fatalf("expected dark theme, got %q", out.Theme)
	}
	if !out.LayoutUnlocked {
		t.Fatalf("expected layout unlocked")
	}
	if order := out.WidgetOrder["pulse.page.overview"]; len(order) != 2 || order[0] != "w2" {
		t.Fatalf("expected saved order, got %v", order)
	}
	if len(out.HiddenWidgets) != 1 || out.HiddenWidgets[0] != "w3" {
		t.Fatalf("expected hidden widget persisted, got %v", out.HiddenWidgets)
	}
}

func TestInMemoryPreferenceStoreScopedByShop(t *testing.T) {
	store := NewInMemoryPreferenceStore()
	ctx := context.Background()
	viewerA := ViewerContext{UserID: "user-1", ShopDomain: "alpha.myshopify.com"}
	viewerB := ViewerContext{UserID: "user-1", ShopDomain: "beta.myshopify.com"}
	if err := store.SavePreferences(ctx, viewerA, Preferences{Theme: ThemeDark}); err != nil {
		t.Fatalf("SavePreferences returned error: %v", err)
	}
	out, err := store.Preferences(ctx, viewerB)
	if err != nil {
		t.Fatalf("Preferences returned error: %v", err)
	}
	if out.Theme != ThemeLight {
		t.Fatalf("expected default theme for other shop, got %q", out.Theme)
	}
}

func TestClonePreferencesIsolatesMutations(t *testing.T) {
	store := NewInMemoryPreferenceStore()
	ctx := context.Background()
	viewer := ViewerContext{UserID: "user-2"}
	saved := Preferences{WidgetOrder: map[string][]string{"pulse.page.sales": {"a", "b"}}}
	if err := store.SavePreferences(ctx, viewer, saved); err != nil {
		t.Fatalf("SavePreferences returned error: %v", err)
	}
	out, _ := store.Preferences(ctx, viewer)
	out.WidgetOrder["pulse.page.sales"][0] = "mutated"
	again, _ := store.Preferences(ctx, viewer)
	if again.WidgetOrder["pulse.page.sales"][0] != "a" {
		t.Fatalf("expected stored order unchanged, got %v", again.WidgetOrder)
	}
}
