package dashboard

import (
	"context"
	"testing"
)

func TestMemoryWidgetStoreInstanceLifecycle(t *testing.T) {
	store := NewMemoryWidgetStore()
	ctx := context.Background()

	instance, err := store.CreateInstance(ctx, CreateWidgetInstanceInput{
		DefinitionID:  "pulse.widget.kpi_row",
		Configuration: map[string]any{"days": 30},
	})
	if err != nil {
		t.Fatalf("CreateInstance returned error: %v", err)
	}
	if instance.ID == "" {
		t.Fatalf("expected generated instance id")
	}

	updated, err := store.UpdateInstance(ctx, instance.ID, UpdateWidgetInstanceInput{
		Configuration: map[string]any{"days": 90},
	})
	if err != nil {
		t.Fatalf("UpdateInstance returned error: %v", err)
	}
	if updated.Configuration["days"] != 90 {
		t.Fatalf("expected configuration replaced, got %v", updated.Configuration)
	}

	fetched, err := store.Instance(ctx, instance.ID)
	if err != nil {
		t.Fatalf("Instance returned error: %v", err)
	}
	if fetched.Configuration["days"] != 90 {
		t.Fatalf("expected update persisted, got %v", fetched.Configuration)
	}

	if err := store.DeleteInstance(ctx, instance.ID); err != nil {
		t.Fatalf("DeleteInstance returned error: %v", err)
	}
	if _, err := store.Instance(ctx, instance.ID); err == nil {
		t.Fatalf("expected lookup error after delete")
	}
}

func TestMemoryWidgetStoreUpdateUnknownInstance(t *testing.T) {
	store := NewMemoryWidgetStore()
	if _, err := store.UpdateInstance(context.Background(), "missing", UpdateWidgetInstanceInput{}); err == nil {
		t.Fatalf("expected error for unknown instance")
	}
}

func TestMemoryWidgetStoreAssignAndResolve(t *testing.T) {
	store := NewMemoryWidgetStore()
	ctx := context.Background()

	first, _ := store.CreateInstance(ctx, CreateWidgetInstanceInput{DefinitionID: "pulse.widget.kpi_row"})
	second, _ := store.CreateInstance(ctx, CreateWidgetInstanceInput{DefinitionID: "pulse.widget.order_list"})

	if err := store.AssignInstance(ctx, AssignWidgetInput{PageCode: "pulse.page.overview", InstanceID: first.ID}); err != nil {
		t.Fatalf("AssignInstance returned error: %v", err)
	}
	position := 0
	if err := store.AssignInstance(ctx, AssignWidgetInput{PageCode: "pulse.page.overview", InstanceID: second.ID, Position: &position}); err != nil {
		t.Fatalf("AssignInstance with position returned error: %v", err)
	}

	resolved, err := store.ResolvePage(ctx, ResolvePageInput{PageCode: "pulse.page.overview"})
	if err != nil {
		t.Fatalf("ResolvePage returned error: %v", err)
	}
	if len(resolved.Widgets) != 2 {
		t.Fatalf("expected 2 widgets, got %d", len(resolved.Widgets))
	}
	if resolved.Widgets[0].ID != second.ID {
		t.Fatalf("expected positioned widget first, got %s", resolved.Widgets[0].ID)
	}
	if resolved.Widgets[0].PageCode != "pulse.page.overview" {
		t.Fatalf("expected page code stamped on assignment, got %q", resolved.Widgets[0].PageCode)
	}
}

func TestMemoryWidgetStoreAssignRequiresInstance(t *testing.T) {
	store := NewMemoryWidgetStore()
	err := store.AssignInstance(context.Background(), AssignWidgetInput{PageCode: "pulse.page.overview", InstanceID: "missing"})
	if err == nil {
		t.Fatalf("expected error assigning unknown instance")
	}
}

func TestMemoryWidgetStoreReassignMovesWidget(t *testing.T) {
	store := NewMemoryWidgetStore()
	ctx := context.Background()

	instance, _ := store.CreateInstance(ctx, CreateWidgetInstanceInput{DefinitionID: "pulse.widget.alert_feed"})
	_ = store.AssignInstance(ctx, AssignWidgetInput{PageCode: "pulse.page.overview", InstanceID: instance.ID})
	_ = store.AssignInstance(ctx, AssignWidgetInput{PageCode: "pulse.page.alerts", InstanceID: instance.ID})

	alerts, _ := store.ResolvePage(ctx, ResolvePageInput{PageCode: "pulse.page.alerts"})
	if len(alerts.Widgets) != 1 {
		t.Fatalf("expected widget on new page, got %d", len(alerts.Widgets))
	}
}

func TestMemoryWidgetStoreReorderPage(t *testing.T) {
	store := NewMemoryWidgetStore()
	ctx := context.Background()

	a, _ := store.CreateInstance(ctx, CreateWidgetInstanceInput{DefinitionID: "pulse.widget.kpi_row"})
	b, _ := store.CreateInstance(ctx, CreateWidgetInstanceInput{DefinitionID: "pulse.widget.revenue_trend"})
	_ = store.AssignInstance(ctx, AssignWidgetInput{PageCode: "pulse.page.sales", InstanceID: a.ID})
	_ = store.AssignInstance(ctx, AssignWidgetInput{PageCode: "pulse.page.sales", InstanceID: b.ID})

	if err := store.ReorderPage(ctx, ReorderPageInput{PageCode: "pulse.page.sales", WidgetIDs: []string{b.ID, a.ID}}); err != nil {
		t.Fatalf("ReorderPage returned error: %v", err)
	}

	resolved, _ := store.ResolvePage(ctx, ResolvePageInput{PageCode: "pulse.page.sales"})
	if resolved.Widgets[0].ID != b.ID {
		t.Fatalf("expected reordered widgets, got %s first", resolved.Widgets[0].ID)
	}
}

func TestMemoryWidgetStoreEnsureIdempotent(t *testing.T) {
	store := NewMemoryWidgetStore()
	ctx := context.Background()

	created, err := store.EnsurePage(ctx, PageDefinition{Code: "pulse.page.overview", Title: "Overview"})
	if err != nil || !created {
		t.Fatalf("expected first EnsurePage to create, got created=%v err=%v", created, err)
	}
	created, err = store.EnsurePage(ctx, PageDefinition{Code: "pulse.page.overview", Title: "Overview"})
	if err != nil || created {
		t.Fatalf("expected second EnsurePage to upsert, got created=%v err=%v", created, err)
	}

	created, err = store.EnsureDefinition(ctx, WidgetDefinition{Code: "pulse.widget.kpi_row", Name: "Key Metrics"})
	if err != nil || !created {
		t.Fatalf("expected first EnsureDefinition to create, got created=%v err=%v", created, err)
	}
	created, err = store.EnsureDefinition(ctx, WidgetDefinition{Code: "pulse.widget.kpi_row", Name: "Key Metrics"})
	if err != nil || created {
		t.Fatalf("expected second EnsureDefinition to upsert, got created=%v err=%v", created, err)
	}

	if _, err := store.EnsurePage(ctx, PageDefinition{}); err == nil {
		t.Fatalf("expected error for missing page code")
	}
}
