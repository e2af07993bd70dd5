package dashboard

import (
	"bytes"
	"context"
	"io"
	"testing"
)

type stubLayoutResolver struct {
	layout Layout
	err    error
}

func (s *stubLayoutResolver) ConfigureLayout(ctx context.Context, viewer ViewerContext) (Layout, error) {
	return s.layout, s.err
}

type stubTemplateRenderer struct {
	lastTemplate string
	lastPayload  map[string]any
	err          error
}

func (r *stubTemplateRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	r.lastTemplate = name
	if payload, ok := data.(map[string]any); ok {
		r.lastPayload = payload
	}
	if len(out) > 0 && out[0] != nil {
		out[0].Write([]byte("<html></html>"))
	}
	return "<html></html>", r.err
}

func TestControllerRenderTemplate(t *testing.T) {
	service := &stubLayoutResolver{
		layout: Layout{
			Pages: map[string][]WidgetInstance{
				"pulse.page.overview": {
					{ID: "w1", DefinitionID: "pulse.widget.kpi_row", Metadata: map[string]any{"data": WidgetData{"value": 42}}},
				},
			},
		},
	}
	renderer := &stubTemplateRenderer{}
	controller := NewController(ControllerOptions{
		Service:  service,
		Renderer: renderer,
		Template: "dashboard.html",
	})

	var buf bytes.Buffer
	if err := controller.RenderTemplate(context.Background(), ViewerContext{UserID: "user"}, &buf); err != nil {
		t.Fatalf("RenderTemplate returned error: %v", err)
	}
	if renderer.lastTemplate != "dashboard.html" {
		t.Fatalf("expected dashboard template to render, got %s", renderer.lastTemplate)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected rendered output")
	}
	if renderer.lastPayload["navigation"] == nil {
		t.Fatalf("expected navigation in payload")
	}
}

func TestControllerRenderPageUsesServiceResolver(t *testing.T) {
	store := NewMemoryWidgetStore()
	ctx := context.Background()
	instance, err := store.CreateInstance(ctx, CreateWidgetInstanceInput{DefinitionID: "pulse.widget.kpi_row"})
	if err != nil {
		t.Fatalf("CreateInstance returned error: %v", err)
	}
	if err := store.AssignInstance(ctx, AssignWidgetInput{PageCode: "pulse.page.overview", InstanceID: instance.ID}); err != nil {
		t.Fatalf("AssignInstance returned error: %v", err)
	}
	service := NewService(Options{WidgetStore: store})
	renderer := &stubTemplateRenderer{}
	controller := NewController(ControllerOptions{Service: service, Renderer: renderer})

	var buf bytes.Buffer
	if err := controller.RenderPage(ctx, ViewerContext{UserID: "user"}, "pulse.page.overview", &buf); err != nil {
		t.Fatalf("RenderPage returned error: %v", err)
	}
	if renderer.lastTemplate != "page.html" {
		t.Fatalf("expected page template, got %s", renderer.lastTemplate)
	}
	widgets, ok := renderer.lastPayload["widgets"].([]WidgetInstance)
	if !ok || len(widgets) != 1 {
		t.Fatalf("expected 1 widget in payload, got %#v", renderer.lastPayload["widgets"])
	}
	if renderer.lastPayload["preferences"] == nil {
		t.Fatalf("expected preferences in payload")
	}
}

func TestControllerNavigationGroupsBySection(t *testing.T) {
	controller := NewController(ControllerOptions{Service: &stubLayoutResolver{}})
	sections := controller.navigation()
	if len(sections) != 3 {
		t.Fatalf("expected 3 nav sections, got %d", len(sections))
	}
	if sections[0].Name != SectionDashboard {
		t.Fatalf("expected dashboard section first, got %q", sections[0].Name)
	}
	if len(sections[0].Pages) == 0 {
		t.Fatalf("expected pages in first section")
	}
}

func TestControllerRenderTemplateRequiresRenderer(t *testing.T) {
	controller := NewController(ControllerOptions{Service: &stubLayoutResolver{}})
	if err := controller.RenderTemplate(context.Background(), ViewerContext{}, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error without renderer")
	}
}
