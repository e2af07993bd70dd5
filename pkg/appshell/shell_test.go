package appshell_test

import (
	"context"
	"testing"

	core "github.com/shoppulse/pulse/components/dashboard"
	"github.com/shoppulse/pulse/pkg/appshell"
	dashboardpkg "github.com/shoppulse/pulse/pkg/dashboard"
)

type recordingNavBuilder struct {
	sections []string
	items    []appshell.NavItem
}

func (b *recordingNavBuilder) EnsureNavItem(_ context.Context, section string, item appshell.NavItem) error {
	b.sections = append(b.sections, section)
	b.items = append(b.items, item)
	return nil
}

func TestShellBootstrapSeedsNavigation(t *testing.T) {
	builder := &recordingNavBuilder{}
	service := dashboardpkg.NewService(core.Options{WidgetStore: core.NewMemoryWidgetStore()})
	shell, err := appshell.New(appshell.Config{
		EnableDashboard: true,
		Service:         service,
		NavBuilder:      builder,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := shell.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	pages := core.DefaultPageDefinitions()
	if len(builder.items) != len(pages) {
		t.Fatalf("expected %d nav items, got %d", len(pages), len(builder.items))
	}
	if builder.items[0].Label != pages[0].Title || builder.items[0].Route != pages[0].Path {
		t.Fatalf("expected first item %q at %q, got %+v", pages[0].Title, pages[0].Path, builder.items[0])
	}
	if builder.sections[0] != core.SectionDashboard {
		t.Fatalf("expected first section %q, got %q", core.SectionDashboard, builder.sections[0])
	}
	if shell.Dashboard() == nil {
		t.Fatalf("expected dashboard service")
	}
}

func TestShellDisabledSkipsBootstrap(t *testing.T) {
	builder := &recordingNavBuilder{}
	shell, err := appshell.New(appshell.Config{
		EnableDashboard: false,
		NavBuilder:      builder,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := shell.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if len(builder.items) != 0 {
		t.Fatalf("expected no nav items, got %d", len(builder.items))
	}
	if shell.Dashboard() != nil {
		t.Fatalf("expected nil dashboard when disabled")
	}
}

func TestShellRequiresServiceWhenEnabled(t *testing.T) {
	if _, err := appshell.New(appshell.Config{EnableDashboard: true}); err == nil {
		t.Fatalf("expected error without service")
	}
}

func TestShellCustomPages(t *testing.T) {
	builder := &recordingNavBuilder{}
	service := dashboardpkg.NewService(core.Options{WidgetStore: core.NewMemoryWidgetStore()})
	shell, err := appshell.New(appshell.Config{
		EnableDashboard: true,
		Service:         service,
		NavBuilder:      builder,
		Pages: []core.PageDefinition{
			{Code: "pulse.page.overview", Title: "Home", Path: "/app", Section: core.SectionDashboard},
		},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := shell.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if len(builder.items) != 1 || builder.items[0].Label != "Home" {
		t.Fatalf("expected custom page seeded, got %+v", builder.items)
	}
	if got := shell.Pages(); len(got) != 1 {
		t.Fatalf("expected 1 page, got %d", len(got))
	}
}
