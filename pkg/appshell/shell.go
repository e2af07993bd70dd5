package appshell

import (
	"context"
	"errors"

	core "github.com/shoppulse/pulse/components/dashboard"
	activitypkg "github.com/shoppulse/pulse/pkg/activity"
	dashboardpkg "github.com/shoppulse/pulse/pkg/dashboard"
)

// NavBuilder ensures dashboard entries exist within the embedded app
// navigation. Hosts back this with App Bridge nav menus or their own sidebar.
type NavBuilder interface {
	EnsureNavItem(ctx context.Context, section string, item NavItem) error
}

// NavItem captures one navigation link.
type NavItem struct {
	Label       string
	Route       string
	Description string
	Position    int
}

// Config wires the dashboard service + feature flags into an app shell.
type Config struct {
	EnableDashboard bool
	NavBuilder      NavBuilder
	Service         *dashboardpkg.Service
	Pages           []core.PageDefinition
	ActivityHooks   activitypkg.Hooks
	ActivityConfig  activitypkg.Config
}

// Shell exposes helpers for embedded merchant applications.
type Shell struct {
	cfg Config
}

// New creates a Shell that can seed the app navigation.
func New(cfg Config) (*Shell, error) {
	if cfg.EnableDashboard && cfg.Service == nil {
		return nil, errors.New("appshell: dashboard service is required when enabled")
	}
	if len(cfg.Pages) == 0 {
		cfg.Pages = core.DefaultPageDefinitions()
	}
	return &Shell{cfg: cfg}, nil
}

// Dashboard exposes the configured dashboard service when enabled.
func (s *Shell) Dashboard() *dashboardpkg.Service {
	if !s.cfg.EnableDashboard {
		return nil
	}
	return s.cfg.Service
}

// Pages returns the page definitions the shell navigates to.
func (s *Shell) Pages() []core.PageDefinition {
	out := make([]core.PageDefinition, len(s.cfg.Pages))
	copy(out, s.cfg.Pages)
	return out
}

// Bootstrap seeds one nav entry per dashboard page, grouped by section and
// positioned in declaration order.
func (s *Shell) Bootstrap(ctx context.Context) error {
	if !s.cfg.EnableDashboard || s.cfg.NavBuilder == nil {
		return nil
	}
	for i, page := range s.cfg.Pages {
		item := NavItem{
			Label:       page.Title,
			Route:       page.Path,
			Description: page.Description,
			Position:    i,
		}
		if err := s.cfg.NavBuilder.EnsureNavItem(ctx, page.Section, item); err != nil {
			return err
		}
	}
	return nil
}
