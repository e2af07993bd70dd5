package dashboard

import (
	"context"
	"time"
)

// WidgetStore persists page, widget definition, and widget instance records and
// resolves the widgets assigned to a page. Implementations ensure thread safety
// and idempotency.
type WidgetStore interface {
	EnsurePage(ctx context.Context, def PageDefinition) (bool, error)
	EnsureDefinition(ctx context.Context, def WidgetDefinition) (bool, error)
	CreateInstance(ctx context.Context, input CreateWidgetInstanceInput) (WidgetInstance, error)
	UpdateInstance(ctx context.Context, instanceID string, input UpdateWidgetInstanceInput) (WidgetInstance, error)
	Instance(ctx context.Context, instanceID string) (WidgetInstance, error)
	DeleteInstance(ctx context.Context, instanceID string) error
	AssignInstance(ctx context.Context, input AssignWidgetInput) error
	ReorderPage(ctx context.Context, input ReorderPageInput) error
	ResolvePage(ctx context.Context, input ResolvePageInput) (ResolvedPage, error)
}

// Authorizer determines if a viewer can see a widget instance.
type Authorizer interface {
	CanViewWidget(ctx context.Context, viewer ViewerContext, instance WidgetInstance) bool
}

// PreferenceStore keeps per-viewer display preferences: theme, layout lock, and
// saved widget order per page.
type PreferenceStore interface {
	Preferences(ctx context.Context, viewer ViewerContext) (Preferences, error)
	SavePreferences(ctx context.Context, viewer ViewerContext, prefs Preferences) error
}

// ProviderRegistry stores widget definitions/providers discoverable via hooks or manifests.
type ProviderRegistry interface {
	RegisterDefinition(def WidgetDefinition) error
	RegisterProvider(code string, provider Provider) error
	Definition(code string) (WidgetDefinition, bool)
	Provider(code string) (Provider, bool)
	Definitions() []WidgetDefinition
}

// RefreshHook notifies transports (REST/WebSocket) about widget changes.
type RefreshHook interface {
	WidgetUpdated(ctx context.Context, event WidgetEvent) error
}

// PageDefinition models one dashboard page (overview, sales, orders, ...).
// Section groups pages in the navigation sidebar.
type PageDefinition struct {
	Code        string
	Title       string
	Path        string
	Section     string
	Description string
}

// WidgetDefinition describes a widget type and its configuration schema.
type WidgetDefinition struct {
	Code                 string
	Name                 string
	NameLocalized        map[string]string
	Description          string
	DescriptionLocalized map[string]string
	Schema               map[string]any
	Category             string
}

// WidgetInstance is one configured widget placed on a page.
type WidgetInstance struct {
	ID            string
	DefinitionID  string
	PageCode      string
	Configuration map[string]any
	Metadata      map[string]any
}

// CreateWidgetInstanceInput configures new instances.
type CreateWidgetInstanceInput struct {
	DefinitionID  string
	Configuration map[string]any
	Visibility    WidgetVisibility
	Metadata      map[string]any
}

// UpdateWidgetInstanceInput mutates an existing instance. Nil maps keep the
// current values.
type UpdateWidgetInstanceInput struct {
	Configuration map[string]any
	Metadata      map[string]any
}

// WidgetVisibility defines runtime visibility constraints.
type WidgetVisibility struct {
	Roles    []string
	StartAt  *time.Time
	EndAt    *time.Time
	Audience []string
}

// AssignWidgetInput associates a widget instance with a page.
type AssignWidgetInput struct {
	PageCode   string
	InstanceID string
	Position   *int
}

// ReorderPageInput represents a new ordering for widgets within a page.
type ReorderPageInput struct {
	PageCode  string
	WidgetIDs []string
}

// ResolvePageInput requests widget instances for a given page and audience.
type ResolvePageInput struct {
	PageCode string
	Audience []string
	Locale   string
}

// ResolvedPage is a container for widgets returned by the store.
type ResolvedPage struct {
	PageCode string
	Widgets  []WidgetInstance
}

// Preferences captures a viewer's display state. The zero value means light
// theme, locked layout, default widget order.
type Preferences struct {
	Theme          string              // "light" or "dark"; empty means light
	LayoutUnlocked bool                // widgets are draggable only when true
	WidgetOrder    map[string][]string // page code -> widget instance IDs
	HiddenWidgets  []string
	Locale         string
}

// ViewerContext captures the active merchant user needed to render dashboards.
type ViewerContext struct {
	UserID     string
	ShopDomain string
	Roles      []string
	Locale     string
}

// Layout describes the resolved widget instances per page.
type Layout struct {
	Pages map[string][]WidgetInstance
}

// WidgetEvent describes changes that transports might care about.
type WidgetEvent struct {
	PageCode string
	Instance WidgetInstance
	Reason   string
}
