package dashboard

import (
	"context"
	"errors"
	"time"

	"github.com/shoppulse/pulse/pkg/activity"
)

// Theme states stored in viewer preferences.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

var (
	errMissingWidgetStore = errors.New("dashboard: widget store not configured")
	errInvalidPage        = errors.New("dashboard: page code is required")
	errInvalidDefinition  = errors.New("dashboard: definition id is required")
	errInvalidTheme       = errors.New("dashboard: theme must be light or dark")
	errMissingViewer      = errors.New("dashboard: viewer context missing user id")
)

// Options configures the dashboard Service. Every collaborator is provided via
// interface so host applications can swap implementations without importing
// internal packages.
type Options struct {
	WidgetStore     WidgetStore
	Authorizer      Authorizer
	PreferenceStore PreferenceStore
	Providers       ProviderRegistry
	ConfigValidator ConfigValidator
	RefreshHook     RefreshHook
	Telemetry       Telemetry
	ActivityHooks   activity.Hooks
	ActivityConfig  activity.Config
	Pages           []string
}

// Service orchestrates the dashboard pages and widgets.
type Service struct {
	opts     Options
	activity *activity.Emitter
}

// NewService builds a Service instance with safe defaults.
func NewService(opts Options) *Service {
	if opts.Authorizer == nil {
		opts.Authorizer = allowAllAuthorizer{}
	}
	if opts.RefreshHook == nil {
		opts.RefreshHook = noopRefreshHook{}
	}
	if opts.Providers == nil {
		opts.Providers = NewRegistry()
	}
	if opts.ConfigValidator == nil {
		opts.ConfigValidator = NewJSONSchemaValidator()
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	if opts.PreferenceStore == nil {
		opts.PreferenceStore = NewInMemoryPreferenceStore()
	}
	return &Service{
		opts:     opts,
		activity: activity.NewEmitter(opts.ActivityHooks, opts.ActivityConfig),
	}
}

// AddWidgetRequest captures the data required to create widget assignments.
type AddWidgetRequest struct {
	DefinitionID  string
	PageCode      string
	Configuration map[string]any
	Position      *int
	Roles         []string
	StartAt       *time.Time
	EndAt         *time.Time
	ActorID       string
	UserID        string
	TenantID      string
}

// AddWidget creates a widget instance and assigns it to a page.
func (s *Service) AddWidget(ctx context.Context, req AddWidgetRequest) error {
	store, err := s.widgetStore()
	if err != nil {
		return err
	}
	if req.PageCode == "" {
		return errInvalidPage
	}
	if req.DefinitionID == "" {
		return errInvalidDefinition
	}
	if err := s.validateConfiguration(req.DefinitionID, req.Configuration); err != nil {
		return err
	}
	instance, err := store.CreateInstance(ctx, CreateWidgetInstanceInput{
		DefinitionID:  req.DefinitionID,
		Configuration: req.Configuration,
		Visibility: WidgetVisibility{
			Roles:   req.Roles,
			StartAt: req.StartAt,
			EndAt:   req.EndAt,
		},
		Metadata: map[string]any{
			"user_id": req.UserID,
		},
	})
	if err != nil {
		return err
	}
	if err := store.AssignInstance(ctx, AssignWidgetInput{
		PageCode:   req.PageCode,
		InstanceID: instance.ID,
		Position:   req.Position,
	}); err != nil {
		return err
	}
	event := WidgetEvent{
		PageCode: req.PageCode,
		Instance: instance,
		Reason:   "add",
	}
	if err := s.opts.RefreshHook.WidgetUpdated(ctx, event); err != nil {
		return err
	}
	s.recordTelemetry(ctx, "dashboard.widget.add", map[string]any{
		"page_code":     req.PageCode,
		"definition_id": req.DefinitionID,
	})
	s.emitActivity(ctx, activity.Event{
		Verb:       "dashboard.widget.add",
		ObjectType: "widget_instance",
		ObjectID:   instance.ID,
		ActorID:    req.ActorID,
		UserID:     req.UserID,
		TenantID:   req.TenantID,
		Metadata: map[string]any{
			"page_code":     req.PageCode,
			"definition_id": req.DefinitionID,
		},
	})
	return nil
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}

// emitActivity fills actor identity from the request context when the event
// does not carry one.
func (s *Service) emitActivity(ctx context.Context, evt activity.Event) {
	if !s.activity.Enabled() {
		return
	}
	meta := activityContextFrom(ctx)
	if evt.ActorID == "" {
		evt.ActorID = meta.ActorID
	}
	if evt.UserID == "" {
		evt.UserID = meta.UserID
	}
	if evt.TenantID == "" {
		evt.TenantID = meta.TenantID
	}
	_ = s.activity.Emit(ctx, evt)
}

// RemoveWidget deletes the widget instance.
func (s *Service) RemoveWidget(ctx context.Context, widgetID string) error {
	store, err := s.widgetStore()
	if err != nil {
		return err
	}
	if widgetID == "" {
		return errors.New("dashboard: widget id is required")
	}
	instance, lookupErr := store.Instance(ctx, widgetID)
	if lookupErr != nil {
		instance = WidgetInstance{ID: widgetID}
	}
	if err := store.DeleteInstance(ctx, widgetID); err != nil {
		return err
	}
	if err := s.opts.RefreshHook.WidgetUpdated(ctx, WidgetEvent{
		PageCode: instance.PageCode,
		Instance: WidgetInstance{ID: widgetID},
		Reason:   "delete",
	}); err != nil {
		return err
	}
	s.recordTelemetry(ctx, "dashboard.widget.remove", map[string]any{"widget_id": widgetID})
	s.emitActivity(ctx, activity.Event{
		Verb:       "dashboard.widget.remove",
		ObjectType: "widget_instance",
		ObjectID:   widgetID,
		Metadata: map[string]any{
			"page_code":     instance.PageCode,
			"definition_id": instance.DefinitionID,
		},
	})
	return nil
}

// UpdateWidgetRequest mutates a widget instance's configuration or metadata.
type UpdateWidgetRequest struct {
	Configuration map[string]any
	Metadata      map[string]any
	ActorID       string
	UserID        string
	TenantID      string
}

// UpdateWidget validates and applies configuration changes to an instance.
func (s *Service) UpdateWidget(ctx context.Context, widgetID string, req UpdateWidgetRequest) error {
	store, err := s.widgetStore()
	if err != nil {
		return err
	}
	if widgetID == "" {
		return errors.New("dashboard: widget id is required")
	}
	current, err := store.Instance(ctx, widgetID)
	if err != nil {
		return err
	}
	if req.Configuration != nil {
		if err := s.validateConfiguration(current.DefinitionID, req.Configuration); err != nil {
			return err
		}
	}
	updated, err := store.UpdateInstance(ctx, widgetID, UpdateWidgetInstanceInput{
		Configuration: req.Configuration,
		Metadata:      req.Metadata,
	})
	if err != nil {
		return err
	}
	if err := s.opts.RefreshHook.WidgetUpdated(ctx, WidgetEvent{
		PageCode: updated.PageCode,
		Instance: updated,
		Reason:   "update",
	}); err != nil {
		return err
	}
	s.recordTelemetry(ctx, "dashboard.widget.update", map[string]any{"widget_id": widgetID})
	s.emitActivity(ctx, activity.Event{
		Verb:       "dashboard.widget.update",
		ObjectType: "widget_instance",
		ObjectID:   widgetID,
		ActorID:    req.ActorID,
		UserID:     req.UserID,
		TenantID:   req.TenantID,
		Metadata: map[string]any{
			"page_code":     updated.PageCode,
			"definition_id": updated.DefinitionID,
		},
	})
	return nil
}

// ReorderWidgets changes the default widget ordering within a page. This is the
// store-level order every viewer without a saved order sees.
func (s *Service) ReorderWidgets(ctx context.Context, pageCode string, widgetIDs []string) error {
	store, err := s.widgetStore()
	if err != nil {
		return err
	}
	if pageCode == "" {
		return errInvalidPage
	}
	if err := store.ReorderPage(ctx, ReorderPageInput{
		PageCode:  pageCode,
		WidgetIDs: widgetIDs,
	}); err != nil {
		return err
	}
	if err := s.opts.RefreshHook.WidgetUpdated(ctx, WidgetEvent{
		PageCode: pageCode,
		Reason:   "reorder",
	}); err != nil {
		return err
	}
	s.recordTelemetry(ctx, "dashboard.widget.reorder", map[string]any{
		"page_code": pageCode,
		"count":     len(widgetIDs),
	})
	s.emitActivity(ctx, activity.Event{
		Verb:       "dashboard.widget.reorder",
		ObjectType: "page",
		ObjectID:   pageCode,
		Metadata: map[string]any{
			"page_code": pageCode,
			"count":     len(widgetIDs),
		},
	})
	return nil
}

// SaveWidgetOrder persists a viewer's drag-and-drop order for one page. While
// the viewer's layout is locked the call is a no-op: nothing is stored and no
// error is returned.
func (s *Service) SaveWidgetOrder(ctx context.Context, viewer ViewerContext, pageCode string, widgetIDs []string) error {
	if viewer.UserID == "" {
		return errMissingViewer
	}
	if pageCode == "" {
		return errInvalidPage
	}
	prefs, err := s.opts.PreferenceStore.Preferences(ctx, viewer)
	if err != nil {
		return err
	}
	if !prefs.LayoutUnlocked {
		s.recordTelemetry(ctx, "dashboard.layout.reorder_locked", map[string]any{
			"viewer":    viewer.UserID,
			"page_code": pageCode,
		})
		return nil
	}
	if prefs.WidgetOrder == nil {
		prefs.WidgetOrder = map[string][]string{}
	}
	prefs.WidgetOrder[pageCode] = append([]string(nil), widgetIDs...)
	if err := s.opts.PreferenceStore.SavePreferences(ctx, viewer, prefs); err != nil {
		return err
	}
	s.recordTelemetry(ctx, "dashboard.layout.reorder", map[string]any{
		"viewer":    viewer.UserID,
		"page_code": pageCode,
		"count":     len(widgetIDs),
	})
	return nil
}

// ConfigureLayout resolves widgets for each page respecting preferences + auth.
func (s *Service) ConfigureLayout(ctx context.Context, viewer ViewerContext) (Layout, error) {
	store, err := s.widgetStore()
	if err != nil {
		return Layout{}, err
	}
	prefs, err := s.opts.PreferenceStore.Preferences(ctx, viewer)
	if err != nil {
		return Layout{}, err
	}
	layout := Layout{Pages: make(map[string][]WidgetInstance)}
	for _, page := range s.pageList() {
		resolved, err := store.ResolvePage(ctx, ResolvePageInput{
			PageCode: page,
			Audience: viewer.Roles,
			Locale:   viewer.Locale,
		})
		if err != nil {
			return Layout{}, err
		}
		for i := range resolved.Widgets {
			resolved.Widgets[i].PageCode = page
		}
		filtered := s.filterAuthorized(ctx, viewer, resolved.Widgets)
		ordered := applyOrderOverride(filtered, prefs.WidgetOrder[page])
		layout.Pages[page] = applyHiddenFilter(ordered, prefs.HiddenWidgets)
	}
	s.recordTelemetry(ctx, "dashboard.layout.resolve", map[string]any{
		"viewer": viewer.UserID,
	})
	return layout, nil
}

// ResolvePage retrieves a single page layout for the viewer, with the viewer's
// saved widget order applied.
func (s *Service) ResolvePage(ctx context.Context, viewer ViewerContext, pageCode string) (ResolvedPage, error) {
	store, err := s.widgetStore()
	if err != nil {
		return ResolvedPage{}, err
	}
	prefs, err := s.opts.PreferenceStore.Preferences(ctx, viewer)
	if err != nil {
		return ResolvedPage{}, err
	}
	resolved, err := store.ResolvePage(ctx, ResolvePageInput{
		PageCode: pageCode,
		Audience: viewer.Roles,
		Locale:   viewer.Locale,
	})
	if err != nil {
		return ResolvedPage{}, err
	}
	for i := range resolved.Widgets {
		resolved.Widgets[i].PageCode = pageCode
	}
	filtered := s.filterAuthorized(ctx, viewer, resolved.Widgets)
	ordered := applyOrderOverride(filtered, prefs.WidgetOrder[pageCode])
	resolved.Widgets = applyHiddenFilter(ordered, prefs.HiddenWidgets)
	s.recordTelemetry(ctx, "dashboard.page.resolve", map[string]any{
		"viewer":    viewer.UserID,
		"page_code": pageCode,
	})
	return resolved, nil
}

func (s *Service) widgetStore() (WidgetStore, error) {
	if s.opts.WidgetStore == nil {
		return nil, errMissingWidgetStore
	}
	return s.opts.WidgetStore, nil
}

func (s *Service) validateConfiguration(definitionID string, config map[string]any) error {
	if s.opts.ConfigValidator == nil || s.opts.Providers == nil {
		return nil
	}
	def, ok := s.opts.Providers.Definition(definitionID)
	if !ok {
		return nil
	}
	return s.opts.ConfigValidator.Validate(def, config)
}

func (s *Service) pageList() []string {
	if len(s.opts.Pages) > 0 {
		return s.opts.Pages
	}
	return DefaultPageCodes()
}

func (s *Service) filterAuthorized(ctx context.Context, viewer ViewerContext, widgets []WidgetInstance) []WidgetInstance {
	if len(widgets) == 0 {
		return widgets
	}
	var filtered []WidgetInstance
	for _, w := range widgets {
		if s.opts.Authorizer.CanViewWidget(ctx, viewer, w) {
			filtered = append(filtered, w)
		}
	}
	return s.attachProviderData(ctx, viewer, filtered)
}

func (s *Service) attachProviderData(ctx context.Context, viewer ViewerContext, widgets []WidgetInstance) []WidgetInstance {
	if len(widgets) == 0 || s.opts.Providers == nil {
		return widgets
	}
	enriched := make([]WidgetInstance, len(widgets))
	copy(enriched, widgets)
	for i, inst := range enriched {
		if def, ok := s.opts.Providers.Definition(inst.DefinitionID); ok {
			if enriched[i].Metadata == nil {
				enriched[i].Metadata = map[string]any{}
			}
			enriched[i].Metadata["title"] = def.NameForLocale(viewer.Locale)
			if desc := def.DescriptionForLocale(viewer.Locale); desc != "" {
				enriched[i].Metadata["description"] = desc
			}
		}
		provider, ok := s.opts.Providers.Provider(inst.DefinitionID)
		if !ok || provider == nil {
			continue
		}
		data, err := provider.Fetch(ctx, WidgetContext{
			Instance: inst,
			Viewer:   viewer,
		})
		if err != nil {
			s.recordTelemetry(ctx, "dashboard.widget.provider_error", map[string]any{
				"definition_id": inst.DefinitionID,
				"error":         err.Error(),
			})
			continue
		}
		if enriched[i].Metadata == nil {
			enriched[i].Metadata = map[string]any{}
		}
		enriched[i].Metadata["data"] = data
	}
	return enriched
}

// NotifyWidgetUpdated exposes refresh hook invocation for commands/transports.
func (s *Service) NotifyWidgetUpdated(ctx context.Context, event WidgetEvent) error {
	if err := s.opts.RefreshHook.WidgetUpdated(ctx, event); err != nil {
		return err
	}
	s.recordTelemetry(ctx, "dashboard.widget.event", map[string]any{
		"page_code": event.PageCode,
		"widget_id": event.Instance.ID,
		"reason":    event.Reason,
	})
	return nil
}

// Preferences returns the viewer's stored display preferences, or defaults.
func (s *Service) Preferences(ctx context.Context, viewer ViewerContext) (Preferences, error) {
	return s.opts.PreferenceStore.Preferences(ctx, viewer)
}

// SavePreferences persists per-viewer display preferences.
func (s *Service) SavePreferences(ctx context.Context, viewer ViewerContext, prefs Preferences) error {
	if viewer.UserID == "" {
		return errMissingViewer
	}
	if prefs.Theme != "" && prefs.Theme != ThemeLight && prefs.Theme != ThemeDark {
		return errInvalidTheme
	}
	normalizePreferences(&prefs)
	if err := s.opts.PreferenceStore.SavePreferences(ctx, viewer, prefs); err != nil {
		return err
	}
	s.recordTelemetry(ctx, "dashboard.preferences.save", map[string]any{
		"viewer": viewer.UserID,
		"theme":  prefs.Theme,
	})
	return nil
}

// ToggleTheme flips the viewer's theme between light and dark and returns the
// new state.
func (s *Service) ToggleTheme(ctx context.Context, viewer ViewerContext) (string, error) {
	if viewer.UserID == "" {
		return "", errMissingViewer
	}
	prefs, err := s.opts.PreferenceStore.Preferences(ctx, viewer)
	if err != nil {
		return "", err
	}
	if prefs.Theme == ThemeDark {
		prefs.Theme = ThemeLight
	} else {
		prefs.Theme = ThemeDark
	}
	if err := s.SavePreferences(ctx, viewer, prefs); err != nil {
		return "", err
	}
	return prefs.Theme, nil
}

// SetLayoutLock locks or unlocks widget dragging for the viewer.
func (s *Service) SetLayoutLock(ctx context.Context, viewer ViewerContext, unlocked bool) error {
	if viewer.UserID == "" {
		return errMissingViewer
	}
	prefs, err := s.opts.PreferenceStore.Preferences(ctx, viewer)
	if err != nil {
		return err
	}
	prefs.LayoutUnlocked = unlocked
	return s.SavePreferences(ctx, viewer, prefs)
}

func normalizePreferences(prefs *Preferences) {
	if prefs.WidgetOrder == nil {
		prefs.WidgetOrder = map[string][]string{}
	}
	if prefs.HiddenWidgets == nil {
		prefs.HiddenWidgets = []string{}
	}
}

type allowAllAuthorizer struct{}

func (allowAllAuthorizer) CanViewWidget(context.Context, ViewerContext, WidgetInstance) bool {
	return true
}

type noopRefreshHook struct{}

func (noopRefreshHook) WidgetUpdated(context.Context, WidgetEvent) error {
	return nil
}
