package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/shoppulse/pulse/components/dashboard"
)

// SavePreferencesInput captures a full preferences write for one viewer.
type SavePreferencesInput struct {
	Viewer      dashboard.ViewerContext `json:"viewer"`
	Preferences dashboard.Preferences   `json:"preferences"`
}

type preferenceService interface {
	SavePreferences(ctx context.Context, viewer dashboard.ViewerContext, prefs dashboard.Preferences) error
}

// SavePreferencesCommand persists per-viewer display preferences.
type SavePreferencesCommand struct {
	service   preferenceService
	telemetry Telemetry
}

// NewSavePreferencesCommand creates the command.
func NewSavePreferencesCommand(service preferenceService, telemetry Telemetry) *SavePreferencesCommand {
	return &SavePreferencesCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SavePreferencesInput] = (*SavePreferencesCommand)(nil)

// Execute stores the provided preferences for the viewer.
func (c *SavePreferencesCommand) Execute(ctx context.Context, msg SavePreferencesInput) error {
	if c.service == nil {
		return errors.New("preferences command requires service")
	}
	if msg.Viewer.UserID == "" {
		return errors.New("preferences command requires viewer user id")
	}
	if err := c.service.SavePreferences(ctx, msg.Viewer, msg.Preferences); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.preferences.save", map[string]any{
		"user_id": msg.Viewer.UserID,
		"theme":   msg.Preferences.Theme,
		"hidden":  len(msg.Preferences.HiddenWidgets),
	})
	return nil
}

// SaveWidgetOrderInput captures a viewer's drag-and-drop order for one page.
type SaveWidgetOrderInput struct {
	Viewer    dashboard.ViewerContext `json:"viewer"`
	PageCode  string                  `json:"page_code"`
	WidgetIDs []string                `json:"widget_ids"`
}

type widgetOrderService interface {
	SaveWidgetOrder(ctx context.Context, viewer dashboard.ViewerContext, pageCode string, widgetIDs []string) error
}

// SaveWidgetOrderCommand persists the viewer's per-page widget order. The
// service ignores the write while the viewer's layout is locked.
type SaveWidgetOrderCommand struct {
	service   widgetOrderService
	telemetry Telemetry
}

// NewSaveWidgetOrderCommand creates the command.
func NewSaveWidgetOrderCommand(service widgetOrderService, telemetry Telemetry) *SaveWidgetOrderCommand {
	return &SaveWidgetOrderCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SaveWidgetOrderInput] = (*SaveWidgetOrderCommand)(nil)

// Execute stores the order for the viewer and page.
func (c *SaveWidgetOrderCommand) Execute(ctx context.Context, msg SaveWidgetOrderInput) error {
	if c.service == nil {
		return errors.New("widget order command requires service")
	}
	if err := c.service.SaveWidgetOrder(ctx, msg.Viewer, msg.PageCode, msg.WidgetIDs); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.layout.order", map[string]any{
		"user_id":   msg.Viewer.UserID,
		"page_code": msg.PageCode,
		"count":     len(msg.WidgetIDs),
	})
	return nil
}

// ToggleThemeInput identifies the viewer whose theme should flip.
type ToggleThemeInput struct {
	Viewer dashboard.ViewerContext `json:"viewer"`
}

type themeService interface {
	ToggleTheme(ctx context.Context, viewer dashboard.ViewerContext) (string, error)
}

// ToggleThemeCommand flips the viewer's theme between light and dark.
type ToggleThemeCommand struct {
	service   themeService
	telemetry Telemetry
}

// NewToggleThemeCommand creates the command.
func NewToggleThemeCommand(service themeService, telemetry Telemetry) *ToggleThemeCommand {
	return &ToggleThemeCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ToggleThemeInput] = (*ToggleThemeCommand)(nil)

// Execute toggles and records the resulting theme.
func (c *ToggleThemeCommand) Execute(ctx context.Context, msg ToggleThemeInput) error {
	if c.service == nil {
		return errors.New("theme command requires service")
	}
	theme, err := c.service.ToggleTheme(ctx, msg.Viewer)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.preferences.theme", map[string]any{
		"user_id": msg.Viewer.UserID,
		"theme":   theme,
	})
	return nil
}

// SetLayoutLockInput controls whether the viewer can drag widgets.
type SetLayoutLockInput struct {
	Viewer   dashboard.ViewerContext `json:"viewer"`
	Unlocked bool                    `json:"unlocked"`
}

type layoutLockService interface {
	SetLayoutLock(ctx context.Context, viewer dashboard.ViewerContext, unlocked bool) error
}

// SetLayoutLockCommand locks or unlocks widget dragging for the viewer.
type SetLayoutLockCommand struct {
	service   layoutLockService
	telemetry Telemetry
}

// NewSetLayoutLockCommand creates the command.
func NewSetLayoutLockCommand(service layoutLockService, telemetry Telemetry) *SetLayoutLockCommand {
	return &SetLayoutLockCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SetLayoutLockInput] = (*SetLayoutLockCommand)(nil)

// Execute applies the lock state.
func (c *SetLayoutLockCommand) Execute(ctx context.Context, msg SetLayoutLockInput) error {
	if c.service == nil {
		return errors.New("layout lock command requires service")
	}
	if err := c.service.SetLayoutLock(ctx, msg.Viewer, msg.Unlocked); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.preferences.lock", map[string]any{
		"user_id":  msg.Viewer.UserID,
		"unlocked": msg.Unlocked,
	})
	return nil
}
