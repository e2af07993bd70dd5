package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/shoppulse/pulse/components/dashboard"
)

// RemoveWidgetInput identifies the widget instance to take off the dashboard.
// The actor fields feed the activity log.
type RemoveWidgetInput struct {
	WidgetID string `json:"widget_id"`
	ActorID  string `json:"actor_id"`
	UserID   string `json:"user_id"`
	TenantID string `json:"tenant_id"`
}

type removeService interface {
	RemoveWidget(ctx context.Context, widgetID string) error
}

// RemoveWidgetCommand deletes a widget instance and its page assignment. It
// backs DELETE /app/widgets/:id.
type RemoveWidgetCommand struct {
	service   removeService
	telemetry Telemetry
}

// NewRemoveWidgetCommand builds a command instance.
func NewRemoveWidgetCommand(service removeService, telemetry Telemetry) *RemoveWidgetCommand {
	return &RemoveWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RemoveWidgetInput] = (*RemoveWidgetCommand)(nil)

// Execute stamps the actor on the context and removes the widget.
func (c *RemoveWidgetCommand) Execute(ctx context.Context, msg RemoveWidgetInput) error {
	if c.service == nil {
		return errors.New("remove command requires service")
	}
	ctx = dashboard.ContextWithActivity(ctx, dashboard.ActivityContext{
		ActorID:  msg.ActorID,
		UserID:   msg.UserID,
		TenantID: msg.TenantID,
	})
	if err := c.service.RemoveWidget(ctx, msg.WidgetID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.widget.remove", map[string]any{"widget_id": msg.WidgetID})
	return nil
}
