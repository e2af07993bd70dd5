package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/shoppulse/pulse/components/dashboard"
)

type assignService interface {
	AddWidget(ctx context.Context, req dashboard.AddWidgetRequest) error
}

// AssignWidgetCommand places a widget on a dashboard page. It is the command
// behind POST /app/widgets for both the go-router and net/http transports.
type AssignWidgetCommand struct {
	service   assignService
	telemetry Telemetry
}

// NewAssignWidgetCommand creates a command instance.
func NewAssignWidgetCommand(service assignService, telemetry Telemetry) *AssignWidgetCommand {
	return &AssignWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[dashboard.AddWidgetRequest] = (*AssignWidgetCommand)(nil)

// Execute validates and delegates to the dashboard service, then records the
// assignment for operators.
func (c *AssignWidgetCommand) Execute(ctx context.Context, msg dashboard.AddWidgetRequest) error {
	if c.service == nil {
		return errors.New("assign command requires service")
	}
	if err := c.service.AddWidget(ctx, msg); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.widget.assign", map[string]any{
		"definition_id": msg.DefinitionID,
		"page_code":     msg.PageCode,
	})
	return nil
}
