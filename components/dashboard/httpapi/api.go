package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	gocommand "github.com/goliatone/go-command"
	"github.com/shoppulse/pulse/components/dashboard"
	"github.com/shoppulse/pulse/components/dashboard/commands"
)

// Executor is the command surface transports invoke. CommandExecutor is the
// default implementation; hosts can substitute their own dispatcher.
type Executor interface {
	Assign(ctx context.Context, msg dashboard.AddWidgetRequest) error
	Remove(ctx context.Context, msg commands.RemoveWidgetInput) error
	Update(ctx context.Context, msg commands.UpdateWidgetInput) error
	Reorder(ctx context.Context, msg commands.ReorderWidgetsInput) error
	Refresh(ctx context.Context, msg commands.RefreshWidgetInput) error
	Preferences(ctx context.Context, msg commands.SavePreferencesInput) error
	WidgetOrder(ctx context.Context, msg commands.SaveWidgetOrderInput) error
	ToggleTheme(ctx context.Context, msg commands.ToggleThemeInput) error
	SetLayoutLock(ctx context.Context, msg commands.SetLayoutLockInput) error
}

// CommandExecutor adapts go-command commanders to the Executor interface.
// Unset commanders report a configuration error instead of panicking.
type CommandExecutor struct {
	AssignCommander        gocommand.Commander[dashboard.AddWidgetRequest]
	RemoveCommander        gocommand.Commander[commands.RemoveWidgetInput]
	UpdateCommander        gocommand.Commander[commands.UpdateWidgetInput]
	ReorderCommander       gocommand.Commander[commands.ReorderWidgetsInput]
	RefreshCommander       gocommand.Commander[commands.RefreshWidgetInput]
	PreferencesCommander   gocommand.Commander[commands.SavePreferencesInput]
	WidgetOrderCommander   gocommand.Commander[commands.SaveWidgetOrderInput]
	ToggleThemeCommander   gocommand.Commander[commands.ToggleThemeInput]
	SetLayoutLockCommander gocommand.Commander[commands.SetLayoutLockInput]
}

var _ Executor = (*CommandExecutor)(nil)

func (e *CommandExecutor) Assign(ctx context.Context, msg dashboard.AddWidgetRequest) error {
	if e.AssignCommander == nil {
		return errors.New("httpapi: assign commander not configured")
	}
	return e.AssignCommander.Execute(ctx, msg)
}

func (e *CommandExecutor) Remove(ctx context.Context, msg commands.RemoveWidgetInput) error {
	if e.RemoveCommander == nil {
		return errors.New("httpapi: remove commander not configured")
	}
	return e.RemoveCommander.Execute(ctx, msg)
}

func (e *CommandExecutor) Update(ctx context.Context, msg commands.UpdateWidgetInput) error {
	if e.UpdateCommander == nil {
		return errors.New("httpapi: update commander not configured")
	}
	return e.UpdateCommander.Execute(ctx, msg)
}

func (e *CommandExecutor) Reorder(ctx context.Context, msg commands.ReorderWidgetsInput) error {
	if e.ReorderCommander == nil {
		return errors.New("httpapi: reorder commander not configured")
	}
	return e.ReorderCommander.Execute(ctx, msg)
}

func (e *CommandExecutor) Refresh(ctx context.Context, msg commands.RefreshWidgetInput) error {
	if e.RefreshCommander == nil {
		return errors.New("httpapi: refresh commander not configured")
	}
	return e.RefreshCommander.Execute(ctx, msg)
}

func (e *CommandExecutor) Preferences(ctx context.Context, msg commands.SavePreferencesInput) error {
	if e.PreferencesCommander == nil {
		return errors.New("httpapi: preferences commander not configured")
	}
	return e.PreferencesCommander.Execute(ctx, msg)
}

func (e *CommandExecutor) WidgetOrder(ctx context.Context, msg commands.SaveWidgetOrderInput) error {
	if e.WidgetOrderCommander == nil {
		return errors.New("httpapi: widget order commander not configured")
	}
	return e.WidgetOrderCommander.Execute(ctx, msg)
}

func (e *CommandExecutor) ToggleTheme(ctx context.Context, msg commands.ToggleThemeInput) error {
	if e.ToggleThemeCommander == nil {
		return errors.New("httpapi: theme commander not configured")
	}
	return e.ToggleThemeCommander.Execute(ctx, msg)
}

func (e *CommandExecutor) SetLayoutLock(ctx context.Context, msg commands.SetLayoutLockInput) error {
	if e.SetLayoutLockCommander == nil {
		return errors.New("httpapi: layout lock commander not configured")
	}
	return e.SetLayoutLockCommander.Execute(ctx, msg)
}

// Handlers exposes net/http endpoints backed by shared commands for hosts that
// mount the dashboard without go-router.
type Handlers struct {
	Assign      gocommand.Commander[dashboard.AddWidgetRequest]
	Remove      gocommand.Commander[commands.RemoveWidgetInput]
	Update      gocommand.Commander[commands.UpdateWidgetInput]
	Reorder     gocommand.Commander[commands.ReorderWidgetsInput]
	Refresh     gocommand.Commander[commands.RefreshWidgetInput]
	Preferences gocommand.Commander[commands.SavePreferencesInput]
	WidgetOrder gocommand.Commander[commands.SaveWidgetOrderInput]
}

func (h *Handlers) HandleAssignWidget(w http.ResponseWriter, r *http.Request) {
	var payload dashboard.AddWidgetRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Assign.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) HandleRemoveWidget(w http.ResponseWriter, r *http.Request, widgetID string) {
	input := commands.RemoveWidgetInput{WidgetID: widgetID}
	if err := h.Remove.Execute(r.Context(), input); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleUpdateWidget(w http.ResponseWriter, r *http.Request, widgetID string) {
	var payload commands.UpdateWidgetInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	payload.WidgetID = widgetID
	if err := h.Update.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleReorderWidgets(w http.ResponseWriter, r *http.Request) {
	var payload commands.ReorderWidgetsInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Reorder.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleRefreshWidget(w http.ResponseWriter, r *http.Request) {
	var payload commands.RefreshWidgetInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Refresh.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handlers) HandleSavePreferences(w http.ResponseWriter, r *http.Request) {
	var payload commands.SavePreferencesInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Preferences.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleSaveWidgetOrder(w http.ResponseWriter, r *http.Request) {
	var payload commands.SaveWidgetOrderInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.WidgetOrder.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
