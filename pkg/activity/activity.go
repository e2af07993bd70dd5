// Package activity emits structured activity events from dashboard mutations
// so host applications can feed audit logs or notification systems.
package activity

import (
	"context"
	"strings"
	"time"
)

// DefaultChannel is applied to events that do not name a channel.
const DefaultChannel = "dashboard"

// Event describes one recorded action.
type Event struct {
	Verb           string
	ObjectType     string
	ObjectID       string
	ActorID        string
	UserID         string
	TenantID       string
	Channel        string
	DefinitionCode string
	Recipients     []string
	Metadata       map[string]any
	OccurredAt     time.Time
}

// Hook receives normalized activity events.
type Hook interface {
	Notify(ctx context.Context, evt Event) error
}

// HookFunc adapts a function to the Hook interface.
type HookFunc func(ctx context.Context, evt Event) error

// Notify invokes the wrapped function.
func (f HookFunc) Notify(ctx context.Context, evt Event) error {
	return f(ctx, evt)
}

// Hooks fans one event out to every registered hook.
type Hooks []Hook

// Notify normalizes the event and forwards it to each hook. Events without a
// verb are skipped. The first hook error stops the fan-out.
func (h Hooks) Notify(ctx context.Context, evt Event) error {
	evt = NormalizeEvent(evt)
	if evt.Verb == "" {
		return nil
	}
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.Notify(ctx, evt); err != nil {
			return err
		}
	}
	return nil
}

// NormalizeEvent trims identifier fields and deep-copies mutable members so
// hooks cannot mutate the caller's event.
func NormalizeEvent(evt Event) Event {
	out := evt
	out.Verb = strings.TrimSpace(evt.Verb)
	out.ObjectType = strings.TrimSpace(evt.ObjectType)
	out.ObjectID = strings.TrimSpace(evt.ObjectID)
	out.ActorID = strings.TrimSpace(evt.ActorID)
	out.UserID = strings.TrimSpace(evt.UserID)
	out.TenantID = strings.TrimSpace(evt.TenantID)
	out.Channel = strings.TrimSpace(evt.Channel)
	if evt.Metadata != nil {
		out.Metadata = make(map[string]any, len(evt.Metadata))
		for key, value := range evt.Metadata {
			out.Metadata[key] = value
		}
	}
	if evt.Recipients != nil {
		out.Recipients = append([]string(nil), evt.Recipients...)
	}
	return out
}

// CaptureHook records every event it receives. Intended for tests.
type CaptureHook struct {
	Events []Event
}

// Notify appends the event to Events.
func (h *CaptureHook) Notify(_ context.Context, evt Event) error {
	h.Events = append(h.Events, evt)
	return nil
}

// Config controls emission behavior.
type Config struct {
	Enabled bool
	Channel string
}

// Emitter applies configuration defaults before notifying hooks.
type Emitter struct {
	hooks Hooks
	cfg   Config
}

// NewEmitter builds an emitter over the given hooks.
func NewEmitter(hooks Hooks, cfg Config) *Emitter {
	if cfg.Channel == "" {
		cfg.Channel = DefaultChannel
	}
	return &Emitter{hooks: hooks, cfg: cfg}
}

// Enabled reports whether emission is configured and has somewhere to go.
func (e *Emitter) Enabled() bool {
	return e != nil && e.cfg.Enabled && len(e.hooks) > 0
}

// Emit stamps defaults on the event and notifies hooks. Disabled emitters are
// a no-op.
func (e *Emitter) Emit(ctx context.Context, evt Event) error {
	if !e.Enabled() {
		return nil
	}
	if evt.Channel == "" {
		evt.Channel = e.cfg.Channel
	}
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = time.Now().UTC()
	}
	return e.hooks.Notify(ctx, evt)
}
