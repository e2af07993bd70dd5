package dashboard

import "context"

// Telemetry receives dashboard events: widget adds and removals, provider
// failures, layout and preference saves. Hosts forward them to their own
// metrics pipeline. Event names are namespaced "dashboard.*".
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

// TelemetryFunc adapts a plain function to the Telemetry interface.
type TelemetryFunc func(ctx context.Context, event string, payload map[string]any)

// Record calls f.
func (f TelemetryFunc) Record(ctx context.Context, event string, payload map[string]any) {
	f(ctx, event, payload)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

// normalizeTelemetry keeps the service free of nil checks at call sites.
func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}
