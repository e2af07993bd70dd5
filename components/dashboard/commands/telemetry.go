package commands

import "context"

// Telemetry is the event sink the commands report to. It mirrors the
// dashboard package's Telemetry so one sink can serve both without adapters.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

// normalizeTelemetry lets every command constructor accept a nil sink.
func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}
