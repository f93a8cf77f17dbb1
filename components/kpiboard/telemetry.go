package kpiboard

import "context"

// Telemetry records board events for observability.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}

type noopRefreshHook struct{}

func (noopRefreshHook) BoardUpdated(context.Context, BoardEvent) error {
	return nil
}
