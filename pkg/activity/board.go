package activity

import (
	"context"

	"github.com/goliatone/go-kpiboard/components/kpiboard"
)

// BoardHook records board change events through an Emitter. It implements
// kpiboard.RefreshHook so it can sit next to broadcast hooks on a board.
type BoardHook struct {
	Emitter *Emitter
}

var _ kpiboard.RefreshHook = (*BoardHook)(nil)

// BoardUpdated maps the board event into an activity event. Actor, user,
// and tenant identifiers come from the request context when present.
func (h *BoardHook) BoardUpdated(ctx context.Context, event kpiboard.BoardEvent) error {
	if h == nil || !h.Emitter.Enabled() {
		return nil
	}

	meta := kpiboard.ActivityFrom(ctx)
	objectType, objectID := "board", event.Department
	if event.KpiID != "" {
		objectType, objectID = "kpi", event.KpiID
	}

	evt := Event{
		Verb:       "board." + event.Reason,
		ActorID:    meta.ActorID,
		UserID:     meta.UserID,
		TenantID:   meta.TenantID,
		ObjectType: objectType,
		ObjectID:   objectID,
		Metadata: map[string]any{
			"department": event.Department,
			"companyId":  event.CompanyID,
		},
	}
	if event.Chart != "" {
		evt.Metadata["chartType"] = string(event.Chart)
	}
	return h.Emitter.Emit(ctx, evt)
}
