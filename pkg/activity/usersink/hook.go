// Package usersink forwards board activity into a go-users activity log.
package usersink

import (
	"context"

	"github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"

	"github.com/goliatone/go-kpiboard/pkg/activity"
)

// Sink is the subset of the go-users activity logger the hook needs.
type Sink interface {
	Log(ctx context.Context, record types.ActivityRecord) error
}

// Hook adapts activity events into go-users activity records.
type Hook struct {
	Sink Sink
}

// Notify maps the event and writes it to the sink. Events without the
// minimum identifying fields, and hooks without a sink, are skipped.
func (h Hook) Notify(ctx context.Context, evt activity.Event) error {
	if h.Sink == nil {
		return nil
	}
	normalized := activity.NormalizeEvent(evt)
	if !normalized.Valid() {
		return nil
	}

	record := types.ActivityRecord{
		Verb:       normalized.Verb,
		ObjectType: normalized.ObjectType,
		ObjectID:   normalized.ObjectID,
		Channel:    normalized.Channel,
		OccurredAt: normalized.OccurredAt,
	}
	record.ActorID = parseUUID(normalized.ActorID)
	record.UserID = parseUUID(normalized.UserID)
	record.TenantID = parseUUID(normalized.TenantID)

	data := make(map[string]any, len(normalized.Metadata)+2)
	for k, v := range normalized.Metadata {
		data[k] = v
	}
	if normalized.DefinitionCode != "" {
		data["definition_code"] = normalized.DefinitionCode
	}
	if len(normalized.Recipients) > 0 {
		data["recipients"] = normalized.Recipients
	}
	if len(data) > 0 {
		record.Data = data
	}

	return h.Sink.Log(ctx, record)
}

func parseUUID(value string) uuid.UUID {
	if value == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil
	}
	return id
}
