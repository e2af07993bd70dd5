// Package usersink bridges activity events into a go-users activity log.
package usersink

import (
	"context"

	"github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"

	"github.com/shoppulse/pulse/pkg/activity"
)

// Sink is the go-users activity log surface the hook writes to.
type Sink interface {
	Log(ctx context.Context, record types.ActivityRecord) error
}

// Hook maps activity events onto go-users activity records.
type Hook struct {
	Sink Sink
}

// Notify converts and logs the event. Events without a verb or a configured
// sink are skipped.
func (h Hook) Notify(ctx context.Context, evt activity.Event) error {
	if h.Sink == nil {
		return nil
	}
	evt = activity.NormalizeEvent(evt)
	if evt.Verb == "" {
		return nil
	}
	record := types.ActivityRecord{
		ActorID:    parseUUID(evt.ActorID),
		UserID:     parseUUID(evt.UserID),
		TenantID:   parseUUID(evt.TenantID),
		Verb:       evt.Verb,
		ObjectType: evt.ObjectType,
		ObjectID:   evt.ObjectID,
		Channel:    evt.Channel,
		OccurredAt: evt.OccurredAt,
		Data:       recordData(evt),
	}
	return h.Sink.Log(ctx, record)
}

func recordData(evt activity.Event) map[string]any {
	data := make(map[string]any, len(evt.Metadata)+2)
	for key, value := range evt.Metadata {
		data[key] = value
	}
	if evt.DefinitionCode != "" {
		data["definition_code"] = evt.DefinitionCode
	}
	if len(evt.Recipients) > 0 {
		data["recipients"] = evt.Recipients
	}
	return data
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
