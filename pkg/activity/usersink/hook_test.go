package usersink

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"

	"github.com/shoppulse/pulse/pkg/activity"
)

type recordingSink struct {
	records []types.ActivityRecord
	err     error
}

func (s *recordingSink) Log(_ context.Context, record types.ActivityRecord) error {
	s.records = append(s.records, record)
	return s.err
}

func TestHookNotifyMapsEvent(t *testing.T) {
	sink := &recordingSink{}
	hook := Hook{Sink: sink}

	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	actorID := uuid.New()
	userID := uuid.New()
	tenantID := uuid.New()
	widgetID := uuid.New().String()

	event := activity.Event{
		Verb:           "dashboard.widget.update",
		ActorID:        actorID.String(),
		UserID:         userID.String(),
		TenantID:       tenantID.String(),
		ObjectType:     "widget_instance",
		ObjectID:       widgetID,
		Channel:        "dashboard",
		DefinitionCode: "pulse.widget.kpi_row",
		Recipients:     []string{"merchant@example.com"},
		Metadata: map[string]any{
			"page_code": "pulse.page.overview",
		},
		OccurredAt: now,
	}

	if err := hook.Notify(context.Background(), event); err != nil {
		t.Fatalf("notify: %v", err)
	}

	if len(sink.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(sink.records))
	}
	record := sink.records[0]
	if record.ActorID != actorID {
		t.Fatalf("expected actor %s got %s", actorID, record.ActorID)
	}
	if record.UserID != userID {
		t.Fatalf("expected user %s got %s", userID, record.UserID)
	}
	if record.TenantID != tenantID {
		t.Fatalf("expected tenant %s got %s", tenantID, record.TenantID)
	}
	if record.Verb != "dashboard.widget.update" || record.ObjectType != "widget_instance" || record.ObjectID != widgetID {
		t.Fatalf("unexpected record payload: %+v", record)
	}
	if record.Channel != "dashboard" {
		t.Fatalf("expected channel dashboard got %q", record.Channel)
	}
	if record.OccurredAt != now {
		t.Fatalf("expected occurred_at %v got %v", now, record.OccurredAt)
	}
	if record.Data["definition_code"] != "pulse.widget.kpi_row" {
		t.Fatalf("expected definition_code metadata got %v", record.Data["definition_code"])
	}
	if record.Data["page_code"] != "pulse.page.overview" {
		t.Fatalf("expected page_code metadata got %v", record.Data["page_code"])
	}
	recipients, ok := record.Data["recipients"].([]string)
	if !ok || len(recipients) != 1 || recipients[0] != "merchant@example.com" {
		t.Fatalf("expected recipients metadata got %v", record.Data["recipients"])
	}
}

func TestHookNotifySkipsMissingVerb(t *testing.T) {
	sink := &recordingSink{}
	hook := Hook{Sink: sink}

	_ = hook.Notify(context.Background(), activity.Event{})

	if len(sink.records) != 0 {
		t.Fatalf("expected no records for empty event, got %d", len(sink.records))
	}
}
