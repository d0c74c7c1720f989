package event

import (
	"testing"
	"time"

	"club-sync/internal/spond"

	"go.uber.org/zap"
)

func TestReconcileNewEvent(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	raw := spond.RawRecord{
		"id":             "ev-1",
		"heading":        "Saturday Match",
		"description":    "Home game",
		"type":           "EVENT",
		"startTimestamp": "2026-03-07T14:00:00Z",
		"endTimestamp":   "2026-03-07T16:00:00Z",
		"cancelled":      false,
		"maxAccepted":    float64(22),
		"location": map[string]interface{}{
			"address":   "Main Pitch",
			"latitude":  59.91,
			"longitude": 10.75,
		},
		"responses": map[string]interface{}{
			"acceptedIds": []interface{}{"m1", "m2"},
			"declinedIds": []interface{}{"m3"},
		},
	}

	ev, created, err := Reconcile(raw, nil, nil, now, zap.NewNop())
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if !created {
		t.Fatal("expected created=true for unseen id")
	}
	if ev.SpondID != "ev-1" {
		t.Errorf("SpondID = %q, want ev-1", ev.SpondID)
	}
	if ev.Heading != "Saturday Match" {
		t.Errorf("Heading = %q", ev.Heading)
	}
	if ev.SyncStatus != StatusSynced {
		t.Errorf("SyncStatus = %s, want %s", ev.SyncStatus, StatusSynced)
	}
	if ev.StartTime == nil || !ev.StartTime.Equal(time.Date(2026, 3, 7, 14, 0, 0, 0, time.UTC)) {
		t.Errorf("StartTime = %v", ev.StartTime)
	}
	if ev.MaxAccepted != 22 {
		t.Errorf("MaxAccepted = %d, want 22", ev.MaxAccepted)
	}
	if ev.LocationAddress != "Main Pitch" {
		t.Errorf("LocationAddress = %q", ev.LocationAddress)
	}
	counts := ev.Responses.CountByAnswer()
	if counts[spond.AnswerAccepted] != 2 || counts[spond.AnswerDeclined] != 1 {
		t.Errorf("response counts = %v, want 2 accepted / 1 declined", counts)
	}
	if ev.LastSyncedAt == nil || !ev.LastSyncedAt.Equal(now) {
		t.Errorf("LastSyncedAt = %v, want %v", ev.LastSyncedAt, now)
	}
}

func TestReconcileMissingID(t *testing.T) {
	_, _, err := Reconcile(spond.RawRecord{"heading": "No ID"}, nil, nil, time.Now(), zap.NewNop())
	if err == nil {
		t.Fatal("expected error for missing id")
	}
}

func TestReconcileDefaults(t *testing.T) {
	ev, _, err := Reconcile(spond.RawRecord{"id": "ev-2"}, nil, nil, time.Now(), zap.NewNop())
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if ev.Heading != "Untitled Event" {
		t.Errorf("Heading = %q, want Untitled Event", ev.Heading)
	}
	if ev.EventType != "EVENT" {
		t.Errorf("EventType = %q, want EVENT", ev.EventType)
	}
	if ev.Responses == nil {
		t.Error("Responses should never be nil")
	}
}

func TestReconcileBadTimestampDropped(t *testing.T) {
	raw := spond.RawRecord{
		"id":             "ev-3",
		"heading":        "Training",
		"startTimestamp": "not-a-time",
	}
	ev, _, err := Reconcile(raw, nil, nil, time.Now(), zap.NewNop())
	if err != nil {
		t.Fatalf("bad timestamp must not fail the record: %v", err)
	}
	if ev.StartTime != nil {
		t.Errorf("StartTime = %v, want nil", ev.StartTime)
	}
}

func TestReconcileExistingPreservesIdentity(t *testing.T) {
	createdAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	existing := &Event{
		SpondID:    "ev-4",
		Heading:    "Old Heading",
		SyncStatus: StatusPending,
		CreatedAt:  createdAt,
	}
	now := time.Now().UTC()

	ev, created, err := Reconcile(spond.RawRecord{"id": "ev-4", "heading": "New Heading"}, existing, nil, now, zap.NewNop())
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if created {
		t.Fatal("expected created=false for known id")
	}
	if ev.Heading != "New Heading" {
		t.Errorf("Heading = %q, remote should win", ev.Heading)
	}
	if !ev.CreatedAt.Equal(createdAt) {
		t.Errorf("CreatedAt = %v, want preserved %v", ev.CreatedAt, createdAt)
	}
	if ev.SyncStatus != StatusSynced {
		t.Errorf("SyncStatus = %s, want %s after forward sync", ev.SyncStatus, StatusSynced)
	}
}

func TestReconcileLocalOnlyUntouchedStatus(t *testing.T) {
	existing := &Event{
		SpondID:    "local-abc",
		Heading:    "Draft",
		SyncStatus: StatusLocalOnly,
		SyncError:  "previous push failed",
	}

	ev, _, err := Reconcile(spond.RawRecord{"id": "local-abc", "heading": "Draft"}, existing, nil, time.Now(), zap.NewNop())
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if ev.SyncStatus != StatusLocalOnly {
		t.Errorf("SyncStatus = %s, local_only must survive forward sync", ev.SyncStatus)
	}
	if ev.SyncError != "previous push failed" {
		t.Errorf("SyncError = %q, want preserved", ev.SyncError)
	}
}
