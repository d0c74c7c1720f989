package group

import (
	"testing"
	"time"

	"club-sync/internal/spond"
)

func TestReconcileNewGroup(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	raw := spond.RawRecord{
		"id":          "grp-1",
		"name":        "U14 Boys",
		"description": "Youth squad",
		"subGroups": []interface{}{
			map[string]interface{}{"id": "sub-1", "name": "Keepers"},
		},
		"members": []interface{}{
			map[string]interface{}{"id": "m1"},
			map[string]interface{}{"id": "m2"},
		},
	}

	g, created, err := Reconcile(raw, nil, now)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if !created {
		t.Fatal("expected created=true for unseen id")
	}
	if g.SpondID != "grp-1" || g.Name != "U14 Boys" {
		t.Errorf("got %q / %q", g.SpondID, g.Name)
	}
	if g.MemberCount != 2 {
		t.Errorf("MemberCount = %d, want 2", g.MemberCount)
	}
	if len(g.Subgroups) != 1 {
		t.Errorf("Subgroups = %d, want 1", len(g.Subgroups))
	}
	if g.LastSyncedAt == nil || !g.LastSyncedAt.Equal(now) {
		t.Errorf("LastSyncedAt = %v", g.LastSyncedAt)
	}
}

func TestReconcileMissingID(t *testing.T) {
	if _, _, err := Reconcile(spond.RawRecord{"name": "No ID"}, nil, time.Now()); err == nil {
		t.Fatal("expected error for missing id")
	}
}

func TestReconcileExistingKeepsIdentity(t *testing.T) {
	createdAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	existing := &Group{SpondID: "grp-2", Name: "Old Name", CreatedAt: createdAt}

	g, created, err := Reconcile(spond.RawRecord{"id": "grp-2", "name": "New Name"}, existing, time.Now())
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if created {
		t.Fatal("expected created=false for known id")
	}
	if g.Name != "New Name" {
		t.Errorf("Name = %q, remote should win", g.Name)
	}
	if !g.CreatedAt.Equal(createdAt) {
		t.Errorf("CreatedAt = %v, want preserved", g.CreatedAt)
	}
}
