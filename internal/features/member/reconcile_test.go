package member

import (
	"testing"
	"time"

	"club-sync/internal/spond"

	"go.uber.org/zap"
)

func TestReconcileNewMember(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	raw := spond.RawRecord{
		"id":          "m1",
		"createdTime": "2024-08-01T09:00:00Z",
		"roles":       []interface{}{"role-1"},
		"subGroups":   []interface{}{"sub-1", "sub-2"},
		"profile": map[string]interface{}{
			"id":          "p1",
			"firstName":   "Kari",
			"lastName":    "Nordmann",
			"email":       "kari@example.com",
			"phoneNumber": "+4712345678",
		},
	}

	m, created, err := Reconcile(raw, "grp-1", nil, now, zap.NewNop())
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if !created {
		t.Fatal("expected created=true for unseen id")
	}
	if m.SpondID != "m1" {
		t.Errorf("SpondID = %q, top-level id wins", m.SpondID)
	}
	if m.GroupID != "grp-1" {
		t.Errorf("GroupID = %q", m.GroupID)
	}
	if m.FullName() != "Kari Nordmann" {
		t.Errorf("FullName = %q", m.FullName())
	}
	if m.Email != "kari@example.com" || m.PhoneNumber != "+4712345678" {
		t.Errorf("contact = %q / %q", m.Email, m.PhoneNumber)
	}
	if len(m.SubgroupUIDs) != 2 {
		t.Errorf("SubgroupUIDs = %v", m.SubgroupUIDs)
	}
	if m.MemberCreatedTime == nil || m.MemberCreatedTime.Year() != 2024 {
		t.Errorf("MemberCreatedTime = %v", m.MemberCreatedTime)
	}
}

func TestReconcileProfileIDFallback(t *testing.T) {
	raw := spond.RawRecord{
		"profile": map[string]interface{}{
			"id":        "p9",
			"firstName": "Ola",
		},
	}

	m, _, err := Reconcile(raw, "grp-1", nil, time.Now(), zap.NewNop())
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if m.SpondID != "p9" {
		t.Errorf("SpondID = %q, want profile id fallback", m.SpondID)
	}
}

func TestReconcileTopLevelNameFallback(t *testing.T) {
	raw := spond.RawRecord{
		"id":        "m2",
		"firstName": "Per",
		"lastName":  "Hansen",
	}

	m, _, err := Reconcile(raw, "", nil, time.Now(), zap.NewNop())
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if m.FirstName != "Per" || m.LastName != "Hansen" {
		t.Errorf("name = %q %q", m.FirstName, m.LastName)
	}
}

func TestReconcileMissingID(t *testing.T) {
	if _, _, err := Reconcile(spond.RawRecord{"firstName": "Nobody"}, "", nil, time.Now(), zap.NewNop()); err == nil {
		t.Fatal("expected error for missing id")
	}
}

func TestReconcileBadCreatedTimeDropped(t *testing.T) {
	raw := spond.RawRecord{"id": "m3", "createdTime": "garbage"}

	m, _, err := Reconcile(raw, "", nil, time.Now(), zap.NewNop())
	if err != nil {
		t.Fatalf("bad timestamp must not fail the record: %v", err)
	}
	if m.MemberCreatedTime != nil {
		t.Errorf("MemberCreatedTime = %v, want nil", m.MemberCreatedTime)
	}
}

func TestReconcileExistingKeepsIdentity(t *testing.T) {
	createdAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	existing := &Member{SpondID: "m4", FirstName: "Old", CreatedAt: createdAt}

	m, created, err := Reconcile(spond.RawRecord{"id": "m4", "firstName": "New"}, "grp-2", existing, time.Now(), zap.NewNop())
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if created {
		t.Fatal("expected created=false")
	}
	if m.FirstName != "New" {
		t.Errorf("FirstName = %q, remote should win", m.FirstName)
	}
	if !m.CreatedAt.Equal(createdAt) {
		t.Errorf("CreatedAt = %v, want preserved", m.CreatedAt)
	}
}
