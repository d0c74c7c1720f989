package group

import (
	"fmt"
	"time"

	"club-sync/internal/spond"
)

// Reconcile merges one raw remote group into the existing local record. The
// second return reports whether the caller must create rather than update.
func Reconcile(raw spond.RawRecord, existing *Group, now time.Time) (*Group, bool, error) {
	spondID, ok := raw.Str("id")
	if !ok || spondID == "" {
		return nil, false, fmt.Errorf("group record missing id")
	}

	name, _ := raw.Str("name")
	description, _ := raw.Str("description")
	roles, _ := raw.Maps("roles")
	subgroups, _ := raw.Maps("subGroups")
	fieldDefs, _ := raw.Maps("fields")

	memberCount := 0
	if members, ok := raw.Maps("members"); ok {
		memberCount = len(members)
	}

	merged := &Group{
		SpondID:      spondID,
		Name:         name,
		Description:  description,
		Roles:        roles,
		Subgroups:    subgroups,
		FieldDefs:    fieldDefs,
		MemberCount:  memberCount,
		RawData:      raw,
		LastSyncedAt: &now,
		UpdatedAt:    now,
	}

	if existing == nil {
		merged.CreatedAt = now
		return merged, true, nil
	}

	merged.ID = existing.ID
	merged.CreatedAt = existing.CreatedAt
	return merged, false, nil
}
