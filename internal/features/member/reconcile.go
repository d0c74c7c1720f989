package member

import (
	"fmt"
	"time"

	"club-sync/internal/spond"

	"go.uber.org/zap"
)

// Reconcile merges one raw remote member into the existing local record.
// groupID is the Spond id of the group the record was fetched from. The
// member id may live at the top level or inside the profile; either works.
func Reconcile(raw spond.RawRecord, groupID string, existing *Member, now time.Time, log *zap.Logger) (*Member, bool, error) {
	profile, _ := raw.Map("profile")

	spondID, _ := raw.Str("id")
	if spondID == "" && profile != nil {
		spondID, _ = profile.Str("id")
	}
	if spondID == "" {
		return nil, false, fmt.Errorf("member record missing id")
	}

	// Name fields prefer the profile but fall back to the member itself.
	firstName, ok := profile.Str("firstName")
	if !ok {
		firstName, _ = raw.Str("firstName")
	}
	lastName, ok := profile.Str("lastName")
	if !ok {
		lastName, _ = raw.Str("lastName")
	}

	email, _ := profile.Str("email")
	phone, _ := profile.Str("phoneNumber")
	roleUIDs, _ := raw.StrList("roles")
	subgroupUIDs, _ := raw.StrList("subGroups")
	fields, _ := raw.Map("fields")

	createdTime, err := raw.Time("createdTime")
	if err != nil {
		log.Warn("failed to parse member created time",
			zap.String("spond_id", spondID),
			zap.Error(err))
		createdTime = nil
	}

	merged := &Member{
		SpondID:           spondID,
		GroupID:           groupID,
		FirstName:         firstName,
		LastName:          lastName,
		Email:             email,
		PhoneNumber:       phone,
		Profile:           profile,
		MemberCreatedTime: createdTime,
		RoleUIDs:          roleUIDs,
		SubgroupUIDs:      subgroupUIDs,
		Fields:            fields,
		RawData:           raw,
		LastSyncedAt:      &now,
		UpdatedAt:         now,
	}

	if existing == nil {
		merged.CreatedAt = now
		return merged, true, nil
	}

	merged.ID = existing.ID
	merged.CreatedAt = existing.CreatedAt
	return merged, false, nil
}
