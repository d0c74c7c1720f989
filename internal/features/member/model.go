package member

import (
	"time"

	"club-sync/internal/spond"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Member is the local cache of one Spond group member.
type Member struct {
	ID      primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	SpondID string             `json:"spond_id" bson:"spond_id"`

	// Spond id of the group this member was last seen in.
	GroupID string `json:"group_id,omitempty" bson:"group_id,omitempty"`

	FirstName   string `json:"first_name" bson:"first_name"`
	LastName    string `json:"last_name" bson:"last_name"`
	Email       string `json:"email,omitempty" bson:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty" bson:"phone_number,omitempty"`

	Profile spond.RawRecord `json:"profile,omitempty" bson:"profile,omitempty"`

	MemberCreatedTime *time.Time `json:"member_created_time,omitempty" bson:"member_created_time,omitempty"`

	RoleUIDs     []string        `json:"role_uids,omitempty" bson:"role_uids,omitempty"`
	SubgroupUIDs []string        `json:"subgroup_uids,omitempty" bson:"subgroup_uids,omitempty"`
	Fields       spond.RawRecord `json:"fields,omitempty" bson:"fields,omitempty"`

	RawData spond.RawRecord `json:"raw_data,omitempty" bson:"raw_data,omitempty"`

	LastSyncedAt *time.Time `json:"last_synced_at,omitempty" bson:"last_synced_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" bson:"updated_at"`
}

func (m *Member) FullName() string {
	if m.FirstName == "" {
		return m.LastName
	}
	if m.LastName == "" {
		return m.FirstName
	}
	return m.FirstName + " " + m.LastName
}

// Filters narrows a member listing.
type Filters struct {
	GroupID    string
	SubgroupID string
	Search     string
}
