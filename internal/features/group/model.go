package group

import (
	"time"

	"club-sync/internal/spond"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group is the local cache of one Spond group.
type Group struct {
	ID      primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	SpondID string             `json:"spond_id" bson:"spond_id"`

	Name        string `json:"name" bson:"name"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`

	// Roles, subgroups and custom field definitions are upstream-shaped
	// lists; nothing local interprets them beyond display.
	Roles     []spond.RawRecord `json:"roles,omitempty" bson:"roles,omitempty"`
	Subgroups []spond.RawRecord `json:"subgroups,omitempty" bson:"subgroups,omitempty"`
	FieldDefs []spond.RawRecord `json:"field_defs,omitempty" bson:"field_defs,omitempty"`

	MemberCount int `json:"member_count" bson:"member_count"`

	RawData spond.RawRecord `json:"raw_data,omitempty" bson:"raw_data,omitempty"`

	LastSyncedAt *time.Time `json:"last_synced_at,omitempty" bson:"last_synced_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" bson:"updated_at"`
}
