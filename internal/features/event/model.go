package event

import (
	"strings"
	"time"

	"club-sync/internal/spond"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// localIDPrefix marks a temporary identifier assigned to events created
// locally before Spond has seen them. The prefix is replaced by the remote id
// on the first successful push.
const localIDPrefix = "local-"

// Event is the cached copy of one Spond event, plus the local sync state.
type Event struct {
	ID primitive.ObjectID `json:"id" bson:"_id,omitempty"`

	// Spond event id. Unique. Carries the local- prefix until first push.
	SpondID string `json:"spond_id" bson:"spond_id"`

	Heading     string `json:"heading" bson:"heading"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	EventType   string `json:"event_type" bson:"event_type"` // EVENT, RECURRING, AVAILABILITY

	StartTime   *time.Time `json:"start_time" bson:"start_time"`
	EndTime     *time.Time `json:"end_time" bson:"end_time"`
	CreatedTime *time.Time `json:"created_time,omitempty" bson:"created_time,omitempty"`
	InviteTime  *time.Time `json:"invite_time,omitempty" bson:"invite_time,omitempty"`

	Cancelled bool `json:"cancelled" bson:"cancelled"`
	Hidden    bool `json:"hidden" bson:"hidden"`

	LocationAddress   string   `json:"location_address,omitempty" bson:"location_address,omitempty"`
	LocationLatitude  *float64 `json:"location_latitude,omitempty" bson:"location_latitude,omitempty"`
	LocationLongitude *float64 `json:"location_longitude,omitempty" bson:"location_longitude,omitempty"`

	MaxAccepted int `json:"max_accepted" bson:"max_accepted"`

	// Canonical attendance answers, normalized from the raw payload.
	Responses spond.ResponseSet `json:"responses,omitempty" bson:"responses,omitempty"`

	// Last-seen full remote representation. Fields not modeled above (owning
	// group id among them) are read out of here.
	RawData spond.RawRecord `json:"raw_data,omitempty" bson:"raw_data,omitempty"`

	SyncStatus   Status     `json:"sync_status" bson:"sync_status"`
	SyncError    string     `json:"sync_error,omitempty" bson:"sync_error,omitempty"`
	LastSyncedAt *time.Time `json:"last_synced_at,omitempty" bson:"last_synced_at,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// GroupID is the owning group id, extracted best-effort from the raw payload.
func (e *Event) GroupID() (string, bool) {
	if e.RawData == nil {
		return "", false
	}
	return e.RawData.GroupID()
}

// NewLocalID mints a temporary identifier for a locally created event.
func NewLocalID() string {
	return localIDPrefix + uuid.NewString()
}

// IsLocalID reports whether id is a temporary local identifier.
func IsLocalID(id string) bool {
	return strings.HasPrefix(id, localIDPrefix)
}

// Filters narrows event list queries.
type Filters struct {
	EventType        string
	IncludeCancelled bool
	IncludeHidden    bool
	StartDate        *time.Time
	EndDate          *time.Time
	Search           string
	SyncStatus       Status
}

// Stats is the aggregate event summary exposed to dashboards.
type Stats struct {
	TotalEvents     int64            `json:"total_events"`
	UpcomingEvents  int64            `json:"upcoming_events"`
	PastEvents      int64            `json:"past_events"`
	CancelledEvents int64            `json:"cancelled_events"`
	EventsByType    map[string]int64 `json:"events_by_type"`
}
