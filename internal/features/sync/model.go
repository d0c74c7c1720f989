package sync

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Kind names one syncable entity family.
type Kind string

const (
	KindEvent  Kind = "events"
	KindGroup  Kind = "groups"
	KindMember Kind = "members"
)

// ErrUnknownKind is returned for a sync kind nothing is registered for.
var ErrUnknownKind = errors.New("unknown sync kind")

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindEvent, KindGroup, KindMember:
		return Kind(s), nil
	}
	return "", ErrUnknownKind
}

const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// Run records one sync execution. Created at run start, mutated only by the
// orchestrator that owns it, immutable once status leaves running.
type Run struct {
	ID   primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Kind Kind               `json:"sync_type" bson:"sync_type"`

	Status  string `json:"status" bson:"status"`
	Success bool   `json:"success" bson:"success"`

	StartedAt   time.Time  `json:"started_at" bson:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty" bson:"completed_at,omitempty"`

	Fetched int `json:"items_fetched" bson:"items_fetched"`
	Created int `json:"items_created" bson:"items_created"`
	Updated int `json:"items_updated" bson:"items_updated"`
	Errors  int `json:"items_errors" bson:"items_errors"`

	ErrorMessage string `json:"error_message,omitempty" bson:"error_message,omitempty"`
}
