package event

import (
	"fmt"
	"time"

	"club-sync/internal/spond"

	"go.uber.org/zap"
)

// Reconcile merges one raw remote event into the existing local record.
// existing == nil means the remote id has not been seen before; the second
// return reports whether the caller must create rather than update.
//
// A missing remote id is a per-record error, never fatal to the run.
// Unparseable timestamps become nil with a warning. Everything the remote
// sent is preserved verbatim in RawData.
func Reconcile(raw spond.RawRecord, existing *Event, memberLookup map[string]spond.RawRecord, now time.Time, log *zap.Logger) (*Event, bool, error) {
	spondID, ok := raw.Str("id")
	if !ok || spondID == "" {
		return nil, false, fmt.Errorf("event record missing id")
	}

	heading, ok := raw.Str("heading")
	if !ok || heading == "" {
		heading = "Untitled Event"
	}
	description, _ := raw.Str("description")
	eventType, ok := raw.Str("type")
	if !ok || eventType == "" {
		eventType = "EVENT"
	}

	cancelled, _ := raw.Bool("cancelled")
	hidden, _ := raw.Bool("hidden")
	maxAccepted, _ := raw.Int("maxAccepted")

	merged := &Event{
		SpondID:      spondID,
		Heading:      heading,
		Description:  description,
		EventType:    eventType,
		StartTime:    parseTime(raw, "startTimestamp", spondID, log),
		EndTime:      parseTime(raw, "endTimestamp", spondID, log),
		CreatedTime:  parseTime(raw, "createdTime", spondID, log),
		InviteTime:   parseTime(raw, "inviteTime", spondID, log),
		Cancelled:    cancelled,
		Hidden:       hidden,
		MaxAccepted:  maxAccepted,
		RawData:      raw,
		LastSyncedAt: &now,
		UpdatedAt:    now,
	}

	if location, ok := raw.Map("location"); ok {
		merged.LocationAddress, _ = location.Str("address")
		if lat, ok := location.Float("latitude"); ok {
			merged.LocationLatitude = &lat
		}
		if lng, ok := location.Float("longitude"); ok {
			merged.LocationLongitude = &lng
		}
	}

	if fragment, ok := raw.Map("responses"); ok {
		merged.Responses = spond.NormalizeResponses(fragment, memberLookup)
	} else {
		merged.Responses = spond.ResponseSet{}
	}

	if existing == nil {
		// Records arriving from Spond are synced by definition.
		merged.SyncStatus = StatusSynced
		merged.CreatedAt = now
		return merged, true, nil
	}

	merged.ID = existing.ID
	merged.CreatedAt = existing.CreatedAt
	merged.SyncStatus = NextStatus(existing.SyncStatus, ForwardSync)
	if existing.SyncStatus == StatusLocalOnly {
		// Forward sync never touches a local-only record's error state.
		merged.SyncError = existing.SyncError
	}
	return merged, false, nil
}

// parseTime reads an RFC3339 field defensively: an unparseable value is
// logged and dropped, never allowed to fail the record.
func parseTime(raw spond.RawRecord, key, spondID string, log *zap.Logger) *time.Time {
	t, err := raw.Time(key)
	if err != nil {
		log.Warn("failed to parse event timestamp",
			zap.String("spond_id", spondID),
			zap.String("field", key),
			zap.Error(err))
		return nil
	}
	return t
}
