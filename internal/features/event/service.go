package event

import (
	"context"
	"errors"
	"fmt"
	"time"

	"club-sync/internal/spond"

	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned when the event id resolves to nothing.
	ErrNotFound = errors.New("event not found")
	// ErrNoGroup rejects pushing a local-only event with no resolvable
	// owning group. Surfaced before any remote call; not retried.
	ErrNoGroup = errors.New("event has no owning group, cannot push to spond")
	// ErrNotSynced rejects response updates on events that have never
	// been pushed to Spond; there is no remote record to answer on.
	ErrNotSynced = errors.New("event has no remote counterpart")
)

// CreateInput is a locally authored event.
type CreateInput struct {
	Heading           string     `json:"heading"`
	Description       string     `json:"description"`
	EventType         string     `json:"event_type"`
	StartTime         *time.Time `json:"start_time"`
	EndTime           *time.Time `json:"end_time"`
	MaxAccepted       int        `json:"max_accepted"`
	GroupID           string     `json:"group_id"`
	LocationAddress   string     `json:"location_address"`
	LocationLatitude  *float64   `json:"location_latitude"`
	LocationLongitude *float64   `json:"location_longitude"`
}

// UpdateInput carries a partial local edit. Nil fields are left untouched.
type UpdateInput struct {
	Heading     *string    `json:"heading"`
	Description *string    `json:"description"`
	Cancelled   *bool      `json:"cancelled"`
	Hidden      *bool      `json:"hidden"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	MaxAccepted *int       `json:"max_accepted"`
}

type EventService interface {
	Get(ctx context.Context, id string) (*Event, error)
	GetBySpondID(ctx context.Context, spondID string) (*Event, error)
	List(ctx context.Context, filters Filters, limit, skip int64) ([]Event, int64, error)
	CreateLocal(ctx context.Context, input CreateInput) (*Event, error)
	Update(ctx context.Context, id string, input UpdateInput) (*Event, error)
	Delete(ctx context.Context, id string) error
	PushToSpond(ctx context.Context, id string) (*Event, error)
	UpdateResponse(ctx context.Context, id, memberID, answer string) (*Event, error)
	Stats(ctx context.Context) (*Stats, error)
	AttendanceXLSX(ctx context.Context, id string) ([]byte, string, error)
}

type EventServiceImpl struct {
	repo   EventRepository
	spond  spond.Api
	logger *zap.Logger
}

func NewEventService(repo EventRepository, api spond.Api, logger *zap.Logger) EventService {
	return &EventServiceImpl{
		repo:   repo,
		spond:  api,
		logger: logger,
	}
}

func (s *EventServiceImpl) Get(ctx context.Context, id string) (*Event, error) {
	ev, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, ErrNotFound
	}
	return ev, nil
}

func (s *EventServiceImpl) GetBySpondID(ctx context.Context, spondID string) (*Event, error) {
	ev, err := s.repo.GetBySpondID(ctx, spondID)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, ErrNotFound
	}
	return ev, nil
}

func (s *EventServiceImpl) List(ctx context.Context, filters Filters, limit, skip int64) ([]Event, int64, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.repo.List(ctx, filters, limit, skip)
}

// CreateLocal stores a new event that Spond has not seen. The record gets a
// temporary local id and status local_only together; that pairing is the
// write-time integrity rule for everything downstream.
func (s *EventServiceImpl) CreateLocal(ctx context.Context, input CreateInput) (*Event, error) {
	if input.Heading == "" {
		return nil, fmt.Errorf("heading is required")
	}
	eventType := input.EventType
	if eventType == "" {
		eventType = "EVENT"
	}

	now := time.Now().UTC()
	ev := &Event{
		SpondID:           NewLocalID(),
		Heading:           input.Heading,
		Description:       input.Description,
		EventType:         eventType,
		StartTime:         input.StartTime,
		EndTime:           input.EndTime,
		MaxAccepted:       input.MaxAccepted,
		LocationAddress:   input.LocationAddress,
		LocationLatitude:  input.LocationLatitude,
		LocationLongitude: input.LocationLongitude,
		Responses:         spond.ResponseSet{},
		SyncStatus:        StatusLocalOnly,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	// The owning group lives in the raw payload, same place a forward sync
	// would put it, so GroupID() works for both origins.
	if input.GroupID != "" {
		ev.RawData = spond.RawRecord{
			"recipients": map[string]interface{}{
				"group": map[string]interface{}{"id": input.GroupID},
			},
		}
	}

	if err := s.repo.Create(ctx, ev); err != nil {
		return nil, err
	}

	s.logger.Info("created local event",
		zap.String("spond_id", ev.SpondID),
		zap.String("heading", ev.Heading))
	return ev, nil
}

// Update applies a local content edit. A synced record transitions to
// pending so the next push knows there is something to send.
func (s *EventServiceImpl) Update(ctx context.Context, id string, input UpdateInput) (*Event, error) {
	ev, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Heading != nil {
		ev.Heading = *input.Heading
	}
	if input.Description != nil {
		ev.Description = *input.Description
	}
	if input.Cancelled != nil {
		ev.Cancelled = *input.Cancelled
	}
	if input.Hidden != nil {
		ev.Hidden = *input.Hidden
	}
	if input.StartTime != nil {
		ev.StartTime = input.StartTime
	}
	if input.EndTime != nil {
		ev.EndTime = input.EndTime
	}
	if input.MaxAccepted != nil {
		ev.MaxAccepted = *input.MaxAccepted
	}

	ev.SyncStatus = NextStatus(ev.SyncStatus, LocalEdit)
	ev.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

// Delete removes the local copy only. Spond is never told.
func (s *EventServiceImpl) Delete(ctx context.Context, id string) error {
	ev, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, ev.ID.Hex())
}

func (s *EventServiceImpl) Stats(ctx context.Context) (*Stats, error) {
	return s.repo.Stats(ctx)
}

// PushToSpond reverse-syncs one event. Records Spond has never seen are
// created there and adopt the remote-assigned id; everything else is an
// update against the existing id, which makes re-pushing unchanged content a
// remote no-op rather than a duplicate create.
func (s *EventServiceImpl) PushToSpond(ctx context.Context, id string) (*Event, error) {
	ev, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// A local- prefixed id only ever appears on records never created
	// remotely (write-time invariant), so it marks a failed first push
	// that must be retried as a create.
	isCreate := ev.SyncStatus == StatusLocalOnly || IsLocalID(ev.SpondID)

	if isCreate {
		groupID, ok := ev.GroupID()
		if !ok {
			// Validation failure: no remote call was attempted, the
			// status stays what it was.
			return nil, ErrNoGroup
		}

		created, err := s.spond.CreateEvent(ctx, buildPushPayload(ev), groupID)
		if err != nil {
			return nil, s.markPushFailed(ctx, ev, err)
		}

		// The temporary local id is discarded for the remote one.
		if remoteID, ok := created.Str("id"); ok && remoteID != "" {
			ev.SpondID = remoteID
		}
		ev.RawData = created
	} else {
		updated, err := s.spond.UpdateEvent(ctx, ev.SpondID, buildPushPayload(ev))
		if err != nil {
			return nil, s.markPushFailed(ctx, ev, err)
		}
		if updated != nil {
			ev.RawData = updated
		}
	}

	now := time.Now().UTC()
	ev.SyncStatus = NextStatus(ev.SyncStatus, PushSucceeded)
	ev.SyncError = ""
	ev.LastSyncedAt = &now
	ev.UpdatedAt = now

	if err := s.repo.Update(ctx, ev); err != nil {
		return nil, err
	}

	s.logger.Info("pushed event to spond",
		zap.String("spond_id", ev.SpondID),
		zap.Bool("created", isCreate))
	return ev, nil
}

// UpdateResponse pushes one member's attendance answer to Spond and applies
// the same answer to the local mirror so queries see it before the next sync.
func (s *EventServiceImpl) UpdateResponse(ctx context.Context, id, memberID, answer string) (*Event, error) {
	ev, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if ev.SyncStatus == StatusLocalOnly || IsLocalID(ev.SpondID) {
		return nil, ErrNotSynced
	}

	if _, err := s.spond.UpdateEventResponse(ctx, ev.SpondID, memberID, answer); err != nil {
		return nil, fmt.Errorf("update response for event %s: %w", ev.SpondID, err)
	}

	canonical := spond.CanonicalAnswer(answer)
	replaced := false
	for i := range ev.Responses {
		if ev.Responses[i].MemberID == memberID {
			ev.Responses[i].Answer = canonical
			replaced = true
			break
		}
	}
	if !replaced {
		ev.Responses = append(ev.Responses, spond.Response{MemberID: memberID, Answer: canonical})
	}
	ev.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, ev); err != nil {
		return nil, err
	}

	s.logger.Info("updated event response",
		zap.String("spond_id", ev.SpondID),
		zap.String("member_id", memberID),
		zap.String("answer", string(canonical)))
	return ev, nil
}

func (s *EventServiceImpl) markPushFailed(ctx context.Context, ev *Event, cause error) error {
	ev.SyncStatus = NextStatus(ev.SyncStatus, PushFailed)
	ev.SyncError = cause.Error()
	ev.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, ev); err != nil {
		s.logger.Error("failed to record push error",
			zap.String("spond_id", ev.SpondID),
			zap.Error(err))
	}

	return fmt.Errorf("push event %s: %w", ev.SpondID, cause)
}

// buildPushPayload maps local fields back onto Spond's wire names.
func buildPushPayload(ev *Event) spond.RawRecord {
	payload := spond.RawRecord{
		"heading":     ev.Heading,
		"spondType":   ev.EventType,
		"maxAccepted": ev.MaxAccepted,
	}
	if ev.Description != "" {
		payload["description"] = ev.Description
	}
	if ev.StartTime != nil {
		payload["startTimestamp"] = ev.StartTime.UTC().Format(time.RFC3339)
	}
	if ev.EndTime != nil {
		payload["endTimestamp"] = ev.EndTime.UTC().Format(time.RFC3339)
	}
	if ev.LocationAddress != "" {
		location := map[string]interface{}{"address": ev.LocationAddress}
		if ev.LocationLatitude != nil {
			location["latitude"] = *ev.LocationLatitude
		}
		if ev.LocationLongitude != nil {
			location["longitude"] = *ev.LocationLongitude
		}
		payload["location"] = location
	}
	return payload
}
