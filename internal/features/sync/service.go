package sync

import (
	"context"
	"errors"
	"fmt"
	stdsync "sync"
	"time"

	"club-sync/internal/config"
	"club-sync/internal/features/event"
	"club-sync/internal/features/group"
	"club-sync/internal/features/member"
	"club-sync/internal/spond"

	"go.uber.org/zap"
)

// TxnFunc wraps one record's read-reconcile-write so a crash mid-run leaves
// either the previous or the new value, never a torn write.
type TxnFunc func(ctx context.Context, fn func(ctx context.Context) error) error

// Passthrough runs fn directly, with no transaction scope.
func Passthrough(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type SyncService interface {
	Sync(ctx context.Context, kind Kind) (*Run, error)
	SyncEvents(ctx context.Context) (*Run, error)
	SyncGroups(ctx context.Context) (*Run, error)
	SyncMembers(ctx context.Context) (*Run, error)
	History(ctx context.Context, kind Kind, limit int64) ([]Run, error)
	Latest(ctx context.Context, kind Kind) (*Run, error)
}

// ErrSyncInProgress is returned when a run of the same kind is already in
// flight. Every entry point (scheduler tick, manual trigger, direct API call)
// goes through the same per-kind guard.
var ErrSyncInProgress = errors.New("sync already in progress for this kind")

type SyncServiceImpl struct {
	runs    SyncRepository
	events  event.EventRepository
	groups  group.GroupRepository
	members member.MemberRepository
	spond   spond.Api
	txn     TxnFunc
	config  *config.Config
	logger  *zap.Logger

	mu       stdsync.Mutex
	inFlight map[Kind]bool
}

func NewSyncService(
	runs SyncRepository,
	events event.EventRepository,
	groups group.GroupRepository,
	members member.MemberRepository,
	api spond.Api,
	txn TxnFunc,
	cfg *config.Config,
	logger *zap.Logger,
) SyncService {
	return &SyncServiceImpl{
		runs:     runs,
		events:   events,
		groups:   groups,
		members:  members,
		spond:    api,
		txn:      txn,
		config:   cfg,
		logger:   logger,
		inFlight: make(map[Kind]bool),
	}
}

func (s *SyncServiceImpl) Sync(ctx context.Context, kind Kind) (*Run, error) {
	switch kind {
	case KindEvent:
		return s.SyncEvents(ctx)
	case KindGroup:
		return s.SyncGroups(ctx)
	case KindMember:
		return s.SyncMembers(ctx)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

func (s *SyncServiceImpl) SyncEvents(ctx context.Context) (*Run, error) {
	return s.execute(ctx, KindEvent, s.syncEvents)
}

func (s *SyncServiceImpl) SyncGroups(ctx context.Context) (*Run, error) {
	return s.execute(ctx, KindGroup, s.syncGroups)
}

func (s *SyncServiceImpl) SyncMembers(ctx context.Context) (*Run, error) {
	return s.execute(ctx, KindMember, s.syncMembers)
}

func (s *SyncServiceImpl) History(ctx context.Context, kind Kind, limit int64) ([]Run, error) {
	return s.runs.List(ctx, kind, limit)
}

func (s *SyncServiceImpl) Latest(ctx context.Context, kind Kind) (*Run, error) {
	return s.runs.Latest(ctx, kind)
}

// execute owns the run record lifecycle. A fetch-level failure marks the run
// failed and propagates; per-record failures are counted by the body and
// never fail the run.
func (s *SyncServiceImpl) execute(ctx context.Context, kind Kind, body func(ctx context.Context, run *Run) error) (*Run, error) {
	if !s.acquire(kind) {
		return nil, ErrSyncInProgress
	}
	defer s.release(kind)

	run := &Run{
		Kind:      kind,
		Status:    RunStatusRunning,
		StartedAt: time.Now().UTC(),
	}
	if err := s.runs.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("create sync run: %w", err)
	}

	bodyErr := body(ctx, run)

	completed := time.Now().UTC()
	run.CompletedAt = &completed

	if bodyErr != nil {
		run.Status = RunStatusFailed
		run.Success = false
		run.ErrorMessage = bodyErr.Error()
		if err := s.runs.Update(ctx, run); err != nil {
			s.logger.Error("failed to finalize sync run",
				zap.String("sync_type", string(kind)),
				zap.Error(err))
		}
		s.logger.Error("sync failed",
			zap.String("sync_type", string(kind)),
			zap.Error(bodyErr))
		return run, bodyErr
	}

	run.Status = RunStatusCompleted
	run.Success = true
	if err := s.runs.Update(ctx, run); err != nil {
		return run, fmt.Errorf("finalize sync run: %w", err)
	}

	s.logger.Info("sync completed",
		zap.String("sync_type", string(kind)),
		zap.Int("fetched", run.Fetched),
		zap.Int("created", run.Created),
		zap.Int("updated", run.Updated),
		zap.Int("errors", run.Errors))
	return run, nil
}

// acquire marks kind in flight. Returns false when a run of the same kind
// already holds the slot. Single writer process, so an in-process guard is
// enough to keep running windows from overlapping.
func (s *SyncServiceImpl) acquire(kind Kind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[kind] {
		return false
	}
	s.inFlight[kind] = true
	return true
}

func (s *SyncServiceImpl) release(kind Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, kind)
}

func (s *SyncServiceImpl) syncEvents(ctx context.Context, run *Run) error {
	raws, err := s.spond.GetEvents(ctx, spond.EventQuery{MaxEvents: s.config.SyncEventsMax})
	if err != nil {
		return fmt.Errorf("fetch events: %w", err)
	}
	run.Fetched = len(raws)

	// Locally cached profiles enrich id-array response shapes. A failed
	// lookup skips enrichment, it never fails the run.
	lookup, err := s.members.ProfileLookup(ctx)
	if err != nil {
		s.logger.Warn("member lookup unavailable, skipping response enrichment",
			zap.Error(err))
		lookup = nil
	}

	now := time.Now().UTC()
	for _, raw := range raws {
		if err := s.syncOneEvent(ctx, raw, lookup, now, run); err != nil {
			run.Errors++
			id, _ := raw.Str("id")
			s.logger.Error("failed to sync event",
				zap.String("spond_id", id),
				zap.Error(err))
		}
	}
	return nil
}

func (s *SyncServiceImpl) syncOneEvent(ctx context.Context, raw spond.RawRecord, lookup map[string]spond.RawRecord, now time.Time, run *Run) error {
	return s.txn(ctx, func(ctx context.Context) error {
		spondID, ok := raw.Str("id")
		if !ok || spondID == "" {
			return fmt.Errorf("event record missing id")
		}

		existing, err := s.events.GetBySpondID(ctx, spondID)
		if err != nil {
			return err
		}

		merged, created, err := event.Reconcile(raw, existing, lookup, now, s.logger)
		if err != nil {
			return err
		}

		if created {
			if err := s.events.Create(ctx, merged); err != nil {
				return err
			}
			run.Created++
		} else {
			if err := s.events.Update(ctx, merged); err != nil {
				return err
			}
			run.Updated++
		}
		return nil
	})
}

func (s *SyncServiceImpl) syncGroups(ctx context.Context, run *Run) error {
	raws, err := s.spond.GetGroups(ctx)
	if err != nil {
		return fmt.Errorf("fetch groups: %w", err)
	}
	run.Fetched = len(raws)

	now := time.Now().UTC()
	for _, raw := range raws {
		if err := s.syncOneGroup(ctx, raw, now, run); err != nil {
			run.Errors++
			id, _ := raw.Str("id")
			s.logger.Error("failed to sync group",
				zap.String("spond_id", id),
				zap.Error(err))
		}
	}
	return nil
}

func (s *SyncServiceImpl) syncOneGroup(ctx context.Context, raw spond.RawRecord, now time.Time, run *Run) error {
	return s.txn(ctx, func(ctx context.Context) error {
		spondID, ok := raw.Str("id")
		if !ok || spondID == "" {
			return fmt.Errorf("group record missing id")
		}

		existing, err := s.groups.GetBySpondID(ctx, spondID)
		if err != nil {
			return err
		}

		merged, created, err := group.Reconcile(raw, existing, now)
		if err != nil {
			return err
		}

		if created {
			if err := s.groups.Create(ctx, merged); err != nil {
				return err
			}
			run.Created++
		} else {
			if err := s.groups.Update(ctx, merged); err != nil {
				return err
			}
			run.Updated++
		}
		return nil
	})
}

// syncMembers walks every group's member list. The same person can appear in
// several groups; the first occurrence wins and later ones are skipped so
// counts stay per-person, not per-membership.
func (s *SyncServiceImpl) syncMembers(ctx context.Context, run *Run) error {
	groupRaws, err := s.spond.GetGroups(ctx)
	if err != nil {
		return fmt.Errorf("fetch groups: %w", err)
	}

	now := time.Now().UTC()
	seen := make(map[string]bool)

	for _, groupRaw := range groupRaws {
		groupID, _ := groupRaw.Str("id")
		memberRaws, ok := groupRaw.Maps("members")
		if !ok {
			continue
		}

		for _, raw := range memberRaws {
			spondID := memberID(raw)
			if spondID == "" || seen[spondID] {
				continue
			}
			seen[spondID] = true
			run.Fetched++

			if err := s.syncOneMember(ctx, raw, groupID, now, run); err != nil {
				run.Errors++
				s.logger.Error("failed to sync member",
					zap.String("spond_id", spondID),
					zap.String("group_id", groupID),
					zap.Error(err))
			}
		}
	}
	return nil
}

func (s *SyncServiceImpl) syncOneMember(ctx context.Context, raw spond.RawRecord, groupID string, now time.Time, run *Run) error {
	return s.txn(ctx, func(ctx context.Context) error {
		spondID := memberID(raw)

		existing, err := s.members.GetBySpondID(ctx, spondID)
		if err != nil {
			return err
		}

		merged, created, err := member.Reconcile(raw, groupID, existing, now, s.logger)
		if err != nil {
			return err
		}

		if created {
			if err := s.members.Create(ctx, merged); err != nil {
				return err
			}
			run.Created++
		} else {
			if err := s.members.Update(ctx, merged); err != nil {
				return err
			}
			run.Updated++
		}
		return nil
	})
}

// memberID reads the member id, falling back to the nested profile id.
func memberID(raw spond.RawRecord) string {
	if id, ok := raw.Str("id"); ok && id != "" {
		return id
	}
	if profile, ok := raw.Map("profile"); ok {
		if id, ok := profile.Str("id"); ok {
			return id
		}
	}
	return ""
}
