package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"club-sync/internal/config"
	sync_feature "club-sync/internal/features/sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var (
	// ErrJobNotFound is returned for a trigger on an unknown job id.
	ErrJobNotFound = errors.New("sync job not found")
	// ErrSyncInProgress rejects a trigger while the same kind is running.
	ErrSyncInProgress = errors.New("sync already in progress for this kind")
)

// JobInfo describes one managed sync job.
type JobInfo struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Schedule string     `json:"schedule"`
	Enabled  bool       `json:"enabled"`
	Running  bool       `json:"running"`
	NextRun  *time.Time `json:"next_run,omitempty"`
}

type jobSpec struct {
	kind     sync_feature.Kind
	name     string
	schedule string
	enabled  bool
}

// Status is a point-in-time snapshot of the scheduler and its jobs.
type Status struct {
	Running   bool      `json:"running"`
	TotalJobs int       `json:"total_jobs"`
	Jobs      []JobInfo `json:"jobs"`
}

type SchedulerService interface {
	Start()
	Stop() context.Context
	Status() Status
	ListJobs() []JobInfo
	TriggerJob(ctx context.Context, id string) (*sync_feature.Run, error)
}

type SchedulerServiceImpl struct {
	syncService sync_feature.SyncService
	logger      *zap.Logger

	scheduler *cron.Cron
	jobs      map[string]jobSpec
	order     []string
	entries   map[string]cron.EntryID

	mu      sync.Mutex
	running map[string]bool
	started bool
}

func NewSchedulerService(syncService sync_feature.SyncService, cfg *config.Config, logger *zap.Logger) SchedulerService {
	s := &SchedulerServiceImpl{
		syncService: syncService,
		logger:      logger,
		scheduler:   cron.New(),
		jobs:        make(map[string]jobSpec),
		entries:     make(map[string]cron.EntryID),
		running:     make(map[string]bool),
	}

	s.addJob(sync_feature.KindEvent, "Event sync", cfg.SyncEventsInterval, cfg.SyncEventsEnabled)
	s.addJob(sync_feature.KindGroup, "Group sync", cfg.SyncGroupsInterval, cfg.SyncGroupsEnabled)
	s.addJob(sync_feature.KindMember, "Member sync", cfg.SyncMembersInterval, cfg.SyncMembersEnabled)

	return s
}

func (s *SchedulerServiceImpl) addJob(kind sync_feature.Kind, name string, intervalMinutes int, enabled bool) {
	id := string(kind)
	s.jobs[id] = jobSpec{
		kind:     kind,
		name:     name,
		schedule: fmt.Sprintf("@every %dm", intervalMinutes),
		enabled:  enabled,
	}
	s.order = append(s.order, id)
}

// Start registers an interval trigger for each enabled job and starts the
// timer loop. Jobs run on their own goroutines, so a long event sync never
// delays the group or member timer.
func (s *SchedulerServiceImpl) Start() {
	for _, id := range s.order {
		spec := s.jobs[id]
		if !spec.enabled {
			s.logger.Info("sync job disabled", zap.String("job", id))
			continue
		}

		jobID := id
		entryID, err := s.scheduler.AddFunc(spec.schedule, func() {
			s.runScheduled(jobID)
		})
		if err != nil {
			s.logger.Error("failed to schedule sync job",
				zap.String("job", id),
				zap.String("schedule", spec.schedule),
				zap.Error(err))
			continue
		}
		s.entries[id] = entryID

		s.logger.Info("scheduled sync job",
			zap.String("job", id),
			zap.String("schedule", spec.schedule))
	}

	s.scheduler.Start()

	s.mu.Lock()
	s.started = true
	s.mu.Unlock()
}

// Stop halts the timer loop. The returned context is done once in-flight
// scheduled jobs have finished.
func (s *SchedulerServiceImpl) Stop() context.Context {
	s.mu.Lock()
	s.started = false
	s.mu.Unlock()

	return s.scheduler.Stop()
}

func (s *SchedulerServiceImpl) Status() Status {
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()

	jobs := s.ListJobs()
	return Status{
		Running:   started,
		TotalJobs: len(jobs),
		Jobs:      jobs,
	}
}

func (s *SchedulerServiceImpl) ListJobs() []JobInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	infos := make([]JobInfo, 0, len(s.order))
	for _, id := range s.order {
		spec := s.jobs[id]
		info := JobInfo{
			ID:       id,
			Name:     spec.name,
			Schedule: spec.schedule,
			Enabled:  spec.enabled,
			Running:  s.running[id],
		}
		if entryID, ok := s.entries[id]; ok {
			next := s.scheduler.Entry(entryID).Next
			if !next.IsZero() {
				info.NextRun = &next
			}
		}
		infos = append(infos, info)
	}
	return infos
}

// TriggerJob runs one job immediately on the caller's goroutine. A trigger
// while the same kind is in flight is rejected, never run in parallel.
func (s *SchedulerServiceImpl) TriggerJob(ctx context.Context, id string) (*sync_feature.Run, error) {
	spec, ok := s.jobs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrJobNotFound, id)
	}

	if !s.acquire(id) {
		return nil, ErrSyncInProgress
	}
	defer s.release(id)

	return s.syncService.Sync(ctx, spec.kind)
}

func (s *SchedulerServiceImpl) runScheduled(id string) {
	if !s.acquire(id) {
		s.logger.Warn("skipping scheduled sync, previous run still in flight",
			zap.String("job", id))
		return
	}
	defer s.release(id)

	if _, err := s.syncService.Sync(context.Background(), s.jobs[id].kind); err != nil {
		s.logger.Error("scheduled sync failed",
			zap.String("job", id),
			zap.Error(err))
	}
}

func (s *SchedulerServiceImpl) acquire(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running[id] {
		return false
	}
	s.running[id] = true
	return true
}

func (s *SchedulerServiceImpl) release(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running[id] = false
}
