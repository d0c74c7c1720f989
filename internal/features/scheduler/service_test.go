package scheduler

import (
	"context"
	"errors"
	"testing"

	"club-sync/internal/config"
	sync_feature "club-sync/internal/features/sync"

	"go.uber.org/zap"
)

type fakeSyncService struct {
	calls   []sync_feature.Kind
	block   chan struct{}
	started chan struct{}
	err     error
}

func (f *fakeSyncService) Sync(ctx context.Context, kind sync_feature.Kind) (*sync_feature.Run, error) {
	f.calls = append(f.calls, kind)
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return nil, f.err
	}
	return &sync_feature.Run{Kind: kind, Status: sync_feature.RunStatusCompleted, Success: true}, nil
}

func (f *fakeSyncService) SyncEvents(ctx context.Context) (*sync_feature.Run, error) {
	return f.Sync(ctx, sync_feature.KindEvent)
}

func (f *fakeSyncService) SyncGroups(ctx context.Context) (*sync_feature.Run, error) {
	return f.Sync(ctx, sync_feature.KindGroup)
}

func (f *fakeSyncService) SyncMembers(ctx context.Context) (*sync_feature.Run, error) {
	return f.Sync(ctx, sync_feature.KindMember)
}

func (f *fakeSyncService) History(ctx context.Context, kind sync_feature.Kind, limit int64) ([]sync_feature.Run, error) {
	return nil, nil
}

func (f *fakeSyncService) Latest(ctx context.Context, kind sync_feature.Kind) (*sync_feature.Run, error) {
	return nil, nil
}

func testConfig() *config.Config {
	return &config.Config{
		SyncEventsEnabled:   true,
		SyncEventsInterval:  30,
		SyncGroupsEnabled:   true,
		SyncGroupsInterval:  60,
		SyncMembersEnabled:  true,
		SyncMembersInterval: 60,
	}
}

func TestListJobs(t *testing.T) {
	svc := NewSchedulerService(&fakeSyncService{}, testConfig(), zap.NewNop())

	jobs := svc.ListJobs()
	if len(jobs) != 3 {
		t.Fatalf("jobs = %d, want 3", len(jobs))
	}
	if jobs[0].ID != "events" || jobs[0].Schedule != "@every 30m" {
		t.Errorf("jobs[0] = %+v", jobs[0])
	}
	for _, j := range jobs {
		if j.Running {
			t.Errorf("job %s reported running before any trigger", j.ID)
		}
	}
}

func TestTriggerJob(t *testing.T) {
	fake := &fakeSyncService{}
	svc := NewSchedulerService(fake, testConfig(), zap.NewNop())

	run, err := svc.TriggerJob(context.Background(), "events")
	if err != nil {
		t.Fatalf("TriggerJob: %v", err)
	}
	if run.Kind != sync_feature.KindEvent {
		t.Errorf("Kind = %s", run.Kind)
	}
	if len(fake.calls) != 1 || fake.calls[0] != sync_feature.KindEvent {
		t.Errorf("calls = %v", fake.calls)
	}
}

func TestTriggerJobUnknown(t *testing.T) {
	svc := NewSchedulerService(&fakeSyncService{}, testConfig(), zap.NewNop())

	if _, err := svc.TriggerJob(context.Background(), "bogus"); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("err = %v, want ErrJobNotFound", err)
	}
}

func TestTriggerJobRejectsConcurrentRun(t *testing.T) {
	fake := &fakeSyncService{
		block:   make(chan struct{}),
		started: make(chan struct{}, 1),
	}
	svc := NewSchedulerService(fake, testConfig(), zap.NewNop())

	done := make(chan error, 1)
	go func() {
		_, err := svc.TriggerJob(context.Background(), "events")
		done <- err
	}()

	<-fake.started

	if _, err := svc.TriggerJob(context.Background(), "events"); !errors.Is(err, ErrSyncInProgress) {
		t.Fatalf("err = %v, want ErrSyncInProgress", err)
	}

	close(fake.block)
	if err := <-done; err != nil {
		t.Fatalf("first trigger: %v", err)
	}

	// Once the first run finishes the kind is triggerable again.
	fake.block = nil
	if _, err := svc.TriggerJob(context.Background(), "events"); err != nil {
		t.Fatalf("retrigger after completion: %v", err)
	}
}

func TestTriggerJobSyncErrorPropagates(t *testing.T) {
	fake := &fakeSyncService{err: errors.New("fetch failed")}
	svc := NewSchedulerService(fake, testConfig(), zap.NewNop())

	if _, err := svc.TriggerJob(context.Background(), "groups"); err == nil {
		t.Fatal("expected sync error to propagate")
	}

	// The guard must be released after a failed run.
	fake.err = nil
	if _, err := svc.TriggerJob(context.Background(), "groups"); err != nil {
		t.Fatalf("retrigger after failure: %v", err)
	}
}

func TestStatusReflectsLifecycle(t *testing.T) {
	svc := NewSchedulerService(&fakeSyncService{}, testConfig(), zap.NewNop())

	st := svc.Status()
	if st.Running {
		t.Error("Running = true before Start")
	}
	if st.TotalJobs != 3 || len(st.Jobs) != 3 {
		t.Fatalf("TotalJobs = %d, len(Jobs) = %d, want 3", st.TotalJobs, len(st.Jobs))
	}

	svc.Start()
	if st := svc.Status(); !st.Running {
		t.Error("Running = false after Start")
	}

	<-svc.Stop().Done()
	if st := svc.Status(); st.Running {
		t.Error("Running = true after Stop")
	}
}
