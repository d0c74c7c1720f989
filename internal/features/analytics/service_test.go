package analytics

import (
	"context"
	"strings"
	"testing"
	"time"

	"club-sync/internal/features/event"
	"club-sync/internal/features/group"
	"club-sync/internal/features/member"
	"club-sync/internal/spond"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeEventRepo struct {
	events []event.Event
}

func (f *fakeEventRepo) Create(ctx context.Context, ev *event.Event) error { return nil }
func (f *fakeEventRepo) Update(ctx context.Context, ev *event.Event) error { return nil }
func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*event.Event, error) {
	return nil, nil
}
func (f *fakeEventRepo) GetBySpondID(ctx context.Context, spondID string) (*event.Event, error) {
	return nil, nil
}
func (f *fakeEventRepo) List(ctx context.Context, filters event.Filters, limit, skip int64) ([]event.Event, int64, error) {
	return f.events, int64(len(f.events)), nil
}
func (f *fakeEventRepo) ListAll(ctx context.Context) ([]event.Event, error) {
	return f.events, nil
}
func (f *fakeEventRepo) ListBetween(ctx context.Context, start, end time.Time) ([]event.Event, error) {
	var out []event.Event
	for _, ev := range f.events {
		if ev.StartTime != nil && !ev.StartTime.Before(start) && !ev.StartTime.After(end) {
			out = append(out, ev)
		}
	}
	return out, nil
}
func (f *fakeEventRepo) Delete(ctx context.Context, id string) error { return nil }
func (f *fakeEventRepo) Stats(ctx context.Context) (*event.Stats, error) {
	byType := make(map[string]int64)
	for _, ev := range f.events {
		byType[ev.EventType]++
	}
	return &event.Stats{TotalEvents: int64(len(f.events)), EventsByType: byType}, nil
}
func (f *fakeEventRepo) EnsureIndexes(ctx context.Context) error { return nil }

type fakeGroupRepo struct {
	groups []group.Group
}

func (f *fakeGroupRepo) Create(ctx context.Context, g *group.Group) error { return nil }
func (f *fakeGroupRepo) Update(ctx context.Context, g *group.Group) error { return nil }
func (f *fakeGroupRepo) GetByID(ctx context.Context, id string) (*group.Group, error) {
	return nil, nil
}
func (f *fakeGroupRepo) GetBySpondID(ctx context.Context, spondID string) (*group.Group, error) {
	return nil, nil
}
func (f *fakeGroupRepo) List(ctx context.Context, search string, limit, skip int64) ([]group.Group, int64, error) {
	return f.groups, int64(len(f.groups)), nil
}
func (f *fakeGroupRepo) Delete(ctx context.Context, id primitive.ObjectID) error { return nil }
func (f *fakeGroupRepo) EnsureIndexes(ctx context.Context) error              { return nil }

type fakeMemberRepo struct {
	members []member.Member
}

func (f *fakeMemberRepo) Create(ctx context.Context, m *member.Member) error { return nil }
func (f *fakeMemberRepo) Update(ctx context.Context, m *member.Member) error { return nil }
func (f *fakeMemberRepo) GetByID(ctx context.Context, id string) (*member.Member, error) {
	return nil, nil
}
func (f *fakeMemberRepo) GetBySpondID(ctx context.Context, spondID string) (*member.Member, error) {
	return nil, nil
}
func (f *fakeMemberRepo) List(ctx context.Context, filters member.Filters, limit, skip int64) ([]member.Member, int64, error) {
	return f.members, int64(len(f.members)), nil
}
func (f *fakeMemberRepo) ProfileLookup(ctx context.Context) (map[string]spond.RawRecord, error) {
	return nil, nil
}
func (f *fakeMemberRepo) Delete(ctx context.Context, id primitive.ObjectID) error { return nil }
func (f *fakeMemberRepo) EnsureIndexes(ctx context.Context) error              { return nil }

func ts(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func responses(answers ...spond.Answer) spond.ResponseSet {
	rs := make(spond.ResponseSet, 0, len(answers))
	for i, a := range answers {
		rs = append(rs, spond.Response{MemberID: "m" + string(rune('1'+i)), Answer: a})
	}
	return rs
}

func newTestService(events []event.Event, members []member.Member) AnalyticsService {
	return NewAnalyticsService(
		&fakeEventRepo{events: events},
		&fakeGroupRepo{},
		&fakeMemberRepo{members: members},
	)
}

func TestResponseRates(t *testing.T) {
	svc := newTestService([]event.Event{
		{Responses: responses(spond.AnswerAccepted, spond.AnswerAccepted, spond.AnswerDeclined)},
		{Responses: responses(spond.AnswerUnanswered, spond.AnswerWaitinglist, spond.AnswerNone)},
	}, nil)

	rates, err := svc.ResponseRates(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("ResponseRates: %v", err)
	}
	if rates.TotalResponses != 6 {
		t.Errorf("TotalResponses = %d, want 6", rates.TotalResponses)
	}
	if rates.Accepted != 2 || rates.Declined != 1 || rates.Unanswered != 2 || rates.NoAnswer != 1 {
		t.Errorf("buckets = %d/%d/%d/%d", rates.Accepted, rates.Declined, rates.Unanswered, rates.NoAnswer)
	}
	if rates.AcceptedPercentage != 33.33 {
		t.Errorf("AcceptedPercentage = %v, want 33.33", rates.AcceptedPercentage)
	}
	if rates.ResponseRate != 50.0 {
		t.Errorf("ResponseRate = %v, want 50", rates.ResponseRate)
	}
}

func TestResponseRatesEmpty(t *testing.T) {
	svc := newTestService(nil, nil)

	rates, err := svc.ResponseRates(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("ResponseRates: %v", err)
	}
	if rates.TotalResponses != 0 || rates.ResponseRate != 0 {
		t.Errorf("rates = %+v, want zeroes without dividing", rates)
	}
}

func TestAttendanceTrendsMonthBuckets(t *testing.T) {
	svc := newTestService([]event.Event{
		{StartTime: ts("2026-01-10T18:00:00Z"), Responses: responses(spond.AnswerAccepted)},
		{StartTime: ts("2026-01-24T18:00:00Z"), Responses: responses(spond.AnswerDeclined)},
		{StartTime: ts("2026-02-07T18:00:00Z"), Responses: responses(spond.AnswerAccepted, spond.AnswerUnanswered)},
	}, nil)

	start := ts("2026-01-01T00:00:00Z")
	end := ts("2026-03-01T00:00:00Z")
	trends, err := svc.AttendanceTrends(context.Background(), PeriodMonth, start, end)
	if err != nil {
		t.Fatalf("AttendanceTrends: %v", err)
	}
	if len(trends.Data) != 2 {
		t.Fatalf("buckets = %d, want 2", len(trends.Data))
	}
	jan := trends.Data[0]
	if jan.Date != "2026-01" || jan.TotalEvents != 2 || jan.Accepted != 1 || jan.Declined != 1 {
		t.Errorf("january = %+v", jan)
	}
	feb := trends.Data[1]
	if feb.Date != "2026-02" || feb.Accepted != 1 || feb.Unanswered != 1 {
		t.Errorf("february = %+v", feb)
	}
}

func TestAttendanceTrendsWeekKey(t *testing.T) {
	svc := newTestService([]event.Event{
		{StartTime: ts("2026-01-07T18:00:00Z")},
	}, nil)

	start := ts("2026-01-01T00:00:00Z")
	end := ts("2026-01-31T00:00:00Z")
	trends, err := svc.AttendanceTrends(context.Background(), PeriodWeek, start, end)
	if err != nil {
		t.Fatalf("AttendanceTrends: %v", err)
	}
	if len(trends.Data) != 1 || trends.Data[0].Date != "2026-W02" {
		t.Errorf("data = %+v, want one 2026-W02 bucket", trends.Data)
	}
}

func TestMemberParticipation(t *testing.T) {
	members := []member.Member{
		{SpondID: "m1", FirstName: "Kari", LastName: "Nordmann"},
		{SpondID: "m2", FirstName: "Ola", LastName: "Hansen"},
		{SpondID: "m3", FirstName: "Silent", LastName: "Type"},
	}
	events := []event.Event{
		{Responses: spond.ResponseSet{
			{MemberID: "m1", Answer: spond.AnswerAccepted},
			{MemberID: "m2", Answer: spond.AnswerDeclined},
		}},
		{Responses: spond.ResponseSet{
			{MemberID: "m1", Answer: spond.AnswerAccepted},
			{MemberID: "unknown", Answer: spond.AnswerAccepted},
		}},
	}
	svc := newTestService(events, members)

	participation, err := svc.MemberParticipation(context.Background(), 10)
	if err != nil {
		t.Fatalf("MemberParticipation: %v", err)
	}
	if participation.Total != 2 {
		t.Errorf("Total = %d, members without responses are excluded", participation.Total)
	}
	top := participation.Members[0]
	if top.MemberID != "m1" || top.TotalEvents != 2 || top.Attended != 2 {
		t.Errorf("top = %+v", top)
	}
	if top.AttendanceRate != 100.0 {
		t.Errorf("AttendanceRate = %v, want 100", top.AttendanceRate)
	}
}

func TestMemberParticipationLimit(t *testing.T) {
	members := []member.Member{
		{SpondID: "m1", FirstName: "A"},
		{SpondID: "m2", FirstName: "B"},
	}
	events := []event.Event{
		{Responses: spond.ResponseSet{
			{MemberID: "m1", Answer: spond.AnswerAccepted},
			{MemberID: "m2", Answer: spond.AnswerAccepted},
		}},
	}
	svc := newTestService(events, members)

	participation, err := svc.MemberParticipation(context.Background(), 1)
	if err != nil {
		t.Fatalf("MemberParticipation: %v", err)
	}
	if len(participation.Members) != 1 || participation.Total != 2 {
		t.Errorf("got %d of %d, want 1 of 2", len(participation.Members), participation.Total)
	}
}

func TestAttendanceXLSX(t *testing.T) {
	svc := newTestService([]event.Event{
		{Heading: "Match", EventType: "EVENT", StartTime: ts("2026-02-07T18:00:00Z"),
			Responses: responses(spond.AnswerAccepted, spond.AnswerDeclined)},
	}, nil)

	data, filename, err := svc.AttendanceXLSX(context.Background())
	if err != nil {
		t.Fatalf("AttendanceXLSX: %v", err)
	}
	if len(data) == 0 {
		t.Error("empty workbook")
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("filename = %q", filename)
	}
}
