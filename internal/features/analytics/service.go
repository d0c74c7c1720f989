package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"club-sync/internal/features/event"
	"club-sync/internal/features/group"
	"club-sync/internal/features/member"
	"club-sync/internal/spond"
)

const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

type AnalyticsService interface {
	AttendanceTrends(ctx context.Context, period string, start, end *time.Time) (*AttendanceTrends, error)
	ResponseRates(ctx context.Context, start, end *time.Time) (*ResponseRates, error)
	EventTypeDistribution(ctx context.Context) ([]TypeShare, error)
	MemberParticipation(ctx context.Context, limit int) (*Participation, error)
	Summary(ctx context.Context) (*Summary, error)
	AttendanceXLSX(ctx context.Context) ([]byte, string, error)
}

type AnalyticsServiceImpl struct {
	events  event.EventRepository
	groups  group.GroupRepository
	members member.MemberRepository
}

func NewAnalyticsService(events event.EventRepository, groups group.GroupRepository, members member.MemberRepository) AnalyticsService {
	return &AnalyticsServiceImpl{
		events:  events,
		groups:  groups,
		members: members,
	}
}

// AttendanceTrends buckets events by ISO week, month, or year of their start
// time. Events without a start time are left out. The default window covers
// roughly the last quarter, or the last year for year buckets.
func (s *AnalyticsServiceImpl) AttendanceTrends(ctx context.Context, period string, start, end *time.Time) (*AttendanceTrends, error) {
	if period != PeriodWeek && period != PeriodMonth && period != PeriodYear {
		period = PeriodMonth
	}

	endAt := time.Now().UTC()
	if end != nil {
		endAt = *end
	}
	startAt := endAt.AddDate(0, 0, -90)
	switch {
	case start != nil:
		startAt = *start
	case period == PeriodWeek:
		startAt = endAt.AddDate(0, 0, -12*7)
	case period == PeriodYear:
		startAt = endAt.AddDate(-1, 0, 0)
	}

	events, err := s.events.ListBetween(ctx, startAt, endAt)
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]*TrendPoint)
	for i := range events {
		ev := &events[i]
		if ev.StartTime == nil {
			continue
		}

		key := periodKey(*ev.StartTime, period)
		point, ok := buckets[key]
		if !ok {
			point = &TrendPoint{Date: key}
			buckets[key] = point
		}
		point.TotalEvents++

		for _, resp := range ev.Responses {
			switch resp.Answer {
			case spond.AnswerAccepted:
				point.Accepted++
			case spond.AnswerDeclined:
				point.Declined++
			case spond.AnswerUnanswered, spond.AnswerWaitinglist:
				point.Unanswered++
			}
		}
	}

	data := make([]TrendPoint, 0, len(buckets))
	for _, p := range buckets {
		data = append(data, *p)
	}
	sort.Slice(data, func(i, j int) bool { return data[i].Date < data[j].Date })

	return &AttendanceTrends{Period: period, Data: data}, nil
}

func periodKey(t time.Time, period string) string {
	switch period {
	case PeriodWeek:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case PeriodYear:
		return t.Format("2006")
	}
	return t.Format("2006-01")
}

func (s *AnalyticsServiceImpl) ResponseRates(ctx context.Context, start, end *time.Time) (*ResponseRates, error) {
	var events []event.Event
	var err error
	if start != nil && end != nil {
		events, err = s.events.ListBetween(ctx, *start, *end)
	} else {
		events, err = s.events.ListAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	rates := &ResponseRates{}
	for i := range events {
		for _, resp := range events[i].Responses {
			rates.TotalResponses++
			switch resp.Answer {
			case spond.AnswerAccepted:
				rates.Accepted++
			case spond.AnswerDeclined:
				rates.Declined++
			case spond.AnswerUnanswered, spond.AnswerWaitinglist:
				rates.Unanswered++
			default:
				rates.NoAnswer++
			}
		}
	}

	if rates.TotalResponses > 0 {
		total := float64(rates.TotalResponses)
		rates.AcceptedPercentage = round2(float64(rates.Accepted) / total * 100)
		rates.DeclinedPercentage = round2(float64(rates.Declined) / total * 100)
		rates.ResponseRate = round2(float64(rates.Accepted+rates.Declined) / total * 100)
	}
	return rates, nil
}

func (s *AnalyticsServiceImpl) EventTypeDistribution(ctx context.Context) ([]TypeShare, error) {
	stats, err := s.events.Stats(ctx)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, count := range stats.EventsByType {
		total += count
	}

	shares := make([]TypeShare, 0, len(stats.EventsByType))
	for eventType, count := range stats.EventsByType {
		if eventType == "" {
			eventType = "Unknown"
		}
		share := TypeShare{EventType: eventType, Count: int(count)}
		if total > 0 {
			share.Percentage = round2(float64(count) / float64(total) * 100)
		}
		shares = append(shares, share)
	}
	sort.Slice(shares, func(i, j int) bool { return shares[i].Count > shares[j].Count })
	return shares, nil
}

// MemberParticipation ranks locally known members by how many events they
// were asked about. Responses from people not in the member cache are
// ignored.
func (s *AnalyticsServiceImpl) MemberParticipation(ctx context.Context, limit int) (*Participation, error) {
	if limit <= 0 {
		limit = 10
	}

	members, _, err := s.members.List(ctx, member.Filters{}, 10000, 0)
	if err != nil {
		return nil, err
	}
	events, err := s.events.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := make(map[string]*ParticipationStat, len(members))
	for i := range members {
		m := &members[i]
		stats[m.SpondID] = &ParticipationStat{
			MemberID:   m.SpondID,
			MemberName: m.FullName(),
		}
	}

	for i := range events {
		for _, resp := range events[i].Responses {
			stat, ok := stats[resp.MemberID]
			if !ok {
				continue
			}
			stat.TotalEvents++
			switch resp.Answer {
			case spond.AnswerAccepted:
				stat.Attended++
			case spond.AnswerDeclined:
				stat.Declined++
			default:
				stat.NoResponse++
			}
		}
	}

	ranked := make([]ParticipationStat, 0, len(stats))
	for _, stat := range stats {
		if stat.TotalEvents == 0 {
			continue
		}
		stat.AttendanceRate = round2(float64(stat.Attended) / float64(stat.TotalEvents) * 100)
		ranked = append(ranked, *stat)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].TotalEvents != ranked[j].TotalEvents {
			return ranked[i].TotalEvents > ranked[j].TotalEvents
		}
		return ranked[i].MemberName < ranked[j].MemberName
	})

	total := len(ranked)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return &Participation{Members: ranked, Total: total}, nil
}

func (s *AnalyticsServiceImpl) Summary(ctx context.Context) (*Summary, error) {
	eventStats, err := s.events.Stats(ctx)
	if err != nil {
		return nil, err
	}
	_, totalGroups, err := s.groups.List(ctx, "", 1, 0)
	if err != nil {
		return nil, err
	}
	_, totalMembers, err := s.members.List(ctx, member.Filters{}, 1, 0)
	if err != nil {
		return nil, err
	}

	return &Summary{
		TotalEvents:    eventStats.TotalEvents,
		UpcomingEvents: eventStats.UpcomingEvents,
		TotalGroups:    totalGroups,
		TotalMembers:   totalMembers,
	}, nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
