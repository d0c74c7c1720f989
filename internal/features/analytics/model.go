package analytics

// TrendPoint aggregates events and responses within one period bucket.
type TrendPoint struct {
	Date        string `json:"date"`
	TotalEvents int    `json:"total_events"`
	Accepted    int    `json:"accepted"`
	Declined    int    `json:"declined"`
	Unanswered  int    `json:"unanswered"`
}

// AttendanceTrends is the bucketed attendance series for one period size.
type AttendanceTrends struct {
	Period string       `json:"period"`
	Data   []TrendPoint `json:"data"`
}

// ResponseRates summarizes every stored response.
type ResponseRates struct {
	TotalResponses     int     `json:"total_responses"`
	Accepted           int     `json:"accepted"`
	Declined           int     `json:"declined"`
	Unanswered         int     `json:"unanswered"`
	NoAnswer           int     `json:"no_answer"`
	AcceptedPercentage float64 `json:"accepted_percentage"`
	DeclinedPercentage float64 `json:"declined_percentage"`
	ResponseRate       float64 `json:"response_rate"`
}

// TypeShare is one event type's slice of the total.
type TypeShare struct {
	EventType  string  `json:"event_type"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// ParticipationStat is one member's attendance record.
type ParticipationStat struct {
	MemberID       string  `json:"member_id"`
	MemberName     string  `json:"member_name"`
	TotalEvents    int     `json:"total_events"`
	Attended       int     `json:"attended"`
	Declined       int     `json:"declined"`
	NoResponse     int     `json:"no_response"`
	AttendanceRate float64 `json:"attendance_rate"`
}

// Participation lists the most active members.
type Participation struct {
	Members []ParticipationStat `json:"members"`
	Total   int                 `json:"total"`
}

// Summary is the dashboard headline block.
type Summary struct {
	TotalEvents    int64 `json:"total_events"`
	UpcomingEvents int64 `json:"upcoming_events"`
	TotalGroups    int64 `json:"total_groups"`
	TotalMembers   int64 `json:"total_members"`
}
