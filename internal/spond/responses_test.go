package spond

import "testing"

func TestNormalizeDetailedResponses(t *testing.T) {
	fragment := RawRecord{
		"responses": []interface{}{
			map[string]interface{}{
				"memberId": "m1",
				"answer":   "accepted",
				"profile":  map[string]interface{}{"id": "m1", "firstName": "Ada"},
			},
			map[string]interface{}{
				"memberId": "m2",
				"answer":   "declined",
			},
			map[string]interface{}{
				// No memberId, but the profile carries one.
				"answer":  "unanswered",
				"profile": map[string]interface{}{"id": "m3"},
			},
			map[string]interface{}{
				// Nothing identifies this entry; it must be dropped.
				"answer": "accepted",
			},
		},
	}

	set := NormalizeResponses(fragment, nil)
	if len(set) != 3 {
		t.Fatalf("got %d responses, want 3", len(set))
	}
	if set[0].MemberID != "m1" || set[0].Answer != AnswerAccepted {
		t.Errorf("first response = %+v", set[0])
	}
	if name, _ := set[0].Profile.Str("firstName"); name != "Ada" {
		t.Errorf("inline profile not carried, got %v", set[0].Profile)
	}
	if set[2].MemberID != "m3" {
		t.Errorf("profile id fallback failed, got %q", set[2].MemberID)
	}
}

func TestNormalizeLegacyIDArrays(t *testing.T) {
	fragment := RawRecord{
		"acceptedIds":    []interface{}{"a1", "a2"},
		"declinedIds":    []interface{}{"d1"},
		"unansweredIds":  []interface{}{"u1", ""},
		"waitinglistIds": []interface{}{"w1"},
	}

	set := NormalizeResponses(fragment, nil)

	counts := set.CountByAnswer()
	if counts[AnswerAccepted] != 2 {
		t.Errorf("accepted = %d, want 2", counts[AnswerAccepted])
	}
	if counts[AnswerDeclined] != 1 {
		t.Errorf("declined = %d, want 1", counts[AnswerDeclined])
	}
	if counts[AnswerUnanswered] != 1 {
		t.Errorf("unanswered = %d, want 1 (empty id must be skipped)", counts[AnswerUnanswered])
	}
	if counts[AnswerWaitinglist] != 1 {
		t.Errorf("waitinglist = %d, want 1", counts[AnswerWaitinglist])
	}
	if len(set) != 5 {
		t.Errorf("got %d responses, want 5", len(set))
	}
}

func TestDetailedWinsOverLegacy(t *testing.T) {
	fragment := RawRecord{
		"responses": []interface{}{
			map[string]interface{}{"memberId": "m1", "answer": "accepted"},
		},
		"acceptedIds": []interface{}{"m1", "stale-1", "stale-2"},
		"declinedIds": []interface{}{"stale-3"},
	}

	set := NormalizeResponses(fragment, nil)
	if len(set) != 1 {
		t.Fatalf("got %d responses, want 1 (id arrays must be ignored)", len(set))
	}
	if set[0].MemberID != "m1" || set[0].Answer != AnswerAccepted {
		t.Errorf("response = %+v", set[0])
	}
}

func TestUnknownAnswerFailsOpen(t *testing.T) {
	fragment := RawRecord{
		"responses": []interface{}{
			map[string]interface{}{"memberId": "m1", "answer": "maybe-later"},
		},
	}

	set := NormalizeResponses(fragment, nil)
	if len(set) != 1 || set[0].Answer != AnswerNone {
		t.Fatalf("unknown answer should map to %q, got %+v", AnswerNone, set)
	}
}

func TestEmptyOrAbsentFragment(t *testing.T) {
	if set := NormalizeResponses(nil, nil); len(set) != 0 {
		t.Errorf("nil fragment: got %d responses, want 0", len(set))
	}
	if set := NormalizeResponses(RawRecord{}, nil); len(set) != 0 {
		t.Errorf("empty fragment: got %d responses, want 0", len(set))
	}
	empty := RawRecord{"responses": []interface{}{}}
	if set := NormalizeResponses(empty, nil); len(set) != 0 {
		t.Errorf("empty responses array: got %d responses, want 0", len(set))
	}
}

func TestMemberLookupEnrichment(t *testing.T) {
	lookup := map[string]RawRecord{
		"m1": {"id": "m1", "firstName": "Ada", "lastName": "Lovelace"},
	}

	legacy := RawRecord{"acceptedIds": []interface{}{"m1", "m2"}}
	set := NormalizeResponses(legacy, lookup)
	if len(set) != 2 {
		t.Fatalf("got %d responses, want 2", len(set))
	}
	if name, _ := set[0].Profile.Str("firstName"); name != "Ada" {
		t.Errorf("known member not enriched, got %v", set[0].Profile)
	}
	if set[1].Profile != nil {
		t.Errorf("unknown member should have nil profile, got %v", set[1].Profile)
	}

	// Detailed entries without an inline profile are enriched the same way.
	detailed := RawRecord{
		"responses": []interface{}{
			map[string]interface{}{"memberId": "m1", "answer": "declined"},
		},
	}
	set = NormalizeResponses(detailed, lookup)
	if name, _ := set[0].Profile.Str("lastName"); name != "Lovelace" {
		t.Errorf("detailed entry not enriched, got %v", set[0].Profile)
	}
}

func TestCanonicalAnswer(t *testing.T) {
	tests := []struct {
		wire string
		want Answer
	}{
		{"accepted", AnswerAccepted},
		{"ACCEPTED", AnswerAccepted},
		{"declined", AnswerDeclined},
		{"unanswered", AnswerUnanswered},
		{"waitinglist", AnswerWaitinglist},
		{"waitinglistavailable", AnswerWaitinglist},
		{"waiting", AnswerWaitinglist},
		{"unconfirmed", AnswerUnconfirmed},
		{"", AnswerNone},
		{"something-new", AnswerNone},
	}
	for _, tt := range tests {
		if got := CanonicalAnswer(tt.wire); got != tt.want {
			t.Errorf("CanonicalAnswer(%q) = %q, want %q", tt.wire, got, tt.want)
		}
	}
}

func TestCountByAnswer(t *testing.T) {
	set := ResponseSet{
		{MemberID: "a", Answer: AnswerAccepted},
		{MemberID: "b", Answer: AnswerAccepted},
		{MemberID: "c", Answer: AnswerDeclined},
		{MemberID: "d", Answer: AnswerNone},
	}
	counts := set.CountByAnswer()
	if counts[AnswerAccepted] != 2 || counts[AnswerDeclined] != 1 || counts[AnswerNone] != 1 {
		t.Errorf("counts = %v", counts)
	}
}
