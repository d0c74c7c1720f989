package spond

import "strings"

// Answer is the canonical attendance answer. Storage and analytics only ever
// see these values; the two wire shapes Spond uses collapse into them.
type Answer string

const (
	AnswerAccepted    Answer = "accepted"
	AnswerDeclined    Answer = "declined"
	AnswerUnanswered  Answer = "unanswered"
	AnswerWaitinglist Answer = "waitinglist"
	AnswerUnconfirmed Answer = "unconfirmed"

	// AnswerNone is the fail-open bucket for answers we do not recognize.
	// Analytics counts it separately; normalization never rejects a record
	// over an unknown answer.
	AnswerNone Answer = "no_answer"
)

// Response is one member's canonical attendance answer.
type Response struct {
	MemberID string    `json:"member_id" bson:"member_id"`
	Answer   Answer    `json:"answer" bson:"answer"`
	Profile  RawRecord `json:"profile,omitempty" bson:"profile,omitempty"`
}

// ResponseSet is the canonical attendance representation for one event.
// Order is whatever normalization preserved from the input; consumers must
// not rely on it.
type ResponseSet []Response

// legacy id-array keys, in the order synthesized entries are emitted.
var legacyAnswerKeys = []struct {
	key    string
	answer Answer
}{
	{"acceptedIds", AnswerAccepted},
	{"declinedIds", AnswerDeclined},
	{"unansweredIds", AnswerUnanswered},
	{"waitinglistIds", AnswerWaitinglist},
	{"unconfirmedIds", AnswerUnconfirmed},
}

// NormalizeResponses converts the "responses" fragment of a raw event into
// the canonical ResponseSet.
//
// Spond has shipped two wire shapes for the same data: a detailed array of
// {answer, profile} objects and parallel id arrays per answer category.
// Either, both, or neither may be present. The detailed array is
// authoritative when present; id arrays are only synthesized from when it is
// absent. memberLookup, when supplied, attaches locally known profile
// snapshots to synthesized entries. An empty or absent fragment yields an
// empty set, not an error.
func NormalizeResponses(fragment RawRecord, memberLookup map[string]RawRecord) ResponseSet {
	if fragment == nil {
		return ResponseSet{}
	}

	if _, hasDetailed := fragment.List("responses"); hasDetailed {
		return normalizeDetailed(fragment, memberLookup)
	}
	return normalizeLegacy(fragment, memberLookup)
}

func normalizeDetailed(fragment RawRecord, memberLookup map[string]RawRecord) ResponseSet {
	entries, _ := fragment.Maps("responses")
	out := make(ResponseSet, 0, len(entries))

	for _, entry := range entries {
		profile, _ := entry.Map("profile")

		memberID, ok := entry.Str("memberId")
		if !ok || memberID == "" {
			if profile != nil {
				memberID, _ = profile.Str("id")
			}
		}
		if memberID == "" {
			// An answer with no member attached carries no signal.
			continue
		}

		answerText, _ := entry.Str("answer")
		resp := Response{
			MemberID: memberID,
			Answer:   CanonicalAnswer(answerText),
			Profile:  profile,
		}
		if resp.Profile == nil && memberLookup != nil {
			resp.Profile = memberLookup[memberID]
		}
		out = append(out, resp)
	}

	return out
}

func normalizeLegacy(fragment RawRecord, memberLookup map[string]RawRecord) ResponseSet {
	out := ResponseSet{}

	for _, category := range legacyAnswerKeys {
		ids, ok := fragment.StrList(category.key)
		if !ok {
			continue
		}
		for _, id := range ids {
			if id == "" {
				continue
			}
			resp := Response{MemberID: id, Answer: category.answer}
			if memberLookup != nil {
				resp.Profile = memberLookup[id]
			}
			out = append(out, resp)
		}
	}

	return out
}

// CanonicalAnswer maps a wire answer onto the canonical enum. Unknown values
// fail open as AnswerNone.
func CanonicalAnswer(wire string) Answer {
	switch strings.ToLower(wire) {
	case "accepted":
		return AnswerAccepted
	case "declined":
		return AnswerDeclined
	case "unanswered":
		return AnswerUnanswered
	case "waitinglist", "waitinglistavailable", "waiting":
		return AnswerWaitinglist
	case "unconfirmed":
		return AnswerUnconfirmed
	default:
		return AnswerNone
	}
}

// CountByAnswer tallies responses per canonical answer.
func (rs ResponseSet) CountByAnswer() map[Answer]int {
	counts := make(map[Answer]int)
	for _, r := range rs {
		counts[r.Answer]++
	}
	return counts
}
