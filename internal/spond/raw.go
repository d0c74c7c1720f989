package spond

import "time"

// RawRecord is the decoded JSON body of one Spond entity as the API returned
// it. Fields we do not model explicitly stay available here, so schema drift
// upstream does not lose data. Accessors are best-effort extraction from an
// upstream-controlled schema: the second return reports whether the value was
// present with the expected type.
type RawRecord map[string]interface{}

// Str returns a string field.
func (r RawRecord) Str(key string) (string, bool) {
	v, ok := r[key].(string)
	return v, ok
}

// Bool returns a boolean field.
func (r RawRecord) Bool(key string) (bool, bool) {
	v, ok := r[key].(bool)
	return v, ok
}

// Float returns a numeric field. JSON numbers decode as float64.
func (r RawRecord) Float(key string) (float64, bool) {
	v, ok := r[key].(float64)
	return v, ok
}

// Int returns a numeric field truncated to int.
func (r RawRecord) Int(key string) (int, bool) {
	v, ok := r[key].(float64)
	return int(v), ok
}

// Map returns a nested object field.
func (r RawRecord) Map(key string) (RawRecord, bool) {
	switch v := r[key].(type) {
	case map[string]interface{}:
		return RawRecord(v), true
	case RawRecord:
		return v, true
	}
	return nil, false
}

// List returns an array field.
func (r RawRecord) List(key string) ([]interface{}, bool) {
	v, ok := r[key].([]interface{})
	return v, ok
}

// StrList returns an array field keeping only its string elements.
func (r RawRecord) StrList(key string) ([]string, bool) {
	raw, ok := r.List(key)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out, true
}

// Maps returns an array field keeping only its object elements.
func (r RawRecord) Maps(key string) ([]RawRecord, bool) {
	raw, ok := r.List(key)
	if !ok {
		return nil, false
	}
	out := make([]RawRecord, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]interface{}); ok {
			out = append(out, RawRecord(m))
		}
	}
	return out, true
}

// GroupID extracts the owning group id of an event. Spond nests it under
// recipients.group.id; older payloads carried a flat groupId.
func (r RawRecord) GroupID() (string, bool) {
	if recipients, ok := r.Map("recipients"); ok {
		if group, ok := recipients.Map("group"); ok {
			if id, ok := group.Str("id"); ok && id != "" {
				return id, true
			}
		}
	}
	if id, ok := r.Str("groupId"); ok && id != "" {
		return id, true
	}
	return "", false
}

// Time parses an RFC3339 timestamp field. A missing field returns (nil, nil);
// a present but unparseable one returns the parse error so callers can warn
// and carry on.
func (r RawRecord) Time(key string) (*time.Time, error) {
	s, ok := r.Str(key)
	if !ok || s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
