package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// ParseError reports a response body that does not match the RegionResult schema.
// Index is -1 when the problem is with the body as a whole.
type ParseError struct {
	Index  int
	Field  string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	switch {
	case e.Index < 0 && e.Err != nil:
		return fmt.Sprintf("parse result set: %s: %v", e.Reason, e.Err)
	case e.Index < 0:
		return "parse result set: " + e.Reason
	case e.Err != nil:
		return fmt.Sprintf("parse result set: entry %d: %s: %s: %v", e.Index, e.Field, e.Reason, e.Err)
	default:
		return fmt.Sprintf("parse result set: entry %d: %s: %s", e.Index, e.Field, e.Reason)
	}
}

func (e *ParseError) Unwrap() error { return e.Err }

// wireResult mirrors RegionResult with pointers so absent and null fields can be told apart.
type wireResult struct {
	Region       *string          `json:"region"`
	Status       *string          `json:"status"`
	ResponseTime *json.RawMessage `json:"responseTime"`
}

// ParseResultSet decodes and validates a checking-service response body.
func ParseResultSet(body []byte) (ResultSet, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &ParseError{Index: -1, Reason: "body is not a JSON array"}
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, &ParseError{Index: -1, Reason: "invalid JSON", Err: err}
	}

	out := make(ResultSet, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for i, item := range raw {
		r, err := parseEntry(i, item)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[r.Region]; dup {
			return nil, &ParseError{Index: i, Field: "region", Reason: fmt.Sprintf("duplicate region %q", r.Region)}
		}
		seen[r.Region] = struct{}{}
		out = append(out, r)
	}
	return out, nil
}

func parseEntry(i int, item json.RawMessage) (RegionResult, error) {
	t := bytes.TrimSpace(item)
	if len(t) == 0 || t[0] != '{' {
		return RegionResult{}, &ParseError{Index: i, Field: "entry", Reason: "not an object"}
	}

	var w wireResult
	if err := json.Unmarshal(t, &w); err != nil {
		return RegionResult{}, &ParseError{Index: i, Field: "entry", Reason: "wrong field type", Err: err}
	}
	if w.Region == nil || *w.Region == "" {
		return RegionResult{}, &ParseError{Index: i, Field: "region", Reason: "missing or empty"}
	}
	if w.Status == nil {
		return RegionResult{}, &ParseError{Index: i, Field: "status", Reason: "missing"}
	}

	r := RegionResult{Region: *w.Region, Status: *w.Status}
	if w.ResponseTime == nil || string(*w.ResponseTime) == "null" {
		return r, nil
	}

	var ms float64
	if err := json.Unmarshal(*w.ResponseTime, &ms); err != nil {
		return RegionResult{}, &ParseError{Index: i, Field: "responseTime", Reason: "not a number", Err: err}
	}
	if ms < 0 || math.IsInf(ms, 0) || math.IsNaN(ms) {
		return RegionResult{}, &ParseError{Index: i, Field: "responseTime", Reason: "out of range"}
	}
	r.ResponseTime = &ms
	return r, nil
}
