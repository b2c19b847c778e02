// Package query implements filtering, sorting and pagination over
// in-memory record sets loaded from the history store.
//
// Filters form a conjunction: a record is kept only if every condition in
// the filter set holds. Condition is a sealed set of three predicate
// shapes — exact equality, membership, and inclusive range — addressed to
// a record field by name ("element", "value", "timestamp", "type").
package query

import "github.com/bennent-g/websnap/internal/history"

// Condition is one filter predicate over a record field value.
//
// Sealed: the concrete types are Equals, OneOf and Range. Callers can
// type switch exhaustively.
type Condition interface {
	matches(v fieldValue) bool
}

// Filters maps record field names to conditions. All entries must hold
// for a record to pass (conjunction). A nil condition is skipped, which
// models the "absent/empty filter" case.
type Filters map[string]Condition

// Equals keeps records whose field equals Value exactly.
type Equals struct {
	Value string
}

// OneOf keeps records whose field is a member of Values.
type OneOf struct {
	Values []string
}

// Range keeps records whose numeric field lies in [Min, Max], inclusive.
// A nil bound is open. Only the timestamp field is numeric; Range against
// a string field never matches.
type Range struct {
	Min *int64
	Max *int64
}

// fieldValue is a record field projected for matching: either a string
// or an int64, never both.
type fieldValue struct {
	str     string
	num     int64
	numeric bool
	valid   bool
}

// project extracts a record field by name.
func project(r history.Record, field string) fieldValue {
	switch field {
	case "element":
		return fieldValue{str: r.Element, valid: true}
	case "value":
		return fieldValue{str: r.Value, valid: true}
	case "timestamp":
		return fieldValue{num: r.Timestamp, numeric: true, valid: true}
	case "type":
		return fieldValue{str: string(r.Kind), valid: true}
	default:
		return fieldValue{}
	}
}

func (c Equals) matches(v fieldValue) bool {
	return v.valid && !v.numeric && v.str == c.Value
}

func (c OneOf) matches(v fieldValue) bool {
	if !v.valid || v.numeric {
		return false
	}
	for _, candidate := range c.Values {
		if v.str == candidate {
			return true
		}
	}
	return false
}

func (c Range) matches(v fieldValue) bool {
	if !v.valid || !v.numeric {
		return false
	}
	if c.Min != nil && v.num < *c.Min {
		return false
	}
	if c.Max != nil && v.num > *c.Max {
		return false
	}
	return true
}

// Apply returns the records satisfying every condition in filters,
// preserving input order. An empty filter set returns the input unfiltered.
func Apply(records []history.Record, filters Filters) []history.Record {
	if len(filters) == 0 {
		return records
	}

	out := []history.Record{}
	for _, r := range records {
		if matchesAll(r, filters) {
			out = append(out, r)
		}
	}
	return out
}

func matchesAll(r history.Record, filters Filters) bool {
	for field, cond := range filters {
		if cond == nil {
			continue
		}
		if !cond.matches(project(r, field)) {
			return false
		}
	}
	return true
}
