package ontology

import (
	"context"

	"github.com/graphio/graphio-go/errors"
)

// Query is a fluent builder for one select call against an object type.
//
// Builders accumulate state and are not safe for concurrent use; each
// represents a single logical request under construction by one caller.
type Query struct {
	objectType *ObjectType
	tr         SelectTransport

	selectFields []string
	selectAll    bool
	predicates   []Predicate
	limitValue   int // 0 = unset
}

// NewQuery starts a query for handle over an explicit transport.
// Most callers reach queries through handle.Select/Where/All instead.
func NewQuery(handle *ObjectType, tr SelectTransport) *Query {
	return &Query{objectType: handle, tr: tr}
}

// Select adds fields to fetch. No arguments, or the literal "*", selects
// every declared field; concrete names accumulate across calls.
func (q *Query) Select(fields ...string) *Query {
	wildcard := len(fields) == 0
	for _, f := range fields {
		if f == "*" {
			wildcard = true
			break
		}
	}

	if wildcard {
		q.selectAll = true
		q.selectFields = nil
		return q
	}

	q.selectAll = false
	q.selectFields = append(q.selectFields, fields...)
	return q
}

// Where adds filter predicates. Predicates accumulate across calls and are
// AND-combined, in order, when more than one is present.
func (q *Query) Where(predicates ...Predicate) *Query {
	q.predicates = append(q.predicates, predicates...)
	return q
}

// Limit caps the result count. The most recent value wins. The value is
// passed through unvalidated; the server is authoritative.
func (q *Query) Limit(count int) *Query {
	q.limitValue = count
	return q
}

// selectList resolves the field list for execution. Select-all mode expands
// to the handle's declared fields, or to the wildcard marker when the handle
// has none (the server resolves fields in that case).
func (q *Query) selectList() []string {
	if q.selectAll {
		if fields := q.objectType.Fields(); len(fields) > 0 {
			return fields
		}
		return []string{"*"}
	}
	return q.selectFields
}

// Execute runs the query and returns the rows as the server supplied them:
// no re-sorting, no reshaping.
func (q *Query) Execute(ctx context.Context) ([]Row, error) {
	if !q.selectAll && len(q.selectFields) == 0 {
		return nil, errors.NewInvalidRequestError("query on %q has no selected fields; call Select with field names or \"*\"", q.objectType.Name())
	}

	req := SelectRequest{
		Select: q.selectList(),
		From:   q.objectType.ID(),
		Where:  combinePredicates(q.predicates),
		Limit:  q.limitValue,
	}

	rows, err := q.tr.ExecuteSelect(ctx, req)
	if err != nil {
		return nil, errors.Wrapf(err, "select from %q", q.objectType.Name())
	}
	return rows, nil
}

// Count returns the number of matching rows. Only a single representative
// field is requested: the first selected field, or the type's first declared
// field when none was selected.
func (q *Query) Count(ctx context.Context) (int, error) {
	var countField string
	switch {
	case len(q.selectFields) > 0:
		countField = q.selectFields[0]
	case len(q.objectType.fields) > 0:
		countField = q.objectType.fields[0]
	default:
		return 0, errors.NewInvalidRequestError("count on %q needs at least one declared or selected field", q.objectType.Name())
	}

	req := SelectRequest{
		Select: []string{countField},
		From:   q.objectType.ID(),
		Where:  combinePredicates(q.predicates),
	}

	rows, err := q.tr.ExecuteSelect(ctx, req)
	if err != nil {
		return 0, errors.Wrapf(err, "count %q", q.objectType.Name())
	}
	return len(rows), nil
}

// First returns the first matching row, or nil when there is none. The
// limit is overridden to 1 for this one execution and restored afterwards,
// even when the execution fails.
func (q *Query) First(ctx context.Context) (Row, error) {
	originalLimit := q.limitValue
	q.limitValue = 1
	defer func() { q.limitValue = originalLimit }()

	rows, err := q.Execute(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// Exists reports whether any row matches
func (q *Query) Exists(ctx context.Context) (bool, error) {
	row, err := q.First(ctx)
	if err != nil {
		return false, err
	}
	return row != nil, nil
}
