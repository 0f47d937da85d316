// Package codegen keeps generated Go type constants in sync with the
// ontology schema. A Watcher consumes schema change events from the broker
// and regenerates one source file per object type.
package codegen

import (
	"context"

	"github.com/graphio/graphio-go/errors"
	"github.com/graphio/graphio-go/ontology"
)

// TypeSchema is the full schema of one object type
type TypeSchema struct {
	ID         string
	Name       string
	Properties []ontology.PropertyInfo
}

// SchemaFetcher loads type schemas from the schema service. It always
// re-fetches; change event payloads are treated as a trigger, never as a
// source of truth.
type SchemaFetcher struct {
	tr ontology.SchemaTransport
}

// NewSchemaFetcher wraps a schema transport
func NewSchemaFetcher(tr ontology.SchemaTransport) *SchemaFetcher {
	return &SchemaFetcher{tr: tr}
}

// FetchObjectType loads the current schema of one object type
func (f *SchemaFetcher) FetchObjectType(ctx context.Context, id string) (TypeSchema, error) {
	if id == "" {
		return TypeSchema{}, errors.NewInvalidRequestError("object type id is empty")
	}

	info, err := f.tr.FetchObjectTypeByID(ctx, id)
	if err != nil {
		return TypeSchema{}, errors.Wrapf(err, "fetch schema for %s", id)
	}
	properties, err := f.tr.FetchObjectTypeProperties(ctx, id)
	if err != nil {
		return TypeSchema{}, errors.Wrapf(err, "fetch properties for %s", id)
	}

	return TypeSchema{ID: info.ID, Name: info.Name, Properties: properties}, nil
}

// FetchLinkType is declared for symmetry; the schema service does not
// expose link type properties yet
func (f *SchemaFetcher) FetchLinkType(ctx context.Context, id string) (TypeSchema, error) {
	return TypeSchema{}, errors.New("link type schemas are not supported")
}
