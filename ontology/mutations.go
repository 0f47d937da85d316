package ontology

import (
	"context"

	"github.com/graphio/graphio-go/errors"
)

// Single-object conveniences over the batched submit operations, for callers
// that have one mutation and no use for an edit session.

// Insert submits one create
func (ns *Namespace) Insert(ctx context.Context, msg ObjectMessage) (map[string]any, error) {
	return ns.tr.SubmitCreate(ctx, []ObjectMessage{msg})
}

// Update submits one update; the message must carry an element id
func (ns *Namespace) Update(ctx context.Context, msg ObjectMessage) (map[string]any, error) {
	if msg.ElementID == "" {
		return nil, errors.NewInvalidRequestError("update requires a non-empty elementId")
	}
	return ns.tr.SubmitUpdate(ctx, []ObjectMessage{msg})
}

// Delete submits one delete; the message must carry an element id
func (ns *Namespace) Delete(ctx context.Context, msg ObjectMessage) (map[string]any, error) {
	if msg.ElementID == "" {
		return nil, errors.NewInvalidRequestError("delete requires a non-empty elementId")
	}
	return ns.tr.SubmitDelete(ctx, []ObjectMessage{msg})
}
