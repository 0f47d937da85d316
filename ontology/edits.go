package ontology

import (
	"context"

	"github.com/graphio/graphio-go/errors"
)

// StagedObject is an in-memory, not-yet-submitted create or update.
//
// Property storage is an explicit insertion-ordered mapping; mutations made
// through Set after staging are visible at commit time because the session
// buffers hold the same pointer the caller does.
type StagedObject struct {
	objectTypeID string
	elementID    string
	propOrder    []string
	props        map[string]any
}

// NewStagedObject builds a staged object from a property map. The supplied
// map is copied; key order follows Go map iteration for the initial copy and
// insertion order afterwards.
func NewStagedObject(objectTypeID, elementID string, properties map[string]any) *StagedObject {
	obj := &StagedObject{
		objectTypeID: objectTypeID,
		elementID:    elementID,
		props:        make(map[string]any, len(properties)),
	}
	for name, value := range properties {
		obj.Set(name, value)
	}
	return obj
}

// ObjectTypeID returns the remote type identifier the object belongs to
func (o *StagedObject) ObjectTypeID() string { return o.objectTypeID }

// ElementID returns the element identifier, empty for creates
func (o *StagedObject) ElementID() string { return o.elementID }

// Set assigns a property value
func (o *StagedObject) Set(name string, value any) {
	if _, ok := o.props[name]; !ok {
		o.propOrder = append(o.propOrder, name)
	}
	o.props[name] = value
}

// Get reads a property value
func (o *StagedObject) Get(name string) (any, bool) {
	value, ok := o.props[name]
	return value, ok
}

// Properties returns a copy of the property mapping
func (o *StagedObject) Properties() map[string]any {
	out := make(map[string]any, len(o.props))
	for name, value := range o.props {
		out[name] = value
	}
	return out
}

// PropertyNames returns the property names in insertion order
func (o *StagedObject) PropertyNames() []string {
	out := make([]string, len(o.propOrder))
	copy(out, o.propOrder)
	return out
}

// Message renders the wire form of the staged object
func (o *StagedObject) Message() ObjectMessage {
	return ObjectMessage{
		ObjectTypeID: o.objectTypeID,
		Properties:   o.Properties(),
		ElementID:    o.elementID,
	}
}

// CommitResult holds the transport result per submitted kind. A kind that
// had nothing staged is absent (nil map).
type CommitResult struct {
	Creates map[string]any
	Updates map[string]any
}

// EditsBuilder batches creates and updates for potentially many types and
// commits them as one batched call per kind.
//
// Sessions are single-writer: concurrent staging or commit calls on the same
// session are not safe; use one session per goroutine or serialize access.
type EditsBuilder struct {
	tr      SubmitTransport
	creates []*StagedObject
	updates []*StagedObject
}

// NewEditsBuilder starts an empty session over tr
func NewEditsBuilder(tr SubmitTransport) *EditsBuilder {
	return &EditsBuilder{tr: tr}
}

// ForType scopes staging calls to one object type
func (b *EditsBuilder) ForType(handle *ObjectType) *TypeEditor {
	return &TypeEditor{handle: handle, builder: b}
}

// PendingEdits returns a snapshot of every staged edit in wire form, creates
// first, then updates. It has no side effects: nothing is cleared, nothing
// is submitted.
func (b *EditsBuilder) PendingEdits() []ObjectMessage {
	out := make([]ObjectMessage, 0, len(b.creates)+len(b.updates))
	for _, obj := range b.creates {
		out = append(out, obj.Message())
	}
	for _, obj := range b.updates {
		out = append(out, obj.Message())
	}
	return out
}

// Commit submits the staged creates as one batched call and the staged
// updates as another. The two submissions are independent: a create failure
// does not stop the update submission, and failures from both are combined
// into one error. Each buffer is cleared only when its own submission
// succeeded, so failed edits stay staged for retry or inspection.
func (b *EditsBuilder) Commit(ctx context.Context) (CommitResult, error) {
	var result CommitResult
	var createErr, updateErr error

	if len(b.creates) > 0 {
		messages := make([]ObjectMessage, 0, len(b.creates))
		for _, obj := range b.creates {
			messages = append(messages, obj.Message())
		}
		var res map[string]any
		res, createErr = b.tr.SubmitCreate(ctx, messages)
		if createErr == nil {
			result.Creates = res
			b.creates = nil
		} else {
			createErr = errors.Wrap(createErr, "submit creates")
		}
	}

	if len(b.updates) > 0 {
		messages := make([]ObjectMessage, 0, len(b.updates))
		for _, obj := range b.updates {
			messages = append(messages, obj.Message())
		}
		var res map[string]any
		res, updateErr = b.tr.SubmitUpdate(ctx, messages)
		if updateErr == nil {
			result.Updates = res
			b.updates = nil
		} else {
			updateErr = errors.Wrap(updateErr, "submit updates")
		}
	}

	return result, errors.CombineErrors(createErr, updateErr)
}

func (b *EditsBuilder) addCreate(obj *StagedObject) {
	b.creates = append(b.creates, obj)
}

func (b *EditsBuilder) addUpdate(obj *StagedObject) {
	b.updates = append(b.updates, obj)
}

// TypeEditor stages creates and edits for one object type
type TypeEditor struct {
	handle  *ObjectType
	builder *EditsBuilder
}

// Create stages a new object. The input is either a raw property map, or
// the nested descriptor shape {"properties": ..., "elementId": ...}; the
// nested shape is recognized by the presence of either key. The returned
// staged object is live: Set calls after staging are reflected at commit.
func (e *TypeEditor) Create(input map[string]any) *StagedObject {
	properties, elementID := normalizeDescriptor(input)
	obj := NewStagedObject(e.handle.ID(), elementID, properties)
	e.builder.addCreate(obj)
	return obj
}

// CreateObject restages a previously built staged object under this type
func (e *TypeEditor) CreateObject(obj *StagedObject) *StagedObject {
	staged := NewStagedObject(e.handle.ID(), obj.ElementID(), obj.Properties())
	e.builder.addCreate(staged)
	return staged
}

// Edit stages an update to an existing object. The input must carry a
// non-empty elementId, either nested or under the "elementId" key.
func (e *TypeEditor) Edit(input map[string]any) (*StagedObject, error) {
	properties, elementID := normalizeDescriptor(input)
	if elementID == "" {
		return nil, errors.NewInvalidRequestError("edit requires a non-empty elementId")
	}
	obj := NewStagedObject(e.handle.ID(), elementID, properties)
	e.builder.addUpdate(obj)
	return obj, nil
}

// EditObject stages an update from a previously built staged object
func (e *TypeEditor) EditObject(obj *StagedObject) (*StagedObject, error) {
	if obj.ElementID() == "" {
		return nil, errors.NewInvalidRequestError("edit requires a non-empty elementId")
	}
	staged := NewStagedObject(e.handle.ID(), obj.ElementID(), obj.Properties())
	e.builder.addUpdate(staged)
	return staged, nil
}

// normalizeDescriptor splits a staging input into properties and element id.
// A map holding a "properties" or "elementId" key is the nested descriptor
// shape; any other map is the property mapping itself.
func normalizeDescriptor(input map[string]any) (map[string]any, string) {
	if input == nil {
		return map[string]any{}, ""
	}

	_, hasProps := input["properties"]
	elementID, hasElement := input["elementId"].(string)
	if !hasProps && !hasElement {
		return input, ""
	}

	properties, _ := input["properties"].(map[string]any)
	if properties == nil {
		properties = map[string]any{}
	}
	return properties, elementID
}
