package ontology

import (
	"context"
	"time"
)

// TypeInfo is one object or link type as returned by the schema service
type TypeInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// PropertyInfo is one declared property of a type
type PropertyInfo struct {
	Name         string `json:"name"`
	Type         string `json:"type"` // e.g. "STRING", "INTEGER", "DOUBLE"
	Nullable     bool   `json:"nullable"`
	DefaultValue any    `json:"defaultValue,omitempty"`
}

// SelectRequest is the wire shape of one select call
type SelectRequest struct {
	Select []string       `json:"select"`
	From   string         `json:"from"`
	Where  map[string]any `json:"where,omitempty"`
	Limit  int            `json:"limit,omitempty"`
}

// Row is one result row as returned by the server, unmodified
type Row map[string]any

// ObjectMessage is the wire shape of one staged create/update/delete.
// Exactly one of ObjectTypeID and LinkType identifies the schema; the link
// endpoint ids apply to link messages only.
type ObjectMessage struct {
	ObjectTypeID    string         `json:"objectTypeId,omitempty"`
	LinkType        string         `json:"linkType,omitempty"`
	Properties      map[string]any `json:"properties"`
	ElementID       string         `json:"elementId,omitempty"`
	SourceElementID string         `json:"sourceElementId,omitempty"`
	TargetElementID string         `json:"targetElementId,omitempty"`
}

// Mutation event types carried in the envelope's eventType field
const (
	EventInsert = "INSERT"
	EventUpdate = "UPDATE"
	EventDelete = "DELETE"
)

// MutationEnvelope wraps a batch of object messages for submission. The
// same shape travels over HTTP and over the message queue.
type MutationEnvelope struct {
	EventType    string          `json:"eventType"`
	Timestamp    int64           `json:"timestamp"` // epoch millis
	ObjectInputs []ObjectMessage `json:"objectInputs"`
}

// NewMutationEnvelope stamps a batch with the event type and current time
func NewMutationEnvelope(eventType string, messages []ObjectMessage) MutationEnvelope {
	return MutationEnvelope{
		EventType:    eventType,
		Timestamp:    time.Now().UnixMilli(),
		ObjectInputs: messages,
	}
}

// SchemaTransport loads type metadata from the schema service
type SchemaTransport interface {
	// FetchObjectTypes looks up object types, optionally filtered by name.
	// The server may return several candidates for one name.
	FetchObjectTypes(ctx context.Context, name string) ([]TypeInfo, error)
	// FetchObjectTypeByID fetches one object type
	FetchObjectTypeByID(ctx context.Context, id string) (TypeInfo, error)
	// FetchObjectTypeProperties fetches the declared property list of a type
	FetchObjectTypeProperties(ctx context.Context, id string) ([]PropertyInfo, error)
}

// SelectTransport executes read queries
type SelectTransport interface {
	ExecuteSelect(ctx context.Context, req SelectRequest) ([]Row, error)
}

// SubmitTransport flushes batched mutations. Both the HTTP client and the
// MQ publisher satisfy this; the edit session does not care which is wired in.
type SubmitTransport interface {
	SubmitCreate(ctx context.Context, messages []ObjectMessage) (map[string]any, error)
	SubmitUpdate(ctx context.Context, messages []ObjectMessage) (map[string]any, error)
	SubmitDelete(ctx context.Context, messages []ObjectMessage) (map[string]any, error)
}

// Transport is the full collaborator surface the ontology core consumes
type Transport interface {
	SchemaTransport
	SelectTransport
	SubmitTransport
}
