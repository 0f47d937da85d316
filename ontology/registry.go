package ontology

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/graphio/graphio-go/errors"
)

// Namespace maps type names to locally cached handles, loading type metadata
// from the schema service on first use.
//
// Registration is guarded by a single mutex covering the whole
// check-then-insert sequence, so concurrent registrations of the same name
// resolve to exactly one handle. The lazy load path fetches outside the lock;
// a race may fetch the same schema twice, but only one handle survives.
type Namespace struct {
	tr  Transport
	log *zap.SugaredLogger

	mu               sync.Mutex
	objectTypes      map[string]*ObjectType
	objectTypeIDName map[string]string
	linkTypes        map[string]*ObjectType
	linkTypeIDName   map[string]string
}

// NewNamespace creates a namespace over the given transport
func NewNamespace(tr Transport, log *zap.SugaredLogger) *Namespace {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Namespace{
		tr:               tr,
		log:              log.Named("ontology"),
		objectTypes:      make(map[string]*ObjectType),
		objectTypeIDName: make(map[string]string),
		linkTypes:        make(map[string]*ObjectType),
		linkTypeIDName:   make(map[string]string),
	}
}

// Transport returns the transport this namespace was built over
func (ns *Namespace) Transport() Transport { return ns.tr }

// RegisterObjectType registers a type handle manually.
//
// Idempotent: if name is already registered the existing handle is returned
// unchanged and the supplied id and fields are silently ignored.
func (ns *Namespace) RegisterObjectType(name, id string, fields []string) *ObjectType {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	return ns.registerObjectTypeLocked(name, id, fields)
}

func (ns *Namespace) registerObjectTypeLocked(name, id string, fields []string) *ObjectType {
	if existing, ok := ns.objectTypes[name]; ok {
		return existing
	}

	handle := &ObjectType{
		id:     id,
		name:   name,
		fields: append([]string(nil), fields...),
		tr:     ns.tr,
	}
	ns.objectTypes[name] = handle
	ns.objectTypeIDName[id] = name

	ns.log.Debugw("registered object type", "name", name, "id", id, "fields", len(fields))
	return handle
}

// LoadObjectTypeByName fetches a type by name from the schema service and
// registers it. Raises on any failure; callers wanting best-effort lookup
// use GetObjectType instead.
//
// When the lookup returns several candidates, an exact name match is
// preferred; otherwise the first candidate wins (server-defined order).
func (ns *Namespace) LoadObjectTypeByName(ctx context.Context, name string) (*ObjectType, error) {
	if handle := ns.cachedObjectType(name); handle != nil {
		return handle, nil
	}

	candidates, err := ns.tr.FetchObjectTypes(ctx, name)
	if err != nil {
		return nil, errors.Wrapf(err, "load object type %q", name)
	}
	if len(candidates) == 0 {
		return nil, errors.NewNotFoundError("object type %q", name)
	}

	info := candidates[0]
	for _, candidate := range candidates {
		if candidate.Name == name {
			info = candidate
			break
		}
	}

	return ns.loadAndRegister(ctx, info)
}

// LoadObjectTypeByID fetches a type by id from the schema service and
// registers it. Raises on any failure.
func (ns *Namespace) LoadObjectTypeByID(ctx context.Context, id string) (*ObjectType, error) {
	ns.mu.Lock()
	if name, ok := ns.objectTypeIDName[id]; ok {
		handle := ns.objectTypes[name]
		ns.mu.Unlock()
		return handle, nil
	}
	ns.mu.Unlock()

	info, err := ns.tr.FetchObjectTypeByID(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "load object type %s", id)
	}

	return ns.loadAndRegister(ctx, info)
}

func (ns *Namespace) loadAndRegister(ctx context.Context, info TypeInfo) (*ObjectType, error) {
	if info.ID == "" || info.Name == "" {
		return nil, errors.NewInvalidRequestError("schema service returned incomplete type data: id=%q name=%q", info.ID, info.Name)
	}

	properties, err := ns.tr.FetchObjectTypeProperties(ctx, info.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "load properties of object type %q", info.Name)
	}

	fields := make([]string, 0, len(properties))
	for _, p := range properties {
		fields = append(fields, p.Name)
	}

	return ns.RegisterObjectType(info.Name, info.ID, fields), nil
}

// GetObjectType returns the cached handle for name, lazily loading it on
// first use. Returns nil when the type cannot be resolved; callers that
// need the error detail use LoadObjectTypeByName.
func (ns *Namespace) GetObjectType(ctx context.Context, name string) *ObjectType {
	handle, err := ns.LoadObjectTypeByName(ctx, name)
	if err != nil {
		ns.log.Debugw("object type lookup failed", "name", name, "error", err)
		return nil
	}
	return handle
}

func (ns *Namespace) cachedObjectType(name string) *ObjectType {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	return ns.objectTypes[name]
}

// AddProperty appends a field name to a registered type's declared list
func (ns *Namespace) AddProperty(typeName, fieldName string) error {
	ns.mu.Lock()
	defer ns.mu.Unlock()

	handle, ok := ns.objectTypes[typeName]
	if !ok {
		return errors.NewNotFoundError("object type %q is not registered", typeName)
	}
	handle.fields = append(handle.fields, fieldName)
	return nil
}

// ObjectTypeNames lists the cached object type names
func (ns *Namespace) ObjectTypeNames() []string {
	ns.mu.Lock()
	defer ns.mu.Unlock()

	names := make([]string, 0, len(ns.objectTypes))
	for name := range ns.objectTypes {
		names = append(names, name)
	}
	return names
}

// RegisterLinkType registers a link type handle manually. Link types share
// the object type handle shape; idempotency matches RegisterObjectType.
func (ns *Namespace) RegisterLinkType(name, id string, fields []string) *ObjectType {
	ns.mu.Lock()
	defer ns.mu.Unlock()

	if existing, ok := ns.linkTypes[name]; ok {
		return existing
	}

	handle := &ObjectType{
		id:     id,
		name:   name,
		fields: append([]string(nil), fields...),
		tr:     ns.tr,
	}
	ns.linkTypes[name] = handle
	ns.linkTypeIDName[id] = name
	return handle
}

// GetLinkType returns the cached link type handle, or nil when absent.
// There is no lazy load path; the service does not expose link type
// lookup yet.
func (ns *Namespace) GetLinkType(name string) *ObjectType {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	return ns.linkTypes[name]
}

// LoadLinkType is unsupported until the service grows a link type API
func (ns *Namespace) LoadLinkType(ctx context.Context, name string) (*ObjectType, error) {
	return nil, errors.New("link type lookup is not supported by the ontology service yet")
}

// LinkTypeNames lists the cached link type names
func (ns *Namespace) LinkTypeNames() []string {
	ns.mu.Lock()
	defer ns.mu.Unlock()

	names := make([]string, 0, len(ns.linkTypes))
	for name := range ns.linkTypes {
		names = append(names, name)
	}
	return names
}

// ClearCache atomically drops every cached object and link type.
// No partially cleared state is observable to other goroutines.
func (ns *Namespace) ClearCache() {
	ns.mu.Lock()
	defer ns.mu.Unlock()

	ns.objectTypes = make(map[string]*ObjectType)
	ns.objectTypeIDName = make(map[string]string)
	ns.linkTypes = make(map[string]*ObjectType)
	ns.linkTypeIDName = make(map[string]string)
}

// Edits starts a fresh edit session over this namespace's transport
func (ns *Namespace) Edits() *EditsBuilder {
	return NewEditsBuilder(ns.tr)
}
