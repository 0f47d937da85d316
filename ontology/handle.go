package ontology

// ObjectType is the local handle for one remote entity type.
//
// Handles are created and owned by a Namespace, one per distinct type name,
// and shared by reference across every query and edit session that touches
// the type. They are never mutated after registration except to append a
// field name through Namespace.AddProperty.
type ObjectType struct {
	id     string
	name   string
	fields []string
	tr     Transport
}

// ID returns the remote type identifier
func (t *ObjectType) ID() string { return t.id }

// Name returns the human-readable type name
func (t *ObjectType) Name() string { return t.name }

// Fields returns a copy of the declared property names, in schema order.
// May be empty when the schema fetch yielded none.
func (t *ObjectType) Fields() []string {
	out := make([]string, len(t.fields))
	copy(out, t.fields)
	return out
}

// Field returns a predicate builder for the named property
func (t *ObjectType) Field(name string) Field {
	return NewField(name)
}

// Select starts a query with an explicit field list.
// Select() or Select("*") selects every declared field.
func (t *ObjectType) Select(fields ...string) *Query {
	return t.newQuery().Select(fields...)
}

// Where starts a query with filter predicates
func (t *ObjectType) Where(predicates ...Predicate) *Query {
	return t.newQuery().Where(predicates...)
}

// All starts an unconstrained query
func (t *ObjectType) All() *Query {
	return t.newQuery()
}

func (t *ObjectType) newQuery() *Query {
	return &Query{objectType: t, tr: t.tr}
}
