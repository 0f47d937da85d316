package ontology

// Op is a comparison operator in its wire mnemonic form
type Op string

const (
	OpEq        Op = "eq"
	OpNe        Op = "ne"
	OpGt        Op = "gt"
	OpGte       Op = "gte"
	OpLt        Op = "lt"
	OpLte       Op = "lte"
	OpLike      Op = "like"
	OpIn        Op = "in"
	OpIsNull    Op = "is_null"
	OpIsNotNull Op = "is_not_null"
)

// Predicate is a boolean-valued condition tree used to filter query results.
// Clause renders the wire shape the server expects.
type Predicate interface {
	Clause() map[string]any
}

// Condition is a single field/operator/value comparison.
//
// hasValue is an explicit presence sentinel: zero, false and "" are legal
// comparison values and serialize; only the null-check operators omit value.
type Condition struct {
	Field    string
	Op       Op
	Value    any
	hasValue bool
}

// NewCondition builds a comparison carrying a value
func NewCondition(field string, op Op, value any) Condition {
	return Condition{Field: field, Op: op, Value: value, hasValue: true}
}

// NewNullCheck builds a value-less comparison (is_null / is_not_null)
func NewNullCheck(field string, op Op) Condition {
	return Condition{Field: field, Op: op}
}

// Clause renders the condition as {field, op, value?}
func (c Condition) Clause() map[string]any {
	clause := map[string]any{
		"field": c.Field,
		"op":    string(c.Op),
	}
	if c.hasValue {
		clause["value"] = c.Value
	}
	return clause
}

// Logical combines sub-predicates with "and" or "or"
type Logical struct {
	Operator string
	Operands []Predicate
}

// And combines predicates with AND, in the order supplied
func And(predicates ...Predicate) Logical {
	return Logical{Operator: "and", Operands: predicates}
}

// Or combines predicates with OR, in the order supplied
func Or(predicates ...Predicate) Logical {
	return Logical{Operator: "or", Operands: predicates}
}

// Clause renders the combination as {and: [...]} or {or: [...]}
func (l Logical) Clause() map[string]any {
	operands := make([]map[string]any, 0, len(l.Operands))
	for _, p := range l.Operands {
		operands = append(operands, p.Clause())
	}
	return map[string]any{l.Operator: operands}
}

// combinePredicates applies the multi-predicate rule: zero predicates yield
// no clause, one is passed through as-is, more are AND-combined in order.
func combinePredicates(predicates []Predicate) map[string]any {
	switch len(predicates) {
	case 0:
		return nil
	case 1:
		return predicates[0].Clause()
	default:
		return And(predicates...).Clause()
	}
}

// Field builds predicates for one declared property of an object type.
// Obtained via ObjectType.Field.
type Field struct {
	name string
}

// NewField returns a predicate builder for an arbitrary field name,
// for callers querying fields the schema fetch did not declare.
func NewField(name string) Field {
	return Field{name: name}
}

// Name returns the field name
func (f Field) Name() string { return f.name }

// Eq matches rows where the field equals value
func (f Field) Eq(value any) Condition { return NewCondition(f.name, OpEq, value) }

// Ne matches rows where the field does not equal value
func (f Field) Ne(value any) Condition { return NewCondition(f.name, OpNe, value) }

// Gt matches rows where the field is greater than value
func (f Field) Gt(value any) Condition { return NewCondition(f.name, OpGt, value) }

// Gte matches rows where the field is greater than or equal to value
func (f Field) Gte(value any) Condition { return NewCondition(f.name, OpGte, value) }

// Lt matches rows where the field is less than value
func (f Field) Lt(value any) Condition { return NewCondition(f.name, OpLt, value) }

// Lte matches rows where the field is less than or equal to value
func (f Field) Lte(value any) Condition { return NewCondition(f.name, OpLte, value) }

// Like matches rows where the field matches a SQL LIKE pattern
func (f Field) Like(pattern string) Condition { return NewCondition(f.name, OpLike, pattern) }

// In matches rows where the field is one of values, order preserved
func (f Field) In(values ...any) Condition { return NewCondition(f.name, OpIn, values) }

// IsNull matches rows where the field is null
func (f Field) IsNull() Condition { return NewNullCheck(f.name, OpIsNull) }

// IsNotNull matches rows where the field is not null
func (f Field) IsNotNull() Condition { return NewNullCheck(f.name, OpIsNotNull) }
