package ontology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldComparisons(t *testing.T) {
	age := NewField("age")

	tests := []struct {
		name      string
		condition Condition
		wantOp    string
		wantValue any
		hasValue  bool
	}{
		{"eq", age.Eq(30), "eq", 30, true},
		{"ne", age.Ne(30), "ne", 30, true},
		{"gt", age.Gt(30), "gt", 30, true},
		{"gte", age.Gte(30), "gte", 30, true},
		{"lt", age.Lt(30), "lt", 30, true},
		{"lte", age.Lte(30), "lte", 30, true},
		{"like", NewField("name").Like("Jo%"), "like", "Jo%", true},
		{"is_null", age.IsNull(), "is_null", nil, false},
		{"is_not_null", age.IsNotNull(), "is_not_null", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause := tt.condition.Clause()
			assert.Equal(t, tt.condition.Field, clause["field"])
			assert.Equal(t, tt.wantOp, clause["op"])

			value, present := clause["value"]
			assert.Equal(t, tt.hasValue, present)
			if tt.hasValue {
				assert.Equal(t, tt.wantValue, value)
			}
		})
	}
}

func TestInPreservesOrder(t *testing.T) {
	clause := NewField("team").In("platform", "infra", "data").Clause()
	assert.Equal(t, []any{"platform", "infra", "data"}, clause["value"])
}

// Zero, false and empty string are legitimate comparison values and must
// serialize; only the null-check operators omit value.
func TestZeroValuesSerialize(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"zero_int", 0},
		{"false_bool", false},
		{"empty_string", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause := NewField("x").Eq(tt.value).Clause()
			value, present := clause["value"]
			require.True(t, present, "value must be present for %v", tt.value)
			assert.Equal(t, tt.value, value)
		})
	}
}

func TestLogicalClause(t *testing.T) {
	age := NewField("age")
	name := NewField("name")

	combined := And(age.Gt(30), name.Like("J%"))
	clause := combined.Clause()

	operands, ok := clause["and"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, operands, 2)
	assert.Equal(t, "gt", operands[0]["op"])
	assert.Equal(t, "like", operands[1]["op"])

	orClause := Or(age.IsNull(), age.Gte(65)).Clause()
	orOperands, ok := orClause["or"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, orOperands, 2)
}

func TestNestedLogicalTree(t *testing.T) {
	age := NewField("age")
	team := NewField("team")

	tree := And(Or(age.Lt(20), age.Gt(60)), team.Eq("platform")).Clause()

	operands := tree["and"].([]map[string]any)
	require.Len(t, operands, 2)
	_, isOr := operands[0]["or"]
	assert.True(t, isOr, "first operand should be the nested or-tree")
	assert.Equal(t, "eq", operands[1]["op"])
}

func TestCombinePredicates(t *testing.T) {
	age := NewField("age")

	assert.Nil(t, combinePredicates(nil))

	single := combinePredicates([]Predicate{age.Gt(30)})
	assert.Equal(t, "gt", single["op"])

	multi := combinePredicates([]Predicate{age.Gt(30), age.Lt(60)})
	operands, ok := multi["and"].([]map[string]any)
	require.True(t, ok)
	assert.Len(t, operands, 2)
}
