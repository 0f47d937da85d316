package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/graphio/graphio-go/ontology"
)

func TestTableColumns(t *testing.T) {
	rows := []ontology.Row{
		{"name": "John", "age": 42, "dept": "eng"},
		{"name": "Jane", "badge": "b-1"},
	}

	// Explicit selection wins and keeps its order
	columns := tableColumns(rows, []string{"age", "name"}, []string{"name", "age"})
	assert.Equal(t, []string{"age", "name", "badge", "dept"}, columns)

	// Without a selection the declared fields lead, extras sorted after
	columns = tableColumns(rows, nil, []string{"name", "age"})
	assert.Equal(t, []string{"name", "age", "badge", "dept"}, columns)

	// No declared fields at all: row keys only, sorted
	columns = tableColumns(rows, nil, nil)
	assert.Equal(t, []string{"age", "badge", "dept", "name"}, columns)
}
