package ontology

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphio/graphio-go/errors"
)

func TestCreateStagesPendingEdit(t *testing.T) {
	tr := &stubTransport{}
	handle := employeeHandle(tr)
	edits := NewEditsBuilder(tr)

	obj := edits.ForType(handle).Create(map[string]any{"name": "John", "age": 30})
	require.NotNil(t, obj)
	assert.Empty(t, obj.ElementID())

	pending := edits.PendingEdits()
	require.Len(t, pending, 1)
	assert.Equal(t, "ot-employee", pending[0].ObjectTypeID)
	assert.Equal(t, map[string]any{"name": "John", "age": 30}, pending[0].Properties)
	assert.Empty(t, pending[0].ElementID)
}

func TestCreateNestedDescriptorShape(t *testing.T) {
	tr := &stubTransport{}
	handle := employeeHandle(tr)
	edits := NewEditsBuilder(tr)

	obj := edits.ForType(handle).Create(map[string]any{
		"elementId":  "e-7",
		"properties": map[string]any{"name": "Jane"},
	})
	assert.Equal(t, "e-7", obj.ElementID())
	assert.Equal(t, map[string]any{"name": "Jane"}, obj.Properties())
}

func TestStagedObjectMutationVisibleAtCommit(t *testing.T) {
	tr := &stubTransport{}
	handle := employeeHandle(tr)
	edits := NewEditsBuilder(tr)

	obj := edits.ForType(handle).Create(map[string]any{"name": "John"})
	// Mutating the returned handle after staging is reflected in the batch
	obj.Set("age", 31)

	_, err := edits.Commit(context.Background())
	require.NoError(t, err)

	require.Len(t, tr.createCalls, 1)
	sent := tr.createCalls[0][0]
	assert.Equal(t, map[string]any{"name": "John", "age": 31}, sent.Properties)
}

func TestStagedObjectPropertyOrder(t *testing.T) {
	obj := NewStagedObject("ot-1", "", nil)
	obj.Set("b", 1)
	obj.Set("a", 2)
	obj.Set("b", 3) // overwrite keeps original position

	assert.Equal(t, []string{"b", "a"}, obj.PropertyNames())
	value, ok := obj.Get("b")
	require.True(t, ok)
	assert.Equal(t, 3, value)

	_, ok = obj.Get("missing")
	assert.False(t, ok)
}

func TestEditRequiresElementID(t *testing.T) {
	tr := &stubTransport{}
	handle := employeeHandle(tr)
	edits := NewEditsBuilder(tr)

	_, err := edits.ForType(handle).Edit(map[string]any{
		"properties": map[string]any{"name": "Jane"},
	})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidRequestError(err))
	assert.Empty(t, edits.PendingEdits())

	obj, err := edits.ForType(handle).Edit(map[string]any{
		"elementId":  "e-1",
		"properties": map[string]any{"name": "Jane"},
	})
	require.NoError(t, err)
	assert.Equal(t, "e-1", obj.ElementID())
}

func TestEditObjectRequiresElementID(t *testing.T) {
	tr := &stubTransport{}
	handle := employeeHandle(tr)
	edits := NewEditsBuilder(tr)

	_, err := edits.ForType(handle).EditObject(NewStagedObject("ot-employee", "", nil))
	require.Error(t, err)
	assert.True(t, errors.IsInvalidRequestError(err))
}

func TestPendingEditsOrderAndNoSideEffects(t *testing.T) {
	tr := &stubTransport{}
	handle := employeeHandle(tr)
	edits := NewEditsBuilder(tr)
	editor := edits.ForType(handle)

	editor.Create(map[string]any{"name": "new-1"})
	_, err := editor.Edit(map[string]any{"elementId": "e-1", "properties": map[string]any{"name": "upd-1"}})
	require.NoError(t, err)
	editor.Create(map[string]any{"name": "new-2"})

	pending := edits.PendingEdits()
	require.Len(t, pending, 3)
	// Creates first, then updates
	assert.Empty(t, pending[0].ElementID)
	assert.Empty(t, pending[1].ElementID)
	assert.Equal(t, "e-1", pending[2].ElementID)

	// Snapshot only: buffers untouched, nothing submitted
	assert.Len(t, edits.PendingEdits(), 3)
	assert.Empty(t, tr.createCalls)
	assert.Empty(t, tr.updateCalls)
}

func TestCommitSuccessClearsBuffers(t *testing.T) {
	tr := &stubTransport{}
	handle := employeeHandle(tr)
	edits := NewEditsBuilder(tr)
	editor := edits.ForType(handle)

	editor.Create(map[string]any{"name": "John"})
	_, err := editor.Edit(map[string]any{"elementId": "e-1", "properties": map[string]any{"age": 40}})
	require.NoError(t, err)

	result, err := edits.Commit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"inserted": 1}, result.Creates)
	assert.Equal(t, map[string]any{"updated": 1}, result.Updates)

	assert.Empty(t, edits.PendingEdits())
	require.Len(t, tr.createCalls, 1)
	require.Len(t, tr.updateCalls, 1)
}

func TestCommitCreateFailureKeepsBufferAndSubmitsUpdates(t *testing.T) {
	tr := &stubTransport{createErr: errors.New("insert rejected")}
	handle := employeeHandle(tr)
	edits := NewEditsBuilder(tr)
	editor := edits.ForType(handle)

	editor.Create(map[string]any{"name": "John"})
	_, err := editor.Edit(map[string]any{"elementId": "e-1", "properties": map[string]any{"age": 40}})
	require.NoError(t, err)

	result, err := edits.Commit(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "submit creates")

	// Updates were still attempted and succeeded independently
	require.Len(t, tr.updateCalls, 1)
	assert.Equal(t, map[string]any{"updated": 1}, result.Updates)

	// The failed creates stay staged for retry
	pending := edits.PendingEdits()
	require.Len(t, pending, 1)
	assert.Empty(t, pending[0].ElementID)

	// Retry succeeds once the transport recovers
	tr.createErr = nil
	_, err = edits.Commit(context.Background())
	require.NoError(t, err)
	assert.Empty(t, edits.PendingEdits())
}

func TestCommitBothKindsFail(t *testing.T) {
	tr := &stubTransport{
		createErr: errors.New("create boom"),
		updateErr: errors.New("update boom"),
	}
	handle := employeeHandle(tr)
	edits := NewEditsBuilder(tr)
	editor := edits.ForType(handle)

	editor.Create(map[string]any{"name": "John"})
	_, err := editor.Edit(map[string]any{"elementId": "e-1", "properties": map[string]any{}})
	require.NoError(t, err)

	_, err = edits.Commit(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create boom")

	// Both buffers retained
	assert.Len(t, edits.PendingEdits(), 2)
}

func TestCommitEmptySessionIsNoop(t *testing.T) {
	tr := &stubTransport{}
	edits := NewEditsBuilder(tr)

	result, err := edits.Commit(context.Background())
	require.NoError(t, err)
	assert.Nil(t, result.Creates)
	assert.Nil(t, result.Updates)
	assert.Empty(t, tr.createCalls)
	assert.Empty(t, tr.updateCalls)
}

func TestNamespaceMutations(t *testing.T) {
	tr := &stubTransport{}
	ns := newTestNamespace(tr)

	_, err := ns.Insert(context.Background(), ObjectMessage{
		ObjectTypeID: "ot-1",
		Properties:   map[string]any{"name": "John"},
	})
	require.NoError(t, err)
	require.Len(t, tr.createCalls, 1)

	_, err = ns.Update(context.Background(), ObjectMessage{ObjectTypeID: "ot-1"})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidRequestError(err))

	_, err = ns.Delete(context.Background(), ObjectMessage{ObjectTypeID: "ot-1", ElementID: "e-1"})
	require.NoError(t, err)
	require.Len(t, tr.deleteCalls, 1)
}
