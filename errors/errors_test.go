package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New("test error")
	require.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestIs(t *testing.T) {
	err1 := New("error 1")
	err2 := New("error 2")
	wrapped := Wrap(err1, "wrapped")

	assert.True(t, Is(wrapped, err1))
	assert.False(t, Is(wrapped, err2))
	assert.False(t, Is(nil, err1))
}

func TestSentinelChecks(t *testing.T) {
	assert.True(t, IsNotFoundError(Wrap(ErrNotFound, "object type Employee")))
	assert.False(t, IsNotFoundError(New("unrelated")))
	assert.False(t, IsNotFoundError(nil))

	assert.True(t, IsInvalidRequestError(NewInvalidRequestError("select list is empty")))
	assert.False(t, IsInvalidRequestError(ErrNotFound))

	assert.True(t, IsTimeoutError(Wrapf(ErrTimeout, "select (connect=5s, read=30s)")))
	assert.False(t, IsTimeoutError(ErrServiceUnavailable))
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("object type %q not found", "Employee")
	require.NotNil(t, err)
	assert.True(t, Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), `object type "Employee" not found`)
}

func TestCombineErrors(t *testing.T) {
	createErr := Wrap(ErrServiceUnavailable, "submit create")
	updateErr := Wrap(ErrTimeout, "submit update")

	combined := CombineErrors(createErr, updateErr)
	require.NotNil(t, combined)
	assert.True(t, Is(combined, ErrServiceUnavailable))

	// Combining with nil keeps the sole error intact
	assert.Equal(t, createErr, CombineErrors(createErr, nil))
	assert.Nil(t, CombineErrors(nil, nil))
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
	assert.Nil(t, WithStack(nil))
	assert.Nil(t, WithHint(nil, "hint"))
}

func ExampleWrap() {
	baseErr := New("connection refused")
	err := Wrap(baseErr, "fetch object types")
	fmt.Println(err)
	// Output: fetch object types: connection refused
}
