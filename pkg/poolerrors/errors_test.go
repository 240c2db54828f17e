package poolerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCapturesStack(t *testing.T) {
	err := New(ErrorTypeCapacity, "discriminant too large")
	require.NotEmpty(t, err.Stack)
	assert.Equal(t, "capacity: discriminant too large", err.Error())
}

func TestWithDetailChains(t *testing.T) {
	err := New(ErrorTypeValidation, "bad config").
		WithDetail("field", "max_pool_size").
		WithDetail("value", -1)
	assert.Equal(t, "max_pool_size", err.Details["field"])
	assert.Equal(t, -1, err.Details["value"])
}

func TestWrapPreservesCause(t *testing.T) {
	base := errors.New("boom")
	wrapped := Wrap(base, ErrorTypeInternal, "registry corrupted")
	require.Error(t, wrapped)
	assert.ErrorIs(t, wrapped, base)
	assert.Equal(t, base, wrapped.Unwrap())
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrorTypeInternal, "unused"))
}

func TestIsType(t *testing.T) {
	err := New(ErrorTypeCapacity, "nope")
	assert.True(t, IsType(err, ErrorTypeCapacity))
	assert.False(t, IsType(err, ErrorTypeValidation))
	assert.False(t, IsType(errors.New("plain"), ErrorTypeCapacity))
}
