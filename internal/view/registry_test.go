package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_AddAndGet(t *testing.T) {
	r := NewRegistry()
	v := New()
	require.NoError(t, v.Bind("msg-1"))

	require.NoError(t, r.Add(v))

	got, ok := r.Get("msg-1")
	require.True(t, ok)
	assert.Same(t, v, got)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_Add_UnboundView_Fails(t *testing.T) {
	r := NewRegistry()

	err := r.Add(New())

	assert.Error(t, err)
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_Add_Duplicate_Fails(t *testing.T) {
	r := NewRegistry()
	v := New()
	require.NoError(t, v.Bind("msg-1"))
	require.NoError(t, r.Add(v))

	other := New()
	require.NoError(t, other.Bind("msg-1"))

	assert.Error(t, r.Add(other))
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_Get_Unknown(t *testing.T) {
	r := NewRegistry()

	_, ok := r.Get("nope")

	assert.False(t, ok)
}

func TestRegistry_Remove(t *testing.T) {
	r := NewRegistry()
	v := New()
	require.NoError(t, v.Bind("msg-1"))
	require.NoError(t, r.Add(v))

	r.Remove("msg-1")

	_, ok := r.Get("msg-1")
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())

	// Removing again is a no-op.
	r.Remove("msg-1")
}
