package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry_PreservesOrder(t *testing.T) {
	r, err := NewRegistry(
		Specialist{Name: "b", Backend: "x"},
		Specialist{Name: "a", Backend: "y"},
		Specialist{Name: "c", Backend: "x"},
	)
	require.NoError(t, err)

	assert.Equal(t, 3, r.Len())
	assert.Equal(t, []string{"b", "a", "c"}, r.Names())
	assert.Equal(t, []string{"x", "y"}, r.Backends())

	s, ok := r.Lookup("a")
	assert.True(t, ok)
	assert.Equal(t, "y", s.Backend)

	_, ok = r.Lookup("zzz")
	assert.False(t, ok)
}

func TestNewRegistry_Rejects(t *testing.T) {
	_, err := NewRegistry(Specialist{Name: "a", Backend: "x"}, Specialist{Name: "a", Backend: "y"})
	assert.ErrorIs(t, err, ErrDuplicateSpecialist)

	_, err = NewRegistry(Specialist{Name: "", Backend: "x"})
	assert.ErrorIs(t, err, ErrInvalidSpecialist)

	_, err = NewRegistry(Specialist{Name: "a"})
	assert.ErrorIs(t, err, ErrInvalidSpecialist)

	assert.Panics(t, func() { MustRegistry(Specialist{Name: "a"}) })
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, []string{"qwen-math", "gpt-conv", "qwen-coder", "ds-creative"}, r.Names())

	s, ok := r.Lookup("ds-creative")
	require.True(t, ok)
	assert.Equal(t, "deepseek-chat", s.Backend)
}

func TestRegistry_NilSafe(t *testing.T) {
	var r *Registry
	assert.Equal(t, 0, r.Len())
	assert.False(t, r.Has("x"))
	assert.Nil(t, r.Names())
	assert.Nil(t, r.All())
}
