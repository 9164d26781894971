package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCallBudget_Bounded(t *testing.T) {
	b := NewCallBudget(2)

	assert.NoError(t, b.Increment())
	assert.Equal(t, 1, b.Remaining())
	assert.NoError(t, b.Increment())
	assert.Error(t, b.Increment())
	assert.Equal(t, 2, b.Count())
	assert.Equal(t, 0, b.Remaining())
}

func TestCallBudget_Unlimited(t *testing.T) {
	b := NewCallBudget(0)
	for i := 0; i < 10; i++ {
		assert.NoError(t, b.Increment())
	}
	assert.Equal(t, -1, b.Remaining())
	assert.Equal(t, 10, b.Count())
}
