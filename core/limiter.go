package core

import (
	"fmt"
	"sync"
)

// CallBudget enforces a maximum number of backend calls for one unit of work
// (for example the attempts of a single judge game).
type CallBudget struct {
	max   int
	count int
	mu    sync.Mutex
}

// NewCallBudget creates a new budget with a max number of calls.
// If max == 0, unlimited calls are allowed.
func NewCallBudget(max int) *CallBudget {
	return &CallBudget{max: max}
}

// Increment increases the call counter and returns an error if the budget is exceeded.
func (b *CallBudget) Increment() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.max > 0 && b.count >= b.max {
		return fmt.Errorf("exceeded max backend calls: %d", b.max)
	}

	b.count++

	return nil
}

// Count returns the current number of calls made.
func (b *CallBudget) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.count
}

// Remaining returns how many calls are left before hitting the budget.
func (b *CallBudget) Remaining() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.max == 0 {
		return -1 // unlimited
	}

	return b.max - b.count
}
