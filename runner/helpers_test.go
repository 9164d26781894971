package runner

import (
	"context"
	"sync"

	"github.com/hupe1980/colm"
	"github.com/hupe1980/colm/agent"
	"github.com/hupe1980/colm/core"
)

// fakeDeliberator answers every question with "<name>: <turn>" per turn.
type fakeDeliberator struct {
	registry *agent.Registry
	selected []string

	mu    sync.Mutex
	asked []core.QuestionID
}

func newFakeDeliberator(selected ...string) *fakeDeliberator {
	return &fakeDeliberator{
		registry: agent.MustRegistry(
			agent.Specialist{Name: "math", Backend: "math-backend"},
			agent.Specialist{Name: "poet", Backend: "poet-backend"},
		),
		selected: selected,
	}
}

func (f *fakeDeliberator) Registry() *agent.Registry { return f.registry }

func (f *fakeDeliberator) Deliberate(_ context.Context, q core.Question) (*colm.Outcome, error) {
	f.mu.Lock()
	f.asked = append(f.asked, q.ID)
	f.mu.Unlock()

	final := make(map[string]core.Answer)
	for _, name := range f.registry.Names() {
		turns := make([]string, len(q.Turns))
		for i, t := range q.Turns {
			turns[i] = name + ": " + t
		}
		final[name] = core.NewAnswer(q.ID, name, turns)
	}
	return &colm.Outcome{Selected: f.selected, Final: final}, nil
}

func (f *fakeDeliberator) askedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.asked)
}
