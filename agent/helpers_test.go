package agent

import (
	"testing"

	"github.com/hupe1980/colm/core"
	"github.com/hupe1980/colm/gateway"
	"github.com/hupe1980/colm/model"
)

func newTestGateway(t *testing.T, backends map[string]*model.MockModel) *gateway.Gateway {
	t.Helper()
	g := gateway.New(func(o *gateway.Options) { o.Jitter = gateway.NoJitter() })
	for id, m := range backends {
		g.Register(id, m)
	}
	return g
}

func question(id string, turns ...string) core.Question {
	return core.Question{ID: core.QuestionID(id), Turns: turns}
}

func twoSpecialists() *Registry {
	return MustRegistry(
		Specialist{Name: "math", SystemPrompt: "You do math.", Backend: "math-backend"},
		Specialist{Name: "poet", SystemPrompt: "You write poems.", Backend: "poet-backend"},
	)
}
