package agent

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/hupe1980/colm/core"
	"github.com/hupe1980/colm/gateway"
	"github.com/hupe1980/colm/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestDispatcher_SingleTurn(t *testing.T) {
	defer goleak.VerifyNone(t)

	poet := model.NewMockModel("poet").Enqueue("roses")
	g := newTestGateway(t, map[string]*model.MockModel{"poet-backend": poet})

	out := NewDispatcher(g).Dispatch(context.Background(), []string{"poet"}, twoSpecialists(), question("q1", "Explain X"))

	require.Len(t, out, 1)
	ans := out["poet"]
	assert.Equal(t, []string{"roses"}, ans.Turns())
	assert.Equal(t, "poet", ans.ModelID)
	assert.Equal(t, core.QuestionID("q1"), ans.QuestionID)
	assert.NotEmpty(t, ans.AnswerID)
}

func TestDispatcher_TurnAlignmentWithFailures(t *testing.T) {
	defer goleak.VerifyNone(t)

	math := model.NewMockModel("math").EnqueueError(errors.New("timeout")).Enqueue("4")
	poet := model.NewMockModel("poet").Enqueue("first", "second")
	g := newTestGateway(t, map[string]*model.MockModel{"math-backend": math, "poet-backend": poet})

	q := question("q2", "turn one", "turn two")
	out := NewDispatcher(g).Dispatch(context.Background(), []string{"math", "poet"}, twoSpecialists(), q)

	require.Len(t, out, 2)
	assert.Equal(t, []string{"", "4"}, out["math"].Turns())
	assert.Equal(t, []string{"first", "second"}, out["poet"].Turns())

	reqs := poet.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, []core.Message{
		core.SystemMessage("You write poems."),
		core.UserMessage("turn one"),
		core.AssistantMessage("first"),
		core.UserMessage("turn two"),
	}, reqs[1].Messages)

	// The failed first turn still occupies an assistant slot.
	mreqs := math.Requests()
	require.Len(t, mreqs, 2)
	assert.Equal(t, []core.Message{
		core.SystemMessage("You do math."),
		core.UserMessage("turn one"),
		core.AssistantMessage(""),
		core.UserMessage("turn two"),
	}, mreqs[1].Messages)
}

func TestDispatcher_SkipsUnknownNames(t *testing.T) {
	poet := model.NewMockModel("poet")
	g := newTestGateway(t, map[string]*model.MockModel{"poet-backend": poet})

	out := NewDispatcher(g).Dispatch(context.Background(), []string{"chef", "poet"}, twoSpecialists(), question("q1", "hi"))
	assert.Len(t, out, 1)
	assert.Contains(t, out, "poet")
}

func TestDispatcher_MissingBackendYieldsBlankTurns(t *testing.T) {
	g := newTestGateway(t, nil)

	out := NewDispatcher(g).Dispatch(context.Background(), []string{"math"}, twoSpecialists(), question("q1", "a", "b", "c"))
	assert.Equal(t, []string{"", "", ""}, out["math"].Turns())
}

func TestDispatcher_ForwardsBackendAndMaxTokens(t *testing.T) {
	var (
		mu   sync.Mutex
		seen = map[string]int64{}
	)
	caller := gateway.CallerFunc(func(_ context.Context, backend string, req model.Request) gateway.Result {
		mu.Lock()
		seen[backend] = req.MaxTokens
		mu.Unlock()
		return gateway.Result{Backend: backend, Text: "ok from " + backend}
	})

	d := NewDispatcher(caller, func(o *DispatcherOptions) { o.MaxTokens = 256 })
	out := d.Dispatch(context.Background(), []string{"math", "poet"}, twoSpecialists(), question("q1", "hi"))

	assert.Equal(t, []string{"ok from math-backend"}, out["math"].Turns())
	assert.Equal(t, []string{"ok from poet-backend"}, out["poet"].Turns())
	assert.Equal(t, map[string]int64{"math-backend": 256, "poet-backend": 256}, seen)
}
