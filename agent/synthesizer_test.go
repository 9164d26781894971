package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/hupe1980/colm/core"
	"github.com/hupe1980/colm/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizer_SkipsEmptyTurns(t *testing.T) {
	synth := model.NewMockModel("synth").Enqueue("summary of turn 1", "summary of turn 3")
	g := newTestGateway(t, map[string]*model.MockModel{"synth": synth})
	s := NewSynthesizer(g, func(o *SynthesizerOptions) { o.Backend = "synth" })

	q := question("q1", "t1", "t2", "t3")
	answers := map[string]core.Answer{
		"poet": core.NewAnswer(q.ID, "poet", []string{"p1", "", "p3"}),
		"math": core.NewAnswer(q.ID, "math", []string{"m1", "  ", ""}),
	}

	got := s.Synthesize(context.Background(), answers, q)
	assert.Equal(t, []core.Synthesis{
		{Turn: 0, Text: "summary of turn 1"},
		{Turn: 2, Text: "summary of turn 3"},
	}, got)

	reqs := synth.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, DefaultSynthesisPrompt, reqs[0].Messages[0].Content)
	assert.Equal(t,
		"Round 1 question: t1\nHere are responses from different models:\n\nmath:\nm1\n\npoet:\np1\n\nPlease synthesize and refine these responses into one answer.",
		reqs[0].Messages[1].Content,
	)
	assert.Equal(t,
		"Round 3 question: t3\nHere are responses from different models:\n\npoet:\np3\n\nPlease synthesize and refine these responses into one answer.",
		reqs[1].Messages[1].Content,
	)
}

func TestSynthesizer_FailureKeepsBlankEntry(t *testing.T) {
	synth := model.NewMockModel("synth").EnqueueError(errors.New("down"))
	g := newTestGateway(t, map[string]*model.MockModel{"synth": synth})
	s := NewSynthesizer(g, func(o *SynthesizerOptions) { o.Backend = "synth" })

	q := question("q1", "t1")
	got := s.Synthesize(context.Background(), map[string]core.Answer{
		"poet": core.NewAnswer(q.ID, "poet", []string{"p1"}),
	}, q)

	assert.Equal(t, []core.Synthesis{{Turn: 0, Text: ""}}, got)
}

func TestSynthesizer_NoAnswers(t *testing.T) {
	synth := model.NewMockModel("synth")
	g := newTestGateway(t, map[string]*model.MockModel{"synth": synth})
	s := NewSynthesizer(g, func(o *SynthesizerOptions) { o.Backend = "synth" })

	assert.Empty(t, s.Synthesize(context.Background(), nil, question("q1", "t1")))
	assert.Equal(t, 0, synth.Calls())
}
