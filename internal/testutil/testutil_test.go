package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/colm/core"
)

func TestBuilders(t *testing.T) {
	q := NewQuestionBuilder("q1").Turn("a").Turn("b").Build()
	assert.Equal(t, core.Question{ID: "q1", Turns: core.Turns{"a", "b"}}, q)

	a := NewAnswerBuilder("q1", "m").Turn("x").Turn("").ID("fixed").Build()
	assert.Equal(t, "fixed", a.AnswerID)
	assert.Equal(t, "m", a.ModelID)
	assert.Equal(t, []string{"x", ""}, a.Turns())
}

func TestJSONLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "m.jsonl")
	WriteJSONL(t, path, NewAnswerBuilder("q1", "m").Turn("x").Build(), NewAnswerBuilder("q2", "m").Turn("y").Build())

	got := ReadJSONL[core.Answer](t, path)
	require.Len(t, got, 2)
	assert.Equal(t, core.QuestionID("q2"), got[1].QuestionID)
}
