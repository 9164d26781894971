package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestion_DecodeStringTurns(t *testing.T) {
	var q Question
	require.NoError(t, json.Unmarshal([]byte(`{"question_id":"q1","turns":["Explain X","And Y?"]}`), &q))

	assert.Equal(t, QuestionID("q1"), q.ID)
	assert.Equal(t, Turns{"Explain X", "And Y?"}, q.Turns)
	assert.Equal(t, "Explain X\nAnd Y?", q.Text())
}

func TestQuestion_DecodeContentObjects(t *testing.T) {
	var q Question
	require.NoError(t, json.Unmarshal([]byte(`{"question_id":81,"turns":[{"content":"first"},"second"]}`), &q))

	assert.Equal(t, QuestionID("81"), q.ID)
	assert.Equal(t, Turns{"first", "second"}, q.Turns)
}

func TestQuestionID_RejectsObjects(t *testing.T) {
	var q Question
	err := json.Unmarshal([]byte(`{"question_id":{"x":1},"turns":[]}`), &q)
	assert.Error(t, err)
}

func TestAnswer_EncodesTurnsAsStrings(t *testing.T) {
	a := NewAnswer("q1", "qwen-math", []string{"one", ""})
	b, err := json.Marshal(a)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))
	choices := decoded["choices"].([]any)
	require.Len(t, choices, 1)
	turns := choices[0].(map[string]any)["turns"].([]any)
	assert.Equal(t, []any{"one", ""}, turns)
	assert.NotEmpty(t, decoded["answer_id"])
	assert.Equal(t, "qwen-math", decoded["model_id"])
}

func TestAnswer_Turn(t *testing.T) {
	a := NewAnswer("q1", "m", []string{"a", "b"})

	got, ok := a.Turn(1)
	assert.True(t, ok)
	assert.Equal(t, "b", got)

	_, ok = a.Turn(2)
	assert.False(t, ok)

	_, ok = Answer{}.Turn(0)
	assert.False(t, ok)
}

func TestJudgment_NullScore(t *testing.T) {
	j := Judgment{QuestionID: "q1", Model: "m", Judge: "j", Games: []Game{{UserPrompt: "p", Judgment: "\nno verdict"}}}
	b, err := json.Marshal(j)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"score":null`)
}
