package runner

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/colm/config"
	"github.com/hupe1980/colm/core"
	"github.com/hupe1980/colm/gateway"
	"github.com/hupe1980/colm/internal/testutil"
	"github.com/hupe1980/colm/model"
	"github.com/hupe1980/colm/store"
)

func judgeSettings(t *testing.T) *config.JudgeSettings {
	t.Helper()
	dir := t.TempDir()
	s := config.NewJudgeSettings()
	s.JudgeModel = "judge"
	s.BenchName = filepath.Join(dir, "bench")
	s.QuestionFile = filepath.Join(dir, "questions.jsonl")
	s.Baseline = true
	s.BaselineModel = "base"
	s.Pairwise = true
	s.RegexPattern = `\[\[([AB<>=]+)\]\]`
	s.PromptTemplate = []string{"{question_1}|{answer_1}|{answer_2}"}
	s.ModelList = []string{"cand", "ghost"}
	require.NoError(t, s.Validate())

	testutil.WriteJSONL(t, s.QuestionFile,
		map[string]any{"question_id": "q1", "turns": []string{"Q1"}},
		map[string]any{"question_id": "q2", "turns": []string{"Q2"}},
		map[string]any{"question_id": "q3", "turns": []string{"Q3"}},
	)
	testutil.WriteJSONL(t, filepath.Join(s.AnswerDir(), "base.jsonl"),
		testutil.NewAnswerBuilder("q1", "base").Turn("b1").Build(),
		testutil.NewAnswerBuilder("q2", "base").Turn("b2").Build(),
	)
	testutil.WriteJSONL(t, filepath.Join(s.AnswerDir(), "cand.jsonl"),
		testutil.NewAnswerBuilder("q1", "cand").Turn("c1").Build(),
		testutil.NewAnswerBuilder("q2", "cand").Turn("c2").Build(),
		testutil.NewAnswerBuilder("q3", "cand").Turn("c3").Build(),
	)
	return s
}

func TestJudgeRunner_Run(t *testing.T) {
	s := judgeSettings(t)
	testutil.WriteJSONL(t, filepath.Join(s.JudgmentDir(), "cand.jsonl"),
		core.Judgment{QuestionID: "q2", Model: "cand", Judge: "judge"},
	)

	judgeModel := model.NewMockModel("judge").SetFunc(func(model.Request) (string, error) {
		return "verdict [[A>B]]", nil
	})
	g := gateway.New(func(o *gateway.Options) { o.Jitter = gateway.NoJitter() }).Register("judge", judgeModel)

	engine, err := NewJudgeEngine(g, s, nil)
	require.NoError(t, err)

	sum, err := NewJudgeRunner(s, engine, store.New(), func(o *JudgeOptions) { o.Parallel = 4 }).Run(context.Background())
	require.NoError(t, err)

	// q1 judged; q2 already judged; q3 lacks a baseline; ghost has no answers
	assert.Equal(t, Summary{Scheduled: 1, Skipped: 5, Written: 1}, sum)
	assert.Equal(t, 2, judgeModel.Calls())

	judgments := testutil.ReadJSONL[core.Judgment](t, filepath.Join(s.JudgmentDir(), "cand.jsonl"))
	require.Len(t, judgments, 2)
	j := judgments[1]
	assert.Equal(t, core.QuestionID("q1"), j.QuestionID)
	assert.Equal(t, "cand", j.Model)
	require.Len(t, j.Games, 2)
	assert.Equal(t, "Q1|b1|c1", j.Games[0].UserPrompt)
	assert.Equal(t, "Q1|c1|b1", j.Games[1].UserPrompt)
	require.NotNil(t, j.Games[0].Score)
	assert.Equal(t, "A>B", *j.Games[0].Score)

	// nothing left to do
	sum, err = NewJudgeRunner(s, engine, store.New()).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Scheduled)
	assert.Equal(t, 2, judgeModel.Calls())
}

func TestJudgeRunner_UnitErrorsAreCounted(t *testing.T) {
	s := judgeSettings(t)
	s.PromptTemplate = []string{"{question_1} {missing_slot}"}

	g := gateway.New(func(o *gateway.Options) { o.Jitter = gateway.NoJitter() }).
		Register("judge", model.NewMockModel("judge"))
	engine, err := NewJudgeEngine(g, s, nil)
	require.NoError(t, err)

	sum, err := NewJudgeRunner(s, engine, store.New()).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Scheduled)
	assert.Equal(t, 2, sum.Failed)
	assert.Equal(t, 0, sum.Written)
	assert.NoFileExists(t, filepath.Join(s.JudgmentDir(), "cand.jsonl"))
}

func TestJudgeRunner_DuplicateModelsJudgedOnce(t *testing.T) {
	s := judgeSettings(t)
	s.ModelList = []string{"cand", "cand"}

	judgeModel := model.NewMockModel("judge").SetFunc(func(model.Request) (string, error) {
		return "[[A=B]]", nil
	})
	g := gateway.New(func(o *gateway.Options) { o.Jitter = gateway.NoJitter() }).Register("judge", judgeModel)
	engine, err := NewJudgeEngine(g, s, nil)
	require.NoError(t, err)

	sum, err := NewJudgeRunner(s, engine, store.New(), func(o *JudgeOptions) { o.Parallel = 4 }).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Summary{Scheduled: 2, Skipped: 1, Written: 2}, sum)

	judgments := testutil.ReadJSONL[core.Judgment](t, filepath.Join(s.JudgmentDir(), "cand.jsonl"))
	ids := make([]core.QuestionID, 0, len(judgments))
	for _, j := range judgments {
		ids = append(ids, j.QuestionID)
	}
	assert.ElementsMatch(t, []core.QuestionID{"q1", "q2"}, ids)
}
