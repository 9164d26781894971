package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/hupe1980/colm/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestAppend_CreatesDirsAndAppends(t *testing.T) {
	s := New()
	path := filepath.Join(t.TempDir(), "bench", "model_judgment", "gpt-4o", "m.jsonl")

	score := "[[A]]"
	j := core.Judgment{QuestionID: "q1", Model: "m", Judge: "gpt-4o", Games: []core.Game{{UserPrompt: "<|User Prompt|>", Judgment: "x", Score: &score}}}
	require.NoError(t, s.Append(path, j))
	require.NoError(t, s.Append(path, core.Judgment{QuestionID: "q2", Model: "m", Judge: "gpt-4o"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"user_prompt":"<|User Prompt|>"`)
	assert.Contains(t, lines[1], `"question_id":"q2"`)
}

func TestAppend_ConcurrentWritersKeepLinesIntact(t *testing.T) {
	s := New()
	path := filepath.Join(t.TempDir(), "m.jsonl")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ans := core.NewAnswer(core.QuestionID(fmt.Sprintf("q%d", i)), "m", []string{strings.Repeat("x", 4096)})
			assert.NoError(t, s.Append(path, ans))
		}(i)
	}
	wg.Wait()

	ids, err := s.AnsweredIDs(path)
	require.NoError(t, err)
	assert.Len(t, ids, 50)
}

func TestLoadJudged(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "judgments")
	writeFile(t, filepath.Join(dir, "model-a.jsonl"), `{"question_id":"q1","model":"model-a"}
{"question_id":2,"model":"model-a"}

not json
{"model":"no id"}
`)
	writeFile(t, filepath.Join(dir, "model-b.jsonl"), `{"question_id":"q9"}`+"\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	s := New()
	got, err := s.LoadJudged(dir)
	require.NoError(t, err)

	assert.Equal(t, map[string]map[core.QuestionID]struct{}{
		"model-a": {"q1": {}, "2": {}},
		"model-b": {"q9": {}},
	}, got)
}

func TestLoadJudged_MissingDir(t *testing.T) {
	got, err := New().LoadJudged(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadQuestions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "q.jsonl")
	writeFile(t, path, `{"question_id":"q1","turns":["Explain X"]}
{"question_id":7,"turns":[{"content":"first"},{"content":"second"}]}
`)

	qs, err := New().LoadQuestions(path)
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.Equal(t, core.QuestionID("q1"), qs[0].ID)
	assert.Equal(t, core.QuestionID("7"), qs[1].ID)
	assert.Equal(t, []string{"first", "second"}, []string(qs[1].Turns))
}

func TestLoadModelAnswers(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "gpt-4-0314.jsonl"), `{"question_id":"q1","model_id":"gpt-4-0314","choices":[{"index":0,"turns":[{"content":"hello"}]}],"tstamp":1}
{"question_id":"q1","model_id":"gpt-4-0314","choices":[{"index":0,"turns":["newer"]}],"tstamp":2}
`)

	got, err := New().LoadModelAnswers(dir)
	require.NoError(t, err)
	ans, ok := got["gpt-4-0314"]["q1"]
	require.True(t, ok)
	assert.Equal(t, []string{"newer"}, []string(ans.Turns()))
}

func TestAlpacaArray(t *testing.T) {
	s := New()
	path := filepath.Join(t.TempDir(), "out", "qwen-math.json")

	require.NoError(t, s.AppendArray(path, AlpacaEntry{Dataset: "d", Generator: "qwen-math", Instruction: "i1", Output: "o1"}))
	require.NoError(t, s.AppendArray(path, AlpacaEntry{Dataset: "d", Generator: "qwen-math", Instruction: "i2", Output: "<b>"}))

	entries := s.LoadArray(path)
	require.Len(t, entries, 2)
	assert.Equal(t, "i2", entries[1].Instruction)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  {")
	assert.Contains(t, string(data), `"output": "<b>"`)
}

func TestAlpacaArray_CorruptFileStartsEmpty(t *testing.T) {
	s := New()
	path := filepath.Join(t.TempDir(), "m.json")
	writeFile(t, path, `[{"dataset": "d", "generator"`)

	assert.Empty(t, s.LoadArray(path))
	require.NoError(t, s.AppendArray(path, AlpacaEntry{Instruction: "fresh"}))

	entries := s.LoadArray(path)
	require.Len(t, entries, 1)
	assert.Equal(t, "fresh", entries[0].Instruction)
}

func TestLoadInstructions(t *testing.T) {
	dir := t.TempDir()
	arr := filepath.Join(dir, "eval.json")
	writeFile(t, arr, `[{"instruction":"a","dataset":"helpful_base"},{"instruction":"b"}]`)
	lines := filepath.Join(dir, "eval.jsonl")
	writeFile(t, lines, "{\"instruction\":\"c\"}\n{\"instruction\":\"d\",\"dataset\":\"koala\"}\n")

	s := New()
	got, err := s.LoadInstructions(arr)
	require.NoError(t, err)
	assert.Equal(t, []Instruction{{"a", "helpful_base"}, {"b", DefaultDataset}}, got)

	got, err = s.LoadInstructions(lines)
	require.NoError(t, err)
	assert.Equal(t, []Instruction{{"c", DefaultDataset}, {"d", "koala"}}, got)

	_, err = s.LoadInstructions(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
