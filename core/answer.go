package core

import (
	"time"

	"github.com/google/uuid"
)

// Choice holds one candidate completion; the answer files only ever carry
// index 0.
type Choice struct {
	Index int   `json:"index"`
	Turns Turns `json:"turns"`
}

// Answer is the record produced per (model, question) pair. The turns of the
// first choice stay index-aligned with the question's turns; failed turns are
// empty strings.
type Answer struct {
	QuestionID QuestionID `json:"question_id"`
	AnswerID   string     `json:"answer_id,omitempty"`
	ModelID    string     `json:"model_id"`
	Choices    []Choice   `json:"choices"`
	Timestamp  float64    `json:"tstamp"`
}

// NewAnswer builds an answer record with a fresh id and the current time.
func NewAnswer(questionID QuestionID, modelID string, turns []string) Answer {
	t := make(Turns, len(turns))
	copy(t, turns)
	return Answer{
		QuestionID: questionID,
		AnswerID:   uuid.NewString(),
		ModelID:    modelID,
		Choices:    []Choice{{Index: 0, Turns: t}},
		Timestamp:  float64(time.Now().UnixNano()) / float64(time.Second),
	}
}

// Turns returns the turns of the first choice or nil when the answer has no
// choices.
func (a Answer) Turns() []string {
	if len(a.Choices) == 0 {
		return nil
	}
	return a.Choices[0].Turns
}

// Turn returns the response at idx and whether it exists.
func (a Answer) Turn(idx int) (string, bool) {
	turns := a.Turns()
	if idx < 0 || idx >= len(turns) {
		return "", false
	}
	return turns[idx], true
}

// Synthesis is the condensed cross-model summary of one turn. Turn is the
// zero-based index of the question turn it summarizes.
type Synthesis struct {
	Turn int    `json:"turn"`
	Text string `json:"text"`
}

// Game is one complete judge conversation.
type Game struct {
	UserPrompt string  `json:"user_prompt"`
	Judgment   string  `json:"judgment"`
	Score      *string `json:"score"`
}

// Judgment is the record appended once per judged (model, question) pair.
type Judgment struct {
	QuestionID QuestionID `json:"question_id"`
	Model      string     `json:"model"`
	Judge      string     `json:"judge"`
	Games      []Game     `json:"games"`
}
