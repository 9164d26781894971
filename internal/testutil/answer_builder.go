package testutil

import "github.com/hupe1980/colm/core"

// AnswerBuilder provides a fluent helper for constructing answer records.
// Example:
//
//	a := NewAnswerBuilder("q1", "gpt-4o").Turn("first").Turn("").Build()
//
// Blank turns model failed backend calls.
type AnswerBuilder struct {
	questionID core.QuestionID
	model      string
	turns      []string
	id         string
}

// NewAnswerBuilder creates a builder for the answer of model to questionID.
func NewAnswerBuilder(questionID, model string) *AnswerBuilder {
	return &AnswerBuilder{questionID: core.QuestionID(questionID), model: model}
}

// Turn appends a response turn (chainable).
func (b *AnswerBuilder) Turn(text string) *AnswerBuilder {
	b.turns = append(b.turns, text)
	return b
}

// ID overrides the generated answer id (chainable).
func (b *AnswerBuilder) ID(id string) *AnswerBuilder { b.id = id; return b }

// Build returns the answer record.
func (b *AnswerBuilder) Build() core.Answer {
	a := core.NewAnswer(b.questionID, b.model, b.turns)
	if b.id != "" {
		a.AnswerID = b.id
	}
	return a
}

// BuildPtr returns a pointer to the answer, convenient for baselines.
func (b *AnswerBuilder) BuildPtr() *core.Answer {
	a := b.Build()
	return &a
}
