package testutil

import "github.com/hupe1980/colm/core"

// QuestionBuilder provides a fluent helper for constructing questions in tests.
// Example:
//
//	q := NewQuestionBuilder("q1").Turn("Explain X").Turn("Now shorter").Build()
type QuestionBuilder struct {
	id    core.QuestionID
	turns core.Turns
}

// NewQuestionBuilder creates a builder for the question id.
func NewQuestionBuilder(id string) *QuestionBuilder {
	return &QuestionBuilder{id: core.QuestionID(id)}
}

// Turn appends a question turn (chainable).
func (b *QuestionBuilder) Turn(text string) *QuestionBuilder {
	b.turns = append(b.turns, text)
	return b
}

// Build returns the question.
func (b *QuestionBuilder) Build() core.Question {
	turns := make(core.Turns, len(b.turns))
	copy(turns, b.turns)
	return core.Question{ID: b.id, Turns: turns}
}
