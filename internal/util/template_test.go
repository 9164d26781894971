package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTemplate(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		values map[string]string
		want   string
	}{
		{"no slots", "plain text", nil, "plain text"},
		{"slots", "Q: {question_1}\nA: {answer_1}", map[string]string{"question_1": "why?", "answer_1": "because"}, "Q: why?\nA: because"},
		{"escaped braces", "{{\"score\": {answer_1}}}", map[string]string{"answer_1": "5"}, "{\"score\": 5}"},
		{"format spec ignored", "{answer_1:>10}", map[string]string{"answer_1": "x"}, "x"},
		{"value with braces kept verbatim", "{answer_1}", map[string]string{"answer_1": "func() {}"}, "func() {}"},
		{"unused values", "{a}", map[string]string{"a": "1", "b": "2"}, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RenderTemplate(tt.text, tt.values)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderTemplate_Errors(t *testing.T) {
	_, err := RenderTemplate("{ref_answer_1}", map[string]string{"answer_1": "x"})
	assert.ErrorIs(t, err, ErrUnknownSlot)

	_, err = RenderTemplate("open {answer_1", map[string]string{"answer_1": "x"})
	assert.ErrorIs(t, err, ErrMalformedTemplate)

	_, err = RenderTemplate("close } brace", nil)
	assert.ErrorIs(t, err, ErrMalformedTemplate)
}
