package evaluation

import (
	"fmt"

	"github.com/hupe1980/colm/core"
	"github.com/hupe1980/colm/internal/util"
)

// Input is everything needed to judge one answer.
type Input struct {
	Question   core.Question
	Answer     core.Answer
	Baseline   *core.Answer
	References []core.Answer
}

// Slots builds the template values for one game.
//
// question_i holds the question turns. With a baseline, the baseline turns
// occupy answer_1..answer_B and the evaluated turns follow; swap reverses
// the two blocks. Without a baseline the evaluated turns start at answer_1.
// ref_answer_k numbers the turns of all references consecutively.
func Slots(in Input, swap bool) map[string]string {
	slots := make(map[string]string)

	for i, turn := range in.Question.Turns {
		slots[fmt.Sprintf("question_%d", i+1)] = turn
	}

	var blocks [][]string
	if in.Baseline != nil {
		first, second := in.Baseline.Turns(), in.Answer.Turns()
		if swap {
			first, second = second, first
		}
		blocks = append(blocks, first, second)
	} else {
		blocks = append(blocks, in.Answer.Turns())
	}

	n := 1
	for _, turns := range blocks {
		for _, t := range turns {
			slots[fmt.Sprintf("answer_%d", n)] = t
			n++
		}
	}

	k := 1
	for _, ref := range in.References {
		for _, t := range ref.Turns() {
			slots[fmt.Sprintf("ref_answer_%d", k)] = t
			k++
		}
	}

	return slots
}

// RenderPrompts renders every template fragment with the game's slots.
func RenderPrompts(templates []string, slots map[string]string) ([]string, error) {
	out := make([]string, len(templates))
	for i, tmpl := range templates {
		s, err := util.RenderTemplate(tmpl, slots)
		if err != nil {
			return nil, fmt.Errorf("prompt template %d: %w", i, err)
		}
		out[i] = s
	}
	return out, nil
}
