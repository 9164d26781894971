package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/colm/core"
	"github.com/hupe1980/colm/logging"
)

// Relevance hints appended to the refinement brief.
const (
	RelevantHint     = "Your perspective is relevant."
	LessRelevantHint = "Your perspective is less relevant."
)

// RoundObserver receives the answer set produced by each refinement round.
type RoundObserver func(round int, answers map[string]core.Answer)

// RefinerOptions configure a Refiner.
type RefinerOptions struct {
	Logger   logging.Logger
	Observer RoundObserver
}

// Refiner repeats synthesize and regenerate for a fixed number of rounds.
type Refiner struct {
	dispatcher  *Dispatcher
	synthesizer *Synthesizer
	opts        RefinerOptions
	logger      logging.Logger
}

// NewRefiner creates a Refiner from a dispatcher and a synthesizer.
func NewRefiner(d *Dispatcher, s *Synthesizer, optFns ...func(o *RefinerOptions)) *Refiner {
	opts := RefinerOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Refiner{dispatcher: d, synthesizer: s, opts: opts, logger: logging.OrNoop(opts.Logger)}
}

// Refine runs exactly iterations rounds. Each round synthesizes the current
// answer set and then regenerates an answer for every registered specialist,
// not only the selected ones; only the last round's answers are returned.
// With zero iterations a copy of initial is returned. Cancellation between
// rounds returns the latest complete round.
func (r *Refiner) Refine(ctx context.Context, selected []string, reg *Registry, initial map[string]core.Answer, q core.Question, iterations int) map[string]core.Answer {
	current := cloneAnswers(initial)

	relevant := make(map[string]struct{}, len(selected))
	for _, n := range selected {
		relevant[n] = struct{}{}
	}

	for i := 0; i < iterations; i++ {
		select {
		case <-ctx.Done():
			r.logger.Warn("Refinement cancelled", "question_id", q.ID, "completed_rounds", i, "error", ctx.Err())
			return current
		default:
		}

		r.logger.Debug("Refinement round started", "question_id", q.ID, "round", i+1)

		summaries := r.synthesizer.Synthesize(ctx, current, q)

		current = runParallel(ctx, reg.All(), func(ctx context.Context, s Specialist) core.Answer {
			_, isRelevant := relevant[s.Name]
			brief := RefinementBrief(summaries, len(q.Turns), isRelevant)
			turns := r.dispatcher.Converse(ctx, s, []core.Message{core.SystemMessage(brief)}, q)
			return core.NewAnswer(q.ID, s.Name, turns)
		})

		if r.opts.Observer != nil {
			r.opts.Observer(i+1, cloneAnswers(current))
		}
	}

	return current
}

// RefinementBrief renders the system message that carries the synthesis and
// the relevance hint into a refinement conversation. Multi-turn questions
// get one "Round k:" section per synthesized turn.
func RefinementBrief(summaries []core.Synthesis, numTurns int, relevant bool) string {
	var summary string
	if numTurns > 1 {
		sections := make([]string, len(summaries))
		for i, s := range summaries {
			sections[i] = fmt.Sprintf("Round %d:\n%s", s.Turn+1, s.Text)
		}
		summary = strings.Join(sections, "\n\n")
	} else if len(summaries) > 0 {
		summary = summaries[0].Text
	}

	hint := LessRelevantHint
	if relevant {
		hint = RelevantHint
	}

	return fmt.Sprintf(
		"Here is a refined summary of previous answers:\n\n%s\n\n%s\nPlease revise your previous answer based on this summary and the question.",
		summary, hint,
	)
}
