package agent

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hupe1980/colm/core"
	"github.com/hupe1980/colm/gateway"
	"github.com/hupe1980/colm/logging"
	"github.com/hupe1980/colm/model"
)

// DefaultSynthesisBackend is the single backend used for synthesis.
const DefaultSynthesisBackend = "gpt-4o"

// DefaultSynthesisPrompt is the system prompt of every synthesis call.
const DefaultSynthesisPrompt = "Please summarize the following answers by:\n" +
	"- Removing redundancy\n" +
	"- Keeping important insights\n" +
	"- Improving clarity and coherence\n" +
	"- Returning a concise but complete synthesis"

// SynthesizerOptions configure a Synthesizer.
type SynthesizerOptions struct {
	Backend      string
	SystemPrompt string
	Logger       logging.Logger
}

// Synthesizer condenses all models' answers into one summary per turn.
type Synthesizer struct {
	caller gateway.Caller
	opts   SynthesizerOptions
	logger logging.Logger
}

// NewSynthesizer creates a Synthesizer.
func NewSynthesizer(caller gateway.Caller, optFns ...func(o *SynthesizerOptions)) *Synthesizer {
	opts := SynthesizerOptions{
		Backend:      DefaultSynthesisBackend,
		SystemPrompt: DefaultSynthesisPrompt,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Synthesizer{caller: caller, opts: opts, logger: logging.OrNoop(opts.Logger)}
}

// Contribution is one model's response to a turn.
type Contribution struct {
	Model    string
	Response string
}

// Synthesize issues one synthesis call per turn that has at least one
// non-blank response. Turns without responses are skipped, so the result may
// be shorter than the question; every entry carries its turn index.
func (s *Synthesizer) Synthesize(ctx context.Context, answers map[string]core.Answer, q core.Question) []core.Synthesis {
	models := make([]string, 0, len(answers))
	for m := range answers {
		models = append(models, m)
	}
	sort.Strings(models)

	var out []core.Synthesis
	for idx, turn := range q.Turns {
		var contribs []Contribution
		for _, m := range models {
			if r, ok := answers[m].Turn(idx); ok && strings.TrimSpace(r) != "" {
				contribs = append(contribs, Contribution{Model: m, Response: r})
			}
		}
		if len(contribs) == 0 {
			s.logger.Debug("No responses to synthesize", "question_id", q.ID, "turn", idx+1)
			continue
		}

		res := s.caller.Call(ctx, s.opts.Backend, model.Request{
			Messages: []core.Message{
				core.SystemMessage(s.opts.SystemPrompt),
				core.UserMessage(SynthesisPrompt(idx, turn, contribs)),
			},
		})
		if !res.OK() {
			s.logger.Warn("Synthesis failed", "question_id", q.ID, "turn", idx+1, "error", res.Err)
		}
		out = append(out, core.Synthesis{Turn: idx, Text: res.TextOrBlank()})
	}
	return out
}

// SynthesisPrompt renders the synthesis request for turn idx.
func SynthesisPrompt(idx int, turn string, contribs []Contribution) string {
	blocks := make([]string, len(contribs))
	for i, c := range contribs {
		blocks[i] = fmt.Sprintf("%s:\n%s", c.Model, c.Response)
	}
	return fmt.Sprintf(
		"Round %d question: %s\nHere are responses from different models:\n\n%s\n\nPlease synthesize and refine these responses into one answer.",
		idx+1, turn, strings.Join(blocks, "\n\n"),
	)
}
