package agent

import (
	"context"

	"github.com/hupe1980/colm/core"
	"github.com/hupe1980/colm/gateway"
	"github.com/hupe1980/colm/logging"
	"github.com/hupe1980/colm/model"
)

// DispatcherOptions configure a Dispatcher.
type DispatcherOptions struct {
	Logger logging.Logger
	// MaxTokens caps every specialist completion; 0 keeps the adapter default.
	MaxTokens int64
}

// Dispatcher collects multi-turn answers from specialists.
type Dispatcher struct {
	caller gateway.Caller
	opts   DispatcherOptions
	logger logging.Logger
}

// NewDispatcher creates a Dispatcher calling backends through caller.
func NewDispatcher(caller gateway.Caller, optFns ...func(o *DispatcherOptions)) *Dispatcher {
	opts := DispatcherOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Dispatcher{caller: caller, opts: opts, logger: logging.OrNoop(opts.Logger)}
}

// Dispatch runs one conversation per named specialist and returns the
// answers keyed by name. Names missing from the registry are skipped.
// Every returned answer has exactly len(q.Turns) turns.
func (d *Dispatcher) Dispatch(ctx context.Context, names []string, reg *Registry, q core.Question) map[string]core.Answer {
	specs := make([]Specialist, 0, len(names))
	for _, n := range names {
		s, ok := reg.Lookup(n)
		if !ok {
			d.logger.Warn("Skipping unknown specialist", "name", n, "question_id", q.ID)
			continue
		}
		specs = append(specs, s)
	}

	return runParallel(ctx, specs, func(ctx context.Context, s Specialist) core.Answer {
		turns := d.Converse(ctx, s, nil, q)
		return core.NewAnswer(q.ID, s.Name, turns)
	})
}

// Converse runs the specialist's conversation over every question turn.
// The conversation starts with the specialist's system prompt followed by
// preamble. Each reply is recorded at its turn index; failed calls record ""
// and a blank assistant message keeps the turns aligned.
func (d *Dispatcher) Converse(ctx context.Context, s Specialist, preamble []core.Message, q core.Question) []string {
	msgs := make([]core.Message, 0, 1+len(preamble)+2*len(q.Turns))
	msgs = append(msgs, core.SystemMessage(s.SystemPrompt))
	msgs = append(msgs, preamble...)

	turns := make([]string, len(q.Turns))
	for i, turn := range q.Turns {
		msgs = append(msgs, core.UserMessage(turn))

		res := d.caller.Call(ctx, s.Backend, model.Request{
			Messages:  core.CloneMessages(msgs),
			MaxTokens: d.opts.MaxTokens,
		})
		if !res.OK() {
			d.logger.Warn("Model call failed", "specialist", s.Name, "backend", s.Backend, "turn", i+1, "question_id", q.ID, "error", res.Err)
		}

		turns[i] = res.TextOrBlank()
		msgs = append(msgs, core.AssistantMessage(turns[i]))
	}
	return turns
}
