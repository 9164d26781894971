// Package colm provides a high-level façade over the deliberation roles in
// package agent. Most applications interact with this package by:
//  1. Building a gateway.Caller (usually gateway.FromDirectory)
//  2. Creating a Deliberator via New() with a specialist registry
//  3. Calling Deliberate once per question
//
// A deliberation selects specialists, validates the selection, applies the
// fallback policy, collects initial answers and refines them for a fixed
// number of rounds. Backend failures degrade individual turns to "" and
// never abort the run.
package colm

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/colm/agent"
	"github.com/hupe1980/colm/core"
	"github.com/hupe1980/colm/gateway"
	"github.com/hupe1980/colm/logging"
)

// ErrNoTurns is returned for questions without any turn.
var ErrNoTurns = errors.New("question has no turns")

// Fallback decides who answers when the selector returns nothing usable.
type Fallback string

const (
	// FallbackAll lets every registered specialist answer.
	FallbackAll Fallback = "all"
	// FallbackNone keeps the empty selection; only refinement produces answers.
	FallbackNone Fallback = "none"
)

// Options configures the Deliberator.
type Options struct {
	// UseSelection routes the question through the selector; when false
	// every registered specialist answers.
	UseSelection bool
	TopK         int
	Iterations   int
	Fallback     Fallback

	RouterBackend    string
	SynthesisBackend string
	SelectionPrompt  string
	SynthesisPrompt  string

	// MaxTokens caps specialist completions; 0 keeps the adapter default.
	MaxTokens int64

	// Observer receives every refinement round.
	Observer agent.RoundObserver

	Logger logging.Logger
}

// Outcome reports every stage of a deliberation.
type Outcome struct {
	Selected []string
	Initial  map[string]core.Answer
	Final    map[string]core.Answer
}

// Deliberator runs the select, dispatch and refine pipeline.
type Deliberator struct {
	opts       Options
	registry   *agent.Registry
	selector   *agent.Selector
	dispatcher *agent.Dispatcher
	refiner    *agent.Refiner
	logger     logging.Logger
}

// New creates a Deliberator. Defaults: selection on, top-2, two refinement
// rounds, fallback to all specialists.
func New(caller gateway.Caller, registry *agent.Registry, optFns ...func(o *Options)) *Deliberator {
	opts := Options{
		UseSelection:     true,
		TopK:             2,
		Iterations:       2,
		Fallback:         FallbackAll,
		RouterBackend:    agent.DefaultRouterBackend,
		SynthesisBackend: agent.DefaultSynthesisBackend,
		SelectionPrompt:  agent.DefaultSynthesisPrompt,
		SynthesisPrompt:  agent.DefaultSynthesisPrompt,
		Logger:           logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	logger := logging.OrNoop(opts.Logger)

	dispatcher := agent.NewDispatcher(caller, func(o *agent.DispatcherOptions) {
		o.Logger = logger
		o.MaxTokens = opts.MaxTokens
	})
	synthesizer := agent.NewSynthesizer(caller, func(o *agent.SynthesizerOptions) {
		o.Backend = opts.SynthesisBackend
		o.SystemPrompt = opts.SynthesisPrompt
		o.Logger = logger
	})

	return &Deliberator{
		opts:     opts,
		registry: registry,
		selector: agent.NewSelector(caller, func(o *agent.SelectorOptions) {
			o.Backend = opts.RouterBackend
			o.SystemPrompt = opts.SelectionPrompt
			o.Logger = logger
		}),
		dispatcher: dispatcher,
		refiner: agent.NewRefiner(dispatcher, synthesizer, func(o *agent.RefinerOptions) {
			o.Logger = logger
			o.Observer = opts.Observer
		}),
		logger: logger,
	}
}

// Registry returns the specialist registry.
func (d *Deliberator) Registry() *agent.Registry { return d.registry }

// Deliberate runs one question through the pipeline.
func (d *Deliberator) Deliberate(ctx context.Context, q core.Question) (*Outcome, error) {
	if len(q.Turns) == 0 {
		return nil, fmt.Errorf("deliberate %s: %w", q.ID, ErrNoTurns)
	}

	selected := d.selectSpecialists(ctx, q)

	initial := d.dispatcher.Dispatch(ctx, selected, d.registry, q)
	final := d.refiner.Refine(ctx, selected, d.registry, initial, q, d.opts.Iterations)

	return &Outcome{Selected: selected, Initial: initial, Final: final}, nil
}

func (d *Deliberator) selectSpecialists(ctx context.Context, q core.Question) []string {
	if !d.opts.UseSelection {
		return d.registry.Names()
	}

	raw := d.selector.Select(ctx, q, d.registry, d.opts.TopK)

	selected, err := agent.ValidateSelection(raw, d.registry)
	if err != nil {
		var unknown *agent.UnknownSpecialistError
		if errors.As(err, &unknown) {
			d.logger.Warn("Dropping unknown specialists from selection", "question_id", q.ID, "unknown", unknown.Names)
		}
	}

	if len(selected) == 0 && d.opts.Fallback == FallbackAll {
		d.logger.Info("Empty selection, falling back to all specialists", "question_id", q.ID)
		return d.registry.Names()
	}
	return selected
}
