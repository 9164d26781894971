package runner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/hupe1980/colm"
	"github.com/hupe1980/colm/agent"
	"github.com/hupe1980/colm/artifact"
	"github.com/hupe1980/colm/config"
	"github.com/hupe1980/colm/core"
	"github.com/hupe1980/colm/gateway"
	"github.com/hupe1980/colm/logging"
	"github.com/hupe1980/colm/store"
)

// Deliberator answers one question with a set of specialists.
type Deliberator interface {
	Deliberate(ctx context.Context, q core.Question) (*colm.Outcome, error)
	Registry() *agent.Registry
}

var _ Deliberator = (*colm.Deliberator)(nil)

// NewDeliberator builds the registry and deliberation pipeline described by
// the generation settings. An empty specializations list selects the
// default registry.
func NewDeliberator(caller gateway.Caller, s *config.GenerateSettings, logger logging.Logger) (*colm.Deliberator, error) {
	registry := agent.DefaultRegistry()
	if len(s.Specializations) > 0 {
		specs := make([]agent.Specialist, 0, len(s.Specializations))
		for _, sp := range s.Specializations {
			specs = append(specs, agent.Specialist{Name: sp.Name, SystemPrompt: sp.SystemPrompt, Backend: sp.Backend})
		}
		var err error
		if registry, err = agent.NewRegistry(specs...); err != nil {
			return nil, err
		}
	}

	return colm.New(caller, registry, func(o *colm.Options) {
		o.UseSelection = s.UseSelection
		o.TopK = s.TopK
		o.Iterations = s.Iterations
		o.Fallback = colm.Fallback(s.SelectionFallback)
		o.RouterBackend = s.RouterBackend
		o.SynthesisBackend = s.SynthesisBackend
		if s.SelectionPrompt != "" {
			o.SelectionPrompt = s.SelectionPrompt
		}
		if s.SynthesisPrompt != "" {
			o.SynthesisPrompt = s.SynthesisPrompt
		}
		o.Logger = logger
	}), nil
}

// GenerateOptions configures a GenerateRunner.
type GenerateOptions struct {
	Logger logging.Logger
	// Publisher mirrors the output directory after the batch when set.
	Publisher     artifact.Store
	PublishPrefix string
}

// GenerateRunner answers every pending question of a question file.
type GenerateRunner struct {
	settings    *config.GenerateSettings
	deliberator Deliberator
	store       *store.Store
	opts        GenerateOptions
	logger      logging.Logger
}

// NewGenerateRunner creates a GenerateRunner.
func NewGenerateRunner(settings *config.GenerateSettings, d Deliberator, st *store.Store, optFns ...func(o *GenerateOptions)) *GenerateRunner {
	opts := GenerateOptions{
		Logger:        logging.NoOpLogger{},
		PublishPrefix: settings.Publish.Prefix,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &GenerateRunner{
		settings:    settings,
		deliberator: d,
		store:       st,
		opts:        opts,
		logger:      logging.OrNoop(opts.Logger),
	}
}

// pending is one question together with the key used for resume checks.
type pending struct {
	question core.Question
	dataset  string
	key      string
}

// Run deliberates every question not yet answered and appends the results.
func (r *GenerateRunner) Run(ctx context.Context) (Summary, error) {
	items, err := r.loadItems()
	if err != nil {
		return Summary{}, err
	}

	done, err := r.loadDone()
	if err != nil {
		return Summary{}, err
	}

	var (
		summary Summary
		todo    []pending
	)
	for _, it := range items {
		if r.answered(it.key, done) {
			summary.Skipped++
			continue
		}
		todo = append(todo, it)
	}
	if summary.Skipped > 0 {
		r.logger.Info("Skipping answered questions", "count", summary.Skipped)
	}

	tasks := make([]Task[int], len(todo))
	for i, it := range todo {
		tasks[i] = func(ctx context.Context) (int, error) { return r.answer(ctx, it) }
	}
	summary.Scheduled = len(tasks)

	progress := NewProgress(r.logger, "generate", len(tasks))
	outcomes := RunAll(ctx, r.settings.MaxWorkers, tasks, func(o Outcome[int]) {
		logging.LogUnit(r.logger, "generate", "", todo[o.Index].question.ID.String(), o.Duration, o.Err)
		progress.Done(o.Err)
	})

	for _, o := range outcomes {
		summary.Written += o.Value
		if o.Err != nil {
			summary.Failed++
		}
	}

	publish(ctx, r.opts.Publisher, r.settings.OutputDir, r.opts.PublishPrefix, r.logger)

	r.logger.Info("Generation finished", "summary", summary.String())
	return summary, ctx.Err()
}

func (r *GenerateRunner) loadItems() ([]pending, error) {
	if r.settings.QuestionFormat == config.FormatAlpaca {
		instructions, err := r.store.LoadInstructions(r.settings.QuestionFile)
		if err != nil {
			return nil, err
		}
		out := make([]pending, 0, len(instructions))
		for i, in := range instructions {
			out = append(out, pending{
				question: core.Question{ID: core.QuestionID(strconv.Itoa(i)), Turns: core.Turns{in.Instruction}},
				dataset:  in.Dataset,
				key:      in.Instruction,
			})
		}
		return out, nil
	}

	questions, err := r.store.LoadQuestions(r.settings.QuestionFile)
	if err != nil {
		return nil, err
	}
	out := make([]pending, 0, len(questions))
	for _, q := range questions {
		out = append(out, pending{question: q, key: q.ID.String()})
	}
	return out, nil
}

func (r *GenerateRunner) outputPath(name string) string {
	ext := ".jsonl"
	if r.settings.OutputFormat == config.FormatAlpaca {
		ext = ".json"
	}
	return filepath.Join(r.settings.OutputDir, name+ext)
}

// loadDone returns, per specialist output file, the keys already written.
func (r *GenerateRunner) loadDone() (map[string]map[string]struct{}, error) {
	names := r.deliberator.Registry().Names()
	done := make(map[string]map[string]struct{}, len(names))

	for _, name := range names {
		keys := make(map[string]struct{})
		path := r.outputPath(name)

		if r.settings.OutputFormat == config.FormatAlpaca {
			for _, e := range r.store.LoadArray(path) {
				keys[e.Instruction] = struct{}{}
			}
		} else {
			ids, err := r.store.AnsweredIDs(path)
			if err != nil {
				return nil, err
			}
			for id := range ids {
				keys[id.String()] = struct{}{}
			}
		}
		done[name] = keys
	}
	return done, nil
}

// answered reports whether key needs no further work. With write_models=all
// every output file must hold it; with write_models=selected any file will do
// since only the selected specialists are written.
func (r *GenerateRunner) answered(key string, done map[string]map[string]struct{}) bool {
	if len(done) == 0 {
		return false
	}
	for _, keys := range done {
		_, ok := keys[key]
		if r.settings.WriteModels == config.WriteSelected && ok {
			return true
		}
		if r.settings.WriteModels != config.WriteSelected && !ok {
			return false
		}
	}
	return r.settings.WriteModels != config.WriteSelected
}

func (r *GenerateRunner) answer(ctx context.Context, it pending) (int, error) {
	outcome, err := r.deliberator.Deliberate(ctx, it.question)
	if err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	names := r.deliberator.Registry().Names()
	if r.settings.WriteModels == config.WriteSelected {
		if len(outcome.Selected) > 0 {
			names = outcome.Selected
		} else {
			// every answered question must appear in at least one file
			r.logger.Warn("Empty selection, writing every refined answer", "question_id", it.question.ID)
		}
	}

	var (
		written int
		errs    []error
	)
	for _, name := range names {
		ans, ok := outcome.Final[name]
		if !ok {
			continue
		}
		start := time.Now()
		err := r.write(name, it, ans)
		logging.LogUnit(r.logger, "write", name, it.question.ID.String(), time.Since(start), err)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		written++
	}
	if len(errs) > 0 {
		return written, fmt.Errorf("write answers for %s: %w", it.question.ID, errors.Join(errs...))
	}
	return written, nil
}

func (r *GenerateRunner) write(name string, it pending, ans core.Answer) error {
	path := r.outputPath(name)
	if r.settings.OutputFormat == config.FormatAlpaca {
		return r.store.AppendArray(path, store.AlpacaEntry{
			Dataset:     it.dataset,
			Generator:   name,
			Instruction: it.key,
			Output:      strings.Join(ans.Turns(), "\n"),
		})
	}
	return r.store.Append(path, ans)
}
