package runner

import (
	"context"
	"path/filepath"

	"github.com/hupe1980/colm/artifact"
	"github.com/hupe1980/colm/config"
	"github.com/hupe1980/colm/core"
	"github.com/hupe1980/colm/evaluation"
	"github.com/hupe1980/colm/gateway"
	"github.com/hupe1980/colm/logging"
	"github.com/hupe1980/colm/store"
)

// Judge scores one answer.
type Judge interface {
	Judge(ctx context.Context, in evaluation.Input) (core.Judgment, error)
}

var _ Judge = (*evaluation.Engine)(nil)

// NewJudgeEngine builds the judge engine described by the judge settings.
func NewJudgeEngine(caller gateway.Caller, s *config.JudgeSettings, logger logging.Logger) (*evaluation.Engine, error) {
	extractor, err := evaluation.CompileRegexExtractor(s.RegexPattern)
	if err != nil {
		return nil, err
	}

	return evaluation.NewEngine(caller, evaluation.Settings{
		JudgeModel:      s.JudgeModel,
		SystemPrompt:    s.SystemPrompt,
		PromptTemplates: s.PromptTemplate,
		Pairwise:        s.Pairwise,
		Temperature:     s.Temperature,
		MaxTokens:       s.MaxTokens,
		Attempts:        s.Attempts,
		Extractor:       extractor,
	}, func(o *evaluation.Options) {
		o.Logger = logger
	})
}

// JudgeOptions configures a JudgeRunner.
type JudgeOptions struct {
	// Parallel bounds concurrent units; use the judge endpoint's parallel.
	Parallel int
	Logger   logging.Logger
	// Publisher mirrors the judgment directory after the batch when set.
	Publisher     artifact.Store
	PublishPrefix string
}

// JudgeRunner judges every stored answer that has no judgment yet.
type JudgeRunner struct {
	settings *config.JudgeSettings
	judge    Judge
	store    *store.Store
	opts     JudgeOptions
	logger   logging.Logger
}

// NewJudgeRunner creates a JudgeRunner.
func NewJudgeRunner(settings *config.JudgeSettings, judge Judge, st *store.Store, optFns ...func(o *JudgeOptions)) *JudgeRunner {
	opts := JudgeOptions{
		Parallel:      1,
		Logger:        logging.NoOpLogger{},
		PublishPrefix: filepath.ToSlash(settings.JudgmentDir()),
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &JudgeRunner{
		settings: settings,
		judge:    judge,
		store:    st,
		opts:     opts,
		logger:   logging.OrNoop(opts.Logger),
	}
}

type judgeUnit struct {
	input evaluation.Input
	path  string
}

// Run schedules one unit per (model, question) pair not yet judged and
// appends every finished judgment to <judgment dir>/<model>.jsonl.
func (r *JudgeRunner) Run(ctx context.Context) (Summary, error) {
	units, skipped, err := r.plan()
	if err != nil {
		return Summary{}, err
	}
	summary := Summary{Scheduled: len(units), Skipped: skipped}

	tasks := make([]Task[bool], len(units))
	for i, u := range units {
		tasks[i] = func(ctx context.Context) (bool, error) {
			j, err := r.judge.Judge(ctx, u.input)
			if err != nil {
				return false, err
			}
			if err := r.store.Append(u.path, j); err != nil {
				return false, err
			}
			return true, nil
		}
	}

	progress := NewProgress(r.logger, "judge", len(tasks))
	outcomes := RunAll(ctx, r.opts.Parallel, tasks, func(o Outcome[bool]) {
		in := units[o.Index].input
		logging.LogUnit(r.logger, "judge", in.Answer.ModelID, in.Question.ID.String(), o.Duration, o.Err)
		progress.Done(o.Err)
	})

	for _, o := range outcomes {
		switch {
		case o.Err != nil:
			summary.Failed++
		case o.Value:
			summary.Written++
		}
	}

	publish(ctx, r.opts.Publisher, r.settings.JudgmentDir(), r.opts.PublishPrefix, r.logger)

	r.logger.Info("Judging finished", "judge", r.settings.JudgeModel, "summary", summary.String())
	return summary, ctx.Err()
}

// plan loads the inputs and returns the units still to do plus the number
// of pairs skipped.
func (r *JudgeRunner) plan() ([]judgeUnit, int, error) {
	s := r.settings

	questions, err := r.store.LoadQuestions(s.QuestionFile)
	if err != nil {
		return nil, 0, err
	}
	answers, err := r.store.LoadModelAnswers(s.AnswerDir())
	if err != nil {
		return nil, 0, err
	}

	var refs []map[core.QuestionID]core.Answer
	if s.Reference {
		all, err := r.store.LoadModelAnswers(s.ReferenceDir())
		if err != nil {
			return nil, 0, err
		}
		for _, name := range s.RefModel {
			refs = append(refs, all[name])
		}
	}

	judged, err := r.store.LoadJudged(s.JudgmentDir())
	if err != nil {
		return nil, 0, err
	}

	var (
		units   []judgeUnit
		skipped int
		planned = make(map[string]struct{}, len(s.ModelList))
	)
	for _, m := range s.ModelList {
		if _, dup := planned[m]; dup {
			r.logger.Warn("Ignoring duplicate model in model_list", "model", m)
			continue
		}
		planned[m] = struct{}{}

		existing := 0
		for _, q := range questions {
			if _, ok := judged[m][q.ID]; ok {
				existing++
				skipped++
				continue
			}

			in, ok := r.input(m, q, answers, refs)
			if !ok {
				skipped++
				continue
			}
			units = append(units, judgeUnit{
				input: in,
				path:  filepath.Join(s.JudgmentDir(), m+".jsonl"),
			})
		}
		if existing > 0 {
			r.logger.Info("Found existing judgments", "model", m, "count", existing)
		}
	}
	return units, skipped, nil
}

func (r *JudgeRunner) input(m string, q core.Question, answers map[string]map[core.QuestionID]core.Answer, refs []map[core.QuestionID]core.Answer) (evaluation.Input, bool) {
	s := r.settings

	ans, ok := answers[m][q.ID]
	if !ok {
		r.logger.Warn("Answer not found, skipping", "model", m, "question_id", q.ID)
		return evaluation.Input{}, false
	}
	if ans.ModelID == "" {
		ans.ModelID = m
	}
	in := evaluation.Input{Question: q, Answer: ans}

	if s.Baseline {
		base, ok := answers[s.BaselineModel][q.ID]
		if !ok {
			r.logger.Warn("Baseline answer not found, skipping", "model", m, "baseline", s.BaselineModel, "question_id", q.ID)
			return evaluation.Input{}, false
		}
		in.Baseline = &base
	}

	for i, byID := range refs {
		ref, ok := byID[q.ID]
		if !ok {
			r.logger.Warn("Reference answer not found, skipping", "model", m, "reference", s.RefModel[i], "question_id", q.ID)
			return evaluation.Input{}, false
		}
		in.References = append(in.References, ref)
	}
	return in, true
}
