package evaluation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hupe1980/colm/core"
	"github.com/hupe1980/colm/gateway"
	"github.com/hupe1980/colm/logging"
	"github.com/hupe1980/colm/model"
)

// ContinuePrompt is sent when a transcript holds no verdict yet.
const ContinuePrompt = "continue your judgment and finish by outputting a final verdict label"

// ErrInvalidSettings is returned by NewEngine for unusable settings.
var ErrInvalidSettings = errors.New("invalid judge settings")

// Settings configure the Engine.
type Settings struct {
	// JudgeModel is recorded in every Judgment.
	JudgeModel string
	// Backend is the gateway backend that plays the judge; defaults to JudgeModel.
	Backend string

	SystemPrompt    string
	PromptTemplates []string
	Pairwise        bool
	Temperature     float64
	MaxTokens       int64
	// Attempts bounds judge calls per game.
	Attempts  int
	Extractor ScoreExtractor
}

// Options configure optional Engine behavior.
type Options struct {
	Logger logging.Logger
}

// Engine judges answers with a backend model.
type Engine struct {
	caller   gateway.Caller
	settings Settings
	logger   logging.Logger
}

// NewEngine validates settings and creates an Engine.
func NewEngine(caller gateway.Caller, settings Settings, optFns ...func(o *Options)) (*Engine, error) {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}

	if settings.Backend == "" {
		settings.Backend = settings.JudgeModel
	}
	switch {
	case settings.Backend == "":
		return nil, fmt.Errorf("%w: judge model is required", ErrInvalidSettings)
	case len(settings.PromptTemplates) == 0:
		return nil, fmt.Errorf("%w: at least one prompt template is required", ErrInvalidSettings)
	case settings.Attempts < 1:
		return nil, fmt.Errorf("%w: attempts must be at least 1", ErrInvalidSettings)
	case settings.Extractor == nil:
		return nil, fmt.Errorf("%w: score extractor is required", ErrInvalidSettings)
	}

	return &Engine{caller: caller, settings: settings, logger: logging.OrNoop(opts.Logger)}, nil
}

// Settings returns the engine settings.
func (e *Engine) Settings() Settings { return e.settings }

// Games returns the number of games per judgment.
func (e *Engine) Games() int {
	if e.settings.Pairwise {
		return 2
	}
	return 1
}

// Judge plays every game for in and returns the judgment record. Backend
// failures and missing verdicts end up as null scores; errors are returned
// only for template problems and cancellation.
func (e *Engine) Judge(ctx context.Context, in Input) (core.Judgment, error) {
	out := core.Judgment{
		QuestionID: in.Question.ID,
		Model:      in.Answer.ModelID,
		Judge:      e.settings.JudgeModel,
		Games:      make([]core.Game, 0, e.Games()),
	}

	for game := 0; game < e.Games(); game++ {
		g, err := e.play(ctx, in, game%2 == 1)
		if err != nil {
			return core.Judgment{}, fmt.Errorf("judge %s/%s game %d: %w", in.Answer.ModelID, in.Question.ID, game+1, err)
		}
		out.Games = append(out.Games, g)
	}
	return out, nil
}

func (e *Engine) play(ctx context.Context, in Input, swap bool) (core.Game, error) {
	prompts, err := RenderPrompts(e.settings.PromptTemplates, Slots(in, swap))
	if err != nil {
		return core.Game{}, err
	}

	conv := make([]core.Message, 0, 1+len(prompts)+2*e.settings.Attempts)
	conv = append(conv, core.SystemMessage(e.settings.SystemPrompt))
	for _, p := range prompts {
		conv = append(conv, core.UserMessage(p))
	}

	var (
		transcript strings.Builder
		score      *string
		budget     = core.NewCallBudget(e.settings.Attempts)
	)

	for budget.Increment() == nil {
		res := e.caller.Call(ctx, e.settings.Backend, model.Request{
			Messages:    core.CloneMessages(conv),
			Temperature: model.Float(e.settings.Temperature),
			MaxTokens:   e.settings.MaxTokens,
		})
		if !res.OK() {
			e.logger.Warn("Judge call failed", "question_id", in.Question.ID, "model", in.Answer.ModelID, "attempt", budget.Count(), "error", res.Err)
		}
		reply := res.TextOrBlank()

		transcript.WriteString("\n")
		transcript.WriteString(reply)
		conv = append(conv, core.AssistantMessage(reply))

		x := e.settings.Extractor.Extract(transcript.String())
		e.logger.Debug("Judge attempt", "question_id", in.Question.ID, "model", in.Answer.ModelID, "attempt", budget.Count(), "verdict", x.Verdict.String())

		if x.Verdict == Accept {
			s := x.Score
			score = &s
			break
		}
		if x.Verdict == GiveUp {
			e.logger.Warn("Ambiguous verdict", "question_id", in.Question.ID, "model", in.Answer.ModelID, "matches", x.Matches)
			break
		}
		if budget.Remaining() > 0 {
			conv = append(conv, core.UserMessage(ContinuePrompt))
		}
	}

	if err := ctx.Err(); err != nil {
		return core.Game{}, err
	}

	return core.Game{
		UserPrompt: prompts[0],
		Judgment:   transcript.String(),
		Score:      score,
	}, nil
}
