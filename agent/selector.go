package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/colm/core"
	"github.com/hupe1980/colm/gateway"
	"github.com/hupe1980/colm/logging"
	"github.com/hupe1980/colm/model"
)

// DefaultRouterBackend is the backend asked to route questions.
const DefaultRouterBackend = "gpt-4o"

// UnknownSpecialistError lists selected names that are not registered.
type UnknownSpecialistError struct {
	Names []string
}

func (e *UnknownSpecialistError) Error() string {
	return fmt.Sprintf("unknown specialists: %s", strings.Join(e.Names, ", "))
}

// SelectorOptions configure a Selector.
type SelectorOptions struct {
	Backend      string
	SystemPrompt string
	Logger       logging.Logger
}

// Selector asks a routing backend which specialists fit a question best.
type Selector struct {
	caller gateway.Caller
	opts   SelectorOptions
	logger logging.Logger
}

// NewSelector creates a Selector. The summary prompt doubles as the routing
// system prompt unless SystemPrompt is set.
func NewSelector(caller gateway.Caller, optFns ...func(o *SelectorOptions)) *Selector {
	opts := SelectorOptions{
		Backend:      DefaultRouterBackend,
		SystemPrompt: DefaultSynthesisPrompt,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Selector{caller: caller, opts: opts, logger: logging.OrNoop(opts.Logger)}
}

// Select returns at most topK specialist names proposed by the routing
// backend. Invalid inputs and any backend or parse failure yield an empty
// list; Select never returns an error.
func (s *Selector) Select(ctx context.Context, q core.Question, reg *Registry, topK int) []string {
	if len(q.Turns) == 0 || topK < 1 || reg == nil || reg.Len() == 0 {
		s.logger.Warn("Selection skipped: invalid input", "question_id", q.ID, "top_k", topK)
		return []string{}
	}

	res := s.caller.Call(ctx, s.opts.Backend, model.Request{
		Messages: []core.Message{
			core.SystemMessage(s.opts.SystemPrompt),
			core.UserMessage(SelectionPrompt(q.Text(), reg.Names(), topK)),
		},
	})
	if !res.OK() {
		s.logger.Warn("Model selection failed", "question_id", q.ID, "backend", s.opts.Backend, "error", res.Err)
		return []string{}
	}

	selected := ParseSelection(res.Text, topK)
	s.logger.Info("Selected models", "question_id", q.ID, "selected", selected)
	return selected
}

// SelectionPrompt renders the routing request for a question.
func SelectionPrompt(question string, names []string, topK int) string {
	return fmt.Sprintf(
		"Given the question: '%s', select the %d most relevant specializations from the following:\n\n%s\n\nReturn only the names of the most relevant models, separated by commas.",
		question, topK, strings.Join(names, "\n"),
	)
}

// ParseSelection splits a routing reply on ", ", trims items, drops blanks
// and truncates to topK.
func ParseSelection(reply string, topK int) []string {
	out := []string{}
	for _, item := range strings.Split(strings.TrimSpace(reply), ", ") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
		if len(out) == topK {
			break
		}
	}
	return out
}

// ValidateSelection keeps the registered names of a selection in order,
// dropping duplicates. Unregistered names are reported through an
// *UnknownSpecialistError alongside the filtered list.
func ValidateSelection(names []string, reg *Registry) ([]string, error) {
	valid := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	var unknown []string

	for _, n := range names {
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		if reg != nil && reg.Has(n) {
			valid = append(valid, n)
			continue
		}
		unknown = append(unknown, n)
	}

	if len(unknown) > 0 {
		return valid, &UnknownSpecialistError{Names: unknown}
	}
	return valid, nil
}
