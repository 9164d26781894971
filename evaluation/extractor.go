package evaluation

import (
	"fmt"
	"regexp"
	"strings"
)

// Verdict is the decision taken after scanning a judge transcript.
type Verdict int

const (
	// Retry asks the judge to continue when attempts remain.
	Retry Verdict = iota
	// Accept records the extracted score and stops.
	Accept
	// GiveUp records a null score and stops.
	GiveUp
)

func (v Verdict) String() string {
	switch v {
	case Accept:
		return "accept"
	case GiveUp:
		return "give_up"
	default:
		return "retry"
	}
}

// Extraction is the result of scanning a transcript.
type Extraction struct {
	Verdict Verdict
	Score   string // set only for Accept
	Matches []string
}

// ScoreExtractor turns a cumulative judge transcript into a verdict.
type ScoreExtractor interface {
	Extract(transcript string) Extraction
}

// AmbiguityPolicy decides what happens when a transcript contains several
// distinct verdict labels.
type AmbiguityPolicy int

const (
	// GiveUpOnAmbiguity stops with a null score.
	GiveUpOnAmbiguity AmbiguityPolicy = iota
	// RetryOnAmbiguity asks the judge to continue.
	RetryOnAmbiguity
)

// RegexExtractor finds verdict labels with a regular expression. When the
// pattern has capture groups the first group is the label, otherwise the
// whole match is.
type RegexExtractor struct {
	pattern *regexp.Regexp
	policy  AmbiguityPolicy
}

// NewRegexExtractor creates an extractor for a compiled pattern.
func NewRegexExtractor(pattern *regexp.Regexp, policy AmbiguityPolicy) *RegexExtractor {
	return &RegexExtractor{pattern: pattern, policy: policy}
}

// CompileRegexExtractor compiles pattern and creates a GiveUpOnAmbiguity extractor.
func CompileRegexExtractor(pattern string) (*RegexExtractor, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile score pattern: %w", err)
	}
	return NewRegexExtractor(re, GiveUpOnAmbiguity), nil
}

// Extract implements ScoreExtractor. Empty labels are ignored; zero distinct
// labels yield Retry, exactly one yields Accept, more than one is resolved
// by the ambiguity policy.
func (x *RegexExtractor) Extract(transcript string) Extraction {
	group := 0
	if x.pattern.NumSubexp() > 0 {
		group = 1
	}

	var (
		matches  []string
		distinct = map[string]struct{}{}
	)
	for _, m := range x.pattern.FindAllStringSubmatch(transcript, -1) {
		label := m[group]
		if label == "" {
			continue
		}
		matches = append(matches, label)
		distinct[label] = struct{}{}
	}

	switch {
	case len(distinct) == 0:
		return Extraction{Verdict: Retry}
	case len(distinct) == 1:
		return Extraction{Verdict: Accept, Score: strings.TrimSpace(matches[0]), Matches: matches}
	case x.policy == RetryOnAmbiguity:
		return Extraction{Verdict: Retry, Matches: matches}
	default:
		return Extraction{Verdict: GiveUp, Matches: matches}
	}
}
