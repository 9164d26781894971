package config

import (
	"path/filepath"
	"regexp"
)

// DefaultQuestionFile is the benchmark question file read by the judge.
const DefaultQuestionFile = "arena_hard_question.jsonl"

// JudgeSettings is the judge settings document.
type JudgeSettings struct {
	JudgeModel    string   `yaml:"judge_model"`
	Baseline      bool     `yaml:"baseline"`
	BaselineModel string   `yaml:"baseline_model"`
	Reference     bool     `yaml:"reference"`
	RefModel      []string `yaml:"ref_model"`
	Temperature   float64  `yaml:"temperature"`
	MaxTokens     int64    `yaml:"max_tokens"`
	Pairwise      bool     `yaml:"pairwise"`
	RegexPattern  string   `yaml:"regex_pattern"`
	Attempts      int      `yaml:"number_of_judgment_attempts"`

	SystemPrompt   string   `yaml:"system_prompt"`
	PromptTemplate []string `yaml:"prompt_template"`

	ModelList    []string `yaml:"model_list"`
	BenchName    string   `yaml:"bench_name"`
	QuestionFile string   `yaml:"question_file"`

	Publish Publish `yaml:"publish"`
}

// NewJudgeSettings returns settings populated with defaults.
func NewJudgeSettings() *JudgeSettings {
	return &JudgeSettings{
		MaxTokens:    4096,
		Attempts:     1,
		QuestionFile: DefaultQuestionFile,
	}
}

// LoadJudgeSettings reads, defaults and validates a judge settings document.
func LoadJudgeSettings(path string) (*JudgeSettings, error) {
	s := NewJudgeSettings()
	if err := decodeFile(path, s); err != nil {
		return nil, err
	}
	s.Publish.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, withPath(path, err)
	}
	return s, nil
}

// Validate checks required keys and cross-field constraints.
func (s *JudgeSettings) Validate() error {
	if s.JudgeModel == "" {
		return missing("judge_model")
	}
	if s.BenchName == "" {
		return missing("bench_name")
	}
	if len(s.PromptTemplate) == 0 {
		return missing("prompt_template")
	}
	if len(s.ModelList) == 0 {
		return missing("model_list")
	}
	if s.Attempts < 1 {
		return invalid("number_of_judgment_attempts", "must be at least 1, got %d", s.Attempts)
	}
	if s.Baseline && s.BaselineModel == "" {
		return missing("baseline_model")
	}
	if s.Reference && len(s.RefModel) == 0 {
		return missing("ref_model")
	}
	if s.RegexPattern == "" {
		return missing("regex_pattern")
	}
	if _, err := regexp.Compile(s.RegexPattern); err != nil {
		return invalid("regex_pattern", "%v", err)
	}
	return nil
}

// AnswerDir is where evaluated model answers live.
func (s *JudgeSettings) AnswerDir() string {
	return filepath.Join(s.BenchName, "model_answer")
}

// ReferenceDir is where reference answers live.
func (s *JudgeSettings) ReferenceDir() string {
	return filepath.Join(s.BenchName, "reference_answer")
}

// JudgmentDir is where judgments by JudgeModel are appended.
func (s *JudgeSettings) JudgmentDir() string {
	return filepath.Join(s.BenchName, "model_judgment", s.JudgeModel)
}
