package config

import (
	"os"
)

// Environment variable that overrides the generation settings path.
const GenerateConfigEnv = "COLM_CONFIG"

// DefaultGenerateConfigFile is read when GenerateConfigEnv is unset.
const DefaultGenerateConfigFile = "colm_config.yaml"

// Format names shared by question input and answer output.
const (
	FormatJSONL  = "jsonl"
	FormatAlpaca = "alpaca"
)

// Values accepted by selection_fallback and write_models.
const (
	FallbackAll     = "all"
	FallbackNone    = "none"
	WriteAll        = "all"
	WriteSelected   = "selected"
	defaultTopK     = 2
	defaultWorkers  = 32
	defaultJitterLo = 300
	defaultJitterHi = 800
)

// Specialization declares one registry entry.
type Specialization struct {
	Name         string `yaml:"name"`
	SystemPrompt string `yaml:"system_prompt"`
	Backend      string `yaml:"backend"`
}

// GenerateSettings is the generation settings document.
type GenerateSettings struct {
	EndpointFile   string `yaml:"endpoint_file"`
	QuestionFile   string `yaml:"question_file"`
	QuestionFormat string `yaml:"question_format"`
	OutputDir      string `yaml:"output_dir"`
	OutputFormat   string `yaml:"output_format"`
	MaxWorkers     int    `yaml:"max_workers"`

	TopK              int    `yaml:"top_k"`
	Iterations        int    `yaml:"iterations"`
	UseSelection      bool   `yaml:"use_selection"`
	SelectionFallback string `yaml:"selection_fallback"`
	WriteModels       string `yaml:"write_models"`

	RouterBackend    string `yaml:"router_backend"`
	SynthesisBackend string `yaml:"synthesis_backend"`
	SelectionPrompt  string `yaml:"selection_prompt"`
	SynthesisPrompt  string `yaml:"synthesis_prompt"`

	JitterMinMS int `yaml:"jitter_min_ms"`
	JitterMaxMS int `yaml:"jitter_max_ms"`

	Specializations []Specialization `yaml:"specializations"`

	Publish Publish `yaml:"publish"`
}

// NewGenerateSettings returns settings populated with defaults.
func NewGenerateSettings() *GenerateSettings {
	return &GenerateSettings{
		EndpointFile:      "api_config.yaml",
		QuestionFormat:    FormatJSONL,
		OutputDir:         "model_answer",
		OutputFormat:      FormatJSONL,
		MaxWorkers:        defaultWorkers,
		TopK:              defaultTopK,
		Iterations:        1,
		UseSelection:      true,
		SelectionFallback: FallbackAll,
		WriteModels:       WriteAll,
		RouterBackend:     "gpt-4o",
		SynthesisBackend:  "gpt-4o",
		JitterMinMS:       defaultJitterLo,
		JitterMaxMS:       defaultJitterHi,
	}
}

// GenerateConfigPath returns the path named by COLM_CONFIG or the default.
func GenerateConfigPath() string {
	if p := os.Getenv(GenerateConfigEnv); p != "" {
		return p
	}
	return DefaultGenerateConfigFile
}

// LoadGenerateSettings reads, defaults and validates a generation settings document.
func LoadGenerateSettings(path string) (*GenerateSettings, error) {
	s := NewGenerateSettings()
	if err := decodeFile(path, s); err != nil {
		return nil, err
	}
	s.Publish.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, withPath(path, err)
	}
	return s, nil
}

// Validate checks required keys and enumerations.
func (s *GenerateSettings) Validate() error {
	if s.QuestionFile == "" {
		return missing("question_file")
	}
	if s.OutputDir == "" {
		return missing("output_dir")
	}
	if s.QuestionFormat != FormatJSONL && s.QuestionFormat != FormatAlpaca {
		return invalid("question_format", "want %q or %q, got %q", FormatJSONL, FormatAlpaca, s.QuestionFormat)
	}
	if s.OutputFormat != FormatJSONL && s.OutputFormat != FormatAlpaca {
		return invalid("output_format", "want %q or %q, got %q", FormatJSONL, FormatAlpaca, s.OutputFormat)
	}
	if s.MaxWorkers < 1 {
		return invalid("max_workers", "must be at least 1, got %d", s.MaxWorkers)
	}
	if s.TopK < 1 {
		return invalid("top_k", "must be at least 1, got %d", s.TopK)
	}
	if s.Iterations < 0 {
		return invalid("iterations", "must not be negative, got %d", s.Iterations)
	}
	if s.SelectionFallback != FallbackAll && s.SelectionFallback != FallbackNone {
		return invalid("selection_fallback", "want %q or %q, got %q", FallbackAll, FallbackNone, s.SelectionFallback)
	}
	if s.WriteModels != WriteAll && s.WriteModels != WriteSelected {
		return invalid("write_models", "want %q or %q, got %q", WriteAll, WriteSelected, s.WriteModels)
	}
	if s.UseSelection && s.RouterBackend == "" {
		return missing("router_backend")
	}
	if s.SynthesisBackend == "" {
		return missing("synthesis_backend")
	}
	if s.JitterMinMS < 0 || s.JitterMaxMS < s.JitterMinMS {
		return invalid("jitter_max_ms", "need 0 <= jitter_min_ms <= jitter_max_ms, got %d..%d", s.JitterMinMS, s.JitterMaxMS)
	}
	seen := make(map[string]struct{}, len(s.Specializations))
	for i, sp := range s.Specializations {
		if sp.Name == "" || sp.Backend == "" {
			return invalid("specializations", "entry %d needs name and backend", i)
		}
		if _, dup := seen[sp.Name]; dup {
			return invalid("specializations", "duplicate name %q", sp.Name)
		}
		seen[sp.Name] = struct{}{}
	}
	return nil
}

// CheckBackends verifies that every backend referenced by the settings is
// present in the endpoint directory.
func (s *GenerateSettings) CheckBackends(dir EndpointDirectory) error {
	need := []struct{ key, id string }{{"synthesis_backend", s.SynthesisBackend}}
	if s.UseSelection {
		need = append(need, struct{ key, id string }{"router_backend", s.RouterBackend})
	}
	for _, sp := range s.Specializations {
		need = append(need, struct{ key, id string }{"specializations." + sp.Name + ".backend", sp.Backend})
	}
	for _, n := range need {
		if _, ok := dir[n.id]; !ok {
			return invalid(n.key, "backend %q not found in endpoint directory", n.id)
		}
	}
	return nil
}
