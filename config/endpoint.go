package config

import (
	"fmt"
	"os"
	"sort"
)

// Supported api_type values.
const (
	APITypeOpenAI    = "openai"
	APITypeAzure     = "azure"
	APITypeAnthropic = "anthropic"
	APITypeGemini    = "gemini"
)

var defaultKeyEnv = map[string]string{
	APITypeOpenAI:    "OPENAI_API_KEY",
	APITypeAzure:     "AZURE_OPENAI_API_KEY",
	APITypeAnthropic: "ANTHROPIC_API_KEY",
	APITypeGemini:    "GEMINI_API_KEY",
}

// Endpoint is one reachable deployment of a backend.
type Endpoint struct {
	APIBase    string `yaml:"api_base,omitempty"`
	APIKey     string `yaml:"api_key,omitempty"`
	APIKeyEnv  string `yaml:"api_key_env,omitempty"`
	APIVersion string `yaml:"api_version,omitempty"`
}

// ResolveAPIKey returns the explicit key, then the key from APIKeyEnv, then
// the provider default environment variable.
func (e Endpoint) ResolveAPIKey(apiType string) string {
	if e.APIKey != "" {
		return e.APIKey
	}
	if e.APIKeyEnv != "" {
		if v := os.Getenv(e.APIKeyEnv); v != "" {
			return v
		}
	}
	if env, ok := defaultKeyEnv[apiType]; ok {
		return os.Getenv(env)
	}
	return ""
}

// Backend describes one entry of the endpoint directory.
type Backend struct {
	ModelName string     `yaml:"model_name"`
	APIType   string     `yaml:"api_type"`
	Parallel  int        `yaml:"parallel"`
	Endpoints []Endpoint `yaml:"endpoints"`
}

// EndpointDirectory maps backend identifiers to their deployments.
type EndpointDirectory map[string]Backend

// LoadEndpointDirectory reads and validates an endpoint directory document.
func LoadEndpointDirectory(path string) (EndpointDirectory, error) {
	dir := EndpointDirectory{}
	if err := decodeFile(path, &dir); err != nil {
		return nil, err
	}
	dir.applyDefaults()
	if err := dir.Validate(); err != nil {
		return nil, withPath(path, err)
	}
	return dir, nil
}

func (d EndpointDirectory) applyDefaults() {
	for id, b := range d {
		if b.APIType == "" {
			b.APIType = APITypeOpenAI
		}
		if b.Parallel <= 0 {
			b.Parallel = 1
		}
		if len(b.Endpoints) == 0 {
			b.Endpoints = []Endpoint{{}}
		}
		d[id] = b
	}
}

// Validate checks every backend entry.
func (d EndpointDirectory) Validate() error {
	if len(d) == 0 {
		return &Error{Err: fmt.Errorf("%w: endpoint directory is empty", ErrMissing)}
	}
	for _, id := range d.IDs() {
		b := d[id]
		if b.ModelName == "" {
			return missing(id + ".model_name")
		}
		if _, ok := defaultKeyEnv[b.APIType]; !ok {
			return invalid(id+".api_type", "unsupported api type %q", b.APIType)
		}
		if b.APIType == APITypeAzure {
			for i, ep := range b.Endpoints {
				if ep.APIBase == "" {
					return missing(fmt.Sprintf("%s.endpoints[%d].api_base", id, i))
				}
			}
		}
	}
	return nil
}

// IDs returns the backend identifiers in sorted order.
func (d EndpointDirectory) IDs() []string {
	ids := make([]string, 0, len(d))
	for id := range d {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Parallel returns the configured concurrency for a backend, at least 1.
func (d EndpointDirectory) Parallel(id string) int {
	if b, ok := d[id]; ok && b.Parallel > 0 {
		return b.Parallel
	}
	return 1
}
