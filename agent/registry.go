package agent

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicateSpecialist is returned when a registry receives the same name twice.
var ErrDuplicateSpecialist = errors.New("duplicate specialist")

// ErrInvalidSpecialist is returned for entries without name or backend.
var ErrInvalidSpecialist = errors.New("invalid specialist")

// Specialist is a named role: a system prompt bound to a backend.
type Specialist struct {
	Name         string `json:"name" yaml:"name"`
	SystemPrompt string `json:"system_prompt" yaml:"system_prompt"`
	Backend      string `json:"backend" yaml:"backend"`
}

// Registry is an immutable ordered collection of specialists.
type Registry struct {
	entries []Specialist
	index   map[string]int
}

// NewRegistry builds a registry preserving the given order.
func NewRegistry(specs ...Specialist) (*Registry, error) {
	r := &Registry{
		entries: make([]Specialist, 0, len(specs)),
		index:   make(map[string]int, len(specs)),
	}
	for _, s := range specs {
		if strings.TrimSpace(s.Name) == "" || strings.TrimSpace(s.Backend) == "" {
			return nil, fmt.Errorf("%w: name and backend are required (%+v)", ErrInvalidSpecialist, s)
		}
		if _, dup := r.index[s.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSpecialist, s.Name)
		}
		r.index[s.Name] = len(r.entries)
		r.entries = append(r.entries, s)
	}
	return r, nil
}

// MustRegistry is like NewRegistry but panics on error. Intended for
// package-level fixtures and tests.
func MustRegistry(specs ...Specialist) *Registry {
	r, err := NewRegistry(specs...)
	if err != nil {
		panic(err)
	}
	return r
}

// DefaultSpecialists returns the built-in specialist set.
func DefaultSpecialists() []Specialist {
	return []Specialist{
		{Name: "qwen-math", SystemPrompt: "You are a helpful math assistant.", Backend: "qwen-math-plus"},
		{Name: "gpt-conv", SystemPrompt: "You are a conversational assistant focused on natural, fluent communication.", Backend: "gpt-4o"},
		{Name: "qwen-coder", SystemPrompt: "You are a helpful code assistant.", Backend: "qwen-coder-plus"},
		{Name: "ds-creative", SystemPrompt: "You are a creative assistant who writes imaginatively and artistically.", Backend: "deepseek-chat"},
	}
}

// DefaultRegistry returns a registry of DefaultSpecialists.
func DefaultRegistry() *Registry { return MustRegistry(DefaultSpecialists()...) }

// Len returns the number of specialists.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// Names returns the specialist names in registry order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.Name
	}
	return names
}

// All returns a copy of the entries in registry order.
func (r *Registry) All() []Specialist {
	if r == nil {
		return nil
	}
	out := make([]Specialist, len(r.entries))
	copy(out, r.entries)
	return out
}

// Lookup returns the specialist registered under name.
func (r *Registry) Lookup(name string) (Specialist, bool) {
	if r == nil {
		return Specialist{}, false
	}
	i, ok := r.index[name]
	if !ok {
		return Specialist{}, false
	}
	return r.entries[i], true
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	if r == nil {
		return false
	}
	_, ok := r.index[name]
	return ok
}

// Backends returns the distinct backends referenced by the registry.
func (r *Registry) Backends() []string {
	seen := make(map[string]struct{}, len(r.entries))
	var out []string
	for _, e := range r.entries {
		if _, ok := seen[e.Backend]; ok {
			continue
		}
		seen[e.Backend] = struct{}{}
		out = append(out, e.Backend)
	}
	return out
}
