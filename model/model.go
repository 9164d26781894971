package model

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/hupe1980/colm/core"
)

// ErrEmptyResponse is returned by Collect when a backend finished without
// producing a final response.
var ErrEmptyResponse = errors.New("model returned no response")

// Request captures the normalized model input.
type Request struct {
	Messages []core.Message `json:"messages"`
	// Temperature overrides the adapter default when non-nil.
	Temperature *float64 `json:"temperature,omitempty"`
	// MaxTokens overrides the adapter default when > 0.
	MaxTokens int64 `json:"max_tokens,omitempty"`
}

// TokenUsage captures token usage statistics for a response.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the final completion emitted by a model.
type Response struct {
	ID           string      `json:"id"`
	Text         string      `json:"text"`
	FinishReason string      `json:"finish_reason"` // "stop", "length", ...
	Usage        *TokenUsage `json:"usage,omitempty"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "azure", "anthropic", "gemini", "mock"
}

// Model is the minimal interface required by the gateway to drive generation.
type Model interface {
	Generate(ctx context.Context, req Request) (<-chan Response, <-chan error)

	// Info returns information about the model implementation.
	Info() Info
}

// Collect drains the channels returned by m.Generate and returns the trimmed
// completion text.
func Collect(ctx context.Context, m Model, req Request) (string, error) {
	respCh, errCh := m.Generate(ctx, req)

	var (
		text string
		got  bool
	)
	for respCh != nil || errCh != nil {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case r, ok := <-respCh:
			if !ok {
				respCh = nil
				continue
			}
			text = r.Text
			got = true
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			if err != nil {
				return "", err
			}
		}
	}
	if !got {
		return "", ErrEmptyResponse
	}
	return strings.TrimSpace(text), nil
}

// TemperatureOr returns the temperature override or def.
func (r Request) TemperatureOr(def float64) float64 {
	if r.Temperature != nil {
		return *r.Temperature
	}
	return def
}

// MaxTokensOr returns the max token override or def.
func (r Request) MaxTokensOr(def int64) int64 {
	if r.MaxTokens > 0 {
		return r.MaxTokens
	}
	return def
}

// Float returns a pointer to v; handy for Request.Temperature.
func Float(v float64) *float64 { return &v }

// MockModel is a lightweight in‑memory Model useful for tests & examples.
// Completions are resolved in order: a registered response for the last user
// message, then the next queued reply, then a generated echo.
type MockModel struct {
	info Info

	mu        sync.Mutex
	responses map[string]string
	queue     []mockReply
	requests  []Request
	fn        func(Request) (string, error)
}

type mockReply struct {
	text string
	err  error
}

// NewMockModel constructs a MockModel.
func NewMockModel(name string) *MockModel {
	return &MockModel{
		info:      Info{Name: name, Provider: "mock"},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion for a user prompt.
func (m *MockModel) AddResponse(prompt, response string) *MockModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[prompt] = response
	return m
}

// Enqueue appends replies returned by successive calls.
func (m *MockModel) Enqueue(replies ...string) *MockModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range replies {
		m.queue = append(m.queue, mockReply{text: r})
	}
	return m
}

// EnqueueError appends a failing call.
func (m *MockModel) EnqueueError(err error) *MockModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, mockReply{err: err})
	return m
}

// SetFunc installs a function that computes every completion; it takes
// precedence over canned and queued replies.
func (m *MockModel) SetFunc(fn func(Request) (string, error)) *MockModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fn = fn
	return m
}

// Requests returns a snapshot of all requests received so far.
func (m *MockModel) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// Calls returns the number of Generate invocations.
func (m *MockModel) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

func (m *MockModel) next(req Request) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := req
	cp.Messages = core.CloneMessages(req.Messages)
	m.requests = append(m.requests, cp)

	if m.fn != nil {
		return m.fn(cp)
	}

	last := lastUserText(req.Messages)
	if r, ok := m.responses[last]; ok {
		return r, nil
	}
	if len(m.queue) > 0 {
		r := m.queue[0]
		m.queue = m.queue[1:]
		return r.text, r.err
	}
	return fmt.Sprintf("Mock response to: %s", last), nil
}

// Generate implements Model.
func (m *MockModel) Generate(ctx context.Context, req Request) (<-chan Response, <-chan error) {
	respCh := make(chan Response, 1)
	errCh := make(chan error, 1)

	go func() {
		defer close(respCh)
		defer close(errCh)
		if len(req.Messages) == 0 {
			errCh <- fmt.Errorf("no messages provided")
			return
		}
		text, err := m.next(req)
		if err != nil {
			errCh <- err
			return
		}
		select {
		case <-ctx.Done():
			errCh <- ctx.Err()
		case respCh <- Response{Text: text, FinishReason: "stop"}:
		}
	}()
	return respCh, errCh
}

// Info implements Model interface.
func (m *MockModel) Info() Info { return m.info }

func lastUserText(msgs []core.Message) string {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == core.RoleUser {
			return msgs[i].Content
		}
	}
	return ""
}
