package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/hupe1980/colm/model"
)

// ErrUnknownBackend is reported when a call names an unregistered backend.
var ErrUnknownBackend = errors.New("unknown backend")

// Result is the outcome of a single backend call.
type Result struct {
	Backend  string
	Text     string
	Err      error
	Duration time.Duration
}

// OK reports whether the call succeeded.
func (r Result) OK() bool { return r.Err == nil }

// TextOrBlank returns the completion text, or "" when the call failed.
func (r Result) TextOrBlank() string {
	if r.Err != nil {
		return ""
	}
	return r.Text
}

// Caller is the call contract consumed by the agent and evaluation packages.
type Caller interface {
	Call(ctx context.Context, backend string, req model.Request) Result
}

// CallerFunc adapts a function to the Caller interface.
type CallerFunc func(ctx context.Context, backend string, req model.Request) Result

// Call implements Caller.
func (f CallerFunc) Call(ctx context.Context, backend string, req model.Request) Result {
	return f(ctx, backend, req)
}
