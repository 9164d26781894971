package gateway

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/hupe1980/colm/logging"
	"github.com/hupe1980/colm/model"
)

// Options configure a Gateway.
type Options struct {
	Logger logging.Logger
	Jitter Jitter
}

// Gateway routes calls to registered backends.
type Gateway struct {
	mu       sync.RWMutex
	backends map[string][]model.Model
	jitter   Jitter
	logger   logging.Logger
	pick     func(n int) int
}

// New creates an empty Gateway with the default jitter window.
func New(optFns ...func(o *Options)) *Gateway {
	opts := Options{
		Logger: logging.NoOpLogger{},
		Jitter: DefaultJitter(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Gateway{
		backends: make(map[string][]model.Model),
		jitter:   opts.Jitter,
		logger:   logging.OrNoop(opts.Logger),
		pick:     rand.IntN,
	}
}

// Register adds deployments for backend. Deployments accumulate across calls.
func (g *Gateway) Register(backend string, deployments ...model.Model) *Gateway {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.backends[backend] = append(g.backends[backend], deployments...)
	return g
}

// Backends returns the registered backend identifiers in sorted order.
func (g *Gateway) Backends() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	ids := make([]string, 0, len(g.backends))
	for id := range g.backends {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Has reports whether backend is registered.
func (g *Gateway) Has(backend string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.backends[backend]) > 0
}

// Call waits for the jitter delay and then performs one completion against
// a deployment of backend. It never panics; failures are reported in Result.Err.
func (g *Gateway) Call(ctx context.Context, backend string, req model.Request) (res Result) {
	start := time.Now()
	res.Backend = backend

	defer func() {
		res.Duration = time.Since(start)
		logging.LogLLMCall(g.logger, backend, res.Duration, res.Err)
	}()

	m, err := g.deployment(backend)
	if err != nil {
		res.Err = err
		return res
	}

	if err := g.jitter.Wait(ctx); err != nil {
		res.Err = err
		return res
	}

	text, err := model.Collect(ctx, m, req)
	if err != nil {
		res.Err = fmt.Errorf("backend %s: %w", backend, err)
		return res
	}
	res.Text = text
	return res
}

func (g *Gateway) deployment(backend string) (model.Model, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	deps := g.backends[backend]
	switch len(deps) {
	case 0:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	case 1:
		return deps[0], nil
	default:
		return deps[g.pick(len(deps))], nil
	}
}
