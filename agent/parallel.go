package agent

import (
	"context"
	"sync"

	"github.com/hupe1980/colm/core"
)

// runParallel executes fn once per specialist concurrently and gathers the
// answers keyed by specialist name. Each goroutine owns its conversation;
// only the result map is shared.
func runParallel(ctx context.Context, specs []Specialist, fn func(context.Context, Specialist) core.Answer) map[string]core.Answer {
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		out = make(map[string]core.Answer, len(specs))
	)

	for _, spec := range specs {
		wg.Add(1)
		go func(s Specialist) {
			defer wg.Done()

			ans := fn(ctx, s)

			mu.Lock()
			out[s.Name] = ans
			mu.Unlock()
		}(spec)
	}

	wg.Wait()
	return out
}

// cloneAnswers copies an answer set including the turn slices.
func cloneAnswers(in map[string]core.Answer) map[string]core.Answer {
	out := make(map[string]core.Answer, len(in))
	for k, a := range in {
		cp := a
		cp.Choices = make([]core.Choice, len(a.Choices))
		for i, c := range a.Choices {
			cp.Choices[i] = core.Choice{Index: c.Index, Turns: append([]string(nil), c.Turns...)}
		}
		out[k] = cp
	}
	return out
}
