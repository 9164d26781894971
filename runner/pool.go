package runner

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/colm/logging"
)

// Task is one independent unit of work.
type Task[T any] func(ctx context.Context) (T, error)

// Outcome is the result of the task at Index.
type Outcome[T any] struct {
	Index    int
	Value    T
	Err      error
	Duration time.Duration
}

// RunAll executes tasks with at most limit running concurrently and returns
// their outcomes in task order. A failing task does not cancel the others.
// Tasks that have not started when ctx is done report ctx.Err(). onDone, when
// non-nil, is called once per task and never concurrently.
func RunAll[T any](ctx context.Context, limit int, tasks []Task[T], onDone func(Outcome[T])) []Outcome[T] {
	if limit < 1 {
		limit = 1
	}

	out := make([]Outcome[T], len(tasks))

	var (
		g  errgroup.Group
		mu sync.Mutex
	)
	g.SetLimit(limit)

	for i, task := range tasks {
		g.Go(func() error {
			start := time.Now()
			res := Outcome[T]{Index: i}

			if err := ctx.Err(); err != nil {
				res.Err = err
			} else {
				res.Value, res.Err = task(ctx)
			}
			res.Duration = time.Since(start)
			out[i] = res

			if onDone != nil {
				mu.Lock()
				onDone(res)
				mu.Unlock()
			}
			return nil
		})
	}

	_ = g.Wait()
	return out
}

// Progress counts finished units and logs completed/total.
type Progress struct {
	label  string
	total  int
	done   atomic.Int64
	failed atomic.Int64
	logger logging.Logger
}

// NewProgress creates a progress reporter for total units.
func NewProgress(logger logging.Logger, label string, total int) *Progress {
	return &Progress{label: label, total: total, logger: logging.OrNoop(logger)}
}

// Done records one finished unit.
func (p *Progress) Done(err error) {
	done := p.done.Add(1)
	failed := p.failed.Load()
	if err != nil {
		failed = p.failed.Add(1)
	}
	p.logger.Info("Progress", "stage", p.label, "completed", done, "total", p.total, "failed", failed)
}

// Completed returns the number of finished units including failed ones.
func (p *Progress) Completed() int { return int(p.done.Load()) }

// Failed returns the number of failed units.
func (p *Progress) Failed() int { return int(p.failed.Load()) }
