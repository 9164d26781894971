package gateway

import (
	"context"
	"math/rand/v2"
	"time"
)

// Jitter is a uniform random delay applied before every backend call.
type Jitter struct {
	Min time.Duration
	Max time.Duration
}

// DefaultJitter returns the 300ms..800ms window.
func DefaultJitter() Jitter {
	return Jitter{Min: 300 * time.Millisecond, Max: 800 * time.Millisecond}
}

// NoJitter disables the delay.
func NoJitter() Jitter { return Jitter{} }

// Next draws a delay in [Min, Max].
func (j Jitter) Next() time.Duration {
	if j.Max <= j.Min {
		return max(j.Min, 0)
	}
	return j.Min + rand.N(j.Max-j.Min+1)
}

// Wait sleeps for Next() or until ctx is done.
func (j Jitter) Wait(ctx context.Context) error {
	d := j.Next()
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// JitterFromMillis builds a Jitter from millisecond bounds.
func JitterFromMillis(minMS, maxMS int) Jitter {
	return Jitter{Min: time.Duration(minMS) * time.Millisecond, Max: time.Duration(maxMS) * time.Millisecond}
}
