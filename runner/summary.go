package runner

import "fmt"

// Summary counts what a batch did.
type Summary struct {
	// Scheduled units were handed to the pool.
	Scheduled int
	// Skipped units were already on disk or lacked inputs.
	Skipped int
	// Failed units returned an error; nothing was written for them.
	Failed int
	// Written is the number of records appended.
	Written int
}

func (s Summary) String() string {
	return fmt.Sprintf("scheduled=%d skipped=%d failed=%d written=%d", s.Scheduled, s.Skipped, s.Failed, s.Written)
}
