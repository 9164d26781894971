package artifact

import "fmt"

var (
	// ErrNotFound is returned when no artifact exists under the given key.
	ErrNotFound = fmt.Errorf("artifact not found")
)
