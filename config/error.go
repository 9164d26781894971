package config

import (
	"errors"
	"fmt"
)

// ErrMissing marks a required key that is absent or empty.
var ErrMissing = errors.New("missing required value")

// ErrInvalid marks a key whose value is out of range or malformed.
var ErrInvalid = errors.New("invalid value")

// Error describes a configuration problem in a specific document.
type Error struct {
	Path string // document path, empty for in-memory settings
	Key  string // offending key, empty when the whole document is at fault
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Path != "" && e.Key != "":
		return fmt.Sprintf("config %s: %s: %v", e.Path, e.Key, e.Err)
	case e.Path != "":
		return fmt.Sprintf("config %s: %v", e.Path, e.Err)
	case e.Key != "":
		return fmt.Sprintf("config: %s: %v", e.Key, e.Err)
	default:
		return fmt.Sprintf("config: %v", e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

func missing(key string) error { return &Error{Key: key, Err: ErrMissing} }

func invalid(key, format string, args ...any) error {
	return &Error{Key: key, Err: fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))}
}

// withPath stamps the document path onto a validation error.
func withPath(path string, err error) error {
	if err == nil {
		return nil
	}
	var cfgErr *Error
	if errors.As(err, &cfgErr) && cfgErr.Path == "" {
		cp := *cfgErr
		cp.Path = path
		return &cp
	}
	return err
}
