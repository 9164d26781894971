// Package logging provides a minimal logging interface and adapters for colm.
//
// The Logger interface defines the standard logging methods (Debug, Info,
// Warn, Error) that the gateway, the deliberation components, the judge
// engine and the batch runners use for observability. This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - StructuredLogger with component scoping and domain helpers
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.New(logging.ConfigFromEnv())
//	gw := gateway.New(func(o *gateway.Options) { o.Logger = logger })
//
// Arguments after the message are slog style key/value pairs.
package logging
