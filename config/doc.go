// Package config loads the YAML documents that drive the colm binaries:
// judge settings, the backend endpoint directory and generation settings.
//
// Every document is decoded once in main, defaulted, validated and then
// passed down explicitly. Validation failures are reported as *Error so the
// binaries can abort before any backend is contacted.
package config
