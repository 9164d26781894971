// Package store persists answers and judgments as newline-delimited JSON and
// reads the datasets the batch runners consume.
//
// Result files are append-only: records are encoded as one line each and
// appended under a mutex scoped to the file path. The only rewrite path is
// the alpaca output format, which keeps one JSON array per model file.
// Resumability comes from scanning existing files before a batch starts.
package store
