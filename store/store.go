package store

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hupe1980/colm/logging"
)

// maxLineSize bounds a single JSONL record.
const maxLineSize = 64 << 20

// Options configure a Store.
type Options struct {
	Logger logging.Logger
}

// Store reads and appends result files. A single Store should be shared by
// all workers writing to the same files.
type Store struct {
	logger logging.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a Store.
func New(optFns ...func(o *Options)) *Store {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Store{
		logger: logging.OrNoop(opts.Logger),
		locks:  make(map[string]*sync.Mutex),
	}
}

// lock returns the mutex guarding path.
func (s *Store) lock(path string) *sync.Mutex {
	key := filepath.Clean(path)
	if abs, err := filepath.Abs(key); err == nil {
		key = abs
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}

// marshalLine encodes v as a single JSON line without HTML escaping.
func marshalLine(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Append encodes record as one JSON line and appends it to path, creating
// parent directories and the file as needed.
func (s *Store) Append(path string, record any) error {
	line, err := marshalLine(record)
	if err != nil {
		return fmt.Errorf("encode record for %s: %w", path, err)
	}

	l := s.lock(path)
	l.Lock()
	defer l.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	if _, err := f.Write(line); err != nil {
		_ = f.Close()
		return fmt.Errorf("append to %s: %w", path, err)
	}
	return f.Close()
}

// scanLines calls fn for every non-blank line of path. Lines fn rejects are
// logged and skipped. A missing file is not an error.
func (s *Store) scanLines(path string, fn func(line []byte) error) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	n := 0
	for sc.Scan() {
		n++
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		if err := fn(line); err != nil {
			s.logger.Warn("Skipping undecodable line", "path", path, "line", n, "error", err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

// jsonlFiles lists *.jsonl files of dir keyed by file stem. A missing
// directory yields an empty map.
func jsonlFiles(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	out := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".jsonl" {
			continue
		}
		out[strings.TrimSuffix(e.Name(), ".jsonl")] = filepath.Join(dir, e.Name())
	}
	return out, nil
}
