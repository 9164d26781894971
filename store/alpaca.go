package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultDataset labels instructions that carry no dataset name.
const DefaultDataset = "alpaca_eval"

// Instruction is one alpaca-style evaluation prompt.
type Instruction struct {
	Instruction string `json:"instruction"`
	Dataset     string `json:"dataset,omitempty"`
}

// AlpacaEntry is one generated output in the alpaca array format.
type AlpacaEntry struct {
	Dataset     string `json:"dataset"`
	Generator   string `json:"generator"`
	Instruction string `json:"instruction"`
	Output      string `json:"output"`
}

// LoadInstructions reads alpaca instructions from a JSON array document or,
// failing that, from JSONL. Missing dataset names default to DefaultDataset.
func (s *Store) LoadInstructions(path string) ([]Instruction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var out []Instruction
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &out); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	} else {
		err := s.scanLines(path, func(line []byte) error {
			var in Instruction
			if err := json.Unmarshal(line, &in); err != nil {
				return err
			}
			out = append(out, in)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	for i := range out {
		if out[i].Dataset == "" {
			out[i].Dataset = DefaultDataset
		}
	}
	return out, nil
}

// readArray returns the entries of an alpaca array file. Missing or corrupt
// files yield an empty slice.
func (s *Store) readArray(path string) []AlpacaEntry {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []AlpacaEntry{}
	}
	if err != nil {
		s.logger.Warn("Treating unreadable output as empty", "path", path, "error", err)
		return []AlpacaEntry{}
	}

	var entries []AlpacaEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Warn("Treating corrupt output as empty", "path", path, "error", err)
		return []AlpacaEntry{}
	}
	return entries
}

// LoadArray returns the entries of an alpaca array file.
func (s *Store) LoadArray(path string) []AlpacaEntry {
	l := s.lock(path)
	l.Lock()
	defer l.Unlock()
	return s.readArray(path)
}

// AppendArray adds entry to the JSON array stored at path and rewrites the
// file with two-space indentation.
func (s *Store) AppendArray(path string, entry AlpacaEntry) error {
	l := s.lock(path)
	l.Lock()
	defer l.Unlock()

	entries := append(s.readArray(path), entry)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
