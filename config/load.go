package config

import (
	"bytes"
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// decodeFile reads the YAML document at path into out. Keys without a
// matching field are ignored so documents shared with other tools still load.
func decodeFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Error{Path: path, Err: err}
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return &Error{Path: path, Err: err}
	}
	return nil
}
