package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// QuestionID is an opaque question identifier. Dataset files use either JSON
// strings or JSON numbers; both decode into their textual form.
type QuestionID string

// UnmarshalJSON accepts a JSON string or a JSON number.
func (id *QuestionID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = QuestionID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("question_id must be a string or number: %w", err)
	}
	*id = QuestionID(n.String())
	return nil
}

// String implements fmt.Stringer.
func (id QuestionID) String() string { return string(id) }

// Turns is an ordered sequence of turn texts. Entries are encoded as plain
// strings; on decode both plain strings and {"content": "..."} objects are
// accepted.
type Turns []string

// UnmarshalJSON decodes a list of strings or content objects.
func (t *Turns) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Turns, 0, len(raw))
	for i, r := range raw {
		r = bytes.TrimSpace(r)
		if len(r) > 0 && r[0] == '{' {
			var obj struct {
				Content string `json:"content"`
			}
			if err := json.Unmarshal(r, &obj); err != nil {
				return fmt.Errorf("turn %d: %w", i, err)
			}
			out = append(out, obj.Content)
			continue
		}
		var s string
		if err := json.Unmarshal(r, &s); err != nil {
			return fmt.Errorf("turn %d: %w", i, err)
		}
		out = append(out, s)
	}
	*t = out
	return nil
}

// Question is one benchmark prompt with its ordered turns. It is read-only
// once loaded.
type Question struct {
	ID    QuestionID `json:"question_id"`
	Turns Turns      `json:"turns"`
}

// Text joins all turns into a single prompt string.
func (q Question) Text() string {
	return strings.Join(q.Turns, "\n")
}
