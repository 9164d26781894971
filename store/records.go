package store

import (
	"encoding/json"
	"fmt"

	"github.com/hupe1980/colm/core"
)

type idOnly struct {
	QuestionID *core.QuestionID `json:"question_id"`
}

func decodeID(line []byte) (core.QuestionID, error) {
	var rec idOnly
	if err := json.Unmarshal(line, &rec); err != nil {
		return "", err
	}
	if rec.QuestionID == nil {
		return "", fmt.Errorf("record has no question_id")
	}
	return *rec.QuestionID, nil
}

// AnsweredIDs returns the question ids recorded in one JSONL result file.
func (s *Store) AnsweredIDs(path string) (map[core.QuestionID]struct{}, error) {
	l := s.lock(path)
	l.Lock()
	defer l.Unlock()

	ids := make(map[core.QuestionID]struct{})
	err := s.scanLines(path, func(line []byte) error {
		id, err := decodeID(line)
		if err != nil {
			return err
		}
		ids[id] = struct{}{}
		return nil
	})
	return ids, err
}

// LoadJudged scans every *.jsonl file of dir and returns, per model (the
// file stem), the question ids already present.
func (s *Store) LoadJudged(dir string) (map[string]map[core.QuestionID]struct{}, error) {
	files, err := jsonlFiles(dir)
	if err != nil {
		return nil, err
	}

	out := make(map[string]map[core.QuestionID]struct{}, len(files))
	for name, path := range files {
		ids, err := s.AnsweredIDs(path)
		if err != nil {
			return nil, err
		}
		out[name] = ids
	}
	return out, nil
}

// LoadQuestions reads a JSONL question file in file order.
func (s *Store) LoadQuestions(path string) ([]core.Question, error) {
	var out []core.Question
	err := s.scanLines(path, func(line []byte) error {
		var q core.Question
		if err := json.Unmarshal(line, &q); err != nil {
			return err
		}
		out = append(out, q)
		return nil
	})
	return out, err
}

// LoadModelAnswers reads every *.jsonl answer file of dir into
// model -> question id -> answer. Later records win.
func (s *Store) LoadModelAnswers(dir string) (map[string]map[core.QuestionID]core.Answer, error) {
	files, err := jsonlFiles(dir)
	if err != nil {
		return nil, err
	}

	out := make(map[string]map[core.QuestionID]core.Answer, len(files))
	for name, path := range files {
		answers := make(map[core.QuestionID]core.Answer)
		err := s.scanLines(path, func(line []byte) error {
			var a core.Answer
			if err := json.Unmarshal(line, &a); err != nil {
				return err
			}
			answers[a.QuestionID] = a
			return nil
		})
		if err != nil {
			return nil, err
		}
		out[name] = answers
	}
	return out, nil
}
