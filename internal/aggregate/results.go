package aggregate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"quizharvest/internal/question"
)

// Results maps test names to their questions, keeping test names in first
// insertion order and questions in append order. The zero value is empty and
// ready to use. Results is not safe for concurrent writers; parallel workers
// fill their own partial Results and Merge them afterwards.
type Results struct {
	names   []string
	entries map[string][]question.Question
}

// Entry is one test with its questions.
type Entry struct {
	Name      string
	Questions []question.Question
}

// New returns an empty result set.
func New() *Results {
	return &Results{}
}

func (r *Results) ensure(name string) {
	if r.entries == nil {
		r.entries = make(map[string][]question.Question)
	}
	if _, ok := r.entries[name]; !ok {
		r.names = append(r.names, name)
		r.entries[name] = []question.Question{}
	}
}

// Add appends one question to a test, creating the test if absent.
func (r *Results) Add(name string, q question.Question) {
	r.ensure(name)
	r.entries[name] = append(r.entries[name], q)
}

// AddAll appends questions to a test in order. The test is created even when
// questions is empty.
func (r *Results) AddAll(name string, questions []question.Question) {
	r.ensure(name)
	r.entries[name] = append(r.entries[name], questions...)
}

// Merge appends every test of other in its order. Repeated questions are kept.
func (r *Results) Merge(other *Results) {
	if other == nil {
		return
	}
	for _, name := range other.names {
		r.AddAll(name, other.entries[name])
	}
}

// Replace sets a test's questions, keeping the test's first position.
func (r *Results) Replace(name string, questions []question.Question) {
	r.ensure(name)
	r.entries[name] = append([]question.Question{}, questions...)
}

// Questions returns the questions of a test.
func (r *Results) Questions(name string) ([]question.Question, bool) {
	if r == nil || r.entries == nil {
		return nil, false
	}
	questions, ok := r.entries[name]
	return questions, ok
}

// Names lists test names in insertion order.
func (r *Results) Names() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.names...)
}

// Entries lists every test in insertion order.
func (r *Results) Entries() []Entry {
	if r == nil {
		return nil
	}
	out := make([]Entry, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, Entry{Name: name, Questions: r.entries[name]})
	}
	return out
}

// Len returns the number of tests.
func (r *Results) Len() int {
	if r == nil {
		return 0
	}
	return len(r.names)
}

// QuestionCount returns the number of questions across every test.
func (r *Results) QuestionCount() int {
	total := 0
	for _, entry := range r.Entries() {
		total += len(entry.Questions)
	}
	return total
}

// Join combines already-serialized result sets with a shallow key union: on a
// repeated test name the later set replaces the earlier questions.
func Join(sets ...*Results) *Results {
	out := New()
	for _, set := range sets {
		for _, entry := range set.Entries() {
			out.Replace(entry.Name, entry.Questions)
		}
	}
	return out
}

// MarshalJSON writes an object keyed by test name in insertion order.
func (r *Results) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range r.Entries() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(entry.Name)
		if err != nil {
			return nil, err
		}
		value, err := marshalNoEscape(entry.Questions)
		if err != nil {
			return nil, fmt.Errorf("test %q: %w", entry.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalNoEscape(value any) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(value); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalJSON reads an object keyed by test name, keeping key order.
func (r *Results) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	token, err := decoder.Token()
	if err != nil {
		return fmt.Errorf("parse results: %w", err)
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return errors.New("parse results: expected an object of tests")
	}
	out := Results{}
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return fmt.Errorf("parse results: %w", err)
		}
		name, ok := token.(string)
		if !ok {
			return errors.New("parse results: expected a test name")
		}
		var questions []question.Question
		if err := decoder.Decode(&questions); err != nil {
			return fmt.Errorf("parse test %q: %w", name, err)
		}
		out.Replace(name, questions)
	}
	if _, err := decoder.Token(); err != nil {
		return fmt.Errorf("parse results: %w", err)
	}
	*r = out
	return nil
}

// MarshalYAML writes a mapping keyed by test name in insertion order.
func (r *Results) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, entry := range r.Entries() {
		value := &yaml.Node{}
		questions := entry.Questions
		if questions == nil {
			questions = []question.Question{}
		}
		if err := value.Encode(questions); err != nil {
			return nil, fmt.Errorf("test %q: %w", entry.Name, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: entry.Name},
			value,
		)
	}
	return node, nil
}

// UnmarshalYAML reads a mapping keyed by test name, keeping key order.
func (r *Results) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return errors.New("parse results: expected a mapping of tests")
	}
	out := Results{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		var questions []question.Question
		if err := node.Content[i+1].Decode(&questions); err != nil {
			return fmt.Errorf("parse test %q: %w", name, err)
		}
		out.Replace(name, questions)
	}
	*r = out
	return nil
}
