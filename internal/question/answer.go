package question

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrMissingAnswer indicates a question was serialized without an answer record.
var ErrMissingAnswer = errors.New("missing answer")

// ErrUnknownKind indicates a serialized answer carried an unsupported kind.
var ErrUnknownKind = errors.New("unknown answer kind")

// wireQuestion is the serialized form of a Question. The answer field is a
// string for text answers, a list of {text, correct} for choice lists and a
// list of {left, right, correct} for matching lists.
type wireQuestion struct {
	Question string       `json:"question" yaml:"question"`
	Kind     Kind         `json:"kind" yaml:"kind"`
	Single   bool         `json:"single,omitempty" yaml:"single,omitempty"`
	Answer   interface{}  `json:"answer" yaml:"answer"`
	Correct  *Correctness `json:"correct,omitempty" yaml:"correct,omitempty"`
}

func toWire(q Question) (wireQuestion, error) {
	out := wireQuestion{Question: q.Text}
	switch answer := q.Answer.(type) {
	case TextAnswer:
		correct := answer.Correct
		out.Kind = KindText
		out.Answer = answer.Value
		out.Correct = &correct
	case ChoiceList:
		out.Kind = KindChoice
		out.Single = answer.Single
		options := answer.Options
		if options == nil {
			options = []Option{}
		}
		out.Answer = options
	case MatchingList:
		out.Kind = KindMatching
		pairs := answer.Pairs
		if pairs == nil {
			pairs = []Pair{}
		}
		out.Answer = pairs
	case nil:
		return wireQuestion{}, ErrMissingAnswer
	default:
		return wireQuestion{}, fmt.Errorf("%w: %T", ErrUnknownKind, q.Answer)
	}
	return out, nil
}

// MarshalJSON encodes the question in its serialized shape.
func (q Question) MarshalJSON() ([]byte, error) {
	wire, err := toWire(q)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(wire); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalJSON decodes the serialized shape back into a typed answer.
func (q *Question) UnmarshalJSON(data []byte) error {
	var wire struct {
		Question string          `json:"question"`
		Kind     Kind            `json:"kind"`
		Single   bool            `json:"single"`
		Answer   json.RawMessage `json:"answer"`
		Correct  Correctness     `json:"correct"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("parse question: %w", err)
	}
	if len(wire.Answer) == 0 {
		return ErrMissingAnswer
	}
	answer, err := decodeAnswer(wire.Kind, wire.Single, wire.Correct, func(target interface{}) error {
		return json.Unmarshal(wire.Answer, target)
	})
	if err != nil {
		return err
	}
	*q = Question{Text: wire.Question, Answer: answer}
	return nil
}

// MarshalYAML encodes the question in its serialized shape.
func (q Question) MarshalYAML() (interface{}, error) {
	return toWire(q)
}

// UnmarshalYAML decodes the serialized shape back into a typed answer.
func (q *Question) UnmarshalYAML(node *yaml.Node) error {
	var wire struct {
		Question string      `yaml:"question"`
		Kind     Kind        `yaml:"kind"`
		Single   bool        `yaml:"single"`
		Answer   yaml.Node   `yaml:"answer"`
		Correct  Correctness `yaml:"correct"`
	}
	if err := node.Decode(&wire); err != nil {
		return fmt.Errorf("parse question: %w", err)
	}
	if wire.Answer.Kind == 0 {
		return ErrMissingAnswer
	}
	answer, err := decodeAnswer(wire.Kind, wire.Single, wire.Correct, wire.Answer.Decode)
	if err != nil {
		return err
	}
	*q = Question{Text: wire.Question, Answer: answer}
	return nil
}

func decodeAnswer(kind Kind, single bool, correct Correctness, decode func(interface{}) error) (Answer, error) {
	switch kind {
	case KindText:
		var value string
		if err := decode(&value); err != nil {
			return nil, fmt.Errorf("parse text answer: %w", err)
		}
		return TextAnswer{Value: value, Correct: correct}, nil
	case KindChoice:
		var options []Option
		if err := decode(&options); err != nil {
			return nil, fmt.Errorf("parse choice answer: %w", err)
		}
		return ChoiceList{Single: single, Options: options}, nil
	case KindMatching:
		var pairs []Pair
		if err := decode(&pairs); err != nil {
			return nil, fmt.Errorf("parse matching answer: %w", err)
		}
		return MatchingList{Pairs: pairs}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, kind)
	}
}
