package question

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Correctness is a three-valued truth: unknown is never the same as incorrect.
type Correctness int8

const (
	Unknown Correctness = iota
	Correct
	Incorrect
)

// FromBool maps a known truth value onto Correctness.
func FromBool(value bool) Correctness {
	if value {
		return Correct
	}
	return Incorrect
}

// Known reports whether the value is resolved.
func (c Correctness) Known() bool {
	return c == Correct || c == Incorrect
}

// Bool returns the truth value and whether it is known.
func (c Correctness) Bool() (value bool, ok bool) {
	switch c {
	case Correct:
		return true, true
	case Incorrect:
		return false, true
	default:
		return false, false
	}
}

func (c Correctness) String() string {
	switch c {
	case Correct:
		return "true"
	case Incorrect:
		return "false"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes unknown as null.
func (c Correctness) MarshalJSON() ([]byte, error) {
	switch c {
	case Correct:
		return []byte("true"), nil
	case Incorrect:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts true, false or null.
func (c *Correctness) UnmarshalJSON(data []byte) error {
	var value *bool
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("correctness: %w", err)
	}
	*c = fromPointer(value)
	return nil
}

// MarshalYAML encodes unknown as null.
func (c Correctness) MarshalYAML() (interface{}, error) {
	value, ok := c.Bool()
	if !ok {
		return nil, nil
	}
	return value, nil
}

// UnmarshalYAML accepts true, false or null.
func (c *Correctness) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!null" {
		*c = Unknown
		return nil
	}
	var value bool
	if err := node.Decode(&value); err != nil {
		return fmt.Errorf("correctness: %w", err)
	}
	*c = FromBool(value)
	return nil
}

func fromPointer(value *bool) Correctness {
	if value == nil {
		return Unknown
	}
	return FromBool(*value)
}
