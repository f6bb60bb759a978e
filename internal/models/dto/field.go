package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

var errNotScalar = errors.New("expected a string, number or boolean")

// Field is an optional input value that remembers whether its key was present
// in the request, including an explicit null.
type Field[T any] struct {
	Value T
	Set   bool
}

// Some returns a present field holding v.
func Some[T any](v T) Field[T] {
	return Field[T]{Value: v, Set: true}
}

// UnmarshalJSON marks the field present and decodes the value; null leaves the zero value.
// String fields also take numbers and booleans, read as text.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	var zero T
	f.Value = zero
	if string(data) == "null" {
		return nil
	}
	if s, ok := any(&f.Value).(*string); ok {
		text, err := scalarText(data)
		*s = text
		return err
	}
	return json.Unmarshal(data, &f.Value)
}

// Text is a string input that also takes a JSON number or boolean.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	s, err := scalarText(data)
	*t = Text(s)
	return err
}

// scalarText reads a JSON scalar as text. Falsy scalars (null, false, 0) read as empty.
func scalarText(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return "", errNotScalar
	}
	switch c := data[0]; {
	case c == '"':
		var s string
		err := json.Unmarshal(data, &s)
		return s, err
	case string(data) == "null", string(data) == "false":
		return "", nil
	case string(data) == "true":
		return "true", nil
	case c == '-' || (c >= '0' && c <= '9'):
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return "", err
		}
		if v, err := n.Float64(); err == nil && v == 0 {
			return "", nil
		}
		return n.String(), nil
	default:
		return "", errNotScalar
	}
}

// Numeric holds a JSON number, or a string meant to be read as one.
type Numeric string

func (n *Numeric) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Numeric(s)
		return nil
	}
	*n = Numeric(data)
	return nil
}

// Float parses the value; ok is false for anything that is not a number.
func (n Numeric) Float() (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(string(n)), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
