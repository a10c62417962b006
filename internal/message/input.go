// Package message defines the boundary input type shared by the codec and the
// sanitizer.
//
// Callers that receive loosely typed data (query parameters that may be absent,
// JSON fields that may hold any value) convert it to an Input once, up front.
// Everything downstream only ever sees Text or Invalid.
package message

import (
	"encoding/json"
)

// Input is either Text(string) or Invalid. The zero value is Invalid.
type Input struct {
	text  string
	valid bool
}

// Invalid is the input that carries no usable text.
var Invalid = Input{}

// Text wraps s as a valid input. The empty string is still Text.
func Text(s string) Input {
	return Input{text: s, valid: true}
}

// FromValue converts an arbitrary value. Only string and non-nil *string are
// Text; everything else, nil included, is Invalid.
func FromValue(v any) Input {
	switch t := v.(type) {
	case string:
		return Text(t)
	case *string:
		if t == nil {
			return Invalid
		}

		return Text(*t)
	default:
		return Invalid
	}
}

// FromJSON converts a raw JSON value. A JSON string literal is Text; absent,
// null, numbers, booleans, arrays and objects are Invalid.
func FromJSON(raw json.RawMessage) Input {
	if len(raw) == 0 || raw[0] != '"' {
		return Invalid
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return Invalid
	}

	return Text(s)
}

// Value returns the text and whether the input is Text.
func (in Input) Value() (string, bool) {
	return in.text, in.valid
}

// Valid reports whether the input is Text.
func (in Input) Valid() bool { return in.valid }
