package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrTypeMismatch reports access to an argument value through the wrong typed
// accessor. Accessors fail loudly instead of silently defaulting.
var ErrTypeMismatch = errors.New("argument type mismatch")

type valueKind int

const (
	kindString valueKind = iota
	kindBool
	kindInt
	kindFloat
	kindStrings
	kindTuple
	kindAny
)

func (k valueKind) String() string {
	switch k {
	case kindString:
		return "string"
	case kindBool:
		return "bool"
	case kindInt:
		return "int"
	case kindFloat:
		return "float"
	case kindStrings:
		return "strings"
	case kindTuple:
		return "tuple"
	case kindAny:
		return "any"
	default:
		return "unknown"
	}
}

// Value is the tagged union stored in an Args map: a string, bool, int,
// float, list of strings, tuple of Values, or an opaque decoder-produced
// value.
type Value struct {
	kind valueKind
	s    string
	b    bool
	i    int
	f    float64
	list []string
	tup  []Value
	any  any
}

// StringValue wraps a string.
func StringValue(s string) Value { return Value{kind: kindString, s: s} }

// BoolValue wraps a bool.
func BoolValue(b bool) Value { return Value{kind: kindBool, b: b} }

// IntValue wraps an int.
func IntValue(i int) Value { return Value{kind: kindInt, i: i} }

// FloatValue wraps a float64.
func FloatValue(f float64) Value { return Value{kind: kindFloat, f: f} }

// StringsValue wraps a list of strings.
func StringsValue(list []string) Value { return Value{kind: kindStrings, list: list} }

// TupleValue wraps a tuple of already-typed values.
func TupleValue(values ...Value) Value { return Value{kind: kindTuple, tup: values} }

// AnyValue wraps an opaque value produced by a custom converter or a
// post-processor.
func AnyValue(v any) Value { return Value{kind: kindAny, any: v} }

// AsString returns the wrapped string.
func (v Value) AsString() (string, error) {
	if v.kind != kindString {
		return "", fmt.Errorf("%w: have %s, want string", ErrTypeMismatch, v.kind)
	}

	return v.s, nil
}

// AsBool returns the wrapped bool.
func (v Value) AsBool() (bool, error) {
	if v.kind != kindBool {
		return false, fmt.Errorf("%w: have %s, want bool", ErrTypeMismatch, v.kind)
	}

	return v.b, nil
}

// AsInt returns the wrapped int.
func (v Value) AsInt() (int, error) {
	if v.kind != kindInt {
		return 0, fmt.Errorf("%w: have %s, want int", ErrTypeMismatch, v.kind)
	}

	return v.i, nil
}

// AsFloat returns the wrapped float64.
func (v Value) AsFloat() (float64, error) {
	if v.kind != kindFloat {
		return 0, fmt.Errorf("%w: have %s, want float", ErrTypeMismatch, v.kind)
	}

	return v.f, nil
}

// AsStrings returns the wrapped string list. A tuple of string values
// converts transparently.
func (v Value) AsStrings() ([]string, error) {
	switch v.kind {
	case kindStrings:
		return v.list, nil
	case kindTuple:
		list := make([]string, len(v.tup))

		for i, elem := range v.tup {
			s, err := elem.AsString()
			if err != nil {
				return nil, err
			}

			list[i] = s
		}

		return list, nil
	default:
		return nil, fmt.Errorf("%w: have %s, want strings", ErrTypeMismatch, v.kind)
	}
}

// AsTuple returns the wrapped tuple.
func (v Value) AsTuple() ([]Value, error) {
	if v.kind != kindTuple {
		return nil, fmt.Errorf("%w: have %s, want tuple", ErrTypeMismatch, v.kind)
	}

	return v.tup, nil
}

// AsAny returns the wrapped opaque value.
func (v Value) AsAny() (any, error) {
	if v.kind != kindAny {
		return nil, fmt.Errorf("%w: have %s, want any", ErrTypeMismatch, v.kind)
	}

	return v.any, nil
}

// String renders the value for diagnostics.
func (v Value) String() string {
	switch v.kind {
	case kindString:
		return strconv.Quote(v.s)
	case kindBool:
		return strconv.FormatBool(v.b)
	case kindInt:
		return strconv.Itoa(v.i)
	case kindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case kindStrings:
		return fmt.Sprintf("%q", v.list)
	case kindTuple:
		parts := make([]string, len(v.tup))
		for i, elem := range v.tup {
			parts[i] = elem.String()
		}

		return "(" + strings.Join(parts, ", ") + ")"
	case kindAny:
		return fmt.Sprintf("%v", v.any)
	default:
		return "<unknown>"
	}
}

// Convert turns one raw command-line string into a typed Value. A nil
// Convert on a Param means the raw string passes through unchanged.
type Convert func(raw string) (Value, error)

// ToInt is a Convert producing IntValues.
func ToInt(raw string) (Value, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return Value{}, fmt.Errorf("not an integer: %q", raw)
	}

	return IntValue(n), nil
}

// ToFloat is a Convert producing FloatValues.
func ToFloat(raw string) (Value, error) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Value{}, fmt.Errorf("not a number: %q", raw)
	}

	return FloatValue(f), nil
}
