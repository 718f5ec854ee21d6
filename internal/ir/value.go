package ir

import (
	"encoding/json"
	"strconv"
)

// Value is a sealed interface representing a decoded configuration value.
// Listener constructor arguments and PHP const/var settings are Values.
// Only Null, String, Int, Float, Bool, Array, and Object implement this.
type Value interface {
	value() // Sealed - only these types implement it
}

// Null represents an absent or undecodable value.
type Null struct{}

func (Null) value() {}

// MarshalJSON implements json.Marshaler for Null.
func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// MarshalYAML implements yaml.Marshaler for Null.
func (Null) MarshalYAML() (any, error) {
	return nil, nil
}

// String represents a string value.
type String string

func (String) value() {}

// Int represents an integer value.
type Int int64

func (Int) value() {}

// Float represents a floating point value (the `double` argument kind).
type Float float64

func (Float) value() {}

// Bool represents a boolean value.
type Bool bool

func (Bool) value() {}

// Array represents an ordered list of optionally keyed elements.
// Element order is declaration order.
type Array []ArrayElement

func (Array) value() {}

// ArrayElement is one entry of an Array. Key is nil for positional entries.
type ArrayElement struct {
	Key   *string `json:"key,omitempty" yaml:"key,omitempty"`
	Value Value   `json:"value" yaml:"value"`
}

// Object represents an object construction: a class name and its ordered
// constructor arguments.
type Object struct {
	Class string  `json:"class" yaml:"class"`
	Args  []Value `json:"args" yaml:"args"`
}

func (Object) value() {}

// Keyed builds a keyed ArrayElement.
func Keyed(key string, v Value) ArrayElement {
	return ArrayElement{Key: &key, Value: v}
}

// Positional builds a positional ArrayElement.
func Positional(v Value) ArrayElement {
	return ArrayElement{Value: v}
}

// MarshalJSON encodes an Array as a JSON list of elements.
// A nil Array encodes as [] rather than null.
func (a Array) MarshalJSON() ([]byte, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]ArrayElement(a))
}

// PHPString converts a value to the text the PHP runtime would produce when
// the value is used where a string is expected.
func PHPString(v Value) string {
	switch val := v.(type) {
	case String:
		return string(val)
	case Bool:
		if val {
			return "1"
		}
		return ""
	case Int:
		return strconv.FormatInt(int64(val), 10)
	case Float:
		return strconv.FormatFloat(float64(val), 'G', 14, 64)
	case Array:
		return "Array"
	case Object:
		return val.Class
	default:
		return ""
	}
}

// Equal reports whether two values are structurally equal.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case String, Int, Float, Bool:
		return a == b
	case Array:
		y, ok := b.(Array)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if (x[i].Key == nil) != (y[i].Key == nil) {
				return false
			}
			if x[i].Key != nil && *x[i].Key != *y[i].Key {
				return false
			}
			if !Equal(x[i].Value, y[i].Value) {
				return false
			}
		}
		return true
	case Object:
		y, ok := b.(Object)
		if !ok || x.Class != y.Class || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	default:
		return a == nil && b == nil
	}
}
