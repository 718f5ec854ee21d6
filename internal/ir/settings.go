package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"

	"gopkg.in/yaml.v3"
)

// Settings is an ordered name -> Value mapping.
//
// A name keeps the position of its first insertion; setting it again
// replaces the value in place. The zero value is ready to use.
type Settings struct {
	names  []string
	values map[string]Value
}

// NewSettings creates Settings from pairs, in order.
func NewSettings(pairs ...SettingPair) Settings {
	var s Settings
	for _, p := range pairs {
		s.Set(p.Name, p.Value)
	}
	return s
}

// SettingPair is one name/value entry used to build Settings.
type SettingPair struct {
	Name  string
	Value Value
}

// P is a shorthand for SettingPair.
func P(name string, v Value) SettingPair {
	return SettingPair{Name: name, Value: v}
}

// Set stores v under name. Existing names keep their position.
func (s *Settings) Set(name string, v Value) {
	if s.values == nil {
		s.values = make(map[string]Value)
	}
	if _, exists := s.values[name]; !exists {
		s.names = append(s.names, name)
	}
	s.values[name] = v
}

// Get returns the value stored under name.
func (s Settings) Get(name string) (Value, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Len returns the number of distinct names.
func (s Settings) Len() int {
	return len(s.names)
}

// Names returns the names in insertion order.
func (s Settings) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// All iterates name/value pairs in insertion order.
func (s Settings) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, name := range s.names {
			if !yield(name, s.values[name]) {
				return
			}
		}
	}
}

// MarshalJSON encodes Settings as a JSON object in insertion order.
func (s Settings) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, fmt.Errorf("marshal key %q: %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(s.values[name])
		if err != nil {
			return nil, fmt.Errorf("marshal value for key %q: %w", name, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes Settings as a YAML mapping in insertion order.
func (s Settings) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, name := range s.names {
		var val yaml.Node
		if err := val.Encode(s.values[name]); err != nil {
			return nil, fmt.Errorf("marshal value for key %q: %w", name, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
			&val,
		)
	}
	return node, nil
}
