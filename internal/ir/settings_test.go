package ir

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSettingsZeroValue(t *testing.T) {
	var s Settings
	assert.Equal(t, 0, s.Len())

	_, ok := s.Get("missing")
	assert.False(t, ok)

	s.Set("a", String("1"))
	v, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, String("1"), v)
}

func TestSettingsKeepsFirstPositionLastValue(t *testing.T) {
	s := NewSettings(
		P("b", String("1")),
		P("a", String("2")),
		P("b", Bool(true)),
	)

	assert.Equal(t, []string{"b", "a"}, s.Names())
	v, _ := s.Get("b")
	assert.Equal(t, Bool(true), v)
}

func TestSettingsAllStopsEarly(t *testing.T) {
	s := NewSettings(P("a", Int(1)), P("b", Int(2)), P("c", Int(3)))

	var seen []string
	for name := range s.All() {
		seen = append(seen, name)
		if name == "b" {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestSettingsJSONOrder(t *testing.T) {
	s := NewSettings(P("z", String("last")), P("a", Bool(false)))

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, `{"z":"last","a":false}`, string(data))

	var empty Settings
	data, err = json.Marshal(empty)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func TestSettingsYAMLOrder(t *testing.T) {
	s := NewSettings(P("z", String("true")), P("a", Bool(true)))

	data, err := yaml.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, "z: \"true\"\na: true\n", string(data))
}
