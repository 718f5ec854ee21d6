package ir

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestWhitelistFlattensFilterList(t *testing.T) {
	w := Whitelist{
		AddUncoveredFilesFromWhitelist: true,
		FilterList: FilterList{
			Include: FilterSet{Directories: []DirectoryFilter{}, Files: []string{"a.php"}},
			Exclude: FilterSet{Directories: []DirectoryFilter{}, Files: []string{}},
		},
	}

	data, err := json.Marshal(w)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"addUncoveredFilesFromWhitelist": true,
		"include": {"directories": [], "files": ["a.php"]},
		"exclude": {"directories": [], "files": []}
	}`, string(data))

	out, err := yaml.Marshal(w)
	require.NoError(t, err)
	assert.Contains(t, string(out), "include:")
	assert.NotContains(t, string(out), "filterlist")
}

func TestFrameworkOptionsMapOnlyPresent(t *testing.T) {
	var empty FrameworkOptions
	assert.True(t, empty.Empty())
	assert.Empty(t, empty.Map())

	opts := FrameworkOptions{Colors: BoolPtr(false), Bootstrap: StringPtr("boot.php")}
	assert.False(t, opts.Empty())
	assert.Equal(t, map[string]any{"colors": false, "bootstrap": "boot.php"}, opts.Map())

	data, err := json.Marshal(opts)
	require.NoError(t, err)
	assert.JSONEq(t, `{"colors": false, "bootstrap": "boot.php"}`, string(data))
}

func TestLoggingMapIsFlat(t *testing.T) {
	l := LoggingConfiguration{
		Targets: map[string]string{"coverage-html": "/tmp/b", "junit": "/tmp/j.xml"},
		Title:   StringPtr("T"),
		YUI:     BoolPtr(true),
	}

	assert.Equal(t, map[string]any{
		"coverage-html": "/tmp/b",
		"junit":         "/tmp/j.xml",
		"title":         "T",
		"yui":           true,
	}, l.Map())
}

func TestConfigurationSection(t *testing.T) {
	cfg := &Configuration{Browsers: []Browser{{Name: "ff"}}}

	for _, name := range Sections {
		_, ok := cfg.Section(name)
		assert.True(t, ok, "section %q", name)
	}

	v, ok := cfg.Section("Selenium")
	require.True(t, ok)
	assert.Equal(t, cfg.Browsers, v)

	_, ok = cfg.Section("nope")
	assert.False(t, ok)
}

func TestSuiteTree(t *testing.T) {
	root := NewSuite("")
	unit := NewSuite("Unit")
	unit.AddFiles([]string{"a.php", "b.php"})
	integration := NewSuite("Integration")
	integration.AddFile("c.php")
	root.AddSuite(unit)
	root.AddSuite(integration)

	assert.Equal(t, 3, root.Count())
	assert.Equal(t, []string{"a.php", "b.php", "c.php"}, root.AllFiles())
	assert.Same(t, integration, root.Child("Integration"))
	assert.Nil(t, root.Child("Missing"))

	var visited []string
	root.Walk(func(node *Suite, depth int) bool {
		visited = append(visited, node.Name)
		return true
	})
	assert.Equal(t, []string{"", "Unit", "Integration"}, visited)

	var nilSuite *Suite
	assert.Equal(t, 0, nilSuite.Count())
	assert.Nil(t, nilSuite.AllFiles())
}

func TestSuiteJSONOmitsEmptyChildren(t *testing.T) {
	s := NewSuite("Legacy")
	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Legacy","files":[]}`, string(data))
}
