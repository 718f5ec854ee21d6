package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/phpunitxml/internal/compiler"
	"github.com/roach88/phpunitxml/internal/ir"
)

// Scenario defines a conformance test scenario: one configuration document,
// the files it refers to, and the expected resolution.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Config is the XML configuration document.
	Config string `yaml:"config"`

	// Files lists slash-separated paths created (as empty PHP files) in the
	// scratch directory before the configuration is resolved.
	Files []string `yaml:"files,omitempty"`

	// BaseDir is the directory, relative to the configuration, that suite
	// directories resolve against. Defaults to the configuration's own.
	BaseDir string `yaml:"base_dir,omitempty"`

	// Mode is the suite mode: fail-fast (default) or skip-missing.
	Mode string `yaml:"mode,omitempty"`

	// Expect holds the expectations evaluated against the resolution.
	Expect Expect `yaml:"expect"`

	// Golden enables snapshot comparison against testdata/golden.
	Golden bool `yaml:"golden,omitempty"`
}

// Expect lists expectations per section. Omitted sections are not checked.
type Expect struct {
	// Error is a substring the resolution error must contain. When set the
	// scenario passes only if resolution fails.
	Error string `yaml:"error,omitempty"`

	// NoSuite expects no test suite to be declared.
	NoSuite bool `yaml:"no_suite,omitempty"`

	// Suites are matched against the root suite's children, or against the
	// root itself when it has none.
	Suites []SuiteExpect `yaml:"suites,omitempty"`

	Groups    *ir.GroupConfiguration `yaml:"groups,omitempty"`
	Browsers  []ir.Browser           `yaml:"browsers,omitempty"`
	Listeners []ListenerExpect       `yaml:"listeners,omitempty"`

	// Options and Logging are subset matches against the flat maps.
	Options map[string]any `yaml:"options,omitempty"`
	Logging map[string]any `yaml:"logging,omitempty"`

	PHP *PHPExpect `yaml:"php,omitempty"`
}

// SuiteExpect describes one expected suite. Files are exact and ordered.
type SuiteExpect struct {
	Name    string   `yaml:"name"`
	Files   []string `yaml:"files"`
	Skipped []string `yaml:"skipped,omitempty"`
}

// ListenerExpect describes one expected listener.
type ListenerExpect struct {
	Class string `yaml:"class"`
	File  string `yaml:"file,omitempty"`

	// Arguments is the expected number of decoded arguments, if set.
	Arguments *int `yaml:"arguments,omitempty"`
}

// PHPExpect is a subset match on the php section.
type PHPExpect struct {
	Ini   map[string]string `yaml:"ini,omitempty"`
	Const map[string]any    `yaml:"const,omitempty"`
	Var   map[string]any    `yaml:"var,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like "expects:" vs "expect:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if strings.TrimSpace(s.Config) == "" {
		return fmt.Errorf("config is required and must be non-empty")
	}

	if _, err := compiler.ParseSuiteMode(s.Mode); err != nil {
		return err
	}

	for i, f := range s.Files {
		if err := checkRelative(f); err != nil {
			return fmt.Errorf("files[%d]: %w", i, err)
		}
	}
	if s.BaseDir != "" {
		if err := checkRelative(s.BaseDir); err != nil {
			return fmt.Errorf("base_dir: %w", err)
		}
	}

	if s.Expect.NoSuite && len(s.Expect.Suites) > 0 {
		return fmt.Errorf("expect: no_suite and suites are mutually exclusive")
	}

	return nil
}

// checkRelative rejects paths that would escape the scratch directory.
func checkRelative(p string) error {
	if p == "" {
		return fmt.Errorf("path is empty")
	}
	clean := filepath.Clean(filepath.FromSlash(p))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("path %q must stay inside the scenario directory", p)
	}
	return nil
}
