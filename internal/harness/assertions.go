package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/phpunitxml/internal/ir"
)

// Evaluate checks every expectation against a result and returns one
// message per mismatch.
func Evaluate(expect Expect, result *Result) []string {
	var errs []string

	if expect.Error != "" {
		switch {
		case result.ResolveError == "":
			errs = append(errs, fmt.Sprintf("error: expected resolution to fail with %q, but it succeeded", expect.Error))
		case !strings.Contains(result.ResolveError, expect.Error):
			errs = append(errs, fmt.Sprintf("error: expected %q in %q", expect.Error, result.ResolveError))
		}
		return errs
	}

	if result.ResolveError != "" {
		return []string{"resolution failed: " + result.ResolveError}
	}

	cfg := result.Configuration
	errs = append(errs, evaluateSuites(expect, cfg.Suite)...)
	if expect.Groups != nil {
		errs = append(errs, evaluateGroups(*expect.Groups, cfg.Groups)...)
	}
	if expect.Browsers != nil {
		errs = append(errs, evaluateBrowsers(expect.Browsers, cfg.Browsers)...)
	}
	if expect.Listeners != nil {
		errs = append(errs, evaluateListeners(expect.Listeners, cfg.Listeners)...)
	}
	errs = append(errs, subsetMatch("options", expect.Options, cfg.Options.Map())...)
	errs = append(errs, subsetMatch("logging", expect.Logging, cfg.Logging.Map())...)
	if expect.PHP != nil {
		errs = append(errs, evaluatePHP(*expect.PHP, cfg.PHP)...)
	}

	return errs
}

func evaluateSuites(expect Expect, root *ir.Suite) []string {
	if expect.NoSuite {
		if root != nil {
			return []string{fmt.Sprintf("suites: expected none, got %q", root.Name)}
		}
		return nil
	}
	if len(expect.Suites) == 0 {
		return nil
	}
	if root == nil {
		return []string{fmt.Sprintf("suites: expected %d suite(s), got none", len(expect.Suites))}
	}

	actual := root.Children
	if len(actual) == 0 {
		actual = []*ir.Suite{root}
	}
	if len(actual) != len(expect.Suites) {
		return []string{fmt.Sprintf("suites: expected %d suite(s), got %d", len(expect.Suites), len(actual))}
	}

	var errs []string
	for i, want := range expect.Suites {
		got := actual[i]
		prefix := fmt.Sprintf("suites[%d]", i)
		if got.Name != want.Name {
			errs = append(errs, fmt.Sprintf("%s.name: expected %q, got %q", prefix, want.Name, got.Name))
		}
		if !equalStrings(want.Files, got.Files) {
			errs = append(errs, fmt.Sprintf("%s.files: expected %v, got %v", prefix, want.Files, got.Files))
		}
		if !equalStrings(want.Skipped, got.Skipped) {
			errs = append(errs, fmt.Sprintf("%s.skipped: expected %v, got %v", prefix, want.Skipped, got.Skipped))
		}
	}
	return errs
}

func evaluateGroups(want, got ir.GroupConfiguration) []string {
	var errs []string
	if !equalStrings(want.Include, got.Include) {
		errs = append(errs, fmt.Sprintf("groups.include: expected %v, got %v", want.Include, got.Include))
	}
	if !equalStrings(want.Exclude, got.Exclude) {
		errs = append(errs, fmt.Sprintf("groups.exclude: expected %v, got %v", want.Exclude, got.Exclude))
	}
	return errs
}

func evaluateBrowsers(want, got []ir.Browser) []string {
	if len(want) != len(got) {
		return []string{fmt.Sprintf("browsers: expected %d, got %d", len(want), len(got))}
	}
	var errs []string
	for i := range want {
		if want[i] != got[i] {
			errs = append(errs, fmt.Sprintf("browsers[%d]: expected %+v, got %+v", i, want[i], got[i]))
		}
	}
	return errs
}

func evaluateListeners(want []ListenerExpect, got []ir.Listener) []string {
	if len(want) != len(got) {
		return []string{fmt.Sprintf("listeners: expected %d, got %d", len(want), len(got))}
	}
	var errs []string
	for i, w := range want {
		g := got[i]
		if w.Class != g.Class {
			errs = append(errs, fmt.Sprintf("listeners[%d].class: expected %q, got %q", i, w.Class, g.Class))
		}
		if w.File != g.File {
			errs = append(errs, fmt.Sprintf("listeners[%d].file: expected %q, got %q", i, w.File, g.File))
		}
		if w.Arguments != nil && *w.Arguments != len(g.Arguments) {
			errs = append(errs, fmt.Sprintf("listeners[%d].arguments: expected %d, got %d", i, *w.Arguments, len(g.Arguments)))
		}
	}
	return errs
}

func evaluatePHP(want PHPExpect, got ir.PHPSettings) []string {
	var errs []string
	for _, name := range sortedKeys(want.Ini) {
		v, ok := got.Ini.Get(name)
		if !ok {
			errs = append(errs, fmt.Sprintf("php.ini.%s: missing", name))
			continue
		}
		if ir.PHPString(v) != want.Ini[name] {
			errs = append(errs, fmt.Sprintf("php.ini.%s: expected %q, got %q", name, want.Ini[name], ir.PHPString(v)))
		}
	}
	errs = append(errs, matchSettings("php.const", want.Const, got.Const)...)
	errs = append(errs, matchSettings("php.var", want.Var, got.Var)...)
	return errs
}

func matchSettings(section string, want map[string]any, got ir.Settings) []string {
	var errs []string
	for _, name := range sortedKeys(want) {
		v, ok := got.Get(name)
		if !ok {
			errs = append(errs, fmt.Sprintf("%s.%s: missing", section, name))
			continue
		}
		if !matchValue(want[name], v) {
			errs = append(errs, fmt.Sprintf("%s.%s: expected %v, got %#v", section, name, want[name], v))
		}
	}
	return errs
}

// matchValue compares a YAML scalar with a decoded value. Booleans must
// match as booleans; everything else compares by text.
func matchValue(want any, got ir.Value) bool {
	if b, ok := want.(bool); ok {
		gb, isBool := got.(ir.Bool)
		return isBool && bool(gb) == b
	}
	if _, isBool := got.(ir.Bool); isBool {
		return false
	}
	return fmt.Sprint(want) == ir.PHPString(got)
}

// subsetMatch checks that every expected key is present in got with the
// same value. Values compare by their printed form so that YAML numbers
// match numeric strings.
func subsetMatch(section string, want, got map[string]any) []string {
	var errs []string
	for _, key := range sortedKeys(want) {
		g, ok := got[key]
		if !ok {
			errs = append(errs, fmt.Sprintf("%s.%s: missing", section, key))
			continue
		}
		if fmt.Sprint(want[key]) != fmt.Sprint(g) {
			errs = append(errs, fmt.Sprintf("%s.%s: expected %v, got %v", section, key, want[key], g))
		}
	}
	return errs
}

func equalStrings(want, got []string) bool {
	if len(want) == 0 && len(got) == 0 {
		return true
	}
	return slices.Equal(want, got)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
