// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// WriteFile writes content to dir/name, creating parent directories, and
// returns the full path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteConfig writes an XML configuration named phpunit.xml into a fresh
// temporary directory and returns its path.
func WriteConfig(t testing.TB, xml string) string {
	t.Helper()
	return WriteFile(t, t.TempDir(), "phpunit.xml", xml)
}

// Tree creates empty files at the given slash-separated paths below dir
// and returns dir.
func Tree(t testing.TB, dir string, files ...string) string {
	t.Helper()
	for _, f := range files {
		WriteFile(t, dir, filepath.FromSlash(f), "<?php\n")
	}
	return dir
}

// CollectCall records one invocation of a StaticCollector.
type CollectCall struct {
	Roots  []string
	Suffix string
	Prefix string
}

// StaticCollector returns canned results per root. Unknown roots yield
// Missing (or no files when Missing is nil).
//
// Not safe for concurrent use.
type StaticCollector struct {
	Files   map[string][]string
	Missing error
	Calls   []CollectCall
}

// Collect returns the canned files for every root, in root order.
func (c *StaticCollector) Collect(roots []string, suffix, prefix string) ([]string, error) {
	c.Calls = append(c.Calls, CollectCall{Roots: roots, Suffix: suffix, Prefix: prefix})

	out := []string{}
	for _, root := range roots {
		files, ok := c.Files[root]
		if !ok && c.Missing != nil {
			return nil, c.Missing
		}
		out = append(out, files...)
	}
	return out, nil
}

// SortedKeys returns the keys of m in lexical order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
