// Package collector finds test files below search roots.
//
// It backs the suite builder: a <directory> declaration becomes one search
// root, and every file below it whose base name carries the declared prefix
// and suffix is a test file.
package collector

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrRootNotFound indicates a search root that does not exist, or a glob
// root that matches no directory.
var ErrRootNotFound = errors.New("search root not found")

// Collector abstracts test file discovery so the suite builder can be
// tested without touching the disk.
type Collector interface {
	// Collect returns the files below roots whose base name starts with
	// prefix and ends with suffix. Order is deterministic and duplicates
	// across roots are dropped.
	Collect(roots []string, suffix, prefix string) ([]string, error)
}

// Local is the filesystem-backed Collector.
//
// Relative roots are resolved against BaseDir (or the working directory
// when BaseDir is empty). Roots containing glob metacharacters are expanded
// with doublestar and only matching directories are searched. Every root is
// walked recursively in lexical order.
type Local struct {
	BaseDir string
}

// NewLocal constructs a Local collector resolving relative roots against
// baseDir.
func NewLocal(baseDir string) *Local {
	return &Local{BaseDir: baseDir}
}

// Collect implements Collector.
func (c *Local) Collect(roots []string, suffix, prefix string) ([]string, error) {
	seen := make(map[string]struct{})
	files := []string{}

	add := func(path string) {
		if _, exists := seen[path]; exists {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, root := range roots {
		dirs, err := c.expand(root)
		if err != nil {
			return nil, err
		}

		for _, dir := range dirs {
			info, err := os.Stat(dir)
			if err != nil {
				return nil, fmt.Errorf("%w: %s", ErrRootNotFound, dir)
			}

			if !info.IsDir() {
				if matches(filepath.Base(dir), suffix, prefix) {
					add(dir)
				}
				continue
			}

			err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() {
					return nil
				}
				if matches(d.Name(), suffix, prefix) {
					add(path)
				}
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("walk %s: %w", dir, err)
			}
		}

		slog.Debug("collected test files", "root", root, "suffix", suffix, "prefix", prefix, "total", len(files))
	}

	return files, nil
}

// expand resolves one root to the absolute directories it denotes.
func (c *Local) expand(root string) ([]string, error) {
	path, err := c.resolve(root)
	if err != nil {
		return nil, err
	}

	if !hasMeta(path) {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrRootNotFound, path)
			}
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		return []string{path}, nil
	}

	matchesGlob, err := doublestar.FilepathGlob(path)
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", path, err)
	}

	var dirs []string
	for _, m := range matchesGlob {
		if info, err := os.Stat(m); err == nil && info.IsDir() {
			dirs = append(dirs, m)
		}
	}
	if len(dirs) == 0 {
		return nil, fmt.Errorf("%w: %s matched no directory", ErrRootNotFound, path)
	}
	return dirs, nil
}

func (c *Local) resolve(root string) (string, error) {
	path := root

	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		suffix := strings.TrimPrefix(path, "~")
		suffix = strings.TrimPrefix(suffix, string(os.PathSeparator))
		path = filepath.Join(home, suffix)
	}

	if !filepath.IsAbs(path) && c.BaseDir != "" {
		path = filepath.Join(c.BaseDir, path)
	}

	if path == "" {
		path = "."
	}

	return filepath.Abs(path)
}

func matches(name, suffix, prefix string) bool {
	return strings.HasPrefix(name, prefix) && strings.HasSuffix(name, suffix)
}

func hasMeta(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}
