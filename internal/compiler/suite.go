package compiler

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/beevik/etree"

	"github.com/roach88/phpunitxml/internal/collector"
	"github.com/roach88/phpunitxml/internal/document"
	"github.com/roach88/phpunitxml/internal/ir"
)

// SuiteMode controls how CompileSuite reacts to declared directories that
// do not exist.
type SuiteMode int

const (
	// SuiteModeFailFast aborts on the first missing directory.
	SuiteModeFailFast SuiteMode = iota

	// SuiteModeSkipMissing records missing directories in Suite.Skipped and
	// keeps going.
	SuiteModeSkipMissing
)

// String returns the flag spelling of the mode.
func (m SuiteMode) String() string {
	switch m {
	case SuiteModeFailFast:
		return "fail-fast"
	case SuiteModeSkipMissing:
		return "skip-missing"
	default:
		return fmt.Sprintf("SuiteMode(%d)", int(m))
	}
}

// ParseSuiteMode parses the flag spelling of a mode. The empty string
// means SuiteModeFailFast.
func ParseSuiteMode(s string) (SuiteMode, error) {
	switch s {
	case "", "fail-fast":
		return SuiteModeFailFast, nil
	case "skip-missing":
		return SuiteModeSkipMissing, nil
	default:
		return 0, fmt.Errorf("unknown suite mode %q: must be fail-fast or skip-missing", s)
	}
}

// SuiteOptions configures CompileSuite.
type SuiteOptions struct {
	Mode SuiteMode
}

// SuiteError reports a collector failure while expanding a suite.
type SuiteError struct {
	Suite     string
	Directory string
	Err       error
}

// Error implements the error interface.
func (e *SuiteError) Error() string {
	return fmt.Sprintf("testsuite %q: directory %q: %v", e.Suite, e.Directory, e.Err)
}

// Unwrap returns the collector error.
func (e *SuiteError) Unwrap() error {
	return e.Err
}

// CompileSuite builds the declared test-suite tree.
//
// Suites are read from testsuites/testsuite, falling back to a testsuite
// directly under the root. A single declaration becomes the returned suite;
// several become children of an unnamed suite. With no declaration the
// result is nil and no error.
func CompileSuite(doc *document.Document, c collector.Collector, opts SuiteOptions) (*ir.Suite, error) {
	nodes := doc.Find("testsuites/testsuite")
	if len(nodes) == 0 {
		nodes = doc.Find("testsuite")
	}

	switch len(nodes) {
	case 0:
		return nil, nil
	case 1:
		return buildSuite(nodes[0], c, opts)
	}

	root := ir.NewSuite("")
	for _, node := range nodes {
		child, err := buildSuite(node, c, opts)
		if err != nil {
			return nil, err
		}
		root.AddSuite(child)
	}
	return root, nil
}

// buildSuite expands one <testsuite>. Directories are searched at any depth
// below the element, and their files precede every <file> entry.
func buildSuite(node *etree.Element, c collector.Collector, opts SuiteOptions) (*ir.Suite, error) {
	suite := ir.NewSuite(document.Attr(node, "name"))

	for _, dir := range document.Descendants(node, "directory") {
		path := document.Text(dir)
		suffix := document.AttrOr(dir, "suffix", ir.DefaultSuiteSuffix)
		prefix := document.AttrOr(dir, "prefix", "")

		files, err := c.Collect([]string{path}, suffix, prefix)
		if err != nil {
			if opts.Mode == SuiteModeSkipMissing && errors.Is(err, collector.ErrRootNotFound) {
				slog.Warn("skipping missing test directory",
					"suite", suite.Name,
					"directory", path,
				)
				suite.Skipped = append(suite.Skipped, path)
				continue
			}
			return nil, &SuiteError{Suite: suite.Name, Directory: path, Err: err}
		}
		suite.AddFiles(files)
	}

	for _, file := range document.Descendants(node, "file") {
		suite.AddFile(document.Text(file))
	}

	slog.Debug("testsuite built", "suite", suite.Name, "files", len(suite.Files))
	return suite, nil
}
