package harness

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/phpunitxml/internal/collector"
	"github.com/roach88/phpunitxml/internal/compiler"
	"github.com/roach88/phpunitxml/internal/document"
	"github.com/roach88/phpunitxml/internal/ir"
)

// ConfigFileName is the name the scenario config is written under.
const ConfigFileName = "phpunit.xml"

// Harness is the test execution engine.
// Documents are shared through one cache across the scenarios it runs.
type Harness struct {
	cache  *document.Cache
	logger *slog.Logger
}

// New creates a harness. A nil logger discards output.
func New(logger *slog.Logger) *Harness {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil)) // Suppress logs in tests
	}
	return &Harness{
		cache:  document.NewCache(),
		logger: logger,
	}
}

// Run executes a test scenario with a fresh harness.
func Run(scenario *Scenario) (*Result, error) {
	return New(nil).Run(scenario)
}

// Run executes a test scenario and returns the result.
//
// Execution flow:
// 1. Create a scratch directory with the scenario files and config
// 2. Load the config through the harness cache
// 3. Compile every section with a local collector
// 4. Rewrite scratch paths relative to the scratch directory
// 5. Evaluate expectations
//
// A load or compile failure is part of the result, not an error; errors
// are reserved for failures of the harness itself.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	mode, err := compiler.ParseSuiteMode(scenario.Mode)
	if err != nil {
		return nil, err
	}

	root, err := os.MkdirTemp("", "phpunitxml-scenario-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer os.RemoveAll(root)

	if root, err = filepath.EvalSymlinks(root); err != nil {
		return nil, fmt.Errorf("failed to resolve scratch directory: %w", err)
	}

	if err := writeTree(root, scenario); err != nil {
		return nil, err
	}

	result := NewResult()
	result.Root = root

	cfg, resolveErr := h.resolve(root, scenario, mode)
	if resolveErr != nil {
		result.ResolveError = relativizeText(resolveErr.Error(), root)
		h.logger.Debug("scenario resolution failed", "scenario", scenario.Name, "error", resolveErr)
	} else {
		relativize(cfg, root)
		result.Configuration = cfg
		h.logger.Debug("scenario resolved",
			"scenario", scenario.Name,
			"tests", cfg.Suite.Count(),
		)
	}

	for _, msg := range Evaluate(scenario.Expect, result) {
		result.AddError(msg)
	}

	return result, nil
}

func (h *Harness) resolve(root string, scenario *Scenario, mode compiler.SuiteMode) (*ir.Configuration, error) {
	doc, err := h.cache.GetOrLoad(filepath.Join(root, ConfigFileName))
	if err != nil {
		return nil, err
	}

	baseDir := doc.Dir()
	if scenario.BaseDir != "" {
		baseDir = filepath.Join(baseDir, filepath.FromSlash(scenario.BaseDir))
	}

	return compiler.Compile(doc, compiler.Options{
		Collector: collector.NewLocal(baseDir),
		Suite:     compiler.SuiteOptions{Mode: mode},
	})
}

func writeTree(root string, scenario *Scenario) error {
	for _, f := range scenario.Files {
		path := filepath.Join(root, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return fmt.Errorf("failed to create %s: %w", f, err)
		}
		if err := os.WriteFile(path, []byte("<?php\n"), 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", f, err)
		}
	}

	if err := os.WriteFile(filepath.Join(root, ConfigFileName), []byte(scenario.Config), 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// relativize rewrites every path below root as a slash-separated relative
// path.
func relativize(cfg *ir.Configuration, root string) {
	cfg.Path = rel(cfg.Path, root)
	cfg.Suite.Walk(func(s *ir.Suite, _ int) bool {
		for i, f := range s.Files {
			s.Files[i] = rel(f, root)
		}
		return true
	})
}

func rel(path, root string) string {
	if !filepath.IsAbs(path) {
		return path
	}
	r, err := filepath.Rel(root, path)
	if err != nil || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return path
	}
	return filepath.ToSlash(r)
}

func relativizeText(msg, root string) string {
	return strings.ReplaceAll(msg, root+string(filepath.Separator), "")
}
