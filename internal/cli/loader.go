package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/roach88/phpunitxml/internal/collector"
	"github.com/roach88/phpunitxml/internal/compiler"
	"github.com/roach88/phpunitxml/internal/document"
	"github.com/roach88/phpunitxml/internal/ir"
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric      = "E001" // Generic/unknown error
	ErrCodeScanError    = "E002" // Scenario directory scan error
	ErrCodeNotFound     = "E005" // Configuration path not found
	ErrCodeMalformed    = "E006" // Configuration is not well-formed XML
	ErrCodeWriteFailed  = "E007" // File write error
	ErrCodeSuiteFailed  = "E010" // Suite directory could not be expanded
	ErrCodeStoreFailed  = "E020" // Environment database error
	ErrCodeApplyFailed  = "E021" // Applying php settings failed
	ErrCodeInvalidInput = "E030" // Unknown section name
)

// LoadOptions controls how a configuration is resolved.
type LoadOptions struct {
	// Mode is the suite mode for missing directories.
	Mode compiler.SuiteMode

	// BaseDir overrides the directory suite paths resolve against.
	// Relative values resolve against the working directory.
	BaseDir string
}

// LoadError represents an error that occurred while resolving a
// configuration.
type LoadError struct {
	Code    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadConfiguration loads and compiles the configuration at path.
// The returned error is always a *LoadError.
func LoadConfiguration(path string, opts LoadOptions) (*ir.Configuration, error) {
	doc, err := document.Load(path)
	if err != nil {
		return nil, convertDocumentError(err)
	}

	baseDir := doc.Dir()
	if opts.BaseDir != "" {
		if baseDir, err = filepath.Abs(opts.BaseDir); err != nil {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("base directory: %v", err), Err: err}
		}
	}

	cfg, err := compiler.Compile(doc, compiler.Options{
		Collector: collector.NewLocal(baseDir),
		Suite:     compiler.SuiteOptions{Mode: opts.Mode},
	})
	if err != nil {
		return nil, &LoadError{Code: ErrCodeSuiteFailed, Message: err.Error(), Err: err}
	}
	return cfg, nil
}

// convertDocumentError maps a document error to a LoadError.
func convertDocumentError(err error) *LoadError {
	switch {
	case document.IsNotFound(err):
		return &LoadError{Code: ErrCodeNotFound, Message: err.Error(), Err: err}
	case document.IsMalformed(err):
		return &LoadError{Code: ErrCodeMalformed, Message: err.Error(), Err: err}
	default:
		return &LoadError{Code: ErrCodeGeneric, Message: err.Error(), Err: err}
	}
}

// outputLoadError reports a load failure and returns the command error.
func outputLoadError(formatter *OutputFormatter, err error) error {
	code, message := ErrCodeGeneric, err.Error()
	var le *LoadError
	if errors.As(err, &le) {
		code, message = le.Code, le.Message
	}
	_ = formatter.Error(code, message, nil)
	return WrapExitError(ExitCommandError, "failed to load configuration", err)
}

func newFormatter(opts *RootOptions, out, errOut io.Writer) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    out,
		ErrWriter: errOut, // Verbose logs go to stderr to avoid corrupting structured output
		Verbose:   opts.Verbose,
	}
}
