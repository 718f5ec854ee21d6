package harness

import (
	"fmt"

	"github.com/roach88/phpunitxml/internal/ir"
)

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if all expectations match.
	Pass bool `json:"pass"`

	// Errors contains expectation failures.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Configuration is the resolved configuration, nil when resolution
	// failed.
	Configuration *ir.Configuration `json:"configuration,omitempty"`

	// ResolveError is the resolution failure, if any.
	ResolveError string `json:"resolve_error,omitempty"`

	// Root is the scratch directory the scenario ran in. It is removed
	// when Run returns; paths below it are reported relative to it.
	Root string `json:"-"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Addf is AddError with formatting.
func (r *Result) Addf(format string, args ...any) {
	r.AddError(fmt.Sprintf(format, args...))
}
