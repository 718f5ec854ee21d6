package compiler

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"

	"github.com/roach88/phpunitxml/internal/ir"
)

// Validation error codes (E200-E299)
const (
	ErrSchemaInternal    = "E200" // schema could not be evaluated
	ErrBrowserPort       = "E201" // port outside 1..65535
	ErrBrowserTimeout    = "E202" // negative timeout
	ErrListenerClass     = "E203" // listener without class
	ErrCoverageBound     = "E204" // non-numeric coverage bound
	ErrSettingName       = "E205" // php setting without name
	ErrSchemaViolation   = "E210" // any other schema conflict
	ErrUnsupportedConfig = "E299" // nil configuration
)

//go:embed schema.cue
var schemaSource string

// ValidationError represents a schema validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks a resolved configuration against the embedded CUE schema
// and the setting-name rules. Returns all errors found (does not fail-fast).
func Validate(cfg *ir.Configuration) []ValidationError {
	if cfg == nil {
		return []ValidationError{{
			Field:   "configuration",
			Message: "configuration is nil",
			Code:    ErrUnsupportedConfig,
		}}
	}

	errs := validateSchema(cfg)
	errs = append(errs, validateSettingNames(cfg.PHP)...)
	return errs
}

func validateSchema(cfg *ir.Configuration) []ValidationError {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return []ValidationError{{Field: "configuration", Message: err.Error(), Code: ErrSchemaInternal}}
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return []ValidationError{{Field: "schema", Message: err.Error(), Code: ErrSchemaInternal}}
	}
	data := ctx.CompileBytes(raw, cue.Filename("configuration.json"))
	if err := data.Err(); err != nil {
		return []ValidationError{{Field: "configuration", Message: err.Error(), Code: ErrSchemaInternal}}
	}

	unified := schema.LookupPath(cue.ParsePath("#Configuration")).Unify(data)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fromCUE(err)
	}
	return nil
}

// fromCUE flattens a CUE error list, one ValidationError per distinct path.
func fromCUE(err error) []ValidationError {
	var out []ValidationError
	seen := make(map[string]bool)

	for _, e := range errors.Errors(err) {
		path := fieldPath(e.Path())
		field := strings.Join(path, ".")
		if seen[field] {
			continue
		}
		seen[field] = true

		format, args := e.Msg()
		out = append(out, ValidationError{
			Field:   field,
			Message: fmt.Sprintf(format, args...),
			Code:    codeFor(path),
		})
	}
	return out
}

// fieldPath drops the leading definition selector (#Configuration) so paths
// name configuration fields.
func fieldPath(path []string) []string {
	if len(path) > 0 && strings.HasPrefix(path[0], "#") {
		return path[1:]
	}
	return path
}

func codeFor(path []string) string {
	if len(path) == 0 {
		return ErrSchemaViolation
	}
	last := path[len(path)-1]

	switch {
	case path[0] == "browsers" && last == "port":
		return ErrBrowserPort
	case path[0] == "browsers" && last == "timeout":
		return ErrBrowserTimeout
	case path[0] == "listeners" && last == "class":
		return ErrListenerClass
	case path[0] == "logging" && (last == "lowUpperBound" || last == "highLowerBound"):
		return ErrCoverageBound
	default:
		return ErrSchemaViolation
	}
}

func validateSettingNames(php ir.PHPSettings) []ValidationError {
	var errs []ValidationError
	for _, section := range []struct {
		name     string
		settings ir.Settings
	}{
		{"php.ini", php.Ini},
		{"php.const", php.Const},
		{"php.var", php.Var},
	} {
		for name := range section.settings.All() {
			if strings.TrimSpace(name) == "" {
				errs = append(errs, ValidationError{
					Field:   section.name,
					Message: "setting name is required and must be non-empty",
					Code:    ErrSettingName,
				})
			}
		}
	}
	return errs
}
