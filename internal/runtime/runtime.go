// Package runtime applies the php section of a configuration to a runtime
// environment: ini settings, process constants and global variables.
//
// Apply is not safe to run concurrently with itself against the same
// Environment; callers serialize applications.
package runtime

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/phpunitxml/internal/ir"
)

// Environment is the runtime settings store Apply writes to.
type Environment interface {
	// SetIni sets a runtime ini option. Later calls replace the value.
	SetIni(ctx context.Context, name, value string) error

	// Constant returns the value of a defined constant.
	Constant(ctx context.Context, name string) (ir.Value, bool, error)

	// DefineConstant defines name unless it is already defined. It reports
	// whether this call defined it.
	DefineConstant(ctx context.Context, name string, v ir.Value) (bool, error)

	// SetGlobal assigns a global variable. Later calls replace the value.
	SetGlobal(ctx context.Context, name string, v ir.Value) error
}

// Apply writes settings to env: every ini entry, then every const, then
// every var, each group in declaration order.
//
// An ini value that names a defined constant is replaced by that
// constant's string form. Constants are first-writer-wins and an already
// defined name is skipped silently. Globals are last-writer-wins.
//
// The first Environment error aborts the application and is returned.
func Apply(ctx context.Context, env Environment, settings ir.PHPSettings) error {
	for name, v := range settings.Ini.All() {
		if err := ctx.Err(); err != nil {
			return err
		}

		value := ir.PHPString(v)
		if c, ok, err := env.Constant(ctx, value); err != nil {
			return fmt.Errorf("ini %s: lookup constant %q: %w", name, value, err)
		} else if ok {
			slog.Debug("ini value substituted from constant", "name", name, "constant", value)
			value = ir.PHPString(c)
		}

		if err := env.SetIni(ctx, name, value); err != nil {
			return fmt.Errorf("ini %s: %w", name, err)
		}
	}

	for name, v := range settings.Const.All() {
		if err := ctx.Err(); err != nil {
			return err
		}

		defined, err := env.DefineConstant(ctx, name, v)
		if err != nil {
			return fmt.Errorf("const %s: %w", name, err)
		}
		if !defined {
			slog.Debug("constant already defined", "name", name)
		}
	}

	for name, v := range settings.Var.All() {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := env.SetGlobal(ctx, name, v); err != nil {
			return fmt.Errorf("var %s: %w", name, err)
		}
	}

	slog.Debug("php settings applied",
		"ini", settings.Ini.Len(),
		"const", settings.Const.Len(),
		"var", settings.Var.Len(),
	)
	return nil
}
