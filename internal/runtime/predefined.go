package runtime

import (
	"context"
	"maps"

	"github.com/roach88/phpunitxml/internal/ir"
)

// predefined holds the engine constants configuration files commonly
// reference from ini values, with PHP 8 values.
var predefined = map[string]ir.Value{
	"E_ERROR":             ir.Int(1),
	"E_WARNING":           ir.Int(2),
	"E_PARSE":             ir.Int(4),
	"E_NOTICE":            ir.Int(8),
	"E_CORE_ERROR":        ir.Int(16),
	"E_CORE_WARNING":      ir.Int(32),
	"E_COMPILE_ERROR":     ir.Int(64),
	"E_COMPILE_WARNING":   ir.Int(128),
	"E_USER_ERROR":        ir.Int(256),
	"E_USER_WARNING":      ir.Int(512),
	"E_USER_NOTICE":       ir.Int(1024),
	"E_STRICT":            ir.Int(2048),
	"E_RECOVERABLE_ERROR": ir.Int(4096),
	"E_DEPRECATED":        ir.Int(8192),
	"E_USER_DEPRECATED":   ir.Int(16384),
	"E_ALL":               ir.Int(32767),
	"PHP_INT_MAX":         ir.Int(9223372036854775807),
	"PHP_INT_MIN":         ir.Int(-9223372036854775808),
	"PHP_INT_SIZE":        ir.Int(8),
	"PHP_EOL":             ir.String("\n"),
	"DIRECTORY_SEPARATOR": ir.String("/"),
	"PATH_SEPARATOR":      ir.String(":"),
}

// PredefinedConstants returns a copy of the constants WithPredefinedConstants
// exposes.
func PredefinedConstants() map[string]ir.Value {
	return maps.Clone(predefined)
}

// WithPredefinedConstants wraps env so that the engine's predefined
// constants are always defined. They are never stored in env and cannot be
// redefined.
func WithPredefinedConstants(env Environment) Environment {
	return &predefinedEnv{Environment: env, consts: predefined}
}

type predefinedEnv struct {
	Environment
	consts map[string]ir.Value
}

func (p *predefinedEnv) Constant(ctx context.Context, name string) (ir.Value, bool, error) {
	if v, ok := p.consts[name]; ok {
		return v, true, nil
	}
	return p.Environment.Constant(ctx, name)
}

func (p *predefinedEnv) DefineConstant(ctx context.Context, name string, v ir.Value) (bool, error) {
	if _, ok := p.consts[name]; ok {
		return false, nil
	}
	return p.Environment.DefineConstant(ctx, name, v)
}
