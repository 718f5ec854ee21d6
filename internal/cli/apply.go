package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/phpunitxml/internal/compiler"
	"github.com/roach88/phpunitxml/internal/ir"
	"github.com/roach88/phpunitxml/internal/runtime"
	"github.com/roach88/phpunitxml/internal/store"
)

// ApplyOptions holds flags for the apply command.
type ApplyOptions struct {
	*RootOptions
	Database string
}

// ApplyResult is the structured output of the apply command.
type ApplyResult struct {
	Application store.Application `json:"application" yaml:"application"`
	Ini         int               `json:"ini" yaml:"ini"`
	Const       int               `json:"const" yaml:"const"`
	Var         int               `json:"var" yaml:"var"`
}

// NewApplyCommand creates the apply command.
func NewApplyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ApplyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "apply <config>",
		Short: "Apply php settings to a persisted environment",
		Long: `Apply the <php> section of a configuration to a SQLite-backed runtime
environment (created if it doesn't exist).

Ini values naming an already defined constant, or a predefined one such
as E_ALL, take that constant's value.
Constants keep the first definition; global variables keep the last
assignment. Every application is recorded with the digest of the resolved
configuration, so documents that differ only in layout or comments share it.

Example:
  phpunitxml apply phpunit.xml --db ./env.db
  phpunitxml env --db ./env.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runApply(opts *ApplyOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	// Suites are irrelevant here; a missing directory must not block the php section.
	cfg, err := LoadConfiguration(path, LoadOptions{Mode: compiler.SuiteModeSkipMissing})
	if err != nil {
		return outputLoadError(formatter, err)
	}

	digest, err := ir.ConfigurationDigest(cfg)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to digest configuration", err)
	}

	slog.Info("opening database", "path", opts.Database)
	st, err := store.Open(opts.Database)
	if err != nil {
		_ = formatter.Error(ErrCodeStoreFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	env, err := st.Begin(ctx, cfg.Path, digest)
	if err != nil {
		_ = formatter.Error(ErrCodeStoreFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to record application", err)
	}

	if err := runtime.Apply(ctx, runtime.WithPredefinedConstants(env), cfg.PHP); err != nil {
		_ = formatter.Error(ErrCodeApplyFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to apply php settings", err)
	}

	result := ApplyResult{
		Application: env.Application(),
		Ini:         cfg.PHP.Ini.Len(),
		Const:       cfg.PHP.Const.Len(),
		Var:         cfg.PHP.Var.Len(),
	}
	slog.Info("php settings applied", "application", result.Application.ID, "seq", result.Application.Seq)

	return formatter.Render(result, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "✓ Applied %s (seq %d): %d ini, %d const, %d var\n",
			cfg.Path, result.Application.Seq, result.Ini, result.Const, result.Var)
		return err
	})
}
