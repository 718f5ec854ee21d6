package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/phpunitxml/internal/store"
)

// EnvOptions holds flags for the env command.
type EnvOptions struct {
	*RootOptions
	Database string
}

// EnvResult is the persisted environment.
type EnvResult struct {
	Applications []store.Application `json:"applications" yaml:"applications"`
	Ini          []store.Entry       `json:"ini" yaml:"ini"`
	Constants    []store.Entry       `json:"constants" yaml:"constants"`
	Globals      []store.Entry       `json:"globals" yaml:"globals"`
}

// NewEnvCommand creates the env command.
func NewEnvCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EnvOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "env",
		Short: "Show the persisted runtime environment",
		Long: `Show the runtime environment recorded by apply.

Lists every application in order, then the ini settings, constants and
global variables with the application that wrote each one.

Examples:
  phpunitxml env --db ./env.db
  phpunitxml env --db ./env.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnv(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runEnv(opts *EnvOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	// Reading must not create an empty database.
	if _, err := os.Stat(opts.Database); err != nil {
		_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("database not found: %s", opts.Database), nil)
		return WrapExitError(ExitCommandError, "database not found", err)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		_ = formatter.Error(ErrCodeStoreFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := readEnvironment(ctx, st)
	if err != nil {
		_ = formatter.Error(ErrCodeStoreFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to read environment", err)
	}

	return formatter.Render(result, func(w io.Writer) error {
		renderEnvironment(w, result)
		return nil
	})
}

func readEnvironment(ctx context.Context, st *store.Store) (EnvResult, error) {
	var (
		res EnvResult
		err error
	)
	if res.Applications, err = st.Applications(ctx); err != nil {
		return res, err
	}
	if res.Ini, err = st.IniSettings(ctx); err != nil {
		return res, err
	}
	if res.Constants, err = st.Constants(ctx); err != nil {
		return res, err
	}
	if res.Globals, err = st.Globals(ctx); err != nil {
		return res, err
	}
	return res, nil
}

func renderEnvironment(w io.Writer, res EnvResult) {
	fmt.Fprintln(w, "Applications:")
	if len(res.Applications) == 0 {
		fmt.Fprintln(w, "  (none)")
	} else {
		table := newTable(w, []string{"Seq", "ID", "Config", "Digest"})
		for _, app := range res.Applications {
			table.Append([]string{strconv.FormatInt(app.Seq, 10), app.ID, app.ConfigPath, shortDigest(app.ConfigDigest)})
		}
		table.Render()
	}

	// Application IDs are shown by seq to keep rows short.
	seqs := make(map[string]string, len(res.Applications))
	for _, app := range res.Applications {
		seqs[app.ID] = strconv.FormatInt(app.Seq, 10)
	}

	for _, group := range []struct {
		title   string
		entries []store.Entry
	}{
		{"Ini", res.Ini},
		{"Constants", res.Constants},
		{"Globals", res.Globals},
	} {
		fmt.Fprintf(w, "\n%s:\n", group.title)
		if len(group.entries) == 0 {
			fmt.Fprintln(w, "  (none)")
			continue
		}
		table := newTable(w, []string{"Name", "Value", "Seq"})
		for _, e := range group.entries {
			table.Append([]string{e.Name, describeValue(e.Value), seqs[e.ApplicationID]})
		}
		table.Render()
	}
}

func shortDigest(d string) string {
	if len(d) > 12 {
		return d[:12]
	}
	return d
}
