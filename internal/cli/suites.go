package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/phpunitxml/internal/compiler"
	"github.com/roach88/phpunitxml/internal/ir"
)

// SuitesOptions holds flags for the suites command.
type SuitesOptions struct {
	*RootOptions
	SkipMissing bool
	BaseDir     string
}

// SuitesResult is the structured output of the suites command.
type SuitesResult struct {
	Suite *ir.Suite `json:"suite" yaml:"suite"`
	Total int       `json:"total" yaml:"total"`
}

// NewSuitesCommand creates the suites command.
func NewSuitesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SuitesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "suites <config>",
		Short: "Print the test suite tree",
		Long: `Build the test suite tree declared by a configuration file.

Each <directory> is searched recursively for files carrying its prefix and
suffix; <file> entries follow the directory matches. Directories resolve
against the configuration's directory unless --base-dir is given.

Exit codes:
  0 - Suite tree built
  2 - Configuration or directory error

Examples:
  phpunitxml suites phpunit.xml
  phpunitxml suites phpunit.xml --skip-missing
  phpunitxml suites phpunit.xml --base-dir ./project --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuites(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.SkipMissing, "skip-missing", false, "skip suite directories that do not exist")
	cmd.Flags().StringVar(&opts.BaseDir, "base-dir", "", "directory suite paths resolve against")

	return cmd
}

func runSuites(opts *SuitesOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	mode := compiler.SuiteModeFailFast
	if opts.SkipMissing {
		mode = compiler.SuiteModeSkipMissing
	}

	cfg, err := LoadConfiguration(path, LoadOptions{Mode: mode, BaseDir: opts.BaseDir})
	if err != nil {
		return outputLoadError(formatter, err)
	}

	result := SuitesResult{Suite: cfg.Suite, Total: cfg.Suite.Count()}
	formatter.VerboseLog("Collected %d test file(s)", result.Total)

	return formatter.Render(result, func(w io.Writer) error {
		renderSuite(w, cfg.Suite)
		return nil
	})
}
