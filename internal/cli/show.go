package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/phpunitxml/internal/compiler"
	"github.com/roach88/phpunitxml/internal/ir"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	Section     string // single section to print
	Output      string // canonical JSON output file
	SkipMissing bool
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show <config>",
		Short: "Print the resolved configuration",
		Long: `Resolve a configuration file and print every section, or one section.

Sections: ` + strings.Join(ir.Sections, ", ") + `

With --output the resolved configuration is also written as canonical JSON,
suitable for diffing and hashing.

Examples:
  phpunitxml show phpunit.xml
  phpunitxml show phpunit.xml --section logging
  phpunitxml show phpunit.xml --format json -o resolved.json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Section, "section", "s", "", "print only this section")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write canonical JSON to this file")
	cmd.Flags().BoolVar(&opts.SkipMissing, "skip-missing", false, "skip suite directories that do not exist")

	return cmd
}

func runShow(opts *ShowOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	if opts.Section != "" {
		if _, ok := (&ir.Configuration{}).Section(opts.Section); !ok {
			msg := fmt.Sprintf("unknown section %q: must be one of %v", opts.Section, ir.Sections)
			_ = formatter.Error(ErrCodeInvalidInput, msg, nil)
			return NewExitError(ExitCommandError, msg)
		}
	}

	mode := compiler.SuiteModeFailFast
	if opts.SkipMissing {
		mode = compiler.SuiteModeSkipMissing
	}

	formatter.VerboseLog("Resolving %s", path)
	cfg, err := LoadConfiguration(path, LoadOptions{Mode: mode})
	if err != nil {
		return outputLoadError(formatter, err)
	}

	if opts.Output != "" {
		if err := writeCanonical(cfg, opts.Output); err != nil {
			_ = formatter.Error(ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err), nil)
			return WrapExitError(ExitCommandError, "failed to write output", err)
		}
		formatter.VerboseLog("Wrote %s", opts.Output)
	}

	if opts.Section != "" {
		data, _ := cfg.Section(opts.Section)
		return formatter.Render(data, func(w io.Writer) error {
			return renderSection(w, strings.ToLower(opts.Section), cfg)
		})
	}

	return formatter.Render(cfg, func(w io.Writer) error {
		return renderConfiguration(w, cfg)
	})
}

// writeCanonical writes cfg as canonical JSON followed by a newline.
func writeCanonical(cfg *ir.Configuration, path string) error {
	data, err := ir.MarshalCanonical(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
