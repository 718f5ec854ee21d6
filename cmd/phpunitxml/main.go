// Command phpunitxml resolves PHPUnit XML configuration files.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/phpunitxml/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		// Commands print their own formatted errors; this covers cobra
		// argument and flag errors.
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
