// Command daedalus is the CLI wrapper around the core analysis pipeline:
// it loads a manifest or single source file, runs lex/parse/collect/check,
// and renders the resulting diagnostics to stdout/stderr as either
// terminal text or JSON, exiting with the codes of spec.md §6: 0 on
// success, 1 on any reported diagnostic error, 2 on I/O or configuration
// failure.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/cwbudde/daedalus-dc/cmd/daedalus/cmd"
)

func main() {
	err := cmd.Execute()
	if err == nil {
		os.Exit(0)
	}

	var exitErr *cmd.ExitCodeError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.Code)
	}

	fmt.Fprintln(os.Stderr, err)
	os.Exit(2)
}
