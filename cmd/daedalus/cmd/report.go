package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/daedalus-dc/internal/diag"
	"github.com/cwbudde/daedalus-dc/internal/pipeline"
)

// reportDiagnostics renders res's diagnostics (JSON or terminal, per the
// persistent --json flag) and returns a non-nil error when any
// error-severity diagnostic was reported, so the caller's RunE can signal
// the exit code of spec.md §6 ("1 on any reported error").
func reportDiagnostics(res *pipeline.Result) error {
	if len(res.Diagnostics) == 0 {
		return nil
	}

	if jsonOutput {
		out, err := diag.RenderJSON(res.Diagnostics)
		if err != nil {
			return err
		}
		fmt.Println(out)
	} else {
		fmt.Fprintln(os.Stderr, diag.RenderTerminal(res.DB, res.Diagnostics, false))
	}

	if res.HasErrors() {
		return diagnosticsError(fmt.Errorf("%d error(s) reported", len(diag.Errors(res.Diagnostics))))
	}
	return nil
}
