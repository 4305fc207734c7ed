package cmd

// ExitCodeError carries the explicit process exit code spec.md §6 assigns
// to a CLI run: 1 when diagnostics were reported, 2 on I/O or
// configuration failure. Plain errors returned by a RunE (file-not-found,
// manifest glob failures) default to the I/O/config code; reportDiagnostics
// wraps its failure in ExitCodeError{Code: 1} to distinguish "we analyzed
// the input and found problems" from "we couldn't even start".
type ExitCodeError struct {
	Code int
	Err  error
}

func (e *ExitCodeError) Error() string { return e.Err.Error() }
func (e *ExitCodeError) Unwrap() error { return e.Err }

func diagnosticsError(err error) error {
	return &ExitCodeError{Code: 1, Err: err}
}
