// Package cmd implements the flipboard CLI commands and Kong parser setup.
package cmd

import "errors"

// Exit codes beyond the usual 0 (ok), 1 (error) and 2 (usage).
const (
	// ExitNoMessage means a link carried nothing displayable.
	ExitNoMessage = 3
)

// errNoMessage is reported when the receive pipeline yields nothing.
var errNoMessage = errors.New("no shareable message present")

// ExitError wraps an error with a process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e == nil || e.Err == nil {
		return "exit"
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ExitCode extracts the exit code from an error.
// Returns 0 for nil, the embedded code for ExitError, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *ExitError
	if errors.As(err, &ee) && ee != nil {
		if ee.Code < 0 {
			return 1
		}
		return ee.Code
	}
	return 1
}

// exitPanic is used by the kong.Exit trick to intercept os.Exit calls.
type exitPanic struct{ code int }

// ShouldReport returns false for errors whose message was already shown, such
// as an exit requested by the parser after printing help or usage.
func ShouldReport(err error) bool {
	var ee *ExitError
	if errors.As(err, &ee) && ee != nil {
		return ee.Err != nil
	}
	return err != nil
}
