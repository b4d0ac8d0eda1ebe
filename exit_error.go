package main

import "fmt"

// ExitError signals a specific exit code without calling os.Exit inside
// command handlers.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// usageError marks err as an argument validation failure (exit status 2).
func usageError(err error) error {
	return &ExitError{Code: 2, Err: err}
}
