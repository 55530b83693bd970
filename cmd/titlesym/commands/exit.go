package commands

import "github.com/spf13/cobra"

// ExitError is an error that carries the process exit code
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitWithCode wraps err with an exit code; a nil err stays nil
func ExitWithCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{
		Code: code,
		Err:  err,
	}
}

// UsageError marks errors caused by bad flags or arguments
type UsageError struct{ error }

func (e *UsageError) Unwrap() error {
	return e.error
}

// usageArgs wraps a positional argument validator so its failures are UsageErrors
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &UsageError{err}
		}
		return nil
	}
}
