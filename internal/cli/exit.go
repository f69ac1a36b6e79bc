package cli

import "fmt"

// Process exit codes. Zero is reserved for a clean pass.
const (
	// exitFailure: the input was processed and a skill failed validation or
	// scanning.
	exitFailure = 1
	// exitUsage: bad arguments, unreadable input, or a broken environment.
	exitUsage = 2
)

// ExitError tells main which exit code a command failure maps to.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Message
}

// usageError wraps a setup or argument problem as an exitUsage failure.
func usageError(err error) *ExitError {
	return &ExitError{Code: exitUsage, Message: err.Error()}
}
