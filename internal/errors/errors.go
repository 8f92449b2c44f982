package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/countdownctl/internal/logger"
)

// OperationError reports a panel operation that finished with a failure
// notice. Notice is the text the operator already saw; Err is the cause.
type OperationError struct {
	Op     string
	Notice string
	Err    error
}

func (e *OperationError) Error() string {
	if e.Err == nil {
		return e.Notice
	}
	return fmt.Sprintf("%s: %v", e.Notice, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// Failed wraps the outcome of a failed operation for the CLI exit path.
func Failed(op, notice string, err error) error {
	return &OperationError{Op: op, Notice: notice, Err: err}
}

// IsOperation reports whether err carries an OperationError.
func IsOperation(err error) bool {
	var opErr *OperationError
	return stderrors.As(err, &opErr)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	var opErr *OperationError
	if stderrors.As(err, &opErr) {
		// The notice already names the failure.
		return fmt.Sprintf("Error: %s (%s)", opErr.Op, opErr.Error())
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
