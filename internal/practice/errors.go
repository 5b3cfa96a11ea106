package practice

import (
	"errors"
	"fmt"
)

// ErrStaleReply marks a delayed simulated reply arriving after the session
// moved on (restart, clear, or out-of-order delivery). Callers discard the
// reply; the engine records the discard as a diagnostic event.
var ErrStaleReply = errors.New("stale reply discarded")

// ErrNoSession is returned when an operation needs progress that doesn't
// exist (e.g. sending a message before starting the lesson).
var ErrNoSession = errors.New("no active session for lesson")

// ValidationError reports a violated transition guard. It is recoverable:
// the transition is blocked, the session state is untouched, and the
// constraint name tells the caller what to fix.
type ValidationError struct {
	Constraint string
	Message    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Constraint, e.Message)
}

func validationErr(constraint, format string, args ...any) *ValidationError {
	return &ValidationError{
		Constraint: constraint,
		Message:    fmt.Sprintf(format, args...),
	}
}

// IsValidation reports whether err is a transition-guard failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
