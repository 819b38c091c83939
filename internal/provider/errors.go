package provider

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrRejectedQuote marks a business rejection: the provider answered, but the
// answer does not satisfy the quote contract. It is retried like a transient
// failure.
var ErrRejectedQuote = errors.New("provider rejected quote")

// TransientError wraps network, timeout and automation failures. These are
// retried up to the runner's budget.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// ValidationError means the provider refused the input itself (malformed
// applicant data, unsupported vehicle, ...). Retrying cannot help, so the
// runner fails fast.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation rejected: " + e.Reason
}

// Transient wraps err as a TransientError. A nil err stays nil.
func Transient(op string, err error) error {
	if err == nil {
		return nil
	}
	return &TransientError{Op: op, Err: err}
}

func Validation(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsRetryable reports whether the runner may try again after err.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var v *ValidationError
	return !errors.As(err, &v)
}

func timeoutError(op string, limit time.Duration) error {
	return &TransientError{
		Op:  op,
		Err: fmt.Errorf("attempt timed out after %s: %w", limit, context.DeadlineExceeded),
	}
}
