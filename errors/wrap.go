package errors

import (
	"errors"
	"fmt"
)

// Wrap wraps err with a code and message while preserving the chain for
// errors.Is and errors.As.
//
// If err already carries a PlatformError, its classification is kept so that
// a retryable network failure stays retryable after being wrapped as, say, a
// transfer failure. Returns nil if err is nil.
func Wrap(err error, code ErrorCode, message string) PlatformError {
	if err == nil {
		return nil
	}

	classification := getDefaultClassification(code)
	var platformErr PlatformError
	if errors.As(err, &platformErr) {
		classification = platformErr.Classification()
	}

	return &platformError{
		code:           code,
		classification: classification,
		message:        message,
		cause:          err,
	}
}

// Wrapf wraps err with a formatted message. Returns nil if err is nil.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) PlatformError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WrapWithContext wraps err and attaches a copy of ctx in one step.
// Returns nil if err is nil.
func WrapWithContext(err error, code ErrorCode, message string, ctx map[string]interface{}) PlatformError {
	if err == nil {
		return nil
	}
	wrapped := Wrap(err, code, message).(*platformError)
	wrapped.context = copyContext(ctx)
	return wrapped
}
