package errors

import "fmt"

// New creates a PlatformError with the given code and message.
// The classification is the code's default.
//
//	err := errors.New(errors.CodeInvalidConfig, "bucket is required")
func New(code ErrorCode, message string) PlatformError {
	return &platformError{
		code:           code,
		classification: getDefaultClassification(code),
		message:        message,
	}
}

// Newf creates a PlatformError with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) PlatformError {
	return New(code, fmt.Sprintf(format, args...))
}
