// Package errors provides structured errors for the objfs content layer.
//
// It extends Go's standard error handling with error codes, classification
// (retryable vs permanent) and context metadata while staying compatible with
// the standard library (errors.Is, errors.As, errors.Unwrap).
//
// # Quick Start
//
//	err := errors.New(errors.CodeNotFound, "object not found")
//
//	data, err := content.Size()
//	if err != nil {
//	    return errors.Wrap(err, errors.CodeContentIO, "failed to read size")
//	}
//
//	err = errors.WithContext(err, "bucket", "artifacts")
//
// # Classification
//
// Every code has a default classification. Transfer code uses it to decide
// whether a failed managed download is worth degrading to a stream copy:
//
//	if errors.IsRetryable(err) {
//	    // transient: network, timeout, throttling
//	}
//
// Errors that are not PlatformErrors classify as permanent.
package errors
