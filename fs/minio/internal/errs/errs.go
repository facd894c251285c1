// Package errs translates MinIO client errors for the minio filesystem.
package errs

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"

	"github.com/minio/minio-go/v7"

	"github.com/jmgilman/objfs/errors"
)

// Translate converts a MinIO error into a PlatformError.
//
// Missing keys and buckets wrap fs.ErrNotExist and permission failures wrap
// fs.ErrPermission, so callers can keep using errors.Is with fs sentinels.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case stderrors.Is(err, context.Canceled):
		return errors.Wrap(err, errors.CodeCanceled, "minio request canceled")
	case stderrors.Is(err, context.DeadlineExceeded):
		return errors.Wrap(err, errors.CodeTimeout, "minio request timed out")
	}

	errResp := minio.ToErrorResponse(err)

	switch errResp.Code {
	case "NoSuchKey", "NoSuchBucket", "NotFound":
		return errors.Wrap(fs.ErrNotExist, errors.CodeNotFound, errResp.Code)
	case "AccessDenied":
		return errors.Wrap(fs.ErrPermission, errors.CodeForbidden, errResp.Code)
	case "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return errors.Wrap(fs.ErrPermission, errors.CodeUnauthorized, errResp.Code)
	case "SlowDown", "SlowDownRead", "SlowDownWrite":
		return errors.Wrap(err, errors.CodeRateLimit, "minio throttled the request")
	case "ServiceUnavailable", "XMinioServerNotInitialized":
		return errors.Wrap(err, errors.CodeUnavailable, "minio unavailable")
	}

	switch {
	case errResp.StatusCode == http.StatusNotFound:
		return errors.Wrap(fs.ErrNotExist, errors.CodeNotFound, "object not found")
	case errResp.StatusCode == http.StatusForbidden:
		return errors.Wrap(fs.ErrPermission, errors.CodeForbidden, "access denied")
	case errResp.StatusCode >= http.StatusInternalServerError:
		return errors.Wrap(err, errors.CodeUnavailable, "minio server error")
	}

	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return errors.Wrap(err, errors.CodeNetwork, "minio network error")
	}

	return errors.Wrap(err, errors.CodeUnknown, "minio request failed")
}

// PathError wraps an error in a fs.PathError for the given operation and path.
// If the error is nil, returns nil.
func PathError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &fs.PathError{Op: op, Path: path, Err: err}
}

// PathErrorf creates a fs.PathError with a formatted error message.
func PathErrorf(op, path, format string, args ...interface{}) error {
	return &fs.PathError{Op: op, Path: path, Err: fmt.Errorf(format, args...)}
}
