package s3manager

import (
	"context"
	stderrors "errors"
	"io/fs"
	"net"
	"net/http"

	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"

	"github.com/jmgilman/objfs/errors"
)

// translateError maps SDK errors onto platform error codes. Not-found and
// permission failures also wrap the matching fs sentinel.
func translateError(err error, bucket, key string) error {
	if err == nil {
		return nil
	}

	path := bucket + "/" + key
	ctx := map[string]interface{}{"bucket": bucket, "key": key}

	switch {
	case stderrors.Is(err, context.Canceled):
		return errors.WrapWithContext(err, errors.CodeCanceled, "download canceled", ctx)
	case stderrors.Is(err, context.DeadlineExceeded):
		return errors.WrapWithContext(err, errors.CodeTimeout, "download timed out", ctx)
	}

	var apiErr smithy.APIError
	if stderrors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NoSuchBucket", "NotFound":
			return errors.WrapWithContext(&fs.PathError{Op: "download", Path: path, Err: fs.ErrNotExist},
				errors.CodeNotFound, apiErr.ErrorMessage(), ctx)
		case "AccessDenied", "Forbidden":
			return errors.WrapWithContext(&fs.PathError{Op: "download", Path: path, Err: fs.ErrPermission},
				errors.CodeForbidden, apiErr.ErrorMessage(), ctx)
		case "InvalidAccessKeyId", "SignatureDoesNotMatch":
			return errors.WrapWithContext(err, errors.CodeUnauthorized, "invalid credentials", ctx)
		case "SlowDown", "RequestLimitExceeded":
			return errors.WrapWithContext(err, errors.CodeRateLimit, "request throttled", ctx)
		case "ServiceUnavailable", "InternalError":
			return errors.WrapWithContext(err, errors.CodeUnavailable, "service unavailable", ctx)
		}
	}

	var respErr *smithyhttp.ResponseError
	if stderrors.As(err, &respErr) {
		switch status := respErr.HTTPStatusCode(); {
		case status == http.StatusNotFound:
			return errors.WrapWithContext(&fs.PathError{Op: "download", Path: path, Err: fs.ErrNotExist},
				errors.CodeNotFound, "object not found", ctx)
		case status == http.StatusForbidden:
			return errors.WrapWithContext(&fs.PathError{Op: "download", Path: path, Err: fs.ErrPermission},
				errors.CodeForbidden, "access denied", ctx)
		case status == http.StatusTooManyRequests:
			return errors.WrapWithContext(err, errors.CodeRateLimit, "request throttled", ctx)
		case status >= 500:
			return errors.WrapWithContext(err, errors.CodeUnavailable, "service unavailable", ctx)
		}
	}

	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return errors.WrapWithContext(err, errors.CodeNetwork, "network error", ctx)
	}

	return errors.WrapWithContext(err, errors.CodeTransferFailed, "download failed", ctx)
}
