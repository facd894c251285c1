package transfer

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"net"

	"github.com/jmgilman/objfs/errors"
)

// Stage names the point at which a transfer failed.
type Stage string

const (
	// StageOpen is opening the store session.
	StageOpen Stage = "open"
	// StageConstruct is building the transfer manager.
	StageConstruct Stage = "construct"
	// StageInitiate is starting the download.
	StageInitiate Stage = "initiate"
	// StageWait is waiting for the download to complete.
	StageWait Stage = "wait"
	// StageProgress is reading the final progress snapshot.
	StageProgress Stage = "progress"
	// StageShutdown is shutting down the manager.
	StageShutdown Stage = "shutdown"
	// StageClose is closing the store session.
	StageClose Stage = "close"
)

// Failure is a failed managed transfer.
//
// Failure implements errors.PlatformError with CodeTransferFailed. Its
// classification follows the cause, so a network failure is retryable and a
// missing object is not.
type Failure struct {
	Stage Stage
	Ref   ObjectRef
	Err   error
}

// NewFailure returns a *Failure for err at stage.
func NewFailure(stage Stage, ref ObjectRef, err error) *Failure {
	return &Failure{Stage: stage, Ref: ref, Err: err}
}

func (f *Failure) Error() string {
	return fmt.Sprintf("[%s] %s: %v", errors.CodeTransferFailed, f.Message(), f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

func (f *Failure) Code() errors.ErrorCode { return errors.CodeTransferFailed }

func (f *Failure) Classification() errors.ErrorClassification {
	return classify(f.Err)
}

func (f *Failure) Message() string {
	return fmt.Sprintf("transfer of %s failed at %s", f.Ref, f.Stage)
}

func (f *Failure) Context() map[string]interface{} {
	return map[string]interface{}{
		"stage":  string(f.Stage),
		"bucket": f.Ref.Bucket,
		"key":    f.Ref.Key,
	}
}

// Retryable reports whether the cause is classified as retryable.
func (f *Failure) Retryable() bool {
	return f.Classification().IsRetryable()
}

var _ errors.PlatformError = (*Failure)(nil)

func classify(err error) errors.ErrorClassification {
	if err == nil {
		return errors.ClassificationPermanent
	}

	var platformErr errors.PlatformError
	if stderrors.As(err, &platformErr) {
		return platformErr.Classification()
	}

	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		return errors.ClassificationRetryable
	case stderrors.Is(err, context.Canceled):
		return errors.ClassificationPermanent
	case stderrors.Is(err, fs.ErrNotExist), stderrors.Is(err, fs.ErrPermission):
		return errors.ClassificationPermanent
	}

	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return errors.ClassificationRetryable
	}

	return errors.ClassificationPermanent
}
