package transfer

import (
	"context"
	"fmt"
)

// ObjectRef identifies an object by container and key.
type ObjectRef struct {
	Bucket string
	Key    string
}

// String returns the reference as "bucket/key".
func (r ObjectRef) String() string {
	return fmt.Sprintf("%s/%s", r.Bucket, r.Key)
}

// Progress is a snapshot of a transfer.
type Progress struct {
	// BytesTransferred is the number of bytes written to the destination.
	BytesTransferred int64

	// TotalBytes is the expected size of the object, or -1 if unknown.
	TotalBytes int64
}

// Transfer is an in-flight download.
type Transfer interface {
	// Wait blocks until the download completes, fails, or ctx is done.
	Wait(ctx context.Context) error

	// Progress returns the current snapshot.
	Progress() (Progress, error)
}

// Manager starts downloads against one store session.
type Manager interface {
	// Download starts copying bucket/key into the local file dest.
	// It returns without waiting for the copy to finish.
	Download(ctx context.Context, bucket, key, dest string) (Transfer, error)

	// Shutdown cancels in-flight downloads and releases the manager's
	// resources. It is safe to call more than once.
	Shutdown() error
}

// Session is a scoped handle on a store client.
type Session interface {
	// NewManager builds a transfer manager bound to this session.
	NewManager() (Manager, error)

	// Close releases the session.
	Close() error
}

// SessionOpener is implemented by filesystems that can open store sessions.
type SessionOpener interface {
	OpenSession(ctx context.Context) (Session, error)
}

// ObjectLocator is implemented by filesystems that map entry names to
// object references.
type ObjectLocator interface {
	ObjectRef(name string) (ObjectRef, error)
}
