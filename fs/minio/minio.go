package minio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/jmgilman/objfs/fs/core"
	"github.com/jmgilman/objfs/fs/minio/internal/errs"
	"github.com/jmgilman/objfs/fs/minio/internal/pathutil"
	"github.com/jmgilman/objfs/fs/minio/internal/types"
	"github.com/jmgilman/objfs/transfer"
)

const defaultMultipartThreshold = 5 * 1024 * 1024

// MinioFS implements core.FS for MinIO/S3-compatible storage.
// Note: The name follows the package naming convention (LocalFS, MemoryFS, etc.)
// used throughout the fs library to distinguish between different implementations.
//
//nolint:revive // MinioFS name is intentional to match naming pattern across fs implementations
type MinioFS struct {
	client             *minio.Client
	bucket             string
	prefix             string // Optional prefix for all keys
	multipartThreshold int64  // Threshold for multipart uploads
	cfg                Config // Retained for transfer sessions
	logger             *slog.Logger
}

// NewMinIO creates a MinIO-backed filesystem.
// Returns error if configuration is invalid or connection fails.
func NewMinIO(cfg Config) (*MinioFS, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	client := cfg.Client
	if client == nil {
		var err error
		client, err = minio.New(cfg.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
			Secure: cfg.UseSSL,
			Region: cfg.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create minio client: %w", err)
		}
	}

	if cfg.TransferBackend == "" {
		cfg.TransferBackend = BackendMinIO
	}

	multipartThreshold := cfg.MultipartThreshold
	if multipartThreshold == 0 {
		multipartThreshold = defaultMultipartThreshold
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &MinioFS{
		client:             client,
		bucket:             cfg.Bucket,
		prefix:             pathutil.NormalizePrefix(cfg.Prefix),
		multipartThreshold: multipartThreshold,
		cfg:                cfg,
		logger:             logger,
	}, nil
}

// joinPath joins the filesystem prefix with the given name.
func (m *MinioFS) joinPath(name string) string {
	return pathutil.JoinPath(m.prefix, name)
}

// Bucket returns the bucket backing the filesystem.
func (m *MinioFS) Bucket() string {
	return m.bucket
}

// ObjectRef returns the bucket and key that name maps to.
func (m *MinioFS) ObjectRef(name string) (transfer.ObjectRef, error) {
	key := m.joinPath(name)
	if key == "" || key == m.prefix {
		return transfer.ObjectRef{}, errs.PathError("objectref", name, core.ErrIsDir)
	}
	return transfer.ObjectRef{Bucket: m.bucket, Key: key}, nil
}

// Open opens the named file for reading.
// Returns a streaming file that doesn't buffer the entire object in memory.
// The returned file supports Seek and ReadAt via HTTP range requests.
func (m *MinioFS) Open(name string) (fs.File, error) {
	return newObjectReader(context.Background(), m, m.joinPath(name), name)
}

// Stat returns file information for the named file.
// The FileInfo's Sys value carries the object's content type and ETag.
func (m *MinioFS) Stat(name string) (fs.FileInfo, error) {
	key := m.joinPath(name)

	info, err := m.client.StatObject(context.Background(), m.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, errs.PathError("stat", name, errs.Translate(err))
	}

	return objectFileInfo(m.bucket, key, info), nil
}

func objectFileInfo(bucket, key string, info minio.ObjectInfo) *types.FileInfo {
	fi := types.NewFileInfo(path.Base(key), info.Size, info.LastModified, 0o644)
	fi.Meta = &types.ObjectMeta{
		Bucket:      bucket,
		Key:         key,
		ETag:        info.ETag,
		Type:        info.ContentType,
		UserDefined: info.UserMetadata,
	}
	return fi
}

// ReadFile reads the named file and returns the contents.
func (m *MinioFS) ReadFile(name string) ([]byte, error) {
	key := m.joinPath(name)
	ctx := context.Background()

	obj, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errs.PathError("readfile", name, errs.Translate(err))
	}
	defer func() {
		_ = obj.Close()
	}()

	// Stat on the object handle surfaces missing keys before the read
	// and lets us allocate once.
	info, err := obj.Stat()
	if err != nil {
		return nil, errs.PathError("readfile", name, errs.Translate(err))
	}

	buf := make([]byte, info.Size)
	if _, err := io.ReadFull(obj, buf); err != nil {
		return nil, errs.PathError("readfile", name, errs.Translate(err))
	}
	return buf, nil
}

// Exists reports whether the named file exists.
func (m *MinioFS) Exists(name string) (bool, error) {
	_, err := m.Stat(name)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Create creates the named file for writing.
func (m *MinioFS) Create(name string) (core.File, error) {
	return newObjectWriter(m, m.joinPath(name), name), nil
}

// OpenFile opens the named file with the specified flags and permissions.
// Supported flags: O_RDONLY, O_WRONLY, O_CREATE, O_TRUNC.
// Unsupported flags: O_RDWR, O_APPEND, O_EXCL, O_SYNC (returns ErrUnsupported).
func (m *MinioFS) OpenFile(name string, flag int, _ fs.FileMode) (core.File, error) {
	unsupported := []struct {
		flag int
		name string
	}{
		{os.O_RDWR, "O_RDWR"},
		{os.O_APPEND, "O_APPEND"},
		{os.O_EXCL, "O_EXCL"},
		{os.O_SYNC, "O_SYNC"},
	}
	for _, u := range unsupported {
		if flag&u.flag != 0 {
			return nil, errs.PathErrorf("open", name, "%w: %s not supported in S3", core.ErrUnsupported, u.name)
		}
	}

	if flag&(os.O_WRONLY|os.O_CREATE) != 0 {
		return newObjectWriter(m, m.joinPath(name), name), nil
	}
	return newObjectReader(context.Background(), m, m.joinPath(name), name)
}

// WriteFile writes data to the named file.
func (m *MinioFS) WriteFile(name string, data []byte, _ fs.FileMode) error {
	w := newObjectWriter(m, m.joinPath(name), name)
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return errs.PathError("writefile", name, err)
	}
	if err := w.Close(); err != nil {
		return errs.PathError("writefile", name, err)
	}
	return nil
}

// MkdirAll is a no-op: S3 directories are virtual.
func (m *MinioFS) MkdirAll(_ string, _ fs.FileMode) error {
	return nil
}

// Remove removes the named object. Removing a missing object succeeds.
func (m *MinioFS) Remove(name string) error {
	err := m.client.RemoveObject(context.Background(), m.bucket, m.joinPath(name), minio.RemoveObjectOptions{})
	if err != nil {
		return errs.PathError("remove", name, errs.Translate(err))
	}
	return nil
}

// Type returns FSTypeRemote for MinIO filesystem implementations.
func (m *MinioFS) Type() core.FSType {
	return core.FSTypeRemote
}

// Compile-time interface checks.
var (
	_ core.FS                = (*MinioFS)(nil)
	_ core.AttributeFS       = (*MinioFS)(nil)
	_ transfer.SessionOpener = (*MinioFS)(nil)
	_ transfer.ObjectLocator = (*MinioFS)(nil)
)
