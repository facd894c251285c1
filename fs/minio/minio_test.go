package minio

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/objfs/errors"
	"github.com/jmgilman/objfs/fs/core"
	"github.com/jmgilman/objfs/transfer"
	"github.com/jmgilman/objfs/transfer/s3manager"
)

func newTestFS(t *testing.T, cfg Config) *MinioFS {
	t.Helper()
	if cfg.Client == nil && cfg.Endpoint == "" {
		cfg.Client = &minio.Client{}
	}
	if cfg.Bucket == "" {
		cfg.Bucket = "test-bucket"
	}
	mfs, err := NewMinIO(cfg)
	require.NoError(t, err)
	return mfs
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name: "valid config with credentials",
			config: Config{
				Endpoint:  "localhost:9000",
				Bucket:    "test-bucket",
				AccessKey: "minioadmin",
				SecretKey: "minioadmin",
			},
		},
		{
			name:   "valid config with client",
			config: Config{Client: &minio.Client{}, Bucket: "test-bucket"},
		},
		{
			name:    "missing bucket",
			config:  Config{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"},
			wantErr: "bucket is required",
		},
		{
			name:    "missing endpoint without client",
			config:  Config{Bucket: "b", AccessKey: "a", SecretKey: "b"},
			wantErr: "endpoint is required",
		},
		{
			name:    "missing access key",
			config:  Config{Bucket: "b", Endpoint: "localhost:9000", SecretKey: "b"},
			wantErr: "access key is required",
		},
		{
			name:    "missing secret key",
			config:  Config{Bucket: "b", Endpoint: "localhost:9000", AccessKey: "a"},
			wantErr: "secret key is required",
		},
		{
			name:    "s3 backend needs connection fields even with client",
			config:  Config{Client: &minio.Client{}, Bucket: "b", TransferBackend: BackendS3},
			wantErr: "endpoint is required",
		},
		{
			name:    "unknown backend",
			config:  Config{Client: &minio.Client{}, Bucket: "b", TransferBackend: "ftp"},
			wantErr: "unknown transfer backend",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, errors.CodeInvalidConfig, errors.GetCode(err))
		})
	}
}

func TestNewMinIO(t *testing.T) {
	t.Run("invalid config returns error", func(t *testing.T) {
		mfs, err := NewMinIO(Config{Endpoint: "localhost:9000"})
		require.Error(t, err)
		assert.Nil(t, mfs)
	})

	t.Run("defaults", func(t *testing.T) {
		mfs := newTestFS(t, Config{})
		assert.Equal(t, "test-bucket", mfs.Bucket())
		assert.Equal(t, "", mfs.prefix)
		assert.Equal(t, int64(defaultMultipartThreshold), mfs.multipartThreshold)
		assert.Equal(t, BackendMinIO, mfs.cfg.TransferBackend)
		assert.NotNil(t, mfs.logger)
		assert.Equal(t, core.FSTypeRemote, mfs.Type())
	})

	t.Run("prefix normalization", func(t *testing.T) {
		tests := []struct {
			prefix, expected string
		}{
			{"", ""},
			{".", ""},
			{"myapp", "myapp"},
			{"/myapp/data/", "myapp/data"},
			{"myapp\\data", "myapp/data"},
			{"myapp/../data/./files", "data/files"},
		}
		for _, tt := range tests {
			mfs := newTestFS(t, Config{Prefix: tt.prefix})
			assert.Equal(t, tt.expected, mfs.prefix, "prefix %q", tt.prefix)
		}
	})

	t.Run("custom multipart threshold", func(t *testing.T) {
		mfs := newTestFS(t, Config{MultipartThreshold: 10 << 20})
		assert.Equal(t, int64(10<<20), mfs.multipartThreshold)
	})
}

func TestObjectRef(t *testing.T) {
	tests := []struct {
		name    string
		prefix  string
		file    string
		wantKey string
		wantErr bool
	}{
		{name: "plain", file: "a.txt", wantKey: "a.txt"},
		{name: "nested", file: "/dir/a.txt", wantKey: "dir/a.txt"},
		{name: "prefixed", prefix: "tenant", file: "dir/a.txt", wantKey: "tenant/dir/a.txt"},
		{name: "root", file: ".", wantErr: true},
		{name: "prefix root", prefix: "tenant", file: "/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mfs := newTestFS(t, Config{Prefix: tt.prefix})
			ref, err := mfs.ObjectRef(tt.file)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, core.ErrIsDir)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, transfer.ObjectRef{Bucket: "test-bucket", Key: tt.wantKey}, ref)
		})
	}
}

func TestOpenFileFlagValidation(t *testing.T) {
	mfs := newTestFS(t, Config{})

	for _, flag := range []int{os.O_RDWR, os.O_WRONLY | os.O_APPEND, os.O_WRONLY | os.O_EXCL, os.O_WRONLY | os.O_SYNC} {
		_, err := mfs.OpenFile("a.txt", flag, 0o644)
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrUnsupported)

		var pathErr *fs.PathError
		require.ErrorAs(t, err, &pathErr)
		assert.Equal(t, "open", pathErr.Op)
	}

	f, err := mfs.OpenFile("a.txt", os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	require.NoError(t, err)
	assert.IsType(t, &objectWriter{}, f)
}

func TestMkdirAll_NoOp(t *testing.T) {
	mfs := newTestFS(t, Config{})
	assert.NoError(t, mfs.MkdirAll("a/b/c", 0o755))
}

func TestObjectWriter_Buffered(t *testing.T) {
	mfs := newTestFS(t, Config{})
	w := newObjectWriter(mfs, "k", "a.txt")

	n, err := w.Write([]byte("hello "))
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	_, err = w.Write([]byte("world"))
	require.NoError(t, err)

	assert.Equal(t, "hello world", w.buffer.String())
	assert.Nil(t, w.pipeW)

	info, err := w.Stat()
	require.NoError(t, err)
	assert.Equal(t, int64(11), info.Size())
	assert.Equal(t, "a.txt", w.Name())

	_, err = w.Read(make([]byte, 1))
	assert.ErrorIs(t, err, fs.ErrInvalid)
}

func TestSniffHead(t *testing.T) {
	a := []byte(strings.Repeat("a", 10))
	b := []byte(strings.Repeat("b", 10))
	assert.Equal(t, append(append([]byte(nil), a...), b...), sniffHead(a, b))

	big := make([]byte, sniffLimit*2)
	assert.Len(t, sniffHead(big, b), sniffLimit)
	assert.Len(t, sniffHead(a, big), sniffLimit)
}

func TestOpenSession_MinIOBackend(t *testing.T) {
	mfs := newTestFS(t, Config{})

	s, err := mfs.OpenSession(context.Background())
	require.NoError(t, err)
	require.IsType(t, &session{}, s)

	mgr, err := s.NewManager()
	require.NoError(t, err)

	_, err = mgr.Download(context.Background(), "", "key", filepath.Join(t.TempDir(), "x"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	require.NoError(t, mgr.Shutdown())
	require.NoError(t, mgr.Shutdown())

	_, err = mgr.Download(context.Background(), "b", "k", filepath.Join(t.TempDir(), "x"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeCanceled, errors.GetCode(err))

	require.NoError(t, s.Close())
	_, err = s.NewManager()
	require.Error(t, err)
}

func TestOpenSession_S3Backend(t *testing.T) {
	mfs := newTestFS(t, Config{
		Endpoint:        "localhost:9000",
		AccessKey:       "minioadmin",
		SecretKey:       "minioadmin",
		TransferBackend: BackendS3,
		PartSize:        8 << 20,
	})

	s, err := mfs.OpenSession(context.Background())
	require.NoError(t, err)
	assert.IsType(t, &s3manager.Session{}, s)
	require.NoError(t, s.Close())
}

func TestOpenSession_CanceledContext(t *testing.T) {
	mfs := newTestFS(t, Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := mfs.OpenSession(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDownloadProgress_Pending(t *testing.T) {
	d := &download{dest: "/nonexistent", done: make(chan struct{})}
	p, err := d.Progress()
	require.NoError(t, err)
	assert.Equal(t, int64(-1), p.TotalBytes)
	assert.Zero(t, p.BytesTransferred)
}

func TestDownloadProgress_Completed(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out.bin")
	require.NoError(t, os.WriteFile(dest, make([]byte, 1234), 0o644))

	d := &download{dest: dest, done: make(chan struct{})}
	close(d.done)

	require.NoError(t, d.Wait(context.Background()))
	p, err := d.Progress()
	require.NoError(t, err)
	assert.Equal(t, int64(1234), p.BytesTransferred)
	assert.Equal(t, int64(1234), p.TotalBytes)
}

func TestDownloadWait_CompletedBeforeCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := &download{dest: "/nonexistent", done: make(chan struct{})}
	close(d.done)
	for i := 0; i < 100; i++ {
		require.NoError(t, d.Wait(ctx))
	}

	failed := &download{dest: "/nonexistent", done: make(chan struct{}), err: fs.ErrNotExist}
	close(failed.done)
	assert.ErrorIs(t, failed.Wait(ctx), fs.ErrNotExist)

	pending := &download{dest: "/nonexistent", done: make(chan struct{})}
	assert.ErrorIs(t, pending.Wait(ctx), context.Canceled)
}
