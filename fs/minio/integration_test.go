package minio

import (
	"bytes"
	"context"
	"crypto/rand"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jmgilman/objfs/fs/billy"
	"github.com/jmgilman/objfs/fs/content"
	"github.com/jmgilman/objfs/fs/core"
	"github.com/jmgilman/objfs/transfer"
)

const testBucket = "test-bucket"

// setupMinIOContainer starts a MinIO container and returns its endpoint.
func setupMinIOContainer(t *testing.T) string {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "minio/minio:latest",
		ExposedPorts: []string{"9000/tcp"},
		Env: map[string]string{
			"MINIO_ROOT_USER":     "minioadmin",
			"MINIO_ROOT_PASSWORD": "minioadmin",
		},
		Cmd:        []string{"server", "/data"},
		WaitingFor: wait.ForHTTP("/minio/health/live").WithPort("9000/tcp"),
	}

	minioC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start MinIO container")
	t.Cleanup(func() { _ = minioC.Terminate(ctx) })

	endpoint, err := minioC.Endpoint(ctx, "")
	require.NoError(t, err, "failed to get container endpoint")

	client, err := minio.New(endpoint, &minio.Options{
		Creds: credentials.NewStaticV4("minioadmin", "minioadmin", ""),
	})
	require.NoError(t, err)
	require.NoError(t, client.MakeBucket(ctx, testBucket, minio.MakeBucketOptions{}))

	return endpoint
}

func setupMinIOFS(t *testing.T, endpoint string, backend Backend) *MinioFS {
	t.Helper()

	mfs, err := NewMinIO(Config{
		Endpoint:        endpoint,
		Bucket:          testBucket,
		AccessKey:       "minioadmin",
		SecretKey:       "minioadmin",
		TransferBackend: backend,
		PartSize:        2 << 20,
		Concurrency:     4,
	})
	require.NoError(t, err, "failed to create MinioFS")
	return mfs
}

func randomData(t *testing.T, size int) []byte {
	t.Helper()
	data := make([]byte, size)
	_, err := rand.Read(data)
	require.NoError(t, err)
	return data
}

func TestIntegration_ObjectAccess(t *testing.T) {
	endpoint := setupMinIOContainer(t)
	mfs := setupMinIOFS(t, endpoint, BackendMinIO)

	t.Run("round trip", func(t *testing.T) {
		data := []byte("<html><body>hello</body></html>")
		require.NoError(t, mfs.WriteFile("docs/index.html", data, 0o644))

		got, err := mfs.ReadFile("docs/index.html")
		require.NoError(t, err)
		assert.Equal(t, data, got)

		info, err := mfs.Stat("docs/index.html")
		require.NoError(t, err)
		assert.Equal(t, int64(len(data)), info.Size())
		assert.Equal(t, "index.html", info.Name())

		typer, ok := info.Sys().(core.ContentTyper)
		require.True(t, ok)
		assert.Contains(t, typer.ContentType(), "text/html")
	})

	t.Run("streaming upload", func(t *testing.T) {
		small, err := NewMinIO(Config{
			Endpoint:           endpoint,
			Bucket:             testBucket,
			AccessKey:          "minioadmin",
			SecretKey:          "minioadmin",
			MultipartThreshold: 1024,
		})
		require.NoError(t, err)

		data := randomData(t, 64*1024)
		f, err := small.Create("stream.bin")
		require.NoError(t, err)
		for off := 0; off < len(data); off += 4096 {
			_, err := f.Write(data[off : off+4096])
			require.NoError(t, err)
		}
		require.NoError(t, f.Close())

		got, err := small.ReadFile("stream.bin")
		require.NoError(t, err)
		assert.Equal(t, data, got)
	})

	t.Run("seek and read at", func(t *testing.T) {
		require.NoError(t, mfs.WriteFile("digits.txt", []byte("0123456789"), 0o644))

		f, err := mfs.Open("digits.txt")
		require.NoError(t, err)
		defer f.Close()

		seeker := f.(io.Seeker)
		pos, err := seeker.Seek(4, io.SeekStart)
		require.NoError(t, err)
		assert.Equal(t, int64(4), pos)

		buf := make([]byte, 3)
		_, err = io.ReadFull(f, buf)
		require.NoError(t, err)
		assert.Equal(t, "456", string(buf))

		n, err := f.(io.ReaderAt).ReadAt(buf, 8)
		assert.Equal(t, 2, n)
		assert.ErrorIs(t, err, io.EOF)
		assert.Equal(t, "89", string(buf[:n]))
	})

	t.Run("missing object", func(t *testing.T) {
		_, err := mfs.Stat("nope.txt")
		assert.ErrorIs(t, err, core.ErrNotExist)

		ok, err := mfs.Exists("nope.txt")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("attributes", func(t *testing.T) {
		data := []byte("attribute carrier")
		require.NoError(t, mfs.WriteFile("attrs.txt", data, 0o644))

		attrs, err := mfs.Attributes("attrs.txt")
		require.NoError(t, err)
		assert.Empty(t, attrs)

		require.NoError(t, mfs.SetAttribute("attrs.txt", "Owner", "reports-team"))
		require.NoError(t, mfs.SetAttribute("attrs.txt", "revision", 3))

		attrs, err = mfs.Attributes("attrs.txt")
		require.NoError(t, err)
		assert.Equal(t, "reports-team", attrs["owner"])
		assert.Equal(t, "3", attrs["revision"])

		require.NoError(t, mfs.RemoveAttribute("attrs.txt", "owner"))
		attrs, err = mfs.Attributes("attrs.txt")
		require.NoError(t, err)
		assert.NotContains(t, attrs, "owner")
		assert.Contains(t, attrs, "revision")

		got, err := mfs.ReadFile("attrs.txt")
		require.NoError(t, err)
		assert.Equal(t, data, got, "metadata update must keep object bytes")
	})
}

func TestIntegration_ManagedDownload(t *testing.T) {
	endpoint := setupMinIOContainer(t)
	data := randomData(t, 10<<20)

	seed := setupMinIOFS(t, endpoint, BackendMinIO)
	require.NoError(t, seed.WriteFile("data/big.bin", data, 0o644))

	for _, backend := range []Backend{BackendMinIO, BackendS3} {
		t.Run(string(backend), func(t *testing.T) {
			mfs := setupMinIOFS(t, endpoint, backend)

			t.Run("transfer run", func(t *testing.T) {
				ref, err := mfs.ObjectRef("data/big.bin")
				require.NoError(t, err)

				s, err := mfs.OpenSession(context.Background())
				require.NoError(t, err)
				defer s.Close()

				dest := filepath.Join(t.TempDir(), "big.bin")
				n, err := transfer.Run(context.Background(), s, ref, dest)
				require.NoError(t, err)
				assert.Equal(t, int64(len(data)), n)

				got, err := os.ReadFile(dest)
				require.NoError(t, err)
				assert.True(t, bytes.Equal(data, got))
			})

			t.Run("missing object", func(t *testing.T) {
				s, err := mfs.OpenSession(context.Background())
				require.NoError(t, err)
				defer s.Close()

				dest := filepath.Join(t.TempDir(), "missing.bin")
				_, err = transfer.Run(context.Background(), s,
					transfer.ObjectRef{Bucket: testBucket, Key: "data/missing.bin"}, dest)
				require.Error(t, err)

				var failure *transfer.Failure
				require.True(t, stderrors.As(err, &failure))
				assert.False(t, failure.Retryable())
				assert.ErrorIs(t, err, core.ErrNotExist)
			})

			t.Run("content facade", func(t *testing.T) {
				local := billy.NewLocal(billy.WithRoot(t.TempDir()))

				src := content.Resolve(mfs, "data/big.bin")
				defer src.Close()
				dst := content.Resolve(local, "copy/big.bin")

				c, err := src.Content()
				require.NoError(t, err)

				n, err := c.WriteFile(dst)
				require.NoError(t, err)
				assert.Equal(t, int64(len(data)), n)

				size, err := c.Size()
				require.NoError(t, err)
				assert.Equal(t, size, n)

				info, err := local.Stat("copy/big.bin")
				require.NoError(t, err)
				assert.Equal(t, n, info.Size())
			})
		})
	}
}
