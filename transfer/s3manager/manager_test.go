package s3manager

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/objfs/errors"
	"github.com/jmgilman/objfs/transfer"
)

// fakeClient serves ranged GetObject requests from memory.
type fakeClient struct {
	mu      sync.Mutex
	objects map[string][]byte
	calls   int
	err     error
	block   chan struct{}

	// resets is the number of responses whose body fails after sending
	// all of its bytes.
	resets int
}

// resetReader returns the bytes of r and then a connection error instead
// of io.EOF.
type resetReader struct {
	r io.Reader
}

func (r resetReader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if err == io.EOF {
		return n, stderrors.New("read: connection reset by peer")
	}
	return n, err
}

func newFakeClient() *fakeClient {
	return &fakeClient{objects: make(map[string][]byte)}
}

func (c *fakeClient) put(bucket, key string, data []byte) {
	c.objects[bucket+"/"+key] = data
}

func (c *fakeClient) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	c.mu.Lock()
	c.calls++
	data, ok := c.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	err := c.err
	block := c.block
	reset := c.resets > 0
	if reset {
		c.resets--
	}
	c.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &smithy.GenericAPIError{Code: "NoSuchKey", Message: "The specified key does not exist."}
	}

	start, end := int64(0), int64(len(data))-1
	if r := aws.ToString(in.Range); r != "" {
		parts := strings.SplitN(strings.TrimPrefix(r, "bytes="), "-", 2)
		start, _ = strconv.ParseInt(parts[0], 10, 64)
		if parts[1] != "" {
			end, _ = strconv.ParseInt(parts[1], 10, 64)
		}
		if end > int64(len(data))-1 {
			end = int64(len(data)) - 1
		}
	}

	body := data[start : end+1]
	var r io.Reader = bytes.NewReader(body)
	if reset {
		r = resetReader{r: r}
	}
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(r),
		ContentLength: aws.Int64(int64(len(body))),
		ContentRange:  aws.String(fmt.Sprintf("bytes %d-%d/%d", start, end, len(data))),
	}, nil
}

func testData(size int) []byte {
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i % 251)
	}
	return data
}

func TestManager_Download(t *testing.T) {
	client := newFakeClient()
	data := testData(10*1024 + 17)
	client.put("data", "big.bin", data)

	session := NewSession(client, WithPartSize(1024), WithConcurrency(4))
	mgr, err := session.NewManager()
	require.NoError(t, err)

	dest := filepath.Join(t.TempDir(), "big.bin")
	tr, err := mgr.Download(context.Background(), "data", "big.bin", dest)
	require.NoError(t, err)
	require.NoError(t, tr.Wait(context.Background()))

	p, err := tr.Progress()
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), p.BytesTransferred)
	assert.Equal(t, int64(len(data)), p.TotalBytes)

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, data, got)
	assert.Greater(t, client.calls, 1, "expected ranged requests")

	require.NoError(t, mgr.Shutdown())
	require.NoError(t, mgr.Shutdown())
	assertNoPartFiles(t, filepath.Dir(dest))
}

func TestManager_DownloadRetriedPart(t *testing.T) {
	client := newFakeClient()
	data := testData(1000)
	client.put("data", "flaky.bin", data)
	client.resets = 1

	dest := filepath.Join(t.TempDir(), "flaky.bin")
	n, err := transfer.Run(context.Background(), NewSession(client, WithPartSize(1000)),
		transfer.ObjectRef{Bucket: "data", Key: "flaky.bin"}, dest)
	require.NoError(t, err)
	assert.Equal(t, 2, client.calls, "expected the part to be fetched twice")

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, data, got)
	assert.Equal(t, int64(len(data)), n)
}

func TestManager_WaitAfterCompletion(t *testing.T) {
	client := newFakeClient()
	client.put("data", "done.bin", testData(512))

	mgr, err := NewSession(client).NewManager()
	require.NoError(t, err)
	defer mgr.Shutdown()

	tr, err := mgr.Download(context.Background(), "data", "done.bin", filepath.Join(t.TempDir(), "done.bin"))
	require.NoError(t, err)
	require.NoError(t, tr.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < 100; i++ {
		require.NoError(t, tr.Wait(ctx))
	}
}

func TestManager_DownloadNotFound(t *testing.T) {
	session := NewSession(newFakeClient())
	mgr, err := session.NewManager()
	require.NoError(t, err)
	defer mgr.Shutdown()

	dir := t.TempDir()
	dest := filepath.Join(dir, "missing.bin")
	tr, err := mgr.Download(context.Background(), "data", "missing.bin", dest)
	require.NoError(t, err)

	err = tr.Wait(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))

	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))
	assertNoPartFiles(t, dir)
}

func TestManager_ShutdownCancelsInFlight(t *testing.T) {
	client := newFakeClient()
	client.put("data", "slow.bin", testData(2048))
	client.block = make(chan struct{})

	session := NewSession(client)
	mgr, err := session.NewManager()
	require.NoError(t, err)

	dir := t.TempDir()
	tr, err := mgr.Download(context.Background(), "data", "slow.bin", filepath.Join(dir, "slow.bin"))
	require.NoError(t, err)

	require.NoError(t, mgr.Shutdown())

	err = tr.Wait(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assertNoPartFiles(t, dir)

	_, err = mgr.Download(context.Background(), "data", "slow.bin", filepath.Join(dir, "again.bin"))
	assert.Error(t, err)
}

func TestManager_WaitHonorsContext(t *testing.T) {
	client := newFakeClient()
	client.put("data", "slow.bin", testData(2048))
	client.block = make(chan struct{})

	mgr, err := NewSession(client).NewManager()
	require.NoError(t, err)
	defer mgr.Shutdown()

	tr, err := mgr.Download(context.Background(), "data", "slow.bin", filepath.Join(t.TempDir(), "slow.bin"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, tr.Wait(ctx), context.Canceled)
}

func TestManager_InvalidInput(t *testing.T) {
	mgr, err := NewSession(newFakeClient()).NewManager()
	require.NoError(t, err)
	defer mgr.Shutdown()

	_, err = mgr.Download(context.Background(), "", "key", filepath.Join(t.TempDir(), "x"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestSession_NilClient(t *testing.T) {
	_, err := NewSession(nil).NewManager()
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidConfig, errors.GetCode(err))
}

func TestSession_CloseRunsCloserOnce(t *testing.T) {
	calls := 0
	s := NewSession(newFakeClient(), WithCloser(func() error {
		calls++
		return nil
	}))

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.Equal(t, 1, calls)
}

func TestRun_WithS3Session(t *testing.T) {
	client := newFakeClient()
	data := testData(4096)
	client.put("data", "report.csv", data)

	session := NewSession(client, WithPartSize(1000))
	dest := filepath.Join(t.TempDir(), "report.csv")

	n, err := transfer.Run(context.Background(), session,
		transfer.ObjectRef{Bucket: "data", Key: "report.csv"}, dest)
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), n)

	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.Equal(t, n, info.Size())
}

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		code      errors.ErrorCode
		sentinel  error
		retryable bool
	}{
		{"no such key", &smithy.GenericAPIError{Code: "NoSuchKey"}, errors.CodeNotFound, fs.ErrNotExist, false},
		{"access denied", &smithy.GenericAPIError{Code: "AccessDenied"}, errors.CodeForbidden, fs.ErrPermission, false},
		{"bad key id", &smithy.GenericAPIError{Code: "InvalidAccessKeyId"}, errors.CodeUnauthorized, nil, false},
		{"slow down", &smithy.GenericAPIError{Code: "SlowDown"}, errors.CodeRateLimit, nil, true},
		{"unavailable", &smithy.GenericAPIError{Code: "ServiceUnavailable"}, errors.CodeUnavailable, nil, true},
		{"deadline", context.DeadlineExceeded, errors.CodeTimeout, context.DeadlineExceeded, true},
		{"canceled", context.Canceled, errors.CodeCanceled, context.Canceled, false},
		{"other", stderrors.New("boom"), errors.CodeTransferFailed, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := translateError(tt.err, "b", "k")
			assert.Equal(t, tt.code, errors.GetCode(err))
			assert.Equal(t, tt.retryable, errors.IsRetryable(err))
			if tt.sentinel != nil {
				assert.ErrorIs(t, err, tt.sentinel)
			}
		})
	}

	assert.NoError(t, translateError(nil, "b", "k"))
}

func assertNoPartFiles(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".part"), "leftover part file %s", e.Name())
	}
}
