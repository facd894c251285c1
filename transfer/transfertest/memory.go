package transfertest

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/jmgilman/objfs/transfer"
)

// Memory is an in-process object store that hands out working sessions.
// Downloads write the stored bytes to the destination path.
type Memory struct {
	mu      sync.Mutex
	objects map[transfer.ObjectRef][]byte

	opened    atomic.Int32
	closed    atomic.Int32
	managers  atomic.Int32
	shutdowns atomic.Int32
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{objects: make(map[transfer.ObjectRef][]byte)}
}

// Put stores data under ref.
func (m *Memory) Put(ref transfer.ObjectRef, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[ref] = append([]byte(nil), data...)
}

// OpenSession implements transfer.SessionOpener.
func (m *Memory) OpenSession(ctx context.Context) (transfer.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.opened.Add(1)
	return &memorySession{store: m}, nil
}

// Opened returns the number of sessions opened.
func (m *Memory) Opened() int { return int(m.opened.Load()) }

// Closed returns the number of sessions closed.
func (m *Memory) Closed() int { return int(m.closed.Load()) }

// Managers returns the number of managers built.
func (m *Memory) Managers() int { return int(m.managers.Load()) }

// Shutdowns returns the number of manager shutdowns.
func (m *Memory) Shutdowns() int { return int(m.shutdowns.Load()) }

func (m *Memory) get(bucket, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[transfer.ObjectRef{Bucket: bucket, Key: key}]
	return data, ok
}

type memorySession struct {
	store *Memory
}

func (s *memorySession) NewManager() (transfer.Manager, error) {
	s.store.managers.Add(1)
	return &memoryManager{store: s.store}, nil
}

func (s *memorySession) Close() error {
	s.store.closed.Add(1)
	return nil
}

type memoryManager struct {
	store *Memory
	once  sync.Once
}

func (m *memoryManager) Download(_ context.Context, bucket, key, dest string) (transfer.Transfer, error) {
	data, ok := m.store.get(bucket, key)
	if !ok {
		return nil, &fs.PathError{Op: "download", Path: bucket + "/" + key, Err: fs.ErrNotExist}
	}
	return &memoryTransfer{data: data, dest: dest}, nil
}

func (m *memoryManager) Shutdown() error {
	m.once.Do(func() { m.store.shutdowns.Add(1) })
	return nil
}

type memoryTransfer struct {
	data []byte
	dest string
	done bool
}

func (t *memoryTransfer) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(t.dest), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(t.dest, t.data, 0o644); err != nil {
		return err
	}
	t.done = true
	return nil
}

func (t *memoryTransfer) Progress() (transfer.Progress, error) {
	p := transfer.Progress{TotalBytes: int64(len(t.data))}
	if t.done {
		p.BytesTransferred = int64(len(t.data))
	}
	return p, nil
}
