package content

import (
	"io"
	"sync"

	"github.com/jmgilman/objfs/fs/core"
)

// randomAccess adapts a seekable core.File to core.RandomAccessContent.
type randomAccess struct {
	file   core.File
	mode   core.AccessMode
	reader io.ReaderAt
	seeker io.Seeker
	writer io.WriterAt

	owner *streams
	once  sync.Once
	err   error
}

// newRandomAccess checks f for the capabilities mode needs. f is closed when
// it lacks them.
func newRandomAccess(f core.File, mode core.AccessMode) (*randomAccess, error) {
	ra := &randomAccess{file: f, mode: mode}

	var ok bool
	if ra.reader, ok = f.(io.ReaderAt); !ok {
		_ = f.Close()
		return nil, core.ErrUnsupported
	}
	if ra.seeker, ok = f.(io.Seeker); !ok {
		_ = f.Close()
		return nil, core.ErrUnsupported
	}
	if mode == core.AccessReadWrite {
		if ra.writer, ok = f.(io.WriterAt); !ok {
			_ = f.Close()
			return nil, core.ErrUnsupported
		}
	}
	return ra, nil
}

func (r *randomAccess) Read(p []byte) (int, error) {
	return r.file.Read(p)
}

func (r *randomAccess) ReadAt(p []byte, off int64) (int, error) {
	return r.reader.ReadAt(p, off)
}

func (r *randomAccess) Seek(offset int64, whence int) (int64, error) {
	return r.seeker.Seek(offset, whence)
}

func (r *randomAccess) Write(p []byte) (int, error) {
	if r.mode != core.AccessReadWrite {
		return 0, core.ErrPermission
	}
	return r.file.Write(p)
}

func (r *randomAccess) WriteAt(p []byte, off int64) (int, error) {
	if r.mode != core.AccessReadWrite {
		return 0, core.ErrPermission
	}
	return r.writer.WriteAt(p, off)
}

// Length returns the size reported by the open file.
func (r *randomAccess) Length() (int64, error) {
	info, err := r.file.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (r *randomAccess) Close() error {
	r.once.Do(func() {
		if r.owner != nil {
			r.owner.remove(r)
		}
		r.err = r.file.Close()
	})
	return r.err
}

var _ core.RandomAccessContent = (*randomAccess)(nil)
