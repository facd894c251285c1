package content

import (
	stderrors "errors"
	"io"
	"sync"
)

// streams tracks the closers handed out by one content handle.
type streams struct {
	mu   sync.Mutex
	open map[io.Closer]struct{}
}

func (s *streams) add(c io.Closer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.open == nil {
		s.open = make(map[io.Closer]struct{})
	}
	s.open[c] = struct{}{}
}

func (s *streams) remove(c io.Closer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.open, c)
}

func (s *streams) any() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.open) > 0
}

// closeAll closes every tracked closer and joins their errors.
func (s *streams) closeAll() error {
	s.mu.Lock()
	pending := make([]io.Closer, 0, len(s.open))
	for c := range s.open {
		pending = append(pending, c)
	}
	s.open = nil
	s.mu.Unlock()

	var errs []error
	for _, c := range pending {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

// trackedReader is an input stream that deregisters itself on Close.
type trackedReader struct {
	io.ReadCloser
	owner *streams
	once  sync.Once
	err   error
}

func (r *trackedReader) Close() error {
	r.once.Do(func() {
		r.owner.remove(r)
		r.err = r.ReadCloser.Close()
	})
	return r.err
}

// trackedWriter is an output stream that deregisters itself on Close.
type trackedWriter struct {
	io.WriteCloser
	owner *streams
	once  sync.Once
	err   error
}

func (w *trackedWriter) Close() error {
	w.once.Do(func() {
		w.owner.remove(w)
		w.err = w.WriteCloser.Close()
	})
	return w.err
}

func (s *streams) reader(rc io.ReadCloser) io.ReadCloser {
	r := &trackedReader{ReadCloser: rc, owner: s}
	s.add(r)
	return r
}

func (s *streams) writer(wc io.WriteCloser) io.WriteCloser {
	w := &trackedWriter{WriteCloser: wc, owner: s}
	s.add(w)
	return w
}
