package contenttest

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/jmgilman/objfs/fs/core"
)

// PairFactory returns two content handles over the same entry in a fresh
// fixture: wrapper, which is under test, and wrapped, the content it
// delegates to. The entry is created with data.
type PairFactory func(t *testing.T, data []byte) (wrapper, wrapped core.Content)

// TestPassThrough checks that every operation of wrapper other than WriteFile
// returns what wrapped returns, and that writes through wrapper are visible
// through wrapped.
func TestPassThrough(t *testing.T, newPair PairFactory) {
	t.Run("File", func(t *testing.T) {
		w, b := newPair(t, testData)
		if w.File() != b.File() {
			t.Errorf("File(): wrapper returned %v, wrapped returned %v", w.File(), b.File())
		}
	})

	t.Run("Size", func(t *testing.T) {
		w, b := newPair(t, testData)
		ws, werr := w.Size()
		bs, berr := b.Size()
		comparePair(t, "Size()", ws, werr, bs, berr)
	})

	t.Run("LastModified", func(t *testing.T) {
		w, b := newPair(t, testData)
		wt, werr := w.LastModified()
		bt, berr := b.LastModified()
		if werr != nil || berr != nil {
			comparePair(t, "LastModified()", nil, werr, nil, berr)
			return
		}
		if wt.Unix() != bt.Unix() {
			t.Errorf("LastModified(): wrapper returned %v, wrapped returned %v", wt, bt)
		}
	})

	t.Run("ContentInfo", func(t *testing.T) {
		w, b := newPair(t, testData)
		wi, werr := w.ContentInfo()
		bi, berr := b.ContentInfo()
		comparePair(t, "ContentInfo()", wi, werr, bi, berr)
	})

	t.Run("Certificates", func(t *testing.T) {
		w, b := newPair(t, testData)
		wc, werr := w.Certificates()
		bc, berr := b.Certificates()
		comparePair(t, "Certificates()", wc, werr, bc, berr)
	})

	t.Run("Attributes", func(t *testing.T) {
		w, b := newPair(t, testData)
		wa, werr := w.Attributes()
		ba, berr := b.Attributes()
		comparePair(t, "Attributes()", wa, werr, ba, berr)

		wn, werr := w.AttributeNames()
		bn, berr := b.AttributeNames()
		comparePair(t, "AttributeNames()", wn, werr, bn, berr)

		werr = w.SetAttribute("owner", "alice")
		berr = b.SetAttribute("owner", "alice")
		comparePair(t, "SetAttribute()", nil, werr, nil, berr)

		wh, werr := w.HasAttribute("owner")
		bh, berr := b.HasAttribute("owner")
		comparePair(t, "HasAttribute()", wh, werr, bh, berr)
	})

	t.Run("InputStream", func(t *testing.T) {
		w, b := newPair(t, testData)
		if got, want := readAll(t, w), readAll(t, b); !bytes.Equal(got, want) {
			t.Errorf("InputStream(): wrapper read %q, wrapped read %q", got, want)
		}
	})

	t.Run("WriteTo", func(t *testing.T) {
		w, b := newPair(t, testData)
		var wbuf, bbuf bytes.Buffer
		wn, werr := w.WriteTo(&wbuf)
		bn, berr := b.WriteTo(&bbuf)
		comparePair(t, "WriteTo()", wn, werr, bn, berr)
		if !bytes.Equal(wbuf.Bytes(), bbuf.Bytes()) {
			t.Errorf("WriteTo(): wrapper wrote %q, wrapped wrote %q", wbuf.Bytes(), bbuf.Bytes())
		}
	})

	t.Run("OutputStream", func(t *testing.T) {
		w, b := newPair(t, testData)
		want := []byte("written through the wrapper")
		write(t, w, want, false)
		if got := readAll(t, b); !bytes.Equal(got, want) {
			t.Errorf("OutputStream(): wrapped reads %q, want %q", got, want)
		}
	})

	t.Run("RandomAccess", func(t *testing.T) {
		w, b := newPair(t, testData)
		wra, werr := w.RandomAccess(core.AccessRead)
		bra, berr := b.RandomAccess(core.AccessRead)
		if werr != nil || berr != nil {
			comparePair(t, "RandomAccess(r)", nil, werr, nil, berr)
			return
		}
		defer func() { _ = wra.Close() }()
		defer func() { _ = bra.Close() }()

		wl, werr := wra.Length()
		bl, berr := bra.Length()
		comparePair(t, "Length()", wl, werr, bl, berr)
	})

	t.Run("Lifecycle", func(t *testing.T) {
		w, b := newPair(t, testData)
		if _, err := w.InputStream(); err != nil {
			t.Fatalf("InputStream(): got error %v, want nil", err)
		}
		if w.IsOpen() != b.IsOpen() {
			t.Errorf("IsOpen(): wrapper returned %v, wrapped returned %v", w.IsOpen(), b.IsOpen())
		}
		werr := w.Close()
		berr := b.Close()
		comparePair(t, "Close()", nil, werr, nil, berr)
		if w.IsOpen() || b.IsOpen() {
			t.Errorf("IsOpen() after Close: got (%v, %v), want (false, false)", w.IsOpen(), b.IsOpen())
		}
	})
}

// comparePair fails the test unless both calls returned equal values and
// errors matching the same sentinels.
func comparePair(t *testing.T, op string, wv interface{}, werr error, bv interface{}, berr error) {
	t.Helper()
	if (werr == nil) != (berr == nil) {
		t.Errorf("%s: wrapper returned error %v, wrapped returned %v", op, werr, berr)
		return
	}
	if werr != nil {
		for _, sentinel := range []error{core.ErrNotExist, core.ErrPermission, core.ErrUnsupported, core.ErrIsDir} {
			if errors.Is(werr, sentinel) != errors.Is(berr, sentinel) {
				t.Errorf("%s: wrapper error %v and wrapped error %v disagree on %v", op, werr, berr, sentinel)
			}
		}
		return
	}
	if !reflect.DeepEqual(wv, bv) {
		t.Errorf("%s: wrapper returned %v, wrapped returned %v", op, wv, bv)
	}
}
