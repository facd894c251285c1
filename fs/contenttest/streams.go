package contenttest

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/jmgilman/objfs/fs/core"
)

// TestStreams tests InputStream and OutputStream with MemoryTestConfig().
func TestStreams(t *testing.T, newObject Factory) {
	TestStreamsWithConfig(t, newObject, MemoryTestConfig())
}

// TestStreamsWithConfig tests InputStream and OutputStream.
func TestStreamsWithConfig(t *testing.T, newObject Factory, config ContentTestConfig) {
	t.Run("InputStream", func(t *testing.T) {
		testInputStream(t, newObject)
	})
	t.Run("InputStreamNotExist", func(t *testing.T) {
		testInputStreamNotExist(t, newObject)
	})
	t.Run("OutputStreamTruncate", func(t *testing.T) {
		testOutputStreamTruncate(t, newObject)
	})
	t.Run("OutputStreamCreate", func(t *testing.T) {
		testOutputStreamCreate(t, newObject)
	})
	t.Run("OutputStreamAppend", func(t *testing.T) {
		testOutputStreamAppend(t, newObject, config)
	})
}

// readAll reads the whole entry through a fresh input stream.
func readAll(t *testing.T, c core.Content) []byte {
	t.Helper()
	in, err := c.InputStream()
	if err != nil {
		t.Fatalf("InputStream(): got error %v, want nil", err)
	}
	defer func() { _ = in.Close() }()

	data, err := io.ReadAll(in)
	if err != nil {
		t.Fatalf("ReadAll(): got error %v, want nil", err)
	}
	return data
}

// write replaces or appends to the entry through an output stream.
func write(t *testing.T, c core.Content, data []byte, appendMode bool) {
	t.Helper()
	out, err := c.OutputStream(appendMode)
	if err != nil {
		t.Fatalf("OutputStream(%v): got error %v, want nil", appendMode, err)
	}
	if _, err := out.Write(data); err != nil {
		t.Fatalf("Write(): got error %v, want nil", err)
	}
	if err := out.Close(); err != nil {
		t.Fatalf("Close(): got error %v, want nil", err)
	}
}

// testInputStream tests reading and open tracking of an input stream.
func testInputStream(t *testing.T, newObject Factory) {
	obj := newObject(t, "streams/input.txt", testData)
	defer func() { _ = obj.Close() }()
	c := open(t, obj)

	in, err := c.InputStream()
	if err != nil {
		t.Fatalf("InputStream(): got error %v, want nil", err)
	}
	if !c.IsOpen() {
		t.Errorf("IsOpen(): got false with an open input stream, want true")
	}

	got, err := io.ReadAll(in)
	if err != nil {
		t.Errorf("ReadAll(): got error %v, want nil", err)
	}
	if !bytes.Equal(got, testData) {
		t.Errorf("ReadAll(): got %q, want %q", got, testData)
	}

	if err := in.Close(); err != nil {
		t.Errorf("Close(): got error %v, want nil", err)
	}
	if c.IsOpen() {
		t.Errorf("IsOpen(): got true after closing the only stream, want false")
	}
}

// testInputStreamNotExist tests that a missing entry fails with ErrNotExist.
func testInputStreamNotExist(t *testing.T, newObject Factory) {
	obj := newObject(t, "streams/missing.txt", nil)
	defer func() { _ = obj.Close() }()
	c := open(t, obj)

	in, err := c.InputStream()
	if err == nil {
		_ = in.Close()
		t.Fatalf("InputStream(): got nil error for a missing entry, want ErrNotExist")
	}
	if !errors.Is(err, core.ErrNotExist) {
		t.Errorf("InputStream(): got error %v, want ErrNotExist", err)
	}
	if c.IsOpen() {
		t.Errorf("IsOpen(): got true after a failed open, want false")
	}
}

// testOutputStreamTruncate tests that OutputStream(false) replaces content.
func testOutputStreamTruncate(t *testing.T, newObject Factory) {
	obj := newObject(t, "streams/truncate.txt", testData)
	defer func() { _ = obj.Close() }()
	c := open(t, obj)

	want := []byte("short")
	write(t, c, want, false)

	if got := readAll(t, c); !bytes.Equal(got, want) {
		t.Errorf("after OutputStream(false): got %q, want %q", got, want)
	}
}

// testOutputStreamCreate tests that OutputStream creates a missing entry.
func testOutputStreamCreate(t *testing.T, newObject Factory) {
	obj := newObject(t, "streams/nested/created.txt", nil)
	defer func() { _ = obj.Close() }()
	c := open(t, obj)

	write(t, c, testData, false)

	if got := readAll(t, c); !bytes.Equal(got, testData) {
		t.Errorf("after OutputStream(false): got %q, want %q", got, testData)
	}
}

// testOutputStreamAppend tests OutputStream(true).
func testOutputStreamAppend(t *testing.T, newObject Factory, config ContentTestConfig) {
	obj := newObject(t, "streams/append.txt", testData)
	defer func() { _ = obj.Close() }()
	c := open(t, obj)

	if !config.AppendWrites {
		out, err := c.OutputStream(true)
		if err == nil {
			_ = out.Close()
			t.Fatalf("OutputStream(true): got nil error, want ErrUnsupported")
		}
		if !errors.Is(err, core.ErrUnsupported) {
			t.Errorf("OutputStream(true): got error %v, want ErrUnsupported", err)
		}
		return
	}

	tail := []byte("and back again\n")
	write(t, c, tail, true)

	want := append(append([]byte(nil), testData...), tail...)
	if got := readAll(t, c); !bytes.Equal(got, want) {
		t.Errorf("after OutputStream(true): got %q, want %q", got, want)
	}
}
