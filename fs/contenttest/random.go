package contenttest

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/jmgilman/objfs/fs/core"
)

// TestRandomAccess tests random access content with MemoryTestConfig().
func TestRandomAccess(t *testing.T, newObject Factory) {
	TestRandomAccessWithConfig(t, newObject, MemoryTestConfig())
}

// TestRandomAccessWithConfig tests RandomAccess in both access modes.
func TestRandomAccessWithConfig(t *testing.T, newObject Factory, config ContentTestConfig) {
	t.Run("Read", func(t *testing.T) {
		testRandomAccessRead(t, newObject)
	})
	t.Run("ReadOnlyRejectsWrites", func(t *testing.T) {
		testRandomAccessReadOnly(t, newObject)
	})
	t.Run("ReadWrite", func(t *testing.T) {
		testRandomAccessReadWrite(t, newObject, config)
	})
}

// testRandomAccessRead tests ReadAt, Seek, Read and Length.
func testRandomAccessRead(t *testing.T, newObject Factory) {
	obj := newObject(t, "random/read.txt", testData)
	defer func() { _ = obj.Close() }()
	c := open(t, obj)

	ra, err := c.RandomAccess(core.AccessRead)
	if err != nil {
		t.Fatalf("RandomAccess(r): got error %v, want nil", err)
	}
	if !c.IsOpen() {
		t.Errorf("IsOpen(): got false with open random access content, want true")
	}

	length, err := ra.Length()
	if err != nil {
		t.Errorf("Length(): got error %v, want nil", err)
	}
	if length != int64(len(testData)) {
		t.Errorf("Length(): got %d, want %d", length, len(testData))
	}

	buf := make([]byte, 5)
	if _, err := ra.ReadAt(buf, 4); err != nil && !errors.Is(err, io.EOF) {
		t.Errorf("ReadAt(5, 4): got error %v, want nil", err)
	}
	if want := testData[4:9]; !bytes.Equal(buf, want) {
		t.Errorf("ReadAt(5, 4): got %q, want %q", buf, want)
	}

	pos, err := ra.Seek(10, io.SeekStart)
	if err != nil {
		t.Fatalf("Seek(10, start): got error %v, want nil", err)
	}
	if pos != 10 {
		t.Errorf("Seek(10, start): got position %d, want 10", pos)
	}
	rest, err := io.ReadAll(ra)
	if err != nil {
		t.Errorf("ReadAll() after Seek: got error %v, want nil", err)
	}
	if want := testData[10:]; !bytes.Equal(rest, want) {
		t.Errorf("ReadAll() after Seek: got %q, want %q", rest, want)
	}

	if err := ra.Close(); err != nil {
		t.Errorf("Close(): got error %v, want nil", err)
	}
	if c.IsOpen() {
		t.Errorf("IsOpen(): got true after closing random access content, want false")
	}
}

// testRandomAccessReadOnly tests that writes fail in read mode.
func testRandomAccessReadOnly(t *testing.T, newObject Factory) {
	obj := newObject(t, "random/readonly.txt", testData)
	defer func() { _ = obj.Close() }()
	c := open(t, obj)

	ra, err := c.RandomAccess(core.AccessRead)
	if err != nil {
		t.Fatalf("RandomAccess(r): got error %v, want nil", err)
	}
	defer func() { _ = ra.Close() }()

	if _, err := ra.Write([]byte("x")); !errors.Is(err, core.ErrPermission) {
		t.Errorf("Write() in read mode: got error %v, want ErrPermission", err)
	}
	if _, err := ra.WriteAt([]byte("x"), 0); !errors.Is(err, core.ErrPermission) {
		t.Errorf("WriteAt() in read mode: got error %v, want ErrPermission", err)
	}
}

// testRandomAccessReadWrite tests WriteAt in read-write mode.
func testRandomAccessReadWrite(t *testing.T, newObject Factory, config ContentTestConfig) {
	obj := newObject(t, "random/readwrite.txt", testData)
	defer func() { _ = obj.Close() }()
	c := open(t, obj)

	ra, err := c.RandomAccess(core.AccessReadWrite)
	if !config.RandomReadWrite {
		if err == nil {
			_ = ra.Close()
			t.Fatalf("RandomAccess(rw): got nil error, want ErrUnsupported")
		}
		if !errors.Is(err, core.ErrUnsupported) {
			t.Errorf("RandomAccess(rw): got error %v, want ErrUnsupported", err)
		}
		return
	}
	if err != nil {
		t.Fatalf("RandomAccess(rw): got error %v, want nil", err)
	}

	if _, err := ra.WriteAt([]byte("THE"), 0); err != nil {
		t.Fatalf("WriteAt(THE, 0): got error %v, want nil", err)
	}
	if err := ra.Close(); err != nil {
		t.Fatalf("Close(): got error %v, want nil", err)
	}

	want := append([]byte("THE"), testData[3:]...)
	if got := readAll(t, c); !bytes.Equal(got, want) {
		t.Errorf("after WriteAt: got %q, want %q", got, want)
	}
}
