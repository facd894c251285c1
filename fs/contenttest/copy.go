package contenttest

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmgilman/objfs/fs/billy"
	"github.com/jmgilman/objfs/fs/content"
)

// TestCopy tests the WriteTo family with MemoryTestConfig().
func TestCopy(t *testing.T, newObject Factory) {
	TestCopyWithConfig(t, newObject, MemoryTestConfig())
}

// TestCopyWithConfig tests WriteTo, WriteToBuffer, WriteContent and
// WriteFile. WriteFile is checked against an in-memory destination and a
// host file destination.
func TestCopyWithConfig(t *testing.T, newObject Factory, _ ContentTestConfig) {
	t.Run("WriteTo", func(t *testing.T) {
		testWriteTo(t, newObject)
	})
	t.Run("WriteToBuffer", func(t *testing.T) {
		testWriteToBuffer(t, newObject)
	})
	t.Run("WriteContent", func(t *testing.T) {
		testWriteContent(t, newObject)
	})
	t.Run("WriteFileMemory", func(t *testing.T) {
		testWriteFileMemory(t, newObject)
	})
	t.Run("WriteFileLocal", func(t *testing.T) {
		testWriteFileLocal(t, newObject)
	})
}

// testWriteTo tests copying into an io.Writer.
func testWriteTo(t *testing.T, newObject Factory) {
	obj := newObject(t, "copy/src.txt", testData)
	defer func() { _ = obj.Close() }()
	c := open(t, obj)

	var buf bytes.Buffer
	n, err := c.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo(): got error %v, want nil", err)
	}
	if n != int64(len(testData)) {
		t.Errorf("WriteTo(): got %d bytes, want %d", n, len(testData))
	}
	if !bytes.Equal(buf.Bytes(), testData) {
		t.Errorf("WriteTo(): got %q, want %q", buf.Bytes(), testData)
	}
	if c.IsOpen() {
		t.Errorf("IsOpen(): got true after WriteTo, want false")
	}
}

// testWriteToBuffer tests copying with a buffer smaller than the entry.
func testWriteToBuffer(t *testing.T, newObject Factory) {
	obj := newObject(t, "copy/src.txt", testData)
	defer func() { _ = obj.Close() }()
	c := open(t, obj)

	var buf bytes.Buffer
	n, err := c.WriteToBuffer(&buf, 7)
	if err != nil {
		t.Fatalf("WriteToBuffer(7): got error %v, want nil", err)
	}
	if n != int64(len(testData)) {
		t.Errorf("WriteToBuffer(7): got %d bytes, want %d", n, len(testData))
	}
	if !bytes.Equal(buf.Bytes(), testData) {
		t.Errorf("WriteToBuffer(7): got %q, want %q", buf.Bytes(), testData)
	}
}

// testWriteContent tests copying into another content handle, which must be
// truncated first.
func testWriteContent(t *testing.T, newObject Factory) {
	obj := newObject(t, "copy/src.txt", testData)
	defer func() { _ = obj.Close() }()
	c := open(t, obj)

	mem := billy.NewMemory()
	if err := mem.WriteFile("dst.txt", bytes.Repeat([]byte("x"), 2*len(testData)), 0o644); err != nil {
		t.Fatalf("WriteFile(dst.txt): setup failed: %v", err)
	}
	dst := content.Resolve(mem, "dst.txt")
	defer func() { _ = dst.Close() }()

	n, err := c.WriteContent(open(t, dst))
	if err != nil {
		t.Fatalf("WriteContent(): got error %v, want nil", err)
	}
	if n != int64(len(testData)) {
		t.Errorf("WriteContent(): got %d bytes, want %d", n, len(testData))
	}

	got, err := mem.ReadFile("dst.txt")
	if err != nil {
		t.Fatalf("ReadFile(dst.txt): got error %v", err)
	}
	if !bytes.Equal(got, testData) {
		t.Errorf("WriteContent(): destination holds %q, want %q", got, testData)
	}
}

// testWriteFileMemory tests copying into an object of another filesystem.
func testWriteFileMemory(t *testing.T, newObject Factory) {
	obj := newObject(t, "copy/src.txt", testData)
	defer func() { _ = obj.Close() }()
	c := open(t, obj)

	mem := billy.NewMemory()
	dst := content.Resolve(mem, "out/dst.txt")
	defer func() { _ = dst.Close() }()

	n, err := c.WriteFile(dst)
	if err != nil {
		t.Fatalf("WriteFile(): got error %v, want nil", err)
	}
	if n != int64(len(testData)) {
		t.Errorf("WriteFile(): got %d bytes, want %d", n, len(testData))
	}

	got, err := mem.ReadFile("out/dst.txt")
	if err != nil {
		t.Fatalf("ReadFile(out/dst.txt): got error %v", err)
	}
	if !bytes.Equal(got, testData) {
		t.Errorf("WriteFile(): destination holds %q, want %q", got, testData)
	}
}

// testWriteFileLocal tests copying into a host file.
func testWriteFileLocal(t *testing.T, newObject Factory) {
	obj := newObject(t, "copy/src.txt", testData)
	defer func() { _ = obj.Close() }()
	c := open(t, obj)

	root := t.TempDir()
	dst := content.Resolve(billy.NewLocal(billy.WithRoot(root)), "out/dst.txt")
	defer func() { _ = dst.Close() }()

	n, err := c.WriteFile(dst)
	if err != nil {
		t.Fatalf("WriteFile(): got error %v, want nil", err)
	}
	if n != int64(len(testData)) {
		t.Errorf("WriteFile(): got %d bytes, want %d", n, len(testData))
	}

	got, err := os.ReadFile(filepath.Join(root, "out", "dst.txt"))
	if err != nil {
		t.Fatalf("ReadFile(out/dst.txt): got error %v", err)
	}
	if !bytes.Equal(got, testData) {
		t.Errorf("WriteFile(): destination holds %q, want %q", got, testData)
	}
}
