package contenttest

import (
	"testing"
)

// TestLifecycle tests content handle lifecycle with MemoryTestConfig().
func TestLifecycle(t *testing.T, newObject Factory) {
	TestLifecycleWithConfig(t, newObject, MemoryTestConfig())
}

// TestLifecycleWithConfig tests IsOpen, Content.Close and Object.Close.
func TestLifecycleWithConfig(t *testing.T, newObject Factory, _ ContentTestConfig) {
	t.Run("CloseContent", func(t *testing.T) {
		testCloseContent(t, newObject)
	})
	t.Run("CloseObject", func(t *testing.T) {
		testCloseObject(t, newObject)
	})
	t.Run("SameHandle", func(t *testing.T) {
		testSameHandle(t, newObject)
	})
}

// testCloseContent tests that Close closes every open stream and leaves the
// handle usable.
func testCloseContent(t *testing.T, newObject Factory) {
	obj := newObject(t, "life/close.txt", testData)
	defer func() { _ = obj.Close() }()
	c := open(t, obj)

	if c.IsOpen() {
		t.Errorf("IsOpen(): got true on a fresh handle, want false")
	}
	for i := 0; i < 2; i++ {
		if _, err := c.InputStream(); err != nil {
			t.Fatalf("InputStream(): got error %v, want nil", err)
		}
	}
	if !c.IsOpen() {
		t.Errorf("IsOpen(): got false with two open streams, want true")
	}

	if err := c.Close(); err != nil {
		t.Errorf("Close(): got error %v, want nil", err)
	}
	if c.IsOpen() {
		t.Errorf("IsOpen(): got true after Close, want false")
	}
	if err := c.Close(); err != nil {
		t.Errorf("second Close(): got error %v, want nil", err)
	}

	if size, err := c.Size(); err != nil || size != int64(len(testData)) {
		t.Errorf("Size() after Close: got (%d, %v), want (%d, nil)", size, err, len(testData))
	}
}

// testCloseObject tests that closing the object releases its handle.
func testCloseObject(t *testing.T, newObject Factory) {
	obj := newObject(t, "life/object.txt", testData)
	c := open(t, obj)

	if _, err := c.InputStream(); err != nil {
		t.Fatalf("InputStream(): got error %v, want nil", err)
	}
	if err := obj.Close(); err != nil {
		t.Errorf("Object.Close(): got error %v, want nil", err)
	}
	if c.IsOpen() {
		t.Errorf("IsOpen(): got true after Object.Close, want false")
	}

	next := open(t, obj)
	if next == c {
		t.Errorf("Content() after Object.Close: got the released handle, want a fresh one")
	}
	_ = obj.Close()
}

// testSameHandle tests that an object hands out one handle until closed.
func testSameHandle(t *testing.T, newObject Factory) {
	obj := newObject(t, "life/same.txt", testData)
	defer func() { _ = obj.Close() }()

	first := open(t, obj)
	if second := open(t, obj); second != first {
		t.Errorf("Content(): got a new handle on the second call, want the same one")
	}
	if first.File() != obj {
		t.Errorf("File(): got %v, want the owning object", first.File())
	}
}
