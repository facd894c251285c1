package contenttest

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/jmgilman/objfs/fs/core"
)

// TestMetadata tests metadata operations with MemoryTestConfig().
func TestMetadata(t *testing.T, newObject Factory) {
	TestMetadataWithConfig(t, newObject, MemoryTestConfig())
}

// TestMetadataWithConfig tests size, times, content info, certificates and
// attributes.
func TestMetadataWithConfig(t *testing.T, newObject Factory, config ContentTestConfig) {
	t.Run("Size", func(t *testing.T) {
		testSize(t, newObject)
	})
	t.Run("SizeNotExist", func(t *testing.T) {
		testSizeNotExist(t, newObject)
	})
	t.Run("LastModified", func(t *testing.T) {
		testLastModified(t, newObject)
	})
	t.Run("SetLastModified", func(t *testing.T) {
		testSetLastModified(t, newObject, config)
	})
	t.Run("ContentInfo", func(t *testing.T) {
		testContentInfo(t, newObject)
	})
	t.Run("Certificates", func(t *testing.T) {
		testCertificates(t, newObject)
	})
	t.Run("Attributes", func(t *testing.T) {
		testAttributes(t, newObject, config)
	})
}

func testSize(t *testing.T, newObject Factory) {
	obj := newObject(t, "meta/size.txt", testData)
	defer func() { _ = obj.Close() }()

	size, err := open(t, obj).Size()
	if err != nil {
		t.Fatalf("Size(): got error %v, want nil", err)
	}
	if size != int64(len(testData)) {
		t.Errorf("Size(): got %d, want %d", size, len(testData))
	}
}

func testSizeNotExist(t *testing.T, newObject Factory) {
	obj := newObject(t, "meta/missing.txt", nil)
	defer func() { _ = obj.Close() }()

	if _, err := open(t, obj).Size(); !errors.Is(err, core.ErrNotExist) {
		t.Errorf("Size() of a missing entry: got error %v, want ErrNotExist", err)
	}
}

func testLastModified(t *testing.T, newObject Factory) {
	obj := newObject(t, "meta/mtime.txt", testData)
	defer func() { _ = obj.Close() }()

	mtime, err := open(t, obj).LastModified()
	if err != nil {
		t.Fatalf("LastModified(): got error %v, want nil", err)
	}
	if mtime.IsZero() {
		t.Errorf("LastModified(): got zero time, want the write time")
	}
}

// testSetLastModified compares at second precision, the coarsest any
// provider stores.
func testSetLastModified(t *testing.T, newObject Factory, config ContentTestConfig) {
	obj := newObject(t, "meta/chtimes.txt", testData)
	defer func() { _ = obj.Close() }()
	c := open(t, obj)

	want := time.Date(2020, 6, 1, 12, 0, 0, 0, time.UTC)
	err := c.SetLastModified(want)
	if !config.SetLastModified {
		if !errors.Is(err, core.ErrUnsupported) {
			t.Errorf("SetLastModified(): got error %v, want ErrUnsupported", err)
		}
		return
	}
	if err != nil {
		t.Fatalf("SetLastModified(): got error %v, want nil", err)
	}

	got, err := c.LastModified()
	if err != nil {
		t.Fatalf("LastModified(): got error %v, want nil", err)
	}
	if got.Unix() != want.Unix() {
		t.Errorf("LastModified(): got %v, want %v", got, want)
	}
}

func testContentInfo(t *testing.T, newObject Factory) {
	obj := newObject(t, "meta/info.txt", testData)
	defer func() { _ = obj.Close() }()
	c := open(t, obj)

	info, err := c.ContentInfo()
	if err != nil {
		t.Fatalf("ContentInfo(): got error %v, want nil", err)
	}
	if !strings.HasPrefix(info.ContentType, "text/plain") {
		t.Errorf("ContentInfo(): got content type %q, want text/plain", info.ContentType)
	}
	if c.IsOpen() {
		t.Errorf("IsOpen(): got true after ContentInfo, want false")
	}
}

func testCertificates(t *testing.T, newObject Factory) {
	obj := newObject(t, "meta/certs.txt", testData)
	defer func() { _ = obj.Close() }()

	if _, err := open(t, obj).Certificates(); err != nil {
		t.Errorf("Certificates(): got error %v, want nil", err)
	}
}

// testAttributes tests the attribute family. Attribute values are compared
// by their %v formatting since providers may store them as strings.
func testAttributes(t *testing.T, newObject Factory, config ContentTestConfig) {
	obj := newObject(t, "meta/attrs.txt", testData)
	defer func() { _ = obj.Close() }()
	c := open(t, obj)

	if _, err := c.Attributes(); err != nil {
		t.Fatalf("Attributes(): got error %v, want nil", err)
	}

	err := c.SetAttribute("owner", "alice")
	if !config.Attributes {
		if !errors.Is(err, core.ErrUnsupported) {
			t.Errorf("SetAttribute(): got error %v, want ErrUnsupported", err)
		}
		if err := c.RemoveAttribute("owner"); !errors.Is(err, core.ErrUnsupported) {
			t.Errorf("RemoveAttribute(): got error %v, want ErrUnsupported", err)
		}
		return
	}
	if err != nil {
		t.Fatalf("SetAttribute(owner): got error %v, want nil", err)
	}
	if err := c.SetAttribute("build", 42); err != nil {
		t.Fatalf("SetAttribute(build): got error %v, want nil", err)
	}

	ok, err := c.HasAttribute("owner")
	if err != nil || !ok {
		t.Errorf("HasAttribute(owner): got (%v, %v), want (true, nil)", ok, err)
	}
	v, err := c.Attribute("build")
	if err != nil {
		t.Errorf("Attribute(build): got error %v, want nil", err)
	}
	if fmt.Sprint(v) != "42" {
		t.Errorf("Attribute(build): got %v, want 42", v)
	}

	names, err := c.AttributeNames()
	if err != nil {
		t.Fatalf("AttributeNames(): got error %v, want nil", err)
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("AttributeNames(): got %v, want sorted names", names)
	}

	if err := c.RemoveAttribute("owner"); err != nil {
		t.Fatalf("RemoveAttribute(owner): got error %v, want nil", err)
	}
	if ok, _ := c.HasAttribute("owner"); ok {
		t.Errorf("HasAttribute(owner) after RemoveAttribute: got true, want false")
	}
	if v, _ := c.Attribute("owner"); v != nil {
		t.Errorf("Attribute(owner) after RemoveAttribute: got %v, want nil", v)
	}
}
