// Package contenttest provides a conformance test suite for validating
// core.Content implementations.
//
// The suite exercises the content contract (streams, random access, copies,
// metadata, attributes and lifecycle) against objects produced by a
// provider-supplied factory. Providers differ in what they support, so the
// suite is driven by a ContentTestConfig: unsupported operations must fail
// with an error matching core.ErrUnsupported rather than succeed partially.
//
// TestPassThrough checks that a content wrapper returns exactly what the
// content it wraps returns.
//
// Example usage:
//
//	func TestMyContent(t *testing.T) {
//	    contenttest.TestSuite(t, func(t *testing.T, name string, data []byte) core.Object {
//	        fsys := myprovider.New()
//	        if data != nil {
//	            _ = fsys.WriteFile(name, data, 0644)
//	        }
//	        return content.Resolve(fsys, name)
//	    })
//	}
package contenttest

import (
	"strings"
	"testing"

	"github.com/jmgilman/objfs/fs/core"
)

// Factory returns the object for name in a fresh fixture. When data is not
// nil the entry is created with data first; when it is nil the entry must
// not exist.
type Factory func(t *testing.T, name string, data []byte) core.Object

// ContentTestConfig configures the suite to match provider capabilities.
type ContentTestConfig struct {
	// AppendWrites indicates OutputStream(true) appends to existing content.
	AppendWrites bool

	// RandomReadWrite indicates RandomAccess(core.AccessReadWrite) is supported.
	RandomReadWrite bool

	// Attributes indicates SetAttribute and RemoveAttribute are supported.
	Attributes bool

	// SetLastModified indicates SetLastModified is supported.
	SetLastModified bool

	// SkipTests lists specific test names to skip (e.g., "Copy/WriteFileLocal").
	SkipTests []string
}

// LocalTestConfig returns configuration for host filesystem content.
func LocalTestConfig() ContentTestConfig {
	return ContentTestConfig{
		AppendWrites:    true,
		RandomReadWrite: true,
		SetLastModified: true,
	}
}

// MemoryTestConfig returns configuration for in-memory content.
func MemoryTestConfig() ContentTestConfig {
	return ContentTestConfig{
		AppendWrites:    true,
		RandomReadWrite: true,
	}
}

// ObjectStoreTestConfig returns configuration for object store content.
func ObjectStoreTestConfig() ContentTestConfig {
	return ContentTestConfig{
		Attributes: true,
	}
}

// testData is the fixture content used by every test.
var testData = []byte("the quick brown fox jumps over the lazy dog\n")

// TestSuite runs all conformance tests with MemoryTestConfig().
func TestSuite(t *testing.T, newObject Factory) {
	TestSuiteWithConfig(t, newObject, MemoryTestConfig())
}

// TestSuiteWithConfig runs all conformance tests with behavior configuration.
// The factory is called once per test, so every test starts from a fresh
// fixture.
func TestSuiteWithConfig(t *testing.T, newObject Factory, config ContentTestConfig) {
	skipped := func(name string) bool {
		for _, skip := range config.SkipTests {
			if name == skip || strings.HasSuffix(name, "/"+skip) {
				return true
			}
		}
		return false
	}

	groups := []struct {
		name string
		run  func(*testing.T, Factory, ContentTestConfig)
	}{
		{"Streams", TestStreamsWithConfig},
		{"Copy", TestCopyWithConfig},
		{"RandomAccess", TestRandomAccessWithConfig},
		{"Metadata", TestMetadataWithConfig},
		{"Lifecycle", TestLifecycleWithConfig},
	}

	for _, g := range groups {
		t.Run(g.name, func(t *testing.T) {
			if skipped(g.name) {
				t.Skip("Skipped by provider configuration")
				return
			}
			g.run(t, skipFilter(newObject, config, skipped), config)
		})
	}
}

// skipFilter returns a factory that skips the calling subtest when it is
// listed in the configuration.
func skipFilter(newObject Factory, config ContentTestConfig, skipped func(string) bool) Factory {
	if len(config.SkipTests) == 0 {
		return newObject
	}
	return func(t *testing.T, name string, data []byte) core.Object {
		if skipped(t.Name()) {
			t.Skip("Skipped by provider configuration")
		}
		return newObject(t, name, data)
	}
}

// open returns the content of obj, failing the test on error.
func open(t *testing.T, obj core.Object) core.Content {
	t.Helper()
	c, err := obj.Content()
	if err != nil {
		t.Fatalf("Content(): got error %v, want nil", err)
	}
	return c
}
