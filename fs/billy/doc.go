// Package billy provides go-billy-backed implementations of core.FS.
//
// LocalFS wraps osfs and is rooted at a host directory. Its entries are plain
// files, so it implements core.LocalPathFS and content resolved from it is a
// valid destination for managed downloads. MemoryFS wraps memfs and is meant
// for tests and scratch space.
//
// Usage:
//
//	// Local filesystem rooted at a download directory
//	local := billy.NewLocal(billy.WithRoot("/var/lib/objfetch"))
//	path, err := local.LocalPath("reports/2024.csv")
//
//	// In-memory filesystem
//	mem := billy.NewMemory()
//	err := mem.WriteFile("temp.txt", []byte("data"), 0644)
//
// # Thread Safety
//
// FS instances (LocalFS, MemoryFS) are safe for concurrent use by
// multiple goroutines. File handles are not safe for concurrent use.
package billy
