// Package content implements core.Content over any core.FS entry.
//
// Default is the generic implementation: streams, random access, metadata,
// attributes and content info, all expressed through the owning filesystem.
// ObjectContent composes a Default for entries of an object store and
// changes one thing: WriteFile into a local file runs a managed bulk
// transfer (see package transfer) instead of a stream copy, and falls back
// to the stream copy when the transfer fails.
//
// Objects are obtained with Resolve, which picks the object kind from the
// filesystem's capabilities:
//
//	src := content.Resolve(store, "reports/2024.csv")   // *ObjectFile
//	dst := content.Resolve(local, "2024.csv")           // *LocalFile
//	defer src.Close()
//
//	c, err := src.Content()
//	if err != nil {
//		return err
//	}
//	n, err := c.WriteFile(dst)
//
// Both WriteFile paths produce the same destination bytes; they differ only
// in throughput. FetchAll materializes many objects concurrently.
//
// # Thread Safety
//
// Content handles are not safe for concurrent use. Distinct handles are
// independent, even over the same filesystem.
package content
