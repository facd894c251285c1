// Package core defines the contracts shared by every objfs provider.
//
// It has two layers. The filesystem layer (FS, File and the optional
// capability interfaces) describes where bytes live. The content layer
// (Object, Content, RandomAccessContent, ContentInfo) describes how a caller
// works with one named entry: streams, random access, metadata and
// attributes, independent of the provider behind it.
//
// # Interface Hierarchy
//
// FS is composed of:
//
//   - ReadFS: Open, Stat, ReadFile, Exists
//   - WriteFS: Create, OpenFile, WriteFile, MkdirAll
//   - Remove and Type
//
// Optional capabilities, discovered with type assertions:
//
//   - MetadataFS: Chtimes
//   - AttributeFS: per-entry attribute storage (S3 user metadata, for example)
//   - LocalPathFS: a host path for an entry, required for managed downloads
//
// # Checking Optional Capabilities
//
//	if lp, ok := filesystem.(core.LocalPathFS); ok {
//	    path, err := lp.LocalPath("report.csv")
//	}
//
// # Content
//
// An Object pairs a name with its FS and hands out a single Content handle.
// Objects whose FS can produce host paths implement LocalObject; content
// implementations use that to pick faster copy strategies.
//
// The core package depends only on the standard library. Providers live in
// sibling packages (fs/billy, fs/minio) and content implementations in
// fs/content.
package core
