// Package pathutil maps filesystem names onto S3 object keys.
package pathutil

import (
	"path"
	"strings"
)

// clean converts backslashes, resolves . and .. elements and trims
// surrounding slashes. The result is "" for the root.
func clean(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = path.Clean("/" + p)
	return strings.Trim(p, "/")
}

// Normalize cleans a name into key form. Returns "." for the root.
func Normalize(name string) string {
	if n := clean(name); n != "" {
		return n
	}
	return "."
}

// NormalizePrefix cleans a key prefix. Returns "" when there is no prefix.
func NormalizePrefix(prefix string) string {
	return clean(prefix)
}

// JoinPath joins a normalized prefix with a name to create a full S3 key.
func JoinPath(prefix, name string) string {
	name = Normalize(name)
	switch {
	case name == ".":
		return prefix
	case prefix == "":
		return name
	default:
		return prefix + "/" + name
	}
}
