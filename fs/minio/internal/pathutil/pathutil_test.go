package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "."},
		{"/", "."},
		{"a.txt", "a.txt"},
		{"/dir/a.txt", "dir/a.txt"},
		{"dir//a.txt/", "dir/a.txt"},
		{"dir\\sub\\a.txt", "dir/sub/a.txt"},
		{"dir/../a.txt", "a.txt"},
		{"../../a.txt", "a.txt"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}

func TestNormalizePrefix(t *testing.T) {
	assert.Equal(t, "", NormalizePrefix(""))
	assert.Equal(t, "", NormalizePrefix("."))
	assert.Equal(t, "tenant/a", NormalizePrefix("/tenant/a/"))
}

func TestJoinPath(t *testing.T) {
	tests := []struct {
		prefix, name, want string
	}{
		{"", "a.txt", "a.txt"},
		{"", ".", ""},
		{"p", ".", "p"},
		{"p", "/dir/a.txt", "p/dir/a.txt"},
		{"p/q", "a.txt", "p/q/a.txt"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, JoinPath(tt.prefix, tt.name), "JoinPath(%q, %q)", tt.prefix, tt.name)
	}
}
