package types

import (
	"path"
	"strings"
)

// Inventory paths are lowercase, use forward slashes and have no trailing
// slash; the root is "/". Display paths keep the original case.

// NormalizeQueryPath converts a user-supplied path to inventory form.
// Bare names have no working-directory context in the inventory, so
// "users/brian" is treated as "/users/brian".
func NormalizeQueryPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}

	// Windows-style input
	p = strings.ReplaceAll(p, `\`, "/")
	// Strip drive letter, the server stores it separately
	if len(p) >= 2 && p[1] == ':' {
		p = p[2:]
	}

	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}

	p = path.Clean(strings.ToLower(p))
	if p == "" || p == "." {
		return "/"
	}

	return p
}

// JoinPath appends a segment to an inventory directory path
func JoinPath(dir, segment string) string {
	if dir == "" || dir == "/" {
		return "/" + segment
	}
	return dir + "/" + segment
}

// ParentPath returns the directory containing p, "/" for top-level entries
func ParentPath(p string) string {
	idx := strings.LastIndex(p, "/")
	if idx <= 0 {
		return "/"
	}
	return p[:idx]
}

// HasPathPrefix reports whether p is prefix itself or lies under it
func HasPathPrefix(p, prefix string) bool {
	if prefix == "" || prefix == "/" {
		return strings.HasPrefix(p, "/")
	}

	if p == prefix {
		return true
	}

	return strings.HasPrefix(p, prefix + "/")
}
