// Package pathx holds path predicates shared by
// the file walker and the file watcher.
package pathx

import (
	"path/filepath"
	"strings"
)

// Descends reports whether b is equal to, or a descendant of a.
// Both paths are /-separated.
func Descends(a, b string) bool {
	rest, ok := strings.CutPrefix(b, strings.TrimSuffix(a, "/"))
	return ok && (rest == "" || rest[0] == '/')
}

// Within reports whether the file path p is dir or is inside it.
// Relative paths are resolved against the working directory.
func Within(dir, p string) bool {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	p, err = filepath.Abs(p)
	if err != nil {
		return false
	}
	return Descends(filepath.ToSlash(dir), filepath.ToSlash(p))
}

// Hidden reports whether a file or directory with this name is hidden.
// "." and ".." are not hidden.
func Hidden(name string) bool {
	return len(name) > 1 && name[0] == '.' && name != ".."
}
