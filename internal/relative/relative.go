// Package relative turns paths and file paths relative
// with string manipulation exclusively.
package relative

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"go.abhg.dev/litdoc/internal/sliceutil"
)

const (
	_slash       = "/"
	_filepathSep = string(filepath.Separator)
)

// Path returns a path to dst, relative to src.
// Both paths must be relative or both paths must be absolute,
// and they must both be /-separated.
//
// This operation relies on string manipulation exlusively,
// so it doesn't fail.
func Path(src, dst string) string {
	return rel(_slash, src, dst)
}

// Filepath returns a path to dst, relative to src.
// Both paths must be relative or both paths must be absolute,
// and they must both be valid file paths for the current system.
//
// This operation relies on string manipulation exlusively,
// so it doesn't fail.
func Filepath(src, dst string) string {
	return rel(_filepathSep, src, dst)
}

// File returns a link from the file at src to the file at dst.
// Both paths are /-separated and relative to the same root.
//
//	File("a/b.html", "c/d.html") == "../c/d.html"
//	File("a/b.html", "a/c.html") == "c.html"
func File(src, dst string) string {
	dir := path.Dir(src)
	if dir == "." {
		dir = ""
	}
	return Path(dir, dst)
}

func rel(delim, src, dst string) string {
	if path.IsAbs(src) != path.IsAbs(dst) {
		panic(fmt.Sprintf("Rel(%q, %q): both must be absolute, or both must be relative", src, dst))
	}
	// src must always be a directory.
	// Drop the trailing /, if any.
	src = strings.TrimSuffix(src, delim)

	var srcParts, dstParts []string
	if len(src) > 0 {
		srcParts = strings.Split(src, delim)
	}
	if len(dst) > 0 {
		dstParts = strings.Split(dst, delim)
	}

	n := sliceutil.CommonPrefix(srcParts, dstParts)
	srcParts, dstParts = srcParts[n:], dstParts[n:]

	var sb strings.Builder
	for range srcParts {
		if sb.Len() > 0 {
			sb.WriteString(delim)
		}
		sb.WriteString("..")
	}
	for _, p := range dstParts {
		if sb.Len() > 0 {
			sb.WriteString(delim)
		}
		sb.WriteString(p)
	}

	return sb.String()
}
