// Package sliceutil holds slice helpers missing from the slices package.
package sliceutil

// CommonPrefix returns the length of the longest prefix
// shared by a and b.
func CommonPrefix[T comparable](a, b []T) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// Filter returns the items of s for which keep reports true.
// s is not modified.
// The result is nil if no items are kept.
func Filter[T any](s []T, keep func(T) bool) []T {
	var out []T
	for _, v := range s {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
