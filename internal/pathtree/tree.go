// Package pathtree arranges values stored under /-separated paths
// into the directory hierarchy those paths describe.
//
//	t.Set("cmd/main.go", A)
//	t.Set("internal/foo/foo.go", B)
//	t.Set("internal/foo/bar.go", C)
//	t.Snapshot()
//	// cmd/
//	//   main.go         (A)
//	// internal/
//	//   foo/
//	//     bar.go        (C)
//	//     foo.go        (B)
//
// Intermediate directories that were never given a value
// appear in the snapshot with a nil value.
package pathtree

import (
	"slices"
	"strings"
)

const _sep = '/'

// Root is the starting point of the path tree.
// The zero-value of Root is an empty tree.
type Root[T any] struct {
	root node[T]
	size int
}

// Set adds a value to the tree under the given path,
// overwriting the value previously stored there, if any.
func (r *Root[T]) Set(p string, v T) {
	if r.root.Set(p, &v) {
		r.size++
	}
}

// Get retrieves the value stored at exactly the given path.
func (r *Root[T]) Get(p string) (v T, ok bool) {
	if got := r.root.Get(p); got != nil {
		return *got, true
	}
	return v, false
}

// Len reports the number of values stored in the tree.
func (r *Root[T]) Len() int {
	return r.size
}

// Snapshot is a snapshot of values added to the tree
// presented in a hierarchical manner.
type Snapshot[T any] struct {
	// Value in the tree,
	// or nil if this node doesn't have an explicit value.
	Value *T
	// Name is the last component of Path.
	Name string
	// Path to this node.
	Path string
	// Children of this node, sorted by name.
	Children []Snapshot[T]
}

// Snapshot builds and returns a snapshot of all values
// in this path tree.
//
// The returned slice holds nodes closest to root.
func (r *Root[T]) Snapshot() []Snapshot[T] {
	return r.root.Snapshot(nil).Children
}

type node[T any] struct {
	name  string
	value *T

	// Sorted by name.
	children []*node[T]
}

func (n *node[T]) child(name string) (*node[T], int, bool) {
	idx, ok := slices.BinarySearchFunc(n.children, name, func(c *node[T], name string) int {
		return strings.Compare(c.name, name)
	})
	if !ok {
		return nil, idx, false
	}
	return n.children[idx], idx, true
}

func (n *node[T]) ensurechild(name string) *node[T] {
	c, idx, ok := n.child(name)
	if !ok {
		c = &node[T]{name: name}
		n.children = slices.Insert(n.children, idx, c)
	}
	return c
}

// Set reports whether a new value was added.
func (n *node[T]) Set(p string, v *T) bool {
	if len(p) == 0 {
		added := n.value == nil
		n.value = v
		return added
	}

	head, tail := split(p)
	return n.ensurechild(head).Set(tail, v)
}

func (n *node[T]) Get(p string) *T {
	if len(p) == 0 {
		return n.value
	}

	head, tail := split(p)
	c, _, ok := n.child(head)
	if !ok {
		return nil
	}
	return c.Get(tail)
}

func (n *node[T]) Snapshot(path []string) Snapshot[T] {
	var children []Snapshot[T]
	if len(n.children) > 0 {
		children = make([]Snapshot[T], len(n.children))
		for i, c := range n.children {
			children[i] = c.Snapshot(append(path, c.name))
		}
	}

	return Snapshot[T]{
		Value:    n.value,
		Name:     n.name,
		Path:     strings.Join(path, string(_sep)),
		Children: children,
	}
}

func split(p string) (head, tail string) {
	head, tail = p, ""
	if idx := strings.IndexByte(p, _sep); idx >= 0 {
		head, tail = p[:idx], p[idx+1:]
	}
	// If tail has any extra slashes, at the start, get rid of them.
	for len(tail) > 0 && tail[0] == _sep {
		tail = tail[1:]
	}
	return head, tail
}
